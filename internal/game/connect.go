// file: internal/game/connect.go
package game

import "sync"

// scratch 是 flood fill / 最短路复用的临时缓冲
type scratch struct {
	visited []bool
	stack   []int
	dist    []int
}

var scratchPool = sync.Pool{
	New: func() any { return &scratch{} },
}

func getScratch(n int) *scratch {
	s := scratchPool.Get().(*scratch)
	if cap(s.visited) < n {
		s.visited = make([]bool, n)
		s.dist = make([]int, n)
	}
	s.visited = s.visited[:n]
	s.dist = s.dist[:n]
	clear(s.visited)
	s.stack = s.stack[:0]
	return s
}

func putScratch(s *scratch) { scratchPool.Put(s) }

// onStartEdge / onEndEdge: Player1 连接第 0 行和最后一行，Player2 连接第 0 列和最后一列
func (b *Board) onStartEdge(p CellState, i int) bool {
	if p == Player1 {
		return i < b.cols
	}
	return i%b.cols == 0
}

func (b *Board) onEndEdge(p CellState, i int) bool {
	if p == Player1 {
		return i >= (b.rows-1)*b.cols
	}
	return i%b.cols == b.cols-1
}

// startEdge 返回 p 的起始边所有格子下标
func (b *Board) startEdge(p CellState) []int {
	if p == Player1 {
		out := make([]int, b.cols)
		for c := range out {
			out[c] = c
		}
		return out
	}
	out := make([]int, b.rows)
	for r := range out {
		out[r] = r * b.cols
	}
	return out
}

// HasConnection reports whether p's stones join p's two edges.
// Explicit worklist, no recursion.
func HasConnection(b *Board, p CellState) bool {
	if !p.IsPlayer() {
		return false
	}
	s := getScratch(len(b.Cells))
	defer putScratch(s)

	for _, i := range b.startEdge(p) {
		if b.Cells[i] == p && !s.visited[i] {
			s.visited[i] = true
			s.stack = append(s.stack, i)
		}
	}
	for len(s.stack) > 0 {
		i := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		if b.onEndEdge(p, i) {
			return true
		}
		for _, j := range b.geo.neigh[i] {
			if !s.visited[j] && b.Cells[j] == p {
				s.visited[j] = true
				s.stack = append(s.stack, j)
			}
		}
	}
	return false
}

// Winner returns the player who has connected their edges, or Empty.
// At most one player can be connected on a legal board.
func Winner(b *Board) CellState {
	if HasConnection(b, Player1) {
		return Player1
	}
	if HasConnection(b, Player2) {
		return Player2
	}
	return Empty
}

// IsGameOver returns the winner, Empty while the game is still running.
func IsGameOver(b *Board) CellState { return Winner(b) }

// Groups 返回 p 方所有连通块（每块是一组下标）
func Groups(b *Board, p CellState) [][]int {
	s := getScratch(len(b.Cells))
	defer putScratch(s)

	var groups [][]int
	for start, st := range b.Cells {
		if st != p || s.visited[start] {
			continue
		}
		var g []int
		s.visited[start] = true
		s.stack = append(s.stack[:0], start)
		for len(s.stack) > 0 {
			i := s.stack[len(s.stack)-1]
			s.stack = s.stack[:len(s.stack)-1]
			g = append(g, i)
			for _, j := range b.geo.neigh[i] {
				if !s.visited[j] && b.Cells[j] == p {
					s.visited[j] = true
					s.stack = append(s.stack, j)
				}
			}
		}
		groups = append(groups, g)
	}
	return groups
}

// LargestGroup 最大连通块的格子数
func LargestGroup(b *Board, p CellState) int {
	best := 0
	for _, g := range Groups(b, p) {
		best = max(best, len(g))
	}
	return best
}
