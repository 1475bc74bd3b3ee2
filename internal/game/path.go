// file: internal/game/path.go
package game

import (
	"container/heap"
	"math"
)

// Unreachable is returned when the opponent has cut every path.
const Unreachable = math.MaxInt32

// stepCost 进入格子 i 的代价：己方 0，空格 1，对方不可通行(-1)
func stepCost(b *Board, p CellState, i int) int {
	switch b.Cells[i] {
	case p:
		return 0
	case Empty:
		return 1
	}
	return -1
}

type pqItem struct {
	idx, dist int
}

type distQueue []pqItem

func (q distQueue) Len() int           { return len(q) }
func (q distQueue) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q distQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *distQueue) Push(x any)        { *q = append(*q, x.(pqItem)) }
func (q *distQueue) Pop() any {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}

// ShortestCompletionDistance returns the minimum number of empty cells p must
// still fill to connect its edges. 0 means p has already won; Unreachable
// means the opponent has blocked every path.
func ShortestCompletionDistance(b *Board, p CellState) int {
	if !p.IsPlayer() {
		return Unreachable
	}
	s := getScratch(len(b.Cells))
	defer putScratch(s)
	for i := range s.dist {
		s.dist[i] = Unreachable
	}

	q := make(distQueue, 0, len(b.Cells))
	// 虚拟源点：起始边上每个可通行格子的代价就是进入它的代价
	for _, i := range b.startEdge(p) {
		w := stepCost(b, p, i)
		if w < 0 || w >= s.dist[i] {
			continue
		}
		s.dist[i] = w
		heap.Push(&q, pqItem{i, w})
	}

	for q.Len() > 0 {
		it := heap.Pop(&q).(pqItem)
		if s.visited[it.idx] {
			continue
		}
		s.visited[it.idx] = true
		// 第一个出队的终点边格子即最短
		if b.onEndEdge(p, it.idx) {
			return it.dist
		}
		for _, j := range b.geo.neigh[it.idx] {
			if s.visited[j] {
				continue
			}
			w := stepCost(b, p, j)
			if w < 0 {
				continue
			}
			if nd := it.dist + w; nd < s.dist[j] {
				s.dist[j] = nd
				heap.Push(&q, pqItem{j, nd})
			}
		}
	}
	return Unreachable
}
