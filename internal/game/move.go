package game

import (
	"sort"
)

// Move is a placement; the player is implied by whose turn it is.
type Move struct {
	Pos    Position
	Player CellState
}

func (m Move) String() string { return m.Player.String() + "@" + m.Pos.String() }

// GenerateMoves returns the linear indices of every empty cell in row-major
// order. The returned slice is freshly allocated.
func GenerateMoves(b *Board) []int {
	out := make([]int, 0, len(b.Cells))
	for i, s := range b.Cells {
		if s == Empty {
			out = append(out, i)
		}
	}
	return out
}

// GenerateMovesCenterFirst 与 GenerateMoves 相同，但按离中心的距离稳定排序
func GenerateMovesCenterFirst(b *Board) []int {
	out := make([]int, 0, len(b.Cells))
	for _, i := range b.geo.order {
		if b.Cells[i] == Empty {
			out = append(out, i)
		}
	}
	return out
}

// EmptyCells is the Position form of GenerateMoves.
func EmptyCells(b *Board) []Position {
	idx := GenerateMoves(b)
	out := make([]Position, len(idx))
	for k, i := range idx {
		out[k] = b.PositionOf(i)
	}
	return out
}

// centerOrder 计算所有格子按"到中心的六角距离"升序的排列；同距离保持行优先
func centerOrder(rows, cols int) []int {
	n := rows * cols
	order := make([]int, n)
	dist := make([]int, n)
	// 用 2 倍坐标避免半格
	cr, cc := rows-1, cols-1
	for i := 0; i < n; i++ {
		order[i] = i
		dr := 2*(i/cols) - cr
		dc := 2*(i%cols) - cc
		dist[i] = hexDist(dr, dc)
	}
	sort.SliceStable(order, func(a, b int) bool { return dist[order[a]] < dist[order[b]] })
	return order
}

// CenterDistance is the hex distance from p to the board centre, rounded down.
func CenterDistance(b *Board, p Position) int {
	return hexDist(2*p.Row-(b.rows-1), 2*p.Col-(b.cols-1)) / 2
}

// hexDist 轴向坐标 (dr, dc) 的六角距离
func hexDist(dr, dc int) int {
	return (abs(dr) + abs(dc) + abs(dr+dc)) / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
