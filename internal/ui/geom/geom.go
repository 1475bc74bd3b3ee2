// Package geom maps board cells to window pixels. Cells are pointy-top
// hexagons and every row is shifted half a cell to the right of the one
// above it, which gives the usual Hex rhombus.
package geom

import (
	"math"

	"hex_go/internal/game"
)

const sqrt3 = 1.7320508075688772

// Layout 棋盘在窗口里的位置；Size 是中心到顶点的距离
type Layout struct {
	Rows, Cols       int
	Size             float64
	OriginX, OriginY float64 // centre of cell a1
}

// Fit scales a rows×cols board into a width×height area, keeping margin
// pixels free on every side, and centres it.
func Fit(rows, cols int, width, height, margin float64) Layout {
	wu := sqrt3 * (float64(cols) + float64(rows-1)/2)
	hu := 1.5*float64(rows-1) + 2
	size := math.Min((width-2*margin)/wu, (height-2*margin)/hu)
	if size < 1 {
		size = 1
	}
	return Layout{
		Rows:    rows,
		Cols:    cols,
		Size:    size,
		OriginX: (width-wu*size)/2 + sqrt3/2*size,
		OriginY: (height-hu*size)/2 + size,
	}
}

func (l Layout) Center(p game.Position) (x, y float64) {
	x = l.OriginX + l.Size*sqrt3*(float64(p.Col)+float64(p.Row)/2)
	y = l.OriginY + l.Size*1.5*float64(p.Row)
	return
}

// InnerRadius is the radius of the circle inscribed in a cell.
func (l Layout) InnerRadius() float64 { return l.Size * sqrt3 / 2 }

// Corners 顺时针：右上、右下、下、左下、左上、上
func (l Layout) Corners(p game.Position) [6][2]float64 {
	cx, cy := l.Center(p)
	var out [6][2]float64
	for k := range out {
		a := math.Pi / 180 * float64(60*k-30)
		out[k] = [2]float64{cx + l.Size*math.Cos(a), cy + l.Size*math.Sin(a)}
	}
	return out
}

func (l Layout) inBounds(r, c int) bool { return r >= 0 && r < l.Rows && c >= 0 && c < l.Cols }

// CellAt returns the cell whose centre is nearest to (x, y). Points outside
// the inscribed circle of that cell do not count as a hit.
func (l Layout) CellAt(x, y float64) (game.Position, bool) {
	rf := (y - l.OriginY) / (1.5 * l.Size)
	cf := (x-l.OriginX)/(sqrt3*l.Size) - rf/2
	r0, c0 := int(math.Round(rf)), int(math.Round(cf))

	best, bestD := game.Position{}, math.Inf(1)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			p := game.Position{Row: r0 + dr, Col: c0 + dc}
			if !l.inBounds(p.Row, p.Col) {
				continue
			}
			px, py := l.Center(p)
			if d := (px-x)*(px-x) + (py-y)*(py-y); d < bestD {
				best, bestD = p, d
			}
		}
	}
	ir := l.InnerRadius()
	if bestD > ir*ir {
		return game.Position{}, false
	}
	return best, true
}

// Side is one outer edge of the board and the player whose goal edge it is.
type Side struct {
	A, B  [2]float64
	Owner game.CellState
}

// neighbour direction -> corner pair of the shared side
var sideOf = [6]struct{ dr, dc, a, b int }{
	{-1, 0, 4, 5},
	{-1, 1, 5, 0},
	{0, 1, 0, 1},
	{1, 0, 1, 2},
	{1, -1, 2, 3},
	{0, -1, 3, 4},
}

// Border lists every cell side that faces off the board. Sides beyond the
// first or last row belong to Player1, the rest to Player2.
func (l Layout) Border() []Side {
	var out []Side
	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Cols; c++ {
			p := game.Position{Row: r, Col: c}
			corners := l.Corners(p)
			for _, s := range sideOf {
				nr, nc := r+s.dr, c+s.dc
				if l.inBounds(nr, nc) {
					continue
				}
				owner := game.Player2
				if nr < 0 || nr >= l.Rows {
					owner = game.Player1
				}
				out = append(out, Side{A: corners[s.a], B: corners[s.b], Owner: owner})
			}
		}
	}
	return out
}
