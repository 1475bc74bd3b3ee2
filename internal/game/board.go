// File game/board.go
package game

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// CellState represents the state of a cell on the board.
// It can be Empty or occupied by Player1 or Player2.
type CellState int8

const (
	Empty CellState = iota
	Player1
	Player2
)

func (s CellState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	}
	return fmt.Sprintf("CellState(%d)", int8(s))
}

// IsPlayer 只有 Player1 / Player2 是合法的落子方
func (s CellState) IsPlayer() bool { return s == Player1 || s == Player2 }

// Opponent returns the other player. Empty maps to Empty.
func Opponent(p CellState) CellState {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

// Position is a (row, col) cell address. Row grows top to bottom,
// col grows left to right.
type Position struct {
	Row, Col int
}

// String 形如 "c4"：列用字母，行从 1 开始
func (p Position) String() string {
	if p.Col >= 0 && p.Col < 26 {
		return fmt.Sprintf("%c%d", 'a'+rune(p.Col), p.Row+1)
	}
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

var ErrBadPosition = errors.New("bad position")

// ParsePosition parses the notation produced by Position.String: "c4", or
// "(row,col)" for columns past 'z'.
func ParsePosition(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "(") {
		var p Position
		var rest string
		n, _ := fmt.Sscanf(s, "(%d,%d)%s", &p.Row, &p.Col, &rest)
		if n != 2 || p.Row < 0 || p.Col < 0 {
			return Position{}, fmt.Errorf("%w: %q", ErrBadPosition, s)
		}
		return p, nil
	}
	if len(s) < 2 || s[0] < 'a' || s[0] > 'z' {
		return Position{}, fmt.Errorf("%w: %q", ErrBadPosition, s)
	}
	var row int
	if _, err := fmt.Sscanf(s[1:], "%d", &row); err != nil || row < 1 {
		return Position{}, fmt.Errorf("%w: %q", ErrBadPosition, s)
	}
	return Position{Row: row - 1, Col: int(s[0] - 'a')}, nil
}

// neighborDirs 六个邻居方向 (dRow, dCol)
var neighborDirs = [6]Position{
	{-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, 0}, {1, -1},
}

// geometry 预计算某个尺寸棋盘的邻接表，所有组件共用同一份
type geometry struct {
	rows, cols int
	neigh      [][]int
	order      []int // 中心优先的候选顺序
}

var geoStore = struct {
	sync.Mutex
	m map[[2]int]*geometry
}{m: make(map[[2]int]*geometry)}

func geometryFor(rows, cols int) *geometry {
	key := [2]int{rows, cols}
	geoStore.Lock()
	defer geoStore.Unlock()
	if g, ok := geoStore.m[key]; ok {
		return g
	}
	g := newGeometry(rows, cols)
	geoStore.m[key] = g
	return g
}

func newGeometry(rows, cols int) *geometry {
	n := rows * cols
	g := &geometry{rows: rows, cols: cols, neigh: make([][]int, n)}
	for i := 0; i < n; i++ {
		r, c := i/cols, i%cols
		for _, d := range neighborDirs {
			nr, nc := r+d.Row, c+d.Col
			if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
				continue
			}
			g.neigh[i] = append(g.neigh[i], nr*cols+nc)
		}
	}
	g.order = centerOrder(rows, cols)
	return g
}

// Board is a rows×cols Hex board. Cells is indexed by row*cols+col.
type Board struct {
	rows, cols int
	Cells      []CellState
	geo        *geometry
}

var boardPool = sync.Pool{
	New: func() any {
		return &Board{}
	},
}

// NewBoard creates an empty board. rows and cols must be positive.
func NewBoard(rows, cols int) *Board {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("NewBoard: invalid size %dx%d", rows, cols))
	}
	return &Board{
		rows:  rows,
		cols:  cols,
		Cells: make([]CellState, rows*cols),
		geo:   geometryFor(rows, cols),
	}
}

// NewBoardFromRows builds a board from an externally produced grid.
func NewBoardFromRows(grid [][]CellState) (*Board, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, errors.New("empty grid")
	}
	b := NewBoard(len(grid), len(grid[0]))
	for r, row := range grid {
		if len(row) != b.cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(row), b.cols)
		}
		for c, s := range row {
			if s != Empty && !s.IsPlayer() {
				return nil, fmt.Errorf("cell %v: invalid occupant %d", Position{r, c}, s)
			}
			b.Cells[r*b.cols+c] = s
		}
	}
	return b, nil
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// Dimensions returns (width, height), i.e. (cols, rows).
func (b *Board) Dimensions() (width, height int) { return b.cols, b.rows }

// Size 格子总数
func (b *Board) Size() int { return len(b.Cells) }

func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.rows && p.Col >= 0 && p.Col < b.cols
}

func (b *Board) Index(p Position) int { return p.Row*b.cols + p.Col }

func (b *Board) PositionOf(i int) Position { return Position{Row: i / b.cols, Col: i % b.cols} }

// Get returns the occupant at p. Out of bounds reads as Empty.
func (b *Board) Get(p Position) CellState {
	if !b.InBounds(p) {
		return Empty
	}
	return b.Cells[b.Index(p)]
}

func (b *Board) GetI(i int) CellState { return b.Cells[i] }

// Set places occupant at p. It reports false and leaves the board unchanged
// if p is out of bounds, the cell is taken, or occupant is not a player.
func (b *Board) Set(p Position, occupant CellState) bool {
	if !b.InBounds(p) || !occupant.IsPlayer() {
		return false
	}
	i := b.Index(p)
	if b.Cells[i] != Empty {
		return false
	}
	b.Cells[i] = occupant
	return true
}

// Neighbors returns the in-bounds neighbours of p (0 to 6 cells).
func (b *Board) Neighbors(p Position) []Position {
	if !b.InBounds(p) {
		return nil
	}
	ns := b.geo.neigh[b.Index(p)]
	out := make([]Position, len(ns))
	for k, j := range ns {
		out[k] = b.PositionOf(j)
	}
	return out
}

// NeighborsI 下标版本，返回共享切片，调用方不要修改
func (b *Board) NeighborsI(i int) []int { return b.geo.neigh[i] }

// MirrorSwap exchanges the two colours and transposes the board, which
// hands each player the other's edges. Used by the swap rule and puzzle import.
func (b *Board) MirrorSwap() {
	rows, cols := b.cols, b.rows
	cells := make([]CellState, len(b.Cells))
	for i, s := range b.Cells {
		r, c := i/b.cols, i%b.cols
		cells[c*cols+r] = Opponent(s)
	}
	b.rows, b.cols = rows, cols
	b.Cells = cells
	b.geo = geometryFor(rows, cols)
}

func (b *Board) Clone() *Board {
	nb := &Board{rows: b.rows, cols: b.cols, geo: b.geo}
	nb.Cells = make([]CellState, len(b.Cells))
	copy(nb.Cells, b.Cells)
	return nb
}

// acquireBoard 从对象池拿一块棋盘并整块拷贝 src
func acquireBoard(src *Board) *Board {
	nb := boardPool.Get().(*Board)
	nb.rows, nb.cols, nb.geo = src.rows, src.cols, src.geo
	if cap(nb.Cells) < len(src.Cells) {
		nb.Cells = make([]CellState, len(src.Cells))
	}
	nb.Cells = nb.Cells[:len(src.Cells)]
	copy(nb.Cells, src.Cells)
	return nb
}

func releaseBoard(b *Board) {
	boardPool.Put(b)
}

// CountPieces 统计 pl 方棋子数量
func (b *Board) CountPieces(pl CellState) int {
	n := 0
	for _, s := range b.Cells {
		if s == pl {
			n++
		}
	}
	return n
}

func (b *Board) EmptyCount() int { return b.CountPieces(Empty) }

func (b *Board) IsFull() bool { return b.EmptyCount() == 0 }

// String renders the board as a sheared rhombus, one text row per board row.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		sb.WriteString(strings.Repeat(" ", r))
		for c := 0; c < b.cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(cellRune(b.Cells[r*b.cols+c]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cellRune(s CellState) byte {
	switch s {
	case Player1:
		return '1'
	case Player2:
		return '2'
	}
	return '.'
}
