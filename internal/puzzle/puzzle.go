// Package puzzle loads hex puzzles from YAML and embeds them into a
// full-size board whose border reproduces the puzzle's edges.
package puzzle

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"hex_go/internal/game"
)

var (
	ErrNoSuchLevel = errors.New("no such level")
	ErrTooSmall    = errors.New("board too small for puzzle")
	ErrSolved      = errors.New("puzzle already decided")
)

// Level is one puzzle. Rows use the board text format with '1' for
// Black (Player1, top to bottom) and '2' for White (Player2, left to right).
type Level struct {
	Number   int      `yaml:"level"`
	ToMove   string   `yaml:"to_move"`
	Rows     []string `yaml:"rows"`
	Solution []string `yaml:"solution,omitempty"` // winning first moves, puzzle coordinates
	Comment  string   `yaml:"comment,omitempty"`
}

// ID identifies the position independently of its level number.
func (l Level) ID() string {
	h := xxhash.New()
	_, _ = h.Write([]byte(l.ToMove))
	for _, r := range l.Rows {
		_, _ = h.Write([]byte(strings.Join(strings.Fields(r), "")))
		_, _ = h.Write([]byte{'\n'})
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

func (l Level) Board() (*game.Board, error) {
	b, err := game.ParseBoard(strings.Join(l.Rows, "\n"))
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", l.Number, err)
	}
	return b, nil
}

func (l Level) Mover() (game.CellState, error) {
	if l.ToMove == "" {
		return game.Player1, nil
	}
	return game.ParsePlayer(l.ToMove)
}

type Set struct {
	Puzzles []Level `yaml:"puzzles"`
}

func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("puzzles", len(s.Puzzles)).Msg("loaded-puzzles")
	return s, nil
}

func Parse(data []byte) (*Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	dup := lo.FindDuplicatesBy(s.Puzzles, func(l Level) int { return l.Number })
	if len(dup) > 0 {
		return nil, fmt.Errorf("duplicate level %d", dup[0].Number)
	}
	return &s, nil
}

func (s *Set) Level(n int) (Level, error) {
	l, ok := lo.Find(s.Puzzles, func(l Level) bool { return l.Number == n })
	if !ok {
		return Level{}, fmt.Errorf("%w: %d", ErrNoSuchLevel, n)
	}
	return l, nil
}

func (s *Set) Numbers() []int {
	return lo.Map(s.Puzzles, func(l Level, _ int) int { return l.Number })
}

// Embedded is a puzzle placed inside a size×size board. The player to move
// is always Player1; puzzles with White to move are reflected.
type Embedded struct {
	Level     Level
	Board     *game.Board
	Reflected bool
	rows      int
	cols      int
}

// Embed puts l at offset (1,1) of a size×size board. Margin rows above and
// below the puzzle belong to Player1, margin columns beside it to Player2,
// so either side can only connect through the puzzle area.
func Embed(l Level, size int) (*Embedded, error) {
	pb, err := l.Board()
	if err != nil {
		return nil, err
	}
	mover, err := l.Mover()
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", l.Number, err)
	}
	if w := game.Winner(pb); w != game.Empty {
		return nil, fmt.Errorf("level %d: %w (%v)", l.Number, ErrSolved, w)
	}
	r, c := pb.Rows(), pb.Cols()
	if r+2 > size || c+2 > size {
		return nil, fmt.Errorf("%w: %dx%d puzzle, size %d", ErrTooSmall, r, c, size)
	}

	b := game.NewBoard(size, size)
	for i := range b.Cells {
		pos := b.PositionOf(i)
		switch {
		case pos.Row >= 1 && pos.Row <= r && pos.Col >= 1 && pos.Col <= c:
			b.Cells[i] = pb.Get(game.Position{Row: pos.Row - 1, Col: pos.Col - 1})
		case pos.Row == 0 || pos.Row > r:
			b.Cells[i] = game.Player1
		default:
			b.Cells[i] = game.Player2
		}
	}
	e := &Embedded{Level: l, Board: b, rows: r, cols: c}
	if mover == game.Player2 {
		b.MirrorSwap()
		e.Reflected = true
	}
	return e, nil
}

// State wraps the board with Player1 to move and the swap rule off.
func (e *Embedded) State() *game.GameState {
	gs := game.NewGameStateFrom(e.Board.Clone())
	gs.CurrentPlayer = game.Player1
	return gs
}

// ToPuzzle maps a board cell back to puzzle coordinates.
func (e *Embedded) ToPuzzle(p game.Position) (game.Position, bool) {
	if e.Reflected {
		p = game.Position{Row: p.Col, Col: p.Row}
	}
	q := game.Position{Row: p.Row - 1, Col: p.Col - 1}
	return q, q.Row >= 0 && q.Row < e.rows && q.Col >= 0 && q.Col < e.cols
}

// FromPuzzle is the inverse of ToPuzzle.
func (e *Embedded) FromPuzzle(q game.Position) game.Position {
	p := game.Position{Row: q.Row + 1, Col: q.Col + 1}
	if e.Reflected {
		p = game.Position{Row: p.Col, Col: p.Row}
	}
	return p
}

// IsSolution reports whether the board move p is one of the level's
// listed winning moves. Levels without a solution list accept nothing.
func (e *Embedded) IsSolution(p game.Position) bool {
	q, ok := e.ToPuzzle(p)
	if !ok {
		return false
	}
	return lo.Contains(e.Level.Solution, q.String())
}
