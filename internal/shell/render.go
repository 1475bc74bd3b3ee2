package shell

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"hex_go/internal/game"
)

const (
	colourP1   = "#E53935" // red, top and bottom
	colourP2   = "#1E88E5" // blue, left and right
	colourPath = "#FDD835"
)

// render draws b as a sheared rhombus with column letters and row numbers.
// Cells in mark are highlighted.
func (sc *ShellController) render(b *game.Board, mark []game.Position) string {
	marked := make(map[game.Position]bool, len(mark))
	for _, p := range mark {
		marked[p] = true
	}
	t := sc.term
	red := func(s string) string { return t.String(s).Foreground(t.Color(colourP1)).Bold().String() }
	blue := func(s string) string { return t.String(s).Foreground(t.Color(colourP2)).Bold().String() }

	var sb strings.Builder
	header := make([]string, b.Cols())
	for c := range header {
		header[c] = string(rune('a' + c))
	}
	sb.WriteString("    " + red(strings.Join(header, " ")) + "\n")
	for r := 0; r < b.Rows(); r++ {
		sb.WriteString(strings.Repeat(" ", r))
		sb.WriteString(blue(fmt.Sprintf("%3d ", r+1)))
		for c := 0; c < b.Cols(); c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			pos := game.Position{Row: r, Col: c}
			sb.WriteString(sc.cell(b.Get(pos), marked[pos]))
		}
		sb.WriteString(blue(" |"))
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Repeat(" ", b.Rows()+4) + red(strings.Repeat("--", b.Cols())))
	return sb.String()
}

func (sc *ShellController) cell(s game.CellState, marked bool) string {
	t := sc.term
	var style termenv.Style
	switch s {
	case game.Player1:
		style = t.String("1").Foreground(t.Color(colourP1))
	case game.Player2:
		style = t.String("2").Foreground(t.Color(colourP2))
	default:
		style = t.String(".")
		if marked {
			style = t.String("*")
		}
	}
	if marked {
		style = style.Background(t.Color(colourPath)).Bold()
	}
	return style.String()
}
