package game

import (
	"fmt"
	"strings"
)

// ParseBoard reads the text produced by Board.String. Whitespace is ignored;
// '.' or '0' is empty, '1' or 'R' (red) is Player1, '2' or 'B' (blue) is
// Player2. Blank lines and lines starting with '#' are skipped.
func ParseBoard(text string) (*Board, error) {
	var grid [][]CellState
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var row []CellState
		for _, ch := range line {
			switch ch {
			case ' ', '\t':
			case '.', '0':
				row = append(row, Empty)
			case '1', 'R':
				row = append(row, Player1)
			case '2', 'B':
				row = append(row, Player2)
			default:
				return nil, fmt.Errorf("line %d: unexpected %q", n+1, ch)
			}
		}
		grid = append(grid, row)
	}
	return NewBoardFromRows(grid)
}

// ParsePlayer accepts numeric ids, colour names and "player1"/"player2".
// Black and red both mean Player1.
func ParsePlayer(s string) (CellState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "red", "player1", "black":
		return Player1, nil
	case "2", "blue", "player2", "white":
		return Player2, nil
	}
	return Empty, fmt.Errorf("unknown player %q", s)
}
