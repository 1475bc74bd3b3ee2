// Package player contains the participants that can sit at a hex game:
// the search engine, a random mover and a human fed through channels.
package player

import (
	"context"
	"errors"

	"hex_go/internal/game"
)

var ErrNoMove = errors.New("no legal move")

// Player picks moves for whichever colour is to move in the given state.
// Implementations must not modify gs.
type Player interface {
	Name() string
	ChooseTile(ctx context.Context, gs *game.GameState) (game.Position, error)
	// ClaimSwap is asked once, on turn 2, when the swap rule is on.
	ClaimSwap(ctx context.Context, gs *game.GameState) bool
}

// openingStone returns the single stone on the board, if there is exactly one.
func openingStone(b *game.Board) (game.Position, bool) {
	var found game.Position
	n := 0
	for i, c := range b.Cells {
		if c != game.Empty {
			found = b.PositionOf(i)
			n++
		}
	}
	return found, n == 1
}
