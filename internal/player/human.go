package player

import (
	"context"

	"hex_go/internal/game"
)

// HumanPlayer waits for input delivered by a front end (window or shell).
type HumanPlayer struct {
	name  string
	moves chan game.Position
	swaps chan bool
}

func NewHumanPlayer(name string) *HumanPlayer {
	return &HumanPlayer{
		name:  name,
		moves: make(chan game.Position, 1),
		swaps: make(chan bool, 1),
	}
}

func (p *HumanPlayer) Name() string { return p.name }

// Submit hands over a clicked or typed cell. It returns false if an
// earlier move is still pending.
func (p *HumanPlayer) Submit(pos game.Position) bool {
	select {
	case p.moves <- pos:
		return true
	default:
		return false
	}
}

// AnswerSwap delivers the reply to the swap question.
func (p *HumanPlayer) AnswerSwap(yes bool) bool {
	select {
	case p.swaps <- yes:
		return true
	default:
		return false
	}
}

// ChooseTile blocks until a legal cell is submitted or ctx ends.
// Occupied cells are dropped silently so a misclick does not end the turn.
func (p *HumanPlayer) ChooseTile(ctx context.Context, gs *game.GameState) (game.Position, error) {
	for {
		select {
		case <-ctx.Done():
			return game.Position{}, ctx.Err()
		case pos := <-p.moves:
			if gs.Board.InBounds(pos) && gs.Board.Get(pos) == game.Empty {
				return pos, nil
			}
		}
	}
}

func (p *HumanPlayer) ClaimSwap(ctx context.Context, _ *game.GameState) bool {
	select {
	case <-ctx.Done():
		return false
	case yes := <-p.swaps:
		return yes
	}
}
