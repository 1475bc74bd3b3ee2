package player

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hex_go/internal/game"
)

// AIPlayer plays the engine's choice.
type AIPlayer struct {
	engine *game.Engine
	// SwapRadius: an opening stone at most this hex distance from the
	// centre is considered strong enough to take. Negative never swaps.
	SwapRadius int
}

func NewAIPlayer(e *game.Engine) *AIPlayer {
	return &AIPlayer{engine: e}
}

func (p *AIPlayer) Name() string {
	return fmt.Sprintf("ai(%s)", p.engine.Options().Limits)
}

func (p *AIPlayer) Engine() *game.Engine { return p.engine }

func (p *AIPlayer) ChooseTile(ctx context.Context, gs *game.GameState) (game.Position, error) {
	res := p.engine.Search(ctx, gs.Board, gs.CurrentPlayer)
	if !res.OK {
		return game.Position{}, ErrNoMove
	}
	log.Debug().
		Int("turn", gs.Turn).
		Str("player", gs.CurrentPlayer.String()).
		Str("move", res.Move.String()).
		Int("score", res.Score).
		Int("depth", res.Depth).
		Msg("ai-move")
	return res.Move, nil
}

func (p *AIPlayer) ClaimSwap(_ context.Context, gs *game.GameState) bool {
	if p.SwapRadius < 0 {
		return false
	}
	pos, ok := openingStone(gs.Board)
	if !ok {
		return false
	}
	radius := p.SwapRadius
	if radius == 0 {
		radius = max(1, min(gs.Board.Rows(), gs.Board.Cols())/4)
	}
	return game.CenterDistance(gs.Board, pos) <= radius
}
