package player

import (
	"context"
	"encoding/binary"
	"sync"

	"lukechampine.com/frand"

	"hex_go/internal/game"
)

// RandomPlayer picks uniformly among the empty cells and claims the swap
// half of the time.
type RandomPlayer struct {
	mu  sync.Mutex
	rng *frand.RNG
}

// NewRandomPlayer seeds the generator; seed 0 draws a fresh seed.
func NewRandomPlayer(seed uint64) *RandomPlayer {
	var key [32]byte
	if seed == 0 {
		frand.Read(key[:])
	} else {
		binary.LittleEndian.PutUint64(key[:], seed)
	}
	return &RandomPlayer{rng: frand.NewCustom(key[:], 1024, 12)}
}

func (p *RandomPlayer) Name() string { return "random" }

func (p *RandomPlayer) ChooseTile(_ context.Context, gs *game.GameState) (game.Position, error) {
	empties := game.EmptyCells(gs.Board)
	if len(empties) == 0 {
		return game.Position{}, ErrNoMove
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return empties[p.rng.Intn(len(empties))], nil
}

func (p *RandomPlayer) ClaimSwap(context.Context, *game.GameState) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Intn(2) == 1
}
