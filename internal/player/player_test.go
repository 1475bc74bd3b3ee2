package player

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"hex_go/internal/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func TestAIPlayerTakesWin(t *testing.T) {
	is := is.New(t)
	b, err := game.ParseBoard(`
		1 . 2
		 1 . 2
		  . . .`)
	is.NoErr(err)
	gs := game.NewGameStateFrom(b)
	is.Equal(gs.CurrentPlayer, game.Player1)

	p := NewAIPlayer(game.NewEngine(game.WithDepth(2)))
	pos, err := p.ChooseTile(context.Background(), gs)
	is.NoErr(err)
	is.Equal(pos, game.Position{Row: 2, Col: 0})
	is.Equal(gs.Board.Get(pos), game.Empty) // state untouched
}

func TestAIPlayerNoMove(t *testing.T) {
	is := is.New(t)
	b, _ := game.ParseBoard(`
		. . .
		 2 2 2
		  1 . 1`)
	p := NewAIPlayer(game.NewEngine(game.WithDepth(1)))
	_, err := p.ChooseTile(context.Background(), game.NewGameStateFrom(b))
	is.True(errors.Is(err, ErrNoMove))
}

func TestAIPlayerSwapsCentralOpening(t *testing.T) {
	is := is.New(t)
	p := NewAIPlayer(game.NewEngine())
	for _, tc := range []struct {
		pos  game.Position
		swap bool
	}{
		{game.Position{Row: 3, Col: 3}, true},
		{game.Position{Row: 2, Col: 3}, true},
		{game.Position{Row: 0, Col: 0}, false},
		{game.Position{Row: 6, Col: 1}, false},
	} {
		gs := game.NewGameState(7, 7)
		gs.SwapRule = true
		is.NoErr(gs.MakeMove(tc.pos))
		is.Equal(p.ClaimSwap(context.Background(), gs), tc.swap)
	}

	p.SwapRadius = -1
	gs := game.NewGameState(7, 7)
	is.NoErr(gs.MakeMove(game.Position{Row: 3, Col: 3}))
	is.True(!p.ClaimSwap(context.Background(), gs))
}

func TestRandomPlayer(t *testing.T) {
	is := is.New(t)
	a, b := NewRandomPlayer(7), NewRandomPlayer(7)
	gs := game.NewGameState(4, 4)
	for !gs.GameOver {
		pa, err := a.ChooseTile(context.Background(), gs)
		is.NoErr(err)
		pb, _ := b.ChooseTile(context.Background(), gs)
		is.Equal(pa, pb) // same seed, same sequence
		is.Equal(gs.Board.Get(pa), game.Empty)
		is.NoErr(gs.MakeMove(pa))
	}
	is.True(gs.Winner.IsPlayer())
}

func TestHumanPlayer(t *testing.T) {
	is := is.New(t)
	h := NewHumanPlayer("me")
	gs := game.NewGameState(3, 3)
	is.NoErr(gs.MakeMove(game.Position{Row: 1, Col: 1}))

	is.True(h.Submit(game.Position{Row: 1, Col: 1})) // occupied, dropped
	go func() {
		time.Sleep(10 * time.Millisecond)
		h.Submit(game.Position{Row: 0, Col: 2})
	}()
	pos, err := h.ChooseTile(context.Background(), gs)
	is.NoErr(err)
	is.Equal(pos, game.Position{Row: 0, Col: 2})

	is.True(h.AnswerSwap(true))
	is.True(h.ClaimSwap(context.Background(), gs))
}

func TestHumanPlayerCancelled(t *testing.T) {
	is := is.New(t)
	h := NewHumanPlayer("me")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := h.ChooseTile(ctx, game.NewGameState(3, 3))
	is.True(errors.Is(err, context.DeadlineExceeded))
	is.True(!h.ClaimSwap(ctx, game.NewGameState(3, 3)))
}
