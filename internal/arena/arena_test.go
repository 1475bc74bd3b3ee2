package arena

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"hex_go/internal/game"
	"hex_go/internal/player"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func randomFactory() Factory {
	var seed atomic.Uint64
	return func() player.Player { return player.NewRandomPlayer(seed.Add(1)) }
}

func TestRunTallies(t *testing.T) {
	s := Settings{Games: 8, Rows: 5, Cols: 5, Concurrency: 3, Openings: 1}
	ai := func() player.Player { return player.NewAIPlayer(game.NewEngine(game.WithDepth(1))) }
	tally, err := Run(context.Background(), s, ai, randomFactory())
	require.NoError(t, err)
	require.Len(t, tally.PerGame, 8)
	require.Equal(t, 8, tally.AWins+tally.BWins)
	require.Equal(t, 8, tally.P1Wins+tally.P2Wins)
	require.Zero(t, tally.Errors)
	require.Contains(t, tally.A, "ai")
	require.Equal(t, "random", tally.B)

	for k, r := range tally.PerGame {
		require.Equal(t, k, r.Index)
		require.Equal(t, k%2 == 0, r.AFirst)
		require.NotEmpty(t, r.Moves)
		if r.AFirst {
			require.Equal(t, tally.A, r.Player1)
		} else {
			require.Equal(t, tally.A, r.Player2)
		}
	}
}

// swapper always claims the swap and otherwise plays the first empty cell.
type swapper struct{ claims int }

func (s *swapper) Name() string { return "swapper" }

func (s *swapper) ChooseTile(_ context.Context, gs *game.GameState) (game.Position, error) {
	cells := game.EmptyCells(gs.Board)
	if len(cells) == 0 {
		return game.Position{}, player.ErrNoMove
	}
	return cells[0], nil
}

func (s *swapper) ClaimSwap(context.Context, *game.GameState) bool {
	s.claims++
	return true
}

func TestPlayGameSwap(t *testing.T) {
	is := is.New(t)
	gs := game.NewGameState(4, 4)
	gs.SwapRule = true
	a, b := &swapper{}, &swapper{}
	is.NoErr(PlayGame(context.Background(), gs, [2]player.Player{a, b}))
	is.True(gs.GameOver)
	is.True(gs.Swapped)
	is.Equal(a.claims, 0)
	is.Equal(b.claims, 1)
	// first stone was mirrored onto the claimant's colour
	is.Equal(gs.History[0], game.Move{Pos: game.Position{Row: 0, Col: 0}, Player: game.Player2})
	is.Equal(gs.History[1].Player, game.Player1)
}

func TestPlayGameCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gs := game.NewGameState(3, 3)
	err := PlayGame(ctx, gs, [2]player.Player{player.NewRandomPlayer(1), player.NewRandomPlayer(2)})
	is.True(errors.Is(err, context.Canceled))
	is.True(!gs.GameOver)
}

func TestRunCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tally, err := Run(ctx, Settings{Games: 3, Rows: 3, Cols: 3}, randomFactory(), randomFactory())
	is.True(errors.Is(err, context.Canceled))
	is.Equal(tally.Errors, 3)
}

func TestRunBadSettings(t *testing.T) {
	is := is.New(t)
	_, err := Run(context.Background(), Settings{}, randomFactory(), randomFactory())
	is.True(err != nil)
}

func TestWriteReport(t *testing.T) {
	is := is.New(t)
	tally, err := Run(context.Background(), Settings{Games: 2, Rows: 3, Cols: 3}, randomFactory(), randomFactory())
	is.NoErr(err)

	var buf bytes.Buffer
	is.NoErr(tally.WriteReport(&buf))
	var back Tally
	is.NoErr(yaml.Unmarshal(buf.Bytes(), &back))
	is.Equal(back.AWins, tally.AWins)
	is.Equal(back.P1Wins, tally.P1Wins)
	is.Equal(len(back.PerGame), 2)
	is.Equal(back.PerGame[1].Moves, tally.PerGame[1].Moves)
}
