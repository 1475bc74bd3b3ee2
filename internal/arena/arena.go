// Package arena plays series of games between two players and tallies
// the results, alternating who moves first.
package arena

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"hex_go/internal/game"
	"hex_go/internal/player"
)

// Factory builds a fresh player for one game. Players are not shared
// between concurrently running games.
type Factory func() player.Player

type Settings struct {
	Games       int    `yaml:"games"`
	Rows        int    `yaml:"rows"`
	Cols        int    `yaml:"cols"`
	Concurrency int    `yaml:"concurrency"`
	Openings    int    `yaml:"openings"` // random plies before the players take over
	SwapRule    bool   `yaml:"swap_rule"`
	Seed        uint64 `yaml:"seed"`
}

func DefaultSettings() Settings {
	return Settings{Games: 10, Rows: 7, Cols: 7, Concurrency: 1}
}

type Seat int

const (
	SeatA Seat = iota
	SeatB
)

func (s Seat) String() string {
	if s == SeatA {
		return "A"
	}
	return "B"
}

// GameRecord is one finished (or aborted) game.
type GameRecord struct {
	Index    int           `yaml:"index"`
	Player1  string        `yaml:"player1"`
	Player2  string        `yaml:"player2"`
	AFirst   bool          `yaml:"a_first"`
	Winner   string        `yaml:"winner"` // seat: "A" or "B"
	Colour   string        `yaml:"colour"` // "player1" or "player2"
	Swapped  bool          `yaml:"swapped"`
	Moves    []string      `yaml:"moves"`
	Duration time.Duration `yaml:"duration"`
	Err      string        `yaml:"error,omitempty"`
}

type Tally struct {
	A       string       `yaml:"a"`
	B       string       `yaml:"b"`
	AWins   int          `yaml:"a_wins"`
	BWins   int          `yaml:"b_wins"`
	P1Wins  int          `yaml:"p1_wins"`
	P2Wins  int          `yaml:"p2_wins"`
	Errors  int          `yaml:"errors"`
	PerGame []GameRecord `yaml:"games"`
}

func (t *Tally) String() string {
	return fmt.Sprintf("%s %d - %d %s (first mover %d - %d second, %d errors)",
		t.A, t.AWins, t.BWins, t.B, t.P1Wins, t.P2Wins, t.Errors)
}

// WriteReport writes the tally as YAML.
func (t *Tally) WriteReport(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return err
	}
	return enc.Close()
}

// Run plays s.Games games, seat A moving first in the even-numbered ones.
// A cancelled ctx stops unfinished games; finished ones are still tallied.
func Run(ctx context.Context, s Settings, a, b Factory) (*Tally, error) {
	if s.Games < 1 || s.Rows < 1 || s.Cols < 1 {
		return nil, fmt.Errorf("arena: bad settings %+v", s)
	}
	records := make([]GameRecord, s.Games)
	var done atomic.Int32

	var g errgroup.Group
	g.SetLimit(max(s.Concurrency, 1))
	for k := 0; k < s.Games; k++ {
		g.Go(func() error {
			seats := [2]player.Player{a(), b()}
			aFirst := k%2 == 0
			if !aFirst {
				seats[0], seats[1] = seats[1], seats[0]
			}
			rec := playOne(ctx, s, k, seats)
			rec.AFirst = aFirst
			if rec.Colour != "" {
				rec.Winner = winnerSeat(rec.Colour, aFirst).String()
			}
			records[k] = rec

			n := done.Add(1)
			log.Info().Int("game", k).Int("done", int(n)).Int("of", s.Games).
				Str("winner", rec.Winner).Str("error", rec.Err).Msg("arena-game")
			return nil
		})
	}
	_ = g.Wait()

	first := records[0]
	t := &Tally{PerGame: records}
	t.A, t.B = first.Player1, first.Player2
	t.AWins = lo.CountBy(records, func(r GameRecord) bool { return r.Winner == SeatA.String() })
	t.BWins = lo.CountBy(records, func(r GameRecord) bool { return r.Winner == SeatB.String() })
	t.P1Wins = lo.CountBy(records, func(r GameRecord) bool { return r.Colour == game.Player1.String() })
	t.P2Wins = lo.CountBy(records, func(r GameRecord) bool { return r.Colour == game.Player2.String() })
	t.Errors = lo.CountBy(records, func(r GameRecord) bool { return r.Err != "" || r.Colour == "" })
	return t, ctx.Err()
}

func winnerSeat(colour string, aFirst bool) Seat {
	if (colour == game.Player1.String()) == aFirst {
		return SeatA
	}
	return SeatB
}

func playOne(ctx context.Context, s Settings, k int, seats [2]player.Player) GameRecord {
	start := time.Now()
	rec := GameRecord{Index: k, Player1: seats[0].Name(), Player2: seats[1].Name()}
	gs := game.NewGameState(s.Rows, s.Cols)
	gs.SwapRule = s.SwapRule

	if s.Openings > 0 {
		opener := player.NewRandomPlayer(s.Seed + uint64(k) + 1)
		for i := 0; i < s.Openings && !gs.GameOver; i++ {
			pos, err := opener.ChooseTile(ctx, gs)
			if err != nil {
				break
			}
			_ = gs.MakeMove(pos)
		}
	}

	err := PlayGame(ctx, gs, seats)
	rec.Duration = time.Since(start)
	rec.Swapped = gs.Swapped
	rec.Moves = lo.Map(gs.History, func(m game.Move, _ int) string { return m.Pos.String() })
	if err != nil {
		rec.Err = err.Error()
		return rec
	}
	rec.Colour = gs.Winner.String()
	return rec
}

// PlayGame runs gs to the end. seats[0] plays Player1 and seats[1]
// Player2 for the whole game, also after a swap.
func PlayGame(ctx context.Context, gs *game.GameState, seats [2]player.Player) error {
	for !gs.GameOver {
		if err := ctx.Err(); err != nil {
			return err
		}
		seat := seats[gs.CurrentPlayer-game.Player1]
		if gs.CanSwap() {
			claimed := seat.ClaimSwap(ctx, gs.Clone())
			if claimed {
				if err := gs.Swap(); err != nil {
					return err
				}
				log.Debug().Str("player", seat.Name()).Msg("swap-claimed")
				continue
			}
		}
		pos, err := seat.ChooseTile(ctx, gs.Clone())
		if err != nil {
			return fmt.Errorf("%s at turn %d: %w", seat.Name(), gs.Turn, err)
		}
		if err := gs.MakeMove(pos); err != nil {
			return fmt.Errorf("%s at turn %d: %w", seat.Name(), gs.Turn, err)
		}
	}
	return nil
}
