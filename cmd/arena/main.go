// cmd/arena/main.go
// 两个玩家对战若干局，轮流先手，统计胜负并可写出 YAML 报告
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"hex_go/internal/arena"
	"hex_go/internal/config"
	"hex_go/internal/game"
	"hex_go/internal/player"
)

func main() {
	cfg := config.New()
	fs := flag.NewFlagSet("arena", flag.ContinueOnError)
	def := arena.DefaultSettings()
	var (
		games       = fs.Int("games", def.Games, "number of games")
		concurrency = fs.Int("concurrency", def.Concurrency, "games played at once")
		openings    = fs.Int("openings", def.Openings, "random plies before the players take over")
		kindA       = fs.String("a", "ai", "player A: ai or random")
		kindB       = fs.String("b", "random", "player B: ai or random")
		depthB      = fs.Int("depth-b", 0, "search depth for an ai B, 0 = same as -depth")
		movetimeB   = fs.Int("movetime-b", -1, "time budget in ms for an ai B, -1 = same as -movetime")
		report      = fs.String("report", "", "write a YAML report to this file")
	)
	if err := cfg.LoadWith(fs, os.Args[1:]); err != nil {
		os.Exit(2)
	}
	config.SetupLogger(cfg.GetBool(config.ConfigLogDebug))
	cfg.LogSettings()

	rows, cols := cfg.BoardSize()
	s := arena.Settings{
		Games:       *games,
		Rows:        rows,
		Cols:        cols,
		Concurrency: *concurrency,
		Openings:    *openings,
		SwapRule:    cfg.GetBool(config.ConfigGameSwapRule),
		Seed:        cfg.Seed(),
	}

	optsB := cfg.SearchSettings()
	if *depthB > 0 {
		optsB.Limits = optsB.Limits.SetDepth(*depthB)
	}
	if *movetimeB >= 0 {
		optsB.Limits = optsB.Limits.SetMovetime(time.Duration(*movetimeB) * time.Millisecond)
	}
	a, err := factory(*kindA, cfg.SearchSettings(), s.Seed+1)
	if err != nil {
		log.Fatal().Err(err).Msg("player A")
	}
	b, err := factory(*kindB, optsB, s.Seed+2)
	if err != nil {
		log.Fatal().Err(err).Msg("player B")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	tally, err := arena.Run(ctx, s, a, b)
	if tally == nil {
		log.Fatal().Err(err).Msg("arena")
	}
	if err != nil {
		log.Error().Err(err).Msg("arena stopped early")
	}
	fmt.Println(tally.String())
	log.Info().Dur("elapsed", time.Since(start)).Msg("arena-done")

	if *report != "" {
		f, err := os.Create(*report)
		if err != nil {
			log.Fatal().Err(err).Msg("report")
		}
		defer f.Close()
		if err := tally.WriteReport(f); err != nil {
			log.Fatal().Err(err).Msg("report")
		}
	}
}

// factory 每局新建玩家；电脑各自带引擎和缓存，互不共享
func factory(kind string, opts game.Options, seed uint64) (arena.Factory, error) {
	switch kind {
	case "ai":
		return func() player.Player {
			return player.NewAIPlayer(game.NewEngine(game.WithOptions(opts)))
		}, nil
	case "random":
		var n atomic.Uint64
		return func() player.Player {
			return player.NewRandomPlayer(seed*1000 + n.Add(1))
		}, nil
	}
	return nil, fmt.Errorf("unknown player kind %q", kind)
}
