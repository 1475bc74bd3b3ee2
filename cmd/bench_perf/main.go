// cmd/bench_perf/main.go
// 固定深度的机机整局对弈，写 CPU profile，并报告节点数、缓存命中率和耗时
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog/log"

	"hex_go/internal/config"
	"hex_go/internal/game"
)

func main() {
	cfg := config.New()
	fs := flag.NewFlagSet("bench_perf", flag.ContinueOnError)
	profile := fs.String("cpu-profile", "cpu_hex.prof", "CPU profile output, empty = none")
	maxMoves := fs.Int("max-moves", 0, "stop after this many moves, 0 = play to the end")
	if err := cfg.LoadWith(fs, os.Args[1:]); err != nil {
		os.Exit(2)
	}
	config.SetupLogger(cfg.GetBool(config.ConfigLogDebug))

	if *profile != "" {
		f, err := os.Create(*profile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	rows, cols := cfg.BoardSize()
	opts := cfg.SearchSettings()
	engine := game.NewEngine(game.WithOptions(opts))
	st := game.NewGameState(rows, cols)
	fmt.Printf("Full game %dx%d, %s, %d worker(s)\n", rows, cols, opts.Limits, max(opts.Workers, 1))

	var nodes uint64
	start := time.Now()
	for i := 0; !st.GameOver && (*maxMoves == 0 || i < *maxMoves); i++ {
		res := engine.Search(context.Background(), st.Board, st.CurrentPlayer)
		if !res.OK {
			fmt.Println("No legal moves, stopping.")
			break
		}
		nodes += res.Nodes
		fmt.Printf("Move %3d  %-8v %-4v score %8d  depth %d  nodes %9d  %v (%v)\n",
			i+1, st.CurrentPlayer, res.Move, res.Score, res.Depth, res.Nodes, res.Elapsed.Round(time.Microsecond), res.Stop)
		if err := st.MakeMove(res.Move); err != nil {
			log.Fatal().Err(err).Msg("engine played an illegal move")
		}
	}
	elapsed := time.Since(start)

	stats := engine.Cache().Stats()
	fmt.Printf("Winner: %v after %d moves\n", st.Winner, len(st.History))
	fmt.Printf("Total time %v, %d nodes (%.0f nodes/s)\n", elapsed, nodes, float64(nodes)/elapsed.Seconds())
	fmt.Printf("Cache: %d entries, hit rate %.1f%% (%d hits, %d misses, %d evictions)\n",
		engine.Cache().Len(), 100*stats.HitRate(), stats.Hits, stats.Misses, stats.Evictions)
	if *profile != "" {
		fmt.Printf("Profile saved to %s. Run 'go tool pprof -http=:8080 %s' to view it.\n", *profile, *profile)
	}
}
