package main

import (
	"flag"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"

	"hex_go/internal/config"
	"hex_go/internal/shell"
)

func main() {
	cfg := config.New()
	fs := flag.NewFlagSet("hexshell", flag.ContinueOnError)
	cpuProfile := fs.String("cpu-profile", "", "write a CPU profile to this file")
	if err := cfg.LoadWith(fs, os.Args[1:]); err != nil {
		os.Exit(2)
	}
	config.SetupLogger(cfg.GetBool(config.ConfigLogDebug))
	cfg.LogSettings()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	done := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Debug().Msg("got quit signal...")
		close(done)
	}()

	sc, err := shell.NewShellController(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("readline")
	}
	// 命令行上剩下的参数当作一条命令执行，例如 hexshell -rows 7 autoplay
	if line := strings.TrimSpace(strings.Join(fs.Args(), " ")); line != "" {
		sc.Execute(line)
		sig <- syscall.SIGINT
	} else {
		go sc.Loop(sig)
	}

	<-done
	log.Debug().Msg("bye")
}
