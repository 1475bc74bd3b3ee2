package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"hex_go/internal/config"
	"hex_go/internal/ui"
)

func main() {
	cfg := config.New()
	fs := flag.NewFlagSet("hex", flag.ContinueOnError)
	mode := fs.String("mode", "", "pve (default), pvp or eve")
	human := fs.String("human", "", "colour the human plays in pve: player1 or player2")
	if err := cfg.LoadWith(fs, os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if *mode != "" {
		cfg.Set(config.ConfigUIMode, *mode)
	}
	if *human != "" {
		cfg.Set(config.ConfigUIHumanSeat, *human)
	}
	config.SetupLogger(cfg.GetBool(config.ConfigLogDebug))
	cfg.LogSettings()

	screen, err := ui.NewGameScreen(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("ui")
	}
	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(60)
	ebiten.SetWindowSize(cfg.GetInt(config.ConfigUIWidth), cfg.GetInt(config.ConfigUIHeight))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Hex")

	if err := ebiten.RunGame(screen); err != nil {
		log.Fatal().Err(err).Msg("run")
	}
}
