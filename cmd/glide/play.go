package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/baseglide/internal/core"
	"github.com/vovakirdan/baseglide/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round in the terminal",
	Long: `Start a round straight away in the terminal.

Controls:
  Space/W/Up/Click  - Flap
  P/Esc             - Pause
  R/Enter           - Retry (after game over)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Speed-up starts at 40 points
  normal - Speed-up starts at 25 points
  hard   - Speed-up starts at 10 points
  fixed  - No progression

Examples:
  glide play
  glide play --difficulty easy
  glide play --config ./my-glide.yaml --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

// runtimeConfig sizes the surface to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	settings := loadSettings(store)
	opts := tui.GameOptions{
		Config:  cfg,
		Runtime: runtimeConfig(),
		Store:   store,
		Player:  settings.PlayerName,
	}
	if sound := openSound(settings.SoundEnabled); sound != nil {
		defer sound.Cleanup()
		opts.Sound = sound
	}

	runErr := tui.RunGame(opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
