package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/baseglide/internal/platform/window"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a desktop window and play with the keyboard, mouse or touch.

The window size comes from the window section of the config; the playfield
follows the window when it is resized. --fps sets the update rate; motion
is scaled by elapsed time, so the game speed does not change with it.

Controls:
  Space/W/Up/Click/Tap  - Flap (also starts a round)
  P/Esc                 - Pause
  R/Enter               - Retry (after game over)
  B                     - Reset (while paused or after game over)
  Q                     - Quit`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func runWindow(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	settings := loadSettings(store)
	opts := window.Options{
		Config: cfg,
		Seed:   flagSeed,
		Ticks:  flagFPS,
		Store:  store,
		Player: settings.PlayerName,
		Logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "glide",
		}),
	}
	if sound := openSound(settings.SoundEnabled); sound != nil {
		defer sound.Cleanup()
		opts.Sound = sound
	}

	runErr := window.Run(opts)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running window: %v\n", runErr)
		os.Exit(1)
	}
}
