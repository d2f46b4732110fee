package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/baseglide/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Open the menu to play, browse the leaderboard, or change settings.

Settings (player name and sound) are saved to the scores database and used
by every later session.

Controls:
  Up/Down or K/J  - Navigate
  Enter           - Select
  Q/Ctrl+C        - Quit`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	settings := loadSettings(store)
	sound := openSound(settings.SoundEnabled)
	if sound != nil {
		defer sound.Cleanup()
	}

	runErr := tui.RunSession(tui.SessionOptions{
		Config:   cfg,
		Runtime:  runtimeConfig(),
		Store:    store,
		Sound:    sound,
		Settings: settings,
		Persist:  store != nil,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running menu: %v\n", runErr)
		os.Exit(1)
	}
}
