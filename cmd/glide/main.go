// glide is a one-button glider game for the terminal, a desktop window,
// or an SSH server.
//
// Usage:
//
//	glide play               - Play a round right away
//	glide menu               - Start the menu with leaderboard and settings
//	glide window             - Play in a desktop window
//	glide serve              - Start SSH server for remote play
//	glide scores             - Show recorded rounds and the leaderboard
//	glide config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gap placement
//	--db <path>           - Set database path (default: ~/.glide/scores.db)
//	--config <path>       - Load a custom config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--mute                - Disable sound
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/baseglide/internal/audio"
	"github.com/vovakirdan/baseglide/internal/config"
	"github.com/vovakirdan/baseglide/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagMute       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "glide",
	Short: "Base Glide - a one-button glider between candle columns",
	Long: `Base Glide is a one-button game: keep the glider airborne and slip
through the gaps between candle columns. Every column passed scores a point
and the game speeds up as the score grows.

Available commands:
  play     - Play a round in the terminal
  menu     - Menu with leaderboard and settings
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View recorded rounds and the leaderboard
  config   - Print the effective configuration

Examples:
  glide play
  glide play --difficulty hard
  glide menu
  glide window
  glide serve --ssh :2222
  glide scores`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.glide/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the configuration file and applies the difficulty
// preset. Without --difficulty the file's own progression settings stay.
func loadConfig() (config.GlideConfig, error) {
	cfg, err := config.LoadGlide(flagConfig)
	if err != nil {
		return config.GlideConfig{}, err
	}
	if flagDifficulty == "" {
		return cfg, nil
	}

	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return config.GlideConfig{}, fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
	}
	config.ApplyGlidePreset(&cfg, preset)
	return cfg, nil
}

// openStore opens the scores database. A failure is logged and the game
// continues without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open scores database, scores will not be saved", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// loadSettings reads persisted settings, falling back to defaults.
func loadSettings(store *storage.Store) storage.Settings {
	if store == nil {
		return storage.DefaultSettings()
	}
	settings, err := store.LoadSettings()
	if err != nil {
		log.Warn("could not load settings", "err", err)
		return storage.DefaultSettings()
	}
	return settings
}

// openSound initializes the speaker. It returns nil when muted or when no
// audio device is available, in which case the game runs silently.
func openSound(enabled bool) *audio.SoundManager {
	if flagMute {
		return nil
	}
	sound := audio.NewSoundManager()
	if err := sound.Initialize(); err != nil {
		log.Warn("audio unavailable, running silently", "err", err)
		return nil
	}
	sound.SetEnabled(enabled)
	return sound
}
