package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/baseglide/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded rounds and the leaderboard",
	Long: `Display the best recorded rounds, the per-player leaderboard and
overall statistics.

Examples:
  glide scores
  glide scores --limit 25
  glide scores --clear     # Forget recorded rounds, keep the leaderboard`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete recorded rounds")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Recorded rounds cleared.")
		return
	}

	if err := printScores(store, flagLimit); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

func printScores(store *storage.Store, limit int) error {
	scores, err := store.TopScores(limit)
	if err != nil {
		return err
	}
	board, err := store.Leaderboard(limit)
	if err != nil {
		return err
	}
	stats, err := store.GetStats()
	if err != nil {
		return err
	}

	fmt.Println("Top Rounds")
	fmt.Println()
	if len(scores) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'glide play' to set the first high score!")
	} else {
		fmt.Printf("  %-4s  %-10s  %-16s  %s\n", "Rank", "Score", "Player", "When")
		fmt.Printf("  %-4s  %-10s  %-16s  %s\n", "----", "-----", "------", "----")
		for i, entry := range scores {
			player := entry.Player
			if player == "" {
				player = "-"
			}
			fmt.Printf("  %-4d  %-10s  %-16s  %s\n", i+1, humanize.Comma(int64(entry.Score)), player, humanize.Time(entry.CreatedAt))
		}
	}

	if len(board) > 0 {
		fmt.Println()
		fmt.Println("Leaderboard")
		fmt.Println()
		for i, entry := range board {
			fmt.Printf("  %-4s  %-16s  %s\n", humanize.Ordinal(i+1), entry.Player, humanize.Comma(int64(entry.Score)))
		}
	}

	if stats.Rounds > 0 {
		fmt.Println()
		fmt.Printf("Rounds: %s   Best: %s   Average: %.1f   Players: %d   Last played: %s\n",
			humanize.Comma(int64(stats.Rounds)),
			humanize.Comma(int64(stats.HighScore)),
			stats.AvgScore,
			stats.Players,
			humanize.Time(stats.LastPlayed),
		)
	}
	return nil
}
