package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ksamsonov/chromatap/internal/platform/tui"
	"github.com/ksamsonov/chromatap/internal/storage"
)

var (
	flagScoresClear       bool
	flagScoresInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show run history",
	Long: `Display the top 10 runs and aggregate statistics.

Examples:
  chromatap scores
  chromatap scores --interactive
  chromatap scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded runs")
	scoresCmd.Flags().BoolVar(&flagScoresInteractive, "interactive", false, "Browse runs in a full-screen table")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All runs cleared.")
		return
	}

	if flagScoresInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.TopRuns(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Best Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'chromatap play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-7s  %-6s  %-10s  %s\n", "Rank", "Score", "Level", "Tempo", "Date")
	fmt.Printf("  %-4s  %-7s  %-6s  %-10s  %s\n", "----", "-----", "-----", "-----", "----")

	for i, entry := range runs {
		tempoStr := "fixed"
		if entry.TempoMode == "synced" && entry.BPM > 0 {
			tempoStr = fmt.Sprintf("%.0f BPM", entry.BPM)
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-7d  %-6d  %-10s  %s\n", i+1, entry.Score, entry.Level, tempoStr, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetRunStats(); err == nil && stats.RunsCount > 0 {
		fmt.Printf("%d runs, best %d, average %.1f, top level %d\n",
			stats.RunsCount, stats.HighScore, stats.AvgScore, stats.BestLevel)
	}
}
