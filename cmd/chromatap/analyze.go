package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ksamsonov/chromatap/internal/config"
	"github.com/ksamsonov/chromatap/internal/tempo"
)

var flagAnalyzeTimeout int

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.wav>",
	Short: "Estimate the tempo of a WAV file",
	Long: `Run onset detection over a WAV file and print the estimated tempo.
This is the same estimator 'play --track' uses to sync the beat.

Examples:
  chromatap analyze song.wav
  chromatap analyze song.wav --timeout 10`,
	Args: cobra.ExactArgs(1),
	Run:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&flagAnalyzeTimeout, "timeout", 30, "Analysis timeout in seconds")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(flagAnalyzeTimeout)*time.Second)
	defer cancel()

	est := tempo.NewOnsetEstimator(config.DefaultGameConfig().TempoParams())

	start := time.Now()
	bpm, err := est.Estimate(ctx, f)
	if err != nil {
		if errors.Is(err, tempo.ErrNotAvailable) {
			fmt.Fprintf(os.Stderr, "No stable tempo found in %s\n", path)
		} else {
			fmt.Fprintf(os.Stderr, "Error analyzing %s: %v\n", path, err)
		}
		os.Exit(1)
	}

	fmt.Printf("%s: %.1f BPM (analyzed in %v)\n", path, bpm, time.Since(start).Round(time.Millisecond))
	fmt.Printf("Beat interval: %.0f ms\n", 60000/bpm)
}
