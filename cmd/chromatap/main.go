// chromatap is a terminal rhythm game: tap the color matching the target
// before the countdown ring runs out.
//
// Usage:
//
//	chromatap play            - Play a round
//	chromatap scores          - Show run history
//	chromatap analyze <wav>   - Estimate the tempo of a WAV file
//	chromatap serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set UI refresh rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible target sequences
//	--db <path>     - Set database path (default: ~/.chromatap/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chromatap",
	Short: "Chromatap - a color reaction game for your terminal",
	Long: `Chromatap shows a target color and an emptying countdown ring.
Tap the matching color key before the ring runs out; each hit scores a
point, every few hits the pace quickens and new colors join the palette.
Point it at a music file and the ring follows the track's tempo.

Available commands:
  play     - Play a round
  scores   - View run history and statistics
  analyze  - Estimate the tempo of a WAV file
  serve    - Start SSH server for remote play

Examples:
  chromatap play
  chromatap play --track song.wav --sound
  chromatap scores
  chromatap analyze song.wav
  chromatap serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "UI refresh rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.chromatap/runs.db", "Path to runs database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
}
