package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ksamsonov/chromatap/internal/config"
	"github.com/ksamsonov/chromatap/internal/core"
	"github.com/ksamsonov/chromatap/internal/platform/sound"
	"github.com/ksamsonov/chromatap/internal/platform/tui"
	"github.com/ksamsonov/chromatap/internal/session"
	"github.com/ksamsonov/chromatap/internal/storage"
	"github.com/ksamsonov/chromatap/internal/tempo"
)

var (
	flagConfig     string
	flagDifficulty string
	flagTrack      string
	flagSound      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round. Press ENTER to begin the countdown, then tap the
number key of the color matching the target before the ring runs out.

Controls:
  1-8        - Tap a palette color
  Enter      - Start from the menu
  R          - Back to menu (after game over)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower base pace, gentler speed-up
  normal - Default tuning
  hard   - Faster base pace, steeper speed-up
  fixed  - No speed-up, pace stays constant

Examples:
  chromatap play
  chromatap play --difficulty hard
  chromatap play --track song.wav --sound
  chromatap play --config ./my-tuning.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagTrack, "track", "", "WAV file to sync the beat to")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play audio cues on beats, hits and misses")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagDifficulty != "" {
		config.ApplyPreset(&cfg, config.DifficultyPreset(flagDifficulty))
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	runtimeCfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}

	// Assemble the notifier chain: the visual flash always runs, tones are
	// added on request.
	flash := tui.NewFlashNotifier()
	notifier := session.MultiNotifier{flash}

	var tones *sound.ToneNotifier
	if flagSound {
		tones = sound.NewToneNotifier()
		if soundErr := tones.Initialize(); soundErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: audio unavailable: %v\n", soundErr)
		} else {
			notifier = append(notifier, tones)
			defer tones.Close()
		}
	}

	sess := session.New(session.Config{
		Difficulty: cfg.DifficultyParams(),
		Countdown:  cfg.CountdownParams(),
		Seed:       seed,
	}, session.WithNotifier(notifier))
	defer sess.Close()

	// Resolve the track tempo before the round starts. On timeout or
	// estimation failure the round simply runs at the fixed cadence.
	if flagTrack != "" {
		bpm, tempoErr := estimateTrackTempo(flagTrack, cfg)
		if tempoErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: no tempo for %s: %v\n", flagTrack, tempoErr)
		} else {
			sess.SetTempoEstimate(bpm)
		}
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(sess, flash, store, runtimeCfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// estimateTrackTempo runs onset detection on the given WAV file, bounded by
// the config's tempo timeout.
func estimateTrackTempo(path string, cfg config.GameConfig) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.TempoTimeout())
	defer cancel()

	est := tempo.NewOnsetEstimator(cfg.TempoParams())
	return est.Estimate(ctx, f)
}
