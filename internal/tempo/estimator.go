// Package tempo estimates the tempo of an audio track in beats per minute.
//
// The estimator frames the signal, computes per-frame energy, detects onsets
// as energy rises against a trailing average, and derives the tempo from the
// median inter-onset interval. Its contract is deliberately narrow: given
// audio, produce an approximate BPM or report ErrNotAvailable.
package tempo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/gopxl/beep/wav"
)

// ErrNotAvailable is returned when no stable tempo could be detected.
// Callers fall back to the fixed-tempo mode; this is never a fatal error.
var ErrNotAvailable = errors.New("tempo: no stable tempo detected")

// Estimator produces a BPM estimate from an audio stream.
type Estimator interface {
	Estimate(ctx context.Context, r io.Reader) (float64, error)
}

// Config tunes the onset analysis.
type Config struct {
	FrameSize   int     // Samples per analysis frame
	MinBPM      float64 // Lower bound of the reported range
	MaxBPM      float64 // Upper bound of the reported range
	Sensitivity float64 // Onset threshold multiplier over the trailing average
	MinOnsets   int     // Minimum onsets required for a verdict
}

// DefaultConfig returns the standard analysis tuning.
func DefaultConfig() Config {
	return Config{
		FrameSize:   1024,
		MinBPM:      60,
		MaxBPM:      200,
		Sensitivity: 1.5,
		MinOnsets:   8,
	}
}

// energyFloor rejects onsets in near-silence, where any noise clears a
// trailing average of zero.
const energyFloor = 0.01

// avgWindow is the trailing-average length in frames.
const avgWindow = 8

// OnsetEstimator implements Estimator over WAV audio.
type OnsetEstimator struct {
	cfg Config
}

// NewOnsetEstimator creates an estimator with the given tuning.
func NewOnsetEstimator(cfg Config) *OnsetEstimator {
	if cfg.FrameSize <= 0 {
		cfg.FrameSize = DefaultConfig().FrameSize
	}
	return &OnsetEstimator{cfg: cfg}
}

// Estimate decodes WAV audio from r and returns the detected tempo in BPM.
// Returns ErrNotAvailable when the signal has no stable beat; any decode
// failure is wrapped and returned as-is. The context is checked between
// frames so a timeout cannot leave the caller blocked on a long track.
func (e *OnsetEstimator) Estimate(ctx context.Context, r io.Reader) (float64, error) {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return 0, fmt.Errorf("tempo: decode: %w", err)
	}
	defer streamer.Close()

	frame := make([][2]float64, e.cfg.FrameSize)
	var energies []float64

	for {
		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("tempo: %w", ctx.Err())
		default:
		}

		n, ok := streamer.Stream(frame)
		if n > 0 {
			var sum float64
			for i := 0; i < n; i++ {
				mono := (frame[i][0] + frame[i][1]) / 2
				sum += mono * mono
			}
			energies = append(energies, math.Sqrt(sum/float64(n)))
		}
		if !ok {
			break
		}
	}

	frameDur := float64(e.cfg.FrameSize) / float64(format.SampleRate)
	return e.estimateFromEnergies(energies, frameDur)
}

// estimateFromEnergies runs onset detection over per-frame energies and
// derives the tempo from the median inter-onset interval.
func (e *OnsetEstimator) estimateFromEnergies(energies []float64, frameDur float64) (float64, error) {
	if frameDur <= 0 || len(energies) < avgWindow+2 {
		return 0, ErrNotAvailable
	}

	// Refractory period: two hits faster than MaxBPM are one onset.
	minGap := 60 / e.cfg.MaxBPM

	var onsets []float64
	lastOnset := -minGap
	for i := avgWindow; i < len(energies); i++ {
		var avg float64
		for j := i - avgWindow; j < i; j++ {
			avg += energies[j]
		}
		avg /= avgWindow

		t := float64(i) * frameDur
		rising := energies[i] > energies[i-1]
		if rising && energies[i] > energyFloor && energies[i] > e.cfg.Sensitivity*avg && t-lastOnset >= minGap {
			onsets = append(onsets, t)
			lastOnset = t
		}
	}

	if len(onsets) < e.cfg.MinOnsets {
		return 0, ErrNotAvailable
	}

	intervals := make([]float64, 0, len(onsets)-1)
	for i := 1; i < len(onsets); i++ {
		intervals = append(intervals, onsets[i]-onsets[i-1])
	}
	sort.Float64s(intervals)
	median := intervals[len(intervals)/2]
	if median <= 0 {
		return 0, ErrNotAvailable
	}

	bpm := foldBPM(60/median, e.cfg.MinBPM, e.cfg.MaxBPM)
	if bpm < e.cfg.MinBPM || bpm > e.cfg.MaxBPM {
		return 0, ErrNotAvailable
	}
	return bpm, nil
}

// foldBPM shifts a tempo by octaves until it lands in [min, max].
// Half- and double-time readings of the same beat are equivalent.
func foldBPM(bpm, min, max float64) float64 {
	if bpm <= 0 {
		return bpm
	}
	for bpm < min {
		bpm *= 2
	}
	for bpm > max {
		bpm /= 2
	}
	return bpm
}
