// Package difficulty owns score, level and the active palette, and derives
// the beat duration for the current level and tempo mode.
package difficulty

import (
	"math"
	"time"

	"github.com/ksamsonov/chromatap/internal/core"
)

// TempoMode selects how the beat duration is derived. It is chosen once per
// game start and never changes mid-session.
type TempoMode string

const (
	// ModeSynced derives the beat from an estimated track BPM scaled by a
	// per-level factor.
	ModeSynced TempoMode = "synced"
	// ModeFallback derives the beat from a fixed base duration scaled by a
	// per-level factor. Used when no tempo estimate is available.
	ModeFallback TempoMode = "fallback"
)

// Params holds the difficulty progression constants. Values come from the
// game config; DefaultParams returns the canonical tuning.
type Params struct {
	BaseColors        int           // Palette size at reset
	MaxColors         int           // Cap on palette growth
	HitsPerLevel      int           // Score per level step
	BaseDuration      time.Duration // Fallback beat at level 1
	MinDuration       time.Duration // Hard floor on any beat duration
	SyncedLevelStep   float64       // Per-level shrink factor in synced mode
	SyncedFloor       float64       // Floor of the synced level factor
	FallbackLevelStep float64       // Per-level shrink factor in fallback mode
	FallbackFloor     float64       // Floor of the fallback speed factor
}

// DefaultParams returns the canonical difficulty tuning.
func DefaultParams() Params {
	return Params{
		BaseColors:        4,
		MaxColors:         core.TotalColors,
		HitsPerLevel:      5,
		BaseDuration:      time.Second,
		MinDuration:       250 * time.Millisecond,
		SyncedLevelStep:   0.05,
		SyncedFloor:       0.75,
		FallbackLevelStep: 0.1,
		FallbackFloor:     0.35,
	}
}

// Controller tracks score and level within a session and owns the active
// palette. Level and palette size never decrease within a session; the
// palette is always a prefix of the canonical color ordering and is replaced
// wholesale on level-up, never mutated in place.
type Controller struct {
	params  Params
	score   int
	level   int
	palette core.Palette
}

// NewController creates a controller in its reset state.
func NewController(p Params) *Controller {
	c := &Controller{params: p}
	c.Reset()
	return c
}

// Reset returns the controller to the session start state: score 0,
// level 1, baseline palette.
func (c *Controller) Reset() {
	c.score = 0
	c.level = 1
	c.palette = core.PalettePrefix(c.params.BaseColors)
}

// RecordHit increments the score and recomputes the level. Returns true if
// the level changed, in which case the palette has grown as well.
func (c *Controller) RecordHit() (leveledUp bool) {
	c.score++

	newLevel := c.score/c.params.HitsPerLevel + 1
	if newLevel <= c.level {
		return false
	}
	c.level = newLevel

	size := 2 + c.level
	if size > c.params.MaxColors {
		size = c.params.MaxColors
	}
	// Never shrink below the baseline
	if size < c.params.BaseColors {
		size = c.params.BaseColors
	}
	c.palette = core.PalettePrefix(size)
	return true
}

// Score returns the current score.
func (c *Controller) Score() int { return c.score }

// Level returns the current level.
func (c *Controller) Level() int { return c.level }

// Palette returns the active palette. Callers must not mutate it.
func (c *Controller) Palette() core.Palette { return c.palette }

// BeatDuration computes the next beat window duration for the given tempo
// mode. Both paths floor at MinDuration, which guarantees the scheduler's
// strictly-positive precondition. A synced request without a usable BPM
// degrades to the fallback formula.
func (c *Controller) BeatDuration(mode TempoMode, bpm float64) time.Duration {
	var secs float64
	if mode == ModeSynced && bpm > 0 {
		levelFactor := math.Max(c.params.SyncedFloor, 1-float64(c.level-1)*c.params.SyncedLevelStep)
		secs = (60 / bpm) * levelFactor
	} else {
		speedFactor := math.Max(c.params.FallbackFloor, 1-float64(c.level-1)*c.params.FallbackLevelStep)
		secs = c.params.BaseDuration.Seconds() * speedFactor
	}

	d := time.Duration(secs * float64(time.Second))
	if d < c.params.MinDuration {
		d = c.params.MinDuration
	}
	return d
}
