package session

import (
	"time"

	"github.com/ksamsonov/chromatap/internal/core"
	"github.com/ksamsonov/chromatap/internal/countdown"
	"github.com/ksamsonov/chromatap/internal/difficulty"
)

// Snapshot is the read model handed to the rendering surface: everything it
// needs to draw one frame, captured atomically.
type Snapshot struct {
	State             State
	Score             int
	Level             int
	Target            core.Color
	Palette           core.Palette
	RemainingFraction float64
	Duration          time.Duration
	TempoMode         difficulty.TempoMode
	BPM               float64
	Countdown         int // countdown.Idle outside the counting phase
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:     s.state,
		Score:     s.diff.Score(),
		Level:     s.diff.Level(),
		Palette:   s.diff.Palette().Clone(),
		TempoMode: s.mode,
		BPM:       s.bpm,
		Countdown: countdown.Idle,
	}

	switch s.state {
	case StatePlaying:
		snap.Target = s.target
		snap.Duration = s.duration
		snap.RemainingFraction = s.window.RemainingFraction(s.now())
	case StateCountingDown:
		snap.Countdown = s.seq.Value()
	}
	return snap
}
