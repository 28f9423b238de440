// Package countdown implements the pre-game 3-2-1-GO sequence.
package countdown

import (
	"sync"
	"time"
)

// Display values outside the 3..1 steps.
const (
	Idle = -1 // No sequence running
	Go   = 0  // Terminal "GO" step
)

// Config holds the step timings. Tests shrink these to run fast.
type Config struct {
	StepHold time.Duration // How long each of 3, 2, 1 is held
	GoHold   time.Duration // How long "GO" is held before completion
}

// DefaultConfig returns the standard countdown pacing.
func DefaultConfig() Config {
	return Config{
		StepHold: time.Second,
		GoHold:   400 * time.Millisecond,
	}
}

// Sequencer runs a cancellable, single-flight countdown: 3, 2, 1, each held
// for the step duration with a step notification, then GO held briefly, then
// the completion callback exactly once. Starting while a run is in flight
// first cancels it, so at most one sequence is ever active and a successful
// run completes exactly once. Cancellation at any point prevents completion
// and resets the display value.
type Sequencer struct {
	mu     sync.Mutex
	cfg    Config
	gen    uint64
	value  int
	timer  *time.Timer
	onStep func(int)
	onDone func()
}

// NewSequencer creates an idle sequencer.
func NewSequencer(cfg Config) *Sequencer {
	return &Sequencer{cfg: cfg, value: Idle}
}

// Start begins a fresh countdown, cancelling any in-flight run. onStep is
// invoked as each value (3, 2, 1, Go) is displayed; onDone fires once after
// the GO hold elapses.
func (s *Sequencer) Start(onStep func(int), onDone func()) {
	s.mu.Lock()
	s.cancelLocked()
	gen := s.gen
	s.onStep = onStep
	s.onDone = onDone
	s.value = 3
	s.timer = time.AfterFunc(s.cfg.StepHold, func() {
		s.advance(gen)
	})
	s.mu.Unlock()

	if onStep != nil {
		onStep(3)
	}
}

// Cancel aborts any in-flight run and resets the display value. Idempotent.
// A cancelled run never invokes its completion callback.
func (s *Sequencer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

// Value returns the currently displayed step: 3, 2, 1, Go, or Idle.
func (s *Sequencer) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Running reports whether a sequence is in flight.
func (s *Sequencer) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// cancelLocked invalidates the active generation. Callers must hold s.mu.
func (s *Sequencer) cancelLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.value = Idle
	s.onStep = nil
	s.onDone = nil
}

// advance moves to the next step if the generation is still current.
func (s *Sequencer) advance(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}

	s.value--
	step := s.onStep
	value := s.value

	if value > Go {
		s.timer = time.AfterFunc(s.cfg.StepHold, func() {
			s.advance(gen)
		})
	} else {
		s.timer = time.AfterFunc(s.cfg.GoHold, func() {
			s.finish(gen)
		})
	}
	s.mu.Unlock()

	if step != nil {
		step(value)
	}
}

// finish completes the run, resetting display state for reuse.
func (s *Sequencer) finish(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	done := s.onDone
	s.cancelLocked()
	s.mu.Unlock()

	if done != nil {
		done()
	}
}
