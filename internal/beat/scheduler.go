// Package beat provides the repeating beat timer and the beat window type.
// The scheduler owns nothing but timing: target selection, scoring and
// difficulty belong to the session and difficulty layers.
package beat

import (
	"fmt"
	"sync"
	"time"
)

// TickFunc is invoked once per elapsed beat period. The callback is bound at
// Start, so a caller can tell ticks of different cycles apart.
type TickFunc func()

// Scheduler runs a repeating cycle of a fixed period. After each elapsed
// period it invokes the tick callback and immediately rearms with the
// current duration. Changing the period requires Restart; there is no
// dynamic rearm mid-window.
//
// A generation counter invalidates pending timers on Stop/Restart, so a
// stale timer from a previous cycle can never deliver a tick.
type Scheduler struct {
	mu       sync.Mutex
	gen      uint64
	duration time.Duration
	armedAt  time.Time
	timer    *time.Timer
	onTick   TickFunc
}

// NewScheduler creates a stopped scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Start begins a repeating cycle of period d, invoking onTick each time the
// period elapses. The duration must be strictly positive: flooring is the
// difficulty layer's job, and a non-positive period here is a programmer
// error, so Start panics rather than clamping.
func (s *Scheduler) Start(d time.Duration, onTick TickFunc) {
	if d <= 0 {
		panic(fmt.Sprintf("beat: non-positive duration %v", d))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.duration = d
	s.onTick = onTick
	s.armLocked()
}

// Stop cancels any pending cycle. Idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

// Restart is Stop followed by Start with a new period.
func (s *Scheduler) Restart(d time.Duration, onTick TickFunc) {
	s.Start(d, onTick)
}

// Remaining returns the time left before the next tick, floored at zero.
// Returns zero when the scheduler is stopped.
func (s *Scheduler) Remaining(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer == nil {
		return 0
	}
	rem := s.duration - now.Sub(s.armedAt)
	if rem < 0 {
		rem = 0
	}
	return rem
}

// Running reports whether a cycle is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// cancelLocked invalidates the active generation and stops the timer.
// Callers must hold s.mu.
func (s *Scheduler) cancelLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.onTick = nil
}

// armLocked schedules the next fire for the current generation.
// Callers must hold s.mu.
func (s *Scheduler) armLocked() {
	gen := s.gen
	s.armedAt = time.Now()
	s.timer = time.AfterFunc(s.duration, func() {
		s.fire(gen)
	})
}

// fire delivers one tick if its generation is still current, rearming first
// so the next period is not skewed by callback time. The callback runs
// outside the scheduler lock; callers that stop the scheduler concurrently
// must discriminate cycles through the per-start callback binding.
func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	cb := s.onTick
	s.armLocked()
	s.mu.Unlock()

	if cb != nil {
		cb()
	}
}
