package beat

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedulerTicksRepeat(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	var ticks atomic.Int64
	s.Start(20*time.Millisecond, func() {
		ticks.Add(1)
	})

	time.Sleep(130 * time.Millisecond)
	s.Stop()

	got := ticks.Load()
	if got < 3 {
		t.Errorf("expected at least 3 ticks in 130ms at 20ms period, got %d", got)
	}
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	s := NewScheduler()

	var ticks atomic.Int64
	s.Start(10*time.Millisecond, func() {
		ticks.Add(1)
	})

	s.Stop()
	s.Stop() // Second stop must be a no-op

	before := ticks.Load()
	time.Sleep(60 * time.Millisecond)
	if after := ticks.Load(); after != before {
		t.Errorf("ticks delivered after Stop: before=%d after=%d", before, after)
	}
	if s.Running() {
		t.Error("scheduler should not be running after Stop")
	}
}

func TestSchedulerRestartDropsStaleCycle(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	var oldTicks, newTicks atomic.Int64
	s.Start(60*time.Millisecond, func() {
		oldTicks.Add(1)
	})

	// Restart well before the first period elapses: the old cycle must
	// never deliver.
	time.Sleep(10 * time.Millisecond)
	s.Restart(30*time.Millisecond, func() {
		newTicks.Add(1)
	})

	time.Sleep(110 * time.Millisecond)
	s.Stop()

	if got := oldTicks.Load(); got != 0 {
		t.Errorf("stale cycle delivered %d ticks after restart", got)
	}
	if got := newTicks.Load(); got < 2 {
		t.Errorf("expected at least 2 ticks from the new cycle, got %d", got)
	}
}

func TestSchedulerRemaining(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	if rem := s.Remaining(time.Now()); rem != 0 {
		t.Errorf("stopped scheduler should report 0 remaining, got %v", rem)
	}

	s.Start(time.Second, func() {})
	rem := s.Remaining(time.Now())
	if rem <= 0 || rem > time.Second {
		t.Errorf("remaining out of range: %v", rem)
	}

	// Far in the future the value floors at zero
	if rem := s.Remaining(time.Now().Add(5 * time.Second)); rem != 0 {
		t.Errorf("remaining should floor at zero, got %v", rem)
	}
}

func TestSchedulerRejectsNonPositiveDuration(t *testing.T) {
	s := NewScheduler()
	defer func() {
		if recover() == nil {
			t.Error("Start with zero duration should panic")
		}
	}()
	s.Start(0, func() {})
}

func TestWindowExpiry(t *testing.T) {
	start := time.Now()
	w := NewWindow(start, time.Second)

	if w.Expired(start) {
		t.Error("window should not be expired at its start")
	}
	if w.Expired(start.Add(999 * time.Millisecond)) {
		t.Error("window should not be expired before the duration elapses")
	}
	if !w.Expired(start.Add(time.Second)) {
		t.Error("window should be expired exactly at the duration boundary")
	}
	if !w.Expired(start.Add(2 * time.Second)) {
		t.Error("window should stay expired after the boundary")
	}
}

func TestWindowRemainingFraction(t *testing.T) {
	start := time.Now()
	w := NewWindow(start, time.Second)

	if got := w.RemainingFraction(start); got != 1 {
		t.Errorf("fraction at start = %v, expected 1", got)
	}
	got := w.RemainingFraction(start.Add(500 * time.Millisecond))
	if got < 0.49 || got > 0.51 {
		t.Errorf("fraction at midpoint = %v, expected ~0.5", got)
	}
	if got := w.RemainingFraction(start.Add(2 * time.Second)); got != 0 {
		t.Errorf("fraction past expiry = %v, expected 0", got)
	}
}
