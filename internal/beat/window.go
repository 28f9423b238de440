package beat

import "time"

// Window is one beat's tap window. Created at the start of each beat and
// superseded by the next beat's window; Duration is always positive.
type Window struct {
	StartedAt time.Time
	Duration  time.Duration
}

// NewWindow opens a window of duration d starting at now.
func NewWindow(now time.Time, d time.Duration) Window {
	return Window{StartedAt: now, Duration: d}
}

// Expired reports whether the window has elapsed at the given instant.
// The comparison is a plain monotonic clock difference: no timer needs to
// have fired for expiry to be observable.
func (w Window) Expired(now time.Time) bool {
	return now.Sub(w.StartedAt) >= w.Duration
}

// RemainingFraction returns the unexpired share of the window in [0, 1].
func (w Window) RemainingFraction(now time.Time) float64 {
	if w.Duration <= 0 {
		return 0
	}
	frac := 1 - float64(now.Sub(w.StartedAt))/float64(w.Duration)
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}
