package tui

import (
	"sync"
	"time"
)

// FlashKind identifies the cue a flash represents.
type FlashKind int

const (
	FlashNone FlashKind = iota
	FlashTick
	FlashSuccess
	FlashFailure
	FlashStart
)

// Flash durations per kind. Ticks are subtle, outcomes linger.
const (
	tickFlashDuration    = 80 * time.Millisecond
	outcomeFlashDuration = 250 * time.Millisecond
)

// FlashNotifier is the visual stand-in for haptics: it records the last cue
// so the view can flash the frame on the next render. All methods are
// non-blocking and safe to call from timer goroutines.
type FlashNotifier struct {
	mu   sync.Mutex
	kind FlashKind
	at   time.Time
}

// NewFlashNotifier creates an idle flash notifier.
func NewFlashNotifier() *FlashNotifier {
	return &FlashNotifier{}
}

func (f *FlashNotifier) record(kind FlashKind) {
	f.mu.Lock()
	f.kind = kind
	f.at = time.Now()
	f.mu.Unlock()
}

func (f *FlashNotifier) NotifyTick()    { f.record(FlashTick) }
func (f *FlashNotifier) NotifySuccess() { f.record(FlashSuccess) }
func (f *FlashNotifier) NotifyFailure() { f.record(FlashFailure) }
func (f *FlashNotifier) NotifyStart()   { f.record(FlashStart) }

// Active returns the cue currently being flashed, or FlashNone once the
// cue's display window has passed.
func (f *FlashNotifier) Active(now time.Time) FlashKind {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.kind == FlashNone {
		return FlashNone
	}

	d := outcomeFlashDuration
	if f.kind == FlashTick {
		d = tickFlashDuration
	}
	if now.Sub(f.at) > d {
		return FlashNone
	}
	return f.kind
}
