// Package session ties the beat scheduler, difficulty controller, target
// selector and countdown sequencer into the game's state machine.
package session

import (
	"sync"
	"time"

	"github.com/ksamsonov/chromatap/internal/beat"
	"github.com/ksamsonov/chromatap/internal/core"
	"github.com/ksamsonov/chromatap/internal/countdown"
	"github.com/ksamsonov/chromatap/internal/difficulty"
	"github.com/ksamsonov/chromatap/internal/target"
)

// State is the session's lifecycle phase. Menu and GameOver are both
// re-enterable; there are no terminal states.
type State string

const (
	StateMenu         State = "menu"
	StateCountingDown State = "counting_down"
	StatePlaying      State = "playing"
	StateGameOver     State = "game_over"
)

// Config assembles the session's collaborators.
type Config struct {
	Difficulty difficulty.Params
	Countdown  countdown.Config
	Seed       int64
}

// Option customizes a session at construction.
type Option func(*Session)

// WithNotifier installs the haptic/audio notifier.
func WithNotifier(n Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithClock overrides the wall-clock source. Tests use this to drive window
// expiry deterministically.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session is the single owner of all game state. Every mutation of
// score/level/palette/target happens under one mutex, so beat ticks, tap
// events and expiry polls are serialized. An epoch counter, bumped on every
// phase change that invalidates scheduled work, keeps a late-firing timer
// from a previous run from ever touching current state.
type Session struct {
	mu  sync.Mutex
	now func() time.Time

	state State
	epoch uint64

	diff      *difficulty.Controller
	selector  *target.Selector
	scheduler *beat.Scheduler
	seq       *countdown.Sequencer
	notifier  Notifier

	mode     difficulty.TempoMode
	bpm      float64
	hasTempo bool

	target   core.Color
	window   beat.Window
	duration time.Duration
}

// New creates a session in the menu state.
func New(cfg Config, opts ...Option) *Session {
	s := &Session{
		now:       time.Now,
		state:     StateMenu,
		diff:      difficulty.NewController(cfg.Difficulty),
		selector:  target.NewSelector(cfg.Seed),
		scheduler: beat.NewScheduler(),
		seq:       countdown.NewSequencer(cfg.Countdown),
		notifier:  NopNotifier{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetTempoEstimate supplies a resolved tempo estimate. The estimate is
// consumed at the next game start; the tempo mode never changes mid-session.
func (s *Session) SetTempoEstimate(bpm float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if bpm > 0 {
		s.bpm = bpm
		s.hasTempo = true
	}
}

// ClearTempoEstimate reverts future starts to the fallback tempo mode.
func (s *Session) ClearTempoEstimate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bpm = 0
	s.hasTempo = false
}

// StartRequest begins the pre-game countdown. Only valid from the menu;
// returns false otherwise.
func (s *Session) StartRequest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateMenu {
		return false
	}
	s.state = StateCountingDown
	s.epoch++
	epoch := s.epoch

	s.seq.Start(
		func(int) { s.notifier.NotifyTick() },
		func() { s.enterPlaying(epoch) },
	)
	return true
}

// enterPlaying is the countdown completion callback: it resolves the tempo
// mode, resets difficulty, opens the first beat window and starts the
// scheduler. A stale completion from a superseded run is discarded.
func (s *Session) enterPlaying(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch || s.state != StateCountingDown {
		return
	}

	s.diff.Reset()
	if s.hasTempo {
		s.mode = difficulty.ModeSynced
	} else {
		s.mode = difficulty.ModeFallback
	}

	s.duration = s.diff.BeatDuration(s.mode, s.bpm)
	s.target = s.selector.Next(s.diff.Palette())
	s.window = beat.NewWindow(s.now(), s.duration)
	s.state = StatePlaying

	s.scheduler.Start(s.duration, func() { s.handleBeatTick(epoch) })
	s.notifier.NotifyStart()
}

// handleBeatTick runs once per scheduler period. The scheduler's own
// generation counter drops ticks cancelled at the timer level; the epoch
// check here additionally drops a tick that was already in flight when the
// session moved on.
func (s *Session) handleBeatTick(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch || s.state != StatePlaying {
		return
	}

	s.notifier.NotifyTick()
	if s.window.Expired(s.now()) {
		s.gameOverLocked()
	}
}

// Tap handles a color tap. Taps outside the playing state are ignored.
func (s *Session) Tap(c core.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tapLocked(c)
}

// TapSlot taps the color at the given palette position. Out-of-range slots
// are ignored, as are taps outside the playing state.
func (s *Session) TapSlot(slot int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	palette := s.diff.Palette()
	if slot < 0 || slot >= len(palette) {
		return
	}
	s.tapLocked(palette[slot])
}

// tapLocked applies one tap. Callers must hold s.mu.
func (s *Session) tapLocked(c core.Color) {
	if s.state != StatePlaying {
		return
	}

	if c != s.target {
		s.gameOverLocked()
		return
	}

	leveledUp := s.diff.RecordHit()
	s.notifier.NotifySuccess()

	if leveledUp {
		// The hit is recorded before the scheduler restarts, so the
		// pending tick of the old cadence can never turn it into a miss.
		s.duration = s.diff.BeatDuration(s.mode, s.bpm)
		epoch := s.epoch
		s.scheduler.Restart(s.duration, func() { s.handleBeatTick(epoch) })
	}

	s.target = s.selector.Next(s.diff.Palette())
	s.window = beat.NewWindow(s.now(), s.duration)
}

// HasExpired reports whether the current beat window has elapsed at the
// given instant, without changing state. False outside the playing state.
func (s *Session) HasExpired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StatePlaying && s.window.Expired(now)
}

// CheckExpiry is the authoritative miss check, driven by the platform's
// refresh loop independently of scheduler ticks. Transitions to game over
// and returns true when the window has elapsed.
func (s *Session) CheckExpiry(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying || !s.window.Expired(now) {
		return false
	}
	s.gameOverLocked()
	return true
}

// RestartRequest returns to the menu after a game over. Returns false in
// any other state.
func (s *Session) RestartRequest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateGameOver {
		return false
	}
	s.state = StateMenu
	s.epoch++
	s.scheduler.Stop()
	s.seq.Cancel()
	return true
}

// Close releases timer resources. The session is unusable afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.scheduler.Stop()
	s.seq.Cancel()
}

// gameOverLocked ends the run. Callers must hold s.mu.
func (s *Session) gameOverLocked() {
	s.state = StateGameOver
	s.epoch++
	s.scheduler.Stop()
	s.seq.Cancel()
	s.notifier.NotifyFailure()
}
