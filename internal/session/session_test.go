package session

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ksamsonov/chromatap/internal/core"
	"github.com/ksamsonov/chromatap/internal/countdown"
	"github.com/ksamsonov/chromatap/internal/difficulty"
)

// fakeClock is a controllable time source for expiry tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// countNotifier records notification counts.
type countNotifier struct {
	ticks, successes, failures, starts atomic.Int64
}

func (n *countNotifier) NotifyTick()    { n.ticks.Add(1) }
func (n *countNotifier) NotifySuccess() { n.successes.Add(1) }
func (n *countNotifier) NotifyFailure() { n.failures.Add(1) }
func (n *countNotifier) NotifyStart()   { n.starts.Add(1) }

func testConfig() Config {
	return Config{
		Difficulty: difficulty.DefaultParams(),
		Countdown: countdown.Config{
			StepHold: 5 * time.Millisecond,
			GoHold:   5 * time.Millisecond,
		},
		Seed: 1,
	}
}

// slowConfig uses an hour-long beat so real scheduler ticks cannot fire
// during a test; expiry is driven entirely through the injected clock.
func slowConfig() Config {
	cfg := testConfig()
	cfg.Difficulty.BaseDuration = time.Hour
	return cfg
}

func waitForState(t *testing.T, s *Session, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.Snapshot().State == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for state %q, still %q", want, s.Snapshot().State)
}

func startPlaying(t *testing.T, s *Session) {
	t.Helper()
	if !s.StartRequest() {
		t.Fatal("StartRequest refused from menu")
	}
	waitForState(t, s, StatePlaying)
}

// wrongColor picks a palette color different from the current target.
func wrongColor(t *testing.T, snap Snapshot) core.Color {
	t.Helper()
	for _, c := range snap.Palette {
		if c != snap.Target {
			return c
		}
	}
	t.Fatal("palette has no non-target color")
	return 0
}

func TestInitialState(t *testing.T) {
	s := New(testConfig())
	defer s.Close()

	snap := s.Snapshot()
	if snap.State != StateMenu {
		t.Errorf("initial state = %q, expected menu", snap.State)
	}
	if snap.Score != 0 || snap.Level != 1 {
		t.Errorf("initial score/level = %d/%d, expected 0/1", snap.Score, snap.Level)
	}
	if len(snap.Palette) != 4 {
		t.Errorf("initial palette size = %d, expected 4", len(snap.Palette))
	}
}

func TestTapIgnoredInMenu(t *testing.T) {
	s := New(testConfig())
	defer s.Close()

	s.Tap(core.ColorRed)
	snap := s.Snapshot()
	if snap.State != StateMenu || snap.Score != 0 {
		t.Errorf("tap in menu changed state: %+v", snap)
	}
}

func TestStartRunsCountdownThenPlays(t *testing.T) {
	s := New(testConfig())
	defer s.Close()

	if !s.StartRequest() {
		t.Fatal("StartRequest refused from menu")
	}
	if snap := s.Snapshot(); snap.State != StateCountingDown {
		t.Errorf("state after start = %q, expected counting_down", snap.State)
	}
	if s.StartRequest() {
		t.Error("StartRequest should be refused while counting down")
	}

	waitForState(t, s, StatePlaying)

	snap := s.Snapshot()
	if !snap.Palette.Contains(snap.Target) {
		t.Errorf("target %v not in palette %v", snap.Target, snap.Palette)
	}
	if snap.Duration != time.Second {
		t.Errorf("first beat duration = %v, expected 1s fallback", snap.Duration)
	}
	if snap.TempoMode != difficulty.ModeFallback {
		t.Errorf("tempo mode = %q, expected fallback", snap.TempoMode)
	}
}

func TestCorrectTapScoresAndNeverEndsGame(t *testing.T) {
	n := &countNotifier{}
	s := New(slowConfig(), WithNotifier(n))
	defer s.Close()
	startPlaying(t, s)

	for i := 1; i <= 4; i++ {
		s.Tap(s.Snapshot().Target)
		snap := s.Snapshot()
		if snap.State != StatePlaying {
			t.Fatalf("correct tap %d ended the game", i)
		}
		if snap.Score != i {
			t.Fatalf("score after %d correct taps = %d", i, snap.Score)
		}
	}

	if n.successes.Load() != 4 {
		t.Errorf("success notifications = %d, expected 4", n.successes.Load())
	}
	if n.failures.Load() != 0 {
		t.Errorf("failure notifications = %d, expected 0", n.failures.Load())
	}
	if n.starts.Load() != 1 {
		t.Errorf("start notifications = %d, expected 1", n.starts.Load())
	}
}

func TestWrongTapEndsGameWithoutScoring(t *testing.T) {
	n := &countNotifier{}
	s := New(slowConfig(), WithNotifier(n))
	defer s.Close()
	startPlaying(t, s)

	s.Tap(wrongColor(t, s.Snapshot()))

	snap := s.Snapshot()
	if snap.State != StateGameOver {
		t.Fatalf("state after wrong tap = %q, expected game_over", snap.State)
	}
	if snap.Score != 0 {
		t.Errorf("wrong tap changed score to %d", snap.Score)
	}
	if n.failures.Load() != 1 {
		t.Errorf("failure notifications = %d, expected 1", n.failures.Load())
	}
}

func TestTapIgnoredAfterGameOver(t *testing.T) {
	s := New(slowConfig())
	defer s.Close()
	startPlaying(t, s)

	s.Tap(wrongColor(t, s.Snapshot()))
	s.Tap(s.Snapshot().Target) // Stale tap arriving late

	if snap := s.Snapshot(); snap.State != StateGameOver || snap.Score != 0 {
		t.Errorf("tap after game over changed state: %+v", snap)
	}
}

func TestLevelUpRecomputesDuration(t *testing.T) {
	s := New(testConfig())
	defer s.Close()
	startPlaying(t, s)

	for i := 0; i < 5; i++ {
		s.Tap(s.Snapshot().Target)
	}

	snap := s.Snapshot()
	if snap.Level != 2 {
		t.Fatalf("level after 5 hits = %d, expected 2", snap.Level)
	}
	if snap.Duration != 900*time.Millisecond {
		t.Errorf("duration after level-up = %v, expected 900ms", snap.Duration)
	}
	if len(snap.Palette) != 4 {
		t.Errorf("palette size at level 2 = %d, expected 4", len(snap.Palette))
	}
	if snap.State != StatePlaying {
		t.Error("level-up must not end the game")
	}
}

func TestSyncedTempoMode(t *testing.T) {
	s := New(testConfig())
	defer s.Close()

	s.SetTempoEstimate(120)
	startPlaying(t, s)

	snap := s.Snapshot()
	if snap.TempoMode != difficulty.ModeSynced {
		t.Fatalf("tempo mode = %q, expected synced", snap.TempoMode)
	}
	if snap.Duration != 500*time.Millisecond {
		t.Errorf("synced duration at 120 BPM = %v, expected 500ms", snap.Duration)
	}
	if snap.BPM != 120 {
		t.Errorf("snapshot BPM = %v, expected 120", snap.BPM)
	}
}

func TestExpiryIsAuthoritative(t *testing.T) {
	clock := newFakeClock()
	s := New(slowConfig(), WithClock(clock.Now))
	defer s.Close()
	startPlaying(t, s)

	// Just short of the window: not expired
	clock.Advance(time.Hour - time.Millisecond)
	if s.HasExpired(clock.Now()) {
		t.Fatal("window reported expired before its duration elapsed")
	}
	if s.CheckExpiry(clock.Now()) {
		t.Fatal("CheckExpiry ended the game early")
	}

	// At the boundary: expired
	clock.Advance(time.Millisecond)
	if !s.HasExpired(clock.Now()) {
		t.Fatal("window not expired at the duration boundary")
	}
	if !s.CheckExpiry(clock.Now()) {
		t.Fatal("CheckExpiry did not report the miss")
	}
	if snap := s.Snapshot(); snap.State != StateGameOver {
		t.Errorf("state after expiry = %q, expected game_over", snap.State)
	}
}

func TestCorrectTapResetsWindow(t *testing.T) {
	clock := newFakeClock()
	s := New(slowConfig(), WithClock(clock.Now))
	defer s.Close()
	startPlaying(t, s)

	// Tap near the end of the window; the new window must start fresh.
	clock.Advance(time.Hour - time.Second)
	s.Tap(s.Snapshot().Target)

	clock.Advance(2 * time.Second)
	if s.HasExpired(clock.Now()) {
		t.Error("window should have been reset by the correct tap")
	}

	clock.Advance(time.Hour)
	if !s.HasExpired(clock.Now()) {
		t.Error("reset window should still expire eventually")
	}
}

func TestRestartReturnsToMenu(t *testing.T) {
	s := New(slowConfig())
	defer s.Close()
	startPlaying(t, s)

	s.Tap(wrongColor(t, s.Snapshot()))
	if !s.RestartRequest() {
		t.Fatal("RestartRequest refused after game over")
	}
	if snap := s.Snapshot(); snap.State != StateMenu {
		t.Fatalf("state after restart = %q, expected menu", snap.State)
	}

	// The session is fully reusable
	startPlaying(t, s)
	if snap := s.Snapshot(); snap.Score != 0 || snap.Level != 1 {
		t.Errorf("score/level not reset on new game: %d/%d", snap.Score, snap.Level)
	}
}

func TestRestartRefusedOutsideGameOver(t *testing.T) {
	s := New(slowConfig())
	defer s.Close()

	if s.RestartRequest() {
		t.Error("RestartRequest should be refused in menu")
	}
	startPlaying(t, s)
	if s.RestartRequest() {
		t.Error("RestartRequest should be refused while playing")
	}
}

func TestTapSlot(t *testing.T) {
	s := New(slowConfig())
	defer s.Close()
	startPlaying(t, s)

	snap := s.Snapshot()
	slot := -1
	for i, c := range snap.Palette {
		if c == snap.Target {
			slot = i
			break
		}
	}
	if slot < 0 {
		t.Fatal("target not found in palette")
	}

	s.TapSlot(99) // Out of range: ignored
	s.TapSlot(slot)

	snap = s.Snapshot()
	if snap.Score != 1 || snap.State != StatePlaying {
		t.Errorf("TapSlot of the target slot should score: %+v", snap)
	}
}

func TestCloseDuringCountdownPreventsStart(t *testing.T) {
	n := &countNotifier{}
	s := New(testConfig(), WithNotifier(n))

	s.StartRequest()
	s.Close()

	time.Sleep(100 * time.Millisecond)
	if snap := s.Snapshot(); snap.State == StatePlaying {
		t.Error("session entered playing after Close")
	}
	if n.starts.Load() != 0 {
		t.Errorf("start notified %d times after Close, expected 0", n.starts.Load())
	}
}
