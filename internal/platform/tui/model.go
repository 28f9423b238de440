package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ksamsonov/chromatap/internal/core"
	"github.com/ksamsonov/chromatap/internal/countdown"
	"github.com/ksamsonov/chromatap/internal/difficulty"
	"github.com/ksamsonov/chromatap/internal/session"
	"github.com/ksamsonov/chromatap/internal/storage"
)

// Model is the Bubble Tea model driving one game session.
type Model struct {
	sess      *session.Session
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	flash     *FlashNotifier
	keys      *KeyMapper
	highScore int
	runSaved  bool // Whether the run has been saved for current game over
	quitting  bool
}

// NewModel creates a new Bubble Tea model around an assembled session.
// The flash notifier must be the one registered on the session so cues
// reach the view.
func NewModel(sess *session.Session, flash *FlashNotifier, store *storage.Store, cfg core.RuntimeConfig) Model {
	m := Model{
		sess:   sess,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		flash:  flash,
		keys:   NewKeyMapper(),
	}
	if store != nil {
		if high, err := store.HighScore(); err == nil {
			m.highScore = high
		}
	}
	return m
}

// Init starts the refresh loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.sess.Close()
		return m, tea.Quit
	}

	if slot := m.keys.MapKeyToSlot(msg); slot != core.NoTap {
		m.sess.TapSlot(slot)
		return m, nil
	}

	switch action {
	case core.ActionConfirm:
		m.sess.StartRequest()
	case core.ActionRestart:
		if m.sess.RestartRequest() {
			m.runSaved = false
		}
	}

	return m, nil
}

// handleTick drives the authoritative expiry check and the run save.
// Miss detection runs here on wall-clock time so a stalled beat timer can
// never keep an expired window alive.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.sess.CheckExpiry(now)

	snap := m.sess.Snapshot()
	if snap.State == session.StateGameOver && !m.runSaved && snap.Score > 0 {
		if m.store != nil {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveRun(snap.Score, snap.Level, string(snap.TempoMode), snap.BPM)
		}
		if snap.Score > m.highScore {
			m.highScore = snap.Score
		}
		m.runSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.sess.Snapshot()
	m.renderSnapshot(snap, time.Now())
	return RenderScreen(m.screen)
}

// renderSnapshot draws one frame of the given snapshot into the screen buffer.
func (m *Model) renderSnapshot(snap session.Snapshot, now time.Time) {
	m.screen.Clear()

	m.drawHeader(snap)

	switch snap.State {
	case session.StateMenu:
		m.drawMenu()
	case session.StateCountingDown:
		m.drawCountdown(snap)
	case session.StatePlaying:
		m.drawPlaying(snap, now)
	case session.StateGameOver:
		m.drawGameOver(snap)
	}
}

func (m *Model) drawHeader(snap session.Snapshot) {
	m.screen.DrawText(2, 0, "CHROMATAP")
	right := fmt.Sprintf("High: %d", m.highScore)
	m.screen.DrawText(m.screen.Width()-len(right)-2, 0, right)
	m.screen.DrawHLine(0, 1, m.screen.Width(), '-')

	if snap.State == session.StatePlaying || snap.State == session.StateGameOver {
		status := fmt.Sprintf("Score: %d   Level: %d   %s", snap.Score, snap.Level, tempoLabel(snap))
		m.screen.DrawText(2, 2, status)
	}
}

func tempoLabel(snap session.Snapshot) string {
	if snap.TempoMode == difficulty.ModeSynced {
		return fmt.Sprintf("Tempo: %.0f BPM", snap.BPM)
	}
	return "Tempo: fixed"
}

func (m *Model) drawMenu() {
	mid := m.screen.Height() / 2
	m.screen.DrawTextCentered(mid-2, "Tap the color that matches the target")
	m.screen.DrawTextCentered(mid-1, "before the ring runs out.")
	m.screen.DrawTextCentered(mid+1, "Press ENTER to start")
	m.screen.DrawTextCentered(mid+3, "1-8 tap color   q quit")
}

func (m *Model) drawCountdown(snap session.Snapshot) {
	mid := m.screen.Height() / 2
	label := "GO!"
	if snap.Countdown > countdown.Go {
		label = fmt.Sprintf("%d", snap.Countdown)
	}
	m.screen.DrawTextCentered(mid, label)
	m.screen.DrawTextCentered(mid+2, "Get ready...")
}

func (m *Model) drawPlaying(snap session.Snapshot, now time.Time) {
	mid := m.screen.Height() / 2

	// Target, flashed on success/failure cues
	name := snap.Target.String()
	label := fmt.Sprintf("### %s ###", name)
	x := (m.screen.Width() - len(label)) / 2
	m.screen.DrawTextColored(x, mid-2, label, snap.Target)

	m.drawRing(mid, snap)
	m.drawPalette(mid+2, snap)

	if m.flash != nil {
		switch m.flash.Active(now) {
		case FlashSuccess:
			m.screen.DrawTextCentered(mid+4, "+1")
		case FlashTick:
			m.screen.Set(1, mid, '*')
			m.screen.Set(m.screen.Width()-2, mid, '*')
		}
	}
}

// drawRing renders the countdown ring as a horizontal bar that drains from
// both ends toward the middle as the window closes.
func (m *Model) drawRing(y int, snap session.Snapshot) {
	barWidth := m.screen.Width() - 20
	if barWidth < 10 {
		barWidth = 10
	}
	filled := int(snap.RemainingFraction * float64(barWidth))
	x := (m.screen.Width() - barWidth - 2) / 2

	m.screen.Set(x, y, '[')
	for i := 0; i < barWidth; i++ {
		if i < filled {
			m.screen.SetColored(x+1+i, y, '#', snap.Target)
		} else {
			m.screen.Set(x+1+i, y, '.')
		}
	}
	m.screen.Set(x+1+barWidth, y, ']')
}

// drawPalette renders the tappable slots with their key numbers.
func (m *Model) drawPalette(y int, snap session.Snapshot) {
	total := 0
	for i, c := range snap.Palette {
		total += len(fmt.Sprintf("%d:%s", i+1, c)) + 2
	}
	x := (m.screen.Width() - total) / 2
	if x < 0 {
		x = 0
	}

	for i, c := range snap.Palette {
		label := fmt.Sprintf("%d:%s", i+1, c)
		m.screen.DrawTextColored(x, y, label, c)
		x += len(label) + 2
	}
}

func (m *Model) drawGameOver(snap session.Snapshot) {
	mid := m.screen.Height() / 2
	m.screen.DrawTextCentered(mid-2, "GAME OVER")
	m.screen.DrawTextCentered(mid, fmt.Sprintf("Score: %d   Level: %d", snap.Score, snap.Level))
	if snap.Score >= m.highScore && snap.Score > 0 {
		m.screen.DrawTextCentered(mid+1, "New high score!")
	}
	m.screen.DrawTextCentered(mid+3, "r back to menu   q quit")
}

// Run starts the Bubble Tea program with the given model.
func Run(sess *session.Session, flash *FlashNotifier, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(sess, flash, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
