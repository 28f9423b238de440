package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ksamsonov/chromatap/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "enter", " ":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MapKeyToSlot translates a digit key to a palette slot index.
// Keys 1 through 8 map to slots 0 through 7. Returns core.NoTap for
// anything else.
func (km *KeyMapper) MapKeyToSlot(msg tea.KeyMsg) int {
	key := msg.String()
	if len(key) != 1 || key[0] < '1' || key[0] > '8' {
		return core.NoTap
	}
	return int(key[0] - '1')
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	if slot := km.MapKeyToSlot(msg); slot != core.NoTap {
		frame.SetTap(slot)
	}
	return isQuit
}
