package core

// Action represents a semantic game action, abstracted from physical key
// presses. Color taps are carried separately in the InputFrame because they
// are parameterized by palette position.
type Action int

const (
	ActionNone    Action = iota
	ActionConfirm        // Enter/Space - start a game from the menu
	ActionBack           // B, Escape - leave the current screen
	ActionRestart        // R - return to menu after game over
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// NoTap marks an InputFrame that carries no color tap.
const NoTap = -1

// InputFrame represents the input gathered during one UI frame: any semantic
// actions plus at most one color tap, addressed by palette position.
type InputFrame struct {
	Actions map[Action]bool
	TapSlot int // Palette index of the tapped color, or NoTap
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		TapSlot: NoTap,
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetTap records a color tap by palette position.
func (f *InputFrame) SetTap(slot int) {
	f.TapSlot = slot
}

// HasTap reports whether this frame carries a color tap.
func (f InputFrame) HasTap() bool {
	return f.TapSlot != NoTap
}

// Clear resets all actions and the tap for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.TapSlot = NoTap
}
