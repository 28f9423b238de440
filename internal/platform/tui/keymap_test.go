package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ksamsonov/chromatap/internal/core"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestMapKeyToSlot(t *testing.T) {
	km := NewKeyMapper()

	cases := map[string]int{
		"1": 0,
		"4": 3,
		"8": 7,
		"9": core.NoTap,
		"0": core.NoTap,
		"a": core.NoTap,
	}

	for key, want := range cases {
		if got := km.MapKeyToSlot(keyMsg(key)); got != want {
			t.Errorf("MapKeyToSlot(%q) = %d, want %d", key, got, want)
		}
	}
}

func TestMapKeyActions(t *testing.T) {
	km := NewKeyMapper()

	if action, quit := km.MapKey(keyMsg("q")); !quit || action != core.ActionQuit {
		t.Errorf("q should map to quit, got %v %v", action, quit)
	}
	if action, quit := km.MapKey(keyMsg("r")); quit || action != core.ActionRestart {
		t.Errorf("r should map to restart, got %v %v", action, quit)
	}
	if action, _ := km.MapKey(keyMsg("x")); action != core.ActionNone {
		t.Errorf("x should map to no action, got %v", action)
	}
}

func TestRenderScreenPreservesRunes(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "hello")
	s.DrawTextColored(0, 1, "world", core.ColorGreen)

	out := RenderScreen(s)

	// Styled output still carries the drawn characters
	for _, want := range []string{"hello", "world"} {
		if !containsRunes(out, want) {
			t.Errorf("RenderScreen output missing %q:\n%s", want, out)
		}
	}
}

// containsRunes reports whether the wanted runes appear in order in the
// output, ignoring any ANSI escape bytes in between runs of equal color.
func containsRunes(out, want string) bool {
	i := 0
	for _, r := range out {
		if i < len(want) && r == rune(want[i]) {
			i++
		}
	}
	return i == len(want)
}
