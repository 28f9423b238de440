package core

import "testing"

func TestPalettePrefix(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"baseline", 4, 4},
		{"full set", 8, 8},
		{"clamped above", 20, TotalColors},
		{"clamped below", 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := PalettePrefix(tc.n)
			if len(p) != tc.want {
				t.Fatalf("PalettePrefix(%d) has %d colors, expected %d", tc.n, len(p), tc.want)
			}
			// Must be a prefix of the canonical ordering
			for i, c := range p {
				if c != canonical[i] {
					t.Errorf("palette[%d] = %v, expected canonical %v", i, c, canonical[i])
				}
			}
		})
	}
}

func TestPaletteContains(t *testing.T) {
	p := PalettePrefix(4)

	for _, c := range p {
		if !p.Contains(c) {
			t.Errorf("palette should contain %v", c)
		}
	}
	if p.Contains(ColorOrange) {
		t.Error("baseline palette should not contain Orange")
	}
	if p.Contains(ColorWhite) {
		t.Error("baseline palette should not contain White")
	}
}

func TestInputFrameTap(t *testing.T) {
	f := NewInputFrame()
	if f.HasTap() {
		t.Error("fresh frame should not carry a tap")
	}

	f.SetTap(2)
	if !f.HasTap() || f.TapSlot != 2 {
		t.Errorf("expected tap slot 2, got %d", f.TapSlot)
	}

	f.Set(ActionConfirm)
	f.Clear()
	if f.HasTap() || f.Has(ActionConfirm) {
		t.Error("Clear should reset both actions and tap")
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 3)

	s.SetColored(2, 1, '█', ColorCyan)
	cell := s.GetCell(2, 1)
	if cell.Rune != '█' || cell.Color != ColorCyan || cell.Plain {
		t.Errorf("unexpected cell %+v", cell)
	}

	// Out of bounds is ignored and reads back as plain space
	s.SetColored(-1, 0, 'x', ColorRed)
	s.SetColored(10, 0, 'x', ColorRed)
	if got := s.GetCell(99, 99); got.Rune != ' ' || !got.Plain {
		t.Errorf("out-of-bounds read should be plain space, got %+v", got)
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(5, 2)
	s.DrawText(0, 0, "hello")
	if s.Row(0) != "hello" {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
	if s.Row(5) != "     " {
		t.Errorf("out-of-range row should be blank, got %q", s.Row(5))
	}
}
