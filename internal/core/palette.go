package core

// Palette is the ordered set of colors the player may be asked to match at
// the current level. It is always a non-empty prefix of the canonical color
// ordering and is replaced, never mutated, when it grows.
type Palette []Color

// PalettePrefix returns a palette holding the first n canonical colors.
// n is clamped to [1, TotalColors].
func PalettePrefix(n int) Palette {
	if n < 1 {
		n = 1
	}
	if n > TotalColors {
		n = TotalColors
	}
	p := make(Palette, n)
	copy(p, canonical[:n])
	return p
}

// Contains reports whether c is a member of the palette.
func (p Palette) Contains(c Color) bool {
	for _, pc := range p {
		if pc == c {
			return true
		}
	}
	return false
}

// Clone returns a copy of the palette.
func (p Palette) Clone() Palette {
	out := make(Palette, len(p))
	copy(out, p)
	return out
}
