// Package core provides the fundamental types shared by the game logic and
// the platform layer. It contains no external dependencies (especially no
// Bubble Tea) to keep game logic pure and testable.
package core

// Color identifies one of the tappable game colors.
// The zero value is ColorRed, the first color of the canonical ordering.
type Color uint8

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorYellow
	ColorMagenta
	ColorCyan
	ColorOrange
	ColorWhite
)

// canonical is the fixed ordering colors are unlocked in. Palettes are
// always a prefix of this slice.
var canonical = []Color{
	ColorRed,
	ColorGreen,
	ColorBlue,
	ColorYellow,
	ColorMagenta,
	ColorCyan,
	ColorOrange,
	ColorWhite,
}

// TotalColors is the size of the full color set.
const TotalColors = 8

// Canonical returns the full color ordering as a fresh slice.
func Canonical() []Color {
	out := make([]Color, len(canonical))
	copy(out, canonical)
	return out
}

// String returns a human-readable name for the color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "Red"
	case ColorGreen:
		return "Green"
	case ColorBlue:
		return "Blue"
	case ColorYellow:
		return "Yellow"
	case ColorMagenta:
		return "Magenta"
	case ColorCyan:
		return "Cyan"
	case ColorOrange:
		return "Orange"
	case ColorWhite:
		return "White"
	default:
		return "Unknown"
	}
}
