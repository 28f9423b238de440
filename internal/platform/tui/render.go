package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ksamsonov/chromatap/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
}

var plainStyle = lipgloss.NewStyle()

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same styling to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same styling for efficiency
		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Plain != start.Plain || cell.Color != start.Color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.Plain {
				sb.WriteString(run.String())
				continue
			}
			style, ok := colorStyles[start.Color]
			if !ok {
				style = plainStyle
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
