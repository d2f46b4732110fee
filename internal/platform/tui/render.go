package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/baseglide/internal/core"
)

// ansiCodes maps core colors to ANSI 256-color codes.
var ansiCodes = [...]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

var cellStyles = buildCellStyles()

func buildCellStyles() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(ansiCodes))
	for c, code := range ansiCodes {
		styles[c] = lipgloss.NewStyle()
		if code != "" {
			styles[c] = styles[c].Foreground(lipgloss.Color(code))
		}
	}
	return styles
}

// styleFor returns the style for a cell color; unknown colors render plain.
func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(cellStyles) {
		return cellStyles[c]
	}
	return cellStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Each row is emitted as runs of equally colored cells so a frame carries
// one escape sequence per color change rather than per cell.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	run := make([]rune, 0, s.Width())
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		run = run[:0]
		color := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				sb.WriteString(styleFor(color).Render(string(run)))
				run, color = run[:0], cell.Color
			}
			run = append(run, cell.Rune)
		}
		if len(run) > 0 {
			sb.WriteString(styleFor(color).Render(string(run)))
		}
	}
	return sb.String()
}
