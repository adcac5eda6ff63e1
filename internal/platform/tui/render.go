package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/core"
)

// ansiCodes is the terminal colour behind each screen colour. Piece
// catalogues name these colours in YAML; pink and brown are 256-colour
// picks so the animal set stays distinct on dark terminals.
var ansiCodes = map[core.Color]string{
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
	core.ColorPink:          "218",
	core.ColorBrown:         "130",
}

var colorStyles = buildColorStyles()

func buildColorStyles() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(ansiCodes)+1)
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for c, code := range ansiCodes {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return styles
}

func styleFor(c core.Color) lipgloss.Style {
	if s, ok := colorStyles[c]; ok {
		return s
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Each row is cut into runs of one colour so a board of pieces costs one
// escape sequence per run rather than per cell.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	run := make([]rune, 0, s.Width())
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		run = run[:0]
		color := core.ColorDefault
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if len(run) > 0 && cell.Color != color {
				sb.WriteString(styleFor(color).Render(string(run)))
				run = run[:0]
			}
			color = cell.Color
			run = append(run, cell.Rune)
		}
		if len(run) > 0 {
			sb.WriteString(styleFor(color).Render(string(run)))
		}
	}
	return sb.String()
}

var legendNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// RenderLegend lists the active piece types as "glyph name" pairs in their
// board colours. Entries that would overflow width are left out.
func RenderLegend(pieces []config.PieceStyle, width int) string {
	var parts []string
	used := 0
	for _, p := range pieces {
		color, err := core.ParseColor(p.Color)
		if err != nil {
			color = core.ColorDefault
		}
		entry := styleFor(color).Bold(true).Render(p.Glyph) + " " + legendNameStyle.Render(p.Name)

		w := lipgloss.Width(entry)
		if len(parts) > 0 {
			w += 2
		}
		if width > 0 && used+w > width {
			break
		}
		used += w
		parts = append(parts, entry)
	}
	return strings.Join(parts, "  ")
}
