package formatter

import (
	"fmt"

	"github.com/alexanderramin/holotask/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Neon-on-black palette.
var (
	ColorCyan   = lipgloss.Color("#22d3ee")
	ColorPurple = lipgloss.Color("#a855f7")
	ColorGreen  = lipgloss.Color("#4ade80")
	ColorYellow = lipgloss.Color("#facc15")
	ColorRed    = lipgloss.Color("#f87171")
	ColorDim    = lipgloss.Color("#71717a")
	ColorFg     = lipgloss.Color("#e4e4e7")
	ColorHeader = lipgloss.Color("#c084fc")
)

var (
	StyleCyan   = lipgloss.NewStyle().Foreground(ColorCyan)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PriorityStyle returns the style used for a priority label.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return StyleRed
	case domain.PriorityMedium:
		return StyleYellow
	case domain.PriorityLow:
		return StyleCyan
	default:
		return StyleDim
	}
}

// PriorityBadge renders a fixed-width priority label such as "▲ HIGH".
func PriorityBadge(p domain.Priority) string {
	var glyph string
	switch p {
	case domain.PriorityHigh:
		glyph = "▲"
	case domain.PriorityMedium:
		glyph = "◆"
	case domain.PriorityLow:
		glyph = "▽"
	default:
		glyph = "?"
	}
	return PriorityStyle(p).Render(fmt.Sprintf("%s %-6s", glyph, string(p)))
}

// Dim renders text in the muted colour.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold.
func Bold(text string) string {
	return StyleBold.Render(text)
}
