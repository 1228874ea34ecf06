package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var coreGlyphs = []string{"·", "∘", "○", "◎", "◉", "●"}

func clampRate(rate float64) float64 {
	switch {
	case rate < 0:
		return 0
	case rate > 1:
		return 1
	default:
		return rate
	}
}

// CoreColor maps a completion rate to a hex colour, sweeping the hue from
// blue (200°) at 0 to magenta (280°) at 1.
func CoreColor(rate float64) string {
	rate = clampRate(rate)
	return colorful.Hsl(200+rate*80, 0.7, 0.6).Clamped().Hex()
}

// RenderCore draws the completion core: a glyph that grows with rate,
// coloured by CoreColor.
func RenderCore(rate float64) string {
	rate = clampRate(rate)
	i := int(rate * float64(len(coreGlyphs)-1))
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(CoreColor(rate))).Bold(true)
	return style.Render(strings.Repeat(coreGlyphs[i], 1+i/2))
}
