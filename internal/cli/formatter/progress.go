package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func barCells(pct float64, width int) (filled, empty int) {
	if width < 2 {
		width = 2
	}
	filled = int(clampRate(pct) * float64(width))
	return filled, width - filled
}

func progressStyle(pct float64) func(...string) string {
	switch {
	case pct >= 1:
		return StyleGreen.Render
	case pct >= 0.5:
		return StyleCyan.Render
	default:
		return StylePurple.Render
	}
}

// RenderProgress renders a bar like [████░░░░]  45%.
func RenderProgress(pct float64, width int) string {
	pct = clampRate(pct)
	filled, empty := barCells(pct, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)
	return fmt.Sprintf("[%s] %3.0f%%", progressStyle(pct)(bar), pct*100)
}

// RenderCompactBar renders the bar without brackets or a percentage.
func RenderCompactBar(pct float64, width int, dim bool) string {
	pct = clampRate(pct)
	filled, empty := barCells(pct, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)
	if dim {
		return Dim(bar)
	}
	return progressStyle(pct)(bar)
}
