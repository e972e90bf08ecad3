package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func clampPct(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

func progressStyleFor(pct float64) func(...string) string {
	switch {
	case pct < 0.33:
		return StyleRed.Render
	case pct < 0.66:
		return StyleYellow.Render
	default:
		return StyleGreen.Render
	}
}

func bar(pct float64, width int) string {
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

// RenderProgress renders a progress bar like [████░░░░]  45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = clampPct(pct)
	if width < 2 {
		width = 2
	}
	render := progressStyleFor(pct)
	return fmt.Sprintf("[%s] %3.0f%%", render(bar(pct, width)), pct*100)
}

// RenderCompactBar renders the bar alone, without brackets or a percentage.
// A dimmed bar is drawn in the muted color regardless of progress.
func RenderCompactBar(pct float64, width int, dim bool) string {
	pct = clampPct(pct)
	if width < 2 {
		width = 2
	}
	if dim {
		return StyleDim.Render(bar(pct, width))
	}
	return progressStyleFor(pct)(bar(pct, width))
}

// Percent renders an integer percentage as a fraction for the bar helpers.
func Percent(p int) float64 {
	return float64(p) / 100
}
