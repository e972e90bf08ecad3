package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tripwise/internal/flow"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusColor returns the style for a step status.
func StatusColor(s flow.StepStatus) lipgloss.Style {
	switch s.State {
	case flow.Complete:
		return StyleGreen
	case flow.InProgress:
		return StyleYellow
	default:
		return StyleDim
	}
}

// StepIndicator returns a one-character marker for a step status.
func StepIndicator(s flow.StepStatus) string {
	switch s.State {
	case flow.Complete:
		return StyleGreen.Render("✔")
	case flow.InProgress:
		return StyleYellow.Render("◐")
	default:
		return StyleDim.Render("○")
	}
}

// StatusLabel renders a status as "✔ Complete", "◐ 50%" or "○ Not started".
func StatusLabel(s flow.StepStatus) string {
	switch s.State {
	case flow.Complete:
		return StyleGreen.Render("✔ Complete")
	case flow.InProgress:
		return StyleYellow.Render(fmt.Sprintf("◐ %d%%", s.Percent))
	default:
		return StyleDim.Render("○ Not started")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Warning renders a yellow advisory line.
func Warning(text string) string {
	return StyleYellow.Render("! " + text)
}

// Hint renders a blue non-blocking hint line.
func Hint(text string) string {
	return StyleBlue.Render("› " + text)
}
