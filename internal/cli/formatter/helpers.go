package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/tripwise/internal/repository"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

func calendarDays(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Countdown describes a date relative to now in calendar days: "today",
// "in 10 days", "in 6 weeks", "in 9 months", "3 days ago".
func Countdown(date, now time.Time) string {
	days := calendarDays(now, date)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days < 0:
		return plural(-days, "day") + " ago"
	case days < 14:
		return "in " + plural(days, "day")
	case days < 60:
		return "in " + plural(days/7, "week")
	default:
		return "in " + plural(days/30, "month")
	}
}

// DepartureStyled colours the countdown to a start date: red inside two
// weeks, yellow inside two months.
func DepartureStyled(start, now time.Time) string {
	text := Countdown(start, now)
	switch days := calendarDays(now, start); {
	case days < 14:
		return StyleRed.Render(text)
	case days < 60:
		return StyleYellow.Render(text)
	}
	return StyleFg.Render(text)
}

// SentAt renders a history timestamp: relative within the day, then the date
// and time of day.
func SentAt(t, now time.Time) string {
	switch d := now.Sub(t); {
	case d < 0 || d >= 24*time.Hour:
		return t.Local().Format("Jan 2 15:04")
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%d h ago", int(d.Hours()))
	}
}

// DeliveryPill returns a colored indicator for a handoff delivery status.
func DeliveryPill(status repository.HandoffStatus) string {
	switch status {
	case repository.HandoffSent:
		return StyleGreen.Render("✔ Sent")
	case repository.HandoffFailed:
		return StyleRed.Render("✖ Failed")
	default:
		return StyleDim.Render(string(status))
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// OrDash renders an empty value as a dim placeholder.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
