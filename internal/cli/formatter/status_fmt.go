package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tripwise/internal/domain"
	"github.com/alexanderramin/tripwise/internal/flow"
)

const statusProgressBarWidth = 10

// StepRow is one line of the step rail.
type StepRow struct {
	ID       domain.StepID
	Label    string
	Required bool
	Current  bool
	Status   flow.StepStatus
	Percent  int
}

// StatusData is everything the status screen shows.
type StatusData struct {
	Steps       []StepRow
	Overall     int
	Destination string
	StartDate   string
	Now         time.Time
}

// FormatStatus renders the step table, the overall bar and the departure
// countdown inside a box.
func FormatStatus(data StatusData) string {
	var b strings.Builder

	headers := []string{"", "STEP", "STATUS", "PROGRESS"}
	rows := make([][]string, 0, len(data.Steps))
	for _, s := range data.Steps {
		marker := " "
		label := StyleFg.Render(s.Label)
		if s.Current {
			marker = StyleHeader.Render("▶")
			label = Bold(s.Label)
		}
		if !s.Required {
			label += Dim(" (optional)")
		}
		rows = append(rows, []string{
			marker,
			label,
			StatusLabel(s.Status),
			RenderProgress(Percent(s.Percent), statusProgressBarWidth),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", Bold("Overall"), RenderProgress(Percent(data.Overall), 20))

	if data.Destination != "" {
		line := Dim("Destination ") + StyleFg.Render(data.Destination)
		if start, err := domain.ParseDate(data.StartDate); err == nil {
			line += Dim("  departs ") + DepartureStyled(start, data.Now)
		}
		b.WriteString(line + "\n")
	}

	return RenderBox("Plan", b.String())
}

// FormatStepRail renders the steps on one line for the interactive header,
// for example "✔ Project › ◐ Institution › ○ Housing".
func FormatStepRail(rows []StepRow) string {
	parts := make([]string, 0, len(rows))
	for _, s := range rows {
		label := StatusColor(s.Status).Render(s.Label)
		if s.Current {
			label = StyleHeader.Render(s.Label)
		}
		parts = append(parts, StepIndicator(s.Status)+" "+label)
	}
	return strings.Join(parts, Dim(" › "))
}

// FormatOutcomeNotes renders the hint and warning of an engine outcome, one
// per line. It returns "" when there is nothing to say.
func FormatOutcomeNotes(out flow.Outcome) string {
	var lines []string
	if out.Hint != "" {
		lines = append(lines, Hint(out.Hint))
	}
	if out.Warning != "" {
		lines = append(lines, Warning(out.Warning))
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
