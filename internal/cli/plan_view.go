package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tripwise/internal/cli/formatter"
	"github.com/alexanderramin/tripwise/internal/domain"
	"github.com/alexanderramin/tripwise/internal/handoff"
)

func (m *planModel) View() string {
	if m.quitting {
		return ""
	}
	e := m.engine()
	step := e.Current()

	var sections []string
	sections = append(sections, m.renderHeader())

	title := formatter.StyleHeader.Render(strings.ToUpper(step.Label))
	if !step.Required {
		title += formatter.Dim("  optional")
	}
	title += "  " + formatter.RenderCompactBar(formatter.Percent(e.StepProgress(step.ID)), 12, false)
	sections = append(sections, title, "")

	if m.form != nil {
		sections = append(sections, m.form.View())
	} else {
		sections = append(sections, m.renderStep(step.ID))
	}

	if m.note != "" {
		if m.noteErr {
			sections = append(sections, "", formatter.StyleRed.Render(m.note))
		} else {
			sections = append(sections, "", formatter.StyleGreen.Render(m.note))
		}
	}

	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n")
}

func (m *planModel) separator() string {
	return formatter.Dim(strings.Repeat("─", max(m.width, 20)))
}

func (m *planModel) renderHeader() string {
	e := m.engine()
	head := formatter.StylePurple.Render("tripwise") + "  " + formatter.FormatStepRail(stepRows(e))
	overall := formatter.Dim("overall ") + formatter.RenderProgress(formatter.Percent(e.OverallProgress()), 10)
	return head + "\n" + overall + "\n" + m.separator()
}

func (m *planModel) renderFooter() string {
	return m.separator() + "\n" + m.help.View(m.keys)
}

func (m *planModel) renderStep(id domain.StepID) string {
	switch id {
	case domain.StepProject:
		return m.renderProject()
	case domain.StepInstitution, domain.StepHousing:
		return m.renderCatalog()
	case domain.StepDocuments:
		return m.renderDocuments()
	case domain.StepTravel:
		return m.renderTravel()
	case domain.StepSummary:
		return m.renderSummary()
	}
	return ""
}

func field(label, value string) []string {
	return []string{formatter.Dim(label), formatter.OrDash(value)}
}

func (m *planModel) renderProject() string {
	d := m.engine().Draft()
	rows := [][]string{
		field("Type", string(d.ProjectType)),
		field("Destination", d.DestinationCountry),
		field("Nationality", d.Nationality),
		field("Living in", d.CurrentCountry),
		field("Start", d.StartDate),
		field("End", d.EndDate),
		field("Duration", string(d.DurationCategory)),
		field("Level", string(d.StudyLevel)),
		field("Field", d.StudyField),
	}
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-24s %s\n", r[0], r[1])
	}
	if ok, reason := m.engine().CanAdvanceFrom(domain.StepProject); !ok {
		b.WriteString("\n" + formatter.Hint(reason) + "\n")
	}
	return b.String()
}

func (m *planModel) renderCatalog() string {
	label := kindLabel(m.catalogKind())
	if m.loading {
		return fmt.Sprintf("  %s %s", m.spin.View(), formatter.Dim("Loading "+label+"…"))
	}
	if m.result == nil {
		return formatter.Dim("  Press r to load " + label + ".")
	}

	var b strings.Builder
	if m.result.Demo {
		b.WriteString("  " + formatter.Warning(m.result.Advisory) + formatter.Dim("  r: retry") + "\n\n")
	}
	if len(m.result.Entities) == 0 {
		b.WriteString(formatter.Dim("  Nothing to choose from for this destination.") + "\n")
		return b.String()
	}

	selected := selectedID(m.engine().Draft(), m.catalogKind())
	for i, e := range m.result.Entities {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("› ")
		}
		mark := formatter.Dim("○ ")
		name := e.Name
		if e.ID == selected {
			mark = formatter.StyleGreen.Render("● ")
			name = formatter.StyleGreen.Render(e.Name)
		}
		loc := ""
		if e.City != "" {
			loc = formatter.Dim("  " + e.City)
		}
		b.WriteString(cursor + mark + name + loc + "\n")
	}
	return b.String()
}

func (m *planModel) renderDocuments() string {
	d := m.engine().Draft()
	var b strings.Builder
	for i, k := range domain.DocumentKinds {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("› ")
		}
		box := formatter.Dim("[ ]")
		switch d.DocumentChecklist[k] {
		case domain.MarkHave:
			box = formatter.StyleGreen.Render("[✔]")
		case domain.MarkNeed:
			box = formatter.StyleYellow.Render("[○]")
		}
		b.WriteString(cursor + box + " " + k.Label() + "\n")
	}
	if !d.HasCompleted(domain.StepDocuments) && len(d.DocumentChecklist) > 0 {
		b.WriteString("\n" + formatter.Hint("press c when the checklist is complete") + "\n")
	}
	return b.String()
}

func checkbox(on bool, label string) string {
	if on {
		return formatter.StyleGreen.Render("[✔] ") + label
	}
	return formatter.Dim("[ ] ") + label
}

func (m *planModel) renderTravel() string {
	d := m.engine().Draft()
	tb := d.TravelBooking
	lines := []string{
		"  " + checkbox(tb.FlightBooked, "Flight booked"),
		"  " + checkbox(tb.InsuranceActive, "Travel insurance active"),
		"  " + checkbox(tb.TransferBooked, "Airport transfer booked"),
		"",
		fmt.Sprintf("  %-24s %s", formatter.Dim("Emergency contact"), formatter.OrDash(tb.EmergencyContact)),
		fmt.Sprintf("  %-24s %s", formatter.Dim("Local contact"), formatter.OrDash(tb.LocalContact)),
		fmt.Sprintf("  %-24s %s", formatter.Dim("Visa"), formatter.OrDash(strings.ReplaceAll(string(d.VisaStatus), "_", " "))),
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m *planModel) renderSummary() string {
	d := m.engine().Draft()
	return formatter.FormatSummary(handoff.Summary(d, m.app.CachedResolver()))
}
