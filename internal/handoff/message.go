package handoff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alexanderramin/tripwise/internal/domain"
	"github.com/alexanderramin/tripwise/internal/flow"
)

// Resolver turns a selected catalog id into a display name. It returns ""
// when the id is unknown.
type Resolver func(kind domain.EntityKind, id string) string

// Line is one labelled value of the summary.
type Line struct {
	Label string
	Value string
}

// Section groups the lines of one step.
type Section struct {
	Title string
	Lines []Line
}

const notSet = "not set"

func orNotSet(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSet
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func selection(kind domain.EntityKind, id string, resolve Resolver) string {
	if id == "" {
		return notSet
	}
	if resolve != nil {
		if name := resolve(kind, id); name != "" {
			return fmt.Sprintf("%s (#%s)", name, id)
		}
	}
	return "#" + id
}

func documentLabels(kinds []domain.DocumentKind) string {
	if len(kinds) == 0 {
		return "none"
	}
	labels := make([]string, len(kinds))
	for i, k := range kinds {
		labels[i] = k.Label()
	}
	return strings.Join(labels, ", ")
}

func visaLabel(v domain.VisaStatus) string {
	switch v {
	case domain.VisaHave:
		return "already have a visa"
	case domain.VisaNeed:
		return "need a visa"
	default:
		return "unknown"
	}
}

func dates(d domain.PlanDraft) string {
	switch {
	case d.StartDate == "" && d.EndDate == "":
		return notSet
	case d.EndDate == "":
		return "from " + d.StartDate
	case d.StartDate == "":
		return "until " + d.EndDate
	default:
		return d.StartDate + " to " + d.EndDate
	}
}

// Summary lays the draft out step by step. resolve may be nil.
func Summary(d domain.PlanDraft, resolve Resolver) []Section {
	sections := []Section{
		{Title: "Project", Lines: []Line{
			{"Type", orNotSet(string(d.ProjectType))},
			{"Destination", orNotSet(d.DestinationCountry)},
			{"Living in", orNotSet(d.CurrentCountry)},
			{"Nationality", orNotSet(d.Nationality)},
			{"Dates", dates(d)},
			{"Duration", orNotSet(string(d.DurationCategory))},
			{"Study level", orNotSet(string(d.StudyLevel))},
			{"Study field", orNotSet(d.StudyField)},
		}},
		{Title: "Institution", Lines: []Line{
			{"Selected", selection(domain.EntityInstitution, d.InstitutionID(), resolve)},
		}},
		{Title: "Housing", Lines: []Line{
			{"Accommodation", selection(domain.EntityAccommodation, d.AccommodationID(), resolve)},
		}},
		{Title: "Documents", Lines: []Line{
			{"Have", documentLabels(d.DocumentsByMark(domain.MarkHave))},
			{"Need", documentLabels(d.DocumentsByMark(domain.MarkNeed))},
			{"Visa", visaLabel(d.VisaStatus)},
		}},
		{Title: "Travel", Lines: []Line{
			{"Flight booked", yesNo(d.TravelBooking.FlightBooked)},
			{"Insurance active", yesNo(d.TravelBooking.InsuranceActive)},
			{"Transfer booked", yesNo(d.TravelBooking.TransferBooked)},
			{"Emergency contact", orNotSet(d.TravelBooking.EmergencyContact)},
			{"Local contact", orNotSet(d.TravelBooking.LocalContact)},
		}},
	}

	progress := Section{Title: "Progress"}
	for _, s := range domain.Steps() {
		st := flow.Status(s.ID, d)
		value := "not started"
		switch st.State {
		case flow.Complete:
			value = "complete"
		case flow.InProgress:
			value = fmt.Sprintf("%d%%", st.Percent)
		}
		progress.Lines = append(progress.Lines, Line{s.Label, value})
	}
	progress.Lines = append(progress.Lines, Line{"Overall", fmt.Sprintf("%d%%", flow.OverallProgress(d))})
	return append(sections, progress)
}

// Subject is the one-line title of a handoff for d.
func Subject(d domain.PlanDraft) string {
	if d.DestinationCountry == "" {
		return "Trip plan summary"
	}
	if d.StartDate == "" {
		return "Trip plan: " + d.DestinationCountry
	}
	return fmt.Sprintf("Trip plan: %s from %s", d.DestinationCountry, d.StartDate)
}

// BuildMessage renders the plain-text body sent to the help channel.
func BuildMessage(d domain.PlanDraft, resolve Resolver) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Hi,\n\nHere is my plan so far (%d%% complete):\n", flow.OverallProgress(d))
	for _, sec := range Summary(d, resolve) {
		fmt.Fprintf(&buf, "\n%s\n", sec.Title)
		for _, l := range sec.Lines {
			fmt.Fprintf(&buf, "   %s: %s\n", l.Label, l.Value)
		}
	}
	fmt.Fprintf(&buf, "\nCould you help me with the next steps?\n\nThanks!\n")

	return buf.String()
}
