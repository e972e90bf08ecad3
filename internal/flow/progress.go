package flow

import (
	"math"
	"strings"

	"github.com/alexanderramin/tripwise/internal/domain"
)

// StepState is the tag of a StepStatus.
type StepState int

const (
	NotStarted StepState = iota
	InProgress
	Complete
)

func (s StepState) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Complete:
		return "complete"
	default:
		return "not_started"
	}
}

// StepStatus is NotStarted, InProgress(Percent) or Complete. Percent is only
// meaningful for InProgress; it is 0 and 100 for the other two states.
type StepStatus struct {
	State   StepState
	Percent int
}

// documentsPartialCredit is what a non-empty checklist earns. The documents
// step only reaches 100 through explicit completion.
const documentsPartialCredit = 50

// projectField is one of the fields the project step requires.
type projectField struct {
	label string
	get   func(domain.PlanDraft) string
}

var projectFields = []projectField{
	{"destination", func(d domain.PlanDraft) string { return d.DestinationCountry }},
	{"study field", func(d domain.PlanDraft) string { return d.StudyField }},
	{"study level", func(d domain.PlanDraft) string { return string(d.StudyLevel) }},
	{"start date", func(d domain.PlanDraft) string { return d.StartDate }},
}

func missingProjectFields(d domain.PlanDraft) []string {
	var missing []string
	for _, f := range projectFields {
		if strings.TrimSpace(f.get(d)) == "" {
			missing = append(missing, f.label)
		}
	}
	return missing
}

func travelSignals(d domain.PlanDraft) (set, total int) {
	tb := d.TravelBooking
	for _, ok := range []bool{
		tb.FlightBooked,
		tb.InsuranceActive,
		tb.TransferBooked,
		strings.TrimSpace(tb.EmergencyContact) != "",
	} {
		if ok {
			set++
		}
	}
	return set, 4
}

func pct(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) * 100 / float64(total)))
}

// StepProgress derives the completion percentage of a step from the draft.
// Explicit completion always yields 100. Unknown steps yield 0.
func StepProgress(id domain.StepID, d domain.PlanDraft) int {
	if d.HasCompleted(id) {
		return 100
	}
	switch id {
	case domain.StepProject:
		return pct(len(projectFields)-len(missingProjectFields(d)), len(projectFields))
	case domain.StepInstitution:
		if d.InstitutionID() != "" {
			return 100
		}
		return 0
	case domain.StepHousing:
		if d.AccommodationID() != "" {
			return 100
		}
		return 0
	case domain.StepDocuments:
		if len(d.DocumentChecklist) > 0 {
			return documentsPartialCredit
		}
		return 0
	case domain.StepTravel:
		return pct(travelSignals(d))
	case domain.StepSummary:
		for _, req := range domain.RequiredSteps() {
			if !IsStepComplete(req, d) {
				return 0
			}
		}
		return 100
	default:
		return 0
	}
}

// IsStepComplete reports explicit completion or a derived 100%.
func IsStepComplete(id domain.StepID, d domain.PlanDraft) bool {
	return d.HasCompleted(id) || StepProgress(id, d) == 100
}

// Status classifies a step for display.
func Status(id domain.StepID, d domain.PlanDraft) StepStatus {
	if IsStepComplete(id, d) {
		return StepStatus{State: Complete, Percent: 100}
	}
	p := StepProgress(id, d)
	if p == 0 {
		return StepStatus{State: NotStarted}
	}
	return StepStatus{State: InProgress, Percent: p}
}

// Gate is the forward-navigation predicate of a step. When it fails the
// returned reason tells the user what is missing.
func Gate(id domain.StepID, d domain.PlanDraft) (bool, string) {
	switch id {
	case domain.StepProject:
		missing := missingProjectFields(d)
		if len(missing) == 0 {
			return true, ""
		}
		return false, "fill in " + joinLabels(missing)
	case domain.StepInstitution:
		if d.InstitutionID() == "" {
			return false, "select an institution"
		}
	case domain.StepHousing:
		if d.AccommodationID() == "" {
			return false, "choose an accommodation type"
		}
	case domain.StepDocuments:
		if len(d.DocumentChecklist) == 0 {
			return false, "add at least one document"
		}
	case domain.StepTravel:
		tb := d.TravelBooking
		if !tb.FlightBooked || !tb.InsuranceActive {
			return false, "book a flight and activate travel insurance before you leave"
		}
	}
	return true, ""
}

// OverallProgress is the rounded mean of StepProgress across every step,
// optional ones included.
func OverallProgress(d domain.PlanDraft) int {
	all := domain.Steps()
	if len(all) == 0 {
		return 0
	}
	sum := 0
	for _, s := range all {
		sum += StepProgress(s.ID, d)
	}
	return int(math.Round(float64(sum) / float64(len(all))))
}

func joinLabels(labels []string) string {
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0]
	default:
		return strings.Join(labels[:len(labels)-1], ", ") + " and " + labels[len(labels)-1]
	}
}
