package testutil

import (
	"time"

	"github.com/alexanderramin/tripwise/internal/domain"
)

// Today is the fixed clock reading used across tests: a Tuesday morning.
var Today = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

// FixedClock returns a clock that always reads t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// DraftOption customizes a fixture draft.
type DraftOption func(*domain.PlanDraft)

func WithDestination(country string) DraftOption {
	return func(d *domain.PlanDraft) {
		d.DestinationCountry = country
	}
}

func WithInstitution(id string) DraftOption {
	return func(d *domain.PlanDraft) {
		d.SelectedInstitution = &id
	}
}

func WithAccommodation(id string) DraftOption {
	return func(d *domain.PlanDraft) {
		d.SelectedAccommodationType = &id
	}
}

func WithDocuments(marks map[domain.DocumentKind]domain.DocumentMark) DraftOption {
	return func(d *domain.PlanDraft) {
		d.DocumentChecklist = marks
	}
}

func WithCompleted(ids ...domain.StepID) DraftOption {
	return func(d *domain.PlanDraft) {
		for _, id := range ids {
			d.SetCompleted(id, true)
		}
	}
}

func WithTravel(tb domain.TravelBooking) DraftOption {
	return func(d *domain.PlanDraft) {
		d.TravelBooking = tb
	}
}

// NewTestDraft returns a draft whose project step is filled in: France, law,
// master, starting 2030-01-01.
func NewTestDraft(opts ...DraftOption) *domain.PlanDraft {
	d := &domain.PlanDraft{
		ID:                 domain.NewDraftID(),
		ProjectType:        domain.ProjectStudy,
		DestinationCountry: "France",
		Nationality:        "Brazil",
		StartDate:          "2030-01-01",
		EndDate:            "2030-06-30",
		DurationCategory:   domain.DurationSemester,
		StudyLevel:         domain.LevelMaster,
		StudyField:         "law",
	}
	for _, opt := range opts {
		opt(d)
	}
	d.Normalize()
	return d
}

// NewReadyDraft returns a draft with every required step complete.
func NewReadyDraft(opts ...DraftOption) *domain.PlanDraft {
	base := []DraftOption{
		WithInstitution("1"),
		WithAccommodation("dorm"),
		WithDocuments(map[domain.DocumentKind]domain.DocumentMark{
			domain.DocPassport:        domain.MarkHave,
			domain.DocAdmissionLetter: domain.MarkHave,
			domain.DocFinancialProof:  domain.MarkNeed,
		}),
		WithCompleted(domain.StepDocuments),
	}
	return NewTestDraft(append(base, opts...)...)
}
