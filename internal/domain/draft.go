package domain

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// TravelBooking groups the travel-step flags and contacts.
type TravelBooking struct {
	FlightBooked     bool   `json:"flightBooked"`
	InsuranceActive  bool   `json:"insuranceActive"`
	TransferBooked   bool   `json:"transferBooked"`
	EmergencyContact string `json:"emergencyContact,omitempty"`
	LocalContact     string `json:"localContact,omitempty"`
}

// PlanDraft is the single in-progress trip or study plan. It serializes to a
// flat JSON object; unknown keys are ignored and missing keys decode to their
// zero value.
type PlanDraft struct {
	ID                        string                        `json:"id,omitempty"`
	ProjectType               ProjectType                   `json:"projectType,omitempty"`
	DestinationCountry        string                        `json:"destinationCountry,omitempty"`
	Nationality               string                        `json:"nationality,omitempty"`
	CurrentCountry            string                        `json:"currentCountry,omitempty"`
	StartDate                 string                        `json:"startDate,omitempty"`
	EndDate                   string                        `json:"endDate,omitempty"`
	DurationCategory          DurationCategory              `json:"durationCategory,omitempty"`
	StudyLevel                StudyLevel                    `json:"studyLevel,omitempty"`
	StudyField                string                        `json:"studyField,omitempty"`
	SelectedInstitution       *string                       `json:"selectedInstitution"`
	SelectedAccommodationType *string                       `json:"selectedAccommodationType"`
	DocumentChecklist         map[DocumentKind]DocumentMark `json:"documentChecklist,omitempty"`
	VisaStatus                VisaStatus                    `json:"visaStatus,omitempty"`
	TravelBooking             TravelBooking                 `json:"travelBooking"`
	CompletedStepIDs          []StepID                      `json:"completedStepIds,omitempty"`
	CurrentStep               StepID                        `json:"currentStep,omitempty"`
	UpdatedAt                 string                        `json:"updatedAt,omitempty"`
}

// NewDraftID returns a fresh identifier for a draft.
func NewDraftID() string {
	return uuid.New().String()
}

// Clone returns a deep copy of d.
func (d PlanDraft) Clone() PlanDraft {
	out := d
	if d.SelectedInstitution != nil {
		v := *d.SelectedInstitution
		out.SelectedInstitution = &v
	}
	if d.SelectedAccommodationType != nil {
		v := *d.SelectedAccommodationType
		out.SelectedAccommodationType = &v
	}
	if d.DocumentChecklist != nil {
		out.DocumentChecklist = make(map[DocumentKind]DocumentMark, len(d.DocumentChecklist))
		for k, v := range d.DocumentChecklist {
			out.DocumentChecklist[k] = v
		}
	}
	if d.CompletedStepIDs != nil {
		out.CompletedStepIDs = append([]StepID(nil), d.CompletedStepIDs...)
	}
	return out
}

// InstitutionID returns the selected institution id, or "".
func (d PlanDraft) InstitutionID() string {
	return deref(d.SelectedInstitution)
}

// AccommodationID returns the selected accommodation type id, or "".
func (d PlanDraft) AccommodationID() string {
	return deref(d.SelectedAccommodationType)
}

// HasCompleted reports whether id was explicitly marked done.
func (d PlanDraft) HasCompleted(id StepID) bool {
	for _, s := range d.CompletedStepIDs {
		if s == id {
			return true
		}
	}
	return false
}

// SetCompleted adds or removes id from the explicit completion set.
func (d *PlanDraft) SetCompleted(id StepID, done bool) {
	if done {
		if !d.HasCompleted(id) {
			d.CompletedStepIDs = append(d.CompletedStepIDs, id)
		}
	} else {
		kept := d.CompletedStepIDs[:0]
		for _, s := range d.CompletedStepIDs {
			if s != id {
				kept = append(kept, s)
			}
		}
		d.CompletedStepIDs = kept
	}
	d.Normalize()
}

// DocumentsByMark returns the checklist kinds carrying mark, in catalog order.
func (d PlanDraft) DocumentsByMark(mark DocumentMark) []DocumentKind {
	var out []DocumentKind
	for _, k := range DocumentKinds {
		if m, ok := d.DocumentChecklist[k]; ok && m == mark {
			out = append(out, k)
		}
	}
	return out
}

// Normalize brings a draft into canonical form: empty collections become nil,
// unknown document kinds and step ids are dropped, completed steps are ordered
// by position, and an unknown visa status folds to VisaUnknown.
func (d *PlanDraft) Normalize() {
	for k, m := range d.DocumentChecklist {
		if !IsKnownDocument(k) || (m != MarkHave && m != MarkNeed) {
			delete(d.DocumentChecklist, k)
		}
	}
	if len(d.DocumentChecklist) == 0 {
		d.DocumentChecklist = nil
	}

	seen := make(map[StepID]bool, len(d.CompletedStepIDs))
	var completed []StepID
	for _, id := range d.CompletedStepIDs {
		if StepPosition(id) < 0 || seen[id] {
			continue
		}
		seen[id] = true
		completed = append(completed, id)
	}
	sort.Slice(completed, func(i, j int) bool {
		return StepPosition(completed[i]) < StepPosition(completed[j])
	})
	d.CompletedStepIDs = completed

	if d.CurrentStep != "" && StepPosition(d.CurrentStep) < 0 {
		d.CurrentStep = ""
	}
	if v, ok := ParseVisaStatus(string(d.VisaStatus)); ok {
		d.VisaStatus = v
	} else {
		d.VisaStatus = VisaUnknown
	}
	if d.SelectedInstitution != nil && strings.TrimSpace(*d.SelectedInstitution) == "" {
		d.SelectedInstitution = nil
	}
	if d.SelectedAccommodationType != nil && strings.TrimSpace(*d.SelectedAccommodationType) == "" {
		d.SelectedAccommodationType = nil
	}
}
