package domain

import (
	"fmt"
	"strings"
	"time"
)

// Patch is a partial update to a PlanDraft. Nil fields are left untouched. For
// string fields a pointer to "" clears the value; for the two selections it
// clears the reference back to null.
type Patch struct {
	ProjectType        *ProjectType
	DestinationCountry *string
	Nationality        *string
	CurrentCountry     *string
	StartDate          *string
	EndDate            *string
	DurationCategory   *DurationCategory
	StudyLevel         *StudyLevel
	StudyField         *string

	SelectInstitution   *string
	SelectAccommodation *string
	MarkDocuments       map[DocumentKind]DocumentMark
	UnmarkDocuments     []DocumentKind
	VisaStatus          *VisaStatus

	FlightBooked     *bool
	InsuranceActive  *bool
	TransferBooked   *bool
	EmergencyContact *string
	LocalContact     *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.ProjectType == nil && p.DestinationCountry == nil && p.Nationality == nil &&
		p.CurrentCountry == nil && p.StartDate == nil && p.EndDate == nil &&
		p.DurationCategory == nil && p.StudyLevel == nil && p.StudyField == nil &&
		p.SelectInstitution == nil && p.SelectAccommodation == nil &&
		len(p.MarkDocuments) == 0 && len(p.UnmarkDocuments) == 0 && p.VisaStatus == nil &&
		p.FlightBooked == nil && p.InsuranceActive == nil && p.TransferBooked == nil &&
		p.EmergencyContact == nil && p.LocalContact == nil
}

// Validate checks the write-time invariants against the draft the patch will
// be applied to: a new start date may not be in the past, the end date may not
// precede the effective start date, checklist entries must come from the
// document catalog, and the visa status must be one of the three states.
func (p Patch) Validate(current PlanDraft, now time.Time) error {
	start := current.StartDate
	if p.StartDate != nil {
		start = strings.TrimSpace(*p.StartDate)
		if start != "" {
			if err := ValidateStartDate(start, now); err != nil {
				return err
			}
		}
	}

	end := current.EndDate
	if p.EndDate != nil {
		end = strings.TrimSpace(*p.EndDate)
	}
	if end != "" && (p.EndDate != nil || p.StartDate != nil) {
		if err := ValidateEndDate(end, start); err != nil {
			return err
		}
	}

	for k, m := range p.MarkDocuments {
		if !IsKnownDocument(k) {
			return fmt.Errorf("unknown document %q", k)
		}
		if m != MarkHave && m != MarkNeed {
			return fmt.Errorf("document %q must be marked %q or %q", k, MarkHave, MarkNeed)
		}
	}
	for _, k := range p.UnmarkDocuments {
		if !IsKnownDocument(k) {
			return fmt.Errorf("unknown document %q", k)
		}
	}

	if p.VisaStatus != nil {
		if _, ok := ParseVisaStatus(string(*p.VisaStatus)); !ok {
			return fmt.Errorf("visa status %q must be unknown, have_visa or need_visa", *p.VisaStatus)
		}
	}
	return nil
}

// Apply merges p into d without validating. Callers validate first.
func (d *PlanDraft) Apply(p Patch) {
	setStr := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	setRef := func(dst **string, v *string) {
		if v == nil {
			return
		}
		id := strings.TrimSpace(*v)
		if id == "" {
			*dst = nil
			return
		}
		*dst = &id
	}
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}

	if p.ProjectType != nil {
		d.ProjectType = *p.ProjectType
	}
	setStr(&d.DestinationCountry, p.DestinationCountry)
	setStr(&d.Nationality, p.Nationality)
	setStr(&d.CurrentCountry, p.CurrentCountry)
	setStr(&d.StartDate, p.StartDate)
	setStr(&d.EndDate, p.EndDate)
	if p.DurationCategory != nil {
		d.DurationCategory = *p.DurationCategory
	}
	if p.StudyLevel != nil {
		d.StudyLevel = *p.StudyLevel
	}
	setStr(&d.StudyField, p.StudyField)

	setRef(&d.SelectedInstitution, p.SelectInstitution)
	setRef(&d.SelectedAccommodationType, p.SelectAccommodation)

	if len(p.MarkDocuments) > 0 && d.DocumentChecklist == nil {
		d.DocumentChecklist = make(map[DocumentKind]DocumentMark, len(p.MarkDocuments))
	}
	for k, m := range p.MarkDocuments {
		d.DocumentChecklist[k] = m
	}
	for _, k := range p.UnmarkDocuments {
		delete(d.DocumentChecklist, k)
	}
	if p.VisaStatus != nil {
		d.VisaStatus, _ = ParseVisaStatus(string(*p.VisaStatus))
	}

	setBool(&d.TravelBooking.FlightBooked, p.FlightBooked)
	setBool(&d.TravelBooking.InsuranceActive, p.InsuranceActive)
	setBool(&d.TravelBooking.TransferBooked, p.TransferBooked)
	setStr(&d.TravelBooking.EmergencyContact, p.EmergencyContact)
	setStr(&d.TravelBooking.LocalContact, p.LocalContact)

	d.Normalize()
}
