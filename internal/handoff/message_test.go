package handoff

import (
	"testing"

	"github.com/alexanderramin/tripwise/internal/domain"
	"github.com/alexanderramin/tripwise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(kind domain.EntityKind, id string) string {
	if kind == domain.EntityInstitution && id == "1" {
		return "Sorbonne University"
	}
	return ""
}

func TestBuildMessage_ReadyDraft(t *testing.T) {
	d := testutil.NewReadyDraft(testutil.WithTravel(domain.TravelBooking{
		FlightBooked:     true,
		EmergencyContact: "Ana +34 600 000 000",
	}))
	d.VisaStatus = domain.VisaNeed

	body := BuildMessage(*d, names)

	assert.Contains(t, body, "Destination: France")
	assert.Contains(t, body, "Dates: 2030-01-01 to 2030-06-30")
	assert.Contains(t, body, "Selected: Sorbonne University (#1)")
	assert.Contains(t, body, "Accommodation: #dorm")
	assert.Contains(t, body, "Have: Valid passport, Admission letter")
	assert.Contains(t, body, "Need: Proof of financial means")
	assert.Contains(t, body, "Visa: need a visa")
	assert.Contains(t, body, "Flight booked: yes")
	assert.Contains(t, body, "Insurance active: no")
	assert.Contains(t, body, "Emergency contact: Ana +34 600 000 000")
	assert.Contains(t, body, "Documents: complete")
	assert.Contains(t, body, "Travel: 50%")
}

func TestBuildMessage_EmptyDraft(t *testing.T) {
	body := BuildMessage(domain.PlanDraft{}, nil)

	assert.Contains(t, body, "(0% complete)")
	assert.Contains(t, body, "Destination: not set")
	assert.Contains(t, body, "Selected: not set")
	assert.Contains(t, body, "Have: none")
	assert.Contains(t, body, "Visa: unknown")
	assert.Contains(t, body, "Project: not started")
}

func TestSummary_SectionOrder(t *testing.T) {
	secs := Summary(domain.PlanDraft{}, nil)
	require.Len(t, secs, 6)
	titles := make([]string, len(secs))
	for i, s := range secs {
		titles[i] = s.Title
	}
	assert.Equal(t, []string{"Project", "Institution", "Housing", "Documents", "Travel", "Progress"}, titles)
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Trip plan summary", Subject(domain.PlanDraft{}))
	assert.Equal(t, "Trip plan: Spain", Subject(domain.PlanDraft{DestinationCountry: "Spain"}))
	assert.Equal(t, "Trip plan: France from 2030-01-01", Subject(*testutil.NewTestDraft()))
}

func TestNew_AssignsIdentity(t *testing.T) {
	d := testutil.NewTestDraft()
	a := New(*d, "advisor@example.org", nil)
	b := New(*d, "advisor@example.org", nil)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, d.ID, a.DraftID)
	assert.Equal(t, a.Body, b.Body)
}
