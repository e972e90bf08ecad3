package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSteps_OrderAndRequired(t *testing.T) {
	got := Steps()
	require.Len(t, got, 6)
	ids := make([]StepID, len(got))
	for i, s := range got {
		ids[i] = s.ID
		assert.Equal(t, i, s.Position)
	}
	assert.Equal(t, []StepID{StepProject, StepInstitution, StepHousing, StepDocuments, StepTravel, StepSummary}, ids)
	assert.Equal(t, []StepID{StepProject, StepInstitution, StepHousing, StepDocuments}, RequiredSteps())
}

func TestSteps_ReturnsCopy(t *testing.T) {
	s := Steps()
	s[0].Label = "mutated"
	assert.Equal(t, "Project", Steps()[0].Label)
}

func TestStepPosition_Unknown(t *testing.T) {
	assert.Equal(t, -1, StepPosition("visa"))
}

func TestClone_IsDeep(t *testing.T) {
	orig := PlanDraft{
		SelectedInstitution: Ptr("7"),
		DocumentChecklist:   map[DocumentKind]DocumentMark{DocPassport: MarkHave},
		CompletedStepIDs:    []StepID{StepProject},
	}
	c := orig.Clone()
	*c.SelectedInstitution = "8"
	c.DocumentChecklist[DocCV] = MarkNeed
	c.CompletedStepIDs[0] = StepHousing

	assert.Equal(t, "7", orig.InstitutionID())
	assert.Len(t, orig.DocumentChecklist, 1)
	assert.Equal(t, StepProject, orig.CompletedStepIDs[0])
}

func TestSetCompleted_OrderedAndDeduplicated(t *testing.T) {
	var d PlanDraft
	d.SetCompleted(StepDocuments, true)
	d.SetCompleted(StepProject, true)
	d.SetCompleted(StepDocuments, true)
	assert.Equal(t, []StepID{StepProject, StepDocuments}, d.CompletedStepIDs)

	d.SetCompleted(StepProject, false)
	assert.Equal(t, []StepID{StepDocuments}, d.CompletedStepIDs)
	assert.True(t, d.HasCompleted(StepDocuments))
	assert.False(t, d.HasCompleted(StepProject))
}

func TestNormalize_DropsUnknownValues(t *testing.T) {
	d := PlanDraft{
		DocumentChecklist: map[DocumentKind]DocumentMark{
			"library_card": MarkHave,
			DocPassport:    "perhaps",
			DocCV:          MarkNeed,
		},
		CompletedStepIDs:    []StepID{"visa", StepTravel, StepProject},
		CurrentStep:         "checkout",
		VisaStatus:          "pending",
		SelectedInstitution: Ptr("  "),
	}
	d.Normalize()

	assert.Equal(t, map[DocumentKind]DocumentMark{DocCV: MarkNeed}, d.DocumentChecklist)
	assert.Equal(t, []StepID{StepProject, StepTravel}, d.CompletedStepIDs)
	assert.Equal(t, StepID(""), d.CurrentStep)
	assert.Equal(t, VisaUnknown, d.VisaStatus)
	assert.Nil(t, d.SelectedInstitution)
}

func TestDocumentKinds_AllLabelled(t *testing.T) {
	for _, k := range DocumentKinds {
		assert.True(t, IsKnownDocument(k))
		assert.NotEqual(t, string(k), k.Label(), "missing label for %s", k)
	}
	assert.False(t, IsKnownDocument("library_card"))
}

func TestCatalogEntity_AvailableIn(t *testing.T) {
	germany := CatalogEntity{ID: "7", Country: "Germany"}
	anywhere := CatalogEntity{ID: "dorm"}

	assert.True(t, germany.AvailableIn("germany"))
	assert.True(t, germany.AvailableIn(""))
	assert.False(t, germany.AvailableIn("France"))
	assert.True(t, anywhere.AvailableIn("France"))
}

func TestNewDraftID_Unique(t *testing.T) {
	assert.NotEqual(t, NewDraftID(), NewDraftID())
}
