package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tripwise/internal/domain"
	"github.com/alexanderramin/tripwise/internal/testutil"
)

func TestProjectValues_UntouchedFormIsEmptyPatch(t *testing.T) {
	d := testutil.NewTestDraft()

	p := projectValuesFrom(*d).patch(*d)

	assert.True(t, p.IsEmpty())
}

func TestProjectValues_PatchHoldsOnlyChanges(t *testing.T) {
	d := testutil.NewTestDraft()
	v := projectValuesFrom(*d)
	v.Destination = "  Germany "
	v.Level = string(domain.LevelPhD)

	p := v.patch(*d)

	require.NotNil(t, p.DestinationCountry)
	assert.Equal(t, "Germany", *p.DestinationCountry)
	require.NotNil(t, p.StudyLevel)
	assert.Equal(t, domain.LevelPhD, *p.StudyLevel)
	assert.Nil(t, p.StartDate)
	assert.Nil(t, p.StudyField)
	assert.Nil(t, p.ProjectType)
}

func TestProjectValues_ClearingAField(t *testing.T) {
	d := testutil.NewTestDraft()
	v := projectValuesFrom(*d)
	v.End = ""

	p := v.patch(*d)

	require.NotNil(t, p.EndDate)
	assert.Empty(t, *p.EndDate)
}

func TestTravelValues_Patch(t *testing.T) {
	d := testutil.NewTestDraft()
	v := travelValuesFrom(*d)
	assert.Equal(t, "unknown", v.Visa)
	assert.True(t, v.patch(*d).IsEmpty())

	v.Emergency = "Ana +49 151 0000"
	v.Visa = string(domain.VisaNeed)
	p := v.patch(*d)

	require.NotNil(t, p.EmergencyContact)
	assert.Equal(t, "Ana +49 151 0000", *p.EmergencyContact)
	require.NotNil(t, p.VisaStatus)
	assert.Equal(t, domain.VisaNeed, *p.VisaStatus)
	assert.Nil(t, p.LocalContact)
}

func TestDateValidators(t *testing.T) {
	now := testutil.FixedClock(testutil.Today)

	assert.NoError(t, dateInputValidator(""))
	assert.NoError(t, dateInputValidator("2030-02-28"))
	assert.Error(t, dateInputValidator("28/02/2030"))

	start := startDateValidator(now)
	assert.NoError(t, start(""))
	assert.NoError(t, start(testutil.Today.Format(time.DateOnly)))
	assert.Error(t, start("2020-01-01"))
}
