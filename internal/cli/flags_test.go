package cli

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tripwise/internal/domain"
)

func TestEnumValue(t *testing.T) {
	var level string
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(newEnumValue(&level, studyLevelNames()...), "level", "")

	require.NoError(t, fs.Parse([]string{"--level", "Master"}))
	assert.Equal(t, "master", level)
	assert.True(t, fs.Changed("level"))

	err := fs.Parse([]string{"--level", "kindergarten"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of language, bachelor, master, phd, training")
}

func TestEnumValue_EmptyClears(t *testing.T) {
	v := "study"
	e := newEnumValue(&v, projectTypeNames()...)
	require.NoError(t, e.Set(""))
	assert.Empty(t, v)
	assert.Equal(t, "study|work|language|relocation|tourism", e.Type())
}

func TestParseStep(t *testing.T) {
	id, err := parseStep("Housing")
	require.NoError(t, err)
	assert.Equal(t, domain.StepHousing, id)

	id, err = parseStep("4")
	require.NoError(t, err)
	assert.Equal(t, domain.StepDocuments, id)

	_, err = parseStep("visa")
	assert.ErrorContains(t, err, "unknown step")
}

func TestParseEntityKind(t *testing.T) {
	k, err := parseEntityKind("institutions")
	require.NoError(t, err)
	assert.Equal(t, domain.EntityInstitution, k)

	k, err = parseEntityKind("housing")
	require.NoError(t, err)
	assert.Equal(t, domain.EntityAccommodation, k)

	_, err = parseEntityKind("flights")
	assert.Error(t, err)
}

func TestParseDocument(t *testing.T) {
	k, err := parseDocument("PASSPORT")
	require.NoError(t, err)
	assert.Equal(t, domain.DocPassport, k)

	_, err = parseDocument("library_card")
	assert.ErrorContains(t, err, "unknown document")
}
