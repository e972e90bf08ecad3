package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/tripwise/internal/domain"
)

// enumValue is a pflag.Value restricted to a closed set of spellings.
// The empty string is always accepted and means "clear".
type enumValue struct {
	target  *string
	allowed []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(target *string, allowed ...string) *enumValue {
	return &enumValue{target: target, allowed: allowed}
}

func (e *enumValue) String() string {
	if e.target == nil {
		return ""
	}
	return *e.target
}

func (e *enumValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		*e.target = ""
		return nil
	}
	for _, a := range e.allowed {
		if s == a {
			*e.target = s
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
}

func (e *enumValue) Type() string {
	return strings.Join(e.allowed, "|")
}

func projectTypeNames() []string {
	return []string{
		string(domain.ProjectStudy), string(domain.ProjectWork), string(domain.ProjectLanguage),
		string(domain.ProjectRelocation), string(domain.ProjectTourism),
	}
}

func studyLevelNames() []string {
	return []string{
		string(domain.LevelLanguage), string(domain.LevelBachelor), string(domain.LevelMaster),
		string(domain.LevelPhD), string(domain.LevelTraining),
	}
}

func durationNames() []string {
	return []string{
		string(domain.DurationShort), string(domain.DurationSemester),
		string(domain.DurationYear), string(domain.DurationMulti),
	}
}

func visaNames() []string {
	return []string{"unknown", string(domain.VisaHave), string(domain.VisaNeed)}
}

func channelNames() []string {
	return []string{"stdout", "mailto", "smtp"}
}

func stepNames() []string {
	steps := domain.Steps()
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = string(s.ID)
	}
	return out
}

// parseStep resolves a step id or 1-based position.
func parseStep(arg string) (domain.StepID, error) {
	arg = strings.ToLower(strings.TrimSpace(arg))
	steps := domain.Steps()
	for _, s := range steps {
		if string(s.ID) == arg || fmt.Sprint(s.Position+1) == arg {
			return s.ID, nil
		}
	}
	return "", fmt.Errorf("unknown step %q (want %s)", arg, strings.Join(stepNames(), ", "))
}

// parseEntityKind maps the command spellings onto catalog kinds.
func parseEntityKind(arg string) (domain.EntityKind, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "institution", "institutions", "school", "schools":
		return domain.EntityInstitution, nil
	case "housing", "accommodation", "accommodations":
		return domain.EntityAccommodation, nil
	default:
		return "", fmt.Errorf("unknown catalog %q (want institutions or housing)", arg)
	}
}

// parseDocument accepts a document kind id.
func parseDocument(arg string) (domain.DocumentKind, error) {
	k := domain.DocumentKind(strings.ToLower(strings.TrimSpace(arg)))
	if !domain.IsKnownDocument(k) {
		names := make([]string, len(domain.DocumentKinds))
		for i, d := range domain.DocumentKinds {
			names[i] = string(d)
		}
		return "", fmt.Errorf("unknown document %q (want one of %s)", arg, strings.Join(names, ", "))
	}
	return k, nil
}
