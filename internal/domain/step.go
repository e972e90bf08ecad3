package domain

type StepID string

const (
	StepProject     StepID = "project"
	StepInstitution StepID = "institution"
	StepHousing     StepID = "housing"
	StepDocuments   StepID = "documents"
	StepTravel      StepID = "travel"
	StepSummary     StepID = "summary"
)

// Step is a static descriptor of one stage of the planning flow.
type Step struct {
	ID       StepID
	Label    string
	Required bool
	Position int
}

var steps = []Step{
	{ID: StepProject, Label: "Project", Required: true, Position: 0},
	{ID: StepInstitution, Label: "Institution", Required: true, Position: 1},
	{ID: StepHousing, Label: "Housing", Required: true, Position: 2},
	{ID: StepDocuments, Label: "Documents", Required: true, Position: 3},
	{ID: StepTravel, Label: "Travel", Required: false, Position: 4},
	{ID: StepSummary, Label: "Summary", Required: false, Position: 5},
}

// Steps returns the ordered step table. The slice is a copy; the table itself
// never changes during a session.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// StepByID looks up a step descriptor.
func StepByID(id StepID) (Step, bool) {
	for _, s := range steps {
		if s.ID == id {
			return s, true
		}
	}
	return Step{}, false
}

// StepPosition returns the ordering position of id, or -1 if unknown.
func StepPosition(id StepID) int {
	if s, ok := StepByID(id); ok {
		return s.Position
	}
	return -1
}

// RequiredSteps returns the ids of all required steps in order.
func RequiredSteps() []StepID {
	var ids []StepID
	for _, s := range steps {
		if s.Required {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
