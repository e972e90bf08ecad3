package cli

import (
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/tripwise/internal/cli/formatter"
	"github.com/alexanderramin/tripwise/internal/domain"
)

// tripwiseHuhTheme returns a huh theme using the Gruvbox palette.
func tripwiseHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// enumOptions builds select options with a leading "not set" choice.
func enumOptions(values []string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(values)+1)
	opts = append(opts, huh.NewOption("not set", ""))
	for _, v := range values {
		opts = append(opts, huh.NewOption(strings.ReplaceAll(v, "_", " "), v))
	}
	return opts
}

// projectValues backs the project form.
type projectValues struct {
	Type        string
	Destination string
	Nationality string
	From        string
	Start       string
	End         string
	Duration    string
	Level       string
	Field       string
}

func projectValuesFrom(d domain.PlanDraft) *projectValues {
	return &projectValues{
		Type:        string(d.ProjectType),
		Destination: d.DestinationCountry,
		Nationality: d.Nationality,
		From:        d.CurrentCountry,
		Start:       d.StartDate,
		End:         d.EndDate,
		Duration:    string(d.DurationCategory),
		Level:       string(d.StudyLevel),
		Field:       d.StudyField,
	}
}

// patch returns only what changed against d, so an untouched start date that
// has since slipped into the past does not block saving other fields.
func (v *projectValues) patch(d domain.PlanDraft) domain.Patch {
	var p domain.Patch
	str := func(next, cur string) *string {
		next = strings.TrimSpace(next)
		if next == cur {
			return nil
		}
		return domain.Ptr(next)
	}
	if v.Type != string(d.ProjectType) {
		p.ProjectType = domain.Ptr(domain.ProjectType(v.Type))
	}
	p.DestinationCountry = str(v.Destination, d.DestinationCountry)
	p.Nationality = str(v.Nationality, d.Nationality)
	p.CurrentCountry = str(v.From, d.CurrentCountry)
	p.StartDate = str(v.Start, d.StartDate)
	p.EndDate = str(v.End, d.EndDate)
	if v.Duration != string(d.DurationCategory) {
		p.DurationCategory = domain.Ptr(domain.DurationCategory(v.Duration))
	}
	if v.Level != string(d.StudyLevel) {
		p.StudyLevel = domain.Ptr(domain.StudyLevel(v.Level))
	}
	p.StudyField = str(v.Field, d.StudyField)
	return p
}

// dateInputValidator checks the YYYY-MM-DD shape while typing; the engine
// checks the calendar rules when the form is submitted.
func dateInputValidator(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := domain.ParseDate(strings.TrimSpace(s))
	return err
}

func startDateValidator(now func() time.Time) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		return domain.ValidateStartDate(s, now())
	}
}

// projectForm creates the two-page project form.
func projectForm(v *projectValues, now func() time.Time) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What kind of project?").
				Options(enumOptions(projectTypeNames())...).
				Value(&v.Type),
			huh.NewInput().
				Title("Destination country").
				Placeholder("Germany").
				Value(&v.Destination),
			huh.NewInput().
				Title("Nationality").
				Value(&v.Nationality),
			huh.NewInput().
				Title("Where do you live now?").
				Value(&v.From),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Description("YYYY-MM-DD, today or later").
				Value(&v.Start).
				Validate(startDateValidator(now)),
			huh.NewInput().
				Title("End date").
				Description("YYYY-MM-DD, optional").
				Value(&v.End).
				Validate(dateInputValidator),
			huh.NewSelect[string]().
				Title("How long?").
				Options(enumOptions(durationNames())...).
				Value(&v.Duration),
			huh.NewSelect[string]().
				Title("Study level").
				Options(enumOptions(studyLevelNames())...).
				Value(&v.Level),
			huh.NewInput().
				Title("Field of study").
				Placeholder("computer science").
				Value(&v.Field),
		),
	).WithTheme(tripwiseHuhTheme()).WithShowHelp(false)
}

// travelValues backs the travel contacts form.
type travelValues struct {
	Emergency string
	Local     string
	Visa      string
}

func travelValuesFrom(d domain.PlanDraft) *travelValues {
	visa := string(d.VisaStatus)
	if visa == "" {
		visa = "unknown"
	}
	return &travelValues{
		Emergency: d.TravelBooking.EmergencyContact,
		Local:     d.TravelBooking.LocalContact,
		Visa:      visa,
	}
}

func (v *travelValues) patch(d domain.PlanDraft) domain.Patch {
	var p domain.Patch
	if e := strings.TrimSpace(v.Emergency); e != d.TravelBooking.EmergencyContact {
		p.EmergencyContact = domain.Ptr(e)
	}
	if l := strings.TrimSpace(v.Local); l != d.TravelBooking.LocalContact {
		p.LocalContact = domain.Ptr(l)
	}
	if visa, ok := domain.ParseVisaStatus(v.Visa); ok && visa != d.VisaStatus {
		p.VisaStatus = domain.Ptr(visa)
	}
	return p
}

func travelForm(v *travelValues) *huh.Form {
	visaOpts := []huh.Option[string]{
		huh.NewOption("not sure yet", "unknown"),
		huh.NewOption("I have a visa", string(domain.VisaHave)),
		huh.NewOption("I need a visa", string(domain.VisaNeed)),
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Emergency contact").
				Placeholder("name and phone").
				Value(&v.Emergency),
			huh.NewInput().
				Title("Local contact at the destination").
				Value(&v.Local),
			huh.NewSelect[string]().
				Title("Visa").
				Options(visaOpts...).
				Value(&v.Visa),
		),
	).WithTheme(tripwiseHuhTheme()).WithShowHelp(false)
}
