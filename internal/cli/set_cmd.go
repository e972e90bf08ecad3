package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tripwise/internal/cli/formatter"
	"github.com/alexanderramin/tripwise/internal/domain"
)

type setOptions struct {
	projectType, destination, nationality, from string
	start, end, duration, level, field          string
	visa, emergency, local                      string
	flight, insurance, transfer                 bool
}

// patch builds a patch from the flags that were given on the command line.
func (o *setOptions) patch(cmd *cobra.Command) domain.Patch {
	var p domain.Patch
	changed := cmd.Flags().Changed
	str := func(name, v string) *string {
		if changed(name) {
			return domain.Ptr(v)
		}
		return nil
	}

	if changed("type") {
		p.ProjectType = domain.Ptr(domain.ProjectType(o.projectType))
	}
	p.DestinationCountry = str("destination", o.destination)
	p.Nationality = str("nationality", o.nationality)
	p.CurrentCountry = str("from", o.from)
	p.StartDate = str("start", o.start)
	p.EndDate = str("end", o.end)
	if changed("duration") {
		p.DurationCategory = domain.Ptr(domain.DurationCategory(o.duration))
	}
	if changed("level") {
		p.StudyLevel = domain.Ptr(domain.StudyLevel(o.level))
	}
	p.StudyField = str("field", o.field)
	if changed("visa") {
		p.VisaStatus = domain.Ptr(domain.VisaStatus(o.visa))
	}
	if changed("flight") {
		p.FlightBooked = domain.Ptr(o.flight)
	}
	if changed("insurance") {
		p.InsuranceActive = domain.Ptr(o.insurance)
	}
	if changed("transfer") {
		p.TransferBooked = domain.Ptr(o.transfer)
	}
	p.EmergencyContact = str("emergency", o.emergency)
	p.LocalContact = str("local", o.local)
	return p
}

func newSetCmd(app *App) *cobra.Command {
	var o setOptions

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update fields of the draft",
		Example: `  tripwise set --destination Germany --field "computer science" --level master --start 2027-10-01
  tripwise set --flight --insurance --emergency "Ana +49 151 0000"
  tripwise set --end ""`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := o.patch(cmd)
			if p.IsEmpty() {
				return fmt.Errorf("nothing to set; see tripwise set --help")
			}
			if err := report(cmd, app.Engine.Update(cmd.Context(), p)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved. Overall progress %s\n",
				formatter.RenderProgress(formatter.Percent(app.Engine.OverallProgress()), 20))
			return nil
		},
	}

	f := cmd.Flags()
	f.Var(newEnumValue(&o.projectType, projectTypeNames()...), "type", "Project type")
	f.StringVar(&o.destination, "destination", "", "Destination country")
	f.StringVar(&o.nationality, "nationality", "", "Your nationality")
	f.StringVar(&o.from, "from", "", "Country you live in now")
	f.StringVar(&o.start, "start", "", "Start date (YYYY-MM-DD, today or later)")
	f.StringVar(&o.end, "end", "", "End date (YYYY-MM-DD, not before the start)")
	f.Var(newEnumValue(&o.duration, durationNames()...), "duration", "Duration category")
	f.Var(newEnumValue(&o.level, studyLevelNames()...), "level", "Study level")
	f.StringVar(&o.field, "field", "", "Field of study")
	f.Var(newEnumValue(&o.visa, visaNames()...), "visa", "Visa status")
	f.BoolVar(&o.flight, "flight", false, "Flight booked")
	f.BoolVar(&o.insurance, "insurance", false, "Travel insurance active")
	f.BoolVar(&o.transfer, "transfer", false, "Airport transfer booked")
	f.StringVar(&o.emergency, "emergency", "", "Emergency contact")
	f.StringVar(&o.local, "local", "", "Local contact at the destination")

	return cmd
}
