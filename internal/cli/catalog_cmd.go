package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tripwise/internal/catalog"
	"github.com/alexanderramin/tripwise/internal/cli/formatter"
	"github.com/alexanderramin/tripwise/internal/domain"
)

func kindLabel(kind domain.EntityKind) string {
	if kind == domain.EntityAccommodation {
		return "accommodation types"
	}
	return "institutions"
}

// loadForCommand loads a catalog list for the current draft, spinning on
// stderr when a person is watching.
func loadForCommand(cmd *cobra.Command, app *App, kind domain.EntityKind, q catalog.Query) catalog.Result {
	if app.IsInteractive {
		stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Loading "+kindLabel(kind)+"…")
		defer stop()
	}
	return app.LoadCatalog(cmd.Context(), kind, q)
}

func selectedID(d domain.PlanDraft, kind domain.EntityKind) string {
	if kind == domain.EntityAccommodation {
		return d.AccommodationID()
	}
	return d.InstitutionID()
}

func newCatalogCmd(app *App) *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:       "catalog <institutions|housing>",
		Short:     "List institutions or accommodation types for your destination",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"institutions", "housing"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseEntityKind(args[0])
			if err != nil {
				return err
			}
			d := app.Engine.Draft()
			q := catalog.QueryFor(d)
			if cmd.Flags().Changed("country") {
				q.DestinationCountry = strings.TrimSpace(country)
			}

			res := loadForCommand(cmd, app, kind, q)
			if res.Err != nil && !res.Demo {
				return fmt.Errorf("loading %s: %w", kindLabel(kind), res.Err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(res, selectedID(d, kind)))
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Filter by country instead of the draft destination")
	return cmd
}

func newSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select <institution|housing> <id>",
		Short: "Choose an institution or accommodation type by id",
		Example: `  tripwise select institution 7
  tripwise select housing dorm
  tripwise select housing ""   # clear the choice`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseEntityKind(args[0])
			if err != nil {
				return err
			}
			id := strings.TrimSpace(args[1])

			var name string
			if id != "" {
				res := loadForCommand(cmd, app, kind, catalog.QueryFor(app.Engine.Draft()))
				e, ok := domain.FindEntity(res.Entities, id)
				if !ok {
					return fmt.Errorf("no %s with id %q for this destination; see tripwise catalog %s",
						strings.TrimSuffix(kindLabel(kind), "s"), id, args[0])
				}
				name = e.Name
			}

			var p domain.Patch
			if kind == domain.EntityAccommodation {
				p.SelectAccommodation = domain.Ptr(id)
			} else {
				p.SelectInstitution = domain.Ptr(id)
			}
			if err := report(cmd, app.Engine.Update(cmd.Context(), p)); err != nil {
				return err
			}
			if id == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Selection cleared.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Selected %s %s\n", formatter.Bold(name), formatter.Dim("("+id+")"))
			return nil
		},
	}
}
