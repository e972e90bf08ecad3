package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "tripwise" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tripwise",
		Short: "Step-by-step planner for studying or living abroad",
		Long: "tripwise walks you through a study or travel plan one step at a time:\n" +
			"project, institution, housing, documents, travel and a final summary.\n" +
			"Your draft is saved after every change.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.Engine.Restore(cmd.Context())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Wait()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive {
				return runPlan(cmd, app)
			}
			return printStatus(cmd, app)
		},
	}

	root.AddCommand(
		newPlanCmd(app),
		newStatusCmd(app),
		newSetCmd(app),
		newNextCmd(app),
		newBackCmd(app),
		newGotoCmd(app),
		newDoneCmd(app),
		newCatalogCmd(app),
		newSelectCmd(app),
		newDocsCmd(app),
		newSummaryCmd(app),
		newHandoffCmd(app),
		newFinishCmd(app),
		newResetCmd(app),
		newConfigCmd(app),
	)

	return root
}
