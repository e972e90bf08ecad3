package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/tripwise/internal/cli/formatter"
	"github.com/alexanderramin/tripwise/internal/domain"
	"github.com/alexanderramin/tripwise/internal/flow"
)

// stepRows snapshots the engine into formatter rows.
func stepRows(e *flow.Engine) []formatter.StepRow {
	current := e.Current().ID
	steps := e.Steps()
	rows := make([]formatter.StepRow, len(steps))
	for i, s := range steps {
		rows[i] = formatter.StepRow{
			ID:       s.ID,
			Label:    s.Label,
			Required: s.Required,
			Current:  s.ID == current,
			Status:   e.StepStatus(s.ID),
			Percent:  e.StepProgress(s.ID),
		}
	}
	return rows
}

func statusData(e *flow.Engine) formatter.StatusData {
	d := e.Draft()
	return formatter.StatusData{
		Steps:       stepRows(e),
		Overall:     e.OverallProgress(),
		Destination: d.DestinationCountry,
		StartDate:   d.StartDate,
		Now:         e.Now(),
	}
}

func printStatus(cmd *cobra.Command, app *App) error {
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStatus(statusData(app.Engine)))
	return nil
}

// report prints the notes of an outcome and converts a refusal into an error.
func report(cmd *cobra.Command, out flow.Outcome) error {
	if !out.OK {
		return errors.New(out.Reason)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOutcomeNotes(out))
	return nil
}

// reportMove prints where a navigation landed.
func reportMove(cmd *cobra.Command, app *App, out flow.Outcome) error {
	if err := report(cmd, out); err != nil {
		return err
	}
	s := app.Engine.Current()
	fmt.Fprintf(cmd.OutOrStdout(), "Now on %s %s\n",
		formatter.Bold(s.Label),
		formatter.Dim(fmt.Sprintf("(step %d of %d)", s.Position+1, len(app.Engine.Steps()))))
	return nil
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show step progress and the overall percentage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printStatus(cmd, app)
		},
	}
}

func newNextCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Advance to the next step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportMove(cmd, app, app.Engine.GoNext(cmd.Context()))
		},
	}
}

func newBackCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "back",
		Aliases: []string{"prev"},
		Short:   "Go back one step",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportMove(cmd, app, app.Engine.GoPrevious(cmd.Context()))
		},
	}
}

func newGotoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "goto <step>",
		Short:     "Jump to a step by name or number",
		Args:      cobra.ExactArgs(1),
		ValidArgs: stepNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseStep(args[0])
			if err != nil {
				return err
			}
			return reportMove(cmd, app, app.Engine.JumpTo(cmd.Context(), id))
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:       "done [step]",
		Short:     "Mark a step complete (defaults to the current step)",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: stepNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := app.Engine.Current().ID
			if len(args) == 1 {
				var err error
				if id, err = parseStep(args[0]); err != nil {
					return err
				}
			}
			var out flow.Outcome
			if undo {
				out = app.Engine.UnmarkComplete(cmd.Context(), id)
			} else {
				out = app.Engine.MarkComplete(cmd.Context(), id)
			}
			if err := report(cmd, out); err != nil {
				return err
			}
			s, _ := domain.StepByID(id)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Bold(s.Label), formatter.StatusLabel(app.Engine.StepStatus(id)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Withdraw the explicit completion")
	return cmd
}

func newFinishCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "finish",
		Short: "Close the plan once every required step is complete",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := report(cmd, app.Engine.Finish(cmd.Context())); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Plan finished. Good luck with the move!"))
			return nil
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the saved draft and the handoff history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.IsInteractive {
					return errors.New("refusing to reset without --yes")
				}
				confirmed := false
				form := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title("Delete the saved plan and its handoff history?").
						Affirmative("Delete").
						Negative("Keep").
						Value(&confirmed),
				)).WithTheme(tripwiseHuhTheme()).WithShowHelp(false)
				if err := form.RunWithContext(cmd.Context()); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Nothing deleted."))
					return nil
				}
			}
			if err := app.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("resetting plan: %w", err)
			}
			app.Engine.Discard()
			fmt.Fprintln(cmd.OutOrStdout(), "Plan cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
