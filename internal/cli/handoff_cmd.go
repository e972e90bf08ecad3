package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tripwise/internal/cli/formatter"
	"github.com/alexanderramin/tripwise/internal/handoff"
)

func newSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show everything the plan holds so far",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := app.Engine.Draft()
			sections := handoff.Summary(d, app.Resolver(cmd.Context(), d))
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBox("Summary", formatter.FormatSummary(sections)))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func newHandoffCmd(app *App) *cobra.Command {
	var (
		to      string
		channel string
		history bool
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "handoff",
		Short: "Send the plan summary to an advisor",
		Long: "Builds a message from the current plan and hands it to a help channel.\n" +
			"Delivery happens in the background; failures are logged and kept in the history.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if history {
				if app.History == nil {
					return fmt.Errorf("handoff history is not available")
				}
				recs, err := app.History.ListRecent(cmd.Context(), limit)
				if err != nil {
					return fmt.Errorf("listing handoffs: %w", err)
				}
				fmt.Fprint(w, formatter.FormatHistory(recs, time.Now()))
				return nil
			}

			h, used, err := app.SendHandoff(cmd.Context(), channel, to)
			if err != nil {
				return err
			}
			line := "Handoff queued via " + formatter.Bold(used)
			if h.Recipient != "" {
				line += " to " + h.Recipient
			}
			fmt.Fprintln(w, line+" "+formatter.Dim(h.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Recipient address (defaults to handoff.recipient)")
	cmd.Flags().Var(newEnumValue(&channel, channelNames()...), "channel", "Channel to use (defaults to handoff.channel)")
	cmd.Flags().BoolVar(&history, "history", false, "List recent handoffs instead of sending")
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of history entries to show")
	return cmd
}
