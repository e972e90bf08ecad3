package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/tripwise/internal/cli/formatter"
	"github.com/alexanderramin/tripwise/internal/domain"
)

func documentNames() []string {
	out := make([]string, len(domain.DocumentKinds))
	for i, k := range domain.DocumentKinds {
		out[i] = string(k)
	}
	return out
}

func parseDocuments(args []string) ([]domain.DocumentKind, error) {
	kinds := make([]domain.DocumentKind, 0, len(args))
	for _, a := range args {
		k, err := parseDocument(a)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func newDocsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Manage the document checklist",
	}
	cmd.AddCommand(newDocsAddCmd(app), newDocsRemoveCmd(app), newDocsListCmd(app))
	return cmd
}

func newDocsAddCmd(app *App) *cobra.Command {
	var need bool

	cmd := &cobra.Command{
		Use:       "add <kind>...",
		Short:     "Add documents you have (or still need, with --need)",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: documentNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := parseDocuments(args)
			if err != nil {
				return err
			}
			mark := domain.MarkHave
			if need {
				mark = domain.MarkNeed
			}
			p := domain.Patch{MarkDocuments: make(map[domain.DocumentKind]domain.DocumentMark, len(kinds))}
			for _, k := range kinds {
				p.MarkDocuments[k] = mark
			}
			if err := report(cmd, app.Engine.Update(cmd.Context(), p)); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDocuments(app.Engine.Draft()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&need, "need", false, "Mark the documents as still needed")
	return cmd
}

func newDocsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "remove <kind>...",
		Aliases:   []string{"rm"},
		Short:     "Take documents off the checklist",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: documentNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := parseDocuments(args)
			if err != nil {
				return err
			}
			if err := report(cmd, app.Engine.Update(cmd.Context(), domain.Patch{UnmarkDocuments: kinds})); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDocuments(app.Engine.Draft()))
			return nil
		},
	}
}

func newDocsListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the checklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if !all {
				fmt.Fprint(w, formatter.FormatDocuments(app.Engine.Draft()))
				return nil
			}
			rows := make([][]string, 0, len(domain.DocumentKinds))
			d := app.Engine.Draft()
			for _, k := range domain.DocumentKinds {
				mark := formatter.Dim("--")
				switch d.DocumentChecklist[k] {
				case domain.MarkHave:
					mark = formatter.StyleGreen.Render("have")
				case domain.MarkNeed:
					mark = formatter.StyleYellow.Render("need")
				}
				rows = append(rows, []string{formatter.StyleBlue.Render(string(k)), k.Label(), mark})
			}
			fmt.Fprint(w, formatter.RenderTable([]string{"KIND", "DOCUMENT", "MARK"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every known document kind")
	return cmd
}
