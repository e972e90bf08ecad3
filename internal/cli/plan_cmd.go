package cli

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/tripwise/internal/cli/formatter"
	"github.com/alexanderramin/tripwise/internal/handoff"
)

// lockedBuffer collects stdout handoffs while the full-screen flow owns the
// terminal; they are printed once it exits.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.WriteTo(w)
}

func newPlanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Open the interactive step-by-step flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, app)
		},
	}
}

func runPlan(cmd *cobra.Command, app *App) error {
	held := &lockedBuffer{}
	if _, ok := app.Channels["stdout"]; ok {
		app.ReplaceChannel("stdout", handoff.NewWriterChannel(held))
	}

	m := newPlanModel(cmd.Context(), app)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interactive flow: %w", err)
	}

	app.Wait()
	out := cmd.OutOrStdout()
	if _, err := held.WriteTo(out); err != nil {
		return err
	}
	fmt.Fprintln(out, formatter.FormatStatus(statusData(app.Engine)))
	return nil
}
