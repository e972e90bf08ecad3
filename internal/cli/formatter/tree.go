package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one row of a two-level tree: a heading (Level 0) or a leaf
// under the most recent heading.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	Detail string
}

// RenderTree draws headings flush left and leaves behind ├─ / └─ connectors.
// Details of all leaves start in one column.
func RenderTree(items []TreeItem) string {
	heads := make([]string, len(items))
	col := 0
	for i, it := range items {
		switch {
		case it.Level == 0:
			heads[i] = StyleHeader.Render(it.Title)
		case it.IsLast:
			heads[i] = StyleDim.Render(strings.Repeat("│  ", it.Level-1)+"└─ ") + it.Title
		default:
			heads[i] = StyleDim.Render(strings.Repeat("│  ", it.Level-1)+"├─ ") + it.Title
		}
		if it.Detail != "" {
			col = max(col, lipgloss.Width(heads[i]))
		}
	}

	var b strings.Builder
	for i, it := range items {
		b.WriteString(heads[i])
		if it.Detail != "" {
			b.WriteString(strings.Repeat(" ", col-lipgloss.Width(heads[i])+2))
			b.WriteString(it.Detail)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
