package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable lays rows out under a header and a rule. Widths are measured
// with lipgloss so styled cells line up; the last column is never padded.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	widths := columnWidths(headers, rows)
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = StyleDim.Render(strings.Repeat("─", w))
	}

	var b strings.Builder
	writeCells(&b, widths, headers, StyleHeader.Render)
	writeCells(&b, widths, rule, nil)
	for _, row := range rows {
		writeCells(&b, widths, row, nil)
	}
	return b.String()
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := range min(len(row), len(widths)) {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	return widths
}

func writeCells(b *strings.Builder, widths []int, cells []string, style func(...string) string) {
	last := len(widths) - 1
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if style != nil {
			b.WriteString(style(cell))
		} else {
			b.WriteString(cell)
		}
		if i < last {
			b.WriteString(strings.Repeat(" ", w-lipgloss.Width(cell)+colGap))
		}
	}
	b.WriteByte('\n')
}
