package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/tripwise/internal/handoff"
	"github.com/alexanderramin/tripwise/internal/repository"
)

// FormatSummary renders the summary sections as a tree with aligned values.
func FormatSummary(sections []handoff.Section) string {
	var items []TreeItem
	for _, s := range sections {
		items = append(items, TreeItem{Title: s.Title})
		for i, l := range s.Lines {
			items = append(items, TreeItem{
				Title:  StyleFg.Render(l.Label),
				Level:  1,
				IsLast: i == len(s.Lines)-1,
				Detail: summaryValue(l.Value),
			})
		}
	}
	return RenderTree(items)
}

func summaryValue(v string) string {
	if v == "not set" || v == "" {
		return Dim("not set")
	}
	return StyleBlue.Render(v)
}

// FormatHistory lists recorded handoffs, newest first.
func FormatHistory(records []*repository.HandoffRecord, now time.Time) string {
	if len(records) == 0 {
		return Dim("No handoffs sent yet.") + "\n"
	}
	headers := []string{"WHEN", "CHANNEL", "TO", "STATUS", "ID"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		status := DeliveryPill(r.Status)
		if r.Error != "" {
			status += Dim(" " + firstLine(r.Error))
		}
		rows = append(rows, []string{
			SentAt(r.CreatedAt, now),
			r.Channel,
			OrDash(r.Recipient),
			status,
			TruncID(r.ID),
		})
	}
	return RenderTable(headers, rows)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
