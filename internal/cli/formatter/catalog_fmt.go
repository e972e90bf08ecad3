package formatter

import (
	"sort"
	"strings"

	"github.com/alexanderramin/tripwise/internal/catalog"
	"github.com/alexanderramin/tripwise/internal/domain"
)

// FormatCatalog lists the entities of a load result. The selected entity is
// marked, fallback data carries the demo advisory, and an empty list says so.
func FormatCatalog(res catalog.Result, selectedID string) string {
	var b strings.Builder

	if res.Demo {
		b.WriteString(Warning(res.Advisory) + "\n\n")
	}
	if res.Empty || len(res.Entities) == 0 {
		b.WriteString(Dim("Nothing to choose from for this destination.") + "\n")
		return b.String()
	}

	headers := []string{"", "ID", "NAME", "LOCATION", "DETAILS"}
	rows := make([][]string, 0, len(res.Entities))
	for _, e := range res.Entities {
		marker := " "
		name := StyleFg.Render(e.Name)
		if e.ID == selectedID {
			marker = StyleGreen.Render("●")
			name = StyleGreen.Render(e.Name)
		}
		rows = append(rows, []string{
			marker,
			StyleBlue.Render(e.ID),
			name,
			OrDash(location(e)),
			Dim(details(e.Details)),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

func location(e domain.CatalogEntity) string {
	switch {
	case e.City != "" && e.Country != "":
		return e.City + ", " + e.Country
	case e.Country != "":
		return e.Country
	default:
		return e.City
	}
}

func details(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, strings.ReplaceAll(k, "_", " ")+": "+m[k])
	}
	return strings.Join(parts, ", ")
}

// FormatDocuments renders the checklist grouped by mark, in catalog order.
func FormatDocuments(d domain.PlanDraft) string {
	if len(d.DocumentChecklist) == 0 {
		return Dim("No documents on the checklist yet.") + "\n"
	}
	var b strings.Builder
	for _, k := range d.DocumentsByMark(domain.MarkHave) {
		b.WriteString(StyleGreen.Render("✔ ") + k.Label() + Dim("  "+string(k)) + "\n")
	}
	for _, k := range d.DocumentsByMark(domain.MarkNeed) {
		b.WriteString(StyleYellow.Render("○ ") + k.Label() + Dim("  "+string(k)) + "\n")
	}
	return b.String()
}
