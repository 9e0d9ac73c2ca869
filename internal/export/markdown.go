package export

import (
	"fmt"
	"os"
	"strings"
)

// Rows is the part of a list proxy the exporter reads. Positions are flat:
// headers first, then content rows, then footers.
type Rows interface {
	Count() int
	HeaderViewsCount() int
	FooterViewsCount() int
	ItemAtPosition(position int) (any, bool)
}

// ContentItems returns the items of the content rows, skipping headers and
// footers.
func ContentItems(rows Rows) []any {
	first := rows.HeaderViewsCount()
	last := rows.Count() - rows.FooterViewsCount()
	items := make([]any, 0, max(0, last-first))
	for pos := first; pos < last; pos++ {
		if item, ok := rows.ItemAtPosition(pos); ok {
			items = append(items, item)
		}
	}
	return items
}

// Markdown renders the content rows as a bullet list under a title heading.
// Items with blank text are skipped.
func Markdown(title string, rows Rows) string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString("# ")
		sb.WriteString(title)
		sb.WriteString("\n\n")
	}
	for _, item := range ContentItems(rows) {
		text := itemText(item)
		if strings.TrimSpace(text) == "" {
			continue
		}
		sb.WriteString("- ")
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// ExportToMarkdown writes Markdown(title, rows) to filePath.
func ExportToMarkdown(title string, rows Rows, filePath string) error {
	content := Markdown(title, rows)
	if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}
	return nil
}

func itemText(item any) string {
	switch v := item.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case nil:
		return ""
	}
	return fmt.Sprint(item)
}
