package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-listproxy/internal/adapter"
	"github.com/pstuifzand/tui-listproxy/internal/listview"
	"github.com/pstuifzand/tui-listproxy/internal/model"
	"github.com/pstuifzand/tui-listproxy/internal/proxy"
	"github.com/pstuifzand/tui-listproxy/internal/recycler"
	"github.com/pstuifzand/tui-listproxy/internal/widget"
)

type fakeRows struct {
	headers, footers int
	items            []any
}

func (f fakeRows) Count() int            { return f.headers + len(f.items) + f.footers }
func (f fakeRows) HeaderViewsCount() int { return f.headers }
func (f fakeRows) FooterViewsCount() int { return f.footers }

func (f fakeRows) ItemAtPosition(position int) (any, bool) {
	i := position - f.headers
	if i < 0 || i >= len(f.items) {
		return "fixed", true
	}
	return f.items[i], true
}

func TestMarkdown(t *testing.T) {
	rows := fakeRows{
		headers: 1,
		footers: 2,
		items:   []any{"First Item", &model.Entry{Text: "Second Item"}, "   ", 42},
	}

	expected := "# Groceries\n\n- First Item\n- Second Item\n- 42\n"
	if got := Markdown("Groceries", rows); got != expected {
		t.Errorf("Markdown mismatch.\nExpected:\n%s\nGot:\n%s", expected, got)
	}
}

func TestMarkdown_WithoutTitle(t *testing.T) {
	rows := fakeRows{items: []any{"only"}}
	if got := Markdown("", rows); got != "- only\n" {
		t.Errorf("Unexpected output %q", got)
	}
}

func TestExportToMarkdown_BothBackends(t *testing.T) {
	recyclerProxy, err := proxy.NewRecyclerViewProxy(recycler.NewView(nil))
	if err != nil {
		t.Fatalf("NewRecyclerViewProxy failed: %v", err)
	}
	backends := map[string]proxy.ScrollingViewProxy{
		"listview": proxy.NewListViewProxy(listview.New(nil)),
		"recycler": recyclerProxy,
	}

	for name, p := range backends {
		t.Run(name, func(t *testing.T) {
			p.AddHeaderViewWithData(widget.NewLabel("TITLE", tcell.StyleDefault), "TITLE", false)
			p.SetAdapter(adapter.NewStringAdapter("alpha", "beta"))
			p.AddFooterViewWithData(widget.NewLabel("2 entries", tcell.StyleDefault), "2 entries", false)

			path := filepath.Join(t.TempDir(), "out.md")
			if err := ExportToMarkdown("Entries", p, path); err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}
			content, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Failed to read exported file: %v", err)
			}
			expected := "# Entries\n\n- alpha\n- beta\n"
			if string(content) != expected {
				t.Errorf("Expected %q, got %q", expected, string(content))
			}
		})
	}
}
