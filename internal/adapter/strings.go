package adapter

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-listproxy/internal/widget"
)

// StringAdapter shows a slice of strings as one label per row.
type StringAdapter struct {
	Base
	Style tcell.Style
	items []string
}

// NewStringAdapter returns an adapter over a copy of items.
func NewStringAdapter(items ...string) *StringAdapter {
	return &StringAdapter{Style: tcell.StyleDefault, items: append([]string(nil), items...)}
}

func (a *StringAdapter) Count() int                { return len(a.items) }
func (a *StringAdapter) IsEmpty() bool             { return len(a.items) == 0 }
func (a *StringAdapter) ItemID(position int) int64 { return int64(position) }

func (a *StringAdapter) Item(position int) any {
	if position < 0 || position >= len(a.items) {
		return nil
	}
	return a.items[position]
}

func (a *StringAdapter) CreateView(viewType int, parent widget.Container) widget.View {
	return widget.NewLabel("", a.Style)
}

func (a *StringAdapter) BindView(position int, item any, view widget.View, viewType int, parent widget.Container) {
	text, _ := item.(string)
	view.(*widget.Label).SetText(text)
}

func (a *StringAdapter) View(position int, convertView widget.View, parent widget.Container) widget.View {
	return GetView(a, position, convertView, parent)
}

// Items returns a copy of the rows.
func (a *StringAdapter) Items() []string {
	return append([]string(nil), a.items...)
}

// SetItems replaces every row.
func (a *StringAdapter) SetItems(items []string) {
	a.items = append([]string(nil), items...)
	a.NotifyDataSetChanged()
}

// Add appends a row.
func (a *StringAdapter) Add(item string) {
	a.items = append(a.items, item)
	a.NotifyDataSetChanged()
}

// Remove deletes the row at position. It reports false when there is no
// such row.
func (a *StringAdapter) Remove(position int) bool {
	if position < 0 || position >= len(a.items) {
		return false
	}
	a.items = append(a.items[:position], a.items[position+1:]...)
	a.NotifyDataSetChanged()
	return true
}
