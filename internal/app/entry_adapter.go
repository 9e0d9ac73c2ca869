package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-listproxy/internal/adapter"
	"github.com/pstuifzand/tui-listproxy/internal/model"
	"github.com/pstuifzand/tui-listproxy/internal/search"
	"github.com/pstuifzand/tui-listproxy/internal/widget"
)

// EntryAdapter shows the entries of a list, optionally narrowed by a
// search query. Positions are indexes into the filtered rows.
type EntryAdapter struct {
	adapter.Base
	Style tcell.Style

	list      *model.EntryList
	filter    string
	expr      search.FilterExpr
	filterErr error
	visible   []*model.Entry
}

// NewEntryAdapter returns an unfiltered adapter over list.
func NewEntryAdapter(list *model.EntryList, style tcell.Style) *EntryAdapter {
	a := &EntryAdapter{Style: style, list: list, expr: search.NewAlwaysMatchExpr()}
	a.rebuild()
	return a
}

func (a *EntryAdapter) rebuild() {
	a.visible = a.visible[:0]
	for _, e := range a.list.Entries {
		if a.expr.Matches(e) {
			a.visible = append(a.visible, e)
		}
	}
}

// Refresh re-applies the filter after the list changed and notifies the
// observers.
func (a *EntryAdapter) Refresh() {
	a.rebuild()
	a.NotifyDataSetChanged()
}

// SetFilter narrows the rows to entries matching the query term. An empty
// term shows everything. A query that does not parse, usually one still
// being typed, falls back to a fuzzy match on the whole term and is
// reported by FilterError.
func (a *EntryAdapter) SetFilter(term string) {
	if term == a.filter {
		return
	}
	a.filter = term
	a.expr, a.filterErr = search.ParseQuery(term)
	if a.filterErr != nil {
		a.expr = search.NewFuzzyExpr(term)
	}
	a.Refresh()
}

func (a *EntryAdapter) Filter() string                { return a.filter }
func (a *EntryAdapter) FilterError() error            { return a.filterErr }
func (a *EntryAdapter) FilterExpr() search.FilterExpr { return a.expr }

// Entry returns the entry at a content position.
func (a *EntryAdapter) Entry(position int) (*model.Entry, bool) {
	if position < 0 || position >= len(a.visible) {
		return nil, false
	}
	return a.visible[position], true
}

// Add appends an entry to the underlying list.
func (a *EntryAdapter) Add(text string) *model.Entry {
	e := a.list.Add(text)
	a.Refresh()
	return e
}

// Remove deletes the entry at a content position from the underlying list.
func (a *EntryAdapter) Remove(position int) (*model.Entry, bool) {
	e, ok := a.Entry(position)
	if !ok {
		return nil, false
	}
	a.list.Remove(e.ID)
	a.Refresh()
	return e, true
}

func (a *EntryAdapter) Count() int         { return len(a.visible) }
func (a *EntryAdapter) IsEmpty() bool      { return len(a.visible) == 0 }
func (a *EntryAdapter) HasStableIDs() bool { return true }

func (a *EntryAdapter) Item(position int) any {
	e, ok := a.Entry(position)
	if !ok {
		return nil
	}
	return e
}

func (a *EntryAdapter) ItemID(position int) int64 {
	e, ok := a.Entry(position)
	if !ok {
		return -1
	}
	return e.ID
}

func (a *EntryAdapter) CreateView(viewType int, parent widget.Container) widget.View {
	return widget.NewLabel("", a.Style)
}

func (a *EntryAdapter) BindView(position int, item any, view widget.View, viewType int, parent widget.Container) {
	label := view.(*widget.Label)
	if e, ok := item.(*model.Entry); ok {
		label.SetText(e.Text)
		return
	}
	label.SetText("")
}

func (a *EntryAdapter) View(position int, convertView widget.View, parent widget.Container) widget.View {
	return adapter.GetView(a, position, convertView, parent)
}
