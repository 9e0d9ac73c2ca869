// Package adapter defines the content adapters list widgets read their rows
// from and the observer plumbing they use to hear about changes.
package adapter

import "github.com/pstuifzand/tui-listproxy/internal/widget"

// DataSetObserver is told when an adapter's data changes.
type DataSetObserver interface {
	// OnChanged is called when the rows changed and views must be rebound.
	OnChanged()
	// OnInvalidated is called when the data is no longer valid at all.
	OnInvalidated()
}

// ListAdapter is what the legacy list widget reads rows from.
type ListAdapter interface {
	Count() int
	Item(position int) any
	ItemID(position int) int64
	ItemViewType(position int) int
	ViewTypeCount() int
	HasStableIDs() bool
	IsEmpty() bool
	IsEnabled(position int) bool
	// View returns the view for position, reusing convertView when it is
	// not nil. convertView always has the view type of position.
	View(position int, convertView widget.View, parent widget.Container) widget.View
	RegisterDataSetObserver(o DataSetObserver)
	UnregisterDataSetObserver(o DataSetObserver)
}

// Adapter splits view production into creation and binding so that both
// list widgets can drive it.
type Adapter interface {
	ListAdapter
	CreateView(viewType int, parent widget.Container) widget.View
	BindView(position int, item any, view widget.View, viewType int, parent widget.Container)
}

// GetView implements ListAdapter.View for an Adapter.
func GetView(a Adapter, position int, convertView widget.View, parent widget.Container) widget.View {
	viewType := a.ItemViewType(position)
	view := convertView
	if view == nil {
		view = a.CreateView(viewType, parent)
	}
	a.BindView(position, a.Item(position), view, viewType, parent)
	return view
}
