package proxy

import (
	"fmt"
	"math"

	"github.com/pstuifzand/tui-listproxy/internal/adapter"
	"github.com/pstuifzand/tui-listproxy/internal/recycler"
	"github.com/pstuifzand/tui-listproxy/internal/widget"
)

// FixedView is a header or footer row. Data is what ItemAtPosition returns
// for it; rows that are not Selectable do not produce item clicks.
type FixedView struct {
	View       widget.View
	Data       any
	Selectable bool
}

// InvalidViewType is the view type of positions outside the list.
const InvalidViewType = math.MinInt32

// HeaderViewType is the view type of the header at index p: -1, -3, -5...
func HeaderViewType(p int) int { return -1 - 2*p }

// FooterViewType is the view type of the footer at index i: -2, -4, -6...
func FooterViewType(i int) int { return -2 * (i + 1) }

// DecodeViewType maps a negative view type back to a header or footer
// index. Odd types are headers, even types are footers.
func DecodeViewType(viewType int) (header bool, index int) {
	if viewType%2 == 0 {
		return false, -viewType/2 - 1
	}
	return true, -(viewType + 1) / 2
}

type slotKind int

const (
	slotNone slotKind = iota
	slotHeader
	slotContent
	slotFooter
)

type slot struct {
	kind  slotKind
	index int
}

// LinearAdapter presents headers, content rows and footers to a recycler as
// one flat list. Headers and footers keep their own views; content rows
// are created and bound by the content adapter.
type LinearAdapter struct {
	owner     *recycler.View
	content   adapter.Adapter
	headers   []FixedView
	footers   []FixedView
	stableIDs bool

	observers       recycler.AdapterObservable
	subscribers     int
	contentObserver *contentObserver
}

// NewLinearAdapter wraps content for owner. The header and footer slices
// are copied.
func NewLinearAdapter(owner *recycler.View, content adapter.Adapter, headers, footers []FixedView) *LinearAdapter {
	a := &LinearAdapter{
		owner:   owner,
		content: content,
		headers: append([]FixedView(nil), headers...),
		footers: append([]FixedView(nil), footers...),
	}
	if content != nil {
		a.stableIDs = content.HasStableIDs()
	}
	a.contentObserver = &contentObserver{adapter: a}
	return a
}

type contentObserver struct {
	adapter *LinearAdapter
}

func (o *contentObserver) OnChanged()     { o.adapter.onContentChanged() }
func (o *contentObserver) OnInvalidated() { o.adapter.onContentChanged() }

func (a *LinearAdapter) onContentChanged() {
	if a.owner != nil && a.owner.IsComputingLayout() {
		panic("linear adapter: content changed while the list is computing layout")
	}
	a.observers.NotifyChanged()
}

// Content returns the wrapped content adapter.
func (a *LinearAdapter) Content() adapter.Adapter { return a.content }

func (a *LinearAdapter) contentCount() int {
	if a.content == nil {
		return 0
	}
	return a.content.Count()
}

// resolve classifies a flat position. Every lookup goes through it, so a
// negative or too large position is absent everywhere.
func (a *LinearAdapter) resolve(position int) slot {
	if position < 0 {
		return slot{kind: slotNone}
	}
	if position < len(a.headers) {
		return slot{kind: slotHeader, index: position}
	}
	position -= len(a.headers)
	n := a.contentCount()
	if position < n {
		return slot{kind: slotContent, index: position}
	}
	position -= n
	if position < len(a.footers) {
		return slot{kind: slotFooter, index: position}
	}
	return slot{kind: slotNone}
}

func (a *LinearAdapter) fixed(s slot) FixedView {
	if s.kind == slotHeader {
		return a.headers[s.index]
	}
	return a.footers[s.index]
}

func (a *LinearAdapter) ItemCount() int {
	return len(a.headers) + a.contentCount() + len(a.footers)
}

// HasContent reports whether the content adapter has rows. Headers and
// footers do not count.
func (a *LinearAdapter) HasContent() bool {
	return a.contentCount() > 0
}

func (a *LinearAdapter) HeaderCount() int { return len(a.headers) }
func (a *LinearAdapter) FooterCount() int { return len(a.footers) }

func (a *LinearAdapter) ItemViewType(position int) int {
	switch s := a.resolve(position); s.kind {
	case slotHeader:
		return HeaderViewType(s.index)
	case slotFooter:
		return FooterViewType(s.index)
	case slotContent:
		return a.content.ItemViewType(s.index)
	}
	return InvalidViewType
}

// ItemID gives headers and footers their view type as id.
func (a *LinearAdapter) ItemID(position int) int64 {
	switch s := a.resolve(position); s.kind {
	case slotHeader:
		return int64(HeaderViewType(s.index))
	case slotFooter:
		return int64(FooterViewType(s.index))
	case slotContent:
		return a.content.ItemID(s.index)
	}
	return recycler.NoID
}

// ContentItemID is the content adapter's id for content rows and
// InvalidRowID for everything else.
func (a *LinearAdapter) ContentItemID(position int) int64 {
	if s := a.resolve(position); s.kind == slotContent {
		return a.content.ItemID(s.index)
	}
	return InvalidRowID
}

func (a *LinearAdapter) HasStableIDs() bool { return a.stableIDs }

// Item returns the content item of content rows and the data of fixed
// views.
func (a *LinearAdapter) Item(position int) (any, bool) {
	switch s := a.resolve(position); s.kind {
	case slotHeader, slotFooter:
		data := a.fixed(s).Data
		return data, data != nil
	case slotContent:
		return a.content.Item(s.index), true
	}
	return nil, false
}

// IsSelectable reports whether a click on position reaches the listener.
func (a *LinearAdapter) IsSelectable(position int) bool {
	switch s := a.resolve(position); s.kind {
	case slotHeader, slotFooter:
		return a.fixed(s).Selectable
	case slotContent:
		return a.content.IsEnabled(s.index)
	}
	return false
}

// CreateViewHolder hands out the fixed view itself for header and footer
// types; those views are never created or bound here.
func (a *LinearAdapter) CreateViewHolder(parent *recycler.View, viewType int) *recycler.ViewHolder {
	if viewType < 0 {
		header, index := DecodeViewType(viewType)
		list := a.footers
		if header {
			list = a.headers
		}
		if index >= len(list) {
			panic(fmt.Sprintf("linear adapter: no fixed view for view type %d", viewType))
		}
		return recycler.NewViewHolder(list[index].View)
	}
	return recycler.NewViewHolder(a.content.CreateView(viewType, a.parent()))
}

// BindViewHolder binds content rows. A holder for a header or footer type
// is pointed at the fixed view currently at that position, which matters
// when the holder comes from the pool after the fixed views changed.
func (a *LinearAdapter) BindViewHolder(h *recycler.ViewHolder, position int) {
	switch s := a.resolve(position); s.kind {
	case slotHeader, slotFooter:
		if v := a.fixed(s).View; h.ItemView != v {
			h.ItemView = v
		}
	case slotContent:
		a.content.BindView(s.index, a.content.Item(s.index), h.ItemView, h.ItemViewType(), a.parent())
	}
}

func (a *LinearAdapter) parent() widget.Container {
	if a.owner == nil {
		return nil
	}
	return a.owner
}

// RegisterAdapterDataObserver adds o. The first observer subscribes the
// adapter to the content adapter.
func (a *LinearAdapter) RegisterAdapterDataObserver(o recycler.AdapterDataObserver) {
	a.observers.Register(o)
	a.subscribers++
	if a.subscribers == 1 && a.content != nil {
		a.content.RegisterDataSetObserver(a.contentObserver)
	}
}

// UnregisterAdapterDataObserver removes o. Removing the last observer
// unsubscribes from the content adapter.
func (a *LinearAdapter) UnregisterAdapterDataObserver(o recycler.AdapterDataObserver) {
	a.observers.Unregister(o)
	a.subscribers--
	if a.subscribers == 0 && a.content != nil {
		a.content.UnregisterDataSetObserver(a.contentObserver)
	}
}

// ObserverCount returns the number of registered observers.
func (a *LinearAdapter) ObserverCount() int { return a.subscribers }

// SetHeaderViews replaces the headers and invalidates every row.
func (a *LinearAdapter) SetHeaderViews(headers []FixedView) {
	a.headers = append([]FixedView(nil), headers...)
	a.observers.NotifyChanged()
}

// SetFooterViews replaces the footers and invalidates every row.
func (a *LinearAdapter) SetFooterViews(footers []FixedView) {
	a.footers = append([]FixedView(nil), footers...)
	a.observers.NotifyChanged()
}
