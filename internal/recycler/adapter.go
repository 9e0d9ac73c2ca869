// Package recycler is a list widget that keeps only the visible rows alive
// and recycles their view holders through a pool as the list scrolls.
package recycler

import (
	"fmt"

	"github.com/pstuifzand/tui-listproxy/internal/widget"
)

const (
	// NoPosition is returned when a holder or view has no valid adapter
	// position.
	NoPosition = -1
	// NoID is the item id of holders whose adapter has no stable ids.
	NoID int64 = -1
)

// ViewHolder wraps a row view together with what the widget knows about it.
type ViewHolder struct {
	ItemView widget.View

	position int
	itemID   int64
	viewType int
	rect     widget.Rect
	stale    bool
}

// NewViewHolder returns an unbound holder for v.
func NewViewHolder(v widget.View) *ViewHolder {
	return &ViewHolder{ItemView: v, position: NoPosition, itemID: NoID}
}

// AdapterPosition is the holder's position in the adapter, or NoPosition
// while a data set change has not been laid out yet.
func (h *ViewHolder) AdapterPosition() int {
	if h.stale {
		return NoPosition
	}
	return h.position
}

// LayoutPosition is the position the holder had in the last layout.
func (h *ViewHolder) LayoutPosition() int { return h.position }

func (h *ViewHolder) ItemID() int64     { return h.itemID }
func (h *ViewHolder) ItemViewType() int { return h.viewType }

// Rect is where the holder was last drawn, in screen cells.
func (h *ViewHolder) Rect() widget.Rect { return h.rect }

func (h *ViewHolder) String() string {
	return fmt.Sprintf("ViewHolder{position=%d id=%d type=%d}", h.position, h.itemID, h.viewType)
}

// AdapterDataObserver hears about adapter changes.
type AdapterDataObserver interface {
	OnChanged()
	OnItemRangeChanged(positionStart, itemCount int)
	OnItemRangeInserted(positionStart, itemCount int)
	OnItemRangeRemoved(positionStart, itemCount int)
}

// Adapter feeds the widget with view holders.
type Adapter interface {
	ItemCount() int
	ItemViewType(position int) int
	ItemID(position int) int64
	HasStableIDs() bool
	CreateViewHolder(parent *View, viewType int) *ViewHolder
	BindViewHolder(h *ViewHolder, position int)
	RegisterAdapterDataObserver(o AdapterDataObserver)
	UnregisterAdapterDataObserver(o AdapterDataObserver)
}

// AdapterObservable keeps the observers of an Adapter.
type AdapterObservable struct {
	observers []AdapterDataObserver
}

// Register adds o. Registering nil or the same observer twice panics.
func (a *AdapterObservable) Register(o AdapterDataObserver) {
	if o == nil {
		panic("recycler: nil observer")
	}
	if a.indexOf(o) >= 0 {
		panic(fmt.Sprintf("recycler: observer %T already registered", o))
	}
	a.observers = append(a.observers, o)
}

// Unregister removes o and panics if it was never registered.
func (a *AdapterObservable) Unregister(o AdapterDataObserver) {
	i := a.indexOf(o)
	if i < 0 {
		panic(fmt.Sprintf("recycler: observer %T was not registered", o))
	}
	a.observers = append(a.observers[:i], a.observers[i+1:]...)
}

func (a *AdapterObservable) HasObservers() bool { return len(a.observers) > 0 }
func (a *AdapterObservable) Count() int         { return len(a.observers) }

func (a *AdapterObservable) NotifyChanged() {
	for _, o := range a.snapshot() {
		o.OnChanged()
	}
}

func (a *AdapterObservable) NotifyItemRangeChanged(start, count int) {
	for _, o := range a.snapshot() {
		o.OnItemRangeChanged(start, count)
	}
}

func (a *AdapterObservable) NotifyItemRangeInserted(start, count int) {
	for _, o := range a.snapshot() {
		o.OnItemRangeInserted(start, count)
	}
}

func (a *AdapterObservable) NotifyItemRangeRemoved(start, count int) {
	for _, o := range a.snapshot() {
		o.OnItemRangeRemoved(start, count)
	}
}

func (a *AdapterObservable) indexOf(o AdapterDataObserver) int {
	for i, existing := range a.observers {
		if existing == o {
			return i
		}
	}
	return -1
}

func (a *AdapterObservable) snapshot() []AdapterDataObserver {
	return append([]AdapterDataObserver(nil), a.observers...)
}
