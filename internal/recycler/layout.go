package recycler

import (
	"slices"

	"github.com/pstuifzand/tui-listproxy/internal/widget"
)

// LayoutManager positions rows inside the widget. The widget owns the
// holders; the layout manager asks the Recycler for them by position and
// places them.
type LayoutManager interface {
	// OnAttached is called when the manager is set on v.
	OnAttached(v *View)
	// LayoutChildren places rows for the current adapter state.
	LayoutChildren(r *Recycler)
	// ScrollVerticallyBy scrolls by dy lines and returns the lines actually
	// scrolled.
	ScrollVerticallyBy(dy int, r *Recycler) int
	// ScrollToPosition makes position the first row at the next layout.
	ScrollToPosition(position int)
	State() LayoutState
	RestoreState(s LayoutState)
}

// LayoutState is the part of a layout worth keeping across restarts.
type LayoutState struct {
	Position int `toml:"position"`
	Offset   int `toml:"offset"`
}

// Recycler hands holders to the layout manager during one layout pass.
// Holders come from the previous layout at the same position first, then
// from the pool, and are created by the adapter only when both are empty.
type Recycler struct {
	view    *View
	area    widget.Rect
	scrap   map[int]*ViewHolder
	got     map[int]*ViewHolder
	heights map[int]int
	placed  []*ViewHolder

	// displaced are the views a stale holder showed before it was rebound
	// to a different view.
	displaced []*ViewHolder
}

func newRecycler(v *View, area widget.Rect) *Recycler {
	r := &Recycler{
		view:    v,
		area:    area,
		scrap:   make(map[int]*ViewHolder, len(v.children)),
		got:     make(map[int]*ViewHolder),
		heights: make(map[int]int),
	}
	for _, h := range v.children {
		r.scrap[h.position] = h
	}
	return r
}

// ItemCount returns the adapter's item count.
func (r *Recycler) ItemCount() int {
	if r.view.adapter == nil {
		return 0
	}
	return r.view.adapter.ItemCount()
}

// Width and Height are the size of the area rows are laid out in.
func (r *Recycler) Width() int  { return r.area.W }
func (r *Recycler) Height() int { return r.area.H }

// ViewForPosition returns a holder bound to position.
func (r *Recycler) ViewForPosition(position int) *ViewHolder {
	if h, ok := r.got[position]; ok {
		return h
	}
	a := r.view.adapter
	viewType := a.ItemViewType(position)
	h, ok := r.scrap[position]
	if ok && h.viewType == viewType {
		delete(r.scrap, position)
		if h.stale {
			old := h.ItemView
			r.bind(h, position)
			if h.ItemView != old {
				r.displaced = append(r.displaced, &ViewHolder{ItemView: old, viewType: viewType, position: NoPosition, itemID: NoID})
			}
		}
	} else {
		h = r.view.pool.Get(viewType)
		if h == nil {
			h = a.CreateViewHolder(r.view, viewType)
			h.viewType = viewType
		}
		r.bind(h, position)
	}
	r.got[position] = h
	return h
}

func (r *Recycler) bind(h *ViewHolder, position int) {
	a := r.view.adapter
	h.position = position
	h.stale = false
	h.itemID = NoID
	if a.HasStableIDs() {
		h.itemID = a.ItemID(position)
	}
	a.BindViewHolder(h, position)
}

// RowHeight measures the row at position.
func (r *Recycler) RowHeight(position int) int {
	if height, ok := r.heights[position]; ok {
		return height
	}
	h := r.ViewForPosition(position)
	height := h.ItemView.Measure(r.area.W)
	r.heights[position] = height
	return height
}

// AddView places the row at position y lines below the top of the layout
// area.
func (r *Recycler) AddView(position, y int) {
	h := r.ViewForPosition(position)
	h.rect = widget.Rect{X: r.area.X, Y: r.area.Y + y, W: r.area.W, H: r.RowHeight(position)}
	r.placed = append(r.placed, h)
}

// finish recycles every holder the layout did not place, in position
// order, and returns the placed ones. A dropped holder whose view another
// holder now shows is discarded without notice. Views that left the screen
// because their holder was rebound are reported but not pooled.
func (r *Recycler) finish() []*ViewHolder {
	placed := make(map[*ViewHolder]bool, len(r.placed))
	live := make(map[widget.View]bool, len(r.placed))
	for _, h := range r.placed {
		placed[h] = true
		live[h.ItemView] = true
	}
	var dropped []*ViewHolder
	for _, h := range r.got {
		if !placed[h] {
			dropped = append(dropped, h)
		}
	}
	for _, h := range r.scrap {
		dropped = append(dropped, h)
	}
	slices.SortFunc(dropped, func(a, b *ViewHolder) int { return a.position - b.position })
	for _, h := range dropped {
		if live[h.ItemView] {
			continue
		}
		r.view.recycle(h)
	}
	for _, h := range r.displaced {
		if !live[h.ItemView] {
			r.view.dispatchRecycled(h)
		}
	}
	return r.placed
}
