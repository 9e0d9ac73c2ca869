package proxy

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-listproxy/internal/adapter"
	"github.com/pstuifzand/tui-listproxy/internal/listview"
	"github.com/pstuifzand/tui-listproxy/internal/recycler"
	"github.com/pstuifzand/tui-listproxy/internal/widget"
)

const recyclerBackend = "RecyclerView"

// RecyclerViewProxy runs the list API on a recycler.View. It keeps the
// header and footer lists itself, so fixed views added before SetAdapter
// survive it, and pushes them into the LinearAdapter on every change.
type RecyclerViewProxy struct {
	list    *LinearRecyclerView
	shim    *LinearAdapter
	headers []FixedView
	footers []FixedView

	scrollListener OnScrollListener
	scrollDelegate *scrollDelegate
}

var _ ScrollingViewProxy = (*RecyclerViewProxy)(nil)

// NewRecyclerViewProxy wraps rv. It fails with ErrNonLinearLayout when rv
// uses a layout manager other than recycler.LinearLayoutManager.
func NewRecyclerViewProxy(rv *recycler.View) (*RecyclerViewProxy, error) {
	list, err := NewLinearRecyclerView(rv)
	if err != nil {
		return nil, fmt.Errorf("failed to create recycler view proxy: %w", err)
	}
	p := &RecyclerViewProxy{list: list}
	p.scrollDelegate = &scrollDelegate{proxy: p}
	rv.AddOnScrollListener(p.scrollDelegate)
	return p, nil
}

// scrollDelegate turns recycler scroll callbacks into flat visible ranges.
type scrollDelegate struct {
	proxy *RecyclerViewProxy
}

func (d *scrollDelegate) OnScrollStateChanged(v *recycler.View, state recycler.ScrollState) {
	if d.proxy.scrollListener == nil {
		return
	}
	d.proxy.scrollListener.OnScrollStateChanged(d.proxy, translateScrollState(state))
}

// OnScrolled drops the callback while the layout has no valid first
// position, which is the case right after a data set change.
func (d *scrollDelegate) OnScrolled(v *recycler.View, dx, dy int) {
	l := d.proxy.scrollListener
	if l == nil {
		return
	}
	lm := d.proxy.list.LayoutManager()
	first := lm.FindFirstVisibleItemPosition()
	if first == recycler.NoPosition {
		return
	}
	last := lm.FindLastVisibleItemPosition()
	l.OnScroll(d.proxy, first, last-first+1, d.proxy.Count())
}

func translateScrollState(state recycler.ScrollState) ScrollState {
	switch state {
	case recycler.ScrollStateDragging:
		return ScrollStateTouchScroll
	case recycler.ScrollStateSettling:
		return ScrollStateFling
	}
	return ScrollStateIdle
}

// LinearRecyclerView returns the wrapped list.
func (p *RecyclerViewProxy) LinearRecyclerView() *LinearRecyclerView { return p.list }

func (p *RecyclerViewProxy) recycler() *recycler.View { return p.list.RecyclerView() }

func (p *RecyclerViewProxy) View() widget.View           { return p.list }
func (p *RecyclerViewProxy) Container() widget.Container { return p.recycler() }

func (p *RecyclerViewProxy) ListView() (*listview.View, error) {
	return nil, unsupported(recyclerBackend, "ListView")
}

func (p *RecyclerViewProxy) Adapter() adapter.ListAdapter {
	if p.shim == nil {
		return nil
	}
	return p.shim.Content()
}

// SetAdapter wraps a in a LinearAdapter with the current fixed views and
// attaches it. Nil detaches the list.
func (p *RecyclerViewProxy) SetAdapter(a adapter.Adapter) {
	if a == nil {
		p.shim = nil
		p.list.SetAdapter(nil)
		return
	}
	p.shim = NewLinearAdapter(p.recycler(), a, p.headers, p.footers)
	p.list.SetAdapter(p.shim)
}

func (p *RecyclerViewProxy) AddHeaderView(v widget.View) {
	p.AddHeaderViewWithData(v, nil, true)
}

func (p *RecyclerViewProxy) AddHeaderViewWithData(v widget.View, data any, selectable bool) {
	p.headers = append(p.headers, FixedView{View: v, Data: data, Selectable: selectable})
	p.pushHeaders()
}

func (p *RecyclerViewProxy) AddFooterView(v widget.View) {
	p.AddFooterViewWithData(v, nil, true)
}

func (p *RecyclerViewProxy) AddFooterViewWithData(v widget.View, data any, selectable bool) {
	p.footers = append(p.footers, FixedView{View: v, Data: data, Selectable: selectable})
	p.pushFooters()
}

func (p *RecyclerViewProxy) RemoveHeaderView(v widget.View) bool {
	var ok bool
	if p.headers, ok = removeFixedView(p.headers, v); ok {
		p.pushHeaders()
	}
	return ok
}

func (p *RecyclerViewProxy) RemoveFooterView(v widget.View) bool {
	var ok bool
	if p.footers, ok = removeFixedView(p.footers, v); ok {
		p.pushFooters()
	}
	return ok
}

func removeFixedView(list []FixedView, v widget.View) ([]FixedView, bool) {
	for i, f := range list {
		if f.View == v {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

func (p *RecyclerViewProxy) pushHeaders() {
	if p.shim != nil {
		p.shim.SetHeaderViews(p.headers)
	}
}

func (p *RecyclerViewProxy) pushFooters() {
	if p.shim != nil {
		p.shim.SetFooterViews(p.footers)
	}
}

func (p *RecyclerViewProxy) HeaderViewsCount() int { return len(p.headers) }
func (p *RecyclerViewProxy) FooterViewsCount() int { return len(p.footers) }

// SetOnScrollListener sets l and reports the current range to it if the
// list has been laid out.
func (p *RecyclerViewProxy) SetOnScrollListener(l OnScrollListener) {
	p.scrollListener = l
	if l != nil {
		p.scrollDelegate.OnScrolled(p.recycler(), 0, 0)
	}
}

func (p *RecyclerViewProxy) SetOnItemClickListener(l OnItemClickListener) {
	p.list.SetOnItemClickListener(l)
}

func (p *RecyclerViewProxy) SetOnItemLongClickListener(l OnItemLongClickListener) {
	p.list.SetOnItemLongClickListener(l)
}

func (p *RecyclerViewProxy) SetRecyclerListener(l RecyclerListener) {
	if l == nil {
		p.recycler().SetRecyclerListener(nil)
		return
	}
	p.recycler().SetRecyclerListener(func(h *recycler.ViewHolder) { l(h.ItemView) })
}

func (p *RecyclerViewProxy) SetOnTouchListener(l widget.OnTouchListener) {
	p.recycler().SetOnTouchListener(l)
}

func (p *RecyclerViewProxy) SetVisibility(v widget.Visibility) { p.list.SetVisibility(v) }
func (p *RecyclerViewProxy) Visibility() widget.Visibility     { return p.list.Visibility() }
func (p *RecyclerViewProxy) Bounds() widget.Rect               { return p.recycler().Bounds() }
func (p *RecyclerViewProxy) SetPadding(in widget.Insets)       { p.recycler().SetPadding(in) }
func (p *RecyclerViewProxy) Padding() widget.Insets            { return p.recycler().Padding() }
func (p *RecyclerViewProxy) ClipToPadding() bool               { return p.recycler().ClipToPadding() }
func (p *RecyclerViewProxy) SetClipToPadding(clip bool)        { p.recycler().SetClipToPadding(clip) }
func (p *RecyclerViewProxy) SetClickable(c bool)               { p.recycler().SetClickable(c) }
func (p *RecyclerViewProxy) SetLongClickable(c bool)           { p.recycler().SetLongClickable(c) }

func (p *RecyclerViewProxy) SetVerticalScrollBarEnabled(enabled bool) {
	p.recycler().SetVerticalScrollBarEnabled(enabled)
}

func (p *RecyclerViewProxy) ScrollX() int { return p.recycler().ScrollX() }
func (p *RecyclerViewProxy) ScrollY() int { return p.recycler().ScrollY() }

// ScrollTo scrolls by the difference between (x, y) and the current
// scroll offsets.
func (p *RecyclerViewProxy) ScrollTo(x, y int) error {
	rv := p.recycler()
	rv.ScrollBy(x-rv.ScrollX(), y-rv.ScrollY())
	return nil
}

func (p *RecyclerViewProxy) ScrollBy(dx, dy int) error {
	p.recycler().ScrollBy(dx, dy)
	return nil
}

// SmoothScrollBy animates at the recycler's own pace; duration is ignored.
func (p *RecyclerViewProxy) SmoothScrollBy(distance int, duration time.Duration) {
	p.recycler().SmoothScrollBy(0, distance)
}

func (p *RecyclerViewProxy) SmoothScrollToPosition(position int) {
	p.recycler().SmoothScrollToPosition(position)
}

// SmoothScrollToPositionFromTop jumps to position without animating.
func (p *RecyclerViewProxy) SmoothScrollToPositionFromTop(position, offset int) {
	p.list.LayoutManager().ScrollToPositionWithOffset(position, offset)
}

func (p *RecyclerViewProxy) Post(fn func()) { p.recycler().Post(fn) }

func (p *RecyclerViewProxy) PositionForView(v widget.View) int {
	return p.recycler().ChildAdapterPosition(v)
}

func (p *RecyclerViewProxy) ChildCount() int           { return p.recycler().ChildCount() }
func (p *RecyclerViewProxy) ChildAt(i int) widget.View { return p.recycler().ChildAt(i) }

func (p *RecyclerViewProxy) FirstVisiblePosition() int {
	return p.list.LayoutManager().FindFirstVisibleItemPosition()
}

func (p *RecyclerViewProxy) LastVisiblePosition() int {
	return p.list.LayoutManager().FindLastVisibleItemPosition()
}

func (p *RecyclerViewProxy) Count() int {
	if p.shim == nil {
		return 0
	}
	return p.shim.ItemCount()
}

func (p *RecyclerViewProxy) IsEmpty() bool {
	return p.shim == nil || !p.shim.HasContent()
}

func (p *RecyclerViewProxy) ItemAtPosition(position int) (any, bool) {
	if p.shim == nil {
		return nil, false
	}
	return p.shim.Item(position)
}

func (p *RecyclerViewProxy) ItemIDAtPosition(position int) int64 {
	if p.shim == nil {
		return InvalidRowID
	}
	return p.shim.ContentItemID(position)
}

func (p *RecyclerViewProxy) SetSelection(position int) {
	p.recycler().ScrollToPosition(position)
}

func (p *RecyclerViewProxy) SetSelectionFromTop(position, y int) {
	p.list.LayoutManager().ScrollToPositionWithOffset(position, y)
}

func (p *RecyclerViewProxy) SetSelectionAfterHeaderView() {
	p.SetSelection(len(p.headers))
}

func (p *RecyclerViewProxy) SetEmptyView(v widget.View) { p.list.SetEmptyView(v) }

func (p *RecyclerViewProxy) SaveState() ([]byte, error)     { return p.recycler().SaveState() }
func (p *RecyclerViewProxy) RestoreState(data []byte) error { return p.recycler().RestoreState(data) }

func (p *RecyclerViewProxy) SetSelector(style tcell.Style) error {
	return unsupported(recyclerBackend, "SetSelector")
}

func (p *RecyclerViewProxy) SetDividerHeight(lines int) error {
	return unsupported(recyclerBackend, "SetDividerHeight")
}

func (p *RecyclerViewProxy) SetItemsCanFocus(canFocus bool) error {
	return unsupported(recyclerBackend, "SetItemsCanFocus")
}

func (p *RecyclerViewProxy) ChoiceMode() (ChoiceMode, error) {
	return ChoiceModeNone, unsupported(recyclerBackend, "ChoiceMode")
}

func (p *RecyclerViewProxy) SetChoiceMode(mode ChoiceMode) error {
	return unsupported(recyclerBackend, "SetChoiceMode")
}

func (p *RecyclerViewProxy) HandleEvent(ev tcell.Event) bool    { return p.list.HandleEvent(ev) }
func (p *RecyclerViewProxy) Draw(s tcell.Screen, r widget.Rect) { p.list.Draw(s, r) }
