package proxy

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-listproxy/internal/adapter"
	"github.com/pstuifzand/tui-listproxy/internal/listview"
	"github.com/pstuifzand/tui-listproxy/internal/widget"
)

const listViewBackend = "ListView"

// ListViewProxy passes the list API through to a listview.View.
type ListViewProxy struct {
	list *listview.View
}

var _ ScrollingViewProxy = (*ListViewProxy)(nil)

func NewListViewProxy(list *listview.View) *ListViewProxy {
	return &ListViewProxy{list: list}
}

func (p *ListViewProxy) View() widget.View                 { return p.list }
func (p *ListViewProxy) Container() widget.Container       { return p.list }
func (p *ListViewProxy) ListView() (*listview.View, error) { return p.list, nil }
func (p *ListViewProxy) Adapter() adapter.ListAdapter      { return p.list.Adapter() }

func (p *ListViewProxy) SetAdapter(a adapter.Adapter) {
	if a == nil {
		p.list.SetAdapter(nil)
		return
	}
	p.list.SetAdapter(a)
}

func (p *ListViewProxy) AddHeaderView(v widget.View) { p.list.AddHeaderView(v) }
func (p *ListViewProxy) AddFooterView(v widget.View) { p.list.AddFooterView(v) }

func (p *ListViewProxy) AddHeaderViewWithData(v widget.View, data any, selectable bool) {
	p.list.AddHeaderViewWithData(v, data, selectable)
}

func (p *ListViewProxy) AddFooterViewWithData(v widget.View, data any, selectable bool) {
	p.list.AddFooterViewWithData(v, data, selectable)
}

func (p *ListViewProxy) RemoveHeaderView(v widget.View) bool { return p.list.RemoveHeaderView(v) }
func (p *ListViewProxy) RemoveFooterView(v widget.View) bool { return p.list.RemoveFooterView(v) }
func (p *ListViewProxy) HeaderViewsCount() int               { return p.list.HeaderViewsCount() }
func (p *ListViewProxy) FooterViewsCount() int               { return p.list.FooterViewsCount() }

type listScrollListener struct {
	proxy    *ListViewProxy
	listener OnScrollListener
}

func (l *listScrollListener) OnScrollStateChanged(v *listview.View, state listview.ScrollState) {
	l.listener.OnScrollStateChanged(l.proxy, state)
}

func (l *listScrollListener) OnScroll(v *listview.View, first, visible, total int) {
	l.listener.OnScroll(l.proxy, first, visible, total)
}

func (p *ListViewProxy) SetOnScrollListener(l OnScrollListener) {
	if l == nil {
		p.list.SetOnScrollListener(nil)
		return
	}
	p.list.SetOnScrollListener(&listScrollListener{proxy: p, listener: l})
}

func (p *ListViewProxy) SetOnItemClickListener(l OnItemClickListener) {
	if l == nil {
		p.list.SetOnItemClickListener(nil)
		return
	}
	p.list.SetOnItemClickListener(func(parent *listview.View, view widget.View, position int, id int64) {
		l(parent, view, position, id)
	})
}

func (p *ListViewProxy) SetOnItemLongClickListener(l OnItemLongClickListener) {
	if l == nil {
		p.list.SetOnItemLongClickListener(nil)
		return
	}
	p.list.SetOnItemLongClickListener(func(parent *listview.View, view widget.View, position int, id int64) bool {
		return l(parent, view, position, id)
	})
}

func (p *ListViewProxy) SetRecyclerListener(l RecyclerListener) {
	p.list.SetRecyclerListener(listview.RecyclerListener(l))
}

func (p *ListViewProxy) SetOnTouchListener(l widget.OnTouchListener) { p.list.SetOnTouchListener(l) }

func (p *ListViewProxy) SetVisibility(v widget.Visibility) { p.list.SetVisibility(v) }
func (p *ListViewProxy) Visibility() widget.Visibility     { return p.list.Visibility() }
func (p *ListViewProxy) Bounds() widget.Rect               { return p.list.Bounds() }
func (p *ListViewProxy) SetPadding(in widget.Insets)       { p.list.SetPadding(in) }
func (p *ListViewProxy) Padding() widget.Insets            { return p.list.Padding() }
func (p *ListViewProxy) ClipToPadding() bool               { return p.list.ClipToPadding() }
func (p *ListViewProxy) SetClipToPadding(clip bool)        { p.list.SetClipToPadding(clip) }
func (p *ListViewProxy) SetClickable(c bool)               { p.list.SetClickable(c) }
func (p *ListViewProxy) SetLongClickable(c bool)           { p.list.SetLongClickable(c) }

func (p *ListViewProxy) SetVerticalScrollBarEnabled(enabled bool) {
	p.list.SetVerticalScrollBarEnabled(enabled)
}

func (p *ListViewProxy) ScrollX() int { return p.list.ScrollX() }
func (p *ListViewProxy) ScrollY() int { return p.list.ScrollY() }

func (p *ListViewProxy) ScrollTo(x, y int) error {
	p.list.ScrollTo(x, y)
	return nil
}

// ScrollBy has no legacy counterpart.
func (p *ListViewProxy) ScrollBy(dx, dy int) error {
	return unsupported(listViewBackend, "ScrollBy")
}

// SmoothScrollBy starts the scroll from the UI queue.
func (p *ListViewProxy) SmoothScrollBy(distance int, duration time.Duration) {
	p.list.Post(func() { p.list.SmoothScrollBy(distance, duration) })
}

func (p *ListViewProxy) SmoothScrollToPosition(position int) {
	p.list.SmoothScrollToPosition(position)
}

func (p *ListViewProxy) SmoothScrollToPositionFromTop(position, offset int) {
	p.list.SmoothScrollToPositionFromTop(position, offset)
}

func (p *ListViewProxy) Post(fn func()) { p.list.Post(fn) }

func (p *ListViewProxy) PositionForView(v widget.View) int { return p.list.PositionForView(v) }
func (p *ListViewProxy) ChildCount() int                   { return p.list.ChildCount() }
func (p *ListViewProxy) ChildAt(i int) widget.View         { return p.list.ChildAt(i) }
func (p *ListViewProxy) FirstVisiblePosition() int         { return p.list.FirstVisiblePosition() }
func (p *ListViewProxy) LastVisiblePosition() int          { return p.list.LastVisiblePosition() }
func (p *ListViewProxy) Count() int                        { return p.list.Count() }
func (p *ListViewProxy) IsEmpty() bool                     { return p.list.IsEmpty() }

func (p *ListViewProxy) ItemAtPosition(position int) (any, bool) {
	return p.list.ItemAtPosition(position)
}

func (p *ListViewProxy) ItemIDAtPosition(position int) int64 {
	return p.list.ItemIDAtPosition(position)
}

func (p *ListViewProxy) SetSelection(position int)           { p.list.SetSelection(position) }
func (p *ListViewProxy) SetSelectionFromTop(position, y int) { p.list.SetSelectionFromTop(position, y) }
func (p *ListViewProxy) SetSelectionAfterHeaderView()        { p.list.SetSelectionAfterHeaderView() }

func (p *ListViewProxy) SetEmptyView(v widget.View) { p.list.SetEmptyView(v) }

func (p *ListViewProxy) SaveState() ([]byte, error)     { return p.list.SaveState() }
func (p *ListViewProxy) RestoreState(data []byte) error { return p.list.RestoreState(data) }

func (p *ListViewProxy) SetSelector(style tcell.Style) error {
	p.list.SetSelector(style)
	return nil
}

func (p *ListViewProxy) SetDividerHeight(lines int) error {
	p.list.SetDividerHeight(lines)
	return nil
}

func (p *ListViewProxy) SetItemsCanFocus(canFocus bool) error {
	p.list.SetItemsCanFocus(canFocus)
	return nil
}

func (p *ListViewProxy) ChoiceMode() (ChoiceMode, error) { return p.list.ChoiceMode(), nil }

func (p *ListViewProxy) SetChoiceMode(mode ChoiceMode) error {
	p.list.SetChoiceMode(mode)
	return nil
}

func (p *ListViewProxy) HandleEvent(ev tcell.Event) bool    { return p.list.HandleEvent(ev) }
func (p *ListViewProxy) Draw(s tcell.Screen, r widget.Rect) { p.list.Draw(s, r) }
