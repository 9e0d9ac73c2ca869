package proxy

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-listproxy/internal/gesture"
	"github.com/pstuifzand/tui-listproxy/internal/recycler"
	"github.com/pstuifzand/tui-listproxy/internal/widget"
)

// LinearRecyclerView adds item clicks, long clicks and an empty view to a
// recycler.View. It listens to the recycler instead of extending it.
//
// The recycler is hidden while an empty view is set and the content adapter
// has no rows; the empty view is then shown with the visibility the host
// last asked for.
type LinearRecyclerView struct {
	rv      *recycler.View
	lm      *recycler.LinearLayoutManager
	adapter *LinearAdapter

	emptyView           widget.View
	containerVisibility widget.Visibility
	emptyObserver       *emptyObserver

	onItemClick     OnItemClickListener
	onItemLongClick OnItemLongClickListener
	tap             *gesture.TapDetector
	longPress       *gesture.LongPressDetector
	clickRouter     *gestureRouter
	longClickRouter *gestureRouter
}

// NewLinearRecyclerView wraps rv. A recycler without a layout manager gets
// a LinearLayoutManager; any other layout manager is rejected with
// ErrNonLinearLayout.
func NewLinearRecyclerView(rv *recycler.View) (*LinearRecyclerView, error) {
	if rv.LayoutManager() == nil {
		rv.SetLayoutManager(recycler.NewLinearLayoutManager())
	}
	lm, ok := rv.LayoutManager().(*recycler.LinearLayoutManager)
	if !ok {
		return nil, fmt.Errorf("layout manager %T: %w", rv.LayoutManager(), ErrNonLinearLayout)
	}
	l := &LinearRecyclerView{
		rv:                  rv,
		lm:                  lm,
		containerVisibility: rv.Visibility(),
	}
	l.emptyObserver = &emptyObserver{view: l}
	l.tap = gesture.NewTapDetector(l.onTap)
	l.longPress = gesture.NewLongPressDetector(rv.Looper(), l.onLongPress)
	l.clickRouter = &gestureRouter{detect: l.tap.OnTouchEvent}
	l.longClickRouter = &gestureRouter{detect: l.longPress.OnTouchEvent}
	return l, nil
}

// gestureRouter feeds the recycler's touch stream to a recognizer without
// ever intercepting it.
type gestureRouter struct {
	detect     func(ev *tcell.EventMouse)
	registered bool
}

func (g *gestureRouter) OnInterceptTouchEvent(v *recycler.View, ev *tcell.EventMouse) bool {
	g.detect(ev)
	return false
}

func (g *gestureRouter) OnTouchEvent(v *recycler.View, ev *tcell.EventMouse) {}

type emptyObserver struct {
	view *LinearRecyclerView
}

func (o *emptyObserver) OnChanged()                   { o.view.updateViewVisibility() }
func (o *emptyObserver) OnItemRangeChanged(int, int)  { o.view.updateViewVisibility() }
func (o *emptyObserver) OnItemRangeInserted(int, int) { o.view.updateViewVisibility() }
func (o *emptyObserver) OnItemRangeRemoved(int, int)  { o.view.updateViewVisibility() }

func (l *LinearRecyclerView) RecyclerView() *recycler.View                 { return l.rv }
func (l *LinearRecyclerView) LayoutManager() *recycler.LinearLayoutManager { return l.lm }
func (l *LinearRecyclerView) Adapter() *LinearAdapter                      { return l.adapter }
func (l *LinearRecyclerView) EmptyView() widget.View                       { return l.emptyView }

// SetAdapter attaches a to the recycler and watches it for emptiness. Nil
// detaches.
func (l *LinearRecyclerView) SetAdapter(a *LinearAdapter) {
	if l.adapter != nil {
		l.adapter.UnregisterAdapterDataObserver(l.emptyObserver)
	}
	l.adapter = a
	if a == nil {
		l.rv.SetAdapter(nil)
	} else {
		l.rv.SetAdapter(a)
		a.RegisterAdapterDataObserver(l.emptyObserver)
	}
	l.updateViewVisibility()
}

func (l *LinearRecyclerView) SetEmptyView(v widget.View) {
	l.emptyView = v
	l.updateViewVisibility()
}

// SetVisibility sets the visibility of the list as a whole.
func (l *LinearRecyclerView) SetVisibility(v widget.Visibility) {
	l.containerVisibility = v
	l.updateViewVisibility()
}

// Visibility is the visibility last set with SetVisibility, whatever the
// recycler itself currently shows.
func (l *LinearRecyclerView) Visibility() widget.Visibility {
	return l.containerVisibility
}

func (l *LinearRecyclerView) hasContent() bool {
	return l.adapter != nil && l.adapter.HasContent()
}

func (l *LinearRecyclerView) updateViewVisibility() {
	if l.emptyView != nil && !l.hasContent() {
		l.rv.SetVisibility(widget.Gone)
		l.emptyView.SetVisibility(l.containerVisibility)
		return
	}
	l.rv.SetVisibility(l.containerVisibility)
	if l.emptyView != nil {
		l.emptyView.SetVisibility(widget.Gone)
	}
}

// SetOnItemClickListener sets l. The tap recognizer only watches the
// recycler while a listener is set.
func (l *LinearRecyclerView) SetOnItemClickListener(listener OnItemClickListener) {
	l.onItemClick = listener
	l.route(l.clickRouter, listener != nil)
}

// SetOnItemLongClickListener sets l. The long-press recognizer only
// watches the recycler while a listener is set.
func (l *LinearRecyclerView) SetOnItemLongClickListener(listener OnItemLongClickListener) {
	l.onItemLongClick = listener
	l.route(l.longClickRouter, listener != nil)
}

func (l *LinearRecyclerView) route(g *gestureRouter, enabled bool) {
	switch {
	case enabled && !g.registered:
		l.rv.AddOnItemTouchListener(g)
	case !enabled && g.registered:
		l.rv.RemoveOnItemTouchListener(g)
	}
	g.registered = enabled
}

// SetLongPressTimeout changes how long a press must last to be a long
// click.
func (l *LinearRecyclerView) SetLongPressTimeout(d time.Duration) {
	l.tap.Timeout = d
	l.longPress.Timeout = d
}

// SetClock replaces the time source of the gesture recognizers.
func (l *LinearRecyclerView) SetClock(now func() time.Time) {
	l.tap.Now = now
	l.longPress.Now = now
}

// childAt resolves the row under (x, y). It returns NoPosition when there
// is no row or the row's data changed since the last layout.
func (l *LinearRecyclerView) childAt(x, y int) (widget.View, int) {
	child := l.rv.FindChildViewUnder(x, y)
	if child == nil || l.adapter == nil {
		return nil, recycler.NoPosition
	}
	position := l.rv.ChildAdapterPosition(child)
	if position == recycler.NoPosition || !l.adapter.IsSelectable(position) {
		return nil, recycler.NoPosition
	}
	return child, position
}

func (l *LinearRecyclerView) onTap(x, y int) {
	if l.onItemClick == nil {
		return
	}
	child, position := l.childAt(x, y)
	if child == nil {
		return
	}
	l.onItemClick(l.rv, child, position, l.adapter.ContentItemID(position))
}

func (l *LinearRecyclerView) onLongPress(x, y int) {
	if l.onItemLongClick == nil {
		return
	}
	child, position := l.childAt(x, y)
	if child == nil {
		return
	}
	if l.onItemLongClick(l.rv, child, position, l.adapter.ContentItemID(position)) {
		l.rv.PerformHapticFeedback()
	}
}

func (l *LinearRecyclerView) Measure(width int) int {
	if l.containerVisibility == widget.Gone {
		return 0
	}
	p := l.rv.Padding()
	return p.Top + p.Bottom + 1
}

// Draw draws the recycler, or the empty view in its place.
func (l *LinearRecyclerView) Draw(s tcell.Screen, r widget.Rect) {
	l.rv.Draw(s, r)
	if l.emptyView != nil && l.rv.Visibility() != widget.Visible && l.emptyView.Visibility() == widget.Visible {
		l.emptyView.Draw(s, r)
	}
}

func (l *LinearRecyclerView) HandleEvent(ev tcell.Event) bool {
	return l.rv.HandleEvent(ev)
}
