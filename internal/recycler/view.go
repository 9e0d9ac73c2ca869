package recycler

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/pstuifzand/tui-listproxy/internal/widget"
)

// ScrollState tells whether the list is being moved and by whom.
type ScrollState int

const (
	ScrollStateIdle ScrollState = iota
	// ScrollStateDragging is a scroll driven by the mouse.
	ScrollStateDragging
	// ScrollStateSettling is a scroll animating on its own.
	ScrollStateSettling
)

// OnScrollListener hears about scrolling. OnScrolled also fires with
// (0, 0) after a layout that changed the visible range.
type OnScrollListener interface {
	OnScrollStateChanged(v *View, state ScrollState)
	OnScrolled(v *View, dx, dy int)
}

// OnItemTouchListener sees mouse events before the list scrolls. A
// listener that intercepts a press receives the rest of the gesture through
// OnTouchEvent.
type OnItemTouchListener interface {
	OnInterceptTouchEvent(v *View, ev *tcell.EventMouse) bool
	OnTouchEvent(v *View, ev *tcell.EventMouse)
}

// RecyclerListener is called when a holder leaves the layout for the pool.
type RecyclerListener func(h *ViewHolder)

const (
	defaultWheelStep  = 3
	defaultSmoothStep = 3
)

// View is the recycling list widget.
type View struct {
	widget.Base
	Style tcell.Style

	adapter  Adapter
	observer *dataObserver
	layout   LayoutManager
	pool     *Pool
	children []*ViewHolder

	needsLayout bool
	dataChanged bool
	inLayout    bool
	lastArea    widget.Rect
	lastFirst   int
	lastLast    int

	scrollListeners  []OnScrollListener
	touchListeners   []OnItemTouchListener
	activeTouch      OnItemTouchListener
	recyclerListener RecyclerListener
	scrollState      ScrollState
	smoothGen        int
	wheelStep        int
	smoothStep       int

	pressed  bool
	dragging bool
	dragY    int
}

// NewView returns an empty list that posts its animation steps to looper.
func NewView(looper widget.Looper) *View {
	v := &View{
		Base:       widget.NewBase(looper),
		Style:      tcell.StyleDefault,
		pool:       NewPool(),
		lastFirst:  NoPosition,
		lastLast:   NoPosition,
		wheelStep:  defaultWheelStep,
		smoothStep: defaultSmoothStep,
	}
	v.observer = &dataObserver{view: v}
	return v
}

type dataObserver struct {
	view *View
}

func (o *dataObserver) OnChanged()                   { o.view.onDataSetChanged() }
func (o *dataObserver) OnItemRangeChanged(int, int)  { o.view.onDataSetChanged() }
func (o *dataObserver) OnItemRangeInserted(int, int) { o.view.onDataSetChanged() }
func (o *dataObserver) OnItemRangeRemoved(int, int)  { o.view.onDataSetChanged() }

func (v *View) onDataSetChanged() {
	if v.inLayout {
		panic("recycler: adapter changed while computing layout")
	}
	for _, h := range v.children {
		h.stale = true
	}
	v.dataChanged = true
}

// SetAdapter replaces the adapter. Holders of the old adapter are recycled
// and the pool is emptied; nil detaches.
func (v *View) SetAdapter(a Adapter) {
	v.stopScroll()
	if v.adapter != nil {
		v.adapter.UnregisterAdapterDataObserver(v.observer)
		for _, h := range v.children {
			v.recycle(h)
		}
		v.children = nil
		v.pool.Clear()
	}
	v.adapter = a
	if a != nil {
		a.RegisterAdapterDataObserver(v.observer)
	}
	v.dataChanged = true
	v.RequestLayout()
}

func (v *View) Adapter() Adapter { return v.adapter }

// SetLayoutManager attaches lm.
func (v *View) SetLayoutManager(lm LayoutManager) {
	v.layout = lm
	if lm != nil {
		lm.OnAttached(v)
	}
	v.RequestLayout()
}

func (v *View) LayoutManager() LayoutManager { return v.layout }

// Pool returns the holder pool.
func (v *View) Pool() *Pool { return v.pool }

// RequestLayout makes the next draw or scroll lay the rows out again.
func (v *View) RequestLayout() { v.needsLayout = true }

// IsComputingLayout reports whether a layout pass is running. Adapters
// must not change their data while it is.
func (v *View) IsComputingLayout() bool { return v.inLayout }

func (v *View) SetRecyclerListener(l RecyclerListener) { v.recyclerListener = l }

func (v *View) AddOnScrollListener(l OnScrollListener) {
	v.scrollListeners = append(v.scrollListeners, l)
}

func (v *View) RemoveOnScrollListener(l OnScrollListener) {
	for i, existing := range v.scrollListeners {
		if existing == l {
			v.scrollListeners = append(v.scrollListeners[:i], v.scrollListeners[i+1:]...)
			return
		}
	}
}

func (v *View) AddOnItemTouchListener(l OnItemTouchListener) {
	v.touchListeners = append(v.touchListeners, l)
}

func (v *View) RemoveOnItemTouchListener(l OnItemTouchListener) {
	if v.activeTouch == l {
		v.activeTouch = nil
	}
	for i, existing := range v.touchListeners {
		if existing == l {
			v.touchListeners = append(v.touchListeners[:i], v.touchListeners[i+1:]...)
			return
		}
	}
}

// SetWheelStep sets how many lines one wheel notch scrolls.
func (v *View) SetWheelStep(lines int) {
	if lines > 0 {
		v.wheelStep = lines
	}
}

// SetSmoothScrollStep sets how many lines each animation step scrolls.
func (v *View) SetSmoothScrollStep(lines int) {
	if lines > 0 {
		v.smoothStep = lines
	}
}

func (v *View) ScrollState() ScrollState { return v.scrollState }

func (v *View) setScrollState(state ScrollState) {
	if state == v.scrollState {
		return
	}
	v.scrollState = state
	for _, l := range append([]OnScrollListener(nil), v.scrollListeners...) {
		l.OnScrollStateChanged(v, state)
	}
}

func (v *View) dispatchOnScrolled(dx, dy int) {
	for _, l := range append([]OnScrollListener(nil), v.scrollListeners...) {
		l.OnScrolled(v, dx, dy)
	}
}

func (v *View) recycle(h *ViewHolder) {
	v.dispatchRecycled(h)
	v.pool.Put(h)
}

func (v *View) dispatchRecycled(h *ViewHolder) {
	if v.recyclerListener != nil {
		v.recyclerListener(h)
	}
}

// layoutArea is the part of the bounds rows are laid out in.
func (v *View) layoutArea() widget.Rect {
	area := v.ContentRect()
	if v.VerticalScrollBarEnabled() && area.W > 0 {
		area.W--
	}
	return area
}

// LayoutIfNeeded lays the rows out if the data, the size or the scroll
// target changed since the last layout.
func (v *View) LayoutIfNeeded() {
	area := v.layoutArea()
	if v.adapter == nil || v.layout == nil {
		v.dropChildren()
		return
	}
	if !v.needsLayout && !v.dataChanged && area == v.lastArea {
		return
	}
	v.runLayout(area, func(r *Recycler) int {
		v.layout.LayoutChildren(r)
		return 0
	})
	if v.updateRange() {
		v.dispatchOnScrolled(0, 0)
	}
}

func (v *View) dropChildren() {
	for _, h := range v.children {
		v.recycle(h)
	}
	v.children = nil
	v.updateRange()
}

func (v *View) runLayout(area widget.Rect, fn func(r *Recycler) int) int {
	v.inLayout = true
	defer func() { v.inLayout = false }()
	r := newRecycler(v, area)
	consumed := fn(r)
	v.children = r.finish()
	v.needsLayout = false
	v.dataChanged = false
	v.lastArea = area
	return consumed
}

// updateRange remembers the visible range and reports whether it moved.
func (v *View) updateRange() bool {
	first, last := NoPosition, NoPosition
	if n := len(v.children); n > 0 {
		first, last = v.children[0].position, v.children[n-1].position
	}
	changed := first != v.lastFirst || last != v.lastLast
	v.lastFirst, v.lastLast = first, last
	return changed
}

// ScrollBy scrolls the rows by dy lines. The list only scrolls
// vertically; dx is ignored.
func (v *View) ScrollBy(dx, dy int) {
	v.scrollBy(dy)
}

func (v *View) scrollBy(dy int) int {
	if v.adapter == nil || v.layout == nil || dy == 0 {
		return 0
	}
	v.LayoutIfNeeded()
	area := v.layoutArea()
	if area.Empty() {
		return 0
	}
	consumed := v.runLayout(area, func(r *Recycler) int {
		return v.layout.ScrollVerticallyBy(dy, r)
	})
	v.updateRange()
	if consumed != 0 {
		v.dispatchOnScrolled(0, consumed)
	}
	return consumed
}

// ScrollToPosition puts position at the top on the next layout.
func (v *View) ScrollToPosition(position int) {
	v.stopScroll()
	if v.layout == nil {
		return
	}
	v.layout.ScrollToPosition(position)
	v.RequestLayout()
}

// SmoothScrollBy animates a scroll of dy lines in posted steps.
func (v *View) SmoothScrollBy(dx, dy int) {
	if dy == 0 {
		return
	}
	v.smoothGen++
	generation := v.smoothGen
	remaining := dy
	v.setScrollState(ScrollStateSettling)
	var step func()
	step = func() {
		if generation != v.smoothGen {
			return
		}
		move := clamp(remaining, v.smoothStep)
		consumed := v.scrollBy(move)
		remaining -= move
		if remaining == 0 || consumed == 0 {
			v.setScrollState(ScrollStateIdle)
			return
		}
		v.Post(step)
	}
	v.Post(step)
}

// SmoothScrollToPosition animates until position is completely on screen.
func (v *View) SmoothScrollToPosition(position int) {
	if v.adapter == nil || position < 0 || position >= v.adapter.ItemCount() {
		return
	}
	v.smoothGen++
	generation := v.smoothGen
	v.setScrollState(ScrollStateSettling)
	var step func()
	step = func() {
		if generation != v.smoothGen {
			return
		}
		v.LayoutIfNeeded()
		if v.completelyVisible(position) {
			v.setScrollState(ScrollStateIdle)
			return
		}
		dy := v.smoothStep
		if len(v.children) > 0 && position < v.children[0].position {
			dy = -dy
		}
		if v.scrollBy(dy) == 0 {
			v.setScrollState(ScrollStateIdle)
			return
		}
		v.Post(step)
	}
	v.Post(step)
}

func (v *View) completelyVisible(position int) bool {
	area := v.layoutArea()
	for _, h := range v.children {
		if h.position == position && !h.stale {
			return h.rect.Y >= area.Y && h.rect.Bottom() <= area.Bottom()
		}
	}
	return false
}

func (v *View) stopScroll() {
	v.smoothGen++
	if v.scrollState == ScrollStateSettling {
		v.setScrollState(ScrollStateIdle)
	}
}

func clamp(v, limit int) int {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

func (v *View) ChildCount() int { return len(v.children) }

func (v *View) ChildAt(i int) widget.View {
	if i < 0 || i >= len(v.children) {
		return nil
	}
	return v.children[i].ItemView
}

// ChildViewHolder returns the holder of a laid out child view, or nil.
func (v *View) ChildViewHolder(child widget.View) *ViewHolder {
	for _, h := range v.children {
		if h.ItemView == child {
			return h
		}
	}
	return nil
}

// FindChildViewUnder returns the child drawn at screen cell (x, y).
func (v *View) FindChildViewUnder(x, y int) widget.View {
	if !v.layoutArea().Contains(x, y) {
		return nil
	}
	for _, h := range v.children {
		if h.rect.Contains(x, y) {
			return h.ItemView
		}
	}
	return nil
}

// ChildAdapterPosition returns NoPosition for views that are not children
// or whose data changed since the last layout.
func (v *View) ChildAdapterPosition(child widget.View) int {
	if h := v.ChildViewHolder(child); h != nil {
		return h.AdapterPosition()
	}
	return NoPosition
}

func (v *View) ChildLayoutPosition(child widget.View) int {
	if h := v.ChildViewHolder(child); h != nil {
		return h.LayoutPosition()
	}
	return NoPosition
}

func (v *View) ChildItemID(child widget.View) int64 {
	if h := v.ChildViewHolder(child); h != nil {
		return h.ItemID()
	}
	return NoID
}

// Measure reports the padding plus one row. Lists fill whatever height
// their parent gives them.
func (v *View) Measure(width int) int {
	if v.Visibility() == widget.Gone {
		return 0
	}
	p := v.Padding()
	return p.Top + p.Bottom + 1
}

func (v *View) Draw(s tcell.Screen, r widget.Rect) {
	v.SetBounds(r)
	if v.Visibility() != widget.Visible {
		return
	}
	v.LayoutIfNeeded()
	widget.Fill(s, r, v.Style)
	clip := r
	if v.ClipToPadding() {
		clip = v.layoutArea()
	}
	cs := widget.Clip(s, clip)
	for _, h := range v.children {
		if h.ItemView.Visibility() == widget.Visible && !h.rect.Empty() {
			h.ItemView.Draw(cs, h.rect)
		}
	}
	if v.VerticalScrollBarEnabled() {
		v.drawScrollBar(s)
	}
}

func (v *View) drawScrollBar(s tcell.Screen) {
	area := v.layoutArea()
	if v.adapter == nil || len(v.children) == 0 || area.H <= 0 {
		return
	}
	count := v.adapter.ItemCount()
	if count == 0 {
		return
	}
	x := area.X + area.W
	thumb := max(1, area.H*len(v.children)/count)
	thumb = min(thumb, area.H)
	top := area.H * v.children[0].position / count
	top = min(top, area.H-thumb)
	for y := 0; y < area.H; y++ {
		ch := '│'
		if y >= top && y < top+thumb {
			ch = '┃'
		}
		s.SetContent(x, area.Y+y, ch, nil, v.Style)
	}
}

// HandleEvent handles mouse input: the touch listener first, then item
// touch listeners, then wheel and drag scrolling.
func (v *View) HandleEvent(ev tcell.Event) bool {
	me, ok := ev.(*tcell.EventMouse)
	if !ok || v.Visibility() != widget.Visible {
		return false
	}
	x, y := me.Position()
	if !v.Bounds().Contains(x, y) && !v.pressed && v.activeTouch == nil {
		return false
	}
	if v.DispatchTouch(v, me) {
		return true
	}
	if v.dispatchItemTouch(me) {
		return true
	}

	buttons := me.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		v.stopScroll()
		v.ScrollBy(0, -v.wheelStep)
	case buttons&tcell.WheelDown != 0:
		v.stopScroll()
		v.ScrollBy(0, v.wheelStep)
	case buttons&tcell.Button1 != 0:
		if !v.pressed {
			v.stopScroll()
			v.pressed = true
			v.dragging = false
			v.dragY = y
			break
		}
		if y != v.dragY {
			if !v.dragging {
				v.dragging = true
				v.setScrollState(ScrollStateDragging)
			}
			v.ScrollBy(0, v.dragY-y)
			v.dragY = y
		}
	default:
		if v.pressed {
			v.pressed = false
			if v.dragging {
				v.dragging = false
				v.setScrollState(ScrollStateIdle)
			}
		}
	}
	return true
}

func (v *View) dispatchItemTouch(me *tcell.EventMouse) bool {
	released := me.Buttons()&tcell.Button1 == 0
	if v.activeTouch != nil {
		l := v.activeTouch
		if released {
			v.activeTouch = nil
		}
		l.OnTouchEvent(v, me)
		return true
	}
	for _, l := range append([]OnItemTouchListener(nil), v.touchListeners...) {
		if l.OnInterceptTouchEvent(v, me) {
			if !released {
				v.activeTouch = l
			}
			return true
		}
	}
	return false
}

type savedState struct {
	Layout LayoutState `toml:"layout"`
}

// SaveState encodes the scroll position.
func (v *View) SaveState() ([]byte, error) {
	var state savedState
	if v.layout != nil {
		state.Layout = v.layout.State()
	}
	data, err := toml.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode recycler state: %w", err)
	}
	return data, nil
}

// RestoreState applies a state produced by SaveState. The position takes
// effect at the next layout.
func (v *View) RestoreState(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	var state savedState
	if err := toml.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to decode recycler state: %w", err)
	}
	if v.layout == nil {
		log.Printf("recycler: state restored without a layout manager")
		return nil
	}
	v.layout.RestoreState(state.Layout)
	v.RequestLayout()
	return nil
}
