// Package listview is the legacy list widget. It asks its adapter for a
// view per visible row, hosts header and footer views itself and swaps in
// an empty view when the adapter has no rows.
package listview

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-listproxy/internal/adapter"
	"github.com/pstuifzand/tui-listproxy/internal/gesture"
	"github.com/pstuifzand/tui-listproxy/internal/widget"
)

const (
	InvalidPosition       = -1
	InvalidRowID    int64 = -1
)

// itemViewTypeFixed marks header and footer rows, which never go to the
// scrap heap.
const itemViewTypeFixed = -2

// ChoiceMode controls how clicks check rows.
type ChoiceMode int

const (
	ChoiceModeNone ChoiceMode = iota
	ChoiceModeSingle
	ChoiceModeMultiple
	ChoiceModeMultipleModal
)

func (m ChoiceMode) String() string {
	switch m {
	case ChoiceModeNone:
		return "none"
	case ChoiceModeSingle:
		return "single"
	case ChoiceModeMultiple:
		return "multiple"
	case ChoiceModeMultipleModal:
		return "multiple-modal"
	}
	return "unknown"
}

// ScrollState tells whether the list is being moved and by whom.
type ScrollState int

const (
	ScrollStateIdle ScrollState = iota
	ScrollStateTouchScroll
	ScrollStateFling
)

// OnScrollListener hears about scroll state changes and about the visible
// range after every layout that moved it.
type OnScrollListener interface {
	OnScrollStateChanged(v *View, state ScrollState)
	OnScroll(v *View, firstVisible, visibleCount, totalCount int)
}

type OnItemClickListener func(parent *View, view widget.View, position int, id int64)

// OnItemLongClickListener returns true when it consumed the long click.
type OnItemLongClickListener func(parent *View, view widget.View, position int, id int64) bool

// RecyclerListener is called when a row view moves to the scrap heap.
type RecyclerListener func(view widget.View)

// FixedView is a header or footer row.
type FixedView struct {
	View       widget.View
	Data       any
	Selectable bool
}

type row struct {
	position int
	view     widget.View
	viewType int
	rect     widget.Rect
}

const (
	defaultWheelStep  = 3
	defaultSmoothStep = 3
)

// View is the legacy list widget.
type View struct {
	widget.Base
	Style tcell.Style

	adapter   adapter.ListAdapter
	observer  *dataObserver
	headers   []FixedView
	footers   []FixedView
	emptyView widget.View

	rows        []row
	scrap       map[int][]widget.View
	top         int
	topOffset   int
	needsLayout bool
	dataChanged bool
	lastArea    widget.Rect

	selected      int
	selector      tcell.Style
	dividerHeight int
	itemsCanFocus bool
	choiceMode    ChoiceMode
	checked       map[int]bool

	scrollListener   OnScrollListener
	scrollState      ScrollState
	lastFirst        int
	lastVisible      int
	lastTotal        int
	onItemClick      OnItemClickListener
	onItemLongClick  OnItemLongClickListener
	recyclerListener RecyclerListener

	tap        *gesture.TapDetector
	longPress  *gesture.LongPressDetector
	smoothGen  int
	smoothStep int
	wheelStep  int
	pressed    bool
	dragging   bool
	dragY      int
	focusedRow widget.EventHandler
}

// New returns an empty list posting its delayed work to looper.
func New(looper widget.Looper) *View {
	v := &View{
		Base:        widget.NewBase(looper),
		Style:       tcell.StyleDefault,
		scrap:       make(map[int][]widget.View),
		selected:    InvalidPosition,
		selector:    tcell.StyleDefault.Reverse(true),
		checked:     make(map[int]bool),
		lastFirst:   InvalidPosition,
		smoothStep:  defaultSmoothStep,
		wheelStep:   defaultWheelStep,
		needsLayout: true,
	}
	v.SetClickable(true)
	v.SetLongClickable(true)
	v.observer = &dataObserver{view: v}
	v.tap = gesture.NewTapDetector(v.onTap)
	v.longPress = gesture.NewLongPressDetector(looper, v.onLongPress)
	return v
}

type dataObserver struct {
	view *View
}

func (o *dataObserver) OnChanged()     { o.view.onDataSetChanged() }
func (o *dataObserver) OnInvalidated() { o.view.onDataSetChanged() }

func (v *View) onDataSetChanged() {
	v.dataChanged = true
	v.updateEmptyStatus()
}

// SetAdapter attaches a. Scroll position, selection and checked rows are
// reset; nil detaches.
func (v *View) SetAdapter(a adapter.ListAdapter) {
	if v.adapter != nil {
		v.adapter.UnregisterDataSetObserver(v.observer)
	}
	v.adapter = a
	if a != nil {
		a.RegisterDataSetObserver(v.observer)
	}
	clear(v.scrap)
	clear(v.checked)
	v.rows = nil
	v.top, v.topOffset = 0, 0
	v.selected = InvalidPosition
	v.dataChanged = true
	v.updateEmptyStatus()
}

func (v *View) Adapter() adapter.ListAdapter { return v.adapter }

// SetLongPressTimeout changes how long a press must last to be a long
// click.
func (v *View) SetLongPressTimeout(d time.Duration) {
	v.tap.Timeout = d
	v.longPress.Timeout = d
}

// SetClock replaces the time source of the gesture recognizers.
func (v *View) SetClock(now func() time.Time) {
	v.tap.Now = now
	v.longPress.Now = now
}

func (v *View) SetWheelStep(lines int) {
	if lines > 0 {
		v.wheelStep = lines
	}
}

func (v *View) SetSmoothScrollStep(lines int) {
	if lines > 0 {
		v.smoothStep = lines
	}
}

func (v *View) SetOnItemClickListener(l OnItemClickListener)         { v.onItemClick = l }
func (v *View) SetOnItemLongClickListener(l OnItemLongClickListener) { v.onItemLongClick = l }
func (v *View) SetRecyclerListener(l RecyclerListener)               { v.recyclerListener = l }

// SetOnScrollListener sets l and reports the current range to it at once.
func (v *View) SetOnScrollListener(l OnScrollListener) {
	v.scrollListener = l
	if l != nil {
		l.OnScroll(v, v.topPosition(), len(v.rows), v.Count())
	}
}

func (v *View) setScrollState(state ScrollState) {
	if state == v.scrollState {
		return
	}
	v.scrollState = state
	if v.scrollListener != nil {
		v.scrollListener.OnScrollStateChanged(v, state)
	}
}

func (v *View) ScrollState() ScrollState { return v.scrollState }

// SetSelector sets the style of the selected and checked rows.
func (v *View) SetSelector(style tcell.Style) { v.selector = style }
func (v *View) Selector() tcell.Style         { return v.selector }

// SetDividerHeight sets the lines drawn between rows.
func (v *View) SetDividerHeight(lines int) {
	v.dividerHeight = max(0, lines)
	v.needsLayout = true
}

func (v *View) DividerHeight() int { return v.dividerHeight }

// SetItemsCanFocus lets row views that handle events receive mouse input
// before the list does.
func (v *View) SetItemsCanFocus(canFocus bool) { v.itemsCanFocus = canFocus }
func (v *View) ItemsCanFocus() bool            { return v.itemsCanFocus }

// SetEmptyView sets the view shown instead of the list while the adapter
// has no rows.
func (v *View) SetEmptyView(empty widget.View) {
	v.emptyView = empty
	v.updateEmptyStatus()
}

func (v *View) EmptyView() widget.View { return v.emptyView }

func (v *View) updateEmptyStatus() {
	if v.IsEmpty() {
		if v.emptyView != nil {
			v.emptyView.SetVisibility(widget.Visible)
			v.SetVisibility(widget.Gone)
			return
		}
		v.SetVisibility(widget.Visible)
		return
	}
	if v.emptyView != nil {
		v.emptyView.SetVisibility(widget.Gone)
	}
	v.SetVisibility(widget.Visible)
}
