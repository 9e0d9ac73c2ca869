// Package proxy lets code written against the legacy list widget run on the
// recycling one. ScrollingViewProxy is the common surface; ListViewProxy
// passes through to a listview.View and RecyclerViewProxy emulates headers,
// footers, clicks and the empty view on top of a recycler.View.
package proxy

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-listproxy/internal/adapter"
	"github.com/pstuifzand/tui-listproxy/internal/listview"
	"github.com/pstuifzand/tui-listproxy/internal/widget"
)

const (
	InvalidPosition = listview.InvalidPosition
	InvalidRowID    = listview.InvalidRowID
)

type ChoiceMode = listview.ChoiceMode

const (
	ChoiceModeNone          = listview.ChoiceModeNone
	ChoiceModeSingle        = listview.ChoiceModeSingle
	ChoiceModeMultiple      = listview.ChoiceModeMultiple
	ChoiceModeMultipleModal = listview.ChoiceModeMultipleModal
)

type ScrollState = listview.ScrollState

const (
	ScrollStateIdle        = listview.ScrollStateIdle
	ScrollStateTouchScroll = listview.ScrollStateTouchScroll
	ScrollStateFling       = listview.ScrollStateFling
)

// OnItemClickListener is called with the widget that holds the row, the
// row view, its flat position and its adapter id.
type OnItemClickListener func(parent widget.Container, view widget.View, position int, id int64)

// OnItemLongClickListener returns true when it consumed the long click.
type OnItemLongClickListener func(parent widget.Container, view widget.View, position int, id int64) bool

// RecyclerListener is called when a row view is taken off screen for reuse.
type RecyclerListener func(view widget.View)

// OnScrollListener receives the visible range in flat positions.
type OnScrollListener interface {
	OnScrollStateChanged(p ScrollingViewProxy, state ScrollState)
	OnScroll(p ScrollingViewProxy, firstVisible, visibleCount, totalCount int)
}

// ScrollListenerFuncs adapts plain functions to OnScrollListener. Nil
// fields are skipped.
type ScrollListenerFuncs struct {
	StateChanged func(p ScrollingViewProxy, state ScrollState)
	Scroll       func(p ScrollingViewProxy, firstVisible, visibleCount, totalCount int)
}

func (f ScrollListenerFuncs) OnScrollStateChanged(p ScrollingViewProxy, state ScrollState) {
	if f.StateChanged != nil {
		f.StateChanged(p, state)
	}
}

func (f ScrollListenerFuncs) OnScroll(p ScrollingViewProxy, firstVisible, visibleCount, totalCount int) {
	if f.Scroll != nil {
		f.Scroll(p, firstVisible, visibleCount, totalCount)
	}
}

// ScrollingViewProxy is the list API shared by both backends. Operations a
// backend cannot provide return an *UnsupportedError.
type ScrollingViewProxy interface {
	// View is what the host lays out and draws.
	View() widget.View
	// Container is the list widget holding the row views.
	Container() widget.Container
	ListView() (*listview.View, error)

	// Adapter returns the content adapter passed to SetAdapter.
	Adapter() adapter.ListAdapter
	SetAdapter(a adapter.Adapter)

	AddHeaderView(v widget.View)
	AddHeaderViewWithData(v widget.View, data any, selectable bool)
	AddFooterView(v widget.View)
	AddFooterViewWithData(v widget.View, data any, selectable bool)
	RemoveHeaderView(v widget.View) bool
	RemoveFooterView(v widget.View) bool
	HeaderViewsCount() int
	FooterViewsCount() int

	SetOnScrollListener(l OnScrollListener)
	SetOnItemClickListener(l OnItemClickListener)
	SetOnItemLongClickListener(l OnItemLongClickListener)
	SetRecyclerListener(l RecyclerListener)
	SetOnTouchListener(l widget.OnTouchListener)

	SetVisibility(v widget.Visibility)
	Visibility() widget.Visibility
	Bounds() widget.Rect
	SetPadding(p widget.Insets)
	Padding() widget.Insets
	ClipToPadding() bool
	SetClipToPadding(clip bool)
	SetVerticalScrollBarEnabled(enabled bool)
	SetClickable(clickable bool)
	SetLongClickable(longClickable bool)

	ScrollX() int
	ScrollY() int
	ScrollTo(x, y int) error
	ScrollBy(dx, dy int) error
	SmoothScrollBy(distance int, duration time.Duration)
	SmoothScrollToPosition(position int)
	SmoothScrollToPositionFromTop(position, offset int)
	// Post runs fn on the UI queue after the work already queued.
	Post(fn func())

	PositionForView(v widget.View) int
	ChildCount() int
	ChildAt(i int) widget.View
	FirstVisiblePosition() int
	LastVisiblePosition() int
	Count() int
	// IsEmpty reports whether the content adapter has no rows. Headers
	// and footers do not count.
	IsEmpty() bool
	ItemAtPosition(position int) (any, bool)
	ItemIDAtPosition(position int) int64

	SetSelection(position int)
	SetSelectionFromTop(position, y int)
	SetSelectionAfterHeaderView()

	SetEmptyView(v widget.View)

	SaveState() ([]byte, error)
	RestoreState(data []byte) error

	SetSelector(style tcell.Style) error
	SetDividerHeight(lines int) error
	SetItemsCanFocus(canFocus bool) error
	ChoiceMode() (ChoiceMode, error)
	SetChoiceMode(mode ChoiceMode) error

	HandleEvent(ev tcell.Event) bool
	Draw(s tcell.Screen, r widget.Rect)
}
