package listview

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-listproxy/internal/adapter"
	"github.com/pstuifzand/tui-listproxy/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type countingFeedback struct{ n int }

func (f *countingFeedback) PerformHapticFeedback() { f.n++ }

type fixture struct {
	screen tcell.SimulationScreen
	list   *View
	data   *adapter.StringAdapter
	rect   widget.Rect
}

func items(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("item %d", i)
	}
	return out
}

func newFixture(t *testing.T, n, height int, looper widget.Looper) *fixture {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(20, height)
	t.Cleanup(s.Fini)

	f := &fixture{
		screen: s,
		list:   New(looper),
		data:   adapter.NewStringAdapter(items(n)...),
		rect:   widget.Rect{W: 20, H: height},
	}
	f.list.SetAdapter(f.data)
	f.draw()
	return f
}

func (f *fixture) draw() { f.list.Draw(f.screen, f.rect) }

func (f *fixture) row(y int) string {
	f.screen.Show()
	cells, w, _ := f.screen.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		if runes := cells[y*w+x].Runes; len(runes) > 0 {
			sb.WriteRune(runes[0])
		} else {
			sb.WriteRune(' ')
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

func (f *fixture) mouse(x, y int, buttons tcell.ButtonMask) {
	f.list.HandleEvent(tcell.NewEventMouse(x, y, buttons, tcell.ModNone))
}

func (f *fixture) tap(x, y int) {
	f.mouse(x, y, tcell.Button1)
	f.mouse(x, y, tcell.ButtonNone)
}

func label(text string) *widget.Label { return widget.NewLabel(text, tcell.StyleDefault) }

func TestView_HeadersContentFooters(t *testing.T) {
	f := newFixture(t, 3, 10, nil)
	h0, h1, f0 := label("H0"), label("H1"), label("F0")
	f.list.AddHeaderViewWithData(h0, "header data", true)
	f.list.AddHeaderView(h1)
	f.list.AddFooterView(f0)
	f.draw()

	assert.Equal(t, 6, f.list.Count())
	for y, want := range []string{"H0", "H1", "item 0", "item 1", "item 2", "F0"} {
		assert.Equal(t, want, f.row(y))
	}

	item, ok := f.list.ItemAtPosition(0)
	assert.True(t, ok)
	assert.Equal(t, "header data", item)
	_, ok = f.list.ItemAtPosition(1)
	assert.False(t, ok, "header without data")
	item, ok = f.list.ItemAtPosition(3)
	assert.True(t, ok)
	assert.Equal(t, "item 1", item)
	_, ok = f.list.ItemAtPosition(-1)
	assert.False(t, ok)
	_, ok = f.list.ItemAtPosition(6)
	assert.False(t, ok)

	assert.Equal(t, InvalidRowID, f.list.ItemIDAtPosition(0))
	assert.Equal(t, int64(2), f.list.ItemIDAtPosition(4))
	assert.Equal(t, InvalidRowID, f.list.ItemIDAtPosition(5))
	assert.Equal(t, InvalidRowID, f.list.ItemIDAtPosition(-3))
	assert.Equal(t, 5, f.list.PositionForView(f0))

	assert.True(t, f.list.RemoveHeaderView(h0))
	assert.False(t, f.list.RemoveHeaderView(h0))
	assert.True(t, f.list.RemoveFooterView(f0))
	f.draw()
	assert.Equal(t, "H1", f.row(0))
	assert.Equal(t, "", f.row(4))
	assert.Equal(t, 1, f.list.HeaderViewsCount())
	assert.Equal(t, 0, f.list.FooterViewsCount())
}

func TestView_EmptyViewSwap(t *testing.T) {
	f := newFixture(t, 0, 4, nil)
	empty := label("nothing here")
	f.list.AddHeaderView(label("title"))
	f.list.SetEmptyView(empty)

	assert.True(t, f.list.IsEmpty(), "headers do not count")
	assert.Equal(t, widget.Gone, f.list.Visibility())
	assert.Equal(t, widget.Visible, empty.Visibility())
	f.draw()
	assert.Equal(t, "nothing here", f.row(0))

	f.data.Add("first")
	assert.Equal(t, widget.Visible, f.list.Visibility())
	assert.Equal(t, widget.Gone, empty.Visibility())
	f.draw()
	assert.Equal(t, "title", f.row(0))
	assert.Equal(t, "first", f.row(1))
}

func TestView_ItemClick(t *testing.T) {
	f := newFixture(t, 5, 8, nil)
	f.list.AddHeaderViewWithData(label("fixed"), nil, false)
	f.draw()

	f.tap(2, 2)
	type click struct {
		position int
		id       int64
	}
	var clicks []click
	f.list.SetOnItemClickListener(func(parent *View, view widget.View, position int, id int64) {
		assert.Same(t, f.list, parent)
		assert.Equal(t, position, parent.PositionForView(view))
		clicks = append(clicks, click{position, id})
	})

	f.tap(2, 2)
	f.tap(2, 0)
	f.tap(2, 7)

	assert.Equal(t, []click{{2, 1}}, clicks, "non-selectable header and blank area do not click")
}

func TestView_LongClickWithFeedback(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	q := widget.NewQueue()
	q.SetClock(clock.Now)
	f := newFixture(t, 5, 8, q)
	f.list.SetClock(clock.Now)
	feedback := &countingFeedback{}
	f.list.SetFeedback(feedback)

	clicked := 0
	var longClicked []int
	f.list.SetOnItemClickListener(func(*View, widget.View, int, int64) { clicked++ })
	f.list.SetOnItemLongClickListener(func(parent *View, view widget.View, position int, id int64) bool {
		longClicked = append(longClicked, position)
		return position == 1
	})

	f.mouse(2, 1, tcell.Button1)
	clock.Advance(600 * time.Millisecond)
	q.RunPending()
	f.mouse(2, 1, tcell.ButtonNone)

	f.mouse(2, 3, tcell.Button1)
	clock.Advance(600 * time.Millisecond)
	q.RunPending()
	f.mouse(2, 3, tcell.ButtonNone)

	assert.Equal(t, []int{1, 3}, longClicked)
	assert.Equal(t, 1, feedback.n, "feedback only when consumed")
	assert.Equal(t, 0, clicked, "a long press is not a tap")
}

func TestView_ChoiceModes(t *testing.T) {
	f := newFixture(t, 5, 8, nil)

	f.tap(1, 1)
	assert.Equal(t, 0, f.list.CheckedItemCount(), "no choice mode")

	f.list.SetChoiceMode(ChoiceModeSingle)
	f.tap(1, 1)
	f.tap(1, 3)
	assert.Equal(t, []int{3}, f.list.CheckedItemPositions())

	f.list.SetChoiceMode(ChoiceModeMultiple)
	assert.Equal(t, 0, f.list.CheckedItemCount(), "mode change clears")
	f.tap(1, 1)
	f.tap(1, 3)
	f.tap(1, 1)
	assert.Equal(t, []int{3}, f.list.CheckedItemPositions())
	assert.True(t, f.list.IsItemChecked(3))

	f.list.ClearChoices()
	assert.Equal(t, 0, f.list.CheckedItemCount())
}

func TestView_ModalChoiceStartsOnLongPress(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	q := widget.NewQueue()
	q.SetClock(clock.Now)
	f := newFixture(t, 5, 8, q)
	f.list.SetClock(clock.Now)
	f.list.SetChoiceMode(ChoiceModeMultipleModal)

	f.mouse(0, 2, tcell.Button1)
	clock.Advance(time.Second)
	q.RunPending()
	f.mouse(0, 2, tcell.ButtonNone)

	assert.Equal(t, []int{2}, f.list.CheckedItemPositions())
}

type scrollRecorder struct {
	states []ScrollState
	ranges [][3]int
}

func (r *scrollRecorder) OnScrollStateChanged(v *View, state ScrollState) {
	r.states = append(r.states, state)
}

func (r *scrollRecorder) OnScroll(v *View, first, visible, total int) {
	r.ranges = append(r.ranges, [3]int{first, visible, total})
}

func TestView_ScrollListener(t *testing.T) {
	f := newFixture(t, 20, 4, nil)
	rec := &scrollRecorder{}
	f.list.SetOnScrollListener(rec)
	assert.Equal(t, [][3]int{{0, 4, 20}}, rec.ranges, "reported on registration")

	f.mouse(1, 1, tcell.WheelDown)
	assert.Equal(t, 3, f.list.FirstVisiblePosition())
	assert.Equal(t, 6, f.list.LastVisiblePosition())

	f.mouse(1, 3, tcell.Button1)
	f.mouse(1, 2, tcell.Button1)
	f.mouse(1, 2, tcell.ButtonNone)

	assert.Equal(t, [][3]int{{0, 4, 20}, {3, 4, 20}, {4, 4, 20}}, rec.ranges)
	assert.Equal(t, []ScrollState{ScrollStateTouchScroll, ScrollStateIdle}, rec.states)
}

func TestView_RecyclerListenerAndConvertViews(t *testing.T) {
	f := newFixture(t, 10, 4, nil)
	var scrapped []widget.View
	f.list.SetRecyclerListener(func(v widget.View) { scrapped = append(scrapped, v) })
	first := f.list.ChildAt(0)

	f.list.ScrollListBy(1)
	require.Equal(t, []widget.View{first}, scrapped)

	f.list.ScrollListBy(1)
	assert.Same(t, first, f.list.ChildAt(3), "scrap view reused for the new row")
	assert.Equal(t, "item 5", first.(*widget.Label).Text)
	assert.Len(t, scrapped, 2)
}

func TestView_Selection(t *testing.T) {
	f := newFixture(t, 20, 4, nil)
	f.list.AddHeaderView(label("H"))
	f.list.AddHeaderView(label("H2"))

	f.list.SetSelection(7)
	f.draw()
	assert.Equal(t, 7, f.list.FirstVisiblePosition())
	assert.Equal(t, 7, f.list.SelectedItemPosition())
	_, _, style, _ := f.screen.GetContent(0, 0)
	_, _, attrs := style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrReverse, "selected row uses the selector")

	f.list.SetSelectionFromTop(9, 2)
	f.draw()
	assert.Equal(t, 7, f.list.FirstVisiblePosition())
	assert.Equal(t, "item 7", f.row(2))

	f.list.SetSelectionAfterHeaderView()
	f.draw()
	assert.Equal(t, 2, f.list.FirstVisiblePosition())
	assert.Equal(t, "item 0", f.row(0))
}

func TestView_SmoothScrollBy(t *testing.T) {
	q := widget.NewQueue()
	f := newFixture(t, 20, 4, q)
	rec := &scrollRecorder{}
	f.list.SetOnScrollListener(rec)

	f.list.SmoothScrollBy(5, 0)
	assert.Equal(t, 0, f.list.FirstVisiblePosition(), "steps are posted")
	q.RunPending()

	assert.Equal(t, 5, f.list.FirstVisiblePosition())
	assert.Equal(t, []ScrollState{ScrollStateFling, ScrollStateIdle}, rec.states)
}

func TestView_SmoothScrollToPosition(t *testing.T) {
	q := widget.NewQueue()
	f := newFixture(t, 20, 4, q)

	f.list.SmoothScrollToPosition(12)
	q.RunPending()
	assert.LessOrEqual(t, f.list.FirstVisiblePosition(), 12)
	assert.GreaterOrEqual(t, f.list.LastVisiblePosition(), 12)

	f.list.SmoothScrollToPositionFromTop(15, 1)
	q.RunPending()
	f.draw()
	assert.Equal(t, "item 15", f.row(1))
}

func TestView_Dividers(t *testing.T) {
	f := newFixture(t, 3, 6, nil)
	f.list.SetDividerHeight(1)
	f.draw()

	assert.Equal(t, "item 0", f.row(0))
	assert.Equal(t, strings.Repeat("─", 20), f.row(1))
	assert.Equal(t, "item 1", f.row(2))
	assert.Equal(t, "item 2", f.row(4))
	assert.Equal(t, "", f.row(5))
}

func TestView_ScrollToTranslatesContent(t *testing.T) {
	f := newFixture(t, 10, 4, nil)
	f.list.ScrollTo(0, 1)
	f.draw()

	assert.Equal(t, "item 1", f.row(0))
	assert.Equal(t, 1, f.list.PointToPosition(0, 0))
	assert.Equal(t, 1, f.list.ScrollY())
}

func TestView_SaveAndRestoreState(t *testing.T) {
	f := newFixture(t, 20, 4, nil)
	f.list.SetChoiceMode(ChoiceModeMultiple)
	f.list.SetItemChecked(2, true)
	f.list.SetItemChecked(5, true)
	f.list.SetSelection(4)

	data, err := f.list.SaveState()
	require.NoError(t, err)

	g := newFixture(t, 20, 4, nil)
	g.list.SetChoiceMode(ChoiceModeMultiple)
	require.NoError(t, g.list.RestoreState(data))
	g.draw()

	assert.Equal(t, 4, g.list.FirstVisiblePosition())
	assert.Equal(t, 4, g.list.SelectedItemPosition())
	assert.Equal(t, []int{2, 5}, g.list.CheckedItemPositions())
	assert.Error(t, g.list.RestoreState([]byte("[[[")))
}

type focusableLabel struct {
	*widget.Label
	events int
}

func (l *focusableLabel) HandleEvent(ev tcell.Event) bool {
	l.events++
	return true
}

func TestView_ItemsCanFocus(t *testing.T) {
	f := newFixture(t, 3, 6, nil)
	header := &focusableLabel{Label: label("button")}
	f.list.AddHeaderView(header)
	f.draw()
	clicks := 0
	f.list.SetOnItemClickListener(func(*View, widget.View, int, int64) { clicks++ })

	f.tap(1, 0)
	assert.Equal(t, 1, clicks)
	assert.Equal(t, 0, header.events)

	f.list.SetItemsCanFocus(true)
	f.tap(1, 0)
	assert.Equal(t, 1, clicks)
	assert.Equal(t, 2, header.events)
}
