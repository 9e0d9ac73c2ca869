package recycler

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-listproxy/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAdapter struct {
	AdapterObservable
	items   []string
	stable  bool
	created int
	onBind  func(position int)
}

func newTestAdapter(n int) *testAdapter {
	a := &testAdapter{}
	for i := 0; i < n; i++ {
		a.items = append(a.items, fmt.Sprintf("item %d", i))
	}
	return a
}

func (a *testAdapter) ItemCount() int                { return len(a.items) }
func (a *testAdapter) ItemViewType(position int) int { return 0 }
func (a *testAdapter) ItemID(position int) int64     { return int64(position * 10) }
func (a *testAdapter) HasStableIDs() bool            { return a.stable }

func (a *testAdapter) CreateViewHolder(parent *View, viewType int) *ViewHolder {
	a.created++
	return NewViewHolder(widget.NewLabel("", tcell.StyleDefault))
}

func (a *testAdapter) BindViewHolder(h *ViewHolder, position int) {
	if a.onBind != nil {
		a.onBind(position)
	}
	h.ItemView.(*widget.Label).SetText(a.items[position])
}

func (a *testAdapter) RegisterAdapterDataObserver(o AdapterDataObserver)   { a.Register(o) }
func (a *testAdapter) UnregisterAdapterDataObserver(o AdapterDataObserver) { a.Unregister(o) }

type scrollRecorder struct {
	states   []ScrollState
	scrolled [][2]int
}

func (r *scrollRecorder) OnScrollStateChanged(v *View, state ScrollState) {
	r.states = append(r.states, state)
}

func (r *scrollRecorder) OnScrolled(v *View, dx, dy int) {
	r.scrolled = append(r.scrolled, [2]int{dx, dy})
}

type fixture struct {
	screen tcell.SimulationScreen
	view   *View
	lm     *LinearLayoutManager
	data   *testAdapter
	rect   widget.Rect
}

func newFixture(t *testing.T, items, height int, looper widget.Looper) *fixture {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(20, height)
	t.Cleanup(s.Fini)

	f := &fixture{
		screen: s,
		view:   NewView(looper),
		lm:     NewLinearLayoutManager(),
		data:   newTestAdapter(items),
		rect:   widget.Rect{W: 20, H: height},
	}
	f.view.SetLayoutManager(f.lm)
	f.view.SetAdapter(f.data)
	f.draw()
	return f
}

func (f *fixture) draw() { f.view.Draw(f.screen, f.rect) }

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

func (f *fixture) mouse(x, y int, buttons tcell.ButtonMask) bool {
	return f.view.HandleEvent(tcell.NewEventMouse(x, y, buttons, tcell.ModNone))
}

func TestView_LayoutFillsViewport(t *testing.T) {
	f := newFixture(t, 10, 4, nil)

	assert.Equal(t, 4, f.view.ChildCount())
	assert.Equal(t, 0, f.lm.FindFirstVisibleItemPosition())
	assert.Equal(t, 3, f.lm.FindLastVisibleItemPosition())
	assert.Equal(t, "item 0", f.row(0))
	assert.Equal(t, "item 3", f.row(3))
	assert.Equal(t, 4, f.data.created)
}

func TestView_ScrollByClampsAtEnds(t *testing.T) {
	f := newFixture(t, 10, 4, nil)
	rec := &scrollRecorder{}
	f.view.AddOnScrollListener(rec)

	f.view.ScrollBy(0, -3)
	assert.Empty(t, rec.scrolled, "already at the top")

	f.view.ScrollBy(0, 4)
	assert.Equal(t, 4, f.lm.FindFirstVisibleItemPosition())

	f.view.ScrollBy(0, 100)
	assert.Equal(t, 6, f.lm.FindFirstVisibleItemPosition())
	assert.Equal(t, 9, f.lm.FindLastVisibleItemPosition())
	assert.Equal(t, [][2]int{{0, 4}, {0, 2}}, rec.scrolled)

	f.draw()
	assert.Equal(t, "item 6", f.row(0))
}

func TestView_ShortListDoesNotScroll(t *testing.T) {
	f := newFixture(t, 2, 4, nil)
	rec := &scrollRecorder{}
	f.view.AddOnScrollListener(rec)

	f.view.ScrollBy(0, 3)

	assert.Empty(t, rec.scrolled)
	assert.Equal(t, 0, f.lm.FindFirstVisibleItemPosition())
	assert.Equal(t, 1, f.lm.FindLastVisibleItemPosition())
}

func TestView_RecyclesHoldersThroughPool(t *testing.T) {
	f := newFixture(t, 10, 4, nil)
	var recycled []int
	f.view.SetRecyclerListener(func(h *ViewHolder) {
		recycled = append(recycled, h.LayoutPosition())
	})

	f.view.ScrollBy(0, 1)
	assert.Equal(t, []int{0}, recycled)
	assert.Equal(t, 5, f.data.created)

	f.view.ScrollBy(0, 1)
	assert.Equal(t, []int{0, 1}, recycled)
	assert.Equal(t, 5, f.data.created, "pooled holder is reused")
}

func TestView_DataChangeInvalidatesPositionsUntilLayout(t *testing.T) {
	f := newFixture(t, 10, 4, nil)
	child := f.view.ChildAt(0)
	require.Equal(t, 0, f.view.ChildAdapterPosition(child))

	f.data.items[0] = "changed"
	f.data.NotifyChanged()

	assert.Equal(t, NoPosition, f.view.ChildAdapterPosition(child))
	assert.Equal(t, 0, f.view.ChildLayoutPosition(child))
	assert.Equal(t, NoPosition, f.lm.FindFirstVisibleItemPosition())

	f.draw()
	assert.Equal(t, 0, f.lm.FindFirstVisibleItemPosition())
	assert.Equal(t, "changed", f.row(0))
}

func TestView_EmptyingAdapterDispatchesRangeChange(t *testing.T) {
	f := newFixture(t, 3, 4, nil)
	rec := &scrollRecorder{}
	f.view.AddOnScrollListener(rec)

	f.data.items = nil
	f.data.NotifyChanged()
	f.draw()

	assert.Equal(t, [][2]int{{0, 0}}, rec.scrolled)
	assert.Equal(t, 0, f.view.ChildCount())
	assert.Equal(t, NoPosition, f.lm.FindFirstVisibleItemPosition())
}

func TestView_ChangeDuringLayoutPanics(t *testing.T) {
	f := newFixture(t, 3, 4, nil)
	f.data.onBind = func(int) { f.data.NotifyChanged() }
	f.data.NotifyChanged()

	assert.Panics(t, f.draw)
	assert.False(t, f.view.IsComputingLayout())
}

func TestView_ChildLookups(t *testing.T) {
	f := newFixture(t, 10, 4, nil)
	f.data.stable = true
	f.data.NotifyChanged()
	f.draw()

	child := f.view.FindChildViewUnder(5, 2)
	require.NotNil(t, child)
	assert.Equal(t, 2, f.view.ChildAdapterPosition(child))
	assert.Equal(t, int64(20), f.view.ChildItemID(child))
	assert.Nil(t, f.view.FindChildViewUnder(5, 7))
	assert.Equal(t, NoPosition, f.view.ChildAdapterPosition(widget.NewLabel("stranger", tcell.StyleDefault)))
}

func TestView_SmoothScrollBy(t *testing.T) {
	q := widget.NewQueue()
	f := newFixture(t, 10, 4, q)
	rec := &scrollRecorder{}
	f.view.AddOnScrollListener(rec)

	f.view.SmoothScrollBy(0, 5)
	assert.Equal(t, []ScrollState{ScrollStateSettling}, rec.states)
	assert.Equal(t, 0, f.lm.FindFirstVisibleItemPosition(), "runs on the queue")

	q.RunPending()

	assert.Equal(t, 5, f.lm.FindFirstVisibleItemPosition())
	assert.Equal(t, [][2]int{{0, 3}, {0, 2}}, rec.scrolled)
	assert.Equal(t, []ScrollState{ScrollStateSettling, ScrollStateIdle}, rec.states)
}

func TestView_SmoothScrollToPosition(t *testing.T) {
	q := widget.NewQueue()
	f := newFixture(t, 10, 4, q)

	f.view.SmoothScrollToPosition(8)
	q.RunPending()

	assert.Equal(t, 9, f.lm.FindLastVisibleItemPosition())
	assert.Equal(t, ScrollStateIdle, f.view.ScrollState())

	f.view.SmoothScrollToPosition(0)
	q.RunPending()
	assert.Equal(t, 0, f.lm.FindFirstVisibleItemPosition())
}

func TestView_ScrollToPositionCancelsSmoothScroll(t *testing.T) {
	q := widget.NewQueue()
	f := newFixture(t, 10, 4, q)

	f.view.SmoothScrollBy(0, 6)
	f.view.ScrollToPosition(2)
	q.RunPending()
	f.draw()

	assert.Equal(t, 2, f.lm.FindFirstVisibleItemPosition())
	assert.Equal(t, ScrollStateIdle, f.view.ScrollState())
}

func TestView_WheelAndDrag(t *testing.T) {
	f := newFixture(t, 20, 4, nil)
	rec := &scrollRecorder{}
	f.view.AddOnScrollListener(rec)

	assert.True(t, f.mouse(1, 1, tcell.WheelDown))
	assert.Equal(t, 3, f.lm.FindFirstVisibleItemPosition())

	f.mouse(1, 3, tcell.Button1)
	f.mouse(1, 1, tcell.Button1)
	f.mouse(1, 1, tcell.ButtonNone)

	assert.Equal(t, 5, f.lm.FindFirstVisibleItemPosition())
	assert.Equal(t, []ScrollState{ScrollStateDragging, ScrollStateIdle}, rec.states)
	assert.False(t, f.mouse(30, 30, tcell.Button1), "outside the list")
}

type interceptor struct {
	intercept bool
	seen      int
	handled   int
}

func (i *interceptor) OnInterceptTouchEvent(v *View, ev *tcell.EventMouse) bool {
	i.seen++
	return i.intercept
}

func (i *interceptor) OnTouchEvent(v *View, ev *tcell.EventMouse) { i.handled++ }

func TestView_ItemTouchListenerInterceptsGesture(t *testing.T) {
	f := newFixture(t, 20, 4, nil)
	l := &interceptor{intercept: true}
	f.view.AddOnItemTouchListener(l)

	f.mouse(1, 3, tcell.Button1)
	f.mouse(1, 1, tcell.Button1)
	f.mouse(1, 1, tcell.ButtonNone)

	assert.Equal(t, 1, l.seen)
	assert.Equal(t, 2, l.handled)
	assert.Equal(t, 0, f.lm.FindFirstVisibleItemPosition(), "intercepted drag does not scroll")

	f.view.RemoveOnItemTouchListener(l)
	observer := &interceptor{}
	f.view.AddOnItemTouchListener(observer)
	f.mouse(1, 1, tcell.WheelDown)
	assert.Equal(t, 1, observer.seen)
	assert.Equal(t, 3, f.lm.FindFirstVisibleItemPosition())
}

func TestView_TouchListenerComesFirst(t *testing.T) {
	f := newFixture(t, 20, 4, nil)
	f.view.SetOnTouchListener(func(v widget.View, ev *tcell.EventMouse) bool { return true })

	f.mouse(1, 1, tcell.WheelDown)
	assert.Equal(t, 0, f.lm.FindFirstVisibleItemPosition())
}

func TestView_SaveAndRestoreState(t *testing.T) {
	f := newFixture(t, 20, 4, nil)
	f.view.ScrollBy(0, 7)

	data, err := f.view.SaveState()
	require.NoError(t, err)

	g := newFixture(t, 20, 4, nil)
	require.NoError(t, g.view.RestoreState(data))
	g.draw()
	assert.Equal(t, 7, g.lm.FindFirstVisibleItemPosition())

	assert.Error(t, g.view.RestoreState([]byte("not = [toml")))
	assert.NoError(t, g.view.RestoreState(nil))
}

func TestView_SetAdapterRecyclesOldHolders(t *testing.T) {
	f := newFixture(t, 10, 4, nil)
	recycled := 0
	f.view.SetRecyclerListener(func(*ViewHolder) { recycled++ })

	f.view.SetAdapter(nil)

	assert.Equal(t, 4, recycled)
	assert.Equal(t, 0, f.view.ChildCount())
	assert.Equal(t, 0, f.data.Count(), "observer unregistered")
	assert.Equal(t, 0, f.view.Pool().Count(0))
}

func TestView_ScrollBar(t *testing.T) {
	f := newFixture(t, 8, 4, nil)
	f.view.SetVerticalScrollBarEnabled(true)
	f.draw()

	assert.Equal(t, "item 0             ┃", f.row(0))
	assert.Equal(t, "item 2             │", f.row(2))
}

func TestPool_Limit(t *testing.T) {
	p := NewPool()
	p.SetMaxRecycledViews(0, 1)

	assert.True(t, p.Put(NewViewHolder(nil)))
	assert.False(t, p.Put(NewViewHolder(nil)))
	assert.Equal(t, 1, p.Count(0))
	assert.NotNil(t, p.Get(0))
	assert.Nil(t, p.Get(0))
}
