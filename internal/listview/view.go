package listview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/pstuifzand/tui-listproxy/internal/widget"
)

// Measure reports the padding plus one row. Lists fill whatever height
// their parent gives them.
func (v *View) Measure(width int) int {
	if v.Visibility() == widget.Gone {
		return 0
	}
	p := v.Padding()
	return p.Top + p.Bottom + 1
}

// Draw renders the rows into r. While the list is hidden for lack of rows
// the empty view is drawn in its place.
func (v *View) Draw(s tcell.Screen, r widget.Rect) {
	v.SetBounds(r)
	if v.Visibility() == widget.Gone && v.emptyView != nil && v.emptyView.Visibility() == widget.Visible {
		v.emptyView.Draw(s, r)
		return
	}
	if v.Visibility() != widget.Visible {
		return
	}
	v.layoutIfNeeded()
	widget.Fill(s, r, v.Style)

	clip := r
	if v.ClipToPadding() {
		clip = v.listArea()
	}
	cs := widget.Clip(s, clip)
	sx, sy := v.ScrollX(), v.ScrollY()
	last := v.Count() - 1
	for _, row := range v.rows {
		rect := row.rect
		rect.X -= sx
		rect.Y -= sy
		if row.view.Visibility() == widget.Visible && !rect.Empty() {
			row.view.Draw(cs, rect)
		}
		if row.position == v.selected || v.checked[row.position] {
			restyle(cs, rect, v.selector)
		}
		if v.dividerHeight > 0 && row.position < last {
			divider := widget.Rect{X: rect.X, Y: rect.Bottom(), W: rect.W, H: v.dividerHeight}
			drawDivider(cs, divider, v.Style)
		}
	}
	if v.VerticalScrollBarEnabled() {
		v.drawScrollBar(s)
	}
}

func restyle(s tcell.Screen, r widget.Rect, style tcell.Style) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.X+r.W; x++ {
			mainc, combc, _, _ := s.GetContent(x, y)
			s.SetContent(x, y, mainc, combc, style)
		}
	}
}

func drawDivider(s tcell.Screen, r widget.Rect, style tcell.Style) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.SetContent(x, y, '─', nil, style)
		}
	}
}

func (v *View) drawScrollBar(s tcell.Screen) {
	area := v.listArea()
	count := v.Count()
	if count == 0 || len(v.rows) == 0 || area.H <= 0 {
		return
	}
	x := area.X + area.W
	thumb := min(max(1, area.H*len(v.rows)/count), area.H)
	top := min(area.H*v.topPosition()/count, area.H-thumb)
	for y := 0; y < area.H; y++ {
		ch := '│'
		if y >= top && y < top+thumb {
			ch = '┃'
		}
		s.SetContent(x, area.Y+y, ch, nil, v.Style)
	}
}

// HandleEvent handles mouse input: the touch listener first, then focusable
// rows, then clicks, long clicks, wheel and drag scrolling.
func (v *View) HandleEvent(ev tcell.Event) bool {
	me, ok := ev.(*tcell.EventMouse)
	if !ok || v.Visibility() != widget.Visible {
		return false
	}
	x, y := me.Position()
	if !v.Bounds().Contains(x, y) && !v.pressed && v.focusedRow == nil {
		return false
	}
	if v.DispatchTouch(v, me) {
		return true
	}
	if v.dispatchToRow(me, x, y) {
		return true
	}
	if v.IsClickable() {
		v.tap.OnTouchEvent(me)
	}
	if v.IsLongClickable() {
		v.longPress.OnTouchEvent(me)
	}

	buttons := me.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		v.stopScroll()
		v.ScrollListBy(-v.wheelStep)
	case buttons&tcell.WheelDown != 0:
		v.stopScroll()
		v.ScrollListBy(v.wheelStep)
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
				v.setScrollState(ScrollStateTouchScroll)
			}
			v.ScrollListBy(v.dragY - y)
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

// dispatchToRow offers the event to the row view under the pointer when
// items can take focus. A row that accepts a press gets the rest of the
// gesture.
func (v *View) dispatchToRow(me *tcell.EventMouse, x, y int) bool {
	if !v.itemsCanFocus {
		return false
	}
	released := me.Buttons()&tcell.Button1 == 0
	if v.focusedRow != nil {
		handler := v.focusedRow
		if released {
			v.focusedRow = nil
		}
		handler.HandleEvent(me)
		return true
	}
	r := v.rowAt(x, y)
	if r == nil {
		return false
	}
	handler, ok := r.view.(widget.EventHandler)
	if !ok || !handler.HandleEvent(me) {
		return false
	}
	if !released {
		v.focusedRow = handler
	}
	return true
}

func (v *View) onTap(x, y int) {
	r := v.rowAt(x, y)
	if r == nil || !v.isEnabled(r.position) {
		return
	}
	v.PerformItemClick(r.view, r.position, v.ItemIDAtPosition(r.position))
}

func (v *View) onLongPress(x, y int) {
	r := v.rowAt(x, y)
	if r == nil || !v.isEnabled(r.position) {
		return
	}
	v.performLongPress(r.view, r.position, v.ItemIDAtPosition(r.position))
}

type savedState struct {
	Selected  int   `toml:"selected"`
	Top       int   `toml:"top"`
	TopOffset int   `toml:"top_offset"`
	Checked   []int `toml:"checked"`
}

// SaveState encodes the scroll position, the selection and the checked
// rows.
func (v *View) SaveState() ([]byte, error) {
	state := savedState{
		Selected:  v.selected,
		Top:       v.top,
		TopOffset: v.topOffset,
		Checked:   v.CheckedItemPositions(),
	}
	data, err := toml.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode list state: %w", err)
	}
	return data, nil
}

// RestoreState applies a state produced by SaveState. Checked rows are
// only restored when a choice mode is set.
func (v *View) RestoreState(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	var state savedState
	if err := toml.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to decode list state: %w", err)
	}
	v.stopScroll()
	v.selected = state.Selected
	v.top, v.topOffset = state.Top, state.TopOffset
	clear(v.checked)
	if v.choiceMode != ChoiceModeNone {
		for _, p := range state.Checked {
			v.checked[p] = true
		}
	}
	v.needsLayout = true
	return nil
}
