package listview

import (
	"slices"
	"time"

	"github.com/pstuifzand/tui-listproxy/internal/widget"
)

// listArea is the part of the bounds rows are laid out in.
func (v *View) listArea() widget.Rect {
	area := v.ContentRect()
	if v.VerticalScrollBarEnabled() && area.W > 0 {
		area.W--
	}
	return area
}

// pass is one layout. Rows already on screen at the same position are
// reused as they are, unless the data changed, in which case every row
// view went to the scrap heap first.
type pass struct {
	v       *View
	area    widget.Rect
	count   int
	active  map[int]row
	got     map[int]row
	heights map[int]int
	placed  []row
}

func (v *View) newPass(area widget.Rect) *pass {
	p := &pass{
		v:       v,
		area:    area,
		count:   v.Count(),
		active:  make(map[int]row, len(v.rows)),
		got:     make(map[int]row),
		heights: make(map[int]int),
	}
	for _, r := range v.rows {
		if v.dataChanged {
			v.addScrap(r)
			continue
		}
		p.active[r.position] = r
	}
	return p
}

func (p *pass) obtain(position int) row {
	if r, ok := p.got[position]; ok {
		return r
	}
	r, ok := p.active[position]
	if ok {
		delete(p.active, position)
	} else {
		r = p.v.makeRow(position)
	}
	p.got[position] = r
	return r
}

// rowHeight is the height of the row view alone.
func (p *pass) rowHeight(position int) int {
	if h, ok := p.heights[position]; ok {
		return h
	}
	h := p.obtain(position).view.Measure(p.area.W)
	p.heights[position] = h
	return h
}

// height includes the divider below every row but the last.
func (p *pass) height(position int) int {
	h := p.rowHeight(position)
	if position < p.count-1 {
		h += p.v.dividerHeight
	}
	return h
}

func (p *pass) place(position, y int) {
	r := p.obtain(position)
	r.rect = widget.Rect{X: p.area.X, Y: p.area.Y + y, W: p.area.W, H: p.rowHeight(position)}
	p.placed = append(p.placed, r)
}

// finish sends the row views that fell out of the layout to the scrap
// heap, in position order.
func (p *pass) finish() {
	placed := make(map[int]bool, len(p.placed))
	for _, r := range p.placed {
		placed[r.position] = true
	}
	var dropped []row
	for position, r := range p.got {
		if !placed[position] {
			dropped = append(dropped, r)
		}
	}
	for _, r := range p.active {
		dropped = append(dropped, r)
	}
	slices.SortFunc(dropped, func(a, b row) int { return a.position - b.position })
	for _, r := range dropped {
		p.v.addScrap(r)
	}
	p.v.rows = p.placed
}

func (v *View) makeRow(position int) row {
	kind, index := v.resolve(position)
	if kind == slotHeader || kind == slotFooter {
		return row{position: position, view: v.fixed(kind, index).View, viewType: itemViewTypeFixed}
	}
	viewType := v.adapter.ItemViewType(index)
	var convert widget.View
	if viewType >= 0 {
		convert = v.popScrap(viewType)
	}
	return row{position: position, view: v.adapter.View(index, convert, v), viewType: viewType}
}

func (v *View) addScrap(r row) {
	if r.viewType < 0 {
		return
	}
	v.scrap[r.viewType] = append(v.scrap[r.viewType], r.view)
	if v.recyclerListener != nil {
		v.recyclerListener(r.view)
	}
}

func (v *View) popScrap(viewType int) widget.View {
	views := v.scrap[viewType]
	if len(views) == 0 {
		return nil
	}
	view := views[len(views)-1]
	v.scrap[viewType] = views[:len(views)-1]
	return view
}

func (v *View) layoutIfNeeded() {
	if !v.needsLayout && !v.dataChanged && v.listArea() == v.lastArea {
		return
	}
	v.layout(0)
}

// layout moves the top row by dy lines, clamps it to the ends of the list
// and lays the rows out. It returns the lines actually scrolled.
func (v *View) layout(dy int) int {
	area := v.listArea()
	p := v.newPass(area)
	consumed := 0
	if p.count == 0 {
		v.top, v.topOffset = 0, 0
	} else {
		consumed = v.fill(p, dy)
	}
	p.finish()
	v.needsLayout = false
	v.dataChanged = false
	v.lastArea = area
	v.reportScroll()
	return consumed
}

func (v *View) fill(p *pass, dy int) int {
	if v.top >= p.count {
		v.top, v.topOffset = p.count-1, 0
	}
	if v.top < 0 {
		v.top, v.topOffset = 0, 0
	}
	consumed := dy
	pos, off := v.top, v.topOffset+dy
	pos, off, consumed = pullUp(p, pos, off, consumed)
	for pos < p.count-1 && off > 0 && off >= p.height(pos) {
		off -= p.height(pos)
		pos++
	}
	if gap := p.area.H - extent(p, pos, off); gap > 0 && (pos > 0 || off > 0) {
		off -= gap
		consumed -= gap
		pos, off, consumed = pullUp(p, pos, off, consumed)
	}
	v.top, v.topOffset = pos, off
	y := -off
	for q := pos; q < p.count && y < p.area.H; q++ {
		p.place(q, y)
		y += p.height(q)
	}
	return consumed
}

func pullUp(p *pass, pos, off, consumed int) (int, int, int) {
	for off < 0 && pos > 0 {
		pos--
		off += p.height(pos)
	}
	if off < 0 {
		consumed -= off
		off = 0
	}
	return pos, off, consumed
}

func extent(p *pass, pos, off int) int {
	y := -off
	for q := pos; q < p.count && y < p.area.H; q++ {
		y += p.height(q)
	}
	return min(y, p.area.H)
}

func (v *View) reportScroll() {
	first, visible, total := v.topPosition(), len(v.rows), v.Count()
	if first == v.lastFirst && visible == v.lastVisible && total == v.lastTotal {
		return
	}
	v.lastFirst, v.lastVisible, v.lastTotal = first, visible, total
	if v.scrollListener != nil {
		v.scrollListener.OnScroll(v, first, visible, total)
	}
}

// ScrollListBy scrolls the rows by dy lines and returns the lines
// scrolled.
func (v *View) ScrollListBy(dy int) int {
	if dy == 0 {
		return 0
	}
	v.layoutIfNeeded()
	if v.listArea().Empty() {
		return 0
	}
	return v.layout(dy)
}

// ScrollTo translates the drawn content without moving the rows.
func (v *View) ScrollTo(x, y int) {
	v.SetScroll(x, y)
}

// SmoothScrollBy scrolls by distance lines in steps spread over duration.
func (v *View) SmoothScrollBy(distance int, duration time.Duration) {
	if distance == 0 {
		return
	}
	steps := (abs(distance) + v.smoothStep - 1) / v.smoothStep
	interval := duration / time.Duration(steps)
	remaining := distance
	v.animate(interval, func() bool {
		move := clamp(remaining, v.smoothStep)
		consumed := v.ScrollListBy(move)
		remaining -= move
		return remaining != 0 && consumed != 0
	})
}

// SmoothScrollToPosition scrolls in steps until position is completely on
// screen.
func (v *View) SmoothScrollToPosition(position int) {
	if position < 0 || position >= v.Count() {
		return
	}
	v.animate(0, func() bool {
		v.layoutIfNeeded()
		if v.completelyVisible(position) {
			return false
		}
		dy := v.smoothStep
		if position < v.topPosition() {
			dy = -dy
		}
		return v.ScrollListBy(dy) != 0
	})
}

// SmoothScrollToPositionFromTop scrolls in steps until the top of
// position is offset lines below the top edge.
func (v *View) SmoothScrollToPositionFromTop(position, offset int) {
	if position < 0 || position >= v.Count() {
		return
	}
	v.animate(0, func() bool {
		v.layoutIfNeeded()
		dy := v.smoothStep
		if position < v.topPosition() {
			dy = -dy
		}
		for _, r := range v.rows {
			if r.position == position {
				dist := r.rect.Y - v.listArea().Y - offset
				if dist == 0 {
					return false
				}
				dy = clamp(dist, v.smoothStep)
			}
		}
		return v.ScrollListBy(dy) != 0
	})
}

// animate runs step on the UI queue every interval until it returns false
// or another scroll takes over.
func (v *View) animate(interval time.Duration, step func() bool) {
	v.smoothGen++
	generation := v.smoothGen
	v.setScrollState(ScrollStateFling)
	var tick func()
	tick = func() {
		if generation != v.smoothGen {
			return
		}
		if !step() {
			v.setScrollState(ScrollStateIdle)
			return
		}
		v.schedule(interval, tick)
	}
	v.schedule(interval, tick)
}

func (v *View) schedule(d time.Duration, fn func()) {
	switch {
	case v.Looper() == nil:
		fn()
	case d <= 0:
		v.Post(fn)
	default:
		v.PostDelayed(d, fn)
	}
}

func (v *View) stopScroll() {
	v.smoothGen++
	if v.scrollState == ScrollStateFling {
		v.setScrollState(ScrollStateIdle)
	}
}

func (v *View) completelyVisible(position int) bool {
	area := v.listArea()
	for _, r := range v.rows {
		if r.position == position {
			return r.rect.Y >= area.Y && r.rect.Bottom() <= area.Bottom()
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, limit int) int {
	return max(-limit, min(v, limit))
}
