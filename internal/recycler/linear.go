package recycler

// LinearLayoutManager lays rows out in a single vertical column. Its
// scroll position is an anchor row plus the number of that row's lines
// scrolled above the top edge.
type LinearLayoutManager struct {
	view          *View
	anchor        int
	offset        int
	pending       int
	pendingOffset int
}

func NewLinearLayoutManager() *LinearLayoutManager {
	return &LinearLayoutManager{pending: NoPosition}
}

func (lm *LinearLayoutManager) OnAttached(v *View) { lm.view = v }

func (lm *LinearLayoutManager) LayoutChildren(r *Recycler) {
	lm.fill(0, r)
}

func (lm *LinearLayoutManager) ScrollVerticallyBy(dy int, r *Recycler) int {
	return lm.fill(dy, r)
}

// ScrollToPosition puts position at the top edge on the next layout.
func (lm *LinearLayoutManager) ScrollToPosition(position int) {
	lm.ScrollToPositionWithOffset(position, 0)
}

// ScrollToPositionWithOffset puts the top of position offset lines below
// the top edge on the next layout.
func (lm *LinearLayoutManager) ScrollToPositionWithOffset(position, offset int) {
	lm.pending = position
	lm.pendingOffset = offset
	if lm.view != nil {
		lm.view.RequestLayout()
	}
}

func (lm *LinearLayoutManager) State() LayoutState {
	if lm.pending != NoPosition {
		return LayoutState{Position: lm.pending, Offset: lm.pendingOffset}
	}
	return LayoutState{Position: lm.anchor, Offset: -lm.offset}
}

func (lm *LinearLayoutManager) RestoreState(s LayoutState) {
	lm.ScrollToPositionWithOffset(s.Position, s.Offset)
}

// FindFirstVisibleItemPosition returns the adapter position of the first
// row on screen, or NoPosition when there is none or the data changed
// since the last layout.
func (lm *LinearLayoutManager) FindFirstVisibleItemPosition() int {
	if lm.view == nil {
		return NoPosition
	}
	for _, h := range lm.view.children {
		if lm.visible(h) {
			return h.AdapterPosition()
		}
	}
	return NoPosition
}

// FindLastVisibleItemPosition is the counterpart of
// FindFirstVisibleItemPosition for the last row on screen.
func (lm *LinearLayoutManager) FindLastVisibleItemPosition() int {
	if lm.view == nil {
		return NoPosition
	}
	children := lm.view.children
	for i := len(children) - 1; i >= 0; i-- {
		if lm.visible(children[i]) {
			return children[i].AdapterPosition()
		}
	}
	return NoPosition
}

// FindFirstCompletelyVisibleItemPosition skips a first row that is cut off
// at the top.
func (lm *LinearLayoutManager) FindFirstCompletelyVisibleItemPosition() int {
	if lm.view == nil {
		return NoPosition
	}
	area := lm.view.layoutArea()
	for _, h := range lm.view.children {
		if h.rect.H > 0 && h.rect.Y >= area.Y && h.rect.Bottom() <= area.Bottom() {
			return h.AdapterPosition()
		}
	}
	return NoPosition
}

func (lm *LinearLayoutManager) visible(h *ViewHolder) bool {
	area := lm.view.layoutArea()
	return h.rect.Bottom() > area.Y && h.rect.Y < area.Bottom()
}

// fill normalizes the anchor after moving it by dy, clamps it to the ends
// of the list and places the rows that fit. It returns the lines scrolled.
func (lm *LinearLayoutManager) fill(dy int, r *Recycler) int {
	count := r.ItemCount()
	if lm.pending != NoPosition {
		lm.anchor, lm.offset = lm.pending, -lm.pendingOffset
		lm.pending = NoPosition
	}
	if count == 0 {
		lm.anchor, lm.offset = 0, 0
		return 0
	}
	if lm.anchor >= count {
		lm.anchor, lm.offset = count-1, 0
	}
	if lm.anchor < 0 {
		lm.anchor, lm.offset = 0, 0
	}

	consumed := dy
	pos, off := lm.anchor, lm.offset+dy
	pos, off, consumed = lm.pullUp(pos, off, consumed, r)
	for pos < count-1 && off > 0 && off >= r.RowHeight(pos) {
		off -= r.RowHeight(pos)
		pos++
	}

	if gap := r.Height() - lm.extent(pos, off, r); gap > 0 && (pos > 0 || off > 0) {
		off -= gap
		consumed -= gap
		pos, off, consumed = lm.pullUp(pos, off, consumed, r)
	}

	lm.anchor, lm.offset = pos, off
	y := -off
	for p := pos; p < count && y < r.Height(); p++ {
		r.AddView(p, y)
		y += r.RowHeight(p)
	}
	return consumed
}

// pullUp moves a negative offset into the rows above the anchor, stopping
// at the top of the list.
func (lm *LinearLayoutManager) pullUp(pos, off, consumed int, r *Recycler) (int, int, int) {
	for off < 0 && pos > 0 {
		pos--
		off += r.RowHeight(pos)
	}
	if off < 0 {
		consumed -= off
		off = 0
	}
	return pos, off, consumed
}

// extent returns how many lines of the layout area the rows from pos on
// fill, capped at the area height.
func (lm *LinearLayoutManager) extent(pos, off int, r *Recycler) int {
	y := -off
	for p := pos; p < r.ItemCount() && y < r.Height(); p++ {
		y += r.RowHeight(p)
	}
	return min(y, r.Height())
}
