package listview

import (
	"slices"

	"github.com/pstuifzand/tui-listproxy/internal/widget"
)

type slotKind int

const (
	slotNone slotKind = iota
	slotHeader
	slotContent
	slotFooter
)

func (v *View) contentCount() int {
	if v.adapter == nil {
		return 0
	}
	return v.adapter.Count()
}

// resolve maps a flat position to a header, content or footer index.
func (v *View) resolve(position int) (slotKind, int) {
	if position < 0 || v.adapter == nil {
		return slotNone, 0
	}
	if position < len(v.headers) {
		return slotHeader, position
	}
	position -= len(v.headers)
	n := v.contentCount()
	if position < n {
		return slotContent, position
	}
	position -= n
	if position < len(v.footers) {
		return slotFooter, position
	}
	return slotNone, 0
}

func (v *View) fixed(kind slotKind, index int) FixedView {
	if kind == slotHeader {
		return v.headers[index]
	}
	return v.footers[index]
}

// Count returns headers, rows and footers together. Without an adapter
// nothing is shown, fixed views included.
func (v *View) Count() int {
	if v.adapter == nil {
		return 0
	}
	return len(v.headers) + v.contentCount() + len(v.footers)
}

// IsEmpty ignores headers and footers.
func (v *View) IsEmpty() bool {
	return v.adapter == nil || v.adapter.IsEmpty()
}

func (v *View) AddHeaderView(view widget.View) {
	v.AddHeaderViewWithData(view, nil, true)
}

func (v *View) AddHeaderViewWithData(view widget.View, data any, selectable bool) {
	v.headers = append(v.headers, FixedView{View: view, Data: data, Selectable: selectable})
	v.fixedViewsChanged()
}

func (v *View) AddFooterView(view widget.View) {
	v.AddFooterViewWithData(view, nil, true)
}

func (v *View) AddFooterViewWithData(view widget.View, data any, selectable bool) {
	v.footers = append(v.footers, FixedView{View: view, Data: data, Selectable: selectable})
	v.fixedViewsChanged()
}

// RemoveHeaderView reports whether view was a header.
func (v *View) RemoveHeaderView(view widget.View) bool {
	var ok bool
	v.headers, ok = removeFixed(v.headers, view)
	if ok {
		v.fixedViewsChanged()
	}
	return ok
}

// RemoveFooterView reports whether view was a footer.
func (v *View) RemoveFooterView(view widget.View) bool {
	var ok bool
	v.footers, ok = removeFixed(v.footers, view)
	if ok {
		v.fixedViewsChanged()
	}
	return ok
}

func removeFixed(list []FixedView, view widget.View) ([]FixedView, bool) {
	for i, f := range list {
		if f.View == view {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

func (v *View) fixedViewsChanged() {
	v.dataChanged = true
}

func (v *View) HeaderViewsCount() int { return len(v.headers) }
func (v *View) FooterViewsCount() int { return len(v.footers) }

// ItemAtPosition returns the adapter item for rows and the data given to
// AddHeaderViewWithData or AddFooterViewWithData for fixed views.
func (v *View) ItemAtPosition(position int) (any, bool) {
	switch kind, index := v.resolve(position); kind {
	case slotHeader, slotFooter:
		data := v.fixed(kind, index).Data
		return data, data != nil
	case slotContent:
		return v.adapter.Item(index), true
	}
	return nil, false
}

// ItemIDAtPosition returns InvalidRowID for headers, footers and positions
// outside the list.
func (v *View) ItemIDAtPosition(position int) int64 {
	if kind, index := v.resolve(position); kind == slotContent {
		return v.adapter.ItemID(index)
	}
	return InvalidRowID
}

func (v *View) isEnabled(position int) bool {
	switch kind, index := v.resolve(position); kind {
	case slotHeader, slotFooter:
		return v.fixed(kind, index).Selectable
	case slotContent:
		return v.adapter.IsEnabled(index)
	}
	return false
}

// FirstVisiblePosition is the flat position of the top row, or
// InvalidPosition when no row is laid out.
func (v *View) FirstVisiblePosition() int {
	if len(v.rows) == 0 {
		return InvalidPosition
	}
	return v.rows[0].position
}

func (v *View) LastVisiblePosition() int {
	if len(v.rows) == 0 {
		return InvalidPosition
	}
	return v.rows[len(v.rows)-1].position
}

// topPosition is the first visible position, falling back to the scroll
// target while nothing is laid out.
func (v *View) topPosition() int {
	if len(v.rows) > 0 {
		return v.rows[0].position
	}
	return v.top
}

func (v *View) ChildCount() int { return len(v.rows) }

func (v *View) ChildAt(i int) widget.View {
	if i < 0 || i >= len(v.rows) {
		return nil
	}
	return v.rows[i].view
}

// PositionForView returns the flat position of a row view on screen.
func (v *View) PositionForView(view widget.View) int {
	for _, r := range v.rows {
		if r.view == view {
			return r.position
		}
	}
	return InvalidPosition
}

// PointToPosition returns the flat position of the row at screen cell
// (x, y). Dividers belong to no row.
func (v *View) PointToPosition(x, y int) int {
	if r := v.rowAt(x, y); r != nil {
		return r.position
	}
	return InvalidPosition
}

func (v *View) rowAt(x, y int) *row {
	if !v.listArea().Contains(x, y) {
		return nil
	}
	for i := range v.rows {
		if v.rows[i].rect.Contains(x+v.ScrollX(), y+v.ScrollY()) {
			return &v.rows[i]
		}
	}
	return nil
}

// SetSelection puts position at the top and selects it.
func (v *View) SetSelection(position int) {
	v.SetSelectionFromTop(position, 0)
}

// SetSelectionFromTop selects position and puts its top y lines below the
// top edge.
func (v *View) SetSelectionFromTop(position, y int) {
	if v.adapter == nil {
		return
	}
	count := v.Count()
	if count == 0 {
		return
	}
	position = max(0, min(position, count-1))
	v.stopScroll()
	v.selected = position
	v.top, v.topOffset = position, -y
	v.needsLayout = true
}

// SetSelectionAfterHeaderView selects the first row after the headers.
func (v *View) SetSelectionAfterHeaderView() {
	v.SetSelection(len(v.headers))
}

func (v *View) SelectedItemPosition() int { return v.selected }

func (v *View) ChoiceMode() ChoiceMode { return v.choiceMode }

// SetChoiceMode changes the mode and clears every checked row.
func (v *View) SetChoiceMode(mode ChoiceMode) {
	v.choiceMode = mode
	clear(v.checked)
}

// SetItemChecked checks or unchecks position. It does nothing in
// ChoiceModeNone; in ChoiceModeSingle checking a row unchecks the others.
func (v *View) SetItemChecked(position int, checked bool) {
	if v.choiceMode == ChoiceModeNone {
		return
	}
	if v.choiceMode == ChoiceModeSingle && checked {
		clear(v.checked)
	}
	if checked {
		v.checked[position] = true
	} else {
		delete(v.checked, position)
	}
}

func (v *View) IsItemChecked(position int) bool { return v.checked[position] }
func (v *View) CheckedItemCount() int           { return len(v.checked) }

// CheckedItemPositions returns the checked positions in ascending order.
func (v *View) CheckedItemPositions() []int {
	positions := make([]int, 0, len(v.checked))
	for p := range v.checked {
		positions = append(positions, p)
	}
	slices.Sort(positions)
	return positions
}

func (v *View) ClearChoices() { clear(v.checked) }

// PerformItemClick updates the checked rows and calls the click listener.
// It reports whether the click did anything.
func (v *View) PerformItemClick(view widget.View, position int, id int64) bool {
	handled := false
	switch v.choiceMode {
	case ChoiceModeSingle:
		v.SetItemChecked(position, true)
		handled = true
	case ChoiceModeMultiple, ChoiceModeMultipleModal:
		v.SetItemChecked(position, !v.checked[position])
		handled = true
	}
	if v.onItemClick != nil {
		v.onItemClick(v, view, position, id)
		handled = true
	}
	return handled
}

// performLongPress starts a modal selection in ChoiceModeMultipleModal and
// asks the long click listener otherwise.
func (v *View) performLongPress(view widget.View, position int, id int64) bool {
	if v.choiceMode == ChoiceModeMultipleModal {
		v.SetItemChecked(position, true)
		v.PerformHapticFeedback()
		return true
	}
	if v.onItemLongClick == nil {
		return false
	}
	handled := v.onItemLongClick(v, view, position, id)
	if handled {
		v.PerformHapticFeedback()
	}
	return handled
}
