package widget

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Base carries the state every toolkit view shares. Widgets embed it.
type Base struct {
	id            string
	bounds        Rect
	visibility    Visibility
	padding       Insets
	clipToPadding bool
	scrollX       int
	scrollY       int
	clickable     bool
	longClickable bool
	scrollBar     bool
	touch         OnTouchListener
	looper        Looper
	feedback      Feedback
}

// NewBase returns a visible base that clips to its padding, like the
// platform default.
func NewBase(looper Looper) Base {
	return Base{
		visibility:    Visible,
		clipToPadding: true,
		looper:        looper,
	}
}

func (b *Base) ID() string        { return b.id }
func (b *Base) SetID(id string)   { b.id = id }
func (b *Base) Bounds() Rect      { return b.bounds }
func (b *Base) SetBounds(r Rect)  { b.bounds = r }
func (b *Base) Padding() Insets   { return b.padding }
func (b *Base) ScrollX() int      { return b.scrollX }
func (b *Base) ScrollY() int      { return b.scrollY }
func (b *Base) IsClickable() bool { return b.clickable }

func (b *Base) Visibility() Visibility     { return b.visibility }
func (b *Base) SetVisibility(v Visibility) { b.visibility = v }

func (b *Base) SetPadding(p Insets)                  { b.padding = p }
func (b *Base) ClipToPadding() bool                  { return b.clipToPadding }
func (b *Base) SetClipToPadding(clip bool)           { b.clipToPadding = clip }
func (b *Base) SetClickable(c bool)                  { b.clickable = c }
func (b *Base) IsLongClickable() bool                { return b.longClickable }
func (b *Base) SetLongClickable(c bool)              { b.longClickable = c }
func (b *Base) SetOnTouchListener(l OnTouchListener) { b.touch = l }
func (b *Base) TouchListener() OnTouchListener       { return b.touch }

// SetVerticalScrollBarEnabled toggles the one-column scroll indicator.
func (b *Base) SetVerticalScrollBarEnabled(enabled bool) { b.scrollBar = enabled }

// VerticalScrollBarEnabled reports whether the scroll indicator is drawn.
func (b *Base) VerticalScrollBarEnabled() bool { return b.scrollBar }

// SetScroll moves the view content by the given offsets.
func (b *Base) SetScroll(x, y int) {
	b.scrollX = x
	b.scrollY = y
}

// Looper returns the UI queue the view posts work to.
func (b *Base) Looper() Looper { return b.looper }

// SetLooper replaces the UI queue.
func (b *Base) SetLooper(l Looper) { b.looper = l }

// Post schedules fn on the UI queue. Without a queue fn runs immediately.
func (b *Base) Post(fn func()) {
	if b.looper == nil {
		fn()
		return
	}
	b.looper.Post(fn)
}

// PostDelayed schedules fn on the UI queue after d.
func (b *Base) PostDelayed(d time.Duration, fn func()) {
	if b.looper == nil {
		return
	}
	b.looper.PostDelayed(d, fn)
}

// SetFeedback sets the sink for haptic feedback.
func (b *Base) SetFeedback(f Feedback) { b.feedback = f }

// PerformHapticFeedback reports whether feedback was delivered.
func (b *Base) PerformHapticFeedback() bool {
	if b.feedback == nil {
		return false
	}
	b.feedback.PerformHapticFeedback()
	return true
}

// DispatchTouch hands ev to the touch listener first.
func (b *Base) DispatchTouch(self View, ev *tcell.EventMouse) bool {
	if b.touch == nil {
		return false
	}
	return b.touch(self, ev)
}

// ContentRect is the part of the bounds inside the padding.
func (b *Base) ContentRect() Rect {
	return b.bounds.Inset(b.padding)
}
