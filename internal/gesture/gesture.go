// Package gesture turns the raw tcell mouse stream into taps and long
// presses. Each recognizer keeps its own pointer state so several of them
// can watch the same stream independently.
package gesture

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-listproxy/internal/widget"
)

const (
	// DefaultLongPressTimeout is how long the primary button has to stay
	// down before a press becomes a long press.
	DefaultLongPressTimeout = 500 * time.Millisecond
	// DefaultTouchSlop is how far, in cells, the pointer may wander before
	// a press turns into a drag.
	DefaultTouchSlop = 1
)

type phase int

const (
	phaseNone phase = iota
	phaseDown
	phaseMove
	phaseUp
)

// pointer follows the primary button through press, drag and release.
type pointer struct {
	down   bool
	moved  bool
	downX  int
	downY  int
	x      int
	y      int
	downAt time.Time
}

func (p *pointer) track(ev *tcell.EventMouse, slop int, now time.Time) phase {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0
	switch {
	case pressed && !p.down:
		*p = pointer{down: true, downX: x, downY: y, x: x, y: y, downAt: now}
		return phaseDown
	case pressed && p.down:
		p.x, p.y = x, y
		if abs(x-p.downX) > slop || abs(y-p.downY) > slop {
			p.moved = true
		}
		return phaseMove
	case !pressed && p.down:
		p.down = false
		p.x, p.y = x, y
		if abs(x-p.downX) > slop || abs(y-p.downY) > slop {
			p.moved = true
		}
		return phaseUp
	}
	return phaseNone
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// TapDetector reports a press and release of the primary button that
// stayed in place and was shorter than the long-press timeout.
type TapDetector struct {
	OnTap   func(x, y int)
	Timeout time.Duration
	Slop    int
	Now     func() time.Time

	p pointer
}

// NewTapDetector returns a detector with platform defaults.
func NewTapDetector(onTap func(x, y int)) *TapDetector {
	return &TapDetector{
		OnTap:   onTap,
		Timeout: DefaultLongPressTimeout,
		Slop:    DefaultTouchSlop,
		Now:     time.Now,
	}
}

// OnTouchEvent feeds one mouse event to the detector.
func (d *TapDetector) OnTouchEvent(ev *tcell.EventMouse) {
	now := d.Now()
	if d.p.track(ev, d.Slop, now) != phaseUp {
		return
	}
	if d.p.moved || now.Sub(d.p.downAt) >= d.Timeout {
		return
	}
	if d.OnTap != nil {
		d.OnTap(d.p.x, d.p.y)
	}
}

// LongPressDetector reports the primary button held in place for Timeout.
// The timeout runs as a delayed task on the UI looper.
type LongPressDetector struct {
	OnLongPress func(x, y int)
	Timeout     time.Duration
	Slop        int
	Now         func() time.Time

	looper     widget.Looper
	p          pointer
	generation int
}

// NewLongPressDetector returns a detector that schedules its timeout on
// looper.
func NewLongPressDetector(looper widget.Looper, onLongPress func(x, y int)) *LongPressDetector {
	return &LongPressDetector{
		OnLongPress: onLongPress,
		Timeout:     DefaultLongPressTimeout,
		Slop:        DefaultTouchSlop,
		Now:         time.Now,
		looper:      looper,
	}
}

// OnTouchEvent feeds one mouse event to the detector.
func (d *LongPressDetector) OnTouchEvent(ev *tcell.EventMouse) {
	switch d.p.track(ev, d.Slop, d.Now()) {
	case phaseDown:
		d.generation++
		if d.looper == nil {
			return
		}
		generation := d.generation
		d.looper.PostDelayed(d.Timeout, func() {
			if generation != d.generation || !d.p.down || d.p.moved {
				return
			}
			if d.OnLongPress != nil {
				d.OnLongPress(d.p.downX, d.p.downY)
			}
		})
	case phaseMove:
		if d.p.moved {
			d.generation++
		}
	case phaseUp:
		d.generation++
	}
}
