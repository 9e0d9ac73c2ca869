package gesture

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-listproxy/internal/widget"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func press(x, y int) *tcell.EventMouse   { return tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone) }
func release(x, y int) *tcell.EventMouse { return tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone) }

func TestTapDetector(t *testing.T) {
	tests := []struct {
		name    string
		hold    time.Duration
		upX     int
		upY     int
		wantTap bool
	}{
		{name: "quick tap", hold: 100 * time.Millisecond, upX: 3, upY: 4, wantTap: true},
		{name: "within slop", hold: 10 * time.Millisecond, upX: 4, upY: 4, wantTap: true},
		{name: "held too long", hold: DefaultLongPressTimeout, upX: 3, upY: 4},
		{name: "dragged away", hold: 10 * time.Millisecond, upX: 3, upY: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{now: time.Unix(0, 0)}
			tapped := false
			d := NewTapDetector(func(x, y int) { tapped = true })
			d.Now = clock.Now

			d.OnTouchEvent(press(3, 4))
			clock.Advance(tt.hold)
			d.OnTouchEvent(release(tt.upX, tt.upY))

			assert.Equal(t, tt.wantTap, tapped)
		})
	}
}

func TestTapDetector_IgnoresWheel(t *testing.T) {
	tapped := false
	d := NewTapDetector(func(x, y int) { tapped = true })
	d.OnTouchEvent(tcell.NewEventMouse(1, 1, tcell.WheelDown, tcell.ModNone))
	d.OnTouchEvent(release(1, 1))
	assert.False(t, tapped)
}

func TestLongPressDetector(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	q := widget.NewQueue()
	q.SetClock(clock.Now)

	var gotX, gotY, calls int
	d := NewLongPressDetector(q, func(x, y int) {
		gotX, gotY = x, y
		calls++
	})
	d.Now = clock.Now

	d.OnTouchEvent(press(2, 5))
	clock.Advance(DefaultLongPressTimeout / 2)
	q.RunPending()
	assert.Equal(t, 0, calls, "fired before the timeout")

	clock.Advance(DefaultLongPressTimeout / 2)
	q.RunPending()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, gotX)
	assert.Equal(t, 5, gotY)
}

func TestLongPressDetector_CancelledByReleaseOrDrag(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	q := widget.NewQueue()
	q.SetClock(clock.Now)

	calls := 0
	d := NewLongPressDetector(q, func(x, y int) { calls++ })
	d.Now = clock.Now

	d.OnTouchEvent(press(2, 5))
	d.OnTouchEvent(release(2, 5))
	clock.Advance(DefaultLongPressTimeout)
	q.RunPending()
	assert.Equal(t, 0, calls, "release cancels")

	d.OnTouchEvent(press(2, 5))
	d.OnTouchEvent(press(2, 9))
	clock.Advance(DefaultLongPressTimeout)
	q.RunPending()
	assert.Equal(t, 0, calls, "drag cancels")
}
