// Package widget holds the small slice of a UI toolkit that the list widgets
// are built on: views, containers, visibility, geometry and the UI task queue.
package widget

import "github.com/gdamore/tcell/v2"

// Visibility is the display state of a view.
type Visibility int

const (
	// Visible views are drawn and take up space.
	Visible Visibility = iota
	// Invisible views take up space but are not drawn.
	Invisible
	// Gone views are neither drawn nor measured.
	Gone
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "VISIBLE"
	case Invisible:
		return "INVISIBLE"
	case Gone:
		return "GONE"
	}
	return "UNKNOWN"
}

// View is anything that can be measured and drawn into a rectangle of cells.
type View interface {
	// Measure returns the number of rows the view needs at the given width.
	Measure(width int) int
	// Draw renders the view into r.
	Draw(s tcell.Screen, r Rect)
	Visibility() Visibility
	SetVisibility(v Visibility)
}

// Container is a view that lays out child views.
type Container interface {
	View
	ChildCount() int
	ChildAt(i int) View
}

// EventHandler is implemented by views that consume input.
type EventHandler interface {
	HandleEvent(ev tcell.Event) bool
}

// OnTouchListener sees mouse events before the view does. Returning true
// consumes the event.
type OnTouchListener func(v View, ev *tcell.EventMouse) bool

// Identifiable views can be looked up by id inside a container.
type Identifiable interface {
	ID() string
}

// Rect is a rectangle in screen cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Bottom returns the first row below r.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Inset shrinks r by the given insets.
func (r Rect) Inset(in Insets) Rect {
	out := Rect{X: r.X + in.Left, Y: r.Y + in.Top, W: r.W - in.Left - in.Right, H: r.H - in.Top - in.Bottom}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Insets are paddings in cells.
type Insets struct {
	Left, Top, Right, Bottom int
}
