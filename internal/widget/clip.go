package widget

import "github.com/gdamore/tcell/v2"

// clipScreen drops every cell written outside its rectangle.
type clipScreen struct {
	tcell.Screen
	clip Rect
}

// Clip returns a screen that only accepts writes inside r. Rows partially
// scrolled out of a list are drawn through it.
func Clip(s tcell.Screen, r Rect) tcell.Screen {
	if c, ok := s.(*clipScreen); ok {
		return &clipScreen{Screen: c.Screen, clip: c.clip.Intersect(r)}
	}
	return &clipScreen{Screen: s, clip: r}
}

func (c *clipScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	if c.clip.Contains(x, y) {
		c.Screen.SetContent(x, y, primary, combining, style)
	}
}

// Fill paints r with blanks in the given style.
func Fill(s tcell.Screen, r Rect, style tcell.Style) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
}
