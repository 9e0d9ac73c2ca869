package widget

import "github.com/gdamore/tcell/v2"

// Label is a text view. Without Wrap it occupies one row per line of Text
// and truncates with an ellipsis; with Wrap it breaks lines at word
// boundaries.
type Label struct {
	Base
	Text  string
	Style tcell.Style
	Wrap  bool
}

// NewLabel returns a visible label.
func NewLabel(text string, style tcell.Style) *Label {
	return &Label{Base: NewBase(nil), Text: text, Style: style}
}

// SetText replaces the label text.
func (l *Label) SetText(text string) {
	l.Text = text
}

func (l *Label) lines(width int) []string {
	if l.Wrap {
		return WrapToWidth(l.Text, width)
	}
	return WrapToWidth(l.Text, 0)
}

func (l *Label) Measure(width int) int {
	if l.Visibility() == Gone {
		return 0
	}
	return len(l.lines(width)) + l.padding.Top + l.padding.Bottom
}

func (l *Label) Draw(s tcell.Screen, r Rect) {
	l.SetBounds(r)
	if l.Visibility() != Visible {
		return
	}
	Fill(s, r, l.Style)
	inner := r.Inset(l.padding)
	for i, line := range l.lines(inner.W) {
		if i >= inner.H {
			break
		}
		text := line
		if !l.Wrap {
			text = TruncateToWidthWithEllipsis(line, inner.W)
		}
		x := inner.X
		for _, ch := range text {
			s.SetContent(x, inner.Y+i, ch, nil, l.Style)
			x += RuneWidth(ch)
		}
	}
}
