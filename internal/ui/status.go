package ui

import (
	"time"

	"github.com/ncruces/go-strftime"
)

// DefaultTimeFormat is the strftime layout of the status line clock.
const DefaultTimeFormat = "%H:%M:%S"

// MessageTimeout is how long a status message stays visible.
const MessageTimeout = 5 * time.Second

// StatusLine is the bottom row of the demo: the mode on the left, the
// newest message while it is fresh, and a clock on the right.
type StatusLine struct {
	Messages   *MessageLogger
	TimeFormat string
	Mode       string
}

// NewStatusLine creates a status line keeping the last 50 messages.
func NewStatusLine(timeFormat string) *StatusLine {
	if timeFormat == "" {
		timeFormat = DefaultTimeFormat
	}
	return &StatusLine{
		Messages:   NewMessageLogger(50),
		TimeFormat: timeFormat,
	}
}

// Clock formats t with the configured strftime layout.
func (sl *StatusLine) Clock(t time.Time) string {
	return strftime.Format(sl.TimeFormat, t)
}

// Current returns the message to show at now, or nil once it has expired.
func (sl *StatusLine) Current(now time.Time) *Message {
	msg := sl.Messages.Last()
	if msg == nil || now.Sub(msg.Timestamp) > MessageTimeout {
		return nil
	}
	return msg
}

// Draw renders the status line into row y.
func (sl *StatusLine) Draw(s *Screen, y int, now time.Time) {
	width, _ := s.Size()
	s.FillRow(y, s.BackgroundStyle())

	clock := sl.Clock(now)
	clockX := width - len([]rune(clock)) - 1
	s.DrawString(clockX, y, clock, s.StatusTimeStyle())

	x := 0
	if sl.Mode != "" {
		x += s.DrawString(x, y, " "+sl.Mode+" ", s.StatusModeStyle())
	}
	if msg := sl.Current(now); msg != nil {
		style := s.StatusMessageStyle()
		if msg.Error {
			style = s.StatusErrorStyle()
		}
		s.DrawStringLimited(x+1, y, msg.Text, clockX-x-2, style)
	}
}
