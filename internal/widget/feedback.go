package widget

import "github.com/gdamore/tcell/v2"

// Feedback receives haptic feedback requests.
type Feedback interface {
	PerformHapticFeedback()
}

// BellFeedback rings the terminal bell, the closest a terminal gets to a
// vibration.
type BellFeedback struct {
	Screen tcell.Screen
}

func (b BellFeedback) PerformHapticFeedback() {
	if b.Screen != nil {
		_ = b.Screen.Beep()
	}
}
