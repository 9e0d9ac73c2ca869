package widget

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Text width helpers work in display columns, not bytes, so wide runes
// (emoji, CJK) and combining marks land on the right cells.

// RuneWidth returns the display width of a single rune
// - ASCII and most Unicode: 1 column
// - Wide characters (emoji, CJK): 2 columns
// - Combining marks, control characters: 0 columns
func RuneWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	return w
}

// StringWidth returns the display width of a string
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth safely truncates a string to fit within maxWidth columns
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	runes := []rune(s)
	width := 0

	for i, r := range runes {
		rw := RuneWidth(r)
		if width+rw > maxWidth {
			return string(runes[:i])
		}
		width += rw
	}

	return s
}

// TruncateToWidthWithEllipsis truncates a string with "..." if it exceeds maxWidth
func TruncateToWidthWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return TruncateToWidth(s, maxWidth)
	}

	if StringWidth(s) <= maxWidth {
		return s
	}

	// Reserve 3 columns for "..."
	return TruncateToWidth(s, maxWidth-3) + "..."
}

// PadStringToWidth pads a string to a specific display width with spaces
// If string is already wider, returns unchanged
func PadStringToWidth(s string, width int) string {
	current := StringWidth(s)
	if current >= width {
		return s
	}
	return s + strings.Repeat(" ", width-current)
}

// CalculateBreakPoint finds where to break text for wrapping at maxWidth
// Returns (byteIndex, width) where to break and the actual width used
// Prefers breaking at word boundaries (spaces), falls back to character boundary
func CalculateBreakPoint(s string, maxWidth int) (byteIndex int, actualWidth int) {
	if maxWidth <= 0 {
		return 0, 0
	}

	runes := []rune(s)
	width := 0
	lastSpaceIdx := -1
	lastSpaceWidth := 0

	for i, r := range runes {
		rw := RuneWidth(r)

		if width+rw > maxWidth {
			if lastSpaceIdx >= 0 {
				return len(string(runes[:lastSpaceIdx+1])), lastSpaceWidth + RuneWidth(runes[lastSpaceIdx])
			}
			return len(string(runes[:i])), width
		}

		width += rw

		if r == ' ' || r == '\t' {
			lastSpaceIdx = i
			lastSpaceWidth = width - rw
		}
	}

	return len(s), width
}

// WrapToWidth splits s into lines no wider than maxWidth, honouring
// explicit newlines.
func WrapToWidth(s string, maxWidth int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		if maxWidth <= 0 || StringWidth(para) <= maxWidth {
			lines = append(lines, para)
			continue
		}
		for para != "" {
			idx, _ := CalculateBreakPoint(para, maxWidth)
			if idx == 0 {
				// A single rune wider than the line; emit it alone.
				_, idx = utf8.DecodeRuneInString(para)
			}
			lines = append(lines, strings.TrimRight(para[:idx], " "))
			para = para[idx:]
		}
	}
	return lines
}
