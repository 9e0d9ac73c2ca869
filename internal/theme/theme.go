package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// List colors
	ListText       tcell.Color
	ListBackground tcell.Color
	ListSelected   tcell.Color
	ListDivider    tcell.Color
	ListScrollBar  tcell.Color

	// Fixed rows
	HeaderTitle tcell.Color
	FooterText  tcell.Color
	EmptyText   tcell.Color

	// Filter prompt colors
	FilterLabel tcell.Color
	FilterText  tcell.Color

	// Status line colors
	StatusMode    tcell.Color
	StatusMessage tcell.Color
	StatusError   tcell.Color
	StatusTime    tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			ListText:       tcell.ColorDefault,
			ListBackground: tcell.ColorDefault,
			ListSelected:   tcell.ColorDefault,
			ListDivider:    tcell.ColorDefault,
			ListScrollBar:  tcell.ColorDefault,
			HeaderTitle:    tcell.ColorDefault,
			FooterText:     tcell.ColorDefault,
			EmptyText:      tcell.ColorDefault,
			FilterLabel:    tcell.ColorDefault,
			FilterText:     tcell.ColorDefault,
			StatusMode:     tcell.ColorDefault,
			StatusMessage:  tcell.ColorDefault,
			StatusError:    tcell.ColorDefault,
			StatusTime:     tcell.ColorDefault,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			ListText:       HexToColor("#c0caf5"), // Light gray-blue
			ListBackground: HexToColor("#1a1b26"), // Dark background
			ListSelected:   HexToColor("#7aa2f7"), // Blue
			ListDivider:    HexToColor("#3b4261"),
			ListScrollBar:  HexToColor("#565f89"), // Comment gray
			HeaderTitle:    HexToColor("#bb9af7"), // Magenta
			FooterText:     HexToColor("#565f89"), // Comment gray
			EmptyText:      HexToColor("#565f89"), // Comment gray
			FilterLabel:    HexToColor("#bb9af7"), // Magenta
			FilterText:     HexToColor("#c0caf5"), // Light gray-blue
			StatusMode:     HexToColor("#bb9af7"), // Magenta
			StatusMessage:  HexToColor("#9ece6a"), // Green
			StatusError:    HexToColor("#f7768e"), // Red
			StatusTime:     HexToColor("#7dcfff"), // Cyan
		},
	}
}

// ListStyle is the style of content rows.
func (t *Theme) ListStyle() tcell.Style {
	return ColorPairToStyle(t.Colors.ListText, t.Colors.ListBackground)
}

// SelectorStyle highlights the selected row. The background is the
// selection color mixed into the list background so text stays readable.
func (t *Theme) SelectorStyle() tcell.Style {
	return ColorPairToStyle(t.Colors.ListText, Blend(t.Colors.ListBackground, t.Colors.ListSelected, 0.4))
}
