package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-listproxy/internal/config"
	"github.com/pstuifzand/tui-listproxy/internal/theme"
	"github.com/pstuifzand/tui-listproxy/internal/widget"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates a new Screen instance with the configured theme
func NewScreen() (*Screen, error) {
	cfg, err := config.Load()
	if err != nil {
		return NewScreenWithTheme(theme.Default())
	}
	return NewScreenWithTheme(theme.LoadThemeOrDefault(cfg.Theme))
}

// NewScreenWithTheme creates a new Screen instance with a specific theme
func NewScreenWithTheme(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFrom(tcellScreen, t)
}

// NewScreenFrom initializes an existing tcell screen, such as a simulation
// screen in tests.
func NewScreenFrom(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Tcell returns the underlying tcell screen
func (s *Screen) Tcell() tcell.Screen {
	return s.tcellScreen
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws a string at the given position and returns the number
// of columns used. Wide characters take two columns.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	col := x
	for _, r := range text {
		s.SetCell(col, y, r, style)
		col += widget.RuneWidth(r)
	}
	return col - x
}

// DrawStringLimited draws a string, truncating it with an ellipsis if it
// exceeds maxWidth
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return 0
	}
	return s.DrawString(x, y, widget.TruncateToWidthWithEllipsis(text, maxWidth), style)
}

// FillRow paints a whole row with the style
func (s *Screen) FillRow(y int, style tcell.Style) {
	for x := 0; x < s.width; x++ {
		s.SetCell(x, y, ' ', style)
	}
}

// PollEvent polls for the next event (key press, mouse, interrupt)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// PostEvent queues an event behind the pending ones
func (s *Screen) PostEvent(ev tcell.Event) error {
	return s.tcellScreen.PostEvent(ev)
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync redraws the whole terminal, used after a resize
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// HasMouse returns true if mouse is supported
func (s *Screen) HasMouse() bool {
	return s.tcellScreen.HasMouse()
}

// EnableMouse enables mouse support on the screen
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse()
}

// Beep rings the terminal bell
func (s *Screen) Beep() error {
	return s.tcellScreen.Beep()
}

// Theme-aware style methods

// ListStyle returns the style for list rows
func (s *Screen) ListStyle() tcell.Style {
	return s.Theme.ListStyle()
}

// SelectorStyle returns the style drawn over the selected row
func (s *Screen) SelectorStyle() tcell.Style {
	return s.Theme.SelectorStyle()
}

// DividerStyle returns the style for dividers and the scroll bar
func (s *Screen) DividerStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListDivider, s.Theme.Colors.ListBackground)
}

// ScrollBarStyle returns the style for the vertical scroll bar
func (s *Screen) ScrollBarStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListScrollBar, s.Theme.Colors.ListBackground)
}

// HeaderStyle returns the style for header rows
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HeaderTitle, s.Theme.Colors.ListBackground).Bold(true)
}

// FooterStyle returns the style for footer rows
func (s *Screen) FooterStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.FooterText, s.Theme.Colors.ListBackground)
}

// EmptyStyle returns the style for the empty view
func (s *Screen) EmptyStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.EmptyText, s.Theme.Colors.ListBackground).Italic(true)
}

// FilterLabelStyle returns the style for the filter prompt label
func (s *Screen) FilterLabelStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.FilterLabel, s.Theme.Colors.ListBackground).Bold(true)
}

// FilterTextStyle returns the style for the filter text
func (s *Screen) FilterTextStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.FilterText, s.Theme.Colors.ListBackground)
}

// StatusModeStyle returns the style for the mode indicator in the status line
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusMode, s.Theme.Colors.ListBackground).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusMessage, s.Theme.Colors.ListBackground)
}

// StatusErrorStyle returns the style for error messages
func (s *Screen) StatusErrorStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusError, s.Theme.Colors.ListBackground)
}

// StatusTimeStyle returns the style for the clock in the status line
func (s *Screen) StatusTimeStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusTime, s.Theme.Colors.ListBackground)
}

// BackgroundStyle returns the style for the background
func (s *Screen) BackgroundStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListText, s.Theme.Colors.ListBackground)
}
