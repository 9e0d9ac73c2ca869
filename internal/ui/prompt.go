package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// PromptResult tells the caller what a key did to the prompt
type PromptResult int

const (
	// PromptEditing means the prompt is still open
	PromptEditing PromptResult = iota
	// PromptAccepted means Enter was pressed
	PromptAccepted
	// PromptCanceled means Escape was pressed, or Backspace on empty input
	PromptCanceled
)

// Prompt is a one-line input at the bottom of the screen, used for the
// filter (`/`) and for adding entries (`a`)
type Prompt struct {
	active  bool
	label   string
	input   string
	history *History
}

// NewPrompt creates an inactive prompt
func NewPrompt() *Prompt {
	return &Prompt{}
}

// Start opens the prompt with a label and initial text. Up and Down step
// through hist, which records accepted input; hist may be nil.
func (p *Prompt) Start(label, initial string, hist *History) {
	p.active = true
	p.label = label
	p.input = initial
	p.history = hist
	if hist != nil {
		hist.Reset()
	}
}

// Stop closes the prompt
func (p *Prompt) Stop() {
	p.active = false
}

// IsActive returns whether the prompt is open
func (p *Prompt) IsActive() bool {
	return p.active
}

// Label returns the label shown before the input
func (p *Prompt) Label() string {
	return p.label
}

// Input returns the current input
func (p *Prompt) Input() string {
	return p.input
}

// deleteWordBackwards deletes the word before the end of the input
func (p *Prompt) deleteWordBackwards() {
	trimmed := strings.TrimRight(p.input, " \t")
	idx := strings.LastIndexAny(trimmed, " \t")
	p.input = trimmed[:idx+1]
}

// HandleKey processes a key press while the prompt is open
func (p *Prompt) HandleKey(ev *tcell.EventKey) PromptResult {
	switch ev.Key() {
	case tcell.KeyEscape:
		p.Stop()
		return PromptCanceled
	case tcell.KeyEnter:
		p.Stop()
		if p.history != nil {
			p.history.Add(strings.TrimSpace(p.input))
		}
		return PromptAccepted
	case tcell.KeyUp:
		if p.history != nil {
			if prev, ok := p.history.Previous(p.input); ok {
				p.input = prev
			}
		}
	case tcell.KeyDown:
		if p.history != nil {
			if next, ok := p.history.Next(); ok {
				p.input = next
			}
		}
	case tcell.KeyCtrlW:
		p.deleteWordBackwards()
	case tcell.KeyCtrlU:
		p.input = ""
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if p.input == "" {
			p.Stop()
			return PromptCanceled
		}
		runes := []rune(p.input)
		p.input = string(runes[:len(runes)-1])
	case tcell.KeyRune:
		p.input += string(ev.Rune())
	}
	return PromptEditing
}

// Render draws the prompt into row y
func (p *Prompt) Render(screen *Screen, y int) {
	if !p.active {
		return
	}
	width, _ := screen.Size()
	screen.FillRow(y, screen.BackgroundStyle())
	x := screen.DrawString(0, y, p.label, screen.FilterLabelStyle())
	x += screen.DrawStringLimited(x, y, p.input, width-x-1, screen.FilterTextStyle())
	screen.SetCell(x, y, ' ', screen.FilterTextStyle().Reverse(true))
}
