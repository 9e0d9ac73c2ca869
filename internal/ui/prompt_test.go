package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func typeText(p *Prompt, text string) {
	for _, r := range text {
		p.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestPrompt_Editing(t *testing.T) {
	p := NewPrompt()
	p.Start("/", "", nil)
	typeText(p, "hello wörld")

	if p.Input() != "hello wörld" {
		t.Fatalf("Expected typed input, got %q", p.Input())
	}

	p.HandleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	if p.Input() != "hello wörl" {
		t.Errorf("Expected one rune removed, got %q", p.Input())
	}

	p.HandleKey(tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl))
	if p.Input() != "hello " {
		t.Errorf("Expected the last word removed, got %q", p.Input())
	}

	if res := p.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)); res != PromptAccepted {
		t.Errorf("Expected PromptAccepted, got %v", res)
	}
	if p.IsActive() {
		t.Error("Expected the prompt to close on Enter")
	}
}

func TestPrompt_Cancel(t *testing.T) {
	p := NewPrompt()
	p.Start("add: ", "x", nil)

	if res := p.HandleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone)); res != PromptEditing {
		t.Fatalf("Expected editing after the first backspace, got %v", res)
	}
	if res := p.HandleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone)); res != PromptCanceled {
		t.Errorf("Expected backspace on empty input to cancel, got %v", res)
	}

	p.Start("/", "abc", nil)
	if res := p.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)); res != PromptCanceled {
		t.Errorf("Expected Escape to cancel, got %v", res)
	}
}

func TestPrompt_Render(t *testing.T) {
	s, sim := newSimScreen(t, 20, 1)
	p := NewPrompt()
	p.Start("/", "milk", nil)
	p.Render(s, 0)

	if got := strings.TrimRight(rowText(sim, 0), " "); got != "/milk" {
		t.Errorf("Expected %q, got %q", "/milk", got)
	}
}

func TestPrompt_History(t *testing.T) {
	h := NewHistory(10)
	p := NewPrompt()

	p.Start("/", "", h)
	typeText(p, "milk ")
	p.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	p.Start("/", "", h)
	typeText(p, "eg")
	p.HandleKey(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	if p.Input() != "milk" {
		t.Errorf("Expected Up to recall %q, got %q", "milk", p.Input())
	}
	p.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if p.Input() != "eg" {
		t.Errorf("Expected Down to restore %q, got %q", "eg", p.Input())
	}
}
