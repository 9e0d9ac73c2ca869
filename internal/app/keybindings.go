package app

import (
	"fmt"
	"sort"
	"strings"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Key         rune
	Description string
	Handler     func(*App)
}

// GetKey returns the key of this keybinding
func (kb *KeyBinding) GetKey() rune {
	return kb.Key
}

// GetDescription returns the description of this keybinding
func (kb *KeyBinding) GetDescription() string {
	return kb.Description
}

// InitializeKeybindings sets up all the key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Key:         'j',
			Description: "Scroll down",
			Handler: func(app *App) {
				app.scrollLines(1)
			},
		},
		{
			Key:         'k',
			Description: "Scroll up",
			Handler: func(app *App) {
				app.scrollLines(-1)
			},
		},
		{
			Key:         'g',
			Description: "Go to first entry",
			Handler: func(app *App) {
				app.list.SetSelectionAfterHeaderView()
			},
		},
		{
			Key:         'G',
			Description: "Go to last row",
			Handler: func(app *App) {
				app.list.SetSelection(app.list.Count() - 1)
			},
		},
		{
			Key:         '/',
			Description: "Filter entries",
			Handler: func(app *App) {
				app.promptKind = promptFilter
				app.prompt.Start("/", app.adapter.Filter(), app.filterHistory)
			},
		},
		{
			Key:         'a',
			Description: "Add entry",
			Handler: func(app *App) {
				app.promptKind = promptAdd
				app.prompt.Start("add: ", "", app.addHistory)
			},
		},
		{
			Key:         'd',
			Description: "Delete first visible entry",
			Handler: func(app *App) {
				app.DeleteFirstVisible()
			},
		},
		{
			Key:         'H',
			Description: "Toggle extra header",
			Handler: func(app *App) {
				app.ToggleExtraHeader()
			},
		},
		{
			Key:         'F',
			Description: "Toggle extra footer",
			Handler: func(app *App) {
				app.ToggleExtraFooter()
			},
		},
		{
			Key:         'm',
			Description: "Cycle choice mode",
			Handler: func(app *App) {
				app.CycleChoiceMode()
			},
		},
		{
			Key:         'v',
			Description: "Toggle list visibility",
			Handler: func(app *App) {
				app.ToggleVisibility()
			},
		},
		{
			Key:         'e',
			Description: "Export markdown",
			Handler: func(app *App) {
				app.ExportMarkdown()
			},
		},
		{
			Key:         's',
			Description: "Save entries",
			Handler: func(app *App) {
				if err := app.Save(); err != nil {
					app.SetError("Failed to save: " + err.Error())
					return
				}
				app.SetStatus("Saved")
			},
		},
		{
			Key:         '?',
			Description: "Show keys",
			Handler: func(app *App) {
				app.SetStatus(app.HelpText())
			},
		},
		{
			Key:         'q',
			Description: "Quit",
			Handler: func(app *App) {
				app.Quit()
			},
		},
	}
}

// HelpText lists the key bindings on one line
func (a *App) HelpText() string {
	keys := make([]rune, 0, len(a.keys))
	for k := range a.keys {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	parts := make([]string, len(keys))
	for i, k := range keys {
		kb := a.keys[k]
		parts[i] = fmt.Sprintf("%c %s", kb.GetKey(), strings.ToLower(kb.GetDescription()))
	}
	return strings.Join(parts, ", ")
}
