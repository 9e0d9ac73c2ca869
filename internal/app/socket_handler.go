package app

import (
	"fmt"
	"log"

	"github.com/davecgh/go-spew/spew"
	"github.com/pstuifzand/tui-listproxy/internal/socket"
)

// handleSocketMessage processes messages received from the Unix socket
func (app *App) handleSocketMessage(msg socket.Message) {
	log.Printf("Received socket message: command=%s, text=%s, position=%d", msg.Command, msg.Text, msg.Position)

	var response *socket.Response
	switch msg.Command {
	case socket.CommandAddEntry:
		response = app.handleAddEntryCommand(msg)
	case socket.CommandRemoveEntry:
		response = app.handleRemoveEntryCommand(msg)
	case socket.CommandListEntries:
		response = &socket.Response{Success: true, Entries: app.entries.Texts()}
	default:
		log.Printf("Unknown socket command: %s", msg.Command)
		response = &socket.Response{Success: false, Message: "unknown command " + msg.Command}
	}

	if app.debugMode {
		log.Printf("Socket response:\n%s", spew.Sdump(response))
	}
	if msg.ResponseChan != nil {
		msg.ResponseChan <- response
	}
}

// handleAddEntryCommand processes an add_entry command
func (app *App) handleAddEntryCommand(msg socket.Message) *socket.Response {
	if !app.AddEntry(msg.Text) {
		log.Printf("Add entry command missing text")
		return &socket.Response{Success: false, Message: "entry text cannot be empty"}
	}
	log.Printf("Added entry from socket: %q, list now has %d entries", msg.Text, app.entries.Len())
	return &socket.Response{Success: true, Message: "Entry added"}
}

// handleRemoveEntryCommand processes a remove_entry command. The position
// counts entries from zero, ignoring any filter.
func (app *App) handleRemoveEntryCommand(msg socket.Message) *socket.Response {
	e, ok := app.entries.RemoveAt(msg.Position)
	if !ok {
		return &socket.Response{Success: false, Message: fmt.Sprintf("no entry at %d", msg.Position)}
	}
	app.adapter.Refresh()
	app.dirty = true
	app.SetStatus(fmt.Sprintf("Deleted %q", e.Text))
	log.Printf("Removed entry from socket: %q", e.Text)
	return &socket.Response{Success: true, Message: "Entry removed"}
}
