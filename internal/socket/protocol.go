package socket

// Message represents a command sent to the running tui-listproxy instance
type Message struct {
	Command  string `json:"command"`
	Text     string `json:"text,omitempty"`
	Position int    `json:"position,omitempty"`

	// Set by the server for commands that wait for an answer
	ResponseChan chan *Response `json:"-"`
}

// Response represents the response from the server
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Entries []string `json:"entries,omitempty"`
}

// Command types
const (
	CommandAddEntry    = "add_entry"
	CommandRemoveEntry = "remove_entry"
	CommandListEntries = "list_entries"
)

// synchronous reports whether the client waits for the app's answer.
func synchronous(command string) bool {
	return command == CommandListEntries || command == CommandRemoveEntry
}
