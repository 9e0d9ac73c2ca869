package ui

import (
	"github.com/pstuifzand/tui-listproxy/internal/history"
)

// History keeps previous prompt inputs and lets the user step through them
type History struct {
	entries        []string
	currentIndex   int // -1 while not navigating
	maxEntries     int
	temporaryInput string
	manager        *history.Manager
	filename       string
}

// NewHistory creates a new History with a maximum number of entries
func NewHistory(maxEntries int) *History {
	return &History{
		entries:      []string{},
		currentIndex: -1,
		maxEntries:   maxEntries,
	}
}

// NewHistoryWithManager creates a History persisted in filename
func NewHistoryWithManager(maxEntries int, manager *history.Manager, filename string) (*History, error) {
	h := NewHistory(maxEntries)
	h.manager = manager
	h.filename = filename

	entries, err := manager.Load(filename)
	if err != nil {
		return h, err
	}
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	h.entries = entries
	return h, nil
}

// Add records an entry, skipping empty input and repeats of the newest
// entry, and saves the history when it is persisted
func (h *History) Add(entry string) {
	h.Reset()
	if entry == "" {
		return
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return
	}

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
	}
	h.Save()
}

// Save persists the entries. It is a no-op without a manager.
func (h *History) Save() error {
	if h.manager == nil || h.filename == "" {
		return nil
	}
	return h.manager.Save(h.filename, h.entries)
}

// Entries returns a copy of the entries, oldest first
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Previous steps back. The first step remembers current so that Next can
// return to it.
func (h *History) Previous(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.currentIndex < 0:
		h.temporaryInput = current
		h.currentIndex = len(h.entries) - 1
	case h.currentIndex > 0:
		h.currentIndex--
	}
	return h.entries[h.currentIndex], true
}

// Next steps forward, ending at the input remembered by Previous
func (h *History) Next() (string, bool) {
	if h.currentIndex < 0 {
		return "", false
	}
	h.currentIndex++
	if h.currentIndex >= len(h.entries) {
		temp := h.temporaryInput
		h.Reset()
		return temp, true
	}
	return h.entries[h.currentIndex], true
}

// Reset ends navigation
func (h *History) Reset() {
	h.currentIndex = -1
	h.temporaryInput = ""
}
