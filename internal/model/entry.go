// Package model contains the entries shown by the list demo
package model

import (
	"slices"
	"time"
)

// Entry is a single row of content
type Entry struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

func (e *Entry) String() string {
	return e.Text
}

// EntryList is the document persisted by the JSON store
type EntryList struct {
	Title   string   `json:"title"`
	Entries []*Entry `json:"entries"`
	NextID  int64    `json:"next_id"`
}

// NewEntryList creates an empty list with the given title
func NewEntryList(title string) *EntryList {
	return &EntryList{
		Title:   title,
		Entries: make([]*Entry, 0),
		NextID:  1,
	}
}

// Add appends a new entry and returns it. IDs are never reused.
func (l *EntryList) Add(text string) *Entry {
	l.fixNextID()
	e := &Entry{
		ID:      l.NextID,
		Text:    text,
		Created: time.Now(),
	}
	l.NextID++
	l.Entries = append(l.Entries, e)
	return e
}

// RemoveAt removes the entry at index i
func (l *EntryList) RemoveAt(i int) (*Entry, bool) {
	if i < 0 || i >= len(l.Entries) {
		return nil, false
	}
	e := l.Entries[i]
	l.Entries = slices.Delete(l.Entries, i, i+1)
	return e, true
}

// Remove removes the entry with the given ID
func (l *EntryList) Remove(id int64) bool {
	i := l.IndexOf(id)
	if i < 0 {
		return false
	}
	_, ok := l.RemoveAt(i)
	return ok
}

// IndexOf returns the index of the entry with the given ID, or -1
func (l *EntryList) IndexOf(id int64) int {
	return slices.IndexFunc(l.Entries, func(e *Entry) bool { return e.ID == id })
}

// Len returns the number of entries
func (l *EntryList) Len() int {
	return len(l.Entries)
}

// Texts returns the entry texts in order
func (l *EntryList) Texts() []string {
	texts := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		texts[i] = e.Text
	}
	return texts
}

// fixNextID keeps NextID above every stored ID, for files written by hand
func (l *EntryList) fixNextID() {
	for _, e := range l.Entries {
		if e.ID >= l.NextID {
			l.NextID = e.ID + 1
		}
	}
	if l.NextID < 1 {
		l.NextID = 1
	}
}
