package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StateStore keeps the opaque saved-state blobs of list widgets, one file
// per key. The blobs are written as produced and never inspected.
type StateStore struct {
	dir string
}

// NewStateStore creates a store under dir. An empty dir selects
// ~/.local/share/tui-listproxy/state.
func NewStateStore(dir string) *StateStore {
	if dir == "" {
		dir = getStateDir()
	}
	return &StateStore{dir: dir}
}

func getStateDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
	}
	return filepath.Join(homeDir, ".local", "share", "tui-listproxy", "state")
}

// Dir returns the directory holding the state files
func (s *StateStore) Dir() string {
	return s.dir
}

func (s *StateStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid state key %q", key)
	}
	return filepath.Join(s.dir, key+".state"), nil
}

// Save stores the blob under key
func (s *StateStore) Save(key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := ensureDir(s.dir); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

// Load returns the blob stored under key. A missing blob is not an error:
// ok is false and data is nil.
func (s *StateStore) Load(key string) (data []byte, ok bool, err error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read state: %w", err)
	}
	return data, true, nil
}

// Delete removes the blob stored under key
func (s *StateStore) Delete(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state: %w", err)
	}
	return nil
}
