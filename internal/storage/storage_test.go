package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestJSONStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "entries.json")
	store := NewJSONStore(path)
	if store.FileExists() {
		t.Fatal("Expected no file before Save")
	}

	list, err := store.Load()
	if err != nil {
		t.Fatalf("Load of a missing file failed: %v", err)
	}
	list.Title = "Shopping"
	list.Add("milk")
	list.Add("eggs")

	if err := store.Save(list); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !store.FileExists() {
		t.Fatal("Expected the file after Save")
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Title != "Shopping" || loaded.Len() != 2 {
		t.Fatalf("Unexpected list %q with %d entries", loaded.Title, loaded.Len())
	}
	if loaded.Entries[1].Text != "eggs" || loaded.Entries[1].ID != 2 {
		t.Errorf("Unexpected second entry %+v", loaded.Entries[1])
	}
	if e := loaded.Add("bread"); e.ID != 3 {
		t.Errorf("Expected the next ID to survive a round trip, got %d", e.ID)
	}
}

func TestJSONStore_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewJSONStore(path).Load(); err == nil {
		t.Error("Expected an error for invalid JSON")
	}
}

func TestStateStore(t *testing.T) {
	store := NewStateStore(filepath.Join(t.TempDir(), "state"))

	data, ok, err := store.Load("recycler")
	if err != nil || ok || data != nil {
		t.Fatalf("Expected a missing blob, got %v %v %v", data, ok, err)
	}

	blob := []byte("selected = 3\ntop = 2\n")
	if err := store.Save("recycler", blob); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, ok, err = store.Load("recycler")
	if err != nil || !ok {
		t.Fatalf("Load failed: %v %v", ok, err)
	}
	if !bytes.Equal(data, blob) {
		t.Errorf("Expected the blob unchanged, got %q", data)
	}

	if err := store.Delete("recycler"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := store.Load("recycler"); ok {
		t.Error("Expected the blob to be gone")
	}
	if err := store.Delete("recycler"); err != nil {
		t.Errorf("Deleting a missing blob should not fail: %v", err)
	}
}

func TestStateStore_RejectsPathKeys(t *testing.T) {
	store := NewStateStore(t.TempDir())
	for _, key := range []string{"", "..", "a/b", `a\b`} {
		if err := store.Save(key, []byte("x")); err == nil {
			t.Errorf("Expected key %q to be rejected", key)
		}
	}
}
