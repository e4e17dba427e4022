package schema

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "settings.json"), nil)

	s := Default(nil)
	// Make the snapshot carry a non-default state.
	ed := NewEditor(s, store, nil)
	ed.Toggle("billingemail", true)
	ed.Move("billingemail", Up)
	ed.Toggle("baseamount", false)
	ed.Apply()

	if err := store.Save(s); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !schemasEqual(t, s, loaded) {
		t.Fatalf("snapshot did not round-trip losslessly")
	}
	// The validator association survives by name and still runs.
	if loaded.Validate("billingemail", "not-an-email") {
		t.Fatalf("validator was not re-attached on load")
	}
	if !loaded.Validate("billingemail", "a@b.c") {
		t.Fatalf("re-attached validator rejects a valid value")
	}
}

func TestLoadOrDefaultWithoutSnapshot(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "settings.json"), nil)
	if !schemasEqual(t, store.LoadOrDefault(), Default(nil)) {
		t.Fatalf("missing snapshot should yield the default schema")
	}
}

func TestLoadOrDefaultWithCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store := NewStore(path, nil)
	if !schemasEqual(t, store.LoadOrDefault(), Default(nil)) {
		t.Fatalf("corrupt snapshot should fall back to the default schema")
	}
}

func TestLoadRepairsForeignPositions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	// A hand-edited snapshot with gappy positions must come back contiguous.
	data := `{"fields":[
		{"name":"alpha","include":3,"require":2,"label":"Alpha","active":true,"position":7},
		{"name":"beta","include":3,"require":0,"label":"Beta","active":true,"position":2},
		{"name":"gamma","include":1,"require":0,"label":"Gamma","active":false,"position":9}
	]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	loaded, err := NewStore(path, nil).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertContiguousPositions(t, loaded)
	cols := loaded.ActiveColumns()
	if len(cols) != 2 || cols[0] != "beta" || cols[1] != "alpha" {
		t.Fatalf("relative order should survive repair, got %v", cols)
	}
}

func TestDeleteMissingSnapshotIsNotAnError(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "settings.json"), nil)
	if err := store.Delete(); err != nil {
		t.Fatalf("delete of a missing snapshot: %v", err)
	}
}
