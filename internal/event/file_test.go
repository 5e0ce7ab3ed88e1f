package event

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"eventnite/internal/types"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "events.json"))
}

func TestLoadMissingFile(t *testing.T) {
	store := tempStore(t)

	events, err := store.Load()
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Load on missing file returned %d events, want 0", len(events))
	}
}

func TestSaveThenLoad(t *testing.T) {
	store := tempStore(t)

	zone := time.FixedZone("PST", -8*3600)
	events := []types.Event{
		{Name: "Game Night", Date: time.Date(2026, 9, 1, 19, 0, 0, 0, zone), Hours: 2, Location: 111},
		{Name: "Raid", Date: time.Date(2026, 9, 2, 21, 0, 0, 0, zone), Hours: 1, Location: 111, RemoteID: 5},
	}

	if err := store.Save(events); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Load returned %d events, want 2", len(got))
	}
	for i := range events {
		if got[i].Name != events[i].Name {
			t.Errorf("event[%d].Name = %q, want %q", i, got[i].Name, events[i].Name)
		}
		if got[i].Date.Unix() != events[i].Date.Unix() {
			t.Errorf("event[%d].Date = %v, want %v", i, got[i].Date, events[i].Date)
		}
		zone, offset := got[i].Date.Zone()
		if zone != "PST" || offset != -8*3600 {
			t.Errorf("event[%d] zone = %s/%d, want PST/-28800", i, zone, offset)
		}
	}
}

func TestSaveReplacesWholeSnapshot(t *testing.T) {
	store := tempStore(t)

	first := []types.Event{{Name: "A", Date: time.Now(), Hours: 1}}
	second := []types.Event{{Name: "B", Date: time.Now(), Hours: 2}}

	if err := store.Save(first); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(second); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "B" {
		t.Errorf("Load after replace = %+v, want single event B", got)
	}
}

func TestSaveEmptySnapshot(t *testing.T) {
	store := tempStore(t)

	if err := store.Save([]types.Event{{Name: "A", Date: time.Now(), Hours: 1}}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(nil); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Load after empty Save returned %d events, want 0", len(got))
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path)
	if _, err := store.Load(); err == nil {
		t.Error("Load on corrupt file returned nil error")
	}
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "events.json")
	store := NewFileStore(path)

	if err := store.Save(nil); err != nil {
		t.Fatalf("Save into missing directory: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("event file not created: %v", err)
	}
}
