package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"eventnite/internal/types"
)

// FileStore keeps the event snapshot in a single JSON file. Every Load
// reads the file fresh and every Save rewrites it wholesale, so edits made
// to the file out-of-band are picked up on the next operation.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore backed by the file at path. The file is
// not created until the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot. A missing file yields an empty event list.
func (s *FileStore) Load() ([]types.Event, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading event file %s: %w", s.path, err)
	}

	var records []types.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding event file %s: %w", s.path, err)
	}

	events := make([]types.Event, len(records))
	for i, r := range records {
		events[i] = types.FromRecord(r)
	}
	return events, nil
}

// Save replaces the snapshot with the given events. The payload is
// marshalled in full before the file is touched, and the write goes through
// a temp file + rename, so neither an encoding failure nor a crash mid-write
// can destroy the previous snapshot.
func (s *FileStore) Save(events []types.Event) error {
	records := make([]types.Record, len(events))
	for i, e := range events {
		records[i] = e.ToRecord()
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding events: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating event file directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing event file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing event file: %w", err)
	}
	return nil
}
