package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileStore keeps the snapshot in a JSON file. Writes go to a temporary file
// that is renamed over the previous snapshot.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot file.
func (s *FileStore) Load(_ context.Context) (Snapshot, bool, error) {
	stat, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, errors.Wrap(err, "stat snapshot")
	}
	if stat.IsDir() {
		return Snapshot{}, false, errors.Errorf("snapshot path %s is a directory", s.path)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return Snapshot{}, false, errors.Wrap(err, "read snapshot")
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, errors.Wrap(err, "parse snapshot")
	}
	return snap, true, nil
}

// Save replaces the snapshot file.
func (s *FileStore) Save(_ context.Context, snap Snapshot) error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create snapshot dir")
		}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal snapshot")
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return errors.Wrap(err, "write snapshot tmp")
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return errors.Wrap(err, "rename snapshot")
	}
	return nil
}
