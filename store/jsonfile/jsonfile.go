/*
Package jsonfile provides the secondary, auto-backup persister: a single
backup document written to disk on every save.

PURPOSE:
  Acts as the fallback source when the primary store is missing or corrupt.
  Writes go through a temp file + rename so a crash mid-write never leaves a
  truncated document behind.

SEE ALSO:
  - store/sqlite: Primary persister
  - backup: Document format shared with manual backups
*/
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/realdriver/fleet-engine/backup"
	"github.com/realdriver/fleet-engine/fleet"
)

// Store persists snapshots as one backup document at a fixed path.
type Store struct {
	path string
	now  func() time.Time
}

func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// LoadAll reads the auto-backup document. Returns fleet.ErrNoPersistedState
// when the file does not exist and fleet.ErrCorruptState when it cannot be
// decoded.
func (s *Store) LoadAll(_ context.Context) (fleet.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fleet.State{}, fleet.ErrNoPersistedState
		}
		return fleet.State{}, fmt.Errorf("read auto-backup: %w", err)
	}

	doc, err := backup.Decode(data)
	if err != nil {
		return fleet.State{}, fmt.Errorf("%w: %v", fleet.ErrCorruptState, err)
	}
	return doc.Data.Clone(), nil
}

// SaveAll overwrites the auto-backup document with a fresh snapshot.
func (s *Store) SaveAll(_ context.Context, state fleet.State) error {
	doc := backup.New(state, s.now())
	doc.Auto = true

	data, err := backup.Encode(doc)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create auto-backup dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write auto-backup: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace auto-backup: %w", err)
	}
	return nil
}
