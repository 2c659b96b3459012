// Package store owns journal persistence for the CLI: it resolves file
// locations from configuration, loads and saves the journal, snapshots
// every save into the backup history, and watches the file for writes
// made by other processes.
package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"tableflip.dev/trail/pkg/backup"
	"tableflip.dev/trail/pkg/config"
	"tableflip.dev/trail/pkg/journal"
)

// ErrNoBackups reports an undo or redo request with history disabled.
var ErrNoBackups = errors.New("store: backup history disabled")

// Store binds one journal file to its backup history.
type Store struct {
	path      string
	backups   *backup.Store
	observers []journal.Observer
}

// Open resolves the journal and backup locations from configuration. A
// non-empty file overrides the configured journal path.
func Open(cfg *config.Config, file string) (*Store, error) {
	path := file
	if path == "" {
		var err error
		path, err = cfg.JournalPath()
		if err != nil {
			return nil, err
		}
	}
	s := &Store{path: path}
	if cfg.Backup.History > 0 {
		dir, err := cfg.BackupDir()
		if err != nil {
			return nil, err
		}
		s.backups = backup.New(dir, cfg.Backup.History)
	}
	return s, nil
}

// Path returns the journal file location.
func (s *Store) Path() string {
	return s.path
}

// AddObserver attaches o to every journal this store loads.
func (s *Store) AddObserver(o journal.Observer) {
	s.observers = append(s.observers, o)
}

// Load parses the journal file. A missing file yields an empty journal so
// first use needs no init ritual; every other failure surfaces.
func (s *Store) Load() (*journal.Journal, error) {
	j, err := journal.Load(s.path, s.observers...)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			empty := journal.New()
			for _, o := range s.observers {
				empty.AddObserver(o)
			}
			return empty, nil
		}
		return nil, err
	}
	return j, nil
}

// Save snapshots the current file content into the backup history, then
// writes the journal in one whole-file write.
func (s *Store) Save(j *journal.Journal) error {
	if s.backups != nil {
		if prev, err := os.ReadFile(s.path); err == nil {
			if err := s.backups.Snapshot(s.path, prev); err != nil {
				return fmt.Errorf("store: snapshot: %w", err)
			}
		}
	}
	return j.SaveTo(s.path)
}

// Undo restores the most recent snapshot and parks the current content on
// the redo side.
func (s *Store) Undo() error {
	return s.restore((*backup.Store).Undo)
}

// Redo reverses the most recent undo.
func (s *Store) Redo() error {
	return s.restore((*backup.Store).Redo)
}

// History lists the undo snapshot times, oldest first.
func (s *Store) History() []time.Time {
	if s.backups == nil {
		return nil
	}
	return s.backups.History(s.path)
}

func (s *Store) restore(step func(*backup.Store, string, []byte) ([]byte, error)) error {
	if s.backups == nil {
		return ErrNoBackups
	}
	current, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			current = nil
		} else {
			return fmt.Errorf("store: read %s: %w", s.path, err)
		}
	}
	restored, err := step(s.backups, s.path, current)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, restored, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", s.path, err)
	}
	return nil
}
