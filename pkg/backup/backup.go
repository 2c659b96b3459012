// Package backup keeps timestamped snapshots of journal files in a diskv
// bucket, giving undo and redo more depth than the single tilde backup
// written next to the journal.
package backup

import (
	"crypto/md5"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// ErrNoHistory reports an undo or redo with nothing left to restore.
var ErrNoHistory = errors.New("backup: no history")

const (
	defaultLimit = 25

	kindUndo = "undo"
	kindRedo = "redo"
)

// Store is a per-journal undo and redo stack backed by diskv.
type Store struct {
	d     *diskv.Diskv
	limit int
}

// New opens a snapshot store rooted at basePath. Limit bounds how many
// undo levels are kept per journal; zero means the default of 25.
func New(basePath string, limit int) *Store {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		limit: limit,
	}
}

// Snapshot pushes the journal content onto the undo stack and clears any
// redo history, since a fresh mutation forks the timeline.
func (s *Store) Snapshot(path string, content []byte) error {
	if err := s.d.Write(s.key(path, kindUndo, seq()), content); err != nil {
		return fmt.Errorf("backup: write snapshot: %w", err)
	}
	if err := s.clear(path, kindRedo); err != nil {
		return err
	}
	return s.prune(path)
}

// Undo pops the newest snapshot, pushing the current content onto the redo
// stack first. It returns the restored content.
func (s *Store) Undo(path string, current []byte) ([]byte, error) {
	return s.swap(path, kindUndo, kindRedo, current)
}

// Redo pops the newest redo snapshot, pushing the current content back
// onto the undo stack.
func (s *Store) Redo(path string, current []byte) ([]byte, error) {
	return s.swap(path, kindRedo, kindUndo, current)
}

// History returns the times of the available undo snapshots for a journal,
// oldest first.
func (s *Store) History(path string) []time.Time {
	var times []time.Time
	for _, key := range s.keys(path, kindUndo) {
		if t, ok := seqTime(key); ok {
			times = append(times, t)
		}
	}
	return times
}

func (s *Store) swap(path, from, to string, current []byte) ([]byte, error) {
	keys := s.keys(path, from)
	if len(keys) == 0 {
		return nil, ErrNoHistory
	}
	newest := keys[len(keys)-1]
	content, err := s.d.Read(newest)
	if err != nil {
		return nil, fmt.Errorf("backup: read snapshot: %w", err)
	}
	if err := s.d.Write(s.key(path, to, seq()), current); err != nil {
		return nil, fmt.Errorf("backup: write snapshot: %w", err)
	}
	if err := s.d.Erase(newest); err != nil {
		return nil, fmt.Errorf("backup: drop snapshot: %w", err)
	}
	return content, nil
}

func (s *Store) prune(path string) error {
	keys := s.keys(path, kindUndo)
	for len(keys) > s.limit {
		if err := s.d.Erase(keys[0]); err != nil {
			return fmt.Errorf("backup: prune snapshot: %w", err)
		}
		keys = keys[1:]
	}
	return nil
}

func (s *Store) clear(path, kind string) error {
	for _, key := range s.keys(path, kind) {
		if err := s.d.Erase(key); err != nil {
			return fmt.Errorf("backup: clear %s history: %w", kind, err)
		}
	}
	return nil
}

// keys lists the snapshot keys of one journal and kind, oldest first.
func (s *Store) keys(path, kind string) []string {
	prefix := encode(path) + "-" + kind + "-"
	var keys []string
	for key := range s.d.Keys(nil) {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) key(path, kind, seq string) string {
	return fmt.Sprintf("%s-%s-%s", encode(path), kind, seq)
}

// seq is a sortable, collision-resistant snapshot sequence number.
func seq() string {
	return fmt.Sprintf("%020d", time.Now().UnixNano())
}

func seqTime(key string) (time.Time, bool) {
	parts := strings.Split(key, "-")
	var nanos int64
	if _, err := fmt.Sscanf(parts[len(parts)-1], "%d", &nanos); err != nil {
		return time.Time{}, false
	}
	return time.Unix(0, nanos), true
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// encode hashes arbitrary journal paths into key-safe segments.
func encode(path string) string {
	sum := md5.Sum([]byte(path))
	return fmt.Sprintf("%x", sum[:8])
}
