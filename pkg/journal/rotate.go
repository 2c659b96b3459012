package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tableflip.dev/trail/pkg/item"
)

// Rotate removes matching items from the live journal and appends them to
// a dated sibling file next to it, merging with and deduplicating against
// any content already rotated there. It returns the sibling path. The
// caller still saves the live journal.
func (j *Journal) Rotate(source string, opts ArchiveOptions) (Result, string, error) {
	var res Result
	if j.path == "" {
		return res, "", errors.New("journal: rotate needs a file-backed journal")
	}
	if !isAll(source) && !j.HasSection(source) {
		return res, "", fmt.Errorf("%w: %q", ErrInvalidSection, source)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	selected, err := j.selectForArchive(source, "", opts)
	if err != nil {
		return res, "", err
	}
	target := RotatedPath(j.path, now)
	if len(selected) == 0 {
		return res, target, nil
	}

	sibling, err := loadOrEmpty(target)
	if err != nil {
		return res, "", err
	}
	for _, it := range selected {
		if sibling.contains(it) {
			continue
		}
		if sec, ok := j.Section(it.Section); ok {
			sibling.register(&Section{Name: sec.Name, Original: sec.Original})
		} else {
			sibling.register(&Section{Name: it.Section})
		}
		moved := item.New(it.Section, it.Title, it.Date)
		moved.Note = append(moved.Note, it.Note...)
		sibling.attach(moved)
	}
	for _, it := range selected {
		if _, err := j.Delete(it.ID); err != nil {
			return res, "", fmt.Errorf("%w: rotated item vanished: %v", ErrInternal, err)
		}
	}
	if err := os.WriteFile(target, []byte(sibling.Serialize()), 0o644); err != nil {
		return res, "", fmt.Errorf("journal: write %s: %w", target, err)
	}
	res.ItemsAffected = len(selected)
	return res, target, nil
}

// RotatedPath names the dated sibling for a journal path by inserting the
// date before the file suffix. Dotfiles without a real suffix get the date
// appended instead.
func RotatedPath(path string, t time.Time) string {
	date := t.Format("2006-01-02")
	ext := filepath.Ext(path)
	if ext == "" || ext == filepath.Base(path) {
		return path + "_" + date
	}
	return strings.TrimSuffix(path, ext) + "_" + date + ext
}

func loadOrEmpty(path string) (*Journal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			j := New()
			j.path = path
			return j, nil
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	j, err := Parse(data)
	if err != nil {
		return nil, err
	}
	j.path = path
	return j, nil
}

// contains reports whether any stored item would serialize to the same
// entry line as it.
func (j *Journal) contains(it *item.Item) bool {
	for _, existing := range j.items {
		if existing.SameAs(it) {
			return true
		}
	}
	return false
}
