package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads and parses the journal file at path. Observers are attached
// before the post-read notification fires.
func Load(path string, observers ...Observer) (*Journal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	j, err := Parse(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	j.path = path
	for _, o := range observers {
		j.AddObserver(o)
	}
	j.firePostRead()
	return j, nil
}

// Save serializes the journal back to the file it was loaded from. The
// previous content is copied to a "~"-suffixed sibling first, then the new
// text lands in a single whole-file write.
func (j *Journal) Save() error {
	return j.SaveTo(j.path)
}

// SaveTo writes the journal to an explicit path.
func (j *Journal) SaveTo(path string) error {
	if path == "" {
		return errors.New("journal: no file path to save to")
	}
	j.firePreWrite()
	text := j.Serialize()
	if prev, err := os.ReadFile(path); err == nil {
		if err := os.WriteFile(path+"~", prev, 0o644); err != nil {
			return fmt.Errorf("journal: write backup: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("journal: write %s: %w", path, err)
	}
	return nil
}

// Init creates a fresh journal file holding one empty section header. It
// refuses to clobber an existing file.
func Init(path, section string) error {
	if section == "" {
		section = "Currently"
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("journal: %s already exists", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("journal: create %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, []byte(capFirst(section)+":\n"), 0o644)
}
