// Package editor shells out to the user's editor for composing and
// rewriting journal entries.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrEmptyInput reports an edit buffer with nothing left after comment
// stripping.
var ErrEmptyInput = errors.New("editor: empty input")

// ErrEditorAborted reports an editor that exited non-zero. The caller
// must drop the whole mutation.
var ErrEditorAborted = errors.New("editor: aborted")

// Editor runs an external editor over a temp file.
type Editor struct {
	// App overrides editor discovery, usually the editor_app config key.
	// It may carry arguments, like "code -w".
	App string
}

// Edit opens initial in the editor and returns the buffer as saved.
func (e Editor) Edit(initial string) (string, error) {
	f, err := os.CreateTemp("", "trail-*.md")
	if err != nil {
		return "", fmt.Errorf("editor: temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(initial); err != nil {
		f.Close()
		return "", fmt.Errorf("editor: temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("editor: temp file: %w", err)
	}

	cmd, err := e.command(path)
	if err != nil {
		return "", err
	}
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEditorAborted, err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("editor: read back: %w", err)
	}
	return string(out), nil
}

func (e Editor) command(path string) (*exec.Cmd, error) {
	app := e.find()
	if app == "" {
		return nil, errors.New("editor: none found, set $EDITOR")
	}
	parts := strings.Fields(app)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

func (e Editor) find() string {
	if app := os.Getenv("TRAIL_EDITOR"); app != "" {
		return app
	}
	if e.App != "" {
		return e.App
	}
	if app := os.Getenv("VISUAL"); app != "" {
		return app
	}
	if app := os.Getenv("EDITOR"); app != "" {
		return app
	}
	for _, app := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := exec.LookPath(app); err == nil {
			return path
		}
	}
	return ""
}

// StripComments drops #-prefixed lines and surrounding blank lines from an
// edit buffer. A buffer with nothing left is ErrEmptyInput.
func StripComments(text string) (string, error) {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	for len(kept) > 0 && strings.TrimSpace(kept[0]) == "" {
		kept = kept[1:]
	}
	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}
	if len(kept) == 0 {
		return "", ErrEmptyInput
	}
	return strings.Join(kept, "\n"), nil
}

// SplitEntry separates an edit buffer into the title line and note lines.
// Blank note lines are dropped, the rest are stored trimmed.
func SplitEntry(text string) (string, []string) {
	lines := strings.Split(text, "\n")
	title := strings.TrimSpace(lines[0])
	var note []string
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		note = append(note, strings.TrimSpace(line))
	}
	return title, note
}

// Banner renders instruction lines as comments for the edit buffer.
func Banner(lines ...string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString("# ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
