// Package pager pipes long listings through the user's pager when stdout
// is a terminal.
package pager

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
)

// Interactive reports whether stdout is a terminal worth paginating.
func Interactive() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Page writes text to stdout through the pager when interactive. Without a
// terminal or a usable pager it degrades to a plain write.
func Page(text string) error {
	app := find()
	if !Interactive() || app == "" {
		_, err := io.WriteString(os.Stdout, text)
		return err
	}

	parts := strings.Fields(app)
	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// Bare less needs quit-if-one-screen and color passthrough.
	if filepath.Base(parts[0]) == "less" && os.Getenv("LESS") == "" {
		cmd.Env = append(os.Environ(), "LESS=FRX")
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pager: %w", err)
	}
	return nil
}

func find() string {
	if app := os.Getenv("TRAIL_PAGER"); app != "" {
		return app
	}
	if app := os.Getenv("PAGER"); app != "" {
		return app
	}
	for _, app := range []string{"less", "more"} {
		if path, err := exec.LookPath(app); err == nil {
			return path
		}
	}
	return ""
}
