package editor

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestStripComments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{{
		name: "banner and blanks removed",
		in:   "fix the login bug\n\tretry on 503\n\n# Lines starting with # are ignored.\n# Save an empty file to abort.\n",
		want: "fix the login bug\n\tretry on 503",
	}, {
		name: "inner blank lines survive",
		in:   "title\n\nnote\n",
		want: "title\n\nnote",
	}, {
		name: "indented comment removed",
		in:   "title\n  # not a note\n",
		want: "title",
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StripComments(tt.in)
			if err != nil {
				t.Fatalf("StripComments failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("StripComments = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripCommentsEmpty(t *testing.T) {
	for _, in := range []string{"", "\n\n", "# just a banner\n# nothing else\n", "   \n# x\n  \n"} {
		if _, err := StripComments(in); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("StripComments(%q) = %v, want ErrEmptyInput", in, err)
		}
	}
}

func TestSplitEntry(t *testing.T) {
	title, note := SplitEntry("fix the login bug @urgent\n  retry on 503\n\n  check the proxy too")
	if title != "fix the login bug @urgent" {
		t.Errorf("title = %q", title)
	}
	want := []string{"retry on 503", "check the proxy too"}
	if !reflect.DeepEqual(note, want) {
		t.Errorf("note = %v, want %v", note, want)
	}

	title, note = SplitEntry("just a title")
	if title != "just a title" || note != nil {
		t.Errorf("SplitEntry(title only) = %q, %v", title, note)
	}
}

func TestBanner(t *testing.T) {
	got := Banner("first", "second")
	if got != "# first\n# second\n" {
		t.Errorf("Banner = %q", got)
	}
	if stripped, err := StripComments("keep\n" + got); err != nil || stripped != "keep" {
		t.Errorf("banner should strip away, got %q, %v", stripped, err)
	}
}

func TestEdit(t *testing.T) {
	t.Setenv("TRAIL_EDITOR", "")

	script := filepath.Join(t.TempDir(), "ed.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho edited > \"$1\"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	got, err := Editor{App: script}.Edit("initial\n")
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if strings.TrimSpace(got) != "edited" {
		t.Errorf("Edit = %q, want edited buffer", got)
	}
}

func TestEditAborted(t *testing.T) {
	t.Setenv("TRAIL_EDITOR", "")

	script := filepath.Join(t.TempDir(), "ed.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexit 1\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	if _, err := (Editor{App: script}).Edit("initial\n"); !errors.Is(err, ErrEditorAborted) {
		t.Fatalf("Edit with failing editor = %v, want ErrEditorAborted", err)
	}
}

func TestEditEnvOverride(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "env.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho from-env > \"$1\"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	t.Setenv("TRAIL_EDITOR", script)

	got, err := Editor{App: "/bin/false"}.Edit("x\n")
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if strings.TrimSpace(got) != "from-env" {
		t.Errorf("Edit = %q, TRAIL_EDITOR should outrank App", got)
	}
}
