package backup

import (
	"errors"
	"testing"
)

func TestUndoRedo(t *testing.T) {
	s := New(t.TempDir(), 0)
	path := "/home/user/trail.md"

	if _, err := s.Undo(path, []byte("live")); !errors.Is(err, ErrNoHistory) {
		t.Fatalf("Undo on empty store = %v, want ErrNoHistory", err)
	}

	if err := s.Snapshot(path, []byte("v1")); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if err := s.Snapshot(path, []byte("v2")); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	got, err := s.Undo(path, []byte("v3"))
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if string(got) != "v2" {
		t.Errorf("Undo = %q, want %q", got, "v2")
	}

	got, err = s.Undo(path, got)
	if err != nil {
		t.Fatalf("second Undo failed: %v", err)
	}
	if string(got) != "v1" {
		t.Errorf("second Undo = %q, want %q", got, "v1")
	}

	got, err = s.Redo(path, got)
	if err != nil {
		t.Fatalf("Redo failed: %v", err)
	}
	if string(got) != "v2" {
		t.Errorf("Redo = %q, want %q", got, "v2")
	}

	got, err = s.Redo(path, got)
	if err != nil {
		t.Fatalf("second Redo failed: %v", err)
	}
	if string(got) != "v3" {
		t.Errorf("second Redo = %q, want %q", got, "v3")
	}

	if _, err := s.Redo(path, got); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Redo past the end = %v, want ErrNoHistory", err)
	}
}

func TestSnapshotClearsRedo(t *testing.T) {
	s := New(t.TempDir(), 0)
	path := "/tmp/trail.md"

	if err := s.Snapshot(path, []byte("v1")); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if _, err := s.Undo(path, []byte("v2")); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}

	// A new mutation forks the timeline.
	if err := s.Snapshot(path, []byte("v1b")); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if _, err := s.Redo(path, []byte("v1b")); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Redo after new snapshot = %v, want ErrNoHistory", err)
	}
}

func TestPrune(t *testing.T) {
	s := New(t.TempDir(), 3)
	path := "/tmp/trail.md"

	for _, v := range []string{"v1", "v2", "v3", "v4", "v5"} {
		if err := s.Snapshot(path, []byte(v)); err != nil {
			t.Fatalf("Snapshot failed: %v", err)
		}
	}

	if got := len(s.History(path)); got != 3 {
		t.Fatalf("History length = %d, want 3", got)
	}

	// The oldest two were dropped; the floor is now v3.
	want := []string{"v5", "v4", "v3"}
	cur := []byte("v6")
	for _, w := range want {
		got, err := s.Undo(path, cur)
		if err != nil {
			t.Fatalf("Undo failed: %v", err)
		}
		if string(got) != w {
			t.Errorf("Undo = %q, want %q", got, w)
		}
		cur = got
	}
	if _, err := s.Undo(path, cur); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Undo past the limit = %v, want ErrNoHistory", err)
	}
}

func TestJournalsAreIsolated(t *testing.T) {
	s := New(t.TempDir(), 0)

	if err := s.Snapshot("/tmp/work.md", []byte("work")); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if err := s.Snapshot("/tmp/home.md", []byte("home")); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	got, err := s.Undo("/tmp/work.md", []byte("live"))
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if string(got) != "work" {
		t.Errorf("Undo = %q, want %q", got, "work")
	}
	if _, err := s.Undo("/tmp/work.md", got); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Undo on drained journal = %v, want ErrNoHistory", err)
	}

	if got := len(s.History("/tmp/home.md")); got != 1 {
		t.Errorf("History(%q) length = %d, want 1", "/tmp/home.md", got)
	}
}
