package mcp

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"tableflip.dev/trail/pkg/config"
	"tableflip.dev/trail/pkg/journal"
	"tableflip.dev/trail/pkg/store"
)

func testService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.JournalFile = filepath.Join(dir, "journal.txt")
	cfg.Backup.History = 0
	st, err := store.Open(cfg, "")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return NewService(st, cfg)
}

func TestServiceAddEntryDefaults(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)

	dto, err := svc.AddEntry(ctx, AddEntryOptions{Title: "Test item"})
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if dto.Section != config.DefaultSection {
		t.Fatalf("expected section %s, got %s", config.DefaultSection, dto.Section)
	}
	if dto.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if dto.Done {
		t.Fatalf("new entry should not be done")
	}
}

func TestServiceAddEntryPersists(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)

	dto, err := svc.AddEntry(ctx, AddEntryOptions{
		Title:   "Write minutes",
		Section: "Work",
		Note:    []string{"attendees tbd"},
	})
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	// A second call reloads from disk.
	got, err := svc.EntryByID(ctx, dto.ID)
	if err != nil {
		t.Fatalf("EntryByID failed: %v", err)
	}
	if got.Title != "Write minutes" {
		t.Fatalf("expected title to persist, got %q", got.Title)
	}
	if got.Section != "Work" {
		t.Fatalf("expected section Work, got %s", got.Section)
	}
	if len(got.Note) != 1 || got.Note[0] != "attendees tbd" {
		t.Fatalf("expected note to persist, got %v", got.Note)
	}
}

func TestServiceFinishEntry(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)

	dto, err := svc.AddEntry(ctx, AddEntryOptions{Title: "Finish report", When: "2026-01-05 09:00"})
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	done, err := svc.FinishEntry(ctx, FinishEntryOptions{ID: dto.ID, Took: "45m"})
	if err != nil {
		t.Fatalf("FinishEntry failed: %v", err)
	}
	if !done.Done {
		t.Fatalf("expected entry to be done")
	}
	if done.Interval != "45m" {
		t.Fatalf("expected 45m interval, got %q", done.Interval)
	}
}

func TestServiceFinishEntryCancel(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)

	dto, err := svc.AddEntry(ctx, AddEntryOptions{Title: "Dead end"})
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	done, err := svc.FinishEntry(ctx, FinishEntryOptions{ID: dto.ID, Cancel: true})
	if err != nil {
		t.Fatalf("FinishEntry failed: %v", err)
	}
	if !done.Done {
		t.Fatalf("cancelled entry should count as done")
	}
	if done.Interval != "" {
		t.Fatalf("cancelled entry should have no interval, got %q", done.Interval)
	}
}

func TestServiceMoveEntry(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)

	dto, err := svc.AddEntry(ctx, AddEntryOptions{Title: "Refactor parser", Section: "Backlog"})
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	moved, err := svc.MoveEntry(ctx, dto.ID, "Doing", true)
	if err != nil {
		t.Fatalf("MoveEntry failed: %v", err)
	}
	if moved.Section != "Doing" {
		t.Fatalf("expected section Doing, got %s", moved.Section)
	}
	found := false
	for _, name := range moved.Tags {
		if name == "from" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a from label, tags were %v", moved.Tags)
	}
}

func TestServiceTagAndUntag(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)

	dto, err := svc.AddEntry(ctx, AddEntryOptions{Title: "Ship release"})
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	tagged, err := svc.TagEntry(ctx, dto.ID, "@blocked", "ci")
	if err != nil {
		t.Fatalf("TagEntry failed: %v", err)
	}
	if tagged.Title != "Ship release @blocked(ci)" {
		t.Fatalf("unexpected tagged title %q", tagged.Title)
	}

	clean, err := svc.UntagEntry(ctx, dto.ID, "blocked")
	if err != nil {
		t.Fatalf("UntagEntry failed: %v", err)
	}
	if clean.Title != "Ship release" {
		t.Fatalf("unexpected untagged title %q", clean.Title)
	}
}

func TestServiceAppendNote(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)

	dto, err := svc.AddEntry(ctx, AddEntryOptions{Title: "Call vendor", Note: []string{"ask about pricing"}})
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	noted, err := svc.AppendNote(ctx, dto.ID, []string{"left a voicemail"}, false)
	if err != nil {
		t.Fatalf("AppendNote failed: %v", err)
	}
	if len(noted.Note) != 2 || noted.Note[1] != "left a voicemail" {
		t.Fatalf("expected appended note, got %v", noted.Note)
	}

	replaced, err := svc.AppendNote(ctx, dto.ID, []string{"resolved"}, true)
	if err != nil {
		t.Fatalf("AppendNote replace failed: %v", err)
	}
	if len(replaced.Note) != 1 || replaced.Note[0] != "resolved" {
		t.Fatalf("expected replaced note, got %v", replaced.Note)
	}
}

func TestServiceDeleteEntry(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)

	dto, err := svc.AddEntry(ctx, AddEntryOptions{Title: "Oops"})
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	gone, err := svc.DeleteEntry(ctx, dto.ID)
	if err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if gone.Title != "Oops" {
		t.Fatalf("expected the deleted entry back, got %q", gone.Title)
	}

	if _, err := svc.EntryByID(ctx, dto.ID); !errors.Is(err, journal.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound after delete, got %v", err)
	}
}

func TestServiceListSections(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)

	if _, err := svc.AddEntry(ctx, AddEntryOptions{Title: "one", Section: "Work"}); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if _, err := svc.AddEntry(ctx, AddEntryOptions{Title: "two", Section: "Work"}); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if _, err := svc.AddEntry(ctx, AddEntryOptions{Title: "three", Section: "Home"}); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	summaries, err := svc.ListSections(ctx)
	if err != nil {
		t.Fatalf("ListSections failed: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(summaries))
	}
	// Sorted by name: Home before Work.
	if summaries[0].Name != "Home" || summaries[1].Name != "Work" {
		t.Fatalf("unexpected order: %s, %s", summaries[0].Name, summaries[1].Name)
	}
	if summaries[1].EntryCount != 2 || summaries[1].OpenCount != 2 {
		t.Fatalf("unexpected Work counts: %+v", summaries[1])
	}
	if summaries[1].LatestEntryTitle != "two" {
		t.Fatalf("expected latest title two, got %q", summaries[1].LatestEntryTitle)
	}
}

func TestServiceSearchEntries(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)

	if _, err := svc.AddEntry(ctx, AddEntryOptions{Title: "Fix login bug"}); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if _, err := svc.AddEntry(ctx, AddEntryOptions{Title: "Write docs", Note: []string{"cover the login flow"}}); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if _, err := svc.AddEntry(ctx, AddEntryOptions{Title: "Plan offsite"}); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	results, err := svc.SearchEntries(ctx, "login", 0)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	limited, err := svc.SearchEntries(ctx, "login", 1)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 result with limit, got %d", len(limited))
	}

	empty, err := svc.SearchEntries(ctx, "   ", 5)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("blank query should match nothing, got %d", len(empty))
	}
}

func TestServiceListEntriesUnknownSection(t *testing.T) {
	ctx := context.Background()
	svc := testService(t)

	if _, err := svc.AddEntry(ctx, AddEntryOptions{Title: "anything"}); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if _, err := svc.ListEntries(ctx, "Nope"); !errors.Is(err, journal.ErrInvalidSection) {
		t.Fatalf("expected ErrInvalidSection, got %v", err)
	}
}
