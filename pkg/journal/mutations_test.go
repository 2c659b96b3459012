package journal

import (
	"errors"
	"testing"
	"time"

	"tableflip.dev/trail/pkg/autotag"
	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/tag"
)

func day(d, h, m int) time.Time {
	return time.Date(2024, 1, d, h, m, 0, 0, time.Local)
}

func seed(t *testing.T, entries ...string) *Journal {
	t.Helper()
	j := New()
	for i, title := range entries {
		if _, _, err := j.AddItem(title, "Work", AddOptions{Date: day(2+i, 9, 0)}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return j
}

func TestAddItem(t *testing.T) {
	j := New()
	it, res, err := j.AddItem("  write   the report  ", "work", AddOptions{Date: day(10, 9, 0)})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if it.Title != "write the report" {
		t.Fatalf("whitespace not normalized: %q", it.Title)
	}
	if it.Section != "Work" {
		t.Fatalf("section not canonicalized: %q", it.Section)
	}
	if it.ID == 0 {
		t.Fatalf("expected assigned ID")
	}
	if res.ItemsAffected != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !j.HasSection("Work") {
		t.Fatalf("section not created")
	}
}

func TestAddItemEmptyTitle(t *testing.T) {
	j := New()
	if _, _, err := j.AddItem("   ", "Work", AddOptions{}); err == nil {
		t.Fatalf("expected error for empty title")
	}
}

func TestAddItemReservedSection(t *testing.T) {
	j := New()
	if _, _, err := j.AddItem("entry", "All", AddOptions{}); !errors.Is(err, ErrInvalidSection) {
		t.Fatalf("expected ErrInvalidSection, got %v", err)
	}
}

func TestAddItemAutotagAndDefaults(t *testing.T) {
	j := New()
	opts := AddOptions{
		Date:        day(10, 9, 0),
		Autotag:     autotag.Rules{Whitelist: []string{"meeting"}},
		DefaultTags: []string{"daily"},
	}
	it, res, err := j.AddItem("meeting with design", "Work", opts)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if it.Title != "@meeting with design @daily" {
		t.Fatalf("unexpected title: %q", it.Title)
	}
	if len(res.TagsAdded) != 2 {
		t.Fatalf("unexpected tags added: %v", res.TagsAdded)
	}
}

func TestAddItemTimedClosesPrevious(t *testing.T) {
	j := seed(t, "first task", "second task")
	newDate := day(10, 14, 30)
	_, res, err := j.AddItem("third task", "Work", AddOptions{Date: newDate, Timed: true})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	items := j.In("Work")
	if len(items) != 3 {
		t.Fatalf("expected 3 items")
	}
	// The most recent open entry (second task) gets the done stamp.
	if v, ok := tag.Value(items[1].Title, "done"); !ok || v != "2024-01-10 14:30" {
		t.Fatalf("previous entry not closed out: %q", items[1].Title)
	}
	if items[0].Finished() {
		t.Fatalf("older entry should stay open: %q", items[0].Title)
	}
	if res.ItemsAffected != 2 {
		t.Fatalf("expected adds plus close-out in result: %+v", res)
	}
}

func TestAddItemTimedSkipsFinished(t *testing.T) {
	j := New()
	if _, _, err := j.AddItem("wrapped @done(2024-01-05 10:00)", "Work", AddOptions{Date: day(5, 9, 0)}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, _, err := j.AddItem("open one", "Work", AddOptions{Date: day(6, 9, 0)}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, _, err := j.AddItem("next", "Work", AddOptions{Date: day(7, 9, 0), Timed: true}); err != nil {
		t.Fatalf("add: %v", err)
	}
	items := j.In("Work")
	if v, _ := tag.Value(items[1].Title, "done"); v != "2024-01-07 09:00" {
		t.Fatalf("open entry should be stamped: %q", items[1].Title)
	}
	if v, _ := tag.Value(items[0].Title, "done"); v != "2024-01-05 10:00" {
		t.Fatalf("already finished entry must keep its stamp: %q", items[0].Title)
	}
}

func TestMove(t *testing.T) {
	j := seed(t, "movable task")
	it := j.In("Work")[0]

	res, err := j.Move(it.ID, "Later", MoveOptions{Label: true})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if it.Section != "Later" {
		t.Fatalf("section not reassigned: %q", it.Section)
	}
	if v, ok := tag.Value(it.Title, "from"); !ok || v != "Work" {
		t.Fatalf("missing from label: %q", it.Title)
	}
	if res.ItemsAffected != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}

	// Moving again overwrites the from label.
	if _, err := j.Move(it.ID, "Done", MoveOptions{Label: true}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if v, _ := tag.Value(it.Title, "from"); v != "Later" {
		t.Fatalf("from label not refreshed: %q", it.Title)
	}
}

func TestMoveMissing(t *testing.T) {
	j := seed(t, "only")
	if _, err := j.Move(999, "Later", MoveOptions{}); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	j := seed(t, "first", "second")
	it := j.In("Work")[0]
	if _, err := j.Delete(it.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if j.Len() != 1 {
		t.Fatalf("expected one item left")
	}
	if _, err := j.Delete(it.ID); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("second delete should fail, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	j := seed(t, "original title")
	it := j.In("Work")[0]

	replacement := item.New("", "edited title @work", day(3, 10, 0))
	replacement.Note = []string{"a note"}
	res, err := j.Update(it.ID, replacement)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if it.Title != "edited title @work" || len(it.Note) != 1 {
		t.Fatalf("content not replaced: %q %v", it.Title, it.Note)
	}
	if !it.Date.Equal(day(3, 10, 0)) {
		t.Fatalf("date not replaced: %v", it.Date)
	}
	if it.Section != "Work" {
		t.Fatalf("section should be unchanged: %q", it.Section)
	}
	if res.ItemsAffected != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}

	if _, err := j.Update(12345, replacement); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestArchiveKeepCount(t *testing.T) {
	j := seed(t, "one", "two", "three", "four", "five")

	res, err := j.Archive("Work", ArchiveOptions{KeepCount: 2})
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if res.ItemsAffected != 3 {
		t.Fatalf("expected 3 moved, got %d", res.ItemsAffected)
	}
	left := j.In("Work")
	if len(left) != 2 {
		t.Fatalf("expected 2 kept, got %d", len(left))
	}
	if left[0].Title != "four" || left[1].Title != "five" {
		t.Fatalf("most recent should stay: %v", []string{left[0].Title, left[1].Title})
	}
	moved := j.In("Archive")
	if len(moved) != 3 {
		t.Fatalf("expected 3 in archive, got %d", len(moved))
	}
}

func TestArchiveWithFilters(t *testing.T) {
	j := New()
	if _, _, err := j.AddItem("done work @done(2024-01-02 10:00)", "Work", AddOptions{Date: day(2, 9, 0)}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, _, err := j.AddItem("open work", "Work", AddOptions{Date: day(3, 9, 0)}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	res, err := j.Archive("Work", ArchiveOptions{Tags: []string{"done"}, Bool: tag.And, Label: true})
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if res.ItemsAffected != 1 {
		t.Fatalf("expected 1 moved, got %d", res.ItemsAffected)
	}
	moved := j.In("Archive")
	if len(moved) != 1 {
		t.Fatalf("expected archived item")
	}
	if v, ok := tag.Value(moved[0].Title, "from"); !ok || v != "Work" {
		t.Fatalf("expected from label, got %q", moved[0].Title)
	}
	if len(j.In("Work")) != 1 {
		t.Fatalf("open item should stay")
	}
}

func TestArchiveAllSkipsDestination(t *testing.T) {
	j := New()
	for i, entry := range []string{"work item", "home item"} {
		section := "Work"
		if i == 1 {
			section = "Home"
		}
		if _, _, err := j.AddItem(entry, section, AddOptions{Date: day(2+i, 9, 0)}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if _, _, err := j.AddItem("already archived", "Archive", AddOptions{Date: day(1, 9, 0)}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	res, err := j.Archive("All", ArchiveOptions{})
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if res.ItemsAffected != 2 {
		t.Fatalf("expected 2 moved, got %d", res.ItemsAffected)
	}
	if len(j.In("Archive")) != 3 {
		t.Fatalf("expected 3 archived total")
	}
}

func TestArchiveUnknownSection(t *testing.T) {
	j := seed(t, "entry")
	if _, err := j.Archive("Nowhere", ArchiveOptions{}); !errors.Is(err, ErrInvalidSection) {
		t.Fatalf("expected ErrInvalidSection, got %v", err)
	}
}

func TestArchiveKeepCountPerSection(t *testing.T) {
	j := New()
	for i := 0; i < 3; i++ {
		if _, _, err := j.AddItem("work", "Work", AddOptions{Date: day(2+i, 9, 0)}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		if _, _, err := j.AddItem("home", "Home", AddOptions{Date: day(2+i, 10, 0)}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	res, err := j.Archive("All", ArchiveOptions{KeepCount: 2})
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if res.ItemsAffected != 2 {
		t.Fatalf("keep applies per section, got %d moved", res.ItemsAffected)
	}
	if len(j.In("Work")) != 2 || len(j.In("Home")) != 2 {
		t.Fatalf("each section keeps its two most recent")
	}
}
