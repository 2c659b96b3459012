package filter

import (
	"testing"
	"time"

	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/tag"
)

var testNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)

func at(day, hour, min int) time.Time {
	return time.Date(2024, 1, day, hour, min, 0, 0, time.Local)
}

func build(titles map[string]time.Time) []*item.Item {
	var items []*item.Item
	for title, date := range titles {
		items = append(items, item.New("Work", title, date))
	}
	return items
}

func titles(items []*item.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}

func TestApplyBooleanTags(t *testing.T) {
	items := build(map[string]time.Time{
		"one @a":    at(9, 9, 0),
		"two @b":    at(9, 10, 0),
		"both @a @b": at(9, 11, 0),
		"neither":   at(9, 12, 0),
	})

	tests := []struct {
		name string
		mode tag.Bool
		want map[string]bool
	}{
		{"and", tag.And, map[string]bool{"both @a @b": true}},
		{"or", tag.Or, map[string]bool{"one @a": true, "two @b": true, "both @a @b": true}},
		{"not", tag.Not, map[string]bool{"neither": true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Apply(items, Config{Tags: []string{"a", "b"}, Bool: tc.mode, Now: testNow})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %d items", titles(got), len(tc.want))
			}
			for _, it := range got {
				if !tc.want[it.Title] {
					t.Errorf("unexpected item %q", it.Title)
				}
			}
		})
	}
}

func TestApplyCountNewest(t *testing.T) {
	items := build(map[string]time.Time{
		"first":  at(5, 9, 0),
		"second": at(6, 9, 0),
		"third":  at(7, 9, 0),
		"fourth": at(8, 9, 0),
	})

	got, err := Apply(items, Config{Count: 2, Now: testNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].Title != "third" || got[1].Title != "fourth" {
		t.Fatalf("expected most recent two ascending, got %v", titles(got))
	}
}

func TestApplyCountOldest(t *testing.T) {
	items := build(map[string]time.Time{
		"first":  at(5, 9, 0),
		"second": at(6, 9, 0),
		"third":  at(7, 9, 0),
	})

	got, err := Apply(items, Config{Count: 2, Age: Oldest, Now: testNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Title != "first" || got[1].Title != "second" {
		t.Fatalf("expected earliest two ascending, got %v", titles(got))
	}
}

func TestApplyOrderingTieBreak(t *testing.T) {
	same := at(5, 9, 0)
	items := build(map[string]time.Time{
		"Beta":  same,
		"alpha": same,
		"gamma": same,
	})

	got, err := Apply(items, Config{Count: 1, Now: testNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Ties sort by case-folded title ascending before the reverse, so the
	// "most recent" of equal dates is the lexicographically greatest.
	if len(got) != 1 || got[0].Title != "gamma" {
		t.Fatalf("unexpected tie-break winner: %v", titles(got))
	}
}

func TestApplySectionRestriction(t *testing.T) {
	a := item.New("Work", "work item", at(5, 9, 0))
	b := item.New("Home", "home item", at(6, 9, 0))

	got, err := Apply([]*item.Item{a, b}, Config{Section: "work", Now: testNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "work item" {
		t.Fatalf("expected section match, got %v", titles(got))
	}

	got, err = Apply([]*item.Item{a, b}, Config{Section: All, Now: testNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("All should keep everything, got %v", titles(got))
	}

	// The section restriction never flips under Not.
	got, err = Apply([]*item.Item{a, b}, Config{Section: "Work", Not: true, Now: testNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "work item" {
		t.Fatalf("Not must not invert the section, got %v", titles(got))
	}
}

func TestApplyUnfinished(t *testing.T) {
	open := item.New("Work", "still open", at(5, 9, 0))
	done := item.New("Work", "wrapped up @done(2024-01-05 10:00)", at(5, 8, 0))
	items := []*item.Item{open, done}

	got, err := Apply(items, Config{Unfinished: true, Now: testNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "still open" {
		t.Fatalf("expected open item, got %v", titles(got))
	}

	got, err = Apply(items, Config{Unfinished: true, Not: true, Now: testNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || !got[0].Finished() {
		t.Fatalf("not+unfinished should keep finished items, got %v", titles(got))
	}
}

func TestApplyBeforeAfterCutoff(t *testing.T) {
	early := item.New("Work", "early", time.Date(2024, 1, 9, 11, 0, 0, 0, time.Local))
	late := item.New("Work", "late", time.Date(2024, 1, 9, 13, 0, 0, 0, time.Local))
	items := []*item.Item{early, late}

	got, err := Apply(items, Config{Before: "1d", Now: testNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "early" {
		t.Fatalf("before cutoff: got %v", titles(got))
	}

	got, err = Apply(items, Config{After: "1d", Now: testNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "late" {
		t.Fatalf("after cutoff: got %v", titles(got))
	}
}

func TestApplyInvalidCutoff(t *testing.T) {
	items := build(map[string]time.Time{"only": at(5, 9, 0)})
	if _, err := Apply(items, Config{Before: "absolute nonsense", Now: testNow}); err == nil {
		t.Fatalf("expected resolution error")
	}
}

func TestApplyDateRange(t *testing.T) {
	items := build(map[string]time.Time{
		"inside":  at(6, 10, 0),
		"edge":    at(7, 23, 59),
		"outside": at(8, 0, 0),
	})

	got, err := Apply(items, Config{From: at(6, 0, 0), To: at(7, 23, 59), Now: testNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected inclusive range of two, got %v", titles(got))
	}

	// A From without To means that calendar day only.
	got, err = Apply(items, Config{From: at(6, 0, 0), Now: testNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "inside" {
		t.Fatalf("single-day range: got %v", titles(got))
	}
}

func TestApplyTodayYesterday(t *testing.T) {
	items := build(map[string]time.Time{
		"from today":     at(10, 8, 0),
		"from yesterday": at(9, 8, 0),
		"older":          at(5, 8, 0),
	})

	got, err := Apply(items, Config{Today: true, Now: testNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "from today" {
		t.Fatalf("today: got %v", titles(got))
	}

	got, err = Apply(items, Config{Yesterday: true, Now: testNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "from yesterday" {
		t.Fatalf("yesterday: got %v", titles(got))
	}

	// Today wins when both are set.
	got, err = Apply(items, Config{Today: true, Yesterday: true, Now: testNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "from today" {
		t.Fatalf("today priority: got %v", titles(got))
	}
}

func TestApplyOnlyTimed(t *testing.T) {
	timed := item.New("Work", "timed @done(2024-01-05 10:00)", at(5, 9, 0))
	bare := item.New("Work", "bare @done", at(5, 8, 0))
	open := item.New("Work", "open", at(5, 7, 0))

	got, err := Apply([]*item.Item{timed, bare, open}, Config{OnlyTimed: true, Now: testNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "timed @done(2024-01-05 10:00)" {
		t.Fatalf("only timed: got %v", titles(got))
	}
}

func TestApplyTagFilterCombines(t *testing.T) {
	items := build(map[string]time.Time{
		"both @work @urgent": at(5, 9, 0),
		"work only @work":    at(5, 10, 0),
	})

	cfg := Config{
		Tags:      []string{"urgent"},
		TagFilter: &TagFilter{Tags: []string{"work"}, Bool: tag.And},
		Now:       testNow,
	}
	got, err := Apply(items, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "both @work @urgent" {
		t.Fatalf("combined tag criteria: got %v", titles(got))
	}
}

func TestApplyPatternMode(t *testing.T) {
	items := build(map[string]time.Time{
		"keep @work @bug":      at(5, 9, 0),
		"drop @work @urgent":   at(5, 10, 0),
		"also drop @bug":       at(5, 11, 0),
		"keep too @work @done": at(5, 12, 0),
	})

	cfg := Config{Tags: []string{"+work", "-urgent"}, Bool: tag.Pattern, Now: testNow}
	got, err := Apply(items, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("pattern mode: got %v", titles(got))
	}
}
