package timeutil

import (
	"errors"
	"testing"
	"time"
)

var anchor = time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)

func TestResolveBareMinutes(t *testing.T) {
	got, err := Resolve("45", ResolveOptions{Now: anchor})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 1, 10, 11, 15, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestResolveCompoundDuration(t *testing.T) {
	got, err := Resolve("1d", ResolveOptions{Now: anchor})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 1, 9, 12, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got, err = Resolve("1d6h30m", ResolveOptions{Now: anchor})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = time.Date(2024, 1, 9, 5, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestResolveAbsolute(t *testing.T) {
	tests := []struct {
		expr string
		opts ResolveOptions
		want time.Time
	}{
		{"2024-01-05 09:30", ResolveOptions{Now: anchor}, time.Date(2024, 1, 5, 9, 30, 0, 0, time.Local)},
		{"2024-01-05", ResolveOptions{Now: anchor}, time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)},
		{"2024-01-05", ResolveOptions{Now: anchor, Guess: GuessEnd}, time.Date(2024, 1, 5, 23, 59, 0, 0, time.Local)},
		{"Jan 5", ResolveOptions{Now: anchor}, time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)},
	}
	for _, tc := range tests {
		got, err := Resolve(tc.expr, tc.opts)
		if err != nil {
			t.Errorf("Resolve(%q) unexpected error: %v", tc.expr, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("Resolve(%q) = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestResolveTimeOfDayBias(t *testing.T) {
	past, err := Resolve("14:00", ResolveOptions{Now: anchor})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 1, 9, 14, 0, 0, 0, time.Local)
	if !past.Equal(want) {
		t.Fatalf("past bias: expected %v, got %v", want, past)
	}

	future, err := Resolve("9:00", ResolveOptions{Now: anchor, Future: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = time.Date(2024, 1, 11, 9, 0, 0, 0, time.Local)
	if !future.Equal(want) {
		t.Fatalf("future bias: expected %v, got %v", want, future)
	}
}

func TestResolveNatural(t *testing.T) {
	tests := []struct {
		expr string
		opts ResolveOptions
		want time.Time
	}{
		{"today", ResolveOptions{Now: anchor}, time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)},
		{"today", ResolveOptions{Now: anchor, Guess: GuessEnd}, time.Date(2024, 1, 10, 23, 59, 0, 0, time.Local)},
		{"yesterday", ResolveOptions{Now: anchor}, time.Date(2024, 1, 9, 0, 0, 0, 0, time.Local)},
		{"monday", ResolveOptions{Now: anchor}, time.Date(2024, 1, 8, 0, 0, 0, 0, time.Local)},
		{"last monday", ResolveOptions{Now: anchor}, time.Date(2024, 1, 8, 0, 0, 0, 0, time.Local)},
		{"next monday", ResolveOptions{Now: anchor}, time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)},
		{"2 days ago", ResolveOptions{Now: anchor}, time.Date(2024, 1, 8, 12, 0, 0, 0, time.Local)},
		{"an hour ago", ResolveOptions{Now: anchor}, time.Date(2024, 1, 10, 11, 0, 0, 0, time.Local)},
		{"noon", ResolveOptions{Now: anchor}, time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)},
	}
	for _, tc := range tests {
		got, err := Resolve(tc.expr, tc.opts)
		if err != nil {
			t.Errorf("Resolve(%q) unexpected error: %v", tc.expr, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("Resolve(%q) = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestResolveInvalid(t *testing.T) {
	for _, expr := range []string{"", "   ", "not a date at all"} {
		_, err := Resolve(expr, ResolveOptions{Now: anchor})
		if !errors.Is(err, ErrInvalidTimeExpression) {
			t.Errorf("Resolve(%q) expected ErrInvalidTimeExpression, got %v", expr, err)
		}
	}
}

func TestResolveRange(t *testing.T) {
	start, end, err := ResolveRange("2024-01-05 to 2024-01-08", anchor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !start.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("unexpected start: %v", start)
	}
	if !end.Equal(time.Date(2024, 1, 8, 23, 59, 0, 0, time.Local)) {
		t.Fatalf("unexpected end: %v", end)
	}

	start, end, err = ResolveRange("2024-01-05", anchor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !end.IsZero() {
		t.Fatalf("expected zero end for single date, got %v", end)
	}
	if !start.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("unexpected start: %v", start)
	}
}

func TestDayHelpers(t *testing.T) {
	if !SameDay(anchor, time.Date(2024, 1, 10, 23, 59, 0, 0, time.Local)) {
		t.Fatalf("expected same day")
	}
	if SameDay(anchor, time.Date(2024, 1, 11, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("expected different day")
	}
	if got := BeginOfDay(anchor); got.Hour() != 0 || got.Minute() != 0 {
		t.Fatalf("unexpected begin of day: %v", got)
	}
	if got := EndOfDay(anchor); got.Hour() != 23 || got.Minute() != 59 {
		t.Fatalf("unexpected end of day: %v", got)
	}
}
