package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeExpression reports a date or duration string that none of
// the resolution layers could make sense of.
var ErrInvalidTimeExpression = errors.New("timeutil: invalid time expression")

// Guess anchors an expression that names a day but no time of day.
type Guess int

const (
	// GuessBegin resolves a bare day to its first minute.
	GuessBegin Guess = iota
	// GuessEnd resolves a bare day to its last minute.
	GuessEnd
)

// ResolveOptions adjust how an ambiguous expression is anchored.
type ResolveOptions struct {
	// Now is the reference point. The zero value means time.Now().
	Now time.Time
	// Future biases weekday and time-of-day expressions forward instead of
	// backward.
	Future bool
	// Guess picks the begin or end of day for expressions without a time.
	Guess Guess
}

// Resolve turns a human date expression into a concrete local time at
// minute resolution. Three layers are tried in order: a bare integer is
// that many minutes ago, a compound duration such as "1d6h30m" is
// subtracted from now, and anything else is matched against absolute
// layouts and a small natural-language vocabulary. An empty or unparsable
// expression yields ErrInvalidTimeExpression.
func Resolve(expr string, opts ResolveOptions) (time.Time, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.Truncate(time.Minute)

	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrInvalidTimeExpression)
	}

	if mins, err := strconv.Atoi(trimmed); err == nil {
		return now.Add(-time.Duration(mins) * time.Minute), nil
	}

	if dur, err := ParseWindow(trimmed); err == nil {
		return now.Add(-dur), nil
	}

	if t, ok := resolveAbsolute(trimmed, now, opts); ok {
		return t, nil
	}
	if t, ok := resolveNatural(strings.ToLower(trimmed), now, opts); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeExpression, expr)
}

// ResolveRange splits an expression like "monday to friday" into a start
// and end time. The start anchors to the beginning of its day and the end
// to the end of its day. Without a separator the end is the zero time and
// the caller decides what a single date means.
func ResolveRange(expr string, now time.Time) (time.Time, time.Time, error) {
	seps := []string{" to ", " through ", " thru ", " - "}
	lower := strings.ToLower(expr)
	for _, sep := range seps {
		idx := strings.Index(lower, sep)
		if idx < 0 {
			continue
		}
		start, err := Resolve(expr[:idx], ResolveOptions{Now: now, Guess: GuessBegin})
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := Resolve(expr[idx+len(sep):], ResolveOptions{Now: now, Guess: GuessEnd})
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return start, end, nil
	}
	start, err := Resolve(expr, ResolveOptions{Now: now, Guess: GuessBegin})
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, time.Time{}, nil
}

// absoluteLayouts are tried in order against the raw expression. Layouts
// without a time component anchor per the Guess option.
var absoluteLayouts = []struct {
	layout  string
	dayOnly bool
}{
	{"2006-01-02 15:04:05", false},
	{"2006-01-02 15:04", false},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02T15:04", false},
	{"2006-01-02", true},
	{"2006-1-2", true},
	{"01/02/2006 15:04", false},
	{"01/02/2006", true},
	{"1/2/2006", true},
	{"Jan 2 2006", true},
	{"Jan 2, 2006", true},
	{"January 2 2006", true},
	{"January 2, 2006", true},
}

// timeOnlyLayouts resolve against today's date, then shift a day per the
// Future option when the result lands on the wrong side of now.
var timeOnlyLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04pm",
	"3:04PM",
	"3pm",
	"3PM",
}

func resolveAbsolute(expr string, now time.Time, opts ResolveOptions) (time.Time, bool) {
	for _, l := range absoluteLayouts {
		t, err := time.ParseInLocation(l.layout, expr, now.Location())
		if err != nil {
			continue
		}
		if l.dayOnly {
			return anchorDay(t, opts.Guess), true
		}
		return t.Truncate(time.Minute), true
	}
	for _, layout := range timeOnlyLayouts {
		t, err := time.ParseInLocation(layout, expr, now.Location())
		if err != nil {
			continue
		}
		at := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
		return shiftDay(at, now, opts.Future), true
	}
	// Month and day without a year belong to the current year.
	for _, layout := range []string{"Jan 2", "January 2", "1/2", "01/02"} {
		t, err := time.ParseInLocation(layout, expr, now.Location())
		if err != nil {
			continue
		}
		at := time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
		return anchorDay(at, opts.Guess), true
	}
	return time.Time{}, false
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func resolveNatural(expr string, now time.Time, opts ResolveOptions) (time.Time, bool) {
	switch expr {
	case "now":
		return now, true
	case "today":
		return anchorDay(now, opts.Guess), true
	case "yesterday":
		return anchorDay(now.AddDate(0, 0, -1), opts.Guess), true
	case "tomorrow":
		return anchorDay(now.AddDate(0, 0, 1), opts.Guess), true
	case "noon":
		return time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location()), true
	case "midnight":
		return anchorDay(now, GuessBegin), true
	case "last week":
		return anchorDay(now.AddDate(0, 0, -7), opts.Guess), true
	case "next week":
		return anchorDay(now.AddDate(0, 0, 7), opts.Guess), true
	case "last month":
		return anchorDay(now.AddDate(0, -1, 0), opts.Guess), true
	case "last year":
		return anchorDay(now.AddDate(-1, 0, 0), opts.Guess), true
	}

	if day, ok := weekdays[expr]; ok {
		return anchorDay(nearestWeekday(now, day, opts.Future), opts.Guess), true
	}
	if day, ok := weekdays[strings.TrimPrefix(expr, "last ")]; ok && strings.HasPrefix(expr, "last ") {
		return anchorDay(nearestWeekday(now.AddDate(0, 0, -1), day, false), opts.Guess), true
	}
	if day, ok := weekdays[strings.TrimPrefix(expr, "next ")]; ok && strings.HasPrefix(expr, "next ") {
		return anchorDay(nearestWeekday(now.AddDate(0, 0, 1), day, true), opts.Guess), true
	}

	// "N <unit> ago" and "in N <unit>" reuse the duration table.
	if rest, ok := strings.CutSuffix(expr, " ago"); ok {
		if dur, err := ParseWindow(spellOutOne(rest)); err == nil {
			return now.Add(-dur), true
		}
	}
	if rest, ok := strings.CutPrefix(expr, "in "); ok {
		if dur, err := ParseWindow(spellOutOne(rest)); err == nil {
			return now.Add(dur), true
		}
	}
	return time.Time{}, false
}

// spellOutOne lets phrases like "a day ago" reach the numeric duration
// parser.
func spellOutOne(s string) string {
	s = strings.TrimSpace(s)
	for _, article := range []string{"a ", "an ", "one "} {
		if rest, ok := strings.CutPrefix(s, article); ok {
			return "1 " + rest
		}
	}
	return s
}

// nearestWeekday walks from now to the closest matching weekday. Today
// counts as a match in either direction.
func nearestWeekday(now time.Time, day time.Weekday, forward bool) time.Time {
	step := -1
	if forward {
		step = 1
	}
	t := now
	for t.Weekday() != day {
		t = t.AddDate(0, 0, step)
	}
	return t
}

func anchorDay(t time.Time, guess Guess) time.Time {
	if guess == GuessEnd {
		return EndOfDay(t)
	}
	return BeginOfDay(t)
}

// shiftDay nudges a today-anchored clock time across midnight when it lands
// on the wrong side of now for the requested bias.
func shiftDay(at, now time.Time, future bool) time.Time {
	if future && at.Before(now) {
		return at.AddDate(0, 0, 1)
	}
	if !future && at.After(now) {
		return at.AddDate(0, 0, -1)
	}
	return at
}

// BeginOfDay returns midnight at the start of t's day.
func BeginOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last minute of t's day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
