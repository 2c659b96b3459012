package printers

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/trail/pkg/item"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func day(d, h, min int) time.Time {
	return time.Date(2024, 1, d, h, min, 0, 0, time.Local)
}

func TestLine(t *testing.T) {
	it := &item.Item{
		ID:    1,
		Date:  day(10, 9, 0),
		Title: "standup @meeting @done(2024-01-10 09:30)",
		Note:  []string{"shipping update"},
	}

	got := Pretty{}.Line(it)
	want := "2024-01-10 09:00 | standup @meeting @done(2024-01-10 09:30) [30m]\n" +
		"\tshipping update\n"
	if got != want {
		t.Errorf("Line = %q, want %q", got, want)
	}
}

func TestLineShowID(t *testing.T) {
	it := &item.Item{ID: 7, Date: day(10, 9, 0), Title: "alpha"}
	got := Pretty{ShowID: true}.Line(it)
	if !strings.HasPrefix(got, "7     2024-01-10 09:00 | alpha") {
		t.Errorf("Line = %q, want the ID column first", got)
	}
}

func TestNoteWrap(t *testing.T) {
	it := &item.Item{Date: day(10, 9, 0), Title: "alpha", Note: []string{"alpha beta gamma delta"}}
	got := Pretty{Wrap: 12}.Line(it)
	if !strings.Contains(got, "\talpha beta\n\tgamma delta\n") {
		t.Errorf("Line = %q, want the note wrapped at the limit", got)
	}
}

func TestItemsGrouping(t *testing.T) {
	items := []*item.Item{
		{Date: day(10, 9, 0), Section: "Work", Title: "alpha"},
		{Date: day(10, 10, 0), Section: "Work", Title: "beta"},
		{Date: day(10, 11, 0), Section: "Home", Title: "gamma"},
	}
	got := Pretty{}.Items(items)

	if !strings.Contains(got, "Work - 2 entries\n") {
		t.Errorf("output missing the Work heading:\n%s", got)
	}
	if !strings.Contains(got, "Home - 1 entry\n") {
		t.Errorf("output missing the singular Home heading:\n%s", got)
	}
	if strings.Index(got, "Work") > strings.Index(got, "Home") {
		t.Errorf("sections must keep first-seen order:\n%s", got)
	}
}

func TestItemsEmpty(t *testing.T) {
	if got := (Pretty{}).Items(nil); got != " none\n" {
		t.Errorf("Items(nil) = %q", got)
	}
}

func TestTotals(t *testing.T) {
	items := []*item.Item{
		{Date: day(10, 9, 0), Title: "alpha @done(2024-01-10 11:30)"},
		{Date: day(10, 12, 0), Title: "beta"},
	}
	if got := (Pretty{}).Totals(items); got != "Total time: 2h30m\n" {
		t.Errorf("Totals = %q", got)
	}
	if got := (Pretty{}).Totals(items[1:]); got != "" {
		t.Errorf("Totals without intervals = %q, want empty", got)
	}
}

func TestCalendar(t *testing.T) {
	items := []*item.Item{{Date: day(10, 9, 0), Title: "alpha"}}
	got := Pretty{}.Calendar(day(1, 0, 0), items)
	lines := strings.Split(got, "\n")

	if strings.TrimSpace(lines[0]) != "January 2024" {
		t.Errorf("title line = %q", lines[0])
	}
	// January 2024 starts on a Monday.
	if lines[1] != "    1  2  3  4  5  6 " {
		t.Errorf("first week = %q", lines[1])
	}
	if lines[2] != " 7  8  9 10 11 12 13 " {
		t.Errorf("second week = %q", lines[2])
	}
}

func TestAgenda(t *testing.T) {
	items := []*item.Item{
		{Date: day(10, 9, 0), Title: "standup @daily"},
		{Date: day(10, 14, 0), Title: "review"},
	}
	got := Pretty{}.Agenda(day(1, 0, 0), day(10, 12, 0), items)

	if !strings.Contains(got, "10 W  standup @daily\n      review\n") {
		t.Errorf("agenda missing the day listing:\n%s", got)
	}
	if !strings.Contains(got, " 1 M\n") {
		t.Errorf("agenda missing the empty first day:\n%s", got)
	}
}
