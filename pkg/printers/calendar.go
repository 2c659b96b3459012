package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/trail/pkg/item"
)

const calWidth = len("11 12 13 14 15 16 17") // an example week

var (
	monthStyle  = color.New(color.FgWhite, color.Italic)
	quietDay    = color.New(color.Faint, color.FgWhite)
	busyDay     = color.New(color.Bold, color.FgHiWhite)
	plainDay    = color.New()
	todayStyle  = color.New(color.Bold)
	sundayStyle = color.New(color.Underline)
	sunTodStyle = color.New(color.Underline, color.Bold)
)

// Calendar renders a month grid, emphasizing days that carry entries.
func (p Pretty) Calendar(month time.Time, items []*item.Item) string {
	count := make([]int, daysIn(month))
	for _, it := range items {
		if it.Date.Year() == month.Year() && it.Date.Month() == month.Month() {
			count[it.Date.Day()-1]++
		}
	}
	return p.monthGrid(month, count)
}

// CalendarYear renders a grid for every month of one year.
func (p Pretty) CalendarYear(year int, items []*item.Item) string {
	var b strings.Builder
	month := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 12; i++ {
		b.WriteString(p.Calendar(month, items))
		month = nextMonth(month)
	}
	return b.String()
}

func (p Pretty) monthGrid(month time.Time, count []int) string {
	var b strings.Builder

	label := fmt.Sprintf("%s %d", month.Month(), month.Year())
	mid := (calWidth - len(label)) / 2
	if mid < 0 {
		mid = 0
	}
	b.WriteString(monthStyle.Sprintf("%s%s", strings.Repeat(" ", mid), label))
	b.WriteString("\n")

	d := startDay(month)
	for i := time.Sunday; i < d; i++ {
		b.WriteString("   ")
	}
	for i := 0; i < len(count); i++ {
		if count[i] == 0 {
			b.WriteString(quietDay.Sprintf("%2d ", i+1))
		} else {
			b.WriteString(busyDay.Sprintf("%2d ", i+1))
		}
		d++
		if d > time.Saturday {
			d = time.Sunday
			b.WriteString("\n")
		}
	}
	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// Agenda renders each day of the month with its entries, today in bold,
// Sundays underlined.
func (p Pretty) Agenda(month, now time.Time, items []*item.Item) string {
	var b strings.Builder
	d := startDay(month)
	for day := 1; day <= daysIn(month); day++ {
		printer := plainDay
		if sameDate(now, month, day) {
			printer = todayStyle
		}
		if d == time.Sunday {
			printer = sundayStyle
			if sameDate(now, month, day) {
				printer = sunTodStyle
			}
		}
		b.WriteString(printer.Sprintf("%2d %s", day, d.String()[:1]))

		first := true
		for _, it := range items {
			if !sameDate(it.Date, month, day) {
				continue
			}
			if first {
				b.WriteString("  ")
				first = false
			} else {
				b.WriteString(strings.Repeat(" ", 6))
			}
			b.WriteString(colorTitle(it.Title))
			b.WriteString("\n")
		}
		if first {
			b.WriteString("\n")
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
		}
	}
	return b.String()
}

func nextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 0, 0, 0, 0, then.Location())
}

func daysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, then.Location()).Day()
}

func startDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, then.Location()).Weekday()
}

func sameDate(t, month time.Time, day int) bool {
	return t.Year() == month.Year() && t.Month() == month.Month() && t.Day() == day
}
