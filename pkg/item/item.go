// Package item holds the journal entry model shared by the parser, filter,
// and mutation layers.
package item

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/trail/pkg/tag"
)

// TimeFormat is the minute-resolution stamp used on entry lines and inside
// @done values.
const TimeFormat = "2006-01-02 15:04"

// Item is one journal entry: a timestamped title line in a section, with an
// optional note of continuation lines. A zero-length note means no note.
type Item struct {
	ID      int64     `json:"id"`
	Date    time.Time `json:"date"`
	Title   string    `json:"title"`
	Section string    `json:"section"`
	Note    []string  `json:"note,omitempty"`
}

// New creates an item with the given section, title, and date. The ID is
// assigned when the item joins a journal.
func New(section, title string, date time.Time) *Item {
	return &Item{
		Date:    date.Truncate(time.Minute),
		Title:   title,
		Section: section,
	}
}

// Line renders the item's entry line without its note.
func (i *Item) Line() string {
	return fmt.Sprintf("- %s | %s", i.Date.Format(TimeFormat), i.Title)
}

// Tags returns the tag names in the title, in order of appearance.
func (i *Item) Tags() []string {
	return tag.Names(i.Title)
}

// Finished reports whether the title carries a @done tag.
func (i *Item) Finished() bool {
	_, ok := tag.Value(i.Title, "done")
	return ok
}

// Interval returns the elapsed time between the item's date and its
// @done(value) stamp. It reports false when there is no done tag, the value
// is not a timestamp, or the value predates the item.
func (i *Item) Interval() (time.Duration, bool) {
	value, ok := tag.Value(i.Title, "done")
	if !ok || value == "" {
		return 0, false
	}
	end, err := parseStamp(value, i.Date.Location())
	if err != nil {
		return 0, false
	}
	d := end.Sub(i.Date)
	if d < 0 {
		return 0, false
	}
	return d, true
}

// HasNote reports whether the item carries any note lines.
func (i *Item) HasNote() bool {
	return len(i.Note) > 0
}

// SearchText is the text a free-text search runs against: the title plus
// every note line.
func (i *Item) SearchText() string {
	if len(i.Note) == 0 {
		return i.Title
	}
	return i.Title + "\n" + strings.Join(i.Note, "\n")
}

// SameAs reports whether two items would serialize to the same entry line,
// which is the identity used when merging rotated files and imports.
func (i *Item) SameAs(other *Item) bool {
	return other != nil && i.Date.Equal(other.Date) && i.Title == other.Title
}

// Total sums the defined intervals of a list of items.
func Total(items []*Item) time.Duration {
	var total time.Duration
	for _, it := range items {
		if d, ok := it.Interval(); ok {
			total += d
		}
	}
	return total
}

func parseStamp(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{TimeFormat, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("item: not a timestamp: %q", value)
}
