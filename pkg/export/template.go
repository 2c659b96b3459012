package export

import (
	"strings"

	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/timeutil"
)

func init() {
	Register("template", Template{})
}

// DefaultFormat is the per-item pattern used when none is configured.
const DefaultFormat = "%date | %title%note"

// Template renders one line per item by expanding % placeholders:
// %date, %shortdate, %title, %section, %note (tab-indented block),
// %odnote (unindented), %interval, %duration.
type Template struct {
	// Format is the per-item pattern. Empty means DefaultFormat.
	Format string
	// DateFormat overrides the %date layout.
	DateFormat string
}

func (t Template) Render(items []*item.Item, vars Variables) (string, error) {
	format := t.Format
	if format == "" {
		format = DefaultFormat
	}
	layout := t.DateFormat
	if layout == "" {
		layout = item.TimeFormat
	}

	var b strings.Builder
	for _, it := range items {
		var interval, duration string
		if d, ok := it.Interval(); ok {
			interval = timeutil.FormatWindow(d)
			duration = d.String()
		}
		var note, odnote string
		if it.HasNote() {
			note = "\n\t" + strings.Join(it.Note, "\n\t")
			odnote = strings.Join(it.Note, "\n")
		}
		// Longer names first so shared prefixes resolve correctly.
		r := strings.NewReplacer(
			"%shortdate", it.Date.Format("Jan _2 15:04"),
			"%section", it.Section,
			"%duration", duration,
			"%date", it.Date.Format(layout),
			"%odnote", odnote,
			"%note", note,
			"%interval", interval,
			"%title", it.Title,
		)
		b.WriteString(r.Replace(format))
		b.WriteString("\n")
	}
	return b.String(), nil
}
