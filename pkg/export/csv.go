package export

import (
	"encoding/csv"
	"fmt"
	"strings"

	"tableflip.dev/trail/pkg/item"
)

func init() {
	Register("csv", CSV{})
}

// CSV renders date,title,section,note,interval rows under a header line.
// Note lines collapse into one newline-joined cell.
type CSV struct{}

func (CSV) Render(items []*item.Item, vars Variables) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write([]string{"date", "title", "section", "note", "interval"}); err != nil {
		return "", fmt.Errorf("export: csv: %w", err)
	}
	for _, it := range items {
		var interval string
		if d, ok := it.Interval(); ok {
			interval = d.String()
		}
		row := []string{
			it.Date.Format(item.TimeFormat),
			it.Title,
			it.Section,
			strings.Join(it.Note, "\n"),
			interval,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("export: csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("export: csv: %w", err)
	}
	return b.String(), nil
}
