package export

import (
	"fmt"
	"strings"

	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/timeutil"
)

func init() {
	Register("markdown", Markdown{})
}

// Markdown renders a heading, one bullet per item, and a total time
// footer when intervals are present.
type Markdown struct{}

func (Markdown) Render(items []*item.Item, vars Variables) (string, error) {
	var b strings.Builder
	if vars.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", vars.Title)
	}
	for _, it := range items {
		fmt.Fprintf(&b, "- **%s** %s\n", it.Date.Format(item.TimeFormat), it.Title)
		for _, line := range it.Note {
			fmt.Fprintf(&b, "  - %s\n", line)
		}
	}
	if vars.TotalTime > 0 {
		fmt.Fprintf(&b, "\nTotal time: %s\n", timeutil.FormatWindow(vars.TotalTime))
	}
	return b.String(), nil
}
