package export

import (
	"fmt"
	"strings"

	"tableflip.dev/trail/pkg/item"
)

func init() {
	Register("taskpaper", TaskPaper{})
}

// TaskPaper renders items as tasks with a @date tag, notes as indented
// text. A page title becomes the enclosing project.
type TaskPaper struct{}

func (TaskPaper) Render(items []*item.Item, vars Variables) (string, error) {
	var b strings.Builder
	var indent string
	if vars.Title != "" {
		b.WriteString(vars.Title + ":\n")
		indent = "\t"
	}
	for _, it := range items {
		fmt.Fprintf(&b, "%s- %s @date(%s)\n", indent, it.Title, it.Date.Format(item.TimeFormat))
		for _, line := range it.Note {
			b.WriteString(indent + "\t" + line + "\n")
		}
	}
	return b.String(), nil
}
