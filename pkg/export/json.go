package export

import (
	"encoding/json"
	"fmt"

	"tableflip.dev/trail/pkg/item"
)

func init() {
	Register("json", JSON{})
}

// JSON renders the listing as a single document with the page context
// inline.
type JSON struct{}

type jsonDoc struct {
	Title     string     `json:"title,omitempty"`
	TotalTime string     `json:"total_time,omitempty"`
	Items     []jsonItem `json:"items"`
}

type jsonItem struct {
	ID       int64    `json:"id"`
	Date     string   `json:"date"`
	Section  string   `json:"section"`
	Title    string   `json:"title"`
	Note     []string `json:"note,omitempty"`
	Interval string   `json:"interval,omitempty"`
}

func (JSON) Render(items []*item.Item, vars Variables) (string, error) {
	doc := jsonDoc{Title: vars.Title, Items: make([]jsonItem, 0, len(items))}
	if vars.TotalTime > 0 {
		doc.TotalTime = vars.TotalTime.String()
	}
	for _, it := range items {
		ji := jsonItem{
			ID:      it.ID,
			Date:    it.Date.Format(item.TimeFormat),
			Section: it.Section,
			Title:   it.Title,
			Note:    it.Note,
		}
		if d, ok := it.Interval(); ok {
			ji.Interval = d.String()
		}
		doc.Items = append(doc.Items, ji)
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export: json: %w", err)
	}
	return string(out) + "\n", nil
}
