package export

import (
	"fmt"
	"html/template"
	"os"
	"strings"

	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/timeutil"
)

func init() {
	Register("html", HTML{})
}

// HTML renders a standalone page. TemplateFile overrides the built-in
// page template; either receives {Title, Items, TotalTime} with items as
// {Date, Title, Note}.
type HTML struct {
	TemplateFile string
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<ul>
{{- range .Items}}
<li><time>{{.Date}}</time> {{.Title}}{{if .Note}}
<ul>{{range .Note}}<li>{{.}}</li>{{end}}</ul>{{end}}</li>
{{- end}}
</ul>
{{- if .TotalTime}}
<p>Total time: {{.TotalTime}}</p>
{{- end}}
</body>
</html>
`

type htmlPage struct {
	Title     string
	Items     []htmlItem
	TotalTime string
}

type htmlItem struct {
	Date  string
	Title string
	Note  []string
}

func (h HTML) Render(items []*item.Item, vars Variables) (string, error) {
	text := pageTemplate
	if h.TemplateFile != "" {
		raw, err := os.ReadFile(h.TemplateFile)
		if err != nil {
			return "", fmt.Errorf("export: html template: %w", err)
		}
		text = string(raw)
	}
	tmpl, err := template.New("page").Parse(text)
	if err != nil {
		return "", fmt.Errorf("export: html template: %w", err)
	}

	page := htmlPage{Title: vars.Title, Items: make([]htmlItem, 0, len(items))}
	if vars.TotalTime > 0 {
		page.TotalTime = timeutil.FormatWindow(vars.TotalTime)
	}
	for _, it := range items {
		page.Items = append(page.Items, htmlItem{
			Date:  it.Date.Format(item.TimeFormat),
			Title: it.Title,
			Note:  it.Note,
		})
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, page); err != nil {
		return "", fmt.Errorf("export: html render: %w", err)
	}
	return b.String(), nil
}
