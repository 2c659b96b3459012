// Package export provides the runner that renders filtered entries for
// other tools.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/trail/pkg/config"
	"tableflip.dev/trail/pkg/export"
	"tableflip.dev/trail/pkg/filter"
	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/store"
)

// Export renders the selected entries in a machine or document format.
type Export struct {
	Store  *store.Store
	Config *config.Config

	// Criteria selects which entries to render.
	Criteria filter.Config

	// Format names a registered renderer or a configured template.
	Format string
	// Template is an inline per-item pattern. It wins over Format.
	Template string
	// DateFormat overrides the %date layout of template output.
	DateFormat string
	// TemplateFile overrides the built-in html page template.
	TemplateFile string

	// Title overrides the rendered page title.
	Title string
	// OutputFile writes the result to a file instead of stdout.
	OutputFile string
}

// Do renders and delivers the export.
func (n *Export) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not export, no store")
	}
	j, err := n.Store.Load()
	if err != nil {
		return err
	}

	criteria := n.Criteria
	if criteria.Case == "" && n.Config != nil {
		if c, ok := filter.ParseCase(n.Config.Search.Case); ok {
			criteria.Case = c
		}
	}
	items, err := filter.Apply(j.Items(), criteria)
	if err != nil {
		return err
	}

	r, err := n.renderer()
	if err != nil {
		return err
	}

	vars := export.Variables{
		Title:     n.Title,
		Config:    describe(criteria),
		TotalTime: item.Total(items),
	}
	if vars.Title == "" {
		vars.Title = "Journal"
		if !filter.IsAll(criteria.Section) {
			vars.Title = criteria.Section
		}
	}

	out, err := r.Render(items, vars)
	if err != nil {
		return err
	}

	if n.OutputFile != "" {
		if err := os.WriteFile(n.OutputFile, []byte(out), 0o644); err != nil {
			return fmt.Errorf("export: write %s: %w", n.OutputFile, err)
		}
		fmt.Fprintf(color.Output, "wrote %d entries to %s\n", len(items), n.OutputFile)
		return nil
	}
	fmt.Fprint(os.Stdout, out)
	return nil
}

// renderer picks the output renderer. An inline template pattern wins,
// then configured template names, then the registry.
func (n *Export) renderer() (export.Renderer, error) {
	if n.Template != "" {
		return export.Template{Format: n.Template, DateFormat: n.DateFormat}, nil
	}
	format := n.Format
	if format == "" {
		format = "template"
	}
	if n.Config != nil {
		if pattern, ok := n.Config.Templates[format]; ok {
			return export.Template{Format: pattern, DateFormat: n.DateFormat}, nil
		}
	}
	if format == "html" && n.TemplateFile != "" {
		return export.HTML{TemplateFile: n.TemplateFile}, nil
	}
	if format == "template" && n.DateFormat != "" {
		return export.Template{DateFormat: n.DateFormat}, nil
	}
	r, err := export.Get(format)
	if err != nil {
		return nil, fmt.Errorf("%w (formats: %s)", err, strings.Join(export.Names(), ", "))
	}
	return r, nil
}

// describe records the non-zero selection criteria for renderers that
// embed their page context.
func describe(c filter.Config) map[string]any {
	out := map[string]any{}
	if !filter.IsAll(c.Section) {
		out["section"] = c.Section
	}
	if c.Search != "" {
		out["search"] = c.Search
	}
	if c.Unfinished {
		out["unfinished"] = true
	}
	if c.OnlyTimed {
		out["only_timed"] = true
	}
	if len(c.Tags) > 0 {
		out["tags"] = c.Tags
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
