// Package views provides the runner that lists the saved view presets.
package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/trail/pkg/config"
)

// Views prints the saved view presets from the config file.
type Views struct {
	Config *config.Config
}

// Do renders a table of view names and what they select.
func (v *Views) Do(ctx context.Context) error {
	if v.Config == nil {
		return errors.New("can not list views, no config")
	}

	names := v.Config.ViewNames()
	if len(names) == 0 {
		fmt.Fprintln(color.Output, "no views configured")
		return nil
	}

	_, _ = fmt.Fprintln(color.Output, "")

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("View"), bold.Sprint("Section"), bold.Sprint("Matches"))
	for _, name := range names {
		view, err := v.Config.View(name)
		if err != nil {
			return err
		}
		section := view.Section
		if section == "" {
			section = "*"
		}
		tbl.AddRow(name, section, describe(view))
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
	return nil
}

// describe compacts a view into one line of criteria.
func describe(v config.View) string {
	parts := []string{}
	if len(v.Tags) > 0 {
		join := " "
		if len(v.Tags) > 1 && v.Bool != "" {
			join = " " + strings.ToLower(v.Bool) + " "
		}
		tags := make([]string, 0, len(v.Tags))
		for _, t := range v.Tags {
			tags = append(tags, "@"+strings.TrimPrefix(t, "@"))
		}
		parts = append(parts, strings.Join(tags, join))
	}
	if v.Search != "" {
		parts = append(parts, fmt.Sprintf("%q", v.Search))
	}
	if v.Unfinished {
		parts = append(parts, "unfinished")
	}
	if v.OnlyTimed {
		parts = append(parts, "timed")
	}
	if v.Today {
		parts = append(parts, "today")
	}
	if v.Yesterday {
		parts = append(parts, "yesterday")
	}
	if v.Before != "" {
		parts = append(parts, "before "+v.Before)
	}
	if v.After != "" {
		parts = append(parts, "after "+v.After)
	}
	if v.Age != "" {
		parts = append(parts, v.Age+" first")
	}
	if v.Count > 0 {
		parts = append(parts, fmt.Sprintf("last %d", v.Count))
	}
	if v.Not {
		parts = append(parts, "inverted")
	}
	if len(parts) == 0 {
		return "everything"
	}
	return strings.Join(parts, ", ")
}
