// Package sections contains runners for section management commands.
package sections

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/store"
)

// List prints every section with entry counts and the date of the most
// recent entry.
type List struct {
	Store *store.Store
}

// Do renders the section table.
func (l *List) Do(ctx context.Context) error {
	if l.Store == nil {
		return errors.New("can not list sections, no store")
	}
	j, err := l.Store.Load()
	if err != nil {
		return err
	}

	sections := j.Sections()
	if len(sections) == 0 {
		fmt.Fprintln(color.Output, "no sections yet")
		return nil
	}

	_, _ = fmt.Fprintln(color.Output, "")

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Section"), bold.Sprint("Entries"), bold.Sprint("Open"), bold.Sprint("Last"))
	for _, s := range sections {
		items := j.In(s.Name)
		open := 0
		last := ""
		for _, it := range items {
			if !it.Finished() {
				open++
			}
			if stamp := it.Date.Format(item.TimeFormat); stamp > last {
				last = stamp
			}
		}
		tbl.AddRow(s.Name, len(items), open, last)
	}
	tbl.RightAlign(1)
	tbl.RightAlign(2)

	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println("")
	return nil
}

// Add creates an empty section at the end of the journal file.
type Add struct {
	Store *store.Store
	Name  string
}

// Do creates the section if it is not already present.
func (a *Add) Do(ctx context.Context) error {
	if a.Store == nil {
		return errors.New("can not add a section, no store")
	}
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return errors.New("section name is required")
	}
	j, err := a.Store.Load()
	if err != nil {
		return err
	}

	if s, ok := j.Section(name); ok {
		fmt.Fprintf(color.Output, "section %q already exists\n", s.Name)
		return nil
	}
	s, err := j.AddSection(name)
	if err != nil {
		return err
	}
	if err := a.Store.Save(j); err != nil {
		return err
	}

	fmt.Fprintf(color.Output, "added section %q\n", s.Name)
	return nil
}
