// Package archive provides the runner that moves old entries aside,
// either into an archive section or into a dated sibling file.
package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/trail/pkg/config"
	"tableflip.dev/trail/pkg/filter"
	"tableflip.dev/trail/pkg/journal"
	"tableflip.dev/trail/pkg/printers"
	"tableflip.dev/trail/pkg/store"
	"tableflip.dev/trail/pkg/tag"
)

// Archive moves matching entries out of the way. Rotate sends them to a
// dated sibling file instead of the archive section.
type Archive struct {
	Store  *store.Store
	Config *config.Config

	// Source restricts the sweep to one section; empty means all.
	Source string
	// Destination overrides the configured archive section.
	Destination string
	// Keep spares the most recent N entries of each swept section.
	Keep int

	// Tags, Bool, Search, and Before narrow the selection.
	Tags   []string
	Bool   tag.Bool
	Search string
	Before string
	// Label stamps swept entries with @from(<source section>).
	Label bool

	// Rotate writes the swept entries to a dated sibling file.
	Rotate bool
}

// Do sweeps the entries and reports what moved.
func (n *Archive) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not archive, no store")
	}
	j, err := n.Store.Load()
	if err != nil {
		return err
	}

	opts := journal.ArchiveOptions{
		Destination: n.Destination,
		KeepCount:   n.Keep,
		Tags:        n.Tags,
		Bool:        n.Bool,
		Search:      n.Search,
		Before:      n.Before,
		Label:       n.Label,
	}
	if n.Config != nil {
		if opts.Destination == "" {
			opts.Destination = n.Config.ArchiveSection
		}
		if c, ok := filter.ParseCase(n.Config.Search.Case); ok {
			opts.Case = c
		}
	}

	if n.Rotate {
		res, target, err := j.Rotate(n.Source, opts)
		if err != nil {
			return err
		}
		if res.ItemsAffected == 0 {
			fmt.Fprintln(color.Output, "nothing to rotate")
			return nil
		}
		if err := n.Store.Save(j); err != nil {
			return err
		}
		fmt.Fprintf(color.Output, "rotated %d entries to %s\n", res.ItemsAffected, target)
		return nil
	}

	res, err := j.Archive(n.Source, opts)
	if err != nil {
		return err
	}
	if res.ItemsAffected == 0 {
		fmt.Fprintln(color.Output, "nothing to archive")
		return nil
	}
	if err := n.Store.Save(j); err != nil {
		return err
	}

	dest := opts.Destination
	if dest == "" {
		dest = config.DefaultArchive
	}
	all := j.In(dest)
	pp := printers.Pretty{}
	fmt.Fprintln(color.Output, "")
	fmt.Fprint(color.Output, pp.TitleWithCount(dest, len(all)))
	fmt.Fprint(color.Output, pp.List(all))
	return nil
}
