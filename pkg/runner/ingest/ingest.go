// Package ingest provides the runner that merges entries from other
// tools into the journal.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/trail/pkg/config"
	"tableflip.dev/trail/pkg/importer"
	"tableflip.dev/trail/pkg/store"
)

// Ingest imports a foreign file through a registered adapter.
type Ingest struct {
	Store  *store.Store
	Config *config.Config

	// File is the source to read.
	File string
	// Type names the adapter. Empty means the native journal format.
	Type string

	// Section overrides where imported entries land.
	Section string
	// Tags are appended to every imported title.
	Tags []string
	// Prefix is prepended to every imported title.
	Prefix string
	// Overwrite replaces duplicate entries instead of skipping them.
	Overwrite bool
	// NoAutotag skips the configured autotag rules.
	NoAutotag bool
}

// Do runs the import and reports what changed.
func (n *Ingest) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not import, no store")
	}
	if n.File == "" {
		return errors.New("an import file is required")
	}

	kind := n.Type
	if kind == "" {
		kind = "journal"
	}
	adapter, err := importer.Get(kind)
	if err != nil {
		return fmt.Errorf("%w (types: %s)", err, strings.Join(importer.Names(), ", "))
	}

	j, err := n.Store.Load()
	if err != nil {
		return err
	}

	opts := importer.Options{
		Section:   n.Section,
		Tags:      n.Tags,
		Prefix:    n.Prefix,
		Overwrite: n.Overwrite,
	}
	if n.Config != nil && !n.NoAutotag {
		opts.Autotag = n.Config.Autotag
	}

	res, err := adapter.Import(j, n.File, opts)
	if err != nil {
		return err
	}
	if res.Added == 0 && res.Updated == 0 {
		fmt.Fprintf(color.Output, "nothing new in %s (%d skipped)\n", n.File, res.Skipped)
		return nil
	}
	if err := n.Store.Save(j); err != nil {
		return err
	}

	fmt.Fprintf(color.Output, "imported %d entries from %s", res.Added, n.File)
	if res.Updated > 0 {
		fmt.Fprintf(color.Output, ", %d updated", res.Updated)
	}
	if res.Skipped > 0 {
		fmt.Fprintf(color.Output, ", %d skipped", res.Skipped)
	}
	fmt.Fprintln(color.Output, "")
	return nil
}
