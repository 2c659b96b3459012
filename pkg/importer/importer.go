// Package importer merges entries from other tools into a journal.
// Adapters build fully-titled candidate items, run them through the
// journal's dedup, and add whatever is new.
package importer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"tableflip.dev/trail/pkg/autotag"
	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/journal"
	"tableflip.dev/trail/pkg/tag"
)

// ErrUnknownType reports an adapter lookup miss.
var ErrUnknownType = errors.New("importer: unknown type")

// Options shape how imported entries land in the journal.
type Options struct {
	// Section overrides the target section. Empty keeps the adapter's
	// default.
	Section string
	// Tags are appended to every imported title.
	Tags []string
	// Prefix is prepended to every imported title.
	Prefix string
	// Autotag rules run over every imported title.
	Autotag autotag.Rules
	// Overwrite replaces duplicate entries instead of skipping them.
	Overwrite bool
}

// Result reports what an import changed.
type Result struct {
	Added   int
	Updated int
	Skipped int
}

// Adapter reads entries from a foreign file into the journal.
type Adapter interface {
	Import(j *journal.Journal, path string, opts Options) (Result, error)
}

var adapters = map[string]Adapter{}

// Register adds an adapter under a type name, replacing any previous
// registration.
func Register(name string, a Adapter) {
	adapters[name] = a
}

// Get looks an adapter up by type name.
func Get(name string) (Adapter, error) {
	a, ok := adapters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return a, nil
}

// Names lists the registered adapter names in sorted order.
func Names() []string {
	names := make([]string, 0, len(adapters))
	for name := range adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// title builds a candidate title: prefix, whitespace normalization, extra
// tags, then autotag. The same input always yields the same bytes, which
// is what makes dedup across repeated imports work.
func (o Options) title(base string) string {
	t := strings.Join(strings.Fields(o.Prefix+" "+base), " ")
	for _, name := range o.Tags {
		name = strings.TrimPrefix(strings.TrimSpace(name), "@")
		if name != "" {
			t = tag.Add(t, name, "")
		}
	}
	if !o.Autotag.Empty() {
		t, _ = autotag.Apply(t, o.Autotag)
	}
	return t
}

// merge dedups candidates against the journal and adds the fresh ones.
func merge(j *journal.Journal, candidates []*item.Item, opts Options, res Result) (Result, error) {
	fresh, dres := j.Dedup(candidates, opts.Overwrite)
	res.Updated += dres.ItemsAffected
	res.Skipped += len(candidates) - len(fresh) - dres.ItemsAffected
	for _, cand := range fresh {
		if _, _, err := j.AddItem(cand.Title, cand.Section, journal.AddOptions{
			Date: cand.Date,
			Note: cand.Note,
		}); err != nil {
			return res, err
		}
		res.Added++
	}
	return res, nil
}
