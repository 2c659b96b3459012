package journal

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/trail/pkg/autotag"
	"tableflip.dev/trail/pkg/filter"
	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/tag"
)

// Result reports what a mutation changed so the caller can present it. The
// journal itself never prints.
type Result struct {
	ItemsAffected int
	TagsAdded     []string
	TagsRemoved   []string
}

func (r *Result) merge(other Result) {
	r.ItemsAffected += other.ItemsAffected
	r.TagsAdded = append(r.TagsAdded, other.TagsAdded...)
	r.TagsRemoved = append(r.TagsRemoved, other.TagsRemoved...)
}

// AddOptions control a single AddItem call.
type AddOptions struct {
	// Date backdates the entry. The zero value means now.
	Date time.Time
	// Note attaches continuation lines.
	Note []string
	// Timed closes out the most recent open entry by stamping it @done with
	// the new entry's date.
	Timed bool
	// Autotag rules run over the title before it is stored.
	Autotag autotag.Rules
	// DefaultTags are appended to every new entry.
	DefaultTags []string
}

// AddItem appends a new entry to the given section, creating the section
// when needed. The title is autotagged, given the default tags, and has
// its internal whitespace normalized.
func (j *Journal) AddItem(title, section string, opts AddOptions) (*item.Item, Result, error) {
	var res Result
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return nil, res, errors.New("journal: entry title required")
	}

	sec, err := j.AddSection(section)
	if err != nil {
		return nil, res, err
	}

	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}
	date = date.Truncate(time.Minute)

	if !opts.Autotag.Empty() {
		var ares autotag.Result
		title, ares = autotag.Apply(title, opts.Autotag)
		res.TagsAdded = append(res.TagsAdded, ares.Added...)
		res.TagsAdded = append(res.TagsAdded, ares.Replaced...)
	}
	for _, dt := range opts.DefaultTags {
		dt = strings.TrimPrefix(strings.TrimSpace(dt), "@")
		if dt == "" {
			continue
		}
		if tagged := tag.Add(title, dt, ""); tagged != title {
			title = tagged
			res.TagsAdded = append(res.TagsAdded, dt)
		}
	}

	if opts.Timed {
		if closed := j.closeOutLast(date); closed != nil {
			res.ItemsAffected++
			res.TagsAdded = append(res.TagsAdded, "done")
		}
	}

	it := j.attach(item.New(sec.Name, title, date))
	it.Note = append(it.Note, opts.Note...)
	res.ItemsAffected++
	j.firePostEntryAdded(it)
	return it, res, nil
}

// closeOutLast stamps the most recent entry lacking a @done tag, walking
// the store in reverse chronological order. It returns the stamped item,
// nil when every entry is already finished.
func (j *Journal) closeOutLast(at time.Time) *item.Item {
	sorted := make([]*item.Item, len(j.items))
	copy(sorted, j.items)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Date.After(sorted[b].Date)
	})
	for _, it := range sorted {
		if it.Finished() {
			continue
		}
		it.Title = tag.Set(it.Title, "done", tag.SetOptions{Value: at.Format(item.TimeFormat)})
		j.firePostEntryUpdated(it)
		return it
	}
	return nil
}

// MoveOptions control a Move call.
type MoveOptions struct {
	// Label stamps the item with @from(<original section>), overwriting any
	// previous from tag.
	Label bool
}

// Move reassigns an item to the target section, creating it when needed.
func (j *Journal) Move(id int64, target string, opts MoveOptions) (Result, error) {
	var res Result
	it, ok := j.ItemByID(id)
	if !ok {
		return res, fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	sec, err := j.AddSection(target)
	if err != nil {
		return res, err
	}
	original := it.Section
	it.Section = sec.Name
	if opts.Label {
		it.Title = tag.Set(it.Title, "from", tag.SetOptions{Value: original, Force: true})
		res.TagsAdded = append(res.TagsAdded, "from")
	}
	j.firePostEntryUpdated(it)
	res.ItemsAffected = 1
	return res, nil
}

// Delete removes an item from the store by ID.
func (j *Journal) Delete(id int64) (Result, error) {
	var res Result
	for i, it := range j.items {
		if it.ID != id {
			continue
		}
		j.items = append(j.items[:i], j.items[i+1:]...)
		res.ItemsAffected = 1
		return res, nil
	}
	return res, fmt.Errorf("%w: id %d", ErrItemNotFound, id)
}

// Update replaces the content of the item with the given ID in place. The
// ID and position are preserved; the section changes only when the
// replacement names one.
func (j *Journal) Update(id int64, updated *item.Item) (Result, error) {
	var res Result
	it, ok := j.ItemByID(id)
	if !ok {
		return res, fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	if !updated.Date.IsZero() {
		it.Date = updated.Date.Truncate(time.Minute)
	}
	if updated.Title != "" {
		it.Title = updated.Title
	}
	it.Note = append(it.Note[:0], updated.Note...)
	if updated.Section != "" && !strings.EqualFold(updated.Section, it.Section) {
		sec, err := j.AddSection(updated.Section)
		if err != nil {
			return res, err
		}
		it.Section = sec.Name
	}
	j.firePostEntryUpdated(it)
	res.ItemsAffected = 1
	return res, nil
}

// ArchiveOptions control which items an Archive or Rotate call selects.
type ArchiveOptions struct {
	// Destination is the target section, "Archive" when empty.
	Destination string
	// KeepCount spares the most recent N items of each source section.
	KeepCount int
	// Tags, Bool, Search, Case, and Before narrow the selection the same
	// way the filter engine does.
	Tags   []string
	Bool   tag.Bool
	Search string
	Case   filter.Case
	Before string
	// Label stamps moved items with @from(<source section>).
	Label bool
	// Now anchors the Before resolution. The zero value means time.Now().
	Now time.Time
}

// Archive moves matching items from the source section, or from every
// section when source is "All", into the destination section.
func (j *Journal) Archive(source string, opts ArchiveOptions) (Result, error) {
	var res Result
	dest := opts.Destination
	if dest == "" {
		dest = "Archive"
	}
	if !isAll(source) && !j.HasSection(source) {
		return res, fmt.Errorf("%w: %q", ErrInvalidSection, source)
	}
	destSec, err := j.AddSection(dest)
	if err != nil {
		return res, err
	}

	selected, err := j.selectForArchive(source, destSec.Name, opts)
	if err != nil {
		return res, err
	}
	for _, it := range selected {
		original := it.Section
		it.Section = destSec.Name
		if opts.Label {
			it.Title = tag.Set(it.Title, "from", tag.SetOptions{Value: original, Force: true})
		}
		j.firePostEntryUpdated(it)
	}
	res.ItemsAffected = len(selected)
	return res, nil
}

// Dedup splits candidate items into fresh entries and duplicates of ones
// already stored, matching by date and title. With overwrite, each
// duplicate's note and section replace its stored counterpart's.
func (j *Journal) Dedup(candidates []*item.Item, overwrite bool) ([]*item.Item, Result) {
	var fresh []*item.Item
	var res Result
	for _, cand := range candidates {
		var existing *item.Item
		for _, it := range j.items {
			if it.SameAs(cand) {
				existing = it
				break
			}
		}
		if existing == nil {
			fresh = append(fresh, cand)
			continue
		}
		if overwrite {
			existing.Note = append(existing.Note[:0], cand.Note...)
			if cand.Section != "" && !strings.EqualFold(cand.Section, existing.Section) {
				if sec, err := j.AddSection(cand.Section); err == nil {
					existing.Section = sec.Name
				}
			}
			j.firePostEntryUpdated(existing)
			res.ItemsAffected++
		}
	}
	return fresh, res
}

// selectForArchive returns the items an archive or rotate should take:
// everything in scope except the most recent KeepCount of each source
// section, the destination's own items, and anything failing the tag,
// search, or date criteria.
func (j *Journal) selectForArchive(source, dest string, opts ArchiveOptions) ([]*item.Item, error) {
	var out []*item.Item
	for _, src := range j.sections {
		if strings.EqualFold(src.Name, dest) {
			continue
		}
		if !isAll(source) && !strings.EqualFold(src.Name, source) {
			continue
		}
		items := j.In(src.Name)
		sort.SliceStable(items, func(a, b int) bool {
			if !items[a].Date.Equal(items[b].Date) {
				return items[a].Date.Before(items[b].Date)
			}
			return strings.ToLower(items[a].Title) < strings.ToLower(items[b].Title)
		})
		if opts.KeepCount > 0 {
			if len(items) <= opts.KeepCount {
				continue
			}
			items = items[:len(items)-opts.KeepCount]
		}
		selected, err := filter.Apply(items, filter.Config{
			Tags:   opts.Tags,
			Bool:   opts.Bool,
			Search: opts.Search,
			Case:   opts.Case,
			Before: opts.Before,
			Now:    opts.Now,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, selected...)
	}
	return out, nil
}
