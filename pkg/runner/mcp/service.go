// Package mcp provides the Model Context Protocol server integration for
// trail.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/trail/pkg/config"
	"tableflip.dev/trail/pkg/filter"
	"tableflip.dev/trail/pkg/item"
	"tableflip.dev/trail/pkg/journal"
	"tableflip.dev/trail/pkg/store"
	"tableflip.dev/trail/pkg/tag"
	"tableflip.dev/trail/pkg/timeutil"
)

// Service coordinates store-backed operations shared by the MCP server.
// Every call loads the journal fresh and every mutation saves it, so
// other processes writing the file stay visible between calls.
type Service struct {
	Store  *store.Store
	Config *config.Config
}

// AddEntryOptions captures the parameters used to create a new entry.
type AddEntryOptions struct {
	Section string
	Title   string
	Note    []string
	// When is a date expression overriding the entry timestamp.
	When string
	// Timed closes out the previous open entry in the section first.
	Timed bool
}

// FinishEntryOptions captures the parameters used to close an entry out.
type FinishEntryOptions struct {
	ID int64
	// Took is a duration spent, counted from the entry timestamp.
	Took string
	// At is a date expression naming the finish time.
	At string
	// Cancel marks the entry done without a finish time.
	Cancel bool
}

// SectionSummary describes a section and basic aggregate metadata.
type SectionSummary struct {
	Name             string `json:"name"`
	EntryCount       int    `json:"entryCount"`
	OpenCount        int    `json:"openCount"`
	LastUpdated      string `json:"lastUpdated,omitempty"`
	LatestEntryTitle string `json:"latestEntryTitle,omitempty"`
}

// EntryDTO is a transport-friendly projection of an entry. IDs are
// positional in the current file, so a listing should precede mutations.
type EntryDTO struct {
	ID       int64    `json:"id"`
	Section  string   `json:"section"`
	Title    string   `json:"title"`
	Date     string   `json:"date"`
	DateUnix int64    `json:"dateUnix"`
	Tags     []string `json:"tags,omitempty"`
	Note     []string `json:"note,omitempty"`
	Done     bool     `json:"done"`
	Interval string   `json:"interval,omitempty"`
}

// NewService builds a service wrapper over the journal store.
func NewService(st *store.Store, cfg *config.Config) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Service{Store: st, Config: cfg}
}

// ListSections returns summaries for every section in the journal.
func (s *Service) ListSections(ctx context.Context) ([]SectionSummary, error) {
	j, err := s.load()
	if err != nil {
		return nil, err
	}

	summaries := make([]SectionSummary, 0, len(j.Sections()))
	for _, sec := range j.Sections() {
		items := j.In(sec.Name)
		summary := SectionSummary{Name: sec.Name, EntryCount: len(items)}
		var last *item.Item
		for _, it := range items {
			if !it.Finished() {
				summary.OpenCount++
			}
			if last == nil || !it.Date.Before(last.Date) {
				last = it
			}
		}
		if last != nil {
			summary.LastUpdated = last.Date.Format(item.TimeFormat)
			summary.LatestEntryTitle = last.Title
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return strings.ToLower(summaries[i].Name) < strings.ToLower(summaries[j].Name)
	})
	return summaries, nil
}

// ListEntries gathers the entries of one section, oldest first.
func (s *Service) ListEntries(ctx context.Context, section string) ([]EntryDTO, error) {
	if section == "" {
		return nil, errors.New("section is required")
	}
	j, err := s.load()
	if err != nil {
		return nil, err
	}
	if !j.HasSection(section) && !filter.IsAll(section) {
		return nil, fmt.Errorf("%w: %q", journal.ErrInvalidSection, section)
	}
	items, err := filter.Apply(j.Items(), filter.Config{Section: section})
	if err != nil {
		return nil, err
	}
	return toDTOs(items), nil
}

// ListAllEntries returns every entry in the journal, oldest first.
func (s *Service) ListAllEntries(ctx context.Context) ([]EntryDTO, error) {
	j, err := s.load()
	if err != nil {
		return nil, err
	}
	items, err := filter.Apply(j.Items(), filter.Config{})
	if err != nil {
		return nil, err
	}
	return toDTOs(items), nil
}

// AddEntry appends a new entry using the supplied options.
func (s *Service) AddEntry(ctx context.Context, opts AddEntryOptions) (*EntryDTO, error) {
	if strings.TrimSpace(opts.Title) == "" {
		return nil, errors.New("title is required")
	}
	j, err := s.load()
	if err != nil {
		return nil, err
	}

	section := opts.Section
	if section == "" {
		section = s.Config.DefaultSection
	}
	add := journal.AddOptions{
		Note:        opts.Note,
		Timed:       opts.Timed,
		Autotag:     s.Config.Autotag,
		DefaultTags: s.Config.DefaultTags,
	}
	if opts.When != "" {
		when, err := timeutil.Resolve(opts.When, timeutil.ResolveOptions{Now: time.Now()})
		if err != nil {
			return nil, err
		}
		add.Date = when
	}

	it, _, err := j.AddItem(opts.Title, section, add)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Save(j); err != nil {
		return nil, err
	}
	dto := toDTO(it)
	return &dto, nil
}

// FinishEntry stamps an entry with a done tag, overwriting any previous
// close-out.
func (s *Service) FinishEntry(ctx context.Context, opts FinishEntryOptions) (*EntryDTO, error) {
	return s.withEntry(opts.ID, func(j *journal.Journal, it *item.Item) error {
		value := ""
		if !opts.Cancel {
			at := time.Now()
			switch {
			case opts.Took != "":
				d, err := timeutil.ParseWindow(opts.Took)
				if err != nil {
					return err
				}
				at = it.Date.Add(d)
			case opts.At != "":
				var err error
				at, err = timeutil.Resolve(opts.At, timeutil.ResolveOptions{Now: time.Now()})
				if err != nil {
					return err
				}
			}
			value = at.Format(item.TimeFormat)
		}
		title := tag.Set(it.Title, "done", tag.SetOptions{Value: value, Force: true})
		_, err := j.Update(it.ID, &item.Item{Title: title, Note: it.Note})
		return err
	})
}

// DeleteEntry removes an entry and returns its last state.
func (s *Service) DeleteEntry(ctx context.Context, id int64) (*EntryDTO, error) {
	j, err := s.load()
	if err != nil {
		return nil, err
	}
	it, ok := j.ItemByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", journal.ErrItemNotFound, id)
	}
	dto := toDTO(it)
	if _, err := j.Delete(id); err != nil {
		return nil, err
	}
	if err := s.Store.Save(j); err != nil {
		return nil, err
	}
	return &dto, nil
}

// MoveEntry relocates an entry to another section. With label set the
// title is stamped with the section it came from.
func (s *Service) MoveEntry(ctx context.Context, id int64, target string, label bool) (*EntryDTO, error) {
	if target == "" {
		return nil, errors.New("target section is required")
	}
	return s.withEntry(id, func(j *journal.Journal, it *item.Item) error {
		_, err := j.Move(it.ID, target, journal.MoveOptions{Label: label})
		return err
	})
}

// TagEntry sets a tag on an entry title, replacing the value of an
// existing tag of the same name.
func (s *Service) TagEntry(ctx context.Context, id int64, name, value string) (*EntryDTO, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "@")
	if name == "" {
		return nil, errors.New("tag name is required")
	}
	return s.withEntry(id, func(j *journal.Journal, it *item.Item) error {
		title := tag.Set(it.Title, name, tag.SetOptions{Value: value, Force: true})
		if title == it.Title {
			return nil
		}
		_, err := j.Update(it.ID, &item.Item{Title: title, Note: it.Note})
		return err
	})
}

// UntagEntry removes a tag from an entry title.
func (s *Service) UntagEntry(ctx context.Context, id int64, name string) (*EntryDTO, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "@")
	if name == "" {
		return nil, errors.New("tag name is required")
	}
	return s.withEntry(id, func(j *journal.Journal, it *item.Item) error {
		title := tag.Set(it.Title, name, tag.SetOptions{Remove: true})
		if title == it.Title {
			return nil
		}
		_, err := j.Update(it.ID, &item.Item{Title: title, Note: it.Note})
		return err
	})
}

// RetitleEntry rewrites the entry title.
func (s *Service) RetitleEntry(ctx context.Context, id int64, title string) (*EntryDTO, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("title is required")
	}
	return s.withEntry(id, func(j *journal.Journal, it *item.Item) error {
		_, err := j.Update(it.ID, &item.Item{Title: title, Note: it.Note})
		return err
	})
}

// AppendNote adds note lines under an entry, or with replace set, swaps
// the whole note out.
func (s *Service) AppendNote(ctx context.Context, id int64, lines []string, replace bool) (*EntryDTO, error) {
	if len(lines) == 0 && !replace {
		return nil, errors.New("note text is required")
	}
	return s.withEntry(id, func(j *journal.Journal, it *item.Item) error {
		note := lines
		if !replace {
			note = append(append([]string{}, it.Note...), lines...)
		}
		_, err := j.Update(it.ID, &item.Item{Note: note})
		return err
	})
}

// SearchEntries performs the filter engine's text search across titles
// and notes.
func (s *Service) SearchEntries(ctx context.Context, query string, limit int) ([]EntryDTO, error) {
	if strings.TrimSpace(query) == "" {
		return []EntryDTO{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	j, err := s.load()
	if err != nil {
		return nil, err
	}

	criteria := filter.Config{Search: query, Count: limit}
	if c, ok := filter.ParseCase(s.Config.Search.Case); ok {
		criteria.Case = c
	}
	items, err := filter.Apply(j.Items(), criteria)
	if err != nil {
		return nil, err
	}
	return toDTOs(items), nil
}

// EntryByID locates an entry and returns the DTO representation.
func (s *Service) EntryByID(ctx context.Context, id int64) (*EntryDTO, error) {
	j, err := s.load()
	if err != nil {
		return nil, err
	}
	it, ok := j.ItemByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", journal.ErrItemNotFound, id)
	}
	dto := toDTO(it)
	return &dto, nil
}

func (s *Service) load() (*journal.Journal, error) {
	if s.Store == nil {
		return nil, errors.New("store is not configured")
	}
	return s.Store.Load()
}

// withEntry loads the journal, applies one mutation to the entry, saves,
// and returns the entry's new state.
func (s *Service) withEntry(id int64, fn func(j *journal.Journal, it *item.Item) error) (*EntryDTO, error) {
	j, err := s.load()
	if err != nil {
		return nil, err
	}
	it, ok := j.ItemByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", journal.ErrItemNotFound, id)
	}
	if err := fn(j, it); err != nil {
		return nil, err
	}
	if err := s.Store.Save(j); err != nil {
		return nil, err
	}
	dto := toDTO(it)
	return &dto, nil
}

func toDTOs(items []*item.Item) []EntryDTO {
	out := make([]EntryDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toDTO(it))
	}
	return out
}

func toDTO(it *item.Item) EntryDTO {
	dto := EntryDTO{
		ID:       it.ID,
		Section:  it.Section,
		Title:    it.Title,
		Date:     it.Date.Format(item.TimeFormat),
		DateUnix: it.Date.Unix(),
		Tags:     it.Tags(),
		Note:     it.Note,
		Done:     it.Finished(),
	}
	if d, ok := it.Interval(); ok {
		dto.Interval = timeutil.FormatWindow(d)
	}
	return dto
}
