// Package journal owns the content model of a trail file: ordered items,
// named sections, and the opaque text around them, plus the parser and
// serializer that move between the model and the on-disk format.
package journal

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"tableflip.dev/trail/pkg/item"
)

var (
	// ErrItemNotFound reports a stale ID passed to update, move, or delete.
	ErrItemNotFound = errors.New("journal: item not found")
	// ErrInvalidSection reports a section lookup miss.
	ErrInvalidSection = errors.New("journal: invalid section")
	// ErrInternal reports an invariant violation inside a bulk operation.
	ErrInternal = errors.New("journal: internal error")
)

// Uncategorized is the section auto-created for entries that appear before
// any header.
const Uncategorized = "Uncategorized"

// Section is a named partition of items. Original holds the exact header
// line as read from the file, empty when the section was created in memory
// and its header must be synthesized on write.
type Section struct {
	Name     string
	Original string
}

// Header renders the section's file header line.
func (s *Section) Header() string {
	if s.Original != "" {
		return s.Original
	}
	return s.Name + ":"
}

// Journal is the in-memory content store for one trail file. It owns every
// item and section between a load and the following save; nothing here is
// safe for concurrent mutation.
type Journal struct {
	path      string
	items     []*item.Item
	sections  []*Section
	byName    map[string]*Section
	leading   []string
	trailing  []string
	nextID    int64
	observers []Observer
}

// New returns an empty journal.
func New() *Journal {
	return &Journal{
		byName: make(map[string]*Section),
		nextID: 1,
	}
}

// Path returns the file this journal was loaded from, empty for an
// in-memory journal.
func (j *Journal) Path() string {
	return j.path
}

// Items returns every item in file order.
func (j *Journal) Items() []*item.Item {
	out := make([]*item.Item, len(j.items))
	copy(out, j.items)
	return out
}

// In returns the items of one section in file order. The pseudo-section
// "All" and the empty string return everything.
func (j *Journal) In(section string) []*item.Item {
	if isAll(section) {
		return j.Items()
	}
	var out []*item.Item
	for _, it := range j.items {
		if strings.EqualFold(it.Section, section) {
			out = append(out, it)
		}
	}
	return out
}

// Len returns the number of items.
func (j *Journal) Len() int {
	return len(j.items)
}

// Sections returns the section registry in insertion order.
func (j *Journal) Sections() []*Section {
	out := make([]*Section, len(j.sections))
	copy(out, j.sections)
	return out
}

// SectionNames returns the section names in insertion order.
func (j *Journal) SectionNames() []string {
	names := make([]string, 0, len(j.sections))
	for _, s := range j.sections {
		names = append(names, s.Name)
	}
	return names
}

// Section finds a section by name, case-insensitive.
func (j *Journal) Section(name string) (*Section, bool) {
	s, ok := j.byName[strings.ToLower(name)]
	return s, ok
}

// HasSection reports whether a section exists, case-insensitive.
func (j *Journal) HasSection(name string) bool {
	_, ok := j.Section(name)
	return ok
}

// AddSection creates a section if it does not exist and returns it. Names
// created here take a capitalized first letter as their canonical form.
// The reserved pseudo-section "All" cannot be created.
func (j *Journal) AddSection(name string) (*Section, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidSection)
	}
	if isAll(name) {
		return nil, fmt.Errorf("%w: %q is reserved", ErrInvalidSection, name)
	}
	if s, ok := j.Section(name); ok {
		return s, nil
	}
	s := &Section{Name: capFirst(name)}
	j.register(s)
	return s, nil
}

// register adds a parsed or created section to the registry, first name
// wins on case-insensitive collisions.
func (j *Journal) register(s *Section) *Section {
	key := strings.ToLower(s.Name)
	if existing, ok := j.byName[key]; ok {
		return existing
	}
	j.sections = append(j.sections, s)
	j.byName[key] = s
	return s
}

// ItemByID finds an item by its journal-assigned ID.
func (j *Journal) ItemByID(id int64) (*item.Item, bool) {
	for _, it := range j.items {
		if it.ID == id {
			return it, true
		}
	}
	return nil, false
}

// attach assigns the next ID and appends the item to the store. The item's
// section must already be registered.
func (j *Journal) attach(it *item.Item) *item.Item {
	it.ID = j.nextID
	j.nextID++
	j.items = append(j.items, it)
	return it
}

// Leading returns the verbatim lines preserved before the first section
// header.
func (j *Journal) Leading() []string {
	out := make([]string, len(j.leading))
	copy(out, j.leading)
	return out
}

// Trailing returns the verbatim unparsed lines preserved after the last
// parseable content.
func (j *Journal) Trailing() []string {
	out := make([]string, len(j.trailing))
	copy(out, j.trailing)
	return out
}

func isAll(section string) bool {
	return section == "" || strings.EqualFold(section, "All")
}

// capFirst upper-cases the first rune, leaving the rest alone.
func capFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
