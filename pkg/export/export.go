// Package export renders filtered journal items for other tools. Items
// arrive in final display order and renderers keep that order.
package export

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"tableflip.dev/trail/pkg/item"
)

// ErrUnknownFormat reports a renderer lookup miss.
var ErrUnknownFormat = errors.New("export: unknown format")

// Variables carries the page context a renderer may use.
type Variables struct {
	// Title is the page or listing title.
	Title string
	// Config is the options configuration the listing was produced with.
	Config map[string]any
	// TotalTime sums the defined intervals of the rendered items.
	TotalTime time.Duration
}

// Renderer turns an ordered item list into output text.
type Renderer interface {
	Render(items []*item.Item, vars Variables) (string, error)
}

var renderers = map[string]Renderer{}

// Register adds a renderer under a format name, replacing any previous
// registration.
func Register(name string, r Renderer) {
	renderers[name] = r
}

// Get looks a renderer up by format name.
func Get(name string) (Renderer, error) {
	r, ok := renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return r, nil
}

// Names lists the registered format names in sorted order.
func Names() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
