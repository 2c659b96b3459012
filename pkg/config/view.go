package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"tableflip.dev/trail/pkg/filter"
	"tableflip.dev/trail/pkg/tag"
)

// ErrUnknownView reports a view lookup miss.
var ErrUnknownView = errors.New("config: unknown view")

// View is a saved filter preset. Field names mirror the keys under views:
// in the .trailrc yaml file.
type View struct {
	Section    string   `mapstructure:"section" yaml:"section,omitempty"`
	Tags       []string `mapstructure:"tags" yaml:"tags,omitempty"`
	Bool       string   `mapstructure:"bool" yaml:"bool,omitempty"`
	Search     string   `mapstructure:"search" yaml:"search,omitempty"`
	Case       string   `mapstructure:"case" yaml:"case,omitempty"`
	Count      int      `mapstructure:"count" yaml:"count,omitempty"`
	Age        string   `mapstructure:"age" yaml:"age,omitempty"`
	OnlyTimed  bool     `mapstructure:"only_timed" yaml:"only_timed,omitempty"`
	Unfinished bool     `mapstructure:"unfinished" yaml:"unfinished,omitempty"`
	Before     string   `mapstructure:"before" yaml:"before,omitempty"`
	After      string   `mapstructure:"after" yaml:"after,omitempty"`
	Today      bool     `mapstructure:"today" yaml:"today,omitempty"`
	Yesterday  bool     `mapstructure:"yesterday" yaml:"yesterday,omitempty"`
	Not        bool     `mapstructure:"not" yaml:"not,omitempty"`
}

// Criteria converts the view into a filter request. The view's tags land
// in the secondary TagFilter slot so a --tag flag given alongside the view
// still applies on its own.
func (v View) Criteria() (filter.Config, error) {
	c, ok := filter.ParseCase(v.Case)
	if !ok {
		return filter.Config{}, fmt.Errorf("config: unknown search case %q", v.Case)
	}
	cfg := filter.Config{
		Section:    v.Section,
		Unfinished: v.Unfinished,
		Search:     v.Search,
		Case:       c,
		OnlyTimed:  v.OnlyTimed,
		Before:     v.Before,
		After:      v.After,
		Today:      v.Today,
		Yesterday:  v.Yesterday,
		Not:        v.Not,
		Count:      v.Count,
		Age:        filter.ParseAge(v.Age),
	}
	if len(v.Tags) > 0 {
		b, err := tag.ParseBool(v.Bool)
		if err != nil {
			return filter.Config{}, fmt.Errorf("config: %w", err)
		}
		cfg.TagFilter = &filter.TagFilter{Tags: v.Tags, Bool: b}
	}
	return cfg, nil
}

// View looks a saved view up by name, case-insensitively.
func (c *Config) View(name string) (View, error) {
	for key, view := range c.Views {
		if strings.EqualFold(key, name) {
			return view, nil
		}
	}
	return View{}, fmt.Errorf("%w: %q", ErrUnknownView, name)
}

// ViewNames lists the saved view names in sorted order.
func (c *Config) ViewNames() []string {
	names := make([]string, 0, len(c.Views))
	for name := range c.Views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SuggestViews ranks saved view names against a missed lookup, best match
// first.
func (c *Config) SuggestViews(name string) []string {
	matches := fuzzy.Find(name, c.ViewNames())
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Str)
	}
	return names
}
