package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/trail/pkg/tag"
)

const sample = `journal_file: /tmp/work.md
marker_tag: starred
default_tags:
  - daily
autotag:
  whitelist:
    - urgent
  synonyms:
    meeting:
      - standup
      - sync
views:
  flagged:
    tags:
      - flagged
    bool: or
    count: 10
  broken:
    tags:
      - x
    bool: sideways
`

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ".trailrc")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.JournalFile != "/tmp/work.md" {
		t.Errorf("JournalFile = %q, want %q", c.JournalFile, "/tmp/work.md")
	}
	if c.MarkerTag != "starred" {
		t.Errorf("MarkerTag = %q, want %q", c.MarkerTag, "starred")
	}
	// Absent keys fall back to defaults.
	if c.DefaultSection != DefaultSection {
		t.Errorf("DefaultSection = %q, want %q", c.DefaultSection, DefaultSection)
	}
	if c.Backup.History != defaultHistory {
		t.Errorf("Backup.History = %d, want %d", c.Backup.History, defaultHistory)
	}
	if len(c.DefaultTags) != 1 || c.DefaultTags[0] != "daily" {
		t.Errorf("DefaultTags = %v, want [daily]", c.DefaultTags)
	}
	if len(c.Autotag.Whitelist) != 1 || c.Autotag.Whitelist[0] != "urgent" {
		t.Errorf("Autotag.Whitelist = %v, want [urgent]", c.Autotag.Whitelist)
	}
	if got := c.Autotag.Synonyms["meeting"]; len(got) != 2 {
		t.Errorf("Autotag.Synonyms[meeting] = %v, want two triggers", got)
	}

	path, err := c.JournalPath()
	if err != nil {
		t.Fatalf("JournalPath failed: %v", err)
	}
	if path != "/tmp/work.md" {
		t.Errorf("JournalPath = %q, want %q", path, "/tmp/work.md")
	}
}

func TestLoadConfigPathEnv(t *testing.T) {
	path := writeConfig(t)
	t.Setenv("TRAIL_CONFIG_PATH", filepath.Dir(path))

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.MarkerTag != "starred" {
		t.Errorf("MarkerTag = %q, want %q", c.MarkerTag, "starred")
	}
	if c.Path() != path {
		t.Errorf("Path = %q, want %q", c.Path(), path)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load with a missing explicit file should fail")
	}
}

func TestViews(t *testing.T) {
	c, err := Load(writeConfig(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	view, err := c.View("Flagged")
	if err != nil {
		t.Fatalf("View lookup failed: %v", err)
	}
	criteria, err := view.Criteria()
	if err != nil {
		t.Fatalf("Criteria failed: %v", err)
	}
	if criteria.TagFilter == nil {
		t.Fatal("view tags should land in TagFilter")
	}
	if criteria.TagFilter.Bool != tag.Or {
		t.Errorf("TagFilter.Bool = %q, want %q", criteria.TagFilter.Bool, tag.Or)
	}
	if criteria.Count != 10 {
		t.Errorf("Count = %d, want 10", criteria.Count)
	}

	if _, err := c.View("standup"); !errors.Is(err, ErrUnknownView) {
		t.Errorf("View(standup) = %v, want ErrUnknownView", err)
	}

	broken, err := c.View("broken")
	if err != nil {
		t.Fatalf("View lookup failed: %v", err)
	}
	if _, err := broken.Criteria(); err == nil {
		t.Error("Criteria with a bad bool should fail")
	}
}

func TestSuggestViews(t *testing.T) {
	c := &Config{Views: map[string]View{
		"flagged": {},
		"standup": {},
		"overdue": {},
	}}

	got := c.SuggestViews("flaged")
	if len(got) == 0 || got[0] != "flagged" {
		t.Errorf("SuggestViews(flaged) = %v, want flagged first", got)
	}
	if got := c.SuggestViews("zzz"); len(got) != 0 {
		t.Errorf("SuggestViews(zzz) = %v, want none", got)
	}
}

func TestRenderDefaults(t *testing.T) {
	out, err := Default().Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for _, want := range []string{
		"journal_file: ~/trail.md",
		"default_section: Currently",
		"marker_tag: flagged",
		"history: 25",
	} {
		if !strings.Contains(string(out), want) {
			t.Errorf("rendered config missing %q:\n%s", want, out)
		}
	}
}
