package commands

import (
	"testing"
)

func TestNewRegistersEveryVerb(t *testing.T) {
	root := New()
	if root.Use != "trail" {
		t.Fatalf("root use = %q, want trail", root.Use)
	}

	want := []string{
		"add", "finish", "cancel", "again", "note", "tag", "untag",
		"flag", "unflag", "move", "archive", "rotate", "show", "recent",
		"today", "yesterday", "on", "since", "grep", "calendar", "view",
		"views", "sections", "tags", "strike", "edit", "export", "import",
		"watch", "undo", "redo", "config", "mcp", "completion", "version",
	}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil {
			t.Errorf("command %q: %v", name, err)
			continue
		}
		if cmd == root {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	root := New()
	for _, name := range []string{"file", "config"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
}

func TestAliases(t *testing.T) {
	root := New()
	for alias, want := range map[string]string{
		"now":    "add",
		"did":    "add",
		"done":   "finish",
		"resume": "again",
		"ls":     "show",
		"search": "grep",
		"cal":    "calendar",
		"rm":     "strike",
	} {
		cmd, _, err := root.Find([]string{alias})
		if err != nil {
			t.Fatalf("alias %q: %v", alias, err)
		}
		if got := cmd.Name(); got != want {
			t.Errorf("alias %q resolved to %q, want %q", alias, got, want)
		}
	}
}

func TestConfigSubcommands(t *testing.T) {
	root := New()
	for _, path := range [][]string{
		{"config", "show"},
		{"config", "init"},
		{"config", "edit"},
		{"sections", "add"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil {
			t.Fatalf("find %v: %v", path, err)
		}
		if cmd.Name() != path[len(path)-1] {
			t.Errorf("find %v landed on %q", path, cmd.Name())
		}
	}
}
