// Package conf contains runners for config inspection and setup.
package conf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"

	"tableflip.dev/trail/pkg/config"
	"tableflip.dev/trail/pkg/editor"
	"tableflip.dev/trail/pkg/journal"
	"tableflip.dev/trail/pkg/store"
)

// Show prints where the settings come from and what they resolve to.
type Show struct {
	Config *config.Config
	Store  *store.Store
}

// Do reports the effective configuration.
func (n *Show) Do(ctx context.Context) error {
	if n.Config == nil {
		return errors.New("can not show config, no config")
	}

	if override := os.Getenv("TRAIL_CONFIG_PATH"); override != "" {
		fmt.Println("TRAIL_CONFIG_PATH found on env, using", override)
	}
	if path := n.Config.Path(); path != "" {
		fmt.Println("config file:", path)
	} else {
		fmt.Println("config file: none, running on defaults")
	}

	if journalPath, err := n.Config.JournalPath(); err == nil {
		status := "missing"
		if _, err := os.Stat(journalPath); err == nil {
			status = "exists"
		}
		fmt.Printf("journal file: %s (%s)\n", journalPath, status)
	}
	if n.Config.Backup.History > 0 {
		if dir, err := n.Config.BackupDir(); err == nil {
			fmt.Printf("backups: %s, keeping %d\n", dir, n.Config.Backup.History)
		}
	} else {
		fmt.Println("backups: disabled")
	}

	if n.Store != nil {
		if j, err := n.Store.Load(); err == nil {
			fmt.Println("sections:")
			names := j.SectionNames()
			for _, name := range names {
				fmt.Printf("  %s (%d)\n", name, len(j.In(name)))
			}
			if len(names) == 0 {
				fmt.Println("  no sections")
			}
		}
	}

	out, err := n.Config.Render()
	if err != nil {
		return err
	}
	fmt.Println("\nsettings:")
	fmt.Print(string(out))
	return nil
}

// Init writes a default config file and creates the journal it points at.
type Init struct {
	// File overrides where the config file is written.
	File string
	// Section overrides the first section of a fresh journal.
	Section string
}

// Do creates the config file and journal, refusing to clobber either.
func (n *Init) Do(ctx context.Context) error {
	target := n.File
	if target == "" {
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("config: resolve home: %w", err)
		}
		target = filepath.Join(home, ".trailrc")
	}
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("config: %s already exists", target)
	}

	cfg := config.Default()
	out, err := cfg.Render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(target, out, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", target, err)
	}
	fmt.Fprintf(color.Output, "wrote %s\n", target)

	journalPath, err := cfg.JournalPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(journalPath); err == nil {
		fmt.Fprintf(color.Output, "journal %s already exists\n", journalPath)
		return nil
	}
	section := n.Section
	if section == "" {
		section = cfg.DefaultSection
	}
	if err := journal.Init(journalPath, section); err != nil {
		return err
	}
	fmt.Fprintf(color.Output, "created %s\n", journalPath)
	return nil
}

// Edit opens the config file in the editor and validates the result
// before writing it back.
type Edit struct {
	Config *config.Config
}

// Do round-trips the config file through the editor.
func (n *Edit) Do(ctx context.Context) error {
	if n.Config == nil {
		return errors.New("can not edit config, no config")
	}
	path := n.Config.Path()
	if path == "" {
		return errors.New("no config file found, run `trail config init` first")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	ed := editor.Editor{App: n.Config.EditorApp}
	edited, err := ed.Edit(string(raw))
	if err != nil {
		return err
	}
	if edited == string(raw) {
		fmt.Fprintln(color.Output, "no changes")
		return nil
	}

	// Parse the buffer before touching the real file so a yaml typo
	// cannot take the config down.
	tmp, err := os.CreateTemp("", "trailrc-*.yaml")
	if err != nil {
		return fmt.Errorf("config: temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := tmp.WriteString(edited); err != nil {
		tmp.Close()
		return fmt.Errorf("config: temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("config: temp file: %w", err)
	}
	if _, err := config.Load(tmpPath); err != nil {
		return fmt.Errorf("not saved: %w", err)
	}

	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	fmt.Fprintf(color.Output, "updated %s\n", path)
	return nil
}
