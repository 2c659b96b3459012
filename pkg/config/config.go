// Package config loads trail settings from a .trailrc file, the
// environment, and defaults, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"tableflip.dev/trail/pkg/autotag"
)

const (
	DefaultJournal = "~/trail.md"
	DefaultSection = "Currently"
	DefaultArchive = "Archive"
	DefaultMarker  = "flagged"

	defaultBackupDir = "~/.trail/backup"
	defaultHistory   = 25
	defaultCase      = "smart"
)

// Config is the full settings model. Field names mirror the keys of the
// .trailrc yaml file.
type Config struct {
	JournalFile    string            `mapstructure:"journal_file" yaml:"journal_file"`
	DefaultSection string            `mapstructure:"default_section" yaml:"default_section"`
	ArchiveSection string            `mapstructure:"archive_section" yaml:"archive_section"`
	MarkerTag      string            `mapstructure:"marker_tag" yaml:"marker_tag"`
	DefaultTags    []string          `mapstructure:"default_tags" yaml:"default_tags,omitempty"`
	EditorApp      string            `mapstructure:"editor_app" yaml:"editor_app,omitempty"`
	Paginate       bool              `mapstructure:"paginate" yaml:"paginate"`
	Search         Search            `mapstructure:"search" yaml:"search"`
	Autotag        autotag.Rules     `mapstructure:"autotag" yaml:"autotag,omitempty"`
	Backup         Backup            `mapstructure:"backup" yaml:"backup"`
	Views          map[string]View   `mapstructure:"views" yaml:"views,omitempty"`
	Templates      map[string]string `mapstructure:"templates" yaml:"templates,omitempty"`

	path string
}

// Search groups the search settings.
type Search struct {
	Case string `mapstructure:"case" yaml:"case"`
}

// Backup groups the undo history settings.
type Backup struct {
	Dir     string `mapstructure:"dir" yaml:"dir"`
	History int    `mapstructure:"history" yaml:"history"`
}

// Default returns the settings used when no config file exists. It is also
// what `trail config init` writes out.
func Default() *Config {
	return &Config{
		JournalFile:    DefaultJournal,
		DefaultSection: DefaultSection,
		ArchiveSection: DefaultArchive,
		MarkerTag:      DefaultMarker,
		Search:         Search{Case: defaultCase},
		Backup:         Backup{Dir: defaultBackupDir, History: defaultHistory},
	}
}

// Load reads the config. An explicit file wins; otherwise the search walks
// TRAIL_CONFIG_PATH, the working directory, and the home directory. A
// missing file is not an error, it just means defaults.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(".trailrc")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TRAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		if override := os.Getenv("TRAIL_CONFIG_PATH"); override != "" {
			v.AddConfigPath(override)
		}
		v.AddConfigPath("./")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	c.path = v.ConfigFileUsed()
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("journal_file", DefaultJournal)
	v.SetDefault("default_section", DefaultSection)
	v.SetDefault("archive_section", DefaultArchive)
	v.SetDefault("marker_tag", DefaultMarker)
	v.SetDefault("search.case", defaultCase)
	v.SetDefault("backup.dir", defaultBackupDir)
	v.SetDefault("backup.history", defaultHistory)
}

// Path reports the config file the settings were read from, empty when
// running on defaults.
func (c *Config) Path() string {
	return c.path
}

// JournalPath expands the configured journal file to an absolute path.
func (c *Config) JournalPath() (string, error) {
	path, err := homedir.Expand(c.JournalFile)
	if err != nil {
		return "", fmt.Errorf("config: expand journal path: %w", err)
	}
	return path, nil
}

// BackupDir expands the configured backup directory.
func (c *Config) BackupDir() (string, error) {
	dir, err := homedir.Expand(c.Backup.Dir)
	if err != nil {
		return "", fmt.Errorf("config: expand backup dir: %w", err)
	}
	return dir, nil
}

// Render serializes the settings as yaml, for `config init` and
// `config show`.
func (c *Config) Render() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: render: %w", err)
	}
	return out, nil
}
