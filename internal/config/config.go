// Package config handles global bibval configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/matsen/bibval/internal/matcher"
)

// Config represents configuration stored in ~/.config/bibval/config.yml.
type Config struct {
	// Mailto is a contact address sent to sources with polite pools (OpenAlex).
	Mailto string `yaml:"mailto,omitempty"`

	// TimeoutSeconds overrides the HTTP request timeout for source lookups.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	// ReportPath overrides where check runs are saved (default
	// $XDG_DATA_HOME/bibval/reports.db).
	ReportPath string `yaml:"report_path,omitempty"`

	// Thresholds overrides individual comparison thresholds. Zero-valued
	// fields fall back to the defaults.
	Thresholds *matcher.Thresholds `yaml:"thresholds,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "bibval"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// ReportFile is the default report database file name.
	ReportFile = "reports.db"
)

// Path returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/bibval/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// DefaultReportPath returns the default location of the report database.
// Respects XDG_DATA_HOME, defaults to ~/.local/share/bibval/reports.db.
func DefaultReportPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, ConfigDir, ReportFile)
}

// Load reads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func Load() (*Config, error) {
	path := Path()
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration, creating the config directory if needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// MatcherThresholds returns the comparison policy with any configured
// overrides applied on top of the defaults.
func (c *Config) MatcherThresholds() matcher.Thresholds {
	t := matcher.DefaultThresholds()
	if c.Thresholds == nil {
		return t
	}

	o := c.Thresholds
	if o.TitleMatch > 0 {
		t.TitleMatch = o.TitleMatch
	}
	if o.TitleWarning > 0 {
		t.TitleWarning = o.TitleWarning
	}
	if o.AuthorMatch > 0 {
		t.AuthorMatch = o.AuthorMatch
	}
	if o.LastNameMatch > 0 {
		t.LastNameMatch = o.LastNameMatch
	}
	if o.VenueMatch > 0 {
		t.VenueMatch = o.VenueMatch
	}
	if o.MinAuthorOverlap > 0 {
		t.MinAuthorOverlap = o.MinAuthorOverlap
	}
	if o.MaxYearDifference > 0 {
		t.MaxYearDifference = o.MaxYearDifference
	}
	if o.TitleWeight > 0 {
		t.TitleWeight = o.TitleWeight
	}
	if o.AuthorWeight > 0 {
		t.AuthorWeight = o.AuthorWeight
	}
	return t
}
