package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Syntax names the notation the edit and display formats are written in.
type Syntax string

const (
	SyntaxLayout   Syntax = "layout"   // Go reference layouts
	SyntaxStrftime Syntax = "strftime" // %Y-%m-%d
	SyntaxStyle    Syntax = "style"    // iso, short, medium, long, full
)

// ParseConfig controls how typed text is turned into dates.
type ParseConfig struct {
	Relative   bool     `yaml:"relative"`
	RejectPast bool     `yaml:"reject_past"`
	Layouts    []string `yaml:"layouts,omitempty"`
}

// LogConfig mirrors the LOG_LEVEL and LOG_FORMAT environment variables.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Config is the contents of config.yaml.
type Config struct {
	Syntax        Syntax      `yaml:"syntax"`
	EditFormat    string      `yaml:"edit_format"`
	DisplayFormat string      `yaml:"display_format"`
	Location      string      `yaml:"location,omitempty"`
	Parse         ParseConfig `yaml:"parse"`
	Log           LogConfig   `yaml:"log,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Syntax:        SyntaxLayout,
		EditFormat:    "2006-01-02",
		DisplayFormat: "Mon, Jan 2, 2006",
		Location:      "Local",
		Parse: ParseConfig{
			Relative: true,
			Layouts:  []string{"2006-01-02", "01/02/2006", "Jan 2, 2006"},
		},
	}
}

// Load reads the config file at path. A missing file yields Default().
// Fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes cfg to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks that the config can be turned into a working date field.
func (c *Config) Validate() error {
	switch c.Syntax {
	case SyntaxLayout, SyntaxStrftime, SyntaxStyle:
	default:
		return fmt.Errorf("unknown syntax %q (want layout, strftime or style)", c.Syntax)
	}

	if strings.TrimSpace(c.EditFormat) == "" {
		return fmt.Errorf("edit_format is required")
	}
	if strings.TrimSpace(c.DisplayFormat) == "" {
		return fmt.Errorf("display_format is required")
	}

	if _, err := c.LoadLocation(); err != nil {
		return err
	}

	return nil
}

// LoadLocation resolves the configured location. Empty means local time.
func (c *Config) LoadLocation() (*time.Location, error) {
	if c.Location == "" || c.Location == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("unknown location %q: %w", c.Location, err)
	}
	return loc, nil
}
