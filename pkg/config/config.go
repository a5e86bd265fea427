// Package config defines core configuration types for golmm.
// These types are pure data structures; loading and merging live in the
// configloader package.
package config

import "github.com/yaklabco/golmm/pkg/lmm"

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the output format is one of the known formats.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for golmm.
type Config struct {
	// SpaceWidth is the indent weight of one leading space.
	SpaceWidth int `yaml:"space_width" toml:"space_width"`

	// TabWidth is the indent weight of one leading tab.
	TabWidth int `yaml:"tab_width" toml:"tab_width"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore" toml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// Strict treats warnings as errors for exit-code purposes.
	Strict bool `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// DetectLang enables language detection for code blocks without a lang
	// param when rendering.
	DetectLang bool `yaml:"-" toml:"-"`
}

// Default returns a configuration with the standard indent weights and text
// output.
func Default() *Config {
	return &Config{
		SpaceWidth: 1,
		TabWidth:   2,
		Format:     FormatText,
	}
}

// ParseOptions converts the configured indent weights into parser options.
func (c *Config) ParseOptions() lmm.ParseOptions {
	return lmm.ParseOptions{
		SpaceWidth: c.SpaceWidth,
		TabWidth:   c.TabWidth,
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Ignore != nil {
		clone.Ignore = make([]string, len(c.Ignore))
		copy(clone.Ignore, c.Ignore)
	}
	return &clone
}
