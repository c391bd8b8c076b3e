// Package config defines core configuration types for adoclint.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ParseSeverity parses a severity name, case-insensitively.
// "warn" is accepted as an alias for "warning".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return "", fmt.Errorf("unknown severity %q; valid severities: error, warning, info", s)
	}
}

// IsValid returns true if the severity is one of the known levels.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// Rank orders severities: error > warning > info > unknown.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatSARIF OutputFormat = "sarif"
	FormatDiff  OutputFormat = "diff"
)

// DefaultPacks returns the rule packs enabled when none are configured.
func DefaultPacks() []string {
	return []string{"core"}
}

// Config is the root configuration structure for adoclint.
type Config struct {
	// Packs lists the rule packs to load, in order (e.g. "core", "extended").
	Packs []string `yaml:"packs" toml:"packs"`

	// Disable contains rule codes to remove after packs are loaded.
	Disable []string `yaml:"disable" toml:"disable"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore" toml:"ignore"`

	// SeverityOverrides maps rule codes to the severity to report them at.
	SeverityOverrides map[string]Severity `yaml:"severity_overrides" toml:"severity_overrides"`

	// Cache enables the on-disk result cache.
	Cache bool `yaml:"cache" toml:"cache"`

	// CLI-level options (not persisted to config files).

	// Fix enables applying the first quick fix of each diagnostic.
	Fix bool `yaml:"-" toml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// Strict treats warnings as failures for the exit code.
	Strict bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Packs:             DefaultPacks(),
		Disable:           nil,
		Ignore:            nil,
		SeverityOverrides: make(map[string]Severity),
		Cache:             true,
		Format:            FormatText,
		Jobs:              0, // 0 means use GOMAXPROCS
	}
}

// SeverityFor returns the configured severity for a rule code, or def when
// no override exists.
func (c *Config) SeverityFor(code string, def Severity) Severity {
	if c == nil {
		return def
	}
	if s, ok := c.SeverityOverrides[code]; ok && s.IsValid() {
		return s
	}
	return def
}
