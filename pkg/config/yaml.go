package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToTOML serializes the configuration to TOML format.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	return buf.Bytes(), nil
}

// WithHeader prepends a comment header to serialized configuration.
func WithHeader(header string, body []byte) []byte {
	if header == "" {
		return body
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(body)

	return buf.Bytes()
}

// DecodeYAML decodes YAML into cfg. Keys absent from data keep their
// current values in cfg.
func DecodeYAML(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	cfg.ensureMaps()
	return nil
}

// DecodeTOML decodes TOML into cfg. Keys absent from data keep their
// current values in cfg.
func DecodeTOML(data []byte, cfg *Config) error {
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return fmt.Errorf("parse toml: %w", err)
	}
	cfg.ensureMaps()
	return nil
}

// FromYAML parses a configuration from YAML bytes on top of the defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := DecodeYAML(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromTOML parses a configuration from TOML bytes on top of the defaults.
func FromTOML(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := DecodeTOML(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) ensureMaps() {
	if c.SeverityOverrides == nil {
		c.SeverityOverrides = make(map[string]Severity)
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Packs = slices.Clone(c.Packs)
	clone.Disable = slices.Clone(c.Disable)
	clone.Ignore = slices.Clone(c.Ignore)
	clone.SeverityOverrides = maps.Clone(c.SeverityOverrides)

	return &clone
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
