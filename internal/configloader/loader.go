// Package configloader discovers, decodes, layers and validates adoclint
// configuration.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/adoclint/pkg/config"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts.
	// Defaults to the current working directory.
	WorkingDir string

	// ExplicitPath is a config file from --config. When set, project
	// discovery is skipped.
	ExplicitPath string

	// IgnoreUserConfig skips the user-level config.
	IgnoreUserConfig bool

	// IgnoreEnv skips ADOCLINT_* environment variables.
	IgnoreEnv bool

	// Overrides holds command-line flags. They take highest precedence.
	Overrides *Overrides

	// Known is used to warn about unknown packs and rule codes.
	Known Known
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final configuration.
	Config *config.Config

	// Paths are the discovered configuration files.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were applied, in order.
	LoadedFrom []string

	// Warnings are non-fatal validation findings.
	Warnings []string
}

// Load resolves the configuration. Precedence, highest first:
//  1. command-line overrides
//  2. ADOCLINT_* environment variables
//  3. the explicit config file, or else the nearest project config
//  4. the user config ($XDG_CONFIG_HOME/adoclint/config.yaml)
//  5. defaults
//
// Each file only changes the keys it sets.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths := &ConfigPaths{Explicit: opts.ExplicitPath}
	if opts.ExplicitPath == "" {
		discovered, err := DiscoverPaths(ctx, workDir)
		if err != nil {
			return nil, fmt.Errorf("discover paths: %w", err)
		}
		paths = discovered
	} else if !opts.IgnoreUserConfig {
		paths.User = findUserConfig()
	}

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []string{paths.User, paths.Project, paths.Explicit}
	if opts.IgnoreUserConfig {
		layers[0] = ""
	}

	for _, path := range layers {
		if path == "" {
			continue
		}
		if err := LoadFile(path, cfg); err != nil {
			return nil, err
		}
		result.LoadedFrom = append(result.LoadedFrom, path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	opts.Overrides.apply(cfg)

	validation := Validate(cfg, opts.Known)
	if err := validation.Err(); err != nil {
		return nil, err
	}
	for idx := range validation.Warnings {
		result.Warnings = append(result.Warnings, validation.Warnings[idx].Error())
	}

	result.Config = cfg
	return result, nil
}

// LoadFile decodes the config file at path on top of cfg, choosing TOML or
// YAML by extension.
func LoadFile(path string, cfg *config.Config) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	if IsTOMLConfig(path) {
		err = config.DecodeTOML(content, cfg)
	} else {
		err = config.DecodeYAML(content, cfg)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return nil
}
