package configloader

import (
	"slices"

	"github.com/yaklabco/adoclint/pkg/config"
)

// Overrides carries settings from command-line flags. Zero values leave the
// loaded configuration untouched.
type Overrides struct {
	// Packs are loaded in addition to the configured packs.
	Packs []string

	// Disable adds rule codes to the configured disable list.
	Disable []string

	// Ignore adds globs to the configured ignore list.
	Ignore []string

	Fix     bool
	Strict  bool
	NoCache bool
	Jobs    int
	Format  config.OutputFormat
}

// apply merges o into cfg. List flags extend the configured lists without
// duplicating entries.
func (o *Overrides) apply(cfg *config.Config) {
	if o == nil {
		return
	}

	cfg.Packs = appendUnique(cfg.Packs, o.Packs...)
	cfg.Disable = appendUnique(cfg.Disable, o.Disable...)
	cfg.Ignore = appendUnique(cfg.Ignore, o.Ignore...)

	if o.Fix {
		cfg.Fix = true
	}
	if o.Strict {
		cfg.Strict = true
	}
	if o.NoCache {
		cfg.Cache = false
	}
	if o.Jobs != 0 {
		cfg.Jobs = o.Jobs
	}
	if o.Format != "" {
		cfg.Format = o.Format
	}
}

func appendUnique(list []string, values ...string) []string {
	for _, value := range values {
		if !slices.Contains(list, value) {
			list = append(list, value)
		}
	}
	return list
}
