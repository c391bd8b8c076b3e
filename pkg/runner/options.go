// Package runner validates many AsciiDoc files concurrently with a shared
// lint.Checker.
package runner

import (
	"github.com/yaklabco/adoclint/pkg/cache"
	"github.com/yaklabco/adoclint/pkg/config"
)

// DefaultMaxFixPasses bounds the fix/re-validate loop for one file.
const DefaultMaxFixPasses = 10

// Options controls multi-file validation.
type Options struct {
	// Paths are the user-specified files or directories.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir resolves relative Paths and anchors ExcludeGlobs.
	// If empty, the process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// treated as AsciiDoc. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip matching files or directories. Patterns use "/" as
	// the separator and support "**".
	ExcludeGlobs []string

	// Jobs caps concurrent file workers. 0 or negative means GOMAXPROCS.
	Jobs int

	// Fix applies the first quick fix of each diagnostic and writes the
	// result back.
	Fix bool

	// DryRun runs the fix loop without writing. Each changed file gets a
	// Diff and keeps the diagnostics of its unmodified content.
	DryRun bool

	// Backup keeps a copy of a file's original content before it is fixed.
	Backup bool

	// MaxFixPasses bounds re-validation after fixing. Defaults to
	// DefaultMaxFixPasses.
	MaxFixPasses int

	// Config supplies severity overrides.
	Config *config.Config

	// Cache stores diagnostics by content. Nil disables caching.
	Cache *cache.Cache
}

// DefaultExtensions returns the AsciiDoc file extensions.
func DefaultExtensions() []string {
	return []string{".adoc", ".asciidoc", ".asc", ".ad"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveMaxFixPasses() int {
	if o.MaxFixPasses <= 0 {
		return DefaultMaxFixPasses
	}
	return o.MaxFixPasses
}
