package runner

import (
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// FileOutcome is the result of validating one file.
type FileOutcome struct {
	// Path is the absolute file path.
	Path string

	// Diagnostics are the problems remaining in the file, sorted by position.
	// After a fix run they describe the written content.
	Diagnostics []lint.Diagnostic

	// Content is the text Diagnostics refer to.
	Content []byte

	// Cached is true when Diagnostics came from the result cache.
	Cached bool

	// FixesApplied counts edits applied across all fix passes.
	FixesApplied int

	// Written is true when fixed content was written back.
	Written bool

	// Diff previews the fixes of a dry run. Nil when nothing would change.
	Diff *fix.Diff

	// Skipped is true when fixes were computed but not written.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// Error is set if the file could not be processed.
	Error error
}

// FixableCount returns the number of diagnostics offering a quick fix.
func (o *FileOutcome) FixableCount() int {
	count := 0
	for idx := range o.Diagnostics {
		if o.Diagnostics[idx].HasFix() {
			count++
		}
	}
	return count
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int
	FilesErrored    int
	FilesWithIssues int
	FilesModified   int
	FilesWithDiffs  int
	CacheHits       int

	DiagnosticsTotal   int
	DiagnosticsFixable int
	DiagnosticsFixed   int

	// DiagnosticsBySeverity maps severity names to counts.
	DiagnosticsBySeverity map[config.Severity]int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any error-severity diagnostic was found, or,
// when strict is set, any warning.
func (r *Result) HasFailures(strict bool) bool {
	if r == nil {
		return false
	}
	if r.Stats.DiagnosticsBySeverity[config.SeverityError] > 0 {
		return true
	}
	return strict && r.Stats.DiagnosticsBySeverity[config.SeverityWarning] > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

func newResult(capacity int) *Result {
	return &Result{
		Files: make([]FileOutcome, 0, capacity),
		Stats: Stats{DiagnosticsBySeverity: make(map[config.Severity]int)},
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.DiagnosticsFixed += outcome.FixesApplied

	if outcome.Cached {
		r.Stats.CacheHits++
	}
	if outcome.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Written {
		r.Stats.FilesModified++
	}
	if outcome.Diff.HasChanges() {
		r.Stats.FilesWithDiffs++
	}

	r.Stats.DiagnosticsTotal += len(outcome.Diagnostics)
	r.Stats.DiagnosticsFixable += outcome.FixableCount()
	if len(outcome.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, diag := range outcome.Diagnostics {
		r.Stats.DiagnosticsBySeverity[diag.Severity]++
	}
}
