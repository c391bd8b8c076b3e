package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/adoclint/pkg/analysis"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// JSONVersion is the version of the JSON output layout.
const JSONVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`

	// Breakdown is set when Options.Breakdown is.
	Breakdown *analysis.Report `json:"breakdown,omitempty"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string            `json:"path"`
	Diagnostics []lint.Diagnostic `json:"diagnostics"`
	Modified    bool              `json:"modified,omitempty"`
	Skipped     string            `json:"skipped,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int                     `json:"filesChecked"`
	FilesWithIssues int                     `json:"filesWithIssues"`
	FilesModified   int                     `json:"filesModified"`
	FilesErrored    int                     `json:"filesErrored"`
	TotalIssues     int                     `json:"totalIssues"`
	Fixable         int                     `json:"fixable"`
	Fixed           int                     `json:"fixed"`
	BySeverity      map[config.Severity]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := BuildJSONOutput(result, r.opts.WorkingDir)
	if r.opts.Breakdown {
		output.Breakdown = analysis.Analyze(result, analysis.Options{
			SortBy:     analysis.SortByCount,
			WorkingDir: r.opts.WorkingDir,
		})
	}

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

// BuildJSONOutput converts result into the JSON layout.
func BuildJSONOutput(result *runner.Result, workDir string) *JSONOutput {
	output := &JSONOutput{
		Version: JSONVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{BySeverity: make(map[config.Severity]int)},
	}
	if result == nil {
		return output
	}

	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:        displayPath(file.Path, workDir),
			Diagnostics: file.Diagnostics,
			Modified:    file.Written,
		}
		if entry.Diagnostics == nil {
			entry.Diagnostics = []lint.Diagnostic{}
		}
		if file.Skipped {
			entry.Skipped = file.SkipReason
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		}
		output.Files = append(output.Files, entry)
	}

	stats := result.Stats
	output.Summary.FilesChecked = stats.FilesProcessed
	output.Summary.FilesWithIssues = stats.FilesWithIssues
	output.Summary.FilesModified = stats.FilesModified
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.TotalIssues = stats.DiagnosticsTotal
	output.Summary.Fixable = stats.DiagnosticsFixable
	output.Summary.Fixed = stats.DiagnosticsFixed
	for sev, count := range stats.DiagnosticsBySeverity {
		output.Summary.BySeverity[sev] = count
	}

	return output
}
