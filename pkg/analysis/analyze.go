package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by issue count, highest first.
	SortByCount SortField = "count"
	// SortByAlpha sorts by code or path.
	SortByAlpha SortField = "alpha"
	// SortBySeverity sorts errors first, then warnings, then issue count.
	SortBySeverity SortField = "severity"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// Options configures Analyze.
type Options struct {
	// SortBy orders ByCode and ByFile. Ties fall back to alphabetical order.
	SortBy SortField

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{SortBy: SortByCount}
}

func (c *Counts) add(diag *lint.Diagnostic) {
	c.Issues++
	switch diag.Severity {
	case config.SeverityError:
		c.Errors++
	case config.SeverityWarning:
		c.Warnings++
	case config.SeverityInfo:
		c.Infos++
	}
	if len(diag.Fixes) > 0 {
		c.Fixable++
	}
}

// relativePath converts path to one relative to workDir when it lies
// inside it.
func relativePath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// Analyze transforms a runner.Result into a Report in a single pass over
// the diagnostics.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		ByCode: make([]CodeAnalysis, 0),
		ByFile: make([]FileAnalysis, 0),
	}
	if result == nil {
		return report
	}

	codes := make(map[string]*CodeAnalysis)
	var codeOrder []string

	for _, file := range result.Files {
		report.Totals.Files++
		if len(file.Diagnostics) == 0 {
			continue
		}
		report.Totals.FilesWithIssues++

		path := relativePath(file.Path, opts.WorkingDir)
		fileEntry := FileAnalysis{Path: path, Codes: make([]string, 0)}

		for idx := range file.Diagnostics {
			diag := &file.Diagnostics[idx]

			report.Totals.add(diag)
			fileEntry.add(diag)

			entry, ok := codes[diag.Code]
			if !ok {
				entry = &CodeAnalysis{Code: diag.Code, Files: make([]string, 0)}
				codes[diag.Code] = entry
				codeOrder = append(codeOrder, diag.Code)
			}
			entry.add(diag)

			if !slices.Contains(entry.Files, path) {
				entry.Files = append(entry.Files, path)
			}
			if !slices.Contains(fileEntry.Codes, diag.Code) {
				fileEntry.Codes = append(fileEntry.Codes, diag.Code)
			}
		}

		slices.Sort(fileEntry.Codes)
		report.ByFile = append(report.ByFile, fileEntry)
	}

	for _, code := range codeOrder {
		entry := codes[code]
		slices.Sort(entry.Files)
		report.ByCode = append(report.ByCode, *entry)
	}

	slices.SortFunc(report.ByCode, func(left, right CodeAnalysis) int {
		return compareCounts(opts.SortBy, left.Counts, right.Counts, left.Code, right.Code)
	})
	slices.SortFunc(report.ByFile, func(left, right FileAnalysis) int {
		return compareCounts(opts.SortBy, left.Counts, right.Counts, left.Path, right.Path)
	})

	return report
}

func compareCounts(sortBy SortField, left, right Counts, leftKey, rightKey string) int {
	var result int
	switch sortBy {
	case SortByAlpha:
	case SortBySeverity:
		result = cmp.Or(
			cmp.Compare(right.Errors, left.Errors),
			cmp.Compare(right.Warnings, left.Warnings),
			cmp.Compare(right.Issues, left.Issues),
		)
	default:
		result = cmp.Compare(right.Issues, left.Issues)
	}
	return cmp.Or(result, cmp.Compare(leftKey, rightKey))
}
