// Package analysis aggregates runner results per rule code and per file.
package analysis

// Report contains pre-computed views of lint results.
type Report struct {
	// ByCode groups diagnostics by rule code.
	ByCode []CodeAnalysis `json:"byCode"`

	// ByFile groups diagnostics by file path. Files without issues are
	// omitted.
	ByFile []FileAnalysis `json:"byFile"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"totals"`
}

// Counts tallies diagnostics by severity.
type Counts struct {
	Issues   int `json:"issues"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
	Fixable  int `json:"fixable"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Counts

	Files           int `json:"files"`
	FilesWithIssues int `json:"filesWithIssues"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any errors.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Counts

	Path  string   `json:"path"`
	Codes []string `json:"codes"`
}

// CodeAnalysis contains aggregated data for a single rule code.
type CodeAnalysis struct {
	Counts

	Code  string   `json:"code"`
	Files []string `json:"files"`
}
