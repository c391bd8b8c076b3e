package lint

import (
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
)

// Diagnostic is a single problem found in a document.
// Positions are 0-based; Column and Length count code points.
type Diagnostic struct {
	// Code is the short stable identifier of the problem (e.g. "E001").
	Code string `json:"code"`

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity `json:"severity"`

	// Message is the human-readable description of the issue.
	Message string `json:"message"`

	// Line is the line the problem is reported on.
	Line int `json:"line"`

	// Column is where the underlined span starts.
	Column int `json:"column"`

	// Length is the width of the underlined span.
	Length int `json:"length"`

	// Fixes are the quick fixes offered for this problem, in preference order.
	Fixes []fix.QuickFix `json:"fixes,omitempty"`
}

// HasFix returns true if this diagnostic offers at least one quick fix.
func (d *Diagnostic) HasFix() bool {
	return len(d.Fixes) > 0
}

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic with error severity.
func NewDiagnostic(code string, line, column, length int, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			Code:     code,
			Severity: config.SeverityError,
			Message:  message,
			Line:     line,
			Column:   column,
			Length:   length,
		},
	}
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithFix appends a quick fix.
func (b *DiagnosticBuilder) WithFix(qf fix.QuickFix) *DiagnosticBuilder {
	b.diag.Fixes = append(b.diag.Fixes, qf)
	return b
}

// WithEdit appends a quick fix consisting of a single edit.
func (b *DiagnosticBuilder) WithEdit(title string, edit fix.TextEdit) *DiagnosticBuilder {
	return b.WithFix(fix.NewQuickFix(title, edit))
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
