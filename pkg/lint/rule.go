// Package lint provides the validation engine for adoclint: the diagnostic
// data model, the per-call validation Context, the Rule interface and the
// Checker that runs rules with failure isolation.
package lint

import "github.com/yaklabco/adoclint/pkg/config"

// Rule is a single validation check.
//
// Validate must only read ctx; it may return an error or even panic, in
// which case the Checker logs the failure and the rule contributes no
// diagnostics for that pass. Rules should consult ctx.ShouldValidateLine so
// incremental validation stays cheap.
type Rule interface {
	Validate(ctx *Context) ([]Diagnostic, error)
}

// Describer is implemented by rules that expose metadata for listings.
// Embedding RuleInfo satisfies it.
type Describer interface {
	// Code returns the stable diagnostic code (e.g. "E001").
	Code() string

	// Description returns a one-line description of what the rule checks.
	Description() string

	// DefaultSeverity returns the severity the rule reports at.
	DefaultSeverity() config.Severity

	// CanFix returns whether the rule offers quick fixes.
	CanFix() bool
}

// RuleInfo provides a default implementation of Describer.
// Embed this in rule implementations.
//
// Fields are unexported to avoid name collisions with interface methods.
type RuleInfo struct {
	code     string
	desc     string
	severity config.Severity
	fixable  bool
}

// NewRuleInfo creates a RuleInfo with the given properties.
func NewRuleInfo(code, desc string, severity config.Severity, fixable bool) RuleInfo {
	return RuleInfo{
		code:     code,
		desc:     desc,
		severity: severity,
		fixable:  fixable,
	}
}

// Code returns the stable diagnostic code.
func (r *RuleInfo) Code() string {
	return r.code
}

// Description returns what the rule checks.
func (r *RuleInfo) Description() string {
	return r.desc
}

// DefaultSeverity returns the severity the rule reports at.
func (r *RuleInfo) DefaultSeverity() config.Severity {
	return r.severity
}

// CanFix returns whether the rule offers quick fixes.
func (r *RuleInfo) CanFix() bool {
	return r.fixable
}

// Diagnose starts a diagnostic carrying this rule's code and severity.
func (r *RuleInfo) Diagnose(line, column, length int, message string) *DiagnosticBuilder {
	return NewDiagnostic(r.code, line, column, length, message).WithSeverity(r.severity)
}
