package rules

import (
	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// MalformedXRefRule reports "<<id" cross references that are not
// terminated by ">>" on the same line.
type MalformedXRefRule struct {
	lint.RuleInfo
}

// NewMalformedXRefRule creates a new malformed cross reference rule.
func NewMalformedXRefRule() *MalformedXRefRule {
	return &MalformedXRefRule{
		RuleInfo: lint.NewRuleInfo(
			"E003",
			"Cross references must be terminated with >>",
			config.SeverityError,
			true,
		),
	}
}

// Validate checks each validated line.
func (r *MalformedXRefRule) Validate(ctx *lint.Context) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic

	for idx, line := range ctx.Lines() {
		if !ctx.ShouldValidateLine(idx) {
			continue
		}

		for _, ref := range adoc.FindXRefs(line) {
			if ref.Closed {
				continue
			}

			diags = append(diags, r.Diagnose(idx, ref.Start, ref.End-ref.Start,
				"Malformed cross reference: missing closing >>").
				WithEdit("Close cross reference", fix.Insert(idx, ref.End, ">>")).
				Build())
		}
	}

	return diags, nil
}
