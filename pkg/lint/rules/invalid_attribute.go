package rules

import (
	"strings"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// InvalidAttributeRule reports attribute declarations that lack their
// closing colon, such as ":toc" or ":author John".
//
// A line is flagged when, once stripped, it starts with ':' but does not end
// with one, and it either contains a space or is longer than one character.
type InvalidAttributeRule struct {
	lint.RuleInfo
}

// NewInvalidAttributeRule creates a new invalid attribute rule.
func NewInvalidAttributeRule() *InvalidAttributeRule {
	return &InvalidAttributeRule{
		RuleInfo: lint.NewRuleInfo(
			"E002",
			"Attribute declarations must close the name with a colon",
			config.SeverityError,
			true,
		),
	}
}

// Validate checks each validated line.
func (r *InvalidAttributeRule) Validate(ctx *lint.Context) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic

	for idx, line := range ctx.Lines() {
		if !ctx.ShouldValidateLine(idx) || !isUnclosedAttribute(line) {
			continue
		}

		end := adoc.RuneLen(strings.TrimRight(line, " \t"))
		diags = append(diags, r.Diagnose(idx, 0, adoc.RuneLen(line),
			"Invalid attribute definition: missing closing colon").
			WithEdit("Add closing colon", fix.Insert(idx, end, ":")).
			Build())
	}

	return diags, nil
}

func isUnclosedAttribute(line string) bool {
	stripped := strings.TrimSpace(line)
	if !strings.HasPrefix(stripped, ":") || strings.HasSuffix(stripped, ":") {
		return false
	}
	return strings.Contains(line, " ") || adoc.RuneLen(stripped) > 1
}
