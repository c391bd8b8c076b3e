package rules

import (
	"fmt"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// DuplicateIncludeRule reports include directives that repeat a target
// already included earlier in the document.
type DuplicateIncludeRule struct {
	lint.RuleInfo
}

// NewDuplicateIncludeRule creates a new duplicate include rule.
func NewDuplicateIncludeRule() *DuplicateIncludeRule {
	return &DuplicateIncludeRule{
		RuleInfo: lint.NewRuleInfo(
			"E007",
			"A file should be included only once",
			config.SeverityInfo,
			false,
		),
	}
}

// Validate checks include directives outside delimited blocks.
func (r *DuplicateIncludeRule) Validate(ctx *lint.Context) ([]lint.Diagnostic, error) {
	if !hasDuplicates(ctx.Includes()) {
		return nil, nil
	}

	seen := make(map[string]int)
	var diags []lint.Diagnostic

	for idx, line := range ctx.Lines() {
		if ctx.InsideBlock(idx) {
			continue
		}

		for _, target := range adoc.ExtractIncludes(line) {
			first, dup := seen[target]
			if !dup {
				seen[target] = idx
				continue
			}
			if !ctx.ShouldValidateLine(idx) {
				continue
			}

			diags = append(diags, r.Diagnose(idx, 0, adoc.RuneLen(line),
				fmt.Sprintf("%q is already included on line %d", target, first+1)).
				Build())
		}
	}

	return diags, nil
}
