package rules

import (
	"fmt"
	"regexp"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// blockKind pairs a block attribute line with the delimiter that closes the
// block it introduces.
type blockKind struct {
	name      string
	start     *regexp.Regexp
	delimiter string
}

//nolint:gochecknoglobals // Read-only lookup table
var blockKinds = []blockKind{
	{name: "source", start: regexp.MustCompile(`^\[source(,.*)?\]$`), delimiter: "----"},
	{name: "example", start: regexp.MustCompile(`^\[example\]$`), delimiter: "===="},
	{name: "sidebar", start: regexp.MustCompile(`^\[sidebar\]$`), delimiter: "****"},
	{name: "quote", start: regexp.MustCompile(`^\[quote(,.*)?\]$`), delimiter: "____"},
	{name: "listing", start: regexp.MustCompile(`^\[listing\]$`), delimiter: "----"},
}

// UnclosedBlockRule reports block attribute lines whose block is never
// closed.
//
// Only the attribute line has to be in the changed set; the search for the
// closing delimiter always runs to the end of the document. Blocks of
// different kinds are not matched against each other, so a delimiter that
// belongs to an enclosing block can close an inner one.
type UnclosedBlockRule struct {
	lint.RuleInfo
}

// NewUnclosedBlockRule creates a new unclosed block rule.
func NewUnclosedBlockRule() *UnclosedBlockRule {
	return &UnclosedBlockRule{
		RuleInfo: lint.NewRuleInfo(
			"E001",
			"Delimited blocks must have a closing delimiter",
			config.SeverityError,
			true,
		),
	}
}

// Validate checks every block kind against every validated line.
func (r *UnclosedBlockRule) Validate(ctx *lint.Context) ([]lint.Diagnostic, error) {
	lines := ctx.Lines()
	var diags []lint.Diagnostic

	for _, kind := range blockKinds {
		for idx, line := range lines {
			if !ctx.ShouldValidateLine(idx) || !kind.start.MatchString(line) {
				continue
			}
			if hasClosingDelimiter(lines, idx, kind.delimiter) {
				continue
			}

			diags = append(diags, r.Diagnose(idx, 0, adoc.RuneLen(line),
				fmt.Sprintf("Unclosed %s block: missing closing delimiter %q", kind.name, kind.delimiter)).
				WithEdit(
					fmt.Sprintf("Add closing delimiter (%s)", kind.delimiter),
					fix.Insert(idx+1, 0, kind.delimiter+"\n"),
				).
				Build())
		}
	}

	return diags, nil
}

// hasClosingDelimiter scans forward from the attribute line at start. When
// the next line is the opening delimiter the scan begins after it.
func hasClosingDelimiter(lines []string, start int, delimiter string) bool {
	from := start + 1
	if from < len(lines) && lines[from] == delimiter {
		from++
	}

	for idx := from; idx < len(lines); idx++ {
		if lines[idx] == delimiter {
			return true
		}
	}

	return false
}
