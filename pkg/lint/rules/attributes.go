package rules

import (
	"fmt"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// builtinAttributes are attributes the processor defines on its own, either
// character replacements or values derived from the document header.
//
//nolint:gochecknoglobals // Read-only lookup table
var builtinAttributes = map[string]struct{}{
	// Character replacements.
	"amp": {}, "apos": {}, "asterisk": {}, "backslash": {}, "backtick": {},
	"blank": {}, "brvbar": {}, "caret": {}, "cpp": {}, "deg": {}, "empty": {},
	"endsb": {}, "gt": {}, "ldquo": {}, "lsquo": {}, "lt": {}, "nbsp": {},
	"plus": {}, "pp": {}, "quot": {}, "rdquo": {}, "rsquo": {}, "sp": {},
	"startsb": {}, "tilde": {}, "two-colons": {}, "two-semicolons": {},
	"vbar": {}, "wj": {}, "zwsp": {},

	// Document and environment.
	"asciidoctor": {}, "asciidoctor-version": {}, "backend": {}, "basebackend": {},
	"docdate": {}, "docdatetime": {}, "docdir": {}, "docfile": {}, "docname": {},
	"doctime": {}, "doctitle": {}, "doctype": {}, "docyear": {}, "localdate": {},
	"localdatetime": {}, "localtime": {}, "localyear": {}, "outfilesuffix": {},

	// Header.
	"author": {}, "authorinitials": {}, "email": {}, "firstname": {},
	"lastname": {}, "middlename": {}, "revdate": {}, "revnumber": {},
	"revremark": {},
}

// UndefinedAttributeRule reports {name} references to attributes the
// document never declares.
type UndefinedAttributeRule struct {
	lint.RuleInfo
}

// NewUndefinedAttributeRule creates a new undefined attribute rule.
func NewUndefinedAttributeRule() *UndefinedAttributeRule {
	return &UndefinedAttributeRule{
		RuleInfo: lint.NewRuleInfo(
			"E006",
			"Attribute references must name a declared attribute",
			config.SeverityInfo,
			true,
		),
	}
}

// Validate checks attribute references outside delimited blocks.
func (r *UndefinedAttributeRule) Validate(ctx *lint.Context) ([]lint.Diagnostic, error) {
	declared := ctx.Attributes()
	var diags []lint.Diagnostic

	for idx, line := range ctx.Lines() {
		if !ctx.ShouldValidateLine(idx) || ctx.InsideBlock(idx) {
			continue
		}

		for _, ref := range adoc.FindAttributeRefs(line) {
			if _, ok := declared[ref.Name]; ok {
				continue
			}
			if _, ok := builtinAttributes[ref.Name]; ok {
				continue
			}

			diags = append(diags, r.Diagnose(idx, ref.Column, ref.Length,
				fmt.Sprintf("Attribute %q is referenced but never defined", ref.Name)).
				WithEdit("Define attribute", fix.Insert(0, 0, ":"+ref.Name+":\n")).
				Build())
		}
	}

	return diags, nil
}
