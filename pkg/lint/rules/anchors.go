package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// DuplicateAnchorRule reports anchor ids declared more than once.
// The first declaration is accepted; every later one is reported.
type DuplicateAnchorRule struct {
	lint.RuleInfo
}

// NewDuplicateAnchorRule creates a new duplicate anchor rule.
func NewDuplicateAnchorRule() *DuplicateAnchorRule {
	return &DuplicateAnchorRule{
		RuleInfo: lint.NewRuleInfo(
			"E004",
			"Anchor ids must be unique within a document",
			config.SeverityWarning,
			false,
		),
	}
}

// Validate checks anchor declarations outside delimited blocks.
func (r *DuplicateAnchorRule) Validate(ctx *lint.Context) ([]lint.Diagnostic, error) {
	if !hasDuplicates(ctx.Anchors()) {
		return nil, nil
	}

	seen := make(map[string]int)
	var diags []lint.Diagnostic

	for idx, line := range ctx.Lines() {
		if ctx.InsideBlock(idx) {
			continue
		}

		for _, anchor := range adoc.FindAnchors(line) {
			first, dup := seen[anchor.ID]
			if !dup {
				seen[anchor.ID] = idx
				continue
			}
			if !ctx.ShouldValidateLine(idx) {
				continue
			}

			diags = append(diags, r.Diagnose(idx, anchor.Column, anchor.Length,
				fmt.Sprintf("Duplicate anchor %q: first declared on line %d", anchor.ID, first+1)).
				Build())
		}
	}

	return diags, nil
}

func hasDuplicates(values []string) bool {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}

// UnresolvedXRefRule reports cross references to ids that no anchor in the
// document declares.
//
// References into other documents (containing '#' or naming a file) and
// references to generated section ids (leading '_') are not checked, nor are
// natural references written with the section title.
type UnresolvedXRefRule struct {
	lint.RuleInfo
}

// NewUnresolvedXRefRule creates a new unresolved cross reference rule.
func NewUnresolvedXRefRule() *UnresolvedXRefRule {
	return &UnresolvedXRefRule{
		RuleInfo: lint.NewRuleInfo(
			"E005",
			"Cross references must target a declared anchor",
			config.SeverityWarning,
			false,
		),
	}
}

// Validate checks terminated cross references outside delimited blocks.
func (r *UnresolvedXRefRule) Validate(ctx *lint.Context) ([]lint.Diagnostic, error) {
	known := make(map[string]struct{})
	for _, id := range ctx.Anchors() {
		known[id] = struct{}{}
	}

	var diags []lint.Diagnostic

	for idx, line := range ctx.Lines() {
		if !ctx.ShouldValidateLine(idx) || ctx.InsideBlock(idx) {
			continue
		}

		for _, ref := range adoc.FindXRefs(line) {
			if !ref.Closed || !checkableTarget(ref.Target) {
				continue
			}
			if _, ok := known[ref.Target]; ok {
				continue
			}

			diags = append(diags, r.Diagnose(idx, ref.Start, ref.End-ref.Start,
				fmt.Sprintf("Cross reference target %q is not declared in this document", ref.Target)).
				Build())
		}
	}

	return diags, nil
}

func checkableTarget(target string) bool {
	switch {
	case target == "":
		return false
	case strings.HasPrefix(target, "_"):
		return false
	case strings.ContainsAny(target, "# "):
		return false
	case strings.HasSuffix(target, ".adoc"):
		return false
	default:
		return true
	}
}
