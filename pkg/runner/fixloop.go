package runner

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/fix"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// fixLoop applies the first quick fix of every diagnostic and re-validates
// until nothing fixable remains or maxPasses is reached. A rule whose fixes
// do not reduce its own diagnostic count is excluded from later passes and
// its edits from that pass are discarded. It returns the final text, the
// diagnostics for that text and the number of edits applied.
func (r *Runner) fixLoop(logger *log.Logger, text string, maxPasses int) (string, []lint.Diagnostic, int) {
	diags := r.Checker.Validate(text)
	excluded := make(map[string]bool)
	applied := 0

	for range maxPasses {
		edits := firstFixEdits(diags, excluded)
		if len(edits) == 0 {
			break
		}

		next, skipped, err := fix.Apply(text, edits)
		if err != nil {
			logger.Debug("fix pass rejected", logging.FieldError, err)
			break
		}
		if next == text {
			break
		}

		nextDiags := r.Checker.Validate(next)

		stalled := stalledCodes(diags, nextDiags, excluded)
		if len(stalled) > 0 {
			for _, code := range stalled {
				excluded[code] = true
			}
			continue
		}

		applied += len(edits) - len(skipped)
		text, diags = next, nextDiags
	}

	return text, diags, applied
}

// firstFixEdits collects the edits of each diagnostic's first quick fix,
// dropping exact duplicates.
func firstFixEdits(diags []lint.Diagnostic, excluded map[string]bool) []fix.TextEdit {
	var edits []fix.TextEdit
	for idx := range diags {
		diag := &diags[idx]
		if !diag.HasFix() || excluded[diag.Code] {
			continue
		}
		for _, edit := range diag.Fixes[0].Edits {
			if !slices.Contains(edits, edit) {
				edits = append(edits, edit)
			}
		}
	}
	return edits
}

// stalledCodes returns the codes, among those that were fixed, whose
// fixable diagnostic count did not decrease.
func stalledCodes(before, after []lint.Diagnostic, excluded map[string]bool) []string {
	countFixable := func(diags []lint.Diagnostic) map[string]int {
		counts := make(map[string]int)
		for idx := range diags {
			if diags[idx].HasFix() {
				counts[diags[idx].Code]++
			}
		}
		return counts
	}

	prev := countFixable(before)
	next := countFixable(after)

	var stalled []string
	for code, count := range prev {
		if excluded[code] {
			continue
		}
		if next[code] >= count {
			stalled = append(stalled, code)
		}
	}
	slices.Sort(stalled)
	return stalled
}
