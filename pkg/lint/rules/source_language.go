package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
	"github.com/yaklabco/adoclint/pkg/langdetect"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// sourceAttrPattern captures the language position of a source block
// attribute line: [source], [source,LANG] or [source,LANG,...].
//
//nolint:gochecknoglobals // Compiled pattern is read-only
var sourceAttrPattern = regexp.MustCompile(`^\[source(?:,([^,\]]*))?(?:,[^\]]*)?\]$`)

const sourceAttrPrefix = "[source"

// SourceLanguageRule checks the language of [source] blocks.
//
// A language that is not a known name or alias is a warning. A block with
// no language is reported at info level, with a fix that adds the detected
// language when the block content is recognized.
type SourceLanguageRule struct {
	lint.RuleInfo
}

// NewSourceLanguageRule creates a new source language rule.
func NewSourceLanguageRule() *SourceLanguageRule {
	return &SourceLanguageRule{
		RuleInfo: lint.NewRuleInfo(
			"E008",
			"Source blocks should name a known language",
			config.SeverityWarning,
			true,
		),
	}
}

// Validate checks source block attribute lines outside delimited blocks.
func (r *SourceLanguageRule) Validate(ctx *lint.Context) ([]lint.Diagnostic, error) {
	lines := ctx.Lines()
	var diags []lint.Diagnostic

	for idx, line := range lines {
		if !ctx.ShouldValidateLine(idx) || ctx.InsideBlock(idx) {
			continue
		}

		match := sourceAttrPattern.FindStringSubmatchIndex(line)
		if match == nil {
			continue
		}

		if match[2] >= 0 {
			raw := line[match[2]:match[3]]
			if lang := strings.TrimSpace(raw); lang != "" {
				if langdetect.Known(lang) {
					continue
				}
				start := adoc.RuneColumn(line, match[2])
				diags = append(diags, r.Diagnose(idx, start, adoc.RuneLen(raw),
					fmt.Sprintf("Unknown source language %q", lang)).
					Build())
				continue
			}
		}

		diags = append(diags, r.missingLanguage(lines, idx, line))
	}

	return diags, nil
}

func (r *SourceLanguageRule) missingLanguage(lines []string, idx int, line string) lint.Diagnostic {
	builder := r.Diagnose(idx, 0, adoc.RuneLen(line), "Source block has no language").
		WithSeverity(config.SeverityInfo)

	if line != "[source]" {
		return builder.Build()
	}

	if lang, ok := langdetect.Detect([]byte(blockContent(lines, idx))); ok {
		builder.WithEdit(
			fmt.Sprintf("Set language to %s", lang),
			fix.Insert(idx, len(sourceAttrPrefix), ","+lang),
		)
	}

	return builder.Build()
}

// blockContent returns the body of the block introduced at attrLine, or ""
// when the block has no opening delimiter.
func blockContent(lines []string, attrLine int) string {
	open := attrLine + 1
	if open >= len(lines) || !adoc.IsDelimiter(lines[open]) {
		return ""
	}

	var body []string
	for idx := open + 1; idx < len(lines); idx++ {
		if lines[idx] == lines[open] {
			break
		}
		body = append(body, lines[idx])
	}

	return strings.Join(body, "\n")
}
