package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// contextIndent aligns source context under the diagnostic line.
const contextIndent = "        "

// tabSpaces matches the tab expansion lipgloss applies when rendering.
const tabSpaces = "    "

// FormatDiagnostic formats a diagnostic for terminal output. Positions are
// shown 1-based. When showContext is set and sourceLine is non-empty, the
// line is echoed with a caret marker under the reported span.
func (s *Styles) FormatDiagnostic(path string, diag *lint.Diagnostic, showContext bool, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		diag.Line+1,
		diag.Column+1,
	)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.Code.Render("("+diag.Code+")"),
	)

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.Column, diag.Length))
	}

	if diag.HasFix() {
		builder.WriteString("    " + s.Dim.Render("Fix:") + " " +
			s.FixHint.Render(diag.Fixes[0].Title) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext echoes line and underlines length runes starting at
// column (both in runes). Tabs are expanded to tabWidth spaces and wide
// characters get wide markers so the marker lines up in a terminal.
func (s *Styles) FormatSourceContext(line string, column, length int) string {
	var builder strings.Builder

	builder.WriteString(contextIndent + s.SourceLine.Render(strings.ReplaceAll(line, "\t", tabSpaces)) + "\n")

	runes := []rune(line)
	column = min(max(column, 0), len(runes))
	end := min(column+max(length, 1), len(runes))

	var padding strings.Builder
	for _, r := range runes[:column] {
		if r == '\t' {
			padding.WriteString(tabSpaces)
			continue
		}
		padding.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}

	span := strings.ReplaceAll(string(runes[column:end]), "\t", tabSpaces)
	width := max(runewidth.StringWidth(span), 1)
	builder.WriteString(contextIndent + padding.String() + s.Caret.Render(strings.Repeat("^", width)) + "\n")

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%s)", plural(issueCount, "issue", "issues")))
	}
	return header
}

func plural(count int, singular, pluralForm string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, pluralForm)
}
