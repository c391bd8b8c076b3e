package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/runner"
)

const summaryDividerWidth = 40

// severityOrder lists severities from most to least important.
var severityOrder = []config.Severity{config.SeverityError, config.SeverityWarning, config.SeverityInfo}

func (s *Styles) severityStyle(sev config.Severity) func(...string) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render
	case config.SeverityWarning:
		return s.Warning.Render
	default:
		return s.Info.Render
	}
}

// severityNoun returns the counted noun for sev ("errors", "info").
func severityNoun(sev config.Severity, count int) string {
	if sev == config.SeverityInfo || count == 1 {
		return string(sev)
	}
	return string(sev) + "s"
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 issues (3 errors, 2 warnings) in 2 files, 4 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.DiagnosticsTotal == 0 {
		msg := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%s checked)", plural(stats.FilesProcessed, "file", "files")))
		if stats.DiagnosticsFixed > 0 {
			msg += ", " + s.Success.Render(fmt.Sprintf("%d fixed in %s",
				stats.DiagnosticsFixed, plural(stats.FilesModified, "file", "files")))
		}
		return msg + "\n"
	}

	var severityParts []string
	for _, sev := range severityOrder {
		if count := stats.DiagnosticsBySeverity[sev]; count > 0 {
			severityParts = append(severityParts,
				s.severityStyle(sev)(fmt.Sprintf("%d %s", count, severityNoun(sev, count))))
		}
	}

	total := plural(stats.DiagnosticsTotal, "issue", "issues")
	if len(severityParts) > 0 {
		total += " (" + strings.Join(severityParts, ", ") + ")"
	}

	parts := []string{total, "in " + plural(stats.FilesWithIssues, "file", "files")}

	if stats.DiagnosticsFixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
	}
	if stats.DiagnosticsFixed > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixed in %s",
			stats.DiagnosticsFixed, plural(stats.FilesModified, "file", "files"))))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(plural(stats.FilesErrored, "file", "files")+" unreadable"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a block.
func (s *Styles) FormatSummary(stats runner.Stats, strict bool) string {
	var builder strings.Builder

	builder.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row := func(label, value string) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", value)
	}

	row("Files checked", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesWithIssues > 0 {
		row("Files with issues", s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)))
	}
	if stats.FilesModified > 0 {
		row("Files modified", s.Success.Render(strconv.Itoa(stats.FilesModified)))
	}
	if stats.CacheHits > 0 {
		row("Cache hits", s.SummaryValue.Render(strconv.Itoa(stats.CacheHits)))
	}

	builder.WriteString("\n")
	title := cases.Title(language.English)
	row("Total issues", s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)))
	for _, sev := range severityOrder {
		if count := stats.DiagnosticsBySeverity[sev]; count > 0 {
			row("  "+title.String(severityNoun(sev, 2)), s.severityStyle(sev)(strconv.Itoa(count)))
		}
	}
	builder.WriteString("\n")

	errorsFound := stats.DiagnosticsBySeverity[config.SeverityError] > 0
	warningsFound := stats.DiagnosticsBySeverity[config.SeverityWarning] > 0
	switch {
	case errorsFound:
		builder.WriteString(s.Failure.Render("Lint failed with errors"))
	case warningsFound && strict:
		builder.WriteString(s.Failure.Render("Lint failed with warnings"))
	case warningsFound:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
