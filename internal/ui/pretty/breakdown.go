package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/adoclint/pkg/analysis"
)

const (
	// breakdownFileLimit caps the files listed in FormatBreakdown.
	breakdownFileLimit = 10

	codeColumnWidth   = 5
	issuesColumnWidth = 10
)

// FormatBreakdown formats the per-code and per-file views of report.
// It returns an empty string when there are no issues.
func (s *Styles) FormatBreakdown(report *analysis.Report) string {
	if report == nil || !report.Totals.HasIssues() {
		return ""
	}

	var builder strings.Builder

	builder.WriteString("\n" + s.SummaryTitle.Render("Issues by rule") + "\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")
	for _, entry := range report.ByCode {
		issues := plural(entry.Issues, "issue", "issues")
		fmt.Fprintf(&builder, "  %s  %s  %s%s\n",
			padRight(s.Code.Render(entry.Code), entry.Code, codeColumnWidth),
			padRight(s.SummaryValue.Render(issues), issues, issuesColumnWidth),
			s.Dim.Render(fmt.Sprintf("in %s", plural(len(entry.Files), "file", "files"))),
			s.fixableNote(entry.Fixable),
		)
	}

	builder.WriteString("\n" + s.SummaryTitle.Render("Issues by file") + "\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")
	for idx, entry := range report.ByFile {
		if idx == breakdownFileLimit {
			fmt.Fprintf(&builder, "  %s\n",
				s.Dim.Render(fmt.Sprintf("... and %s", plural(len(report.ByFile)-idx, "more file", "more files"))))
			break
		}
		fmt.Fprintf(&builder, "  %s  %s %s\n",
			s.FilePath.Render(entry.Path),
			s.SummaryValue.Render(plural(entry.Issues, "issue", "issues")),
			s.Dim.Render("("+strings.Join(entry.Codes, ", ")+")"),
		)
	}

	return builder.String()
}

func (s *Styles) fixableNote(count int) string {
	if count == 0 {
		return ""
	}
	return s.Success.Render(fmt.Sprintf(", %d fixable", count))
}

// padRight pads rendered, the styled form of raw, to width columns.
func padRight(rendered, raw string, width int) string {
	if gap := width - len(raw); gap > 0 {
		return rendered + strings.Repeat(" ", gap)
	}
	return rendered
}
