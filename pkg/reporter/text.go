package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/adoclint/internal/ui/pretty"
	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/analysis"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// TextReporter formats results as styled terminal output grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	total := 0
	for idx := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		total += r.reportFile(&result.Files[idx])
	}

	if r.opts.Breakdown {
		fmt.Fprint(r.bw, r.styles.FormatBreakdown(analysis.Analyze(result, analysis.Options{
			SortBy:     analysis.SortByCount,
			WorkingDir: r.opts.WorkingDir,
		})))
	}

	switch {
	case r.opts.ShowSummary && r.opts.Breakdown:
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats, r.opts.Strict))
	case r.opts.ShowSummary:
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *TextReporter) reportFile(file *runner.FileOutcome) int {
	path := displayPath(file.Path, r.opts.WorkingDir)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}
	if file.Skipped {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Warning.Render("not fixed: "+file.SkipReason),
		)
	}
	if len(file.Diagnostics) == 0 {
		return 0
	}

	var lines []string
	if r.opts.ShowContext {
		lines = adoc.SplitLines(string(file.Content))
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Diagnostics)))
	for idx := range file.Diagnostics {
		diag := &file.Diagnostics[idx]

		var sourceLine string
		if diag.Line >= 0 && diag.Line < len(lines) {
			sourceLine = lines[diag.Line]
		}
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(path, diag, r.opts.ShowContext, sourceLine))
	}
	fmt.Fprintln(r.bw)

	return len(file.Diagnostics)
}
