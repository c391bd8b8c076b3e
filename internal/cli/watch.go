package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/yaklabco/adoclint/internal/configloader"
	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/internal/ui/pretty"
	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fsutil"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/live"
)

const clearScreen = "\x1b[H\x1b[2J"

type watchFlags struct {
	packs     []string
	disable   []string
	noContext bool
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-check a document every time it is saved",
		Long: `Watch an AsciiDoc file and print its diagnostics after every save.

Only the lines that changed since the last check are re-validated; edits
that add or remove lines trigger a full check. Press Ctrl+C to stop.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.packs, "pack", nil, "additional rule packs to load")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule codes to disable")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")

	return cmd
}

func runWatch(cmd *cobra.Command, target string, flags *watchFlags) error {
	logger := logging.FromContext(commandContext(cmd))

	cfg, workDir, err := loadConfig(cmd, &configloader.Overrides{
		Packs:   flags.packs,
		Disable: flags.disable,
	})
	if err != nil {
		return err
	}

	path := target
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	path = filepath.Clean(path)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", target, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	// Saves that rename a new file over the old one drop a watch on the
	// file itself, so the directory is watched instead.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", target, err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	out := cmd.OutOrStdout()

	session := &watchSession{
		path:        path,
		displayName: target,
		cfg:         cfg,
		out:         out,
		styles:      pretty.NewStyles(pretty.IsColorEnabled(colorMode, out)),
		showContext: !flags.noContext,
		clear:       isTerminal(out),
	}

	worker := live.NewWorker(buildChecker(cfg, logger), live.WithLogger(logger))
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return worker.Run(groupCtx)
	})

	logger.Debug("watching", logging.FieldPath, path)
	session.submit(worker, string(content))

	loopErr := session.loop(groupCtx, watcher, worker, logger)
	worker.Close()

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("live worker: %w", err)
	}
	return loopErr
}

// isTerminal reports whether w is a terminal that can be cleared.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// watchSession tracks the diagnostics of one watched document.
//
// diags always describe baseline. Snapshots are diffed against baseline, so
// merging an incremental update only replaces the lines that differ.
type watchSession struct {
	path        string
	displayName string
	cfg         *config.Config
	out         io.Writer
	styles      *pretty.Styles
	showContext bool
	clear       bool

	baseline  string
	validated bool
	diags     []lint.Diagnostic

	pending string
	latest  uint64
}

func (s *watchSession) loop(ctx context.Context, watcher *fsnotify.Watcher, worker *live.Worker, logger *log.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			content, _, err := fsutil.ReadFile(ctx, s.path)
			if err != nil {
				// Mid-rename saves briefly remove the file; the Create that
				// follows triggers the next read.
				logger.Debug("read failed", logging.FieldPath, s.path, logging.FieldError, err)
				continue
			}
			s.submit(worker, string(content))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logging.FieldError, err)

		case update, ok := <-worker.Results():
			if !ok {
				return nil
			}
			if s.receive(update) {
				if err := s.render(); err != nil {
					return err
				}
			}
		}
	}
}

// submit queues text for validation unless it is already queued.
func (s *watchSession) submit(worker *live.Worker, text string) {
	if s.latest != 0 && text == s.pending {
		return
	}

	snap := live.Snapshot{Path: s.path, Text: text}
	if s.validated && len(adoc.SplitLines(s.baseline)) == len(adoc.SplitLines(text)) {
		snap.ChangedLines = live.ChangedLines(s.baseline, text)
	}

	s.pending = text
	s.latest = worker.Submit(snap)
}

// receive merges update into the session. It returns false for updates of
// snapshots that have since been replaced.
func (s *watchSession) receive(update live.Update) bool {
	if update.Generation != s.latest {
		return false
	}
	s.diags = mergeDiagnostics(s.diags, update)
	s.baseline = s.pending
	s.validated = true
	return true
}

// mergeDiagnostics replaces the diagnostics on the update's changed lines.
// A full update replaces everything.
func mergeDiagnostics(current []lint.Diagnostic, update live.Update) []lint.Diagnostic {
	if update.ChangedLines == nil {
		return update.Diagnostics
	}

	changed := make(map[int]struct{}, len(update.ChangedLines))
	for _, line := range update.ChangedLines {
		changed[line] = struct{}{}
	}

	merged := make([]lint.Diagnostic, 0, len(current)+len(update.Diagnostics))
	for _, diag := range current {
		if _, ok := changed[diag.Line]; !ok {
			merged = append(merged, diag)
		}
	}
	merged = append(merged, update.Diagnostics...)
	lint.SortDiagnostics(merged)

	return merged
}

func (s *watchSession) render() error {
	var lines []string
	if s.showContext {
		lines = adoc.SplitLines(s.baseline)
	}

	var buf []byte
	if s.clear {
		buf = append(buf, clearScreen...)
	}

	buf = append(buf, s.styles.FormatFileHeader(s.displayName, len(s.diags))...)
	buf = append(buf, '\n')

	if len(s.diags) == 0 {
		buf = append(buf, "  "+s.styles.Success.Render("No issues found")+"\n"...)
	}
	for idx := range s.diags {
		diag := s.diags[idx]
		diag.Severity = s.cfg.SeverityFor(diag.Code, diag.Severity)

		var sourceLine string
		if diag.Line >= 0 && diag.Line < len(lines) {
			sourceLine = lines[diag.Line]
		}
		buf = append(buf, s.styles.FormatDiagnostic(s.displayName, &diag, s.showContext, sourceLine)...)
	}

	if _, err := s.out.Write(buf); err != nil {
		return fmt.Errorf("write diagnostics: %w", err)
	}
	return nil
}
