package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/cache"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
	"github.com/yaklabco/adoclint/pkg/fsutil"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/lint/rules"
)

// Runner validates files with a shared Checker. Validation only reads the
// checker's rule list, so one Checker serves every worker; the rule list must
// not change while Run is in progress.
type Runner struct {
	Checker *lint.Checker

	// Revision names the rule implementation, and optionally the build, in
	// the cache signature.
	Revision string

	// Logger overrides the logger carried by the Run context.
	Logger *log.Logger
}

// New creates a Runner around checker.
func New(checker *lint.Checker) *Runner {
	return &Runner{Checker: checker, Revision: rules.Revision}
}

func (r *Runner) logger(ctx context.Context) *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return logging.FromContext(ctx)
}

// Signature identifies the checker's rule set for cache keys. Results cached
// under one revision are never served under another.
func (r *Runner) Signature() string {
	return r.Revision + ";" + strings.Join(r.Checker.RuleNames(), ",")
}

// Run discovers files under opts.Paths and validates them concurrently.
// Per-file failures are recorded on the FileOutcome; Run itself fails only
// when discovery fails or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := newResult(len(files))
	result.Stats.FilesDiscovered = len(files)

	logger := r.logger(ctx)
	logger.Debug("files discovered", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]FileOutcome, len(files))
	signature := r.Signature()

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for idx, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[idx] = r.processFile(groupCtx, path, signature, opts)
			return nil
		})
	}

	waitErr := group.Wait()

	for idx := range outcomes {
		if outcomes[idx].Path == "" {
			continue
		}
		result.accumulate(outcomes[idx])
	}

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldCacheHits, result.Stats.CacheHits,
	)

	if waitErr != nil {
		return result, fmt.Errorf("run cancelled: %w", waitErr)
	}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) processFile(ctx context.Context, path, signature string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}
	logger := r.logger(ctx).With(logging.FieldPath, path)

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	if !opts.Fix && !opts.DryRun {
		diags, cached := r.validateCached(logger, opts.Cache, signature, content)
		outcome.Content = content
		outcome.Diagnostics = applySeverity(diags, opts.Config)
		outcome.Cached = cached
		return outcome
	}

	fixed, diags, applied := r.fixLoop(logger, string(content), opts.effectiveMaxFixPasses())

	if opts.DryRun {
		if applied > 0 {
			outcome.Diff = fix.NewDiff(path, string(content), fixed)
		}
		diags, cached := r.validateCached(logger, opts.Cache, signature, content)
		outcome.Content = content
		outcome.Diagnostics = applySeverity(diags, opts.Config)
		outcome.Cached = cached
		return outcome
	}

	outcome.FixesApplied = applied

	if applied > 0 {
		written, err := fsutil.ReplaceFile(ctx, info, []byte(fixed), opts.Backup)
		switch {
		case errors.Is(err, fsutil.ErrModified):
			// Report what is on disk, not the unwritten fix result.
			outcome.Skipped = true
			outcome.SkipReason = "file changed while processing"
			outcome.FixesApplied = 0
			diags = r.Checker.Validate(string(content))
			fixed = string(content)
		case err != nil:
			outcome.Error = err
			return outcome
		default:
			outcome.Written = written
		}
	}

	outcome.Content = []byte(fixed)
	putCache(logger, opts.Cache, signature, outcome.Content, diags)
	outcome.Diagnostics = applySeverity(diags, opts.Config)
	return outcome
}

func (r *Runner) validateCached(logger *log.Logger, store *cache.Cache, signature string, content []byte) ([]lint.Diagnostic, bool) {
	key := cache.NewKey(signature, content)

	diags, found, err := store.Get(key)
	if err != nil {
		logger.Warn("cache read failed", logging.FieldError, err)
	}
	if found {
		return diags, true
	}

	diags = r.Checker.Validate(string(content))
	putCache(logger, store, signature, content, diags)
	return diags, false
}

func putCache(logger *log.Logger, store *cache.Cache, signature string, content []byte, diags []lint.Diagnostic) {
	if err := store.Put(cache.NewKey(signature, content), diags); err != nil {
		logger.Warn("cache write failed", logging.FieldError, err)
	}
}

// applySeverity returns diags with configured severity overrides applied.
func applySeverity(diags []lint.Diagnostic, cfg *config.Config) []lint.Diagnostic {
	if cfg == nil || len(cfg.SeverityOverrides) == 0 {
		return diags
	}
	out := make([]lint.Diagnostic, len(diags))
	for idx, diag := range diags {
		diag.Severity = cfg.SeverityFor(diag.Code, diag.Severity)
		out[idx] = diag
	}
	return out
}
