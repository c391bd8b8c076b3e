package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/configloader"
	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/cache"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint/rules"
	"github.com/yaklabco/adoclint/pkg/reporter"
	"github.com/yaklabco/adoclint/pkg/runner"
)

type lintFlags struct {
	format    string
	jobs      int
	ignore    []string
	disable   []string
	packs     []string
	fix       bool
	dryRun    bool
	backup    bool
	noCache   bool
	strict    bool
	noContext bool
	compact   bool
	stats     bool
}

func newLintCommand(info BuildInfo) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint AsciiDoc files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags, info)
		},
	}

	addLintFlags(cmd, flags)

	return cmd
}

const lintLongDescription = `Lint AsciiDoc files for unfinished syntax.

By default, lints all .adoc, .asciidoc, .asc and .ad files in the current
directory and subdirectories. Specify paths to lint specific files or
directories.

Examples:
  adoclint lint                       # Lint current directory
  adoclint lint docs/                 # Lint docs directory
  adoclint lint README.adoc           # Lint single file
  adoclint lint --fix --backup        # Apply quick fixes, keeping backups
  adoclint lint --dry-run             # Preview quick fixes as a diff
  adoclint lint --pack extended       # Add the consistency rules
  adoclint lint --disable E002        # Skip attribute entry checks
  adoclint lint --format json         # Output as JSON for CI
  adoclint lint --format sarif        # Output SARIF for code scanning
  adoclint lint --stats               # Break issues down by rule and file
  adoclint lint --strict              # Treat warnings as errors`

func runLint(cmd *cobra.Command, args []string, flags *lintFlags, info BuildInfo) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	overrides := &configloader.Overrides{
		Packs:   flags.packs,
		Disable: flags.disable,
		Ignore:  flags.ignore,
		Fix:     flags.fix,
		Strict:  flags.strict,
		NoCache: flags.noCache,
		Jobs:    flags.jobs,
	}
	if cmd.Flags().Changed("format") {
		format, err := reporter.ParseFormat(flags.format)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		overrides.Format = config.OutputFormat(format)
	} else if flags.dryRun {
		overrides.Format = config.FormatDiff
	}
	if flags.dryRun && flags.fix {
		return fmt.Errorf("%w: --dry-run and --fix are mutually exclusive", ErrUsage)
	}

	cfg, workDir, err := loadConfig(cmd, overrides)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	// The diff format previews fixes, so it always runs dry.
	dryRun := flags.dryRun || format == reporter.FormatDiff

	checker := buildChecker(cfg, logger)

	var resultCache *cache.Cache
	if cfg.Cache {
		resultCache, err = cache.OpenDefault(configloader.AppName)
		if err != nil {
			logger.Warn("result cache disabled", logging.FieldError, err)
			resultCache = nil
		}
	}

	lintRunner := runner.New(checker)
	if info.Version != "" {
		lintRunner.Revision = rules.Revision + "+" + info.Version
	}

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Fix:          cfg.Fix && !dryRun,
		DryRun:       dryRun,
		Backup:       flags.backup,
		Config:       cfg,
		Cache:        resultCache,
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
		logging.FieldDryRun, runOpts.DryRun,
		logging.FieldCache, resultCache.Dir(),
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("lint run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Breakdown:   flags.stats,
		Strict:      cfg.Strict,
		Compact:     flags.compact,
		WorkingDir:  workDir,
		Rules:       describeRules(checker),
		ToolVersion: info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result, cfg.Strict) != ExitSuccess {
		return ErrIssuesFound
	}

	return nil
}

func addLintFlags(cmd *cobra.Command, flags *lintFlags) {
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "apply the first quick fix of each diagnostic")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a backup of each file changed by --fix")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, diff")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule codes to disable (e.g. E002)")
	cmd.Flags().StringSliceVar(&flags.packs, "pack", nil, "additional rule packs to load (e.g. extended)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "do not read or write the result cache")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "print JSON without indentation")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "add per-rule and per-file statistics")
}
