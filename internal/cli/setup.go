package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/configloader"
	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/lint/rules"
)

// commandContext returns the command's context, or a background context
// when the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// knownRules lists every built-in pack and rule code for config validation.
func knownRules() configloader.Known {
	known := configloader.Known{Packs: rules.PackNames()}
	for _, rule := range rules.Builtin() {
		if describer, ok := rule.(lint.Describer); ok {
			known.Codes = append(known.Codes, describer.Code())
		}
	}
	return known
}

// loadConfig resolves the configuration for cmd, layering overrides on top.
func loadConfig(cmd *cobra.Command, overrides *configloader.Overrides) (*config.Config, string, error) {
	logger := logging.FromContext(commandContext(cmd))

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Overrides:    overrides,
		Known:        knownRules(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldPack, cfg.Packs,
		logging.FieldFix, cfg.Fix,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldCache, cfg.Cache,
	)

	return cfg, workDir, nil
}

// buildChecker loads the configured packs into a Checker and removes the
// disabled rule codes.
func buildChecker(cfg *config.Config, logger *log.Logger) *lint.Checker {
	opts := []lint.CheckerOption{lint.WithLogger(logger)}
	for _, name := range cfg.Packs {
		opts = append(opts, lint.WithRulePack(name, rules.LoadPack(name)))
	}

	checker := lint.NewChecker(opts...)

	for _, code := range cfg.Disable {
		if removed := disableCode(checker, code); removed == 0 {
			logger.Debug("disabled rule is not loaded", logging.FieldCode, code)
		}
	}

	return checker
}

// describeRules returns the metadata of every loaded rule that exposes it.
func describeRules(checker *lint.Checker) []lint.Describer {
	var described []lint.Describer
	for _, rule := range checker.Rules() {
		if describer, ok := rule.(lint.Describer); ok {
			described = append(described, describer)
		}
	}
	return described
}

// disableCode removes every loaded rule reporting code and returns how many
// were removed.
func disableCode(checker *lint.Checker, code string) int {
	removed := 0
	for _, rule := range checker.Rules() {
		describer, ok := rule.(lint.Describer)
		if !ok || describer.Code() != code {
			continue
		}
		if err := checker.RemoveRule(rule); err == nil {
			removed++
		}
	}
	return removed
}
