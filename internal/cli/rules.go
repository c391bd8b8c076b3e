package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/configloader"
	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/lint/rules"
)

type rulesFlags struct {
	format string
	packs  []string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Pack        string `json:"pack"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Fixable     bool   `json:"fixable"`
	Disabled    bool   `json:"disabled,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List the rules of every configured pack with their codes, descriptions,
effective severity, and whether they offer quick fixes.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.format != "text" && flags.format != formatJSON {
				return fmt.Errorf("%w: unknown format %q; valid formats: text, json", ErrUsage, flags.format)
			}

			cfg, _, err := loadConfig(cmd, &configloader.Overrides{Packs: flags.packs})
			if err != nil {
				return err
			}

			infos := collectRules(cfg)

			if flags.format == formatJSON {
				return outputRulesJSON(cmd.OutOrStdout(), infos)
			}
			outputRulesText(cmd.OutOrStdout(), infos)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringSliceVar(&flags.packs, "pack", nil, "additional rule packs to list")

	return cmd
}

// collectRules describes the rules of the configured packs, in pack order.
func collectRules(cfg *config.Config) []ruleInfo {
	infos := make([]ruleInfo, 0)
	for _, name := range cfg.Packs {
		pack := rules.PackByName(name)
		if pack == nil {
			continue
		}
		checker := lint.NewChecker(lint.WithLogger(logging.Discard()), lint.WithRules(pack.New()...))
		ruleNames := checker.RuleNames()

		for idx, rule := range checker.Rules() {
			describer, ok := rule.(lint.Describer)
			if !ok {
				continue
			}
			code := describer.Code()
			infos = append(infos, ruleInfo{
				Code:        code,
				Name:        ruleNames[idx],
				Pack:        pack.Name,
				Description: describer.Description(),
				Severity:    string(cfg.SeverityFor(code, describer.DefaultSeverity())),
				Fixable:     describer.CanFix(),
				Disabled:    slices.Contains(cfg.Disable, code),
			})
		}
	}
	return infos
}

func outputRulesText(w io.Writer, infos []ruleInfo) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(log.InfoLevel)

	if len(infos) == 0 {
		logger.Info("no rules loaded; check the packs setting")
		return
	}

	for _, info := range infos {
		fixable := "-"
		if info.Fixable {
			fixable = "yes"
		}
		severity := info.Severity
		if info.Disabled {
			severity = "off"
		}

		logger.Info(info.Code,
			logging.FieldPack, info.Pack,
			logging.FieldSeverity, severity,
			logging.FieldFixable, fixable,
			logging.FieldDescription, info.Description,
		)
	}
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(w io.Writer, infos []ruleInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
