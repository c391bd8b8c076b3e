package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fsutil"
)

const configHeader = `# adoclint configuration
#
# packs: rule packs to load ("core", "extended")
# disable: rule codes to skip, e.g. ["E002"]
# ignore: glob patterns for files to skip, e.g. ["build/**"]
# severity_overrides: per-code severity, e.g. {E003: warning}
# cache: reuse results for unchanged files`

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new adoclint configuration file",
		Long: `Create a new .adoclint.yml configuration file in the current directory
with the default settings.

Examples:
  adoclint init                      Create .adoclint.yml
  adoclint init --format toml        Create .adoclint.toml instead
  adoclint init --output custom.yml  Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .adoclint.yml or .adoclint.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	defaults := config.NewConfig()

	var (
		content     []byte
		err         error
		defaultPath string
	)
	switch flags.format {
	case "yaml":
		content, err = defaults.ToYAML()
		defaultPath = ".adoclint.yml"
	case "toml":
		content, err = defaults.ToTOML()
		defaultPath = ".adoclint.toml"
	default:
		return fmt.Errorf("%w: invalid format %q: must be yaml or toml", ErrUsage, flags.format)
	}
	if err != nil {
		return fmt.Errorf("generate config: %w", err)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultPath
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content = config.WithHeader(configHeader, content)
	if err := fsutil.WriteAtomic(commandContext(cmd), absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'adoclint rules' to see the rules of the configured packs")

	return nil
}
