package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/internal/cli"
	"github.com/yaklabco/adoclint/pkg/reporter"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}
}

// emptyConfig writes a config file that keeps the defaults, so tests do not
// pick up project configuration.
func emptyConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".adoclint.yml")
	require.NoError(t, os.WriteFile(path, []byte("cache: false\n"), 0o644))
	return path
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "adoclint", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "persistent flag %q", name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"lint", "rules", "init", "watch", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "subcommand %q", name)
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestLintCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)

	flags := []string{
		"fix", "backup", "format", "jobs", "ignore", "disable",
		"pack", "no-cache", "strict", "no-context", "compact", "stats",
	}
	for _, name := range flags {
		assert.NotNil(t, lintCmd.Flags().Lookup(name), "flag %q", name)
	}

	assert.Equal(t, "text", lintCmd.Flags().Lookup("format").DefValue)
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "--color", "never", "lint", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "Lint AsciiDoc files")
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "--no-cache")
	assert.Contains(t, out, "Global Flags:")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "adoclint")
	assert.Contains(t, out, "test-version")
	assert.Contains(t, out, "test-commit")
}

func TestLint_CleanDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDoc(t, dir, "clean.adoc", "= Title\n:toc:\n\nSee <<intro>>.\n")

	out, err := execute(t, "lint", "--config", emptyConfig(t), "--color", "never", doc)
	require.NoError(t, err)

	assert.Contains(t, out, "No issues found")
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromError(err))
}

func TestLint_ReportsIssues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDoc(t, dir, "broken.adoc", "= Title\n:toc\n\nSee <<intro\n")

	out, err := execute(t, "lint", "--config", emptyConfig(t), "--color", "never", doc)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Equal(t, cli.ExitLintErrors, cli.ExitCodeFromError(err))

	assert.Contains(t, out, "(E002)")
	assert.Contains(t, out, "(E003)")
	assert.Contains(t, out, "broken.adoc:2:1")
	assert.Contains(t, out, "broken.adoc:4:5")
}

func TestLint_Stats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDoc(t, dir, "broken.adoc", ":toc\n:icons\n")

	out, err := execute(t, "lint", "--config", emptyConfig(t), "--color", "never", "--stats", doc)
	require.ErrorIs(t, err, cli.ErrIssuesFound)

	assert.Contains(t, out, "Issues by rule")
	assert.Contains(t, out, "E002   2 issues")
	assert.Contains(t, out, "Lint failed with errors")
}

func TestLint_JSONOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDoc(t, dir, "broken.adoc", ":toc\n")

	out, err := execute(t, "lint", "--config", emptyConfig(t), "--format", "json", doc)
	require.ErrorIs(t, err, cli.ErrIssuesFound)

	var parsed reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))

	assert.Equal(t, reporter.JSONVersion, parsed.Version)
	require.Len(t, parsed.Files, 1)
	require.Len(t, parsed.Files[0].Diagnostics, 1)
	assert.Equal(t, "E002", parsed.Files[0].Diagnostics[0].Code)
	assert.Equal(t, 1, parsed.Summary.TotalIssues)
	assert.Equal(t, 1, parsed.Summary.Fixable)
}

func TestLint_DisableAndPacks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDoc(t, dir, "doc.adoc", ":toc\n\nSee <<missing>>.\n")

	out, err := execute(t, "lint", "--config", emptyConfig(t), "--format", "json",
		"--disable", "E002", "--pack", "extended", doc)
	require.NoError(t, err, "E005 reports warnings only")

	var parsed reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Len(t, parsed.Files, 1)

	codes := make([]string, 0, len(parsed.Files[0].Diagnostics))
	for _, diag := range parsed.Files[0].Diagnostics {
		codes = append(codes, diag.Code)
	}
	assert.NotContains(t, codes, "E002")
	assert.Contains(t, codes, "E005")
}

func TestLint_Strict(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDoc(t, dir, "doc.adoc", "See <<missing>>.\n")

	_, err := execute(t, "lint", "--config", emptyConfig(t), "--pack", "extended", doc)
	require.NoError(t, err)

	_, err = execute(t, "lint", "--config", emptyConfig(t), "--pack", "extended", "--strict", doc)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
}

func TestLint_SeverityOverridesFromConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDoc(t, dir, "doc.adoc", ":toc\n")
	cfg := writeDoc(t, dir, "adoclint.yml", "cache: false\nseverity_overrides:\n  E002: info\n")

	out, err := execute(t, "lint", "--config", cfg, "--color", "never", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "info")
}

func TestLint_Fix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDoc(t, dir, "doc.adoc", ":toc\nSee <<intro\n")

	_, err := execute(t, "lint", "--config", emptyConfig(t), "--color", "never", "--fix", doc)
	require.NoError(t, err)

	content, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, ":toc:\nSee <<intro>>\n", string(content))
}

func TestLint_DryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDoc(t, dir, "doc.adoc", ":toc\nSee <<intro\n")

	out, err := execute(t, "lint", "--config", emptyConfig(t), "--color", "never", "--dry-run", doc)
	require.ErrorIs(t, err, cli.ErrIssuesFound)

	assert.Contains(t, out, "@@ -1,2 +1,2 @@\n")
	assert.Contains(t, out, "-:toc\n")
	assert.Contains(t, out, "+See <<intro>>\n")
	assert.Contains(t, out, "1 file changed, 2 insertions(+), 2 deletions(-)")

	content, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, ":toc\nSee <<intro\n", string(content))

	_, err = execute(t, "lint", "--config", emptyConfig(t), "--dry-run", "--fix", doc)
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestLint_DiffFormatImpliesDryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDoc(t, dir, "doc.adoc", ":toc\n")

	out, err := execute(t, "lint", "--config", emptyConfig(t), "--color", "never", "--format", "diff", doc)
	require.ErrorIs(t, err, cli.ErrIssuesFound)
	assert.Contains(t, out, "+:toc:\n")

	content, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, ":toc\n", string(content))
}

func TestLint_SARIFOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDoc(t, dir, "doc.adoc", "See <<intro\n")

	out, err := execute(t, "lint", "--config", emptyConfig(t), "--format", "sarif", doc)
	require.ErrorIs(t, err, cli.ErrIssuesFound)

	var parsed reporter.SARIFOutput
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Len(t, parsed.Runs, 1)

	run := parsed.Runs[0]
	assert.Equal(t, "test-version", run.Tool.Driver.Version)
	require.Len(t, run.Results, 1)
	assert.Equal(t, "E003", run.Results[0].RuleID)
	require.Len(t, run.Results[0].Fixes, 1)
	assert.Equal(t, ">>", run.Results[0].Fixes[0].ArtifactChanges[0].Replacements[0].InsertedContent.Text)

	require.Len(t, run.Tool.Driver.Rules, 1)
	assert.Equal(t, "Cross references must be terminated with >>", run.Tool.Driver.Rules[0].ShortDescription.Text)
}

func TestLint_UsageErrors(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "lint", "--format", "xml")
	require.ErrorIs(t, err, cli.ErrUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))

	_, err = execute(t, "lint", "--no-such-flag")
	require.ErrorIs(t, err, cli.ErrUsage)

	_, err = execute(t, "watch")
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestLint_ConfigErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDoc(t, dir, "doc.adoc", "= Title\n")

	invalid := writeDoc(t, dir, "bad.yml", "severity_overrides:\n  E002: loud\n")
	_, err := execute(t, "lint", "--config", invalid, doc)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))

	_, err = execute(t, "lint", "--config", filepath.Join(dir, "missing.yml"), doc)
	require.ErrorIs(t, err, cli.ErrConfig)
}

func TestLint_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "lint", "--config", emptyConfig(t), filepath.Join(t.TempDir(), "missing.adoc"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(err))
}

func TestRulesCommand_JSON(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "rules", "--config", emptyConfig(t), "--format", "json", "--pack", "extended")
	require.NoError(t, err)

	var rules []struct {
		Code     string `json:"code"`
		Name     string `json:"name"`
		Pack     string `json:"pack"`
		Severity string `json:"severity"`
		Fixable  bool   `json:"fixable"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	require.Len(t, rules, 8)

	assert.Equal(t, "E001", rules[0].Code)
	assert.Equal(t, "UnclosedBlockRule", rules[0].Name)
	assert.Equal(t, "core", rules[0].Pack)
	assert.Equal(t, "error", rules[0].Severity)
	assert.True(t, rules[0].Fixable)
	assert.Equal(t, "extended", rules[7].Pack)
}

func TestRulesCommand_Text(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := writeDoc(t, dir, "adoclint.yml", "disable: [E003]\nseverity_overrides:\n  E002: warning\n")

	out, err := execute(t, "rules", "--config", cfg)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "E001")
	assert.Contains(t, lines[1], "warning")
	assert.Contains(t, lines[2], "off")

	_, err = execute(t, "rules", "--format", "xml")
	require.ErrorIs(t, err, cli.ErrUsage)
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, ".adoclint.yml")

	_, err := execute(t, "init", "--output", target)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# adoclint configuration"))
	assert.Contains(t, string(content), "packs:")
	assert.Contains(t, string(content), "- core")

	_, err = execute(t, "init", "--output", target)
	require.ErrorIs(t, err, cli.ErrUsage, "existing file needs --force")

	_, err = execute(t, "init", "--output", target, "--force")
	require.NoError(t, err)

	// The generated file loads cleanly.
	_, err = execute(t, "rules", "--config", target)
	require.NoError(t, err)
}

func TestInitCommand_TOML(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), ".adoclint.toml")

	_, err := execute(t, "init", "--format", "toml", "--output", target)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), `packs = ["core"]`)

	_, err = execute(t, "init", "--format", "json", "--output", target, "--force")
	require.ErrorIs(t, err, cli.ErrUsage)
}
