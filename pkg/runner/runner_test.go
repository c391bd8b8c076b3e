package runner_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/cache"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fsutil"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/lint/rules"
	"github.com/yaklabco/adoclint/pkg/runner"
)

func newRunner() *runner.Runner {
	checker := lint.NewChecker(
		lint.WithLogger(logging.Discard()),
		lint.WithRules(rules.CorePack().New()...),
	)
	r := runner.New(checker)
	r.Logger = logging.Discard()
	return r
}

func codes(diags []lint.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, diag := range diags {
		out = append(out, diag.Code)
	}
	return out
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"clean.adoc":  "= Clean\n\nNothing to see.\n",
		"broken.adoc": ":toc\nSee <<intro\n",
		"block.adoc":  "[source,python]\n----\nprint(1)\n",
	})

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Jobs: 2})
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, []string{"block.adoc", "broken.adoc", "clean.adoc"}, relPaths(t, root, []string{
		result.Files[0].Path, result.Files[1].Path, result.Files[2].Path,
	}))

	assert.Equal(t, []string{"E001"}, codes(result.Files[0].Diagnostics))
	assert.Equal(t, []string{"E002", "E003"}, codes(result.Files[1].Diagnostics))
	assert.Empty(t, result.Files[2].Diagnostics)

	stats := result.Stats
	assert.Equal(t, 3, stats.FilesDiscovered)
	assert.Equal(t, 3, stats.FilesProcessed)
	assert.Equal(t, 2, stats.FilesWithIssues)
	assert.Equal(t, 3, stats.DiagnosticsTotal)
	assert.Equal(t, 3, stats.DiagnosticsFixable)
	assert.Equal(t, 3, stats.DiagnosticsBySeverity[config.SeverityError])
	assert.Zero(t, stats.FilesModified)

	assert.True(t, result.HasIssues())
	assert.True(t, result.HasFailures(false))
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)

	assert.Empty(t, result.Files)
	assert.False(t, result.HasIssues())
	assert.False(t, result.HasFailures(true))
}

func TestRunner_Run_DeterministicOrder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	files := map[string]string{}
	for _, name := range []string{"e", "a", "d", "c", "b", "f", "h", "g"} {
		files[name+".adoc"] = "<<" + name + "\n"
	}
	writeTree(t, root, files)

	for range 5 {
		result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Jobs: 4})
		require.NoError(t, err)

		got := make([]string, 0, len(result.Files))
		for _, outcome := range result.Files {
			got = append(got, outcome.Path)
		}
		assert.IsNonDecreasing(t, got)
		assert.Len(t, got, 8)
	}
}

func TestRunner_Run_SeverityOverrides(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"doc.adoc": ":toc\n"})

	cfg := config.NewConfig()
	cfg.SeverityOverrides["E002"] = config.SeverityWarning

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Config: cfg})
	require.NoError(t, err)

	require.Len(t, result.Files[0].Diagnostics, 1)
	assert.Equal(t, config.SeverityWarning, result.Files[0].Diagnostics[0].Severity)
	assert.False(t, result.HasFailures(false))
	assert.True(t, result.HasFailures(true))
}

func TestRunner_Run_Cache(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.adoc": ":toc\n",
		"b.adoc": "= Clean\n",
	})

	store, err := cache.Open(t.TempDir())
	require.NoError(t, err)

	opts := runner.Options{WorkingDir: root, Cache: store}

	first, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Zero(t, first.Stats.CacheHits)

	second, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Stats.CacheHits)
	assert.Equal(t, first.Files[0].Diagnostics, second.Files[0].Diagnostics)
	assert.Empty(t, second.Files[1].Diagnostics)
}

func TestRunner_Run_Fix(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"doc.adoc": ":toc\nSee <<intro\n"})

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: root,
		Fix:        true,
		Backup:     true,
	})
	require.NoError(t, err)

	outcome := result.Files[0]
	require.NoError(t, outcome.Error)
	assert.True(t, outcome.Written)
	assert.Equal(t, 2, outcome.FixesApplied)
	assert.Empty(t, outcome.Diagnostics)
	assert.Equal(t, 1, result.Stats.FilesModified)
	assert.Equal(t, 2, result.Stats.DiagnosticsFixed)

	path := filepath.Join(root, "doc.adoc")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":toc:\nSee <<intro>>\n", string(content))

	backup, err := os.ReadFile(path + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, ":toc\nSee <<intro\n", string(backup))
}

func TestRunner_Run_DryRun(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"doc.adoc":   ":toc\nSee <<intro\n",
		"block.adoc": "[source,python]\n----\nprint(1)\n",
	})

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, DryRun: true})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	block := result.Files[0]
	assert.Nil(t, block.Diff, "a rule whose fixes never converge leaves nothing to preview")
	assert.Equal(t, []string{"E001"}, codes(block.Diagnostics))

	doc := result.Files[1]
	require.NoError(t, doc.Error)
	assert.False(t, doc.Written)
	assert.Zero(t, doc.FixesApplied)
	assert.Equal(t, []string{"E002", "E003"}, codes(doc.Diagnostics))
	assert.Equal(t, ":toc\nSee <<intro\n", string(doc.Content))

	require.True(t, doc.Diff.HasChanges())
	assert.Equal(t, 2, doc.Diff.Additions)
	assert.Contains(t, doc.Diff.String(), "+See <<intro>>\n")

	assert.Equal(t, 1, result.Stats.FilesWithDiffs)
	assert.Zero(t, result.Stats.FilesModified)

	content, err := os.ReadFile(doc.Path)
	require.NoError(t, err)
	assert.Equal(t, ":toc\nSee <<intro\n", string(content))
}

func TestRunner_Run_LoggerFromContext(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.adoc": "= A\n"})

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "debug"))

	r := runner.New(lint.NewChecker(
		lint.WithLogger(logging.Discard()),
		lint.WithRules(rules.CorePack().New()...),
	))
	_, err := r.Run(ctx, runner.Options{WorkingDir: root})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "files discovered")
}

func TestRunner_Run_FixSkipsNonConvergingRules(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"block.adoc": "[source,python]\n----\nprint(1)\n",
		"mixed.adoc": ":toc\n[source,python]\n----\nprint(1)\n",
	})

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Fix: true})
	require.NoError(t, err)

	block := result.Files[0]
	assert.False(t, block.Written)
	assert.Zero(t, block.FixesApplied)
	assert.Equal(t, []string{"E001"}, codes(block.Diagnostics))

	mixed := result.Files[1]
	assert.True(t, mixed.Written)
	assert.Equal(t, 1, mixed.FixesApplied)
	assert.Equal(t, []string{"E001"}, codes(mixed.Diagnostics))

	content, err := os.ReadFile(mixed.Path)
	require.NoError(t, err)
	assert.Equal(t, ":toc:\n[source,python]\n----\nprint(1)\n", string(content))

	unchanged, err := os.ReadFile(block.Path)
	require.NoError(t, err)
	assert.Equal(t, "[source,python]\n----\nprint(1)\n", string(unchanged))
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.adoc": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{WorkingDir: root})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Signature(t *testing.T) {
	t.Parallel()

	assert.Equal(t, rules.Revision+";UnclosedBlockRule,InvalidAttributeRule,MalformedXRefRule", newRunner().Signature())

	rebuilt := newRunner()
	rebuilt.Revision = rules.Revision + "+v9.9.9"
	assert.NotEqual(t, newRunner().Signature(), rebuilt.Signature())
}

func TestRunner_Run_CacheKeyedByRevision(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"doc.adoc": ":toc\n"})

	store, err := cache.Open(t.TempDir())
	require.NoError(t, err)
	opts := runner.Options{WorkingDir: root, Cache: store}

	first, err := newRunner().Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Zero(t, first.Stats.CacheHits)

	upgraded := newRunner()
	upgraded.Revision = "2"
	second, err := upgraded.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Zero(t, second.Stats.CacheHits, "a new revision must not reuse cached diagnostics")
	assert.Equal(t, first.Files[0].Diagnostics, second.Files[0].Diagnostics)

	third, err := upgraded.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, third.Stats.CacheHits)
}
