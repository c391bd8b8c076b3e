package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/pkg/runner"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()

	out := make([]string, 0, len(paths))
	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.adoc":        "= Index",
		"guide.asciidoc":    "= Guide",
		"notes.md":          "# Not AsciiDoc",
		"UPPER.ADOC":        "= Upper",
		".hidden/x.adoc":    "= Hidden",
		".draft.adoc":       "= Draft",
		"build/out.adoc":    "= Generated",
		"chapters/one.asc":  "= One",
		"chapters/two.ad":   "= Two",
		"chapters/skip.txt": "text",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   root,
		ExcludeGlobs: []string{"build/**"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"UPPER.ADOC",
		"chapters/one.asc",
		"chapters/two.ad",
		"guide.asciidoc",
		"index.adoc",
	}, relPaths(t, root, files))

	for _, path := range files {
		assert.True(t, filepath.IsAbs(path))
	}
}

func TestDiscover_ExcludeByBaseName(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.adoc":          "a",
		"docs/b.adoc":     "b",
		"docs/CHANGES.ad": "c",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   root,
		ExcludeGlobs: []string{"*.ad", "**/b.adoc"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.adoc"}, relPaths(t, root, files))
}

func TestDiscover_ExplicitFilesAreDeduplicated(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.adoc":  "a",
		"b.adoc":  "b",
		"c.txt":   "c",
		".x.adoc": "x",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: root,
		Paths:      []string{"b.adoc", ".", "b.adoc", "c.txt", ".x.adoc"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{".x.adoc", "a.adoc", "b.adoc"}, relPaths(t, root, files))
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.adoc": "a",
		"b.txt":  "b",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: root,
		Extensions: []string{".txt"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"b.txt"}, relPaths(t, root, files))
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: root,
		Paths:      []string{"missing"},
	})
	require.Error(t, err)

	_, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:   root,
		ExcludeGlobs: []string{"[unclosed"},
	})
	require.ErrorContains(t, err, "invalid ignore pattern")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{WorkingDir: root})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".adoc", ".asciidoc", ".asc", ".ad"}, runner.DefaultExtensions())
}
