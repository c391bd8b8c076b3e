package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/pkg/lint"
)

func TestPackRegistry(t *testing.T) {
	t.Parallel()

	registry := lint.NewPackRegistry()
	registry.Register("beta", "second pack", func() ([]lint.Rule, error) {
		return []lint.Rule{&lineRule{}}, nil
	})
	registry.Register("alpha", "first pack", func() ([]lint.Rule, error) {
		return nil, nil
	})

	assert.Equal(t, []string{"alpha", "beta"}, registry.Names())
	assert.True(t, registry.Has("beta"))
	assert.False(t, registry.Has("gamma"))
	assert.Equal(t, "second pack", registry.Description("beta"))

	rules, err := registry.Loader("beta")()
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestPackRegistry_UnknownPack(t *testing.T) {
	t.Parallel()

	registry := lint.NewPackRegistry()

	rules, err := registry.Loader("missing")()

	require.ErrorIs(t, err, lint.ErrPackNotFound)
	assert.Contains(t, err.Error(), `"missing"`)
	assert.Nil(t, rules)
}

func TestPackRegistry_RegisterReplaces(t *testing.T) {
	t.Parallel()

	registry := lint.NewPackRegistry()
	registry.Register("p", "old", func() ([]lint.Rule, error) { return nil, nil })
	registry.Register("p", "new", func() ([]lint.Rule, error) {
		return []lint.Rule{&lineRule{}, &lineRule{}}, nil
	})

	rules, err := registry.Loader("p")()
	require.NoError(t, err)
	assert.Len(t, rules, 2)
	assert.Equal(t, "new", registry.Description("p"))
	assert.Len(t, registry.Names(), 1)
}
