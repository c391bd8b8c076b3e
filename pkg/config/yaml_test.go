package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices and maps", func(t *testing.T) {
		original := config.NewConfig()
		original.Ignore = []string{"build/**"}
		original.SeverityOverrides["E002"] = config.SeverityWarning

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)

		clone.Ignore[0] = "changed"
		clone.Packs[0] = "extended"
		clone.SeverityOverrides["E002"] = config.SeverityInfo

		assert.Equal(t, "build/**", original.Ignore[0])
		assert.Equal(t, "core", original.Packs[0])
		assert.Equal(t, config.SeverityWarning, original.SeverityOverrides["E002"])
	})

	t.Run("preserves CLI fields", func(t *testing.T) {
		original := config.NewConfig()
		original.Fix = true
		original.Jobs = 4
		original.Strict = true

		clone := original.Clone()
		assert.True(t, clone.Fix)
		assert.Equal(t, 4, clone.Jobs)
		assert.True(t, clone.Strict)
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Packs = []string{"core", "extended"}
	original.Disable = []string{"E005"}
	original.SeverityOverrides["E002"] = config.SeverityWarning
	original.Fix = true

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "packs:")
	assert.NotContains(t, string(data), "fix")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, original.Packs, parsed.Packs)
	assert.Equal(t, original.Disable, parsed.Disable)
	assert.Equal(t, config.SeverityWarning, parsed.SeverityOverrides["E002"])
	assert.False(t, parsed.Fix, "CLI-only fields are not serialized")
}

func TestTOMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Packs = []string{"extended"}
	original.Ignore = []string{"vendor/**"}
	original.Cache = false

	data, err := original.ToTOML()
	require.NoError(t, err)

	parsed, err := config.FromTOML(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"extended"}, parsed.Packs)
	assert.Equal(t, []string{"vendor/**"}, parsed.Ignore)
	assert.False(t, parsed.Cache)
}

func TestDecodeYAML_KeepsUnsetFields(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"keep/**"}

	require.NoError(t, config.DecodeYAML([]byte("disable: [E003]\n"), cfg))

	assert.Equal(t, []string{"E003"}, cfg.Disable)
	assert.Equal(t, []string{"keep/**"}, cfg.Ignore)
	assert.Equal(t, config.DefaultPacks(), cfg.Packs)
}

func TestFromYAML_Invalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("packs: [unclosed"))
	require.Error(t, err)
}

func TestWithHeader(t *testing.T) {
	t.Parallel()

	out := config.WithHeader("# header", []byte("packs: []\n"))
	assert.Equal(t, "# header\n\npacks: []\n", string(out))
	assert.Equal(t, "body", string(config.WithHeader("", []byte("body"))))
}
