package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/pkg/config"
)

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    config.Severity
		wantErr bool
	}{
		{input: "error", want: config.SeverityError},
		{input: "ERROR", want: config.SeverityError},
		{input: "warning", want: config.SeverityWarning},
		{input: "warn", want: config.SeverityWarning},
		{input: " info ", want: config.SeverityInfo},
		{input: "fatal", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, testCase := range tests {
		got, err := config.ParseSeverity(testCase.input)
		if testCase.wantErr {
			require.Error(t, err, "input %q", testCase.input)
			continue
		}
		require.NoError(t, err, "input %q", testCase.input)
		assert.Equal(t, testCase.want, got)
	}
}

func TestSeverityRank(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.SeverityError.Rank(), config.SeverityWarning.Rank())
	assert.Greater(t, config.SeverityWarning.Rank(), config.SeverityInfo.Rank())
	assert.Equal(t, 0, config.Severity("bogus").Rank())
	assert.False(t, config.Severity("bogus").IsValid())
}

func TestSeverityFor(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.SeverityOverrides["E001"] = config.SeverityInfo
	cfg.SeverityOverrides["E002"] = config.Severity("nonsense")

	assert.Equal(t, config.SeverityInfo, cfg.SeverityFor("E001", config.SeverityError))
	assert.Equal(t, config.SeverityError, cfg.SeverityFor("E002", config.SeverityError))
	assert.Equal(t, config.SeverityWarning, cfg.SeverityFor("E999", config.SeverityWarning))

	var nilCfg *config.Config
	assert.Equal(t, config.SeverityError, nilCfg.SeverityFor("E001", config.SeverityError))
}
