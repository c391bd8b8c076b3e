package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/adoclint/pkg/config"
)

// envVarPrefix is the prefix for all adoclint environment variables.
const envVarPrefix = "ADOCLINT_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
	envTypeMap
)

type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
var envMappings = map[string]envMapping{
	"PACKS":              {field: "packs", typ: envTypeSlice, description: "Comma-separated rule packs to load"},
	"DISABLE":            {field: "disable", typ: envTypeSlice, description: "Comma-separated rule codes to disable"},
	"IGNORE":             {field: "ignore", typ: envTypeSlice, description: "Comma-separated ignore globs"},
	"SEVERITY_OVERRIDES": {field: "severity_overrides", typ: envTypeMap, description: "Comma-separated CODE=severity pairs"},
	"CACHE":              {field: "cache", typ: envTypeBool, description: "Enable the result cache: true or false"},
	"FIX":                {field: "fix", typ: envTypeBool, description: "Apply quick fixes: true or false"},
	"STRICT":             {field: "strict", typ: envTypeBool, description: "Fail on warnings: true or false"},
	"JOBS":               {field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	"FORMAT":             {field: "format", typ: envTypeString, description: "Output format: text or json"},
}

// LoadFromEnv applies ADOCLINT_* environment overrides to cfg. Unset or empty
// variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	// Sorted so the first reported error does not depend on map order.
	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	slices.Sort(suffixes)

	for _, suffix := range suffixes {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if err := applyEnvValue(cfg, envMappings[suffix], value, envVar); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		if mapping.field == "format" {
			cfg.Format = config.OutputFormat(strings.ToLower(strings.TrimSpace(value)))
		}
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		cfg.Jobs = i
	case envTypeSlice:
		setSliceField(cfg, mapping.field, parseSliceValue(value))
	case envTypeMap:
		for _, pair := range parseSliceValue(value) {
			code, sev, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("invalid pair for %s: %q (expected CODE=severity)", envVar, pair)
			}
			if cfg.SeverityOverrides == nil {
				cfg.SeverityOverrides = make(map[string]config.Severity)
			}
			cfg.SeverityOverrides[strings.TrimSpace(code)] = config.Severity(strings.TrimSpace(sev))
		}
	}
	return nil
}

func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setBoolField(cfg *config.Config, field string, value bool) {
	switch field {
	case "cache":
		cfg.Cache = value
	case "fix":
		cfg.Fix = value
	case "strict":
		cfg.Strict = value
	}
}

func setSliceField(cfg *config.Config, field string, value []string) {
	switch field {
	case "packs":
		cfg.Packs = value
	case "disable":
		cfg.Disable = value
	case "ignore":
		cfg.Ignore = value
	}
}

// ListEnvVars returns every supported environment variable with a
// description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		out[envVarPrefix+suffix] = mapping.description
	}
	return out
}
