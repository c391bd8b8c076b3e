package configloader

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/adoclint/pkg/config"
)

// ErrInvalidConfig marks configuration that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError represents one configuration problem.
type ValidationError struct {
	// Field is the path to the invalid field (e.g. "severity_overrides.E004").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the problem.
	Message string

	// FilePath is the config file containing the error, if known.
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// Unwrap makes every validation error match ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors prevent the configuration from being used.
	Errors []ValidationError

	// Warnings are reported but do not stop loading.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err joins every error, or returns nil when the result is valid.
func (r *ValidationResult) Err() error {
	errs := make([]error, 0, len(r.Errors))
	for idx := range r.Errors {
		errs = append(errs, &r.Errors[idx])
	}
	return errors.Join(errs...)
}

// Known lists the packs and rule codes the configuration may refer to.
// Empty lists disable the corresponding checks.
type Known struct {
	Packs []string
	Codes []string
}

func (r *ValidationResult) errorf(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks cfg and normalizes severity overrides to their canonical
// names ("warn" becomes "warning").
func Validate(cfg *config.Config, known Known) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	switch cfg.Format {
	case "", config.FormatText, config.FormatJSON, config.FormatSARIF, config.FormatDiff:
	default:
		result.errorf("format", cfg.Format, "invalid format %q; must be one of: text, json, sarif, diff", cfg.Format)
	}

	if cfg.Jobs < 0 {
		result.errorf("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for idx, pack := range cfg.Packs {
		if len(known.Packs) > 0 && !slices.Contains(known.Packs, pack) {
			result.warnf(fmt.Sprintf("packs[%d]", idx), pack,
				"unknown rule pack %q; available: %s", pack, strings.Join(known.Packs, ", "))
		}
	}

	for idx, code := range cfg.Disable {
		if !knownCode(known, code) {
			result.warnf(fmt.Sprintf("disable[%d]", idx), code, "unknown rule %q; it will be ignored", code)
		}
	}

	codes := make([]string, 0, len(cfg.SeverityOverrides))
	for code := range cfg.SeverityOverrides {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	for _, code := range codes {
		field := "severity_overrides." + code
		sev, err := config.ParseSeverity(string(cfg.SeverityOverrides[code]))
		if err != nil {
			result.errorf(field, cfg.SeverityOverrides[code], "%v", err)
			continue
		}
		cfg.SeverityOverrides[code] = sev
		if !knownCode(known, code) {
			result.warnf(field, code, "unknown rule %q; override will have no effect", code)
		}
	}

	for idx, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.errorf(fmt.Sprintf("ignore[%d]", idx), pattern, "invalid glob pattern: %v", err)
		}
	}

	return result
}

func knownCode(known Known, code string) bool {
	return len(known.Codes) == 0 || slices.Contains(known.Codes, code)
}
