package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// Diagnostic columns count code points, which SARIF calls unicodeCodePoints.
const sarifColumnKind = "unicodeCodePoints"

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool       SARIFTool     `json:"tool"`
	ColumnKind string        `json:"columnKind"`
	Results    []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes one diagnostic code.
type SARIFRule struct {
	ID               string               `json:"id"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
	Fixes     []SARIFFix      `json:"fixes,omitempty"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes a text region. Lines and columns are 1-based and
// EndColumn is exclusive.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFFix is one quick fix of a diagnostic.
type SARIFFix struct {
	Description     SARIFMessage          `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

// SARIFArtifactChange describes changes to a file.
type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Replacements     []SARIFReplacement    `json:"replacements"`
}

// SARIFReplacement replaces DeletedRegion with InsertedContent. An empty
// region is a pure insertion.
type SARIFReplacement struct {
	DeletedRegion   SARIFRegion           `json:"deletedRegion"`
	InsertedContent *SARIFInsertedContent `json:"insertedContent,omitempty"`
}

// SARIFInsertedContent contains the replacement text.
type SARIFInsertedContent struct {
	Text string `json:"text"`
}

// SARIFReporter formats results as a SARIF 2.1.0 log.
type SARIFReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := BuildSARIFOutput(result, r.opts.WorkingDir, r.opts.Rules)
	output.Runs[0].Tool.Driver.Version = r.opts.ToolVersion

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

// BuildSARIFOutput converts result into a SARIF log with one run. Artifact
// URIs are slash-separated and relative to workDir when possible. Rules
// listed in described supply the rule descriptions; other codes fall back to
// the first diagnostic's message.
func BuildSARIFOutput(result *runner.Result, workDir string, described []lint.Describer) *SARIFOutput {
	byCode := make(map[string]lint.Describer, len(described))
	for _, rule := range described {
		byCode[rule.Code()] = rule
	}

	run := SARIFRun{
		Tool: SARIFTool{
			Driver: SARIFDriver{
				Name:           "adoclint",
				InformationURI: "https://github.com/yaklabco/adoclint",
				Rules:          make([]SARIFRule, 0),
			},
		},
		ColumnKind: sarifColumnKind,
		Results:    make([]SARIFResult, 0),
	}

	if result != nil {
		rulesSeen := make(map[string]bool)
		for idx := range result.Files {
			file := &result.Files[idx]
			if file.Error != nil {
				continue
			}
			uri := filepath.ToSlash(displayPath(file.Path, workDir))

			for _, diag := range file.Diagnostics {
				if !rulesSeen[diag.Code] {
					rulesSeen[diag.Code] = true
					run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule(diag, byCode[diag.Code]))
				}
				run.Results = append(run.Results, sarifResult(diag, uri))
			}
		}
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

func sarifRule(diag lint.Diagnostic, described lint.Describer) SARIFRule {
	if described == nil {
		return SARIFRule{
			ID:               diag.Code,
			ShortDescription: SARIFMultiformatText{Text: diag.Message},
			DefaultConfig:    &SARIFRuleConfig{Level: severityToSARIFLevel(diag.Severity)},
		}
	}
	return SARIFRule{
		ID:               diag.Code,
		ShortDescription: SARIFMultiformatText{Text: described.Description()},
		DefaultConfig:    &SARIFRuleConfig{Level: severityToSARIFLevel(described.DefaultSeverity())},
	}
}

func sarifResult(diag lint.Diagnostic, uri string) SARIFResult {
	res := SARIFResult{
		RuleID:  diag.Code,
		Level:   severityToSARIFLevel(diag.Severity),
		Message: SARIFMessage{Text: diag.Message},
		Locations: []SARIFLocation{{
			PhysicalLocation: SARIFPhysicalLocation{
				ArtifactLocation: SARIFArtifactLocation{URI: uri},
				Region: SARIFRegion{
					StartLine:   diag.Line + 1,
					StartColumn: diag.Column + 1,
					EndLine:     diag.Line + 1,
					EndColumn:   diag.Column + 1 + diag.Length,
				},
			},
		}},
	}

	for _, qf := range diag.Fixes {
		res.Fixes = append(res.Fixes, sarifFix(qf, uri))
	}
	return res
}

func sarifFix(qf fix.QuickFix, uri string) SARIFFix {
	replacements := make([]SARIFReplacement, 0, len(qf.Edits))
	for _, edit := range qf.Edits {
		replacement := SARIFReplacement{
			DeletedRegion: SARIFRegion{
				StartLine:   edit.StartLine + 1,
				StartColumn: edit.StartColumn + 1,
				EndLine:     edit.EndLine + 1,
				EndColumn:   edit.EndColumn + 1,
			},
		}
		if edit.NewText != "" {
			replacement.InsertedContent = &SARIFInsertedContent{Text: edit.NewText}
		}
		replacements = append(replacements, replacement)
	}

	return SARIFFix{
		Description: SARIFMessage{Text: qf.Title},
		ArtifactChanges: []SARIFArtifactChange{{
			ArtifactLocation: SARIFArtifactLocation{URI: uri},
			Replacements:     replacements,
		}},
	}
}

func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityWarning:
		return "warning"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
