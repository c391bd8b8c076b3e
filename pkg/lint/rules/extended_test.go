package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
)

func TestDuplicateAnchorRule(t *testing.T) {
	t.Parallel()

	input := "[[intro]]\n== Intro\n\n[#intro]\n== Again\n[[other]] and [[intro]]"
	diags := runRule(t, NewDuplicateAnchorRule(), input, nil)

	require.Len(t, diags, 2)
	assert.Equal(t, "E004", diags[0].Code)
	assert.Equal(t, config.SeverityWarning, diags[0].Severity)
	assert.Equal(t, 3, diags[0].Line)
	assert.Equal(t, 0, diags[0].Column)
	assert.Equal(t, len("[#intro]"), diags[0].Length)
	assert.Contains(t, diags[0].Message, "line 1")

	assert.Equal(t, 5, diags[1].Line)
	assert.Equal(t, len("[[other]] and "), diags[1].Column)
	assert.False(t, diags[1].HasFix())
}

func TestDuplicateAnchorRule_NoDuplicates(t *testing.T) {
	t.Parallel()

	assert.Empty(t, runRule(t, NewDuplicateAnchorRule(), "[[a]]\n[[b]]\n[#c]", nil))
	assert.Empty(t, runRule(t, NewDuplicateAnchorRule(), "", nil))
}

func TestDuplicateAnchorRule_IgnoresBlocks(t *testing.T) {
	t.Parallel()

	input := "[[a]]\n----\n[[a]]\n----"

	assert.Empty(t, runRule(t, NewDuplicateAnchorRule(), input, nil))
}

func TestDuplicateAnchorRule_Incremental(t *testing.T) {
	t.Parallel()

	input := "[[a]]\n[[a]]\n[[a]]"

	diags := runRule(t, NewDuplicateAnchorRule(), input, []int{0, 2})

	require.Len(t, diags, 1)
	assert.Equal(t, 2, diags[0].Line)
}

func TestUnresolvedXRefRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		wantN int
	}{
		{name: "resolved", input: "[[intro]]\nSee <<intro>>.", wantN: 0},
		{name: "resolved with text", input: "[#intro]\nSee <<intro,the intro>>.", wantN: 0},
		{name: "unresolved", input: "See <<missing>>.", wantN: 1},
		{name: "unterminated is left to E003", input: "See <<missing", wantN: 0},
		{name: "other document", input: "See <<other.adoc#sec>> and <<other.adoc>>.", wantN: 0},
		{name: "generated section id", input: "See <<_introduction>>.", wantN: 0},
		{name: "natural reference", input: "See <<Getting Started>>.", wantN: 0},
		{name: "inside listing", input: "----\n<<missing>>\n----", wantN: 0},
		{name: "anchor declared later", input: "See <<later>>.\n\n[[later]]\n== Later", wantN: 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			diags := runRule(t, NewUnresolvedXRefRule(), testCase.input, nil)
			assert.Len(t, diags, testCase.wantN)
		})
	}
}

func TestUnresolvedXRefRule_Position(t *testing.T) {
	t.Parallel()

	diags := runRule(t, NewUnresolvedXRefRule(), "See <<missing,here>>.", nil)

	require.Len(t, diags, 1)
	assert.Equal(t, "E005", diags[0].Code)
	assert.Equal(t, 4, diags[0].Column)
	assert.Equal(t, len("<<missing,here>>"), diags[0].Length)
	assert.Contains(t, diags[0].Message, `"missing"`)
}

func TestUndefinedAttributeRule(t *testing.T) {
	t.Parallel()

	input := ":product: adoclint\n\n{product} by {author} uses {missing}.\n\\{escaped}\n----\n{inside}\n----"
	diags := runRule(t, NewUndefinedAttributeRule(), input, nil)

	require.Len(t, diags, 1)
	diag := diags[0]
	assert.Equal(t, "E006", diag.Code)
	assert.Equal(t, config.SeverityInfo, diag.Severity)
	assert.Equal(t, 2, diag.Line)
	assert.Equal(t, len("{product} by {author} uses "), diag.Column)
	assert.Equal(t, len("{missing}"), diag.Length)

	require.Len(t, diag.Fixes, 1)
	assert.Equal(t, []fix.TextEdit{fix.Insert(0, 0, ":missing:\n")}, diag.Fixes[0].Edits)

	fixed := applyFirstFix(t, input, diag)
	assert.Empty(t, runRule(t, NewUndefinedAttributeRule(), fixed, nil))
}

func TestUndefinedAttributeRule_Incremental(t *testing.T) {
	t.Parallel()

	input := "{a}\n{b}"

	diags := runRule(t, NewUndefinedAttributeRule(), input, []int{1})

	require.Len(t, diags, 1)
	assert.Equal(t, 1, diags[0].Line)
}

func TestDuplicateIncludeRule(t *testing.T) {
	t.Parallel()

	input := "include::a.adoc[]\ninclude::b.adoc[]\ninclude::a.adoc[leveloffset=+1]"
	diags := runRule(t, NewDuplicateIncludeRule(), input, nil)

	require.Len(t, diags, 1)
	assert.Equal(t, "E007", diags[0].Code)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, len("include::a.adoc[leveloffset=+1]"), diags[0].Length)
	assert.Contains(t, diags[0].Message, "line 1")
}

func TestDuplicateIncludeRule_NoDuplicates(t *testing.T) {
	t.Parallel()

	assert.Empty(t, runRule(t, NewDuplicateIncludeRule(), "include::a.adoc[]\ninclude::b.adoc[]", nil))
}

func TestSourceLanguageRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantN        int
		wantSeverity config.Severity
		wantColumn   int
	}{
		{name: "known language", input: "[source,python]\n----\nprint(1)\n----", wantN: 0},
		{name: "known alias with options", input: "[source,js,linenums]\n----\nx\n----", wantN: 0},
		{
			name:         "unknown language",
			input:        "[source,pyhton]\n----\nprint(1)\n----",
			wantN:        1,
			wantSeverity: config.SeverityWarning,
			wantColumn:   len("[source,"),
		},
		{
			name:         "missing language",
			input:        "[source]\n----\nhello\n----",
			wantN:        1,
			wantSeverity: config.SeverityInfo,
		},
		{
			name:         "empty language",
			input:        "[source,]\n----\nhello\n----",
			wantN:        1,
			wantSeverity: config.SeverityInfo,
		},
		{name: "inside another block", input: "====\n[source,nope]\n====", wantN: 0},
		{name: "not a source block", input: "[listing]\n----\nx\n----", wantN: 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			diags := runRule(t, NewSourceLanguageRule(), testCase.input, nil)
			require.Len(t, diags, testCase.wantN)
			if testCase.wantN == 0 {
				return
			}

			assert.Equal(t, "E008", diags[0].Code)
			assert.Equal(t, testCase.wantSeverity, diags[0].Severity)
			assert.Equal(t, testCase.wantColumn, diags[0].Column)
		})
	}
}

func TestSourceLanguageRule_DetectsMissingLanguage(t *testing.T) {
	t.Parallel()

	input := "[source]\n----\npackage main\n\nfunc main() {}\n----\n"
	diags := runRule(t, NewSourceLanguageRule(), input, nil)

	require.Len(t, diags, 1)
	require.Len(t, diags[0].Fixes, 1)
	assert.Equal(t, "Set language to go", diags[0].Fixes[0].Title)

	fixed := applyFirstFix(t, input, diags[0])
	assert.Equal(t, "[source,go]\n----\npackage main\n\nfunc main() {}\n----\n", fixed)
	assert.Empty(t, runRule(t, NewSourceLanguageRule(), fixed, nil))
}

func TestSourceLanguageRule_NoFixWithoutContent(t *testing.T) {
	t.Parallel()

	diags := runRule(t, NewSourceLanguageRule(), "[source]\nno fence here", nil)

	require.Len(t, diags, 1)
	assert.False(t, diags[0].HasFix())
}
