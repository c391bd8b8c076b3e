package adoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/adoclint/pkg/adoc"
)

func TestSplitLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{name: "empty", text: "", expected: []string{}},
		{name: "single line", text: "hello", expected: []string{"hello"}},
		{name: "trailing newline", text: "hello\n", expected: []string{"hello"}},
		{name: "multiple lines", text: "a\nb\nc", expected: []string{"a", "b", "c"}},
		{name: "crlf", text: "a\r\nb\r\n", expected: []string{"a", "b"}},
		{name: "blank lines kept", text: "a\n\nb", expected: []string{"a", "", "b"}},
		{name: "only newline", text: "\n", expected: []string{""}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, adoc.SplitLines(testCase.text))
		})
	}
}

func TestIsDelimiter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line     string
		expected bool
	}{
		{"----", true},
		{"-----", true},
		{"====", true},
		{"****", true},
		{"____", true},
		{"++++", true},
		{"---", false},
		{"", false},
		{"-=-=", false},
		{"---- ", false},
		{"....", false},
		{"code", false},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.expected, adoc.IsDelimiter(testCase.line), "line %q", testCase.line)
	}
}

func TestIsInsideCodeBlock(t *testing.T) {
	t.Parallel()

	lines := []string{"----", "code", "----", "text", "-----", "code", "-----"}

	assert.True(t, adoc.IsInsideCodeBlock(lines, 1))
	assert.False(t, adoc.IsInsideCodeBlock(lines, 3))
	assert.True(t, adoc.IsInsideCodeBlock(lines, 5))

	// A delimiter line is classified by the state before it.
	assert.False(t, adoc.IsInsideCodeBlock(lines, 0))
	assert.True(t, adoc.IsInsideCodeBlock(lines, 2))
	assert.False(t, adoc.IsInsideCodeBlock(lines, 4))
}

func TestIsInsideCodeBlock_OutOfRange(t *testing.T) {
	t.Parallel()

	lines := []string{"----", "code", "----"}

	assert.False(t, adoc.IsInsideCodeBlock(lines, -1))
	assert.False(t, adoc.IsInsideCodeBlock(lines, len(lines)))
	assert.False(t, adoc.IsInsideCodeBlock(lines, 100))

	for _, idx := range []int{-1, 0, 1, 5} {
		assert.False(t, adoc.IsInsideCodeBlock(nil, idx))
		assert.False(t, adoc.IsInsideCodeBlock([]string{}, idx))
	}
}

func TestIsInsideCodeBlock_MixedFencesToggleOneFlag(t *testing.T) {
	t.Parallel()

	lines := []string{"====", "----", "inner", "----", "===="}

	// The second fence closes the "block" opened by the first.
	assert.False(t, adoc.IsInsideCodeBlock(lines, 2))
}

func TestBlockMask(t *testing.T) {
	t.Parallel()

	lines := []string{"----", "code", "----", "text", "-----", "code", "-----"}
	mask := adoc.BlockMask(lines)

	for idx := range lines {
		assert.Equal(t, adoc.IsInsideCodeBlock(lines, idx), mask[idx], "line %d", idx)
	}
}

func TestRuneColumn(t *testing.T) {
	t.Parallel()

	line := "héllo <<x"

	assert.Equal(t, 0, adoc.RuneColumn(line, 0))
	assert.Equal(t, 6, adoc.RuneColumn(line, 7))
	assert.Equal(t, 9, adoc.RuneColumn(line, len(line)))
	assert.Equal(t, 9, adoc.RuneLen(line))
}
