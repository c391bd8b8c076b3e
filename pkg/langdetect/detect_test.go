package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/adoclint/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{name: "shebang bash", content: "#!/bin/bash\necho hello", expected: "bash"},
		{name: "shebang sh", content: "#!/bin/sh\necho hello", expected: "bash"},
		{name: "shebang python", content: "#!/usr/bin/env python3\nprint('hello')", expected: "python"},
		{name: "go code", content: "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}", expected: "go"},
		{
			name:     "python code",
			content:  "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()",
			expected: "python",
		},
		{name: "javascript code", content: "const x = () => { return 42; };\nconsole.log(x());", expected: "javascript"},
		{name: "json object", content: `{"key": "value", "number": 123}`, expected: "json"},
		{name: "yaml content", content: "key: value\nother: 123\nlist:\n  - item1\n  - item2", expected: "yaml"},
		{name: "rust code", content: "fn main() {\n    println!(\"Hello, world!\");\n}", expected: "rust"},
		{name: "sql query", content: "SELECT * FROM users WHERE id = 1;", expected: "sql"},
		{
			name:     "html content",
			content:  "<!DOCTYPE html>\n<html>\n<head><title>Test</title></head>\n<body></body>\n</html>",
			expected: "html",
		},
		{name: "dockerfile", content: "FROM golang:1.21\nWORKDIR /app\nCOPY . .\nRUN go build", expected: "dockerfile"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			lang, ok := langdetect.Detect([]byte(testCase.content))

			assert.True(t, ok)
			assert.Equal(t, testCase.expected, lang)
		})
	}
}

func TestDetect_NoConfidentMatch(t *testing.T) {
	t.Parallel()

	for _, content := range []string{"", "   \n\t", "just some text without any code patterns"} {
		lang, ok := langdetect.Detect([]byte(content))
		assert.False(t, ok, "content %q", content)
		assert.Empty(t, lang)
	}
}

func TestDetect_ShebangTakesPrecedence(t *testing.T) {
	t.Parallel()

	lang, ok := langdetect.Detect([]byte("#!/bin/bash\ndef foo():\n    pass"))

	assert.True(t, ok)
	assert.Equal(t, "bash", lang)
}

func TestKnown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected bool
	}{
		{name: "python", expected: true},
		{name: "Python", expected: true},
		{name: "go", expected: true},
		{name: "golang", expected: true},
		{name: "js", expected: true},
		{name: "bash", expected: true},
		{name: "yaml", expected: true},
		{name: "text", expected: true},
		{name: "console", expected: true},
		{name: " ruby ", expected: true},
		{name: "", expected: false},
		{name: "pyhton", expected: false},
		{name: "not-a-language", expected: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, langdetect.Known(testCase.name))
		})
	}
}
