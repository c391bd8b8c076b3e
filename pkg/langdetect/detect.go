// Package langdetect recognizes source-block languages.
// It uses go-enry both to validate language names written in
// [source,LANG] block attributes and to guess the language of block content
// that has none.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names returned by Detect.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langBash       = "bash"
)

// classifierCandidates limits the enry classifier to languages commonly
// found in documentation listings.
//
//nolint:gochecknoglobals // Read-only lookup table
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile", "XML",
}

// extraAliases are names accepted by Asciidoctor source highlighters that
// linguist does not list as aliases.
//
//nolint:gochecknoglobals // Read-only lookup table
var extraAliases = map[string]struct{}{
	"text":      {},
	"txt":       {},
	"plaintext": {},
	"console":   {},
	"none":      {},
	"asciidoc":  {},
	"adoc":      {},
}

// Known reports whether name is a recognized language name or alias.
// The comparison is case-insensitive.
func Known(name string) bool {
	alias := strings.ToLower(strings.TrimSpace(name))
	if alias == "" {
		return false
	}
	if _, ok := extraAliases[alias]; ok {
		return true
	}
	_, ok := enry.GetLanguageByAlias(alias)
	return ok
}

// Detect guesses the language of block content. The boolean is false when
// no language could be determined with confidence.
func Detect(content []byte) (string, bool) {
	if len(bytes.TrimSpace(content)) == 0 {
		return "", false
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang), true
	}

	for _, detect := range detectors {
		if detect.match(content) {
			return detect.lang, true
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang), true
	}

	return "", false
}

type detector struct {
	lang  string
	match func(content []byte) bool
}

// detectors are tried in order; earlier entries are more specific.
//
//nolint:gochecknoglobals // Read-only lookup table
var detectors = []detector{
	{lang: langGo, match: isGo},
	{lang: langPython, match: isPython},
	{lang: langHTML, match: isHTML},
	{lang: langJSON, match: isJSON},
	{lang: langDockerfile, match: isDockerfile},
	{lang: langSQL, match: isSQL},
	{lang: langRust, match: isRust},
	{lang: langJavaScript, match: isJavaScript},
	{lang: langYAML, match: isYAML},
}

func isGo(content []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(content), []byte("package "))
}

func isPython(content []byte) bool {
	text := string(content)
	if strings.Contains(text, "def ") && strings.Contains(text, "):") {
		return true
	}
	if strings.Contains(text, "import ") && !strings.Contains(text, "import (") &&
		(strings.Contains(text, "from ") || strings.HasPrefix(strings.TrimSpace(text), "import ")) {
		return true
	}
	return strings.Contains(text, "__name__") || strings.Contains(text, "__main__")
}

func isHTML(content []byte) bool {
	lower := bytes.ToLower(bytes.TrimSpace(content))
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return true
		}
	}
	return false
}

func isJSON(content []byte) bool {
	trimmed := bytes.TrimSpace(content)
	return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`))
}

func isDockerfile(content []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(content), []byte("FROM ")) ||
		(bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN "))) ||
		(bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY ")))
}

func isSQL(content []byte) bool {
	upper := strings.ToUpper(strings.TrimSpace(string(content)))
	for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, keyword) {
			return true
		}
	}
	return false
}

func isRust(content []byte) bool {
	text := string(content)
	return strings.Contains(text, "fn main()") ||
		strings.Contains(text, "println!") ||
		strings.Contains(text, "let mut ")
}

func isJavaScript(content []byte) bool {
	text := string(content)
	return strings.Contains(text, "=>") ||
		strings.Contains(text, "const ") ||
		strings.Contains(text, "let ") ||
		strings.Contains(text, "console.log")
}

// isYAML counts "key: value" and "- item" lines; two or more is enough.
func isYAML(content []byte) bool {
	count := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.Contains(line, []byte("(")) &&
			!bytes.Contains(line, []byte("{")) &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count >= 2
}

// normalize converts go-enry language names to source-block names.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
