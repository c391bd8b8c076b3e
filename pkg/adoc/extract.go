package adoc

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // Compiled patterns are read-only.
var (
	anchorPattern    = regexp.MustCompile(`\[\[([^\[\],\s]+)(?:,[^\]]*)?\]\]|\[#([^\[\]\s.%,]+)[^\]]*\]`)
	attributePattern = regexp.MustCompile(`^:([^:]+):(.*)$`)
	includePattern   = regexp.MustCompile(`include::([^\[\n]+)\[[^\]\n]*\]`)
	xrefPattern      = regexp.MustCompile(`<<.*?(?:>>|$)`)
	attrRefPattern   = regexp.MustCompile(`\{([A-Za-z0-9_][A-Za-z0-9_-]*)\}`)
)

// ExtractAnchors returns the id of every [[id]] and [#id] anchor in text,
// in document order. Duplicates are kept.
func ExtractAnchors(text string) []string {
	anchors := []string{}

	for _, match := range anchorPattern.FindAllStringSubmatch(text, -1) {
		if match[1] != "" {
			anchors = append(anchors, match[1])
			continue
		}
		anchors = append(anchors, match[2])
	}

	return anchors
}

// ExtractAttributes returns the document attributes declared as
// ":name: value" lines. The value may be empty (":toc:"). When a name is
// declared more than once, the last declaration wins.
func ExtractAttributes(text string) map[string]string {
	attrs := make(map[string]string)

	for _, line := range SplitLines(text) {
		name, value, ok := ParseAttributeLine(line)
		if !ok {
			continue
		}
		attrs[name] = value
	}

	return attrs
}

// ParseAttributeLine splits an attribute declaration line into its trimmed
// name and value. ok is false when line is not a declaration.
func ParseAttributeLine(line string) (string, string, bool) {
	match := attributePattern.FindStringSubmatch(line)
	if match == nil {
		return "", "", false
	}

	name := strings.TrimSpace(match[1])
	if name == "" {
		return "", "", false
	}

	return name, strings.TrimSpace(match[2]), true
}

// ExtractIncludes returns the target path of every include::PATH[...]
// directive in text, in document order.
func ExtractIncludes(text string) []string {
	includes := []string{}

	for _, match := range includePattern.FindAllStringSubmatch(text, -1) {
		includes = append(includes, match[1])
	}

	return includes
}

// Anchor is an anchor declaration found on a single line.
type Anchor struct {
	ID     string
	Column int
	Length int
}

// FindAnchors returns every anchor declared on line, with the code point
// span of the whole declaration.
func FindAnchors(line string) []Anchor {
	var anchors []Anchor

	for _, loc := range anchorPattern.FindAllStringSubmatchIndex(line, -1) {
		id := ""
		switch {
		case loc[2] >= 0:
			id = line[loc[2]:loc[3]]
		case loc[4] >= 0:
			id = line[loc[4]:loc[5]]
		}

		start := RuneColumn(line, loc[0])
		anchors = append(anchors, Anchor{
			ID:     id,
			Column: start,
			Length: RuneColumn(line, loc[1]) - start,
		})
	}

	return anchors
}

// XRef is a cross-reference span found on a single line.
type XRef struct {
	// Start and End are code point columns; End is exclusive.
	Start int
	End   int

	// Text is the matched source, including the << marker.
	Text string

	// Target is the referenced id, without any display text.
	Target string

	// Closed is false when no >> terminates the reference on its line.
	Closed bool
}

// FindXRefs returns every cross-reference on line. Each one starts at "<<"
// and extends to the nearest ">>", or to the end of the line when there is
// none.
func FindXRefs(line string) []XRef {
	var refs []XRef

	for _, loc := range xrefPattern.FindAllStringIndex(line, -1) {
		text := line[loc[0]:loc[1]]
		closed := strings.HasSuffix(text, ">>")

		inner := strings.TrimPrefix(text, "<<")
		if closed {
			inner = strings.TrimSuffix(inner, ">>")
		}
		target, _, _ := strings.Cut(inner, ",")

		refs = append(refs, XRef{
			Start:  RuneColumn(line, loc[0]),
			End:    RuneColumn(line, loc[1]),
			Text:   text,
			Target: strings.TrimSpace(target),
			Closed: closed,
		})
	}

	return refs
}

// AttributeRef is a {name} attribute reference found on a single line.
type AttributeRef struct {
	Name   string
	Column int
	Length int
}

// FindAttributeRefs returns every {name} attribute reference on line.
// References escaped with a backslash are skipped.
func FindAttributeRefs(line string) []AttributeRef {
	var refs []AttributeRef

	for _, loc := range attrRefPattern.FindAllStringSubmatchIndex(line, -1) {
		if loc[0] > 0 && line[loc[0]-1] == '\\' {
			continue
		}
		start := RuneColumn(line, loc[0])
		refs = append(refs, AttributeRef{
			Name:   line[loc[2]:loc[3]],
			Column: start,
			Length: RuneColumn(line, loc[1]) - start,
		})
	}

	return refs
}
