package adoc

import (
	"strings"
	"unicode/utf8"
)

// minDelimiterLength is the shortest run of fence characters that forms a
// block delimiter.
const minDelimiterLength = 4

// SplitLines splits text into lines.
// Both LF and CRLF endings are accepted; the line terminator is not part of
// the returned line. A trailing newline does not produce a final empty line,
// and the empty string yields an empty slice.
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for idx, line := range lines {
		lines[idx] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

// IsDelimiter reports whether line is a block delimiter: four or more
// repetitions of a single fence character ('-', '=', '*', '_' or '+') and
// nothing else.
func IsDelimiter(line string) bool {
	if len(line) < minDelimiterLength {
		return false
	}

	fence := line[0]
	if !isFenceChar(fence) {
		return false
	}

	for idx := 1; idx < len(line); idx++ {
		if line[idx] != fence {
			return false
		}
	}

	return true
}

func isFenceChar(c byte) bool {
	switch c {
	case '-', '=', '*', '_', '+':
		return true
	default:
		return false
	}
}

// IsInsideCodeBlock reports whether lines[index] lies inside a delimited block.
//
// Every delimiter line strictly before index toggles a single "inside" flag;
// the line at index does not affect its own classification. Nesting is not
// modeled. An index outside [0, len(lines)) is never inside.
func IsInsideCodeBlock(lines []string, index int) bool {
	if index < 0 || index >= len(lines) {
		return false
	}

	inside := false
	for _, line := range lines[:index] {
		if IsDelimiter(line) {
			inside = !inside
		}
	}

	return inside
}

// BlockMask returns, for every line, the value IsInsideCodeBlock would
// report for it. It is a single pass, for rules that classify every line.
func BlockMask(lines []string) []bool {
	mask := make([]bool, len(lines))

	inside := false
	for idx, line := range lines {
		mask[idx] = inside
		if IsDelimiter(line) {
			inside = !inside
		}
	}

	return mask
}

// RuneLen returns the number of code points in s.
// Columns and lengths reported by rules are measured in code points.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// RuneColumn converts a byte offset within line to a code point column.
func RuneColumn(line string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset >= len(line) {
		return utf8.RuneCountInString(line)
	}
	return utf8.RuneCountInString(line[:byteOffset])
}
