package fix

import (
	"fmt"
	"strings"
)

// DiffContextLines is the number of unchanged lines shown around a change.
const DiffContextLines = 3

// LineKind classifies a line in a hunk.
type LineKind int

const (
	// LineContext is unchanged.
	LineContext LineKind = iota

	// LineAdded only exists in the new text.
	LineAdded

	// LineRemoved only exists in the old text.
	LineRemoved
)

// DiffLine is one line of a hunk, without its +/-/space prefix.
type DiffLine struct {
	Kind LineKind
	Text string
}

// Hunk is a run of changes with surrounding context. Starts are 1-based; a
// side with no lines reports the line before the hunk, as unified diffs do.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []DiffLine
}

// Diff is a line diff between a document and its fixed version.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// NewDiff compares before and after line by line. It returns nil when the
// line sequences are equal.
func NewDiff(path, before, after string) *Diff {
	oldLines := diffLines(before)
	newLines := diffLines(after)

	ops := lineOps(oldLines, newLines)
	hunks := groupHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	diff := &Diff{Path: path, Hunks: hunks}
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineAdded:
				diff.Additions++
			case LineRemoved:
				diff.Deletions++
			case LineContext:
			}
		}
	}
	return diff
}

// HasChanges reports whether d has at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders d as a unified diff with a/ and b/ path prefixes.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n+++ b/%s\n", path, path)
	for _, hunk := range d.Hunks {
		builder.WriteString(hunk.Header())
		builder.WriteByte('\n')
		for _, line := range hunk.Lines {
			builder.WriteString(line.Kind.prefix())
			builder.WriteString(line.Text)
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}

// Header returns the "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

func (k LineKind) prefix() string {
	switch k {
	case LineAdded:
		return "+"
	case LineRemoved:
		return "-"
	default:
		return " "
	}
}

func diffLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// lineOps returns the edit script turning oldLines into newLines. The
// common prefix and suffix are matched directly; the middle uses an LCS
// table, preferring removals before additions.
func lineOps(oldLines, newLines []string) []DiffLine {
	prefix := 0
	for prefix < len(oldLines) && prefix < len(newLines) && oldLines[prefix] == newLines[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(oldLines)-prefix && suffix < len(newLines)-prefix &&
		oldLines[len(oldLines)-1-suffix] == newLines[len(newLines)-1-suffix] {
		suffix++
	}

	ops := make([]DiffLine, 0, max(len(oldLines), len(newLines)))
	for _, line := range oldLines[:prefix] {
		ops = append(ops, DiffLine{Kind: LineContext, Text: line})
	}

	oldMid := oldLines[prefix : len(oldLines)-suffix]
	newMid := newLines[prefix : len(newLines)-suffix]

	// table[i][j] is the LCS length of oldMid[i:] and newMid[j:].
	table := make([][]int, len(oldMid)+1)
	for idx := range table {
		table[idx] = make([]int, len(newMid)+1)
	}
	for i := len(oldMid) - 1; i >= 0; i-- {
		for j := len(newMid) - 1; j >= 0; j-- {
			if oldMid[i] == newMid[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else {
				table[i][j] = max(table[i+1][j], table[i][j+1])
			}
		}
	}

	i, j := 0, 0
	for i < len(oldMid) || j < len(newMid) {
		switch {
		case i < len(oldMid) && j < len(newMid) && oldMid[i] == newMid[j]:
			ops = append(ops, DiffLine{Kind: LineContext, Text: oldMid[i]})
			i++
			j++
		case j == len(newMid) || (i < len(oldMid) && table[i+1][j] >= table[i][j+1]):
			ops = append(ops, DiffLine{Kind: LineRemoved, Text: oldMid[i]})
			i++
		default:
			ops = append(ops, DiffLine{Kind: LineAdded, Text: newMid[j]})
			j++
		}
	}

	for _, line := range oldLines[len(oldLines)-suffix:] {
		ops = append(ops, DiffLine{Kind: LineContext, Text: line})
	}
	return ops
}

// groupHunks splits ops into hunks, merging changes separated by at most
// twice the context size.
func groupHunks(ops []DiffLine) []Hunk {
	var changes []int
	for idx, op := range ops {
		if op.Kind != LineContext {
			changes = append(changes, idx)
		}
	}
	if len(changes) == 0 {
		return nil
	}

	var hunks []Hunk
	first := 0
	for idx := 1; idx <= len(changes); idx++ {
		if idx < len(changes) && changes[idx]-changes[idx-1]-1 <= 2*DiffContextLines {
			continue
		}
		start := max(0, changes[first]-DiffContextLines)
		end := min(len(ops), changes[idx-1]+1+DiffContextLines)
		hunks = append(hunks, buildHunk(ops, start, end))
		first = idx
	}
	return hunks
}

func buildHunk(ops []DiffLine, start, end int) Hunk {
	hunk := Hunk{OldStart: 1, NewStart: 1}
	for _, op := range ops[:start] {
		if op.Kind != LineAdded {
			hunk.OldStart++
		}
		if op.Kind != LineRemoved {
			hunk.NewStart++
		}
	}

	hunk.Lines = append([]DiffLine(nil), ops[start:end]...)
	for _, line := range hunk.Lines {
		if line.Kind != LineAdded {
			hunk.OldCount++
		}
		if line.Kind != LineRemoved {
			hunk.NewCount++
		}
	}

	if hunk.OldCount == 0 {
		hunk.OldStart--
	}
	if hunk.NewCount == 0 {
		hunk.NewStart--
	}
	return hunk
}
