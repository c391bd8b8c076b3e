package live

import "github.com/yaklabco/adoclint/pkg/adoc"

// ChangedLines returns the lines of newText (0-based) that differ from
// oldText. Lines outside the common prefix and suffix count as changed. A
// pure deletion marks the line now occupying the deleted position. Identical
// texts yield an empty, non-nil slice.
func ChangedLines(oldText, newText string) []int {
	before := adoc.SplitLines(oldText)
	after := adoc.SplitLines(newText)

	prefix := 0
	for prefix < len(before) && prefix < len(after) && before[prefix] == after[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(before)-prefix && suffix < len(after)-prefix &&
		before[len(before)-1-suffix] == after[len(after)-1-suffix] {
		suffix++
	}

	end := len(after) - suffix
	changed := make([]int, 0, max(end-prefix, 0))
	for line := prefix; line < end; line++ {
		changed = append(changed, line)
	}

	if len(changed) == 0 && len(before) != len(after) && len(after) > 0 {
		changed = append(changed, min(prefix, len(after)-1))
	}
	return changed
}
