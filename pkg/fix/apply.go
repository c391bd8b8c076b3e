package fix

import "strings"

// ApplyOffsets applies a sorted, non-overlapping slice of edits to text.
func ApplyOffsets(text string, edits []OffsetEdit) string {
	if len(edits) == 0 {
		return text
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - (e.EndOffset - e.StartOffset)
	}

	var out strings.Builder
	out.Grow(len(text) + delta)

	cursor := 0
	for _, e := range edits {
		out.WriteString(text[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.WriteString(text[cursor:])

	return out.String()
}

// Apply resolves, sorts and applies edits to text. Edits that overlap an
// earlier edit are not applied and are returned as skipped. An error is
// returned only when an edit does not fit the document, in which case
// nothing is applied.
func Apply(text string, edits []TextEdit) (string, []TextEdit, error) {
	if len(edits) == 0 {
		return text, nil, nil
	}

	resolved, err := Resolve(text, edits)
	if err != nil {
		return text, nil, err
	}

	SortEdits(resolved)
	accepted, skipped := FilterConflicts(resolved)

	var skippedEdits []TextEdit
	for _, s := range skipped {
		skippedEdits = append(skippedEdits, s.Source)
	}

	return ApplyOffsets(text, accepted), skippedEdits, nil
}

// ApplyQuickFix applies every edit of a quick fix. A quick fix is atomic:
// if any of its edits conflict, none is applied and a *ConflictError is
// returned.
func ApplyQuickFix(text string, qf QuickFix) (string, error) {
	resolved, err := Resolve(text, qf.Edits)
	if err != nil {
		return text, err
	}

	SortEdits(resolved)
	if err := DetectConflicts(resolved); err != nil {
		return text, err
	}

	return ApplyOffsets(text, resolved), nil
}
