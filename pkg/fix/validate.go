package fix

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// ValidationError describes an edit whose range does not fit the document.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d-%d:%d]: %s",
		e.Edit.StartLine, e.Edit.StartColumn, e.Edit.EndLine, e.Edit.EndColumn, e.Message)
}

// ConflictError describes overlapping edits.
type ConflictError struct {
	Edit1 TextEdit
	Edit2 TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d-%d:%d] and [%d:%d-%d:%d]",
		e.Edit1.StartLine, e.Edit1.StartColumn, e.Edit1.EndLine, e.Edit1.EndColumn,
		e.Edit2.StartLine, e.Edit2.StartColumn, e.Edit2.EndLine, e.Edit2.EndColumn)
}

// OffsetEdit is a TextEdit resolved to byte offsets within one document.
type OffsetEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string

	// Source is the edit this one was resolved from.
	Source TextEdit
}

// Resolve converts line/column edits into byte-offset edits against text.
//
// A position may address the line just past the last one at column 0, which
// resolves to the end of the document. When the document does not end with a
// newline, an insertion there is prefixed with one so that inserted lines
// stay lines.
func Resolve(text string, edits []TextEdit) ([]OffsetEdit, error) {
	lines := strings.Split(text, "\n")
	starts := make([]int, len(lines))
	offset := 0
	for idx, line := range lines {
		starts[idx] = offset
		offset += len(line) + 1
	}

	resolved := make([]OffsetEdit, 0, len(edits))
	for _, edit := range edits {
		start, startPastEnd, err := position(text, lines, starts, edit.StartLine, edit.StartColumn)
		if err != nil {
			return nil, &ValidationError{Edit: edit, Message: "start " + err.Error()}
		}
		end, _, err := position(text, lines, starts, edit.EndLine, edit.EndColumn)
		if err != nil {
			return nil, &ValidationError{Edit: edit, Message: "end " + err.Error()}
		}
		if end < start {
			return nil, &ValidationError{Edit: edit, Message: "end is before start"}
		}

		newText := edit.NewText
		if startPastEnd && text != "" && !strings.HasSuffix(text, "\n") {
			newText = "\n" + newText
		}

		resolved = append(resolved, OffsetEdit{
			StartOffset: start,
			EndOffset:   end,
			NewText:     newText,
			Source:      edit,
		})
	}

	return resolved, nil
}

// position returns the byte offset of (line, column). The boolean is true
// when the position is the virtual line after the end of the document.
func position(text string, lines []string, starts []int, line, column int) (int, bool, error) {
	if line < 0 || column < 0 {
		return 0, false, fmt.Errorf("position %d:%d is negative", line, column)
	}

	if line >= len(lines) {
		if line == len(lines) && column == 0 {
			return len(text), true, nil
		}
		return 0, false, fmt.Errorf("line %d exceeds line count %d", line, len(lines))
	}

	content := strings.TrimSuffix(lines[line], "\r")
	offset := 0
	for col := 0; col < column; col++ {
		if offset >= len(content) {
			return 0, false, fmt.Errorf("column %d exceeds length of line %d", column, line)
		}
		_, size := utf8.DecodeRuneInString(content[offset:])
		offset += size
	}

	return starts[line] + offset, false, nil
}

// SortEdits sorts edits by start offset, then by end offset.
// The sort is stable, so insertions at the same offset keep their order.
func SortEdits(edits []OffsetEdit) {
	slices.SortStableFunc(edits, func(a, b OffsetEdit) int {
		if a.StartOffset != b.StartOffset {
			return a.StartOffset - b.StartOffset
		}
		return a.EndOffset - b.EndOffset
	})
}

// DetectConflicts checks for overlapping edits in a sorted slice.
// Returns nil if no conflicts, or the first conflict found.
func DetectConflicts(edits []OffsetEdit) error {
	for i := 1; i < len(edits); i++ {
		prev := edits[i-1]
		curr := edits[i]
		if curr.StartOffset < prev.EndOffset {
			return &ConflictError{Edit1: prev.Source, Edit2: curr.Source}
		}
	}
	return nil
}

// FilterConflicts splits a sorted slice into edits that can be applied
// together and edits that overlap an earlier accepted one.
// Earlier edits (by start position) take precedence.
func FilterConflicts(edits []OffsetEdit) ([]OffsetEdit, []OffsetEdit) {
	if len(edits) == 0 {
		return nil, nil
	}

	accepted := make([]OffsetEdit, 0, len(edits))
	skipped := make([]OffsetEdit, 0)

	accepted = append(accepted, edits[0])
	lastAcceptedEnd := edits[0].EndOffset

	for i := 1; i < len(edits); i++ {
		edit := edits[i]
		if edit.StartOffset >= lastAcceptedEnd {
			accepted = append(accepted, edit)
			lastAcceptedEnd = edit.EndOffset
		} else {
			skipped = append(skipped, edit)
		}
	}

	return accepted, skipped
}
