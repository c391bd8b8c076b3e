// Package fix provides text edit types and application logic for quick fixes.
package fix

// TextEdit replaces a range of a document with new text.
// Positions are 0-based; columns count code points. A range whose start
// equals its end is a pure insertion.
type TextEdit struct {
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	NewText     string `json:"newText"`
}

// IsInsertion reports whether the edit replaces an empty range.
func (e TextEdit) IsInsertion() bool {
	return e.StartLine == e.EndLine && e.StartColumn == e.EndColumn
}

// Insert returns an edit that inserts text at the given position.
func Insert(line, column int, text string) TextEdit {
	return TextEdit{
		StartLine:   line,
		StartColumn: column,
		EndLine:     line,
		EndColumn:   column,
		NewText:     text,
	}
}

// Replace returns an edit that replaces the given range with text.
func Replace(startLine, startColumn, endLine, endColumn int, text string) TextEdit {
	return TextEdit{
		StartLine:   startLine,
		StartColumn: startColumn,
		EndLine:     endLine,
		EndColumn:   endColumn,
		NewText:     text,
	}
}

// QuickFix is a named set of edits that are applied together.
type QuickFix struct {
	// Title is the label shown to the user (e.g. "Add closing delimiter (----)").
	Title string `json:"title"`

	// Edits are applied atomically, in order.
	Edits []TextEdit `json:"edits"`
}

// NewQuickFix creates a quick fix from the given edits.
func NewQuickFix(title string, edits ...TextEdit) QuickFix {
	return QuickFix{Title: title, Edits: edits}
}

// EditBuilder accumulates text edits for a single quick fix.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates a new EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{
		Edits: make([]TextEdit, 0),
	}
}

// ReplaceRange adds an edit that replaces the given range with newText.
func (b *EditBuilder) ReplaceRange(startLine, startColumn, endLine, endColumn int, newText string) {
	b.Edits = append(b.Edits, Replace(startLine, startColumn, endLine, endColumn, newText))
}

// Insert adds an edit that inserts text at the given position.
func (b *EditBuilder) Insert(line, column int, text string) {
	b.Edits = append(b.Edits, Insert(line, column, text))
}

// Delete adds an edit that deletes the given range.
func (b *EditBuilder) Delete(startLine, startColumn, endLine, endColumn int) {
	b.ReplaceRange(startLine, startColumn, endLine, endColumn, "")
}

// QuickFix returns the accumulated edits as a quick fix with the given title.
func (b *EditBuilder) QuickFix(title string) QuickFix {
	edits := make([]TextEdit, len(b.Edits))
	copy(edits, b.Edits)
	return QuickFix{Title: title, Edits: edits}
}
