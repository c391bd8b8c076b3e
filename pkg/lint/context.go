package lint

import (
	"slices"
	"sync"

	"github.com/yaklabco/adoclint/pkg/adoc"
)

// Context is a read-only snapshot of one document version, created once per
// validation call.
//
// Derived views are computed on first access and cached for the lifetime of
// the Context; every later call returns the identical value. Callers must
// not modify returned slices or maps.
type Context struct {
	text    string
	lines   []string
	changed map[int]struct{}

	anchors    func() []string
	attributes func() map[string]string
	includes   func() []string
	blockMask  func() []bool
}

// NewContext creates a Context for text.
//
// changedLines restricts ShouldValidateLine to the given 0-based line
// indices. A nil slice means every line is validated; an empty non-nil
// slice means none is.
func NewContext(text string, changedLines []int) *Context {
	ctx := &Context{
		text:  text,
		lines: adoc.SplitLines(text),
	}

	if changedLines != nil {
		ctx.changed = make(map[int]struct{}, len(changedLines))
		for _, line := range changedLines {
			ctx.changed[line] = struct{}{}
		}
	}

	ctx.anchors = sync.OnceValue(func() []string {
		return adoc.ExtractAnchors(text)
	})
	ctx.attributes = sync.OnceValue(func() map[string]string {
		return adoc.ExtractAttributes(text)
	})
	ctx.includes = sync.OnceValue(func() []string {
		return adoc.ExtractIncludes(text)
	})
	ctx.blockMask = sync.OnceValue(func() []bool {
		return adoc.BlockMask(ctx.lines)
	})

	return ctx
}

// Text returns the full document text.
func (c *Context) Text() string {
	return c.text
}

// Lines returns the document split into lines.
func (c *Context) Lines() []string {
	return c.lines
}

// LineCount returns the number of lines in the document.
func (c *Context) LineCount() int {
	return len(c.lines)
}

// Line returns the line at index, or "" when index is out of range.
func (c *Context) Line(index int) string {
	if index < 0 || index >= len(c.lines) {
		return ""
	}
	return c.lines[index]
}

// Anchors returns the ids of all anchors in document order.
func (c *Context) Anchors() []string {
	return c.anchors()
}

// Attributes returns the declared document attributes.
func (c *Context) Attributes() map[string]string {
	return c.attributes()
}

// Includes returns the include directive targets in document order.
func (c *Context) Includes() []string {
	return c.includes()
}

// InsideBlock reports whether the line at index lies inside a delimited
// block, with the same semantics as adoc.IsInsideCodeBlock.
func (c *Context) InsideBlock(index int) bool {
	if index < 0 || index >= len(c.lines) {
		return false
	}
	return c.blockMask()[index]
}

// Incremental reports whether validation is restricted to changed lines.
func (c *Context) Incremental() bool {
	return c.changed != nil
}

// ChangedLines returns the changed line set in ascending order, or nil when
// every line is validated.
func (c *Context) ChangedLines() []int {
	if c.changed == nil {
		return nil
	}

	lines := make([]int, 0, len(c.changed))
	for line := range c.changed {
		lines = append(lines, line)
	}
	slices.Sort(lines)

	return lines
}

// ShouldValidateLine reports whether rules should examine line index.
func (c *Context) ShouldValidateLine(index int) bool {
	if c.changed == nil {
		return true
	}
	_, ok := c.changed[index]
	return ok
}
