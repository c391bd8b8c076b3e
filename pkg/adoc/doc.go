// Package adoc recovers structural facts from raw AsciiDoc text.
//
// The helpers here never fail: any input, including the empty string, is
// valid and degrades to "no matches". They do not build a syntax tree; each
// one is a linear scan over the text or its lines.
package adoc
