// Package rules provides the built-in lint rules for adoclint.
//
// # Core rules
//
// The core pack checks for syntax that is unfinished or malformed, the
// kind of problem a person produces mid-typing:
//
//   - E001: unclosed-block - A [source], [example], [sidebar], [quote] or
//     [listing] block has no closing delimiter
//
//   - E002: invalid-attribute - An attribute declaration is missing its
//     closing colon
//
//   - E003: malformed-xref - A <<cross reference is not terminated by >>
//
// # Extended rules
//
// The extended pack adds document-level consistency checks. These rules
// skip lines inside delimited blocks:
//
//   - E004: duplicate-anchor - An anchor id is declared more than once
//
//   - E005: unresolved-xref - A cross reference targets an id that no
//     anchor declares
//
//   - E006: undefined-attribute - An {attribute} reference names an
//     attribute the document never declares
//
//   - E007: duplicate-include - The same file is included more than once
//
//   - E008: source-language - A source block names an unknown language,
//     or names none
//
// # Rule Packs
//
// Packs are registered with lint.DefaultPacks during init. Use LoadPack to
// obtain a loader suitable for lint.WithRulePack, or CorePack and
// ExtendedPack to construct the rules directly.
package rules
