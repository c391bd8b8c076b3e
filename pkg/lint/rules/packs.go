package rules

import (
	"github.com/yaklabco/adoclint/pkg/lint"
)

// Pack names.
const (
	PackCore     = "core"
	PackExtended = "extended"
)

// Revision identifies the behaviour of the built-in rules. Bump it whenever
// a rule reports different diagnostics for the same input, so cached results
// from earlier revisions are not reused.
const Revision = "1"

// Pack describes a named group of rules.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "core").
	Name string

	// Description explains what the pack checks.
	Description string

	// New constructs a fresh set of the pack's rules.
	New func() []lint.Rule
}

// Load constructs the pack's rules. It matches lint.PackLoader.
func (p Pack) Load() ([]lint.Rule, error) {
	return p.New(), nil
}

// CorePack returns the pack of built-in syntax rules (E001-E003).
func CorePack() Pack {
	return Pack{
		Name:        PackCore,
		Description: "Unfinished syntax: unclosed blocks, attributes and cross references",
		New: func() []lint.Rule {
			return []lint.Rule{
				NewUnclosedBlockRule(),    // E001
				NewInvalidAttributeRule(), // E002
				NewMalformedXRefRule(),    // E003
			}
		},
	}
}

// ExtendedPack returns the pack of document consistency rules (E004-E008).
func ExtendedPack() Pack {
	return Pack{
		Name:        PackExtended,
		Description: "Document consistency: anchors, references, attributes, includes and source languages",
		New: func() []lint.Rule {
			return []lint.Rule{
				NewDuplicateAnchorRule(),    // E004
				NewUnresolvedXRefRule(),     // E005
				NewUndefinedAttributeRule(), // E006
				NewDuplicateIncludeRule(),   // E007
				NewSourceLanguageRule(),     // E008
			}
		},
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		CorePack(),
		ExtendedPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all built-in packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// Builtin returns the rules of every built-in pack, in pack order.
func Builtin() []lint.Rule {
	var all []lint.Rule
	for _, p := range Packs() {
		all = append(all, p.New()...)
	}
	return all
}

// LoadPack returns the loader registered for name in lint.DefaultPacks.
// The loader fails with lint.ErrPackNotFound for unknown names.
func LoadPack(name string) lint.PackLoader {
	return lint.DefaultPacks.Loader(name)
}
