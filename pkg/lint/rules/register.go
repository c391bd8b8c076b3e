package rules

import "github.com/yaklabco/adoclint/pkg/lint"

// RegisterAll registers every built-in pack with the given registry.
func RegisterAll(registry *lint.PackRegistry) {
	for _, p := range Packs() {
		registry.Register(p.Name, p.Description, p.Load)
	}
}

// init registers the built-in packs with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic pack registration
func init() {
	RegisterAll(lint.DefaultPacks)
}
