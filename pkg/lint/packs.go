package lint

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrPackNotFound is returned by a PackLoader whose pack is unavailable.
var ErrPackNotFound = errors.New("rule pack not found")

// PackLoader produces the rules of one rule pack.
// Loading is best-effort: a Checker treats a failing loader as an absent
// pack and carries on without its rules.
type PackLoader func() ([]Rule, error)

// PackRegistry maps pack names to loaders.
type PackRegistry struct {
	mu    sync.RWMutex
	packs map[string]PackLoader
	descs map[string]string
}

// NewPackRegistry creates an empty pack registry.
func NewPackRegistry() *PackRegistry {
	return &PackRegistry{
		packs: make(map[string]PackLoader),
		descs: make(map[string]string),
	}
}

// Register adds a pack to the registry.
// If a pack with the same name already exists, it is replaced.
func (r *PackRegistry) Register(name, description string, loader PackLoader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packs[name] = loader
	r.descs[name] = description
}

// Loader returns the loader for name. Unknown names yield a loader that
// fails with ErrPackNotFound, so lookups never need a separate check.
func (r *PackRegistry) Loader(name string) PackLoader {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if loader, ok := r.packs[name]; ok {
		return loader
	}
	return func() ([]Rule, error) {
		return nil, fmt.Errorf("%w: %q", ErrPackNotFound, name)
	}
}

// Has reports whether a pack named name is registered.
func (r *PackRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.packs[name]
	return ok
}

// Description returns the description of a registered pack.
func (r *PackRegistry) Description(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.descs[name]
}

// Names returns all registered pack names in sorted order.
func (r *PackRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.packs))
	for name := range r.packs {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// DefaultPacks is the global registry for rule packs shipped with adoclint.
// Packs register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for pack registration
var DefaultPacks = NewPackRegistry()
