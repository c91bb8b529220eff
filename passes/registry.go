// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package passes provides the built-in pass kinds for framegraph and a
// registry through which applications and third-party packages add their
// own without requiring changes to the core library.
//
// Shipped kinds:
//   - "clear": fills the pass's attachments with a constant colour/depth.
//   - "blit": scales an image into the pass's colour attachment.
//
// Every kind implements the framegraph.Delegate capability interface; the
// registry only stores factories, it never drives pass lifecycle itself.
package passes

import (
	"sort"
	"sync"

	"github.com/gogpu/framegraph"
)

// Factory creates a fresh, default-configured delegate for one pass kind.
type Factory func() framegraph.Delegate

// KindNotFoundError indicates a named pass kind is not registered.
type KindNotFoundError struct {
	Name string
}

func (e *KindNotFoundError) Error() string {
	return "passes: kind not found: " + e.Name
}

// globalRegistry is the default registry.
var globalRegistry = &Registry{}

// Registry maps pass kind names to factories.
//
// Example registration from a third-party package:
//
//	func init() {
//	    passes.Register("bloom", func() framegraph.Delegate { return NewBloom() })
//	}
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty registry. Most code should use the global
// registry via Register and New.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a pass kind to the global registry. Registering a name that
// already exists replaces the previous factory.
func Register(name string, factory Factory) {
	globalRegistry.Register(name, factory)
}

// Unregister removes a pass kind from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered kind names, sorted.
func List() []string {
	return globalRegistry.List()
}

// New creates a default-configured delegate for a registered kind.
func New(name string) (framegraph.Delegate, error) {
	return globalRegistry.New(name)
}

// Register adds a pass kind to this registry.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.factories == nil {
		r.factories = make(map[string]Factory)
	}
	r.factories[name] = factory
}

// Unregister removes a pass kind from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.factories, name)
}

// List returns all registered kind names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates a default-configured delegate for a registered kind.
func (r *Registry) New(name string) (framegraph.Delegate, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &KindNotFoundError{Name: name}
	}
	return factory(), nil
}
