// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framegraph

import "errors"

// Sentinel errors for graph lifecycle misuse.
var (
	// ErrNotFinalized is returned when ExecuteFrame or OnResize is called
	// before Finalize has completed successfully.
	ErrNotFinalized = errors.New("framegraph: graph has not been finalized")

	// ErrAlreadyFinalized is returned when Finalize or a mutation call is
	// made after the graph was finalized. Topology is immutable at runtime.
	ErrAlreadyFinalized = errors.New("framegraph: graph already finalized")

	// ErrNilPlatform is returned when Finalize is called with a nil Platform.
	ErrNilPlatform = errors.New("framegraph: platform is nil")

	// ErrNilDelegate is returned when AddPass is called with a nil Delegate.
	ErrNilDelegate = errors.New("framegraph: pass delegate is nil")
)

// DuplicateNameError indicates a name collision inside a single scope:
// two passes on one graph, two global sources, or two ports on one pass.
// Detected at build time; the colliding element is not added.
type DuplicateNameError struct {
	// Kind is the element kind: "pass", "global source", "source", or "sink".
	Kind string

	// Name is the colliding name.
	Name string
}

func (e *DuplicateNameError) Error() string {
	return "framegraph: duplicate " + e.Kind + " name: " + e.Name
}

// NotFoundError indicates a pass, sink, or source referenced by name does
// not exist. Detected at build time; no existing state is mutated.
type NotFoundError struct {
	// Kind is the element kind: "pass", "global source", "source", or "sink".
	Kind string

	// Name is the name that could not be resolved.
	Name string
}

func (e *NotFoundError) Error() string {
	return "framegraph: " + e.Kind + " not found: " + e.Name
}

// ConfigError indicates the graph topology cannot produce a presentable
// frame: a sink was never linked, no sink consumes a global colour source,
// or no unconsumed pass-produced colour source exists to present.
// Always detected at finalize time, never during ExecuteFrame.
type ConfigError struct {
	// Graph is the name of the offending graph.
	Graph string

	// Detail describes what is wrong with the configuration.
	Detail string
}

func (e *ConfigError) Error() string {
	return "framegraph: graph " + e.Graph + ": " + e.Detail
}

// NotSupportedError indicates a declared capability has no implementation
// yet, such as pass-owned attachment regeneration. Raised loudly instead of
// being silently ignored.
type NotSupportedError struct {
	// Feature names the unimplemented capability.
	Feature string
}

func (e *NotSupportedError) Error() string {
	return "framegraph: not supported: " + e.Feature
}

// ResourceError indicates the Target Lifecycle Manager failed to realize a
// pass's render target, at finalize or at resize time.
type ResourceError struct {
	// Pass is the name of the pass whose target failed.
	Pass string

	// Err is the underlying cause.
	Err error
}

func (e *ResourceError) Error() string {
	return "framegraph: target for pass " + e.Pass + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *ResourceError) Unwrap() error { return e.Err }

// RenderError indicates a pass's execute callback failed during
// ExecuteFrame. The remaining passes of that frame were not run; whether
// the partial frame is presented or dropped is the caller's policy.
type RenderError struct {
	// Pass is the name of the pass that failed.
	Pass string

	// Err is the underlying cause.
	Err error
}

func (e *RenderError) Error() string {
	return "framegraph: pass " + e.Pass + " failed: " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *RenderError) Unwrap() error { return e.Err }
