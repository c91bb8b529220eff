// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framegraph

import "fmt"

// SourceType classifies what kind of resource a source produces.
type SourceType int

const (
	// SourceTypeUndefined is the zero value and never valid on a declared port.
	SourceTypeUndefined SourceType = iota

	// SourceTypeColor is a colour render-target resource.
	SourceTypeColor

	// SourceTypeDepthStencil is a depth/stencil render-target resource.
	SourceTypeDepthStencil

	// SourceTypeResource is any other typed resource (buffers, lookup
	// textures) passed between passes without presentation semantics.
	SourceTypeResource
)

// String returns the string representation of SourceType.
func (t SourceType) String() string {
	switch t {
	case SourceTypeUndefined:
		return "Undefined"
	case SourceTypeColor:
		return "Color"
	case SourceTypeDepthStencil:
		return "DepthStencil"
	case SourceTypeResource:
		return "Resource"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// SourceOrigin records where a source's backing resource comes from.
type SourceOrigin int

const (
	// SourceOriginUndefined is the zero value and never valid on a declared port.
	SourceOriginUndefined SourceOrigin = iota

	// SourceOriginGlobal marks a platform-provided resource, such as the
	// presentation colour or depth buffers. Its images are resolved by
	// querying the Platform at finalize time and refreshed on resize.
	SourceOriginGlobal

	// SourceOriginPass marks a resource produced by a pass during the frame.
	SourceOriginPass
)

// String returns the string representation of SourceOrigin.
func (o SourceOrigin) String() string {
	switch o {
	case SourceOriginUndefined:
		return "Undefined"
	case SourceOriginGlobal:
		return "Global"
	case SourceOriginPass:
		return "Pass"
	default:
		return fmt.Sprintf("Unknown(%d)", int(o))
	}
}

// Source is a named, typed output port declared on a pass or on the graph
// itself. Sources are declared once at graph-build time and are exclusively
// owned by their declaring pass or graph; sinks refer to them without owning.
type Source struct {
	name   string
	typ    SourceType
	origin SourceOrigin

	// owner is the declaring pass name, or "" for a graph-global source.
	owner string

	// images holds one backing image per buffered frame. Populated at
	// finalize time for global platform-origin sources only, refreshed on
	// resize, and read-only everywhere else.
	images []Image
}

// Name returns the source name, unique within its owning scope.
func (s *Source) Name() string { return s.name }

// Type returns the resource type this source produces.
func (s *Source) Type() SourceType { return s.typ }

// Origin reports whether the source is platform-provided or pass-produced.
func (s *Source) Origin() SourceOrigin { return s.origin }

// Owner returns the declaring pass name, or "" for a graph-global source.
func (s *Source) Owner() string { return s.owner }

// ImageCount returns the number of bound backing images (one per buffered
// frame). Zero for sources whose images are not platform-resolved.
func (s *Source) ImageCount() int { return len(s.images) }

// ImageAt returns the backing image for the given buffered-frame index, or
// nil if the index is out of range or no images are bound.
func (s *Source) ImageAt(frame int) Image {
	if frame < 0 || frame >= len(s.images) {
		return nil
	}
	return s.images[frame]
}

// Sink is a named input port on a pass. A sink records its intended source
// by name at build time and holds a non-owning reference to the resolved
// Source after Finalize succeeds.
type Sink struct {
	name string

	// linked reports whether SetSinkLinkage recorded an intended source.
	linked bool

	// sourcePass is the declaring pass of the intended source, or "" for a
	// graph-global source.
	sourcePass string

	// sourceName is the intended source name within that scope.
	sourceName string

	// bound is the resolved source. Weak reference: lookup only, never
	// owning. Nil until Finalize completes successfully.
	bound *Source
}

// Name returns the sink name, unique within its owning pass.
func (s *Sink) Name() string { return s.name }

// Bound returns the resolved source, or nil before Finalize.
func (s *Sink) Bound() *Source { return s.bound }
