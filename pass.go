// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framegraph

// Delegate is the capability interface every pass kind implements.
//
// The graph drives a pass through exactly four operations:
//
//  1. Create: declare sources, sinks, and attachments on the given pass.
//     Called once by Graph.AddPass; the pass is not registered on error.
//  2. Initialize: allocate pass-specific state once ports are linked.
//     Called once during Finalize, after linkage resolution, before the
//     pass's targets are created.
//  3. Execute: perform the pass's per-frame work. Called once per frame in
//     registration order; an error aborts the remaining passes of the frame.
//  4. Destroy: release everything. Called exactly once at graph teardown.
//
// Concrete pass kinds live in the passes package; applications may also
// implement Delegate directly.
type Delegate interface {
	// Create declares the pass's ports and attachments.
	Create(p *Pass) error

	// Initialize allocates pass-specific state after linkage resolution.
	Initialize(p *Pass) error

	// Execute performs the pass's work for one frame.
	Execute(p *Pass, frame *Frame) error

	// Destroy releases pass-specific state.
	Destroy(p *Pass)
}

// Frame carries one frame's transient data through ExecuteFrame.
type Frame struct {
	// Index is the buffered-frame index in [0, Platform.FrameCount()).
	// It selects which of a pass's replicated targets to draw into.
	Index int

	// Number is the monotonically increasing frame number.
	Number uint64

	// DeltaTime is the time since the previous frame, in seconds.
	DeltaTime float64

	// Data is an optional application payload passed through untouched.
	Data any
}

// Pass is a named unit of rendering work: a set of sources it produces, a
// set of sinks it requires, attachment declarations for its render target,
// and a lifecycle Delegate. Passes are opaque to the graph beyond their
// ports.
type Pass struct {
	name     string
	graph    *Graph
	delegate Delegate

	sources []*Source
	sinks   []*Sink
	specs   []AttachmentSpec

	// targets holds one render target per buffered frame, created by the
	// Target Lifecycle Manager at finalize time and on resize.
	targets []*Target

	// presentsAfter is true only for the pass discovered at finalize time
	// to be the terminal producer of the colour chain.
	presentsAfter bool
}

// Name returns the pass name, unique within its graph.
func (p *Pass) Name() string { return p.name }

// Graph returns the owning graph.
func (p *Pass) Graph() *Graph { return p.graph }

// PresentsAfter reports whether this pass produces the presented image.
// Meaningful only after Finalize.
func (p *Pass) PresentsAfter() bool { return p.presentsAfter }

// AddSource appends a uniquely-named output port to the pass.
func (p *Pass) AddSource(name string, typ SourceType, origin SourceOrigin) error {
	if p.graph.finalized {
		return ErrAlreadyFinalized
	}
	if p.findSource(name) != nil {
		return &DuplicateNameError{Kind: "source", Name: name}
	}
	p.sources = append(p.sources, &Source{
		name:   name,
		typ:    typ,
		origin: origin,
		owner:  p.name,
	})
	return nil
}

// AddSink appends a uniquely-named input port to the pass.
func (p *Pass) AddSink(name string) error {
	if p.graph.finalized {
		return ErrAlreadyFinalized
	}
	if p.findSink(name) != nil {
		return &DuplicateNameError{Kind: "sink", Name: name}
	}
	p.sinks = append(p.sinks, &Sink{name: name})
	return nil
}

// DeclareAttachments records the pass's attachment slots, in order. The
// declarations are turned into real images by the Target Lifecycle Manager;
// calling this after Finalize has no effect on existing targets.
func (p *Pass) DeclareAttachments(specs ...AttachmentSpec) {
	p.specs = append(p.specs, specs...)
}

// Source returns the named output port, or nil if it does not exist.
func (p *Pass) Source(name string) *Source { return p.findSource(name) }

// Sink returns the named input port, or nil if it does not exist.
func (p *Pass) Sink(name string) *Sink { return p.findSink(name) }

// SourceCount returns the number of declared output ports.
func (p *Pass) SourceCount() int { return len(p.sources) }

// SinkCount returns the number of declared input ports.
func (p *Pass) SinkCount() int { return len(p.sinks) }

// Target returns the render target for the given buffered-frame index, or
// nil before Finalize or when the pass declared no attachments.
func (p *Pass) Target(frame int) *Target {
	if frame < 0 || frame >= len(p.targets) {
		return nil
	}
	return p.targets[frame]
}

func (p *Pass) findSource(name string) *Source {
	for _, s := range p.sources {
		if s.name == name {
			return s
		}
	}
	return nil
}

func (p *Pass) findSink(name string) *Sink {
	for _, s := range p.sinks {
		if s.name == name {
			return s
		}
	}
	return nil
}
