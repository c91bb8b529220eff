// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framegraph

// Graph owns an ordered collection of passes plus the graph-level ("global")
// sources, and provides the linking, finalize, and per-frame execution API.
//
// Pass order is insertion order and is semantically significant: it is the
// execution order, never reordered. The graph exclusively owns all passes
// and global sources.
type Graph struct {
	name    string
	globals []*Source
	passes  []*Pass

	// presentation is the implicit sink representing "what gets shown this
	// frame". Bound during Finalize; an unbound presentation sink means the
	// graph is invalid and unusable.
	presentation Sink

	platform   Platform
	frameCount int
	finalized  bool
}

// New creates an empty graph with the given name.
func New(name string) *Graph {
	return &Graph{
		name:         name,
		presentation: Sink{name: "presentation"},
	}
}

// Name returns the graph name.
func (g *Graph) Name() string { return g.name }

// Finalized reports whether Finalize has completed successfully.
func (g *Graph) Finalized() bool { return g.finalized }

// PassCount returns the number of registered passes.
func (g *Graph) PassCount() int { return len(g.passes) }

// Pass returns the named pass, or nil if it does not exist.
func (g *Graph) Pass(name string) *Pass { return g.findPass(name) }

// GlobalSource returns the named global source, or nil if it does not exist.
func (g *Graph) GlobalSource(name string) *Source { return g.findGlobal(name) }

// PresentationSource returns the source the implicit presentation sink is
// bound to: the terminal, unconsumed colour output discovered by Finalize.
// Nil before Finalize.
func (g *Graph) PresentationSource() *Source { return g.presentation.bound }

// AddGlobalSource appends a uniquely-named graph-level source, typically the
// platform-provided presentation colour or depth buffers.
func (g *Graph) AddGlobalSource(name string, typ SourceType, origin SourceOrigin) error {
	if g.finalized {
		return ErrAlreadyFinalized
	}
	if g.findGlobal(name) != nil {
		return &DuplicateNameError{Kind: "global source", Name: name}
	}
	g.globals = append(g.globals, &Source{
		name:   name,
		typ:    typ,
		origin: origin,
	})
	return nil
}

// AddPass registers a pass and invokes the delegate's Create callback so the
// pass can declare its own sources, sinks, and attachments. Registration
// order is execution order.
//
// On any failure the pass is not registered and the graph's pass count is
// unchanged.
func (g *Graph) AddPass(name string, d Delegate) (*Pass, error) {
	if g.finalized {
		return nil, ErrAlreadyFinalized
	}
	if d == nil {
		return nil, ErrNilDelegate
	}
	if g.findPass(name) != nil {
		return nil, &DuplicateNameError{Kind: "pass", Name: name}
	}

	p := &Pass{name: name, graph: g, delegate: d}
	if err := d.Create(p); err != nil {
		return nil, err
	}

	g.passes = append(g.passes, p)
	return p, nil
}

// AddPassSource appends a uniquely-named output port to the named pass.
func (g *Graph) AddPassSource(passName, sourceName string, typ SourceType, origin SourceOrigin) error {
	p := g.findPass(passName)
	if p == nil {
		return &NotFoundError{Kind: "pass", Name: passName}
	}
	return p.AddSource(sourceName, typ, origin)
}

// AddPassSink appends a uniquely-named input port to the named pass.
func (g *Graph) AddPassSink(passName, sinkName string) error {
	p := g.findPass(passName)
	if p == nil {
		return &NotFoundError{Kind: "pass", Name: passName}
	}
	return p.AddSink(sinkName)
}

// SetSinkLinkage records the intended source for a sink by name only; the
// resolution to a pointer happens at finalize time. An empty sourcePass
// means "look up sourceName among the global sources".
//
// Every named element is validated immediately: on failure nothing is
// mutated and any previously recorded linkage on the sink is kept.
func (g *Graph) SetSinkLinkage(passName, sinkName, sourcePass, sourceName string) error {
	p := g.findPass(passName)
	if p == nil {
		return &NotFoundError{Kind: "pass", Name: passName}
	}
	sink := p.findSink(sinkName)
	if sink == nil {
		return &NotFoundError{Kind: "sink", Name: sinkName}
	}

	if sourcePass == "" {
		if g.findGlobal(sourceName) == nil {
			return &NotFoundError{Kind: "global source", Name: sourceName}
		}
	} else {
		sp := g.findPass(sourcePass)
		if sp == nil {
			return &NotFoundError{Kind: "pass", Name: sourcePass}
		}
		if sp.findSource(sourceName) == nil {
			return &NotFoundError{Kind: "source", Name: sourceName}
		}
	}

	sink.linked = true
	sink.sourcePass = sourcePass
	sink.sourceName = sourceName
	return nil
}

// resolveSource looks up a source by scope and name. Empty sourcePass means
// the global scope.
func (g *Graph) resolveSource(sourcePass, sourceName string) *Source {
	if sourcePass == "" {
		return g.findGlobal(sourceName)
	}
	p := g.findPass(sourcePass)
	if p == nil {
		return nil
	}
	return p.findSource(sourceName)
}

func (g *Graph) findPass(name string) *Pass {
	for _, p := range g.passes {
		if p.name == name {
			return p
		}
	}
	return nil
}

func (g *Graph) findGlobal(name string) *Source {
	for _, s := range g.globals {
		if s.name == name {
			return s
		}
	}
	return nil
}
