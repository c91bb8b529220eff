// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framegraph

// ExecuteFrame runs every pass's Execute callback for one frame, strictly
// in registration order regardless of sink/source linkage direction.
//
// The first pass failure aborts the remaining passes for the frame and is
// returned as a *RenderError. No partial-frame rollback is attempted: the
// caller decides whether the partially-drawn frame is presented or dropped.
func (g *Graph) ExecuteFrame(frame *Frame) error {
	if !g.finalized {
		return ErrNotFinalized
	}
	if frame == nil {
		frame = &Frame{}
	}

	for _, p := range g.passes {
		if err := p.delegate.Execute(p, frame); err != nil {
			return &RenderError{Pass: p.name, Err: err}
		}
	}
	return nil
}

// OnResize reacts to a presentation-surface change: the platform has
// already replaced its presentation images, and every platform-origin
// global source and every pass's render targets are re-resolved from the
// new images. The previous targets are fully released.
//
// The width and height are informational; the authoritative dimensions come
// from the platform's current images.
func (g *Graph) OnResize(width, height uint32) error {
	if !g.finalized {
		return ErrNotFinalized
	}

	if err := g.bindGlobalImages(); err != nil {
		return err
	}
	for _, p := range g.passes {
		if err := g.regenerateTargets(p); err != nil {
			return err
		}
	}

	Logger().Info("graph resized", "graph", g.name, "width", width, "height", height)
	return nil
}

// Destroy tears the graph down: every pass's Destroy callback runs and its
// targets are released, then the graph clears its own state. Safe to call
// on a graph that was never finalized.
func (g *Graph) Destroy() {
	for _, p := range g.passes {
		if p.delegate != nil {
			p.delegate.Destroy(p)
		}
		for i, t := range p.targets {
			if t != nil {
				t.destroy()
				p.targets[i] = nil
			}
		}
	}

	g.passes = nil
	g.globals = nil
	g.presentation.bound = nil
	g.platform = nil
	g.finalized = false
}
