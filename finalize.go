// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framegraph

import "fmt"

// Finalize resolves every recorded linkage, discovers the terminal colour
// output to present, initializes every pass, and creates every render
// target. Called exactly once, after all passes and linkages are declared.
//
// Finalize either fully succeeds — every sink bound, every pass initialized,
// every target created — or returns an error and the graph must be
// considered unusable. There is no partial-success state.
//
// Terminal-producer policy: among all pass-produced colour sources that no
// sink consumes, the FIRST in pass-registration order (source-declaration
// order within a pass) is presented. Zero candidates is a ConfigError;
// more than one logs a warning and takes the first.
func (g *Graph) Finalize(platform Platform) error {
	if g.finalized {
		return ErrAlreadyFinalized
	}
	if platform == nil {
		return ErrNilPlatform
	}

	g.platform = platform
	g.frameCount = platform.FrameCount()
	if g.frameCount <= 0 {
		return fmt.Errorf("framegraph: platform reports %d buffered frames", g.frameCount)
	}

	if err := g.bindGlobalImages(); err != nil {
		return err
	}
	if err := g.resolveLinkages(); err != nil {
		return err
	}
	if err := g.resolvePresentation(); err != nil {
		return err
	}

	for _, p := range g.passes {
		if err := p.delegate.Initialize(p); err != nil {
			return fmt.Errorf("framegraph: initialize pass %s: %w", p.name, err)
		}
		if err := g.regenerateTargets(p); err != nil {
			return err
		}
	}

	g.finalized = true
	Logger().Info("graph finalized",
		"graph", g.name, "passes", len(g.passes),
		"frames", g.frameCount, "presents", g.presentation.bound.Owner())
	return nil
}

// bindGlobalImages resolves every platform-origin global source's backing
// images by querying the platform, colour sources from the colour
// presentation images and depth sources from the depth images.
func (g *Graph) bindGlobalImages() error {
	colors := platformImages(g.platform.ColorImages(), g.frameCount)
	depths := platformImages(g.platform.DepthImages(), g.frameCount)

	for _, s := range g.globals {
		if s.origin != SourceOriginGlobal {
			continue
		}
		switch s.typ {
		case SourceTypeColor:
			if colors == nil {
				return &ConfigError{Graph: g.name, Detail: "platform provides no colour presentation images for source " + s.name}
			}
			s.images = colors
		case SourceTypeDepthStencil:
			if depths == nil {
				return &ConfigError{Graph: g.name, Detail: "platform provides no depth presentation images for source " + s.name}
			}
			s.images = depths
		case SourceTypeResource:
			// Non-image global resources carry no platform images.
		}
	}
	return nil
}

// platformImages returns a copy of imgs when it covers every buffered
// frame, nil otherwise.
func platformImages(imgs []Image, frames int) []Image {
	if len(imgs) < frames {
		return nil
	}
	out := make([]Image, frames)
	copy(out, imgs[:frames])
	return out
}

// resolveLinkages walks every sink on every pass and binds it to the source
// it names. A sink with no recorded linkage, or one whose source vanished,
// is a hard configuration error.
func (g *Graph) resolveLinkages() error {
	for _, p := range g.passes {
		for _, sink := range p.sinks {
			if !sink.linked {
				return &ConfigError{Graph: g.name, Detail: fmt.Sprintf("sink %s.%s was never linked", p.name, sink.name)}
			}
			src := g.resolveSource(sink.sourcePass, sink.sourceName)
			if src == nil {
				return &ConfigError{Graph: g.name, Detail: fmt.Sprintf("sink %s.%s links to unknown source %s.%s", p.name, sink.name, sink.sourcePass, sink.sourceName)}
			}
			sink.bound = src
			Logger().Debug("sink bound",
				"graph", g.name, "pass", p.name, "sink", sink.name,
				"source", src.name, "sourceOwner", src.owner)
		}
	}
	return nil
}

// resolvePresentation verifies the graph reaches the presentable output and
// binds the implicit presentation sink to the terminal colour producer.
func (g *Graph) resolvePresentation() error {
	// At least one sink anywhere must consume a global colour source,
	// otherwise no pass ever touches the presentation buffers.
	reachable := false
	for _, p := range g.passes {
		for _, sink := range p.sinks {
			if sink.bound != nil && sink.bound.owner == "" && sink.bound.typ == SourceTypeColor {
				reachable = true
			}
		}
	}
	if !reachable {
		return &ConfigError{Graph: g.name, Detail: "no path to the presentable output: no sink is linked to a global colour source"}
	}

	// The terminal producer is the pass-produced colour source that no sink
	// in the entire graph consumes.
	var terminal *Source
	var owner *Pass
	extra := 0
	for _, p := range g.passes {
		for _, src := range p.sources {
			if src.typ != SourceTypeColor || src.origin != SourceOriginPass {
				continue
			}
			if g.sourceConsumed(src) {
				continue
			}
			if terminal == nil {
				terminal = src
				owner = p
			} else {
				extra++
			}
		}
	}
	if terminal == nil {
		return &ConfigError{Graph: g.name, Detail: "no unconsumed pass-produced colour source: ambiguous or cyclic production with no exit"}
	}
	if extra > 0 {
		Logger().Warn("multiple unconsumed colour outputs, presenting the first in registration order",
			"graph", g.name, "presented", owner.name+"."+terminal.name, "ignored", extra)
	}

	g.presentation.linked = true
	g.presentation.sourcePass = owner.name
	g.presentation.sourceName = terminal.name
	g.presentation.bound = terminal
	owner.presentsAfter = true
	return nil
}

// sourceConsumed reports whether any sink in the graph is bound to src.
func (g *Graph) sourceConsumed(src *Source) bool {
	for _, p := range g.passes {
		for _, sink := range p.sinks {
			if sink.bound == src {
				return true
			}
		}
	}
	return false
}
