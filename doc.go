// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package framegraph assembles independently-authored rendering passes into a
// single, correctly-ordered, resource-safe execution sequence per frame.
//
// A Graph owns an ordered collection of passes plus a set of graph-level
// ("global") sources such as the presentation colour and depth buffers
// supplied by the platform. Each pass declares named, typed output ports
// (sources) and input ports (sinks). Authoring code wires sinks to sources by
// name, then calls Finalize, which resolves every linkage, discovers the
// terminal colour output to present, and creates each pass's render targets.
//
// # Key Principle
//
// framegraph RECEIVES presentation images and target objects from a Platform
// implementation, it does NOT create GPU resources itself. Command encoding,
// swapchain management, and shader compilation live in the backend packages
// (backend/headless, backend/wgpu), never in the graph.
//
// # Execution Order
//
// Passes execute strictly in registration order every frame. The graph links
// producers to consumers but deliberately does not derive a topological order
// from those edges: callers register passes in an order consistent with their
// sink/source dependencies, and that order is never changed. Reordering would
// silently alter rendering results.
//
// # Usage
//
//	g := framegraph.New("forward")
//	_ = g.AddGlobalSource("screen", framegraph.SourceTypeColor, framegraph.SourceOriginGlobal)
//
//	_, err := g.AddPass("opaque", passes.NewClear(gputypes.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = g.SetSinkLinkage("opaque", "input", "", "screen")
//
//	platform := headless.New(800, 600, 3)
//	if err := g.Finalize(platform); err != nil {
//	    log.Fatal(err)
//	}
//
//	for i := 0; running; i++ {
//	    if err := g.ExecuteFrame(&framegraph.Frame{Index: i % platform.FrameCount()}); err != nil {
//	        log.Printf("frame dropped: %v", err)
//	    }
//	}
//	g.Destroy()
//
// # Architecture
//
//	              Authoring code
//	                    │
//	     ┌──────────────┼───────────────┐
//	     │              │               │
//	     ▼              ▼               ▼
//	AddGlobalSource  AddPass     SetSinkLinkage
//	     │              │               │
//	     └──────────────┼───────────────┘
//	                    ▼
//	              Finalize(platform)
//	       ┌────────────┼────────────┐
//	       │            │            │
//	       ▼            ▼            ▼
//	 linkage       terminal      target
//	 resolution    discovery     regeneration
//	                    │
//	                    ▼
//	             ExecuteFrame (per frame, registration order)
//
// # Thread Safety
//
// The graph is NOT thread-safe. All mutation (Add*, SetSinkLinkage, Finalize)
// must complete before the first ExecuteFrame, and all calls must come from a
// single goroutine. The only concurrency-safe piece is the package logger
// (see SetLogger).
package framegraph
