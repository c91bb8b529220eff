// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package passes

import "github.com/gogpu/framegraph"

// Callback adapts plain functions to the framegraph.Delegate interface.
// Nil callbacks are no-ops. Useful for application-local passes and tests
// that do not warrant a named type:
//
//	g.AddPass("debug", &passes.Callback{
//	    OnCreate: func(p *framegraph.Pass) error {
//	        return p.AddSource("out", framegraph.SourceTypeColor, framegraph.SourceOriginPass)
//	    },
//	    OnExecute: func(p *framegraph.Pass, f *framegraph.Frame) error {
//	        // per-frame work
//	        return nil
//	    },
//	})
type Callback struct {
	OnCreate     func(p *framegraph.Pass) error
	OnInitialize func(p *framegraph.Pass) error
	OnExecute    func(p *framegraph.Pass, frame *framegraph.Frame) error
	OnDestroy    func(p *framegraph.Pass)
}

// Create invokes OnCreate when set.
func (c *Callback) Create(p *framegraph.Pass) error {
	if c.OnCreate != nil {
		return c.OnCreate(p)
	}
	return nil
}

// Initialize invokes OnInitialize when set.
func (c *Callback) Initialize(p *framegraph.Pass) error {
	if c.OnInitialize != nil {
		return c.OnInitialize(p)
	}
	return nil
}

// Execute invokes OnExecute when set.
func (c *Callback) Execute(p *framegraph.Pass, frame *framegraph.Frame) error {
	if c.OnExecute != nil {
		return c.OnExecute(p, frame)
	}
	return nil
}

// Destroy invokes OnDestroy when set.
func (c *Callback) Destroy(p *framegraph.Pass) {
	if c.OnDestroy != nil {
		c.OnDestroy(p)
	}
}

// Ensure Callback implements the delegate interface.
var _ framegraph.Delegate = (*Callback)(nil)
