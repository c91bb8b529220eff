// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package passes

import (
	"errors"
	"fmt"

	"github.com/gogpu/framegraph"
	"github.com/gogpu/gputypes"
)

// Clear pass errors.
var (
	// ErrNoTarget is returned when a pass executes without a render target
	// for the requested buffered frame.
	ErrNoTarget = errors.New("passes: no render target for frame")

	// ErrNoCPUAccess is returned when an attachment image offers no direct
	// pixel access. CPU pass kinds only run against CPU-backed platforms;
	// GPU platforms pair with backend-specific delegates instead.
	ErrNoCPUAccess = errors.New("passes: attachment image has no CPU pixel access")
)

// Clear fills every attachment of its render target with a constant value:
// colour attachments with Color, depth attachments with Depth.
//
// Ports declared by Create:
//   - sink "input": the surface being cleared, typically linked to the
//     graph's global colour source.
//   - source "out" (colour, pass-produced): the cleared surface, for
//     downstream passes to consume or for presentation.
type Clear struct {
	// Color is the clear colour, components in [0, 1].
	Color gputypes.Color

	// Depth is the depth clear value, usually 1.
	Depth float32

	// WithDepth adds a depth attachment to the declared target.
	WithDepth bool
}

// NewClear creates a clear pass with the given colour and a depth clear
// value of 1.
func NewClear(c gputypes.Color) *Clear {
	return &Clear{Color: c, Depth: 1}
}

// Create declares the clear pass's ports and attachments.
func (c *Clear) Create(p *framegraph.Pass) error {
	if err := p.AddSink("input"); err != nil {
		return err
	}
	if err := p.AddSource("out", framegraph.SourceTypeColor, framegraph.SourceOriginPass); err != nil {
		return err
	}

	specs := []framegraph.AttachmentSpec{
		{Kind: framegraph.AttachmentColor, Policy: framegraph.AttachmentPolicyDefault},
	}
	if c.WithDepth {
		specs = append(specs, framegraph.AttachmentSpec{
			Kind: framegraph.AttachmentDepth, Policy: framegraph.AttachmentPolicyDefault,
		})
	}
	p.DeclareAttachments(specs...)
	return nil
}

// Initialize is a no-op: the clear pass has no state beyond its options.
func (c *Clear) Initialize(*framegraph.Pass) error { return nil }

// Execute fills the frame's attachments.
func (c *Clear) Execute(p *framegraph.Pass, frame *framegraph.Frame) error {
	target := p.Target(frame.Index)
	if target == nil {
		return fmt.Errorf("%w %d", ErrNoTarget, frame.Index)
	}

	for i := 0; i < target.AttachmentCount(); i++ {
		att := target.Attachment(i)
		switch att.Kind {
		case framegraph.AttachmentColor:
			img, ok := att.Image.(framegraph.PixelImage)
			if !ok {
				return ErrNoCPUAccess
			}
			fillRGBA(img, c.Color)
		case framegraph.AttachmentDepth:
			if depth, ok := att.Image.(interface{ Data() []float32 }); ok {
				buf := depth.Data()
				for j := range buf {
					buf[j] = c.Depth
				}
			}
		}
	}
	return nil
}

// Destroy is a no-op.
func (c *Clear) Destroy(*framegraph.Pass) {}

// fillRGBA writes the colour to every pixel, honouring the stride.
func fillRGBA(img framegraph.PixelImage, c gputypes.Color) {
	r := colorByte(c.R)
	g := colorByte(c.G)
	b := colorByte(c.B)
	a := colorByte(c.A)

	pix := img.Pixels()
	stride := img.Stride()
	width := int(img.Width())
	height := int(img.Height())

	for y := 0; y < height; y++ {
		row := pix[y*stride : y*stride+width*4]
		for x := 0; x < width*4; x += 4 {
			row[x+0] = r
			row[x+1] = g
			row[x+2] = b
			row[x+3] = a
		}
	}
}

// colorByte converts a [0, 1] component to an 8-bit channel value.
func colorByte(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}

// Ensure Clear implements the delegate interface.
var _ framegraph.Delegate = (*Clear)(nil)

func init() {
	Register("clear", func() framegraph.Delegate {
		return NewClear(gputypes.Color{A: 1})
	})
}
