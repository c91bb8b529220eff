// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package passes

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/framegraph"
)

// Blit scales an RGBA image into the pass's colour attachment.
//
// The source is chosen in this order:
//  1. the Source option, when set (e.g., a loaded background picture);
//  2. the sink "input"'s platform-resolved image for the current frame.
//
// Ports declared by Create:
//   - sink "input": the image to copy from.
//   - source "out" (colour, pass-produced): the blitted surface.
type Blit struct {
	// Source overrides the sink's image as the copy source.
	Source framegraph.Image

	// Scaler performs the scaling. Defaults to draw.ApproxBiLinear; use
	// draw.NearestNeighbor for pixel art or draw.CatmullRom for quality.
	Scaler draw.Scaler
}

// NewBlit creates a blit pass reading from its "input" sink.
func NewBlit() *Blit {
	return &Blit{}
}

// Create declares the blit pass's ports and attachments.
func (b *Blit) Create(p *framegraph.Pass) error {
	if err := p.AddSink("input"); err != nil {
		return err
	}
	if err := p.AddSource("out", framegraph.SourceTypeColor, framegraph.SourceOriginPass); err != nil {
		return err
	}
	p.DeclareAttachments(framegraph.AttachmentSpec{
		Kind: framegraph.AttachmentColor, Policy: framegraph.AttachmentPolicyDefault,
	})
	return nil
}

// Initialize is a no-op.
func (b *Blit) Initialize(*framegraph.Pass) error { return nil }

// Execute scales the source image into the frame's colour attachment.
func (b *Blit) Execute(p *framegraph.Pass, frame *framegraph.Frame) error {
	target := p.Target(frame.Index)
	if target == nil {
		return fmt.Errorf("%w %d", ErrNoTarget, frame.Index)
	}

	src := b.Source
	if src == nil {
		sink := p.Sink("input")
		if sink == nil || sink.Bound() == nil {
			return fmt.Errorf("passes: blit input sink is not bound")
		}
		src = sink.Bound().ImageAt(frame.Index)
		if src == nil {
			return fmt.Errorf("passes: blit source %s has no backing image for frame %d",
				sink.Bound().Name(), frame.Index)
		}
	}

	srcRGBA, err := asRGBA(src)
	if err != nil {
		return err
	}

	var dst *image.RGBA
	for i := 0; i < target.AttachmentCount(); i++ {
		att := target.Attachment(i)
		if att.Kind != framegraph.AttachmentColor {
			continue
		}
		dst, err = asRGBA(att.Image)
		if err != nil {
			return err
		}
		break
	}
	if dst == nil {
		return fmt.Errorf("passes: blit target has no colour attachment")
	}

	scaler := b.Scaler
	if scaler == nil {
		scaler = draw.ApproxBiLinear
	}
	scaler.Scale(dst, dst.Bounds(), srcRGBA, srcRGBA.Bounds(), draw.Src, nil)
	return nil
}

// Destroy is a no-op.
func (b *Blit) Destroy(*framegraph.Pass) {}

// asRGBA wraps a CPU-accessible image as *image.RGBA without copying.
func asRGBA(img framegraph.Image) (*image.RGBA, error) {
	pi, ok := img.(framegraph.PixelImage)
	if !ok {
		return nil, ErrNoCPUAccess
	}
	return &image.RGBA{
		Pix:    pi.Pixels(),
		Stride: pi.Stride(),
		Rect:   image.Rect(0, 0, int(pi.Width()), int(pi.Height())),
	}, nil
}

// Ensure Blit implements the delegate interface.
var _ framegraph.Delegate = (*Blit)(nil)

func init() {
	Register("blit", func() framegraph.Delegate { return NewBlit() })
}
