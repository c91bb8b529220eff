// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package headless provides a CPU-only framegraph.Platform.
//
// Presentation colour images are backed by *image.RGBA and expose direct
// pixel access through framegraph.PixelImage, which makes the backend
// suitable for tests, golden-image rendering, and server-side use without a
// GPU or a window. Depth images are plain float32 buffers.
//
// Target bookkeeping goes through a generation-validated handle arena, so a
// leaked or double-destroyed target is detectable rather than silent.
package headless

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/framegraph"
	"github.com/gogpu/framegraph/handle"
	"github.com/gogpu/gputypes"
)

// Errors returned by the headless platform.
var (
	// ErrNoAttachments is returned when CreateTarget is called with an
	// empty attachment list.
	ErrNoAttachments = errors.New("headless: target needs at least one attachment")

	// ErrZeroSize is returned when a target or platform dimension is zero.
	ErrZeroSize = errors.New("headless: width and height must be positive")
)

// ColorImage is a CPU-backed presentation colour image.
type ColorImage struct {
	img *image.RGBA
}

// Width returns the image width in pixels.
func (c *ColorImage) Width() uint32 {
	//nolint:gosec // G115: bounds are created from uint32 dimensions
	return uint32(c.img.Bounds().Dx())
}

// Height returns the image height in pixels.
func (c *ColorImage) Height() uint32 {
	//nolint:gosec // G115: bounds are created from uint32 dimensions
	return uint32(c.img.Bounds().Dy())
}

// Format returns the pixel format (RGBA8).
func (c *ColorImage) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data, 4 bytes per pixel.
func (c *ColorImage) Pixels() []byte { return c.img.Pix }

// Stride returns the number of bytes per row.
func (c *ColorImage) Stride() int { return c.img.Stride }

// RGBA returns the underlying *image.RGBA. The returned image shares
// memory with the presentation image.
func (c *ColorImage) RGBA() *image.RGBA { return c.img }

// DepthImage is a CPU-backed presentation depth image, one float32 per texel.
type DepthImage struct {
	width  uint32
	height uint32
	data   []float32
}

// Width returns the image width in pixels.
func (d *DepthImage) Width() uint32 { return d.width }

// Height returns the image height in pixels.
func (d *DepthImage) Height() uint32 { return d.height }

// Format returns the depth format.
func (d *DepthImage) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatDepth24PlusStencil8
}

// Data returns the depth buffer, row by row.
func (d *DepthImage) Data() []float32 { return d.data }

// Ensure the image types satisfy the framegraph interfaces.
var (
	_ framegraph.PixelImage = (*ColorImage)(nil)
	_ framegraph.Image      = (*DepthImage)(nil)
)

// targetRecord is the arena payload for one created target.
type targetRecord struct {
	owner       string
	attachments []framegraph.Attachment
	width       uint32
	height      uint32
}

// Platform is a CPU-only framegraph.Platform with a fixed number of
// buffered frames. Use Resize to simulate a presentation-surface change.
type Platform struct {
	width  uint32
	height uint32
	frames int

	colors []framegraph.Image
	depths []framegraph.Image

	targets   *handle.Arena[targetRecord]
	created   int
	destroyed int
}

// New creates a headless platform with the given surface size and buffered
// frame count. A frame count below 1 is clamped to 1.
func New(width, height uint32, frames int) *Platform {
	if frames < 1 {
		frames = 1
	}
	p := &Platform{
		width:   width,
		height:  height,
		frames:  frames,
		targets: handle.New[targetRecord](),
	}
	p.allocImages()
	return p
}

// allocImages builds fresh presentation images at the current size. The
// previous images, if any, simply become garbage; nothing else references
// their backing store once the graph regenerates its targets.
func (p *Platform) allocImages() {
	p.colors = make([]framegraph.Image, p.frames)
	p.depths = make([]framegraph.Image, p.frames)
	for i := 0; i < p.frames; i++ {
		p.colors[i] = &ColorImage{
			img: image.NewRGBA(image.Rect(0, 0, int(p.width), int(p.height))),
		}
		p.depths[i] = &DepthImage{
			width:  p.width,
			height: p.height,
			data:   make([]float32, int(p.width)*int(p.height)),
		}
	}
}

// FrameCount returns the number of buffered frames.
func (p *Platform) FrameCount() int { return p.frames }

// Width returns the current surface width in pixels.
func (p *Platform) Width() uint32 { return p.width }

// Height returns the current surface height in pixels.
func (p *Platform) Height() uint32 { return p.height }

// ColorImages returns the current colour presentation images.
func (p *Platform) ColorImages() []framegraph.Image { return p.colors }

// DepthImages returns the current depth presentation images.
func (p *Platform) DepthImages() []framegraph.Image { return p.depths }

// Resize replaces every presentation image with one of the new size.
// Callers must follow up with Graph.OnResize so targets are regenerated.
func (p *Platform) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return ErrZeroSize
	}
	p.width = width
	p.height = height
	p.allocImages()
	framegraph.Logger().Debug("headless surface resized", "width", width, "height", height)
	return nil
}

// CreateTarget records a target for the attachment list and returns its
// handle-backed object.
func (p *Platform) CreateTarget(owner string, attachments []framegraph.Attachment, width, height uint32) (framegraph.PlatformTarget, error) {
	if len(attachments) == 0 {
		return nil, ErrNoAttachments
	}
	if width == 0 || height == 0 {
		return nil, ErrZeroSize
	}
	for i, att := range attachments {
		if att.Image == nil {
			return nil, fmt.Errorf("headless: attachment %d has no image", i)
		}
		if att.Image.Width() != width || att.Image.Height() != height {
			return nil, fmt.Errorf("headless: attachment %d is %dx%d, target is %dx%d",
				i, att.Image.Width(), att.Image.Height(), width, height)
		}
	}

	record := targetRecord{
		owner:       owner,
		attachments: append([]framegraph.Attachment(nil), attachments...),
		width:       width,
		height:      height,
	}
	h := p.targets.Insert(record)
	p.created++
	return &Target{platform: p, handle: h}, nil
}

// CreatedTargets returns how many targets have been created.
func (p *Platform) CreatedTargets() int { return p.created }

// DestroyedTargets returns how many targets have been destroyed.
func (p *Platform) DestroyedTargets() int { return p.destroyed }

// LiveTargets returns the number of targets created but not yet destroyed.
func (p *Platform) LiveTargets() int { return p.targets.Len() }

// Target is the headless backend's render-target object. It holds a
// generation-validated handle rather than a direct reference, so a stale
// Destroy is rejected instead of corrupting another target's slot.
type Target struct {
	platform *Platform
	handle   handle.Handle
}

// Destroy releases the target. Repeated destruction is rejected by handle
// validation and logged.
func (t *Target) Destroy() {
	if _, ok := t.platform.targets.Remove(t.handle); !ok {
		framegraph.Logger().Warn("headless: destroy of stale target handle")
		return
	}
	t.platform.destroyed++
}

// Ensure the platform satisfies the framegraph interfaces.
var (
	_ framegraph.Platform       = (*Platform)(nil)
	_ framegraph.PlatformTarget = (*Target)(nil)
)
