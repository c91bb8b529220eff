// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framegraph

import "github.com/gogpu/gputypes"

// Image is a backing image handle supplied by a Platform.
//
// The graph treats images as opaque: it records them on sources and
// attachments and reads their dimensions, but never creates or destroys
// them. Backends may expose richer access through type assertion, for
// example a CPU-accessible image also implements PixelImage.
type Image interface {
	// Width returns the image width in pixels.
	Width() uint32

	// Height returns the image height in pixels.
	Height() uint32

	// Format returns the image pixel format.
	Format() gputypes.TextureFormat
}

// PixelImage is an optional interface for images with direct CPU access.
// The headless backend implements it; GPU-backed images return views
// through backend-specific interfaces instead.
type PixelImage interface {
	Image

	// Pixels returns direct access to pixel data, 4 bytes per pixel for
	// RGBA formats, laid out row by row with the given stride.
	Pixels() []byte

	// Stride returns the number of bytes per row.
	Stride() int
}

// PlatformTarget is the backend-side render-target object created from an
// attachment list. The graph destroys it before regenerating a pass's
// target and at graph teardown; everything else about it is backend-owned.
type PlatformTarget interface {
	// Destroy releases the target object. Destroy is called exactly once
	// per created target; implementations should tolerate but log repeats.
	Destroy()
}

// Platform supplies presentation images and target objects to the graph.
//
// All methods are synchronous and must be ready before Finalize is called.
// The image slices reflect the platform's CURRENT presentation images: after
// a resize the platform returns the new images and the graph re-resolves
// every platform-default attachment from them.
type Platform interface {
	// FrameCount returns the number of in-flight buffered frames.
	FrameCount() int

	// ColorImages returns the current colour presentation images, one per
	// buffered frame.
	ColorImages() []Image

	// DepthImages returns the current depth presentation images, one per
	// buffered frame.
	DepthImages() []Image

	// CreateTarget creates a backend render-target object from the resolved
	// attachment list for the named owning pass, with the given dimensions.
	CreateTarget(owner string, attachments []Attachment, width, height uint32) (PlatformTarget, error)
}
