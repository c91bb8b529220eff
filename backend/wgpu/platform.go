// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	types "github.com/gogpu/gputypes"

	"github.com/gogpu/framegraph"
)

// Platform errors.
var (
	// ErrNilProvider is returned when New is called without a device provider.
	ErrNilProvider = errors.New("wgpu: device provider is nil")

	// ErrNoHALAccess is returned when the provider does not expose raw HAL
	// device access via HalDevice()/HalQueue().
	ErrNoHALAccess = errors.New("wgpu: provider does not expose HAL device access")

	// ErrClosed is returned when operating on a closed platform.
	ErrClosed = errors.New("wgpu: platform is closed")

	// ErrZeroSize is returned when a surface dimension is zero.
	ErrZeroSize = errors.New("wgpu: width and height must be positive")
)

// halProvider is the optional raw-HAL side of a device provider.
// gogpu windows implement it alongside gpucontext.DeviceProvider.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// Options configures the platform. Only Width and Height are required.
type Options struct {
	// Width is the presentation surface width in pixels.
	Width uint32

	// Height is the presentation surface height in pixels.
	Height uint32

	// FrameCount is the number of buffered frames. Default 3.
	FrameCount int

	// ColorFormat is the presentation colour format. Default BGRA8Unorm,
	// the common swapchain format.
	ColorFormat gputypes.TextureFormat

	// DepthFormat is the presentation depth format. Default
	// Depth24PlusStencil8.
	DepthFormat gputypes.TextureFormat
}

// withDefaults fills unset options.
func (o Options) withDefaults() Options {
	if o.FrameCount <= 0 {
		o.FrameCount = 3
	}
	if o.ColorFormat == gputypes.TextureFormatUndefined {
		o.ColorFormat = gputypes.TextureFormatBGRA8Unorm
	}
	if o.DepthFormat == gputypes.TextureFormatUndefined {
		o.DepthFormat = gputypes.TextureFormatDepth24PlusStencil8
	}
	return o
}

// TextureImage is a HAL texture serving as a presentation image.
type TextureImage struct {
	texture hal.Texture
	view    hal.TextureView
	width   uint32
	height  uint32
	format  gputypes.TextureFormat
}

// Width returns the image width in pixels.
func (t *TextureImage) Width() uint32 { return t.width }

// Height returns the image height in pixels.
func (t *TextureImage) Height() uint32 { return t.height }

// Format returns the image pixel format.
func (t *TextureImage) Format() gputypes.TextureFormat { return t.format }

// Texture returns the underlying HAL texture.
func (t *TextureImage) Texture() hal.Texture { return t.texture }

// View returns the image's default texture view.
func (t *TextureImage) View() hal.TextureView { return t.view }

var _ framegraph.Image = (*TextureImage)(nil)

// Platform is a GPU framegraph.Platform. Presentation images are offscreen
// HAL textures; handing the presented frame to a swapchain is the host
// application's job.
type Platform struct {
	device hal.Device
	queue  hal.Queue
	opts   Options

	colors []framegraph.Image
	depths []framegraph.Image

	blitShader hal.ShaderModule
	closed     bool
}

// New creates a platform on the provider's GPU device.
func New(provider gpucontext.DeviceProvider, opts Options) (*Platform, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	opts = opts.withDefaults()
	if opts.Width == 0 || opts.Height == 0 {
		return nil, ErrZeroSize
	}

	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, ErrNoHALAccess
	}
	queue, _ := hp.HalQueue().(hal.Queue)

	p := &Platform{
		device: device,
		queue:  queue,
		opts:   opts,
	}

	shader, err := compileWGSL(device, "framegraph blit", blitWGSL)
	if err != nil {
		return nil, err
	}
	p.blitShader = shader

	if err := p.allocImages(); err != nil {
		p.Close()
		return nil, err
	}

	framegraph.Logger().Info("wgpu platform created",
		"width", opts.Width, "height", opts.Height, "frames", opts.FrameCount)
	return p, nil
}

// allocImages creates the per-frame colour and depth textures at the
// current size.
func (p *Platform) allocImages() error {
	p.colors = make([]framegraph.Image, p.opts.FrameCount)
	p.depths = make([]framegraph.Image, p.opts.FrameCount)

	for i := 0; i < p.opts.FrameCount; i++ {
		c, err := p.createImage(
			fmt.Sprintf("presentation colour %d", i),
			p.opts.ColorFormat,
			types.TextureUsageRenderAttachment|types.TextureUsageTextureBinding|types.TextureUsageCopySrc,
		)
		if err != nil {
			return err
		}
		p.colors[i] = c

		d, err := p.createImage(
			fmt.Sprintf("presentation depth %d", i),
			p.opts.DepthFormat,
			types.TextureUsageRenderAttachment,
		)
		if err != nil {
			return err
		}
		p.depths[i] = d
	}
	return nil
}

// createImage creates one HAL texture plus its default view.
func (p *Platform) createImage(label string, format gputypes.TextureFormat, usage types.TextureUsage) (*TextureImage, error) {
	halFormat, err := convertFormat(format)
	if err != nil {
		return nil, err
	}

	texture, err := p.device.CreateTexture(&hal.TextureDescriptor{
		Label: label,
		Size: hal.Extent3D{
			Width:              p.opts.Width,
			Height:             p.opts.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     types.TextureDimension2D,
		Format:        halFormat,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture %s: %w", label, err)
	}

	view, err := p.device.CreateTextureView(texture, &hal.TextureViewDescriptor{
		Label:     label + " (view)",
		Format:    types.TextureFormatUndefined, // inherit from texture
		Dimension: types.TextureViewDimensionUndefined,
		Aspect:    types.TextureAspectAll,
	})
	if err != nil {
		p.device.DestroyTexture(texture)
		return nil, fmt.Errorf("wgpu: create view for %s: %w", label, err)
	}

	return &TextureImage{
		texture: texture,
		view:    view,
		width:   p.opts.Width,
		height:  p.opts.Height,
		format:  format,
	}, nil
}

// destroyImages releases every presentation texture and view.
func (p *Platform) destroyImages() {
	for _, set := range [][]framegraph.Image{p.colors, p.depths} {
		for _, img := range set {
			t, ok := img.(*TextureImage)
			if !ok || t == nil {
				continue
			}
			if t.view != nil {
				p.device.DestroyTextureView(t.view)
				t.view = nil
			}
			if t.texture != nil {
				p.device.DestroyTexture(t.texture)
				t.texture = nil
			}
		}
	}
	p.colors = nil
	p.depths = nil
}

// FrameCount returns the number of buffered frames.
func (p *Platform) FrameCount() int { return p.opts.FrameCount }

// ColorImages returns the current colour presentation images.
func (p *Platform) ColorImages() []framegraph.Image { return p.colors }

// DepthImages returns the current depth presentation images.
func (p *Platform) DepthImages() []framegraph.Image { return p.depths }

// BlitShader returns the compiled present/blit shader module for pass
// pipelines that sample the terminal colour output.
func (p *Platform) BlitShader() hal.ShaderModule { return p.blitShader }

// Resize destroys the presentation textures and recreates them at the new
// size. Callers must follow up with Graph.OnResize so targets are
// regenerated from the new images.
func (p *Platform) Resize(width, height uint32) error {
	if p.closed {
		return ErrClosed
	}
	if width == 0 || height == 0 {
		return ErrZeroSize
	}

	p.destroyImages()
	p.opts.Width = width
	p.opts.Height = height
	if err := p.allocImages(); err != nil {
		return err
	}

	framegraph.Logger().Info("wgpu surface resized", "width", width, "height", height)
	return nil
}

// CreateTarget creates a target owning one texture view per attachment.
func (p *Platform) CreateTarget(owner string, attachments []framegraph.Attachment, width, height uint32) (framegraph.PlatformTarget, error) {
	if p.closed {
		return nil, ErrClosed
	}
	if len(attachments) == 0 {
		return nil, fmt.Errorf("wgpu: target for pass %s needs at least one attachment", owner)
	}

	target := &Target{platform: p, owner: owner, width: width, height: height}
	for i, att := range attachments {
		img, ok := att.Image.(*TextureImage)
		if !ok {
			target.Destroy()
			return nil, fmt.Errorf("wgpu: attachment %d of pass %s is not a wgpu image", i, owner)
		}
		view, err := p.device.CreateTextureView(img.texture, &hal.TextureViewDescriptor{
			Label:     fmt.Sprintf("%s attachment %d", owner, i),
			Format:    types.TextureFormatUndefined,
			Dimension: types.TextureViewDimensionUndefined,
			Aspect:    types.TextureAspectAll,
		})
		if err != nil {
			target.Destroy()
			return nil, fmt.Errorf("wgpu: view for attachment %d of pass %s: %w", i, owner, err)
		}
		target.views = append(target.views, view)
	}
	return target, nil
}

// Close releases every GPU resource owned by the platform.
func (p *Platform) Close() {
	if p.closed {
		return
	}
	p.destroyImages()
	if p.blitShader != nil {
		p.device.DestroyShaderModule(p.blitShader)
		p.blitShader = nil
	}
	p.closed = true
}

// Target is the wgpu backend's render-target object: one texture view per
// attachment, destroyed with the target.
type Target struct {
	platform *Platform
	owner    string
	width    uint32
	height   uint32
	views    []hal.TextureView
}

// Views returns the per-attachment texture views.
func (t *Target) Views() []hal.TextureView { return t.views }

// Destroy releases the target's views.
func (t *Target) Destroy() {
	for i, v := range t.views {
		if v != nil {
			t.platform.device.DestroyTextureView(v)
			t.views[i] = nil
		}
	}
	t.views = nil
}

// convertFormat maps the gputypes formats the platform supports to their
// HAL equivalents.
func convertFormat(f gputypes.TextureFormat) (types.TextureFormat, error) {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		return types.TextureFormatRGBA8Unorm, nil
	case gputypes.TextureFormatBGRA8Unorm:
		return types.TextureFormatBGRA8Unorm, nil
	case gputypes.TextureFormatDepth24PlusStencil8:
		return types.TextureFormatDepth24PlusStencil8, nil
	default:
		return types.TextureFormatUndefined, fmt.Errorf("wgpu: unsupported texture format %v", f)
	}
}

// Ensure the platform satisfies the framegraph interfaces.
var (
	_ framegraph.Platform       = (*Platform)(nil)
	_ framegraph.PlatformTarget = (*Target)(nil)
)
