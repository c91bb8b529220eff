// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package headless

import (
	"errors"
	"testing"

	"github.com/gogpu/framegraph"
	"github.com/gogpu/gputypes"
)

func TestNewPlatform(t *testing.T) {
	tests := []struct {
		name       string
		width      uint32
		height     uint32
		frames     int
		wantFrames int
	}{
		{"triple buffered", 800, 600, 3, 3},
		{"double buffered", 1920, 1080, 2, 2},
		{"clamped frame count", 100, 100, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.width, tt.height, tt.frames)

			if p.FrameCount() != tt.wantFrames {
				t.Errorf("FrameCount() = %d, want %d", p.FrameCount(), tt.wantFrames)
			}
			if len(p.ColorImages()) != tt.wantFrames {
				t.Errorf("len(ColorImages()) = %d, want %d", len(p.ColorImages()), tt.wantFrames)
			}
			if len(p.DepthImages()) != tt.wantFrames {
				t.Errorf("len(DepthImages()) = %d, want %d", len(p.DepthImages()), tt.wantFrames)
			}
			for i, img := range p.ColorImages() {
				if img.Width() != tt.width || img.Height() != tt.height {
					t.Errorf("colour image %d is %dx%d, want %dx%d",
						i, img.Width(), img.Height(), tt.width, tt.height)
				}
				if img.Format() != gputypes.TextureFormatRGBA8Unorm {
					t.Errorf("colour image %d format = %v, want RGBA8Unorm", i, img.Format())
				}
			}
		})
	}
}

func TestColorImagePixelAccess(t *testing.T) {
	p := New(16, 8, 1)

	img, ok := p.ColorImages()[0].(framegraph.PixelImage)
	if !ok {
		t.Fatal("colour image does not implement PixelImage")
	}
	if img.Pixels() == nil {
		t.Error("Pixels() = nil, want direct access")
	}
	if img.Stride() != 16*4 {
		t.Errorf("Stride() = %d, want %d", img.Stride(), 16*4)
	}
}

func TestCreateTargetValidation(t *testing.T) {
	p := New(64, 64, 1)
	img := p.ColorImages()[0]
	att := []framegraph.Attachment{{Kind: framegraph.AttachmentColor, Image: img}}

	t.Run("no attachments", func(t *testing.T) {
		if _, err := p.CreateTarget("pass", nil, 64, 64); !errors.Is(err, ErrNoAttachments) {
			t.Errorf("CreateTarget() error = %v, want ErrNoAttachments", err)
		}
	})

	t.Run("zero size", func(t *testing.T) {
		if _, err := p.CreateTarget("pass", att, 0, 64); !errors.Is(err, ErrZeroSize) {
			t.Errorf("CreateTarget() error = %v, want ErrZeroSize", err)
		}
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		if _, err := p.CreateTarget("pass", att, 32, 32); err == nil {
			t.Error("CreateTarget() with mismatched dimensions succeeded, want error")
		}
	})

	t.Run("success", func(t *testing.T) {
		target, err := p.CreateTarget("pass", att, 64, 64)
		if err != nil {
			t.Fatalf("CreateTarget() error = %v", err)
		}
		if p.LiveTargets() != 1 {
			t.Errorf("LiveTargets() = %d, want 1", p.LiveTargets())
		}
		target.Destroy()
		if p.LiveTargets() != 0 {
			t.Errorf("LiveTargets() after destroy = %d, want 0", p.LiveTargets())
		}
	})
}

func TestTargetDoubleDestroy(t *testing.T) {
	p := New(32, 32, 1)
	att := []framegraph.Attachment{{Kind: framegraph.AttachmentColor, Image: p.ColorImages()[0]}}

	target, err := p.CreateTarget("pass", att, 32, 32)
	if err != nil {
		t.Fatalf("CreateTarget() error = %v", err)
	}

	target.Destroy()
	target.Destroy() // stale handle, must be rejected

	if p.DestroyedTargets() != 1 {
		t.Errorf("DestroyedTargets() = %d, want 1", p.DestroyedTargets())
	}
}

func TestResize(t *testing.T) {
	p := New(800, 600, 2)

	if err := p.Resize(1920, 1080); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	for i, img := range p.ColorImages() {
		if img.Width() != 1920 || img.Height() != 1080 {
			t.Errorf("colour image %d is %dx%d after resize, want 1920x1080",
				i, img.Width(), img.Height())
		}
	}
	for i, img := range p.DepthImages() {
		if img.Width() != 1920 || img.Height() != 1080 {
			t.Errorf("depth image %d is %dx%d after resize, want 1920x1080",
				i, img.Width(), img.Height())
		}
	}

	if err := p.Resize(0, 100); !errors.Is(err, ErrZeroSize) {
		t.Errorf("Resize(0, 100) error = %v, want ErrZeroSize", err)
	}
}

func TestDepthImage(t *testing.T) {
	p := New(10, 10, 1)

	depth, ok := p.DepthImages()[0].(*DepthImage)
	if !ok {
		t.Fatal("depth image has unexpected type")
	}
	if len(depth.Data()) != 100 {
		t.Errorf("len(Data()) = %d, want 100", len(depth.Data()))
	}
	if depth.Format() != gputypes.TextureFormatDepth24PlusStencil8 {
		t.Errorf("Format() = %v, want Depth24PlusStencil8", depth.Format())
	}
}
