// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framegraph

import (
	"errors"
	"fmt"
)

// AttachmentKind tags an attachment as colour or depth.
type AttachmentKind int

const (
	// AttachmentColor is a colour attachment.
	AttachmentColor AttachmentKind = iota

	// AttachmentDepth is a depth/stencil attachment.
	AttachmentDepth
)

// String returns the string representation of AttachmentKind.
func (k AttachmentKind) String() string {
	switch k {
	case AttachmentColor:
		return "Color"
	case AttachmentDepth:
		return "Depth"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// AttachmentPolicy selects how an attachment's backing image is sourced.
type AttachmentPolicy int

const (
	// AttachmentPolicyDefault resolves the backing image from the
	// platform's current presentation images for the attachment's
	// buffered-frame index. Refreshed on every regeneration.
	AttachmentPolicyDefault AttachmentPolicy = iota

	// AttachmentPolicyPassOwned means the pass supplies and regenerates the
	// image itself. Not implemented: regeneration fails with
	// NotSupportedError rather than silently ignoring the declaration.
	AttachmentPolicyPassOwned
)

// String returns the string representation of AttachmentPolicy.
func (p AttachmentPolicy) String() string {
	switch p {
	case AttachmentPolicyDefault:
		return "Default"
	case AttachmentPolicyPassOwned:
		return "PassOwned"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// AttachmentSpec is a pass's declaration of one attachment slot, made at
// build time before any backing image exists.
type AttachmentSpec struct {
	// Kind tags the slot as colour or depth.
	Kind AttachmentKind

	// Policy selects how the backing image is sourced.
	Policy AttachmentPolicy
}

// Attachment is one resolved image slot within a render target.
type Attachment struct {
	// Kind tags the slot as colour or depth.
	Kind AttachmentKind

	// Policy selects how the backing image is sourced.
	Policy AttachmentPolicy

	// Image is the resolved backing image for this slot. Replaced in place
	// by regeneration; never owned by the attachment.
	Image Image
}

// Target is one buffered frame's render target for a pass: the resolved
// attachment list plus the backend target object created from it.
type Target struct {
	attachments []Attachment
	width       uint32
	height      uint32
	platform    PlatformTarget
}

// Width returns the target width in pixels, taken from attachment 0's image.
func (t *Target) Width() uint32 { return t.width }

// Height returns the target height in pixels, taken from attachment 0's image.
func (t *Target) Height() uint32 { return t.height }

// AttachmentCount returns the number of attachments.
func (t *Target) AttachmentCount() int { return len(t.attachments) }

// Attachment returns the attachment at index i.
// Panics if i is out of range, like a slice index.
func (t *Target) Attachment(i int) Attachment { return t.attachments[i] }

// Platform returns the backend render-target object.
func (t *Target) Platform() PlatformTarget { return t.platform }

// destroy releases the backend target object, once.
func (t *Target) destroy() {
	if t.platform != nil {
		t.platform.Destroy()
		t.platform = nil
	}
}

// regenerateTargets is the Target Lifecycle Manager: it translates a pass's
// attachment declarations into real backing images and (re)creates the
// render target for every buffered frame. Called once per pass during
// Finalize and again on every resize.
//
// The previous target is destroyed before the new one is created, so there
// is never transient double-ownership of a target object. With unchanged
// platform images the operation is idempotent: the new targets carry the
// same image handles and create/destroy counts stay balanced.
func (g *Graph) regenerateTargets(p *Pass) error {
	if len(p.specs) == 0 {
		return nil
	}

	colors := g.platform.ColorImages()
	depths := g.platform.DepthImages()

	if p.targets == nil {
		p.targets = make([]*Target, g.frameCount)
	}

	for frame := 0; frame < g.frameCount; frame++ {
		attachments := make([]Attachment, len(p.specs))
		for i, spec := range p.specs {
			att := Attachment{Kind: spec.Kind, Policy: spec.Policy}

			switch spec.Policy {
			case AttachmentPolicyDefault:
				switch spec.Kind {
				case AttachmentColor:
					if frame >= len(colors) {
						return &ResourceError{Pass: p.name, Err: fmt.Errorf("no platform colour image for frame %d", frame)}
					}
					att.Image = colors[frame]
				case AttachmentDepth:
					if frame >= len(depths) {
						return &ResourceError{Pass: p.name, Err: fmt.Errorf("no platform depth image for frame %d", frame)}
					}
					att.Image = depths[frame]
				default:
					return &ResourceError{Pass: p.name, Err: fmt.Errorf("unsupported attachment kind %s", spec.Kind)}
				}
			case AttachmentPolicyPassOwned:
				return &ResourceError{Pass: p.name, Err: &NotSupportedError{Feature: "pass-owned attachment regeneration"}}
			default:
				return &ResourceError{Pass: p.name, Err: fmt.Errorf("unsupported attachment policy %s", spec.Policy)}
			}

			if att.Image == nil {
				return &ResourceError{Pass: p.name, Err: errors.New("platform returned nil image")}
			}
			attachments[i] = att
		}

		// Dimensions come from attachment 0; the platform validates that
		// the remaining attachments agree.
		width := attachments[0].Image.Width()
		height := attachments[0].Image.Height()

		// Release the previous target before acquiring the new one.
		if old := p.targets[frame]; old != nil {
			old.destroy()
			p.targets[frame] = nil
		}

		pt, err := g.platform.CreateTarget(p.name, attachments, width, height)
		if err != nil {
			return &ResourceError{Pass: p.name, Err: err}
		}

		p.targets[frame] = &Target{
			attachments: attachments,
			width:       width,
			height:      height,
			platform:    pt,
		}

		Logger().Debug("target regenerated",
			"graph", g.name, "pass", p.name, "frame", frame,
			"width", width, "height", height, "attachments", len(attachments))
	}

	return nil
}
