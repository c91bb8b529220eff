// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framegraph

import (
	"errors"
	"testing"
)

func TestFinalizeNilPlatform(t *testing.T) {
	g := New("g")
	if err := g.Finalize(nil); !errors.Is(err, ErrNilPlatform) {
		t.Errorf("Finalize(nil) error = %v, want ErrNilPlatform", err)
	}
}

func TestFinalizeBindsGlobalImages(t *testing.T) {
	g := New("g")
	if err := g.AddGlobalSource("screen", SourceTypeColor, SourceOriginGlobal); err != nil {
		t.Fatal(err)
	}
	if err := g.AddGlobalSource("screen_depth", SourceTypeDepthStencil, SourceOriginGlobal); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddPass("a", producerDelegate("out")); err != nil {
		t.Fatal(err)
	}
	if err := g.SetSinkLinkage("a", "input", "", "screen"); err != nil {
		t.Fatal(err)
	}

	platform := newFakePlatform(640, 480, 3)
	if err := g.Finalize(platform); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	screen := g.GlobalSource("screen")
	if screen.ImageCount() != 3 {
		t.Fatalf("screen.ImageCount() = %d, want 3", screen.ImageCount())
	}
	for i := 0; i < 3; i++ {
		if screen.ImageAt(i) != platform.colors[i] {
			t.Errorf("screen image %d is not the platform colour image", i)
		}
	}
	depth := g.GlobalSource("screen_depth")
	for i := 0; i < 3; i++ {
		if depth.ImageAt(i) != platform.depths[i] {
			t.Errorf("depth image %d is not the platform depth image", i)
		}
	}
	if screen.ImageAt(3) != nil {
		t.Error("ImageAt(out of range) != nil")
	}
}

func TestFinalizeTerminalProducer(t *testing.T) {
	// For all graphs with at least one pass producing an unconsumed colour
	// source, finalize succeeds and that pass presents.
	g := New("g")
	if err := g.AddGlobalSource("screen", SourceTypeColor, SourceOriginGlobal); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddPass("opaque", producerDelegate("scene_colour")); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddPass("post", producerDelegate("final_colour")); err != nil {
		t.Fatal(err)
	}
	if err := g.SetSinkLinkage("opaque", "input", "", "screen"); err != nil {
		t.Fatal(err)
	}
	// post consumes opaque's output; its own output is consumed by no one.
	if err := g.SetSinkLinkage("post", "input", "opaque", "scene_colour"); err != nil {
		t.Fatal(err)
	}

	if err := g.Finalize(newFakePlatform(100, 100, 2)); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if g.Pass("opaque").PresentsAfter() {
		t.Error("opaque.PresentsAfter() = true, want false (its output is consumed)")
	}
	if !g.Pass("post").PresentsAfter() {
		t.Error("post.PresentsAfter() = false, want true")
	}
	if src := g.PresentationSource(); src == nil || src.Name() != "final_colour" {
		t.Errorf("PresentationSource() = %v, want final_colour", src)
	}
}

func TestFinalizeSinglePassScenario(t *testing.T) {
	// One global colour source "screen"; one pass "opaque" with source
	// "scene_colour" and sink "input" linked to "screen". The pass's own
	// unconsumed output is presented, not "screen".
	g := New("g")
	if err := g.AddGlobalSource("screen", SourceTypeColor, SourceOriginGlobal); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddPass("opaque", producerDelegate("scene_colour")); err != nil {
		t.Fatal(err)
	}
	if err := g.SetSinkLinkage("opaque", "input", "", "screen"); err != nil {
		t.Fatal(err)
	}

	if err := g.Finalize(newFakePlatform(800, 600, 3)); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if !g.Pass("opaque").PresentsAfter() {
		t.Error("opaque.PresentsAfter() = false, want true")
	}
	src := g.PresentationSource()
	if src == nil || src.Name() != "scene_colour" || src.Owner() != "opaque" {
		t.Errorf("PresentationSource() = %v, want opaque.scene_colour", src)
	}
}

func TestFinalizeNoUnconsumedColourSource(t *testing.T) {
	// Two passes consuming each other's colour outputs leave no exit.
	g := New("g")
	if err := g.AddGlobalSource("screen", SourceTypeColor, SourceOriginGlobal); err != nil {
		t.Fatal(err)
	}
	a := &stubDelegate{onCreate: func(p *Pass) error {
		if err := p.AddSink("input"); err != nil {
			return err
		}
		if err := p.AddSink("feedback"); err != nil {
			return err
		}
		return p.AddSource("out_a", SourceTypeColor, SourceOriginPass)
	}}
	b := &stubDelegate{onCreate: func(p *Pass) error {
		if err := p.AddSink("input"); err != nil {
			return err
		}
		return p.AddSource("out_b", SourceTypeColor, SourceOriginPass)
	}}
	if _, err := g.AddPass("a", a); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddPass("b", b); err != nil {
		t.Fatal(err)
	}
	if err := g.SetSinkLinkage("a", "input", "", "screen"); err != nil {
		t.Fatal(err)
	}
	if err := g.SetSinkLinkage("a", "feedback", "b", "out_b"); err != nil {
		t.Fatal(err)
	}
	if err := g.SetSinkLinkage("b", "input", "a", "out_a"); err != nil {
		t.Fatal(err)
	}

	err := g.Finalize(newFakePlatform(100, 100, 1))
	var cfg *ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("Finalize() error = %v, want *ConfigError", err)
	}
	if g.Finalized() {
		t.Error("graph reports finalized after failure")
	}
}

func TestFinalizeMultipleUnconsumedPicksFirst(t *testing.T) {
	// Deterministic policy: the first unconsumed colour source in
	// registration order is presented.
	g := New("g")
	if err := g.AddGlobalSource("screen", SourceTypeColor, SourceOriginGlobal); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddPass("first", producerDelegate("out_first")); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddPass("second", producerDelegate("out_second")); err != nil {
		t.Fatal(err)
	}
	if err := g.SetSinkLinkage("first", "input", "", "screen"); err != nil {
		t.Fatal(err)
	}
	if err := g.SetSinkLinkage("second", "input", "", "screen"); err != nil {
		t.Fatal(err)
	}

	if err := g.Finalize(newFakePlatform(100, 100, 1)); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if !g.Pass("first").PresentsAfter() {
		t.Error("first.PresentsAfter() = false, want true")
	}
	if g.Pass("second").PresentsAfter() {
		t.Error("second.PresentsAfter() = true, want false")
	}
}

func TestFinalizeNoPathToPresentableOutput(t *testing.T) {
	// No sink anywhere consumes a global colour source.
	g := New("g")
	if err := g.AddGlobalSource("screen", SourceTypeColor, SourceOriginGlobal); err != nil {
		t.Fatal(err)
	}
	d := &stubDelegate{onCreate: func(p *Pass) error {
		return p.AddSource("out", SourceTypeColor, SourceOriginPass)
	}}
	if _, err := g.AddPass("detached", d); err != nil {
		t.Fatal(err)
	}

	err := g.Finalize(newFakePlatform(100, 100, 1))
	var cfg *ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("Finalize() error = %v, want *ConfigError", err)
	}
}

func TestFinalizeUnlinkedSink(t *testing.T) {
	g := New("g")
	if err := g.AddGlobalSource("screen", SourceTypeColor, SourceOriginGlobal); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddPass("a", producerDelegate("out")); err != nil {
		t.Fatal(err)
	}
	// The sink "input" is declared but never linked.

	err := g.Finalize(newFakePlatform(100, 100, 1))
	var cfg *ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("Finalize() error = %v, want *ConfigError", err)
	}
}

func TestFinalizeInitializeOrderAndFailure(t *testing.T) {
	g := New("g")
	if err := g.AddGlobalSource("screen", SourceTypeColor, SourceOriginGlobal); err != nil {
		t.Fatal(err)
	}

	a := producerDelegate("out_a")
	b := producerDelegate("out_b")
	b.initErr = errors.New("init failed")

	if _, err := g.AddPass("a", a); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddPass("b", b); err != nil {
		t.Fatal(err)
	}
	if err := g.SetSinkLinkage("a", "input", "", "screen"); err != nil {
		t.Fatal(err)
	}
	if err := g.SetSinkLinkage("b", "input", "a", "out_a"); err != nil {
		t.Fatal(err)
	}

	err := g.Finalize(newFakePlatform(100, 100, 1))
	if err == nil || !errors.Is(err, b.initErr) {
		t.Fatalf("Finalize() error = %v, want wrapped init failure", err)
	}
	if a.initialized != 1 || b.initialized != 1 {
		t.Errorf("initialize calls = %d/%d, want 1/1", a.initialized, b.initialized)
	}
	if g.Finalized() {
		t.Error("graph reports finalized after initialize failure")
	}
}

func TestFinalizeTargetCreationFailure(t *testing.T) {
	g := New("g")
	if err := g.AddGlobalSource("screen", SourceTypeColor, SourceOriginGlobal); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddPass("a", producerDelegate("out")); err != nil {
		t.Fatal(err)
	}
	if err := g.SetSinkLinkage("a", "input", "", "screen"); err != nil {
		t.Fatal(err)
	}

	platform := newFakePlatform(100, 100, 1)
	platform.failCreate = errors.New("out of memory")

	err := g.Finalize(platform)
	var re *ResourceError
	if !errors.As(err, &re) {
		t.Fatalf("Finalize() error = %v, want *ResourceError", err)
	}
	if re.Pass != "a" {
		t.Errorf("ResourceError.Pass = %q, want \"a\"", re.Pass)
	}
	if !errors.Is(err, platform.failCreate) {
		t.Error("ResourceError does not wrap the platform error")
	}
}

func TestFinalizeZeroFrameCount(t *testing.T) {
	g := New("g")
	platform := &fakePlatform{frames: 0}
	if err := g.Finalize(platform); err == nil {
		t.Error("Finalize() with zero buffered frames succeeded, want error")
	}
}
