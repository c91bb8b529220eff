// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu provides a GPU framegraph.Platform backed by gogpu/wgpu HAL.
//
// The platform RECEIVES its GPU device from the host application through a
// gpucontext.DeviceProvider (the gogpu pattern: the library never creates
// its own device). The provider must also expose raw HAL access via
// HalDevice()/HalQueue() methods, as gogpu windows do.
//
// Presentation colour and depth images are HAL textures created by the
// platform, one per buffered frame. Targets own per-target texture views,
// created when the graph regenerates and destroyed with the target.
// The blit shader used to present the terminal colour output is compiled
// from WGSL with gogpu/naga at platform creation.
//
// Usage:
//
//	platform, err := wgpu.New(app.DeviceProvider(), wgpu.Options{
//	    Width:  800,
//	    Height: 600,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer platform.Close()
//
//	if err := graph.Finalize(platform); err != nil {
//	    log.Fatal(err)
//	}
package wgpu
