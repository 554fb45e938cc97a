// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu provides the GPU glyph grid renderer on gogpu/wgpu HAL devices.
//
// The renderer uploads the atlas as an R8Unorm texture, compiles the grid
// WGSL shader with naga and draws each frame with one indexed draw call
// (16-bit indices, six per quad) into an offscreen target texture:
//
//	r, err := wgpu.New(device, queue, wgpu.Config{Config: backend.Config{Width: 800, Height: 600}})
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//	_ = r.SetAtlas(atlas)
//	_ = r.Draw(frame.Vertices, frame.Indices)
//	img, _ := r.ReadPixels()
//
// # Device Sharing
//
// A host that already owns a device (for example a gogpu window) passes it
// through a gpucontext.DeviceProvider, either directly with NewFromProvider
// or for registry-created renderers with SetDeviceProvider. Without a
// provider the registered factory opens a Vulkan device if that HAL backend
// is linked in, and fails otherwise so that backend.Default falls back to
// the software renderer.
//
// Build with the nogpu tag to leave the renderer out.
package wgpu
