// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend provides a pluggable renderer abstraction for glyph grids.
//
// A renderer takes the vertex and index arrays of a gridtext.Frame and draws
// them with the glyph atlas bound as a texture. Implementations live in
// subpackages and register themselves on import:
//
//	import _ "github.com/gogpu/gridtext/backend/software"
//
// # Backend Selection
//
// Use Default() to get the best available backend, or New() to request
// a specific backend by name:
//
//	r, err := backend.Default(backend.Config{Width: 800, Height: 600})
//
//	// Or request a specific backend
//	r, err := backend.New("software", cfg)
//
// # Usage
//
//	if err := r.SetAtlas(img); err != nil {
//		log.Fatal(err)
//	}
//	var f gridtext.Frame
//	if err := f.Build(grid); err != nil {
//		log.Fatal(err)
//	}
//	if err := r.Draw(f.Vertices, f.Indices); err != nil {
//		log.Fatal(err)
//	}
//
// # Available Backends
//
//   - "software": CPU renderer into an *image.Gray (always available)
//   - "wgpu": GPU renderer on a gogpu/wgpu HAL device (needs a device provider)
//   - "ebiten": window renderer, used by the ebiten host directly
package backend
