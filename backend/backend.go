// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"
	"fmt"

	"github.com/gogpu/gridtext"
	"github.com/gogpu/gridtext/pnm"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNoAtlas is returned by Draw when quads are submitted before SetAtlas.
	ErrNoAtlas = errors.New("backend: no atlas set")

	// ErrInvalidIndices is returned by Draw for index data that does not
	// describe whole quads within the vertex slice.
	ErrInvalidIndices = errors.New("backend: invalid index data")

	// ErrClosed is returned when using a renderer after Close.
	ErrClosed = errors.New("backend: renderer closed")
)

// Backend name constants.
const (
	// NameSoftware is the CPU reference renderer.
	NameSoftware = "software"
	// NameWGPU is the GPU renderer on gogpu/wgpu HAL devices.
	NameWGPU = "wgpu"
	// NameEbiten is the windowed renderer on Ebitengine.
	NameEbiten = "ebiten"
)

// Renderer draws frames of textured glyph quads.
//
// A frame is a vertex slice in NDC with UVs into the atlas texture and a
// 16-bit index slice, six indices per quad, as built by gridtext.Frame.
// Each Draw replaces the previous frame.
type Renderer interface {
	// Name returns the backend identifier (e.g., "software", "wgpu").
	Name() string

	// SetAtlas uploads the glyph atlas. Rows of atlas run bottom-up, so UV
	// v=0 samples the bottom of the atlas picture.
	SetAtlas(atlas *pnm.Image) error

	// Resize changes the render target size in pixels.
	Resize(width, height int) error

	// Draw renders one frame, clearing the target first.
	Draw(vertices []gridtext.Vertex, indices []uint16) error

	// Close releases all renderer resources.
	Close()
}

// Config holds the settings shared by all backends.
type Config struct {
	// Width and Height are the render target size in pixels.
	Width  int
	Height int
}

// Validate checks that the target size is positive.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("backend: invalid target size %dx%d", c.Width, c.Height)
	}
	return nil
}

// CheckFrame validates the index data of a frame against its vertices:
// indices come in whole quads and every index addresses a vertex.
func CheckFrame(vertices []gridtext.Vertex, indices []uint16) error {
	if len(indices)%len(gridtext.QuadIndices) != 0 {
		return fmt.Errorf("%w: %d indices is not a whole number of quads", ErrInvalidIndices, len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return fmt.Errorf("%w: index %d at %d exceeds %d vertices", ErrInvalidIndices, idx, i, len(vertices))
		}
	}
	return nil
}
