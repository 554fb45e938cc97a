// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software provides the CPU reference renderer.
//
// The renderer draws each quad by scaling its atlas cell into the target
// rectangle with nearest-neighbour sampling, which is exact for the
// axis-aligned quads a grid produces. It registers itself as "software".
package software

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/gridtext"
	"github.com/gogpu/gridtext/backend"
	"github.com/gogpu/gridtext/pnm"
)

func init() {
	backend.Register(backend.NameSoftware, func(cfg backend.Config) (backend.Renderer, error) {
		return New(cfg.Width, cfg.Height)
	})
}

// Renderer draws frames into an *image.Gray.
type Renderer struct {
	target *image.Gray
	atlas  *image.Gray
	closed bool
}

// New creates a renderer with a width x height target.
func New(width, height int) (*Renderer, error) {
	r := &Renderer{}
	if err := r.Resize(width, height); err != nil {
		return nil, err
	}
	return r, nil
}

// Name returns "software".
func (r *Renderer) Name() string { return backend.NameSoftware }

// Resize replaces the target with a cleared one of the new size.
func (r *Renderer) Resize(width, height int) error {
	if err := (backend.Config{Width: width, Height: height}).Validate(); err != nil {
		return err
	}
	r.target = image.NewGray(image.Rect(0, 0, width, height))
	return nil
}

// SetAtlas keeps a top-down copy of atlas for sampling.
func (r *Renderer) SetAtlas(atlas *pnm.Image) error {
	if r.closed {
		return backend.ErrClosed
	}
	if atlas == nil || atlas.Width <= 0 || atlas.Height <= 0 {
		return fmt.Errorf("software: invalid atlas")
	}
	r.atlas = atlas.Gray()
	gridtext.Logger().Info("software: atlas set", "width", atlas.Width, "height", atlas.Height)
	return nil
}

// Draw clears the target and draws every quad of the frame.
func (r *Renderer) Draw(vertices []gridtext.Vertex, indices []uint16) error {
	if r.closed {
		return backend.ErrClosed
	}
	if err := backend.CheckFrame(vertices, indices); err != nil {
		return err
	}
	if len(indices) > 0 && r.atlas == nil {
		return backend.ErrNoAtlas
	}

	clear(r.target.Pix)
	for q := 0; q+6 <= len(indices); q += 6 {
		// Indices 0 and 2 of each quad are opposite corners.
		a, b := vertices[indices[q]], vertices[indices[q+2]]
		dst := r.pixelRect(a.Pos, b.Pos)
		src := r.texelRect(a.UV, b.UV)
		if dst.Empty() || src.Empty() {
			continue
		}
		draw.NearestNeighbor.Scale(r.target, dst, r.atlas, src, draw.Src, nil)
	}
	gridtext.Logger().Debug("software: frame drawn", "quads", len(indices)/6)
	return nil
}

// pixelRect maps two NDC corners to a target rectangle (top-left origin).
func (r *Renderer) pixelRect(p0, p1 gridtext.Vec2) image.Rectangle {
	b := r.target.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	x0 := round((float64(p0.X) + 1) / 2 * w)
	y0 := round((1 - float64(p0.Y)) / 2 * h)
	x1 := round((float64(p1.X) + 1) / 2 * w)
	y1 := round((1 - float64(p1.Y)) / 2 * h)
	return image.Rect(x0, y0, x1, y1)
}

// texelRect maps two UV corners to an atlas rectangle. V runs bottom-up,
// so the top-down row is (1-v) * height.
func (r *Renderer) texelRect(uv0, uv1 gridtext.Vec2) image.Rectangle {
	b := r.atlas.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	x0 := round(float64(uv0.X) * w)
	y0 := round((1 - float64(uv0.Y)) * h)
	x1 := round(float64(uv1.X) * w)
	y1 := round((1 - float64(uv1.Y)) * h)
	return image.Rect(x0, y0, x1, y1)
}

func round(v float64) int { return int(math.Round(v)) }

// Image returns the target. It is overwritten by the next Draw.
func (r *Renderer) Image() *image.Gray { return r.target }

// Close drops the target and atlas.
func (r *Renderer) Close() {
	r.closed = true
	r.atlas = nil
}

var _ backend.Renderer = (*Renderer)(nil)
