// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ebiten

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/gridtext"
	"github.com/gogpu/gridtext/backend"
	"github.com/gogpu/gridtext/pnm"
)

// Renderer converts frames into Ebitengine triangles and draws them onto
// the screen image during Game.Draw.
type Renderer struct {
	width, height int

	fg, bg color.RGBA

	atlas    *ebiten.Image
	atlasW   float32
	atlasH   float32
	vertices []ebiten.Vertex
	indices  []uint16
	closed   bool
}

// NewRenderer creates a renderer for a width x height screen that draws
// glyphs in fg over bg.
func NewRenderer(width, height int, fg, bg color.Color) (*Renderer, error) {
	r := &Renderer{
		fg: color.RGBAModel.Convert(fg).(color.RGBA),
		bg: color.RGBAModel.Convert(bg).(color.RGBA),
	}
	if err := r.Resize(width, height); err != nil {
		return nil, err
	}
	return r, nil
}

// Name returns "ebiten".
func (r *Renderer) Name() string { return backend.NameEbiten }

// Resize changes the screen size vertices are mapped to.
func (r *Renderer) Resize(width, height int) error {
	if err := (backend.Config{Width: width, Height: height}).Validate(); err != nil {
		return err
	}
	r.width, r.height = width, height
	return nil
}

// SetAtlas uploads atlas as an image whose colour is the foreground
// colour with the atlas sample as coverage.
func (r *Renderer) SetAtlas(atlas *pnm.Image) error {
	if r.closed {
		return backend.ErrClosed
	}
	if atlas == nil || atlas.Width <= 0 || atlas.Height <= 0 || len(atlas.Pix) != atlas.Width*atlas.Height {
		return fmt.Errorf("ebiten: invalid atlas")
	}
	rgba := tint(atlas.Gray(), r.fg)

	if r.atlas != nil {
		r.atlas.Deallocate()
	}
	r.atlas = ebiten.NewImage(atlas.Width, atlas.Height)
	r.atlas.WritePixels(rgba.Pix)
	r.atlasW, r.atlasH = float32(atlas.Width), float32(atlas.Height)
	gridtext.Logger().Info("ebiten: atlas set", "width", atlas.Width, "height", atlas.Height)
	return nil
}

// tint returns a premultiplied RGBA copy of g coloured with fg, using the
// gray level as coverage.
func tint(g *image.Gray, fg color.RGBA) *image.RGBA {
	out := image.NewRGBA(g.Bounds())
	for i, v := range g.Pix {
		a := uint32(v) * uint32(fg.A) / 0xff
		out.Pix[i*4+0] = uint8(uint32(fg.R) * a / 0xff)
		out.Pix[i*4+1] = uint8(uint32(fg.G) * a / 0xff)
		out.Pix[i*4+2] = uint8(uint32(fg.B) * a / 0xff)
		out.Pix[i*4+3] = uint8(a)
	}
	return out
}

// Draw converts the frame; it is shown by the next DrawTo.
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
	r.vertices = toVertices(r.vertices[:0], vertices,
		float32(r.width), float32(r.height), r.atlasW, r.atlasH)
	r.indices = append(r.indices[:0], indices...)
	return nil
}

// toVertices maps NDC positions to screen pixels and bottom-up UVs to
// top-down atlas pixels, appending to dst.
func toVertices(dst []ebiten.Vertex, src []gridtext.Vertex, w, h, atlasW, atlasH float32) []ebiten.Vertex {
	for _, v := range src {
		dst = append(dst, ebiten.Vertex{
			DstX:   (v.Pos.X + 1) / 2 * w,
			DstY:   (1 - v.Pos.Y) / 2 * h,
			SrcX:   v.UV.X * atlasW,
			SrcY:   (1 - v.UV.Y) * atlasH,
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		})
	}
	return dst
}

// DrawTo fills screen with the background colour and draws the last frame.
func (r *Renderer) DrawTo(screen *ebiten.Image) {
	screen.Fill(r.bg)
	if r.atlas == nil || len(r.indices) == 0 {
		return
	}
	screen.DrawTriangles(r.vertices, r.indices, r.atlas, &ebiten.DrawTrianglesOptions{
		Filter: ebiten.FilterNearest,
	})
}

// Close releases the atlas image.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	if r.atlas != nil {
		r.atlas.Deallocate()
		r.atlas = nil
	}
	r.vertices, r.indices = nil, nil
}

var _ backend.Renderer = (*Renderer)(nil)
