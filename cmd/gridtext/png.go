package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/gridtext"
	"github.com/gogpu/gridtext/backend"
	"github.com/gogpu/gridtext/internal/config"
	"github.com/gogpu/gridtext/pnm"
)

// runPNG renders text once with the best available backend and writes the
// coloured result to path.
func runPNG(cfg config.Config, img *pnm.Image, text, path string, opts []gridtext.GridOption) error {
	r, err := backend.Default(backend.Config{Width: cfg.Width, Height: cfg.Height})
	if err != nil {
		return err
	}
	defer r.Close()
	gridtext.Logger().Info("gridtext: rendering", "backend", r.Name(), "out", path)

	if err := r.SetAtlas(img); err != nil {
		return err
	}
	g := gridtext.NewGrid(float32(cfg.FontSize), float32(cfg.Width), float32(cfg.Height), opts...)
	g.InsertText(text)

	var f gridtext.Frame
	if err := f.Build(g); errors.Is(err, gridtext.ErrTooManyQuads) {
		gridtext.Logger().Warn("gridtext: frame truncated", "err", err)
	} else if err != nil {
		return err
	}
	if err := r.Draw(f.Vertices, f.Indices); err != nil {
		return err
	}
	gray, err := readback(r)
	if err != nil {
		return err
	}

	fg, bg, err := cfg.Colors()
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, colorize(gray, fg, bg)); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// readback returns the drawn target of r.
func readback(r backend.Renderer) (*image.Gray, error) {
	switch r := r.(type) {
	case interface{ ReadPixels() (*image.Gray, error) }:
		return r.ReadPixels()
	case interface{ Image() *image.Gray }:
		return r.Image(), nil
	}
	return nil, fmt.Errorf("backend %q cannot read back pixels", r.Name())
}

// colorize maps glyph intensity onto a blend from bg (0) to fg (255).
func colorize(g *image.Gray, fg, bg color.Color) *image.RGBA {
	f, _ := colorful.MakeColor(fg)
	b, _ := colorful.MakeColor(bg)
	var lut [256]color.RGBA
	for i := range lut {
		c := b.BlendRgb(f, float64(i)/255).Clamped()
		r, gg, bb := c.RGB255()
		lut[i] = color.RGBA{R: r, G: gg, B: bb, A: 255}
	}

	bounds := g.Bounds()
	dst := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.SetRGBA(x, y, lut[g.GrayAt(x, y).Y])
		}
	}
	return dst
}
