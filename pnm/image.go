package pnm

import (
	"fmt"
	"image"
)

// Format identifies a plain Netpbm sub-format.
type Format uint8

const (
	// FormatBitmap is the plain 1-bit bitmap format (magic "P1").
	FormatBitmap Format = iota + 1

	// FormatGraymap is the plain 8-bit graymap format (magic "P2").
	FormatGraymap
)

// Magic returns the two-byte tag that starts files of the format.
func (f Format) Magic() string {
	switch f {
	case FormatBitmap:
		return "P1"
	case FormatGraymap:
		return "P2"
	default:
		return ""
	}
}

// String returns the magic tag, or a placeholder for unknown formats.
func (f Format) String() string {
	if m := f.Magic(); m != "" {
		return m
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Image is a decoded single-channel image.
//
// Pix holds Width*Height bytes in row-major order with row 0 being the
// bottom row of the source picture.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// At returns the sample at column x of row y, counting rows from the bottom.
func (m *Image) At(x, y int) byte {
	return m.Pix[y*m.Width+x]
}

// Gray returns a copy of the image as an *image.Gray in the usual top-down
// orientation.
func (m *Image) Gray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		src := m.Pix[(m.Height-1-y)*m.Width : (m.Height-y)*m.Width]
		copy(g.Pix[y*g.Stride:], src)
	}
	return g
}

// FromGray converts a top-down *image.Gray into an Image with its rows
// reversed.
func FromGray(g *image.Gray) *Image {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	m := &Image{Width: w, Height: h, Pix: make([]byte, w*h)}
	for y := 0; y < h; y++ {
		row := g.Pix[g.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(m.Pix[(h-1-y)*w:(h-y)*w], row[:w])
	}
	return m
}

// flipRows returns pix with its rows in reverse order.
func flipRows(pix []byte, w, h int) []byte {
	out := make([]byte, len(pix))
	for y := 0; y < h; y++ {
		copy(out[(h-1-y)*w:(h-y)*w], pix[y*w:(y+1)*w])
	}
	return out
}
