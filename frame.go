package gridtext

import (
	"encoding/binary"
	"fmt"
	"math"
)

// MaxQuads is the largest number of quads whose vertices 16-bit indices can
// address (4 vertices per quad).
const MaxQuads = (math.MaxUint16 + 1) / 4

// Frame holds the vertex and index arrays for one draw.
//
// A Frame is rebuilt from scratch every frame; Build replaces the previous
// contents and reuses the backing arrays.
type Frame struct {
	Vertices []Vertex
	Indices  []uint16
}

// Build replaces the frame contents with one quad per glyph of g.
//
// If g has more than MaxQuads cells, Build keeps the first MaxQuads quads
// and returns an error wrapping ErrTooManyQuads. The frame is still valid
// and may be drawn; the dropped cells lie past the visible grid.
func (f *Frame) Build(g *Grid) error {
	f.Vertices = f.Vertices[:0]
	f.Indices = f.Indices[:0]

	for glyph := range g.Glyphs() {
		if len(f.Vertices) == MaxQuads*4 {
			break
		}
		base := uint16(len(f.Vertices)) //nolint:gosec // bounded by MaxQuads
		v := glyph.Vertices()
		f.Vertices = append(f.Vertices, v[:]...)
		for _, i := range QuadIndices {
			f.Indices = append(f.Indices, base+i)
		}
	}
	if n := g.Len(); n > MaxQuads && f.Quads() == MaxQuads {
		return fmt.Errorf("%w: dropped %d of %d quads", ErrTooManyQuads, n-MaxQuads, n)
	}
	return nil
}

// Quads returns the number of quads in the frame.
func (f *Frame) Quads() int { return len(f.Vertices) / 4 }

// VertexBytes serializes the vertices little-endian for GPU upload,
// VertexStride bytes per vertex.
func (f *Frame) VertexBytes() []byte {
	if len(f.Vertices) == 0 {
		return nil
	}
	data := make([]byte, len(f.Vertices)*VertexStride)
	for i, v := range f.Vertices {
		writeVertex(data[i*VertexStride:], v)
	}
	return data
}

// IndexBytes serializes the indices little-endian for GPU upload.
func (f *Frame) IndexBytes() []byte {
	if len(f.Indices) == 0 {
		return nil
	}
	data := make([]byte, len(f.Indices)*2)
	for i, idx := range f.Indices {
		binary.LittleEndian.PutUint16(data[i*2:], idx)
	}
	return data
}

// writeVertex writes a single vertex into buf.
func writeVertex(buf []byte, v Vertex) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Pos.X))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Pos.Y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.UV.X))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.UV.Y))
}
