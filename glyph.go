package gridtext

// Glyph is one character cell ready for quad generation.
//
// Pos and Size are in a unit-square screen space with (0,0) at the top-left
// and (1,1) at the bottom-right. UVPos and UVSize select the glyph's
// sub-rectangle of the atlas, with (0,0) at the atlas top-left.
type Glyph struct {
	Size   Vec2
	Pos    Vec2
	UVPos  Vec2
	UVSize Vec2
}

// Vertex is a single quad corner as consumed by a render backend.
// Pos is in normalized device coordinates, UV in texture coordinates.
type Vertex struct {
	Pos Vec2
	UV  Vec2
}

// VertexStride is the byte stride of a serialized Vertex:
//
//	position (vec2<f32>) = 8 bytes
//	uv       (vec2<f32>) = 8 bytes
const VertexStride = 16

// QuadIndices is the index pattern for one quad: two triangles (0,1,2) and
// (0,2,3) over the vertices returned by Glyph.Vertices.
var QuadIndices = [6]uint16{0, 1, 2, 0, 2, 3}

// Vertices returns the four corners of the glyph quad.
//
// Corners are emitted as bottom-left, bottom-right, top-right, top-left in
// the flipped (y-up) sense, which in glyph space is (x0,y0), (x1,y0),
// (x1,y1), (x0,y1). Glyph space x in [0,1] maps to NDC [-1,1] and glyph
// space y in [0,1] maps to NDC [1,-1].
//
// Texture V runs bottom-up because decoded atlases have their rows reversed,
// so the atlas's top-left-origin UV y becomes 1-y. Every vertex samples the
// texel at its own visual corner.
func (g Glyph) Vertices() [4]Vertex {
	x0, y0 := g.Pos.X, g.Pos.Y
	x1, y1 := x0+g.Size.X, y0+g.Size.Y

	u0, v0 := g.UVPos.X, 1-g.UVPos.Y
	u1, v1 := g.UVPos.X+g.UVSize.X, 1-(g.UVPos.Y+g.UVSize.Y)

	return [4]Vertex{
		{Pos: toNDC(x0, y0), UV: Vec2{X: u0, Y: v0}},
		{Pos: toNDC(x1, y0), UV: Vec2{X: u1, Y: v0}},
		{Pos: toNDC(x1, y1), UV: Vec2{X: u1, Y: v1}},
		{Pos: toNDC(x0, y1), UV: Vec2{X: u0, Y: v1}},
	}
}

// toNDC maps a top-left-origin unit-square point to clip space.
func toNDC(x, y float32) Vec2 {
	return Vec2{X: 2*x - 1, Y: 1 - 2*y}
}
