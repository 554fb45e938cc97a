package gridtext

import (
	"iter"
	"unicode"

	"golang.org/x/text/width"
)

// Grid is a fixed character grid sized to a window.
//
// The grid owns the text buffer and derives its column and row counts from
// the font size and window size on every call, so a Resize is reflected by
// the next Dimensions or Glyphs call. Grid is not safe for concurrent use;
// mutation and rendering are expected to run on the same event thread.
type Grid struct {
	fontSize float32
	width    float32
	height   float32
	cells    []rune

	opts gridOptions
}

// NewGrid creates an empty grid for the given font size (cell height in
// pixels) and window size in pixels.
func NewGrid(fontSize, width, height float32, opts ...GridOption) *Grid {
	o := defaultGridOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Grid{
		fontSize: fontSize,
		width:    width,
		height:   height,
		opts:     o,
	}
}

// FontSize returns the cell height in pixels.
func (g *Grid) FontSize() float32 { return g.fontSize }

// WindowSize returns the window size in pixels.
func (g *Grid) WindowSize() (width, height float32) { return g.width, g.height }

// SetFontSize changes the cell height.
func (g *Grid) SetFontSize(fontSize float32) { g.fontSize = fontSize }

// Resize changes the window size. The text buffer is kept.
func (g *Grid) Resize(width, height float32) {
	g.width, g.height = width, height
}

// Dimensions returns how many character cells fit the window:
// columns = floor(width / (fontSize * CellAspect)) and
// rows = floor(height / fontSize).
// Non-positive sizes yield (0, 0).
func (g *Grid) Dimensions() (columns, rows int) {
	if g.fontSize <= 0 || g.width <= 0 || g.height <= 0 {
		return 0, 0
	}
	return int(g.width / (g.fontSize * CellAspect)), int(g.height / g.fontSize)
}

// Len returns the number of cells in the buffer.
func (g *Grid) Len() int { return len(g.cells) }

// Cells returns a copy of the buffer.
func (g *Grid) Cells() []rune {
	out := make([]rune, len(g.cells))
	copy(out, g.cells)
	return out
}

// String returns the buffer as a string.
func (g *Grid) String() string { return string(g.cells) }

// InsertText appends every character of s to the buffer. No capacity check
// is made; cells past columns*rows are still laid out by Glyphs.
func (g *Grid) InsertText(s string) {
	if g.opts.widthFold {
		s = width.Fold.String(s)
	}
	for _, r := range s {
		g.cells = append(g.cells, r)
	}
}

// Pop removes the last character. It is a no-op on an empty buffer.
func (g *Grid) Pop() {
	if len(g.cells) > 0 {
		g.cells = g.cells[:len(g.cells)-1]
	}
}

// DeleteWord removes the trailing whitespace run and then the word before
// it, the usual Ctrl+Backspace behaviour.
func (g *Grid) DeleteWord() {
	n := len(g.cells)
	for n > 0 && unicode.IsSpace(g.cells[n-1]) {
		n--
	}
	for n > 0 && !unicode.IsSpace(g.cells[n-1]) {
		n--
	}
	g.cells = g.cells[:n]
}

// FillLine pads the buffer with blanks up to the start of the next row.
// The target is the next multiple of the column count strictly greater than
// the current length, so a buffer that is already aligned advances a full
// row. With zero columns FillLine does nothing.
func (g *Grid) FillLine() {
	columns, _ := g.Dimensions()
	if columns == 0 {
		return
	}
	target := (len(g.cells)/columns + 1) * columns
	for len(g.cells) < target {
		g.cells = append(g.cells, FirstChar)
	}
}

// Glyphs returns the glyph for every buffer cell in order.
//
// The sequence is restartable: each range over it reads the grid as it is at
// that moment and keeps no state between iterations. It is empty when the
// window holds no full cell.
func (g *Grid) Glyphs() iter.Seq[Glyph] {
	return func(yield func(Glyph) bool) {
		l, ok := g.layout()
		if !ok {
			return
		}
		for k, r := range g.cells {
			if !yield(l.glyph(k, r)) {
				return
			}
		}
	}
}

// GlyphAt returns the glyph for cell k. The boolean is false when k is out of
// range or the window holds no full cell.
func (g *Grid) GlyphAt(k int) (Glyph, bool) {
	if k < 0 || k >= len(g.cells) {
		return Glyph{}, false
	}
	l, ok := g.layout()
	if !ok {
		return Glyph{}, false
	}
	return l.glyph(k, g.cells[k]), true
}

// gridLayout is the per-call placement of cells in the unit square.
type gridLayout struct {
	columns int
	cell    Vec2
	offset  Vec2
}

// layout derives cell size and centering offset from the current state.
// The covered viewport is columns x rows cells; the remainder of the window
// is split evenly on both sides of each axis.
func (g *Grid) layout() (gridLayout, bool) {
	columns, rows := g.Dimensions()
	if columns == 0 || rows == 0 {
		return gridLayout{}, false
	}
	cell := Vec2{
		X: g.fontSize * CellAspect / g.width,
		Y: g.fontSize / g.height,
	}
	viewport := Vec2{X: float32(columns) * cell.X, Y: float32(rows) * cell.Y}
	return gridLayout{
		columns: columns,
		cell:    cell,
		offset:  Vec2{X: (1 - viewport.X) / 2, Y: (1 - viewport.Y) / 2},
	}, true
}

// glyph places cell k holding r. Cells past the last row keep going down.
func (l gridLayout) glyph(k int, r rune) Glyph {
	col, row := k%l.columns, k/l.columns
	uvPos, uvSize := AtlasUV(r)
	return Glyph{
		Size:   l.cell,
		Pos:    l.offset.Add(Vec2{X: float32(col), Y: float32(row)}.Mul(l.cell)),
		UVPos:  uvPos,
		UVSize: uvSize,
	}
}
