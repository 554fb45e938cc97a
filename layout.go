package gridtext

// Atlas layout. The bitmap atlas is a fixed grid of AtlasColumns x AtlasRows
// cells holding the printable ASCII range FirstChar..LastChar in row-major
// order starting at the top-left cell.
const (
	AtlasColumns = 19
	AtlasRows    = 5

	FirstChar rune = ' '
	LastChar  rune = '~'

	// AtlasGlyphs is the number of glyphs in the atlas (95).
	AtlasGlyphs = int(LastChar-FirstChar) + 1
)

// CellAspect is the width of a character cell relative to its height.
// Cells are twice as tall as they are wide.
const CellAspect float32 = 0.5

// AtlasIndex returns the atlas glyph index for r. Runes outside the printable
// ASCII range map to index 0, the blank cell.
func AtlasIndex(r rune) int {
	if r < FirstChar || r > LastChar {
		return 0
	}
	return int(r - FirstChar)
}

// AtlasCell returns the column and row of the atlas cell holding r.
func AtlasCell(r rune) (col, row int) {
	i := AtlasIndex(r)
	return i % AtlasColumns, i / AtlasColumns
}

// AtlasUV returns the sub-rectangle of the atlas holding r, in UV units with
// (0,0) at the atlas top-left.
func AtlasUV(r rune) (pos, size Vec2) {
	col, row := AtlasCell(r)
	size = Vec2{X: 1 / float32(AtlasColumns), Y: 1 / float32(AtlasRows)}
	pos = Vec2{X: float32(col) * size.X, Y: float32(row) * size.Y}
	return pos, size
}
