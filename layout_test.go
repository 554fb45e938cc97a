package gridtext

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func approxVec(a, b Vec2) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y)
}

func TestAtlasGlyphCount(t *testing.T) {
	if AtlasGlyphs != 95 {
		t.Errorf("AtlasGlyphs = %d, want 95", AtlasGlyphs)
	}
	if AtlasColumns*AtlasRows != AtlasGlyphs {
		t.Errorf("atlas grid %dx%d does not hold %d glyphs", AtlasColumns, AtlasRows, AtlasGlyphs)
	}
}

func TestAtlasCell(t *testing.T) {
	tests := []struct {
		r        rune
		col, row int
	}{
		{' ', 0, 0},
		{'!', 1, 0},
		{'2', 18, 0}, // index 18, last of first row
		{'3', 0, 1},
		{'A', ('A' - ' ') % 19, ('A' - ' ') / 19},
		{'B', ('B' - ' ') % 19, ('B' - ' ') / 19},
		{'~', 18, 4},
		{'\n', 0, 0},
		{'\t', 0, 0},
		{0x7f, 0, 0},
		{'é', 0, 0},
		{'Ａ', 0, 0},
	}
	for _, tt := range tests {
		col, row := AtlasCell(tt.r)
		if col != tt.col || row != tt.row {
			t.Errorf("AtlasCell(%q) = (%d, %d), want (%d, %d)", tt.r, col, row, tt.col, tt.row)
		}
	}
}

func TestAtlasUV(t *testing.T) {
	pos, size := AtlasUV('~')
	if !approxVec(size, V2(1.0/19, 1.0/5)) {
		t.Errorf("size = %v, want (1/19, 1/5)", size)
	}
	if !approxVec(pos, V2(18.0/19, 4.0/5)) {
		t.Errorf("pos = %v, want (18/19, 4/5)", pos)
	}

	pos, _ = AtlasUV('\x00')
	if pos != (Vec2{}) {
		t.Errorf("out-of-range rune pos = %v, want origin", pos)
	}
}
