package atlas

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/gridtext"
	"github.com/gogpu/gridtext/pnm"
)

// Generate renders the printable ASCII range of face into a new atlas of
// cellW x cellH pixel cells. Glyphs are drawn white on black, left aligned
// on a baseline placed from the face metrics so that descenders fit.
func Generate(face font.Face, cellW, cellH int) (*pnm.Image, error) {
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("atlas: invalid cell size %dx%d", cellW, cellH)
	}

	dst := image.NewGray(image.Rect(0, 0, cellW*gridtext.AtlasColumns, cellH*gridtext.AtlasRows))
	baseline := baselineOffset(face.Metrics(), cellH)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
	}
	for r := gridtext.FirstChar; r <= gridtext.LastChar; r++ {
		col, row := gridtext.AtlasCell(r)
		if _, ok := face.GlyphAdvance(r); !ok {
			gridtext.Logger().Warn("atlas: glyph missing from face", "rune", string(r))
			continue
		}
		d.Dot = fixed.P(col*cellW, row*cellH+baseline)
		d.DrawString(string(r))
	}
	return pnm.FromGray(dst), nil
}

// baselineOffset places the baseline inside a cell of height cellH,
// centering the ascent+descent box.
func baselineOffset(m font.Metrics, cellH int) int {
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	pad := (cellH - ascent - descent) / 2
	if pad < 0 {
		pad = 0
	}
	return pad + ascent
}

// FaceConfig describes how a font is rendered into an atlas.
type FaceConfig struct {
	// Size is the font size in points at 72 DPI, which equals pixels.
	Size float64
	// CellWidth and CellHeight are the atlas cell size in pixels.
	CellWidth  int
	CellHeight int
}

// DefaultFaceConfig returns the configuration of the built-in atlas: 16px cells
// holding a 13pt face.
func DefaultFaceConfig() FaceConfig {
	return FaceConfig{Size: 13, CellWidth: 8, CellHeight: 16}
}

// Default renders an atlas from the Go Mono font.
func Default(cfg FaceConfig) (*pnm.Image, error) {
	return FromTTF(gomono.TTF, cfg)
}

// FromTTF renders an atlas from TrueType or OpenType font data.
func FromTTF(ttf []byte, cfg FaceConfig) (*pnm.Image, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("atlas: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    cfg.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("atlas: create face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	if missing, err := Coverage(ttf); err == nil && len(missing) > 0 {
		gridtext.Logger().Warn("atlas: font does not cover printable ASCII",
			"missing", string(missing))
	}
	return Generate(face, cfg.CellWidth, cfg.CellHeight)
}
