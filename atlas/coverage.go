package atlas

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"

	"github.com/gogpu/gridtext"
)

// Coverage returns the printable ASCII runes that the font in ttf has no
// glyph for, in atlas order.
func Coverage(ttf []byte) ([]rune, error) {
	face, err := font.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("atlas: parse font: %w", err)
	}
	var missing []rune
	for r := gridtext.FirstChar; r <= gridtext.LastChar; r++ {
		if _, ok := face.NominalGlyph(r); !ok {
			missing = append(missing, r)
		}
	}
	return missing, nil
}
