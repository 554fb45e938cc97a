package atlas

import (
	"errors"
	"fmt"
	"os"

	"github.com/gogpu/gridtext"
	"github.com/gogpu/gridtext/pnm"
)

// ErrLayout is returned when an image cannot be divided into atlas cells.
var ErrLayout = errors.New("atlas: image does not divide into 19x5 cells")

// Load reads and decodes the atlas file at path.
func Load(path string) (*pnm.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("atlas: %w", err)
	}
	img, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return img, nil
}

// Parse decodes a plain PBM or PGM atlas and checks its layout.
func Parse(data []byte) (*pnm.Image, error) {
	img, err := pnm.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("atlas: decode: %w", err)
	}
	if err := Validate(img); err != nil {
		return nil, err
	}
	gridtext.Logger().Debug("atlas: parsed",
		"width", img.Width, "height", img.Height)
	return img, nil
}

// Validate reports whether img divides evenly into atlas cells.
func Validate(img *pnm.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrLayout)
	}
	if img.Width%gridtext.AtlasColumns != 0 || img.Height%gridtext.AtlasRows != 0 {
		return fmt.Errorf("%w: got %dx%d", ErrLayout, img.Width, img.Height)
	}
	if img.Width == 0 || img.Height == 0 {
		return fmt.Errorf("%w: empty image", ErrLayout)
	}
	return nil
}

// CellSize returns the pixel size of one atlas cell.
func CellSize(img *pnm.Image) (w, h int) {
	return img.Width / gridtext.AtlasColumns, img.Height / gridtext.AtlasRows
}
