package pnm

import (
	"image"
	"io"
)

func init() {
	image.RegisterFormat("pbm", FormatBitmap.Magic(), decodeImage, decodeConfig)
	image.RegisterFormat("pgm", FormatGraymap.Magic(), decodeImage, decodeConfig)
}

func decodeImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return m.Gray(), nil
}

func decodeConfig(r io.Reader) (image.Config, error) {
	m, err := decodeImage(r)
	if err != nil {
		return image.Config{}, err
	}
	b := m.Bounds()
	return image.Config{ColorModel: m.ColorModel(), Width: b.Dx(), Height: b.Dy()}, nil
}
