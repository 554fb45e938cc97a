package pnm

import (
	"bytes"
	"strconv"
	"strings"
)

// maxDimension bounds width and height so width*height cannot overflow and
// a corrupt header cannot request an absurd allocation.
const maxDimension = 1 << 15

// Decode decodes a plain P1 or P2 image, dispatching on the magic tag.
// It returns ErrFormat for any other tag.
func Decode(data []byte) (*Image, error) {
	switch {
	case hasMagic(data, FormatBitmap):
		return DecodeBitmap(data)
	case hasMagic(data, FormatGraymap):
		return DecodeGraymap(data)
	default:
		return nil, ErrFormat
	}
}

// DecodeBitmap decodes a plain 1-bit bitmap (P1).
//
// Sample '0' decodes to 255 and '1' to 0. Whitespace between samples is
// ignored, so "0 1" and "01" are the same row.
func DecodeBitmap(data []byte) (*Image, error) {
	if !hasMagic(data, FormatBitmap) {
		return nil, ErrFormat
	}
	lines := newLineScanner(data)
	w, h, err := readDimensions(lines, FormatBitmap)
	if err != nil {
		return nil, err
	}

	// Each sample takes at least one byte of input.
	pix := make([]byte, 0, min(w*h, len(data)))
	for lines.next() {
		for _, c := range lines.text() {
			switch c {
			case '0':
				pix = append(pix, 255)
			case '1':
				pix = append(pix, 0)
			case ' ', '\t', '\v', '\f':
			default:
				return nil, lines.errorf(FormatBitmap, "invalid sample %q", c)
			}
		}
	}
	return finish(pix, w, h, FormatBitmap)
}

// DecodeGraymap decodes a plain 8-bit graymap (P2).
//
// The line after the dimensions holds the maximum sample value; it is read
// and discarded. Samples are decimal integers in 0..255 and are stored
// unchanged.
func DecodeGraymap(data []byte) (*Image, error) {
	if !hasMagic(data, FormatGraymap) {
		return nil, ErrFormat
	}
	lines := newLineScanner(data)
	w, h, err := readDimensions(lines, FormatGraymap)
	if err != nil {
		return nil, err
	}
	if !lines.next() {
		return nil, &FormatError{Format: FormatGraymap, Reason: "missing max value line"}
	}

	// Each sample takes at least one byte of input.
	pix := make([]byte, 0, min(w*h, len(data)))
	for lines.next() {
		for _, field := range strings.Fields(lines.text()) {
			v, err := strconv.Atoi(field)
			if err != nil || v < 0 || v > 255 {
				return nil, lines.errorf(FormatGraymap, "sample %q out of range 0..255", field)
			}
			pix = append(pix, byte(v))
		}
	}
	return finish(pix, w, h, FormatGraymap)
}

func hasMagic(data []byte, f Format) bool {
	return bytes.HasPrefix(data, []byte(f.Magic()))
}

// readDimensions parses the "width height" header line.
func readDimensions(lines *lineScanner, f Format) (w, h int, err error) {
	if !lines.next() {
		return 0, 0, &FormatError{Format: f, Reason: "missing dimension line"}
	}
	fields := strings.Fields(lines.text())
	if len(fields) != 2 {
		return 0, 0, lines.errorf(f, "dimension line has %d fields, want 2", len(fields))
	}
	w, errW := strconv.Atoi(fields[0])
	h, errH := strconv.Atoi(fields[1])
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, lines.errorf(f, "dimensions %q must be positive integers", lines.text())
	}
	if w > maxDimension || h > maxDimension {
		return 0, 0, lines.errorf(f, "dimensions %dx%d exceed %d", w, h, maxDimension)
	}
	return w, h, nil
}

// finish checks the sample count and reverses the row order.
func finish(pix []byte, w, h int, f Format) (*Image, error) {
	if len(pix) != w*h {
		return nil, &FormatError{
			Format: f,
			Reason: "got " + strconv.Itoa(len(pix)) + " samples, want " + strconv.Itoa(w*h),
		}
	}
	return &Image{Width: w, Height: h, Pix: flipRows(pix, w, h)}, nil
}
