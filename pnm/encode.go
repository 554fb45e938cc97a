package pnm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Encode writes img in the given plain format, restoring top-down row order
// so that Decode of the output yields img again.
//
// For FormatBitmap, samples of 128 and above are written as '0' and darker
// samples as '1', the inverse of the decoding rule. FormatGraymap writes one
// sample per line after a max value of 255.
func Encode(w io.Writer, img *Image, f Format) error {
	if img == nil || img.Width <= 0 || img.Height <= 0 || len(img.Pix) != img.Width*img.Height {
		return fmt.Errorf("pnm: encode: invalid image")
	}
	if f.Magic() == "" {
		return fmt.Errorf("pnm: encode: unsupported format %s", f)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n", f.Magic(), img.Width, img.Height)

	switch f {
	case FormatBitmap:
		for y := img.Height - 1; y >= 0; y-- {
			for x := 0; x < img.Width; x++ {
				if img.At(x, y) >= 128 {
					bw.WriteByte('0')
				} else {
					bw.WriteByte('1')
				}
			}
			bw.WriteByte('\n')
		}
	case FormatGraymap:
		bw.WriteString("255\n")
		for y := img.Height - 1; y >= 0; y-- {
			for x := 0; x < img.Width; x++ {
				bw.WriteString(strconv.Itoa(int(img.At(x, y))))
				bw.WriteByte('\n')
			}
		}
	}
	return bw.Flush()
}
