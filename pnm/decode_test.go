package pnm

import (
	"bytes"
	"errors"
	"image"
	"runtime"
	"strings"
	"testing"
)

func TestDecodeBitmapFlip(t *testing.T) {
	// Three rows, each identifiable by its first sample pattern.
	src := "P1\n# comment after magic\n3 3\n011\n101\n110\n"

	img, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Width != 3 || img.Height != 3 {
		t.Fatalf("size = %dx%d, want 3x3", img.Width, img.Height)
	}

	// Row 0 of the output is the last textual row "110".
	want := []byte{
		0, 0, 255, // "110"
		0, 255, 0, // "101"
		255, 0, 0, // "011"
	}
	if !bytes.Equal(img.Pix, want) {
		t.Errorf("Pix = %v, want %v", img.Pix, want)
	}
	if img.Pix[(img.Height-1)*img.Width] != 255 {
		t.Errorf("first textual row should land at the last output row")
	}
}

func TestDecodeBitmapSampleMapping(t *testing.T) {
	img, err := DecodeBitmap([]byte("P1\n2 1\n0 1\n"))
	if err != nil {
		t.Fatalf("DecodeBitmap: %v", err)
	}
	if !bytes.Equal(img.Pix, []byte{255, 0}) {
		t.Errorf("Pix = %v, want [255 0]", img.Pix)
	}
}

func TestDecodeCommentsAnywhere(t *testing.T) {
	src := "P1\n# header\n  # indented\n2 2\n# between rows\n01\n\n   #another\n10\r\n"
	img, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []byte{0, 255, 255, 0}
	if !bytes.Equal(img.Pix, want) {
		t.Errorf("Pix = %v, want %v", img.Pix, want)
	}
}

func TestDecodeGraymap(t *testing.T) {
	src := "P2\n2 2\n255\n10\n20\n# comment\n30\n40\n"
	img, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []byte{30, 40, 10, 20}
	if !bytes.Equal(img.Pix, want) {
		t.Errorf("Pix = %v, want %v", img.Pix, want)
	}
}

func TestDecodeFormatMismatch(t *testing.T) {
	tests := []struct {
		name   string
		decode func([]byte) (*Image, error)
		data   string
	}{
		{"any/P3", Decode, "P3\n1 1\n255\n0 0 0\n"},
		{"any/empty", Decode, ""},
		{"any/one byte", Decode, "P"},
		{"bitmap given graymap", DecodeBitmap, "P2\n1 1\n255\n0\n"},
		{"graymap given bitmap", DecodeGraymap, "P1\n1 1\n0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := tt.decode([]byte(tt.data))
			if !errors.Is(err, ErrFormat) {
				t.Errorf("err = %v, want ErrFormat", err)
			}
			if img != nil {
				t.Errorf("img = %+v, want nil", img)
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no dimensions", "P1\n# only comments\n"},
		{"one dimension", "P1\n3\n000\n"},
		{"three dimensions", "P1\n1 1 1\n0\n"},
		{"zero width", "P1\n0 1\n\n"},
		{"negative height", "P1\n1 -1\n0\n"},
		{"non numeric", "P1\na b\n0\n"},
		{"too few samples", "P1\n2 2\n01\n"},
		{"too many samples", "P1\n2 1\n011\n"},
		{"bad bitmap sample", "P1\n2 1\n02\n"},
		{"huge", "P1\n100000 1\n0\n"},
		{"graymap missing max", "P2\n1 1\n"},
		{"graymap out of range", "P2\n1 1\n255\n256\n"},
		{"graymap negative", "P2\n1 1\n255\n-1\n"},
		{"graymap not a number", "P2\n1 1\n255\nx\n"},
		{"graymap short", "P2\n2 1\n255\n0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode([]byte(tt.data))
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("err = %v, want *FormatError", err)
			}
			if errors.Is(err, ErrFormat) {
				t.Errorf("malformed data must not report a format mismatch")
			}
			if img != nil {
				t.Errorf("img = %+v, want nil", img)
			}
		})
	}
}

func TestFormatErrorLine(t *testing.T) {
	_, err := Decode([]byte("P1\n# c\n2 1\n0x\n"))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FormatError", err)
	}
	if fe.Line != 4 {
		t.Errorf("Line = %d, want 4", fe.Line)
	}
	if !strings.Contains(fe.Error(), "P1") || !strings.Contains(fe.Error(), "line 4") {
		t.Errorf("Error() = %q, want format and line", fe.Error())
	}
}

// TestDecodeDimensionInvariant checks len(Pix) == Width*Height for every
// accepted input of a small exhaustive family.
func TestDecodeDimensionInvariant(t *testing.T) {
	for w := 1; w <= 4; w++ {
		for h := 1; h <= 4; h++ {
			var sb strings.Builder
			sb.WriteString("P1\n")
			sb.WriteString(strings.Repeat("# pad\n", h%2))
			sb.WriteString(itoa(w) + " " + itoa(h) + "\n")
			for y := 0; y < h; y++ {
				sb.WriteString(strings.Repeat("01", w)[:w] + "\n")
			}
			img, err := Decode([]byte(sb.String()))
			if err != nil {
				t.Fatalf("%dx%d: %v", w, h, err)
			}
			if img.Width != w || img.Height != h || len(img.Pix) != w*h {
				t.Errorf("%dx%d: got %dx%d with %d samples", w, h, img.Width, img.Height, len(img.Pix))
			}
		}
	}
}

func TestImageGrayOrientation(t *testing.T) {
	img, err := Decode([]byte("P2\n1 2\n255\n7\n9\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	g := img.Gray()
	if got := g.GrayAt(0, 0).Y; got != 7 {
		t.Errorf("top pixel = %d, want 7", got)
	}
	if got := g.GrayAt(0, 1).Y; got != 9 {
		t.Errorf("bottom pixel = %d, want 9", got)
	}

	back := FromGray(g)
	if !bytes.Equal(back.Pix, img.Pix) {
		t.Errorf("FromGray(Gray()) = %v, want %v", back.Pix, img.Pix)
	}
}

func TestImageDecodeRegistered(t *testing.T) {
	m, name, err := image.Decode(strings.NewReader("P1\n2 1\n01\n"))
	if err != nil {
		t.Fatalf("image.Decode: %v", err)
	}
	if name != "pbm" {
		t.Errorf("format name = %q, want pbm", name)
	}
	if b := m.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Errorf("bounds = %v, want 2x1", b)
	}
}

func itoa(n int) string {
	return string(rune('0' + n))
}

func TestDecodeLargeHeaderSmallBody(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bitmap", "P1\n32768 32768\n0101\n"},
		{"graymap", "P2\n32768 32768\n255\n1 2 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var before, after runtime.MemStats
			runtime.ReadMemStats(&before)
			_, err := Decode([]byte(tt.src))
			runtime.ReadMemStats(&after)

			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("Decode() error = %v, want *FormatError", err)
			}
			if n := after.TotalAlloc - before.TotalAlloc; n > 1<<20 {
				t.Errorf("Decode() allocated %d bytes for a %d-byte input", n, len(tt.src))
			}
		})
	}
}
