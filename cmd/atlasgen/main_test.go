package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/gridtext/atlas"
	"github.com/gogpu/gridtext/pnm"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"8x16", 8, 16, false},
		{"10X20", 10, 20, false},
		{"8", 0, 0, true},
		{"0x16", 0, 0, true},
		{"8x-1", 0, 0, true},
		{"ax16", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := parseCell(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseCell(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if w != tt.w || h != tt.h {
				t.Errorf("parseCell(%q) = %d, %d, want %d, %d", tt.in, w, h, tt.w, tt.h)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]pnm.Format{
		"p1": pnm.FormatBitmap, "PBM": pnm.FormatBitmap,
		"p2": pnm.FormatGraymap, "pgm": pnm.FormatGraymap,
	} {
		got, err := parseFormat(in)
		if err != nil || got != want {
			t.Errorf("parseFormat(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := parseFormat("p6"); !errors.Is(err, errUnknownFormat) {
		t.Errorf("parseFormat(p6) error = %v, want errUnknownFormat", err)
	}
}

func TestWriteDecodes(t *testing.T) {
	img, err := atlas.Default(atlas.DefaultFaceConfig())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := write(&buf, img, pnm.FormatGraymap); err != nil {
		t.Fatalf("write() error = %v", err)
	}
	got, err := atlas.Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("atlas.Parse() error = %v", err)
	}
	if !bytes.Equal(got.Pix, img.Pix) {
		t.Error("written atlas does not decode to the generated one")
	}
}
