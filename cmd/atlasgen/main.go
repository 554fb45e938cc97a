// Command atlasgen renders a TrueType font into a 19x5 glyph atlas in plain
// PBM or PGM form.
//
// Usage:
//
//	atlasgen [-font font.ttf] [-size 13] [-cell 8x16] [-format p2] [-o atlas.pgm]
//
// Without -font the Go Mono font is used. With -o - (the default) the atlas
// is written to standard output, which must not be a terminal.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/gogpu/gridtext/atlas"
	"github.com/gogpu/gridtext/pnm"
)

func main() {
	var (
		fontPath = flag.String("font", "", "TrueType/OpenType font (default: Go Mono)")
		size     = flag.Float64("size", 0, "font size in pixels (default: 13 for 8x16 cells)")
		cell     = flag.String("cell", "8x16", "atlas cell size WxH")
		format   = flag.String("format", "p2", "output format: p1 or p2")
		output   = flag.String("o", "-", "output file, - for stdout")
		force    = flag.Bool("f", false, "write to stdout even if it is a terminal")
	)
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("atlasgen: ")

	cfg := atlas.DefaultFaceConfig()
	var err error
	if cfg.CellWidth, cfg.CellHeight, err = parseCell(*cell); err != nil {
		log.Fatal(err)
	}
	cfg.Size = *size
	if cfg.Size == 0 {
		cfg.Size = float64(cfg.CellHeight) * 13 / 16
	}
	f, err := parseFormat(*format)
	if err != nil {
		log.Fatal(err)
	}

	var img *pnm.Image
	if *fontPath == "" {
		img, err = atlas.Default(cfg)
	} else {
		var ttf []byte
		if ttf, err = os.ReadFile(*fontPath); err != nil {
			log.Fatal(err)
		}
		img, err = atlas.FromTTF(ttf, cfg)
	}
	if err != nil {
		log.Fatal(err)
	}

	if *output == "-" {
		if !*force && term.IsTerminal(int(os.Stdout.Fd())) {
			log.Fatal("refusing to write an atlas to a terminal; use -o or -f")
		}
		if err := write(os.Stdout, img, f); err != nil {
			log.Fatal(err)
		}
		return
	}
	out, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}
	if err := write(out, img, f); err != nil {
		_ = out.Close()
		log.Fatal(err)
	}
	if err := out.Close(); err != nil {
		log.Fatal(err)
	}
}

func write(w io.Writer, img *pnm.Image, f pnm.Format) error {
	bw := bufio.NewWriter(w)
	if err := pnm.Encode(bw, img, f); err != nil {
		return err
	}
	return bw.Flush()
}

// parseCell parses a "WxH" cell size.
func parseCell(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid cell size %q: want WxH", s)
	}
	if w, err = strconv.Atoi(ws); err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid cell width %q", ws)
	}
	if h, err = strconv.Atoi(hs); err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid cell height %q", hs)
	}
	return w, h, nil
}

var errUnknownFormat = errors.New("unknown format")

func parseFormat(s string) (pnm.Format, error) {
	switch strings.ToLower(s) {
	case "p1", "pbm":
		return pnm.FormatBitmap, nil
	case "p2", "pgm":
		return pnm.FormatGraymap, nil
	}
	return 0, fmt.Errorf("%w %q", errUnknownFormat, s)
}
