// Package gridtext lays out a fixed monospace character grid and turns it
// into textured quads sampled from a bitmap glyph atlas.
//
// # Overview
//
// A Grid owns a text buffer and a window size. From the font size it derives
// how many character cells fit the window (cells are twice as tall as they
// are wide) and places every buffer cell in a unit square centered in the
// window. Each cell becomes a Glyph: a screen rectangle plus the atlas
// sub-rectangle of its character. Glyph.Vertices turns a Glyph into four
// NDC vertices, and Frame collects the vertices and 16-bit indices a render
// backend draws in one indexed call.
//
// # Quick Start
//
//	img, err := atlas.Load("font_atlas.pgm")
//	if err != nil {
//	    log.Fatal(err) // the atlas is mandatory
//	}
//	r, err := software.New(800, 600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = r.SetAtlas(img)
//
//	g := gridtext.NewGrid(20, 800, 600)
//	g.InsertText("hello")
//
//	var f gridtext.Frame
//	if err := f.Build(g); err != nil {
//	    log.Fatal(err)
//	}
//	_ = r.Draw(f.Vertices, f.Indices)
//
// # Atlas
//
// The atlas is a single-channel image holding the printable ASCII range
// ' '..'~' in a 19x5 grid of equal cells, starting at the top-left. Runes
// outside that range render as the first cell, the blank space glyph.
//
// # Coordinate Systems
//
//   - Grid layout: unit square, (0,0) top-left, (1,1) bottom-right
//   - Vertex positions: NDC, (-1,-1) bottom-left, (1,1) top-right
//   - Atlas UV in Glyph: (0,0) atlas top-left
//   - Vertex UV: texture coordinates with V running bottom-up, matching the
//     row order produced by package pnm
//
// # Architecture
//
// The module is organized into:
//   - gridtext: Grid, Glyph, Vertex, Frame, atlas layout constants
//   - pnm: plain PBM/PGM decoder and encoder
//   - atlas: atlas loading, validation and generation from fonts
//   - input: keyboard events mapped onto grid edits
//   - backend: the render backend contract and its software, wgpu and
//     ebiten implementations
//   - cmd/gridtext, cmd/atlasgen: the editor and the atlas generator
package gridtext
