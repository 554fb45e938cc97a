// Package pnm decodes and encodes the plain-text (ASCII) variants of the
// Netpbm bitmap and graymap formats used for glyph atlases.
//
// Two formats are supported:
//
//	P1  1-bit bitmap, samples '0' and '1'
//	P2  8-bit graymap, decimal samples 0..255
//
// Decoded images are single-channel, one byte per pixel, with the rows
// reversed so that row 0 is the bottom row of the source picture. This is
// the orientation GPU textures expect when V runs bottom-up, and callers
// rely on it.
//
// Bitmap samples are inverted on decode: '0' (white in Netpbm) becomes 255
// and '1' becomes 0, so glyph strokes drawn as '0' are opaque in the atlas.
//
// A foreign magic tag yields ErrFormat, which callers treat as "not this
// format". Malformed data yields a *FormatError.
//
// Importing this package also registers both formats with the standard
// image package, so image.Decode accepts them and returns an *image.Gray in
// top-down orientation.
package pnm
