// Package atlas loads and generates glyph atlases.
//
// An atlas is a single-channel image divided into gridtext.AtlasColumns x
// gridtext.AtlasRows equal cells holding the printable ASCII characters
// ' ' through '~' in row-major order from the top-left cell. Sample values
// are drawn as-is, so the usual atlas has bright glyphs on a dark ground.
//
// Atlases are stored as plain PBM or PGM files (see package pnm). Load and
// Parse read them; Generate renders one from any font.Face, and Default
// renders one from Go Mono for hosts that were not given an atlas file.
package atlas
