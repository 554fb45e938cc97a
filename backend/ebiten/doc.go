// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ebiten shows a glyph grid in a desktop window with Ebitengine.
//
// Renderer implements backend.Renderer by converting each frame into
// ebiten.Vertex triangles drawn with the 16-bit indices as-is. Host is the
// ebiten.Game that polls the keyboard into input events, applies them to
// the grid and draws the rebuilt frame every tick.
package ebiten
