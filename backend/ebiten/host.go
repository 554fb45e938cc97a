// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ebiten

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/gridtext"
	"github.com/gogpu/gridtext/input"
)

// Host runs a grid in a desktop window: keyboard input edits the grid and
// every tick rebuilds and draws its frame. The grid follows the window size.
type Host struct {
	grid     *gridtext.Grid
	renderer *Renderer
	keys     keyboard
	frame    gridtext.Frame
	title    string

	// truncated is set while the buffer holds more cells than one frame
	// can index, so the warning is logged once per overflow.
	truncated bool
}

// NewHost creates a host for grid drawing through r.
func NewHost(grid *gridtext.Grid, r *Renderer, title string) *Host {
	return &Host{grid: grid, renderer: r, title: title}
}

// Run opens the window and blocks until it is closed.
func (h *Host) Run() error {
	w, hgt := h.grid.WindowSize()
	ebiten.SetWindowTitle(h.title)
	ebiten.SetWindowSize(int(w), int(hgt))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(h)
}

// Update applies pending keyboard input and rebuilds the frame.
func (h *Host) Update() error {
	for _, ev := range h.keys.poll() {
		input.Apply(h.grid, ev)
	}
	return h.rebuild()
}

// rebuild builds the frame from the grid and hands it to the renderer.
// A frame truncated to gridtext.MaxQuads is still drawn.
func (h *Host) rebuild() error {
	err := h.frame.Build(h.grid)
	switch {
	case errors.Is(err, gridtext.ErrTooManyQuads):
		if !h.truncated {
			gridtext.Logger().Warn("ebiten: frame truncated", "err", err)
		}
		h.truncated = true
	case err != nil:
		return err
	default:
		h.truncated = false
	}
	return h.renderer.Draw(h.frame.Vertices, h.frame.Indices)
}

// Draw draws the current frame.
func (h *Host) Draw(screen *ebiten.Image) {
	h.renderer.DrawTo(screen)
}

// Layout keeps the grid and renderer sized to the window.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		w, hgt := h.grid.WindowSize()
		if int(w) != outsideWidth || int(hgt) != outsideHeight {
			h.grid.Resize(float32(outsideWidth), float32(outsideHeight))
			if err := h.renderer.Resize(outsideWidth, outsideHeight); err != nil {
				gridtext.Logger().Warn("ebiten: resize failed", "err", err)
			}
		}
	}
	return outsideWidth, outsideHeight
}

var _ ebiten.Game = (*Host)(nil)
