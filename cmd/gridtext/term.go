package main

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/gridtext"
	"github.com/gogpu/gridtext/input"
	"github.com/gogpu/gridtext/internal/config"
)

// termFontSize makes one grid cell one terminal cell: a grid sized
// cols x 2*rows pixels at this font size has exactly cols x rows cells.
const termFontSize = 2

// runTerm edits the grid in the terminal until Escape or Ctrl+C.
func runTerm(cfg config.Config, text string, opts []gridtext.GridOption) error {
	fg, bg, err := cfg.Colors()
	if err != nil {
		return err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	style := tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcellColor(bg))
	screen.SetStyle(style)

	cols, rows := screen.Size()
	g := gridtext.NewGrid(termFontSize, float32(cols), float32(2*rows), opts...)
	g.InsertText(text)

	for {
		drawTerm(screen, g, style)
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			cols, rows := ev.Size()
			g.Resize(float32(cols), float32(2*rows))
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				return nil
			}
			if e, ok := input.FromTcell(ev); ok {
				input.Apply(g, e)
			}
		}
	}
}

// drawTerm shows the cells of g that fit the grid dimensions.
func drawTerm(screen tcell.Screen, g *gridtext.Grid, style tcell.Style) {
	screen.Clear()
	cols, rows := g.Dimensions()
	if cols == 0 || rows == 0 {
		screen.Show()
		return
	}
	cells := g.Cells()
	for k, r := range cells {
		x, y := k%cols, k/cols
		if y >= rows {
			break
		}
		if r < gridtext.FirstChar || r > gridtext.LastChar {
			r = gridtext.FirstChar
		}
		screen.SetContent(x, y, r, nil, style)
	}
	if n := len(cells); n/cols < rows {
		screen.ShowCursor(n%cols, n/cols)
	} else {
		screen.HideCursor()
	}
	screen.Show()
}

func tcellColor(c color.Color) tcell.Color {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
}
