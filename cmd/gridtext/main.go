// Command gridtext edits a character grid drawn from a bitmap glyph atlas.
//
// Usage:
//
//	gridtext [-backend window|term|png] [-atlas font_atlas.pgm] [-config gridtext.json]
//
// The window backend opens a desktop window, term draws the grid cells in
// the terminal and png renders -text once into -o.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/gridtext"
	"github.com/gogpu/gridtext/atlas"
	gebiten "github.com/gogpu/gridtext/backend/ebiten"
	"github.com/gogpu/gridtext/internal/config"
	"github.com/gogpu/gridtext/pnm"

	_ "github.com/gogpu/gridtext/backend/software"
	_ "github.com/gogpu/gridtext/backend/wgpu"
)

func main() {
	var (
		configPath = flag.String("config", "", "JSON config file")
		saveConfig = flag.String("save-config", "", "write the effective config to this file and exit")
		backendArg = flag.String("backend", "window", "host: window, term or png")
		atlasPath  = flag.String("atlas", "", "PBM/PGM atlas (default: generated from Go Mono)")
		fontSize   = flag.Float64("font-size", 20, "cell height in pixels")
		width      = flag.Int("width", 800, "window width")
		height     = flag.Int("height", 600, "window height")
		widthFold  = flag.Bool("width-fold", false, "fold full-width input to ASCII")
		text       = flag.String("text", "", "initial grid text")
		output     = flag.String("o", "gridtext.png", "output file for the png backend")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	gridtext.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fatal(err)
		}
	}
	// Flags given on the command line override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = *backendArg
		case "atlas":
			cfg.Atlas = *atlasPath
		case "font-size":
			cfg.FontSize = *fontSize
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "width-fold":
			cfg.WidthFold = *widthFold
		}
	})
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}
	if *saveConfig != "" {
		if err := config.Save(*saveConfig, cfg); err != nil {
			fatal(err)
		}
		return
	}

	img, err := loadAtlas(cfg.Atlas)
	if err != nil {
		fatal(err)
	}

	var opts []gridtext.GridOption
	if cfg.WidthFold {
		opts = append(opts, gridtext.WithWidthFold())
	}

	switch cfg.Backend {
	case "window":
		err = runWindow(cfg, img, *text, opts)
	case "term":
		err = runTerm(cfg, *text, opts)
	case "png":
		err = runPNG(cfg, img, *text, *output, opts)
	}
	if err != nil {
		fatal(err)
	}
}

// loadAtlas reads the atlas at path, or generates the default one.
func loadAtlas(path string) (*pnm.Image, error) {
	if path == "" {
		return atlas.Default(atlas.DefaultFaceConfig())
	}
	return atlas.Load(path)
}

func runWindow(cfg config.Config, img *pnm.Image, text string, opts []gridtext.GridOption) error {
	fg, bg, err := cfg.Colors()
	if err != nil {
		return err
	}
	r, err := gebiten.NewRenderer(cfg.Width, cfg.Height, fg, bg)
	if err != nil {
		return err
	}
	defer r.Close()
	if err := r.SetAtlas(img); err != nil {
		return err
	}

	g := gridtext.NewGrid(float32(cfg.FontSize), float32(cfg.Width), float32(cfg.Height), opts...)
	g.InsertText(text)
	return gebiten.NewHost(g, r, "gridtext").Run()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "gridtext:", err)
	os.Exit(1)
}
