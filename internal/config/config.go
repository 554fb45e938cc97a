// Package config loads and saves the gridtext command configuration.
//
// The file is JSON; keys that are absent keep their defaults:
//
//	{
//	  "backend": "window",
//	  "atlas": "res/font_atlas.pgm",
//	  "font_size": 20,
//	  "window": {"width": 800, "height": 600},
//	  "colors": {"foreground": "#e0e0e0", "background": "#101010"},
//	  "width_fold": false
//	}
package config

import (
	"fmt"
	"image/color"
	"os"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Backends lists the accepted values of Config.Backend.
var Backends = []string{"window", "term", "png"}

// Config holds the gridtext command settings.
type Config struct {
	// Backend selects the host: "window", "term" or "png".
	// Default: "window"
	Backend string

	// Atlas is the path of a PBM/PGM atlas. Empty uses the built-in
	// Go Mono atlas.
	Atlas string

	// FontSize is the cell height in pixels.
	// Default: 20
	FontSize float64

	// Width and Height are the window size in pixels.
	// Default: 800x600
	Width  int
	Height int

	// Foreground and Background are hex colours ("#rrggbb").
	Foreground string
	Background string

	// WidthFold folds full-width input to the atlas range.
	WidthFold bool
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Backend:    "window",
		FontSize:   20,
		Width:      800,
		Height:     600,
		Foreground: "#e0e0e0",
		Background: "#101010",
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(Backends, c.Backend) {
		return &ConfigError{Field: "Backend", Reason: fmt.Sprintf("must be one of %v", Backends)}
	}
	if c.FontSize <= 0 {
		return &ConfigError{Field: "FontSize", Reason: "must be positive"}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return &ConfigError{Field: "Window", Reason: "width and height must be positive"}
	}
	if _, err := colorful.Hex(c.Foreground); err != nil {
		return &ConfigError{Field: "Foreground", Reason: err.Error()}
	}
	if _, err := colorful.Hex(c.Background); err != nil {
		return &ConfigError{Field: "Background", Reason: err.Error()}
	}
	return nil
}

// Colors returns the parsed foreground and background colours.
func (c *Config) Colors() (fg, bg color.Color, err error) {
	f, err := colorful.Hex(c.Foreground)
	if err != nil {
		return nil, nil, &ConfigError{Field: "Foreground", Reason: err.Error()}
	}
	b, err := colorful.Hex(c.Background)
	if err != nil {
		return nil, nil, &ConfigError{Field: "Background", Reason: err.Error()}
	}
	return f.Clamped(), b.Clamped(), nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "config: invalid " + e.Field + ": " + e.Reason
}

// Load reads the configuration file at path on top of DefaultConfig.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes JSON configuration on top of DefaultConfig and validates
// the result.
func Parse(data []byte) (Config, error) {
	if !gjson.ValidBytes(data) {
		return Config{}, fmt.Errorf("config: invalid JSON")
	}
	c := DefaultConfig()
	if v := gjson.GetBytes(data, "backend"); v.Exists() {
		c.Backend = v.String()
	}
	if v := gjson.GetBytes(data, "atlas"); v.Exists() {
		c.Atlas = v.String()
	}
	if v := gjson.GetBytes(data, "font_size"); v.Exists() {
		c.FontSize = v.Float()
	}
	if v := gjson.GetBytes(data, "window.width"); v.Exists() {
		c.Width = int(v.Int())
	}
	if v := gjson.GetBytes(data, "window.height"); v.Exists() {
		c.Height = int(v.Int())
	}
	if v := gjson.GetBytes(data, "colors.foreground"); v.Exists() {
		c.Foreground = v.String()
	}
	if v := gjson.GetBytes(data, "colors.background"); v.Exists() {
		c.Background = v.String()
	}
	if v := gjson.GetBytes(data, "width_fold"); v.Exists() {
		c.WidthFold = v.Bool()
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Marshal encodes c as JSON in the layout Parse reads.
func Marshal(c Config) ([]byte, error) {
	fields := []struct {
		path  string
		value any
	}{
		{"backend", c.Backend},
		{"atlas", c.Atlas},
		{"font_size", c.FontSize},
		{"window.width", c.Width},
		{"window.height", c.Height},
		{"colors.foreground", c.Foreground},
		{"colors.background", c.Background},
		{"width_fold", c.WidthFold},
	}
	data := []byte("{}")
	for _, f := range fields {
		var err error
		data, err = sjson.SetBytes(data, f.path, f.value)
		if err != nil {
			return nil, fmt.Errorf("config: set %s: %w", f.path, err)
		}
	}
	return data, nil
}

// Save writes c to path.
func Save(path string, c Config) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // config is not secret
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
