package main

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/wbrown/img2cell"
	"github.com/wbrown/img2cell/imageutil"
)

var (
	ErrUnknownColorMode    = errors.New("unknown color mode")
	ErrUnknownAlignment    = errors.New("unknown alignment")
	ErrUnknownConfigFormat = errors.New("unknown config format")
	ErrUnknownColors       = errors.New("unknown colors setting")
)

// Config holds the viewer settings that can come from a file. Every
// field has a matching command line flag.
type Config struct {
	Mode        string `toml:"mode" yaml:"mode"`
	Align       string `toml:"align" yaml:"align"`
	Background  string `toml:"background" yaml:"background"`
	Foreground  string `toml:"foreground" yaml:"foreground"`
	Border      string `toml:"border" yaml:"border"`
	BorderStyle string `toml:"border_style" yaml:"border_style"`
	Title       string `toml:"title" yaml:"title"`
	Watch       bool   `toml:"watch" yaml:"watch"`
	// Colors is "auto", "true" or "16".
	Colors   string `toml:"colors" yaml:"colors"`
	Distance string `toml:"distance" yaml:"distance"`
	// Interp is the filter for shrinking images larger than the screen.
	Interp string `toml:"interp" yaml:"interp"`
}

func DefaultConfig() Config {
	return Config{
		Mode:   "rgb",
		Align:  "center",
		Border: "none",
		Colors: "auto",
		Interp: "nearest",
	}
}

// LoadConfig reads a TOML or YAML file, chosen by extension, on top of
// DefaultConfig. Keys missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := parseConfig(filepath.Ext(path), data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

func parseConfig(ext string, data []byte, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownConfigFormat, ext)
	}
}

// Widget builds an image widget configured by c. The widget has no
// source yet.
func (c Config) Widget() (*img2cell.Image, error) {
	mode, err := img2cell.ParseColorMode(c.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColorMode, c.Mode)
	}
	align, err := img2cell.ParseAlignment(c.Align)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlignment, c.Align)
	}
	fg, err := img2cell.ParseColor(c.Foreground)
	if err != nil {
		return nil, fmt.Errorf("foreground: %w", err)
	}
	bg, err := img2cell.ParseColor(c.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	interp, err := imageutil.ParseInterpolation(c.Interp)
	if err != nil {
		return nil, err
	}

	w := &img2cell.Image{
		ColorMode:     mode,
		Alignment:     align,
		Interpolation: interp,
		Style:         img2cell.Style{Fg: fg, Bg: bg},
	}

	lines, framed, err := img2cell.ParseLineSet(c.Border)
	if err != nil {
		return nil, err
	}
	if !framed && c.Title == "" {
		return w, nil
	}
	if !framed {
		lines = img2cell.LinesSingle
	}
	borderFg, err := img2cell.ParseColor(c.BorderStyle)
	if err != nil {
		return nil, fmt.Errorf("border style: %w", err)
	}
	w.Frame = &img2cell.Border{
		Lines: lines,
		Style: img2cell.Style{Fg: borderFg},
		Title: c.Title,
	}
	return w, nil
}

// TrueColors is the colour count of a 24-bit output.
const TrueColors = 1 << 24

// Quantizer returns the palette mapper for 16 colour output, or nil when
// colours are passed through. With "auto" the choice follows colors, the
// number the output supports: below 256 the named palette is used, at
// 256 or more tcell's own mapping is finer than sixteen entries.
func (c Config) Quantizer(colors int) (*img2cell.Quantizer, error) {
	method, err := img2cell.ParseDistanceMethod(c.Distance)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(c.Colors) {
	case "", "auto":
		if colors >= 256 {
			return nil, nil
		}
	case "true", "truecolor", "24bit":
		return nil, nil
	case "16":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownColors, c.Colors)
	}
	return img2cell.NewQuantizer([16]color.RGBA{}, method), nil
}

// nextAlignment cycles center, left, right.
func nextAlignment(a img2cell.Alignment) img2cell.Alignment {
	switch a {
	case img2cell.AlignCenter:
		return img2cell.AlignLeft
	case img2cell.AlignLeft:
		return img2cell.AlignRight
	default:
		return img2cell.AlignCenter
	}
}

// toggleMode switches between the two colour modes.
func toggleMode(m img2cell.ColorMode) img2cell.ColorMode {
	if m == img2cell.ColorModeRGB {
		return img2cell.ColorModeLuma
	}
	return img2cell.ColorModeRGB
}
