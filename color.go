package img2cell

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a cell colour. It is either the terminal default (unset), one
// of the sixteen named palette entries, or a 24-bit RGB value.
type Color struct {
	R, G, B uint8
	// If Named is true, R holds the palette index (0-15) and G and B are
	// ignored.
	Named bool
	// Set is false for the terminal's default colour.
	Set bool
}

// Named palette indices.
const (
	IndexBlack uint8 = iota
	IndexRed
	IndexGreen
	IndexYellow
	IndexBlue
	IndexMagenta
	IndexCyan
	IndexWhite
	IndexBrightBlack
	IndexBrightRed
	IndexBrightGreen
	IndexBrightYellow
	IndexBrightBlue
	IndexBrightMagenta
	IndexBrightCyan
	IndexBrightWhite
)

// ColorDefault is the terminal's default colour.
var ColorDefault = Color{}

// Named colours.
var (
	ColorBlack   = NamedColor(IndexBlack)
	ColorRed     = NamedColor(IndexRed)
	ColorGreen   = NamedColor(IndexGreen)
	ColorYellow  = NamedColor(IndexYellow)
	ColorBlue    = NamedColor(IndexBlue)
	ColorMagenta = NamedColor(IndexMagenta)
	ColorCyan    = NamedColor(IndexCyan)
	ColorWhite   = NamedColor(IndexWhite)
)

var colorNames = []string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"brightblack", "brightred", "brightgreen", "brightyellow",
	"brightblue", "brightmagenta", "brightcyan", "brightwhite",
}

// NamedColor returns the palette colour with the given index. Indices
// above 15 wrap into the palette.
func NamedColor(index uint8) Color {
	return Color{R: index % 16, Named: true, Set: true}
}

// RGB returns a 24-bit colour.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Set: true}
}

// ParseColor parses "", "default", a palette name such as "red" or
// "bright-blue", or a hex colour ("#rrggbb" or "#rgb").
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" || name == "default" || name == "reset" {
		return ColorDefault, nil
	}
	if strings.HasPrefix(name, "#") {
		c, err := colorful.Hex(name)
		if err != nil {
			return ColorDefault, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return RGB(r, g, b), nil
	}
	name = strings.NewReplacer("-", "", "_", "", " ", "").Replace(name)
	if name == "gray" || name == "grey" {
		name = "brightblack"
	}
	for i, n := range colorNames {
		if n == name {
			return NamedColor(uint8(i)), nil
		}
	}
	return ColorDefault, fmt.Errorf("unknown color %q", s)
}

// IsDefault reports whether c is the terminal default.
func (c Color) IsDefault() bool {
	return !c.Set
}

// Index returns the palette index of a named colour.
func (c Color) Index() (uint8, bool) {
	if !c.Set || !c.Named {
		return 0, false
	}
	return c.R, true
}

// String returns "default", the palette name or "#RRGGBB".
func (c Color) String() string {
	switch {
	case !c.Set:
		return "default"
	case c.Named:
		return colorNames[c.R%16]
	default:
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
}

// Style holds the colours applied to a cell. Unset colours leave the
// underlying cell colour alone when a style is patched onto a cell.
type Style struct {
	Fg Color
	Bg Color
}

// Patch returns s with the set colours of other applied on top.
func (s Style) Patch(other Style) Style {
	if other.Fg.Set {
		s.Fg = other.Fg
	}
	if other.Bg.Set {
		s.Bg = other.Bg
	}
	return s
}

// backdrop resolves the compositing background of a style to normalised
// channels. Only black, white (plain or bright) and explicit RGB are
// understood; every other value, including unset, composites against
// black.
func backdrop(style Style) [3]float32 {
	bg := style.Bg
	switch {
	case !bg.Set:
		return [3]float32{0, 0, 0}
	case bg.Named && (bg.R == IndexWhite || bg.R == IndexBrightWhite):
		return [3]float32{1, 1, 1}
	case bg.Named:
		return [3]float32{0, 0, 0}
	default:
		return [3]float32{
			float32(bg.R) / 255,
			float32(bg.G) / 255,
			float32(bg.B) / 255,
		}
	}
}
