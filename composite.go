package img2cell

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// ColorMode selects how composited pixels become cells.
type ColorMode int

const (
	// ColorModeLuma draws one shade glyph per cell from pixel
	// luminance and sets no colours. It is the default.
	ColorModeLuma ColorMode = iota
	// ColorModeRGB draws two pixels per cell with an upper half block:
	// the even canvas row becomes the foreground, the odd row the
	// background.
	ColorModeRGB
)

// String returns the mode name.
func (m ColorMode) String() string {
	switch m {
	case ColorModeLuma:
		return "luma"
	case ColorModeRGB:
		return "rgb"
	default:
		return fmt.Sprintf("ColorMode(%d)", int(m))
	}
}

// ParseColorMode parses "luma" or "rgb".
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "luma", "gray", "grey":
		return ColorModeLuma, nil
	case "rgb", "color", "colour", "truecolor":
		return ColorModeRGB, nil
	default:
		return ColorModeLuma, fmt.Errorf("unknown color mode %q", s)
	}
}

// Block element glyphs.
const (
	BlockLight     = '\u2591' // ░
	BlockMedium    = '\u2592' // ▒
	BlockDark      = '\u2593' // ▓
	BlockFull      = '\u2588' // █
	BlockUpperHalf = '\u2580' // ▀
)

// densityRamp maps a luma level to its glyph. Level 0 draws nothing and
// levels past the end use the last entry.
var densityRamp = [...]rune{0, BlockLight, BlockMedium, BlockDark, BlockFull}

// composite blends p over the normalised backdrop bg. Channels come back
// normalised to [0, 1]: the sample and its alpha are each divided by 255.
func composite(p color.NRGBA, bg [3]float32) (r, g, b float32) {
	a := float32(p.A) / 255
	r = float32(p.R)*a/255 + bg[0]*(1-a)
	g = float32(p.G)*a/255 + bg[1]*(1-a)
	b = float32(p.B)*a/255 + bg[2]*(1-a)
	return r, g, b
}

// lumaLevel quantises the luminance of a composited pixel to 0..5.
func lumaLevel(r, g, b float32) int {
	luma := r*0.3 + g*0.59 + b*0.11
	return int(5 * luma)
}

// densityGlyph returns the ramp glyph for level. ok is false for level 0
// and below, where the cell must be left untouched.
func densityGlyph(level int) (glyph rune, ok bool) {
	if level <= 0 {
		return 0, false
	}
	if level >= len(densityRamp) {
		level = len(densityRamp) - 1
	}
	return densityRamp[level], true
}

// rgbColor scales normalised channels back to a 24-bit colour.
func rgbColor(r, g, b float32) Color {
	return RGB(channel(r), channel(g), channel(b))
}

func channel(v float32) uint8 {
	return uint8(math.Round(float64(clamp01(v)) * 255))
}

func clamp01(v float32) float32 {
	return max(0, min(1, v))
}
