package img2cell

import (
	"fmt"
	"image"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// GlyphMasks rasterises glyphs of a TrueType font into coverage masks
// the size of one snapshot cell. Masks are rendered on first use and
// cached; a GlyphMasks is not safe for concurrent use.
type GlyphMasks struct {
	font          *truetype.Font
	name          string
	width, height int
	size          float64
	baseline      int
	cache         map[rune]*image.Alpha
}

// DefaultGlyphMasks returns masks rendered from the embedded Go Mono
// font.
func DefaultGlyphMasks(cellWidth, cellHeight int) (*GlyphMasks, error) {
	return NewGlyphMasks("Go Mono", gomono.TTF, cellWidth, cellHeight)
}

// LoadGlyphMasks loads a TrueType font from path.
func LoadGlyphMasks(path string, cellWidth, cellHeight int) (*GlyphMasks, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	return NewGlyphMasks(path, data, cellWidth, cellHeight)
}

// NewGlyphMasks parses TrueType data for cells of cellWidth x cellHeight
// pixels.
func NewGlyphMasks(name string, ttf []byte, cellWidth, cellHeight int) (*GlyphMasks, error) {
	if cellWidth <= 0 || cellHeight <= 0 {
		return nil, fmt.Errorf("invalid cell size %dx%d", cellWidth, cellHeight)
	}
	f, err := freetype.ParseFont(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", name, err)
	}

	// Size the font so one em fits the cell height, then place the
	// baseline so ascent and descent are centred in the cell.
	size := float64(cellHeight) * 0.8
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	metrics := face.Metrics()
	face.Close()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	return &GlyphMasks{
		font:     f,
		name:     name,
		width:    cellWidth,
		height:   cellHeight,
		size:     size,
		baseline: (cellHeight + ascent - descent) / 2,
		cache:    make(map[rune]*image.Alpha),
	}, nil
}

// Name returns the font name or path.
func (g *GlyphMasks) Name() string {
	return g.name
}

// CellSize returns the mask dimensions.
func (g *GlyphMasks) CellSize() (width, height int) {
	return g.width, g.height
}

// Has reports whether the font has a glyph for r.
func (g *GlyphMasks) Has(r rune) bool {
	return g.font.Index(r) != 0
}

// Mask returns the coverage mask for r. Runes the font lacks yield an
// empty mask.
func (g *GlyphMasks) Mask(r rune) *image.Alpha {
	if m, ok := g.cache[r]; ok {
		return m
	}
	m := image.NewAlpha(image.Rect(0, 0, g.width, g.height))
	if g.Has(r) {
		ctx := freetype.NewContext()
		ctx.SetDPI(72)
		ctx.SetFont(g.font)
		ctx.SetFontSize(g.size)
		ctx.SetClip(m.Bounds())
		ctx.SetDst(m)
		ctx.SetSrc(image.Opaque)
		ctx.SetHinting(font.HintingFull)
		if _, err := ctx.DrawString(string(r), freetype.Pt(0, g.baseline)); err != nil {
			m = image.NewAlpha(m.Bounds())
		}
	}
	g.cache[r] = m
	return m
}
