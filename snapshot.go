package img2cell

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/wbrown/img2cell/imageutil"
)

// Quadrants records which quarters of a cell a block glyph covers.
type Quadrants struct {
	TopLeft     bool
	TopRight    bool
	BottomLeft  bool
	BottomRight bool
}

// blockDefs lists the block elements a cell of two by two sub-pixels can
// draw exactly.
var blockDefs = []struct {
	Rune rune
	Quad Quadrants
}{
	{' ', Quadrants{false, false, false, false}},
	{'\u2597', Quadrants{false, false, false, true}},
	{'\u2596', Quadrants{false, false, true, false}},
	{'\u2584', Quadrants{false, false, true, true}},
	{'\u259D', Quadrants{false, true, false, false}},
	{'\u2590', Quadrants{false, true, false, true}},
	{'\u259E', Quadrants{false, true, true, false}},
	{'\u259F', Quadrants{false, true, true, true}},
	{'\u2598', Quadrants{true, false, false, false}},
	{'\u259A', Quadrants{true, false, false, true}},
	{'\u258C', Quadrants{true, false, true, false}},
	{'\u2599', Quadrants{true, false, true, true}},
	{BlockUpperHalf, Quadrants{true, true, false, false}},
	{'\u259C', Quadrants{true, true, false, true}},
	{'\u259B', Quadrants{true, true, true, false}},
	{BlockFull, Quadrants{true, true, true, true}},
}

var blockQuadrants = func() map[rune]Quadrants {
	m := make(map[rune]Quadrants, len(blockDefs))
	for _, def := range blockDefs {
		m[def.Rune] = def.Quad
	}
	return m
}()

// shadeCoverage is the share of foreground in the shade glyphs.
var shadeCoverage = map[rune]float64{
	BlockLight:  0.25,
	BlockMedium: 0.5,
	BlockDark:   0.75,
}

// XtermPalette is the standard xterm rendering of the sixteen named
// colours.
var XtermPalette = [16]color.RGBA{
	{0, 0, 0, 255}, {205, 0, 0, 255}, {0, 205, 0, 255}, {205, 205, 0, 255},
	{0, 0, 238, 255}, {205, 0, 205, 255}, {0, 205, 205, 255}, {229, 229, 229, 255},
	{127, 127, 127, 255}, {255, 0, 0, 255}, {0, 255, 0, 255}, {255, 255, 0, 255},
	{92, 92, 255, 255}, {255, 0, 255, 255}, {0, 255, 255, 255}, {255, 255, 255, 255},
}

// SnapshotOptions controls how a Buffer is drawn to an image.
type SnapshotOptions struct {
	// CellWidth and CellHeight are the pixel size of one cell.
	// Zero means 8x16.
	CellWidth, CellHeight int

	// Font draws glyphs that are not block elements. Without a font
	// those cells show only their background.
	Font *GlyphMasks

	// Palette renders named colours. Zero means XtermPalette.
	Palette [16]color.RGBA

	// DefaultFg and DefaultBg render unset colours. Zero alpha means
	// palette white and black.
	DefaultFg, DefaultBg color.RGBA
}

func (o SnapshotOptions) withDefaults() SnapshotOptions {
	if o.CellWidth <= 0 {
		o.CellWidth = 8
	}
	if o.CellHeight <= 0 {
		o.CellHeight = 16
	}
	if o.Palette == ([16]color.RGBA{}) {
		o.Palette = XtermPalette
	}
	if o.DefaultFg.A == 0 {
		o.DefaultFg = o.Palette[IndexWhite]
	}
	if o.DefaultBg.A == 0 {
		o.DefaultBg = o.Palette[IndexBlack]
	}
	return o
}

// resolve returns the displayed colour of c.
func (o SnapshotOptions) resolve(c Color, background bool) colorful.Color {
	var rgba color.RGBA
	switch {
	case !c.Set && background:
		rgba = o.DefaultBg
	case !c.Set:
		rgba = o.DefaultFg
	case c.Named:
		rgba = o.Palette[c.R%16]
	default:
		rgba = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}
	out, _ := colorful.MakeColor(rgba)
	return out
}

// Snapshot draws every cell of buf into an RGBA image, the way a
// terminal with the given cell size and palette would show it.
func Snapshot(buf *Buffer, opts SnapshotOptions) *image.RGBA {
	opts = opts.withDefaults()
	w, h := buf.Size()
	img := image.NewRGBA(image.Rect(0, 0, w*opts.CellWidth, h*opts.CellHeight))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			drawCell(img, x*opts.CellWidth, y*opts.CellHeight, buf.Cell(x, y), opts)
		}
	}
	return img
}

// SaveSnapshot writes Snapshot(buf, opts) to path as PNG.
func SaveSnapshot(buf *Buffer, path string, opts SnapshotOptions) error {
	return imageutil.SavePNG(Snapshot(buf, opts), path)
}

// drawCell paints one cell with its top-left corner at (px, py).
func drawCell(img *image.RGBA, px, py int, cell Cell, opts SnapshotOptions) {
	fg := opts.resolve(cell.Fg, false)
	bg := opts.resolve(cell.Bg, true)
	coverage := cellCoverage(cell.Rune, opts)

	for dy := 0; dy < opts.CellHeight; dy++ {
		for dx := 0; dx < opts.CellWidth; dx++ {
			t := coverage(dx, dy)
			r, g, b := bg.BlendRgb(fg, t).Clamped().RGB255()
			img.SetRGBA(px+dx, py+dy, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
}

// cellCoverage returns the foreground share of each pixel of a cell
// showing r.
func cellCoverage(r rune, opts SnapshotOptions) func(dx, dy int) float64 {
	if q, ok := blockQuadrants[r]; ok {
		return func(dx, dy int) float64 {
			if quadrantActive(q, dx*2/opts.CellWidth, dy*2/opts.CellHeight) {
				return 1
			}
			return 0
		}
	}
	if c, ok := shadeCoverage[r]; ok {
		return func(int, int) float64 { return c }
	}
	if opts.Font == nil || r == 0 {
		return func(int, int) float64 { return 0 }
	}
	mask := opts.Font.Mask(r)
	mw, mh := opts.Font.CellSize()
	return func(dx, dy int) float64 {
		a := mask.AlphaAt(dx*mw/opts.CellWidth, dy*mh/opts.CellHeight).A
		return float64(a) / 255
	}
}

// quadrantActive reports whether quadrant (x, y), each 0 or 1, is set.
func quadrantActive(q Quadrants, x, y int) bool {
	switch {
	case x == 0 && y == 0:
		return q.TopLeft
	case x == 1 && y == 0:
		return q.TopRight
	case x == 0 && y == 1:
		return q.BottomLeft
	case x == 1 && y == 1:
		return q.BottomRight
	}
	return false
}
