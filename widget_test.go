package img2cell

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/wbrown/img2cell/imageutil"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func filledBuffer(w, h int, r rune) *Buffer {
	buf := NewBuffer(w, h)
	buf.Fill(buf.Bounds(), r, Style{})
	return buf
}

var (
	opaqueWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	transparent = color.NRGBA{}
)

// TestRenderRGBWhiteIntoSingleCell checks that a 2x2 white image is
// downscaled to one cell with both halves white.
func TestRenderRGBWhiteIntoSingleCell(t *testing.T) {
	buf := NewBuffer(1, 1)
	w := &Image{Source: FixedImage(solidImage(2, 2, opaqueWhite)), ColorMode: ColorModeRGB}
	w.Render(Rect{Width: 1, Height: 1}, buf)

	got := buf.Cell(0, 0)
	want := Cell{Rune: BlockUpperHalf, Fg: RGB(255, 255, 255), Bg: RGB(255, 255, 255)}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestRenderRGBOpaquePixelPair(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{R: 7, G: 8, B: 9, A: 255})

	buf := NewBuffer(1, 1)
	w := &Image{Source: FixedImage(img), ColorMode: ColorModeRGB}
	w.Render(buf.Bounds(), buf)

	got := buf.Cell(0, 0)
	if got.Rune != BlockUpperHalf {
		t.Errorf("Expected upper half block, got %q", got.Rune)
	}
	if got.Fg != RGB(200, 100, 50) {
		t.Errorf("Expected foreground #C86432, got %v", got.Fg)
	}
	if got.Bg != RGB(7, 8, 9) {
		t.Errorf("Expected background #070809, got %v", got.Bg)
	}
}

func TestRenderRGBSamePixelBothRows(t *testing.T) {
	c := color.NRGBA{R: 12, G: 34, B: 56, A: 255}
	buf := NewBuffer(1, 1)
	w := &Image{Source: FixedImage(solidImage(1, 2, c)), ColorMode: ColorModeRGB}
	w.Render(buf.Bounds(), buf)

	got := buf.Cell(0, 0)
	if got.Fg != RGB(12, 34, 56) || got.Bg != RGB(12, 34, 56) {
		t.Errorf("Expected both colours #0C2238, got fg %v bg %v", got.Fg, got.Bg)
	}
}

func TestRenderRGBTransparentUsesBackdrop(t *testing.T) {
	buf := NewBuffer(1, 1)
	w := &Image{
		Source:    FixedImage(solidImage(1, 2, transparent)),
		ColorMode: ColorModeRGB,
		Style:     Style{Bg: RGB(10, 20, 30)},
	}
	w.Render(buf.Bounds(), buf)

	got := buf.Cell(0, 0)
	if got.Fg != RGB(10, 20, 30) || got.Bg != RGB(10, 20, 30) {
		t.Errorf("Expected backdrop colour on both halves, got fg %v bg %v", got.Fg, got.Bg)
	}
}

// TestRenderLumaTransparentIsNoOp verifies that fully transparent pixels
// over a backdrop that resolves to black leave existing glyphs alone.
func TestRenderLumaTransparentIsNoOp(t *testing.T) {
	buf := filledBuffer(3, 2, 'x')
	w := &Image{
		Source: FixedImage(solidImage(3, 4, transparent)),
		Style:  Style{Bg: ColorRed},
	}
	w.Render(buf.Bounds(), buf)

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			c := buf.Cell(x, y)
			if c.Rune != 'x' {
				t.Errorf("Cell (%d,%d): expected glyph unchanged, got %q", x, y, c.Rune)
			}
			if c.Bg != ColorRed {
				t.Errorf("Cell (%d,%d): expected style background red, got %v", x, y, c.Bg)
			}
		}
	}
}

func TestRenderLumaRamp(t *testing.T) {
	tests := []struct {
		gray uint8
		want rune
	}{
		{0, 'x'},
		{60, BlockLight},
		{110, BlockMedium},
		{165, BlockDark},
		{220, BlockFull},
		{255, BlockFull},
	}
	for _, tt := range tests {
		buf := filledBuffer(1, 1, 'x')
		c := color.NRGBA{R: tt.gray, G: tt.gray, B: tt.gray, A: 255}
		w := &Image{Source: FixedImage(solidImage(1, 1, c))}
		w.Render(buf.Bounds(), buf)
		if got := buf.Cell(0, 0).Rune; got != tt.want {
			t.Errorf("Gray %d: expected %q, got %q", tt.gray, tt.want, got)
		}
	}
}

func TestRenderLumaSetsNoColours(t *testing.T) {
	buf := NewBuffer(2, 1)
	w := &Image{Source: FixedImage(solidImage(2, 2, opaqueWhite))}
	w.Render(buf.Bounds(), buf)

	for x := 0; x < 2; x++ {
		c := buf.Cell(x, 0)
		if c.Rune != BlockFull {
			t.Errorf("Cell %d: expected full block, got %q", x, c.Rune)
		}
		if c.Fg.Set || c.Bg.Set {
			t.Errorf("Cell %d: expected default colours, got fg %v bg %v", x, c.Fg, c.Bg)
		}
	}
}

func TestRenderLumaWhiteBackdrop(t *testing.T) {
	for _, bg := range []Color{ColorWhite, NamedColor(IndexBrightWhite)} {
		buf := NewBuffer(1, 1)
		w := &Image{
			Source: FixedImage(solidImage(1, 1, transparent)),
			Style:  Style{Bg: bg},
		}
		w.Render(buf.Bounds(), buf)
		if got := buf.Cell(0, 0).Rune; got != BlockFull {
			t.Errorf("Expected full block over %v backdrop, got %q", bg, got)
		}
	}
}

func TestRenderZeroArea(t *testing.T) {
	for _, area := range []Rect{
		{X: 1, Y: 1, Width: 0, Height: 2},
		{X: 1, Y: 1, Width: 2, Height: 0},
	} {
		buf := filledBuffer(4, 4, 'x')
		before := buf.Clone()
		called := false
		w := &Image{
			Source: Generator(func(int, int) (image.Image, error) {
				called = true
				return solidImage(1, 1, opaqueWhite), nil
			}),
			Style: Style{Bg: ColorBlue},
		}
		w.Render(area, buf)
		if !buf.Equal(before) {
			t.Errorf("Area %v: expected no cell changes", area)
		}
		if called {
			t.Errorf("Area %v: generator should not be called", area)
		}
	}
}

func TestRenderOnlyTouchesArea(t *testing.T) {
	buf := filledBuffer(6, 4, 'x')
	area := Rect{X: 2, Y: 1, Width: 2, Height: 2}
	w := &Image{
		Source:    FixedImage(solidImage(50, 50, opaqueWhite)),
		ColorMode: ColorModeRGB,
		Style:     Style{Fg: ColorGreen, Bg: ColorBlue},
	}
	w.Render(area, buf)

	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			c := buf.Cell(x, y)
			if area.Contains(x, y) {
				if c.Rune != BlockUpperHalf {
					t.Errorf("Cell (%d,%d): expected half block, got %q", x, y, c.Rune)
				}
				continue
			}
			if c != (Cell{Rune: 'x'}) {
				t.Errorf("Cell (%d,%d) outside area changed: %+v", x, y, c)
			}
		}
	}
}

// TestRenderIdempotent renders the same widget repeatedly and expects
// identical buffers.
func TestRenderIdempotent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 7, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 50), B: 90, A: uint8(40 * x)})
		}
	}
	for _, mode := range []ColorMode{ColorModeLuma, ColorModeRGB} {
		w := &Image{
			Source:    FixedImage(img),
			ColorMode: mode,
			Alignment: AlignRight,
			Style:     Style{Bg: RGB(40, 40, 40)},
		}
		first := NewBuffer(5, 4)
		second := NewBuffer(5, 4)
		w.Render(first.Bounds(), first)
		w.Render(second.Bounds(), second)
		if !first.Equal(second) {
			t.Errorf("Mode %v: renders differ", mode)
		}

		again := first.Clone()
		w.Render(again.Bounds(), again)
		if !again.Equal(first) {
			t.Errorf("Mode %v: rendering twice into one buffer changed it", mode)
		}
	}
}

func TestRenderAlignment(t *testing.T) {
	tests := []struct {
		align Alignment
		col   int
	}{
		{AlignLeft, 0},
		{AlignCenter, 2},
		{AlignRight, 4},
	}
	for _, tt := range tests {
		buf := NewBuffer(5, 1)
		w := &Image{Source: FixedImage(solidImage(1, 2, opaqueWhite)), Alignment: tt.align}
		w.Render(buf.Bounds(), buf)
		for x := 0; x < 5; x++ {
			got := buf.Cell(x, 0).Rune
			if x == tt.col && got != BlockFull {
				t.Errorf("%v: expected image at column %d, got %q", tt.align, x, got)
			}
			if x != tt.col && got != ' ' {
				t.Errorf("%v: expected blank column %d, got %q", tt.align, x, got)
			}
		}
	}
}

func TestRenderVerticalCentering(t *testing.T) {
	// A 1x2 image in a canvas of 1x6 starts at canvas row 2, cell row 1.
	buf := NewBuffer(1, 3)
	w := &Image{Source: FixedImage(solidImage(1, 2, opaqueWhite)), ColorMode: ColorModeRGB}
	w.Render(buf.Bounds(), buf)

	want := []rune{' ', BlockUpperHalf, ' '}
	for y, r := range want {
		if got := buf.Cell(0, y).Rune; got != r {
			t.Errorf("Row %d: expected %q, got %q", y, r, got)
		}
	}
}

func TestRenderOddOffsetStartsOnBackground(t *testing.T) {
	// A 1x1 image in a 1x4 canvas is centred at canvas row 1, an odd
	// row, so only the cell background is written.
	buf := NewBuffer(1, 2)
	c := color.NRGBA{R: 1, G: 2, B: 3, A: 255}
	w := &Image{Source: FixedImage(solidImage(1, 1, c)), ColorMode: ColorModeRGB}
	w.Render(buf.Bounds(), buf)

	got := buf.Cell(0, 0)
	if got.Rune != ' ' || got.Fg.Set {
		t.Errorf("Expected glyph and foreground untouched, got %+v", got)
	}
	if got.Bg != RGB(1, 2, 3) {
		t.Errorf("Expected background #010203, got %v", got.Bg)
	}
}

func TestRenderGeneratorReceivesCanvasSize(t *testing.T) {
	var gotW, gotH int
	w := NewImageFunc(func(width, height int) (image.Image, error) {
		gotW, gotH = width, height
		return solidImage(width, height, opaqueWhite), nil
	})
	w.ColorMode = ColorModeRGB
	buf := NewBuffer(10, 10)
	w.Render(Rect{X: 1, Y: 1, Width: 6, Height: 3}, buf)

	if gotW != 6 || gotH != 6 {
		t.Errorf("Expected generator called with 6x6, got %dx%d", gotW, gotH)
	}
	if buf.Cell(6, 3).Rune != BlockUpperHalf {
		t.Error("Expected bottom-right cell of area drawn")
	}
}

// TestRenderGeneratorFailureIsSwallowed verifies a failing generator
// leaves the surface untouched, frame included.
func TestRenderGeneratorFailureIsSwallowed(t *testing.T) {
	boom := errors.New("boom")
	var reported error
	buf := filledBuffer(4, 4, 'x')
	before := buf.Clone()
	w := &Image{
		Source:  Generator(func(int, int) (image.Image, error) { return nil, boom }),
		Frame:   NewBorder("title"),
		Style:   Style{Bg: ColorRed},
		OnError: func(err error) { reported = err },
	}
	w.Render(buf.Bounds(), buf)

	if !buf.Equal(before) {
		t.Error("Expected no cell changes after generator failure")
	}
	if !errors.Is(reported, boom) {
		t.Errorf("Expected OnError to see %v, got %v", boom, reported)
	}
}

func TestRenderGeneratorNilImage(t *testing.T) {
	var reported error
	w := &Image{
		Source:  Generator(func(int, int) (image.Image, error) { return nil, nil }),
		OnError: func(err error) { reported = err },
	}
	w.Render(Rect{Width: 2, Height: 2}, NewBuffer(2, 2))
	if !errors.Is(reported, ErrNilImage) {
		t.Errorf("Expected ErrNilImage, got %v", reported)
	}
}

// TestRenderNilPointerImages covers nil pointers held in a non-nil
// image.Image and empty wrappers. Each is reported, never drawn.
func TestRenderNilPointerImages(t *testing.T) {
	var nilNRGBA *image.NRGBA
	var nilWrapper *imageutil.NRGBAImage
	sources := map[string]Source{
		"generator nil *image.NRGBA": Generator(func(int, int) (image.Image, error) { return nilNRGBA, nil }),
		"generator empty image":      Generator(func(int, int) (image.Image, error) { return image.NewNRGBA(image.Rect(0, 0, 0, 0)), nil }),
		"fixed empty wrapper":        FixedImage(&imageutil.NRGBAImage{}),
		"fixed nil wrapper":          FixedImage(nilWrapper),
		"fixed nil *image.NRGBA":     FixedImage(nilNRGBA),
		"fixed zero sized image":     FixedImage(image.NewNRGBA(image.Rect(0, 0, 0, 3))),
		"generator nil *image.RGBA": Generator(func(int, int) (image.Image, error) {
			var img *image.RGBA
			return img, nil
		}),
	}
	for name, src := range sources {
		var reported error
		buf := filledBuffer(2, 2, 'x')
		before := buf.Clone()
		w := &Image{
			Source:  src,
			Frame:   NewBorder(""),
			OnError: func(err error) { reported = err },
		}
		w.Render(buf.Bounds(), buf)
		if !errors.Is(reported, ErrNilImage) {
			t.Errorf("%s: expected ErrNilImage, got %v", name, reported)
		}
		if !buf.Equal(before) {
			t.Errorf("%s: expected no cell changes", name)
		}
	}
}

// TestRenderInterpolation checks a smoothing filter blends stripes that
// nearest-neighbour would pick one of.
func TestRenderInterpolation(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if x%2 == 0 {
				img.SetNRGBA(x, y, opaqueWhite)
			} else {
				img.SetNRGBA(x, y, color.NRGBA{A: 255})
			}
		}
	}
	white, black := RGB(255, 255, 255), RGB(0, 0, 0)

	buf := NewBuffer(1, 1)
	w := &Image{Source: FixedImage(img), ColorMode: ColorModeRGB}
	w.Render(buf.Bounds(), buf)
	if fg := buf.Cell(0, 0).Fg; fg != white && fg != black {
		t.Errorf("Expected nearest to pick a stripe, got %v", fg)
	}

	w.Interpolation = imageutil.InterpolationLinear
	w.Render(buf.Bounds(), buf)
	if fg := buf.Cell(0, 0).Fg; fg == white || fg == black {
		t.Errorf("Expected a blended grey with linear filtering, got %v", fg)
	}
}

func TestRenderNoSource(t *testing.T) {
	var reported error
	buf := NewBuffer(2, 2)
	before := buf.Clone()
	w := &Image{OnError: func(err error) { reported = err }}
	w.Render(buf.Bounds(), buf)
	if !errors.Is(reported, ErrNoSource) {
		t.Errorf("Expected ErrNoSource, got %v", reported)
	}
	if !buf.Equal(before) {
		t.Error("Expected no cell changes without a source")
	}
}

func TestRenderWithFrame(t *testing.T) {
	buf := NewBuffer(4, 3)
	w := &Image{
		Source:    FixedImage(solidImage(2, 2, opaqueWhite)),
		ColorMode: ColorModeRGB,
		Frame:     &Border{Lines: LinesSingle},
	}
	w.Render(buf.Bounds(), buf)

	want := []string{
		"┌──┐",
		"│▀▀│",
		"└──┘",
	}
	for y, line := range buf.Lines() {
		if line != want[y] {
			t.Errorf("Row %d: expected %q, got %q", y, want[y], line)
		}
	}
}

func TestRenderClipsToSurface(t *testing.T) {
	buf := NewBuffer(2, 2)
	w := &Image{Source: FixedImage(solidImage(4, 8, opaqueWhite)), ColorMode: ColorModeRGB}
	w.Render(Rect{X: 0, Y: 0, Width: 4, Height: 4}, buf)

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if buf.Cell(x, y).Rune != BlockUpperHalf {
				t.Errorf("Cell (%d,%d): expected half block", x, y)
			}
		}
	}
}

func TestRenderNilWidget(t *testing.T) {
	var w *Image
	w.Render(Rect{Width: 1, Height: 1}, NewBuffer(1, 1))
}

func TestFixedImageNil(t *testing.T) {
	if !FixedImage(nil).IsZero() {
		t.Error("Expected zero source for nil image")
	}
	if !Generator(nil).IsZero() {
		t.Error("Expected zero source for nil generator")
	}
}
