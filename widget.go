package img2cell

import (
	"errors"
	"image"

	"github.com/wbrown/img2cell/imageutil"
)

var (
	// ErrNoSource is reported when an Image has neither a fixed image nor
	// a generator.
	ErrNoSource = errors.New("img2cell: image has no source")

	// ErrNilImage is reported when the source yields a nil or empty image
	// and no error.
	ErrNilImage = errors.New("img2cell: source has no image")
)

// GeneratorFunc produces an image for a canvas of width x height pixels.
type GeneratorFunc func(width, height int) (image.Image, error)

// Source is where an Image gets its pixels: either a fixed image or a
// generator called on every render. The zero Source has neither.
type Source struct {
	fixed     *imageutil.NRGBAImage
	generator GeneratorFunc
}

// FixedImage returns a Source that always renders img.
func FixedImage(img image.Image) Source {
	if img == nil {
		return Source{}
	}
	return Source{fixed: imageutil.FromImage(img)}
}

// Generator returns a Source that asks fn for an image sized to the
// canvas of every render.
func Generator(fn GeneratorFunc) Source {
	return Source{generator: fn}
}

// IsZero reports whether the source has nothing to render.
func (s Source) IsZero() bool {
	return s.fixed == nil && s.generator == nil
}

// resolve returns the pixels for a canvas of width x height.
func (s Source) resolve(width, height int) (*imageutil.NRGBAImage, error) {
	switch {
	case s.fixed != nil:
		if s.fixed.Empty() {
			return nil, ErrNilImage
		}
		return s.fixed, nil
	case s.generator != nil:
		img, err := s.generator(width, height)
		if err != nil {
			return nil, err
		}
		out := imageutil.FromImage(img)
		if out.Empty() {
			return nil, ErrNilImage
		}
		return out, nil
	default:
		return nil, ErrNoSource
	}
}

// Image is a widget that draws a raster image into a rectangle of cells.
// The zero value renders nothing; every field combination is valid.
type Image struct {
	// Source provides the pixels.
	Source Source

	// ColorMode defaults to ColorModeLuma.
	ColorMode ColorMode

	// Alignment defaults to AlignCenter.
	Alignment Alignment

	// Interpolation is the filter used when the image is larger than the
	// canvas. The zero value is nearest-neighbour.
	Interpolation imageutil.Interpolation

	// Style is applied to the whole content area before drawing. Its
	// background is also the backdrop transparent pixels blend into.
	Style Style

	// Frame, when set, is drawn on the outer area and the image goes
	// inside it.
	Frame Frame

	// OnError observes source failures. Render never returns them; a
	// failed source only skips drawing the image for that call.
	OnError func(error)
}

// NewImage returns an Image widget showing img.
func NewImage(img image.Image) *Image {
	return &Image{Source: FixedImage(img)}
}

// NewImageFunc returns an Image widget that renders whatever fn returns
// for the current canvas size.
func NewImageFunc(fn GeneratorFunc) *Image {
	return &Image{Source: Generator(fn)}
}

// Render draws the widget into area of s. Only cells inside area are
// modified. Nothing inside the frame is modified when the content area
// is empty, and nothing at all when the source fails.
func (w *Image) Render(area Rect, s Surface) {
	if w == nil || s == nil {
		return
	}
	area = area.Intersect(s.Bounds())
	content := area
	if w.Frame != nil {
		content = w.Frame.Inner(area)
	}
	if content.Empty() {
		if w.Frame != nil {
			w.Frame.Draw(area, s)
		}
		return
	}

	cw, ch := content.Canvas()
	img, err := w.Source.resolve(cw, ch)
	if err != nil {
		if w.OnError != nil {
			w.OnError(err)
		}
		return
	}

	if w.Frame != nil {
		w.Frame.Draw(area, s)
	}
	s.SetStyle(content, w.Style)
	w.draw(content, s, FitWith(img, content, w.Interpolation))
}

// draw composites img onto the canvas of area and maps every canvas
// pixel to its cell.
func (w *Image) draw(area Rect, s Surface, img *imageutil.NRGBAImage) {
	bg := backdrop(w.Style)
	cw, ch := area.Canvas()
	ox, oy := Offsets(img.Width(), img.Height(), area, w.Alignment)
	xEnd := min(ox+img.Width(), cw)
	yEnd := min(oy+img.Height(), ch)

	for y := oy; y < yEnd; y++ {
		row := area.Top() + y/2
		for x := ox; x < xEnd; x++ {
			col := area.Left() + x
			r, g, b := composite(img.Pixel(x-ox, y-oy), bg)

			switch w.ColorMode {
			case ColorModeRGB:
				c := rgbColor(r, g, b)
				if y%2 == 0 {
					s.SetRune(col, row, BlockUpperHalf)
					s.SetFg(col, row, c)
				} else {
					s.SetBg(col, row, c)
				}
			default:
				glyph, ok := densityGlyph(lumaLevel(r, g, b))
				if !ok {
					continue
				}
				s.SetRune(col, row, glyph)
			}
		}
	}
}
