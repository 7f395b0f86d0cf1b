// Package imageutil provides the pixel buffers fed to the cell renderer,
// along with resampling and file helpers built on golang.org/x/image.
package imageutil

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"reflect"
)

// ErrEmptyImage is returned when an image has no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// NRGBAImage wraps image.NRGBA with convenience methods for pixel access.
// Samples are stored non-premultiplied so that the alpha channel can be
// applied explicitly when compositing.
type NRGBAImage struct {
	*image.NRGBA
}

// NewNRGBAImage creates a new fully transparent NRGBAImage with the
// specified dimensions.
func NewNRGBAImage(width, height int) *NRGBAImage {
	return &NRGBAImage{
		NRGBA: image.NewNRGBA(image.Rect(0, 0, width, height)),
	}
}

// FromImage converts any image.Image to an NRGBAImage whose bounds start
// at the origin. An *NRGBAImage or origin-based *image.NRGBA is returned
// without copying. A nil image, including a nil pointer held in the
// interface, yields an empty image.
func FromImage(img image.Image) *NRGBAImage {
	if isNil(img) {
		return NewNRGBAImage(0, 0)
	}
	switch src := img.(type) {
	case *NRGBAImage:
		if src.NRGBA == nil {
			return NewNRGBAImage(0, 0)
		}
		if src.Bounds().Min == (image.Point{}) {
			return src
		}
		return FromImage(src.NRGBA)
	case *image.NRGBA:
		if src.Bounds().Min == (image.Point{}) {
			return &NRGBAImage{NRGBA: src}
		}
		return copyNRGBA(src)
	}

	bounds := img.Bounds()
	dst := NewNRGBAImage(bounds.Dx(), bounds.Dy())
	draw.Draw(dst.NRGBA, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

func isNil(img image.Image) bool {
	if img == nil {
		return true
	}
	v := reflect.ValueOf(img)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// copyNRGBA copies rows verbatim so straight alpha survives without a
// round trip through premultiplied colour.
func copyNRGBA(src *image.NRGBA) *NRGBAImage {
	b := src.Bounds()
	dst := NewNRGBAImage(b.Dx(), b.Dy())
	rowLen := 4 * b.Dx()
	for y := 0; y < b.Dy(); y++ {
		off := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+rowLen], src.Pix[off:off+rowLen])
	}
	return dst
}

// Width returns the image width.
func (img *NRGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *NRGBAImage) Height() int {
	return img.Bounds().Dy()
}

// Empty reports whether the image has no pixels.
func (img *NRGBAImage) Empty() bool {
	return img == nil || img.NRGBA == nil || img.Width() == 0 || img.Height() == 0
}

// Pixel returns the non-premultiplied sample at (x, y) relative to the
// image origin.
func (img *NRGBAImage) Pixel(x, y int) color.NRGBA {
	b := img.Bounds()
	return img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
}

// SetPixel sets the sample at (x, y) relative to the image origin.
func (img *NRGBAImage) SetPixel(x, y int, c color.NRGBA) {
	b := img.Bounds()
	img.SetNRGBA(b.Min.X+x, b.Min.Y+y, c)
}

// Fill sets every pixel to c.
func (img *NRGBAImage) Fill(c color.NRGBA) {
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			img.SetPixel(x, y, c)
		}
	}
}

// Clone creates a deep copy of the image.
func (img *NRGBAImage) Clone() *NRGBAImage {
	return copyNRGBA(img.NRGBA)
}
