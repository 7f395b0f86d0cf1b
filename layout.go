package img2cell

import (
	"fmt"
	"strings"

	"github.com/wbrown/img2cell/imageutil"
)

// Alignment controls horizontal placement of an image narrower than its
// area. Vertical placement is always centred.
type Alignment int

const (
	// AlignCenter centres the image. It is the default.
	AlignCenter Alignment = iota
	// AlignLeft places the image against the left edge.
	AlignLeft
	// AlignRight places the image against the right edge.
	AlignRight
)

// String returns the alignment name.
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
}

// ParseAlignment parses "left", "center"/"centre" or "right".
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "center", "centre":
		return AlignCenter, nil
	case "left":
		return AlignLeft, nil
	case "right":
		return AlignRight, nil
	default:
		return AlignCenter, fmt.Errorf("unknown alignment %q", s)
	}
}

// NeedsScale reports whether an image of width x height pixels is larger
// than the canvas of area in either dimension.
func NeedsScale(width, height int, area Rect) bool {
	cw, ch := area.Canvas()
	return width > cw || height > ch
}

// Fit returns img unchanged when it fits the canvas of area. Otherwise it
// returns a nearest-neighbour resample of exactly the canvas size. Images
// are never enlarged.
func Fit(img *imageutil.NRGBAImage, area Rect) *imageutil.NRGBAImage {
	return FitWith(img, area, imageutil.InterpolationNearest)
}

// FitWith is Fit with a choice of resampling filter.
func FitWith(img *imageutil.NRGBAImage, area Rect, interp imageutil.Interpolation) *imageutil.NRGBAImage {
	if !NeedsScale(img.Width(), img.Height(), area) {
		return img
	}
	cw, ch := area.Canvas()
	return imageutil.Resize(img, cw, ch, interp)
}

// Offsets returns the canvas position of the image's top-left pixel.
// ox follows the alignment and oy centres the image vertically; both are
// clamped into the canvas, so they are never negative.
func Offsets(width, height int, area Rect, align Alignment) (ox, oy int) {
	cw, ch := area.Canvas()
	switch align {
	case AlignLeft:
		ox = 0
	case AlignRight:
		ox = cw - width
	default:
		ox = (cw - width) / 2
	}
	oy = (ch - height) / 2
	return clamp(ox, 0, cw-1), clamp(oy, 0, ch-1)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
