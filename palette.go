package img2cell

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DistanceMethod selects how colours are compared when mapping them onto
// the named palette.
type DistanceMethod int

const (
	// DistanceRedmean weights channel differences by the mean red level.
	// It is the default.
	DistanceRedmean DistanceMethod = iota
	// DistanceRGB is plain Euclidean distance in sRGB.
	DistanceRGB
	// DistanceLab is Euclidean distance in CIE L*a*b*.
	DistanceLab
)

func (m DistanceMethod) String() string {
	switch m {
	case DistanceRedmean:
		return "redmean"
	case DistanceRGB:
		return "rgb"
	case DistanceLab:
		return "lab"
	default:
		return fmt.Sprintf("DistanceMethod(%d)", int(m))
	}
}

// ParseDistanceMethod parses "redmean", "rgb" or "lab".
func ParseDistanceMethod(s string) (DistanceMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "redmean":
		return DistanceRedmean, nil
	case "rgb":
		return DistanceRGB, nil
	case "lab":
		return DistanceLab, nil
	default:
		return DistanceRedmean, fmt.Errorf("unknown distance method %q", s)
	}
}

func (m DistanceMethod) distance(a, b colorful.Color) float64 {
	switch m {
	case DistanceRGB:
		return a.DistanceRgb(b)
	case DistanceLab:
		return a.DistanceLab(b)
	default:
		return a.DistanceRiemersma(b)
	}
}

// Quantizer maps 24-bit colours to the closest of the sixteen named
// colours, for terminals without true colour. Lookups are cached, so a
// Quantizer is not safe for concurrent use.
type Quantizer struct {
	palette [16]colorful.Color
	method  DistanceMethod
	cache   map[[3]uint8]uint8
}

// NewQuantizer matches against palette, or XtermPalette when palette is
// the zero value.
func NewQuantizer(palette [16]color.RGBA, method DistanceMethod) *Quantizer {
	if palette == ([16]color.RGBA{}) {
		palette = XtermPalette
	}
	q := &Quantizer{method: method, cache: make(map[[3]uint8]uint8)}
	for i, c := range palette {
		q.palette[i], _ = colorful.MakeColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
	}
	return q
}

// Nearest returns the named colour closest to c. Default and named
// colours are returned unchanged.
func (q *Quantizer) Nearest(c Color) Color {
	if !c.Set || c.Named {
		return c
	}
	key := [3]uint8{c.R, c.G, c.B}
	if i, ok := q.cache[key]; ok {
		return NamedColor(i)
	}

	target := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	best, bestDist := 0, q.method.distance(target, q.palette[0])
	for i := 1; i < len(q.palette); i++ {
		if d := q.method.distance(target, q.palette[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	q.cache[key] = uint8(best)
	return NamedColor(uint8(best))
}

// Apply replaces every 24-bit colour in buf with its nearest named colour.
func (q *Quantizer) Apply(buf *Buffer) {
	for i := range buf.cells {
		buf.cells[i].Fg = q.Nearest(buf.cells[i].Fg)
		buf.cells[i].Bg = q.Nearest(buf.cells[i].Bg)
	}
}
