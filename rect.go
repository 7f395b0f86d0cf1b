package img2cell

import "fmt"

// Rect is a rectangle in cell coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect creates a rectangle, clamping negative sizes to zero.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: max(0, width), Height: max(0, height)}
}

// Left returns the first column.
func (r Rect) Left() int { return r.X }

// Top returns the first row.
func (r Rect) Top() int { return r.Y }

// Right returns the column after the last one.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the row after the last one.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersect returns the overlap of r and other, or a zero-sized rect
// anchored at r's origin when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.Right(), other.Right())
	y1 := min(r.Bottom(), other.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Inner shrinks the rectangle by margin cells on every side.
func (r Rect) Inner(margin int) Rect {
	if r.Width < 2*margin || r.Height < 2*margin {
		return Rect{X: r.X + margin, Y: r.Y + margin}
	}
	return Rect{
		X:      r.X + margin,
		Y:      r.Y + margin,
		Width:  r.Width - 2*margin,
		Height: r.Height - 2*margin,
	}
}

// Canvas returns the pixel size of the area: one pixel per column and
// two pixel rows per cell row.
func (r Rect) Canvas() (width, height int) {
	return max(0, r.Width), 2 * max(0, r.Height)
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}
