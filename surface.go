package img2cell

// Surface is a mutable grid of cells that widgets draw into.
// Writes outside Bounds are silently ignored.
type Surface interface {
	// Bounds returns the drawable area of the surface.
	Bounds() Rect

	// SetRune sets the glyph of the cell at (x, y).
	SetRune(x, y int, r rune)

	// SetFg sets the foreground colour of the cell at (x, y).
	SetFg(x, y int, c Color)

	// SetBg sets the background colour of the cell at (x, y).
	SetBg(x, y int, c Color)

	// SetStyle patches the set colours of style onto every cell in area.
	// Glyphs are left alone.
	SetStyle(area Rect, style Style)
}

// Frame is a decoration drawn around a widget, such as a border.
type Frame interface {
	// Inner returns the content area left inside the frame drawn on area.
	Inner(area Rect) Rect

	// Draw renders the frame onto s within area.
	Draw(area Rect, s Surface)
}
