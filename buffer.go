package img2cell

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell is one character position of a Buffer.
type Cell struct {
	Rune rune
	Fg   Color
	Bg   Color
}

// EmptyCell returns a blank cell with default colours.
func EmptyCell() Cell {
	return Cell{Rune: ' '}
}

// Style returns the colours of the cell.
func (c Cell) Style() Style {
	return Style{Fg: c.Fg, Bg: c.Bg}
}

// Buffer is an in-memory Surface. Cells are stored row-major.
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a buffer of blank cells with the given dimensions.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

// Bounds returns the buffer area anchored at the origin.
func (b *Buffer) Bounds() Rect {
	return Rect{Width: b.width, Height: b.height}
}

// Resize changes the buffer dimensions, preserving content where possible.
func (b *Buffer) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	if b.cells != nil && width == b.width && height == b.height {
		return
	}
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = EmptyCell()
	}
	copyW := min(width, b.width)
	copyH := min(height, b.height)
	for y := 0; y < copyH; y++ {
		copy(cells[y*width:y*width+copyW], b.cells[y*b.width:y*b.width+copyW])
	}
	b.cells = cells
	b.width = width
	b.height = height
}

// Reset blanks every cell.
func (b *Buffer) Reset() {
	for i := range b.cells {
		b.cells[i] = EmptyCell()
	}
}

func (b *Buffer) index(x, y int) (int, bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0, false
	}
	return y*b.width + x, true
}

// Cell returns the cell at (x, y), or an empty cell when out of bounds.
func (b *Buffer) Cell(x, y int) Cell {
	i, ok := b.index(x, y)
	if !ok {
		return EmptyCell()
	}
	return b.cells[i]
}

// SetCell replaces the cell at (x, y).
func (b *Buffer) SetCell(x, y int, c Cell) {
	if i, ok := b.index(x, y); ok {
		b.cells[i] = c
	}
}

// SetRune sets the glyph at (x, y).
func (b *Buffer) SetRune(x, y int, r rune) {
	if i, ok := b.index(x, y); ok {
		b.cells[i].Rune = r
	}
}

// SetFg sets the foreground colour at (x, y).
func (b *Buffer) SetFg(x, y int, c Color) {
	if i, ok := b.index(x, y); ok {
		b.cells[i].Fg = c
	}
}

// SetBg sets the background colour at (x, y).
func (b *Buffer) SetBg(x, y int, c Color) {
	if i, ok := b.index(x, y); ok {
		b.cells[i].Bg = c
	}
}

// SetStyle patches style onto every cell of area that lies inside the
// buffer.
func (b *Buffer) SetStyle(area Rect, style Style) {
	area = area.Intersect(b.Bounds())
	for y := area.Top(); y < area.Bottom(); y++ {
		row := b.cells[y*b.width : (y+1)*b.width]
		for x := area.Left(); x < area.Right(); x++ {
			if style.Fg.Set {
				row[x].Fg = style.Fg
			}
			if style.Bg.Set {
				row[x].Bg = style.Bg
			}
		}
	}
}

// Fill sets every cell of area to ch with the given style.
func (b *Buffer) Fill(area Rect, ch rune, style Style) {
	area = area.Intersect(b.Bounds())
	for y := area.Top(); y < area.Bottom(); y++ {
		for x := area.Left(); x < area.Right(); x++ {
			b.cells[y*b.width+x] = Cell{Rune: ch, Fg: style.Fg, Bg: style.Bg}
		}
	}
}

// SetString writes s starting at (x, y), patching style onto the cells it
// covers. Wide runes take two columns; the second is left blank. It
// returns the column after the last one written.
func (b *Buffer) SetString(x, y int, s string, style Style) int {
	return setString(b, x, y, s, style, b.width)
}

// setString writes s through any Surface, stopping at column limit.
func setString(s Surface, x, y int, str string, style Style, limit int) int {
	col := x
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > limit {
			break
		}
		s.SetRune(col, y, r)
		if w == 2 {
			s.SetRune(col+1, y, ' ')
		}
		s.SetStyle(Rect{X: col, Y: y, Width: w, Height: 1}, style)
		col += w
	}
	return col
}

// Equal reports whether two buffers have the same size and cells.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Buffer{cells: cells, width: b.width, height: b.height}
}

// Lines returns the glyphs of each row, ignoring colours.
func (b *Buffer) Lines() []string {
	lines := make([]string, b.height)
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		sb.Reset()
		for _, c := range b.cells[y*b.width : (y+1)*b.width] {
			sb.WriteRune(c.Rune)
		}
		lines[y] = sb.String()
	}
	return lines
}
