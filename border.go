package img2cell

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// LineSet is the set of glyphs used to draw a border.
type LineSet struct {
	Horizontal, Vertical rune

	TopLeft, TopRight, BottomLeft, BottomRight rune
}

// Border line sets.
var (
	LinesSingle  = LineSet{'─', '│', '┌', '┐', '└', '┘'}
	LinesRounded = LineSet{'─', '│', '╭', '╮', '╰', '╯'}
	LinesDouble  = LineSet{'═', '║', '╔', '╗', '╚', '╝'}
	LinesThick   = LineSet{'━', '┃', '┏', '┓', '┗', '┛'}
)

// ParseLineSet maps a border name to its line set. "none" and "" return
// false.
func ParseLineSet(name string) (LineSet, bool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return LineSet{}, false, nil
	case "single", "plain":
		return LinesSingle, true, nil
	case "rounded":
		return LinesRounded, true, nil
	case "double":
		return LinesDouble, true, nil
	case "thick":
		return LinesThick, true, nil
	default:
		return LineSet{}, false, fmt.Errorf("unknown border %q", name)
	}
}

// Border is a Frame drawing a one-cell line around its area with an
// optional title on the top edge.
type Border struct {
	Lines LineSet
	Style Style
	Title string
	// TitleStyle is patched over Style for the title text.
	TitleStyle Style
}

// NewBorder returns a single-line border.
func NewBorder(title string) *Border {
	return &Border{Lines: LinesSingle, Title: title}
}

// Inner returns area shrunk by one cell on every side.
func (b *Border) Inner(area Rect) Rect {
	return area.Inner(1)
}

// Draw renders the border lines and title onto s. Areas smaller than
// 2x2 cells are left untouched.
func (b *Border) Draw(area Rect, s Surface) {
	if area.Width < 2 || area.Height < 2 {
		return
	}
	lines := b.Lines
	if lines == (LineSet{}) {
		lines = LinesSingle
	}
	left, top := area.Left(), area.Top()
	right, bottom := area.Right()-1, area.Bottom()-1

	for x := left + 1; x < right; x++ {
		s.SetRune(x, top, lines.Horizontal)
		s.SetRune(x, bottom, lines.Horizontal)
	}
	for y := top + 1; y < bottom; y++ {
		s.SetRune(left, y, lines.Vertical)
		s.SetRune(right, y, lines.Vertical)
	}
	s.SetRune(left, top, lines.TopLeft)
	s.SetRune(right, top, lines.TopRight)
	s.SetRune(left, bottom, lines.BottomLeft)
	s.SetRune(right, bottom, lines.BottomRight)

	s.SetStyle(Rect{X: left, Y: top, Width: area.Width, Height: 1}, b.Style)
	s.SetStyle(Rect{X: left, Y: bottom, Width: area.Width, Height: 1}, b.Style)
	s.SetStyle(Rect{X: left, Y: top + 1, Width: 1, Height: area.Height - 2}, b.Style)
	s.SetStyle(Rect{X: right, Y: top + 1, Width: 1, Height: area.Height - 2}, b.Style)

	if b.Title != "" && area.Width > 2 {
		title := truncateString(b.Title, area.Width-2)
		setString(s, left+1, top, title, b.Style.Patch(b.TitleStyle), right)
	}
}

// truncateString truncates s to fit within maxWidth columns, marking the
// cut with an ellipsis.
func truncateString(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}
