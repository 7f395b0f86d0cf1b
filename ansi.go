package img2cell

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	ESC = "\u001b"
)

// EncodeANSI renders the cells of area as text with SGR colour escapes,
// one line per row. Adjacent cells with the same colours share a single
// escape sequence and every line ends with a reset.
func EncodeANSI(buf *Buffer, area Rect) string {
	area = area.Intersect(buf.Bounds())
	var sb strings.Builder
	for y := area.Top(); y < area.Bottom(); y++ {
		var current Style
		started := false
		for x := area.Left(); x < area.Right(); x++ {
			cell := buf.Cell(x, y)
			if !started || cell.Style() != current {
				sb.WriteString(formatSGR(cell.Style()))
				current = cell.Style()
				started = true
			}
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			sb.WriteRune(r)
			if runewidth.RuneWidth(r) == 2 {
				x++
			}
		}
		sb.WriteString(ESC + "[0m\n")
	}
	return sb.String()
}

// formatSGR formats the escape sequence selecting both colours of style.
func formatSGR(style Style) string {
	var code strings.Builder
	code.WriteString(ESC)
	code.WriteByte('[')
	code.WriteString(colorCode(style.Fg, false))
	code.WriteByte(';')
	code.WriteString(colorCode(style.Bg, true))
	code.WriteByte('m')
	return code.String()
}

// colorCode returns the SGR parameters for c as a foreground or
// background colour.
func colorCode(c Color, background bool) string {
	base := 30
	if background {
		base = 40
	}
	switch {
	case !c.Set:
		return strconv.Itoa(base + 9)
	case c.Named && c.R < 8:
		return strconv.Itoa(base + int(c.R))
	case c.Named:
		return strconv.Itoa(base + 60 + int(c.R%16-8))
	default:
		return strconv.Itoa(base+8) + ";2;" +
			strconv.Itoa(int(c.R)) + ";" +
			strconv.Itoa(int(c.G)) + ";" +
			strconv.Itoa(int(c.B))
	}
}
