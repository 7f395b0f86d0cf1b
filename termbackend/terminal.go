// Package termbackend presents img2cell buffers on a terminal through
// tcell.
package termbackend

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/wbrown/img2cell"
)

// EventType identifies the kind of an Event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventWake is delivered for every Wake call.
	EventWake
)

// Key identifies non-rune keys the viewer cares about.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyCtrlC
	KeyCtrlL
)

// Event is a terminal event reduced to what a viewer needs.
type Event struct {
	Type EventType

	// Key events.
	Key  Key
	Rune rune

	// Resize events.
	Width, Height int

	// Wake events.
	Data any
}

// Terminal draws cell buffers to a tcell screen.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a terminal on the process's controlling tty.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, such as a simulation
// screen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.HideCursor()
	return nil
}

func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// Draw copies buf onto the screen starting at the top-left corner. Cells
// beyond the screen are dropped. Call Show to make them visible.
func (t *Terminal) Draw(buf *img2cell.Buffer) {
	t.mu.Lock()
	defer t.mu.Unlock()

	bw, bh := buf.Size()
	sw, sh := t.screen.Size()
	for y := 0; y < bh && y < sh; y++ {
		for x := 0; x < bw && x < sw; x++ {
			cell := buf.Cell(x, y)
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			t.screen.SetContent(x, y, r, nil, convertStyle(cell.Style()))
			if runewidth.RuneWidth(r) == 2 {
				x++
			}
		}
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// Sync redraws the whole screen, discarding what tcell believes is
// already displayed.
func (t *Terminal) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Sync()
}

// Colors returns how many colours the terminal can show. tcell maps
// 24-bit colours down to this palette on its own.
func (t *Terminal) Colors() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Colors()
}

// PollEvent blocks until the next event. It returns EventNone for events
// the viewer does not handle and after Fini.
func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	return convertEvent(ev)
}

// Wake posts an EventWake carrying data. It is safe to call from any
// goroutine and is how background work hands results to the draw loop.
func (t *Terminal) Wake(data any) error {
	return t.screen.PostEvent(tcell.NewEventInterrupt(data))
}

// convertColor converts a cell colour to tcell.
func convertColor(c img2cell.Color) tcell.Color {
	if c.IsDefault() {
		return tcell.ColorDefault
	}
	if i, ok := c.Index(); ok {
		return tcell.PaletteColor(int(i))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// convertStyle converts cell colours to a tcell style.
func convertStyle(s img2cell.Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(convertColor(s.Fg)).
		Background(convertColor(s.Bg))
}

func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{Type: EventKey, Key: convertKey(e.Key()), Rune: e.Rune()}
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}
	case *tcell.EventInterrupt:
		return Event{Type: EventWake, Data: e.Data()}
	default:
		return Event{Type: EventNone}
	}
}

func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyCtrlC:
		return KeyCtrlC
	case tcell.KeyCtrlL:
		return KeyCtrlL
	default:
		return KeyNone
	}
}
