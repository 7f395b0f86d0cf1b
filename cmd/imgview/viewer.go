package main

import (
	"log"
	"time"

	"github.com/wbrown/img2cell"
	"github.com/wbrown/img2cell/termbackend"
)

// viewer shows one image full screen and reacts to keys, resizes and
// reloads. All drawing happens on the goroutine running run.
type viewer struct {
	term   *termbackend.Terminal
	widget *img2cell.Image
	buf    *img2cell.Buffer
	logger *log.Logger

	// quantizer, when set, maps colours to the 16 colour palette.
	quantizer *img2cell.Quantizer
}

func newViewer(term *termbackend.Terminal, widget *img2cell.Image, logger *log.Logger) *viewer {
	w, h := term.Size()
	return &viewer{
		term:   term,
		widget: widget,
		buf:    img2cell.NewBuffer(w, h),
		logger: logger,
	}
}

// run draws the image and handles events until the user quits.
func (v *viewer) run() {
	v.redraw()
	for {
		if v.handle(v.term.PollEvent()) {
			return
		}
	}
}

// handle applies one event and reports whether the viewer should exit.
func (v *viewer) handle(ev termbackend.Event) (quit bool) {
	switch ev.Type {
	case termbackend.EventResize:
		v.buf.Resize(ev.Width, ev.Height)
		v.term.Sync()
		v.redraw()

	case termbackend.EventKey:
		switch {
		case ev.Key == termbackend.KeyEscape, ev.Key == termbackend.KeyCtrlC:
			return true
		case ev.Key == termbackend.KeyCtrlL:
			v.term.Sync()
			v.redraw()
		case ev.Key != termbackend.KeyRune:
		case ev.Rune == 'q':
			return true
		case ev.Rune == 'm':
			v.widget.ColorMode = toggleMode(v.widget.ColorMode)
			v.logger.Printf("color mode %v", v.widget.ColorMode)
			v.redraw()
		case ev.Rune == 'a':
			v.widget.Alignment = nextAlignment(v.widget.Alignment)
			v.logger.Printf("alignment %v", v.widget.Alignment)
			v.redraw()
		}

	case termbackend.EventWake:
		if r, ok := ev.Data.(reloaded); ok {
			if r.err != nil {
				v.logger.Printf("reload failed: %v", r.err)
				return false
			}
			v.logger.Printf("reloaded %dx%d image", r.img.Width(), r.img.Height())
			v.widget.Source = img2cell.FixedImage(r.img)
			v.redraw()
		}
	}
	return false
}

func (v *viewer) redraw() {
	start := time.Now()
	v.buf.Reset()
	v.widget.Render(v.buf.Bounds(), v.buf)
	if v.quantizer != nil {
		v.quantizer.Apply(v.buf)
	}
	v.term.Draw(v.buf)
	v.term.Show()
	v.logger.Printf("rendered %v in %v", v.buf.Bounds(), time.Since(start))
}
