// Command imgview shows an image in the terminal using block glyphs.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/wbrown/img2cell"
	"github.com/wbrown/img2cell/imageutil"
	"github.com/wbrown/img2cell/termbackend"
)

var errUsage = errors.New("expected exactly one image path")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// batchOptions selects the outputs written instead of opening the
// terminal UI.
type batchOptions struct {
	ansi     bool
	text     bool
	snapshot string
	font     string
	width    int
	height   int
}

func (o batchOptions) enabled() bool {
	return o.ansi || o.text || o.snapshot != ""
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("imgview", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := DefaultConfig()
	mode := fs.String("mode", def.Mode, "Color mode: luma or rgb")
	align := fs.String("align", def.Align, "Horizontal alignment: left, center or right")
	background := fs.String("bg", def.Background,
		"Background colour: a palette name or #rrggbb (blended under transparent pixels)")
	foreground := fs.String("fg", def.Foreground, "Foreground colour for the image area")
	border := fs.String("border", def.Border, "Border: none, single, rounded, double or thick")
	borderStyle := fs.String("border-style", def.BorderStyle, "Border colour")
	title := fs.String("title", def.Title, "Border title")
	watch := fs.Bool("watch", def.Watch, "Reload the image when the file changes")
	colors := fs.String("colors", def.Colors,
		"Colour depth: auto, true or 16 (16 maps every colour to the named palette)")
	distance := fs.String("distance", def.Distance,
		"Colour distance for 16 colour output: redmean, rgb or lab")
	interp := fs.String("interp", def.Interp,
		"Filter for shrinking large images: nearest, linear or area")
	configPath := fs.String("config", "", "Path to a TOML or YAML config file")

	var batch batchOptions
	fs.BoolVar(&batch.ansi, "ansi", false, "Print the image as ANSI text and exit")
	fs.BoolVar(&batch.text, "text", false, "Print the glyphs without colour and exit")
	fs.StringVar(&batch.snapshot, "snapshot", "", "Save a PNG snapshot of the rendered cells and exit")
	fs.StringVar(&batch.font, "font", "", "TTF font for snapshot glyphs (default: Go Mono)")
	fs.IntVar(&batch.width, "width", 80, "Width in cells for batch output")
	fs.IntVar(&batch.height, "height", 24, "Height in cells for batch output")
	verbose := fs.Bool("v", false, "Log timings")
	logPath := fs.String("log", "", "Write log output to this file")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: imgview [flags] <image>\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}
	path := fs.Arg(0)
	interactive := !batch.enabled()

	logger, closeLog, err := newLogger(*verbose, *logPath, interactive, stderr)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closeLog()

	cfg := def
	if *configPath != "" {
		cfg, err = LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	// Flags given on the command line win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *mode
		case "align":
			cfg.Align = *align
		case "bg":
			cfg.Background = *background
		case "fg":
			cfg.Foreground = *foreground
		case "border":
			cfg.Border = *border
		case "border-style":
			cfg.BorderStyle = *borderStyle
		case "title":
			cfg.Title = *title
		case "watch":
			cfg.Watch = *watch
		case "colors":
			cfg.Colors = *colors
		case "distance":
			cfg.Distance = *distance
		case "interp":
			cfg.Interp = *interp
		}
	})

	widget, err := cfg.Widget()
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	start := time.Now()
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}
	logger.Printf("loaded %s (%dx%d) in %v", path, img.Width(), img.Height(), time.Since(start))
	widget.Source = img2cell.FixedImage(img)

	if !interactive {
		return renderBatch(stdout, widget, cfg, batch, logger)
	}
	return runInteractive(path, widget, cfg, logger)
}

// renderBatch renders widget once into a buffer of the requested size
// and writes every selected output. Batch output is true colour unless
// the config asks for 16 colours.
func renderBatch(w io.Writer, widget *img2cell.Image, cfg Config, opts batchOptions, logger *log.Logger) error {
	q, err := cfg.Quantizer(TrueColors)
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	buf := img2cell.NewBuffer(opts.width, opts.height)
	start := time.Now()
	widget.Render(buf.Bounds(), buf)
	logger.Printf("rendered %v in %v", buf.Bounds(), time.Since(start))
	if q != nil {
		q.Apply(buf)
	}

	if opts.ansi {
		if _, err := io.WriteString(w, img2cell.EncodeANSI(buf, buf.Bounds())); err != nil {
			return err
		}
	}
	if opts.text {
		if _, err := io.WriteString(w, strings.Join(buf.Lines(), "\n")+"\n"); err != nil {
			return err
		}
	}
	if opts.snapshot != "" {
		if err := saveSnapshot(buf, opts.snapshot, opts.font); err != nil {
			return fmt.Errorf("writing PNG: %w", err)
		}
		logger.Printf("snapshot written to %s", opts.snapshot)
	}
	return nil
}

func runInteractive(path string, widget *img2cell.Image, cfg Config, logger *log.Logger) error {
	term, err := termbackend.NewTerminal()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("initialising terminal: %w", err)
	}
	defer term.Fini()

	q, err := cfg.Quantizer(term.Colors())
	if err != nil {
		return err
	}
	if q != nil {
		logger.Printf("terminal has %d colours, using the 16 colour palette", term.Colors())
	}

	if cfg.Watch {
		w, err := watchImage(path, func(r reloaded) {
			if err := term.Wake(r); err != nil {
				logger.Printf("dropped reload: %v", err)
			}
		})
		if err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		defer w.Close()
	}

	v := newViewer(term, widget, logger)
	v.quantizer = q
	v.run()
	return nil
}

func saveSnapshot(buf *img2cell.Buffer, path, fontPath string) error {
	opts := img2cell.SnapshotOptions{CellWidth: 8, CellHeight: 16}
	var err error
	if fontPath != "" {
		opts.Font, err = img2cell.LoadGlyphMasks(fontPath, opts.CellWidth, opts.CellHeight)
	} else {
		opts.Font, err = img2cell.DefaultGlyphMasks(opts.CellWidth, opts.CellHeight)
	}
	if err != nil {
		return err
	}
	return img2cell.SaveSnapshot(buf, path, opts)
}

// newLogger returns the diagnostics logger. Without -v it discards
// everything. While the terminal UI is up, stderr would corrupt the
// screen, so only a -log file receives output.
func newLogger(verbose bool, path string, interactive bool, stderr io.Writer) (*log.Logger, func(), error) {
	noop := func() {}
	if !verbose {
		return log.New(io.Discard, "", 0), noop, nil
	}
	if path == "" {
		if interactive {
			return log.New(io.Discard, "", 0), noop, nil
		}
		return log.New(stderr, "imgview: ", log.Ltime|log.Lmicroseconds), noop, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, noop, err
	}
	return log.New(f, "imgview: ", log.Ltime|log.Lmicroseconds), func() { f.Close() }, nil
}
