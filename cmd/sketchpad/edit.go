package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/export"
	"github.com/example/sketchpad/internal/surface"
)

// runWindow blocks until the window closes.
var runWindow = func(a *appstate.AppState) { a.Run() }

var now = time.Now

// editCmd opens the drawing window.
type editCmd struct {
	*root
	fs     *flag.FlagSet
	file   string
	output string
	tool   string
	width  int
	height int
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.file, "file", "", "image file to load onto the canvas")
	fs.StringVar(&e.output, "output", "", "file written by save (defaults to the loaded file)")
	fs.StringVar(&e.tool, "tool", "", "tool selected when the window opens")
	fs.IntVar(&e.width, "width", 0, "canvas width in pixels (defaults to the config)")
	fs.IntVar(&e.height, "height", 0, "canvas height in pixels (defaults to the config)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		if e.file != "" {
			return nil, fmt.Errorf("file given twice: %q and %q", e.file, fs.Arg(0))
		}
		e.file = fs.Arg(0)
	default:
		return nil, &UsageError{of: e}
	}
	if (e.width == 0) != (e.height == 0) || e.width < 0 || e.height < 0 {
		return nil, fmt.Errorf("-width and -height must be given together and be positive")
	}
	return e, nil
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func (e *editCmd) Program() string {
	return e.root.subcommand("edit")
}

// outputPath is where save writes: -output, then the loaded file, then a
// timestamped file in the configured save directory.
func (e *editCmd) outputPath() string {
	if e.output != "" {
		return e.output
	}
	if e.file != "" {
		return e.file
	}
	dir := ""
	if e.root != nil && e.root.config != nil {
		dir = e.root.config.SaveDir
	}
	return filepath.Join(dir, fmt.Sprintf("sketch-%s.png", now().Format("20060102-150405")))
}

func (e *editCmd) loadSurface() (*surface.Surface, error) {
	var opts []surface.Option
	if e.width > 0 {
		opts = append(opts, surface.WithSize(e.width, e.height))
	}
	s := e.root.newSurface(opts...)
	if e.file == "" {
		return s, nil
	}
	img, err := export.Load(e.file)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", e.file, err)
	}
	if err := s.LoadImage(img); err != nil {
		return nil, err
	}
	s.MarkSaved()
	return s, nil
}

func (e *editCmd) Run() error {
	s, err := e.loadSurface()
	if err != nil {
		return err
	}
	out := e.outputPath()
	title := "Sketchpad"
	if e.file != "" {
		title = fmt.Sprintf("Sketchpad - %s", filepath.Base(e.file))
	}
	opts := []appstate.Option{
		appstate.WithSurface(s),
		appstate.WithOutput(out),
		appstate.WithTitle(title),
		appstate.WithExport(e.root.settingsFor(out)),
		appstate.WithTool(e.tool),
		appstate.WithOnClose(func() {
			if _, err := os.Stat(out); err == nil {
				fmt.Fprintln(os.Stdout, out)
			}
		}),
	}
	if e.root != nil {
		opts = append(opts, appstate.WithTheme(e.root.activeTheme), appstate.WithNotifier(e.root.notifier))
	}
	runWindow(appstate.New(opts...))
	return nil
}
