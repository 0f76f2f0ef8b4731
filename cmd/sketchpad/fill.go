package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"strconv"

	"github.com/example/sketchpad/internal/export"
	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tools"
)

// fillCmd flood fills an image file without opening a window.
type fillCmd struct {
	*root
	fs        *flag.FlagSet
	file      string
	output    string
	colorSpec string
	color     color.RGBA
	tolerance int
	x, y      int
}

func parseFillCmd(args []string, r *root) (*fillCmd, error) {
	fs := flag.NewFlagSet("fill", flag.ExitOnError)
	f := &fillCmd{root: r, fs: fs}
	fs.Usage = usageFunc(f)
	tolerance := 32
	if r != nil && r.config != nil {
		tolerance = r.config.Tolerance
	}
	fs.StringVar(&f.file, "file", "", "input image file")
	fs.StringVar(&f.output, "output", "", "output file path (defaults to input file)")
	fs.StringVar(&f.colorSpec, "color", "black", "fill color name or hex value")
	fs.IntVar(&f.tolerance, "tolerance", tolerance, "per channel tolerance between 0 and 255")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 2 {
		return nil, &UsageError{of: f}
	}
	if f.file == "" {
		return nil, fmt.Errorf("-file is required")
	}
	var err error
	if f.x, err = strconv.Atoi(fs.Arg(0)); err != nil {
		return nil, fmt.Errorf("invalid x %q: %w", fs.Arg(0), err)
	}
	if f.y, err = strconv.Atoi(fs.Arg(1)); err != nil {
		return nil, fmt.Errorf("invalid y %q: %w", fs.Arg(1), err)
	}
	if f.color, err = theme.ParseColor(f.colorSpec); err != nil {
		return nil, err
	}
	if f.output == "" {
		f.output = f.file
	}
	return f, nil
}

func (f *fillCmd) FlagSet() *flag.FlagSet {
	return f.fs
}

func (f *fillCmd) Program() string {
	return f.root.subcommand("fill")
}

func (f *fillCmd) Run() error {
	img, err := export.Load(f.file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.file, err)
	}
	b := img.Bounds()
	if f.x < 0 || f.y < 0 || f.x >= b.Dx() || f.y >= b.Dy() {
		return fmt.Errorf("point %d,%d is outside the %dx%d image", f.x, f.y, b.Dx(), b.Dy())
	}

	s := f.root.newSurface()
	if err := s.LoadImage(img); err != nil {
		return err
	}
	if err := s.SelectToolID(tools.Fill); err != nil {
		return err
	}
	s.SetColorRGBA(f.color)
	s.SetTolerance(f.tolerance)

	// Pixel rows count down from the top; the surface measures y upwards.
	sx := float64(f.x) + 0.5
	sy := float64(b.Dy()-f.y) - 0.5
	s.PointerDown(sx, sy)
	s.PointerUp(sx, sy)

	if err := export.Save(f.output, s.Export(), f.root.settingsFor(f.output)); err != nil {
		return err
	}
	f.root.notifySave(f.output)
	fmt.Fprintln(os.Stdout, f.output)
	return nil
}
