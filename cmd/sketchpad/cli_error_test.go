package main

import (
	"errors"
	"flag"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/sketchpad/internal/config"
	"github.com/example/sketchpad/internal/export"
	"github.com/example/sketchpad/internal/notify"
)

func writeImage(t *testing.T, path string, img *image.RGBA) {
	t.Helper()
	if err := export.Save(path, img, export.DefaultSettings()); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
}

// twoBands is white above row 5 and blue from row 5 down.
func twoBands() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			c := color.RGBA{255, 255, 255, 255}
			if y >= 5 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestParseFillRequiresFile(t *testing.T) {
	_, err := parseFillCmd([]string{"1", "2"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "-file is required"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseFillRejectsBadColor(t *testing.T) {
	if _, err := parseFillCmd([]string{"-file", "in.png", "-color", "nope", "1", "2"}, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestFillCommandUsesTopLeftOrigin(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writeImage(t, in, twoBands())

	cmd, err := parseFillCmd([]string{"-file", in, "-output", out, "-color", "#ff0000", "-tolerance", "0", "2", "1"}, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	img, err := export.Load(out)
	if err != nil {
		t.Fatalf("load result: %v", err)
	}
	red := color.RGBA{R: 255, A: 255}
	if got := img.RGBAAt(9, 0); got != red {
		t.Fatalf("top band not filled: %v", got)
	}
	if got := img.RGBAAt(0, 4); got != red {
		t.Fatalf("top band not filled: %v", got)
	}
	if got := img.RGBAAt(2, 5); got != (color.RGBA{B: 255, A: 255}) {
		t.Fatalf("bottom band changed: %v", got)
	}
}

func TestFillCommandRejectsOutsidePoint(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeImage(t, in, twoBands())
	cmd, err := parseFillCmd([]string{"-file", in, "10", "0"}, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else if want := "outside"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestFillCommandMissingFile(t *testing.T) {
	cmd, err := parseFillCmd([]string{"-file", filepath.Join(t.TempDir(), "missing.png"), "0", "0"}, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	err = cmd.Run()
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
	if want := "failed to open"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected message context, got %v", err)
	}
}

func TestParseEditSizeNeedsBothDimensions(t *testing.T) {
	_, err := parseEditCmd([]string{"-width", "100"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "-width and -height"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseEditFileGivenTwice(t *testing.T) {
	if _, err := parseEditCmd([]string{"-file", "a.png", "b.png"}, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRootUnknownCommandIsUsageError(t *testing.T) {
	t.Setenv("SKETCHPAD_THEME", "")
	r := &root{
		fs:       flag.NewFlagSet("sketchpad", flag.ContinueOnError),
		program:  "sketchpad",
		config:   config.New(),
		notifier: notify.New(notify.DefaultPreferences()),
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", false, "show a desktop notification after saving an image")
	err := r.Run([]string{"bogus"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	help := uerr.Error()
	for _, want := range []string{"Usage: sketchpad", "-notify-save", "replay"} {
		if !strings.Contains(help, want) {
			t.Fatalf("help missing %q:\n%s", want, help)
		}
	}
}
