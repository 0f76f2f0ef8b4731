// Package export encodes surface captures into image files and decodes
// images for loading onto a surface.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/example/sketchpad/internal/render"
)

// Format is an output file format.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	PDF  Format = "pdf"
)

// ErrUnknownFormat is returned for unsupported format names.
var ErrUnknownFormat = errors.New("unknown image format")

// Formats lists the supported output formats.
func Formats() []Format { return []Format{PNG, JPEG, BMP, TIFF, PDF} }

// ParseFormat accepts a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "pdf":
		return PDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath guesses the format from the file extension and falls back
// to def.
func FormatFromPath(path string, def Format) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return def
}

// Settings control encoding.
type Settings struct {
	Format Format
	// Quality is the JPEG quality, 1 to 100.
	Quality int
	// DPI sets the physical page size of PDF output.
	DPI float64
	// Transparency keeps the alpha channel for PNG output. Every other
	// target is flattened onto white.
	Transparency bool
}

// DefaultSettings returns PNG output without transparency.
func DefaultSettings() Settings {
	return Settings{Format: PNG, Quality: 90, DPI: 96}
}

// Flatten composites img over an opaque background.
func Flatten(img *image.RGBA, bg color.RGBA) *image.RGBA {
	bg.A = 255
	out := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	render.FillRect(out, out.Bounds(), bg)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}

// Encode writes img to w.
func Encode(w io.Writer, img *image.RGBA, s Settings) error {
	if s.Format == "" {
		s.Format = PNG
	}
	if !(s.Format == PNG && s.Transparency) {
		img = Flatten(img, color.RGBA{255, 255, 255, 255})
	}
	switch s.Format {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		q := s.Quality
		if q <= 0 || q > 100 {
			q = jpeg.DefaultQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case PDF:
		return encodePDF(w, img, s.DPI)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, s.Format)
}

// encodePDF places img on a single page sized so that one pixel is 1/dpi
// inch.
func encodePDF(w io.Writer, img *image.RGBA, dpi float64) error {
	if dpi <= 0 {
		dpi = 96
	}
	const mmPerInch = 25.4
	wd := float64(img.Bounds().Dx()) / dpi * mmPerInch
	ht := float64(img.Bounds().Dy()) / dpi * mmPerInch

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode page image: %w", err)
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("canvas", opts, &buf)
	pdf.ImageOptions("canvas", 0, 0, wd, ht, false, opts, 0, "")
	return pdf.Output(w)
}

// Save writes img to path. The format comes from s, or from the extension
// when s.Format is empty.
func Save(path string, img *image.RGBA, s Settings) (err error) {
	if s.Format == "" {
		s.Format = FormatFromPath(path, PNG)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := Encode(f, img, s); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
