// Package clipboard copies surface images to and from the system clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/example/sketchpad/internal/export"
)

var (
	// ErrNoDisplay is returned when no X11 or Wayland display is available.
	ErrNoDisplay = errors.New("clipboard requires DISPLAY or WAYLAND_DISPLAY")
	// ErrNoImage is returned when the clipboard holds no PNG data.
	ErrNoImage = errors.New("clipboard does not contain image data")
)

// backend moves PNG bytes to and from the clipboard.
type backend interface {
	write(png []byte) error
	read() ([]byte, error)
}

var (
	initOnce sync.Once
	initErr  error
	active   backend

	// newBackend is swapped out by tests.
	newBackend = platformBackend
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = ErrNoDisplay
			return
		}
		active, initErr = newBackend()
	})
	return initErr
}

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// WriteImage publishes img to the clipboard as PNG, keeping transparency.
func WriteImage(img *image.RGBA) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.Encode(&buf, img, export.Settings{Format: export.PNG, Transparency: true}); err != nil {
		return fmt.Errorf("encode clipboard image: %w", err)
	}
	return active.write(buf.Bytes())
}

// ReadImage decodes the PNG image held by the clipboard.
func ReadImage() (*image.RGBA, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := active.read()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	return export.Decode(bytes.NewReader(data))
}
