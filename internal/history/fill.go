package history

import (
	"fmt"
	"image"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/example/sketchpad/internal/canvas"
	"github.com/example/sketchpad/internal/geom"
)

var (
	codecOnce sync.Once
	codecErr  error
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
)

func codec() error {
	codecOnce.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if codecErr != nil {
			return
		}
		decoder, codecErr = zstd.NewReader(nil)
	})
	return codecErr
}

// Pixels is a compressed RGBA snapshot.
type Pixels struct {
	Width, Height int
	data          []byte
}

// Compress packs img into a snapshot.
func Compress(img *image.RGBA) (Pixels, error) {
	if err := codec(); err != nil {
		return Pixels{}, fmt.Errorf("pixel codec: %w", err)
	}
	b := img.Bounds()
	pix := img.Pix
	if img.Stride != 4*b.Dx() || b.Min != (image.Point{}) {
		packed := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		for y := 0; y < b.Dy(); y++ {
			copy(packed.Pix[y*packed.Stride:(y+1)*packed.Stride], img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		pix = packed.Pix
	}
	return Pixels{Width: b.Dx(), Height: b.Dy(), data: encoder.EncodeAll(pix, nil)}, nil
}

// Size returns the compressed size in bytes.
func (p Pixels) Size() int { return len(p.data) }

// Image expands the snapshot.
func (p Pixels) Image() (*image.RGBA, error) {
	if err := codec(); err != nil {
		return nil, fmt.Errorf("pixel codec: %w", err)
	}
	pix, err := decoder.DecodeAll(p.data, make([]byte, 0, 4*p.Width*p.Height))
	if err != nil {
		return nil, fmt.Errorf("decode pixels: %w", err)
	}
	if len(pix) != 4*p.Width*p.Height {
		return nil, fmt.Errorf("decode pixels: got %d bytes for %dx%d", len(pix), p.Width, p.Height)
	}
	return &image.RGBA{Pix: pix, Stride: 4 * p.Width, Rect: image.Rect(0, 0, p.Width, p.Height)}, nil
}

// FillCommand reverses a flood fill. The fill replaces the render list with
// one rectangle textured with the filled pixels.
type FillCommand struct {
	before, after Pixels
	texture       canvas.TextureID
	width, height int
	position      geom.Point
	listBefore    canvas.List
	listAfter     canvas.List
}

// ApplyFill installs after as the canvas content and returns the command
// that restores before.
func ApplyFill(c *canvas.Canvas, before, after *image.RGBA) (*FillCommand, error) {
	bp, err := Compress(before)
	if err != nil {
		return nil, err
	}
	ap, err := Compress(after)
	if err != nil {
		return nil, err
	}
	w, h := c.Size()
	cmd := &FillCommand{
		before:     bp,
		after:      ap,
		width:      w,
		height:     h,
		position:   c.Position(),
		listBefore: c.Snapshot(),
	}
	cmd.texture = c.NewTexture(after)
	c.Clear()
	c.Add(canvas.Textured(cmd.texture, c.Bounds()))
	cmd.listAfter = c.Snapshot()
	c.SetCapture(after)
	return cmd, nil
}

// Texture returns the texture holding the filled pixels.
func (f *FillCommand) Texture() canvas.TextureID { return f.texture }

// Textures names the fill texture and the textures of the list it replaced.
func (f *FillCommand) Textures(ids map[canvas.TextureID]bool) {
	ids[f.texture] = true
	f.listBefore.Textures(ids)
}

// Undo restores the render list and pixels from before the fill.
func (f *FillCommand) Undo(c *canvas.Canvas) error {
	var failures []error
	c.Resize(f.width, f.height)
	c.SetPosition(f.position)
	c.Replace(f.listBefore)
	img, err := f.before.Image()
	if err != nil {
		failures = append(failures, err)
	} else {
		c.SetCapture(img)
	}
	return replayErr("undo fill", failures)
}

// Redo writes the filled pixels back into the texture and reinstates the
// textured rectangle.
func (f *FillCommand) Redo(c *canvas.Canvas) error {
	var failures []error
	c.Resize(f.width, f.height)
	c.SetPosition(f.position)
	img, err := f.after.Image()
	if err != nil {
		failures = append(failures, err)
	} else if err := c.SetTexturePixels(f.texture, img); err != nil {
		failures = append(failures, err)
	}
	c.Replace(f.listAfter)
	if img != nil {
		c.SetCapture(img)
	}
	return replayErr("redo fill", failures)
}
