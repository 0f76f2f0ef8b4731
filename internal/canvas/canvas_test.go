package canvas

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/shape"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{R: 255, A: 255}
)

func TestRemoveAndRestoreKeepHandle(t *testing.T) {
	c := New(10, 10, white)
	a := c.Add(SetColor(red))
	b := c.Add(Polyline([]geom.Point{{X: 1, Y: 1}}, 1))

	rec, err := c.Remove(b)
	require.NoError(t, err)
	assert.Equal(t, []Handle{a}, c.Handles())

	require.NoError(t, c.Restore(b, rec))
	assert.Equal(t, []Handle{a, b}, c.Handles())

	err = c.Restore(b, rec)
	assert.True(t, errors.Is(err, ErrDuplicateHandle))
}

func TestRemoveUnknownHandle(t *testing.T) {
	c := New(10, 10, white)
	_, err := c.Remove(Handle{})
	assert.True(t, errors.Is(err, ErrUnknownHandle))
}

func TestCaptureFlipsYAxis(t *testing.T) {
	c := New(10, 10, white)
	c.Add(SetColor(red))
	// (2,0) is the bottom row of the surface.
	c.Add(Polyline([]geom.Point{{X: 2, Y: 0}}, 1))

	img := c.Capture()
	assert.Equal(t, red, img.RGBAAt(2, 9))
	assert.Equal(t, white, img.RGBAAt(2, 0))
}

func TestCaptureIsCachedUntilMutation(t *testing.T) {
	c := New(4, 4, white)
	first := c.Capture()
	first.Set(0, 0, red)
	assert.Equal(t, white, c.Capture().RGBAAt(0, 0), "capture must hand out copies")

	h := c.Add(SetColor(red))
	c.Add(FillRect(geom.Rect{W: 4, H: 4}))
	assert.Equal(t, red, c.Capture().RGBAAt(3, 3))

	require.NoError(t, c.Update(h, func(in *Instruction) { in.Color = white }))
	assert.Equal(t, white, c.Capture().RGBAAt(3, 3))
}

func TestReplaceAndSnapshot(t *testing.T) {
	c := New(8, 8, white)
	c.Add(SetColor(red))
	c.Add(Outline(shape.Rectangle{Min: geom.Pt(1, 1), W: 4, H: 4}, 1))
	before := c.Snapshot()
	pixels := c.Capture()

	c.Replace(nil)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, white, c.Capture().RGBAAt(1, 6))

	c.Replace(before)
	assert.Equal(t, pixels.Pix, c.Capture().Pix)
}

func TestTextureBlit(t *testing.T) {
	c := New(4, 4, white)
	tex := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range tex.Pix {
		tex.Pix[i] = 0xff
	}
	tex.Set(0, 0, red)
	id := c.NewTexture(tex)
	c.Add(Textured(id, c.Bounds()))
	assert.Equal(t, red, c.Capture().RGBAAt(0, 0))

	tex.Set(0, 0, white)
	require.NoError(t, c.SetTexturePixels(id, tex))
	assert.Equal(t, white, c.Capture().RGBAAt(0, 0))

	assert.True(t, errors.Is(c.SetTexturePixels(id+1, tex), ErrUnknownTexture))
}

func TestPruneTexturesKeepsReferenced(t *testing.T) {
	c := New(4, 4, white)
	tex := image.NewRGBA(image.Rect(0, 0, 4, 4))
	shown := c.NewTexture(tex)
	kept := c.NewTexture(tex)
	c.NewTexture(tex)
	c.Add(Textured(shown, c.Bounds()))

	assert.Equal(t, 1, c.PruneTextures(map[TextureID]bool{kept: true}))
	assert.Equal(t, 2, c.TextureCount())
	_, ok := c.Texture(kept)
	assert.True(t, ok)

	c.Clear()
	assert.Equal(t, 2, c.PruneTextures(nil))
	assert.Equal(t, 0, c.TextureCount())
}

func TestRenderOverlayDoesNotTouchCapture(t *testing.T) {
	c := New(20, 20, white)
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	overlay := []Instruction{SetColor(red), FillRect(geom.Rect{X: 0, Y: 0, W: 5, H: 5})}
	c.Render(dst, overlay)
	assert.Equal(t, red, dst.RGBAAt(0, 19))
	assert.Equal(t, white, c.Capture().RGBAAt(0, 19))
}

func TestPixelRect(t *testing.T) {
	c := New(100, 50, white)
	assert.Equal(t, image.Rect(0, 0, 100, 50), c.PixelRect(c.Bounds()))
	assert.Equal(t, image.Rect(10, 30, 20, 40), c.PixelRect(geom.Rect{X: 10, Y: 10, W: 10, H: 10}))
}

func TestDashedLineFollowsTheSegment(t *testing.T) {
	c := New(20, 20, white)
	black := color.RGBA{A: 255}
	line := shape.Line{P1: geom.Pt(2.5, 2.5), P2: geom.Pt(15.5, 15.5)}
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	c.Render(dst, []Instruction{SetColor(red), Dashed(line, black)})

	assert.Equal(t, red, dst.RGBAAt(2, 17))
	assert.Equal(t, black, dst.RGBAAt(6, 13))
	assert.Equal(t, white, dst.RGBAAt(2, 4), "no bounding box for a line")
	assert.Equal(t, white, dst.RGBAAt(15, 17))

	box := shape.Rectangle{Min: geom.Pt(2, 2), W: 10, H: 10}
	dst = image.NewRGBA(image.Rect(0, 0, 20, 20))
	c.Render(dst, []Instruction{SetColor(red), Dashed(box, black)})
	assert.Equal(t, red, dst.RGBAAt(2, 17))
	assert.Equal(t, white, dst.RGBAAt(6, 13))
}
