package history

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/sketchpad/internal/canvas"
	"github.com/example/sketchpad/internal/geom"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	blue  = color.RGBA{B: 255, A: 255}
)

type countingCommand struct{ undone, redone int }

func (c *countingCommand) Undo(*canvas.Canvas) error { c.undone++; return nil }
func (c *countingCommand) Redo(*canvas.Canvas) error { c.redone++; return nil }

func stroke(c *canvas.Canvas, x float64) *StrokeCommand {
	hs := []canvas.Handle{
		c.Add(canvas.SetColor(blue)),
		c.Add(canvas.Polyline([]geom.Point{{X: x, Y: 1}, {X: x, Y: 8}}, 1)),
	}
	return NewStrokeCommand(c, hs)
}

func TestPushClearsRedo(t *testing.T) {
	s := NewStack(0)
	c := canvas.New(1, 1, white)
	s.Push(&countingCommand{})
	_, err := s.Undo(c)
	require.NoError(t, err)
	assert.True(t, s.CanRedo())

	s.Push(&countingCommand{})
	assert.False(t, s.CanRedo())
}

func TestCapacityEvictsOldest(t *testing.T) {
	s := NewStack(DefaultCapacity)
	c := canvas.New(1, 1, white)
	cmds := make([]*countingCommand, DefaultCapacity+1)
	for i := range cmds {
		cmds[i] = &countingCommand{}
		s.Push(cmds[i])
	}
	undo, _ := s.Len()
	assert.Equal(t, DefaultCapacity, undo)

	for s.CanUndo() {
		_, err := s.Undo(c)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, cmds[0].undone, "the first command should have been evicted")
	assert.Equal(t, 1, cmds[1].undone)
}

func TestUndoRedoOnEmptyStacks(t *testing.T) {
	s := NewStack(3)
	c := canvas.New(1, 1, white)
	ok, err := s.Undo(c)
	assert.False(t, ok)
	assert.NoError(t, err)
	ok, err = s.Redo(c)
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestUndoAllRestoresCanvas(t *testing.T) {
	c := canvas.New(10, 10, white)
	s := NewStack(0)
	start := c.Capture()

	for x := 1.0; x < 6; x++ {
		s.Push(stroke(c, x))
	}
	drawn := c.Capture()
	handles := c.Handles()

	for s.CanUndo() {
		_, err := s.Undo(c)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, start.Pix, c.Capture().Pix)

	for s.CanRedo() {
		_, err := s.Redo(c)
		require.NoError(t, err)
	}
	assert.Equal(t, handles, c.Handles())
	assert.Equal(t, drawn.Pix, c.Capture().Pix)
}

func TestStrokeUndoToleratesMissingInstruction(t *testing.T) {
	c := canvas.New(10, 10, white)
	s := NewStack(0)
	cmd := stroke(c, 2)
	s.Push(cmd)

	_, err := c.Remove(cmd.Handles()[1])
	require.NoError(t, err)

	ok, err := s.Undo(c)
	assert.True(t, ok)
	require.Error(t, err)
	assert.True(t, IsReplayError(err))
	assert.True(t, errors.Is(err, canvas.ErrUnknownHandle))
	assert.Equal(t, 0, c.Len(), "the colour instruction is still removed")
	assert.True(t, s.CanRedo(), "the command moves to the redo stack regardless")
}

func TestImageLoadUndo(t *testing.T) {
	c := canvas.New(10, 10, white)
	s := NewStack(0)
	s.Push(stroke(c, 3))
	before := c.Capture()

	img := image.NewRGBA(image.Rect(0, 0, 4, 6))
	s.Push(ApplyImageLoad(c, canvas.Blit(img, geom.Rect{}), 4, 6))
	w, h := c.Size()
	assert.Equal(t, []int{4, 6}, []int{w, h})
	assert.Equal(t, 3, c.Len())

	_, err := s.Undo(c)
	require.NoError(t, err)
	w, h = c.Size()
	assert.Equal(t, []int{10, 10}, []int{w, h})
	assert.Equal(t, before.Pix, c.Capture().Pix)

	_, err = s.Redo(c)
	require.NoError(t, err)
	w, _ = c.Size()
	assert.Equal(t, 4, w)
}

func TestFillCommandRoundTrip(t *testing.T) {
	c := canvas.New(6, 6, white)
	s := NewStack(0)
	s.Push(stroke(c, 2))
	before := c.Capture()
	list := c.Handles()

	after := c.Capture()
	after.Set(5, 5, blue)
	cmd, err := ApplyFill(c, before, after)
	require.NoError(t, err)
	s.Push(cmd)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, blue, c.Capture().RGBAAt(5, 5))

	_, err = s.Undo(c)
	require.NoError(t, err)
	assert.Equal(t, list, c.Handles())
	assert.Equal(t, before.Pix, c.Capture().Pix)

	_, err = s.Redo(c)
	require.NoError(t, err)
	assert.Equal(t, after.Pix, c.Capture().Pix)
	tex, ok := c.Texture(cmd.Texture())
	require.True(t, ok)
	assert.Equal(t, blue, tex.RGBAAt(5, 5))
}

func TestPixelsCompressRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 16))
	img.Set(7, 3, blue)
	p, err := Compress(img)
	require.NoError(t, err)
	assert.Less(t, p.Size(), len(img.Pix))

	out, err := p.Image()
	require.NoError(t, err)
	assert.Equal(t, img.Pix, out.Pix)
}
