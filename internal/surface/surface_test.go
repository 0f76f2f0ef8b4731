package surface

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/sketchpad/internal/config"
	"github.com/example/sketchpad/internal/history"
	"github.com/example/sketchpad/internal/shape"
	"github.com/example/sketchpad/internal/tools"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{A: 255}
)

func drag(s *Surface, x0, y0, x1, y1 float64) {
	s.PointerDown(x0, y0)
	s.PointerMove((x0+x1)/2, (y0+y1)/2)
	s.PointerUp(x1, y1)
}

func TestPointerEventsWithoutToolAreIgnored(t *testing.T) {
	s := New(WithSize(20, 20))
	drag(s, 1, 1, 10, 10)
	assert.Equal(t, 0, s.Canvas().Len())
	assert.False(t, s.HasUnsavedChanges())
}

func TestSelectUnknownTool(t *testing.T) {
	s := New()
	err := s.SelectTool("spray")
	var ute *tools.UnknownToolError
	assert.True(t, errors.As(err, &ute))
	_, ok := s.Tool()
	assert.False(t, ok)
}

func TestUndoEverythingRestoresBlankSurface(t *testing.T) {
	s := New(WithSize(60, 40))
	blank := s.Export()

	require.NoError(t, s.SelectTool("pencil"))
	drag(s, 2, 2, 30, 30)
	require.NoError(t, s.SelectTool("brush"))
	drag(s, 40, 5, 50, 5)
	require.NoError(t, s.SelectTool("rectangle"))
	drag(s, 5, 5, 20, 20)
	require.NoError(t, s.SelectTool("circle"))
	drag(s, 40, 20, 45, 25)
	drawn := s.Export()
	handles := s.Canvas().Handles()

	undo, _ := s.History().Len()
	require.Equal(t, 4, undo)
	for s.CanUndo() {
		require.NoError(t, s.Undo())
	}
	assert.Equal(t, 0, s.Canvas().Len())
	assert.Equal(t, blank.Pix, s.Export().Pix)

	for s.CanRedo() {
		require.NoError(t, s.Redo())
	}
	assert.Equal(t, handles, s.Canvas().Handles())
	assert.Equal(t, drawn.Pix, s.Export().Pix)
}

func TestUndoRedoIdempotent(t *testing.T) {
	s := New(WithSize(30, 30))
	require.NoError(t, s.SelectTool("line"))
	drag(s, 1, 1, 25, 25)
	before := s.Export()

	require.NoError(t, s.Undo())
	require.NoError(t, s.Redo())
	assert.Equal(t, before.Pix, s.Export().Pix)
}

func TestNewEditClearsRedo(t *testing.T) {
	s := New(WithSize(30, 30))
	require.NoError(t, s.SelectTool("pencil"))
	drag(s, 1, 1, 5, 5)
	require.NoError(t, s.Undo())
	require.True(t, s.CanRedo())
	drag(s, 2, 2, 6, 6)
	assert.False(t, s.CanRedo())
}

func TestHistoryCapacity(t *testing.T) {
	s := New(WithSize(10, 10), WithHistoryCapacity(3))
	require.NoError(t, s.SelectTool("pencil"))
	for i := 0; i < 5; i++ {
		drag(s, 1, 1, 2, 2)
	}
	undo, _ := s.History().Len()
	assert.Equal(t, 3, undo)
}

func TestFillScenario(t *testing.T) {
	s := New(WithSize(100, 100), WithTolerance(10))
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetRGBA(50, 50, color.RGBA{200, 200, 200, 255})
	img.SetRGBA(51, 50, color.RGBA{205, 195, 210, 255})
	img.SetRGBA(70, 70, color.RGBA{200, 200, 200, 255})
	require.NoError(t, s.LoadImage(img))
	s.ClearHistory()
	loaded := s.Export()

	require.NoError(t, s.SelectTool("fill"))
	s.SetColorRGBA(black)
	// Pixel row 50 holds surface y = 100-50-1.
	s.PointerDown(50.5, 49.5)
	s.PointerUp(50.5, 49.5)

	out := s.Export()
	assert.Equal(t, black, out.RGBAAt(50, 50))
	assert.Equal(t, black, out.RGBAAt(51, 50))
	assert.Equal(t, uint8(200), out.RGBAAt(70, 70).R)
	assert.Equal(t, white, out.RGBAAt(49, 50))

	undo, _ := s.History().Len()
	require.Equal(t, 1, undo)
	_, ok := s.Tool()
	assert.False(t, ok, "the fill tool deactivates after one use")

	require.NoError(t, s.Undo())
	assert.Equal(t, loaded.Pix, s.Export().Pix)
	require.NoError(t, s.Redo())
	assert.Equal(t, out.Pix, s.Export().Pix)
}

func TestFillWithSameColourPushesNothing(t *testing.T) {
	s := New(WithSize(10, 10), WithColor(white))
	require.NoError(t, s.SelectTool("fill"))
	s.PointerDown(5, 5)
	s.PointerUp(5, 5)
	assert.False(t, s.HasUnsavedChanges())
}

func TestUndoConfirmsShapeInProgress(t *testing.T) {
	s := New(WithSize(50, 50))
	require.NoError(t, s.SelectTool("line"))
	s.PointerDown(5, 5)
	s.PointerMove(30, 30)

	require.NoError(t, s.Undo())
	assert.Equal(t, 0, s.Canvas().Len())
	assert.True(t, s.CanRedo())
}

func TestShapeMoveIsNotUndoable(t *testing.T) {
	s := New(WithSize(100, 100))
	require.NoError(t, s.SelectTool("rectangle"))
	drag(s, 10, 10, 50, 50)
	drag(s, 30, 30, 40, 40)
	undo, _ := s.History().Len()
	assert.Equal(t, 1, undo)
	in, ok := s.Canvas().Instruction(s.Canvas().Handles()[1])
	require.True(t, ok)
	assert.Equal(t, shape.Rectangle{Min: in.Shape.Bounds().Min(), W: 40, H: 40}, in.Shape)
	assert.Equal(t, 20.0, in.Shape.Bounds().X)
}

func TestFrameShowsOverlayButExportDoesNot(t *testing.T) {
	s := New(WithSize(100, 100))
	require.NoError(t, s.SelectTool("rectangle"))
	drag(s, 20, 20, 80, 80)

	frame, export := s.Frame(), s.Export()
	// The top-left handle is centred on (20,80), so its border starts at
	// pixel (10,10).
	assert.Equal(t, black, frame.RGBAAt(10, 10))
	assert.Equal(t, white, export.RGBAAt(10, 10))
}

func TestLoadImageUndo(t *testing.T) {
	s := New(WithSize(10, 10))
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	require.NoError(t, s.LoadImage(img))
	w, h := s.Size()
	assert.Equal(t, []int{4, 3}, []int{w, h})

	require.NoError(t, s.Undo())
	w, h = s.Size()
	assert.Equal(t, []int{10, 10}, []int{w, h})

	assert.Error(t, s.LoadPixels([]byte{1, 2, 3}, 1, 1))
}

func TestUnsavedChanges(t *testing.T) {
	s := New(WithSize(10, 10))
	assert.False(t, s.HasUnsavedChanges())
	require.NoError(t, s.SelectTool("pencil"))
	drag(s, 1, 1, 4, 4)
	assert.True(t, s.HasUnsavedChanges())
	s.MarkSaved()
	assert.False(t, s.HasUnsavedChanges())
	assert.Equal(t, 2, s.Canvas().Len(), "saving keeps the drawing")
}

func TestWithConfig(t *testing.T) {
	cfg := config.New()
	cfg.CanvasW, cfg.CanvasH = 64, 32
	cfg.Width = 5
	cfg.History = 7
	cfg.BrushStyle = "square"
	s := New(WithConfig(cfg))
	w, h := s.Size()
	assert.Equal(t, []int{64, 32}, []int{w, h})
	assert.Equal(t, 5.0, s.Settings().Width)
	assert.Equal(t, tools.BrushSquare, s.Settings().Brush)
	assert.Equal(t, 7, s.History().Capacity())
}

func TestSetColorChannels(t *testing.T) {
	s := New()
	s.SetColor(1, 0.5, 0, 1)
	assert.Equal(t, color.RGBA{255, 128, 0, 255}, s.Settings().Color)
	assert.Error(t, s.SetStrokeWidth(0))
}

var _ history.Command = (*history.FillCommand)(nil)

func fillAt(t *testing.T, s *Surface, c color.RGBA) {
	t.Helper()
	require.NoError(t, s.SelectTool("fill"))
	s.SetColorRGBA(c)
	s.PointerDown(5.5, 5.5)
	s.PointerUp(5.5, 5.5)
}

func TestFillTexturesAreReleased(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	s := New(WithSize(40, 40), WithHistoryCapacity(3))
	for i := 0; i < 10; i++ {
		c := red
		if i%2 == 1 {
			c = black
		}
		fillAt(t, s, c)
	}
	undo, _ := s.History().Len()
	require.Equal(t, 3, undo)
	// The live fill plus the one each remaining command restores on undo.
	assert.LessOrEqual(t, s.Canvas().TextureCount(), 4)

	// Undo keeps what redo needs; a new edit lets it go.
	require.NoError(t, s.Undo())
	require.NoError(t, s.Undo())
	before := s.Canvas().TextureCount()
	require.NoError(t, s.SelectTool("pencil"))
	drag(s, 1, 1, 10, 10)
	assert.Less(t, s.Canvas().TextureCount(), before)

	s.MarkSaved()
	assert.Equal(t, 1, s.Canvas().TextureCount(), "the visible fill stays")
	assert.Equal(t, black, s.Export().RGBAAt(30, 30))

	s.NewCanvas(0, 0)
	assert.Equal(t, 0, s.Canvas().TextureCount())
	assert.Equal(t, white, s.Export().RGBAAt(30, 30))
}

func TestUndoRedoAcrossPrunedFills(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	s := New(WithSize(20, 20), WithHistoryCapacity(2))
	fillAt(t, s, red)
	fillAt(t, s, black)
	fillAt(t, s, red)

	require.NoError(t, s.Undo())
	assert.Equal(t, black, s.Export().RGBAAt(3, 3))
	require.NoError(t, s.Undo())
	assert.Equal(t, red, s.Export().RGBAAt(3, 3))
	require.NoError(t, s.Redo())
	require.NoError(t, s.Redo())
	assert.Equal(t, red, s.Export().RGBAAt(3, 3))
	assert.False(t, s.CanRedo())
}
