package appstate

import (
	"image"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/sketchpad/internal/export"
	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/surface"
	"github.com/example/sketchpad/internal/tools"
)

func newTestSession(t *testing.T) *session {
	t.Helper()
	return newSession(surface.New(surface.WithSize(100, 80)), nil)
}

func press(s *session, p image.Point) bool {
	return s.mouse(mouse.Event{X: float32(p.X), Y: float32(p.Y), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
}

func moveTo(s *session, p image.Point) bool {
	return s.mouse(mouse.Event{X: float32(p.X), Y: float32(p.Y), Direction: mouse.DirNone})
}

func release(s *session, p image.Point) bool {
	return s.mouse(mouse.Event{X: float32(p.X), Y: float32(p.Y), Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
}

func toolButton(s *session, id tools.ID) image.Point {
	for i, tid := range s.toolIDs {
		if tid == id {
			return s.buttons[i].Rect().Min.Add(image.Pt(3, 3))
		}
	}
	return image.Point{}
}

func TestToSurfaceFlipsY(t *testing.T) {
	s := newTestSession(t)
	page := s.pageRect()
	assert.Equal(t, image.Pt(100, 80), page.Size())

	x, y := s.toSurface(float32(page.Min.X+3), float32(page.Min.Y))
	assert.Equal(t, 3.5, x)
	assert.Equal(t, 79.5, y)
	assert.Equal(t, image.Pt(3, 0), s.surf.Canvas().PixelPoint(geom.Pt(x, y)))
}

func TestDrawRectangleWithMouse(t *testing.T) {
	s := newTestSession(t)
	require.True(t, press(s, toolButton(s, tools.Rectangle)))
	id, ok := s.surf.Tool()
	require.True(t, ok)
	assert.Equal(t, tools.Rectangle, id)

	page := s.pageRect()
	press(s, page.Min.Add(image.Pt(10, 10)))
	moveTo(s, page.Min.Add(image.Pt(30, 30)))
	release(s, page.Min.Add(image.Pt(60, 50)))

	undo, _ := s.surf.History().Len()
	assert.Equal(t, 1, undo)
	assert.NotEqual(t, s.surf.Export().Pix, s.surf.Frame().Pix, "the committed shape shows its handles")

	// A click on the palette finishes the edit.
	press(s, s.paletteRects[2].Min)
	assert.Equal(t, s.surf.Export().Pix, s.surf.Frame().Pix)
	assert.Equal(t, palette[2], s.surf.Settings().Color)
}

func TestMovesWithoutPressOnlyHover(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.surf.SelectTool("pencil"))
	assert.True(t, moveTo(s, toolButton(s, tools.Brush)))
	assert.False(t, moveTo(s, toolButton(s, tools.Brush)))
	moveTo(s, s.pageRect().Min.Add(image.Pt(5, 5)))
	assert.Equal(t, 0, s.surf.Canvas().Len())
}

func TestKeyboardShortcuts(t *testing.T) {
	s := newTestSession(t)
	require.True(t, s.key(key.Event{Rune: 'p', Direction: key.DirPress}))
	id, _ := s.surf.Tool()
	assert.Equal(t, tools.Pencil, id)

	page := s.pageRect()
	press(s, page.Min.Add(image.Pt(5, 5)))
	release(s, page.Min.Add(image.Pt(20, 20)))
	require.True(t, s.surf.CanUndo())

	s.key(key.Event{Rune: 'z', Modifiers: key.ModControl, Direction: key.DirPress})
	assert.False(t, s.surf.CanUndo())
	s.key(key.Event{Code: key.CodeZ, Modifiers: key.ModControl | key.ModShift, Direction: key.DirPress})
	assert.True(t, s.surf.CanUndo())

	s.key(key.Event{Rune: ']', Direction: key.DirPress})
	assert.Equal(t, 4.0, s.surf.Settings().Width)
	s.key(key.Event{Rune: '[', Direction: key.DirPress})
	s.key(key.Event{Rune: '[', Direction: key.DirPress})
	assert.Equal(t, 1.0, s.surf.Settings().Width)
	s.key(key.Event{Rune: '-', Direction: key.DirPress})
	assert.Equal(t, 24, s.surf.Settings().Tolerance)

	assert.False(t, s.key(key.Event{Rune: 'p', Direction: key.DirRelease}))
	s.key(key.Event{Rune: 'q', Modifiers: key.ModControl, Direction: key.DirPress})
	assert.True(t, s.closing)
}

func TestSaveAction(t *testing.T) {
	s := newTestSession(t)
	s.output = filepath.Join(t.TempDir(), "drawing.png")
	require.NoError(t, s.surf.SelectTool("line"))
	page := s.pageRect()
	press(s, page.Min.Add(image.Pt(5, 5)))
	release(s, page.Min.Add(image.Pt(50, 50)))

	s.key(key.Event{Rune: 's', Modifiers: key.ModControl, Direction: key.DirPress})
	assert.False(t, s.surf.HasUnsavedChanges())
	img, err := export.Load(s.output)
	require.NoError(t, err)
	assert.Equal(t, s.surf.Export().Pix, img.Pix)
	assert.Contains(t, s.status(), "saved drawing.png")
}

func TestNewDrawingAsksBeforeDiscarding(t *testing.T) {
	s := newTestSession(t)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	ctrlN := key.Event{Rune: 'n', Modifiers: key.ModControl, Direction: key.DirPress}

	require.NoError(t, s.surf.SelectTool("line"))
	page := s.pageRect()
	press(s, page.Min.Add(image.Pt(5, 5)))
	release(s, page.Min.Add(image.Pt(50, 50)))
	require.True(t, s.surf.HasUnsavedChanges())

	s.key(ctrlN)
	assert.True(t, s.surf.CanUndo(), "first press keeps the drawing")
	assert.Equal(t, 1, s.surf.Canvas().Len())
	assert.Contains(t, s.status(), "unsaved changes")

	// The warning lapses with its message.
	clock = clock.Add(5 * time.Second)
	s.key(ctrlN)
	assert.Equal(t, 1, s.surf.Canvas().Len())

	clock = clock.Add(time.Second)
	s.key(ctrlN)
	assert.Equal(t, 0, s.surf.Canvas().Len())
	assert.False(t, s.surf.CanUndo())
	assert.Contains(t, s.status(), "new drawing")

	// Nothing to lose, nothing to confirm.
	s.key(ctrlN)
	assert.Contains(t, s.status(), "new drawing")
}

func TestToolButtonsHaveIcons(t *testing.T) {
	s := newTestSession(t)
	require.NotEmpty(t, s.toolIDs)
	for i, id := range s.toolIDs {
		tb, ok := s.buttons[i].Button.(*ToolButton)
		require.True(t, ok)
		assert.NotNil(t, tb.icon, "tool %v", id)
	}
}

func TestDrawComposesPage(t *testing.T) {
	s := newTestSession(t)
	dst := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	s.draw(dst)
	page := s.pageRect()
	assert.Equal(t, s.surf.Export().RGBAAt(0, 0), dst.RGBAAt(page.Min.X, page.Min.Y))
	assert.Equal(t, s.theme.ToolbarBackground, dst.RGBAAt(1, s.height-1))
	assert.Contains(t, s.status(), "100x80  no tool")
}
