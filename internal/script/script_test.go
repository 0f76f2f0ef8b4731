package script

import (
	"bytes"
	"errors"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/sketchpad/internal/export"
	"github.com/example/sketchpad/internal/surface"
	"github.com/example/sketchpad/internal/tools"
)

func TestDrawAndSave(t *testing.T) {
	dir := t.TempDir()
	r := New(surface.New(), WithDir(dir))
	err := r.Run(strings.NewReader(`
# red rectangle outline
size 40 30
tool rect
color #ff0000
width 1
drag 5 5 30 20
confirm
save out.png
`))
	require.NoError(t, err)
	assert.False(t, r.Surface().HasUnsavedChanges())

	img, err := export.Load(filepath.Join(dir, "out.png"))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	// Surface (5,5) is pixel (5, 30-1-5).
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(5, 24))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(15, 15))
}

func TestLineErrors(t *testing.T) {
	r := New(surface.New())
	err := r.Run(strings.NewReader("size 10 10\n\nspray 1 2\n"))
	var le *LineError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 3, le.Line)
	assert.True(t, errors.Is(err, ErrUnknownCommand))

	_, err = r.Exec("drag 1 2")
	assert.True(t, errors.Is(err, ErrUsage))

	_, err = r.Exec("tool spray")
	assert.True(t, errors.Is(err, tools.ErrUnknownTool))

	_, err = r.Exec("width nope")
	assert.Error(t, err)
}

func TestExitStopsRun(t *testing.T) {
	r := New(surface.New())
	require.NoError(t, r.Run(strings.NewReader("size 5 5\nexit\nsize nope\n")))
	w, h := r.Surface().Size()
	assert.Equal(t, []int{5, 5}, []int{w, h})
}

func TestUndoRedoCounts(t *testing.T) {
	var out bytes.Buffer
	r := New(surface.New(), WithOutput(&out))
	require.NoError(t, r.Run(strings.NewReader(`
size 20 20
tool pencil
drag 1 1 5 5 2
drag 2 2 6 6
drag 3 3 7 7
undo 2
status
redo 5
status
`)))
	assert.Equal(t, "size=20x20 tool=pencil undo=1 redo=2\nsize=20x20 tool=pencil undo=3 redo=0\n", out.String())
}

func TestColorForms(t *testing.T) {
	r := New(surface.New())
	_, err := r.Exec("color 0 0 1")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, r.Surface().Settings().Color)
	_, err = r.Exec("color red")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, r.Surface().Settings().Color)
	_, err = r.Exec("color 1 1")
	assert.True(t, errors.Is(err, ErrUsage))
}

func TestHelpListsCommands(t *testing.T) {
	var out bytes.Buffer
	r := New(surface.New(), WithOutput(&out))
	_, err := r.Exec("help")
	require.NoError(t, err)
	for _, n := range []string{"drag", "tolerance", "clear-history"} {
		assert.Contains(t, out.String(), n)
	}
	assert.Contains(t, Commands(), "exit")
}
