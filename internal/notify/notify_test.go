package notify

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/sketchpad/internal/config"
	"github.com/example/sketchpad/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func capture(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	orig := send
	send = func(title, body string, opts platform.Options) error {
		_, err := os.Stat(opts.IconPath)
		got = append(got, sent{title, body, opts, opts.IconPath != "" && err == nil})
		return nil
	}
	t.Cleanup(func() { send = orig })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Save("x.png")
	n.Copy("", nil)
	var nilNotifier *Notifier
	nilNotifier.Save("x.png")
	assert.Empty(t, *got)
}

func TestSaveUsesFileAsIcon(t *testing.T) {
	got := capture(t)
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save(path)

	require.Len(t, *got, 1)
	assert.Equal(t, "Sketchpad", (*got)[0].title)
	assert.Equal(t, "Saved "+path, (*got)[0].body)
	assert.Equal(t, path, (*got)[0].opts.IconPath)
}

func TestCopyWritesTemporaryPreview(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy("", image.NewRGBA(image.Rect(0, 0, 2, 2)))

	require.Len(t, *got, 1)
	assert.Equal(t, "Copied drawing to the clipboard", (*got)[0].body)
	assert.True(t, (*got)[0].iconExisted)
	_, err := os.Stat((*got)[0].opts.IconPath)
	assert.True(t, os.IsNotExist(err), "preview is removed after sending")
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SKETCHPAD_NOTIFY_TITLE", "Pad")
	t.Setenv("SKETCHPAD_NOTIFY_COPY_TEXT", "On the clipboard")
	got := capture(t)

	cfg := config.New()
	cfg.Notify.Copy = true
	n := FromConfig(cfg)
	assert.False(t, n.Enabled(EventSave))
	n.Copy("drawing", nil)

	require.Len(t, *got, 1)
	assert.Equal(t, "Pad", (*got)[0].title)
	assert.Equal(t, "On the clipboard", (*got)[0].body)
}
