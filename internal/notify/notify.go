// Package notify sends desktop notifications when a drawing is saved or
// copied.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/sketchpad/internal/config"
	"github.com/example/sketchpad/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when a drawing is written to disk.
	EventSave Event = "save"
	// EventCopy fires when a drawing is copied to the clipboard.
	EventCopy Event = "copy"
)

// Preferences describes the notification text.
type Preferences struct {
	Title     string
	Templates map[Event]string
	Timeout   time.Duration
}

// DefaultPreferences returns the built in notification text.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Sketchpad",
		Templates: map[Event]string{
			EventSave: "Saved %s",
			EventCopy: "Copied %s to the clipboard",
		},
		Timeout: 5 * time.Second,
	}
}

// LoadPreferences applies SKETCHPAD_NOTIFY_* environment overrides to the
// defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("SKETCHPAD_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for ev, key := range map[Event]string{
		EventSave: "SKETCHPAD_NOTIFY_SAVE_TEXT",
		EventCopy: "SKETCHPAD_NOTIFY_COPY_TEXT",
	} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[ev] = v
		}
	}
	return prefs
}

// send is swapped out by tests.
var send = platform.Notify

// Notifier sends notifications for the events it has been enabled for. A
// nil Notifier sends nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	n := &Notifier{prefs: prefs, enabled: map[Event]bool{}}
	n.prefs.Templates = make(map[Event]string, len(prefs.Templates))
	for k, v := range prefs.Templates {
		n.prefs.Templates[k] = v
	}
	return n
}

// FromConfig creates a Notifier enabled according to the [notify] section.
func FromConfig(cfg *config.Config) *Notifier {
	n := New(LoadPreferences())
	if cfg != nil {
		n.Enable(EventSave, cfg.Notify.Save)
		n.Enable(EventCopy, cfg.Notify.Copy)
	}
	return n
}

// Enable toggles notifications for event.
func (n *Notifier) Enable(event Event, on bool) {
	if n == nil {
		return
	}
	n.enabled[event] = on
}

// Enabled reports whether event produces a notification.
func (n *Notifier) Enabled(event Event) bool {
	return n != nil && n.enabled[event]
}

// Save announces that path was written. The file doubles as the icon when
// it exists.
func (n *Notifier) Save(path string) {
	if !n.Enabled(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy announces a clipboard copy. img, when given, is shown as a preview.
func (n *Notifier) Copy(detail string, img image.Image) {
	if !n.Enabled(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "drawing"
	}
	opts := platform.Options{}
	if img != nil {
		path, cleanup, err := writePreview(img)
		if err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCopy, detail, opts)
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	tmpl := strings.TrimSpace(n.prefs.Templates[event])
	if tmpl == "" {
		return
	}
	body := tmpl
	if strings.Contains(tmpl, "%") {
		body = fmt.Sprintf(tmpl, strings.TrimSpace(detail))
	}
	opts.AppName = n.prefs.Title
	opts.Timeout = n.prefs.Timeout
	if err := send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func writePreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "sketchpad-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", nil, err
	}
	return path, func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}, nil
}
