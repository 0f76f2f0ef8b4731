// Package appstate hosts a drawing surface in a desktop window with a tool
// palette and a status bar.
package appstate

import (
	"image"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/sketchpad/internal/export"
	"github.com/example/sketchpad/internal/notify"
	"github.com/example/sketchpad/internal/surface"
	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tools"
)

// AppState holds application configuration for the UI.
type AppState struct {
	Surface  *surface.Surface
	Output   string
	Title    string
	Theme    *theme.Theme
	Export   export.Settings
	Notifier *notify.Notifier
	Tool     string

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithSurface sets the surface edited in the window.
func WithSurface(s *surface.Surface) Option { return func(a *AppState) { a.Surface = s } }

// WithOutput sets the file written by the save action.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithTitle sets the window title.
func WithTitle(t string) Option { return func(a *AppState) { a.Title = t } }

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithExport sets the encoder settings used by the save action.
func WithExport(s export.Settings) Option { return func(a *AppState) { a.Export = s } }

// WithNotifier announces saves and copies.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithTool selects a tool when the window opens.
func WithTool(name string) Option { return func(a *AppState) { a.Tool = name } }

// WithOnClose registers fn to run once when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState. Without WithSurface a default surface is used.
func New(opts ...Option) *AppState {
	a := &AppState{Title: "Sketchpad", Export: export.DefaultSettings()}
	for _, o := range opts {
		o(a)
	}
	if a.Surface == nil {
		a.Surface = surface.New(surface.WithTheme(a.Theme))
	}
	return a
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

func (a *AppState) session() *session {
	s := newSession(a.Surface, a.Theme)
	s.output = a.Output
	s.export = a.Export
	s.notifier = a.Notifier
	if a.Tool != "" {
		id, err := tools.ParseID(a.Tool)
		if err != nil {
			log.Printf("tool: %v", err)
		} else {
			s.selectTool(id)
		}
	}
	return s
}

// Run opens the window and blocks until it is closed.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the window event loop on s. All surface access happens on this
// goroutine; each paint renders the frame synchronously.
func (a *AppState) Main(s screen.Screen) {
	defer a.notifyClose()
	sess := a.session()

	w, err := s.NewWindow(&screen.NewWindowOptions{Width: sess.width, Height: sess.height, Title: a.Title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				a.warnUnsaved()
				return
			}
		case size.Event:
			if e.WidthPx > 0 && e.HeightPx > 0 {
				sess.resize(e.WidthPx, e.HeightPx)
			}
			w.Send(paint.Event{})
		case paint.Event:
			publish(s, w, sess)
		case mouse.Event:
			if sess.mouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if sess.key(e) {
				w.Send(paint.Event{})
			}
			if sess.closing {
				a.warnUnsaved()
				return
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

func (a *AppState) warnUnsaved() {
	if a.Surface.HasUnsavedChanges() {
		log.Printf("closing with unsaved changes")
	}
}

func publish(s screen.Screen, w screen.Window, sess *session) {
	b, err := s.NewBuffer(image.Pt(sess.width, sess.height))
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	sess.draw(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
