// Package surface implements the drawing surface: it routes pointer events
// to the current tool and records the edits they produce for undo and redo.
package surface

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/example/sketchpad/internal/canvas"
	"github.com/example/sketchpad/internal/config"
	"github.com/example/sketchpad/internal/fill"
	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/history"
	"github.com/example/sketchpad/internal/render"
	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tools"
)

const (
	defaultWidth  = 800
	defaultHeight = 600
)

// Surface is an interactive drawing surface. All methods must be called
// from one goroutine.
type Surface struct {
	canvas   *canvas.Canvas
	history  *history.Stack
	settings *tools.Settings

	tool   tools.Tool
	toolID tools.ID
	active bool

	width, height int
	capacity      int
}

// Option modifies a Surface during creation.
type Option func(*Surface)

// WithSize sets the initial surface size in pixels.
func WithSize(w, h int) Option {
	return func(s *Surface) {
		if w > 0 && h > 0 {
			s.width, s.height = w, h
		}
	}
}

// WithBackground sets the colour a new surface is cleared to and the
// eraser paints with.
func WithBackground(c color.RGBA) Option { return func(s *Surface) { s.settings.Background = c } }

// WithHistoryCapacity bounds the undo stack.
func WithHistoryCapacity(n int) Option { return func(s *Surface) { s.capacity = n } }

// WithColor sets the initial drawing colour.
func WithColor(c color.RGBA) Option { return func(s *Surface) { s.settings.Color = c } }

// WithStrokeWidth sets the initial stroke width.
func WithStrokeWidth(w float64) Option {
	return func(s *Surface) {
		if w > 0 {
			s.settings.Width = w
		}
	}
}

// WithTolerance sets the fill tolerance.
func WithTolerance(t int) Option {
	return func(s *Surface) { s.settings.Tolerance = fill.ClampTolerance(t) }
}

// WithBrushStyle sets the brush stamp shape.
func WithBrushStyle(b tools.BrushStyle) Option { return func(s *Surface) { s.settings.Brush = b } }

// WithHandles sets the drawn handle size and the handle hit area.
func WithHandles(size, hitArea float64) Option {
	return func(s *Surface) {
		if size > 0 {
			s.settings.HandleSize = size
		}
		if hitArea > 0 {
			s.settings.HitArea = hitArea
		}
	}
}

// WithTheme takes the selection overlay colours from t.
func WithTheme(t *theme.Theme) Option {
	return func(s *Surface) {
		if t == nil {
			return
		}
		s.settings.Style = tools.Style{
			Selection:    t.Selection,
			SelectionAlt: t.SelectionAlt,
			HandleBorder: t.HandleBorder,
			HandleFill:   t.HandleFill,
			HandleAccent: t.HandleAccent,
		}
	}
}

// WithConfig applies the drawing settings of cfg.
func WithConfig(cfg *config.Config) Option {
	return func(s *Surface) {
		if cfg == nil {
			return
		}
		WithColor(cfg.Color)(s)
		WithBackground(cfg.Background)(s)
		WithStrokeWidth(cfg.Width)(s)
		WithTolerance(cfg.Tolerance)(s)
		WithHistoryCapacity(cfg.History)(s)
		WithSize(cfg.CanvasW, cfg.CanvasH)(s)
		WithHandles(cfg.Shape.HandleSize, cfg.Shape.HitArea)(s)
		if b, err := tools.ParseBrushStyle(cfg.BrushStyle); err == nil {
			s.settings.Brush = b
		} else {
			log.Printf("config: %v", err)
		}
	}
}

// New creates a surface with no tool selected.
func New(opts ...Option) *Surface {
	st := tools.DefaultSettings()
	s := &Surface{
		settings: &st,
		width:    defaultWidth,
		height:   defaultHeight,
		capacity: history.DefaultCapacity,
	}
	for _, o := range opts {
		o(s)
	}
	s.canvas = canvas.New(s.width, s.height, s.settings.Background)
	s.history = history.NewStack(s.capacity)
	return s
}

// Canvas exposes the render list.
func (s *Surface) Canvas() *canvas.Canvas { return s.canvas }

// History exposes the undo and redo stacks.
func (s *Surface) History() *history.Stack { return s.history }

// Settings returns a copy of the current drawing settings.
func (s *Surface) Settings() tools.Settings { return *s.settings }

// Size returns the surface size in pixels.
func (s *Surface) Size() (int, int) { return s.canvas.Size() }

// Tool returns the selected tool, if any.
func (s *Surface) Tool() (tools.ID, bool) { return s.toolID, s.active }

// SelectTool selects the tool called name. Unfinished work of the current
// tool is confirmed first.
func (s *Surface) SelectTool(name string) error {
	id, err := tools.ParseID(name)
	if err != nil {
		return err
	}
	return s.SelectToolID(id)
}

// SelectToolID selects a tool by id.
func (s *Surface) SelectToolID(id tools.ID) error {
	t, err := tools.New(id, s.canvas, s.settings)
	if err != nil {
		return err
	}
	s.Confirm()
	s.tool, s.toolID, s.active = t, id, true
	return nil
}

// SetColor sets the drawing colour from channels in the 0..1 range.
func (s *Surface) SetColor(r, g, b, a float64) {
	s.SetColorRGBA(color.RGBA{R: unit(r), G: unit(g), B: unit(b), A: unit(a)})
}

func unit(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

func (s *Surface) SetColorRGBA(c color.RGBA) { s.settings.Color = c }

// SetStrokeWidth sets the width used by the next gesture.
func (s *Surface) SetStrokeWidth(w float64) error {
	if w <= 0 {
		return fmt.Errorf("stroke width must be positive, got %g", w)
	}
	s.settings.Width = w
	return nil
}

// SetTolerance sets the fill tolerance, clamped to 0..255.
func (s *Surface) SetTolerance(t int) { s.settings.Tolerance = fill.ClampTolerance(t) }

func (s *Surface) SetBrushStyle(b tools.BrushStyle) { s.settings.Brush = b }

func (s *Surface) PointerDown(x, y float64) {
	if !s.active {
		return
	}
	s.tool.PointerDown(geom.Pt(x, y))
	s.afterEvent()
}

func (s *Surface) PointerMove(x, y float64) {
	if !s.active {
		return
	}
	s.tool.PointerMove(geom.Pt(x, y))
	s.afterEvent()
}

func (s *Surface) PointerUp(x, y float64) {
	if !s.active {
		return
	}
	s.record(s.tool.PointerUp(geom.Pt(x, y)))
	s.afterEvent()
}

// Confirm finalises unfinished work of the current tool, as a click on the
// menu or outside the shape would.
func (s *Surface) Confirm() {
	if c, ok := s.tool.(tools.Confirmer); ok && s.active {
		s.record(c.Confirm())
	}
}

func (s *Surface) afterEvent() {
	if src, ok := s.tool.(tools.CommandSource); ok {
		if cmd := src.TakeCommand(); cmd != nil {
			s.push(cmd)
		}
	}
	if ss, ok := s.tool.(tools.SingleShot); ok && ss.Done() {
		s.tool, s.active = nil, false
	}
}

func (s *Surface) record(hs []canvas.Handle) {
	if len(hs) == 0 {
		return
	}
	s.push(history.NewStrokeCommand(s.canvas, hs))
}

// push records cmd and releases textures only the discarded commands used.
func (s *Surface) push(cmd history.Command) {
	s.history.Push(cmd)
	s.history.Prune(s.canvas)
}

// Undo reverses the most recent edit. Replay failures are logged and
// returned; the history still advances.
func (s *Surface) Undo() error {
	s.Confirm()
	_, err := s.history.Undo(s.canvas)
	return err
}

// Redo reapplies the most recently undone edit.
func (s *Surface) Redo() error {
	s.Confirm()
	_, err := s.history.Redo(s.canvas)
	return err
}

func (s *Surface) CanUndo() bool { return s.history.CanUndo() }
func (s *Surface) CanRedo() bool { return s.history.CanRedo() }

// ClearHistory drops both stacks.
func (s *Surface) ClearHistory() {
	s.Confirm()
	s.history.Clear()
	s.history.Prune(s.canvas)
}

// HasUnsavedChanges reports whether there are edits that can be undone.
func (s *Surface) HasUnsavedChanges() bool { return s.history.CanUndo() }

// MarkSaved records that the current content has been saved.
func (s *Surface) MarkSaved() { s.ClearHistory() }

// NewCanvas clears the render list and history, optionally resizing.
func (s *Surface) NewCanvas(w, h int) {
	s.Confirm()
	s.canvas.Clear()
	if w > 0 && h > 0 {
		s.canvas.Resize(w, h)
	}
	s.history.Clear()
	s.history.Prune(s.canvas)
}

// LoadImage replaces the content with img, resizing the surface to match.
// The load can be undone.
func (s *Surface) LoadImage(img image.Image) error {
	if img == nil {
		return fmt.Errorf("load image: nil image")
	}
	rgba := render.Clone(render.ToRGBA(img))
	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()
	if w == 0 || h == 0 {
		return fmt.Errorf("load image: empty %dx%d image", w, h)
	}
	s.Confirm()
	s.push(history.ApplyImageLoad(s.canvas, canvas.Blit(rgba, geom.Rect{}), w, h))
	return nil
}

// LoadPixels loads a w*h RGBA pixel buffer in row-major order.
func (s *Surface) LoadPixels(pix []byte, w, h int) error {
	if w <= 0 || h <= 0 || len(pix) != 4*w*h {
		return fmt.Errorf("load pixels: %d bytes for %dx%d", len(pix), w, h)
	}
	img := &image.RGBA{Pix: pix, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
	return s.LoadImage(img)
}

// Export returns the full surface content without selection visuals.
func (s *Surface) Export() *image.RGBA { return s.canvas.Capture() }

// Frame returns the surface content with the current tool's overlay.
func (s *Surface) Frame() *image.RGBA {
	w, h := s.canvas.Size()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	var overlay []canvas.Instruction
	if o, ok := s.tool.(tools.Overlayer); ok && s.active {
		overlay = o.Overlay()
	}
	s.canvas.Render(dst, overlay)
	return dst
}
