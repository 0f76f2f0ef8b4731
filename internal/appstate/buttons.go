package appstate

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/sketchpad/internal/render"
	"github.com/example/sketchpad/internal/theme"
)

type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive toolbar element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState, th *theme.Theme)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states until
// it is moved.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState, th *theme.Theme) {
	if cb.cache[state] == nil {
		img := image.NewRGBA(cb.Button.Rect())
		cb.Button.Draw(img, state, th)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.Invalidate()
	}
}

// Invalidate drops the cached renderings, for example after a theme change.
func (cb *CacheButton) Invalidate() { cb.cache = [3]*image.RGBA{} }

func buttonBackground(state ButtonState, th *theme.Theme) color.RGBA {
	switch state {
	case StateHover:
		return th.ButtonBackgroundHover
	case StatePressed:
		return th.ButtonBackgroundPress
	}
	return th.ButtonBackground
}

func drawLabel(dst *image.RGBA, x, y int, label string, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
	d.DrawString(label)
}

func labelWidth(label string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(label).Ceil()
}

// ToolButton selects a drawing tool. It shows the tool icon followed by
// its shortcut and name.
type ToolButton struct {
	label    string
	icon     *image.RGBA
	rect     image.Rectangle
	onSelect func()
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState, th *theme.Theme) {
	render.FillRect(dst, tb.rect, buttonBackground(state, th))
	x := tb.rect.Min.X + 4
	if tb.icon != nil {
		ir := tb.icon.Bounds()
		at := image.Pt(x, tb.rect.Min.Y+(tb.rect.Dy()-ir.Dy())/2)
		draw.Draw(dst, ir.Add(at), tb.icon, ir.Min, draw.Over)
		x += ir.Dx() + 4
	}
	drawLabel(dst, x, tb.rect.Min.Y+tb.rect.Dy()/2+5, tb.label, th.ButtonText)
}

func (tb *ToolButton) Rect() image.Rectangle     { return tb.rect }
func (tb *ToolButton) SetRect(r image.Rectangle) { tb.rect = r }

func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect()
	}
}

// ActionButton runs a one-off command such as undo or save.
type ActionButton struct {
	label      string
	rect       image.Rectangle
	onActivate func()
}

func (ab *ActionButton) Draw(dst *image.RGBA, state ButtonState, th *theme.Theme) {
	render.FillRect(dst, ab.rect, buttonBackground(state, th))
	render.Rect(dst, ab.rect, th.ButtonBorder, 1)
	drawLabel(dst, ab.rect.Min.X+4, ab.rect.Min.Y+ab.rect.Dy()/2+5, ab.label, th.ButtonText)
}

func (ab *ActionButton) Rect() image.Rectangle     { return ab.rect }
func (ab *ActionButton) SetRect(r image.Rectangle) { ab.rect = r }

func (ab *ActionButton) Activate() {
	if ab.onActivate != nil {
		ab.onActivate()
	}
}
