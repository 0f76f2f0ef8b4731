// Package assets draws the toolbar icons.
package assets

import (
	"image"
	"image/color"
	"sync"

	"github.com/example/sketchpad/internal/render"
	"github.com/example/sketchpad/internal/tools"
)

// ToolIcon draws the icon for id in a size by size square.
func ToolIcon(id tools.ID, size int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	m := size / 6
	t := max(1, size/12)
	lo, hi := m, size-1-m
	mid := size / 2
	switch id {
	case tools.Pencil:
		render.Line(img, lo+t, hi-t, hi-t, lo+t, col, t)
		render.FilledCircle(img, lo+t, hi-t, t, col)
	case tools.Brush:
		render.Line(img, mid, mid, hi, lo, col, t)
		render.FilledCircle(img, lo+2*t, hi-2*t, 2*t+1, col)
	case tools.Eraser:
		render.Rect(img, image.Rect(lo, lo+m, hi+1, hi-m+1), col, t)
		render.FillRect(img, image.Rect(lo, mid, mid, hi-m+1), col)
	case tools.Line:
		render.Line(img, lo, hi, hi, lo, col, t)
	case tools.Rectangle:
		render.Rect(img, image.Rect(lo, lo+m/2, hi+1, hi-m/2+1), col, t)
	case tools.Circle:
		render.Circle(img, mid, mid, mid-m, col, t)
	case tools.Fill:
		render.Rect(img, image.Rect(lo, lo+m, mid+m, hi+1), col, t)
		render.FilledCircle(img, hi-t, mid+m, 2*t, col)
	}
	return img
}

type key struct {
	id   tools.ID
	size int
}

// Table caches drawn icons.
type Table struct {
	mu    sync.Mutex
	col   color.RGBA
	icons map[key]*image.RGBA
}

// NewTable creates a Table that draws icons in col.
func NewTable(col color.RGBA) *Table {
	return &Table{col: col, icons: map[key]*image.RGBA{}}
}

// Icon returns the cached icon for id, drawing it on first use. The result
// must not be modified.
func (t *Table) Icon(id tools.ID, size int) *image.RGBA {
	t.mu.Lock()
	defer t.mu.Unlock()
	k := key{id, size}
	if img, ok := t.icons[k]; ok {
		return img
	}
	img := ToolIcon(id, size, t.col)
	t.icons[k] = img
	return img
}
