package tools

import (
	"log"

	"github.com/example/sketchpad/internal/canvas"
	"github.com/example/sketchpad/internal/geom"
)

// Freehand draws a single polyline per gesture. With erase set it paints
// the background colour at twice the stroke width.
type Freehand struct {
	c     *canvas.Canvas
	s     *Settings
	erase bool

	active bool
	color  canvas.Handle
	line   canvas.Handle
	points []geom.Point
}

func (f *Freehand) PointerDown(p geom.Point) {
	if f.active {
		return
	}
	col, width := f.s.Color, f.s.Width
	if f.erase {
		col, width = f.s.Background, 2*f.s.Width
	}
	f.points = []geom.Point{p}
	f.color = f.c.Add(canvas.SetColor(col))
	f.line = f.c.Add(canvas.Polyline(f.points, width))
	f.active = true
}

func (f *Freehand) PointerMove(p geom.Point) {
	if !f.active {
		return
	}
	f.points = append(f.points, p)
	pts := f.points
	if err := f.c.Update(f.line, func(in *canvas.Instruction) { in.Points = pts }); err != nil {
		log.Printf("freehand: %v", err)
	}
}

func (f *Freehand) PointerUp(p geom.Point) []canvas.Handle {
	if !f.active {
		return nil
	}
	f.PointerMove(p)
	return f.Confirm()
}

// Confirm ends the current stroke.
func (f *Freehand) Confirm() []canvas.Handle {
	if !f.active {
		return nil
	}
	f.active = false
	f.points = nil
	return []canvas.Handle{f.color, f.line}
}

// BrushTool stamps squares or discs of twice the stroke width along the
// pointer path.
type BrushTool struct {
	c *canvas.Canvas
	s *Settings

	active  bool
	handles []canvas.Handle
}

func (b *BrushTool) stamp(p geom.Point) {
	size := 2 * b.s.Width
	r := geom.Rect{X: p.X - size/2, Y: p.Y - size/2, W: size, H: size}
	b.handles = append(b.handles, b.c.Add(canvas.Stamp(r, b.s.Brush == BrushRound)))
}

func (b *BrushTool) PointerDown(p geom.Point) {
	if b.active {
		return
	}
	b.active = true
	b.handles = []canvas.Handle{b.c.Add(canvas.SetColor(b.s.Color))}
	b.stamp(p)
}

func (b *BrushTool) PointerMove(p geom.Point) {
	if b.active {
		b.stamp(p)
	}
}

func (b *BrushTool) PointerUp(p geom.Point) []canvas.Handle {
	if !b.active {
		return nil
	}
	b.stamp(p)
	return b.Confirm()
}

// Confirm ends the current stroke.
func (b *BrushTool) Confirm() []canvas.Handle {
	if !b.active {
		return nil
	}
	b.active = false
	hs := b.handles
	b.handles = nil
	return hs
}
