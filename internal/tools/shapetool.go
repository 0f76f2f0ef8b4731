package tools

import (
	"log"

	"github.com/example/sketchpad/internal/canvas"
	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/shape"
)

type shapeState int

const (
	stateIdle shapeState = iota
	statePreviewing
	stateCommitted
	stateMoving
	stateResizing
)

func (s shapeState) String() string {
	switch s {
	case statePreviewing:
		return "previewing"
	case stateCommitted:
		return "committed"
	case stateMoving:
		return "moving"
	case stateResizing:
		return "resizing"
	}
	return "idle"
}

// ShapeTool creates one kind of shape and edits the most recent one until
// it is released. Only creation produces an undoable edit; moving and
// resizing update the shape's geometry in place.
type ShapeTool struct {
	c    *canvas.Canvas
	s    *Settings
	kind shape.Kind

	state   shapeState
	origin  geom.Point
	current shape.Shape
	colorH  canvas.Handle
	geomH   canvas.Handle

	// captured when a move or resize begins
	anchor shape.Shape
	grab   geom.Point
	handle geom.Corner
}

// NewShapeTool returns an idle tool for kind.
func NewShapeTool(kind shape.Kind, c *canvas.Canvas, s *Settings) *ShapeTool {
	return &ShapeTool{c: c, s: s, kind: kind}
}

// Shape returns the shape being edited, or nil.
func (t *ShapeTool) Shape() shape.Shape {
	if t.state == stateIdle {
		return nil
	}
	return t.current
}

// Active reports whether a committed shape is selected.
func (t *ShapeTool) Active() bool {
	return t.state == stateCommitted || t.state == stateMoving || t.state == stateResizing
}

func (t *ShapeTool) PointerDown(p geom.Point) {
	switch t.state {
	case statePreviewing, stateMoving, stateResizing:
		return
	case stateCommitted:
		b := t.current.Bounds()
		if h := geom.HandleAt(b, p, t.s.HitArea); h != geom.CornerNone {
			t.state, t.anchor, t.handle = stateResizing, t.current, h
			return
		}
		if b.Contains(p) {
			t.state, t.anchor, t.grab = stateMoving, t.current, p
			return
		}
		t.release()
	}
	t.origin = p
	t.current = shape.Preview(t.kind, p, p)
	t.colorH = t.c.Add(canvas.SetColor(t.s.Color))
	t.geomH = t.c.Add(canvas.Outline(t.current, t.s.Width))
	t.state = statePreviewing
}

func (t *ShapeTool) PointerMove(p geom.Point) {
	switch t.state {
	case statePreviewing:
		t.set(shape.Preview(t.kind, t.origin, p))
	case stateMoving:
		t.set(t.anchor.Translate(p.Sub(t.grab)))
	case stateResizing:
		if s, ok := t.anchor.Resize(t.handle, p); ok {
			t.set(s)
		}
	}
}

func (t *ShapeTool) PointerUp(p geom.Point) []canvas.Handle {
	switch t.state {
	case statePreviewing:
		t.PointerMove(p)
		return t.commit()
	case stateMoving, stateResizing:
		t.PointerMove(p)
		t.state = stateCommitted
		t.anchor = nil
	}
	return nil
}

// Confirm finalises a shape still being drawn and releases the selection.
func (t *ShapeTool) Confirm() []canvas.Handle {
	var hs []canvas.Handle
	if t.state == statePreviewing {
		hs = t.commit()
	}
	t.release()
	return hs
}

// Overlay returns the selection outline and corner handles of the active
// shape.
func (t *ShapeTool) Overlay() []canvas.Instruction {
	if !t.Active() {
		return nil
	}
	st := t.s.Style
	out := []canvas.Instruction{
		canvas.SetColor(st.Selection),
		canvas.Dashed(t.current, st.SelectionAlt),
	}
	size := t.s.HandleSize
	for _, c := range t.current.Bounds().Corners() {
		r := geom.HandleRect(c, size)
		inner := geom.Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
		accent := shape.Rectangle{Min: geom.Pt(r.X+3, r.Y+3), W: r.W - 6, H: r.H - 6}
		out = append(out,
			canvas.SetColor(st.HandleBorder), canvas.FillRect(r),
			canvas.SetColor(st.HandleFill), canvas.FillRect(inner),
			canvas.SetColor(st.HandleAccent), canvas.Outline(accent, 1),
		)
	}
	return out
}

func (t *ShapeTool) set(s shape.Shape) {
	t.current = s
	if err := t.c.Update(t.geomH, func(in *canvas.Instruction) { in.Shape = s }); err != nil {
		log.Printf("%s tool: %v", t.kind, err)
	}
}

func (t *ShapeTool) commit() []canvas.Handle {
	if shape.Degenerate(t.current) {
		for _, h := range []canvas.Handle{t.geomH, t.colorH} {
			if _, err := t.c.Remove(h); err != nil {
				log.Printf("%s tool: %v", t.kind, err)
			}
		}
		t.release()
		return nil
	}
	t.state = stateCommitted
	return []canvas.Handle{t.colorH, t.geomH}
}

func (t *ShapeTool) release() {
	t.state = stateIdle
	t.current = nil
	t.anchor = nil
	t.handle = geom.CornerNone
}
