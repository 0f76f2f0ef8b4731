// Package shape implements the editable vector shapes: lines, rectangles
// and circles. Each variant knows its own bounds and how to translate and
// resize itself so callers never need to inspect the concrete type.
package shape

import (
	"fmt"
	"math"

	"github.com/example/sketchpad/internal/geom"
)

// Kind identifies a shape variant.
type Kind int

const (
	KindLine Kind = iota
	KindRectangle
	KindCircle
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindRectangle:
		return "rectangle"
	case KindCircle:
		return "circle"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Shape is a vector shape. Implementations are immutable values; every
// operation returns a new Shape.
type Shape interface {
	Kind() Kind
	// Bounds is the axis-aligned bounding box. Resize handles sit on its
	// corners.
	Bounds() geom.Rect
	Translate(d geom.Point) Shape
	// Resize is called on the geometry captured when the resize began and
	// returns the geometry for the handle dragged to p. ok is false when the
	// result would be degenerate and the previous geometry should be kept.
	Resize(handle geom.Corner, p geom.Point) (s Shape, ok bool)

	sealed()
}

// Preview returns the shape being drawn from origin to the pointer p.
func Preview(kind Kind, origin, p geom.Point) Shape {
	switch kind {
	case KindRectangle:
		r := geom.RectFromPoints(origin, p)
		return Rectangle{Min: r.Min(), W: r.W, H: r.H}
	case KindCircle:
		return Circle{Center: origin, Radius: origin.Dist(p)}
	default:
		return Line{P1: origin, P2: p}
	}
}

// Degenerate reports whether s has collapsed to a point or a segment that
// cannot be selected.
func Degenerate(s Shape) bool {
	switch v := s.(type) {
	case Line:
		return v.P1 == v.P2
	case nil:
		return true
	}
	return s.Bounds().Empty()
}

// Line is a straight segment between two endpoints.
type Line struct {
	P1, P2 geom.Point
}

func (Line) Kind() Kind { return KindLine }
func (Line) sealed()    {}

func (l Line) Bounds() geom.Rect { return geom.RectFromPoints(l.P1, l.P2) }

func (l Line) Translate(d geom.Point) Shape {
	return Line{P1: l.P1.Add(d), P2: l.P2.Add(d)}
}

// Resize moves the endpoint nearest the dragged handle corner and keeps the
// other endpoint fixed.
func (l Line) Resize(handle geom.Corner, p geom.Point) (Shape, bool) {
	c := l.Bounds().Corner(handle)
	if l.P1.Dist(c) <= l.P2.Dist(c) {
		return Line{P1: p, P2: l.P2}, true
	}
	return Line{P1: l.P1, P2: p}, true
}

// Rectangle is an axis-aligned box anchored at its bottom-left corner.
type Rectangle struct {
	Min  geom.Point
	W, H float64
}

func (Rectangle) Kind() Kind { return KindRectangle }
func (Rectangle) sealed()    {}

func (r Rectangle) Bounds() geom.Rect {
	return geom.Rect{X: r.Min.X, Y: r.Min.Y, W: r.W, H: r.H}
}

func (r Rectangle) Translate(d geom.Point) Shape {
	return Rectangle{Min: r.Min.Add(d), W: r.W, H: r.H}
}

// Resize pins the corner opposite handle. The dragged corner is clamped so
// it never crosses the pinned corner.
func (r Rectangle) Resize(handle geom.Corner, p geom.Point) (Shape, bool) {
	if handle == geom.CornerNone {
		return r, false
	}
	b := r.Bounds()
	pin := b.Corner(handle.Opposite())
	q := p
	if handle.Left() {
		q.X = math.Min(q.X, pin.X)
	} else {
		q.X = math.Max(q.X, pin.X)
	}
	if handle.Top() {
		q.Y = math.Max(q.Y, pin.Y)
	} else {
		q.Y = math.Min(q.Y, pin.Y)
	}
	nb := geom.RectFromPoints(pin, q)
	if nb.Empty() {
		return r, false
	}
	return Rectangle{Min: nb.Min(), W: nb.W, H: nb.H}, true
}

// Circle is defined by its centre and radius.
type Circle struct {
	Center geom.Point
	Radius float64
}

func (Circle) Kind() Kind { return KindCircle }
func (Circle) sealed()    {}

func (c Circle) Bounds() geom.Rect {
	return geom.Rect{X: c.Center.X - c.Radius, Y: c.Center.Y - c.Radius, W: 2 * c.Radius, H: 2 * c.Radius}
}

func (c Circle) Translate(d geom.Point) Shape {
	return Circle{Center: c.Center.Add(d), Radius: c.Radius}
}

// Resize keeps the bounding-square corner opposite handle as the fixed
// point. The new centre is the midpoint between the pointer and that point.
func (c Circle) Resize(handle geom.Corner, p geom.Point) (Shape, bool) {
	if handle == geom.CornerNone {
		return c, false
	}
	pin := c.Bounds().Corner(handle.Opposite())
	return Circle{Center: p.Mid(pin), Radius: math.Max(1, p.Dist(pin)/2)}, true
}
