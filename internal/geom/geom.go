// Package geom holds the surface-local geometry used by the editor.
//
// Coordinates are float64 with the origin at the bottom-left corner of the
// drawing surface and Y growing upwards.
package geom

import (
	"fmt"
	"math"
)

// Point is a position in surface-local coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Mid returns the point halfway between p and q.
func (p Point) Mid(q Point) Point { return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2} }

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Rect is an axis-aligned rectangle. X and Y locate the bottom-left corner.
type Rect struct {
	X, Y, W, H float64
}

// RectFromPoints returns the minimal rectangle containing a and b.
func RectFromPoints(a, b Point) Rect {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Min returns the bottom-left corner.
func (r Rect) Min() Point { return Point{r.X, r.Y} }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() && p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Corner returns the position of the named corner. CornerNone yields the
// bottom-left corner.
func (r Rect) Corner(c Corner) Point {
	switch c {
	case TopLeft:
		return Point{r.MinX(), r.MaxY()}
	case TopRight:
		return Point{r.MaxX(), r.MaxY()}
	case BottomRight:
		return Point{r.MaxX(), r.MinY()}
	default:
		return Point{r.MinX(), r.MinY()}
	}
}

// Corners returns the four corners in TopLeft, TopRight, BottomLeft,
// BottomRight order.
func (r Rect) Corners() [4]Point {
	return [4]Point{r.Corner(TopLeft), r.Corner(TopRight), r.Corner(BottomLeft), r.Corner(BottomRight)}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.X, r.Y, r.W, r.H)
}
