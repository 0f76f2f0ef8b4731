package geom

import "math"

// Corner names one of the four resize handles of a bounding box.
type Corner int

const (
	CornerNone Corner = iota
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

var cornerOrder = [4]Corner{TopLeft, TopRight, BottomLeft, BottomRight}

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	}
	return "none"
}

// Opposite returns the diagonally opposite corner.
func (c Corner) Opposite() Corner {
	switch c {
	case TopLeft:
		return BottomRight
	case TopRight:
		return BottomLeft
	case BottomLeft:
		return TopRight
	case BottomRight:
		return TopLeft
	}
	return CornerNone
}

// Left reports whether the corner sits on the minimum X edge.
func (c Corner) Left() bool { return c == TopLeft || c == BottomLeft }

// Top reports whether the corner sits on the maximum Y edge.
func (c Corner) Top() bool { return c == TopLeft || c == TopRight }

// HandleAt returns the corner of r whose handle contains p. A handle is hit
// when p lies strictly within hitArea/2 of the corner on both axes. When
// more than one handle is hit the nearest corner wins.
func HandleAt(r Rect, p Point, hitArea float64) Corner {
	half := hitArea / 2
	best := CornerNone
	bestDist := math.Inf(1)
	for _, c := range cornerOrder {
		cp := r.Corner(c)
		if math.Abs(p.X-cp.X) >= half || math.Abs(p.Y-cp.Y) >= half {
			continue
		}
		if d := p.Dist(cp); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// HandleRect returns the square of side size centred on the corner point.
func HandleRect(corner Point, size float64) Rect {
	return Rect{X: corner.X - size/2, Y: corner.Y - size/2, W: size, H: size}
}
