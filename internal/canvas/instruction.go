package canvas

import (
	"image"
	"image/color"

	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/shape"
)

// Op selects how an Instruction is drawn.
type Op int

const (
	// OpColor sets the colour used by the instructions that follow it.
	OpColor Op = iota
	// OpPolyline strokes Points with Width.
	OpPolyline
	// OpShape strokes the outline of Shape with Width. A positive Dash draws
	// the dashed bounding box instead, alternating the current colour and
	// Accent.
	OpShape
	// OpStamp fills Rect as a disc when Round is set, as a square otherwise.
	OpStamp
	// OpFillRect fills Rect with the current colour.
	OpFillRect
	// OpImage scales Image into Rect.
	OpImage
	// OpTexture scales the texture Texture into Rect.
	OpTexture
)

func (o Op) String() string {
	switch o {
	case OpColor:
		return "color"
	case OpPolyline:
		return "polyline"
	case OpShape:
		return "shape"
	case OpStamp:
		return "stamp"
	case OpFillRect:
		return "fill-rect"
	case OpImage:
		return "image"
	case OpTexture:
		return "texture"
	}
	return "unknown"
}

// TextureID names a pixel buffer held by the canvas.
type TextureID uint32

// Instruction is one record of the render list. Only the fields used by Op
// are meaningful.
type Instruction struct {
	Op      Op
	Color   color.RGBA
	Accent  color.RGBA
	Points  []geom.Point
	Width   float64
	Shape   shape.Shape
	Dash    int
	Rect    geom.Rect
	Round   bool
	Image   *image.RGBA
	Texture TextureID
}

func SetColor(c color.RGBA) Instruction { return Instruction{Op: OpColor, Color: c} }

func Polyline(points []geom.Point, width float64) Instruction {
	return Instruction{Op: OpPolyline, Points: points, Width: width}
}

func Outline(s shape.Shape, width float64) Instruction {
	return Instruction{Op: OpShape, Shape: s, Width: width}
}

func Stamp(r geom.Rect, round bool) Instruction {
	return Instruction{Op: OpStamp, Rect: r, Round: round}
}

func FillRect(r geom.Rect) Instruction { return Instruction{Op: OpFillRect, Rect: r} }

func Blit(img *image.RGBA, r geom.Rect) Instruction {
	return Instruction{Op: OpImage, Image: img, Rect: r}
}

func Textured(id TextureID, r geom.Rect) Instruction {
	return Instruction{Op: OpTexture, Texture: id, Rect: r}
}

// Dashed marks s as selected with alternating dashes of the current colour
// and accent: along a line, around the bounding box of other shapes.
func Dashed(s shape.Shape, accent color.RGBA) Instruction {
	return Instruction{Op: OpShape, Shape: s, Dash: 4, Accent: accent, Width: 1}
}
