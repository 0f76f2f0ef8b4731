package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/render"
	"github.com/example/sketchpad/internal/shape"
)

var defaultInk = color.RGBA{A: 255}

// PixelPoint maps a surface point to the pixel containing it.
func (c *Canvas) PixelPoint(p geom.Point) image.Point {
	return image.Pt(int(math.Floor(p.X)), c.height-1-int(math.Floor(p.Y)))
}

// PixelRect maps a surface rectangle to image coordinates.
func (c *Canvas) PixelRect(r geom.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.MinX())), c.height-int(math.Round(r.MaxY())),
		int(math.Round(r.MaxX())), c.height-int(math.Round(r.MinY())),
	)
}

// Render draws the render list into dst followed by the overlay
// instructions. dst is addressed in surface pixels from the origin. The
// overlay never reaches the capture cache.
func (c *Canvas) Render(dst *image.RGBA, overlay []Instruction) {
	src := c.Capture()
	render.Blit(dst, src.Bounds(), src)
	ink := defaultInk
	for i := range overlay {
		c.draw(dst, &overlay[i], &ink)
	}
}

func (c *Canvas) rasterize() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	render.FillRect(img, img.Bounds(), c.background)
	ink := defaultInk
	for _, h := range c.order {
		if rec := c.records[h]; rec != nil {
			c.draw(img, rec, &ink)
		}
	}
	return img
}

func thickness(w float64) int {
	if t := int(math.Round(w)); t > 1 {
		return t
	}
	return 1
}

func (c *Canvas) draw(img *image.RGBA, in *Instruction, ink *color.RGBA) {
	switch in.Op {
	case OpColor:
		*ink = in.Color
	case OpPolyline:
		c.polyline(img, in.Points, *ink, thickness(in.Width))
	case OpShape:
		if in.Shape == nil {
			return
		}
		if in.Dash > 0 {
			c.dashed(img, in.Shape, in.Dash, *ink, in.Accent)
			return
		}
		c.outline(img, in.Shape, *ink, thickness(in.Width))
	case OpStamp:
		if in.Round {
			ctr := c.PixelPoint(geom.Pt(in.Rect.X+in.Rect.W/2, in.Rect.Y+in.Rect.H/2))
			render.FilledCircle(img, ctr.X, ctr.Y, int(math.Round(in.Rect.W/2)), *ink)
			return
		}
		render.FillRect(img, c.PixelRect(in.Rect), *ink)
	case OpFillRect:
		render.FillRect(img, c.PixelRect(in.Rect), *ink)
	case OpImage:
		render.Blit(img, c.PixelRect(in.Rect), in.Image)
	case OpTexture:
		if tex, ok := c.textures[in.Texture]; ok {
			render.Blit(img, c.PixelRect(in.Rect), tex)
		}
	}
}

func (c *Canvas) polyline(img *image.RGBA, pts []geom.Point, col color.RGBA, thick int) {
	if len(pts) == 0 {
		return
	}
	prev := c.PixelPoint(pts[0])
	if len(pts) == 1 {
		render.ThickPixel(img, prev.X, prev.Y, thick, col)
		return
	}
	for _, p := range pts[1:] {
		cur := c.PixelPoint(p)
		render.Line(img, prev.X, prev.Y, cur.X, cur.Y, col, thick)
		prev = cur
	}
}

// dashed traces a line along itself and every other shape around its
// bounding box.
func (c *Canvas) dashed(img *image.RGBA, s shape.Shape, dash int, col, accent color.RGBA) {
	if g, ok := s.(shape.Line); ok {
		a, b := c.PixelPoint(g.P1), c.PixelPoint(g.P2)
		render.DashedLine(img, a.X, a.Y, b.X, b.Y, dash, col, accent)
		return
	}
	render.DashedRect(img, c.PixelRect(s.Bounds()), dash, col, accent)
}

func (c *Canvas) outline(img *image.RGBA, s shape.Shape, col color.RGBA, thick int) {
	switch g := s.(type) {
	case shape.Line:
		a, b := c.PixelPoint(g.P1), c.PixelPoint(g.P2)
		render.Line(img, a.X, a.Y, b.X, b.Y, col, thick)
	case shape.Circle:
		ctr := c.PixelPoint(g.Center)
		render.Circle(img, ctr.X, ctr.Y, int(math.Round(g.Radius)), col, thick)
	default:
		render.Rect(img, c.PixelRect(s.Bounds()), col, thick)
	}
}
