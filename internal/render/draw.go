// Package render holds the pixel-level drawing primitives shared by the
// canvas rasteriser, the selection overlay and the window chrome. All
// functions work in image (top-left origin) coordinates and clip to the
// destination bounds.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
)

// ThickPixel paints a thick x thick square centred on (x, y).
func ThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			px := x + dx
			py := y + dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
	}
}

// Line draws a Bresenham line with square pens of the given thickness.
func Line(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		ThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func circleThin(img *image.RGBA, cx, cy, r int, col color.Color) {
	x := r
	y := 0
	err := 1 - r
	for x >= y {
		pts := [][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}}
		for _, p := range pts {
			px := cx + p[0]
			py := cy + p[1]
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2 * (y - x + 1)
		}
	}
}

// Circle draws a circle outline as thick concentric midpoint rings.
func Circle(img *image.RGBA, cx, cy, r int, col color.Color, thick int) {
	if thick <= 1 {
		circleThin(img, cx, cy, r, col)
		return
	}
	start := -thick / 2
	for i := 0; i < thick; i++ {
		rr := r + start + i
		if rr >= 0 {
			circleThin(img, cx, cy, rr, col)
		}
	}
}

// FilledCircle paints every pixel within r of the centre.
func FilledCircle(img *image.RGBA, cx, cy, r int, col color.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				px := cx + dx
				py := cy + dy
				if image.Pt(px, py).In(img.Bounds()) {
					img.Set(px, py, col)
				}
			}
		}
	}
}

// Rect draws the outline of rect.
func Rect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	Line(img, rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Min.Y, col, thick)
	Line(img, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1, col, thick)
	Line(img, rect.Max.X-1, rect.Max.Y-1, rect.Min.X, rect.Max.Y-1, col, thick)
	Line(img, rect.Min.X, rect.Max.Y-1, rect.Min.X, rect.Min.Y, col, thick)
}

// FillRect replaces the pixels of rect with col.
func FillRect(img *image.RGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(img, rect.Intersect(img.Bounds()), &image.Uniform{col}, image.Point{}, draw.Src)
}

// DashedLine draws a one pixel line from (x0, y0) to (x1, y1) switching
// between c1 and c2 every dash pixels.
func DashedLine(img *image.RGBA, x0, y0, x1, y1, dash int, c1, c2 color.Color) {
	if dash <= 0 {
		dash = 4
	}
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x1 < x0 {
		sx = -1
	}
	if y1 < y0 {
		sy = -1
	}
	err := dx - dy
	for i := 0; ; i++ {
		col := c1
		if (i/dash)%2 == 1 {
			col = c2
		}
		if image.Pt(x0, y0).In(img.Bounds()) {
			img.Set(x0, y0, col)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// DashedRect outlines rect with alternating c1/c2 dashes.
func DashedRect(img *image.RGBA, rect image.Rectangle, dash int, c1, c2 color.Color) {
	if dash <= 0 {
		dash = 4
	}
	maxX, maxY := rect.Max.X-1, rect.Max.Y-1
	DashedLine(img, rect.Min.X, rect.Min.Y, maxX, rect.Min.Y, dash, c1, c2)
	DashedLine(img, maxX, rect.Min.Y, maxX, maxY, dash, c1, c2)
	DashedLine(img, maxX, maxY, rect.Min.X, maxY, dash, c1, c2)
	DashedLine(img, rect.Min.X, maxY, rect.Min.X, rect.Min.Y, dash, c1, c2)
}

// Blit scales src into dst over rect using nearest neighbour sampling.
func Blit(dst *image.RGBA, rect image.Rectangle, src image.Image) {
	if rect.Empty() || src == nil {
		return
	}
	xdraw.NearestNeighbor.Scale(dst, rect, src, src.Bounds(), draw.Src, nil)
}

// Clone returns a deep copy of img with bounds rebased to the origin.
func Clone(img *image.RGBA) *image.RGBA {
	if img == nil {
		return nil
	}
	out := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

// ToRGBA converts any image into an RGBA buffer at the origin.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
