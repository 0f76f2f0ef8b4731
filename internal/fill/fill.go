// Package fill implements the tolerance based flood fill over RGBA pixel
// buffers.
//
// The region to fill is found by masking every pixel whose RGB channels are
// all within the tolerance of the seed colour, labelling the 4-connected
// components of that mask and recolouring the component that holds the
// seed. Alpha is never written.
package fill

import (
	"image"
	"image/color"
)

// DefaultTolerance is the per-channel tolerance used when none is set.
const DefaultTolerance = 32

// ClampTolerance limits t to the 0..255 range.
func ClampTolerance(t int) int {
	switch {
	case t < 0:
		return 0
	case t > 255:
		return 255
	}
	return t
}

// Row converts a surface-local Y coordinate (origin bottom-left) to the
// pixel row holding it.
func Row(height int, y float64) int {
	return height - int(y) - 1
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

// Mask reports, per pixel in row-major order, whether the pixel's RGB is
// within tolerance of target on every channel.
func Mask(img *image.RGBA, target color.RGBA, tolerance int) []bool {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	tol := uint8(ClampTolerance(tolerance))
	mask := make([]bool, w*h)
	for y := 0; y < h; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			p := img.Pix[off+4*x : off+4*x+3 : off+4*x+3]
			mask[y*w+x] = absDiff(p[0], target.R) <= tol &&
				absDiff(p[1], target.G) <= tol &&
				absDiff(p[2], target.B) <= tol
		}
	}
	return mask
}

// Fill recolours the region around (x, y) and returns the number of pixels
// changed. Zero means nothing was filled: the seed is out of bounds or
// already has the fill colour.
func Fill(img *image.RGBA, x, y, tolerance int, fillColor color.RGBA) int {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0
	}
	seedOff := img.PixOffset(b.Min.X+x, b.Min.Y+y)
	target := color.RGBA{R: img.Pix[seedOff], G: img.Pix[seedOff+1], B: img.Pix[seedOff+2]}
	if target.R == fillColor.R && target.G == fillColor.G && target.B == fillColor.B {
		return 0
	}

	labels, _ := Label(Mask(img, target, tolerance), w, h)
	seed := labels[y*w+x]
	if seed == 0 {
		return 0
	}

	n := 0
	for py := 0; py < h; py++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+py)
		for px := 0; px < w; px++ {
			if labels[py*w+px] != seed {
				continue
			}
			p := img.Pix[off+4*px : off+4*px+3 : off+4*px+3]
			p[0], p[1], p[2] = fillColor.R, fillColor.G, fillColor.B
			n++
		}
	}
	return n
}
