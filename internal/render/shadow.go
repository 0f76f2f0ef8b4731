package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow drawn under the page.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns a soft shadow that suits a white page on a
// mid grey workspace.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{Radius: 8, Offset: image.Pt(4, 5), Opacity: 0.4}
}

// PageShadow renders the blurred shadow cast by an opaque w by h page. The
// page's top-left corner belongs at the returned point inside the shadow
// image. It returns nil when the options produce no visible shadow.
func PageShadow(w, h int, opts ShadowOptions) (*image.RGBA, image.Point) {
	if w <= 0 || h <= 0 || opts.Opacity <= 0 {
		return nil, image.Point{}
	}
	if opts.Opacity > 1 {
		opts.Opacity = 1
	}
	r := max(opts.Radius, 0)
	off := image.Pt(max(opts.Offset.X, 0), max(opts.Offset.Y, 0))

	mask := image.NewAlpha(image.Rect(0, 0, w+2*r, h+2*r))
	draw.Draw(mask, image.Rect(r, r, r+w, r+h), image.Opaque, image.Point{}, draw.Src)
	boxBlur(mask.Pix, mask.Rect.Dx(), mask.Rect.Dy(), mask.Stride, r)

	out := image.NewRGBA(image.Rect(0, 0, mask.Rect.Dx()+off.X, mask.Rect.Dy()+off.Y))
	ink := image.NewUniform(color.RGBA{A: uint8(opts.Opacity*255 + 0.5)})
	draw.DrawMask(out, mask.Rect.Add(off), ink, image.Point{}, mask, image.Point{}, draw.Over)
	return out, image.Pt(r, r)
}

// boxBlur averages pix over a (2r+1) square window, one pass per axis.
func boxBlur(pix []uint8, w, h, stride, r int) {
	if r <= 0 {
		return
	}
	line := make([]uint8, max(w, h))
	prefix := make([]int, max(w, h)+1)
	pass := func(n int, at func(i int) *uint8) {
		for i := 0; i < n; i++ {
			line[i] = *at(i)
			prefix[i+1] = prefix[i] + int(line[i])
		}
		for i := 0; i < n; i++ {
			lo, hi := max(i-r, 0), min(i+r, n-1)
			*at(i) = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
		}
	}
	for y := 0; y < h; y++ {
		row := y * stride
		pass(w, func(i int) *uint8 { return &pix[row+i] })
	}
	for x := 0; x < w; x++ {
		pass(h, func(i int) *uint8 { return &pix[i*stride+x] })
	}
}
