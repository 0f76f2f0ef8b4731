package render

import (
	"image"
	"image/color"
	"testing"
)

var red = color.RGBA{R: 255, A: 255}

func TestLineCoversEndpoints(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	Line(img, 1, 1, 8, 5, red, 1)
	if img.RGBAAt(1, 1) != red || img.RGBAAt(8, 5) != red {
		t.Fatalf("expected both endpoints painted")
	}
	if img.RGBAAt(0, 9).A != 0 {
		t.Fatalf("unexpected paint far from the line")
	}
}

func TestThickPixelClipsToBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	ThickPixel(img, 0, 0, 5, red)
	if img.RGBAAt(2, 2) != red {
		t.Fatalf("expected thick pen to reach (2,2)")
	}
}

func TestFilledCircleStaysInRadius(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 21, 21))
	FilledCircle(img, 10, 10, 5, red)
	if img.RGBAAt(10, 10) != red || img.RGBAAt(15, 10) != red {
		t.Fatalf("expected centre and rim painted")
	}
	if img.RGBAAt(15, 15).A != 0 {
		t.Fatalf("corner outside the radius was painted")
	}
}

func TestDashedRectAlternates(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	DashedRect(img, image.Rect(0, 0, 20, 20), 4, color.White, color.Black)
	if img.RGBAAt(0, 0) != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("expected first dash white, got %v", img.RGBAAt(0, 0))
	}
	if img.RGBAAt(4, 0) != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("expected second dash black, got %v", img.RGBAAt(4, 0))
	}
}

func TestDashedLineDiagonal(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	DashedLine(img, 0, 0, 9, 9, 2, color.White, color.Black)
	for i, want := range []uint8{255, 255, 0, 0, 255} {
		if got := img.RGBAAt(i, i); got.R != want || got.A != 255 {
			t.Fatalf("pixel %d: expected R=%d, got %v", i, want, got)
		}
	}
	if img.RGBAAt(9, 0).A != 0 {
		t.Fatalf("pixel off the diagonal was painted")
	}
}

func TestBlitScales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.Set(0, 0, red)
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	Blit(dst, image.Rect(2, 2, 6, 6), src)
	if dst.RGBAAt(5, 5) != red {
		t.Fatalf("expected blit to cover the target rectangle")
	}
	if dst.RGBAAt(6, 6).A != 0 {
		t.Fatalf("blit leaked outside the target rectangle")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	c := Clone(img)
	c.Set(0, 0, red)
	if img.RGBAAt(0, 0).A != 0 {
		t.Fatalf("clone shares pixels with the original")
	}
}
