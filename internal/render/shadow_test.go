package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestShadowBoundsIncludePaddingAndOffset(t *testing.T) {
	opts := ShadowOptions{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	s := NewShadow(image.Pt(10, 10), opts)
	expected := image.Rect(24, 22, 42, 40)
	if got := s.Bounds(image.Pt(20, 20)); !got.Eq(expected) {
		t.Fatalf("unexpected bounds %v, want %v", got, expected)
	}
	if s.Size() != image.Pt(10, 10) {
		t.Fatalf("size = %v", s.Size())
	}
}

func TestShadowDarkensUnderOffsetRectangle(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	dst := image.NewRGBA(image.Rect(0, 0, 80, 80))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)

	s := NewShadow(image.Pt(30, 30), ShadowOptions{Radius: 3, Offset: image.Pt(5, 5), Opacity: 1})
	s.Draw(dst, image.Pt(10, 10))

	// centre of the shadowed rectangle is fully covered
	if got := dst.RGBAAt(30, 30); got.R != 0 || got.A != 255 {
		t.Fatalf("expected black at the shadow centre, got %+v", got)
	}
	if got := dst.RGBAAt(2, 2); got != white {
		t.Fatalf("pixel outside the shadow changed: %+v", got)
	}
	// the blurred edge is partially transparent
	edge := dst.RGBAAt(15+30, 30)
	if edge.R == 0 || edge.R == 255 {
		t.Fatalf("expected a soft edge, got %+v", edge)
	}
}

func TestShadowNoOpWhenOpacityZero(t *testing.T) {
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	s := NewShadow(image.Pt(10, 10), ShadowOptions{Radius: 12, Offset: image.Pt(2, 2), Opacity: 0})
	s.Draw(dst, image.Pt(0, 0))
	if !s.Bounds(image.Point{}).Empty() {
		t.Fatalf("expected empty bounds")
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if got := dst.RGBAAt(x, y); got != fill {
				t.Fatalf("pixel mismatch at (%d,%d): got %+v want %+v", x, y, got, fill)
			}
		}
	}
}

func TestShadowEmptySize(t *testing.T) {
	s := NewShadow(image.Point{}, DefaultShadowOptions())
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	s.Draw(dst, image.Point{})
	if dst.RGBAAt(1, 1).A != 0 {
		t.Fatalf("empty shadow drew pixels")
	}
}
