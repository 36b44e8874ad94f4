// Package render draws window decorations around the canvas.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"
)

// ShadowOptions configures the drop shadow cast by the canvas.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns a subtle shadow suited to the paint window.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  6,
		Offset:  image.Pt(4, 4),
		Opacity: 0.45,
	}
}

// Shadow is a pre-blurred drop shadow for a rectangle of a fixed size.
type Shadow struct {
	size image.Point
	opts ShadowOptions
	img  *image.RGBA
}

// NewShadow renders the shadow of a size.X by size.Y rectangle. The result
// is reused until the canvas size or zoom changes.
func NewShadow(size image.Point, opts ShadowOptions) *Shadow {
	if opts.Radius < 0 {
		opts.Radius = 0
	}
	if opts.Opacity > 1 {
		opts.Opacity = 1
	}
	s := &Shadow{size: size, opts: opts}
	if size.X <= 0 || size.Y <= 0 || opts.Opacity <= 0 {
		return s
	}
	r := opts.Radius
	mask := image.NewRGBA(image.Rect(0, 0, size.X+2*r, size.Y+2*r))
	alpha := uint8(opts.Opacity*255 + 0.5)
	draw.Draw(mask, image.Rect(r, r, r+size.X, r+size.Y), image.NewUniform(color.RGBA{A: alpha}), image.Point{}, draw.Src)
	if r > 0 {
		mask = blur.Box(mask, float64(r))
	}
	s.img = mask
	return s
}

// Size is the rectangle size the shadow was rendered for.
func (s *Shadow) Size() image.Point { return s.size }

// Bounds is the area Draw touches for a rectangle whose top left is at.
func (s *Shadow) Bounds(at image.Point) image.Rectangle {
	if s.img == nil {
		return image.Rectangle{}
	}
	pad := image.Pt(s.opts.Radius, s.opts.Radius)
	return s.img.Bounds().Add(at.Sub(pad).Add(s.opts.Offset))
}

// Draw composites the shadow onto dst for a rectangle whose top left is at.
// The rectangle itself should be drawn afterwards.
func (s *Shadow) Draw(dst draw.Image, at image.Point) {
	if s.img == nil {
		return
	}
	draw.Draw(dst, s.Bounds(at), s.img, image.Point{}, draw.Over)
}
