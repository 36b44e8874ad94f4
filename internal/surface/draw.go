package surface

import (
	"image"
	"image/color"
	"math"
)

var transparent = color.NRGBA{}

// plot stamps a round pen of the given width centred on (x, y).
func (s *Surface) plot(x, y, width int, col color.NRGBA) {
	r := width / 2
	b := s.img.Bounds()
	if r <= 0 {
		if image.Pt(x, y).In(b) {
			s.img.SetNRGBA(x, y, col)
		}
		return
	}
	rr := r * r
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > rr {
				continue
			}
			px, py := x+dx, y+dy
			if image.Pt(px, py).In(b) {
				s.img.SetNRGBA(px, py, col)
			}
		}
	}
}

func (s *Surface) line(x0, y0, x1, y1, width int, col color.NRGBA) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
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
		s.plot(x0, y0, width, col)
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

// StrokeSegment draws a thick segment from one point to another. With
// CompositeErase the covered pixels become fully transparent and col is
// ignored.
func (s *Surface) StrokeSegment(from, to image.Point, col color.NRGBA, width int, c Composite) {
	if c == CompositeErase {
		col = transparent
	}
	s.line(from.X, from.Y, to.X, to.Y, width, col)
}

// DrawRectangleOutline outlines the rectangle spanning (x, y) to (x+w, y+h)
// inclusive. Negative sizes extend up or left of the anchor.
func (s *Surface) DrawRectangleOutline(x, y, w, h int, col color.NRGBA, lineWidth int) {
	x0, x1 := order(x, x+w)
	y0, y1 := order(y, y+h)
	s.line(x0, y0, x1, y0, lineWidth, col)
	s.line(x1, y0, x1, y1, lineWidth, col)
	s.line(x1, y1, x0, y1, lineWidth, col)
	s.line(x0, y1, x0, y0, lineWidth, col)
}

// DrawEllipseOutline outlines the axis-aligned ellipse centred on (cx, cy).
func (s *Surface) DrawEllipseOutline(cx, cy, rx, ry float64, col color.NRGBA, lineWidth int) {
	rx, ry = math.Abs(rx), math.Abs(ry)
	steps := int(math.Ceil(2 * math.Pi * math.Sqrt(rx*rx+ry*ry)))
	if steps < 8 {
		steps = 8
	}
	// quarter points land exactly on the bounding box
	steps = (steps + 3) / 4 * 4
	var px, py int
	for i := 0; i <= steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		x := int(math.Round(cx + math.Cos(angle)*rx))
		y := int(math.Round(cy + math.Sin(angle)*ry))
		if i > 0 {
			s.line(px, py, x, y, lineWidth, col)
		} else {
			s.plot(x, y, lineWidth, col)
		}
		px, py = x, y
	}
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
