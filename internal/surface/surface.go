package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
)

// ErrPixelLength is returned by WritePixels when the replacement buffer does
// not cover the surface exactly.
var ErrPixelLength = errors.New("pixel data length does not match surface")

// Composite selects how new ink combines with the pixels already on the
// surface.
type Composite int

const (
	// CompositePaint writes the ink colour over existing pixels.
	CompositePaint Composite = iota
	// CompositeErase punches through to fully transparent pixels.
	CompositeErase
)

func (c Composite) String() string {
	switch c {
	case CompositePaint:
		return "paint"
	case CompositeErase:
		return "eraseThrough"
	default:
		return fmt.Sprintf("Composite(%d)", int(c))
	}
}

// Surface is the raster the painting engine works on. Pixels are stored
// with straight (non-premultiplied) alpha so channel arithmetic in filters
// operates on the values a user sees.
type Surface struct {
	img *image.NRGBA
}

// New returns a fully transparent surface of the given size.
func New(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Surface{img: image.NewNRGBA(image.Rect(0, 0, width, height))}
}

// FromImage copies src onto a new surface anchored at the origin.
func FromImage(src image.Image) *Surface {
	b := src.Bounds()
	s := New(b.Dx(), b.Dy())
	draw.Draw(s.img, s.img.Bounds(), src, b.Min, draw.Src)
	return s
}

// Bounds reports the surface rectangle. It always starts at the origin.
func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }

// At returns the pixel at (x, y), or transparent outside the surface.
func (s *Surface) At(x, y int) color.NRGBA { return s.img.NRGBAAt(x, y) }

// Image returns a copy of the current buffer.
func (s *Surface) Image() *image.NRGBA {
	out := image.NewNRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// Snapshot copies the whole buffer out. Later drawing never alters the
// returned value.
func (s *Surface) Snapshot() Snapshot {
	pix := make([]uint8, len(s.img.Pix))
	copy(pix, s.img.Pix)
	return Snapshot{rect: s.img.Bounds(), pix: pix}
}

// Restore copies snap into the buffer. A snapshot with different bounds
// resizes the surface. The zero Snapshot is ignored.
func (s *Surface) Restore(snap Snapshot) {
	if snap.pix == nil {
		return
	}
	if snap.rect != s.img.Bounds() {
		s.img = image.NewNRGBA(snap.rect)
	}
	copy(s.img.Pix, snap.pix)
}

// ReadPixels returns a copy of the pixel array in RGBA order, row-major,
// four bytes per pixel with no row padding.
func (s *Surface) ReadPixels() []uint8 {
	out := make([]uint8, len(s.img.Pix))
	copy(out, s.img.Pix)
	return out
}

// WritePixels replaces the whole pixel array in one step.
func (s *Surface) WritePixels(pix []uint8) error {
	if len(pix) != len(s.img.Pix) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrPixelLength, len(pix), len(s.img.Pix))
	}
	copy(s.img.Pix, pix)
	return nil
}

// Clear makes every pixel fully transparent.
func (s *Surface) Clear() {
	clear(s.img.Pix)
}

// FillBackground paints col beneath the existing content, matching a canvas
// drawn with destination-over.
func (s *Surface) FillBackground(col color.NRGBA) {
	if col.A == 0 {
		return
	}
	bg := image.NewNRGBA(s.img.Bounds())
	draw.Draw(bg, bg.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
	draw.Draw(bg, bg.Bounds(), s.img, image.Point{}, draw.Over)
	copy(s.img.Pix, bg.Pix)
}

// EncodePNG writes the current buffer as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}

// DrawImage composites src over the surface with src's top left corner at
// the origin. Pixels falling outside the surface are dropped.
func (s *Surface) DrawImage(src image.Image) {
	draw.Draw(s.img, s.img.Bounds(), src, src.Bounds().Min, draw.Over)
}
