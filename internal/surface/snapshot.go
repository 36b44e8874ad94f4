package surface

import (
	"bytes"
	"image"
)

// Snapshot is an immutable full-resolution copy of a surface. The zero value
// holds no pixels.
type Snapshot struct {
	rect image.Rectangle
	pix  []uint8
}

// Bounds reports the rectangle the snapshot was taken from.
func (s Snapshot) Bounds() image.Rectangle { return s.rect }

// IsZero reports whether the snapshot was never captured.
func (s Snapshot) IsZero() bool { return s.pix == nil }

// Equal reports whether both snapshots hold the same pixels.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.rect == o.rect && bytes.Equal(s.pix, o.pix)
}

// Image decodes the snapshot into a fresh image.
func (s Snapshot) Image() *image.NRGBA {
	img := image.NewNRGBA(s.rect)
	copy(img.Pix, s.pix)
	return img
}

// Size returns the number of bytes held by the snapshot.
func (s Snapshot) Size() int { return len(s.pix) }
