package surface

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = color.NRGBA{255, 255, 255, 255}
	red   = color.NRGBA{255, 0, 0, 255}
)

func whiteSurface(w, h int) *Surface {
	s := New(w, h)
	s.FillBackground(white)
	return s
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := whiteSurface(4, 4)
	snap := s.Snapshot()
	s.StrokeSegment(image.Pt(0, 0), image.Pt(3, 3), red, 1, CompositePaint)

	assert.Equal(t, white, snap.Image().NRGBAAt(1, 1))
	assert.Equal(t, red, s.At(1, 1))

	s.Restore(snap)
	assert.True(t, s.Snapshot().Equal(snap))
}

func TestRestoreAdoptsBounds(t *testing.T) {
	small := whiteSurface(2, 2)
	s := New(5, 5)
	s.Restore(small.Snapshot())
	assert.Equal(t, image.Rect(0, 0, 2, 2), s.Bounds())
	assert.Equal(t, white, s.At(1, 1))

	s.Restore(Snapshot{})
	assert.Equal(t, image.Rect(0, 0, 2, 2), s.Bounds())
}

func TestEraseMakesTransparent(t *testing.T) {
	s := whiteSurface(10, 10)
	s.StrokeSegment(image.Pt(5, 5), image.Pt(5, 5), red, 4, CompositeErase)
	assert.Equal(t, color.NRGBA{}, s.At(5, 5))
	assert.Equal(t, color.NRGBA{}, s.At(7, 5))
	assert.Equal(t, white, s.At(8, 5))
	// round pen leaves the corners untouched
	assert.Equal(t, white, s.At(7, 7))
}

func TestStrokeSegmentClipsToBounds(t *testing.T) {
	s := whiteSurface(5, 5)
	s.StrokeSegment(image.Pt(-10, 2), image.Pt(20, 2), red, 1, CompositePaint)
	for x := 0; x < 5; x++ {
		assert.Equal(t, red, s.At(x, 2), "x=%d", x)
	}
	assert.Equal(t, white, s.At(2, 1))
}

func TestRectangleOutlineIsDirectionIndependent(t *testing.T) {
	a := whiteSurface(20, 20)
	a.DrawRectangleOutline(2, 3, 10, 8, red, 1)
	b := whiteSurface(20, 20)
	b.DrawRectangleOutline(12, 11, -10, -8, red, 1)
	assert.True(t, a.Snapshot().Equal(b.Snapshot()))

	assert.Equal(t, red, a.At(2, 3))
	assert.Equal(t, red, a.At(12, 11))
	assert.Equal(t, red, a.At(12, 3))
	assert.Equal(t, white, a.At(13, 11))
	assert.Equal(t, white, a.At(7, 7))
}

func bbox(s *Surface, col color.NRGBA) image.Rectangle {
	var r image.Rectangle
	b := s.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if s.At(x, y) == col {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}

func TestEllipseSharesRectangleBoundingBox(t *testing.T) {
	for _, tc := range []struct{ x, y, w, h int }{
		{10, 10, 40, 20},
		{50, 40, -30, -16},
		{5, 5, 7, 9},
	} {
		rect := whiteSurface(64, 64)
		rect.DrawRectangleOutline(tc.x, tc.y, tc.w, tc.h, red, 1)
		ell := whiteSurface(64, 64)
		cx := float64(tc.x) + float64(tc.w)/2
		cy := float64(tc.y) + float64(tc.h)/2
		ell.DrawEllipseOutline(cx, cy, float64(tc.w)/2, float64(tc.h)/2, red, 1)
		assert.Equal(t, bbox(rect, red), bbox(ell, red), "%+v", tc)
	}
}

func TestDrawImageClipsAndBlends(t *testing.T) {
	s := whiteSurface(4, 4)
	src := image.NewNRGBA(image.Rect(0, 0, 8, 2))
	for x := 0; x < 8; x++ {
		src.SetNRGBA(x, 0, red)
	}
	s.DrawImage(src)
	assert.Equal(t, red, s.At(3, 0))
	assert.Equal(t, white, s.At(3, 1), "transparent source pixels keep the canvas")
	assert.Equal(t, image.Rect(0, 0, 4, 4), s.Bounds())
}

func TestWritePixelsLength(t *testing.T) {
	s := New(2, 2)
	err := s.WritePixels(make([]uint8, 3))
	require.ErrorIs(t, err, ErrPixelLength)

	pix := s.ReadPixels()
	pix[0] = 9
	assert.Equal(t, uint8(0), s.At(0, 0).R, "ReadPixels must return a copy")
	require.NoError(t, s.WritePixels(pix))
	assert.Equal(t, uint8(9), s.At(0, 0).R)
}

func TestClearAndFillBackground(t *testing.T) {
	s := whiteSurface(3, 3)
	s.Clear()
	assert.Equal(t, color.NRGBA{}, s.At(1, 1))

	s.StrokeSegment(image.Pt(0, 0), image.Pt(0, 0), red, 1, CompositePaint)
	s.FillBackground(white)
	assert.Equal(t, red, s.At(0, 0))
	assert.Equal(t, white, s.At(2, 2))
}

func TestEncodePNG(t *testing.T) {
	s := whiteSurface(3, 2)
	var buf bytes.Buffer
	require.NoError(t, s.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	r, g, b, a := img.At(2, 1).RGBA()
	assert.Equal(t, [4]uint32{0xffff, 0xffff, 0xffff, 0xffff}, [4]uint32{r, g, b, a})
}

func TestCompositeString(t *testing.T) {
	assert.Equal(t, "paint", CompositePaint.String())
	assert.Equal(t, "eraseThrough", CompositeErase.String())
}
