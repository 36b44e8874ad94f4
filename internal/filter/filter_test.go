package filter

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/example/shineypaint/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSurface(t *testing.T, w, h int, seed int64) *surface.Surface {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	pix := make([]uint8, w*h*4)
	r.Read(pix)
	s := surface.New(w, h)
	require.NoError(t, s.WritePixels(pix))
	return s
}

func TestInvertChannels(t *testing.T) {
	out, err := Transform([]uint8{10, 20, 30, 40}, 1, 1, Invert)
	require.NoError(t, err)
	assert.Equal(t, []uint8{245, 235, 225, 40}, out)
}

func TestGrayscaleTruncates(t *testing.T) {
	// (1+1+0)/3 = 0.67 truncates to 0; (255+255+254)/3 = 254.67 truncates to 254
	out, err := Transform([]uint8{1, 1, 0, 7, 255, 255, 254, 128}, 2, 1, Grayscale)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 0, 7, 254, 254, 254, 128}, out)
}

func TestFlipsMoveAllChannels(t *testing.T) {
	pix := []uint8{
		1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16,
	}
	h, err := Transform(pix, 2, 2, FlipHorizontal)
	require.NoError(t, err)
	assert.Equal(t, []uint8{
		5, 6, 7, 8, 1, 2, 3, 4,
		13, 14, 15, 16, 9, 10, 11, 12,
	}, h)

	v, err := Transform(pix, 2, 2, FlipVertical)
	require.NoError(t, err)
	assert.Equal(t, []uint8{
		9, 10, 11, 12, 13, 14, 15, 16,
		1, 2, 3, 4, 5, 6, 7, 8,
	}, v)
}

func TestRoundTrips(t *testing.T) {
	for _, k := range []Kind{Invert, FlipHorizontal, FlipVertical} {
		t.Run(k.String(), func(t *testing.T) {
			s := randomSurface(t, 37, 23, 7)
			before := s.Snapshot()
			require.NoError(t, Apply(s, k))
			assert.False(t, before.Equal(s.Snapshot()))
			require.NoError(t, Apply(s, k))
			assert.True(t, before.Equal(s.Snapshot()))
		})
	}
}

func TestGrayscaleIdempotent(t *testing.T) {
	s := randomSurface(t, 31, 17, 3)
	require.NoError(t, Apply(s, Grayscale))
	once := s.Snapshot()
	require.NoError(t, Apply(s, Grayscale))
	assert.True(t, once.Equal(s.Snapshot()))
}

func TestFlipKeepsDimensions(t *testing.T) {
	s := surface.New(5, 3)
	s.StrokeSegment(image.Pt(0, 0), image.Pt(0, 0), color.NRGBA{255, 0, 0, 255}, 1, surface.CompositePaint)
	require.NoError(t, Apply(s, FlipHorizontal))
	assert.Equal(t, image.Rect(0, 0, 5, 3), s.Bounds())
	assert.Equal(t, uint8(255), s.At(4, 0).R)
	require.NoError(t, Apply(s, FlipVertical))
	assert.Equal(t, uint8(255), s.At(4, 2).R)
}

func TestUnknownKind(t *testing.T) {
	_, err := ParseKind("sepia")
	require.ErrorIs(t, err, ErrUnknownKind)

	s := surface.New(1, 1)
	require.ErrorIs(t, Apply(s, Kind(42)), ErrUnknownKind)
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"invert":       Invert,
		"Grayscale":    Grayscale,
		"flip-h":       FlipHorizontal,
		" flip-v ":     FlipVertical,
		"greyscale":    Grayscale,
		"flipvertical": FlipVertical,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
