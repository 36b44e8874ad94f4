package stroke

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/example/shineypaint/internal/history"
	"github.com/example/shineypaint/internal/surface"
	"github.com/example/shineypaint/internal/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = color.NRGBA{255, 255, 255, 255}
	black = color.NRGBA{0, 0, 0, 255}
)

type rig struct {
	surf *surface.Surface
	hist *history.History
	ctrl *tool.Controller
	eng  *Engine
}

func newRig(t *testing.T, mode tool.Mode) *rig {
	t.Helper()
	s := surface.New(100, 100)
	s.FillBackground(white)
	h := history.New(s)
	c := tool.NewController()
	_, err := c.SetMode(context.Background(), mode)
	require.NoError(t, err)
	return &rig{surf: s, hist: h, ctrl: c, eng: New(s, h, c)}
}

func TestGeometry(t *testing.T) {
	o := image.Pt(10, 10)
	for _, tc := range []struct {
		name string
		p    image.Point
		lock bool
		w, h int
	}{
		{"free", image.Pt(60, 40), false, 50, 30},
		{"locked", image.Pt(60, 40), true, 50, 50},
		{"locked up-left", image.Pt(0, -20), true, -30, -30},
		{"locked mixed", image.Pt(15, -10), true, 20, -20},
		{"locked zero axis", image.Pt(10, 4), true, 6, -6},
		{"free negative", image.Pt(3, 2), false, -7, -8},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w, h := Geometry(o, tc.p, tc.lock)
			assert.Equal(t, tc.w, w)
			assert.Equal(t, tc.h, h)
		})
	}
}

func TestAspectLockSwappedDeltasAreCongruent(t *testing.T) {
	o := image.Pt(0, 0)
	w1, h1 := Geometry(o, image.Pt(30, -12), true)
	w2, h2 := Geometry(o, image.Pt(-12, 30), true)
	assert.Equal(t, abs(w1), abs(w2))
	assert.Equal(t, abs(h1), abs(h2))
	assert.Equal(t, abs(w1), abs(h1))
	assert.Equal(t, 1, sign(w1))
	assert.Equal(t, -1, sign(h1))
	assert.Equal(t, -1, sign(w2))
	assert.Equal(t, 1, sign(h2))
}

func TestEllipseFromBox(t *testing.T) {
	cx, cy, rx, ry := EllipseFromBox(image.Pt(10, 20), -8, 6)
	assert.Equal(t, 6.0, cx)
	assert.Equal(t, 23.0, cy)
	assert.Equal(t, 4.0, rx)
	assert.Equal(t, 3.0, ry)
}

func TestRectanglePreviewDoesNotPersist(t *testing.T) {
	r := newRig(t, tool.ModeRectangle)
	base := r.surf.Snapshot()

	require.True(t, r.eng.Begin(image.Pt(10, 10)))
	r.eng.Extend(image.Pt(80, 80))
	r.eng.Extend(image.Pt(40, 30))
	require.True(t, r.eng.End())

	want := surface.New(100, 100)
	want.Restore(base)
	want.DrawRectangleOutline(10, 10, 30, 20, black, 2)
	assert.True(t, want.Snapshot().Equal(r.surf.Snapshot()))
	assert.Equal(t, white, r.surf.At(80, 80))
}

func TestSquareScenario(t *testing.T) {
	r := newRig(t, tool.ModeRectangle)
	blank := r.surf.Snapshot()

	r.eng.Begin(image.Pt(10, 10))
	r.eng.SetModifier(true)
	r.eng.Extend(image.Pt(60, 40))
	r.eng.End()

	want := surface.New(100, 100)
	want.Restore(blank)
	want.DrawRectangleOutline(10, 10, 50, 50, black, 2)
	assert.True(t, want.Snapshot().Equal(r.surf.Snapshot()))
	assert.Equal(t, black, r.surf.At(60, 60))
	assert.Equal(t, black, r.surf.At(10, 60))

	assert.Equal(t, 1, r.hist.UndoDepth())
	require.True(t, r.hist.Undo())
	assert.True(t, blank.Equal(r.surf.Snapshot()))
}

func TestEllipseMatchesRectangleBox(t *testing.T) {
	r := newRig(t, tool.ModeEllipse)
	r.eng.Begin(image.Pt(70, 60))
	r.eng.Extend(image.Pt(20, 30))
	r.eng.End()

	minX, minY, maxX, maxY := 100, 100, -1, -1
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if r.surf.At(x, y) == black {
				minX, minY = min(minX, x), min(minY, y)
				maxX, maxY = max(maxX, x), max(maxY, y)
			}
		}
	}
	// width 2 pen has radius 1 around the outline through (20,30)-(70,60)
	assert.Equal(t, [4]int{19, 29, 71, 61}, [4]int{minX, minY, maxX, maxY})
}

func TestFreehandCommitsAsItGoes(t *testing.T) {
	r := newRig(t, tool.ModeDraw)
	r.eng.Begin(image.Pt(5, 5))
	r.eng.Extend(image.Pt(20, 5))
	assert.Equal(t, black, r.surf.At(12, 5))
	r.eng.Extend(image.Pt(20, 30))
	r.eng.End()
	assert.Equal(t, black, r.surf.At(12, 5))
	assert.Equal(t, black, r.surf.At(20, 18))
	assert.Equal(t, 1, r.hist.UndoDepth(), "one history entry per session")
}

func TestEraseThrough(t *testing.T) {
	r := newRig(t, tool.ModeErase)
	r.eng.Begin(image.Pt(50, 50))
	r.eng.Extend(image.Pt(60, 50))
	r.eng.End()
	assert.Equal(t, color.NRGBA{}, r.surf.At(55, 50))
	assert.Equal(t, color.NRGBA{}, r.surf.At(55, 59))
	assert.Equal(t, white, r.surf.At(55, 62))
}

func TestDuplicateBeginIgnored(t *testing.T) {
	r := newRig(t, tool.ModeRectangle)
	require.True(t, r.eng.Begin(image.Pt(10, 10)))
	assert.False(t, r.eng.Begin(image.Pt(50, 50)))
	s, ok := r.eng.Session()
	require.True(t, ok)
	assert.Equal(t, image.Pt(10, 10), s.Origin)
	assert.Equal(t, 1, r.hist.UndoDepth())
}

func TestExtendAndEndWithoutSession(t *testing.T) {
	r := newRig(t, tool.ModeDraw)
	before := r.surf.Snapshot()
	assert.False(t, r.eng.Extend(image.Pt(3, 3)))
	assert.False(t, r.eng.End())
	assert.False(t, r.eng.Cancel())
	assert.True(t, before.Equal(r.surf.Snapshot()))
	assert.Equal(t, 0, r.hist.UndoDepth())
}

func TestModeFrozenAtBegin(t *testing.T) {
	r := newRig(t, tool.ModeDraw)
	r.eng.Begin(image.Pt(10, 10))
	_, err := r.ctrl.SetMode(context.Background(), tool.ModeRectangle)
	require.NoError(t, err)
	r.eng.Extend(image.Pt(30, 10))
	r.eng.Extend(image.Pt(30, 30))
	r.eng.End()
	// still a freehand stroke: the first segment survived the second extend
	assert.Equal(t, black, r.surf.At(20, 10))
	assert.Equal(t, white, r.surf.At(10, 20))
}

func TestBeginIgnoredInColorPick(t *testing.T) {
	s := surface.New(10, 10)
	h := history.New(s)
	e := New(s, h, fixedTools{mode: tool.ModeColorPick})
	assert.False(t, e.Begin(image.Pt(1, 1)))
	assert.False(t, e.Active())
	assert.Equal(t, 0, h.UndoDepth())
}

// countingCanvas counts full-buffer captures.
type countingCanvas struct {
	*surface.Surface
	snapshots int
}

func (c *countingCanvas) Snapshot() surface.Snapshot {
	c.snapshots++
	return c.Surface.Snapshot()
}

type recorded struct{ snaps []surface.Snapshot }

func (r *recorded) Record(s surface.Snapshot) { r.snaps = append(r.snaps, s) }

func TestBeginCapturesOneFrame(t *testing.T) {
	c := &countingCanvas{Surface: surface.New(10, 10)}
	c.FillBackground(white)
	rec := &recorded{}
	e := New(c, rec, fixedTools{mode: tool.ModeRectangle})
	require.True(t, e.Begin(image.Pt(1, 1)))
	assert.Equal(t, 1, c.snapshots)
	require.Len(t, rec.snaps, 1)
	sess, ok := e.Session()
	require.True(t, ok)
	assert.True(t, rec.snaps[0].Equal(sess.Base))

	e.Extend(image.Pt(6, 6))
	e.End()
	assert.Equal(t, 1, c.snapshots, "extends restore the base without capturing")
	assert.Equal(t, white, rec.snaps[0].Image().NRGBAAt(6, 6))
}

type fixedTools struct{ mode tool.Mode }

func (f fixedTools) Mode() tool.Mode { return f.mode }
func (f fixedTools) Config() tool.Config { return tool.ConfigFor(f.mode) }
func (f fixedTools) Color() color.NRGBA { return black }
