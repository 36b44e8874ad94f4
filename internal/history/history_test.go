package history

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/shineypaint/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ink = color.NRGBA{0, 0, 0, 255}

func stroke(h *History, s *surface.Surface, y int) {
	h.RecordBeforeMutation()
	s.StrokeSegment(image.Pt(0, y), image.Pt(9, y), ink, 1, surface.CompositePaint)
}

func TestEmptyStacksAreNoOps(t *testing.T) {
	s := surface.New(4, 4)
	h := New(s)
	before := s.Snapshot()
	assert.False(t, h.Undo())
	assert.False(t, h.Redo())
	assert.True(t, before.Equal(s.Snapshot()))
}

func TestUndoRedoInverse(t *testing.T) {
	s := surface.New(10, 10)
	h := New(s)
	stroke(h, s, 2)
	after := s.Snapshot()

	require.True(t, h.Undo())
	assert.False(t, after.Equal(s.Snapshot()))
	require.True(t, h.Redo())
	assert.True(t, after.Equal(s.Snapshot()))
}

func TestThreeStrokesUndoTwiceRedoOnce(t *testing.T) {
	s := surface.New(10, 10)
	h := New(s)
	stroke(h, s, 1)
	first := s.Snapshot()
	stroke(h, s, 4)
	second := s.Snapshot()
	stroke(h, s, 7)

	require.True(t, h.Undo())
	require.True(t, h.Undo())
	assert.True(t, first.Equal(s.Snapshot()))
	assert.Equal(t, 1, h.UndoDepth())
	assert.Equal(t, 2, h.RedoDepth())

	require.True(t, h.Redo())
	assert.True(t, second.Equal(s.Snapshot()))
}

func TestFreshMutationClearsRedo(t *testing.T) {
	s := surface.New(10, 10)
	h := New(s)
	stroke(h, s, 1)
	require.True(t, h.Undo())
	require.True(t, h.CanRedo())

	stroke(h, s, 5)
	assert.False(t, h.CanRedo())
	current := s.Snapshot()
	assert.False(t, h.Redo())
	assert.True(t, current.Equal(s.Snapshot()))
}

func TestLimitEvictsOldest(t *testing.T) {
	s := surface.New(10, 10)
	h := New(s, WithLimit(2))
	stroke(h, s, 1)
	afterFirst := s.Snapshot()
	stroke(h, s, 4)
	stroke(h, s, 7)
	assert.Equal(t, 2, h.UndoDepth())

	require.True(t, h.Undo())
	require.True(t, h.Undo())
	assert.False(t, h.Undo())
	assert.True(t, afterFirst.Equal(s.Snapshot()))
}

func TestRecordUsesGivenSnapshot(t *testing.T) {
	s := surface.New(10, 10)
	h := New(s)
	before := s.Snapshot()
	stroke(h, s, 1)
	h.Undo()
	require.True(t, h.CanRedo())

	h.Record(before)
	s.StrokeSegment(image.Pt(0, 5), image.Pt(9, 5), ink, 1, surface.CompositePaint)
	assert.False(t, h.CanRedo())
	require.True(t, h.Undo())
	assert.True(t, before.Equal(s.Snapshot()))
}

func TestReset(t *testing.T) {
	s := surface.New(3, 3)
	h := New(s)
	stroke(h, s, 1)
	h.Undo()
	h.Reset()
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}
