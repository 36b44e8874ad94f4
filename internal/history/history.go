// Package history keeps linear undo and redo stacks of full surface
// snapshots.
package history

import "github.com/example/shineypaint/internal/surface"

// Buffer is the raster the history captures and restores.
type Buffer interface {
	Snapshot() surface.Snapshot
	Restore(surface.Snapshot)
}

// History holds two stacks, most recent last. Snapshots are owned by the
// stack slot that holds them and are never mutated.
type History struct {
	buf   Buffer
	undo  []surface.Snapshot
	redo  []surface.Snapshot
	limit int
}

// Option configures a History.
type Option func(*History)

// WithLimit caps the undo stack at n entries, evicting the oldest first.
// Zero or a negative value leaves the history unbounded.
func WithLimit(n int) Option { return func(h *History) { h.limit = n } }

// New returns an empty history over buf.
func New(buf Buffer, opts ...Option) *History {
	h := &History{buf: buf}
	for _, o := range opts {
		o(h)
	}
	return h
}

// RecordBeforeMutation pushes the current buffer onto the undo stack and
// discards every redo entry. Call it once per logical mutation.
func (h *History) RecordBeforeMutation() { h.Record(h.buf.Snapshot()) }

// Record is RecordBeforeMutation for a caller that already holds a snapshot
// of the current buffer.
func (h *History) Record(snap surface.Snapshot) {
	h.push(&h.undo, snap)
	h.evict()
	clearStack(&h.redo)
}

// Undo restores the most recent undo entry. It reports false when there is
// nothing to undo.
func (h *History) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	h.push(&h.redo, h.buf.Snapshot())
	h.buf.Restore(pop(&h.undo))
	return true
}

// Redo is the mirror of Undo.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	h.push(&h.undo, h.buf.Snapshot())
	h.evict()
	h.buf.Restore(pop(&h.redo))
	return true
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoDepth is the number of undo entries.
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth is the number of redo entries.
func (h *History) RedoDepth() int { return len(h.redo) }

// Reset drops both stacks.
func (h *History) Reset() {
	clearStack(&h.undo)
	clearStack(&h.redo)
}

func (h *History) push(stack *[]surface.Snapshot, s surface.Snapshot) {
	*stack = append(*stack, s)
}

func (h *History) evict() {
	if h.limit <= 0 || len(h.undo) <= h.limit {
		return
	}
	n := len(h.undo) - h.limit
	clear(h.undo[:n])
	h.undo = append(h.undo[:0], h.undo[n:]...)
}

func pop(stack *[]surface.Snapshot) surface.Snapshot {
	s := *stack
	top := s[len(s)-1]
	s[len(s)-1] = surface.Snapshot{}
	*stack = s[:len(s)-1]
	return top
}

func clearStack(stack *[]surface.Snapshot) {
	clear(*stack)
	*stack = (*stack)[:0]
}
