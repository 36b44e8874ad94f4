// Package stroke turns pointer sessions into ink: freehand strokes are
// committed segment by segment while shapes are previewed against the frame
// captured at pointer-down.
package stroke

import (
	"image"
	"image/color"

	"github.com/example/shineypaint/internal/surface"
	"github.com/example/shineypaint/internal/tool"
)

// Canvas is the raster the engine draws on.
type Canvas interface {
	Snapshot() surface.Snapshot
	Restore(surface.Snapshot)
	StrokeSegment(from, to image.Point, col color.NRGBA, width int, c surface.Composite)
	DrawRectangleOutline(x, y, w, h int, col color.NRGBA, lineWidth int)
	DrawEllipseOutline(cx, cy, rx, ry float64, col color.NRGBA, lineWidth int)
}

// Recorder receives the frame captured at pointer-down, once per pointer
// session, before anything is drawn.
type Recorder interface {
	Record(surface.Snapshot)
}

// Tools supplies the active mode, its config and the stroke colour.
type Tools interface {
	Mode() tool.Mode
	Config() tool.Config
	Color() color.NRGBA
}

// PointerSession lives from pointer-down to pointer-up. Mode, Config and
// Color are frozen at Begin.
type PointerSession struct {
	Origin image.Point
	Last   image.Point
	Base   surface.Snapshot
	Mode   tool.Mode
	Config tool.Config
	Color  color.NRGBA
}

// Engine applies pointer input to a Canvas.
type Engine struct {
	canvas   Canvas
	recorder Recorder
	tools    Tools
	session  *PointerSession
	modifier bool
}

// New returns an idle engine.
func New(canvas Canvas, recorder Recorder, tools Tools) *Engine {
	return &Engine{canvas: canvas, recorder: recorder, tools: tools}
}

// Active reports whether a pointer session is open.
func (e *Engine) Active() bool { return e.session != nil }

// Session returns a copy of the open session, if any.
func (e *Engine) Session() (PointerSession, bool) {
	if e.session == nil {
		return PointerSession{}, false
	}
	return *e.session, true
}

// SetModifier records whether the aspect-lock modifier is held. It is read
// on every Extend.
func (e *Engine) SetModifier(held bool) { e.modifier = held }

// Begin opens a session at p. It is ignored while a session is already open
// or while the colour picker is active. The base frame doubles as the
// history entry.
func (e *Engine) Begin(p image.Point) bool {
	if e.session != nil {
		return false
	}
	mode := e.tools.Mode()
	if !mode.Freehand() && !mode.Shape() {
		return false
	}
	base := e.canvas.Snapshot()
	e.session = &PointerSession{
		Origin: p,
		Last:   p,
		Base:   base,
		Mode:   mode,
		Config: e.tools.Config(),
		Color:  e.tools.Color(),
	}
	if e.recorder != nil {
		e.recorder.Record(base)
	}
	return true
}

// Extend moves the session to p. Freehand modes commit the segment from the
// previous point; shape modes restore the base frame and redraw the outline.
func (e *Engine) Extend(p image.Point) bool {
	s := e.session
	if s == nil {
		return false
	}
	if s.Mode.Freehand() {
		e.canvas.StrokeSegment(s.Last, p, s.Color, s.Config.Width, s.Config.Composite)
		s.Last = p
		return true
	}
	e.canvas.Restore(s.Base)
	w, h := Geometry(s.Origin, p, e.modifier)
	switch s.Mode {
	case tool.ModeRectangle:
		e.canvas.DrawRectangleOutline(s.Origin.X, s.Origin.Y, w, h, s.Color, s.Config.Width)
	case tool.ModeEllipse:
		cx, cy, rx, ry := EllipseFromBox(s.Origin, w, h)
		e.canvas.DrawEllipseOutline(cx, cy, rx, ry, s.Color, s.Config.Width)
	}
	s.Last = p
	return true
}

// End closes the session. Whatever is on the canvas is the committed
// result.
func (e *Engine) End() bool {
	if e.session == nil {
		return false
	}
	e.session = nil
	return true
}

// Cancel closes the session when the pointer leaves the canvas. The last
// preview stays, as it would on End.
func (e *Engine) Cancel() bool { return e.End() }

// Geometry returns the signed size of the box from origin to p. With lock
// set both sides take the larger magnitude and keep their own direction;
// a zero delta counts as positive.
func Geometry(origin, p image.Point, lock bool) (w, h int) {
	w = p.X - origin.X
	h = p.Y - origin.Y
	if !lock {
		return w, h
	}
	side := max(abs(w), abs(h))
	return side * sign(w), side * sign(h)
}

// EllipseFromBox converts a box anchored at origin into the centre and radii
// of the ellipse inscribed in it.
func EllipseFromBox(origin image.Point, w, h int) (cx, cy, rx, ry float64) {
	cx = float64(origin.X) + float64(w)/2
	cy = float64(origin.Y) + float64(h)/2
	rx = float64(abs(w)) / 2
	ry = float64(abs(h)) / 2
	return cx, cy, rx, ry
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
