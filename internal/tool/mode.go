// Package tool tracks the active painting tool, its rendering
// configuration and the stroke colour.
package tool

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/shineypaint/internal/surface"
)

// ErrUnknownMode is returned for a mode outside the known set.
var ErrUnknownMode = errors.New("unknown mode")

// Mode is the active tool. Exactly one is active at a time.
type Mode int

const (
	ModeDraw Mode = iota
	ModeErase
	ModeRectangle
	ModeEllipse
	ModeColorPick
)

var modeNames = [...]string{
	ModeDraw:      "draw",
	ModeErase:     "erase",
	ModeRectangle: "rectangle",
	ModeEllipse:   "ellipse",
	ModeColorPick: "pick",
}

func (m Mode) String() string {
	if m.Valid() {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool { return m >= ModeDraw && m <= ModeColorPick }

// Freehand reports whether the mode commits ink as the pointer moves.
func (m Mode) Freehand() bool { return m == ModeDraw || m == ModeErase }

// Shape reports whether the mode previews an outline against a base frame.
func (m Mode) Shape() bool { return m == ModeRectangle || m == ModeEllipse }

// Modes lists every mode in toolbar order.
func Modes() []Mode {
	return []Mode{ModeDraw, ModeErase, ModeRectangle, ModeEllipse, ModeColorPick}
}

// ParseMode accepts a mode name or a short alias.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "draw", "pen", "d":
		return ModeDraw, nil
	case "erase", "eraser", "e":
		return ModeErase, nil
	case "rectangle", "rect", "r":
		return ModeRectangle, nil
	case "ellipse", "circle", "o":
		return ModeEllipse, nil
	case "pick", "colorpick", "picker", "p":
		return ModeColorPick, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownMode, s)
}

// Config is the rendering descriptor derived from a mode.
type Config struct {
	Composite surface.Composite
	Width     int
	Cursor    string
}

// Widths holds the stroke width for each family of tools.
type Widths struct {
	Draw  int
	Erase int
	Shape int
}

// DefaultWidths returns the built-in stroke widths.
func DefaultWidths() Widths { return Widths{Draw: 2, Erase: 20, Shape: 2} }

// normalized replaces non-positive widths with the defaults.
func (w Widths) normalized() Widths {
	d := DefaultWidths()
	if w.Draw <= 0 {
		w.Draw = d.Draw
	}
	if w.Erase <= 0 {
		w.Erase = d.Erase
	}
	if w.Shape <= 0 {
		w.Shape = d.Shape
	}
	return w
}

// ConfigFor derives the configuration for m. It has no side effects.
func (w Widths) ConfigFor(m Mode) Config {
	w = w.normalized()
	switch m {
	case ModeErase:
		return Config{Composite: surface.CompositeErase, Width: w.Erase, Cursor: "eraser"}
	case ModeRectangle, ModeEllipse:
		return Config{Composite: surface.CompositePaint, Width: w.Shape, Cursor: "nw-resize"}
	case ModeColorPick:
		return Config{Composite: surface.CompositePaint, Width: w.Draw, Cursor: "picker"}
	default:
		return Config{Composite: surface.CompositePaint, Width: w.Draw, Cursor: "crosshair"}
	}
}

// ConfigFor derives the configuration for m using the default widths.
func ConfigFor(m Mode) Config { return DefaultWidths().ConfigFor(m) }
