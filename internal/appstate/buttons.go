package appstate

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/shineypaint/internal/theme"
	"github.com/example/shineypaint/internal/tool"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
	StateDisabled
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [4]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [4]*image.RGBA{}
	}
}

func (cb *CacheButton) Activate() { cb.Button.Activate() }

// label is the shared face of toolbar buttons.
type label struct {
	text  string
	rect  image.Rectangle
	theme *theme.Theme
}

func (l *label) draw(dst *image.RGBA, state ButtonState) {
	th := l.theme
	bg, fg := th.ButtonBackground, th.ButtonText
	switch state {
	case StateHover:
		bg = th.ButtonBackgroundHover
	case StatePressed:
		bg = th.ButtonBackgroundActive
	case StateDisabled:
		fg = blend(th.ButtonText, th.ButtonBackground)
	}
	draw.Draw(dst, l.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	drawRect(dst, l.rect, th.ButtonBorder, 1)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13,
		Dot: fixed.P(l.rect.Min.X+4, l.rect.Min.Y+(l.rect.Dy()+9)/2)}
	d.DrawString(l.text)
}

// ToolButton selects a painting mode.
type ToolButton struct {
	label
	mode tool.Mode
	// onSelect is called when the button is activated.
	onSelect func(tool.Mode)
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) { tb.draw(dst, state) }
func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }
func (tb *ToolButton) SetRect(r image.Rectangle) { tb.rect = r }

func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect(tb.mode)
	}
}

// ActionButton runs a named action, such as undo or a filter.
type ActionButton struct {
	label
	action     string
	onActivate func(string)
	// enabled reports whether the action can currently run.
	enabled func() bool
}

func (ab *ActionButton) Draw(dst *image.RGBA, state ButtonState) { ab.draw(dst, state) }
func (ab *ActionButton) Rect() image.Rectangle { return ab.rect }
func (ab *ActionButton) SetRect(r image.Rectangle) { ab.rect = r }

func (ab *ActionButton) Activate() {
	if ab.enabled != nil && !ab.enabled() {
		return
	}
	if ab.onActivate != nil {
		ab.onActivate(ab.action)
	}
}

// Enabled reports whether the button currently accepts clicks.
func (ab *ActionButton) Enabled() bool { return ab.enabled == nil || ab.enabled() }

func blend(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((int(a.R) + int(b.R)) / 2),
		G: uint8((int(a.G) + int(b.G)) / 2),
		B: uint8((int(a.B) + int(b.B)) / 2),
		A: 255,
	}
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	u := &image.Uniform{col}
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thick, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Max.X-thick, rect.Min.Y, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
}
