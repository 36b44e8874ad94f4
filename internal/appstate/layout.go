package appstate

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	titleHeight  = 20
	statusHeight = 20
	buttonHeight = 22
	sectionGap   = 6
	swatchSize   = 16
	swatchGap    = 2
	checkerSize  = 8
	minZoom      = 0.25
	maxZoom      = 16
)

// PaletteColor is a named swatch in the toolbar.
type PaletteColor struct {
	Name  string
	Color color.NRGBA
}

var paletteNames = []string{
	"black", "white", "red", "lime",
	"blue", "yellow", "cyan", "magenta",
	"maroon", "green", "navy", "olive",
	"teal", "purple", "silver", "gray",
}

// DefaultPalette returns the sixteen basic web colours.
func DefaultPalette() []PaletteColor {
	out := make([]PaletteColor, 0, len(paletteNames))
	for _, name := range paletteNames {
		c := colornames.Map[name]
		out = append(out, PaletteColor{Name: name, Color: color.NRGBA{c.R, c.G, c.B, c.A}})
	}
	return out
}

// measureToolbar returns a toolbar width that fits the title and every
// button label.
func measureToolbar(title string, labels []string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	max := d.MeasureString(title).Ceil() + 8
	for _, lbl := range labels {
		if w := d.MeasureString(lbl).Ceil() + 8; w > max {
			max = w
		}
	}
	if min := 4*(swatchSize+swatchGap) + 4; max < min {
		max = min
	}
	return max
}

// layout holds the window geometry for one frame.
type layout struct {
	width, height int
	toolbar       int
	canvas        image.Point
	zoom          float64
}

// canvasRect is where the canvas is drawn. It is anchored to the top left
// of the work area so the image does not jump while the window resizes.
func (l layout) canvasRect() image.Rectangle {
	x0, y0 := l.toolbar, titleHeight
	w := int(float64(l.canvas.X) * l.zoom)
	h := int(float64(l.canvas.Y) * l.zoom)
	return image.Rect(x0, y0, x0+w, y0+h)
}

// workArea is the region right of the toolbar between title and status bars.
func (l layout) workArea() image.Rectangle {
	return image.Rect(l.toolbar, titleHeight, l.width, l.height-statusHeight)
}

// toCanvas maps a window position to canvas coordinates.
func (l layout) toCanvas(x, y float32) (float64, float64) {
	r := l.canvasRect()
	return (float64(x) - float64(r.Min.X)) / l.zoom, (float64(y) - float64(r.Min.Y)) / l.zoom
}

// fitZoom returns the largest zoom, capped at 1, that shows the whole canvas.
func (l layout) fitZoom() float64 {
	area := l.workArea()
	if l.canvas.X <= 0 || l.canvas.Y <= 0 || area.Dx() <= 0 || area.Dy() <= 0 {
		return 1
	}
	z := math.Min(float64(area.Dx())/float64(l.canvas.X), float64(area.Dy())/float64(l.canvas.Y))
	return clampZoom(math.Min(z, 1))
}

func clampZoom(z float64) float64 {
	if z < minZoom {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}

// layoutButtons stacks buttons down the toolbar starting at y and returns
// the y below the last one.
func layoutButtons(buttons []*CacheButton, width, y int) int {
	for _, b := range buttons {
		b.SetRect(image.Rect(0, y, width, y+buttonHeight))
		y += buttonHeight
	}
	return y
}

// paletteRects lays out n swatches in rows starting at y.
func paletteRects(n, width, y int) []image.Rectangle {
	cols := (width - 4) / (swatchSize + swatchGap)
	if cols < 1 {
		cols = 1
	}
	out := make([]image.Rectangle, n)
	for i := range out {
		x0 := 4 + (i%cols)*(swatchSize+swatchGap)
		y0 := y + (i/cols)*(swatchSize+swatchGap)
		out[i] = image.Rect(x0, y0, x0+swatchSize, y0+swatchSize)
	}
	return out
}

func indexAt(rects []image.Rectangle, p image.Point) int {
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}
