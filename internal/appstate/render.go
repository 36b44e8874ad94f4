package appstate

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	"github.com/anthonynsimon/bild/clone"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/shineypaint/internal/render"
)

func (a *AppState) paint(s screen.Screen, w screen.Window) {
	if a.layout.width <= 0 || a.layout.height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{a.layout.width, a.layout.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	a.render(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// render draws a full frame into dst.
func (a *AppState) render(dst *image.RGBA) {
	th := a.theme
	fill(dst, dst.Bounds(), th.Background)

	rect := a.layout.canvasRect()
	if a.shadow == nil || a.shadow.Size() != rect.Size() {
		a.shadow = render.NewShadow(rect.Size(), render.DefaultShadowOptions())
	}
	a.shadow.Draw(dst, rect.Min)

	// transparent pixels show a checkerboard behind the canvas
	canvas := rect.Intersect(a.layout.workArea())
	drawCheckerboard(dst, canvas, checkerSize, th.CheckerLight, th.CheckerDark)
	src := clone.AsRGBA(a.sess.Surface().Image())
	xdraw.NearestNeighbor.Scale(dst, rect, src, src.Bounds(), draw.Over, nil)
	// chrome is drawn last so a zoomed canvas never covers it
	a.drawChrome(dst)
}

func (a *AppState) drawChrome(dst *image.RGBA) {
	th := a.theme
	l := a.layout
	fill(dst, image.Rect(0, 0, l.width, titleHeight), th.ToolbarBackground)
	drawText(dst, appTitle, image.Pt(4, titleHeight-6), th.Foreground)
	fill(dst, image.Rect(0, titleHeight, l.toolbar, l.height), th.ToolbarBackground)

	mode := a.sess.Mode()
	for i, cb := range a.tools {
		state := StateDefault
		if tb, ok := cb.Button.(*ToolButton); ok && tb.mode == mode {
			state = StatePressed
		} else if i == a.hoverButton {
			state = StateHover
		}
		cb.Draw(dst, state)
	}
	for i, cb := range a.buttons {
		state := StateDefault
		if ab, ok := cb.Button.(*ActionButton); ok && !ab.Enabled() {
			state = StateDisabled
		} else if len(a.tools)+i == a.hoverButton {
			state = StateHover
		}
		cb.Draw(dst, state)
	}

	current := a.sess.Color()
	for i, r := range a.swatches {
		c := a.palette[i].Color
		fill(dst, r, c)
		switch {
		case c == current:
			drawRect(dst, r.Inset(-1), th.ButtonBorder, 2)
		case i == a.hoverSwatch:
			drawRect(dst, r, th.ButtonBackgroundHover, 1)
		}
	}
	if n := len(a.swatches); n > 0 {
		y := a.swatches[n-1].Max.Y + sectionGap
		r := image.Rect(4, y, l.toolbar-4, y+swatchSize)
		fill(dst, r, current)
		drawRect(dst, r, th.ButtonBorder, 1)
	}

	status := image.Rect(l.toolbar, l.height-statusHeight, l.width, l.height)
	fill(dst, status, th.StatusBackground)
	drawText(dst, a.status(), image.Pt(status.Min.X+4, status.Max.Y-6), th.StatusText)
}

func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, &image.Uniform{c}, image.Point{}, draw.Src)
}

func drawText(dst draw.Image, s string, dot image.Point, c color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: basicfont.Face7x13,
		Dot: fixed.P(dot.X, dot.Y)}
	d.DrawString(s)
}

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.RGBA) {
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := dark
			if (((x-rect.Min.X)/size)+((y-rect.Min.Y)/size))%2 == 0 {
				c = light
			}
			dst.SetRGBA(x, y, c)
		}
	}
}
