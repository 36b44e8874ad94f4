// Package appstate runs the paint window. Every user action is forwarded to
// a session.Session; the window only owns layout and presentation.
package appstate

import (
	"context"
	"fmt"
	"image"
	"log"
	"strings"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/shineypaint/internal/clipboard"
	"github.com/example/shineypaint/internal/filter"
	"github.com/example/shineypaint/internal/notify"
	"github.com/example/shineypaint/internal/render"
	"github.com/example/shineypaint/internal/session"
	"github.com/example/shineypaint/internal/theme"
	"github.com/example/shineypaint/internal/tool"
)

const appTitle = "ShineyPaint"

// messageDuration is how long status messages stay visible.
const messageDuration = 2 * time.Second

// pickEvent is posted to the window when a colour pick resolves.
type pickEvent struct{ pick *tool.Pick }

// AppState holds the paint window state.
type AppState struct {
	sess     *session.Session
	theme    *theme.Theme
	output   string
	notifier *notify.Notifier
	palette  []PaletteColor
	copyFn   func(image.Image) error
	pasteFn  func() (image.Image, error)
	onClose  func()

	// post delivers an event to the window loop. It is safe to call from
	// any goroutine.
	post func(interface{})

	layout       layout
	tools        []*CacheButton
	buttons      []*CacheButton
	swatches     []image.Rectangle
	shadow       *render.Shadow
	hoverButton  int
	hoverSwatch  int
	pending      *tool.Pick
	message      string
	messageUntil time.Time
	quit         bool

	actions        map[string]func()
	keyboardAction map[KeyShortcut]string
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithTheme sets the colours of the window chrome.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.theme = t } }

// WithOutput sets the file written by the save action.
func WithOutput(out string) Option { return func(a *AppState) { a.output = out } }

// WithNotifier enables desktop notifications.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithPalette replaces the toolbar swatches.
func WithPalette(p []PaletteColor) Option { return func(a *AppState) { a.palette = p } }

// WithClipboard replaces the function used by the copy action.
func WithClipboard(fn func(image.Image) error) Option { return func(a *AppState) { a.copyFn = fn } }

// WithPasteSource replaces the function used by the paste action.
func WithPasteSource(fn func() (image.Image, error)) Option {
	return func(a *AppState) { a.pasteFn = fn }
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates the window state for sess.
func New(sess *session.Session, opts ...Option) *AppState {
	a := &AppState{
		sess:        sess,
		theme:       theme.Default(),
		output:      "shineypaint.png",
		palette:     DefaultPalette(),
		copyFn:      clipboard.WriteImage,
		pasteFn:     clipboard.ReadImage,
		post:        func(interface{}) {},
		hoverButton: -1,
		hoverSwatch: -1,
	}
	for _, o := range opts {
		o(a)
	}
	if a.theme == nil {
		a.theme = theme.Default()
	}
	b := sess.Surface().Bounds()
	a.layout = layout{canvas: image.Pt(b.Dx(), b.Dy()), zoom: 1}
	a.configure()
	return a
}

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

var modeKeys = map[tool.Mode]rune{
	tool.ModeDraw:      'd',
	tool.ModeErase:     'e',
	tool.ModeRectangle: 'r',
	tool.ModeEllipse:   'o',
	tool.ModeColorPick: 'p',
}

var modeLabels = map[tool.Mode]string{
	tool.ModeDraw:      "D:Draw",
	tool.ModeErase:     "E:Erase",
	tool.ModeRectangle: "R:Rect",
	tool.ModeEllipse:   "O:Ellipse",
	tool.ModeColorPick: "P:Pick",
}

var filterKeys = map[filter.Kind]rune{
	filter.Invert:         'i',
	filter.Grayscale:      'g',
	filter.FlipHorizontal: 'h',
	filter.FlipVertical:   'v',
}

var filterLabels = map[filter.Kind]string{
	filter.Invert:         "I:Invert",
	filter.Grayscale:      "G:Gray",
	filter.FlipHorizontal: "H:Flip H",
	filter.FlipVertical:   "V:Flip V",
}

// configure registers every action, its shortcuts and its toolbar button.
func (a *AppState) configure() {
	a.actions = map[string]func(){}
	a.keyboardAction = map[KeyShortcut]string{}
	a.tools = a.tools[:0]
	a.buttons = a.buttons[:0]

	register := func(name string, keys KeyboardShortcuts, fn func()) {
		a.actions[name] = fn
		if keys != nil {
			for _, sc := range keys.KeyboardShortcuts() {
				a.keyboardAction[sc] = name
			}
		}
	}
	button := func(text, action string, enabled func() bool) {
		a.buttons = append(a.buttons, &CacheButton{Button: &ActionButton{
			label:      label{text: text, theme: a.theme},
			action:     action,
			onActivate: a.trigger,
			enabled:    enabled,
		}})
	}

	labels := []string{}
	for _, m := range tool.Modes() {
		if m == tool.ModeColorPick && !a.sess.CanPick() {
			continue
		}
		mode := m
		register(mode.String(), shortcutList{{Rune: modeKeys[mode]}}, func() { a.selectMode(mode) })
		a.tools = append(a.tools, &CacheButton{Button: &ToolButton{
			label:    label{text: modeLabels[mode], theme: a.theme},
			mode:     mode,
			onSelect: a.selectMode,
		}})
		labels = append(labels, modeLabels[mode])
	}

	register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}}, a.undo)
	register("redo", shortcutList{
		{Rune: 'y', Modifiers: key.ModControl},
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift},
	}, a.redo)
	register("clear", shortcutList{{Code: key.CodeDeleteForward}}, a.clear)
	button("^Z:Undo", "undo", a.sess.CanUndo)
	button("^Y:Redo", "redo", a.sess.CanRedo)
	button("Del:Clear", "clear", nil)
	labels = append(labels, "^Z:Undo", "^Y:Redo", "Del:Clear")

	for _, k := range filter.Kinds() {
		kind := k
		register(kind.String(), shortcutList{{Rune: filterKeys[kind]}}, func() { a.applyFilter(kind) })
		button(filterLabels[kind], kind.String(), nil)
		labels = append(labels, filterLabels[kind])
	}

	register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, a.save)
	register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, a.copy)
	register("paste", shortcutList{{Rune: 'v', Modifiers: key.ModControl}}, a.paste)
	register("cancel", shortcutList{{Code: key.CodeEscape}}, a.cancelPick)
	register("quit", shortcutList{{Rune: 'q'}}, func() { a.quit = true })
	register("zoomin", shortcutList{{Rune: '+'}, {Rune: '='}}, func() { a.setZoom(a.layout.zoom * 2) })
	register("zoomout", shortcutList{{Rune: '-'}}, func() { a.setZoom(a.layout.zoom / 2) })
	register("zoomfit", shortcutList{{Rune: '0'}}, func() { a.setZoom(a.layout.fitZoom()) })
	button("^S:Save", "save", nil)
	button("^C:Copy", "copy", nil)
	button("^V:Paste", "paste", nil)
	labels = append(labels, "^S:Save", "^C:Copy", "^V:Paste")

	a.layout.toolbar = measureToolbar(appTitle, labels)
	a.relayout()
}

func (a *AppState) relayout() {
	y := layoutButtons(a.tools, a.layout.toolbar, titleHeight)
	y = layoutButtons(a.buttons, a.layout.toolbar, y+sectionGap)
	a.swatches = paletteRects(len(a.palette), a.layout.toolbar, y+sectionGap)
}

// trigger runs the named action. Unknown names are ignored.
func (a *AppState) trigger(name string) {
	if fn, ok := a.actions[name]; ok {
		fn()
	}
}

func (a *AppState) flash(format string, args ...interface{}) {
	a.message = fmt.Sprintf(format, args...)
	a.messageUntil = time.Now().Add(messageDuration)
	log.Print(a.message)
}

func (a *AppState) selectMode(m tool.Mode) {
	p, err := a.sess.SetMode(context.Background(), m)
	if err != nil {
		a.flash("%s: %v", m, err)
		return
	}
	if p == nil {
		a.pending = nil
		return
	}
	a.pending = p
	post := a.post
	go func() {
		<-p.Done()
		post(pickEvent{pick: p})
	}()
}

func (a *AppState) finishPick(p *tool.Pick) {
	if p == a.pending {
		a.pending = nil
	}
	if !a.sess.FinishPick(p) {
		return
	}
	c := a.sess.Color()
	a.flash("picked #%02X%02X%02X", c.R, c.G, c.B)
	a.notifier.Pick(c)
}

func (a *AppState) cancelPick() {
	if a.pending != nil {
		a.pending.Cancel()
	}
}

func (a *AppState) undo() {
	if !a.sess.Undo() {
		a.flash("nothing to undo")
	}
}

func (a *AppState) redo() {
	if !a.sess.Redo() {
		a.flash("nothing to redo")
	}
}

func (a *AppState) clear() { a.sess.Clear() }

func (a *AppState) applyFilter(k filter.Kind) {
	if err := a.sess.ApplyFilter(k); err != nil {
		a.flash("filter: %v", err)
	}
}

func (a *AppState) save() {
	if err := a.sess.SavePNG(a.output); err != nil {
		a.flash("save: %v", err)
		return
	}
	a.flash("saved %s", a.output)
	a.notifier.Save(a.output, a.sess.Surface().Image())
}

func (a *AppState) copy() {
	img := a.sess.Surface().Image()
	if err := a.copyFn(img); err != nil {
		a.flash("copy: %v", err)
		return
	}
	a.flash("image copied to clipboard")
	a.notifier.Copy(img)
}

func (a *AppState) paste() {
	img, err := a.pasteFn()
	if err != nil {
		a.flash("paste: %v", err)
		return
	}
	a.sess.Paste(img)
}

func (a *AppState) setZoom(z float64) {
	a.layout.zoom = clampZoom(z)
}

func (a *AppState) setColor(c PaletteColor) {
	a.sess.SetColor(c.Color)
}

// handleKey runs the action bound to a key press.
func (a *AppState) handleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	r := unicode.ToLower(e.Rune)
	for _, ks := range []KeyShortcut{
		{Code: e.Code, Modifiers: e.Modifiers},
		{Rune: r, Modifiers: e.Modifiers},
		{Rune: r, Modifiers: e.Modifiers &^ key.ModShift},
	} {
		if ks.Rune <= 0 && ks.Code == key.CodeUnknown {
			continue
		}
		if action, ok := a.keyboardAction[ks]; ok {
			a.trigger(action)
			return true
		}
	}
	return false
}

// handleMouse routes pointer input to the toolbar or the canvas.
func (a *AppState) handleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	press := e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress
	release := e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease

	if a.sess.Drawing() {
		switch {
		case release:
			a.sess.PointerUp()
		case !p.In(a.layout.workArea()):
			a.sess.PointerLeave()
		default:
			x, y := a.layout.toCanvas(e.X, e.Y)
			if err := a.sess.PointerMove(x, y, e.Modifiers&key.ModShift != 0); err != nil {
				log.Printf("pointer move: %v", err)
			}
		}
		return true
	}

	if p.X < a.layout.toolbar {
		return a.handleToolbar(p, press)
	}
	changed := a.hoverButton != -1 || a.hoverSwatch != -1
	a.hoverButton, a.hoverSwatch = -1, -1
	if press && p.In(a.layout.workArea()) {
		x, y := a.layout.toCanvas(e.X, e.Y)
		if err := a.sess.PointerDown(x, y); err != nil {
			log.Printf("pointer down: %v", err)
			return changed
		}
		return true
	}
	return changed
}

func (a *AppState) allButtons() []*CacheButton {
	out := make([]*CacheButton, 0, len(a.tools)+len(a.buttons))
	out = append(out, a.tools...)
	return append(out, a.buttons...)
}

func (a *AppState) handleToolbar(p image.Point, press bool) bool {
	hoverButton, hoverSwatch := -1, -1
	for i, b := range a.allButtons() {
		if p.In(b.Rect()) {
			hoverButton = i
			if press {
				b.Activate()
			}
			break
		}
	}
	if hoverButton == -1 {
		if i := indexAt(a.swatches, p); i >= 0 {
			hoverSwatch = i
			if press {
				a.setColor(a.palette[i])
			}
		}
	}
	changed := press || hoverButton != a.hoverButton || hoverSwatch != a.hoverSwatch
	a.hoverButton, a.hoverSwatch = hoverButton, hoverSwatch
	return changed
}

// handle processes one window event and reports whether a repaint is due.
func (a *AppState) handle(e interface{}) bool {
	switch e := e.(type) {
	case key.Event:
		return a.handleKey(e)
	case mouse.Event:
		return a.handleMouse(e)
	case pickEvent:
		a.finishPick(e.pick)
		return true
	case size.Event:
		a.layout.width, a.layout.height = e.WidthPx, e.HeightPx
		return true
	}
	return false
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main drives the window until it is closed or the quit action runs.
func (a *AppState) Main(s screen.Screen) {
	width := a.layout.toolbar + a.layout.canvas.X
	height := titleHeight + a.layout.canvas.Y + statusHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: appTitle})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer func() {
		a.cancelPick()
		if a.onClose != nil {
			a.onClose()
		}
	}()

	a.layout.width, a.layout.height = width, height
	a.post = func(e interface{}) { w.Send(e) }

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case paint.Event:
			a.paint(s, w)
		case error:
			log.Printf("window: %v", e)
		default:
			if a.handle(e) {
				w.Send(paint.Event{})
			}
			if a.quit {
				return
			}
		}
	}
}

// status is the text shown in the bottom bar.
func (a *AppState) status() string {
	if a.message != "" && time.Now().Before(a.messageUntil) {
		return a.message
	}
	c := a.sess.Color()
	parts := []string{
		fmt.Sprintf("%s %dpx", a.sess.Mode(), a.sess.ToolConfig().Width),
		fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B),
		fmt.Sprintf("undo %d redo %d", a.sess.UndoDepth(), a.sess.RedoDepth()),
		fmt.Sprintf("%.0f%%", a.layout.zoom*100),
	}
	return strings.Join(parts, "  ")
}
