// Package notify announces finished canvas operations on the desktop. Each
// notification carries a small picture of what happened: a thumbnail of the
// canvas for saves and copies, a colour swatch for picks.
package notify

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/example/shineypaint/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when the canvas is written to disk.
	EventSave Event = "save"
	// EventCopy fires when the canvas is copied to the clipboard.
	EventCopy Event = "copy"
	// EventPick fires when a colour is picked from the screen.
	EventPick Event = "pick"
)

const (
	thumbnailSize = 64
	swatchSize    = 32
)

var send = platform.Notify

// events lists every trigger with its default body and the environment
// variable that overrides it.
var events = []struct {
	event    Event
	env      string
	template string
}{
	{EventSave, "SHINEYPAINT_NOTIFY_SAVE_TEXT", "Saved %s"},
	{EventCopy, "SHINEYPAINT_NOTIFY_COPY_TEXT", "Copied %s to clipboard"},
	{EventPick, "SHINEYPAINT_NOTIFY_PICK_TEXT", "Picked %s"},
}

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences holds the title and per-event body templates.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the built in wording.
func DefaultPreferences() Preferences {
	prefs := Preferences{Title: "ShineyPaint", Events: make(map[Event]EventPreference, len(events))}
	for _, e := range events {
		prefs.Events[e.event] = EventPreference{Template: e.template}
	}
	return prefs
}

// LoadPreferences applies SHINEYPAINT_NOTIFY_* overrides to the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("SHINEYPAINT_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for _, e := range events {
		if v := strings.TrimSpace(os.Getenv(e.env)); v != "" {
			prefs.Events[e.event] = EventPreference{Template: v}
		}
	}
	return prefs
}

// Notifier sends notifications for the events that were enabled. A nil
// Notifier is silent.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool)}
}

// Enable toggles a single event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Save reports the absolute path written. canvas, when given, becomes the
// icon.
func (n *Notifier) Save(path string, canvas image.Image) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	if abs, err := filepath.Abs(detail); err == nil {
		detail = abs
	}
	n.dispatch(EventSave, detail, thumbnail(canvas))
}

// Copy reports the size of the copied canvas.
func (n *Notifier) Copy(canvas image.Image) {
	if !n.enabledFor(EventCopy) {
		return
	}
	detail := "image"
	if canvas != nil {
		b := canvas.Bounds()
		detail = fmt.Sprintf("%dx%d image", b.Dx(), b.Dy())
	}
	n.dispatch(EventCopy, detail, thumbnail(canvas))
}

// Pick reports a picked colour as #RRGGBB.
func (n *Notifier) Pick(c color.NRGBA) {
	if !n.enabledFor(EventPick) {
		return
	}
	sw := image.NewNRGBA(image.Rect(0, 0, swatchSize, swatchSize))
	c.A = 255
	draw.Draw(sw, sw.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	n.dispatch(EventPick, fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B), sw)
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, icon image.Image) {
	template := strings.TrimSpace(n.prefs.Events[event].Template)
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, detail))
	if body == "" {
		return
	}
	opts := platform.Options{}
	if icon != nil {
		path, cleanup, err := writeIcon(icon)
		if err != nil {
			log.Printf("notification icon: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	if err := send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

// thumbnail scales img to fit a thumbnailSize square, keeping its aspect
// ratio.
func thumbnail(img image.Image) image.Image {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	w, h := thumbnailSize, thumbnailSize
	if b.Dx() > b.Dy() {
		h = max(1, b.Dy()*thumbnailSize/b.Dx())
	} else {
		w = max(1, b.Dx()*thumbnailSize/b.Dy())
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// writeIcon stores img as a temporary PNG. The returned func removes it.
func writeIcon(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "shineypaint-icon-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove icon: %v", err)
		}
	}
	return path, cleanup, nil
}
