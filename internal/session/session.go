// Package session ties the surface, tool controller, stroke engine and
// history together behind a single owner. A Session is driven from one
// goroutine; colour picks resolve on their own goroutine and are handed
// back through FinishPick.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"math"
	"os"

	"github.com/example/shineypaint/internal/filter"
	"github.com/example/shineypaint/internal/history"
	"github.com/example/shineypaint/internal/picker"
	"github.com/example/shineypaint/internal/stroke"
	"github.com/example/shineypaint/internal/surface"
	"github.com/example/shineypaint/internal/tool"
)

// ErrInvalidPoint rejects pointer coordinates that are not finite or lie
// far outside any plausible canvas.
var ErrInvalidPoint = errors.New("invalid pointer coordinates")

// maxCoord bounds accepted pointer coordinates. Points outside the surface
// but within this range are valid and simply clip.
const maxCoord = 1 << 20

// Config holds the startup parameters of a session.
type Config struct {
	Width        int
	Height       int
	Background   color.NRGBA
	Color        color.NRGBA
	Widths       tool.Widths
	HistoryLimit int
	// RevertPickOnCancel returns to the previous tool when a colour pick
	// is cancelled or fails.
	RevertPickOnCancel bool
}

// DefaultConfig is an 800x600 white canvas with black ink.
func DefaultConfig() Config {
	return Config{
		Width:      800,
		Height:     600,
		Background: color.NRGBA{255, 255, 255, 255},
		Color:      color.NRGBA{A: 255},
		Widths:     tool.DefaultWidths(),
	}
}

// Session owns every piece of mutable painting state.
type Session struct {
	cfg     Config
	surf    *surface.Surface
	hist    *history.History
	ctrl    *tool.Controller
	eng     *stroke.Engine
	sampler tool.Sampler
	image   image.Image
	verbose bool

	onChange func()
	onMode   func(tool.Mode, tool.Config)
	onColor  func(color.NRGBA)
}

// Option configures a Session.
type Option func(*Session)

// WithSampler enables the colour picker.
func WithSampler(s tool.Sampler) Option { return func(se *Session) { se.sampler = s } }

// WithImage starts from img instead of a blank canvas. The canvas takes the
// image's size.
func WithImage(img image.Image) Option { return func(se *Session) { se.image = img } }

// WithVerbose logs ignored pointer events.
func WithVerbose(v bool) Option { return func(se *Session) { se.verbose = v } }

// WithChangeListener is called after every change to the pixels.
func WithChangeListener(fn func()) Option { return func(se *Session) { se.onChange = fn } }

// WithModeListener is called after every tool change.
func WithModeListener(fn func(tool.Mode, tool.Config)) Option {
	return func(se *Session) { se.onMode = fn }
}

// WithColorListener is called whenever the stroke colour changes.
func WithColorListener(fn func(color.NRGBA)) Option {
	return func(se *Session) { se.onColor = fn }
}

// New builds a session. A blank canvas is filled with cfg.Background.
func New(cfg Config, opts ...Option) *Session {
	s := &Session{cfg: cfg}
	for _, o := range opts {
		o(s)
	}
	if s.image != nil {
		s.surf = surface.FromImage(s.image)
		b := s.surf.Bounds()
		s.cfg.Width, s.cfg.Height = b.Dx(), b.Dy()
		s.image = nil
	} else {
		s.surf = surface.New(cfg.Width, cfg.Height)
		s.surf.FillBackground(cfg.Background)
	}
	s.hist = history.New(s.surf, history.WithLimit(cfg.HistoryLimit))
	ctrlOpts := []tool.Option{
		tool.WithWidths(cfg.Widths),
		tool.WithColor(cfg.Color),
		tool.WithRevertOnCancel(cfg.RevertPickOnCancel),
		tool.WithModeListener(func(m tool.Mode, c tool.Config) {
			if s.onMode != nil {
				s.onMode(m, c)
			}
		}),
		tool.WithColorListener(func(c color.NRGBA) {
			if s.onColor != nil {
				s.onColor(c)
			}
		}),
	}
	if s.sampler != nil {
		ctrlOpts = append(ctrlOpts, tool.WithSampler(s.sampler))
	}
	s.ctrl = tool.NewController(ctrlOpts...)
	s.eng = stroke.New(s.surf, s.hist, s.ctrl)
	return s
}

func toPoint(x, y float64) (image.Point, error) {
	if math.IsNaN(x) || math.IsNaN(y) || math.Abs(x) > maxCoord || math.Abs(y) > maxCoord {
		return image.Point{}, fmt.Errorf("%w: (%v, %v)", ErrInvalidPoint, x, y)
	}
	return image.Pt(int(math.Floor(x)), int(math.Floor(y))), nil
}

// PointerDown starts a stroke or shape at (x, y).
func (s *Session) PointerDown(x, y float64) error {
	p, err := toPoint(x, y)
	if err != nil {
		return err
	}
	if !s.eng.Begin(p) {
		if s.verbose {
			log.Printf("pointer down at %v ignored in %s mode", p, s.ctrl.Mode())
		}
		return nil
	}
	s.changed()
	return nil
}

// PointerMove extends the open stroke. modifier is the aspect-lock key.
func (s *Session) PointerMove(x, y float64, modifier bool) error {
	p, err := toPoint(x, y)
	if err != nil {
		return err
	}
	s.eng.SetModifier(modifier)
	if s.eng.Extend(p) {
		s.changed()
	}
	return nil
}

// PointerUp commits the open stroke or shape.
func (s *Session) PointerUp() {
	if !s.eng.End() && s.verbose {
		log.Printf("pointer up without an active stroke")
	}
}

// PointerLeave ends the open stroke when the pointer exits the canvas.
func (s *Session) PointerLeave() { s.eng.Cancel() }

// Drawing reports whether a pointer session is open.
func (s *Session) Drawing() bool { return s.eng.Active() }

// SetMode switches tool. Entering tool.ModeColorPick returns the pending
// pick, which must be handed to FinishPick once its Done channel closes.
func (s *Session) SetMode(ctx context.Context, m tool.Mode) (*tool.Pick, error) {
	return s.ctrl.SetMode(ctx, m)
}

// FinishPick applies a resolved pick. Cancellation is silent; other
// failures are logged.
func (s *Session) FinishPick(p *tool.Pick) bool {
	if p == nil {
		return false
	}
	if res, ok := p.Result(); ok && res.Err != nil && !isCancel(res.Err) {
		log.Printf("color pick failed: %v", res.Err)
	}
	return s.ctrl.Finish(p)
}

// PickColor enters the picker, waits for the result and applies it.
func (s *Session) PickColor(ctx context.Context) error {
	p, err := s.ctrl.SetMode(ctx, tool.ModeColorPick)
	if err != nil {
		return err
	}
	res, err := p.Wait(ctx)
	if err != nil {
		p.Cancel()
		<-p.Done()
		s.ctrl.Finish(p)
		return err
	}
	s.FinishPick(p)
	return res.Err
}

func isCancel(err error) bool {
	return errors.Is(err, picker.ErrCancelled) || errors.Is(err, context.Canceled)
}

func (s *Session) SetColor(c color.NRGBA) { s.ctrl.SetColor(c) }
func (s *Session) Mode() tool.Mode { return s.ctrl.Mode() }
func (s *Session) Color() color.NRGBA { return s.ctrl.Color() }
func (s *Session) ToolConfig() tool.Config { return s.ctrl.Config() }
func (s *Session) CanPick() bool { return s.ctrl.CanPick() }
func (s *Session) CanUndo() bool { return s.hist.CanUndo() }
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }
func (s *Session) UndoDepth() int { return s.hist.UndoDepth() }
func (s *Session) RedoDepth() int { return s.hist.RedoDepth() }
func (s *Session) Background() color.NRGBA { return s.cfg.Background }

// ApplyFilter records the current canvas and applies k to it. An open
// pointer session is closed first.
func (s *Session) ApplyFilter(k filter.Kind) error {
	if !k.Valid() {
		return fmt.Errorf("%w %d", filter.ErrUnknownKind, int(k))
	}
	s.eng.End()
	s.hist.RecordBeforeMutation()
	if err := filter.Apply(s.surf, k); err != nil {
		return fmt.Errorf("apply %s: %w", k, err)
	}
	s.changed()
	return nil
}

// Clear records the current canvas and resets it to the background colour.
func (s *Session) Clear() {
	s.eng.End()
	s.hist.RecordBeforeMutation()
	s.surf.Clear()
	s.surf.FillBackground(s.cfg.Background)
	s.changed()
}

// Paste records the canvas and draws img over it from the top left corner.
func (s *Session) Paste(img image.Image) {
	if img == nil {
		return
	}
	s.eng.End()
	s.hist.RecordBeforeMutation()
	s.surf.DrawImage(img)
	s.changed()
}

// Undo reverts the last mutation. It reports false when there is nothing to
// undo.
func (s *Session) Undo() bool {
	s.eng.End()
	if !s.hist.Undo() {
		return false
	}
	s.changed()
	return true
}

// Redo re-applies the last undone mutation.
func (s *Session) Redo() bool {
	s.eng.End()
	if !s.hist.Redo() {
		return false
	}
	s.changed()
	return true
}

// Surface exposes the canvas for reading. Callers must not draw on it.
func (s *Session) Surface() *surface.Surface { return s.surf }

// Snapshot copies the canvas.
func (s *Session) Snapshot() surface.Snapshot { return s.surf.Snapshot() }

// EncodePNG writes the canvas as PNG.
func (s *Session) EncodePNG(w io.Writer) error { return s.surf.EncodePNG(w) }

// SavePNG writes the canvas to path.
func (s *Session) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := s.surf.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
