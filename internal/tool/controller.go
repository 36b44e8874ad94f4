package tool

import (
	"context"
	"errors"
	"image/color"
)

// ErrPickUnavailable is returned when colour picking is requested on a host
// without a sampler.
var ErrPickUnavailable = errors.New("color picking is not available")

// Sampler asks the host for a single colour chosen by the user.
type Sampler interface {
	Available() bool
	Sample(ctx context.Context) (color.NRGBA, error)
}

// PickResult is the outcome of a colour pick. Err is non-nil when the user
// cancelled or the host failed.
type PickResult struct {
	Color color.NRGBA
	Err   error
}

// Pick is a single outstanding colour sample request.
type Pick struct {
	done     chan struct{}
	res      PickResult
	cancel   context.CancelFunc
	finished bool
}

// Done is closed once the sample has resolved.
func (p *Pick) Done() <-chan struct{} { return p.done }

// Result returns the outcome once Done is closed. ok is false while the
// request is still running.
func (p *Pick) Result() (res PickResult, ok bool) {
	select {
	case <-p.done:
		return p.res, true
	default:
		return PickResult{}, false
	}
}

// Cancel abandons the request. The result then carries the context error
// unless the sampler already answered.
func (p *Pick) Cancel() { p.cancel() }

// Wait blocks until the pick resolves or ctx ends.
func (p *Pick) Wait(ctx context.Context) (PickResult, error) {
	select {
	case <-p.done:
		return p.res, nil
	case <-ctx.Done():
		return PickResult{}, ctx.Err()
	}
}

// Controller owns the active mode, the mode to return to after a colour
// pick, and the stroke colour. It is not safe for concurrent use; the pick
// goroutine only ever touches its own Pick.
type Controller struct {
	mode     Mode
	previous Mode
	config   Config
	color    color.NRGBA
	widths   Widths
	sampler  Sampler
	pending  *Pick
	revert   bool

	onMode  func(Mode, Config)
	onColor func(color.NRGBA)
}

// Option configures a Controller.
type Option func(*Controller)

// WithSampler enables colour picking through s.
func WithSampler(s Sampler) Option { return func(c *Controller) { c.sampler = s } }

// WithWidths overrides the per-tool stroke widths.
func WithWidths(w Widths) Option { return func(c *Controller) { c.widths = w.normalized() } }

// WithRevertOnCancel makes a cancelled or failed pick return to the
// previous mode instead of staying in ModeColorPick.
func WithRevertOnCancel(v bool) Option { return func(c *Controller) { c.revert = v } }

// WithColor sets the initial stroke colour.
func WithColor(col color.NRGBA) Option { return func(c *Controller) { c.color = col } }

// WithModeListener is called after every mode change with the new config.
func WithModeListener(fn func(Mode, Config)) Option {
	return func(c *Controller) { c.onMode = fn }
}

// WithColorListener is called whenever the stroke colour changes.
func WithColorListener(fn func(color.NRGBA)) Option {
	return func(c *Controller) { c.onColor = fn }
}

// NewController starts in ModeDraw with opaque black ink.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		mode:     ModeDraw,
		previous: ModeDraw,
		color:    color.NRGBA{A: 255},
		widths:   DefaultWidths(),
	}
	for _, o := range opts {
		o(c)
	}
	c.config = c.widths.ConfigFor(c.mode)
	return c
}

// Mode is the active tool.
func (c *Controller) Mode() Mode { return c.mode }

// PreviousMode is the tool a successful pick returns to.
func (c *Controller) PreviousMode() Mode { return c.previous }

// Config is the configuration of the active tool.
func (c *Controller) Config() Config { return c.config }

// Color is the stroke colour.
func (c *Controller) Color() color.NRGBA { return c.color }

// Widths returns the configured stroke widths.
func (c *Controller) Widths() Widths { return c.widths }

// Pending returns the outstanding pick, or nil.
func (c *Controller) Pending() *Pick { return c.pending }

// ConfigFor derives the configuration m would get with these widths.
func (c *Controller) ConfigFor(m Mode) Config { return c.widths.ConfigFor(m) }

// CanPick reports whether the pick tool should be offered at all.
func (c *Controller) CanPick() bool {
	return c.sampler != nil && c.sampler.Available()
}

// SetColor adopts col as the stroke colour.
func (c *Controller) SetColor(col color.NRGBA) {
	c.color = col
	if c.onColor != nil {
		c.onColor(col)
	}
}

// SetMode switches to target. Entering ModeColorPick starts a sample
// request and returns it; the caller hands it to Finish once Done is
// closed. Any other target returns a nil Pick.
func (c *Controller) SetMode(ctx context.Context, target Mode) (*Pick, error) {
	if !target.Valid() {
		return nil, ErrUnknownMode
	}
	if target != ModeColorPick {
		// an outstanding pick may still deliver a colour but no longer
		// owns the mode
		c.pending = nil
		c.apply(target)
		return nil, nil
	}
	if !c.CanPick() {
		return nil, ErrPickUnavailable
	}
	if c.mode != ModeColorPick {
		c.previous = c.mode
	}
	if c.pending != nil {
		c.pending.Cancel()
	}
	c.apply(ModeColorPick)
	c.pending = c.startPick(ctx)
	return c.pending, nil
}

func (c *Controller) startPick(ctx context.Context) *Pick {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	p := &Pick{done: make(chan struct{}), cancel: cancel}
	sampler := c.sampler
	go func() {
		defer close(p.done)
		defer cancel()
		col, err := sampler.Sample(ctx)
		p.res = PickResult{Color: col, Err: err}
	}()
	return p
}

// Finish applies a resolved pick. A successful sample becomes the stroke
// colour and, if p is still the controller's pending pick, the previous mode
// is restored. A cancelled or failed pick changes nothing and the
// controller stays in ModeColorPick unless WithRevertOnCancel is set. Finish reports whether a colour was
// adopted; unresolved or already finished picks are ignored.
func (c *Controller) Finish(p *Pick) bool {
	if p == nil || p.finished {
		return false
	}
	res, ok := p.Result()
	if !ok {
		return false
	}
	p.finished = true
	current := p == c.pending
	if current {
		c.pending = nil
	}
	if res.Err != nil {
		if current && c.revert && c.mode == ModeColorPick {
			c.apply(c.previous)
		}
		return false
	}
	c.SetColor(res.Color)
	if current && c.mode == ModeColorPick {
		c.apply(c.previous)
	}
	return true
}

func (c *Controller) apply(m Mode) {
	c.mode = m
	c.config = c.widths.ConfigFor(m)
	if c.onMode != nil {
		c.onMode(m, c.config)
	}
}
