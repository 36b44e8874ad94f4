// Package picker asks the desktop for a colour chosen by the user. The
// samplers satisfy tool.Sampler.
package picker

import (
	"context"
	"errors"
	"image/color"
	"os"
)

var (
	// ErrCancelled is returned when the user dismissed the picker.
	ErrCancelled = errors.New("color pick cancelled")
	// ErrUnavailable is returned by a sampler with no backend.
	ErrUnavailable = errors.New("no color picker available")
)

// Sampler mirrors tool.Sampler so this package does not import it.
type Sampler interface {
	Available() bool
	Sample(ctx context.Context) (color.NRGBA, error)
}

var lookupEnv = os.Getenv

// Func adapts a function into an always-available sampler.
type Func func(ctx context.Context) (color.NRGBA, error)

func (f Func) Available() bool { return f != nil }

func (f Func) Sample(ctx context.Context) (color.NRGBA, error) {
	if f == nil {
		return color.NRGBA{}, ErrUnavailable
	}
	return f(ctx)
}

// Static answers every request with the same result.
type Static struct {
	Color color.NRGBA
	Err   error
}

func (s Static) Available() bool { return true }

func (s Static) Sample(ctx context.Context) (color.NRGBA, error) {
	if err := ctx.Err(); err != nil {
		return color.NRGBA{}, err
	}
	return s.Color, s.Err
}

// Chain delegates to the first available sampler.
type Chain []Sampler

func (c Chain) Available() bool {
	for _, s := range c {
		if s != nil && s.Available() {
			return true
		}
	}
	return false
}

func (c Chain) Sample(ctx context.Context) (color.NRGBA, error) {
	for _, s := range c {
		if s != nil && s.Available() {
			return s.Sample(ctx)
		}
	}
	return color.NRGBA{}, ErrUnavailable
}

// Default returns the desktop portal picker followed by the X11 fallback.
func Default() Chain {
	return Chain{NewPortal(), NewX11()}
}
