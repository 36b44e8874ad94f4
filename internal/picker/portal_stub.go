//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package picker

import (
	"context"
	"image/color"
)

// Portal is unavailable outside freedesktop platforms.
type Portal struct{}

func NewPortal() *Portal { return &Portal{} }

func (p *Portal) Available() bool { return false }

func (p *Portal) Sample(context.Context) (color.NRGBA, error) {
	return color.NRGBA{}, ErrUnavailable
}
