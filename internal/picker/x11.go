package picker

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var xConnect = xgb.NewConn

// X11 grabs the pointer on the root window and samples the pixel under the
// next left click. Any other button cancels.
type X11 struct{}

// NewX11 returns the X11 sampler.
func NewX11() X11 { return X11{} }

// Available reports whether an X display is configured.
func (X11) Available() bool { return lookupEnv("DISPLAY") != "" }

func (X11) Sample(ctx context.Context) (color.NRGBA, error) {
	conn, err := xConnect()
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if setup == nil {
		return color.NRGBA{}, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		return color.NRGBA{}, fmt.Errorf("xproto screen unavailable")
	}

	grab, err := xproto.GrabPointer(conn, false, screen.Root, uint16(xproto.EventMaskButtonPress),
		xproto.GrabModeAsync, xproto.GrabModeAsync, xproto.WindowNone, xproto.CursorNone,
		xproto.TimeCurrentTime).Reply()
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("grab pointer: %w", err)
	}
	if grab.Status != xproto.GrabStatusSuccess {
		return color.NRGBA{}, fmt.Errorf("grab pointer: status %d", grab.Status)
	}
	defer xproto.UngrabPointer(conn, xproto.TimeCurrentTime)

	presses := make(chan xproto.ButtonPressEvent, 1)
	go func() {
		defer close(presses)
		for {
			ev, xerr := conn.WaitForEvent()
			if ev == nil && xerr == nil {
				return
			}
			if bp, ok := ev.(xproto.ButtonPressEvent); ok {
				presses <- bp
				return
			}
		}
	}()

	var press xproto.ButtonPressEvent
	select {
	case <-ctx.Done():
		return color.NRGBA{}, ctx.Err()
	case bp, ok := <-presses:
		if !ok {
			return color.NRGBA{}, fmt.Errorf("X connection closed")
		}
		press = bp
	}
	if press.Detail != xproto.ButtonIndex1 {
		return color.NRGBA{}, ErrCancelled
	}

	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(screen.Root),
		press.RootX, press.RootY, 1, 1, math.MaxUint32).Reply()
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("read pixel: %w", err)
	}
	return xPixel(setup, reply)
}

// xPixel decodes the first pixel of a ZPixmap reply. The server sends BGR
// or BGRA byte order for 24 and 32 bit depths.
func xPixel(setup *xproto.SetupInfo, reply *xproto.GetImageReply) (color.NRGBA, error) {
	if setup == nil {
		return color.NRGBA{}, fmt.Errorf("xproto setup unavailable")
	}
	if reply == nil || len(reply.Data) == 0 {
		return color.NRGBA{}, fmt.Errorf("pixel: empty image data")
	}
	bitsPerPixel := 0
	for _, format := range setup.PixmapFormats {
		if format.Depth == reply.Depth {
			bitsPerPixel = int(format.BitsPerPixel)
			break
		}
	}
	if bitsPerPixel == 0 {
		return color.NRGBA{}, fmt.Errorf("unsupported depth %d", reply.Depth)
	}
	if bitsPerPixel < 24 || len(reply.Data) < 3 {
		return color.NRGBA{}, fmt.Errorf("unsupported pixel format %d bpp", bitsPerPixel)
	}
	d := reply.Data
	return color.NRGBA{R: d[2], G: d[1], B: d[0], A: 255}, nil
}
