//go:build linux || freebsd || openbsd || netbsd || dragonfly

package picker

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"os"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	screenshotIface = "org.freedesktop.portal.Screenshot"
	requestResponse = "org.freedesktop.portal.Request.Response"
)

var (
	portalHandleToken = newPortalHandleToken
	portalVersion     = queryPortalVersion
)

// Portal samples through org.freedesktop.portal.Screenshot.PickColor.
type Portal struct {
	once      sync.Once
	available bool
}

// NewPortal returns a sampler backed by the xdg desktop portal.
func NewPortal() *Portal { return &Portal{} }

// Available reports whether the portal offers PickColor. The answer is
// cached after the first query.
func (p *Portal) Available() bool {
	p.once.Do(func() {
		v, err := portalVersion()
		p.available = err == nil && v >= 2
	})
	return p.available
}

func queryPortalVersion() (uint32, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return 0, fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "dbus close: %v\n", cerr)
		}
	}()
	v, err := conn.Object(portalDest, portalPath).GetProperty(screenshotIface + ".version")
	if err != nil {
		return 0, fmt.Errorf("portal version: %w", err)
	}
	version, ok := v.Value().(uint32)
	if !ok {
		return 0, fmt.Errorf("portal version has type %T", v.Value())
	}
	return version, nil
}

// Sample shows the portal picker and waits for the user.
func (p *Portal) Sample(ctx context.Context) (color.NRGBA, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "dbus close: %v\n", cerr)
		}
	}()

	sigc := make(chan *dbus.Signal, 4)
	conn.Signal(sigc)
	rule := "type='signal',interface='org.freedesktop.portal.Request',member='Response'"
	if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return color.NRGBA{}, fmt.Errorf("portal pick subscribe: %w", err)
	}
	defer conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule)

	obj := conn.Object(portalDest, portalPath)
	var handle dbus.ObjectPath
	call := obj.CallWithContext(ctx, screenshotIface+".PickColor", 0, "", pickColorOptions())
	if call.Err != nil {
		return color.NRGBA{}, fmt.Errorf("portal pick call: %w", call.Err)
	}
	if err := call.Store(&handle); err != nil {
		return color.NRGBA{}, fmt.Errorf("portal pick response: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			conn.Object(portalDest, handle).Call("org.freedesktop.portal.Request.Close", 0)
			return color.NRGBA{}, ctx.Err()
		case sig, ok := <-sigc:
			if !ok {
				return color.NRGBA{}, fmt.Errorf("portal pick: connection closed")
			}
			if sig.Path != handle || sig.Name != requestResponse {
				continue
			}
			return parsePickResponse(sig.Body)
		}
	}
}

func newPortalHandleToken() string {
	return fmt.Sprintf("shineypaint_%d", time.Now().UnixNano())
}

func pickColorOptions() map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"handle_token": dbus.MakeVariant(portalHandleToken()),
	}
}

// parsePickResponse decodes the Request.Response body: a response code and
// a results map whose "color" entry is an (ddd) tuple in the range 0..1.
func parsePickResponse(body []interface{}) (color.NRGBA, error) {
	if len(body) < 2 {
		return color.NRGBA{}, fmt.Errorf("portal pick: short response")
	}
	code, ok := body[0].(uint32)
	if !ok {
		return color.NRGBA{}, fmt.Errorf("portal pick: response code has type %T", body[0])
	}
	switch code {
	case 0:
	case 1:
		return color.NRGBA{}, ErrCancelled
	default:
		return color.NRGBA{}, fmt.Errorf("portal pick: request failed with code %d", code)
	}
	results, ok := body[1].(map[string]dbus.Variant)
	if !ok {
		return color.NRGBA{}, fmt.Errorf("portal pick: results have type %T", body[1])
	}
	v, ok := results["color"]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("portal pick: response missing color")
	}
	rgb, err := floatTriple(v.Value())
	if err != nil {
		return color.NRGBA{}, err
	}
	return color.NRGBA{R: unit(rgb[0]), G: unit(rgb[1]), B: unit(rgb[2]), A: 255}, nil
}

func floatTriple(v interface{}) ([3]float64, error) {
	var out [3]float64
	switch t := v.(type) {
	case []interface{}:
		if len(t) != 3 {
			return out, fmt.Errorf("portal pick: color has %d components", len(t))
		}
		for i, c := range t {
			f, ok := c.(float64)
			if !ok {
				return out, fmt.Errorf("portal pick: color component has type %T", c)
			}
			out[i] = f
		}
	case []float64:
		if len(t) != 3 {
			return out, fmt.Errorf("portal pick: color has %d components", len(t))
		}
		copy(out[:], t)
	default:
		return out, fmt.Errorf("portal pick: color has type %T", v)
	}
	return out, nil
}

func unit(f float64) uint8 {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(math.Round(f * 255))
}
