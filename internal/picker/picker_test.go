package picker

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/jezek/xgb/xproto"
)

type fixed struct {
	ok  bool
	col color.NRGBA
}

func (f fixed) Available() bool { return f.ok }

func (f fixed) Sample(context.Context) (color.NRGBA, error) { return f.col, nil }

func TestChainUsesFirstAvailable(t *testing.T) {
	c := Chain{nil, fixed{ok: false, col: color.NRGBA{R: 1}}, fixed{ok: true, col: color.NRGBA{G: 2}}}
	if !c.Available() {
		t.Fatalf("chain should be available")
	}
	got, err := c.Sample(context.Background())
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if got != (color.NRGBA{G: 2}) {
		t.Fatalf("got %v", got)
	}
}

func TestEmptyChain(t *testing.T) {
	var c Chain
	if c.Available() {
		t.Fatalf("empty chain reported available")
	}
	if _, err := c.Sample(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestStaticAndFunc(t *testing.T) {
	s := Static{Err: ErrCancelled}
	if _, err := s.Sample(context.Background()); !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Static{}).Sample(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	var nilFunc Func
	if nilFunc.Available() {
		t.Fatalf("nil Func reported available")
	}
	f := Func(func(context.Context) (color.NRGBA, error) { return color.NRGBA{B: 3}, nil })
	got, err := f.Sample(context.Background())
	if err != nil || got.B != 3 {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestX11AvailableFollowsDisplay(t *testing.T) {
	prev := lookupEnv
	t.Cleanup(func() { lookupEnv = prev })

	lookupEnv = func(string) string { return "" }
	if NewX11().Available() {
		t.Fatalf("available without DISPLAY")
	}
	lookupEnv = func(k string) string {
		if k == "DISPLAY" {
			return ":0"
		}
		return ""
	}
	if !NewX11().Available() {
		t.Fatalf("unavailable with DISPLAY set")
	}
}

func TestXPixel(t *testing.T) {
	setup := &xproto.SetupInfo{PixmapFormats: []xproto.Format{{Depth: 24, BitsPerPixel: 32}}}
	got, err := xPixel(setup, &xproto.GetImageReply{Depth: 24, Data: []byte{10, 20, 30, 0}})
	if err != nil {
		t.Fatalf("xPixel: %v", err)
	}
	if want := (color.NRGBA{R: 30, G: 20, B: 10, A: 255}); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}

	if _, err := xPixel(setup, &xproto.GetImageReply{Depth: 16, Data: []byte{1, 2}}); err == nil {
		t.Fatalf("expected error for unknown depth")
	}
}
