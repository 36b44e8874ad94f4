package main

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/shineypaint/internal/config"
	"github.com/example/shineypaint/internal/filter"
)

func newTestRoot(stdin string) (*root, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return newRootWith(config.New(), strings.NewReader(stdin), &stdout, &stderr), &stdout, &stderr
}

func TestRootUsage(t *testing.T) {
	for _, args := range [][]string{nil, {"bogus"}} {
		r, _, _ := newTestRoot("")
		err := r.Run(args)
		var uerr *UsageError
		if !errors.As(err, &uerr) {
			t.Fatalf("%v: expected usage error, got %v", args, err)
		}
		if msg := uerr.Error(); !strings.Contains(msg, "Usage: shineypaint") || !strings.Contains(msg, "-notify-save") {
			t.Fatalf("unexpected help %q", msg)
		}
	}
}

func TestRunWritesOutput(t *testing.T) {
	r, _, _ := newTestRoot("")
	out := filepath.Join(t.TempDir(), "out.png")
	err := r.Run([]string{"run", "-width", "20", "-height", "10", "-output", out,
		"-e", "color red", "-e", "down 0 0", "-e", "move 19 0", "-e", "up"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Fatalf("size = %v", b)
	}
	if got := color.NRGBAModel.Convert(img.At(10, 0)); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Fatalf("pixel = %v, want red", got)
	}
}

func TestRunReadsStdinAndOpensFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.png")
	r, _, _ := newTestRoot("filter invert\n")
	if err := r.Run([]string{"run", "-width", "4", "-height", "4", "-output", first}); err != nil {
		t.Fatalf("run: %v", err)
	}

	second := filepath.Join(dir, "second.png")
	r, stdout, _ := newTestRoot("status\nexit\nfilter invert\n")
	if err := r.Run([]string{"run", "-file", first, "-output", second}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), "size=4x4") {
		t.Fatalf("status %q", stdout.String())
	}
	f, err := os.Open(second)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if got := color.NRGBAModel.Convert(img.At(1, 1)); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Fatalf("commands after exit ran: pixel %v", got)
	}
}

func TestRunReportsFailingCommand(t *testing.T) {
	r, _, _ := newTestRoot("")
	err := r.Run([]string{"run", "-e", "clear", "-e", "filter sepia"})
	if !errors.Is(err, filter.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if want := `command 2 "filter sepia"`; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestRunOpenError(t *testing.T) {
	r, _, _ := newTestRoot("")
	err := r.Run([]string{"run", "-file", "missing.png", "-e", "clear"})
	if err == nil || !strings.Contains(err.Error(), "open missing.png") {
		t.Fatalf("expected open error context, got %v", err)
	}
}

func TestRunRejectsBadSize(t *testing.T) {
	r, _, _ := newTestRoot("")
	if _, err := parseRunCmd([]string{"-width", "0"}, r); err == nil {
		t.Fatalf("expected size error")
	}
}

func TestSubcommandHelp(t *testing.T) {
	r, _, _ := newTestRoot("")
	_, err := parseRunCmd([]string{"-h"}, r)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	msg := uerr.Error()
	for _, want := range []string{"Usage: shineypaint run", "filter KIND", "-output"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("help missing %q:\n%s", want, msg)
		}
	}
}

func TestInteractiveKeepsGoingAfterErrors(t *testing.T) {
	r, stdout, stderr := newTestRoot("color red\nbogus\nstatus\nexit\nstatus\n")
	if err := r.Run([]string{"interactive"}); err != nil {
		t.Fatalf("interactive: %v", err)
	}
	if !strings.Contains(stderr.String(), `unknown command "bogus"`) {
		t.Fatalf("stderr %q", stderr.String())
	}
	if n := strings.Count(stdout.String(), "color=#FF0000"); n != 1 {
		t.Fatalf("expected one status line, got %d in %q", n, stdout.String())
	}
}

func TestConfigPrint(t *testing.T) {
	r, stdout, _ := newTestRoot("")
	if err := r.Run([]string{"config", "print"}); err != nil {
		t.Fatalf("config print: %v", err)
	}
	for _, want := range []string{"width = 800", "[tools]", "[notify]"} {
		if !strings.Contains(stdout.String(), want) {
			t.Fatalf("config output missing %q:\n%s", want, stdout.String())
		}
	}
	if err := r.Run([]string{"config", "nope"}); err == nil {
		t.Fatalf("expected unknown config command error")
	}
}

func TestListingCommands(t *testing.T) {
	r, stdout, _ := newTestRoot("")
	if err := r.Run([]string{"colors", "-palette"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "#FF0000") {
		t.Fatalf("palette output %q", stdout.String())
	}

	r, stdout, _ = newTestRoot("")
	if err := r.Run([]string{"themes"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "dark") || !strings.Contains(stdout.String(), "default") {
		t.Fatalf("themes output %q", stdout.String())
	}

	r, stdout, _ = newTestRoot("")
	if err := r.Run([]string{"version"}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout.String(), "shineypaint version dev") {
		t.Fatalf("version output %q", stdout.String())
	}
}

func TestResolveThemePrecedence(t *testing.T) {
	t.Setenv("SHINEYPAINT_THEME", "dark")
	r, _, stderr := newTestRoot("")
	if got := r.resolveTheme(); got.Name == "Default" {
		t.Fatalf("env theme ignored")
	}
	r.themeName = "missing-theme"
	if got := r.resolveTheme(); got.Name != "Default" {
		t.Fatalf("missing theme did not fall back: %q", got.Name)
	}
	if !strings.Contains(stderr.String(), "missing-theme") {
		t.Fatalf("no warning for missing theme: %q", stderr.String())
	}
}
