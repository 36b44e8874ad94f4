package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/example/shineypaint/internal/clipboard"
	"github.com/example/shineypaint/internal/filter"
	"github.com/example/shineypaint/internal/picker"
	"github.com/example/shineypaint/internal/session"
	"github.com/example/shineypaint/internal/theme"
	"github.com/example/shineypaint/internal/tool"
)

var errDone = errors.New("done")

// commandList collects repeated -e flags.
type commandList []string

func (c *commandList) String() string { return strings.Join(*c, "; ") }

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

// script executes painting commands against a session, one line at a time.
type script struct {
	root    *root
	sess    *session.Session
	out     io.Writer
	output  string
	host    picker.Sampler
	copyFn  func(image.Image) error
	pasteFn func() (image.Image, error)

	// target is the canvas point sampled by "pick X Y".
	target *image.Point
}

func newScript(r *root, out io.Writer, output string) *script {
	return &script{
		root:    r,
		out:     out,
		output:  output,
		host:    picker.Default(),
		copyFn:  clipboard.WriteImage,
		pasteFn: clipboard.ReadImage,
	}
}

// scriptSampler answers picks from the canvas when a target point is set
// and from the desktop otherwise.
type scriptSampler struct{ s *script }

func (s *script) sampler() scriptSampler { return scriptSampler{s} }

// Available is false without a target or a usable desktop picker, so the
// pick tool is refused before the mode changes.
func (p scriptSampler) Available() bool {
	return p.s.target != nil || (p.s.host != nil && p.s.host.Available())
}

func (p scriptSampler) Sample(ctx context.Context) (color.NRGBA, error) {
	s := p.s
	if s.target != nil {
		return s.sess.Surface().At(s.target.X, s.target.Y), nil
	}
	if s.host == nil {
		return color.NRGBA{}, picker.ErrUnavailable
	}
	return s.host.Sample(ctx)
}

// exec runs one command line. It returns errDone for exit and quit.
func (s *script) exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	args := strings.Fields(line)
	name, rest := strings.ToLower(args[0]), args[1:]
	switch name {
	case "exit", "quit":
		return errDone
	case "help":
		helpOnce.Do(parseHelpTemplates)
		return helpTmpl.ExecuteTemplate(s.out, "commands", nil)
	case "mode", "tool":
		if len(rest) != 1 {
			return fmt.Errorf("mode requires a tool name")
		}
		m, err := tool.ParseMode(rest[0])
		if err != nil {
			return err
		}
		if m == tool.ModeColorPick {
			return s.pick(nil)
		}
		_, err = s.sess.SetMode(context.Background(), m)
		return err
	case "down":
		x, y, err := parsePoint(name, rest)
		if err != nil {
			return err
		}
		return s.sess.PointerDown(x, y)
	case "move":
		if len(rest) == 3 && strings.EqualFold(rest[2], "shift") {
			x, y, err := parsePoint(name, rest[:2])
			if err != nil {
				return err
			}
			return s.sess.PointerMove(x, y, true)
		}
		x, y, err := parsePoint(name, rest)
		if err != nil {
			return err
		}
		return s.sess.PointerMove(x, y, false)
	case "up":
		s.sess.PointerUp()
	case "leave":
		s.sess.PointerLeave()
	case "undo":
		if !s.sess.Undo() {
			fmt.Fprintln(s.out, "nothing to undo")
		}
	case "redo":
		if !s.sess.Redo() {
			fmt.Fprintln(s.out, "nothing to redo")
		}
	case "clear":
		s.sess.Clear()
	case "filter":
		if len(rest) != 1 {
			return fmt.Errorf("filter requires one of %s", kindNames())
		}
		k, err := filter.ParseKind(rest[0])
		if err != nil {
			return err
		}
		return s.sess.ApplyFilter(k)
	case "color", "colour":
		if len(rest) != 1 {
			return fmt.Errorf("color requires a name or #RRGGBB value")
		}
		c, err := theme.ParseColor(rest[0])
		if err != nil {
			return err
		}
		s.sess.SetColor(theme.NRGBA(c))
	case "pick":
		switch len(rest) {
		case 0:
			return s.pick(nil)
		case 2:
			x, err := strconv.Atoi(rest[0])
			if err != nil {
				return fmt.Errorf("pick: invalid x %q", rest[0])
			}
			y, err := strconv.Atoi(rest[1])
			if err != nil {
				return fmt.Errorf("pick: invalid y %q", rest[1])
			}
			p := image.Pt(x, y)
			return s.pick(&p)
		default:
			return fmt.Errorf("pick takes no arguments or x y")
		}
	case "save":
		path := s.output
		if len(rest) > 0 {
			path = strings.Join(rest, " ")
		}
		if path == "" {
			return fmt.Errorf("save requires a path")
		}
		if err := s.sess.SavePNG(path); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "saved %s\n", path)
		s.root.notifySave(path, s.sess.Surface().Image())
	case "copy":
		if err := s.copyFn(s.sess.Surface().Image()); err != nil {
			return fmt.Errorf("copy: %w", err)
		}
		fmt.Fprintln(s.out, "copied image to clipboard")
		s.root.notifyCopy(s.sess.Surface().Image())
	case "paste":
		img, err := s.pasteFn()
		if err != nil {
			return fmt.Errorf("paste: %w", err)
		}
		s.sess.Paste(img)
	case "status":
		fmt.Fprintln(s.out, s.status())
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func (s *script) pick(target *image.Point) error {
	if target != nil && !target.In(s.sess.Surface().Bounds()) {
		return fmt.Errorf("pick %d,%d: outside the canvas", target.X, target.Y)
	}
	s.target = target
	defer func() { s.target = nil }()
	if err := s.sess.PickColor(context.Background()); err != nil {
		return fmt.Errorf("pick: %w", err)
	}
	c := s.sess.Color()
	fmt.Fprintf(s.out, "picked %s\n", theme.Hex(theme.RGBA(c)))
	if s.root != nil && s.root.notifier != nil {
		s.root.notifier.Pick(c)
	}
	return nil
}

func (s *script) status() string {
	c := s.sess.Color()
	b := s.sess.Surface().Bounds()
	return fmt.Sprintf("mode=%s width=%d color=%s size=%dx%d undo=%d redo=%d",
		s.sess.Mode(), s.sess.ToolConfig().Width, theme.Hex(theme.RGBA(c)),
		b.Dx(), b.Dy(), s.sess.UndoDepth(), s.sess.RedoDepth())
}

func parsePoint(cmd string, args []string) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("%s requires x y", cmd)
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: invalid x %q", cmd, args[0])
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: invalid y %q", cmd, args[1])
	}
	return x, y, nil
}

func kindNames() string {
	var names []string
	for _, k := range filter.Kinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}
