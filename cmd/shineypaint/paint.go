package main

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/example/shineypaint/internal/appstate"
	"github.com/example/shineypaint/internal/picker"
	"github.com/example/shineypaint/internal/session"
	"github.com/example/shineypaint/internal/theme"
)

// paintCmd opens the paint window.
type paintCmd struct {
	*root
	fs         *flag.FlagSet
	file       string
	output     string
	width      int
	height     int
	colorSpec  string
	background string
	noPicker   bool
	verbose    bool
}

func (p *paintCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func parsePaintCmd(args []string, r *root) (*paintCmd, error) {
	fs := flag.NewFlagSet("paint", flag.ContinueOnError)
	p := &paintCmd{root: r.subcommand("paint"), fs: fs}
	fs.SetOutput(r.stderr)
	fs.Usage = usageFunc(p)
	fs.StringVar(&p.file, "file", "", "open this image instead of a blank canvas")
	fs.StringVar(&p.output, "output", "", "file written by the save action (defaults to -file or save_dir/shineypaint.png)")
	fs.IntVar(&p.width, "width", r.config.Width, "blank canvas width")
	fs.IntVar(&p.height, "height", r.config.Height, "blank canvas height")
	fs.StringVar(&p.colorSpec, "color", "", "initial stroke colour name or hex value")
	fs.StringVar(&p.background, "background", "", "blank canvas background colour")
	fs.BoolVar(&p.noPicker, "no-picker", false, "disable the screen colour picker")
	fs.BoolVar(&p.verbose, "v", false, "log ignored pointer events")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: p}
		}
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: p}
	}
	if p.width <= 0 || p.height <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", p.width, p.height)
	}
	return p, nil
}

// sessionConfig merges the flags over the configuration file.
func (p *paintCmd) sessionConfig() (session.Config, error) {
	cfg := p.config.Session()
	cfg.Width, cfg.Height = p.width, p.height
	if p.colorSpec != "" {
		c, err := theme.ParseColor(p.colorSpec)
		if err != nil {
			return cfg, fmt.Errorf("-color: %w", err)
		}
		cfg.Color = theme.NRGBA(c)
	}
	if p.background != "" {
		c, err := theme.ParseColor(p.background)
		if err != nil {
			return cfg, fmt.Errorf("-background: %w", err)
		}
		cfg.Background = theme.NRGBA(c)
	}
	return cfg, nil
}

func (p *paintCmd) outputPath() string {
	switch {
	case p.output != "":
		return p.output
	case p.file != "":
		return p.file
	case p.config.SaveDir != "":
		return filepath.Join(p.config.SaveDir, "shineypaint.png")
	}
	return "shineypaint.png"
}

func (p *paintCmd) Run() error {
	cfg, err := p.sessionConfig()
	if err != nil {
		return err
	}
	opts := []session.Option{session.WithVerbose(p.verbose)}
	if !p.noPicker {
		if def := picker.Default(); def.Available() {
			opts = append(opts, session.WithSampler(def))
		}
	}
	sess, err := p.newSession(cfg, p.file, opts...)
	if err != nil {
		return err
	}
	st := appstate.New(sess,
		appstate.WithTheme(p.activeTheme),
		appstate.WithOutput(p.outputPath()),
		appstate.WithNotifier(p.notifier),
	)
	st.Run()
	return nil
}
