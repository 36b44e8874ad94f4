package main

import (
	"errors"
	"flag"
	"fmt"
	"sort"

	"golang.org/x/image/colornames"

	"github.com/example/shineypaint/internal/appstate"
	"github.com/example/shineypaint/internal/theme"
)

// colorsCmd lists the colour names accepted by -color and the color command.
type colorsCmd struct {
	*root
	fs      *flag.FlagSet
	palette bool
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ContinueOnError)
	c := &colorsCmd{root: r.subcommand("colors"), fs: fs}
	fs.SetOutput(r.stderr)
	fs.Usage = usageFunc(c)
	fs.BoolVar(&c.palette, "palette", false, "only list the window palette")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: c}
		}
		return nil, err
	}
	return c, nil
}

func (c *colorsCmd) Run() error {
	if c.palette {
		for _, p := range appstate.DefaultPalette() {
			fmt.Fprintf(c.stdout, "%-20s %s\n", p.Name, theme.Hex(theme.RGBA(p.Color)))
		}
		return nil
	}
	names := make([]string, 0, len(colornames.Map))
	for name := range colornames.Map {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(c.stdout, "%-20s %s\n", name, theme.Hex(colornames.Map[name]))
	}
	return nil
}
