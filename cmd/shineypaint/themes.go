package main

import (
	"errors"
	"flag"
	"fmt"
	"sort"

	"github.com/example/shineypaint/internal/theme"
)

// themesCmd lists window themes from the config file, the binary and the
// theme directories.
type themesCmd struct {
	*root
	fs   *flag.FlagSet
	show string
}

func (c *themesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseThemesCmd(args []string, r *root) (*themesCmd, error) {
	fs := flag.NewFlagSet("themes", flag.ContinueOnError)
	c := &themesCmd{root: r.subcommand("themes"), fs: fs}
	fs.SetOutput(r.stderr)
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.show, "show", "", "print the colours of one theme")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: c}
		}
		return nil, err
	}
	return c, nil
}

func (c *themesCmd) Run() error {
	if c.show != "" {
		t, ok := c.config.Themes[c.show]
		if !ok {
			var err error
			if t, err = theme.NewLoader().Load(c.show); err != nil {
				return fmt.Errorf("theme %s: %w", c.show, err)
			}
		}
		return theme.Format(c.stdout, t)
	}
	seen := map[string]bool{}
	var names []string
	for name := range c.config.Themes {
		seen[name] = true
		names = append(names, name)
	}
	for _, name := range theme.NewLoader().Names() {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(c.stdout, name)
	}
	return nil
}
