package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"

	"github.com/example/shineypaint/internal/session"
)

// runCmd applies painting commands to a canvas without opening a window.
type runCmd struct {
	*root
	fs     *flag.FlagSet
	file   string
	output string
	width  int
	height int
	execs  commandList
}

func (c *runCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRunCmd(args []string, r *root) (*runCmd, error) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	c := &runCmd{root: r.subcommand("run"), fs: fs}
	fs.SetOutput(r.stderr)
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "start from this image instead of a blank canvas")
	fs.StringVar(&c.output, "output", "", "write the result to this PNG file")
	fs.IntVar(&c.width, "width", r.config.Width, "blank canvas width")
	fs.IntVar(&c.height, "height", r.config.Height, "blank canvas height")
	fs.Var(&c.execs, "e", "command to execute (may be specified multiple times; default reads stdin)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: c}
		}
		return nil, err
	}
	if c.width <= 0 || c.height <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", c.width, c.height)
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *runCmd) Run() error {
	cfg := c.config.Session()
	cfg.Width, cfg.Height = c.width, c.height
	sc := newScript(c.root, c.stdout, c.output)
	sess, err := c.newSession(cfg, c.file, session.WithSampler(sc.sampler()))
	if err != nil {
		return err
	}
	sc.sess = sess

	lines := []string(c.execs)
	if len(lines) == 0 {
		scanner := bufio.NewScanner(c.stdin)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read commands: %w", err)
		}
	}
	for i, line := range lines {
		if err := sc.exec(line); err != nil {
			if errors.Is(err, errDone) {
				break
			}
			return fmt.Errorf("command %d %q: %w", i+1, line, err)
		}
	}
	if c.output != "" {
		if err := sess.SavePNG(c.output); err != nil {
			return err
		}
		c.notifySave(c.output, sess.Surface().Image())
	}
	return nil
}
