package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"

	"github.com/example/shineypaint/internal/session"
)

// interactiveCmd reads painting commands from the terminal.
type interactiveCmd struct {
	*root
	fs     *flag.FlagSet
	file   string
	output string
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ContinueOnError)
	i := &interactiveCmd{root: r.subcommand("interactive"), fs: fs}
	fs.SetOutput(r.stderr)
	fs.Usage = usageFunc(i)
	fs.StringVar(&i.file, "file", "", "start from this image instead of a blank canvas")
	fs.StringVar(&i.output, "output", "shineypaint.png", "default path for the save command")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: i}
		}
		return nil, err
	}
	return i, nil
}

func (i *interactiveCmd) Run() error {
	sc := newScript(i.root, i.stdout, i.output)
	sess, err := i.newSession(i.config.Session(), i.file, session.WithSampler(sc.sampler()))
	if err != nil {
		return err
	}
	sc.sess = sess

	fmt.Fprintln(i.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(i.stdin)
	for {
		fmt.Fprint(i.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		if err := sc.exec(scanner.Text()); err != nil {
			if errors.Is(err, errDone) {
				break
			}
			fmt.Fprintln(i.stderr, err)
		}
	}
	return scanner.Err()
}
