package main

import (
	"flag"
	"fmt"
)

type versionCmd struct {
	r  *root
	fs *flag.FlagSet
}

func (v *versionCmd) Program() string { return v.r.Program() + " version" }
func (v *versionCmd) FlagSet() *flag.FlagSet { return v.fs }

func (v *versionCmd) Run() error {
	line := fmt.Sprintf("%s version %s", v.r.program, version)
	if commit != "" {
		line += " (" + commit
		if date != "" {
			line += " " + date
		}
		line += ")"
	}
	fmt.Fprintln(v.r.stdout, line)
	return nil
}
