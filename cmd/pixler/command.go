package main

import "flag"

// command carries what every subcommand shares: the root settings and its
// own flag set.
type command struct {
	*root
	name string
	fs   *flag.FlagSet
}

func newCommand(r *root, name string) command {
	return command{root: r, name: name, fs: flag.NewFlagSet(name, flag.ExitOnError)}
}

func (c *command) Program() string {
	if c.root == nil {
		return "pixler " + c.name
	}
	return c.root.subcommand(c.name)
}

func (c *command) FlagSet() *flag.FlagSet {
	return c.fs
}
