package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"vmcore/cmd/internal/cli"
)

type helpCommand struct {
	fs *flag.FlagSet
}

func (c *helpCommand) FlagSet() *flag.FlagSet {
	if c.fs == nil {
		c.fs = flag.NewFlagSet("help", flag.ContinueOnError)
	}
	return c.fs
}

func (c *helpCommand) Help() string { return "print usage and exit" }

func (c *helpCommand) Run(_ context.Context, _ []string, out io.Writer, _ *cli.Logger) {
	fmt.Fprintln(out, "usage: vmctl <command> [flags]")
	fmt.Fprintln(out, "commands:")
	fmt.Fprintln(out, "  scenario   run a canned demand-paging scenario and print the console trace")
	fmt.Fprintln(out, "  stats      allocate a page, fault it in, and print pool occupancy")
}
