// vmctl is a small command-line front end over the virtual memory core,
// used to drive the syscalls and observability calls (§6) by hand or from
// a scripted scenario.
package main

import (
	"context"
	"os"

	"vmcore/cmd/internal/cli"
)

func main() {
	os.Exit(cli.New(context.Background()).
		WithLogger(os.Stderr).
		WithCommands([]cli.Command{
			&scenarioCommand{},
			&statsCommand{},
		}).
		WithHelp(&helpCommand{}).
		Execute(os.Args[1:]))
}
