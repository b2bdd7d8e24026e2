// Package cli implements the small Commander/Command pattern vmctl's
// subcommands are built from.
package cli

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"

	"vmcore/kernel/console"
)

type Flag = flag.Flag
type FlagSet = flag.FlagSet
type Logger = slog.Logger

// New returns a Commander bound to ctx.
func New(ctx context.Context) *Commander {
	return &Commander{ctx: ctx}
}

// Commander dispatches os.Args to one of its registered Commands by
// matching the first argument against each Command's FlagSet name.
type Commander struct {
	ctx context.Context
	log *Logger

	help     Command
	commands []Command
}

// Execute parses args and runs the matching command, returning a process
// exit code.
func (cli *Commander) Execute(args []string) int {
	if len(args) == 0 {
		cli.help.Run(cli.ctx, nil, os.Stdout, cli.log)
		return 1
	}

	found := cli.help
	for _, cmd := range cli.commands {
		if args[0] == cmd.FlagSet().Name() {
			found = cmd
		}
	}

	fs := found.FlagSet()
	fs.Parse(args[1:])
	found.Run(cli.ctx, fs.Args(), os.Stdout, cli.log)
	return 0
}

// WithCommands registers cli's subcommands.
func (cli *Commander) WithCommands(cmds []Command) *Commander {
	cli.commands = append([]Command(nil), cmds...)
	return cli
}

// WithHelp sets the command run when no or no matching subcommand is given.
func (cli *Commander) WithHelp(cmd Command) *Commander {
	cli.help = cmd
	return cli
}

// WithLogger installs a debug logger writing to out.
func (cli *Commander) WithLogger(out *os.File) *Commander {
	cli.log = slog.New(console.NewDebugHandler(out))
	return cli
}

// Command is a single vmctl subcommand.
type Command interface {
	FlagSet() *flag.FlagSet
	Help() string
	Run(ctx context.Context, args []string, out io.Writer, log *Logger)
}
