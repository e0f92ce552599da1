// pcs keeps a ledger of stock trades and reports FIFO positions and realized P&L.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/mesmeriz2/portfolio/cmd"
)

func main() {
	// answers shell completion requests and exits, does nothing otherwise.
	cmd.Completion().Complete("pcs")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
