package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mesmeriz2/portfolio"
	"github.com/mesmeriz2/portfolio/date"
	"github.com/mesmeriz2/portfolio/renderer"
	"github.com/shopspring/decimal"
)

// simulateCmd holds the flags for the 'simulate' subcommand.
type simulateCmd struct {
	date    string
	account string
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "preview the outcome of a sell without recording it" }
func (*simulateCmd) Usage() string {
	return `pcs simulate [-d <date>] [-account <name>] <ticker> <shares> <price>

  Shows the lots a sell would consume, its P&L before fee, and the position
  left after it. The ledger is not modified.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date of the position to sell from")
	f.StringVar(&c.account, "account", "", "Only replay the trades of this account")
}

func (c *simulateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: expecting <ticker> <shares> <price>")
		return subcommands.ExitUsageError
	}
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	shares, err := decimal.NewFromString(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid shares %q: %v\n", f.Arg(1), err)
		return subcommands.ExitUsageError
	}
	price, err := decimal.NewFromString(f.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid price %q: %v\n", f.Arg(2), err)
		return subcommands.ExitUsageError
	}

	ws, err := openWorkspace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer ws.logger.Sync()

	e := ws.replay(portfolio.TradesUntil(portfolio.TradesOfAccount(ws.trades, c.account), on))
	p, ok := e.Position(f.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no position in %s\n", f.Arg(0))
		return subcommands.ExitFailure
	}
	preview, err := p.SimulateSell(portfolio.Q(shares), portfolio.M(price, ws.cfg.Currency))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SellPreviewMarkdown(preview))
	return subcommands.ExitSuccess
}
