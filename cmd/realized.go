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
)

// realizedCmd holds the flags for the 'realized' subcommand.
type realizedCmd struct {
	account string
	ticker  string
	period  string
	date    string
	lots    bool
	out     string
}

func (*realizedCmd) Name() string     { return "realized" }
func (*realizedCmd) Synopsis() string { return "realized P&L of every sell" }
func (*realizedCmd) Usage() string {
	return `pcs realized [-account <name>] [-t <ticker>] [-p <period> [-d <date>]] [-lots] [-o <file>]

  Lists the realized P&L of every sell, oldest first, and their total.
  With -p only the sells of the month, quarter or year containing the date
  are listed. With -o the records are written as JSON Lines instead ("-" for
  stdout).
`
}

func (c *realizedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Only replay the trades of this account")
	f.StringVar(&c.ticker, "t", "", "Only report sells of this ticker")
	f.StringVar(&c.period, "p", "", "Only report sells of this period (month, quarter, year)")
	f.StringVar(&c.date, "d", date.Today().String(), "A date in the reported period")
	f.BoolVar(&c.lots, "lots", false, "Detail the lots matched by each sell")
	f.StringVar(&c.out, "o", "", "Write the records as JSONL to this file")
}

func (c *realizedCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts := renderer.RealizedOptions{Ticker: c.ticker, Lots: c.lots}
	if c.period != "" {
		p, err := date.ParsePeriod(c.period)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
			return subcommands.ExitUsageError
		}
		on, err := date.Parse(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		opts.Range = date.NewRange(on, p)
	}

	ws, err := openWorkspace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer ws.logger.Sync()

	e := ws.replay(portfolio.TradesOfAccount(ws.trades, c.account))
	history := e.RealizedHistory()

	if c.out == "" {
		printMarkdown(renderer.RealizedMarkdown(history, opts) + renderer.SkippedMarkdown(e.Skipped()))
		return subcommands.ExitSuccess
	}

	var kept []portfolio.RealizedPL
	for _, r := range history {
		if opts.Keep(r) {
			kept = append(kept, r)
		}
	}
	if err := c.write(kept); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing realized records to %q: %v\n", c.out, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *realizedCmd) write(records []portfolio.RealizedPL) error {
	if c.out == "-" {
		return portfolio.EncodeRealized(output, records)
	}
	f, err := os.Create(c.out)
	if err != nil {
		return err
	}
	if err := portfolio.EncodeRealized(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
