package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/mesmeriz2/portfolio"
	"github.com/mesmeriz2/portfolio/date"
	"github.com/mesmeriz2/portfolio/renderer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// splitCmd holds the flags for the 'split' subcommand.
type splitCmd struct {
	date   string
	dryRun bool
}

func (*splitCmd) Name() string     { return "split" }
func (*splitCmd) Synopsis() string { return "restate the trades of a ticker for a stock split" }
func (*splitCmd) Usage() string {
	return `pcs split [-d <date>] [-n] <ticker> <from> <to>

  Restates every trade of the ticker dated before the split: <from> shares
  become <to> shares, and prices are divided accordingly, so cost bases and
  realized P&L are unchanged. Use <from> greater than <to> for a reverse split.
  The trades of all accounts are restated, and the ledger is rewritten.

  Applying the same split twice restates the trades twice, use -n to preview.
`
}

func (c *splitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Split date, trades from that date on are already post-split")
	f.BoolVar(&c.dryRun, "n", false, "Preview the split without rewriting the ledger")
}

func (c *splitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: expecting <ticker> <from> <to>")
		return subcommands.ExitUsageError
	}
	s, err := c.parse(f.Arg(0), f.Arg(1), f.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ws, err := openWorkspace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer ws.logger.Sync()

	adjusted, n := portfolio.AdjustForSplit(ws.trades, s)
	if n == 0 {
		fmt.Fprintf(os.Stderr, "Error: no %s trade before %s\n", s.Ticker, s.Date)
		return subcommands.ExitFailure
	}

	before := ws.replay(ws.trades)
	after := ws.replay(adjusted)
	if added := newSkips(before.Skipped(), after.Skipped()); len(added) > 0 {
		for _, sk := range added {
			fmt.Fprintf(os.Stderr, "Error: trade %d would be rejected after the split: %v\n", sk.Trade.ID, sk.Err)
		}
		return subcommands.ExitFailure
	}

	b, ok := before.Position(s.Ticker)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no position in %s\n", s.Ticker)
		return subcommands.ExitFailure
	}
	a, _ := after.Position(s.Ticker)
	printMarkdown(renderer.SplitMarkdown(s, n, b.Summary(s.Date), a.Summary(s.Date)))
	if c.dryRun {
		return subcommands.ExitSuccess
	}

	if err := writeLedger(ws.cfg.LedgerFile, adjusted); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger %q: %v\n", ws.cfg.LedgerFile, err)
		return subcommands.ExitFailure
	}
	ws.logger.Info("split applied",
		zap.String("ticker", s.Ticker),
		zap.Stringer("ratio", s),
		zap.Int("trades", n),
		zap.String("ledger", ws.cfg.LedgerFile),
	)
	return subcommands.ExitSuccess
}

func (c *splitCmd) parse(ticker, from, to string) (portfolio.Split, error) {
	on, err := date.Parse(c.date)
	if err != nil {
		return portfolio.Split{}, err
	}
	fr, err := decimal.NewFromString(from)
	if err != nil {
		return portfolio.Split{}, fmt.Errorf("invalid split from %q: %w", from, err)
	}
	tt, err := decimal.NewFromString(to)
	if err != nil {
		return portfolio.Split{}, fmt.Errorf("invalid split to %q: %w", to, err)
	}
	s := portfolio.Split{Ticker: strings.ToUpper(ticker), Date: on, From: portfolio.Q(fr), To: portfolio.Q(tt)}
	return s, s.Validate()
}
