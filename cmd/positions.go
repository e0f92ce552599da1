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

// positionsCmd holds the flags for the 'positions' subcommand.
type positionsCmd struct {
	date    string
	account string
	all     bool
	prices  string
	path    string
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "list positions with their FIFO cost basis" }
func (*positionsCmd) Usage() string {
	return `pcs positions [-d <date>] [-account <name>] [-a] [-prices <file>] [-path <jsonpath>]

  Replays the trades up to a date and lists the open positions, their average
  cost, cost basis and realized P&L. With a quote file, also reports the market
  value and the unrealized P&L.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Report date, trades after it are ignored")
	f.StringVar(&c.account, "account", "", "Only replay the trades of this account")
	f.BoolVar(&c.all, "a", false, "Include closed positions")
	f.StringVar(&c.prices, "prices", "", "JSON quote file used to value positions (defaults to the configured one)")
	f.StringVar(&c.path, "path", "", "JSONPath of a price in the quote file, {ticker} is replaced by each ticker")
}

func (c *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	ws, err := openWorkspace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer ws.logger.Sync()

	e := ws.replay(portfolio.TradesUntil(portfolio.TradesOfAccount(ws.trades, c.account), on))
	summaries := e.Positions(c.all, on)

	quotes := c.prices
	if quotes == "" {
		quotes = ws.cfg.PricesFile
	}
	path := c.path
	if path == "" {
		path = ws.cfg.PricesPath
	}
	if quotes != "" {
		prices, err := loadPrices(quotes, path, ws.cfg.Currency, summaries)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading prices %q: %v\n", quotes, err)
			return subcommands.ExitFailure
		}
		summaries = portfolio.Value(summaries, prices)
	}

	printMarkdown(renderer.PositionsMarkdown(on, summaries, e.TotalRealizedPL()) + renderer.SkippedMarkdown(e.Skipped()))
	return subcommands.ExitSuccess
}

func loadPrices(file, path, currency string, summaries []portfolio.PositionSummary) (portfolio.Prices, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tickers := make([]string, 0, len(summaries))
	for _, s := range summaries {
		tickers = append(tickers, s.Ticker)
	}
	return portfolio.LoadPrices(f, path, currency, tickers)
}
