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
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// tradeCmd records a trade in the ledger, buyCmd and sellCmd only differ by side.
type tradeCmd struct {
	side    portfolio.Side
	date    string
	fee     string
	account string
}

type buyCmd struct{ tradeCmd }
type sellCmd struct{ tradeCmd }

func (*buyCmd) Name() string      { return "buy" }
func (*buyCmd) Synopsis() string  { return "record a purchase of shares" }
func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale of shares" }

func (*buyCmd) Usage() string {
	return `pcs buy [-d <date>] [-fee <amount>] [-account <name>] <ticker> <shares> <price>

  Appends a BUY trade to the ledger. The fee is part of the cost basis.
`
}

func (*sellCmd) Usage() string {
	return `pcs sell [-d <date>] [-fee <amount>] [-account <name>] <ticker> <shares> <price>

  Appends a SELL trade to the ledger and prints its realized P&L. The fee is
  deducted from the P&L. Selling more shares than the account holds is refused.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	c.side = portfolio.Buy
	c.tradeCmd.SetFlags(f)
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	c.side = portfolio.Sell
	c.tradeCmd.SetFlags(f)
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Trade date")
	f.StringVar(&c.fee, "fee", "0", "Total fee of the trade")
	f.StringVar(&c.account, "account", "", "Account the trade is booked in")
}

func (c *tradeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: expecting <ticker> <shares> <price>")
		return subcommands.ExitUsageError
	}
	ws, err := openWorkspace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer ws.logger.Sync()

	t, err := c.parse(f.Arg(0), f.Arg(1), f.Arg(2), ws.cfg.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	t.ID = portfolio.NextTradeID(ws.trades)
	if err := t.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	// The new trade must not break the replay of its account: a sell larger than
	// the position, or a backdated trade that makes a later sell fail.
	scoped := portfolio.TradesOfAccount(ws.trades, t.Account)
	before := ws.replay(scoped)
	after := ws.replay(append(scoped, t))
	if added := newSkips(before.Skipped(), after.Skipped()); len(added) > 0 {
		for _, s := range added {
			fmt.Fprintf(os.Stderr, "Error: trade %d would be rejected: %v\n", s.Trade.ID, s.Err)
		}
		return subcommands.ExitFailure
	}

	if err := appendTrade(ws.cfg.LedgerFile, t); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger %q: %v\n", ws.cfg.LedgerFile, err)
		return subcommands.ExitFailure
	}
	ws.logger.Info("trade recorded", zap.Int64("trade_id", t.ID), zap.String("ledger", ws.cfg.LedgerFile))

	fmt.Fprintf(output, "Recorded %s #%d: %s %s at %s on %s", t.Side, t.ID, t.Ticker, t.Shares, t.Price, t.Date)
	if t.Account != "" {
		fmt.Fprintf(output, " in %s", t.Account)
	}
	fmt.Fprintln(output)
	if t.Side == portfolio.Sell {
		for _, r := range after.RealizedHistory() {
			if r.SellTradeID == t.ID {
				fmt.Fprintf(output, "Realized P&L: %s\n", r.PL.SignedString())
			}
		}
	}
	return subcommands.ExitSuccess
}

func (c *tradeCmd) parse(ticker, shares, price, currency string) (portfolio.Trade, error) {
	on, err := date.Parse(c.date)
	if err != nil {
		return portfolio.Trade{}, err
	}
	n, err := decimal.NewFromString(shares)
	if err != nil {
		return portfolio.Trade{}, fmt.Errorf("invalid shares %q: %w", shares, err)
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return portfolio.Trade{}, fmt.Errorf("invalid price %q: %w", price, err)
	}
	fee, err := decimal.NewFromString(c.fee)
	if err != nil {
		return portfolio.Trade{}, fmt.Errorf("invalid fee %q: %w", c.fee, err)
	}
	return portfolio.Trade{
		Account: c.account,
		Ticker:  strings.ToUpper(ticker),
		Side:    c.side,
		Shares:  portfolio.Q(n),
		Price:   portfolio.M(p, currency),
		Date:    on,
		Fee:     portfolio.M(fee, currency),
	}, nil
}

// newSkips returns the skipped trades of after that are not in before.
func newSkips(before, after []portfolio.SkippedTrade) []portfolio.SkippedTrade {
	known := make(map[int64]bool, len(before))
	for _, s := range before {
		known[s.Trade.ID] = true
	}
	var added []portfolio.SkippedTrade
	for _, s := range after {
		if !known[s.Trade.ID] {
			added = append(added, s)
		}
	}
	return added
}
