package renderer

import (
	"fmt"
	"strings"

	"github.com/mesmeriz2/portfolio"
)

// SellPreviewMarkdown renders the outcome of a simulated sell.
func SellPreviewMarkdown(p portfolio.SellPreview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Sell %s %s at %s\n\n", p.Shares, p.Ticker, p.Price.Round())

	fmt.Fprintln(&b, "| Bought | Buy ID | Shares | Unit Cost | Cost Basis | Proceeds | P&L |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")
	for _, m := range p.Matched {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s | %s |\n",
			m.BuyDate,
			m.BuyTradeID,
			m.Shares,
			m.BuyPrice.Round(),
			m.CostBasis.Round(),
			m.Proceeds.Round(),
			m.PL.SignedString(),
		)
	}
	fmt.Fprintf(&b, "| **Total** | | **%s** | | **%s** | **%s** | **%s** |\n\n",
		p.Shares, p.CostBasis.Round(), p.Proceeds.Round(), p.PL.SignedString())

	fmt.Fprint(&b, "## After the Sale\n\n")
	fmt.Fprintln(&b, "| | Before | After |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	fmt.Fprintf(&b, "| Shares | %s | %s |\n", p.Held, p.Remaining)
	fmt.Fprintf(&b, "| Avg Cost | %s | %s |\n", p.AvgCost.Round(), p.RemainingAvgCost.Round())
	fmt.Fprintf(&b, "| Unrealized at %s | | %s (%s) |\n",
		p.Price.Round(), p.RemainingUnrealizedPL.SignedString(), p.RemainingUnrealizedPLPercent.SignedString())
	fmt.Fprint(&b, "\nP&L is before any sell fee.\n")
	return b.String()
}
