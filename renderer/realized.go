package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/mesmeriz2/portfolio"
	"github.com/mesmeriz2/portfolio/date"
)

// RealizedOptions holds configuration for rendering realized P&L.
type RealizedOptions struct {
	Ticker string     // only render sells of this ticker, all when empty
	Range  date.Range // only render sells within this range, all when zero
	Lots   bool       // detail the lots matched by each sell
}

// Keep reports whether r is selected by the options.
func (o RealizedOptions) Keep(r portfolio.RealizedPL) bool {
	if o.Ticker != "" && !strings.EqualFold(r.Ticker, o.Ticker) {
		return false
	}
	return o.Range.IsZero() || o.Range.Contains(r.SellDate)
}

// RealizedMarkdown renders the realized P&L history, oldest sell first.
func RealizedMarkdown(records []portfolio.RealizedPL, opts RealizedOptions) string {
	var b strings.Builder
	title := "Realized P&L"
	if opts.Ticker != "" {
		title += " of " + strings.ToUpper(opts.Ticker)
	}
	if !opts.Range.IsZero() {
		title += " in " + opts.Range.Identifier()
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	var kept []portfolio.RealizedPL
	for _, r := range records {
		if opts.Keep(r) {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		fmt.Fprint(&b, "No sells.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Ticker | Shares | Sell Price | Proceeds | Cost Basis | Fee | P&L | P&L/Share |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|---:|")
	var total portfolio.Money
	for _, r := range kept {
		total = total.Add(r.PL)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			r.SellDate,
			r.Ticker,
			r.Shares,
			r.SellPrice.Round(),
			r.Proceeds().Round(),
			r.CostBasis.Round(),
			r.Fee.Round(),
			r.PL.SignedString(),
			r.PLPerShare.SignedString(),
		)
	}
	fmt.Fprintf(&b, "| **Total** | | | | | | | **%s** | |\n", total.SignedString())

	if opts.Lots {
		for _, r := range kept {
			ConditionalBlock(&b, func(w io.Writer) bool { return renderMatchedLots(w, r) })
		}
	}
	return b.String()
}

func renderMatchedLots(w io.Writer, r portfolio.RealizedPL) bool {
	fmt.Fprintf(w, "\n## Sell #%d of %s on %s\n\n", r.SellTradeID, r.Ticker, r.SellDate)
	fmt.Fprintln(w, "| Bought | Buy ID | Shares | Unit Cost | Cost Basis | Proceeds | P&L |")
	fmt.Fprintln(w, "|:---|---:|---:|---:|---:|---:|---:|")
	for _, m := range r.Matched {
		fmt.Fprintf(w, "| %s | %d | %s | %s | %s | %s | %s |\n",
			m.BuyDate,
			m.BuyTradeID,
			m.Shares,
			m.BuyPrice.Round(),
			m.CostBasis.Round(),
			m.Proceeds.Round(),
			m.PL.SignedString(),
		)
	}
	return len(r.Matched) > 0
}
