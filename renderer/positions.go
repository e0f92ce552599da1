package renderer

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mesmeriz2/portfolio"
	"github.com/mesmeriz2/portfolio/date"
)

// PositionsMarkdown renders the position summaries as of a date.
//
// Market columns are only rendered when at least one summary is priced.
func PositionsMarkdown(asOf date.Date, summaries []portfolio.PositionSummary, totalRealized portfolio.Money) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Positions on %s\n\n", asOf)

	if len(summaries) == 0 {
		fmt.Fprint(&b, "No positions.\n\n")
		fmt.Fprintf(&b, "Total realized P&L: %s\n", totalRealized.SignedString())
		return b.String()
	}

	priced := slices.ContainsFunc(summaries, portfolio.PositionSummary.Priced)

	fmt.Fprint(&b, "| Ticker | Shares | Avg Cost | Cost Basis | Lots | Held | Realized |")
	if priced {
		fmt.Fprint(&b, " Price | Value | Unrealized | Return |")
	}
	fmt.Fprintln(&b)
	fmt.Fprint(&b, "|:---|---:|---:|---:|---:|---:|---:|")
	if priced {
		fmt.Fprint(&b, "---:|---:|---:|---:|")
	}
	fmt.Fprintln(&b)

	var cost, realized, value, unrealized portfolio.Money
	for _, s := range summaries {
		cost = cost.Add(s.TotalCost)
		realized = realized.Add(s.RealizedPL)

		ticker := s.Ticker
		if s.Closed {
			ticker += " (closed)"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %s | %s |",
			ticker,
			s.Shares,
			s.AvgCost.Round(),
			s.TotalCost.Round(),
			s.LotCount,
			holdingDays(s.HoldingDays),
			s.RealizedPL.SignedString(),
		)
		if priced {
			if s.Priced() {
				value = value.Add(*s.MarketValue)
				unrealized = unrealized.Add(*s.UnrealizedPL)
				fmt.Fprintf(&b, " %s | %s | %s | %s |",
					s.MarketPrice.Round(),
					s.MarketValue.Round(),
					s.UnrealizedPL.SignedString(),
					s.UnrealizedPLPercent.SignedString(),
				)
			} else {
				fmt.Fprint(&b, " | | | |")
			}
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintf(&b, "| **Total** | | | **%s** | | | **%s** |", cost.Round(), realized.SignedString())
	if priced {
		fmt.Fprintf(&b, " | **%s** | **%s** | |", value.Round(), unrealized.SignedString())
	}
	fmt.Fprint(&b, "\n\n")

	fmt.Fprintf(&b, "Total realized P&L: %s\n", totalRealized.SignedString())
	return b.String()
}

func holdingDays(days *int) string {
	if days == nil {
		return ""
	}
	if *days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", *days)
}

// SkippedMarkdown renders the trades left out of a replay, nothing if there are none.
func SkippedMarkdown(skipped []portfolio.SkippedTrade) string {
	var b strings.Builder
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "## Skipped Trades\n\n")
		fmt.Fprintln(w, "| Date | ID | Ticker | Side | Shares | Price | Reason |")
		fmt.Fprintln(w, "|:---|---:|:---|:---|---:|---:|:---|")
		for _, s := range skipped {
			fmt.Fprintf(w, "| %s | %d | %s | %s | %s | %s | %s |\n",
				s.Trade.Date,
				s.Trade.ID,
				s.Trade.Ticker,
				s.Trade.Side,
				s.Trade.Shares,
				s.Trade.Price,
				escapeCell(s.Err.Error()),
			)
		}
		return len(skipped) > 0
	})
	return b.String()
}

// escapeCell makes s safe to use in a table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", "; ")
}
