package renderer

import (
	"fmt"
	"strings"

	"github.com/mesmeriz2/portfolio"
)

// SplitMarkdown renders the effect of a split on its position.
func SplitMarkdown(s portfolio.Split, restated int, before, after portfolio.PositionSummary) string {
	var b strings.Builder
	kind := "Split"
	if s.IsReverse() {
		kind = "Reverse split"
	}
	fmt.Fprintf(&b, "# %s of %s %s on %s\n\n", kind, strings.ToUpper(s.Ticker), s, s.Date)
	if restated == 1 {
		fmt.Fprint(&b, "1 trade restated.\n\n")
	} else {
		fmt.Fprintf(&b, "%d trades restated.\n\n", restated)
	}

	fmt.Fprintln(&b, "| | Before | After |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	fmt.Fprintf(&b, "| Shares | %s | %s |\n", before.Shares, after.Shares)
	fmt.Fprintf(&b, "| Avg Cost | %s | %s |\n", before.AvgCost.Round(), after.AvgCost.Round())
	fmt.Fprintf(&b, "| Cost Basis | %s | %s |\n", before.TotalCost.Round(), after.TotalCost.Round())
	fmt.Fprintf(&b, "| Realized | %s | %s |\n", before.RealizedPL.SignedString(), after.RealizedPL.SignedString())
	return b.String()
}
