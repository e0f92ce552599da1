package portfolio

import "github.com/mesmeriz2/portfolio/date"

// PositionSummary is a snapshot of one position.
//
// The market fields are nil until a price is attached with WithPrice.
type PositionSummary struct {
	Ticker       string
	Shares       Quantity
	AvgCost      Money
	TotalCost    Money
	Closed       bool
	LotCount     int
	FirstBuyDate *date.Date // nil if never bought
	HoldingDays  *int       // nil if never bought
	RealizedPL   Money

	MarketPrice         *Money
	MarketValue         *Money
	UnrealizedPL        *Money
	UnrealizedPLPercent *Percent
}

// WithPrice returns a copy of s valued at price.
func (s PositionSummary) WithPrice(price Money) PositionSummary {
	value := price.Mul(s.Shares)
	pl, pct := unrealized(s.Shares, s.TotalCost, price)
	s.MarketPrice = &price
	s.MarketValue = &value
	s.UnrealizedPL = &pl
	s.UnrealizedPLPercent = &pct
	return s
}

// Priced reports whether a market price has been attached.
func (s PositionSummary) Priced() bool { return s.MarketPrice != nil }

// Value attaches prices to every summary that has one, the others are left unpriced.
func Value(summaries []PositionSummary, prices Prices) []PositionSummary {
	valued := make([]PositionSummary, 0, len(summaries))
	for _, s := range summaries {
		if price, ok := prices.Get(s.Ticker); ok && price.compatible(s.TotalCost) {
			s = s.WithPrice(price)
		}
		valued = append(valued, s)
	}
	return valued
}
