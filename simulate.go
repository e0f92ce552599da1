package portfolio

// SellPreview is the outcome a sell would have, computed without applying it.
type SellPreview struct {
	Ticker   string
	Shares   Quantity
	Price    Money
	Matched  []MatchedLot
	Held     Quantity
	AvgCost  Money
	Proceeds Money
	// CostBasis is the cost of the matched lots.
	CostBasis Money
	// PL is gross of any fee.
	PL Money

	Remaining                    Quantity
	RemainingCost                Money
	RemainingAvgCost             Money
	RemainingUnrealizedPL        Money
	RemainingUnrealizedPLPercent Percent
}

// SimulateSell previews a FIFO sale of shares at price. The position is not modified.
//
// It fails like Sell when shares exceed the holdings.
func (p *Position) SimulateSell(shares Quantity, price Money) (SellPreview, error) {
	if err := p.checkSell(shares, price); err != nil {
		return SellPreview{}, err
	}
	matched, costBasis, pl := p.lots.match(shares, price)

	remaining := p.shares.Sub(shares)
	remainingCost := p.zero().Add(p.cost).Sub(costBasis)
	remainingAvg := p.zero()
	if remaining.IsPositive() {
		remainingAvg = remainingCost.Div(remaining)
	}
	upl, upct := unrealized(remaining, remainingCost, price)

	return SellPreview{
		Ticker:                       p.ticker,
		Shares:                       shares,
		Price:                        price,
		Matched:                      matched,
		Held:                         p.shares,
		AvgCost:                      p.AvgCost(),
		Proceeds:                     price.Mul(shares),
		CostBasis:                    p.zero().Add(costBasis),
		PL:                           p.zero().Add(pl),
		Remaining:                    remaining,
		RemainingCost:                remainingCost,
		RemainingAvgCost:             remainingAvg,
		RemainingUnrealizedPL:        upl,
		RemainingUnrealizedPLPercent: upct,
	}, nil
}
