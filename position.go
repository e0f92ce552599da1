package portfolio

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mesmeriz2/portfolio/date"
)

// Position is the FIFO cost-basis ledger of a single ticker.
//
// Buys append lots at the back of the queue, sells consume lots from the front.
// Shares and cost always equal the sums over the open lots.
type Position struct {
	ticker   string
	cur      string // currency of the first trade, "" until then
	lots     lots
	shares   Quantity
	cost     Money
	realized Money
	history  []RealizedPL
	firstBuy date.Date // sticky, survives full liquidation
}

// NewPosition returns an empty position for ticker.
func NewPosition(ticker string) *Position {
	return &Position{ticker: normalizeTicker(ticker)}
}

func normalizeTicker(ticker string) string { return strings.ToUpper(strings.TrimSpace(ticker)) }

func (p *Position) Ticker() string    { return p.ticker }
func (p *Position) Currency() string  { return p.cur }
func (p *Position) Shares() Quantity  { return p.shares }
func (p *Position) TotalCost() Money  { return p.cost }
func (p *Position) RealizedPL() Money { return p.realized }
func (p *Position) LotCount() int     { return len(p.lots) }
func (p *Position) Lots() []LotView   { return p.lots.views() }
func (p *Position) IsClosed() bool    { return p.shares.IsZero() }
func (p *Position) zero() Money       { return M(0, p.cur) }

// History returns the realized records of every sell applied, oldest first.
func (p *Position) History() []RealizedPL { return slices.Clone(p.history) }

// FirstBuyDate returns the date of the first buy ever applied, false if there was none.
func (p *Position) FirstBuyDate() (date.Date, bool) {
	return p.firstBuy, !p.firstBuy.IsZero()
}

// accepts checks that amounts are expressed in the position currency.
func (p *Position) accepts(amounts ...Money) error {
	for _, m := range amounts {
		if p.cur != "" && m.cur != "" && m.cur != p.cur {
			return fmt.Errorf("%w: %s amount %s for a %s position", ErrInvalidTrade, p.ticker, m, p.cur)
		}
	}
	return nil
}

// adopt records the position currency from the first trade that carries one.
func (p *Position) adopt(m Money) {
	if p.cur == "" {
		p.cur = m.cur
	}
}

// AddBuy appends a lot of shares bought at price per share.
//
// The fee is spread evenly over the shares and becomes part of the lot unit
// price, so it is included in the cost basis.
func (p *Position) AddBuy(shares Quantity, price Money, on date.Date, tradeID int64, fee Money) error {
	if !shares.IsPositive() {
		return fmt.Errorf("%w: buy quantity must be positive, got %s", ErrInvalidTrade, shares)
	}
	if err := p.accepts(price, fee); err != nil {
		return err
	}
	p.adopt(price)

	if p.firstBuy.IsZero() {
		p.firstBuy = on
	}

	effective := price
	if !fee.IsZero() {
		effective = price.Add(fee.Div(shares))
	}

	p.lots = append(p.lots, &lot{
		shares:    shares,
		price:     effective,
		date:      on,
		tradeID:   tradeID,
		remaining: shares,
	})
	p.shares = p.shares.Add(shares)
	p.cost = p.cost.Add(effective.Mul(shares))
	return nil
}

// match returns the lot fragments that a sale of shares at price would consume,
// oldest lot first. It does not modify the lots.
func (l lots) match(shares Quantity, price Money) (matched []MatchedLot, costBasis, pl Money) {
	owed := shares
	for _, x := range l {
		if !owed.IsPositive() {
			break
		}
		taken := minQuantity(x.remaining, owed)
		basis := x.price.Mul(taken)
		proceeds := price.Mul(taken)
		matched = append(matched, MatchedLot{
			BuyTradeID: x.tradeID,
			BuyPrice:   x.price,
			BuyDate:    x.date,
			Shares:     taken,
			CostBasis:  basis,
			Proceeds:   proceeds,
			PL:         proceeds.Sub(basis),
		})
		costBasis = costBasis.Add(basis)
		pl = pl.Add(proceeds.Sub(basis))
		owed = owed.Sub(taken)
	}
	return matched, costBasis, pl
}

// checkSell validates a sale of shares at price against the current holdings.
func (p *Position) checkSell(shares Quantity, amounts ...Money) error {
	if !shares.IsPositive() {
		return fmt.Errorf("%w: sell quantity must be positive, got %s", ErrInvalidTrade, shares)
	}
	if err := p.accepts(amounts...); err != nil {
		return err
	}
	if p.shares.LessThan(shares) {
		return &InsufficientSharesError{Ticker: p.ticker, Requested: shares, Held: p.shares}
	}
	return nil
}

// Sell consumes shares from the oldest lots and returns the realized profit or loss.
//
// The whole fee is deducted once from the total P&L, it is not spread over the
// matched lots (unlike buys where it is part of the unit price).
//
// Selling more than the position holds fails with an *InsufficientSharesError
// and leaves the position untouched.
func (p *Position) Sell(shares Quantity, price Money, on date.Date, tradeID int64, fee Money) (RealizedPL, error) {
	if err := p.checkSell(shares, price, fee); err != nil {
		return RealizedPL{}, err
	}

	matched, costBasis, pl := p.lots.match(shares, price)

	for _, m := range matched {
		front := p.lots[0]
		if front.remaining.LessThanOrEqual(m.Shares) {
			p.lots = p.lots.popFront()
		} else {
			front.remaining = front.remaining.Sub(m.Shares)
		}
	}
	p.shares = p.shares.Sub(shares)
	p.cost = p.cost.Sub(costBasis)

	if !fee.IsZero() {
		pl = pl.Sub(fee)
	}
	pl = p.zero().Add(pl)
	p.realized = p.realized.Add(pl)

	r := RealizedPL{
		Ticker:      p.ticker,
		SellTradeID: tradeID,
		Shares:      shares,
		PL:          pl,
		PLPerShare:  pl.Div(shares),
		Matched:     matched,
		SellPrice:   price,
		SellDate:    on,
		CostBasis:   p.zero().Add(costBasis),
		Fee:         fee,
	}
	p.history = append(p.history, r)
	return r, nil
}

// AvgCost returns the average unit cost of the shares currently held, 0 when none are.
func (p *Position) AvgCost() Money {
	if p.shares.IsZero() {
		return p.zero()
	}
	return p.cost.Div(p.shares)
}

// UnrealizedPL returns the paper gain of the held shares at price, and its
// ratio to the cost basis in percent.
//
// Both are 0 when nothing is held, the percentage is also 0 when the cost basis is 0.
// price must be expressed in the position currency.
func (p *Position) UnrealizedPL(price Money) (Money, Percent) {
	return unrealized(p.shares, p.cost, price)
}

func unrealized(shares Quantity, cost Money, price Money) (Money, Percent) {
	if shares.IsZero() {
		return M(0, cost.cur), 0
	}
	pl := price.Mul(shares).Sub(cost)
	if !cost.IsPositive() {
		return pl, 0
	}
	return pl, Percent(pl.Ratio(cost).Shift(2).InexactFloat64())
}

// HoldingDays returns the number of days between the first buy and asOf.
// It returns false if the position was never bought.
func (p *Position) HoldingDays(asOf date.Date) (int, bool) {
	if p.firstBuy.IsZero() {
		return 0, false
	}
	return asOf.DaysSince(p.firstBuy), true
}

// Summary returns a snapshot of the position, without market data.
func (p *Position) Summary(asOf date.Date) PositionSummary {
	s := PositionSummary{
		Ticker:     p.ticker,
		Shares:     p.shares,
		AvgCost:    p.AvgCost(),
		TotalCost:  p.zero().Add(p.cost),
		Closed:     p.IsClosed(),
		LotCount:   len(p.lots),
		RealizedPL: p.zero().Add(p.realized),
	}
	if first, ok := p.FirstBuyDate(); ok {
		days, _ := p.HoldingDays(asOf)
		s.FirstBuyDate = &first
		s.HoldingDays = &days
	}
	return s
}
