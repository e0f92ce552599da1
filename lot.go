package portfolio

import "github.com/mesmeriz2/portfolio/date"

// lot represents a single purchase of a security, used for cost basis calculations.
type lot struct {
	shares    Quantity // originally purchased
	price     Money    // effective unit price, fees included
	date      date.Date
	tradeID   int64
	remaining Quantity // not yet sold, 0 < remaining <= shares
}

// cost returns the cost basis of the remaining shares.
func (l lot) cost() Money { return l.price.Mul(l.remaining) }

// lots is a FIFO queue, oldest purchase first. Lots are never reordered.
type lots []*lot

// popFront removes the oldest lot.
func (l lots) popFront() lots {
	l[0] = nil
	return l[1:]
}

// LotView is a read-only copy of an open lot.
type LotView struct {
	TradeID   int64
	Date      date.Date
	Shares    Quantity
	Remaining Quantity
	Price     Money
}

func (l lots) views() []LotView {
	views := make([]LotView, 0, len(l))
	for _, x := range l {
		views = append(views, LotView{TradeID: x.tradeID, Date: x.date, Shares: x.shares, Remaining: x.remaining, Price: x.price})
	}
	return views
}
