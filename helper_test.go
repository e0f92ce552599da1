package portfolio

import (
	"github.com/google/go-cmp/cmp"
	"github.com/mesmeriz2/portfolio/date"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const wit no currency set
func NO(v float64) Money { return M(v, "") }

// day is a helper for test to parse a date from a const.
func day(s string) date.Date { return date.MustParse(s) }

// cmpOpts compares the package values by value rather than by representation.
var cmpOpts = cmp.Options{
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Quantity) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b date.Date) bool { return a == b }),
}

// scenarioTrades is the reference ledger: two AAPL buys partly sold, and a MSFT round trip.
func scenarioTrades() []Trade {
	return []Trade{
		NewBuy(1, day("2024-01-10"), "AAPL", Q(10), USD(100)),
		NewBuy(2, day("2024-02-02"), "AAPL", Q(5), USD(120)),
		NewSell(3, day("2024-03-15"), "AAPL", Q(8), USD(130)).WithFee(USD(1.6)),
		NewBuy(4, day("2024-04-01"), "MSFT", Q(3), USD(300)),
		NewSell(5, day("2024-06-01"), "MSFT", Q(3), USD(350)),
	}
}
