package portfolio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mesmeriz2/portfolio/date"
)

// Split is a stock split of a ticker: From shares held before the split date
// become To shares. A reverse split has To < From.
type Split struct {
	Ticker string
	Date   date.Date
	From   Quantity
	To     Quantity
}

// IsReverse reports whether the split reduces the number of shares.
func (s Split) IsReverse() bool { return s.To.LessThan(s.From) }

// String returns the split ratio, like "1:4".
func (s Split) String() string { return s.From.String() + ":" + s.To.String() }

// Validate checks the split fields and returns every failure found.
func (s Split) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Ticker) == "" {
		errs = append(errs, errors.New("ticker is empty"))
	}
	if s.Date.IsZero() {
		errs = append(errs, errors.New("date is missing"))
	}
	if !s.From.IsPositive() {
		errs = append(errs, fmt.Errorf("split from must be positive, got %s", s.From))
	}
	if !s.To.IsPositive() {
		errs = append(errs, fmt.Errorf("split to must be positive, got %s", s.To))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid split of %s: %w", s.Ticker, errors.Join(errs...))
	}
	return nil
}

// applies reports whether t is restated by the split.
func (s Split) applies(t Trade) bool {
	return normalizeTicker(t.Ticker) == normalizeTicker(s.Ticker) && t.Date.Before(s.Date)
}

// AdjustForSplit returns a copy of trades where the trades of the split ticker
// dated before the split are restated in post-split shares, and the number of
// trades restated.
//
// Shares are multiplied by To/From and prices by From/To, so the amount of each
// trade, and therefore every cost basis, is unchanged. Fees are per trade and
// are kept as is. Trades on or after the split date are already post-split.
func AdjustForSplit(trades []Trade, s Split) ([]Trade, int) {
	adjusted := make([]Trade, 0, len(trades))
	n := 0
	for _, t := range trades {
		if s.applies(t) {
			t.Shares = t.Shares.Mul(s.To).Div(s.From)
			t.Price = t.Price.Mul(s.From).Div(s.To)
			n++
		}
		adjusted = append(adjusted, t)
	}
	return adjusted, n
}
