package portfolio

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mesmeriz2/portfolio/date"
)

// Side is the direction of a trade.
type Side int

const (
	Buy Side = iota + 1
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// ParseSide parses "BUY" or "SELL", ignoring case.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSide, s)
	}
}

func (s Side) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *Side) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := ParseSide(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Trade is one recorded buy or sell.
//
// IDs are assigned by the ledger and increase with insertion order, they break
// ties between trades of the same day.
type Trade struct {
	ID      int64
	Account string // brokerage account, empty when the ledger has a single one
	Ticker  string
	Side    Side
	Shares  Quantity
	Price   Money // price per share
	Date    date.Date
	Fee     Money // optional, zero when absent
}

// NewBuy returns a BUY trade without fee.
func NewBuy(id int64, on date.Date, ticker string, shares Quantity, price Money) Trade {
	return Trade{ID: id, Ticker: ticker, Side: Buy, Shares: shares, Price: price, Date: on}
}

// NewSell returns a SELL trade without fee.
func NewSell(id int64, on date.Date, ticker string, shares Quantity, price Money) Trade {
	return Trade{ID: id, Ticker: ticker, Side: Sell, Shares: shares, Price: price, Date: on}
}

// InAccount returns a copy of the trade booked in account.
func (t Trade) InAccount(account string) Trade {
	t.Account = account
	return t
}

// WithFee returns a copy of the trade charging fee.
func (t Trade) WithFee(fee Money) Trade {
	t.Fee = fee
	return t
}

// Validate checks the trade fields and returns every failure found.
func (t Trade) Validate() error {
	var errs []error
	if strings.TrimSpace(t.Ticker) == "" {
		errs = append(errs, errors.New("ticker is empty"))
	}
	if t.Side != Buy && t.Side != Sell {
		errs = append(errs, fmt.Errorf("%w: %d", ErrUnknownSide, t.Side))
	}
	if !t.Shares.IsPositive() {
		errs = append(errs, fmt.Errorf("shares must be positive, got %s", t.Shares))
	}
	if !t.Price.IsPositive() {
		errs = append(errs, fmt.Errorf("price must be positive, got %s", t.Price))
	}
	if t.Fee.IsNegative() {
		errs = append(errs, fmt.Errorf("fee must not be negative, got %s", t.Fee))
	}
	if !t.Price.compatible(t.Fee) {
		errs = append(errs, fmt.Errorf("fee currency %s does not match price currency %s", t.Fee.Currency(), t.Price.Currency()))
	}
	if t.Date.IsZero() {
		errs = append(errs, errors.New("date is missing"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: trade %d: %w", ErrInvalidTrade, t.ID, errors.Join(errs...))
	}
	return nil
}

// TradesUntil returns the trades dated on or before on, in their original order.
func TradesUntil(trades []Trade, on date.Date) []Trade {
	var kept []Trade
	for _, t := range trades {
		if !t.Date.After(on) {
			kept = append(kept, t)
		}
	}
	return kept
}

// TradesOfAccount returns the trades booked in account, in their original order.
// Every trade is returned when account is empty.
func TradesOfAccount(trades []Trade, account string) []Trade {
	if account == "" {
		return slices.Clone(trades)
	}
	var kept []Trade
	for _, t := range trades {
		if strings.EqualFold(t.Account, account) {
			kept = append(kept, t)
		}
	}
	return kept
}

// sortTrades sorts trades in replay order.
func sortTrades(trades []Trade) { slices.SortStableFunc(trades, compareTrades) }

// compareTrades orders trades by date then by id.
func compareTrades(a, b Trade) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
