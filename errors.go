package portfolio

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientShares is returned when a sell asks for more shares than the position holds.
	ErrInsufficientShares = errors.New("insufficient shares")
	// ErrInvalidTrade is returned for trades that cannot be applied to a position.
	ErrInvalidTrade = errors.New("invalid trade")
	// ErrUnknownSide is returned when parsing a trade side other than BUY or SELL.
	ErrUnknownSide = errors.New("unknown trade side")
)

// InsufficientSharesError describes an oversell.
type InsufficientSharesError struct {
	Ticker    string
	Requested Quantity
	Held      Quantity
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("cannot sell %v %s, position is only %v", e.Requested, e.Ticker, e.Held)
}

func (e *InsufficientSharesError) Unwrap() error { return ErrInsufficientShares }
