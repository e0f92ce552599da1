package portfolio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/mesmeriz2/portfolio/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// tradeLine is the JSONL representation of a trade.
type tradeLine struct {
	ID       int64           `json:"id"`
	Account  string          `json:"account"`
	Date     date.Date       `json:"date"`
	Ticker   string          `json:"ticker"`
	Side     Side            `json:"side"`
	Shares   decimal.Decimal `json:"shares"`
	Price    decimal.Decimal `json:"price"`
	Fee      decimal.Decimal `json:"fee"`
	Currency string          `json:"currency"`
}

// MarshalJSON writes the trade as a single JSON object with a stable field order.
func (t Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Optional("account", t.Account)
	w.Append("date", t.Date)
	w.Append("ticker", t.Ticker)
	w.Append("side", t.Side)
	w.Append("shares", t.Shares)
	w.Append("price", t.Price.Decimal())
	if !t.Fee.IsZero() {
		w.Append("fee", t.Fee.Decimal())
	}
	w.Optional("currency", t.Price.Currency())
	return w.MarshalJSON()
}

// UnmarshalJSON reads a trade written by MarshalJSON. The fee is optional.
func (t *Trade) UnmarshalJSON(data []byte) error {
	var line tradeLine
	if err := json.Unmarshal(data, &line); err != nil {
		return err
	}
	*t = Trade{
		ID:      line.ID,
		Account: line.Account,
		Ticker:  line.Ticker,
		Side:    line.Side,
		Shares:  Q(line.Shares),
		Price:   M(line.Price, line.Currency),
		Date:    line.Date,
		Fee:     M(line.Fee, line.Currency),
	}
	return nil
}

// DecodeTrades reads trades from a stream of JSONL data, one trade per line.
// Empty lines are skipped. Trades are returned in file order.
func DecodeTrades(r io.Reader) ([]Trade, error) {
	var trades []Trade
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		lineBytes := scanner.Bytes()
		if len(bytes.TrimSpace(lineBytes)) == 0 {
			continue // Skip blank lines
		}
		var t Trade
		if err := json.Unmarshal(lineBytes, &t); err != nil {
			return nil, fmt.Errorf("line %d: could not decode trade %q: %w", lineNo, string(lineBytes), err)
		}
		trades = append(trades, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading trades: %w", err)
	}
	return trades, nil
}

// EncodeTrade writes a single trade as one JSONL line.
func EncodeTrade(w io.Writer, t Trade) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("could not encode trade %d: %w", t.ID, err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// EncodeTrades writes trades as JSONL, sorted by date then id.
func EncodeTrades(w io.Writer, trades []Trade) error {
	sorted := slices.Clone(trades)
	sortTrades(sorted)
	for _, t := range sorted {
		if err := EncodeTrade(w, t); err != nil {
			return err
		}
	}
	return nil
}

// EncodeRealized writes realized records as JSONL, for persistence by the caller.
func EncodeRealized(w io.Writer, records []RealizedPL) error {
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("could not encode realized record of trade %d: %w", r.SellTradeID, err)
		}
		data = append(data, '\n')
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

// NextTradeID returns an id greater than every id in trades.
func NextTradeID(trades []Trade) int64 {
	var last int64
	for _, t := range trades {
		last = max(last, t.ID)
	}
	return last + 1
}
