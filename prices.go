package portfolio

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// DefaultPricePath reads quotes from a flat {"AAPL": 189.5} document.
const DefaultPricePath = `$["{ticker}"]`

// Prices holds the latest market price per ticker.
type Prices map[string]Money

// Get returns the price of ticker, case-insensitively.
func (p Prices) Get(ticker string) (Money, bool) {
	m, ok := p[normalizeTicker(ticker)]
	return m, ok
}

// Set records the price of ticker.
func (p Prices) Set(ticker string, price Money) { p[normalizeTicker(ticker)] = price }

// LoadPrices extracts the price of each ticker from a JSON quote document.
//
// path is a JSONPath expression where "{ticker}" is replaced by the ticker,
// for instance `$.quotes["{ticker}"].close`. Tickers missing from the document
// are left out of the result.
func LoadPrices(r io.Reader, path, currency string, tickers []string) (Prices, error) {
	if path == "" {
		path = DefaultPricePath
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("invalid quote document: %w", err)
	}

	prices := make(Prices)
	for _, ticker := range tickers {
		ticker = normalizeTicker(ticker)
		expr := strings.ReplaceAll(path, "{ticker}", ticker)
		jval, err := jsonpath.Get(expr, jobj)
		if err != nil {
			// unknown key: no quote for this ticker.
			continue
		}
		// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
		// by this call I keep the first one if any
		if jlist, ok := jval.([]any); ok {
			if len(jlist) == 0 {
				continue
			}
			jval = jlist[0]
		}
		price, err := quoteValue(jval)
		if err != nil {
			return nil, fmt.Errorf("error parsing price of %s at %q: %w", ticker, expr, err)
		}
		if !price.IsPositive() {
			return nil, fmt.Errorf("price of %s must be positive, got %s", ticker, price)
		}
		prices[ticker] = M(price, currency)
	}
	return prices, nil
}

func quoteValue(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case json.Number:
		return decimal.NewFromString(x.String())
	case float64:
		return decimal.NewFromFloat(x), nil
	case string:
		return decimal.NewFromString(x)
	default:
		return decimal.Zero, fmt.Errorf("not a number: %v", v)
	}
}
