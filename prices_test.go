package portfolio

import (
	"strings"
	"testing"
)

func TestLoadPrices(t *testing.T) {
	testCases := []struct {
		name    string
		doc     string
		path    string
		tickers []string
		want    map[string]float64
	}{
		{
			name:    "flat document",
			doc:     `{"AAPL": 189.5, "MSFT": "410.10"}`,
			tickers: []string{"aapl", "MSFT"},
			want:    map[string]float64{"AAPL": 189.5, "MSFT": 410.1},
		},
		{
			name:    "nested document",
			doc:     `{"quotes": {"AAPL": {"close": 190, "open": 185}}}`,
			path:    `$.quotes["{ticker}"].close`,
			tickers: []string{"AAPL"},
			want:    map[string]float64{"AAPL": 190},
		},
		{
			name:    "filter returns a list",
			doc:     `{"data": [{"symbol": "AAPL", "last": 191.25}, {"symbol": "MSFT", "last": 411}]}`,
			path:    `$.data[?(@.symbol == "{ticker}")].last`,
			tickers: []string{"MSFT", "AAPL"},
			want:    map[string]float64{"AAPL": 191.25, "MSFT": 411},
		},
		{
			name:    "missing ticker",
			doc:     `{"AAPL": 189.5}`,
			tickers: []string{"AAPL", "GOOG"},
			want:    map[string]float64{"AAPL": 189.5},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LoadPrices(strings.NewReader(tc.doc), tc.path, "USD", tc.tickers)
			if err != nil {
				t.Fatalf("LoadPrices() error = %v", err)
			}
			if len(got) != len(tc.want) {
				t.Errorf("LoadPrices() = %v, want %v", got, tc.want)
			}
			for ticker, v := range tc.want {
				price, ok := got.Get(ticker)
				if !ok {
					t.Errorf("no price for %s", ticker)
					continue
				}
				if !price.Equal(USD(v)) {
					t.Errorf("price of %s = %v, want %v", ticker, price, v)
				}
			}
		})
	}
}

func TestLoadPrices_Errors(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `AAPL=12`},
		{name: "not a number", doc: `{"AAPL": {"close": 12}}`},
		{name: "negative", doc: `{"AAPL": -12}`},
		{name: "zero", doc: `{"AAPL": 0}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadPrices(strings.NewReader(tc.doc), "", "USD", []string{"AAPL"}); err == nil {
				t.Error("LoadPrices() succeeded, want an error")
			}
		})
	}
}
