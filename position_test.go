package portfolio

import (
	"errors"
	"testing"

	"github.com/mesmeriz2/portfolio/date"
)

func TestPosition_SimpleBuy(t *testing.T) {
	p := NewPosition("aapl")
	if err := p.AddBuy(Q(10), USD(100), day("2024-01-10"), 1, Money{}); err != nil {
		t.Fatalf("AddBuy() error = %v", err)
	}

	if got := p.Ticker(); got != "AAPL" {
		t.Errorf("Ticker() = %q, want %q", got, "AAPL")
	}
	if got, want := p.Shares(), Q(10); !got.Equal(want) {
		t.Errorf("Shares() = %v, want %v", got, want)
	}
	if got, want := p.AvgCost(), USD(100); !got.Equal(want) {
		t.Errorf("AvgCost() = %v, want %v", got, want)
	}
	if got, want := p.TotalCost(), USD(1000); !got.Equal(want) {
		t.Errorf("TotalCost() = %v, want %v", got, want)
	}
	if p.IsClosed() {
		t.Error("IsClosed() = true, want false")
	}
}

func TestPosition_MultipleBuys(t *testing.T) {
	p := NewPosition("AAPL")
	p.AddBuy(Q(10), USD(100), day("2024-01-10"), 1, Money{})
	p.AddBuy(Q(5), USD(120), day("2024-02-02"), 2, Money{})

	if got, want := p.Shares(), Q(15); !got.Equal(want) {
		t.Errorf("Shares() = %v, want %v", got, want)
	}
	if got, want := p.TotalCost(), USD(1600); !got.Equal(want) {
		t.Errorf("TotalCost() = %v, want %v", got, want)
	}
	if got, want := p.AvgCost().Round(), USD(106.67); !got.Equal(want) {
		t.Errorf("AvgCost() = %v, want %v", got, want)
	}
	if got := p.LotCount(); got != 2 {
		t.Errorf("LotCount() = %d, want 2", got)
	}
}

func TestPosition_BuyFeeIsPartOfCostBasis(t *testing.T) {
	p := NewPosition("AAPL")
	p.AddBuy(Q(10), USD(100), day("2024-01-10"), 1, USD(5))

	if got, want := p.AvgCost(), USD(100.5); !got.Equal(want) {
		t.Errorf("AvgCost() = %v, want %v", got, want)
	}
	if got, want := p.TotalCost(), USD(1005); !got.Equal(want) {
		t.Errorf("TotalCost() = %v, want %v", got, want)
	}

	r, err := p.Sell(Q(10), USD(110), day("2024-02-01"), 2, Money{})
	if err != nil {
		t.Fatalf("Sell() error = %v", err)
	}
	if got, want := r.PL, USD(95); !got.Equal(want) {
		t.Errorf("PL = %v, want %v", got, want)
	}
	if got, want := r.Matched[0].BuyPrice, USD(100.5); !got.Equal(want) {
		t.Errorf("BuyPrice = %v, want %v", got, want)
	}
}

func TestPosition_FIFOSell(t *testing.T) {
	p := NewPosition("AAPL")
	p.AddBuy(Q(10), USD(100), day("2024-01-10"), 1, Money{})
	p.AddBuy(Q(5), USD(120), day("2024-02-02"), 2, Money{})

	// 8 shares out of the first lot of 10.
	r, err := p.Sell(Q(8), USD(130), day("2024-03-15"), 3, USD(1.6))
	if err != nil {
		t.Fatalf("Sell() error = %v", err)
	}

	if got, want := p.Shares(), Q(7); !got.Equal(want) {
		t.Errorf("Shares() = %v, want %v", got, want)
	}
	if got, want := r.PL, USD(238.4); !got.Equal(want) {
		t.Errorf("PL = %v, want %v", got, want)
	}
	if got, want := p.RealizedPL(), USD(238.4); !got.Equal(want) {
		t.Errorf("RealizedPL() = %v, want %v", got, want)
	}
	if got, want := r.PLPerShare, USD(29.8); !got.Equal(want) {
		t.Errorf("PLPerShare = %v, want %v", got, want)
	}
	if got, want := r.CostBasis, USD(800); !got.Equal(want) {
		t.Errorf("CostBasis = %v, want %v", got, want)
	}

	// The whole sell is matched against the first lot at $100, not a blended average.
	if len(r.Matched) != 1 {
		t.Fatalf("got %d matched lots, want 1: %v", len(r.Matched), r.Matched)
	}
	m := r.Matched[0]
	if m.BuyTradeID != 1 || !m.Shares.Equal(Q(8)) || !m.CostBasis.Equal(USD(800)) || !m.Proceeds.Equal(USD(1040)) || !m.PL.Equal(USD(240)) {
		t.Errorf("unexpected matched lot %+v", m)
	}

	lots := p.Lots()
	if len(lots) != 2 {
		t.Fatalf("got %d lots, want 2", len(lots))
	}
	if !lots[0].Remaining.Equal(Q(2)) || lots[0].TradeID != 1 {
		t.Errorf("first lot = %+v, want 2 remaining of trade 1", lots[0])
	}
	if !lots[1].Remaining.Equal(Q(5)) || lots[1].TradeID != 2 {
		t.Errorf("second lot = %+v, want 5 remaining of trade 2", lots[1])
	}
	if got, want := p.TotalCost(), USD(800); !got.Equal(want) {
		t.Errorf("TotalCost() = %v, want %v", got, want)
	}
}

func TestPosition_SellAcrossLots(t *testing.T) {
	p := NewPosition("AAPL")
	p.AddBuy(Q(10), USD(100), day("2024-01-10"), 1, Money{})
	p.AddBuy(Q(5), USD(120), day("2024-02-02"), 2, Money{})

	r, err := p.Sell(Q(12), USD(130), day("2024-03-15"), 3, Money{})
	if err != nil {
		t.Fatalf("Sell() error = %v", err)
	}

	// 10*30 + 2*10
	if got, want := r.PL, USD(320); !got.Equal(want) {
		t.Errorf("PL = %v, want %v", got, want)
	}
	if len(r.Matched) != 2 || r.Matched[0].BuyTradeID != 1 || r.Matched[1].BuyTradeID != 2 {
		t.Fatalf("unexpected matched lots %+v", r.Matched)
	}
	if !r.Matched[1].Shares.Equal(Q(2)) {
		t.Errorf("second fragment shares = %v, want 2", r.Matched[1].Shares)
	}
	if got := p.LotCount(); got != 1 {
		t.Errorf("LotCount() = %d, want 1", got)
	}
	if got, want := p.AvgCost(), USD(120); !got.Equal(want) {
		t.Errorf("AvgCost() = %v, want %v", got, want)
	}
}

func TestPosition_ExactLotIsEvicted(t *testing.T) {
	p := NewPosition("AAPL")
	p.AddBuy(Q(10), USD(100), day("2024-01-10"), 1, Money{})
	p.AddBuy(Q(5), USD(120), day("2024-02-02"), 2, Money{})

	if _, err := p.Sell(Q(10), USD(130), day("2024-03-15"), 3, Money{}); err != nil {
		t.Fatalf("Sell() error = %v", err)
	}
	lots := p.Lots()
	if len(lots) != 1 || lots[0].TradeID != 2 {
		t.Fatalf("lots = %+v, want only the lot of trade 2", lots)
	}
	for _, l := range lots {
		if l.Remaining.IsZero() {
			t.Errorf("queue holds a zero lot %+v", l)
		}
	}
}

func TestPosition_FullSell(t *testing.T) {
	p := NewPosition("MSFT")
	p.AddBuy(Q(3), USD(300), day("2024-04-01"), 4, Money{})

	r, err := p.Sell(Q(3), USD(350), day("2024-06-01"), 5, Money{})
	if err != nil {
		t.Fatalf("Sell() error = %v", err)
	}

	if !p.Shares().IsZero() {
		t.Errorf("Shares() = %v, want 0", p.Shares())
	}
	if !p.IsClosed() {
		t.Error("IsClosed() = false, want true")
	}
	if p.LotCount() != 0 {
		t.Errorf("LotCount() = %d, want 0", p.LotCount())
	}
	if !p.TotalCost().IsZero() {
		t.Errorf("TotalCost() = %v, want 0", p.TotalCost())
	}
	if got, want := r.PL, USD(150); !got.Equal(want) {
		t.Errorf("PL = %v, want %v", got, want)
	}
	// realized P&L and first buy date survive the liquidation.
	if got, want := p.RealizedPL(), USD(150); !got.Equal(want) {
		t.Errorf("RealizedPL() = %v, want %v", got, want)
	}
	if first, ok := p.FirstBuyDate(); !ok || first != day("2024-04-01") {
		t.Errorf("FirstBuyDate() = %v, %v, want 2024-04-01, true", first, ok)
	}
	if got := p.AvgCost(); !got.IsZero() {
		t.Errorf("AvgCost() = %v, want 0", got)
	}
}

func TestPosition_FirstBuyDateIsSticky(t *testing.T) {
	p := NewPosition("MSFT")
	p.AddBuy(Q(3), USD(300), day("2024-04-01"), 1, Money{})
	p.Sell(Q(3), USD(350), day("2024-06-01"), 2, Money{})
	p.AddBuy(Q(1), USD(320), day("2024-07-01"), 3, Money{})

	if first, _ := p.FirstBuyDate(); first != day("2024-04-01") {
		t.Errorf("FirstBuyDate() = %v, want 2024-04-01", first)
	}
	if days, ok := p.HoldingDays(day("2024-04-11")); !ok || days != 10 {
		t.Errorf("HoldingDays() = %d, %v, want 10, true", days, ok)
	}
}

func TestPosition_SellExceedsShares(t *testing.T) {
	p := NewPosition("AAPL")
	p.AddBuy(Q(10), USD(100), day("2024-01-10"), 1, Money{})

	_, err := p.Sell(Q(15), USD(130), day("2024-03-15"), 3, Money{})
	if !errors.Is(err, ErrInsufficientShares) {
		t.Fatalf("Sell() error = %v, want ErrInsufficientShares", err)
	}
	var oversell *InsufficientSharesError
	if !errors.As(err, &oversell) {
		t.Fatalf("Sell() error = %T, want *InsufficientSharesError", err)
	}
	if !oversell.Requested.Equal(Q(15)) || !oversell.Held.Equal(Q(10)) || oversell.Ticker != "AAPL" {
		t.Errorf("unexpected error details %+v", oversell)
	}

	// nothing changed.
	if !p.Shares().Equal(Q(10)) || !p.TotalCost().Equal(USD(1000)) || !p.RealizedPL().IsZero() {
		t.Errorf("position mutated: shares %v cost %v realized %v", p.Shares(), p.TotalCost(), p.RealizedPL())
	}
	if lots := p.Lots(); len(lots) != 1 || !lots[0].Remaining.Equal(Q(10)) {
		t.Errorf("lots mutated: %+v", lots)
	}
	if len(p.History()) != 0 {
		t.Errorf("History() = %v, want empty", p.History())
	}
}

func TestPosition_InvalidTrades(t *testing.T) {
	p := NewPosition("AAPL")
	if err := p.AddBuy(Q(0), USD(100), day("2024-01-10"), 1, Money{}); !errors.Is(err, ErrInvalidTrade) {
		t.Errorf("AddBuy(0) error = %v, want ErrInvalidTrade", err)
	}
	p.AddBuy(Q(10), USD(100), day("2024-01-10"), 2, Money{})
	if err := p.AddBuy(Q(1), M(100, "EUR"), day("2024-01-11"), 3, Money{}); !errors.Is(err, ErrInvalidTrade) {
		t.Errorf("AddBuy(EUR) error = %v, want ErrInvalidTrade", err)
	}
	if _, err := p.Sell(Q(-1), USD(100), day("2024-01-12"), 4, Money{}); !errors.Is(err, ErrInvalidTrade) {
		t.Errorf("Sell(-1) error = %v, want ErrInvalidTrade", err)
	}
	if !p.Shares().Equal(Q(10)) {
		t.Errorf("Shares() = %v, want 10", p.Shares())
	}
}

func TestPosition_UnrealizedPL(t *testing.T) {
	p := NewPosition("AAPL")
	p.AddBuy(Q(10), USD(100), day("2024-01-10"), 1, Money{})

	testCases := []struct {
		price   Money
		wantPL  Money
		wantPct Percent
	}{
		{price: USD(120), wantPL: USD(200), wantPct: 20},
		{price: USD(90), wantPL: USD(-100), wantPct: -10},
		{price: USD(100), wantPL: USD(0), wantPct: 0},
	}
	for _, tc := range testCases {
		pl, pct := p.UnrealizedPL(tc.price)
		if !pl.Equal(tc.wantPL) || !pct.Equal(tc.wantPct) {
			t.Errorf("UnrealizedPL(%v) = %v, %v, want %v, %v", tc.price, pl, pct, tc.wantPL, tc.wantPct)
		}
	}
}

func TestPosition_EmptyFloors(t *testing.T) {
	p := NewPosition("AAPL")

	if got := p.AvgCost(); !got.IsZero() {
		t.Errorf("AvgCost() = %v, want 0", got)
	}
	pl, pct := p.UnrealizedPL(USD(120))
	if !pl.IsZero() || pct != 0 {
		t.Errorf("UnrealizedPL() = %v, %v, want 0, 0", pl, pct)
	}
	if _, ok := p.HoldingDays(date.Today()); ok {
		t.Error("HoldingDays() ok = true for a position never bought")
	}
	if !p.IsClosed() {
		t.Error("IsClosed() = false for an empty position")
	}
}

// TestPosition_CostInvariant checks that shares and cost always match the open lots.
func TestPosition_CostInvariant(t *testing.T) {
	p := NewPosition("AAPL")
	check := func(step string) {
		t.Helper()
		var shares Quantity
		var cost Money
		for _, l := range p.Lots() {
			shares = shares.Add(l.Remaining)
			cost = cost.Add(l.Price.Mul(l.Remaining))
			if !l.Remaining.IsPositive() || l.Remaining.GreaterThan(l.Shares) {
				t.Errorf("%s: lot %+v breaks 0 < remaining <= shares", step, l)
			}
		}
		if !shares.Equal(p.Shares()) {
			t.Errorf("%s: sum of lots = %v, Shares() = %v", step, shares, p.Shares())
		}
		if !cost.Equal(p.TotalCost()) && !(cost.IsZero() && p.TotalCost().IsZero()) {
			t.Errorf("%s: sum of lot costs = %v, TotalCost() = %v", step, cost, p.TotalCost())
		}
	}

	p.AddBuy(Q(3), USD(10), day("2024-01-01"), 1, USD(1)) // fee not divisible evenly
	check("buy 1")
	p.AddBuy(Q(7.5), USD(12.25), day("2024-01-02"), 2, USD(0.75))
	check("buy 2")
	p.Sell(Q(4), USD(13), day("2024-01-03"), 3, USD(1))
	check("sell 1")
	p.Sell(Q(6.5), USD(11), day("2024-01-04"), 4, Money{})
	check("sell 2")
	if !p.IsClosed() {
		t.Errorf("position should be closed, still holds %v", p.Shares())
	}
}
