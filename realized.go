package portfolio

import (
	"github.com/mesmeriz2/portfolio/date"
)

// RealizedPL is the profit or loss locked in by one sell.
type RealizedPL struct {
	Account     string // of the sell trade, set by the Engine
	Ticker      string
	SellTradeID int64
	Shares      Quantity
	PL          Money // net of the sell fee
	PLPerShare  Money
	Matched     []MatchedLot // consumed lot fragments, oldest first
	SellPrice   Money
	SellDate    date.Date
	CostBasis   Money // total cost basis consumed
	Fee         Money
}

// MatchedLot is the part of a buy lot consumed by a sell.
type MatchedLot struct {
	BuyTradeID int64
	BuyPrice   Money // effective unit price of the lot
	BuyDate    date.Date
	Shares     Quantity
	CostBasis  Money
	Proceeds   Money
	PL         Money
}

// Proceeds returns the gross amount received for the sale, before fee.
func (r RealizedPL) Proceeds() Money { return r.SellPrice.Mul(r.Shares) }

// MarshalJSON writes the record with a stable field order.
func (r RealizedPL) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("account", r.Account)
	w.Append("ticker", r.Ticker)
	w.Append("trade_id_sell_ref", r.SellTradeID)
	w.Append("sell_date", r.SellDate)
	w.Append("shares", r.Shares)
	w.Append("sell_price", r.SellPrice.Decimal())
	w.Append("pl", r.PL.Round().Decimal())
	w.Append("pl_per_share", r.PLPerShare.Round().Decimal())
	w.Append("total_cost_basis", r.CostBasis.Round().Decimal())
	w.Append("trade_fee", r.Fee.Decimal())
	w.Optional("currency", r.PL.Currency())
	w.Append("matched_lots", r.Matched)
	return w.MarshalJSON()
}

// MarshalJSON writes the fragment with a stable field order.
func (m MatchedLot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("buy_trade_id", m.BuyTradeID)
	w.Append("buy_date", m.BuyDate)
	w.Append("buy_price", m.BuyPrice.Decimal())
	w.Append("shares", m.Shares)
	w.Append("cost_basis", m.CostBasis.Round().Decimal())
	w.Append("proceeds", m.Proceeds.Round().Decimal())
	w.Append("pl", m.PL.Round().Decimal())
	return w.MarshalJSON()
}
