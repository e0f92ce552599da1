package portfolio

import (
	"fmt"
	"slices"

	"github.com/mesmeriz2/portfolio/date"
	"go.uber.org/zap"
)

// Engine replays a list of trades into per-ticker FIFO positions.
//
// An Engine is cheap and not safe for concurrent use: build a fresh one for
// every computation and discard it when the trade set changes.
type Engine struct {
	logger    *zap.Logger
	cur       string // expected currency, adopted from the first trade when empty
	fixedCur  bool
	positions map[string]*Position
	order     []string // tickers by first appearance
	realized  []RealizedPL
	skipped   []SkippedTrade
}

// SkippedTrade is a trade that could not be applied during a replay.
type SkippedTrade struct {
	Trade Trade
	Err   error
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger reports skipped trades to logger. The default logger discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCurrency restricts the engine to trades priced in currency.
func WithCurrency(currency string) Option {
	return func(e *Engine) {
		e.cur = currency
		e.fixedCur = currency != ""
	}
}

// NewEngine returns an empty engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:    zap.NewNop(),
		positions: make(map[string]*Position),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProcessTrades replaces the engine state with the replay of trades.
//
// Trades are applied by date then by id, whatever their order in the slice.
// A trade that cannot be applied (invalid, or selling more than is held) is
// skipped and recorded, the replay goes on with the other trades.
func (e *Engine) ProcessTrades(trades []Trade) {
	e.positions = make(map[string]*Position)
	e.order = nil
	e.realized = nil
	e.skipped = nil
	if !e.fixedCur {
		e.cur = ""
	}

	sorted := slices.Clone(trades)
	sortTrades(sorted)

	for _, t := range sorted {
		if err := e.apply(t); err != nil {
			e.skipped = append(e.skipped, SkippedTrade{Trade: t, Err: err})
			e.logger.Warn("skipping trade",
				zap.Int64("trade_id", t.ID),
				zap.String("ticker", t.Ticker),
				zap.Stringer("side", t.Side),
				zap.Stringer("date", t.Date),
				zap.Error(err),
			)
		}
	}
	e.logger.Debug("trades replayed",
		zap.Int("trades", len(sorted)),
		zap.Int("positions", len(e.order)),
		zap.Int("sells", len(e.realized)),
		zap.Int("skipped", len(e.skipped)),
	)
}

func (e *Engine) apply(t Trade) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if e.cur != "" && t.Price.Currency() != "" && t.Price.Currency() != e.cur {
		return fmt.Errorf("%w: trade %d is priced in %s, expected %s", ErrInvalidTrade, t.ID, t.Price.Currency(), e.cur)
	}
	if e.cur == "" {
		e.cur = t.Price.Currency()
	}

	p := e.getOrCreate(t.Ticker)
	switch t.Side {
	case Buy:
		return p.AddBuy(t.Shares, t.Price, t.Date, t.ID, t.Fee)
	case Sell:
		r, err := p.Sell(t.Shares, t.Price, t.Date, t.ID, t.Fee)
		if err != nil {
			return err
		}
		r.Account = t.Account
		e.realized = append(e.realized, r)
	}
	return nil
}

func (e *Engine) getOrCreate(ticker string) *Position {
	key := normalizeTicker(ticker)
	p, ok := e.positions[key]
	if !ok {
		p = NewPosition(key)
		p.cur = e.cur
		e.positions[key] = p
		e.order = append(e.order, key)
	}
	return p
}

// Currency returns the currency of the replayed trades.
func (e *Engine) Currency() string { return e.cur }

// Position returns the position of ticker, case-insensitively.
func (e *Engine) Position(ticker string) (*Position, bool) {
	p, ok := e.positions[normalizeTicker(ticker)]
	return p, ok
}

// Positions returns a summary of each position, in order of first appearance.
// Closed positions are left out unless includeClosed is set.
func (e *Engine) Positions(includeClosed bool, asOf date.Date) []PositionSummary {
	var summaries []PositionSummary
	for _, ticker := range e.order {
		p := e.positions[ticker]
		if p.IsClosed() && !includeClosed {
			continue
		}
		summaries = append(summaries, p.Summary(asOf))
	}
	return summaries
}

// TotalRealizedPL returns the realized P&L summed over all positions, open or closed.
func (e *Engine) TotalRealizedPL() Money {
	total := M(0, e.cur)
	for _, ticker := range e.order {
		total = total.Add(e.positions[ticker].RealizedPL())
	}
	return total
}

// RealizedPLByTicker returns the realized P&L of ticker, 0 if it was never traded.
func (e *Engine) RealizedPLByTicker(ticker string) Money {
	p, ok := e.Position(ticker)
	if !ok {
		return M(0, e.cur)
	}
	return M(0, e.cur).Add(p.RealizedPL())
}

// RealizedHistory returns every realized record in replay order.
func (e *Engine) RealizedHistory() []RealizedPL { return slices.Clone(e.realized) }

// Skipped returns the trades that were not applied by the last replay.
func (e *Engine) Skipped() []SkippedTrade { return slices.Clone(e.skipped) }
