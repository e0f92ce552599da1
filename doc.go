// Package portfolio derives positions, cost basis and profit-and-loss from a
// ledger of buy and sell trades.
//
// The core is a FIFO lot accounting engine:
//   - Each buy opens a lot whose unit price includes the buy fee spread over
//     the shares.
//   - Each sell consumes the oldest open lots first and emits a RealizedPL record
//     listing the matched lot fragments. The sell fee is deducted once from the
//     total, it is not spread over the fragments.
//   - An Engine replays an unordered list of trades, sorted by date then id,
//     into one Position per ticker. Trades that cannot be applied during a
//     replay are skipped and reported, while a direct Position.Sell fails.
//
// Market prices are not part of the engine: callers attach them to the
// position summaries with PositionSummary.WithPrice.
//
// This package serves as the foundational logic for the `pcs` command-line
// tool.
package portfolio
