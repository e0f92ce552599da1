package cmd

import (
	"os"
	"strings"

	"github.com/mesmeriz2/portfolio"
	"github.com/mesmeriz2/portfolio/config"
	"github.com/mesmeriz2/portfolio/date"
	"github.com/mesmeriz2/portfolio/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the pcs command line for shell completion.
func Completion() *complete.Command {
	tickers := complete.PredictFunc(predictTickers)
	topics, _ := docs.GetAllTopics()
	trade := &complete.Command{
		Flags: map[string]complete.Predictor{
			"d":       predict.Something,
			"fee":     predict.Something,
			"account": predict.Something,
		},
		Args: tickers,
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"buy":  trade,
			"sell": trade,
			"split": {
				Flags: map[string]complete.Predictor{
					"d": predict.Something,
					"n": predict.Nothing,
				},
				Args: tickers,
			},
			"positions": {
				Flags: map[string]complete.Predictor{
					"d":       predict.Something,
					"account": predict.Something,
					"a":       predict.Nothing,
					"prices":  predict.Files("*.json"),
					"path":    predict.Something,
				},
			},
			"realized": {
				Flags: map[string]complete.Predictor{
					"account": predict.Something,
					"t":       tickers,
					"p":       predict.Set{"month", "quarter", "year"},
					"d":       predict.Something,
					"lots":    predict.Nothing,
					"o":       predict.Files("*.jsonl"),
				},
			},
			"simulate": {
				Flags: map[string]complete.Predictor{
					"d":       predict.Something,
					"account": predict.Something,
				},
				Args: tickers,
			},
			"topic": {Args: predict.Set(append(topics, "*"))},
		},
		Flags: map[string]complete.Predictor{
			"config":      predict.Files("*.yaml"),
			"ledger-file": predict.Files("*.jsonl"),
		},
	}
}

// predictTickers suggests the tickers of the ledger the commands would read.
//
// Flags are not parsed yet when completing, -config and -ledger-file are read
// from the line being completed instead.
func predictTickers(prefix string) []string {
	file := config.DefaultFile
	if v := completionFlag("config"); v != "" {
		file = v
	}
	cfg, err := config.Load(file)
	if err != nil {
		return nil
	}
	if v := completionFlag("ledger-file"); v != "" {
		cfg.LedgerFile = v
	}
	trades, err := decodeLedger(cfg.LedgerFile)
	if err != nil {
		return nil
	}
	e := portfolio.NewEngine(portfolio.WithCurrency(cfg.Currency))
	e.ProcessTrades(trades)

	var tickers []string
	for _, s := range e.Positions(true, date.Today()) {
		tickers = append(tickers, s.Ticker)
	}
	return tickers
}

// completionFlag returns the value of the flag name on the line being completed, "" if absent.
func completionFlag(name string) string {
	args := strings.Fields(os.Getenv("COMP_LINE"))
	for i, arg := range args {
		for _, flag := range []string{"-" + name, "--" + name} {
			if arg == flag && i+1 < len(args) {
				return args[i+1]
			}
			if v, ok := strings.CutPrefix(arg, flag+"="); ok {
				return v
			}
		}
	}
	return ""
}
