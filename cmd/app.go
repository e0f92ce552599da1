// Package cmd implements the pcs command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/mesmeriz2/portfolio"
	"github.com/mesmeriz2/portfolio/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "trades")
	c.Register(&sellCmd{}, "trades")
	c.Register(&splitCmd{}, "trades")

	c.Register(&positionsCmd{}, "reports")
	c.Register(&realizedCmd{}, "reports")
	c.Register(&simulateCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", config.DefaultFile, "Path to the configuration file (YAML)")
var ledgerFile = flag.String("ledger-file", "", "Path to the trade ledger (JSONL format), overrides the configuration")

// output receives the reports.
var output io.Writer = os.Stdout

// markdownStyle is the glamour style used to print reports, raw markdown is printed when empty.
var markdownStyle = "auto"

// workspace is what every command needs: the configuration, a logger and the trades.
type workspace struct {
	cfg    *config.Config
	logger *zap.Logger
	trades []portfolio.Trade
}

// openWorkspace loads the configuration and decodes the ledger it points to.
func openWorkspace() (*workspace, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *ledgerFile != "" {
		cfg.LedgerFile = *ledgerFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger := newLogger(cfg.Level())

	trades, err := decodeLedger(cfg.LedgerFile)
	if err != nil {
		return nil, fmt.Errorf("loading ledger %q: %w", cfg.LedgerFile, err)
	}
	logger.Debug("ledger loaded", zap.String("file", cfg.LedgerFile), zap.Int("trades", len(trades)))
	return &workspace{cfg: cfg, logger: logger, trades: trades}, nil
}

// replay returns an engine loaded with trades.
func (w *workspace) replay(trades []portfolio.Trade) *portfolio.Engine {
	e := portfolio.NewEngine(portfolio.WithLogger(w.logger), portfolio.WithCurrency(w.cfg.Currency))
	e.ProcessTrades(trades)
	return e
}

// decodeLedger reads the trades of the ledger file. A missing file is an empty ledger.
func decodeLedger(file string) ([]portfolio.Trade, error) {
	f, err := os.Open(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return portfolio.DecodeTrades(f)
}

// appendTrade appends a single trade to the ledger file, creating it if needed.
func appendTrade(file string, t portfolio.Trade) error {
	f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if err := portfolio.EncodeTrade(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeLedger replaces the content of the ledger file with trades, in their order.
// The file is written aside and renamed, so a failure leaves the ledger as it was.
func writeLedger(file string, trades []portfolio.Trade) error {
	tmp, err := os.CreateTemp(filepath.Dir(file), filepath.Base(file)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	for _, t := range trades {
		if err := portfolio.EncodeTrade(tmp, t); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), file)
}

// newLogger returns a console logger writing to stderr at level.
func newLogger(level zapcore.Level) *zap.Logger {
	zc := zap.NewProductionConfig()
	if level == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true
	logger, err := zc.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building logger: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

// printMarkdown renders md for the terminal.
func printMarkdown(md string) {
	if markdownStyle == "" {
		fmt.Fprint(output, md)
		return
	}
	out, err := glamour.Render(md, markdownStyle)
	if err != nil {
		// still readable as is.
		fmt.Fprint(output, md)
		return
	}
	fmt.Fprint(output, out)
}
