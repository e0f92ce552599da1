// Package config handles the pcs configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/mesmeriz2/portfolio"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file read when none is given.
const DefaultFile = "pcs.yaml"

// Config defines the structure of the pcs configuration.
type Config struct {
	LedgerFile string `yaml:"ledger_file"`
	Currency   string `yaml:"currency"`
	LogLevel   string `yaml:"log_level"`
	PricesFile string `yaml:"prices_file"` // default quote file of `pcs positions`
	PricesPath string `yaml:"prices_path"` // JSONPath of a price in the quote file
}

// Defaults returns the configuration used when no file sets a value.
func Defaults() Config {
	return Config{
		LedgerFile: "trades.jsonl",
		Currency:   "USD",
		LogLevel:   "info",
	}
}

// Load reads the YAML configuration file at path on top of the defaults, then
// applies the PCS_* environment variables, also read from a .env file if present.
//
// A missing file is not an error. The returned Config has not been validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %q: %w", path, err)
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.LedgerFile, "PCS_LEDGER_FILE")
	setStr(&cfg.Currency, "PCS_CURRENCY")
	setStr(&cfg.LogLevel, "PCS_LOG_LEVEL")
	setStr(&cfg.PricesFile, "PCS_PRICES_FILE")
	setStr(&cfg.PricesPath, "PCS_PRICES_PATH")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs []error
	if c.LedgerFile == "" {
		errs = append(errs, errors.New("ledger_file is empty"))
	}
	if err := portfolio.ValidateCurrency(c.Currency); err != nil {
		errs = append(errs, fmt.Errorf("currency: %w", err))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// Level returns the configured log level, info when it is invalid.
func (c *Config) Level() zapcore.Level {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}
