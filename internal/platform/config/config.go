// Package config loads the runtime configuration for the secmaster jobs.
//
// Values are resolved in three layers: an optional YAML file, then the
// process environment (a .env file in the working directory is loaded
// into the environment first), then the built-in defaults for anything
// still unset.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration object.
type Config struct {
	Database DatabaseConfig `yaml:"database" env:", prefix=DB_"`
	Logging  LoggingConfig  `yaml:"logging" env:", prefix=LOG_"`
	HTTP     HTTPConfig     `yaml:"http" env:", prefix=HTTP_"`
	Symbols  SymbolsConfig  `yaml:"symbols" env:", prefix=SYMBOLS_"`
	Prices   PricesConfig   `yaml:"prices" env:", prefix=PRICES_"`
	Futures  FuturesConfig  `yaml:"futures" env:", prefix=FUTURES_"`
	Server   ServerConfig   `yaml:"server" env:", prefix=SERVER_"`
}

// DatabaseConfig selects the gorm dialect and its connection parameters.
// Path is only used by sqlite; the remaining fields by mysql and postgres.
type DatabaseConfig struct {
	Driver   string `yaml:"driver" env:"DRIVER, overwrite, default=sqlite"`
	Path     string `yaml:"path" env:"PATH, overwrite, default=securities_master.db"`
	Host     string `yaml:"host" env:"HOST, overwrite, default=localhost"`
	Port     string `yaml:"port" env:"PORT, overwrite"`
	User     string `yaml:"user" env:"USER, overwrite"`
	Password string `yaml:"password" env:"PASSWORD, overwrite"`
	Name     string `yaml:"name" env:"NAME, overwrite, default=securities_master"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE, overwrite, default=disable"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LEVEL, overwrite, default=info"`
	Format string `yaml:"format" env:"FORMAT, overwrite, default=text"`
}

// HTTPConfig configures the outbound client shared by the scrapers.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout" env:"TIMEOUT, overwrite, default=30s"`
	UserAgent string        `yaml:"user_agent" env:"USER_AGENT, overwrite"`
}

// SymbolsConfig configures the constituents scraper.
type SymbolsConfig struct {
	SourceURL string `yaml:"source_url" env:"SOURCE_URL, overwrite, default=https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"`
}

// PricesConfig configures the daily bar ingestion job.
type PricesConfig struct {
	BaseURL   string        `yaml:"base_url" env:"BASE_URL, overwrite, default=https://query1.finance.yahoo.com"`
	StartDate string        `yaml:"start_date" env:"START_DATE, overwrite, default=2000-01-01"`
	Vendor    string        `yaml:"vendor" env:"VENDOR, overwrite, default=Yahoo Finance"`
	OnError   string        `yaml:"on_error" env:"ON_ERROR, overwrite, default=continue"`
	MinDelay  time.Duration `yaml:"min_delay" env:"MIN_DELAY, overwrite, default=1s"`
	MaxDelay  time.Duration `yaml:"max_delay" env:"MAX_DELAY, overwrite, default=3s"`
}

// FuturesConfig configures the continuous futures builder.
type FuturesConfig struct {
	Root         string `yaml:"root" env:"ROOT, overwrite, default=ES"`
	Months       string `yaml:"months" env:"MONTHS, overwrite, default=HMUZ"`
	Exchange     string `yaml:"exchange" env:"EXCHANGE, overwrite, default=CME"`
	RolloverDays int    `yaml:"rollover_days" env:"ROLLOVER_DAYS, overwrite, default=5"`
	DataDir      string `yaml:"data_dir" env:"DATA_DIR, overwrite, default=data/futures"`
}

// ServerConfig configures the read-only HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr" env:"ADDR, overwrite, default=:8080"`
}

// Load reads the configuration. path may be empty, in which case only the
// environment and the defaults are consulted.
func Load(ctx context.Context, path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return load(ctx, path, envconfig.OsLookuper())
}

func load(ctx context.Context, path string, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields that have a closed set of values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Prices.OnError {
	case "continue", "abort":
	default:
		return fmt.Errorf("prices.on_error must be continue or abort, got %q", c.Prices.OnError)
	}
	if c.Prices.MinDelay < 0 || c.Prices.MaxDelay < c.Prices.MinDelay {
		return fmt.Errorf("invalid request delay range [%s, %s]", c.Prices.MinDelay, c.Prices.MaxDelay)
	}
	if c.Futures.RolloverDays < 0 {
		return fmt.Errorf("futures.rollover_days must be >= 0, got %d", c.Futures.RolloverDays)
	}
	if _, err := time.Parse(time.DateOnly, c.Prices.StartDate); err != nil {
		return fmt.Errorf("prices.start_date: %w", err)
	}
	return nil
}
