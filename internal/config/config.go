package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// ErrConfiguration marks a fatal configuration problem. It is reported once
// and never retried.
var ErrConfiguration = errors.New("configuration error")

// Config keeps runtime settings for the service.
type Config struct {
	Host           string   `env:"HOST"`
	Port           string   `env:"PORT" envDefault:"8080"`
	StoreBackend   string   `env:"STORE_BACKEND" envDefault:"sqlite"`
	SQLitePath     string   `env:"SQLITE_PATH" envDefault:"taskmaster.db"`
	DatabaseURL    string   `env:"DATABASE_URL"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	TelegramToken  string   `env:"TELEGRAM_TOKEN"`
	TelegramChatID int64    `env:"TELEGRAM_CHAT_ID"`
	ReportTime     string   `env:"REPORT_TIME"`

	// ReportIntervalHours repeats the report every N hours; 0 disables it.
	ReportIntervalHours int `env:"REPORT_INTERVAL_HOURS"`
}

// Load reads an optional .env file from the working directory, then the
// process environment.
func Load() (Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit env file path. An empty path skips the
// file.
func LoadFrom(envFile string) (Config, error) {
	if envFile != "" {
		if err := LoadEnvFile(envFile); err != nil {
			return Config{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: parse env: %v", ErrConfiguration, err)
	}

	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.SQLitePath = strings.TrimSpace(cfg.SQLitePath)
	cfg.TelegramToken = strings.TrimSpace(cfg.TelegramToken)
	cfg.ReportTime = strings.TrimSpace(cfg.ReportTime)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: SQLITE_PATH is empty", ErrConfiguration)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for the postgres backend", ErrConfiguration)
		}
	default:
		return fmt.Errorf("%w: unknown STORE_BACKEND %q", ErrConfiguration, c.StoreBackend)
	}
	if c.Port == "" {
		return fmt.Errorf("%w: PORT is empty", ErrConfiguration)
	}
	if c.ReportTime != "" && c.TelegramChatID == 0 {
		return fmt.Errorf("%w: REPORT_TIME needs TELEGRAM_CHAT_ID", ErrConfiguration)
	}
	if c.ReportIntervalHours < 0 {
		return fmt.Errorf("%w: REPORT_INTERVAL_HOURS must not be negative", ErrConfiguration)
	}
	if c.ReportIntervalHours > 0 && c.TelegramChatID == 0 {
		return fmt.Errorf("%w: REPORT_INTERVAL_HOURS needs TELEGRAM_CHAT_ID", ErrConfiguration)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// DSN returns the connection string for the selected backend.
func (c Config) DSN() string {
	if c.StoreBackend == BackendPostgres {
		return c.DatabaseURL
	}
	return c.SQLitePath
}

// ReportInterval is the period of the repeating report, zero when disabled.
func (c Config) ReportInterval() time.Duration {
	return time.Duration(c.ReportIntervalHours) * time.Hour
}

// ReportsEnabled reports whether any scheduled report is configured.
func (c Config) ReportsEnabled() bool {
	return c.ReportTime != "" || c.ReportIntervalHours > 0
}

// BotEnabled reports whether the Telegram front end should start.
func (c Config) BotEnabled() bool {
	return c.TelegramToken != ""
}
