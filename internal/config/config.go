package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/nunja524/Salmonrun-BINGO/internal/domain"
)

type Config struct {
	HTTPAddr        string        `env:"BINGO_HTTP_ADDR" envDefault:":8080"`
	LogLevelName    string        `env:"BINGO_LOG_LEVEL" envDefault:"info"`
	DBPath          string        `env:"BINGO_DB_PATH" envDefault:"data/bingo.db"`
	CatalogURLs     []string      `env:"BINGO_CATALOG_URLS" envSeparator:","`
	CatalogTimeout  time.Duration `env:"BINGO_CATALOG_TIMEOUT" envDefault:"10s"`
	WriteDelay      time.Duration `env:"BINGO_WRITE_DELAY" envDefault:"16ms"`
	DefaultSize     int           `env:"BINGO_DEFAULT_SIZE" envDefault:"5"`
	DefaultModeName string        `env:"BINGO_DEFAULT_MODE" envDefault:"exclude-special"`
	DefaultFree     bool          `env:"BINGO_DEFAULT_FREE" envDefault:"false"`
	CenterDuplicate bool          `env:"BINGO_CENTER_DUPLICATE" envDefault:"false"`
	PageURL         string        `env:"BINGO_PAGE_URL"`
	OTelEndpoint    string        `env:"BINGO_OTEL_ENDPOINT"`

	LogLevel    slog.Level  `env:"-"`
	DefaultMode domain.Mode `env:"-"`
}

func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	level, err := parseLogLevel(c.LogLevelName)
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	c.DefaultMode = domain.Mode(c.DefaultModeName)
	if !c.DefaultMode.Valid() {
		return Config{}, fmt.Errorf("invalid BINGO_DEFAULT_MODE %q", c.DefaultModeName)
	}
	if !domain.ValidSize(c.DefaultSize) {
		return Config{}, fmt.Errorf("invalid BINGO_DEFAULT_SIZE %d: %w", c.DefaultSize, domain.ErrInvalidSize)
	}
	c.CatalogURLs = trimURLs(c.CatalogURLs)

	return c, nil
}

func trimURLs(in []string) []string {
	var out []string
	for _, u := range in {
		u = strings.TrimSpace(u)
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid BINGO_LOG_LEVEL %q", s)
	}
}
