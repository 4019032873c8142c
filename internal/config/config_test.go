package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/nunja524/Salmonrun-BINGO/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.DefaultSize != 5 || cfg.DefaultMode != domain.ModeExcludeSpecial {
		t.Errorf("defaults = %d %s", cfg.DefaultSize, cfg.DefaultMode)
	}
	if cfg.WriteDelay != 16*time.Millisecond {
		t.Errorf("WriteDelay = %v", cfg.WriteDelay)
	}
	if len(cfg.CatalogURLs) != 0 {
		t.Errorf("CatalogURLs = %v", cfg.CatalogURLs)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BINGO_LOG_LEVEL", "DEBUG")
	t.Setenv("BINGO_DEFAULT_SIZE", "9")
	t.Setenv("BINGO_DEFAULT_MODE", "special-only")
	t.Setenv("BINGO_CATALOG_URLS", "https://a.example/weapons.json, ,https://b.example/weapons.json")
	t.Setenv("BINGO_CENTER_DUPLICATE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.DefaultSize != 9 || cfg.DefaultMode != domain.ModeSpecialOnly || !cfg.CenterDuplicate {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.CatalogURLs) != 2 || cfg.CatalogURLs[1] != "https://b.example/weapons.json" {
		t.Errorf("CatalogURLs = %v", cfg.CatalogURLs)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := map[string][2]string{
		"bad level": {"BINGO_LOG_LEVEL", "loud"},
		"bad size":  {"BINGO_DEFAULT_SIZE", "12"},
		"bad mode":  {"BINGO_DEFAULT_MODE", "bears"},
		"bad delay": {"BINGO_WRITE_DELAY", "soon"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadParseErrorPrefix(t *testing.T) {
	t.Setenv("BINGO_DEFAULT_SIZE", "not-an-int")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
