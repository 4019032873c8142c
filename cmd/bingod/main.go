package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/nunja524/Salmonrun-BINGO/internal/adapters/catalog"
	httpadapter "github.com/nunja524/Salmonrun-BINGO/internal/adapters/http"
	"github.com/nunja524/Salmonrun-BINGO/internal/adapters/kv/memory"
	"github.com/nunja524/Salmonrun-BINGO/internal/adapters/kv/sqlite"
	"github.com/nunja524/Salmonrun-BINGO/internal/app"
	"github.com/nunja524/Salmonrun-BINGO/internal/config"
	"github.com/nunja524/Salmonrun-BINGO/internal/domain"
	"github.com/nunja524/Salmonrun-BINGO/internal/ports"
	"github.com/nunja524/Salmonrun-BINGO/internal/telemetry"
)

const serviceName = "bingod"

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		logger.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}

	kv, closeKV := openStore(cfg.DBPath, logger)

	cat := newCatalog(cfg, logger)
	// Fail fast: a catalog that cannot load makes every card unbuildable.
	items, err := cat.Items(ctx)
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	logger.Info("catalog loaded", "items", len(items))

	store := app.NewCardStore(kv, cfg.WriteDelay, logger)
	svc := app.NewCardService(cat, store, logger, cfg.CenterDuplicate)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.TracingMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	defaults := app.Defaults{
		Size:        cfg.DefaultSize,
		Mode:        cfg.DefaultMode,
		FreeCell:    cfg.DefaultFree,
		MarkerStyle: domain.MarkerCircle,
		Jitter:      true,
		ShowLines:   true,
	}
	handler := httpadapter.NewHandler(svc, defaults, cfg.PageURL)
	handler.Register(e)

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error("flush pending writes", "error", err)
	}
	if err := closeKV(); err != nil {
		logger.Error("close store", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown", "error", err)
	}
}

// openStore opens the SQLite store at path. An empty path, or a store that
// fails to open, falls back to memory so cards still work for the session.
func openStore(path string, logger *slog.Logger) (ports.KeyValueStore, func() error) {
	noClose := func() error { return nil }
	if path == "" {
		logger.Info("using in-memory store")
		return memory.NewStore(), noClose
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Warn("storage unavailable, using memory", "path", path, "error", err)
			return memory.NewStore(), noClose
		}
	}
	st, err := sqlite.Open(path)
	if err != nil {
		logger.Warn("storage unavailable, using memory", "path", path, "error", err)
		return memory.NewStore(), noClose
	}
	logger.Info("using sqlite store", "path", path)
	return st, st.Close
}

func newCatalog(cfg config.Config, logger *slog.Logger) ports.Catalog {
	if len(cfg.CatalogURLs) == 0 {
		return catalog.NewEmbeddedCatalog()
	}
	return catalog.NewRemoteCatalog(&http.Client{Timeout: cfg.CatalogTimeout}, cfg.CatalogURLs, logger)
}
