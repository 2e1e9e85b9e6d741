// Package app encapsulates server assembly and lifecycle: config, store,
// cache, service, router and graceful shutdown.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"fandash/pkg/cache"
	"fandash/pkg/config"
	"fandash/pkg/dashboard"
	"fandash/pkg/logger"
	"fandash/pkg/store"
)

// App holds the server components and lifecycle state.
type App struct {
	cfg      *config.Config
	addr     string
	seedPath string
	version  string
	sources  string

	svc *dashboard.Service
	srv *http.Server
}

// New initializes logging, opens and seeds the store and builds the
// service. It does not start the HTTP server; call Run for that.
func New(cfg *config.Config, addr, seedPath, sources, version string) (*App, error) {
	_ = godotenv.Load(".env")

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	if err := store.Open(cfg.Server.DBPath); err != nil {
		return nil, fmt.Errorf("failed to open store at %q: %w", cfg.Server.DBPath, err)
	}

	if seedPath == "" {
		seedPath = cfg.Server.SeedPath
	}
	var err error
	if seedPath == "" {
		err = store.SeedDefault()
	} else {
		err = store.SeedFile(seedPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to seed store: %w", err)
	}

	c := cache.New(cfg.Cache.TTL.Duration())
	a := &App{
		cfg:      cfg,
		addr:     addr,
		seedPath: seedPath,
		version:  version,
		sources:  sources,
		svc:      dashboard.New(c),
	}
	return a, nil
}

// Run starts the HTTP server and blocks until ctx is canceled or a fatal
// server error occurs. On cancellation the server drains in-flight
// requests before the store closes.
func (a *App) Run(ctx context.Context) error {
	a.printBanner()

	errCh := a.startHTTP()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.srv.Shutdown(shutCtx); err != nil {
			logger.Warn("http_shutdown_incomplete", "error", err)
		}
		if err := store.Close(); err != nil {
			logger.Warn("store_close_failed", "error", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
