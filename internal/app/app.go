package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/lfreitas/stockpulse/config"
	"github.com/lfreitas/stockpulse/internal/api"
	"github.com/lfreitas/stockpulse/internal/httputil"
	"github.com/lfreitas/stockpulse/internal/marketdata"
	"github.com/lfreitas/stockpulse/internal/service"
	"github.com/lfreitas/stockpulse/internal/storage"
)

// NewMarketClient builds the upstream time-series client from the
// application configuration. Shared by API mode and the analyze CLI.
func NewMarketClient(cfg config.Config) *marketdata.Client {
	return marketdata.NewClient(marketdata.Config{
		BaseURL:  cfg.Market.BaseURL,
		Database: cfg.Market.Database,
		APIKey:   cfg.Market.APIKey,
		Timeout:  cfg.Market.Timeout,
		Retry:    httputil.RetryConfig{MaxAttempts: cfg.Market.RetryMaxAttempts},
	})
}

// InitializeApp sets up all application dependencies and returns a
// fully configured Gin router, a cleanup function for graceful
// shutdown, and any error encountered during initialization.
//
// The snapshot store is only connected when the cache is enabled; with
// caching off the service runs stateless and readiness never depends on
// a database.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	fetcher := NewMarketClient(cfg)

	var repo storage.SummaryRepository
	var storePing func() error
	cleanup := func() {}

	if cfg.Cache.Enabled {
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		repo = storage.NewSummaryRepository(db)
		storePing = db.Ping
		cleanup = func() { _ = db.Close() }
	}

	svc := service.NewSummaryService(fetcher, repo)
	handler := api.NewHandler(svc)
	router := api.NewRouter(handler)

	healthHandler := api.NewHealthHandler(storePing)
	healthHandler.Register(router)

	return router, cleanup, nil
}
