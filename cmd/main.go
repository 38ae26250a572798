package main

//
//  @title           stockpulse API
//  @version         1.0
//  @description     Yearly summary statistics over daily stock time-series data.
//  @termsOfService  https://github.com/lfreitas/stockpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/lfreitas/stockpulse
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        summary
//  @tag.description Endpoints for querying yearly ticker summaries
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lfreitas/stockpulse/config"
	_ "github.com/lfreitas/stockpulse/docs" // swagger docs
	"github.com/lfreitas/stockpulse/internal/app"
	"github.com/lfreitas/stockpulse/internal/domain/models"
	"github.com/lfreitas/stockpulse/internal/logger"
	"github.com/lfreitas/stockpulse/internal/service"
)

const maxParallelFetches = 4

// startServer initializes and starts the HTTP server in a separate goroutine.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown terminates the HTTP server and runs cleanup when an
// OS interrupt signal (SIGINT, SIGTERM) is received.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runAnalyze fetches one year of daily records per ticker, computes the
// six statistics, and prints the statistic-name → value mapping as JSON
// to stdout. Multiple tickers are fetched concurrently, bounded by
// maxParallelFetches.
func runAnalyze(ctx context.Context, svc service.SummaryService, tickers []string, year int) error {
	summaries := make([]*models.Summary, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetches)
	for i, ticker := range tickers {
		i, ticker := i, ticker
		g.Go(func() error {
			s, err := svc.GetSummary(gctx, ticker, year)
			if err != nil {
				return err
			}
			summaries[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if len(summaries) == 1 {
		return enc.Encode(summaries[0].Stats())
	}

	out := make(map[string]map[string]float64, len(summaries))
	for _, s := range summaries {
		out[s.Ticker] = s.Stats()
	}
	return enc.Encode(out)
}

// main is the entry point of the stockpulse application.
//
// Modes (selected via --mode flag):
//   - analyze: one-shot run; fetches the year, prints the statistics, exits.
//   - api:     starts the REST API exposing yearly summaries.
//
// Flags:
//   - --mode:    Execution mode ("analyze" or "api"). Default: "analyze".
//   - --ticker:  Dataset code to analyze (e.g. "AFX_X").
//   - --tickers: Comma-separated dataset codes; overrides --ticker.
//   - --year:    Calendar year to analyze. Default: last full year.
//   - --port:    Port for API mode. Defaults to SERVER_PORT from config.
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	mode := flag.String("mode", "analyze", "Mode: analyze or api")
	ticker := flag.String("ticker", "", "Dataset code to analyze, e.g. AFX_X")
	tickers := flag.String("tickers", "", "Comma-separated dataset codes (overrides --ticker)")
	year := flag.Int("year", time.Now().UTC().Year()-1, "Calendar year to analyze")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "analyze":
		list := parseTickers(*tickers, *ticker)
		if len(list) == 0 {
			logger.L().Fatal().Msg("analyze mode requires --ticker or --tickers")
		}

		svc := service.NewSummaryService(app.NewMarketClient(config.AppConfig), nil)

		logger.L().Info().Strs("tickers", list).Int("year", *year).Msg("running analysis")
		if err := runAnalyze(ctx, svc, list, *year); err != nil {
			logger.L().Fatal().Err(err).Msg("analysis failed")
		}

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}

// parseTickers normalizes the --tickers/--ticker flags into a deduplicated,
// upper-cased list.
func parseTickers(csv, single string) []string {
	raw := strings.Split(csv, ",")
	if csv == "" {
		raw = []string{single}
	}

	seen := make(map[string]bool, len(raw))
	var out []string
	for _, t := range raw {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
