// Package marketdata fetches daily time-series datasets from a
// Quandl-compatible REST API (Nasdaq Data Link).
package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lfreitas/stockpulse/internal/domain/models"
	"github.com/lfreitas/stockpulse/internal/httputil"
	"github.com/lfreitas/stockpulse/internal/logger"
)

// ErrDatasetNotFound is returned when the upstream API has no dataset
// for the requested database/ticker pair.
var ErrDatasetNotFound = errors.New("dataset not found")

// Config holds the client settings. APIKey is a credential and must be
// injected from configuration, never hard-coded.
type Config struct {
	BaseURL  string // e.g. "https://data.nasdaq.com/api/v3"
	Database string // database code, e.g. "FSE"
	APIKey   string
	Timeout  time.Duration
	Retry    httputil.RetryConfig
}

// Client performs the single GET against the time-series endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient builds a Client with its own timeout-bounded http.Client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// datasetEnvelope mirrors the upstream response:
//
//	{"dataset": {"column_names": [...], "data": [[...], ...], ...}}
//
// Dataset and Data are pointers so a missing key can be told apart from
// an empty value; both cases where the key is absent are schema errors.
type datasetEnvelope struct {
	Dataset *struct {
		DatasetCode  string   `json:"dataset_code"`
		DatabaseCode string   `json:"database_code"`
		ColumnNames  []string `json:"column_names"`
		StartDate    string   `json:"start_date"`
		EndDate      string   `json:"end_date"`
		Data         *[][]any `json:"data"`
	} `json:"dataset"`
}

// GetDataset fetches one calendar year of daily records for ticker,
// ordered ascending by date, and returns the typed Dataset.
//
// Errors:
//   - ErrDatasetNotFound when the upstream responds 404.
//   - *models.SchemaError when the payload is malformed.
//   - wrapped transport/HTTP errors otherwise (5xx responses are
//     retried with backoff before giving up).
func (c *Client) GetDataset(ctx context.Context, ticker string, year int) (*models.Dataset, error) {
	q := url.Values{}
	q.Set("start_date", fmt.Sprintf("%04d-01-01", year))
	q.Set("end_date", fmt.Sprintf("%04d-12-31", year))
	q.Set("order", "asc")
	q.Set("api_key", c.cfg.APIKey)

	endpoint := fmt.Sprintf("%s/datasets/%s/%s.json?%s", c.cfg.BaseURL, c.cfg.Database, ticker, q.Encode())

	resp, err := httputil.Do(ctx, c.httpClient, c.cfg.Retry, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch dataset %s/%s: %w", c.cfg.Database, ticker, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.L().Warn().Err(err).Msg("failed to close response body")
		}
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s/%s", ErrDatasetNotFound, c.cfg.Database, ticker)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch dataset %s/%s: unexpected status %d", c.cfg.Database, ticker, resp.StatusCode)
	}

	var env datasetEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &models.SchemaError{Reason: fmt.Sprintf("decode response: %v", err)}
	}
	if env.Dataset == nil {
		return nil, &models.SchemaError{Reason: `response is missing the "dataset" key`}
	}
	if env.Dataset.Data == nil {
		return nil, &models.SchemaError{Reason: `response is missing the "data" key`}
	}

	ds, err := models.BuildDataset(ticker, env.Dataset.ColumnNames, *env.Dataset.Data)
	if err != nil {
		return nil, err
	}

	logger.L().Debug().
		Str("ticker", ticker).
		Int("year", year).
		Int("rows", len(ds.Rows)).
		Msg("dataset fetched")

	return ds, nil
}
