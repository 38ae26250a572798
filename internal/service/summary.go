package service

import (
	"context"
	"time"

	"github.com/lfreitas/stockpulse/internal/analysis"
	"github.com/lfreitas/stockpulse/internal/domain/models"
	"github.com/lfreitas/stockpulse/internal/logger"
	"github.com/lfreitas/stockpulse/internal/storage"
)

// DatasetFetcher abstracts the upstream time-series API.
type DatasetFetcher interface {
	GetDataset(ctx context.Context, ticker string, year int) (*models.Dataset, error)
}

// SummaryService defines the business logic for computing yearly
// summaries: fetch, clean, aggregate, and optionally snapshot.
type SummaryService interface {
	GetSummary(ctx context.Context, ticker string, year int) (*models.Summary, error)
}

type summaryService struct {
	fetcher DatasetFetcher
	repo    storage.SummaryRepository // nil disables the snapshot cache
}

// NewSummaryService wires the fetcher and an optional snapshot
// repository. Pass a nil repo to compute from the upstream every time.
func NewSummaryService(fetcher DatasetFetcher, repo storage.SummaryRepository) SummaryService {
	return &summaryService{fetcher: fetcher, repo: repo}
}

// GetSummary returns the six statistics for one ticker and calendar
// year. A cached snapshot is served when available; cache failures are
// logged and degrade to a fresh computation rather than failing the
// request.
func (s *summaryService) GetSummary(ctx context.Context, ticker string, year int) (*models.Summary, error) {
	if s.repo != nil {
		cached, err := s.repo.GetSummary(ticker, year)
		if err != nil {
			logger.L().Warn().Err(err).Str("ticker", ticker).Int("year", year).Msg("snapshot lookup failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	dataset, err := s.fetcher.GetDataset(ctx, ticker, year)
	if err != nil {
		return nil, err
	}

	summary, err := analysis.Summarize(dataset)
	if err != nil {
		return nil, err
	}
	summary.Year = year
	summary.ComputedAt = time.Now().UTC()

	if s.repo != nil {
		if err := s.repo.UpsertSummary(summary); err != nil {
			logger.L().Warn().Err(err).Str("ticker", ticker).Int("year", year).Msg("snapshot upsert failed")
		}
	}

	return summary, nil
}
