package storage

import (
	"database/sql"
	"fmt"

	"github.com/lfreitas/stockpulse/internal/domain/models"
)

// SummaryRepository defines the contract for the snapshot store: a
// per-(ticker, year) cache of computed summaries so API mode does not
// refetch the upstream on every request.
type SummaryRepository interface {
	// GetSummary returns the cached summary, or (nil, nil) when none exists.
	GetSummary(ticker string, year int) (*models.Summary, error)
	UpsertSummary(summary *models.Summary) error
	Ping() error
}

type summaryRepository struct {
	db *sql.DB
}

func NewSummaryRepository(db *sql.DB) SummaryRepository {
	return &summaryRepository{db: db}
}

// Expected table:
//
//	CREATE TABLE summaries (
//	    ticker                 TEXT             NOT NULL,
//	    year                   INT              NOT NULL,
//	    highest_opening        DOUBLE PRECISION NOT NULL,
//	    lowest_opening         DOUBLE PRECISION NOT NULL,
//	    largest_intraday_range DOUBLE PRECISION NOT NULL,
//	    largest_interday_move  DOUBLE PRECISION NOT NULL,
//	    mean_volume            DOUBLE PRECISION NOT NULL,
//	    median_volume          DOUBLE PRECISION NOT NULL,
//	    computed_at            TIMESTAMPTZ      NOT NULL,
//	    PRIMARY KEY (ticker, year)
//	);

func (r *summaryRepository) GetSummary(ticker string, year int) (*models.Summary, error) {
	const query = `
		SELECT highest_opening, lowest_opening, largest_intraday_range,
		       largest_interday_move, mean_volume, median_volume, computed_at
		FROM summaries
		WHERE ticker = $1 AND year = $2`

	s := models.Summary{Ticker: ticker, Year: year}
	err := r.db.QueryRow(query, ticker, year).Scan(
		&s.HighestOpening,
		&s.LowestOpening,
		&s.LargestIntradayRange,
		&s.LargestInterdayMove,
		&s.MeanVolume,
		&s.MedianVolume,
		&s.ComputedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query summary %s/%d: %w", ticker, year, err)
	}
	return &s, nil
}

func (r *summaryRepository) UpsertSummary(summary *models.Summary) error {
	const query = `
		INSERT INTO summaries (
			ticker, year, highest_opening, lowest_opening,
			largest_intraday_range, largest_interday_move,
			mean_volume, median_volume, computed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (ticker, year) DO UPDATE SET
			highest_opening        = EXCLUDED.highest_opening,
			lowest_opening         = EXCLUDED.lowest_opening,
			largest_intraday_range = EXCLUDED.largest_intraday_range,
			largest_interday_move  = EXCLUDED.largest_interday_move,
			mean_volume            = EXCLUDED.mean_volume,
			median_volume          = EXCLUDED.median_volume,
			computed_at            = EXCLUDED.computed_at`

	_, err := r.db.Exec(query,
		summary.Ticker,
		summary.Year,
		summary.HighestOpening,
		summary.LowestOpening,
		summary.LargestIntradayRange,
		summary.LargestInterdayMove,
		summary.MeanVolume,
		summary.MedianVolume,
		summary.ComputedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert summary %s/%d: %w", summary.Ticker, summary.Year, err)
	}
	return nil
}

func (r *summaryRepository) Ping() error {
	return r.db.Ping()
}
