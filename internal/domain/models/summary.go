package models

import "time"

// Statistic names used in the output mapping and in error messages.
const (
	StatHighestOpening       = "highest_opening"
	StatLowestOpening        = "lowest_opening"
	StatLargestIntradayRange = "largest_intraday_range"
	StatLargestInterdayMove  = "largest_interday_move"
	StatMeanVolume           = "mean_volume"
	StatMedianVolume         = "median_volume"
)

// Summary holds the six statistics computed over one year of daily
// records for a ticker.
//
// LargestInterdayMove is the maximum of the SIGNED day-over-day closing
// differences, not of their absolute values. This reproduces the
// reference computation; a large drop only shows up when it is the
// maximum signed difference.
type Summary struct {
	Ticker               string    `json:"ticker" example:"AFX_X"`
	Year                 int       `json:"year" example:"2017"`
	HighestOpening       float64   `json:"highest_opening" example:"53.11"`
	LowestOpening        float64   `json:"lowest_opening" example:"34.0"`
	LargestIntradayRange float64   `json:"largest_intraday_range" example:"2.81"`
	LargestInterdayMove  float64   `json:"largest_interday_move" example:"2.56"`
	MeanVolume           float64   `json:"mean_volume" example:"89124.34"`
	MedianVolume         float64   `json:"median_volume" example:"76286.0"`
	ComputedAt           time.Time `json:"computed_at"`
}

// Stats returns the statistic-name → value mapping, the process output
// shape printed by the analyze mode.
func (s *Summary) Stats() map[string]float64 {
	return map[string]float64{
		StatHighestOpening:       s.HighestOpening,
		StatLowestOpening:        s.LowestOpening,
		StatLargestIntradayRange: s.LargestIntradayRange,
		StatLargestInterdayMove:  s.LargestInterdayMove,
		StatMeanVolume:           s.MeanVolume,
		StatMedianVolume:         s.MedianVolume,
	}
}
