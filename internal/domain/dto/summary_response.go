package dto

// SummaryResponse represents the JSON structure returned by the
// GET /api/v1/summary endpoint.
//
// Fields match the API contract and may differ from internal domain models.
// This ensures loose coupling between the API surface and business logic.
type SummaryResponse struct {
	Ticker               string  `json:"ticker" example:"AFX_X"`                   // Dataset code requested
	Year                 int     `json:"year" example:"2017"`                      // Calendar year analyzed
	HighestOpening       float64 `json:"highest_opening" example:"53.11"`          // Maximum opening price
	LowestOpening        float64 `json:"lowest_opening" example:"34.0"`            // Minimum opening price
	LargestIntradayRange float64 `json:"largest_intraday_range" example:"2.81"`    // Max of High-Low within one day
	LargestInterdayMove  float64 `json:"largest_interday_move" example:"2.56"`     // Max signed change between consecutive closes
	MeanVolume           float64 `json:"mean_volume" example:"89124.34"`           // Arithmetic mean of traded volume
	MedianVolume         float64 `json:"median_volume" example:"76286.0"`          // Median of traded volume
}
