package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lfreitas/stockpulse/internal/analysis"
	"github.com/lfreitas/stockpulse/internal/domain/dto"
	"github.com/lfreitas/stockpulse/internal/domain/models"
	"github.com/lfreitas/stockpulse/internal/marketdata"
	"github.com/lfreitas/stockpulse/internal/service"
)

// minYear bounds the year query parameter; daily quote history older
// than this is not served by the upstream databases we target.
const minYear = 1900

// Handler provides HTTP handlers for the summary endpoint.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Delegate to the service layer
//   - Translate service results and errors into response DTOs
type Handler struct {
	svc service.SummaryService
}

// NewHandler constructs a Handler around the given service.
func NewHandler(svc service.SummaryService) *Handler {
	return &Handler{svc: svc}
}

// GetSummary handles GET /api/v1/summary requests.
//
// GetSummary godoc
// @Summary      Get yearly summary for a ticker
// @Description  Fetches one year of daily prices and returns the six summary statistics
// @Tags         summary
// @Accept       json
// @Produce      json
// @Param        ticker  query     string  true   "Dataset code" example(AFX_X)
// @Param        year    query     int     false  "Calendar year (default: last full year)" example(2017)
// @Success      200     {object}  dto.SummaryResponse    "Success"
// @Failure      400     {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse      "Dataset Not Found"
// @Failure      422     {object}  dto.ErrorResponse      "No Usable Rows"
// @Failure      502     {object}  dto.ErrorResponse      "Upstream Failure"
// @Failure      500     {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Query("ticker")))
	if ticker == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("ticker is required", nil))
		return
	}

	// Default: the last full calendar year.
	year := time.Now().UTC().Year() - 1
	if s := c.Query("year"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid year, expected an integer", err))
			return
		}
		year = parsed
	}
	if year < minYear || year > time.Now().UTC().Year() {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("year out of range", nil))
		return
	}

	summary, err := h.svc.GetSummary(c.Request.Context(), ticker, year)
	if err != nil {
		status, msg := classifyError(err)
		c.JSON(status, dto.NewErrorResponse(msg, err))
		return
	}

	resp := dto.SummaryResponse{
		Ticker:               summary.Ticker,
		Year:                 summary.Year,
		HighestOpening:       summary.HighestOpening,
		LowestOpening:        summary.LowestOpening,
		LargestIntradayRange: summary.LargestIntradayRange,
		LargestInterdayMove:  summary.LargestInterdayMove,
		MeanVolume:           summary.MeanVolume,
		MedianVolume:         summary.MedianVolume,
	}

	c.JSON(http.StatusOK, resp)
}

// classifyError maps domain errors to HTTP statuses.
func classifyError(err error) (int, string) {
	var schemaErr *models.SchemaError
	var emptyErr *analysis.EmptyDataError

	switch {
	case errors.Is(err, marketdata.ErrDatasetNotFound):
		return http.StatusNotFound, "dataset not found"
	case errors.As(err, &schemaErr):
		return http.StatusBadGateway, "upstream returned a malformed payload"
	case errors.As(err, &emptyErr):
		return http.StatusUnprocessableEntity, "dataset has no usable rows for " + emptyErr.Stat
	default:
		return http.StatusInternalServerError, "failed to compute summary"
	}
}
