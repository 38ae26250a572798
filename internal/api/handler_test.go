package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lfreitas/stockpulse/internal/analysis"
	"github.com/lfreitas/stockpulse/internal/domain/models"
	"github.com/lfreitas/stockpulse/internal/marketdata"
	"github.com/lfreitas/stockpulse/internal/service"
)

type mockSummaryService struct {
	resp *models.Summary
	err  error
}

func (m *mockSummaryService) GetSummary(_ context.Context, _ string, _ int) (*models.Summary, error) {
	return m.resp, m.err
}

var _ service.SummaryService = (*mockSummaryService)(nil)

func setupRouterWithMock(s service.SummaryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s)
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/summary", h.GetSummary)
	return r
}

func TestGetSummary_TableDriven(t *testing.T) {
	okSummary := &models.Summary{
		Ticker:               "AFX_X",
		Year:                 2017,
		HighestOpening:       53.11,
		LowestOpening:        34.0,
		LargestIntradayRange: 2.81,
		LargestInterdayMove:  2.56,
		MeanVolume:           89124.34,
		MedianVolume:         76286.0,
	}

	cases := []struct {
		name   string
		svc    *mockSummaryService
		query  string
		status int
		assert func(t *testing.T, body []byte)
	}{
		{
			name:   "missing ticker",
			svc:    &mockSummaryService{},
			query:  "/api/v1/summary",
			status: http.StatusBadRequest,
		},
		{
			name:   "non-numeric year",
			svc:    &mockSummaryService{},
			query:  "/api/v1/summary?ticker=AFX_X&year=twenty17",
			status: http.StatusBadRequest,
		},
		{
			name:   "year out of range",
			svc:    &mockSummaryService{},
			query:  "/api/v1/summary?ticker=AFX_X&year=1850",
			status: http.StatusBadRequest,
		},
		{
			name:   "dataset not found",
			svc:    &mockSummaryService{err: fmt.Errorf("wrap: %w", marketdata.ErrDatasetNotFound)},
			query:  "/api/v1/summary?ticker=NOPE&year=2017",
			status: http.StatusNotFound,
		},
		{
			name:   "malformed upstream payload",
			svc:    &mockSummaryService{err: &models.SchemaError{Reason: "missing data key"}},
			query:  "/api/v1/summary?ticker=AFX_X&year=2017",
			status: http.StatusBadGateway,
		},
		{
			name:   "no usable rows",
			svc:    &mockSummaryService{err: &analysis.EmptyDataError{Stat: models.StatHighestOpening, Column: models.ColumnOpen}},
			query:  "/api/v1/summary?ticker=AFX_X&year=2017",
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "internal error",
			svc:    &mockSummaryService{err: errors.New("boom")},
			query:  "/api/v1/summary?ticker=AFX_X&year=2017",
			status: http.StatusInternalServerError,
		},
		{
			name:   "success with lowercase ticker",
			svc:    &mockSummaryService{resp: okSummary},
			query:  "/api/v1/summary?ticker=afx_x&year=2017",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out models.Summary
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Ticker != "AFX_X" || out.HighestOpening != 53.11 || out.MedianVolume != 76286.0 {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "success with default year",
			svc:    &mockSummaryService{resp: okSummary},
			query:  "/api/v1/summary?ticker=AFX_X",
			status: http.StatusOK,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			req := httptest.NewRequest(http.MethodGet, tc.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("status=%d, want %d (body: %s)", w.Code, tc.status, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, w.Body.Bytes())
			}
		})
	}
}
