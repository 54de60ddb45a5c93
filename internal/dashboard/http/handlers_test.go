package dashboardhttp

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentbrasil/rentbrasil/internal/dashboard"
	"github.com/rentbrasil/rentbrasil/internal/rentals"
	"github.com/rentbrasil/rentbrasil/internal/reviews"
)

type stubService struct {
	stats dashboard.Stats
	err   error
}

func (s stubService) Stats(context.Context) (dashboard.Stats, error) { return s.stats, s.err }

func sampleStats() dashboard.Stats {
	return dashboard.Stats{
		TotalPeople:          4,
		TotalItems:           3,
		ActiveRentalsCount:   3,
		TotalMoneyCirculated: decimal.NewFromInt(150),
		StatusBreakdown:      rentals.Breakdown{Paid: 2, Pending: 1},
		MonthlyRevenue:       []rentals.MonthlyPoint{{Month: "2024-01", Revenue: decimal.NewFromInt(150)}},
		MonthlyPotentialRevenue: []dashboard.PotentialPoint{
			{Month: "2024-01", PotentialRevenue: decimal.NewFromInt(15)},
		},
		TopRatedItems: []reviews.LeaderboardEntry{{ItemID: "A", ItemName: "Furadeira", AverageRating: "4.5"}},
	}
}

func newRouter(svc StatsService) *chi.Mux {
	h := NewHandler(nil, svc)
	h.WithNow(func() time.Time { return time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC) })
	r := chi.NewRouter()
	r.Route("/admin", h.MountRoutes)
	return r
}

func TestDashboardJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(stubService{stats: sampleStats()}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(4), body["total_pessoas"])
	assert.Equal(t, map[string]any{"pago": float64(2), "pendente": float64(1)}, body["status_locacoes"])
	board := body["avaliacoes_medias"].([]any)
	require.Len(t, board, 1)
	assert.Equal(t, "4.5", board[0].(map[string]any)["media"])
}

func TestDashboardCSV(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(stubService{stats: sampleStats()}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard/export.csv", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "dashboard-2024-02-01.csv")

	reader := csv.NewReader(strings.NewReader(rec.Body.String()))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Contains(t, records, []string{"Money Circulated", "150.00"})
	assert.Contains(t, records, []string{"2024-01", "150.00", "15.00"})
	assert.Contains(t, records, []string{"Furadeira", "4.5"})
}

func TestDashboardError(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(stubService{err: errors.New("dashboard: load rentals: boom")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestCSVIsRateLimited(t *testing.T) {
	r := newRouter(stubService{stats: sampleStats()})
	var last int
	for i := 0; i < 11; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard/export.csv", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(rec, req)
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
