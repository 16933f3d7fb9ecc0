package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/l9kyuu/gamepanel-api/internal/models"
	"github.com/l9kyuu/gamepanel-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGameRepo struct {
	games []models.Game
}

func (m *mockGameRepo) FindAll(ctx context.Context) ([]models.Game, error) {
	return m.games, nil
}

func (m *mockGameRepo) FindCreatedBetween(ctx context.Context, dateRange models.DateRange) ([]models.Game, error) {
	out := []models.Game{}
	for _, g := range m.games {
		if dateRange.Contains(g.CreatedAt) {
			out = append(out, g)
		}
	}
	return out, nil
}

func setupReportRouter(repo *mockGameRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewReportHandler(services.NewReportService(repo), services.NewExportService())

	router := gin.New()
	router.GET("/api/v1/reports", handler.Show)
	router.GET("/api/v1/reports/export", handler.Export)
	return router
}

// rangeQuery pins the date range so results do not depend on the wall clock.
const rangeQuery = "start_date=2026-08-01&end_date=2026-08-15"

func testCatalog() []models.Game {
	created := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	return []models.Game{
		{ID: 1, Title: "Alpha", Price: 100, Genre: "RPG", Platform: "PC", IsActive: true, CreatedAt: created, UpdatedAt: created},
		{ID: 2, Title: "Beta", Price: 200, Genre: "Action", Platform: "PS5", IsActive: true, CreatedAt: created, UpdatedAt: created},
	}
}

func TestReportHandler_Show_JSON(t *testing.T) {
	router := setupReportRouter(&mockGameRepo{games: testCatalog()})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/reports?report=sales&"+rangeQuery, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "sales", body["report_type"])
	summary := body["summary"].(map[string]interface{})
	assert.Equal(t, float64(2), summary["total_games"])
	assert.Equal(t, float64(300), summary["potential_revenue"])
}

func TestReportHandler_Show_UnknownTypeDefaultsToOverview(t *testing.T) {
	router := setupReportRouter(&mockGameRepo{games: testCatalog()})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/reports?report=bogus&"+rangeQuery, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "overview", body["report_type"])
}

func TestReportHandler_Show_ExportParamStreamsDownload(t *testing.T) {
	router := setupReportRouter(&mockGameRepo{games: testCatalog()})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/reports?report=overview&export=csv&"+rangeQuery, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=games_report_")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "ID,Title,Price,Genre,Platform,Status,Created At,Updated At")
}

func TestReportHandler_Export_DefaultsToExcel(t *testing.T) {
	router := setupReportRouter(&mockGameRepo{games: testCatalog()})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/reports/export?type=sales&"+rangeQuery, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
}

func TestReportHandler_Export_HTMLDocument(t *testing.T) {
	router := setupReportRouter(&mockGameRepo{games: testCatalog()})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/reports/export?type=popularity&export=html&"+rangeQuery, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".html")
	assert.Contains(t, w.Body.String(), "Games Summary Report")
}

func TestReportHandler_Export_InvalidFormat(t *testing.T) {
	router := setupReportRouter(&mockGameRepo{games: testCatalog()})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/reports/export?type=sales&export=docx&"+rangeQuery, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid format")
}
