package services

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/l9kyuu/gamepanel-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var exportStamp = time.Date(2026, 8, 15, 14, 30, 5, 0, time.UTC)
var rowStamp = time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

func sampleResult(reportType models.ReportType) *models.ReportResult {
	result := &models.ReportResult{
		Type:      reportType,
		StartDate: "2026-08-01",
		EndDate:   "2026-08-15",
		Summary: models.ReportSummary{
			TotalGames:              2,
			ActiveGames:             1,
			InactiveGames:           1,
			AvgPrice:                1500,
			MinPrice:                500,
			MaxPrice:                2500,
			PotentialRevenue:        2500,
			AvgRevenuePerActiveGame: 2500,
		},
		Games: []models.ReportGame{
			{ID: 1, Title: "Alpha", Price: 2500, Genre: "RPG", Platform: "PC, PS5", Status: "Active",
				CreatedAt: rowStamp, UpdatedAt: rowStamp, GenreCount: 2, PlatformCount: 2},
			{ID: 2, Title: "Beta", Price: 500, Genre: "Action", Platform: "PC", Status: "Inactive",
				CreatedAt: rowStamp, UpdatedAt: rowStamp, GenreCount: 1, PlatformCount: 2},
		},
		Genres: []models.DistributionEntry{
			{Label: "RPG", Count: 1, ActiveCount: 1, Percentage: 50},
			{Label: "Action", Count: 1, ActiveCount: 0, Percentage: 50},
		},
		Platforms: []models.DistributionEntry{
			{Label: "PC", Count: 2, ActiveCount: 1, Percentage: 100},
			{Label: "PS5", Count: 1, ActiveCount: 1, Percentage: 50},
		},
		Inventory: []models.InventoryGroup{
			{Genre: "RPG", Platform: "PC, PS5", TotalCount: 1, ActiveCount: 1,
				AvgPrice: 2500, MinPrice: 2500, MaxPrice: 2500},
		},
		GeneratedAt: exportStamp,
	}
	return result
}

func TestExport_Dispatch(t *testing.T) {
	svc := NewExportService()

	tests := []struct {
		format      string
		contentType string
		suffix      string
	}{
		{"excel", "text/csv", ".csv"},
		{"csv", "text/csv", ".csv"},
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ".xlsx"},
		{"html", "text/html", ".html"},
		{"pdf", "application/pdf", ".pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, filename, contentType, err := svc.Export(tt.format, sampleResult(models.ReportTypeOverview))
			require.NoError(t, err)
			assert.NotEmpty(t, data)
			assert.Equal(t, tt.contentType, contentType)
			assert.True(t, strings.HasSuffix(filename, tt.suffix), filename)
		})
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	svc := NewExportService()

	_, _, _, err := svc.Export("docx", sampleResult(models.ReportTypeOverview))

	assert.ErrorIs(t, err, ErrUnknownExportFormat)
}

func TestExportCSV_GameListing(t *testing.T) {
	svc := NewExportService()

	data, filename, err := svc.ExportCSV(sampleResult(models.ReportTypeOverview))
	require.NoError(t, err)

	assert.Equal(t, "games_report_2026-08-15_14-30-05.csv", filename)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"ID", "Title", "Price", "Genre", "Platform", "Status", "Created At", "Updated At"}, records[0])
	assert.Equal(t, []string{"1", "Alpha", "2500.00", "RPG", "PC, PS5", "Active", "2026-08-10 09:00:00", "2026-08-10 09:00:00"}, records[1])
	assert.Equal(t, "Inactive", records[2][5])
}

func TestExportCSV_Inventory(t *testing.T) {
	svc := NewExportService()

	data, _, err := svc.ExportCSV(sampleResult(models.ReportTypeInventory))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"Genre", "Platform", "Total Count", "Active Count", "Average Price", "Min Price", "Max Price"}, records[0])
	assert.Equal(t, []string{"RPG", "PC, PS5", "1", "1", "2500.00", "2500.00", "2500.00"}, records[1])
}

func TestExportCSV_Popularity(t *testing.T) {
	svc := NewExportService()

	data, _, err := svc.ExportCSV(sampleResult(models.ReportTypePopularity))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"ID", "Title", "Genre", "Platform", "Price", "Status", "Created", "Updated", "Genre Count", "Platform Count"}, records[0])
	assert.Equal(t, "2", records[1][8])
	assert.Equal(t, "2", records[1][9])
}

func TestExportXLSX_ReadBack(t *testing.T) {
	svc := NewExportService()

	data, filename, err := svc.ExportXLSX(sampleResult(models.ReportTypeSales))
	require.NoError(t, err)
	assert.Equal(t, "games_summary_report_2026-08-15_14-30-05.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Games Summary Report", title)

	rows, err := f.GetRows("Report")
	require.NoError(t, err)

	flat := map[string]string{}
	for _, row := range rows {
		if len(row) >= 2 {
			flat[row[0]] = row[1]
		}
	}
	assert.Equal(t, "2", flat["Total Games"])
	assert.Equal(t, "2,500.00", flat["Potential Revenue"])
}

func TestExportHTML_Document(t *testing.T) {
	svc := NewExportService()

	data, filename, err := svc.ExportHTML(sampleResult(models.ReportTypeSales))
	require.NoError(t, err)

	assert.Equal(t, "games_summary_report_2026-08-15_14-30-05.html", filename)

	html := string(data)
	assert.Contains(t, html, "Games Summary Report")
	assert.Contains(t, html, "Period: 2026-08-01 to 2026-08-15")
	assert.Contains(t, html, "Report Type: Sales")
	assert.Contains(t, html, "Rp 1,500.00")
	assert.Contains(t, html, "Potential Revenue")
	assert.Contains(t, html, "Generated on 2026-08-15 14:30:05 | L9kyuu Panel Game Reports")
	// Sales carries no inactive stat card
	assert.NotContains(t, html, "Inactive Games")
}

func TestExportHTML_OverviewSections(t *testing.T) {
	svc := NewExportService()

	data, _, err := svc.ExportHTML(sampleResult(models.ReportTypeOverview))
	require.NoError(t, err)

	html := string(data)
	assert.Contains(t, html, "Inactive Games")
	assert.Contains(t, html, "Genre Distribution")
	assert.Contains(t, html, "Platform Distribution")
	assert.NotContains(t, html, "Potential Revenue")
}

func TestExportPDF_Document(t *testing.T) {
	svc := NewExportService()

	data, filename, err := svc.ExportPDF(sampleResult(models.ReportTypeSales))
	require.NoError(t, err)

	assert.Equal(t, "games_summary_report_2026-08-15_14-30-05.pdf", filename)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderersShareOneResult(t *testing.T) {
	svc := NewExportService()
	result := sampleResult(models.ReportTypeSales)

	csvData, _, err := svc.ExportCSV(result)
	require.NoError(t, err)
	htmlData, _, err := svc.ExportHTML(result)
	require.NoError(t, err)

	// Both encodings carry the same row set
	records, err := csv.NewReader(bytes.NewReader(csvData)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, len(result.Games)+1)
	for _, g := range result.Games {
		assert.Contains(t, string(htmlData), g.Title)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0.00"},
		{999.5, "999.50"},
		{1000, "1,000.00"},
		{1234567.891, "1,234,567.89"},
		{-1234.5, "-1,234.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatMoney(tt.input))
	}
}
