package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/l9kyuu/gamepanel-api/internal/models"
	"github.com/xuri/excelize/v2"
)

// Export formats accepted by the export endpoints. "excel" is the panel's
// historical name for the CSV download.
const (
	FormatExcel = "excel"
	FormatCSV   = "csv"
	FormatXLSX  = "xlsx"
	FormatHTML  = "html"
	FormatPDF   = "pdf"
)

// ExportService renders a computed ReportResult into downloadable documents.
// Every renderer is a pure function of the result, so the four encodings and
// the interactive view always carry the same numbers.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// Export dispatches to the renderer for the requested format and returns the
// document bytes, attachment filename and content type.
func (s *ExportService) Export(format string, result *models.ReportResult) ([]byte, string, string, error) {
	switch format {
	case FormatExcel, FormatCSV:
		data, filename, err := s.ExportCSV(result)
		return data, filename, "text/csv", err
	case FormatXLSX:
		data, filename, err := s.ExportXLSX(result)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	case FormatHTML:
		data, filename, err := s.ExportHTML(result)
		return data, filename, "text/html", err
	case FormatPDF:
		data, filename, err := s.ExportPDF(result)
		return data, filename, "application/pdf", err
	default:
		return nil, "", "", ErrUnknownExportFormat
	}
}

func exportTimestamp(result *models.ReportResult) string {
	return result.GeneratedAt.Format("2006-01-02_15-04-05")
}

// ExportCSV emits the tabular download: one header row and one row per data
// item, with the column set fixed per report type.
func (s *ExportService) ExportCSV(result *models.ReportResult) ([]byte, string, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	var err error
	switch result.Type {
	case models.ReportTypeInventory:
		err = writeInventoryCSV(w, result)
	case models.ReportTypePopularity:
		err = writePopularityCSV(w, result)
	default: // overview and sales share the game-listing layout
		err = writeGamesCSV(w, result)
	}
	if err != nil {
		return nil, "", err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("games_report_%s.csv", exportTimestamp(result))
	return buf.Bytes(), filename, nil
}

func writeGamesCSV(w *csv.Writer, result *models.ReportResult) error {
	header := []string{"ID", "Title", "Price", "Genre", "Platform", "Status", "Created At", "Updated At"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, g := range result.Games {
		record := []string{
			strconv.FormatUint(uint64(g.ID), 10),
			g.Title,
			fmt.Sprintf("%.2f", g.Price),
			g.Genre,
			g.Platform,
			g.Status,
			g.CreatedAt.Format("2006-01-02 15:04:05"),
			g.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeInventoryCSV(w *csv.Writer, result *models.ReportResult) error {
	header := []string{"Genre", "Platform", "Total Count", "Active Count", "Average Price", "Min Price", "Max Price"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range result.Inventory {
		record := []string{
			row.Genre,
			row.Platform,
			strconv.Itoa(row.TotalCount),
			strconv.Itoa(row.ActiveCount),
			fmt.Sprintf("%.2f", row.AvgPrice),
			fmt.Sprintf("%.2f", row.MinPrice),
			fmt.Sprintf("%.2f", row.MaxPrice),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writePopularityCSV(w *csv.Writer, result *models.ReportResult) error {
	header := []string{"ID", "Title", "Genre", "Platform", "Price", "Status", "Created", "Updated", "Genre Count", "Platform Count"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, g := range result.Games {
		record := []string{
			strconv.FormatUint(uint64(g.ID), 10),
			g.Title,
			g.Genre,
			g.Platform,
			fmt.Sprintf("%.2f", g.Price),
			g.Status,
			g.CreatedAt.Format("2006-01-02 15:04:05"),
			g.UpdatedAt.Format("2006-01-02 15:04:05"),
			strconv.Itoa(g.GenreCount),
			strconv.Itoa(g.PlatformCount),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// ExportXLSX writes the summary, distributions and rankings into a styled
// workbook with the same numbers as every other output.
func (s *ExportService) ExportXLSX(result *models.ReportResult) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	_ = f.SetSheetName("Sheet1", sheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})

	row := 1
	setRow := func(values ...interface{}) {
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}
	setHeaderRow := func(values ...interface{}) {
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(values), row)
		_ = f.SetCellStyle(sheet, first, last, headerStyle)
		setRow(values...)
	}

	setRow("Games Summary Report")
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	setRow(fmt.Sprintf("Period: %s to %s", result.StartDate, result.EndDate))
	setRow(fmt.Sprintf("Report Type: %s", result.Type.Title()))
	row++

	setHeaderRow("Metric", "Value")
	setRow("Total Games", result.Summary.TotalGames)
	setRow("Active Games", result.Summary.ActiveGames)
	if result.Type == models.ReportTypeOverview {
		setRow("Inactive Games", result.Summary.InactiveGames)
	}
	setRow("Average Price", formatMoney(result.Summary.AvgPrice))
	setRow("Min Price", formatMoney(result.Summary.MinPrice))
	setRow("Max Price", formatMoney(result.Summary.MaxPrice))
	if hasRevenue(result.Type) {
		setRow("Potential Revenue", formatMoney(result.Summary.PotentialRevenue))
		setRow("Avg Revenue per Active Game", formatMoney(result.Summary.AvgRevenuePerActiveGame))
	}

	writeDistribution := func(title, label string, entries []models.DistributionEntry) {
		if len(entries) == 0 {
			return
		}
		row++
		setRow(title)
		setHeaderRow(label, "Total", "Active", "Percentage")
		for _, e := range entries {
			setRow(e.Label, e.Count, e.ActiveCount, fmt.Sprintf("%.2f%%", e.Percentage))
		}
	}

	writeDistribution("Most Popular Genres", "Genre", result.TopGenres)
	writeDistribution("Genre Distribution", "Genre", result.Genres)
	writeDistribution("Platform Distribution", "Platform", result.Platforms)

	if len(result.TopPriced) > 0 {
		row++
		setRow("Top 10 Highest Priced Games")
		setHeaderRow("ID", "Title", "Price", "Genre", "Platform", "Status")
		for _, g := range result.TopPriced {
			setRow(g.ID, g.Title, formatMoney(g.Price), g.Genre, g.Platform, g.Status)
		}
	}

	if len(result.Inventory) > 0 {
		row++
		setRow("Inventory by Genre and Platform")
		setHeaderRow("Genre", "Platform", "Total", "Active", "Avg Price", "Min Price", "Max Price")
		for _, inv := range result.Inventory {
			setRow(inv.Genre, inv.Platform, inv.TotalCount, inv.ActiveCount,
				formatMoney(inv.AvgPrice), formatMoney(inv.MinPrice), formatMoney(inv.MaxPrice))
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("games_summary_report_%s.xlsx", exportTimestamp(result))
	return buf.Bytes(), filename, nil
}

// htmlReportView prepares the template input so the template stays flat.
type htmlReportView struct {
	*models.ReportResult
	TypeTitle      string
	ShowInactive   bool
	ShowRevenue    bool
	GeneratedLabel string
}

var htmlFuncs = template.FuncMap{
	"money": func(v float64) string { return "Rp " + formatMoney(v) },
	"pct":   func(v float64) string { return fmt.Sprintf("%.2f%%", v) },
}

var summaryTemplate = template.Must(template.New("summary").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Games Summary Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { text-align: center; margin-bottom: 20px; }
        .title { font-size: 24px; font-weight: bold; color: #333; }
        .subtitle { font-size: 16px; color: #666; margin-bottom: 30px; }
        .section { margin-bottom: 20px; }
        .section-title { font-size: 18px; font-weight: bold; color: #333; margin-bottom: 10px; }
        .stats-container { display: flex; flex-wrap: wrap; gap: 15px; margin-bottom: 20px; }
        .stat-card { flex: 1; min-width: 200px; padding: 15px; background-color: #f5f5f5; border-radius: 8px; }
        .stat-number { font-size: 24px; font-weight: bold; color: #007bff; }
        .stat-label { font-size: 14px; color: #666; }
        .footer { margin-top: 30px; text-align: center; font-size: 12px; color: #666; }
        table { width: 100%; border-collapse: collapse; margin: 15px 0; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; }
    </style>
</head>
<body>
    <div class="header">
        <div class="title">Games Summary Report</div>
        <div class="subtitle">Period: {{.StartDate}} to {{.EndDate}}</div>
        <div class="subtitle">Report Type: {{.TypeTitle}}</div>
    </div>

    <div class="section">
        <div class="section-title">{{.TypeTitle}} Summary</div>
        <div class="stats-container">
            <div class="stat-card">
                <div class="stat-number">{{.Summary.TotalGames}}</div>
                <div class="stat-label">Total Games</div>
            </div>
            <div class="stat-card">
                <div class="stat-number">{{.Summary.ActiveGames}}</div>
                <div class="stat-label">Active Games</div>
            </div>
{{- if .ShowInactive}}
            <div class="stat-card">
                <div class="stat-number">{{.Summary.InactiveGames}}</div>
                <div class="stat-label">Inactive Games</div>
            </div>
{{- end}}
            <div class="stat-card">
                <div class="stat-number">{{money .Summary.AvgPrice}}</div>
                <div class="stat-label">Average Price</div>
            </div>
{{- if .ShowRevenue}}
            <div class="stat-card">
                <div class="stat-number">{{money .Summary.PotentialRevenue}}</div>
                <div class="stat-label">Potential Revenue</div>
            </div>
            <div class="stat-card">
                <div class="stat-number">{{money .Summary.AvgRevenuePerActiveGame}}</div>
                <div class="stat-label">Avg Revenue per Active Game</div>
            </div>
{{- end}}
        </div>
    </div>

    <div class="section">
        <div class="section-title">Price Range</div>
        <div class="stats-container">
            <div class="stat-card">
                <div class="stat-number">{{money .Summary.MinPrice}}</div>
                <div class="stat-label">Minimum</div>
            </div>
            <div class="stat-card">
                <div class="stat-number">{{money .Summary.AvgPrice}}</div>
                <div class="stat-label">Average</div>
            </div>
            <div class="stat-card">
                <div class="stat-number">{{money .Summary.MaxPrice}}</div>
                <div class="stat-label">Maximum</div>
            </div>
        </div>
    </div>
{{- if .TopGenres}}

    <div class="section">
        <div class="section-title">Most Popular Genres</div>
        <table>
            <thead>
                <tr><th>Genre</th><th>Total</th><th>Active</th><th>Percentage</th></tr>
            </thead>
            <tbody>
{{- range .TopGenres}}
                <tr><td>{{.Label}}</td><td>{{.Count}}</td><td>{{.ActiveCount}}</td><td>{{pct .Percentage}}</td></tr>
{{- end}}
            </tbody>
        </table>
    </div>
{{- end}}
{{- if .Genres}}

    <div class="section">
        <div class="section-title">Genre Distribution</div>
        <table>
            <thead>
                <tr><th>Genre</th><th>Total</th><th>Active</th><th>Percentage</th></tr>
            </thead>
            <tbody>
{{- range .Genres}}
                <tr><td>{{.Label}}</td><td>{{.Count}}</td><td>{{.ActiveCount}}</td><td>{{pct .Percentage}}</td></tr>
{{- end}}
            </tbody>
        </table>
    </div>
{{- end}}
{{- if .Platforms}}

    <div class="section">
        <div class="section-title">Platform Distribution</div>
        <table>
            <thead>
                <tr><th>Platform</th><th>Total</th><th>Active</th><th>Percentage</th></tr>
            </thead>
            <tbody>
{{- range .Platforms}}
                <tr><td>{{.Label}}</td><td>{{.Count}}</td><td>{{.ActiveCount}}</td><td>{{pct .Percentage}}</td></tr>
{{- end}}
            </tbody>
        </table>
    </div>
{{- end}}
{{- if .TopPriced}}

    <div class="section">
        <div class="section-title">Top 10 Highest Priced Games</div>
        <table>
            <thead>
                <tr><th>ID</th><th>Title</th><th>Price</th><th>Genre</th><th>Platform</th><th>Status</th></tr>
            </thead>
            <tbody>
{{- range .TopPriced}}
                <tr><td>{{.ID}}</td><td>{{.Title}}</td><td>{{money .Price}}</td><td>{{.Genre}}</td><td>{{.Platform}}</td><td>{{.Status}}</td></tr>
{{- end}}
            </tbody>
        </table>
    </div>
{{- end}}
{{- if .Inventory}}

    <div class="section">
        <div class="section-title">Inventory by Genre and Platform</div>
        <table>
            <thead>
                <tr><th>Genre</th><th>Platform</th><th>Total</th><th>Active</th><th>Avg Price</th><th>Min Price</th><th>Max Price</th></tr>
            </thead>
            <tbody>
{{- range .Inventory}}
                <tr><td>{{.Genre}}</td><td>{{.Platform}}</td><td>{{.TotalCount}}</td><td>{{.ActiveCount}}</td><td>{{money .AvgPrice}}</td><td>{{money .MinPrice}}</td><td>{{money .MaxPrice}}</td></tr>
{{- end}}
            </tbody>
        </table>
    </div>
{{- end}}

    <div class="footer">
        Generated on {{.GeneratedLabel}} | L9kyuu Panel Game Reports
    </div>
</body>
</html>
`))

// ExportHTML emits the self-contained styled document: inline CSS, no
// external assets, sections mirroring the interactive view.
func (s *ExportService) ExportHTML(result *models.ReportResult) ([]byte, string, error) {
	view := htmlReportView{
		ReportResult:   result,
		TypeTitle:      result.Type.Title(),
		ShowInactive:   result.Type == models.ReportTypeOverview,
		ShowRevenue:    hasRevenue(result.Type),
		GeneratedLabel: result.GeneratedAt.Format("2006-01-02 15:04:05"),
	}

	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, view); err != nil {
		return nil, "", fmt.Errorf("failed to execute report template: %w", err)
	}

	filename := fmt.Sprintf("games_summary_report_%s.html", exportTimestamp(result))
	return buf.Bytes(), filename, nil
}

// ExportPDF renders the same sections as the HTML document into a PDF.
func (s *ExportService) ExportPDF(result *models.ReportResult) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Games Summary Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(80, 6, fmt.Sprintf("Period: %s to %s", result.StartDate, result.EndDate))
	pdf.Ln(6)
	pdf.Cell(80, 6, fmt.Sprintf("Report Type: %s", result.Type.Title()))
	pdf.Ln(10)

	statLine := func(label, value string) {
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(70, 7, label+":")
		pdf.Cell(50, 7, value)
		pdf.Ln(6)
	}
	sectionTitle := func(title string) {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(80, 8, title)
		pdf.Ln(8)
	}

	sectionTitle(result.Type.Title() + " Summary")
	statLine("Total Games", strconv.Itoa(result.Summary.TotalGames))
	statLine("Active Games", strconv.Itoa(result.Summary.ActiveGames))
	if result.Type == models.ReportTypeOverview {
		statLine("Inactive Games", strconv.Itoa(result.Summary.InactiveGames))
	}
	statLine("Average Price", "Rp "+formatMoney(result.Summary.AvgPrice))
	statLine("Min Price", "Rp "+formatMoney(result.Summary.MinPrice))
	statLine("Max Price", "Rp "+formatMoney(result.Summary.MaxPrice))
	if hasRevenue(result.Type) {
		statLine("Potential Revenue", "Rp "+formatMoney(result.Summary.PotentialRevenue))
		statLine("Avg Revenue per Active Game", "Rp "+formatMoney(result.Summary.AvgRevenuePerActiveGame))
	}

	distTable := func(title, label string, entries []models.DistributionEntry) {
		if len(entries) == 0 {
			return
		}
		sectionTitle(title)
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(60, 7, label)
		pdf.Cell(30, 7, "Total")
		pdf.Cell(30, 7, "Active")
		pdf.Cell(30, 7, "Percentage")
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 10)
		for _, e := range entries {
			pdf.Cell(60, 6, e.Label)
			pdf.Cell(30, 6, strconv.Itoa(e.Count))
			pdf.Cell(30, 6, strconv.Itoa(e.ActiveCount))
			pdf.Cell(30, 6, fmt.Sprintf("%.2f%%", e.Percentage))
			pdf.Ln(6)
		}
	}

	distTable("Most Popular Genres", "Genre", result.TopGenres)
	distTable("Genre Distribution", "Genre", result.Genres)
	distTable("Platform Distribution", "Platform", result.Platforms)

	if len(result.TopPriced) > 0 {
		sectionTitle("Top 10 Highest Priced Games")
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(12, 7, "ID")
		pdf.Cell(70, 7, "Title")
		pdf.Cell(34, 7, "Price")
		pdf.Cell(34, 7, "Genre")
		pdf.Cell(24, 7, "Status")
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 10)
		for _, g := range result.TopPriced {
			pdf.Cell(12, 6, strconv.FormatUint(uint64(g.ID), 10))
			pdf.Cell(70, 6, g.Title)
			pdf.Cell(34, 6, "Rp "+formatMoney(g.Price))
			pdf.Cell(34, 6, g.Genre)
			pdf.Cell(24, 6, g.Status)
			pdf.Ln(6)
		}
	}

	if len(result.Inventory) > 0 {
		sectionTitle("Inventory by Genre and Platform")
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(36, 7, "Genre")
		pdf.Cell(36, 7, "Platform")
		pdf.Cell(18, 7, "Total")
		pdf.Cell(18, 7, "Active")
		pdf.Cell(28, 7, "Avg Price")
		pdf.Cell(28, 7, "Min Price")
		pdf.Cell(28, 7, "Max Price")
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 10)
		for _, inv := range result.Inventory {
			pdf.Cell(36, 6, inv.Genre)
			pdf.Cell(36, 6, inv.Platform)
			pdf.Cell(18, 6, strconv.Itoa(inv.TotalCount))
			pdf.Cell(18, 6, strconv.Itoa(inv.ActiveCount))
			pdf.Cell(28, 6, formatMoney(inv.AvgPrice))
			pdf.Cell(28, 6, formatMoney(inv.MinPrice))
			pdf.Cell(28, 6, formatMoney(inv.MaxPrice))
			pdf.Ln(6)
		}
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 6, fmt.Sprintf("Generated on %s | L9kyuu Panel Game Reports",
		result.GeneratedAt.Format("2006-01-02 15:04:05")))

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("games_summary_report_%s.pdf", exportTimestamp(result))
	return buf.Bytes(), filename, nil
}

func hasRevenue(t models.ReportType) bool {
	return t == models.ReportTypeSales || t == models.ReportTypePopularity
}

// formatMoney renders a price with two decimals and thousands grouping,
// matching the panel's number_format output (e.g. 1234567.891 -> "1,234,567.89").
func formatMoney(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	decPart := s[len(s)-3:]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return sign + b.String() + decPart
}
