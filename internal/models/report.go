package models

import (
	"time"
)

// ReportType selects which statistical computation runs
type ReportType string

const (
	ReportTypeOverview   ReportType = "overview"
	ReportTypeSales      ReportType = "sales"
	ReportTypeInventory  ReportType = "inventory"
	ReportTypePopularity ReportType = "popularity"
)

// ParseReportType maps a raw parameter to a ReportType. Unrecognized values
// downgrade to overview rather than erroring; the panel has always treated a
// bad report selector as a request for the default view.
func ParseReportType(raw string) ReportType {
	switch ReportType(raw) {
	case ReportTypeSales, ReportTypeInventory, ReportTypePopularity:
		return ReportType(raw)
	default:
		return ReportTypeOverview
	}
}

// Title returns the display name used in document headers.
func (t ReportType) Title() string {
	switch t {
	case ReportTypeSales:
		return "Sales"
	case ReportTypeInventory:
		return "Inventory"
	case ReportTypePopularity:
		return "Popularity"
	default:
		return "Overview"
	}
}

// DateRange bounds a report by creation date, inclusive on both ends.
// A reversed range is not validated; it simply matches no rows.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ResolveDateRange applies the panel defaults: first day of the current month
// through today. Raw values must be calendar dates (2006-01-02); a malformed
// value falls back to its default, same as an absent one.
func ResolveDateRange(startRaw, endRaw string, now time.Time) DateRange {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if startRaw != "" {
		if t, err := time.ParseInLocation("2006-01-02", startRaw, now.Location()); err == nil {
			start = t
		}
	}
	if endRaw != "" {
		if t, err := time.ParseInLocation("2006-01-02", endRaw, now.Location()); err == nil {
			end = t
		}
	}

	return DateRange{Start: start, End: end}
}

// Bounds returns the comparable limits of the range. The end date is
// extended to the last second of the day so rows created on the end date
// count as inside the range.
func (r DateRange) Bounds() (time.Time, time.Time) {
	return r.Start, r.End.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}

// Contains reports whether t falls within the range.
func (r DateRange) Contains(t time.Time) bool {
	start, end := r.Bounds()
	return !t.Before(start) && !t.After(end)
}

// StartLabel and EndLabel format the bounds for display and export headers.
func (r DateRange) StartLabel() string { return r.Start.Format("2006-01-02") }
func (r DateRange) EndLabel() string   { return r.End.Format("2006-01-02") }

// ReportSummary is the stat-card block shared by every report type.
// Revenue fields are only populated for sales and popularity.
type ReportSummary struct {
	TotalGames              int     `json:"total_games"`
	ActiveGames             int     `json:"active_games"`
	InactiveGames           int     `json:"inactive_games"`
	AvgPrice                float64 `json:"avg_price"`
	MinPrice                float64 `json:"min_price"`
	MaxPrice                float64 `json:"max_price"`
	PotentialRevenue        float64 `json:"potential_revenue"`
	AvgRevenuePerActiveGame float64 `json:"avg_revenue_per_active_game"`
}

// DistributionEntry is one genre or platform bucket. Percentage is relative
// to the report's total game count, not the distribution's own sum: platform
// buckets can jointly exceed the total because a game may list several
// platforms.
type DistributionEntry struct {
	Label       string  `json:"label"`
	Count       int     `json:"count"`
	ActiveCount int     `json:"active_count"`
	Percentage  float64 `json:"percentage"`
}

// ReportGame is the row-level projection used by game listings and the
// top-priced ranking. GenreCount/PlatformCount are populated only by the
// popularity report.
type ReportGame struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Price         float64   `json:"price"`
	Genre         string    `json:"genre"`
	Platform      string    `json:"platform"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	GenreCount    int       `json:"genre_count,omitempty"`
	PlatformCount int       `json:"platform_count,omitempty"`
}

// InventoryGroup is one (genre, platform) aggregate row of the inventory
// report, ordered by genre then platform.
type InventoryGroup struct {
	Genre       string  `json:"genre"`
	Platform    string  `json:"platform"`
	TotalCount  int     `json:"total_count"`
	ActiveCount int     `json:"active_count"`
	AvgPrice    float64 `json:"avg_price"`
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`
}

// ReportResult is the computed output of one aggregation run. It is
// recomputed per request and feeds the interactive view and every export
// renderer, so the outputs cannot drift apart.
type ReportResult struct {
	Type      ReportType    `json:"report_type"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Summary   ReportSummary `json:"summary"`

	Genres    []DistributionEntry `json:"genre_distribution,omitempty"`
	Platforms []DistributionEntry `json:"platform_distribution,omitempty"`
	TopGenres []DistributionEntry `json:"top_genres,omitempty"`

	TopPriced []ReportGame     `json:"top_priced,omitempty"`
	Games     []ReportGame     `json:"games,omitempty"`
	Inventory []InventoryGroup `json:"inventory,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}
