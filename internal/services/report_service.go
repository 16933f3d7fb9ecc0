package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/l9kyuu/gamepanel-api/internal/models"
	"github.com/l9kyuu/gamepanel-api/internal/repository"
)

const topPricedLimit = 10
const topGenresLimit = 5

// ReportParams is the resolved input of one report run. Both the interactive
// view and the export endpoints build it through ResolveParams, so an export
// always sees the exact parameters that produced the on-screen report.
type ReportParams struct {
	Type  models.ReportType
	Range models.DateRange
}

// ResolveParams normalizes raw request parameters: unknown report types
// downgrade to overview, absent or malformed dates fall back to
// first-of-month / today.
func ResolveParams(reportRaw, startRaw, endRaw string, now time.Time) ReportParams {
	return ReportParams{
		Type:  models.ParseReportType(reportRaw),
		Range: models.ResolveDateRange(startRaw, endRaw, now),
	}
}

// ReportService computes report statistics from catalog rows.
type ReportService struct {
	gameRepo repository.GameRepository
}

func NewReportService(gameRepo repository.GameRepository) *ReportService {
	return &ReportService{gameRepo: gameRepo}
}

// computers is the single dispatch point from report type to aggregation.
var computers = map[models.ReportType]func(*ReportService, context.Context, ReportParams) (*models.ReportResult, error){
	models.ReportTypeOverview:   (*ReportService).computeOverview,
	models.ReportTypeSales:      (*ReportService).computeSales,
	models.ReportTypeInventory:  (*ReportService).computeInventory,
	models.ReportTypePopularity: (*ReportService).computePopularity,
}

// Generate runs the aggregation for the given parameters. The result is
// transient: recomputed per request, never cached.
func (s *ReportService) Generate(ctx context.Context, params ReportParams) (*models.ReportResult, error) {
	compute, ok := computers[params.Type]
	if !ok {
		compute = (*ReportService).computeOverview
	}
	return compute(s, ctx, params)
}

func (s *ReportService) newResult(params ReportParams) *models.ReportResult {
	return &models.ReportResult{
		Type:        params.Type,
		StartDate:   params.Range.StartLabel(),
		EndDate:     params.Range.EndLabel(),
		GeneratedAt: time.Now(),
	}
}

// computeOverview aggregates over the full catalog regardless of the date
// range; only the row listing is date-bounded. This asymmetry is inherited
// from the panel and must not be "fixed".
func (s *ReportService) computeOverview(ctx context.Context, params ReportParams) (*models.ReportResult, error) {
	all, err := s.gameRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	inRange, err := s.gameRepo.FindCreatedBetween(ctx, params.Range)
	if err != nil {
		return nil, err
	}

	result := s.newResult(params)
	result.Summary = summarize(all)
	result.Genres = genreDistribution(all, result.Summary.TotalGames)
	result.Platforms = platformDistribution(all, result.Summary.TotalGames)
	result.Games = projectGames(inRange)
	return result, nil
}

// computeSales derives a synthetic revenue model from prices; there is no
// transactions table behind the catalog.
func (s *ReportService) computeSales(ctx context.Context, params ReportParams) (*models.ReportResult, error) {
	all, err := s.gameRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	inRange, err := s.gameRepo.FindCreatedBetween(ctx, params.Range)
	if err != nil {
		return nil, err
	}

	result := s.newResult(params)
	result.Summary = summarize(inRange)
	addRevenue(&result.Summary, inRange)
	result.TopPriced = topPriced(all, topPricedLimit)
	result.Games = projectGames(inRange)
	return result, nil
}

// computeInventory aggregates strictly over the date-bounded set, including
// both distributions, unlike overview.
func (s *ReportService) computeInventory(ctx context.Context, params ReportParams) (*models.ReportResult, error) {
	inRange, err := s.gameRepo.FindCreatedBetween(ctx, params.Range)
	if err != nil {
		return nil, err
	}

	result := s.newResult(params)
	result.Summary = summarize(inRange)
	result.Genres = genreDistribution(inRange, result.Summary.TotalGames)
	result.Platforms = platformDistribution(inRange, result.Summary.TotalGames)
	result.Inventory = inventoryGroups(inRange)
	return result, nil
}

// computePopularity ranks in-range genres and annotates each row with
// catalog-wide genre and platform company counts.
func (s *ReportService) computePopularity(ctx context.Context, params ReportParams) (*models.ReportResult, error) {
	all, err := s.gameRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	inRange, err := s.gameRepo.FindCreatedBetween(ctx, params.Range)
	if err != nil {
		return nil, err
	}

	result := s.newResult(params)
	result.Summary = summarize(inRange)
	addRevenue(&result.Summary, inRange)

	genres := genreDistribution(inRange, result.Summary.TotalGames)
	if len(genres) > topGenresLimit {
		genres = genres[:topGenresLimit]
	}
	result.TopGenres = genres
	result.Platforms = platformDistribution(inRange, result.Summary.TotalGames)
	result.Games = popularityGames(inRange, all)
	return result, nil
}

// summarize computes the count and price block. Empty sets yield an
// all-zero summary, never an error.
func summarize(games []models.Game) models.ReportSummary {
	var summary models.ReportSummary
	summary.TotalGames = len(games)
	if len(games) == 0 {
		return summary
	}

	var sum float64
	summary.MinPrice = games[0].Price
	summary.MaxPrice = games[0].Price
	for _, g := range games {
		if g.IsActive {
			summary.ActiveGames++
		}
		sum += g.Price
		if g.Price < summary.MinPrice {
			summary.MinPrice = g.Price
		}
		if g.Price > summary.MaxPrice {
			summary.MaxPrice = g.Price
		}
	}
	summary.InactiveGames = summary.TotalGames - summary.ActiveGames
	summary.AvgPrice = sum / float64(summary.TotalGames)
	return summary
}

// addRevenue fills the synthetic revenue fields: active prices summed, and
// the per-active average guarded against an empty active set.
func addRevenue(summary *models.ReportSummary, games []models.Game) {
	for _, g := range games {
		if g.IsActive {
			summary.PotentialRevenue += g.Price
		}
	}
	if summary.ActiveGames > 0 {
		summary.AvgRevenuePerActiveGame = roundTwo(summary.PotentialRevenue / float64(summary.ActiveGames))
	}
}

// percentage is the one share formula every distribution uses:
// round(count / totalGames * 100, 2), defined as 0 for an empty set.
func percentage(count, totalGames int) float64 {
	if totalGames == 0 {
		return 0
	}
	return roundTwo(float64(count) / float64(totalGames) * 100)
}

func roundTwo(v float64) float64 {
	return math.Round(v*100) / 100
}

func genreDistribution(games []models.Game, totalGames int) []models.DistributionEntry {
	counts := map[string]*models.DistributionEntry{}
	order := []string{}
	for _, g := range games {
		entry, ok := counts[g.Genre]
		if !ok {
			entry = &models.DistributionEntry{Label: g.Genre}
			counts[g.Genre] = entry
			order = append(order, g.Genre)
		}
		entry.Count++
		if g.IsActive {
			entry.ActiveCount++
		}
	}
	return sortedDistribution(counts, order, totalGames)
}

func platformDistribution(games []models.Game, totalGames int) []models.DistributionEntry {
	counts := map[string]*models.DistributionEntry{}
	order := []string{}
	for _, g := range games {
		for _, token := range TokenizePlatforms(g.Platform) {
			entry, ok := counts[token]
			if !ok {
				entry = &models.DistributionEntry{Label: token}
				counts[token] = entry
				order = append(order, token)
			}
			entry.Count++
			if g.IsActive {
				entry.ActiveCount++
			}
		}
	}
	return sortedDistribution(counts, order, totalGames)
}

// sortedDistribution orders buckets by count descending; equal counts order
// by label so repeated runs are byte-identical.
func sortedDistribution(counts map[string]*models.DistributionEntry, order []string, totalGames int) []models.DistributionEntry {
	entries := make([]models.DistributionEntry, 0, len(order))
	for _, label := range order {
		entry := *counts[label]
		entry.Percentage = percentage(entry.Count, totalGames)
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})
	return entries
}

// topPriced ranks the whole catalog by price descending. Price ties break on
// ascending id so the ranking does not depend on store iteration order.
func topPriced(games []models.Game, limit int) []models.ReportGame {
	ranked := make([]models.Game, len(games))
	copy(ranked, games)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Price != ranked[j].Price {
			return ranked[i].Price > ranked[j].Price
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return projectGames(ranked)
}

func inventoryGroups(games []models.Game) []models.InventoryGroup {
	type groupKey struct{ genre, platform string }
	groups := map[groupKey]*models.InventoryGroup{}
	sums := map[groupKey]float64{}

	for _, g := range games {
		key := groupKey{g.Genre, g.Platform}
		group, ok := groups[key]
		if !ok {
			group = &models.InventoryGroup{
				Genre:    g.Genre,
				Platform: g.Platform,
				MinPrice: g.Price,
				MaxPrice: g.Price,
			}
			groups[key] = group
		}
		group.TotalCount++
		if g.IsActive {
			group.ActiveCount++
		}
		sums[key] += g.Price
		if g.Price < group.MinPrice {
			group.MinPrice = g.Price
		}
		if g.Price > group.MaxPrice {
			group.MaxPrice = g.Price
		}
	}

	rows := make([]models.InventoryGroup, 0, len(groups))
	for key, group := range groups {
		group.AvgPrice = sums[key] / float64(group.TotalCount)
		rows = append(rows, *group)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Genre != rows[j].Genre {
			return rows[i].Genre < rows[j].Genre
		}
		return rows[i].Platform < rows[j].Platform
	})
	return rows
}

// popularityGames projects the in-range rows with catalog-wide company
// counts: how many games share the row's genre, and how many share at least
// one of its platform tokens. Both counts include the row itself.
func popularityGames(inRange, catalog []models.Game) []models.ReportGame {
	genreCounts := map[string]int{}
	tokenIndex := map[string][]uint{}
	for _, g := range catalog {
		genreCounts[g.Genre]++
		for _, token := range TokenizePlatforms(g.Platform) {
			tokenIndex[token] = append(tokenIndex[token], g.ID)
		}
	}

	rows := projectGames(inRange)
	for i, g := range inRange {
		rows[i].GenreCount = genreCounts[g.Genre]

		shared := map[uint]struct{}{}
		for _, token := range TokenizePlatforms(g.Platform) {
			for _, id := range tokenIndex[token] {
				shared[id] = struct{}{}
			}
		}
		rows[i].PlatformCount = len(shared)
	}
	return rows
}

func projectGames(games []models.Game) []models.ReportGame {
	rows := make([]models.ReportGame, 0, len(games))
	for _, g := range games {
		rows = append(rows, models.ReportGame{
			ID:        g.ID,
			Title:     g.Title,
			Price:     g.Price,
			Genre:     g.Genre,
			Platform:  g.Platform,
			Status:    g.StatusLabel(),
			CreatedAt: g.CreatedAt,
			UpdatedAt: g.UpdatedAt,
		})
	}
	return rows
}
