package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"

	"boutika/internal/model"
	"boutika/internal/repository"

	"github.com/rs/zerolog"
)

// Aggregator computes the admin dashboard numbers by replaying recent
// events. Unlike the Tracker it reports read failures to the caller, since
// the dashboard surfaces them.
type Aggregator struct {
	repo repository.AnalyticsRepository
	// recentWindow bounds how many recent view events TopProducts samples.
	recentWindow int
	logger       zerolog.Logger
}

// NewAggregator creates a new analytics aggregator.
func NewAggregator(repo repository.AnalyticsRepository, recentWindow int, logger zerolog.Logger) *Aggregator {
	if recentWindow < 1 {
		recentWindow = 100
	}
	return &Aggregator{
		repo:         repo,
		recentWindow: recentWindow,
		logger:       logger.With().Str("service", "analytics-aggregator").Logger(),
	}
}

// TopProducts tallies the product ids of the most recent view events and
// returns the n most viewed, most first. That makes the ranking a sample
// over recent activity rather than a true all-time ranking; the admin
// dashboard documents it as such.
func (a *Aggregator) TopProducts(ctx context.Context, n int) ([]model.ProductViewCount, error) {
	ids, err := a.repo.RecentViewProductIDs(ctx, a.recentWindow)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to fetch recent view events")
		return nil, fmt.Errorf("failed to fetch recent view events: %w", err)
	}

	counts := make(map[string]int)
	order := make([]string, 0, len(ids))
	for _, id := range ids {
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}

	ranking := make([]model.ProductViewCount, 0, len(order))
	for _, id := range order {
		ranking = append(ranking, model.ProductViewCount{ProductID: id, Views: counts[id]})
	}

	// Stable so that equal counts keep most-recently-seen-first order.
	sort.SliceStable(ranking, func(i, j int) bool { return ranking[i].Views > ranking[j].Views })

	if n > 0 && len(ranking) > n {
		ranking = ranking[:n]
	}

	return ranking, nil
}

// OverallStats returns the independent headline counts plus the derived
// conversion rate. With zero views the rate is reported as 0 rather than
// dividing by zero.
func (a *Aggregator) OverallStats(ctx context.Context) (*model.OverallStats, error) {
	views, err := a.repo.CountEventsByType(ctx, model.EventProductView)
	if err != nil {
		return nil, fmt.Errorf("failed to count views: %w", err)
	}

	cartAdds, err := a.repo.CountEventsByType(ctx, model.EventAddToCart)
	if err != nil {
		return nil, fmt.Errorf("failed to count cart adds: %w", err)
	}

	conversions, err := a.repo.CountConversions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count conversions: %w", err)
	}

	stats := &model.OverallStats{
		TotalViews:       views,
		TotalCartAdds:    cartAdds,
		TotalConversions: conversions,
	}
	if views > 0 {
		rate := float64(conversions) / float64(views) * 100
		stats.ConversionRate = math.Round(rate*100) / 100
	}

	return stats, nil
}
