package analytics

import (
	"context"
	"errors"
	"testing"

	"boutika/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAnalyticsRepository is a mock implementation of repository.AnalyticsRepository.
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) InsertEvent(ctx context.Context, event *model.AnalyticsEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAnalyticsRepository) InsertConversion(ctx context.Context, conv *model.Conversion) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *MockAnalyticsRepository) CountEventsByType(ctx context.Context, eventType string) (int, error) {
	args := m.Called(ctx, eventType)
	return args.Int(0), args.Error(1)
}

func (m *MockAnalyticsRepository) CountConversions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockAnalyticsRepository) RecentViewProductIDs(ctx context.Context, limit int) ([]string, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestTracker_Track(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("Records event with product id", func(t *testing.T) {
		repo := new(MockAnalyticsRepository)
		repo.On("InsertEvent", ctx, mock.MatchedBy(func(e *model.AnalyticsEvent) bool {
			return e.EventType == model.EventProductView &&
				e.ProductID != nil && *e.ProductID == "P001" &&
				e.UserSessionID == "s1" &&
				e.PageName == "catalog"
		})).Return(nil)

		tracker := NewTracker(repo, logger)
		tracker.Track(ctx, model.EventProductView, "P001", "s1", "catalog")

		repo.AssertExpectations(t)
	})

	t.Run("Empty product id becomes null", func(t *testing.T) {
		repo := new(MockAnalyticsRepository)
		repo.On("InsertEvent", ctx, mock.MatchedBy(func(e *model.AnalyticsEvent) bool {
			return e.EventType == model.EventSearch && e.ProductID == nil
		})).Return(nil)

		tracker := NewTracker(repo, logger)
		tracker.Track(ctx, model.EventSearch, "", "s1", "catalog")

		repo.AssertExpectations(t)
	})

	t.Run("Insert failure is swallowed", func(t *testing.T) {
		repo := new(MockAnalyticsRepository)
		repo.On("InsertEvent", ctx, mock.Anything).Return(errors.New("connection refused"))

		tracker := NewTracker(repo, logger)

		// Must not panic or propagate; the event is simply lost.
		tracker.Track(ctx, model.EventAddToCart, "P001", "s1", "catalog")

		repo.AssertExpectations(t)
		repo.AssertNumberOfCalls(t, "InsertEvent", 1)
	})
}

func TestTracker_TrackConversion(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("Records conversion", func(t *testing.T) {
		repo := new(MockAnalyticsRepository)
		repo.On("InsertConversion", ctx, mock.MatchedBy(func(c *model.Conversion) bool {
			return c.UserSessionID == "s1" && c.TotalAmount == 25998 && c.ItemsCount == 2 && c.WhatsAppClicked
		})).Return(nil)

		tracker := NewTracker(repo, logger)
		tracker.TrackConversion(ctx, &model.Conversion{
			UserSessionID:   "s1",
			TotalAmount:     25998,
			ItemsCount:      2,
			WhatsAppClicked: true,
		})

		repo.AssertExpectations(t)
	})

	t.Run("Insert failure is swallowed", func(t *testing.T) {
		repo := new(MockAnalyticsRepository)
		repo.On("InsertConversion", ctx, mock.Anything).Return(errors.New("timeout"))

		tracker := NewTracker(repo, logger)
		tracker.TrackConversion(ctx, &model.Conversion{UserSessionID: "s1"})

		repo.AssertExpectations(t)
	})
}

func TestAggregator_TopProducts(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name     string
		recent   []string
		n        int
		expected []model.ProductViewCount
	}{
		{
			name:   "Tally and rank descending",
			recent: []string{"P1", "P2", "P1", "P3", "P1", "P2"},
			n:      5,
			expected: []model.ProductViewCount{
				{ProductID: "P1", Views: 3},
				{ProductID: "P2", Views: 2},
				{ProductID: "P3", Views: 1},
			},
		},
		{
			name:   "Truncates to n",
			recent: []string{"P1", "P2", "P1", "P3"},
			n:      2,
			expected: []model.ProductViewCount{
				{ProductID: "P1", Views: 2},
				{ProductID: "P2", Views: 1},
			},
		},
		{
			name:     "No recent events",
			recent:   []string{},
			n:        5,
			expected: []model.ProductViewCount{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockAnalyticsRepository)
			repo.On("RecentViewProductIDs", ctx, 100).Return(tt.recent, nil)

			agg := NewAggregator(repo, 100, logger)
			got, err := agg.TopProducts(ctx, tt.n)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAggregator_TopProducts_RepositoryError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAnalyticsRepository)
	repo.On("RecentViewProductIDs", ctx, 50).Return(nil, errors.New("database error"))

	agg := NewAggregator(repo, 50, zerolog.Nop())
	got, err := agg.TopProducts(ctx, 5)

	require.Error(t, err)
	assert.Nil(t, got)
}

func TestAggregator_OverallStats(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name         string
		views        int
		cartAdds     int
		conversions  int
		expectedRate float64
	}{
		{
			name:         "Zero views yields zero rate",
			views:        0,
			cartAdds:     3,
			conversions:  2,
			expectedRate: 0,
		},
		{
			name:         "Ten views two conversions",
			views:        10,
			cartAdds:     4,
			conversions:  2,
			expectedRate: 20.00,
		},
		{
			name:         "Rate rounded to two decimals",
			views:        3,
			cartAdds:     0,
			conversions:  1,
			expectedRate: 33.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockAnalyticsRepository)
			repo.On("CountEventsByType", ctx, model.EventProductView).Return(tt.views, nil)
			repo.On("CountEventsByType", ctx, model.EventAddToCart).Return(tt.cartAdds, nil)
			repo.On("CountConversions", ctx).Return(tt.conversions, nil)

			agg := NewAggregator(repo, 100, logger)
			stats, err := agg.OverallStats(ctx)

			require.NoError(t, err)
			assert.Equal(t, tt.views, stats.TotalViews)
			assert.Equal(t, tt.cartAdds, stats.TotalCartAdds)
			assert.Equal(t, tt.conversions, stats.TotalConversions)
			assert.InDelta(t, tt.expectedRate, stats.ConversionRate, 0.001)
		})
	}
}

func TestAggregator_OverallStats_CountError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAnalyticsRepository)
	repo.On("CountEventsByType", ctx, model.EventProductView).Return(0, errors.New("database error"))

	agg := NewAggregator(repo, 100, zerolog.Nop())
	stats, err := agg.OverallStats(ctx)

	require.Error(t, err)
	assert.Nil(t, stats)
}
