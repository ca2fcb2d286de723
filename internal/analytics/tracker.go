// Package analytics implements the fire-and-forget event emitter and the
// admin-side aggregation over the collected events.
package analytics

import (
	"context"

	"boutika/internal/model"
	"boutika/internal/repository"

	"github.com/rs/zerolog"
)

// Tracker records analytics events and conversions as best-effort writes.
// A failed write is logged and dropped: never surfaced to the caller, never
// retried, never queued. The data is reporting-only, so loss is acceptable;
// it must never become billing-relevant under this policy.
type Tracker struct {
	repo   repository.AnalyticsRepository
	logger zerolog.Logger
}

// NewTracker creates a new analytics tracker.
func NewTracker(repo repository.AnalyticsRepository, logger zerolog.Logger) *Tracker {
	return &Tracker{
		repo:   repo,
		logger: logger.With().Str("service", "analytics-tracker").Logger(),
	}
}

// Track records one event for the given session. productID may be empty for
// kinds that are not tied to a product, such as search.
func (t *Tracker) Track(ctx context.Context, eventType, productID, sessionID, pageName string) {
	event := &model.AnalyticsEvent{
		EventType:     eventType,
		UserSessionID: sessionID,
		PageName:      pageName,
	}
	if productID != "" {
		event.ProductID = &productID
	}

	if err := t.repo.InsertEvent(ctx, event); err != nil {
		t.logger.Warn().
			Err(err).
			Str("event_type", eventType).
			Str("session_id", sessionID).
			Msg("dropping analytics event")
		return
	}

	t.logger.Debug().
		Str("event_type", eventType).
		Str("session_id", sessionID).
		Msg("analytics event recorded")
}

// TrackConversion records a checkout intent under the same loss policy as
// Track.
func (t *Tracker) TrackConversion(ctx context.Context, conv *model.Conversion) {
	if err := t.repo.InsertConversion(ctx, conv); err != nil {
		t.logger.Warn().
			Err(err).
			Str("session_id", conv.UserSessionID).
			Int64("total_amount", conv.TotalAmount).
			Msg("dropping conversion record")
		return
	}

	t.logger.Debug().
		Str("session_id", conv.UserSessionID).
		Int64("total_amount", conv.TotalAmount).
		Int("items_count", conv.ItemsCount).
		Msg("conversion recorded")
}
