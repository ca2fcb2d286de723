package repository

import (
	"context"
	"fmt"

	"boutika/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// analyticsRepository implements AnalyticsRepository using PostgreSQL.
type analyticsRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAnalyticsRepository creates a new PostgreSQL-backed analytics repository.
func NewAnalyticsRepository(pool *pgxpool.Pool, logger zerolog.Logger) AnalyticsRepository {
	return &analyticsRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "analytics").Logger(),
	}
}

// InsertEvent appends one analytics event. NOW() assigns the timestamp so
// client clocks never leak into the data.
func (r *analyticsRepository) InsertEvent(ctx context.Context, event *model.AnalyticsEvent) error {
	query := `
		INSERT INTO analytics_events (id, event_type, product_id, user_session_id, page_name, timestamp)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	id := event.ID
	if id == "" {
		id = uuid.NewString()
	}

	_, err := r.pool.Exec(ctx, query, id, event.EventType, event.ProductID, event.UserSessionID, event.PageName)
	if err != nil {
		r.logger.Error().Err(err).Str("event_type", event.EventType).Msg("failed to insert analytics event")
		return fmt.Errorf("failed to insert analytics event: %w", err)
	}

	return nil
}

// InsertConversion appends one conversion record, timestamped by the database.
func (r *analyticsRepository) InsertConversion(ctx context.Context, conv *model.Conversion) error {
	query := `
		INSERT INTO analytics_conversions (id, user_session_id, total_amount, items_count, whatsapp_clicked, timestamp)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	id := conv.ID
	if id == "" {
		id = uuid.NewString()
	}

	_, err := r.pool.Exec(ctx, query, id, conv.UserSessionID, conv.TotalAmount, conv.ItemsCount, conv.WhatsAppClicked)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", conv.UserSessionID).Msg("failed to insert conversion")
		return fmt.Errorf("failed to insert conversion: %w", err)
	}

	return nil
}

// CountEventsByType counts events of one kind without fetching rows.
func (r *analyticsRepository) CountEventsByType(ctx context.Context, eventType string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM analytics_events WHERE event_type = $1`, eventType).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to count analytics events")
		return 0, fmt.Errorf("failed to count analytics events: %w", err)
	}

	return count, nil
}

// CountConversions counts all conversion records.
func (r *analyticsRepository) CountConversions(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM analytics_conversions`).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count conversions")
		return 0, fmt.Errorf("failed to count conversions: %w", err)
	}

	return count, nil
}

// RecentViewProductIDs returns the product ids of the most recent
// product_view events, newest first, bounded by limit. Events with no
// product id are skipped.
func (r *analyticsRepository) RecentViewProductIDs(ctx context.Context, limit int) ([]string, error) {
	query := `
		SELECT product_id
		FROM analytics_events
		WHERE event_type = $1 AND product_id IS NOT NULL
		ORDER BY timestamp DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, model.EventProductView, limit)
	if err != nil {
		r.logger.Error().Err(err).Int("limit", limit).Msg("failed to query recent view events")
		return nil, fmt.Errorf("failed to query recent view events: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan view event: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating view events: %w", err)
	}

	return ids, nil
}
