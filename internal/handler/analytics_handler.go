package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"boutika/internal/analytics"
	"boutika/internal/model"
	"boutika/internal/session"

	"github.com/rs/zerolog"
)

const defaultTopProducts = 5

// eventRequest is the client-side interaction report. The session identity
// and timestamp are assigned server-side, never trusted from the body.
type eventRequest struct {
	EventType string `json:"eventType"`
	ProductID string `json:"productId,omitempty"`
	PageName  string `json:"pageName,omitempty"`
}

// AnalyticsHandler handles event ingestion and the admin stats endpoints.
type AnalyticsHandler struct {
	tracker    *analytics.Tracker
	aggregator *analytics.Aggregator
	logger     zerolog.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(tracker *analytics.Tracker, aggregator *analytics.Aggregator, logger zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		tracker:    tracker,
		aggregator: aggregator,
		logger:     logger.With().Str("handler", "analytics").Logger(),
	}
}

// TrackEvent handles POST /api/events requests. Ingestion is best-effort: a
// parseable body is always answered 202, and unknown event kinds are dropped
// with a log line rather than bounced back to the client.
func (h *AnalyticsHandler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if !model.ValidEventType(req.EventType) {
		h.logger.Warn().Str("event_type", req.EventType).Msg("dropping unknown event kind")
	} else {
		h.tracker.Track(r.Context(), req.EventType, req.ProductID, session.FromContext(r.Context()), req.PageName)
	}

	w.WriteHeader(http.StatusAccepted)
}

// Stats handles GET /api/admin/stats requests.
func (h *AnalyticsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	stats, err := h.aggregator.OverallStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to compute stats", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// TopProducts handles GET /api/admin/stats/top-products?limit= requests. The
// ranking is a tally over the most recent view events, not an all-time count.
func (h *AnalyticsHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	limit := defaultTopProducts
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid limit parameter", h.logger)
			return
		}
		limit = parsed
	}

	top, err := h.aggregator.TopProducts(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to compute top products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, top)
}
