package handler

import (
	"net/http"

	"boutika/internal/analytics"
	"boutika/internal/catalog"
	"boutika/internal/model"
	"boutika/internal/service"
	"boutika/internal/session"

	"github.com/rs/zerolog"
)

// ProductHandler handles the public storefront product endpoints.
type ProductHandler struct {
	service service.ProductService
	tracker *analytics.Tracker
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, tracker *analytics.Tracker, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		tracker: tracker,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products?q=&category=&sort= requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	params := r.URL.Query()
	q := catalog.Query{
		Search:   params.Get("q"),
		Category: params.Get("category"),
		Sort:     params.Get("sort"),
	}

	if q.Category != "" && q.Category != model.CategoryAll && !model.ValidCategory(q.Category) {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidCategory, "unknown category", h.logger)
		return
	}
	if q.Sort != "" && !catalog.ValidSort(q.Sort) {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidSort, "unknown sort key", h.logger)
		return
	}

	products, err := h.service.List(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve products", h.logger)
		return
	}

	sessionID := session.FromContext(r.Context())
	if q.Search != "" {
		h.tracker.Track(r.Context(), model.EventSearch, "", sessionID, "products")
	} else if q.Category != "" && q.Category != model.CategoryAll {
		h.tracker.Track(r.Context(), model.EventCategoryFilter, "", sessionID, "products")
	}

	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id} requests. A successful fetch emits a
// product_view event attributed to the browsing session.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	path := r.URL.Path
	if len(path) <= len("/api/products/") {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "product ID is required", h.logger)
		return
	}
	productID := path[len("/api/products/"):]
	if productID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "product ID is required", h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), productID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.tracker.Track(r.Context(), model.EventProductView, product.ID, session.FromContext(r.Context()), "product-detail")

	writeJSON(w, http.StatusOK, product)
}
