package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"boutika/internal/analytics"
	"boutika/internal/cart"
	"boutika/internal/model"
	"boutika/internal/service"
	"boutika/internal/session"

	"github.com/rs/zerolog"
)

// cartItemRequest is the body for cart mutations.
type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// cartResponse is the session cart rendered with its derived totals.
type cartResponse struct {
	Items []cart.Line `json:"items"`
	Total int64       `json:"total"`
	Count int         `json:"count"`
}

// CartHandler handles the anonymous session cart, keyed by the session
// cookie. The cart lives in process memory and dies with it.
type CartHandler struct {
	store    *cart.Store
	products service.ProductService
	tracker  *analytics.Tracker
	logger   zerolog.Logger
}

// NewCartHandler creates a new session cart handler.
func NewCartHandler(store *cart.Store, products service.ProductService, tracker *analytics.Tracker, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		store:    store,
		products: products,
		tracker:  tracker,
		logger:   logger.With().Str("handler", "cart").Logger(),
	}
}

func renderCart(c *cart.Cart) cartResponse {
	return cartResponse{
		Items: c.Lines(),
		Total: c.Total(),
		Count: c.Count(),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var resp cartResponse
	h.store.With(session.FromContext(r.Context()), func(c *cart.Cart) {
		resp = renderCart(c)
	})

	writeJSON(w, http.StatusOK, resp)
}

// AddItem handles POST /api/cart/items requests. Adding a product already in
// the cart merges quantities onto the existing line.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "productId is required", h.logger)
		return
	}

	product, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	sessionID := session.FromContext(r.Context())

	var resp cartResponse
	h.store.With(sessionID, func(c *cart.Cart) {
		c.Add(*product, req.Quantity)
		resp = renderCart(c)
	})

	h.tracker.Track(r.Context(), model.EventAddToCart, product.ID, sessionID, "cart")

	writeJSON(w, http.StatusOK, resp)
}

// UpdateItem handles PUT /api/cart/items/{productID} requests. A quantity of
// zero or less removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	productID := strings.TrimPrefix(r.URL.Path, "/api/cart/items/")
	if productID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "product ID is required", h.logger)
		return
	}

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	var resp cartResponse
	h.store.With(session.FromContext(r.Context()), func(c *cart.Cart) {
		c.UpdateQuantity(productID, req.Quantity)
		resp = renderCart(c)
	})

	writeJSON(w, http.StatusOK, resp)
}

// RemoveItem handles DELETE /api/cart/items/{productID} requests. Removing an
// absent line is a no-op.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	productID := strings.TrimPrefix(r.URL.Path, "/api/cart/items/")
	if productID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "product ID is required", h.logger)
		return
	}

	var resp cartResponse
	h.store.With(session.FromContext(r.Context()), func(c *cart.Cart) {
		c.Remove(productID)
		resp = renderCart(c)
	})

	writeJSON(w, http.StatusOK, resp)
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	h.store.Drop(session.FromContext(r.Context()))
	writeJSON(w, http.StatusOK, cartResponse{Items: []cart.Line{}})
}
