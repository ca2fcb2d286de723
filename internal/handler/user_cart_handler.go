package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"boutika/internal/model"
	"boutika/internal/service"

	"github.com/rs/zerolog"
)

// UserCartHandler handles the persisted per-user cart, which survives
// restarts unlike the in-memory session cart.
type UserCartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewUserCartHandler creates a new persisted cart handler.
func NewUserCartHandler(service service.CartService, logger zerolog.Logger) *UserCartHandler {
	return &UserCartHandler{
		service: service,
		logger:  logger.With().Str("handler", "user_cart").Logger(),
	}
}

// Route dispatches /api/users/{userID}/cart... requests. Paths:
//
//	GET    /api/users/{userID}/cart
//	DELETE /api/users/{userID}/cart
//	POST   /api/users/{userID}/cart/items
//	PUT    /api/users/{userID}/cart/items/{itemID}
//	DELETE /api/users/{userID}/cart/items/{itemID}
func (h *UserCartHandler) Route(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/users/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	if len(parts) < 2 || parts[0] == "" || parts[1] != "cart" {
		writeError(w, http.StatusNotFound, model.ErrCodeNotFound, "not found", h.logger)
		return
	}
	userID := parts[0]

	switch {
	case len(parts) == 2 && r.Method == http.MethodGet:
		h.getCart(w, r, userID)
	case len(parts) == 2 && r.Method == http.MethodDelete:
		h.clearCart(w, r, userID)
	case len(parts) == 3 && parts[2] == "items" && r.Method == http.MethodPost:
		h.addItem(w, r, userID)
	case len(parts) == 4 && parts[2] == "items" && r.Method == http.MethodPut:
		h.updateItem(w, r, parts[3])
	case len(parts) == 4 && parts[2] == "items" && r.Method == http.MethodDelete:
		h.removeItem(w, r, parts[3])
	default:
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *UserCartHandler) getCart(w http.ResponseWriter, r *http.Request, userID string) {
	view, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve cart", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *UserCartHandler) addItem(w http.ResponseWriter, r *http.Request, userID string) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "productId is required", h.logger)
		return
	}

	item, err := h.service.AddToCart(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *UserCartHandler) updateItem(w http.ResponseWriter, r *http.Request, itemID string) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.service.UpdateQuantity(r.Context(), itemID, req.Quantity); err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to update cart item", h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserCartHandler) removeItem(w http.ResponseWriter, r *http.Request, itemID string) {
	if err := h.service.RemoveItem(r.Context(), itemID); err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to remove cart item", h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserCartHandler) clearCart(w http.ResponseWriter, r *http.Request, userID string) {
	if err := h.service.Clear(r.Context(), userID); err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to clear cart", h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
