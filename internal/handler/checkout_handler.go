package handler

import (
	"encoding/json"
	"net/http"

	"boutika/internal/analytics"
	"boutika/internal/cart"
	"boutika/internal/model"
	"boutika/internal/service"
	"boutika/internal/session"
	"boutika/internal/whatsapp"

	"github.com/rs/zerolog"
)

// checkoutRequest selects what is being ordered. With a productId the order
// is that single product; without one the whole session cart is ordered.
type checkoutRequest struct {
	ProductID string `json:"productId,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
}

// checkoutResponse carries the hand-off link. There is no payment step; the
// conversation continues on WhatsApp.
type checkoutResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
	Total   int64  `json:"total"`
	Items   int    `json:"items"`
}

// CheckoutHandler turns a cart or a single product into a pre-filled
// WhatsApp order link and records the conversion.
type CheckoutHandler struct {
	builder  *whatsapp.Builder
	store    *cart.Store
	products service.ProductService
	tracker  *analytics.Tracker
	logger   zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(
	builder *whatsapp.Builder,
	store *cart.Store,
	products service.ProductService,
	tracker *analytics.Tracker,
	logger zerolog.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		builder:  builder,
		store:    store,
		products: products,
		tracker:  tracker,
		logger:   logger.With().Str("handler", "checkout").Logger(),
	}
}

// Checkout handles POST /api/checkout requests. The conversion record is
// fire-and-forget; a failed analytics write never blocks the hand-off.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if req.ProductID != "" {
		h.checkoutProduct(w, r, req)
		return
	}
	h.checkoutCart(w, r)
}

func (h *CheckoutHandler) checkoutProduct(w http.ResponseWriter, r *http.Request, req checkoutRequest) {
	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	product, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	msg := h.builder.ProductMessage(*product, quantity)
	total := product.Price * int64(quantity)

	h.recordConversion(r, total, quantity)

	writeJSON(w, http.StatusOK, checkoutResponse{
		URL:     h.builder.Link(msg),
		Message: msg,
		Total:   total,
		Items:   quantity,
	})
}

func (h *CheckoutHandler) checkoutCart(w http.ResponseWriter, r *http.Request) {
	var (
		lines []cart.Line
		total int64
		count int
	)
	h.store.With(session.FromContext(r.Context()), func(c *cart.Cart) {
		lines = c.Lines()
		total = c.Total()
		count = c.Count()
	})
	if len(lines) == 0 {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "cart is empty", h.logger)
		return
	}

	msg := h.builder.CartMessage(lines, total)

	h.recordConversion(r, total, count)

	writeJSON(w, http.StatusOK, checkoutResponse{
		URL:     h.builder.Link(msg),
		Message: msg,
		Total:   total,
		Items:   count,
	})
}

func (h *CheckoutHandler) recordConversion(r *http.Request, total int64, items int) {
	h.tracker.TrackConversion(r.Context(), &model.Conversion{
		UserSessionID:   session.FromContext(r.Context()),
		TotalAmount:     total,
		ItemsCount:      items,
		WhatsAppClicked: true,
	})
}
