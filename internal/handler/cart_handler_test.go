package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boutika/internal/cart"
	"boutika/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestCartHandler_Get(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Empty cart", func(t *testing.T) {
		handler := NewCartHandler(cart.NewStore(), new(MockProductService), newTestTracker(&stubAnalyticsRepo{}), logger)

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		w := httptest.NewRecorder()

		handler.Get(w, withSession(req, "session_1_aaaaaaaaa"))

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeCart(t, w)
		assert.Empty(t, resp.Items)
		assert.Zero(t, resp.Total)
		assert.Zero(t, resp.Count)
	})

	t.Run("Populated cart", func(t *testing.T) {
		store := cart.NewStore()
		store.With("session_1_aaaaaaaaa", func(c *cart.Cart) {
			c.Add(model.Product{ID: "P001", Name: "Veste", Price: 12999}, 2)
		})

		handler := NewCartHandler(store, new(MockProductService), newTestTracker(&stubAnalyticsRepo{}), logger)

		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		w := httptest.NewRecorder()

		handler.Get(w, withSession(req, "session_1_aaaaaaaaa"))

		resp := decodeCart(t, w)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, int64(25998), resp.Total)
		assert.Equal(t, 2, resp.Count)
	})
}

func TestCartHandler_AddItem(t *testing.T) {
	logger := zerolog.Nop()
	product := &model.Product{ID: "P001", Name: "Veste en jean", Price: 12999}

	t.Run("Adding twice merges onto one line", func(t *testing.T) {
		store := cart.NewStore()
		mockService := new(MockProductService)
		mockService.On("GetByID", mock.Anything, "P001").Return(product, nil)

		repo := &stubAnalyticsRepo{}
		handler := NewCartHandler(store, mockService, newTestTracker(repo), logger)

		var w *httptest.ResponseRecorder
		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodPost, "/api/cart/items",
				strings.NewReader(`{"productId": "P001", "quantity": 1}`))
			w = httptest.NewRecorder()
			handler.AddItem(w, withSession(req, "session_1_aaaaaaaaa"))
			assert.Equal(t, http.StatusOK, w.Code)
		}

		resp := decodeCart(t, w)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 2, resp.Items[0].Quantity)
		assert.Equal(t, int64(25998), resp.Total)

		// one add_to_cart event per add
		assert.Len(t, repo.events, 2)
		assert.Equal(t, model.EventAddToCart, repo.events[0].EventType)
	})

	t.Run("Unknown product", func(t *testing.T) {
		mockService := new(MockProductService)
		mockService.On("GetByID", mock.Anything, "missing").Return(nil, model.ErrProductNotFound)

		handler := NewCartHandler(cart.NewStore(), mockService, newTestTracker(&stubAnalyticsRepo{}), logger)

		req := httptest.NewRequest(http.MethodPost, "/api/cart/items",
			strings.NewReader(`{"productId": "missing", "quantity": 1}`))
		w := httptest.NewRecorder()

		handler.AddItem(w, withSession(req, "session_1_aaaaaaaaa"))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Missing product id", func(t *testing.T) {
		handler := NewCartHandler(cart.NewStore(), new(MockProductService), newTestTracker(&stubAnalyticsRepo{}), logger)

		req := httptest.NewRequest(http.MethodPost, "/api/cart/items",
			strings.NewReader(`{"quantity": 1}`))
		w := httptest.NewRecorder()

		handler.AddItem(w, withSession(req, "session_1_aaaaaaaaa"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid body", func(t *testing.T) {
		handler := NewCartHandler(cart.NewStore(), new(MockProductService), newTestTracker(&stubAnalyticsRepo{}), logger)

		req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader("not json"))
		w := httptest.NewRecorder()

		handler.AddItem(w, withSession(req, "session_1_aaaaaaaaa"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Carts are isolated per session", func(t *testing.T) {
		store := cart.NewStore()
		mockService := new(MockProductService)
		mockService.On("GetByID", mock.Anything, "P001").Return(product, nil)

		handler := NewCartHandler(store, mockService, newTestTracker(&stubAnalyticsRepo{}), logger)

		req := httptest.NewRequest(http.MethodPost, "/api/cart/items",
			strings.NewReader(`{"productId": "P001", "quantity": 1}`))
		handler.AddItem(httptest.NewRecorder(), withSession(req, "session_1_aaaaaaaaa"))

		other := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		w := httptest.NewRecorder()
		handler.Get(w, withSession(other, "session_2_bbbbbbbbb"))

		resp := decodeCart(t, w)
		assert.Empty(t, resp.Items)
	})
}

func TestCartHandler_UpdateItem(t *testing.T) {
	logger := zerolog.Nop()

	newPopulatedHandler := func() (*CartHandler, *cart.Store) {
		store := cart.NewStore()
		store.With("session_1_aaaaaaaaa", func(c *cart.Cart) {
			c.Add(model.Product{ID: "P001", Name: "Veste", Price: 12999}, 2)
		})
		return NewCartHandler(store, new(MockProductService), newTestTracker(&stubAnalyticsRepo{}), logger), store
	}

	t.Run("Overwrites quantity", func(t *testing.T) {
		handler, _ := newPopulatedHandler()

		req := httptest.NewRequest(http.MethodPut, "/api/cart/items/P001",
			strings.NewReader(`{"quantity": 5}`))
		w := httptest.NewRecorder()

		handler.UpdateItem(w, withSession(req, "session_1_aaaaaaaaa"))

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeCart(t, w)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 5, resp.Items[0].Quantity)
	})

	t.Run("Zero quantity removes the line", func(t *testing.T) {
		handler, _ := newPopulatedHandler()

		req := httptest.NewRequest(http.MethodPut, "/api/cart/items/P001",
			strings.NewReader(`{"quantity": 0}`))
		w := httptest.NewRecorder()

		handler.UpdateItem(w, withSession(req, "session_1_aaaaaaaaa"))

		resp := decodeCart(t, w)
		assert.Empty(t, resp.Items)
	})
}

func TestCartHandler_RemoveItem(t *testing.T) {
	logger := zerolog.Nop()

	store := cart.NewStore()
	store.With("session_1_aaaaaaaaa", func(c *cart.Cart) {
		c.Add(model.Product{ID: "P001", Name: "Veste", Price: 12999}, 1)
		c.Add(model.Product{ID: "P002", Name: "Baskets", Price: 9999}, 1)
	})

	handler := NewCartHandler(store, new(MockProductService), newTestTracker(&stubAnalyticsRepo{}), logger)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/items/P001", nil)
	w := httptest.NewRecorder()

	handler.RemoveItem(w, withSession(req, "session_1_aaaaaaaaa"))

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeCart(t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "P002", resp.Items[0].Product.ID)
}

func TestCartHandler_Clear(t *testing.T) {
	logger := zerolog.Nop()

	store := cart.NewStore()
	store.With("session_1_aaaaaaaaa", func(c *cart.Cart) {
		c.Add(model.Product{ID: "P001", Name: "Veste", Price: 12999}, 3)
	})

	handler := NewCartHandler(store, new(MockProductService), newTestTracker(&stubAnalyticsRepo{}), logger)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart", nil)
	w := httptest.NewRecorder()

	handler.Clear(w, withSession(req, "session_1_aaaaaaaaa"))

	assert.Equal(t, http.StatusOK, w.Code)
	store.With("session_1_aaaaaaaaa", func(c *cart.Cart) {
		assert.Empty(t, c.Lines())
	})
}
