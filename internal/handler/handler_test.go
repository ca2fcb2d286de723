package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"boutika/internal/analytics"
	"boutika/internal/catalog"
	"boutika/internal/model"
	"boutika/internal/service"
	"boutika/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// stubAnalyticsRepo is an in-memory analytics sink for handler tests. Writes
// are recorded so tests can assert what the tracker emitted.
type stubAnalyticsRepo struct {
	events      []model.AnalyticsEvent
	conversions []model.Conversion
	eventCounts map[string]int
	recentViews []string
	insertErr   error
}

func (s *stubAnalyticsRepo) InsertEvent(_ context.Context, event *model.AnalyticsEvent) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.events = append(s.events, *event)
	return nil
}

func (s *stubAnalyticsRepo) InsertConversion(_ context.Context, conv *model.Conversion) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.conversions = append(s.conversions, *conv)
	return nil
}

func (s *stubAnalyticsRepo) CountEventsByType(_ context.Context, eventType string) (int, error) {
	return s.eventCounts[eventType], nil
}

func (s *stubAnalyticsRepo) CountConversions(_ context.Context) (int, error) {
	return len(s.conversions), nil
}

func (s *stubAnalyticsRepo) RecentViewProductIDs(_ context.Context, limit int) ([]string, error) {
	if limit > len(s.recentViews) {
		limit = len(s.recentViews)
	}
	return s.recentViews[:limit], nil
}

func newTestTracker(repo *stubAnalyticsRepo) *analytics.Tracker {
	return analytics.NewTracker(repo, zerolog.Nop())
}

// withSession stamps a fixed session identity onto the request, standing in
// for the session middleware.
func withSession(r *http.Request, id string) *http.Request {
	return r.WithContext(session.NewContext(r.Context(), id))
}

// MockProductService is a mock implementation of service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, q catalog.Query) ([]model.Product, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, input model.ProductInput, image *service.ImageUpload) (*model.Product, error) {
	args := m.Called(ctx, input, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id string, input model.ProductInput, image *service.ImageUpload) (*model.Product, error) {
	args := m.Called(ctx, id, input, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCartService is a mock implementation of service.CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, userID string) (*service.CartView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CartView), args.Error(1)
}

func (m *MockCartService) AddToCart(ctx context.Context, userID, productID string, quantity int) (*model.CartItem, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	args := m.Called(ctx, itemID, quantity)
	return args.Error(0)
}

func (m *MockCartService) RemoveItem(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockCartService) Clear(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestWriteJSON_UnencodablePayload(t *testing.T) {
	w := httptest.NewRecorder()

	// A channel has no JSON encoding; the status must survive the failure.
	writeJSON(w, http.StatusOK, map[string]interface{}{"ch": make(chan int)})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Product not found maps to 404",
			err:            model.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   model.ErrCodeProductNotFound,
		},
		{
			name:           "Validation error maps to 400",
			err:            model.ErrInvalidCategory,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidCategory,
		},
		{
			name:           "Upload failure maps to 500",
			err:            model.NewDomainError(model.ErrCodeImageUploadError, "Image upload failed"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeImageUploadError,
		},
		{
			name:           "Unknown error collapses to opaque 500",
			err:            errors.New("pg: connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			writeDomainError(w, tt.err, zerolog.Nop())

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedCode)
		})
	}
}
