package router

import (
	"net/http"
	"strings"

	"boutika/internal/handler"
	"boutika/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Product   *handler.ProductHandler
	Cart      *handler.CartHandler
	UserCart  *handler.UserCartHandler
	Checkout  *handler.CheckoutHandler
	Analytics *handler.AnalyticsHandler
	Admin     *handler.AdminHandler
}

// New creates the HTTP router with all routes and middleware configured.
// mediaDir, when non-empty, is served under /media/ for locally stored
// product images.
func New(h Handlers, adminAPIKey, mediaDir string, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication, no session)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	if mediaDir != "" {
		mux.Handle("/media/", http.StripPrefix("/media/", http.FileServer(http.Dir(mediaDir))))
	}

	// Storefront catalogue
	productRoute := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			h.Product.GetByID(w, r)
			return
		}
		h.Product.List(w, r)
	}
	mux.HandleFunc("/api/products", productRoute)
	mux.HandleFunc("/api/products/", productRoute)

	// Session cart
	mux.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.Cart.Get(w, r)
		case http.MethodDelete:
			h.Cart.Clear(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/cart/items", h.Cart.AddItem)
	mux.HandleFunc("/api/cart/items/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			h.Cart.UpdateItem(w, r)
		case http.MethodDelete:
			h.Cart.RemoveItem(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Persisted per-user cart
	mux.HandleFunc("/api/users/", h.UserCart.Route)

	// Checkout hand-off
	mux.HandleFunc("/api/checkout", h.Checkout.Checkout)

	// Analytics ingestion
	mux.HandleFunc("/api/events", h.Analytics.TrackEvent)

	// Admin product editor
	adminProductRoute := func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && (r.URL.Path == "/api/admin/products" || r.URL.Path == "/api/admin/products/") {
			h.Admin.Create(w, r)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/api/admin/products/") && r.URL.Path != "/api/admin/products/" {
			switch r.Method {
			case http.MethodPut:
				h.Admin.Update(w, r)
			case http.MethodDelete:
				h.Admin.Delete(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	}
	mux.HandleFunc("/api/admin/products", adminProductRoute)
	mux.HandleFunc("/api/admin/products/", adminProductRoute)

	// Admin analytics dashboard
	mux.HandleFunc("/api/admin/stats", h.Analytics.Stats)
	mux.HandleFunc("/api/admin/stats/top-products", h.Analytics.TopProducts)

	// Apply middleware in order: Recovery -> Logging -> CORS -> Session -> AdminAuth
	var root http.Handler = mux
	root = middleware.AdminAuth(adminAPIKey, logger)(root)
	root = middleware.Session(root)
	root = middleware.CORS(root)
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)

	return root
}
