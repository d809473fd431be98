package router

import (
	"net/http"

	"catalog-api/internal/handler"
	"catalog-api/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	categoryHandler *handler.CategoryHandler,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Product handler function
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Collection routes
		if r.URL.Path == "/products" || r.URL.Path == "/products/" {
			switch r.Method {
			case http.MethodGet:
				productHandler.List(w, r)
			case http.MethodPost:
				productHandler.Create(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		// Item routes /products/{id}
		switch r.Method {
		case http.MethodGet:
			productHandler.GetByID(w, r)
		case http.MethodPut:
			productHandler.Update(w, r)
		case http.MethodDelete:
			productHandler.Delete(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}

	// Register product routes (both with and without trailing slash)
	mux.HandleFunc("/products", productRouteHandler)
	mux.HandleFunc("/products/", productRouteHandler)

	// Category routes (read-only)
	mux.HandleFunc("/categories", categoryHandler.List)
	mux.HandleFunc("/categories/", categoryHandler.List)

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
