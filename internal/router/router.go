// Package router sets up all HTTP routes and middleware chains for the
// Stockroom server. Routes are organized into the JSON API under /api and
// the server-rendered UI at the root.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"stockroom/internal/handlers"
	"stockroom/internal/middleware"
	"stockroom/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, ui *handlers.UI) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	// JSON API.
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", api.ProductsList)
		r.Post("/", api.ProductCreate)
		r.Get("/categories", api.CategoriesList)
		r.Delete("/{id}", api.ProductDelete)
	})

	// Inventory UI.
	r.Get("/", ui.ProductsPage)
	r.Get("/products/new", ui.ProductNewPage)
	r.Post("/products", ui.ProductCreate)
	r.Get("/products/{id}/delete", ui.ProductDeletePage)
	r.Post("/products/{id}/delete", ui.ProductDelete)

	// Embedded static assets.
	r.Handle("/static/*", http.FileServer(http.FS(web.StaticFS)))

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
