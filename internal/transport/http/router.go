package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/services"
)

// NewRouter builds the HTTP API on top of the service container.
func NewRouter(svc *services.ServiceOptions, timeout time.Duration, logger *zap.Logger) http.Handler {
	catalogHandler := NewCatalogHandler(svc.SearchItems, svc.GetItem, svc.Config.PageSize, logger)
	cartHandler := NewCartHandler(svc.Sessions, svc.GetItem, logger)
	checkoutHandler := NewCheckoutHandler(svc.Sessions, svc.PlaceOrder, logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	if timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", catalogHandler.ListItems)
			r.Get("/{slug}", catalogHandler.GetItem)
		})

		r.Group(func(r chi.Router) {
			r.Use(ClientIDMiddleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Post("/items", cartHandler.AddItem)
				r.Patch("/items/{slug}/{variant}", cartHandler.UpdateQuantity)
				r.Delete("/items/{slug}/{variant}", cartHandler.RemoveItem)
				r.Put("/items/{slug}/{variant}/variant", cartHandler.ChangeVariant)
			})
			r.Post("/checkout", checkoutHandler.PlaceOrder)
		})
	})

	return r
}
