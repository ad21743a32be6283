package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers all asset universe routes
func (h *UniverseHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/assets", func(r chi.Router) {
		r.Get("/", h.HandleGetAssets)
		r.Delete("/", h.HandleDeleteAssets)
		r.Post("/import", h.HandleImportAssets)
	})
}
