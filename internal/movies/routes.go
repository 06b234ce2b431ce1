package movies

import (
	"github.com/go-chi/chi/v5"

	"github.com/casting-agency/casting-agency/internal/shared"
)

// MountRoutes registers the movie endpoints, each behind its permission.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(shared.PermMoviesView))
		r.Get("/movies", h.List)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(shared.PermMoviesCreate))
		r.Post("/movies", h.Create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(shared.PermMoviesEdit))
		r.Patch("/movies/{id:[0-9]+}", h.Update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(shared.PermMoviesDelete))
		r.Delete("/movies/{id:[0-9]+}", h.Delete)
	})
}
