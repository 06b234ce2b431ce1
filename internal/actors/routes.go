package actors

import (
	"github.com/go-chi/chi/v5"

	"github.com/casting-agency/casting-agency/internal/shared"
)

// MountRoutes registers the actor endpoints, each behind its permission.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(shared.PermActorsView))
		r.Get("/actors", h.List)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(shared.PermActorsCreate))
		r.Post("/actors", h.Create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(shared.PermActorsEdit))
		r.Patch("/actors/{id:[0-9]+}", h.Update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.Require(shared.PermActorsDelete))
		r.Delete("/actors/{id:[0-9]+}", h.Delete)
	})
}
