package actors

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/casting-agency/casting-agency/internal/platform/httpx"
	"github.com/casting-agency/casting-agency/internal/rbac"
	"github.com/casting-agency/casting-agency/internal/shared"
)

// Handler exposes the actor endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, rbac: rbac}
}

// List handles GET /actors.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actors, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.OK(w, httpx.Envelope{"actors": actors})
}

// Create handles POST /actors.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	actor, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.OK(w, httpx.Envelope{"actor": actor.Name})
}

// Update handles PATCH /actors/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := actorID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req UpdateRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	actor, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.OK(w, httpx.Envelope{"actor": actor})
}

// Delete handles DELETE /actors/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := actorID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.OK(w, httpx.Envelope{"actor": id})
}

func actorID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, shared.ErrNotFound
	}
	return id, nil
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	attrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Any("error", err),
	}
	switch {
	case errors.Is(err, shared.ErrBadRequest), errors.Is(err, shared.ErrNotFound):
		h.logger.LogAttrs(r.Context(), slog.LevelDebug, "actors request rejected", attrs...)
	case errors.Is(err, shared.ErrUnprocessable):
		h.logger.LogAttrs(r.Context(), slog.LevelWarn, "actors write failed", attrs...)
	default:
		h.logger.LogAttrs(r.Context(), slog.LevelError, "actors request failed", attrs...)
	}
	httpx.RespondError(w, err)
}
