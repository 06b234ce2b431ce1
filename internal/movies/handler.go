package movies

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

// Handler exposes the movie endpoints.
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

// List handles GET /movies.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.OK(w, httpx.Envelope{"movies": movies})
}

// Create handles POST /movies.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	movie, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.OK(w, httpx.Envelope{"movie": movie.Title})
}

// Update handles PATCH /movies/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := movieID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req UpdateRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	movie, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.OK(w, httpx.Envelope{"movie": movie})
}

// Delete handles DELETE /movies/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := movieID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.OK(w, httpx.Envelope{"movie": id})
}

func movieID(r *http.Request) (int64, error) {
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
		h.logger.LogAttrs(r.Context(), slog.LevelDebug, "movies request rejected", attrs...)
	case errors.Is(err, shared.ErrUnprocessable):
		h.logger.LogAttrs(r.Context(), slog.LevelWarn, "movies write failed", attrs...)
	default:
		h.logger.LogAttrs(r.Context(), slog.LevelError, "movies request failed", attrs...)
	}
	httpx.RespondError(w, err)
}
