package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/casting-agency/casting-agency/internal/actors"
	"github.com/casting-agency/casting-agency/internal/movies"
	"github.com/casting-agency/casting-agency/internal/observability"
	"github.com/casting-agency/casting-agency/internal/platform/httpx"
)

// HomeMessage is the body of GET /.
const HomeMessage = "Come see all our actors and movies"

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger        *slog.Logger
	Config        *Config
	ActorsHandler *actors.Handler
	MoviesHandler *movies.Handler
	Metrics       *observability.Metrics
}

// NewRouter constructs the API router: the homepage and the actor and movie routes.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.NotFound(httpx.NotFound)
	r.MethodNotAllowed(httpx.MethodNotAllowed)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(HomeMessage))
	})

	if params.ActorsHandler != nil {
		params.ActorsHandler.MountRoutes(r)
	}
	if params.MoviesHandler != nil {
		params.MoviesHandler.MountRoutes(r)
	}

	return r
}

// OpsParams groups dependencies of the operations listener.
type OpsParams struct {
	Metrics *observability.Metrics
	// Health reports readiness; nil means always healthy.
	Health func(ctx context.Context) error
}

// NewOpsRouter serves /metrics and /healthz on the operations listener.
func NewOpsRouter(params OpsParams) http.Handler {
	r := chi.NewRouter()
	r.NotFound(httpx.NotFound)
	r.MethodNotAllowed(httpx.MethodNotAllowed)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if params.Health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := params.Health(ctx); err != nil {
				httpx.JSON(w, http.StatusServiceUnavailable, httpx.Envelope{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		httpx.JSON(w, http.StatusOK, httpx.Envelope{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	return r
}
