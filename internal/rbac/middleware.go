package rbac

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/casting-agency/casting-agency/internal/auth"
	"github.com/casting-agency/casting-agency/internal/platform/httpx"
)

// TokenVerifier turns an Authorization header into verified claims.
type TokenVerifier interface {
	Verify(ctx context.Context, header string) (*auth.Claims, error)
}

// DenialRecorder counts rejected requests by reason.
type DenialRecorder interface {
	AuthDenied(reason string)
}

// Middleware wires token verification and permission checks for HTTP handlers.
type Middleware struct {
	Verifier TokenVerifier
	Logger   *slog.Logger
	Metrics  DenialRecorder
}

// Require admits only requests whose bearer token grants perm. The verified
// claims are available to the wrapped handler through ClaimsFromContext.
func (m Middleware) Require(perm string) func(http.Handler) http.Handler {
	perm = strings.TrimSpace(perm)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := m.Verifier.Verify(r.Context(), r.Header.Get("Authorization"))
			if err == nil {
				err = checkPermission(claims, perm)
			}
			if err != nil {
				m.deny(w, r, perm, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func checkPermission(claims *auth.Claims, perm string) error {
	if !claims.HasPermissions {
		return auth.ErrPermissionsMissing
	}
	if !claims.Can(perm) {
		return auth.ErrForbidden
	}
	return nil
}

func (m Middleware) deny(w http.ResponseWriter, r *http.Request, perm string, err error) {
	reason := "verifier_error"
	var authErr *auth.AuthError
	if errors.As(err, &authErr) {
		reason = authErr.Code
	}
	if m.Metrics != nil {
		m.Metrics.AuthDenied(reason)
	}
	if m.Logger != nil {
		level := slog.LevelWarn
		if authErr == nil {
			level = slog.LevelError
		}
		m.Logger.LogAttrs(r.Context(), level, "rbac denied request",
			slog.String("permission", perm),
			slog.String("reason", reason),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Any("error", err),
		)
	}
	httpx.RespondError(w, err)
}
