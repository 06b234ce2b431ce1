package httpx_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casting-agency/casting-agency/internal/auth"
	"github.com/casting-agency/casting-agency/internal/platform/httpx"
	"github.com/casting-agency/casting-agency/internal/shared"
)

func body(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestOKSetsSuccess(t *testing.T) {
	rr := httptest.NewRecorder()
	httpx.OK(rr, httpx.Envelope{"actor": "Will Smith"})

	assert.Equal(t, http.StatusOK, rr.Code)
	out := body(t, rr)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Will Smith", out["actor"])
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
		code    string
	}{
		{"bad request", fmt.Errorf("%w: missing name", shared.ErrBadRequest), 400, "bad request", ""},
		{"not found", shared.ErrNotFound, 404, "resource not found", ""},
		{"unprocessable", fmt.Errorf("insert actor: %w", shared.ErrUnprocessable), 422, "unprocessable", ""},
		{"auth", auth.ErrTokenExpired, 401, "Token expired.", "token_expired"},
		{"forbidden", auth.ErrForbidden, 403, "Permission not found.", "unauthorized"},
		{"unknown", errors.New("boom"), 500, "internal server error", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			httpx.RespondError(rr, tc.err)

			assert.Equal(t, tc.status, rr.Code)
			out := body(t, rr)
			assert.Equal(t, false, out["success"])
			assert.EqualValues(t, tc.status, out["error"])
			assert.Equal(t, tc.message, out["message"])
			if tc.code == "" {
				assert.NotContains(t, out, "code")
			} else {
				assert.Equal(t, tc.code, out["code"])
			}
		})
	}
}

func TestRouteFallbacks(t *testing.T) {
	rr := httptest.NewRecorder()
	httpx.NotFound(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "resource not found", body(t, rr)["message"])

	rr = httptest.NewRecorder()
	httpx.MethodNotAllowed(rr, httptest.NewRequest(http.MethodPut, "/actors", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "method not allowed", body(t, rr)["message"])
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
		Year  int    `json:"year"`
	}

	req := httptest.NewRequest(http.MethodPost, "/movies", strings.NewReader(`{"title":"Suicide Squad","year":2016}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	var got payload
	require.NoError(t, httpx.DecodeJSON(httptest.NewRecorder(), req, &got))
	assert.Equal(t, payload{Title: "Suicide Squad", Year: 2016}, got)

	req = httptest.NewRequest(http.MethodPost, "/movies", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "text/plain")
	assert.ErrorIs(t, httpx.DecodeJSON(httptest.NewRecorder(), req, &got), shared.ErrBadRequest)

	req = httptest.NewRequest(http.MethodPost, "/movies", strings.NewReader(`{"title":`))
	req.Header.Set("Content-Type", "application/json")
	assert.ErrorIs(t, httpx.DecodeJSON(httptest.NewRecorder(), req, &got), shared.ErrBadRequest)

	req = httptest.NewRequest(http.MethodPost, "/movies", strings.NewReader(`{"year":"soon"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.ErrorIs(t, httpx.DecodeJSON(httptest.NewRecorder(), req, &got), shared.ErrBadRequest)
}
