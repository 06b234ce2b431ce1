package movies

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casting-agency/casting-agency/internal/auth/authtest"
	"github.com/casting-agency/casting-agency/internal/platform/httpx"
	"github.com/casting-agency/casting-agency/internal/rbac"
	"github.com/casting-agency/casting-agency/internal/shared"
)

type catalogue struct {
	movies []Movie
	nextID int64
	err    error
}

func newCatalogue() *catalogue {
	title1, title2 := "The Pursuit of Happiness", "Suicide Squad"
	year1, year2 := 2006, 2016
	return &catalogue{
		movies: []Movie{{ID: 1, Title: &title1, Year: &year1}, {ID: 2, Title: &title2, Year: &year2}},
		nextID: 2,
	}
}

func (c *catalogue) List(context.Context) ([]Movie, error) {
	if c.err != nil {
		return nil, c.err
	}
	return append([]Movie{}, c.movies...), nil
}

func (c *catalogue) Create(_ context.Context, m Movie) (Movie, error) {
	if c.err != nil {
		return Movie{}, c.err
	}
	c.nextID++
	m.ID = c.nextID
	c.movies = append(c.movies, m)
	return m, nil
}

func (c *catalogue) Update(_ context.Context, id int64, m Movie) (Movie, error) {
	for i := range c.movies {
		if c.movies[i].ID == id {
			m.ID = id
			c.movies[i] = m
			return m, nil
		}
	}
	return Movie{}, shared.ErrNotFound
}

func (c *catalogue) Delete(_ context.Context, id int64) error {
	for i := range c.movies {
		if c.movies[i].ID == id {
			c.movies = append(c.movies[:i], c.movies[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (c *catalogue) ids() []int64 {
	out := make([]int64, 0, len(c.movies))
	for _, m := range c.movies {
		out = append(out, m.ID)
	}
	return out
}

func setup(t *testing.T) (http.Handler, *catalogue, *authtest.Issuer) {
	t.Helper()
	issuer := authtest.NewIssuer(t)
	store := newCatalogue()
	h := NewHandler(nil, NewService(store), rbac.Middleware{Verifier: issuer.Verifier()})
	r := chi.NewRouter()
	r.NotFound(httpx.NotFound)
	r.MethodNotAllowed(httpx.MethodNotAllowed)
	h.MountRoutes(r)
	return r, store, issuer
}

func call(t *testing.T, h http.Handler, method, path, authorization, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return rr.Code, out
}

func TestMovieLifecycle(t *testing.T) {
	router, store, issuer := setup(t)
	producer := issuer.RoleBearer(t, shared.RoleExecutiveProducer)

	code, body := call(t, router, http.MethodPost, "/movies", producer, `{"title":"Barbie","year":2023}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Barbie", body["movie"])
	assert.Equal(t, []int64{1, 2, 3}, store.ids())

	code, body = call(t, router, http.MethodGet, "/movies", producer, "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["movies"], 3)

	code, body = call(t, router, http.MethodPatch, "/movies/3", producer, `{"title":"Barbie (2023)"}`)
	require.Equal(t, http.StatusOK, code)
	movie := body["movie"].(map[string]any)
	assert.EqualValues(t, 3, movie["id"])
	assert.Equal(t, "Barbie (2023)", movie["title"])
	assert.Nil(t, movie["year"])

	code, body = call(t, router, http.MethodDelete, "/movies/3", producer, "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 3, body["movie"])
	assert.Equal(t, []int64{1, 2}, store.ids())

	code, _ = call(t, router, http.MethodDelete, "/movies/3", producer, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestMoviePermissionsByRole(t *testing.T) {
	router, store, issuer := setup(t)
	assistant := issuer.RoleBearer(t, shared.RoleCastingAssistant)
	director := issuer.RoleBearer(t, shared.RoleCastingDirector)

	code, _ := call(t, router, http.MethodGet, "/movies", assistant, "")
	assert.Equal(t, http.StatusOK, code)

	code, body := call(t, router, http.MethodPost, "/movies", director, `{"title":"Barbie","year":2023}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "unauthorized", body["code"])

	code, _ = call(t, router, http.MethodDelete, "/movies/1", director, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = call(t, router, http.MethodPatch, "/movies/1", director, `{"title":"Renamed","year":2006}`)
	assert.Equal(t, http.StatusOK, code)

	code, body = call(t, router, http.MethodGet, "/movies", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "authorization_header_missing", body["code"])

	assert.Equal(t, []int64{1, 2}, store.ids())
}

func TestCreateMovieRejectsIncompleteBody(t *testing.T) {
	router, store, issuer := setup(t)
	producer := issuer.RoleBearer(t, shared.RoleExecutiveProducer)

	for _, payload := range []string{`{}`, `{"title":"Barbie"}`, `{"year":2023}`, `{"title":"","year":2023}`, `{"title":"Barbie","year":3000000000}`} {
		code, body := call(t, router, http.MethodPost, "/movies", producer, payload)
		assert.Equal(t, http.StatusBadRequest, code, payload)
		assert.Equal(t, "bad request", body["message"])
	}
	assert.Len(t, store.movies, 2)
}

func TestListMoviesErrors(t *testing.T) {
	router, store, issuer := setup(t)
	assistant := issuer.RoleBearer(t, shared.RoleCastingAssistant)

	store.movies = nil
	code, body := call(t, router, http.MethodGet, "/movies", assistant, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "resource not found", body["message"])

	store.err = errors.New("pool closed")
	code, body = call(t, router, http.MethodGet, "/movies", assistant, "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal server error", body["message"])
}

func TestServiceRejectsNonPositiveIDs(t *testing.T) {
	svc := NewService(newCatalogue())
	_, err := svc.Update(context.Background(), -1, UpdateRequest{})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), 0), shared.ErrNotFound)
}
