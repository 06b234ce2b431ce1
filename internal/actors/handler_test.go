package actors

import (
	"fmt"
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

type fixture struct {
	router http.Handler
	repo   *memoryRepo
	issuer *authtest.Issuer
}

func newFixture(t *testing.T, seed ...Actor) *fixture {
	t.Helper()
	issuer := authtest.NewIssuer(t)
	repo := newMemoryRepo(seed...)
	handler := NewHandler(nil, NewService(repo), rbac.Middleware{Verifier: issuer.Verifier()})

	r := chi.NewRouter()
	r.NotFound(httpx.NotFound)
	r.MethodNotAllowed(httpx.MethodNotAllowed)
	handler.MountRoutes(r)
	return &fixture{router: r, repo: repo, issuer: issuer}
}

func (f *fixture) do(t *testing.T, method, path, role, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", f.issuer.RoleBearer(t, role))
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return rr, out
}

func TestListActors(t *testing.T) {
	f := newFixture(t, seedActors()...)

	rr, body := f.do(t, http.MethodGet, "/actors", shared.RoleCastingAssistant, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, body["success"])

	actors := body["actors"].([]any)
	require.Len(t, actors, 2)
	first := actors[0].(map[string]any)
	assert.EqualValues(t, 1, first["id"])
	assert.Equal(t, "Will Smith", first["name"])
	assert.Equal(t, "Male", first["gender"])
	assert.EqualValues(t, 51, first["age"])
}

func TestListActorsEmptyIsNotFound(t *testing.T) {
	f := newFixture(t)
	rr, body := f.do(t, http.MethodGet, "/actors", shared.RoleCastingAssistant, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "resource not found", body["message"])
}

func TestCreateActor(t *testing.T) {
	f := newFixture(t, seedActors()...)

	rr, body := f.do(t, http.MethodPost, "/actors", shared.RoleCastingDirector,
		`{"name":"Viola Davis","gender":"Female","age":54}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Viola Davis", body["actor"])
	assert.Len(t, f.repo.rows, 3)
}

func TestCreateActorBadBodies(t *testing.T) {
	cases := map[string]string{
		"empty object":  `{}`,
		"missing age":   `{"name":"Viola Davis","gender":"Female"}`,
		"malformed":     `{"name":`,
		"wrong type":    `{"name":"Viola Davis","gender":"Female","age":"old"}`,
		"negative age":  `{"name":"Viola Davis","gender":"Female","age":-4}`,
		"age too large": `{"name":"Viola Davis","gender":"Female","age":2147483648}`,
		"not an object": `[1,2,3]`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			rr, body := f.do(t, http.MethodPost, "/actors", shared.RoleExecutiveProducer, payload)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, false, body["success"])
			assert.EqualValues(t, 400, body["error"])
			assert.Equal(t, "bad request", body["message"])
			assert.Empty(t, f.repo.rows)
		})
	}
}

func TestCreateActorRequiresJSONContentType(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/actors", strings.NewReader(`{"name":"A","gender":"B","age":1}`))
	req.Header.Set("Authorization", f.issuer.RoleBearer(t, shared.RoleCastingDirector))
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateActorStoreFailureIsUnprocessable(t *testing.T) {
	f := newFixture(t)
	f.repo.err = fmt.Errorf("insert actor: %w", shared.ErrUnprocessable)

	rr, body := f.do(t, http.MethodPost, "/actors", shared.RoleCastingDirector,
		`{"name":"Viola Davis","gender":"Female","age":54}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "unprocessable", body["message"])
}

func TestUpdateActor(t *testing.T) {
	f := newFixture(t, seedActors()...)

	rr, body := f.do(t, http.MethodPatch, "/actors/2", shared.RoleCastingDirector, `{"name":"Margot Robbie","age":30}`)
	require.Equal(t, http.StatusOK, rr.Code)

	actor := body["actor"].(map[string]any)
	assert.EqualValues(t, 2, actor["id"])
	assert.Equal(t, "Margot Robbie", actor["name"])
	assert.Nil(t, actor["gender"])
	assert.EqualValues(t, 30, actor["age"])

	stored := f.repo.rows[2]
	assert.Nil(t, stored.Gender)
	assert.Equal(t, 30, *stored.Age)
}

func TestUpdateActorMissing(t *testing.T) {
	f := newFixture(t, seedActors()...)
	rr, _ := f.do(t, http.MethodPatch, "/actors/1000", shared.RoleCastingDirector, `{"name":"Ghost"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteActor(t *testing.T) {
	f := newFixture(t, seedActors()...)

	rr, body := f.do(t, http.MethodDelete, "/actors/1", shared.RoleCastingDirector, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 1, body["actor"])
	assert.NotContains(t, f.repo.rows, int64(1))

	rr, body = f.do(t, http.MethodDelete, "/actors/1", shared.RoleCastingDirector, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "resource not found", body["message"])
}

func TestActorRoutePermissions(t *testing.T) {
	cases := []struct {
		method string
		path   string
		role   string
		body   string
		status int
	}{
		{http.MethodGet, "/actors", "", "", http.StatusUnauthorized},
		{http.MethodPost, "/actors", shared.RoleCastingAssistant, `{"name":"A","gender":"B","age":1}`, http.StatusForbidden},
		{http.MethodPatch, "/actors/1", shared.RoleCastingAssistant, `{"name":"A"}`, http.StatusForbidden},
		{http.MethodDelete, "/actors/1", shared.RoleCastingAssistant, "", http.StatusForbidden},
		{http.MethodDelete, "/actors/1", "", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path+" "+tc.role, func(t *testing.T) {
			f := newFixture(t, seedActors()...)
			rr, body := f.do(t, tc.method, tc.path, tc.role, tc.body)
			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, false, body["success"])
			assert.Len(t, f.repo.rows, 2)
		})
	}
}

func TestActorRouteFallbacks(t *testing.T) {
	f := newFixture(t, seedActors()...)

	rr, body := f.do(t, http.MethodPatch, "/actors/abc", shared.RoleExecutiveProducer, `{"name":"A"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "resource not found", body["message"])

	rr, body = f.do(t, http.MethodPut, "/actors", shared.RoleExecutiveProducer, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "method not allowed", body["message"])
}
