// Package authtest runs an in-process identity provider for tests: it serves a
// JWKS over httptest and mints RS256 tokens the auth.Verifier accepts.
package authtest

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/casting-agency/casting-agency/internal/auth"
	"github.com/casting-agency/casting-agency/internal/shared"
)

// DefaultAudience is the audience minted tokens carry unless overridden.
const DefaultAudience = "casting-agency"

// Issuer signs tokens and publishes the matching JWKS.
type Issuer struct {
	Server   *httptest.Server
	Key      *rsa.PrivateKey
	KID      string
	Audience string

	hits atomic.Int32
}

// NewIssuer starts the JWKS server; it is closed when the test ends.
func NewIssuer(t testing.TB) *Issuer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	iss := &Issuer{Key: key, KID: "test-key-1", Audience: DefaultAudience}
	iss.Server = httptest.NewServer(http.HandlerFunc(iss.serveJWKS))
	t.Cleanup(iss.Server.Close)
	return iss
}

// URL is the issuer claim value, with the trailing slash identity providers use.
func (i *Issuer) URL() string {
	return i.Server.URL + "/"
}

// JWKSURL is where the key set is published.
func (i *Issuer) JWKSURL() string {
	return i.Server.URL + "/.well-known/jwks.json"
}

// Hits reports how many times the JWKS was fetched.
func (i *Issuer) Hits() int {
	return int(i.hits.Load())
}

// Verifier returns a verifier trusting this issuer.
func (i *Issuer) Verifier() *auth.Verifier {
	keys := auth.NewKeySet(i.JWKSURL(), i.Server.Client(), time.Minute, nil)
	return auth.NewVerifier(auth.Config{Issuer: i.URL(), Audience: i.Audience}, keys)
}

// Option adjusts the claims or header of a minted token.
type Option func(*tokenSpec)

type tokenSpec struct {
	claims  jwt.MapClaims
	kid     string
	signer  *rsa.PrivateKey
	noPerms bool
}

// ExpiresIn sets exp relative to now; negative values mint expired tokens.
func ExpiresIn(d time.Duration) Option {
	return func(s *tokenSpec) { s.claims["exp"] = time.Now().Add(d).Unix() }
}

// WithAudience overrides the aud claim.
func WithAudience(aud string) Option {
	return func(s *tokenSpec) { s.claims["aud"] = aud }
}

// WithIssuer overrides the iss claim.
func WithIssuer(iss string) Option {
	return func(s *tokenSpec) { s.claims["iss"] = iss }
}

// WithKID overrides the kid header.
func WithKID(kid string) Option {
	return func(s *tokenSpec) { s.kid = kid }
}

// WithSigner signs with a key the JWKS does not publish.
func WithSigner(key *rsa.PrivateKey) Option {
	return func(s *tokenSpec) { s.signer = key }
}

// WithoutPermissions omits the permissions claim entirely.
func WithoutPermissions() Option {
	return func(s *tokenSpec) { s.noPerms = true }
}

// Token mints a signed token granting perms.
func (i *Issuer) Token(t testing.TB, perms []string, opts ...Option) string {
	t.Helper()
	now := time.Now()
	spec := &tokenSpec{
		claims: jwt.MapClaims{
			"iss": i.URL(),
			"sub": "auth0|casting-test",
			"aud": i.Audience,
			"iat": now.Unix(),
			"jti": uuid.NewString(),
			"exp": now.Add(time.Hour).Unix(),
		},
		kid:    i.KID,
		signer: i.Key,
	}
	for _, opt := range opts {
		opt(spec)
	}
	if !spec.noPerms {
		if perms == nil {
			perms = []string{}
		}
		spec.claims[auth.PermissionsClaim] = perms
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, spec.claims)
	token.Header["kid"] = spec.kid
	signed, err := token.SignedString(spec.signer)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// Bearer returns an Authorization header value for a token granting perms.
func (i *Issuer) Bearer(t testing.TB, perms []string, opts ...Option) string {
	t.Helper()
	return "Bearer " + i.Token(t, perms, opts...)
}

// RoleBearer returns an Authorization header value for one of the agency roles.
func (i *Issuer) RoleBearer(t testing.TB, role string) string {
	t.Helper()
	return i.Bearer(t, shared.RoleScopes(role))
}

func (i *Issuer) serveJWKS(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/.well-known/jwks.json" {
		http.NotFound(w, r)
		return
	}
	i.hits.Add(1)
	pub := i.Key.PublicKey
	doc := map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"use": "sig",
			"alg": "RS256",
			"kid": i.KID,
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(doc)
}
