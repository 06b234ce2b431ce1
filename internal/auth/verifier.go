// Package auth verifies bearer tokens issued by the external identity provider.
package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PermissionsClaim is the token claim listing granted permissions.
const PermissionsClaim = "permissions"

// KeyProvider resolves signing keys by key ID.
type KeyProvider interface {
	Key(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

// Config holds the expected token properties.
type Config struct {
	Issuer     string
	Audience   string
	Algorithms []string
	Leeway     time.Duration
}

// Claims is the decoded claim set of a verified token.
type Claims struct {
	Subject     string
	Permissions []string
	// HasPermissions reports whether the permissions claim was present at all.
	HasPermissions bool
	Raw            jwt.MapClaims
}

// Can reports whether perm is among the granted permissions.
func (c *Claims) Can(perm string) bool {
	return c != nil && slices.Contains(c.Permissions, perm)
}

// Verifier validates bearer tokens against the identity provider's keys.
type Verifier struct {
	config Config
	keys   KeyProvider
	parser *jwt.Parser
}

// NewVerifier constructs a Verifier. Algorithms default to RS256.
func NewVerifier(config Config, keys KeyProvider) *Verifier {
	if len(config.Algorithms) == 0 {
		config.Algorithms = []string{"RS256"}
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods(config.Algorithms),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(config.Issuer),
		jwt.WithAudience(config.Audience),
	}
	if config.Leeway > 0 {
		opts = append(opts, jwt.WithLeeway(config.Leeway))
	}
	return &Verifier{config: config, keys: keys, parser: jwt.NewParser(opts...)}
}

// Verify checks the raw Authorization header value and returns the token's
// claims. Failures are *AuthError values, except an unreachable key set which
// is returned as a wrapped ErrKeySetUnavailable.
func (v *Verifier) Verify(ctx context.Context, header string) (*Claims, error) {
	raw, err := BearerToken(header)
	if err != nil {
		return nil, err
	}

	token, err := v.parser.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token missing kid header")
		}
		return v.keys.Key(ctx, kid)
	})
	if err != nil {
		return nil, classify(err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrMalformedToken
	}
	return newClaims(mapClaims), nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", ErrHeaderMissing
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", ErrInvalidHeader
	}
	return parts[1], nil
}

func classify(err error) error {
	var authErr *AuthError
	switch {
	case errors.As(err, &authErr):
		return authErr
	case errors.Is(err, ErrKeySetUnavailable):
		return fmt.Errorf("auth: verify token: %w", err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrInvalidClaims
	default:
		return ErrMalformedToken
	}
}

func newClaims(raw jwt.MapClaims) *Claims {
	claims := &Claims{Raw: raw}
	claims.Subject, _ = raw.GetSubject()

	value, ok := raw[PermissionsClaim]
	if !ok {
		return claims
	}
	claims.HasPermissions = true
	switch perms := value.(type) {
	case []interface{}:
		for _, p := range perms {
			if s, ok := p.(string); ok {
				claims.Permissions = append(claims.Permissions, s)
			}
		}
	case []string:
		claims.Permissions = append(claims.Permissions, perms...)
	}
	return claims
}
