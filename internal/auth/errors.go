package auth

import "net/http"

// AuthError is an authorization failure carrying the HTTP status and reason
// code returned to the caller.
type AuthError struct {
	Status      int
	Code        string
	Description string
}

func (e *AuthError) Error() string {
	return e.Description
}

// HTTPStatus reports the response status for the failure.
func (e *AuthError) HTTPStatus() int {
	return e.Status
}

// ErrorCode reports the machine-readable reason.
func (e *AuthError) ErrorCode() string {
	return e.Code
}

// Verification and permission failures.
var (
	ErrHeaderMissing = &AuthError{
		Status:      http.StatusUnauthorized,
		Code:        "authorization_header_missing",
		Description: "Authorization header is expected.",
	}
	ErrInvalidHeader = &AuthError{
		Status:      http.StatusUnauthorized,
		Code:        "invalid_header",
		Description: "Authorization header must be in the form Bearer <token>.",
	}
	ErrMalformedToken = &AuthError{
		Status:      http.StatusUnauthorized,
		Code:        "invalid_header",
		Description: "Unable to parse authentication token.",
	}
	ErrTokenExpired = &AuthError{
		Status:      http.StatusUnauthorized,
		Code:        "token_expired",
		Description: "Token expired.",
	}
	ErrInvalidClaims = &AuthError{
		Status:      http.StatusUnauthorized,
		Code:        "invalid_claims",
		Description: "Incorrect claims. Please, check the audience and issuer.",
	}
	ErrKeyNotFound = &AuthError{
		Status:      http.StatusBadRequest,
		Code:        "invalid_header",
		Description: "Unable to find the appropriate key.",
	}
	ErrPermissionsMissing = &AuthError{
		Status:      http.StatusBadRequest,
		Code:        "invalid_claims",
		Description: "Permissions not included in token.",
	}
	ErrForbidden = &AuthError{
		Status:      http.StatusForbidden,
		Code:        "unauthorized",
		Description: "Permission not found.",
	}
)
