// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/casting-agency/casting-agency/internal/shared"
)

// Coded is implemented by errors that carry their own HTTP status, such as
// authorization failures.
type Coded interface {
	error
	HTTPStatus() int
	ErrorCode() string
}

// RespondError maps domain errors to the JSON failure envelope.
func RespondError(w http.ResponseWriter, err error) {
	var coded Coded
	switch {
	case errors.As(err, &coded):
		Fail(w, coded.HTTPStatus(), coded.Error(), coded.ErrorCode())
	case errors.Is(err, shared.ErrBadRequest):
		Fail(w, http.StatusBadRequest, "bad request", "")
	case errors.Is(err, shared.ErrNotFound):
		Fail(w, http.StatusNotFound, "resource not found", "")
	case errors.Is(err, shared.ErrUnprocessable):
		Fail(w, http.StatusUnprocessableEntity, "unprocessable", "")
	default:
		Fail(w, http.StatusInternalServerError, "internal server error", "")
	}
}

// NotFound renders the envelope used for unmatched routes.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	Fail(w, http.StatusNotFound, "resource not found", "")
}

// MethodNotAllowed renders the envelope used for unsupported methods.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	Fail(w, http.StatusMethodNotAllowed, "method not allowed", "")
}
