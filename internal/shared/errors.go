package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("resource not found")
	// ErrBadRequest indicates a malformed or incomplete request body.
	ErrBadRequest = errors.New("bad request")
	// ErrUnprocessable indicates the store rejected a write.
	ErrUnprocessable = errors.New("unprocessable")
)
