package httpx

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/casting-agency/casting-agency/internal/shared"
)

const maxBodyBytes = 1 << 20

// Envelope is the top-level JSON object of every API response.
type Envelope map[string]any

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// OK sends a 200 response with success set to true.
func OK(w http.ResponseWriter, body Envelope) {
	if body == nil {
		body = Envelope{}
	}
	body["success"] = true
	JSON(w, http.StatusOK, body)
}

// Fail sends the failure envelope. code is omitted when empty.
func Fail(w http.ResponseWriter, status int, message, code string) {
	body := Envelope{
		"success": false,
		"error":   status,
		"message": message,
	}
	if code != "" {
		body["code"] = code
	}
	JSON(w, status, body)
}

// DecodeJSON decodes a JSON object request body into target. Any failure,
// including a non-JSON content type, is reported as shared.ErrBadRequest.
func DecodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("%w: content type must be application/json", shared.ErrBadRequest)
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrBadRequest, err)
	}
	return nil
}
