// Package response provides helpers for writing consistent JSON HTTP
// responses. Error responses always use the same envelope, so the UI
// can render any failure as a notification without special cases.
package response

import (
	"encoding/json"
	"net/http"

	"studentregistry/internal/registry"
)

// Response is the standard envelope for error and notification cases.
// Success responses carry their payload alongside or instead of it.
type Response struct {
	Status string `json:"status"`          // "ok" or "error"
	Error  string `json:"error,omitempty"` // human-readable error detail
}

// Status string constants — a typo in a literal would silently send
// the wrong status; these are caught by the compiler.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data JSON-encoded with the given HTTP status code.
// Headers must be set before WriteHeader; WriteHeader must come before
// the body.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into the standard envelope. Use for
// unexpected errors (store failures, decode errors, etc.).
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError renders a single field validation failure, e.g.
//
//	{ "status": "error", "error": "field email must be a valid email address" }
func ValidationError(verr *registry.ValidationError) Response {
	return Response{
		Status: StatusError,
		Error:  verr.Error(),
	}
}
