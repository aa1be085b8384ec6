// Package httputil centralizes JSON response envelopes so every handler maps
// domain errors to HTTP statuses the same way.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "siteadmin/pkg/domain-errors"
)

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError translates a domain error into a JSON error envelope. Internal
// errors stay opaque; the code and a safe message are all the client sees.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, dErrors.HTTPStatus(err), map[string]string{
		"error":   string(dErrors.CodeOf(err)),
		"message": dErrors.MessageOf(err),
	})
}
