package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/milasset/internal/entry"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

type validationResponse struct {
	Error  string            `json:"error"`
	Fields entry.FieldErrors `json:"fields"`
}

// submitError maps a record submission failure to a response.
func submitError(w http.ResponseWriter, kind string, err error) {
	var fields entry.FieldErrors
	switch {
	case errors.As(err, &fields):
		jsonResponse(w, http.StatusUnprocessableEntity, validationResponse{
			Error:  "validation failed",
			Fields: fields,
		})
	case errors.Is(err, entry.ErrUnauthenticated):
		jsonError(w, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, entry.ErrForbidden):
		jsonError(w, http.StatusForbidden, "insufficient permissions")
	default:
		slog.Error("failed to create "+kind, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create "+kind)
	}
}
