package api

import (
	"encoding/json"
	"net/http"

	"github.com/appifylab/dhakacelsius/internal/apperr"
)

const maxRequestBytes = 1_048_576 // 1 MB

// parseRequest decodes a JSON request body into T. A body that fails to
// decode is already a classified fault: the caller hands it straight to
// writeError.
func parseRequest[T any](w http.ResponseWriter, r *http.Request) (*T, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	dec := json.NewDecoder(r.Body)

	var v T
	if err := dec.Decode(&v); err != nil {
		return nil, apperr.InvalidJSON(apperr.WithDetails(map[string]any{
			"error": err.Error(),
		}))
	}

	return &v, nil
}
