package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/appifylab/dhakacelsius/internal/apperr"
	"github.com/appifylab/dhakacelsius/internal/logging"
)

func jsonResponse(w http.ResponseWriter, code int, v any) {
	encoded, err := json.Marshal(v)
	if err != nil {
		// Let the recovery middleware handle it.
		panic(fmt.Errorf("marshal json response: %w", err))
	}

	w.Header().Set("content-type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(encoded); err != nil {
		panic(fmt.Errorf("write json response: %w", err))
	}
}

// writeError is the single terminal exit for every failing request: it
// resolves the correlation id, emits exactly one structured log entry and
// serializes the canonical envelope. Raw stack traces never reach the body;
// only the mapper's bounded summary does.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, resp := apperr.ToResponse(err)
	resp.RequestID = logging.RequestID(r.Context())

	logger := logging.FromContext(r.Context(), log)
	attrs := []any{
		slog.Int("status", status),
		slog.String("error", resp.Error),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
	}

	var apiErr *apperr.APIError
	var appErr *apperr.AppError
	switch {
	case errors.As(err, &apiErr) && len(apiErr.Context) > 0:
		attrs = append(attrs, slog.Any("error_context", apiErr.Context))
	case errors.As(err, &appErr):
		attrs = append(attrs, slog.Any("error_context", appErr.LogContext()))
	}

	if status == http.StatusUnprocessableEntity {
		logger.Warn(fmt.Sprintf("API Error: %s - %s", resp.Error, resp.Message), attrs...)
	} else {
		logger.Error(fmt.Sprintf("API Error: %s - %s", resp.Error, resp.Message), attrs...)
	}

	if apiErr != nil {
		for k, v := range apiErr.Headers {
			w.Header().Set(k, v)
		}
	}

	jsonResponse(w, status, resp)
}
