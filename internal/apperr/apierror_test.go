package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSlugs(t *testing.T) {
	testCases := []struct {
		status int
		slug   string
	}{
		{http.StatusBadRequest, "bad_request"},
		{http.StatusUnauthorized, "unauthorized"},
		{http.StatusForbidden, "forbidden"},
		{http.StatusNotFound, "not_found"},
		{http.StatusConflict, "conflict"},
		{http.StatusUnprocessableEntity, "validation_error"},
		{http.StatusTooManyRequests, "rate_limit_exceeded"},
		{http.StatusInternalServerError, "internal_server_error"},
		{http.StatusBadGateway, "bad_gateway"},
		{http.StatusServiceUnavailable, "service_unavailable"},
		{http.StatusGatewayTimeout, "gateway_timeout"},
		{http.StatusTeapot, "http_418"},
	}

	for _, tc := range testCases {
		t.Run(tc.slug, func(t *testing.T) {
			err := New(tc.status, "boom")
			assert.Equal(t, tc.status, err.StatusCode)
			assert.Equal(t, tc.slug, err.Slug)
		})
	}
}

func TestSlugOverride(t *testing.T) {
	err := New(http.StatusBadRequest, "boom", WithSlug("custom_slug"))
	assert.Equal(t, "custom_slug", err.Slug)
}

func TestConvenienceConstructors(t *testing.T) {
	testCases := []struct {
		name    string
		err     *APIError
		status  int
		slug    string
		message string
	}{
		{"not_found_entity", NotFound("Widget"), http.StatusNotFound, "not_found", "Widget not found"},
		{"not_found_default", NotFound(""), http.StatusNotFound, "not_found", "Resource not found"},
		{"bad_request_default", BadRequest(""), http.StatusBadRequest, "bad_request", "Invalid request"},
		{"unauthorized", Unauthorized("no token"), http.StatusUnauthorized, "unauthorized", "no token"},
		{"forbidden", Forbidden(""), http.StatusForbidden, "forbidden", "Access denied"},
		{"conflict", Conflict(""), http.StatusConflict, "conflict", "Resource conflict"},
		{"validation", ValidationFailed(""), http.StatusUnprocessableEntity, "validation_error", "Validation error"},
		{"rate_limited", RateLimited(""), http.StatusTooManyRequests, "rate_limit_exceeded", "Rate limit exceeded"},
		{"internal", Internal(""), http.StatusInternalServerError, "internal_server_error", "Internal server error"},
		{"bad_gateway", BadGateway(""), http.StatusBadGateway, "bad_gateway", "Bad gateway"},
		{"unavailable", Unavailable(""), http.StatusServiceUnavailable, "service_unavailable", "Service unavailable"},
		{"gateway_timeout", GatewayTimeout(""), http.StatusGatewayTimeout, "gateway_timeout", "Gateway timeout"},
		{"invalid_json", InvalidJSON(), http.StatusBadRequest, "bad_request", "Invalid JSON data"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.StatusCode)
			assert.Equal(t, tc.slug, tc.err.Slug)
			assert.Equal(t, tc.message, tc.err.Message)
		})
	}
}

func TestFromErrorPassesClassifiedThrough(t *testing.T) {
	classified := NotFound("Widget")

	got := FromError(classified, http.StatusInternalServerError, nil)
	assert.Same(t, classified, got)

	wrapped := fmt.Errorf("handler: %w", classified)
	got = FromError(wrapped, http.StatusInternalServerError, nil)
	assert.Same(t, classified, got)
}

func TestFromErrorGeneric(t *testing.T) {
	cause := errors.New("inner fault")
	err := fmt.Errorf("fetch failed: %w", cause)

	apiErr := FromError(err, http.StatusInternalServerError, map[string]any{"op": "fetch"})

	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "internal_server_error", apiErr.Slug)
	assert.Equal(t, "fetch failed: inner fault", apiErr.Message)
	assert.Equal(t, "fetch", apiErr.Context["op"])

	assert.NotEmpty(t, apiErr.Details["type"])
	assert.NotEmpty(t, apiErr.Details["module"])

	causeDetail, ok := apiErr.Details["cause"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "inner fault", causeDetail["message"])

	summary, ok := apiErr.Details["stack_summary"].([]string)
	require.True(t, ok)
	assert.NotEmpty(t, summary)
	assert.LessOrEqual(t, len(summary), 5)
}

func TestFromErrorReusesErrorCode(t *testing.T) {
	appErr := NewAppError("quota exhausted",
		WithErrorCode("quota_exhausted"),
		WithAppContext(map[string]any{"subsystem": "billing"}),
	)

	apiErr := FromError(appErr, http.StatusInternalServerError, nil)
	assert.Equal(t, "quota_exhausted", apiErr.Slug)
	assert.Equal(t, "billing", apiErr.Context["subsystem"])
}

func TestAppErrorLogContext(t *testing.T) {
	cause := errors.New("disk full")
	appErr := NewAppError("X failed",
		WithCause(cause),
		WithErrorCode("write_failed"),
		WithAppContext(map[string]any{"user_id": "u-1"}),
	)

	assert.Equal(t, "X failed: disk full", appErr.Error())
	assert.Same(t, cause, errors.Unwrap(appErr))

	ctx := appErr.LogContext()
	assert.Equal(t, "app_error", ctx["error_type"])
	assert.Equal(t, "write_failed", ctx["error_code"])
	assert.Equal(t, "u-1", ctx["user_id"])
	assert.Equal(t, "disk full", ctx["original_error_message"])
	assert.NotEmpty(t, ctx["original_error_type"])
}
