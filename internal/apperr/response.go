package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the canonical error envelope for every failing request.
// Code always equals the HTTP status of the response; Error is the stable
// machine-readable slug. Unset optional fields are dropped from the JSON,
// never serialized as null.
type ErrorResponse struct {
	Code      int            `json:"code"`
	Message   string         `json:"message"`
	Error     string         `json:"error"`
	RequestID string         `json:"request_id,omitempty"`
	TraceID   string         `json:"trace_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	Errors    []ErrorDetail  `json:"errors,omitempty"`
}

// ErrorDetail reports one field-level validation failure. Location is a
// path into the request payload with segments joined by " -> ".
type ErrorDetail struct {
	Location string `json:"location,omitempty"`
	Message  string `json:"message"`
	Type     string `json:"type"`
	Code     string `json:"code,omitempty"`
}

// ToResponse maps any fault to its transport representation. It is a pure
// function of the fault variant:
//
//   - *APIError: its own status, slug and details
//   - validator.ValidationErrors: 422, itemized per field
//   - *AppError: 500, original detail confined to details, generic message
//   - anything else: classified via FromError at 500
//
// Callers resolve correlation ids and perform logging; ToResponse does
// neither.
func ToResponse(err error) (int, ErrorResponse) {
	var (
		apiErr *APIError
		vErrs  validator.ValidationErrors
		appErr *AppError
	)

	switch {
	case errors.As(err, &apiErr):
		// Already classified, no further wrapping.

	case errors.As(err, &vErrs):
		apiErr = ValidationFailed("Request validation error")
		return apiErr.StatusCode, ErrorResponse{
			Code:    apiErr.StatusCode,
			Message: apiErr.Message,
			Error:   apiErr.Slug,
			Errors:  fieldErrors(vErrs),
		}

	case errors.As(err, &appErr):
		apiErr = Internal("An internal server error occurred",
			WithDetails(map[string]any{
				"app_error_message": appErr.Message,
				"app_error_code":    appErr.Code,
			}),
			WithContext(appErr.LogContext()),
		)

	default:
		apiErr = FromError(err, http.StatusInternalServerError, nil)
	}

	return apiErr.StatusCode, ErrorResponse{
		Code:    apiErr.StatusCode,
		Message: apiErr.Message,
		Error:   apiErr.Slug,
		Details: apiErr.Details,
	}
}

// fieldErrors converts validator failures into the envelope's per-field
// error list. The struct name is stripped from the namespace so locations
// address the payload, e.g. "a -> b".
func fieldErrors(vErrs validator.ValidationErrors) []ErrorDetail {
	details := make([]ErrorDetail, 0, len(vErrs))
	for _, fe := range vErrs {
		segments := strings.Split(fe.Namespace(), ".")
		if len(segments) > 1 {
			segments = segments[1:]
		}
		details = append(details, ErrorDetail{
			Location: strings.Join(segments, " -> "),
			Message:  fieldErrorMessage(fe),
			Type:     fe.Tag(),
		})
	}
	return details
}

func fieldErrorMessage(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("field failed on the %q rule (%s)", fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("field failed on the %q rule", fe.Tag())
}
