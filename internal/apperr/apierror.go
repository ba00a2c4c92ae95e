package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"runtime"
	"strings"
)

// APIError is a transport-facing fault with a definite HTTP status code and
// a stable machine-readable slug. Once a fault is classified as an APIError
// no further wrapping occurs. Context is used for logging only and is never
// echoed into the response body; Details is.
type APIError struct {
	StatusCode int
	Message    string
	Slug       string
	Details    map[string]any
	Headers    map[string]string
	Context    map[string]any
}

func (e *APIError) Error() string { return e.Message }

type Option func(*APIError)

// WithSlug overrides the status-derived error slug.
func WithSlug(slug string) Option {
	return func(e *APIError) { e.Slug = slug }
}

// WithDetails attaches structured details echoed in the response body.
func WithDetails(details map[string]any) Option {
	return func(e *APIError) { e.Details = details }
}

// WithHeaders attaches extra response headers.
func WithHeaders(headers map[string]string) Option {
	return func(e *APIError) { e.Headers = headers }
}

// WithContext attaches loggable context that never reaches the body.
func WithContext(ctx map[string]any) Option {
	return func(e *APIError) { e.Context = ctx }
}

// New builds an APIError. The slug defaults from the status code when no
// WithSlug option is given.
func New(statusCode int, message string, opts ...Option) *APIError {
	e := &APIError{
		StatusCode: statusCode,
		Message:    message,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.Slug == "" {
		e.Slug = defaultSlug(statusCode)
	}
	return e
}

var statusSlugs = map[int]string{
	http.StatusBadRequest:          "bad_request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusForbidden:           "forbidden",
	http.StatusNotFound:            "not_found",
	http.StatusConflict:            "conflict",
	http.StatusUnprocessableEntity: "validation_error",
	http.StatusTooManyRequests:     "rate_limit_exceeded",
	http.StatusInternalServerError: "internal_server_error",
	http.StatusBadGateway:          "bad_gateway",
	http.StatusServiceUnavailable:  "service_unavailable",
	http.StatusGatewayTimeout:      "gateway_timeout",
}

func defaultSlug(statusCode int) string {
	if slug, ok := statusSlugs[statusCode]; ok {
		return slug
	}
	return fmt.Sprintf("http_%d", statusCode)
}

// Convenience constructors. An empty message selects the standard text for
// the status, mirroring the envelope contract that messages are always
// human-readable and safe to display.

func BadRequest(message string, opts ...Option) *APIError {
	return New(http.StatusBadRequest, orDefault(message, "Invalid request"), opts...)
}

func Unauthorized(message string, opts ...Option) *APIError {
	return New(http.StatusUnauthorized, orDefault(message, "Authentication required"), opts...)
}

func Forbidden(message string, opts ...Option) *APIError {
	return New(http.StatusForbidden, orDefault(message, "Access denied"), opts...)
}

// NotFound reports a missing entity, e.g. NotFound("Widget") renders the
// message "Widget not found".
func NotFound(entity string, opts ...Option) *APIError {
	if entity == "" {
		entity = "Resource"
	}
	return New(http.StatusNotFound, entity+" not found", opts...)
}

func Conflict(message string, opts ...Option) *APIError {
	return New(http.StatusConflict, orDefault(message, "Resource conflict"), opts...)
}

func ValidationFailed(message string, opts ...Option) *APIError {
	return New(http.StatusUnprocessableEntity, orDefault(message, "Validation error"), opts...)
}

func RateLimited(message string, opts ...Option) *APIError {
	return New(http.StatusTooManyRequests, orDefault(message, "Rate limit exceeded"), opts...)
}

func Internal(message string, opts ...Option) *APIError {
	return New(http.StatusInternalServerError, orDefault(message, "Internal server error"), opts...)
}

func BadGateway(message string, opts ...Option) *APIError {
	return New(http.StatusBadGateway, orDefault(message, "Bad gateway"), opts...)
}

func Unavailable(message string, opts ...Option) *APIError {
	return New(http.StatusServiceUnavailable, orDefault(message, "Service unavailable"), opts...)
}

func GatewayTimeout(message string, opts ...Option) *APIError {
	return New(http.StatusGatewayTimeout, orDefault(message, "Gateway timeout"), opts...)
}

func InvalidJSON(opts ...Option) *APIError {
	return BadRequest("Invalid JSON data", opts...)
}

func orDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}

// Coder lets a fault carry its own stable slug through classification;
// FromError prefers it over the status-derived default.
type Coder interface {
	ErrorCode() string
}

func (e *AppError) ErrorCode() string { return e.Code }

// FromError classifies an arbitrary fault into an APIError. A fault that is
// already classified passes through untouched. The result's details record
// the fault's type name, package, the immediate cause of a wrapped chain and
// a bounded stack summary; none of that ever reaches the top-level message.
func FromError(err error, statusCode int, context map[string]any) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	details := map[string]any{
		"type":   errorTypeName(err),
		"module": errorPkgPath(err),
	}
	if cause := errors.Unwrap(err); cause != nil {
		details["cause"] = map[string]any{
			"type":    errorTypeName(cause),
			"message": cause.Error(),
		}
	}
	details["stack_summary"] = stackSummary(2, 5)

	slug := defaultSlug(statusCode)
	var coder Coder
	if errors.As(err, &coder) && coder.ErrorCode() != "" {
		slug = coder.ErrorCode()
	}

	var appErr *AppError
	if errors.As(err, &appErr) && len(appErr.Context) > 0 {
		merged := make(map[string]any, len(context)+len(appErr.Context))
		for k, v := range context {
			merged[k] = v
		}
		for k, v := range appErr.Context {
			merged[k] = v
		}
		context = merged
	}

	message := err.Error()
	if message == "" {
		message = "An unexpected error occurred"
	}

	return New(statusCode, message,
		WithSlug(slug),
		WithDetails(details),
		WithContext(context),
	)
}

func errorTypeName(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}
	return t.Name()
}

func errorPkgPath(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.PkgPath() == "" {
		return "unknown"
	}
	return t.PkgPath()
}

// stackSummary captures at most max frames above the classification point,
// formatted "func (file:line)". Only this bounded summary may appear in a
// response body; full traces stay in logs.
func stackSummary(skip, max int) []string {
	pcs := make([]uintptr, max)
	n := runtime.Callers(skip+1, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	summary := make([]string, 0, n)
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			fn := frame.Function
			if idx := strings.LastIndex(fn, "/"); idx >= 0 {
				fn = fn[idx+1:]
			}
			summary = append(summary, fmt.Sprintf("%s (%s:%d)", fn, frame.File, frame.Line))
		}
		if !more || len(summary) == max {
			break
		}
	}
	return summary
}
