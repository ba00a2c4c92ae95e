// Package apperr defines the error taxonomy shared by all services and the
// mapping from any fault to the canonical HTTP error envelope.
//
// Two families exist: APIError is transport-facing and carries a definite
// HTTP status plus a stable slug, ready to serialize; AppError is an
// application-level fault without an inherent status, always normalized to
// 500 at the boundary with its detail confined to the envelope's details.
package apperr

import (
	"fmt"
)

// AppError is an application-level fault raised when a business-logic
// invariant fails. It optionally wraps the underlying cause and carries a
// key/value context bag used for logging only.
type AppError struct {
	Message string
	Err     error
	Context map[string]any
	Code    string
}

type AppOption func(*AppError)

// WithCause attaches the underlying fault.
func WithCause(err error) AppOption {
	return func(e *AppError) { e.Err = err }
}

// WithAppContext attaches loggable key/value context.
func WithAppContext(ctx map[string]any) AppOption {
	return func(e *AppError) { e.Context = ctx }
}

// WithErrorCode sets a stable error code reused as the response slug when
// the error reaches FromError.
func WithErrorCode(code string) AppOption {
	return func(e *AppError) { e.Code = code }
}

// NewAppError builds an application error. Construction is pure; the
// classification site logs it through its own logger using LogContext.
func NewAppError(message string, opts ...AppOption) *AppError {
	e := &AppError{Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// LogContext flattens the error into the error_context payload logged at
// the classification site: error type, code, the caller context and, when a
// cause is wrapped, its type name and message.
func (e *AppError) LogContext() map[string]any {
	ctx := map[string]any{
		"error_type": "app_error",
	}
	if e.Code != "" {
		ctx["error_code"] = e.Code
	}
	for k, v := range e.Context {
		ctx[k] = v
	}
	if e.Err != nil {
		ctx["original_error_type"] = errorTypeName(e.Err)
		ctx["original_error_message"] = e.Err.Error()
	}
	return ctx
}
