package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/appifylab/dhakacelsius/internal/logging"
	"github.com/appifylab/dhakacelsius/internal/metrics"
)

// Recovery turns a panicking request into the canonical 500 envelope. It is
// the outermost middleware so nothing above it sees the fault.
func Recovery(log *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", rec)
					}
					writeError(w, r, log, err)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RequestID tags every request with a correlation id taken from the
// X-Request-ID header or freshly generated, echoes it on the response and
// stores a request-scoped logger on the context.
func RequestID(log *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", id)

			ctx := logging.WithRequestID(r.Context(), id)
			ctx = logging.IntoContext(ctx, log.With(slog.String("request_id", id)))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type statusResponseWriter struct {
	http.ResponseWriter
	status int
}

func newStatusResponseWriter(w http.ResponseWriter) *statusResponseWriter {
	return &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// RequestLogging logs request start, completion with status and duration,
// and failure with duration and fault type. Failures are re-raised for the
// Recovery middleware to answer.
func RequestLogging(log *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := logging.FromContext(r.Context(), log)
			logger.Info("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			start := time.Now()
			sw := newStatusResponseWriter(w)

			defer func() {
				durationMS := float64(time.Since(start)) / float64(time.Millisecond)

				if rec := recover(); rec != nil {
					logger.Error("request failed",
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("fault", fmt.Sprintf("%T", rec)),
						slog.Float64("duration_ms", durationMS),
					)
					panic(rec)
				}

				logger.Info("request completed",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", sw.status),
					slog.Float64("duration_ms", durationMS),
				)
			}()

			next.ServeHTTP(sw, r)
		})
	}
}

// Observe records request metrics.
func Observe(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusResponseWriter(w)

			next.ServeHTTP(sw, r)

			m.Observe(r.Method, r.URL.Path, sw.status, time.Since(start))
		})
	}
}

// CORS allows the configured development origin. Mounted only when the
// service runs outside production.
func CORS(origin string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
