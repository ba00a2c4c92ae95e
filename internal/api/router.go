// Package api wires the HTTP surface of a service: routes, middlewares and
// the mapping from faults to the canonical error envelope.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/appifylab/dhakacelsius/internal/metrics"
	"github.com/appifylab/dhakacelsius/internal/models"
)

// WeatherService is the adapter surface the handlers consume.
type WeatherService interface {
	GetHelloData(ctx context.Context, location string) (models.WeatherResponse, error)
	CheckHealth(ctx context.Context) models.HealthResponse
}

type RouterConfig struct {
	ServiceName   string
	Prod          bool
	AllowedOrigin string
}

type handler struct {
	log     *slog.Logger
	weather WeatherService
	name    string
}

// NewRouter binds all routes and the middleware chain exactly once at
// process start.
func NewRouter(log *slog.Logger, weather WeatherService, m *metrics.Metrics, cfg RouterConfig) http.Handler {
	h := handler{
		log:     log,
		weather: weather,
		name:    cfg.ServiceName,
	}

	r := mux.NewRouter()

	r.HandleFunc("/", h.root).Methods(http.MethodGet)
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.HandleFunc("/hello", h.hello).Methods(http.MethodGet)
	r.HandleFunc("/hello", h.helloLookup).Methods(http.MethodPost)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	// RequestID runs first so the recovery path can still resolve the
	// correlation id for its error envelope.
	middlewares := []mux.MiddlewareFunc{
		RequestID(log),
		Recovery(log),
		RequestLogging(log),
		Observe(m),
	}
	if !cfg.Prod {
		middlewares = append(middlewares, CORS(cfg.AllowedOrigin))

		// Preflight requests must match a route for the middleware
		// chain to run; CORS answers them before this handler is
		// reached.
		r.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
	}
	r.Use(middlewares...)

	return r
}
