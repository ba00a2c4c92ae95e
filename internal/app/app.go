// Package app boots one service binary: settings, logger, weather adapter,
// router and HTTP server with graceful shutdown.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/appifylab/dhakacelsius/internal/api"
	"github.com/appifylab/dhakacelsius/internal/config"
	"github.com/appifylab/dhakacelsius/internal/logging"
	"github.com/appifylab/dhakacelsius/internal/metrics"
	"github.com/appifylab/dhakacelsius/internal/server"
	"github.com/appifylab/dhakacelsius/internal/version"
	"github.com/appifylab/dhakacelsius/internal/weather"
)

// Run blocks until the service terminates. envPrefix selects the
// environment namespace (AUTH, ORDER, PRODUCT); serviceName is the default
// identity when none is configured.
func Run(envPrefix, serviceName string) error {
	cfg, err := config.Load(envPrefix, serviceName)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.New(logging.Config{
		Format:    cfg.LogFormat,
		Level:     cfg.LogLevel,
		AddSource: cfg.LogAddSource,
	}, os.Stdout).With(
		slog.String("service", cfg.ServiceName),
		slog.String("version", version.Version),
	)

	log.Info("logger initialized", slog.String("level", cfg.LogLevel.String()))
	if cfg.SentryDSN != "" {
		log.Debug("error tracking DSN configured")
	}

	weatherSvc := weather.NewService(weather.Config{
		APIURL:   cfg.Weather.APIURL,
		APIKey:   cfg.Weather.APIKey,
		Units:    cfg.Weather.APIUnits,
		Timeout:  cfg.Weather.Timeout,
		Location: cfg.Weather.Location,
	}, log)

	m := metrics.New(cfg.ServiceName)

	router := api.NewRouter(log, weatherSvc, m, api.RouterConfig{
		ServiceName:   cfg.ServiceName,
		Prod:          cfg.Prod,
		AllowedOrigin: cfg.CORSAllowedOrigin,
	})

	srv := server.New(server.Config{
		Addr:         cfg.ServerAddr,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}, log, router)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-shutdown:
		log.Info("received termination signal, service will shut down")

		if err := srv.Shutdown(cfg.ServerShutdownTimeout); err != nil {
			log.Error("failed to shutdown server", slog.Any("error", err))
		}

		return nil
	}
}
