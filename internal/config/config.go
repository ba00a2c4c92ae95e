// Package config loads environment-driven settings for a service binary.
// Each binary processes the same structure under its own prefix (AUTH,
// ORDER, PRODUCT) so the services can be configured independently.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServiceName string `split_words:"true"`
	Prod        bool   `default:"false"`
	SentryDSN   string `envconfig:"sentry_dsn"`

	LogFormat    string     `default:"json" split_words:"true"`
	LogLevel     slog.Level `default:"info" split_words:"true"`
	LogAddSource bool       `default:"true" split_words:"true"`

	ServerAddr            string        `default:":8080" split_words:"true"`
	ServerReadTimeout     time.Duration `default:"15s" split_words:"true"`
	ServerWriteTimeout    time.Duration `default:"15s" split_words:"true"`
	ServerIdleTimeout     time.Duration `default:"5m" split_words:"true"`
	ServerShutdownTimeout time.Duration `default:"30s" split_words:"true"`

	CORSAllowedOrigin string `default:"http://localhost:3000" split_words:"true"`

	Weather Weather
}

// Weather configures the upstream weather provider client.
type Weather struct {
	APIURL   string        `envconfig:"api_url" default:"https://api.openweathermap.org/data/2.5"`
	APIKey   string        `envconfig:"api_key"`
	APIUnits string        `envconfig:"api_units" default:"metric"`
	Timeout  time.Duration `default:"5s"`
	Location string        `default:"Dhaka"`
}

// Load processes environment variables under the given prefix. An empty
// ServiceName falls back to the caller-supplied default so every binary has
// a name without requiring configuration.
func Load(prefix, defaultServiceName string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	return &cfg, nil
}
