// Package weather adapts the upstream weather provider to the service
// schemas. All upstream failures are classified at this boundary: transport
// faults become APIErrors with a definite status, everything else becomes an
// AppError wrapping the cause.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/appifylab/dhakacelsius/internal/apperr"
	"github.com/appifylab/dhakacelsius/internal/models"
	"github.com/appifylab/dhakacelsius/internal/version"
)

// timestampLayout renders YYMMDDHHmm, e.g. 2307152230.
const timestampLayout = "0601021504"

type Config struct {
	APIURL   string
	APIKey   string
	Units    string
	Timeout  time.Duration
	Location string
}

type Service struct {
	cfg    Config
	client *http.Client
	log    *slog.Logger

	// Injectable for tests.
	now      func() time.Time
	hostname func() (string, error)
}

func NewService(cfg Config, log *slog.Logger) *Service {
	return &Service{
		cfg:      cfg,
		client:   &http.Client{Timeout: cfg.Timeout},
		log:      log,
		now:      time.Now,
		hostname: os.Hostname,
	}
}

type upstreamReading struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// GetWeatherData fetches the current reading for location (the configured
// default when empty) and returns it as a whole-degree Celsius string,
// rounded half away from zero.
func (s *Service) GetWeatherData(ctx context.Context, location string) (models.TemperatureData, error) {
	if location == "" {
		location = s.cfg.Location
	}

	resp, err := s.fetch(ctx, location)
	if err != nil {
		if isTimeout(err) {
			return models.TemperatureData{}, apperr.GatewayTimeout("Weather API timed out",
				apperr.WithContext(map[string]any{"location": location}))
		}
		return models.TemperatureData{}, s.appError("Failed to fetch weather data", err, location)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return models.TemperatureData{}, apperr.NotFound("Weather data for "+location,
			apperr.WithContext(map[string]any{"location": location}))
	case resp.StatusCode == http.StatusUnauthorized:
		return models.TemperatureData{}, apperr.BadRequest("Invalid API key",
			apperr.WithContext(map[string]any{"location": location}))
	case resp.StatusCode != http.StatusOK:
		err := fmt.Errorf("unexpected upstream status %d", resp.StatusCode)
		return models.TemperatureData{}, s.appError("Failed to fetch weather data", err, location)
	}

	var reading upstreamReading
	if err := json.NewDecoder(resp.Body).Decode(&reading); err != nil {
		return models.TemperatureData{}, s.appError("Failed to fetch weather data", err, location)
	}

	return models.TemperatureData{
		Temperature: strconv.Itoa(int(math.Round(reading.Main.Temp))),
		TempUnit:    "c",
	}, nil
}

// GetHelloData bundles the current reading with host identity, timestamp
// and version for the /hello endpoint.
func (s *Service) GetHelloData(ctx context.Context, location string) (models.WeatherResponse, error) {
	if location == "" {
		location = s.cfg.Location
	}

	temperature, err := s.GetWeatherData(ctx, location)
	if err != nil {
		return models.WeatherResponse{}, err
	}

	host, err := s.hostname()
	if err != nil {
		host = "unknown"
	}

	return models.WeatherResponse{
		Hostname: host,
		Datetime: s.now().Format(timestampLayout),
		Version:  version.Version,
		Weather: map[string]models.TemperatureData{
			strings.ToLower(location): temperature,
		},
	}, nil
}

// CheckHealth probes the upstream provider once and reports a defined
// health document. It never returns an error: an upstream non-200 keeps the
// upstream status code, a transport failure reports 503.
func (s *Service) CheckHealth(ctx context.Context) models.HealthResponse {
	started := time.Now()

	health := models.HealthResponse{
		Status:     "healthy",
		StatusCode: http.StatusOK,
		Timestamp:  s.now().Format(timestampLayout),
		Version:    version.Version,
	}

	reachable := false
	resp, err := s.fetch(ctx, s.cfg.Location)
	switch {
	case err != nil:
		health.Status = "unhealthy"
		health.StatusCode = http.StatusServiceUnavailable
		s.log.Error("weather service health probe failed",
			slog.Any("error", err),
			slog.String("location", s.cfg.Location),
		)
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		health.Status = "unhealthy"
		health.StatusCode = resp.StatusCode
	default:
		resp.Body.Close()
		reachable = true
	}

	health.ExternalServices = map[string]bool{"weather_service": reachable}
	health.ResponseTime = float64(time.Since(started)) / float64(time.Millisecond)

	return health
}

func (s *Service) fetch(ctx context.Context, location string) (*http.Response, error) {
	query := url.Values{}
	query.Set("q", location)
	query.Set("appid", s.cfg.APIKey)
	query.Set("units", s.cfg.Units)

	endpoint := strings.TrimSuffix(s.cfg.APIURL, "/") + "/weather?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call weather api: %w", err)
	}

	return resp, nil
}

// appError classifies an unexpected fault and logs it at the boundary with
// the flattened error context.
func (s *Service) appError(message string, cause error, location string) error {
	appErr := apperr.NewAppError(message,
		apperr.WithCause(cause),
		apperr.WithAppContext(map[string]any{"location": location}),
	)
	s.log.Error("Application error: "+message, slog.Any("error_context", appErr.LogContext()))
	return appErr
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
