// Package models holds the response schemas shared by the services.
package models

// TemperatureData is the temperature reading for one location. Temperature
// is deliberately a string: downstream consumers must not rely on a numeric
// JSON type.
type TemperatureData struct {
	Temperature string `json:"temperature" validate:"required"`
	TempUnit    string `json:"temp_unit" validate:"required,oneof=c f"`
}

// WeatherResponse is the /hello payload: host identity, a YYMMDDHHmm
// timestamp, the suite version and one reading per location.
type WeatherResponse struct {
	Hostname string                     `json:"hostname" validate:"required"`
	Datetime string                     `json:"datetime" validate:"required,len=10,number"`
	Version  string                     `json:"version" validate:"required"`
	Weather  map[string]TemperatureData `json:"weather" validate:"required,dive"`
}

// HealthResponse is the /health payload. StatusCode reflects the health
// state in the body; the HTTP response itself is always 200.
type HealthResponse struct {
	Status           string          `json:"status" validate:"required,oneof=healthy degraded unhealthy"`
	StatusCode       int             `json:"status_code" validate:"required"`
	Timestamp        string          `json:"timestamp,omitempty"`
	Version          string          `json:"version,omitempty"`
	ExternalServices map[string]bool `json:"external_services,omitempty"`
	ResponseTime     float64         `json:"response_time,omitempty"`
}
