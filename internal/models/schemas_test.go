package models

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemperatureDataValid(t *testing.T) {
	data := TemperatureData{Temperature: "25", TempUnit: "c"}
	assert.NoError(t, Validate(data))
}

func TestTemperatureDataInvalidUnit(t *testing.T) {
	data := TemperatureData{Temperature: "25", TempUnit: "celsius"}

	err := Validate(data)
	require.Error(t, err)

	var vErrs validator.ValidationErrors
	require.ErrorAs(t, err, &vErrs)
	require.Len(t, vErrs, 1)
	assert.Equal(t, "oneof", vErrs[0].Tag())
}

func TestWeatherResponseValid(t *testing.T) {
	resp := WeatherResponse{
		Hostname: "server1",
		Datetime: "2307152230",
		Version:  "1.0.0",
		Weather: map[string]TemperatureData{
			"dhaka": {Temperature: "14", TempUnit: "c"},
		},
	}
	assert.NoError(t, Validate(resp))
}

func TestWeatherResponseInvalid(t *testing.T) {
	testCases := []struct {
		name string
		resp WeatherResponse
	}{
		{
			name: "missing weather",
			resp: WeatherResponse{Hostname: "server1", Datetime: "2307152230", Version: "1.0.0"},
		},
		{
			name: "malformed datetime",
			resp: WeatherResponse{
				Hostname: "server1",
				Datetime: "not-a-timestamp",
				Version:  "1.0.0",
				Weather:  map[string]TemperatureData{"dhaka": {Temperature: "14", TempUnit: "c"}},
			},
		},
		{
			name: "invalid nested reading",
			resp: WeatherResponse{
				Hostname: "server1",
				Datetime: "2307152230",
				Version:  "1.0.0",
				Weather:  map[string]TemperatureData{"dhaka": {Temperature: "14", TempUnit: "kelvin"}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, Validate(tc.resp))
		})
	}
}

func TestHealthResponseValid(t *testing.T) {
	resp := HealthResponse{
		Status:           "healthy",
		StatusCode:       200,
		Timestamp:        "2307152230",
		Version:          "1.0.0",
		ExternalServices: map[string]bool{"weather_service": true},
		ResponseTime:     88.0,
	}
	assert.NoError(t, Validate(resp))
}

func TestHealthResponseInvalidStatus(t *testing.T) {
	resp := HealthResponse{Status: "confused", StatusCode: 200}
	assert.Error(t, Validate(resp))
}
