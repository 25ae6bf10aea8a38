// Package config loads dashboard settings from the environment.
//
// The loading sequence is:
//  1. Load a .env file via godotenv (optional unless a path is given).
//  2. Use envconfig to populate Config from its struct tags.
//  3. Validate the struct using go-playground/validator.
//  4. Resolve the fallback weather coordinate and the backend base URL.
package config

import (
	"fmt"
	"time"

	"github.com/ngmaloney/marine-dashboard/internal/models"
)

// Config holds every setting the dashboard reads from the environment.
type Config struct {
	// Backend selection
	DashboardHost string `envconfig:"DASHBOARD_HOST" default:"localhost" validate:"required"`
	APIDevURL     string `envconfig:"API_DEV_URL" default:"http://localhost:8000" validate:"required,url"`
	APIProdURL    string `envconfig:"API_PROD_URL" validate:"omitempty,url"`

	// Polling
	RouteID        int           `envconfig:"ROUTE_ID" default:"1" validate:"gte=1"`
	UpdateInterval time.Duration `envconfig:"UPDATE_INTERVAL" default:"30s" validate:"min=1s"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s" validate:"min=100ms"`

	// Fallback current-weather provider
	OpenWeatherURL    string   `envconfig:"OPENWEATHER_URL" default:"https://api.openweathermap.org" validate:"required,url"`
	OpenWeatherAPIKey string   `envconfig:"OPENWEATHER_API_KEY"`
	FallbackPort      string   `envconfig:"FALLBACK_PORT" default:"mumbai"`
	FallbackLat       *float64 `envconfig:"FALLBACK_LAT" validate:"omitempty,gte=-90,lte=90"`
	FallbackLon       *float64 `envconfig:"FALLBACK_LON" validate:"omitempty,gte=-180,lte=180"`

	// Optimization request
	SegmentDistanceNM float64 `envconfig:"SEGMENT_DISTANCE_NM" default:"50" validate:"gt=0"`
	VesselName        string  `envconfig:"VESSEL_NAME" default:"DemoVessel" validate:"required"`
	VesselBaseSpeedKn float64 `envconfig:"VESSEL_BASE_SPEED_KN" default:"12.0" validate:"gt=0"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFile  string `envconfig:"LOG_FILE" default:"marine-dashboard.log"`

	// Fallback is the resolved coordinate for the current-weather query.
	Fallback models.Port `ignored:"true"`
}

// Vessel returns the vessel profile submitted for optimization
func (c *Config) Vessel() models.VesselProfile {
	return models.VesselProfile{Name: c.VesselName, BaseSpeedKn: c.VesselBaseSpeedKn}
}

// OpenWeatherEnabled reports whether the fallback wind provider can be used
func (c *Config) OpenWeatherEnabled() bool {
	return c.OpenWeatherAPIKey != ""
}

// ConfigErrorType categorizes configuration loading failures.
type ConfigErrorType string

const (
	// ErrEnvFile indicates an explicitly requested .env file could not be read.
	ErrEnvFile ConfigErrorType = "ENV_FILE"
	// ErrParsing indicates an environment value could not be parsed.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
	// ErrValidation indicates the configuration failed validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
)

// ConfigError is returned by Load to aid debugging.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
