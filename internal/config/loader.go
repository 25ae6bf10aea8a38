package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/ngmaloney/marine-dashboard/internal/models"
	"github.com/ngmaloney/marine-dashboard/internal/ports"
)

// localHosts select the development backend
var localHosts = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"::1":       true,
}

// Load reads and validates the configuration. When envFile is empty a .env
// in the working directory is loaded if present; a named file must exist.
// Values already in the environment are never overridden by the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, &ConfigError{
				Type:    ErrEnvFile,
				Message: fmt.Sprintf("failed to load %s", envFile),
				Err:     err,
			}
		}
	} else {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrParsing,
			Message: "failed to process environment configuration",
			Err:     err,
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return &ConfigError{
			Type:    ErrValidation,
			Message: "configuration validation failed",
			Err:     err,
		}
	}

	if !IsLocalHost(c.DashboardHost) && c.APIProdURL == "" {
		return &ConfigError{
			Type:    ErrValidation,
			Message: fmt.Sprintf("API_PROD_URL is required when DASHBOARD_HOST is %q", c.DashboardHost),
		}
	}

	fallback, err := resolveFallback(c)
	if err != nil {
		return &ConfigError{
			Type:    ErrValidation,
			Message: "invalid fallback location",
			Err:     err,
		}
	}
	c.Fallback = fallback
	return nil
}

// resolveFallback prefers explicit coordinates over the named port
func resolveFallback(c *Config) (models.Port, error) {
	switch {
	case c.FallbackLat != nil && c.FallbackLon != nil:
		lat, lon := *c.FallbackLat, *c.FallbackLon
		near, dist := ports.NewCatalogue().Nearest(lat, lon)
		return models.Port{
			Key:       "custom",
			Name:      fmt.Sprintf("%.2f, %.2f (%.0f nm from %s)", lat, lon, dist, near.Name),
			Latitude:  lat,
			Longitude: lon,
		}, nil
	case c.FallbackLat != nil || c.FallbackLon != nil:
		return models.Port{}, fmt.Errorf("FALLBACK_LAT and FALLBACK_LON must be set together")
	}

	name := c.FallbackPort
	if name == "" {
		name = ports.DefaultPortKey
	}
	return ports.NewCatalogue().Lookup(name)
}

// IsLocalHost reports whether host names the local machine
func IsLocalHost(host string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	return localHosts[host]
}

// BackendURL returns the routing backend root for the configured host
func (c *Config) BackendURL() string {
	if IsLocalHost(c.DashboardHost) {
		return c.APIDevURL
	}
	return c.APIProdURL
}
