// Package openweather queries current weather from OpenWeatherMap. The
// dashboard only uses it as a fallback wind source.
package openweather

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ngmaloney/marine-dashboard/internal/models"
	"github.com/ngmaloney/marine-dashboard/internal/upstream"
)

// DefaultBaseURL is the public OpenWeatherMap API root
const DefaultBaseURL = "https://api.openweathermap.org"

const userAgent = "MarineDashboard/1.0 (github.com/ngmaloney/marine-dashboard)"

var validate = validator.New()

// WeatherClient defines the interface for current-weather lookups
type WeatherClient interface {
	// GetCurrentWeather retrieves current conditions at a coordinate
	GetCurrentWeather(ctx context.Context, lat, lon float64) (*models.WeatherSnapshot, error)
}

// Client implements WeatherClient using the OpenWeatherMap API
type Client struct {
	baseURL  string
	apiKey   string
	upstream *upstream.Client
}

// NewClient creates a new OpenWeatherMap client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		upstream: upstream.NewClient("openweather", userAgent, timeout),
	}
}

// GetCurrentWeather retrieves current weather in metric units
func (c *Client) GetCurrentWeather(ctx context.Context, lat, lon float64) (*models.WeatherSnapshot, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("openweather API key is not configured")
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	var resp currentWeatherResponse
	reqURL := fmt.Sprintf("%s/data/2.5/weather?%s", c.baseURL, params.Encode())
	if err := c.upstream.GetJSON(ctx, reqURL, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch current weather: %w", err)
	}

	if err := validate.Struct(resp); err != nil {
		return nil, fmt.Errorf("current weather response has no usable wind data: %w: %w", models.ErrMissingField, err)
	}

	return &models.WeatherSnapshot{
		Wind: models.WindData{
			Speed: *resp.Wind.Speed,
			Deg:   *resp.Wind.Deg,
		},
	}, nil
}

// Internal types for OpenWeatherMap responses

type currentWeatherResponse struct {
	Name string `json:"name"`
	Wind *struct {
		Speed *float64 `json:"speed" validate:"required"`
		Deg   *float64 `json:"deg" validate:"required"`
		Gust  float64  `json:"gust"`
	} `json:"wind" validate:"required"`
}
