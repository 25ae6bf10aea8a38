package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ngmaloney/marine-dashboard/internal/models"
	"github.com/ngmaloney/marine-dashboard/internal/openweather"
	"github.com/ngmaloney/marine-dashboard/internal/routeapi"
)

// ErrNoWindSource is returned when every wind provider failed
var ErrNoWindSource = errors.New("no wind source available")

// Wind provider names
const (
	SourceRouteForecast = "route_forecast"
	SourceOpenWeather   = "openweather"
)

// WindProvider is one candidate source of current wind
type WindProvider interface {
	Name() string
	CurrentWind(ctx context.Context) (models.WindData, error)
}

// RouteWindProvider reads wind from the first sample of the route forecast
type RouteWindProvider struct {
	Client  routeapi.ForecastClient
	RouteID int
}

func (p *RouteWindProvider) Name() string { return SourceRouteForecast }

func (p *RouteWindProvider) CurrentWind(ctx context.Context) (models.WindData, error) {
	sample, err := currentSample(ctx, p.Client, p.RouteID)
	if err != nil {
		return models.WindData{}, err
	}
	return sample.Wind()
}

// WeatherWindProvider reads wind from a current-weather query at a fixed coordinate
type WeatherWindProvider struct {
	Client openweather.WeatherClient
	Lat    float64
	Lon    float64
}

func (p *WeatherWindProvider) Name() string { return SourceOpenWeather }

func (p *WeatherWindProvider) CurrentWind(ctx context.Context) (models.WindData, error) {
	snapshot, err := p.Client.GetCurrentWeather(ctx, p.Lat, p.Lon)
	if err != nil {
		return models.WindData{}, err
	}
	return snapshot.Wind, nil
}

// WindSource tries providers in order and returns the first success
type WindSource struct {
	providers []WindProvider
	timeout   time.Duration
}

// NewWindSource creates a chain over providers. Each attempt gets its own
// timeout; zero means the caller's context alone bounds it.
func NewWindSource(timeout time.Duration, providers ...WindProvider) *WindSource {
	return &WindSource{providers: providers, timeout: timeout}
}

// Fetch returns the wind from the first provider that succeeds along with
// that provider's name. Failed attempts are logged and skipped.
func (s *WindSource) Fetch(ctx context.Context, logger *zap.SugaredLogger) (models.WindData, string, error) {
	if len(s.providers) == 0 {
		return models.WindData{}, "", ErrNoWindSource
	}

	var errs []error
	for _, p := range s.providers {
		wind, err := s.attempt(ctx, p)
		if err == nil {
			return wind, p.Name(), nil
		}
		logger.Warnw("wind source failed", "source", p.Name(), "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))

		if ctx.Err() != nil {
			break
		}
	}
	return models.WindData{}, "", fmt.Errorf("%w: %w", ErrNoWindSource, errors.Join(errs...))
}

func (s *WindSource) attempt(ctx context.Context, p WindProvider) (models.WindData, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return p.CurrentWind(ctx)
}
