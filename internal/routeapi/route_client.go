// Package routeapi talks to the routing backend: route forecasts, alerts and
// the route optimizer.
package routeapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/ngmaloney/marine-dashboard/internal/models"
	"github.com/ngmaloney/marine-dashboard/internal/upstream"
)

const userAgent = "MarineDashboard/1.0 (github.com/ngmaloney/marine-dashboard)"

var validate = validator.New()

// Client implements ForecastClient, AlertClient and OptimizationClient
// against the routing backend. Each endpoint sits behind its own breaker so
// one failing endpoint does not hold back the others.
type Client struct {
	baseURL  string
	forecast *upstream.Client
	alerts   *upstream.Client
	optimize *upstream.Client
	inflight singleflight.Group
}

// NewClient creates a backend client rooted at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		forecast: upstream.NewClient("routeapi.forecast", userAgent, timeout),
		alerts:   upstream.NewClient("routeapi.alerts", userAgent, timeout),
		optimize: upstream.NewClient("routeapi.optimize", userAgent, timeout),
	}
}

// BaseURL returns the backend root this client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetRouteForecast retrieves the forecast segments of a route. Concurrent
// calls for the same route share one request; a caller giving up does not
// cancel the request for the others.
func (c *Client) GetRouteForecast(ctx context.Context, routeID int) ([]models.ForecastSegment, error) {
	key := strconv.Itoa(routeID)
	shared := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(key, func() (any, error) {
		var segments []models.ForecastSegment
		reqURL := fmt.Sprintf("%s/route_forecast?%s", c.baseURL, routeQuery(routeID))
		if err := c.forecast.GetJSON(shared, reqURL, &segments); err != nil {
			return nil, fmt.Errorf("failed to fetch forecast: %w", err)
		}
		return segments, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return copySegments(res.Val.([]models.ForecastSegment)), nil
	}
}

// GetAlerts retrieves all alerts for a route
func (c *Client) GetAlerts(ctx context.Context, routeID int) ([]models.Alert, error) {
	var alerts []models.Alert
	reqURL := fmt.Sprintf("%s/alerts?%s", c.baseURL, routeQuery(routeID))
	if err := c.alerts.GetJSON(ctx, reqURL, &alerts); err != nil {
		return nil, fmt.Errorf("failed to fetch alerts: %w", err)
	}
	// a JSON null decodes to a nil slice; [] does not
	if alerts == nil {
		return nil, fmt.Errorf("%w: alert list", models.ErrMissingField)
	}
	return alerts, nil
}

// Optimize submits an optimization request
func (c *Client) Optimize(ctx context.Context, req models.OptimizationRequest) (*models.OptimizationResult, error) {
	var result models.OptimizationResult
	if err := c.optimize.PostJSON(ctx, c.baseURL+"/optimize", req, &result); err != nil {
		return nil, fmt.Errorf("failed to optimize route: %w", err)
	}
	if err := validate.Struct(result); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrMissingField, err)
	}
	return &result, nil
}

func routeQuery(routeID int) string {
	params := url.Values{}
	params.Set("route_id", strconv.Itoa(routeID))
	return params.Encode()
}

// copySegments gives each caller its own segments and sample slices. The
// *float64 values inside a sample are still shared and must not be written.
func copySegments(src []models.ForecastSegment) []models.ForecastSegment {
	out := make([]models.ForecastSegment, len(src))
	copy(out, src)
	for i := range out {
		out[i].Forecast.Times = append([]models.ForecastTime(nil), src[i].Forecast.Times...)
	}
	return out
}
