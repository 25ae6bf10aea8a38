package routeapi

import (
	"context"

	"github.com/ngmaloney/marine-dashboard/internal/models"
)

// ForecastClient defines the interface for fetching route forecasts
type ForecastClient interface {
	// GetRouteForecast retrieves the per-segment forecast for a route
	GetRouteForecast(ctx context.Context, routeID int) ([]models.ForecastSegment, error)
}

// AlertClient defines the interface for fetching route alerts
type AlertClient interface {
	// GetAlerts retrieves every alert the backend holds for a route
	GetAlerts(ctx context.Context, routeID int) ([]models.Alert, error)
}

// OptimizationClient defines the interface for submitting routes to the optimizer
type OptimizationClient interface {
	// Optimize submits a route and vessel profile and returns the optimizer result
	Optimize(ctx context.Context, req models.OptimizationRequest) (*models.OptimizationResult, error)
}
