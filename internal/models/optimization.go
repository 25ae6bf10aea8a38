package models

import "fmt"

// RouteLeg is one segment entry of an optimization request
type RouteLeg struct {
	SegmentID int     `json:"segment_id"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	DistNM    float64 `json:"dist_nm"`
}

// VesselProfile describes the vessel submitted for optimization
type VesselProfile struct {
	Name        string  `json:"name"`
	BaseSpeedKn float64 `json:"base_speed_kn"`
}

// OptimizationRequest is the body of POST /optimize
type OptimizationRequest struct {
	Route       []RouteLeg     `json:"route"`
	Vessel      VesselProfile  `json:"vessel"`
	Constraints map[string]any `json:"constraints"`
}

// OptimizationResult is the optimizer response; only savings are consumed
type OptimizationResult struct {
	SavingsPct *float64 `json:"savings_pct" validate:"required"`
}

// Savings returns the savings percentage
func (r *OptimizationResult) Savings() (float64, error) {
	if r == nil || r.SavingsPct == nil {
		return 0, fmt.Errorf("%w: savings_pct", ErrMissingField)
	}
	return *r.SavingsPct, nil
}

// NewOptimizationRequest pairs every forecast segment with a fixed leg distance
func NewOptimizationRequest(segments []ForecastSegment, distNM float64, vessel VesselProfile) OptimizationRequest {
	route := make([]RouteLeg, 0, len(segments))
	for _, seg := range segments {
		route = append(route, RouteLeg{
			SegmentID: seg.SegmentID,
			Lat:       seg.Lat,
			Lon:       seg.Lon,
			DistNM:    distNM,
		})
	}
	return OptimizationRequest{
		Route:       route,
		Vessel:      vessel,
		Constraints: map[string]any{},
	}
}
