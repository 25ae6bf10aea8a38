package models

import (
	"errors"
	"fmt"
	"math"
)

// KnotsPerMeterPerSecond converts m/s to knots
const KnotsPerMeterPerSecond = 1.944

// ErrMissingField is returned when a response lacks a value a metric needs
var ErrMissingField = errors.New("response is missing a required field")

// Waves holds the wave state of one forecast sample
type Waves struct {
	HsM *float64 `json:"Hs_m"` // significant wave height, meters
	TpS float64  `json:"Tp_s"` // peak period, seconds
}

// ForecastTime is a single time sample of a segment forecast. Pointer fields
// stay nil when the backend omits them.
type ForecastTime struct {
	TimeISO     string   `json:"t_iso"`
	WindSpeedMs *float64 `json:"wind_speed_ms"`
	WindDeg     *float64 `json:"wind_deg"`
	Waves       Waves    `json:"waves"`
}

// WaveHeight returns the significant wave height of the sample
func (t ForecastTime) WaveHeight() (float64, error) {
	if t.Waves.HsM == nil {
		return 0, fmt.Errorf("%w: waves.Hs_m", ErrMissingField)
	}
	return *t.Waves.HsM, nil
}

// Wind returns the wind of the sample
func (t ForecastTime) Wind() (WindData, error) {
	if t.WindSpeedMs == nil {
		return WindData{}, fmt.Errorf("%w: wind_speed_ms", ErrMissingField)
	}
	if t.WindDeg == nil {
		return WindData{}, fmt.Errorf("%w: wind_deg", ErrMissingField)
	}
	return WindData{Speed: *t.WindSpeedMs, Deg: *t.WindDeg}, nil
}

// SegmentForecast is the time series attached to a route segment
type SegmentForecast struct {
	Times []ForecastTime `json:"times"`
}

// ForecastSegment is one segment of a planned route with its forecast
type ForecastSegment struct {
	SegmentID int             `json:"segment_id"`
	Lat       float64         `json:"lat"`
	Lon       float64         `json:"lon"`
	Forecast  SegmentForecast `json:"forecast"`
}

// Current returns the first time sample, if any
func (s *ForecastSegment) Current() (ForecastTime, bool) {
	if len(s.Forecast.Times) == 0 {
		return ForecastTime{}, false
	}
	return s.Forecast.Times[0], true
}

// WindData represents wind conditions as reported by a current-weather provider
type WindData struct {
	Speed float64 `json:"speed"` // m/s
	Deg   float64 `json:"deg"`
}

// WeatherSnapshot represents current weather at a single coordinate
type WeatherSnapshot struct {
	Wind WindData `json:"wind"`
}

// compassPoints is the ordered 16-point compass rose
var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE",
	"E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW",
	"W", "WNW", "NW", "NNW",
}

// CompassDirection maps degrees to a 16-point compass direction.
// Halves round up, and the index wraps so 360 maps back to N.
func CompassDirection(deg float64) string {
	idx := int(math.Floor(deg/22.5+0.5)) % len(compassPoints)
	if idx < 0 {
		idx += len(compassPoints)
	}
	return compassPoints[idx]
}

// Float64 returns a pointer to v
func Float64(v float64) *float64 {
	return &v
}

// MsToKnots converts a speed in m/s to knots
func MsToKnots(ms float64) float64 {
	return ms * KnotsPerMeterPerSecond
}
