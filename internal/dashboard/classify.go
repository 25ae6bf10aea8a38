package dashboard

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ngmaloney/marine-dashboard/internal/models"
)

// Wave height thresholds in meters
const (
	waveCalmBelow     = 2.0
	waveModerateBelow = 3.5
)

// Wind speed thresholds in m/s
const (
	windLightBelow    = 5.0
	windModerateBelow = 15.0
)

// Fuel savings thresholds in percent
const (
	fuelExcellentAbove = 10.0
	fuelGoodAbove      = 5.0
)

// ClassifyWaveHeight buckets a significant wave height and formats it
func ClassifyWaveHeight(hsM float64) models.MetricSnapshot {
	category := models.CategoryHigh
	switch {
	case hsM < waveCalmBelow:
		category = models.CategoryCalm
	case hsM < waveModerateBelow:
		category = models.CategoryModerate
	}

	return models.MetricSnapshot{
		ID:          models.MetricWaveHeight,
		DisplayText: fmt.Sprintf("%.1fm", hsM),
		Category:    category,
	}
}

// ClassifyWindSpeed buckets a wind speed in m/s. The display text is in
// knots with the compass direction appended.
func ClassifyWindSpeed(speedMs, deg float64) models.MetricSnapshot {
	category := models.CategoryStrong
	switch {
	case speedMs < windLightBelow:
		category = models.CategoryLight
	case speedMs < windModerateBelow:
		category = models.CategoryModerate
	}

	return models.MetricSnapshot{
		ID:          models.MetricWindSpeed,
		DisplayText: fmt.Sprintf("%.1f kts %s", models.MsToKnots(speedMs), models.CompassDirection(deg)),
		Category:    category,
	}
}

// ClassifyFuelSavings buckets an optimization savings percentage
func ClassifyFuelSavings(pct float64) models.MetricSnapshot {
	category := models.CategoryPoor
	switch {
	case pct > fuelExcellentAbove:
		category = models.CategoryExcellent
	case pct > fuelGoodAbove:
		category = models.CategoryGood
	}

	return models.MetricSnapshot{
		ID:          models.MetricFuelSavings,
		DisplayText: fmt.Sprintf("%.1f%%", pct),
		Category:    category,
	}
}

// ClassifyAlerts counts the alerts active at now. When any of them is HIGH
// the display shows only the HIGH count.
func ClassifyAlerts(alerts []models.Alert, now time.Time) models.MetricSnapshot {
	active := models.ActiveAlerts(alerts, now)

	high := 0
	for _, a := range active {
		if a.Severity == models.SeverityHigh {
			high++
		}
	}

	snapshot := models.MetricSnapshot{ID: models.MetricAlertCount}
	switch {
	case len(active) == 0:
		snapshot.DisplayText = "0"
		snapshot.Category = models.CategoryAllClear
	case high > 0:
		snapshot.DisplayText = strconv.Itoa(high)
		snapshot.Category = models.CategoryCritical
	default:
		snapshot.DisplayText = strconv.Itoa(len(active))
		snapshot.Category = models.CategoryActive
	}
	return snapshot
}
