package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ngmaloney/marine-dashboard/internal/models"
)

func TestClassifyWaveHeight(t *testing.T) {
	tests := []struct {
		hs       float64
		text     string
		category models.Category
	}{
		{0, "0.0m", models.CategoryCalm},
		{1.99, "2.0m", models.CategoryCalm},
		{2.0, "2.0m", models.CategoryModerate},
		{3.49, "3.5m", models.CategoryModerate},
		{3.5, "3.5m", models.CategoryHigh},
		{6.2, "6.2m", models.CategoryHigh},
	}

	for _, tt := range tests {
		got := ClassifyWaveHeight(tt.hs)
		assert.Equal(t, models.MetricWaveHeight, got.ID)
		assert.Equal(t, tt.text, got.DisplayText, "hs=%v", tt.hs)
		assert.Equal(t, tt.category, got.Category, "hs=%v", tt.hs)
	}
}

func TestClassifyWindSpeed(t *testing.T) {
	tests := []struct {
		name     string
		speedMs  float64
		deg      float64
		text     string
		category models.Category
	}{
		{"calm northerly", 0, 0, "0.0 kts N", models.CategoryLight},
		{"just below moderate", 4.99, 90, "9.7 kts E", models.CategoryLight},
		{"moderate boundary", 5.0, 180, "9.7 kts S", models.CategoryModerate},
		{"route sample", 6.5, 225, "12.6 kts SW", models.CategoryModerate},
		{"just below strong", 14.99, 270, "29.1 kts W", models.CategoryModerate},
		{"strong boundary", 15.0, 315, "29.2 kts NW", models.CategoryStrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyWindSpeed(tt.speedMs, tt.deg)
			assert.Equal(t, models.MetricWindSpeed, got.ID)
			assert.Equal(t, tt.text, got.DisplayText)
			assert.Equal(t, tt.category, got.Category)
		})
	}
}

func TestClassifyWindSpeed_DirectionWraps(t *testing.T) {
	for _, deg := range []float64{0, 22.5, 100, 200, 348.74} {
		a := ClassifyWindSpeed(3, deg)
		b := ClassifyWindSpeed(3, deg+360)
		assert.Equal(t, a.DisplayText, b.DisplayText, "deg=%v", deg)
	}

	assert.Equal(t, "5.8 kts N", ClassifyWindSpeed(3, 360).DisplayText)
	assert.Equal(t, "5.8 kts N", ClassifyWindSpeed(3, 348.75).DisplayText)
}

func TestClassifyFuelSavings(t *testing.T) {
	tests := []struct {
		pct      float64
		text     string
		category models.Category
	}{
		{-2, "-2.0%", models.CategoryPoor},
		{5, "5.0%", models.CategoryPoor},
		{5.01, "5.0%", models.CategoryGood},
		{10, "10.0%", models.CategoryGood},
		{10.01, "10.0%", models.CategoryExcellent},
		{12.4, "12.4%", models.CategoryExcellent},
	}

	for _, tt := range tests {
		got := ClassifyFuelSavings(tt.pct)
		assert.Equal(t, models.MetricFuelSavings, got.ID)
		assert.Equal(t, tt.text, got.DisplayText, "pct=%v", tt.pct)
		assert.Equal(t, tt.category, got.Category, "pct=%v", tt.pct)
	}
}

func alertAt(t time.Time, severity models.AlertSeverity) models.Alert {
	return models.Alert{TimeISO: t.Format(time.RFC3339), Severity: severity}
}

func TestClassifyAlerts(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		alerts   []models.Alert
		text     string
		category models.Category
	}{
		{
			name:     "no alerts",
			alerts:   nil,
			text:     "0",
			category: models.CategoryAllClear,
		},
		{
			name: "only expired or distant alerts",
			alerts: []models.Alert{
				alertAt(now.Add(-time.Second), models.SeverityHigh),
				alertAt(now.Add(24*time.Hour+time.Second), models.SeverityHigh),
			},
			text:     "0",
			category: models.CategoryAllClear,
		},
		{
			name: "window bounds are inclusive",
			alerts: []models.Alert{
				alertAt(now, models.SeverityLow),
				alertAt(now.Add(24*time.Hour), models.SeverityMedium),
			},
			text:     "2",
			category: models.CategoryActive,
		},
		{
			name: "single high alert among others shows high count",
			alerts: []models.Alert{
				alertAt(now.Add(2*time.Hour), models.SeverityHigh),
				alertAt(now.Add(3*time.Hour), models.SeverityMedium),
				alertAt(now.Add(4*time.Hour), models.SeverityLow),
			},
			text:     "1",
			category: models.CategoryCritical,
		},
		{
			name: "expired high alert does not escalate",
			alerts: []models.Alert{
				alertAt(now.Add(-time.Hour), models.SeverityHigh),
				alertAt(now.Add(time.Hour), models.SeverityMedium),
			},
			text:     "1",
			category: models.CategoryActive,
		},
		{
			name: "unparsable time is ignored",
			alerts: []models.Alert{
				{TimeISO: "not a time", Severity: models.SeverityHigh},
				alertAt(now.Add(time.Hour), models.SeverityLow),
			},
			text:     "1",
			category: models.CategoryActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyAlerts(tt.alerts, now)
			assert.Equal(t, models.MetricAlertCount, got.ID)
			assert.Equal(t, tt.text, got.DisplayText)
			assert.Equal(t, tt.category, got.Category)
		})
	}
}
