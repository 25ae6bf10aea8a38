package models

// MetricID identifies one dashboard metric
type MetricID string

const (
	MetricWaveHeight  MetricID = "wave_height"
	MetricWindSpeed   MetricID = "wind_speed"
	MetricFuelSavings MetricID = "fuel_savings"
	MetricAlertCount  MetricID = "alert_count"
)

// AllMetrics lists the metrics in display order
var AllMetrics = []MetricID{
	MetricWaveHeight,
	MetricWindSpeed,
	MetricFuelSavings,
	MetricAlertCount,
}

// Title returns the card heading for a metric
func (id MetricID) Title() string {
	switch id {
	case MetricWaveHeight:
		return "Wave Height"
	case MetricWindSpeed:
		return "Wind Speed"
	case MetricFuelSavings:
		return "Fuel Savings"
	case MetricAlertCount:
		return "Active Alerts"
	default:
		return string(id)
	}
}

// Category is the display bucket a metric value falls into
type Category string

const (
	// Wave height
	CategoryCalm     Category = "CALM"
	CategoryModerate Category = "MODERATE" // shared by wave height and wind speed
	CategoryHigh     Category = "HIGH"

	// Wind speed
	CategoryLight  Category = "LIGHT"
	CategoryStrong Category = "STRONG"

	// Fuel savings
	CategoryExcellent Category = "EXCELLENT"
	CategoryGood      Category = "GOOD"
	CategoryPoor      Category = "POOR"

	// Alert count
	CategoryAllClear Category = "ALL_CLEAR"
	CategoryCritical Category = "CRITICAL"
	CategoryActive   Category = "ACTIVE"
)

// Tone groups categories into the three display severities
type Tone int

const (
	ToneGood Tone = iota
	ToneCaution
	ToneBad
)

// Tone returns the display severity of a category
func (c Category) Tone() Tone {
	switch c {
	case CategoryCalm, CategoryLight, CategoryExcellent, CategoryAllClear:
		return ToneGood
	case CategoryModerate, CategoryGood, CategoryActive:
		return ToneCaution
	default:
		return ToneBad
	}
}

// MetricSnapshot is the derived display state of one metric for one refresh.
// It carries no timestamps so identical inputs yield identical snapshots.
type MetricSnapshot struct {
	ID          MetricID
	DisplayText string
	Category    Category
	// Source names the fallback provider that produced the value. Empty when
	// the value came from the route backend.
	Source string
}
