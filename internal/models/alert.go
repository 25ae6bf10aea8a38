package models

import (
	"strings"
	"time"
)

// AlertSeverity represents the severity level of a route alert
type AlertSeverity string

const (
	SeverityLow    AlertSeverity = "LOW"
	SeverityMedium AlertSeverity = "MEDIUM"
	SeverityHigh   AlertSeverity = "HIGH"
)

// ActiveWindow is how far ahead an alert still counts as active
const ActiveWindow = 24 * time.Hour

// Alert represents a routing alert issued by the backend for a route
type Alert struct {
	TimeISO   string        `json:"time_iso"`
	Severity  AlertSeverity `json:"severity"`
	Type      string        `json:"type,omitempty"`    // e.g., "weather", "navigation"
	Message   string        `json:"message,omitempty"`
	SegmentID int           `json:"segment_id,omitempty"`
}

// Time parses the alert timestamp. Timestamps without a zone are read as UTC.
func (a *Alert) Time() (time.Time, bool) {
	s := strings.TrimSpace(a.TimeISO)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02T15:04:05.999999999", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// IsActiveAt reports whether the alert falls within [now, now+24h].
// Alerts with an unreadable timestamp are never active.
func (a *Alert) IsActiveAt(now time.Time) bool {
	t, ok := a.Time()
	if !ok {
		return false
	}
	return !t.Before(now) && !t.After(now.Add(ActiveWindow))
}

// ActiveAlerts filters alerts down to those active at now
func ActiveAlerts(alerts []Alert, now time.Time) []Alert {
	active := make([]Alert, 0, len(alerts))
	for _, alert := range alerts {
		if alert.IsActiveAt(now) {
			active = append(active, alert)
		}
	}
	return active
}
