package ui

import (
	"github.com/ngmaloney/marine-dashboard/internal/models"
)

// Message types for async operations

// metricUpdatedMsg carries a freshly classified metric into the program
type metricUpdatedMsg struct {
	snapshot models.MetricSnapshot
}

// refreshDoneMsg is sent when a manual refresh has settled
type refreshDoneMsg struct{}
