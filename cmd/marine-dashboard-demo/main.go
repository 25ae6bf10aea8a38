package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/marine-dashboard/internal/dashboard"
	"github.com/ngmaloney/marine-dashboard/internal/models"
	"github.com/ngmaloney/marine-dashboard/internal/ui"
)

// This demo shows the UI with mock data
func main() {
	m := ui.NewModel(ui.Header{
		RouteID:  1,
		Backend:  "demo data",
		Fallback: "Mumbai Port",
	}, nil)

	// Mock values run through the same classification as live data
	m.SetSnapshot(dashboard.ClassifyWaveHeight(2.35))
	m.SetSnapshot(dashboard.ClassifyWindSpeed(6.5, 225))
	m.SetSnapshot(dashboard.ClassifyFuelSavings(12.4))

	now := time.Now()
	alerts := []models.Alert{
		{TimeISO: now.Add(2 * time.Hour).Format(time.RFC3339), Severity: models.SeverityHigh, Type: "weather", Message: "Gale warning", SegmentID: 2},
		{TimeISO: now.Add(8 * time.Hour).Format(time.RFC3339), Severity: models.SeverityMedium, Type: "traffic", Message: "Congestion near port approach"},
		{TimeISO: now.Add(48 * time.Hour).Format(time.RFC3339), Severity: models.SeverityLow, Type: "weather", Message: "Swell building"},
	}
	m.SetSnapshot(dashboard.ClassifyAlerts(alerts, now))

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running demo: %v\n", err)
		os.Exit(1)
	}
}
