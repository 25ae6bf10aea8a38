package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/marine-dashboard/internal/models"
)

var (
	// Color palette
	colorPrimary = lipgloss.Color("#00BFFF") // Deep sky blue
	colorDanger  = lipgloss.Color("#FF6B6B") // Red for alerts
	colorWarning = lipgloss.Color("#FFD93D") // Yellow for warnings
	colorSuccess = lipgloss.Color("#6BCF7F") // Green
	colorMuted   = lipgloss.Color("#6C757D") // Gray
	colorBorder  = lipgloss.Color("#4A90E2") // Border blue
	colorValue   = lipgloss.Color("#FFFFFF")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Metric cards
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2).
			MarginRight(1).
			Width(cardWidth)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorValue).
			Bold(true)

	// Help text style
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(1, 0)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Marks values read from a fallback source
	liveStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)
)

const cardWidth = 22

// toneColor maps a display tone to its palette color
func toneColor(t models.Tone) lipgloss.Color {
	switch t {
	case models.ToneGood:
		return colorSuccess
	case models.ToneCaution:
		return colorWarning
	default:
		return colorDanger
	}
}

// categoryStyle colors the category label of a card
func categoryStyle(c models.Category) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(toneColor(c.Tone())).
		Bold(true)
}

// metricValueStyle colors the value itself. Only fuel savings carries its
// category in the value color; the other cards keep a neutral value.
func metricValueStyle(id models.MetricID, c models.Category) lipgloss.Style {
	if id == models.MetricFuelSavings {
		return valueStyle.Foreground(toneColor(c.Tone()))
	}
	return valueStyle
}
