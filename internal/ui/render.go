package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/marine-dashboard/internal/models"
)

// minWideWidth is the terminal width needed to lay all cards in one row
const minWideWidth = 4 * (cardWidth + 3)

// renderCards lays out one card per metric, in a single row when the
// terminal is wide enough and a 2x2 grid otherwise
func (m Model) renderCards() string {
	cards := make([]string, 0, len(models.AllMetrics))
	for _, id := range models.AllMetrics {
		cards = append(cards, m.renderCard(id))
	}

	if m.width >= minWideWidth {
		return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1])
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, cards[2], cards[3])
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

// renderCard renders a single metric card
func (m Model) renderCard(id models.MetricID) string {
	lines := []string{cardTitleStyle.Render(strings.ToUpper(id.Title()))}

	snapshot, ok := m.metrics[id]
	if !ok {
		lines = append(lines,
			mutedStyle.Render("--"),
			mutedStyle.Render(m.spinner.View()+" waiting"),
		)
		return cardStyle.Render(strings.Join(lines, "\n"))
	}

	label := categoryStyle(snapshot.Category).Render(categoryLabel(snapshot.Category))
	if snapshot.Source != "" {
		label += " " + liveStyle.Render("Live")
	}

	lines = append(lines,
		metricValueStyle(id, snapshot.Category).Render(snapshot.DisplayText),
		label,
	)
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// categoryLabel turns ALL_CLEAR into "All Clear"
func categoryLabel(c models.Category) string {
	words := strings.Split(strings.ToLower(string(c)), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
