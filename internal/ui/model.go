package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ngmaloney/marine-dashboard/internal/models"
)

// manualRefreshTimeout bounds a refresh triggered from the keyboard
const manualRefreshTimeout = time.Minute

// Refresher runs one refresh cycle on demand
type Refresher interface {
	RefreshAll(ctx context.Context)
}

// Header describes what the dashboard is watching
type Header struct {
	RouteID  int
	Backend  string
	Fallback string
}

// Model represents the dashboard state
type Model struct {
	width  int
	height int

	header    Header
	refresher Refresher

	// Data
	metrics     map[models.MetricID]models.MetricSnapshot
	lastUpdated time.Time

	refreshing bool

	spinner spinner.Model
	keys    keyMap
	help    help.Model
}

// NewModel creates a new dashboard model. refresher may be nil, in which
// case the refresh key does nothing.
func NewModel(header Header, refresher Refresher) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		header:    header,
		refresher: refresher,
		metrics:   make(map[models.MetricID]models.MetricSnapshot, len(models.AllMetrics)),
		spinner:   s,
		keys:      defaultKeyMap(),
		help:      help.New(),
	}
}

// SetSnapshot sets a metric directly, used before the program starts
func (m *Model) SetSnapshot(s models.MetricSnapshot) {
	m.metrics[s.ID] = s
	m.lastUpdated = time.Now()
}

// Snapshot returns the displayed value of a metric
func (m Model) Snapshot(id models.MetricID) (models.MetricSnapshot, bool) {
	s, ok := m.metrics[id]
	return s, ok
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case metricUpdatedMsg:
		m.metrics[msg.snapshot.ID] = msg.snapshot
		m.lastUpdated = time.Now()
		return m, nil

	case refreshDoneMsg:
		m.refreshing = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if m.refresher == nil || m.refreshing {
				return m, nil
			}
			m.refreshing = true
			return m, refreshNow(m.refresher)
		}
	}

	return m, nil
}

// refreshNow runs a full refresh cycle outside the regular schedule
func refreshNow(r Refresher) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), manualRefreshTimeout)
		defer cancel()

		r.RefreshAll(ctx)
		return refreshDoneMsg{}
	}
}

// loading reports whether any metric has yet to arrive
func (m Model) loading() bool {
	return len(m.metrics) < len(models.AllMetrics)
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	title := titleStyle.Render("⚓ Marine Route Dashboard")
	sections = append(sections, title, mutedStyle.Render(m.headerLine()), "")

	sections = append(sections, m.renderCards())

	status := m.statusLine()
	if status != "" {
		sections = append(sections, status)
	}

	sections = append(sections, helpStyle.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerLine() string {
	line := fmt.Sprintf("Route %d", m.header.RouteID)
	if m.header.Backend != "" {
		line += " • " + m.header.Backend
	}
	if m.header.Fallback != "" {
		line += " • wind fallback: " + m.header.Fallback
	}
	return line
}

func (m Model) statusLine() string {
	switch {
	case m.refreshing:
		return fmt.Sprintf("%s Refreshing...", m.spinner.View())
	case m.loading() && m.lastUpdated.IsZero():
		return fmt.Sprintf("%s Fetching route data...", m.spinner.View())
	case !m.lastUpdated.IsZero():
		return mutedStyle.Render("Last update " + m.lastUpdated.Format("15:04:05"))
	}
	return ""
}
