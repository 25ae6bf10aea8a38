package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/marine-dashboard/internal/models"
)

// sender is the part of *tea.Program the surface needs
type sender interface {
	Send(msg tea.Msg)
}

// ProgramSurface forwards metric updates into a running bubbletea program.
// Updates are dropped until Attach and after Close.
type ProgramSurface struct {
	mu      sync.RWMutex
	program sender
	closed  bool
}

// NewProgramSurface creates a detached surface
func NewProgramSurface() *ProgramSurface {
	return &ProgramSurface{}
}

// Attach binds the surface to a program
func (s *ProgramSurface) Attach(p sender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.program = p
}

// SetMetric implements dashboard.Surface
func (s *ProgramSurface) SetMetric(id models.MetricID, text string, category models.Category) {
	s.Publish(models.MetricSnapshot{ID: id, DisplayText: text, Category: category})
}

// Publish implements dashboard.SnapshotSurface
func (s *ProgramSurface) Publish(snapshot models.MetricSnapshot) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed || s.program == nil {
		return
	}
	s.program.Send(metricUpdatedMsg{snapshot: snapshot})
}

// Close detaches the surface from the program for good
func (s *ProgramSurface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.program = nil
}
