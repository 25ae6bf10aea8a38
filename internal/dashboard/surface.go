package dashboard

import (
	"sync"

	"go.uber.org/zap"

	"github.com/ngmaloney/marine-dashboard/internal/models"
)

// Surface receives classified metric updates. Each call fully replaces the
// displayed value of one metric.
type Surface interface {
	SetMetric(id models.MetricID, text string, category models.Category)
}

// SnapshotSurface is a Surface that also shows which source produced a
// value. The refresher calls Publish instead of SetMetric when it is available.
type SnapshotSurface interface {
	Surface
	Publish(snapshot models.MetricSnapshot)
}

// LogSurface is a headless Surface that logs each metric change.
type LogSurface struct {
	logger *zap.SugaredLogger

	mu   sync.Mutex
	last map[models.MetricID]models.MetricSnapshot
}

// NewLogSurface creates a surface writing to logger
func NewLogSurface(logger *zap.SugaredLogger) *LogSurface {
	return &LogSurface{
		logger: logger,
		last:   make(map[models.MetricID]models.MetricSnapshot),
	}
}

// SetMetric records a value from the route backend
func (s *LogSurface) SetMetric(id models.MetricID, text string, category models.Category) {
	s.Publish(models.MetricSnapshot{ID: id, DisplayText: text, Category: category})
}

// Publish records the snapshot and logs it. Repeated identical values are
// logged at debug level only.
func (s *LogSurface) Publish(snapshot models.MetricSnapshot) {
	s.mu.Lock()
	prev, seen := s.last[snapshot.ID]
	s.last[snapshot.ID] = snapshot
	s.mu.Unlock()

	fields := []any{"metric", string(snapshot.ID), "value", snapshot.DisplayText, "category", string(snapshot.Category)}
	if snapshot.Source != "" {
		fields = append(fields, "source", snapshot.Source)
	}

	if seen && prev == snapshot {
		s.logger.Debugw("metric unchanged", fields...)
		return
	}
	s.logger.Infow("metric updated", fields...)
}

// Snapshot returns the last value set for a metric
func (s *LogSurface) Snapshot(id models.MetricID) (models.MetricSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.last[id]
	return snapshot, ok
}
