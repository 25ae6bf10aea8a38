package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ngmaloney/marine-dashboard/internal/models"
)

var errBackendDown = errors.New("backend down")

type fakeForecast struct {
	mu       sync.Mutex
	segments []models.ForecastSegment
	err      error
	calls    atomic.Int32
}

func (f *fakeForecast) set(segments []models.ForecastSegment, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.segments, f.err = segments, err
}

func (f *fakeForecast) GetRouteForecast(ctx context.Context, routeID int) ([]models.ForecastSegment, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.ForecastSegment(nil), f.segments...), nil
}

// slowForecast blocks until the caller's context expires
type slowForecast struct{}

func (slowForecast) GetRouteForecast(ctx context.Context, routeID int) ([]models.ForecastSegment, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type fakeAlerts struct {
	mu     sync.Mutex
	alerts []models.Alert
	err    error
	calls  atomic.Int32

	// When gate is set, GetAlerts signals started and waits on gate.
	gate    chan struct{}
	started chan struct{}
}

func (f *fakeAlerts) set(alerts []models.Alert, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts, f.err = alerts, err
}

func (f *fakeAlerts) GetAlerts(ctx context.Context, routeID int) ([]models.Alert, error) {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case f.started <- struct{}{}:
		default:
		}
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Alert(nil), f.alerts...), nil
}

type fakeOptimizer struct {
	mu      sync.Mutex
	result  *models.OptimizationResult
	err     error
	lastReq models.OptimizationRequest
	calls   atomic.Int32
	panics  bool
}

func (f *fakeOptimizer) Optimize(ctx context.Context, req models.OptimizationRequest) (*models.OptimizationResult, error) {
	f.calls.Add(1)
	if f.panics {
		panic("optimizer exploded")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeOptimizer) request() models.OptimizationRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastReq
}

type fakeWeather struct {
	snapshot *models.WeatherSnapshot
	err      error
	calls    atomic.Int32
	lat, lon float64
}

func (f *fakeWeather) GetCurrentWeather(ctx context.Context, lat, lon float64) (*models.WeatherSnapshot, error) {
	f.calls.Add(1)
	f.lat, f.lon = lat, lon
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

// recordingSurface keeps the latest value per metric and counts writes
type recordingSurface struct {
	mu      sync.Mutex
	latest  map[models.MetricID]models.MetricSnapshot
	writes  map[models.MetricID]int
	history []models.MetricSnapshot
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{
		latest: make(map[models.MetricID]models.MetricSnapshot),
		writes: make(map[models.MetricID]int),
	}
}

func (s *recordingSurface) SetMetric(id models.MetricID, text string, category models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := models.MetricSnapshot{ID: id, DisplayText: text, Category: category}
	s.latest[id] = snap
	s.writes[id]++
	s.history = append(s.history, snap)
}

func (s *recordingSurface) get(id models.MetricID) (models.MetricSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.latest[id]
	return snap, ok
}

func (s *recordingSurface) writeCount(id models.MetricID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[id]
}

func (s *recordingSurface) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

func (s *recordingSurface) snapshots() map[models.MetricID]models.MetricSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[models.MetricID]models.MetricSnapshot, len(s.latest))
	for k, v := range s.latest {
		out[k] = v
	}
	return out
}

var testNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func testSegments() []models.ForecastSegment {
	f := models.Float64
	return []models.ForecastSegment{
		{
			SegmentID: 1, Lat: 19.0, Lon: 72.8,
			Forecast: models.SegmentForecast{Times: []models.ForecastTime{
				{TimeISO: "2025-09-01T12:00:00Z", WindSpeedMs: f(6.5), WindDeg: f(225), Waves: models.Waves{HsM: f(2.4), TpS: 8}},
				{TimeISO: "2025-09-01T15:00:00Z", WindSpeedMs: f(20), WindDeg: f(0), Waves: models.Waves{HsM: f(5), TpS: 9}},
			}},
		},
		{
			SegmentID: 2, Lat: 15.4, Lon: 73.8,
			Forecast: models.SegmentForecast{Times: []models.ForecastTime{
				{TimeISO: "2025-09-01T12:00:00Z", WindSpeedMs: f(9), WindDeg: f(240), Waves: models.Waves{HsM: f(3.1), TpS: 8}},
			}},
		},
	}
}

func testAlerts() []models.Alert {
	return []models.Alert{
		{TimeISO: "2025-09-01T14:00:00Z", Severity: models.SeverityHigh, Type: "weather", SegmentID: 2},
		{TimeISO: "2025-09-01T20:00:00Z", Severity: models.SeverityMedium},
		{TimeISO: "2025-09-03T08:00:00Z", Severity: models.SeverityLow},
	}
}
