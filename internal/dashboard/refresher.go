// Package dashboard holds the metrics refresher: it polls the routing
// backend on a fixed interval, classifies each metric and pushes the result
// to a Surface. A failing metric never blocks or clears the others.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ngmaloney/marine-dashboard/internal/models"
	"github.com/ngmaloney/marine-dashboard/internal/openweather"
	"github.com/ngmaloney/marine-dashboard/internal/routeapi"
)

// Defaults used when Config leaves a field zero
const (
	DefaultUpdateInterval    = 30 * time.Second
	DefaultRequestTimeout    = 10 * time.Second
	DefaultSegmentDistanceNM = 50.0
	DefaultVesselName        = "DemoVessel"
	DefaultVesselSpeedKn     = 12.0
)

var (
	// ErrNoSegments is returned when the forecast has no segments
	ErrNoSegments = errors.New("forecast has no segments")
	// ErrNoSamples is returned when the first segment has no time samples
	ErrNoSamples = errors.New("forecast segment has no time samples")
)

// Config controls what the refresher polls and how often
type Config struct {
	RouteID           int
	UpdateInterval    time.Duration
	RequestTimeout    time.Duration
	SegmentDistanceNM float64
	Vessel            models.VesselProfile
}

func (c *Config) applyDefaults() {
	if c.UpdateInterval <= 0 {
		c.UpdateInterval = DefaultUpdateInterval
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.SegmentDistanceNM <= 0 {
		c.SegmentDistanceNM = DefaultSegmentDistanceNM
	}
	if c.Vessel.Name == "" {
		c.Vessel.Name = DefaultVesselName
	}
	if c.Vessel.BaseSpeedKn <= 0 {
		c.Vessel.BaseSpeedKn = DefaultVesselSpeedKn
	}
}

// Clients bundles the remote services the refresher reads from
type Clients struct {
	Forecast  routeapi.ForecastClient
	Alerts    routeapi.AlertClient
	Optimizer routeapi.OptimizationClient
}

// Option customizes a Refresher
type Option func(*Refresher)

// WithLogger sets the logger
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(r *Refresher) { r.logger = logger }
}

// WithClock replaces time.Now for alert window filtering
func WithClock(now func() time.Time) Option {
	return func(r *Refresher) { r.now = now }
}

// WithWindFallback adds a current-weather query at lat/lon, tried after the
// route forecast when the forecast cannot supply wind
func WithWindFallback(client openweather.WeatherClient, lat, lon float64) Option {
	return func(r *Refresher) {
		r.windFallbacks = append(r.windFallbacks, &WeatherWindProvider{Client: client, Lat: lat, Lon: lon})
	}
}

// Refresher periodically refreshes the four dashboard metrics.
//
// Cycles run on a single goroutine, so a slow cycle delays the next tick
// instead of overlapping it.
type Refresher struct {
	cfg       Config
	forecast  routeapi.ForecastClient
	alerts    routeapi.AlertClient
	optimizer routeapi.OptimizationClient
	surface   Surface
	logger    *zap.SugaredLogger
	now       func() time.Time

	windFallbacks []WindProvider
	wind          *WindSource

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewRefresher creates a refresher. It does not poll until Start is called.
func NewRefresher(cfg Config, clients Clients, surface Surface, opts ...Option) *Refresher {
	cfg.applyDefaults()

	r := &Refresher{
		cfg:       cfg,
		forecast:  clients.Forecast,
		alerts:    clients.Alerts,
		optimizer: clients.Optimizer,
		surface:   surface,
		logger:    zap.NewNop().Sugar(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	providers := []WindProvider{&RouteWindProvider{Client: r.forecast, RouteID: cfg.RouteID}}
	r.wind = NewWindSource(cfg.RequestTimeout, append(providers, r.windFallbacks...)...)
	r.logger = r.logger.With("route_id", cfg.RouteID)
	return r
}

// Start runs one cycle immediately and then one every UpdateInterval until
// Stop is called or ctx is done. Calling Start while running does nothing.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stop != nil {
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	r.stop, r.done = stop, done

	go r.run(ctx, stop, done)
}

// Stop cancels future cycles and waits for an in-flight cycle to finish.
// No surface update happens after Stop returns.
func (r *Refresher) Stop() {
	r.mu.Lock()
	stop, done := r.stop, r.done
	r.stop, r.done = nil, nil
	r.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Running reports whether the polling loop is active
func (r *Refresher) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop != nil
}

func (r *Refresher) run(ctx context.Context, stop, done chan struct{}) {
	defer func() {
		r.mu.Lock()
		if r.done == done {
			r.stop, r.done = nil, nil
		}
		r.mu.Unlock()
		close(done)
	}()

	r.logger.Infow("refresher started", "interval", r.cfg.UpdateInterval)
	r.RefreshAll(ctx)

	ticker := time.NewTicker(r.cfg.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Infow("refresher stopped", "reason", ctx.Err())
			return
		case <-stop:
			r.logger.Infow("refresher stopped", "reason", "stop requested")
			return
		case <-ticker.C:
			// Stop may race with the tick; never begin a cycle after it.
			select {
			case <-stop:
				r.logger.Infow("refresher stopped", "reason", "stop requested")
				return
			default:
			}
			r.RefreshAll(ctx)
		}
	}
}

// RefreshAll refreshes every metric concurrently and returns once all of
// them have settled. Individual failures are logged, never returned.
func (r *Refresher) RefreshAll(ctx context.Context) {
	cycleID := uuid.NewString()
	logger := r.logger.With("cycle_id", cycleID)
	started := time.Now()

	var g errgroup.Group
	for _, id := range models.AllMetrics {
		g.Go(func() error {
			r.refresh(ctx, logger, id)
			return nil
		})
	}
	_ = g.Wait()

	logger.Debugw("refresh cycle complete", "elapsed", time.Since(started))
}

// RefreshWaveHeight refreshes the wave height metric
func (r *Refresher) RefreshWaveHeight(ctx context.Context) {
	r.refresh(ctx, r.logger, models.MetricWaveHeight)
}

// RefreshWindSpeed refreshes the wind speed metric
func (r *Refresher) RefreshWindSpeed(ctx context.Context) {
	r.refresh(ctx, r.logger, models.MetricWindSpeed)
}

// RefreshFuelSavings refreshes the fuel savings metric
func (r *Refresher) RefreshFuelSavings(ctx context.Context) {
	r.refresh(ctx, r.logger, models.MetricFuelSavings)
}

// RefreshAlertCount refreshes the active alert metric
func (r *Refresher) RefreshAlertCount(ctx context.Context) {
	r.refresh(ctx, r.logger, models.MetricAlertCount)
}

// refresh computes one metric and hands it to the surface. On any failure the
// surface is left untouched.
func (r *Refresher) refresh(ctx context.Context, logger *zap.SugaredLogger, id models.MetricID) {
	logger = logger.With("metric", string(id))

	defer func() {
		if p := recover(); p != nil {
			logger.Errorw("metric refresh panicked", "panic", p)
		}
	}()

	snapshot, err := r.compute(ctx, logger, id)
	if err != nil {
		logger.Warnw("metric refresh failed", "err", err)
		return
	}

	r.publish(snapshot)
}

func (r *Refresher) publish(snapshot models.MetricSnapshot) {
	if s, ok := r.surface.(SnapshotSurface); ok {
		s.Publish(snapshot)
		return
	}
	r.surface.SetMetric(snapshot.ID, snapshot.DisplayText, snapshot.Category)
}

func (r *Refresher) compute(ctx context.Context, logger *zap.SugaredLogger, id models.MetricID) (models.MetricSnapshot, error) {
	switch id {
	case models.MetricWaveHeight:
		return r.waveHeight(ctx)
	case models.MetricWindSpeed:
		return r.windSpeed(ctx, logger)
	case models.MetricFuelSavings:
		return r.fuelSavings(ctx)
	case models.MetricAlertCount:
		return r.alertCount(ctx)
	default:
		return models.MetricSnapshot{}, fmt.Errorf("unknown metric %q", id)
	}
}

func (r *Refresher) waveHeight(ctx context.Context) (models.MetricSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.RequestTimeout)
	defer cancel()

	sample, err := currentSample(ctx, r.forecast, r.cfg.RouteID)
	if err != nil {
		return models.MetricSnapshot{}, err
	}
	hs, err := sample.WaveHeight()
	if err != nil {
		return models.MetricSnapshot{}, err
	}
	return ClassifyWaveHeight(hs), nil
}

func (r *Refresher) windSpeed(ctx context.Context, logger *zap.SugaredLogger) (models.MetricSnapshot, error) {
	wind, source, err := r.wind.Fetch(ctx, logger)
	if err != nil {
		return models.MetricSnapshot{}, err
	}
	logger.Debugw("wind resolved", "source", source)

	snapshot := ClassifyWindSpeed(wind.Speed, wind.Deg)
	if source != SourceRouteForecast {
		snapshot.Source = source
	}
	return snapshot, nil
}

func (r *Refresher) fuelSavings(ctx context.Context) (models.MetricSnapshot, error) {
	forecastCtx, cancel := context.WithTimeout(ctx, r.cfg.RequestTimeout)
	segments, err := r.forecast.GetRouteForecast(forecastCtx, r.cfg.RouteID)
	cancel()
	if err != nil {
		return models.MetricSnapshot{}, err
	}
	if len(segments) == 0 {
		return models.MetricSnapshot{}, ErrNoSegments
	}

	req := models.NewOptimizationRequest(segments, r.cfg.SegmentDistanceNM, r.cfg.Vessel)

	optimizeCtx, cancel := context.WithTimeout(ctx, r.cfg.RequestTimeout)
	defer cancel()

	result, err := r.optimizer.Optimize(optimizeCtx, req)
	if err != nil {
		return models.MetricSnapshot{}, err
	}
	savings, err := result.Savings()
	if err != nil {
		return models.MetricSnapshot{}, err
	}
	return ClassifyFuelSavings(savings), nil
}

func (r *Refresher) alertCount(ctx context.Context) (models.MetricSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.RequestTimeout)
	defer cancel()

	alerts, err := r.alerts.GetAlerts(ctx, r.cfg.RouteID)
	if err != nil {
		return models.MetricSnapshot{}, err
	}
	return ClassifyAlerts(alerts, r.now()), nil
}

// currentSample returns the first time sample of the first segment
func currentSample(ctx context.Context, client routeapi.ForecastClient, routeID int) (models.ForecastTime, error) {
	segments, err := client.GetRouteForecast(ctx, routeID)
	if err != nil {
		return models.ForecastTime{}, err
	}
	if len(segments) == 0 {
		return models.ForecastTime{}, ErrNoSegments
	}
	sample, ok := segments[0].Current()
	if !ok {
		return models.ForecastTime{}, ErrNoSamples
	}
	return sample, nil
}
