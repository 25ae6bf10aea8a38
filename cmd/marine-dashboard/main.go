package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/marine-dashboard/internal/config"
	"github.com/ngmaloney/marine-dashboard/internal/dashboard"
	"github.com/ngmaloney/marine-dashboard/internal/logging"
	"github.com/ngmaloney/marine-dashboard/internal/openweather"
	"github.com/ngmaloney/marine-dashboard/internal/routeapi"
	"github.com/ngmaloney/marine-dashboard/internal/ui"
)

func main() {
	envFile := flag.String("env-file", "", "Path to a .env file (default: .env in the working directory, if present)")
	routeID := flag.Int("route", 0, "Route id to monitor (overrides ROUTE_ID)")
	headless := flag.Bool("headless", false, "Log metric updates to stderr instead of starting the terminal UI")
	once := flag.Bool("once", false, "Run a single refresh cycle, log the results and exit")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *routeID < 0 {
		fmt.Fprintln(os.Stderr, "Error: --route must be a positive route id")
		os.Exit(1)
	}
	if *routeID > 0 {
		cfg.RouteID = *routeID
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *headless || *once {
		err = runHeadless(ctx, cfg, *once)
	} else {
		err = runInteractive(ctx, cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// newRefresher wires the remote clients into a refresher writing to surface
func newRefresher(cfg *config.Config, surface dashboard.Surface, logger *logging.Logger) *dashboard.Refresher {
	backend := routeapi.NewClient(cfg.BackendURL(), cfg.RequestTimeout)

	opts := []dashboard.Option{dashboard.WithLogger(logger.SugaredLogger)}
	if cfg.OpenWeatherEnabled() {
		weather := openweather.NewClient(cfg.OpenWeatherURL, cfg.OpenWeatherAPIKey, cfg.RequestTimeout)
		opts = append(opts, dashboard.WithWindFallback(weather, cfg.Fallback.Latitude, cfg.Fallback.Longitude))
	} else {
		logger.Infow("wind fallback disabled", "reason", "OPENWEATHER_API_KEY not set")
	}

	logger.Infow("dashboard configured",
		"backend", backend.BaseURL(),
		"route_id", cfg.RouteID,
		"interval", cfg.UpdateInterval,
		"fallback", cfg.Fallback.Name,
	)

	return dashboard.NewRefresher(dashboard.Config{
		RouteID:           cfg.RouteID,
		UpdateInterval:    cfg.UpdateInterval,
		RequestTimeout:    cfg.RequestTimeout,
		SegmentDistanceNM: cfg.SegmentDistanceNM,
		Vessel:            cfg.Vessel(),
	}, dashboard.Clients{
		Forecast:  backend,
		Alerts:    backend,
		Optimizer: backend,
	}, surface, opts...)
}

func runHeadless(ctx context.Context, cfg *config.Config, once bool) error {
	logger := logging.New(cfg.LogLevel, os.Stderr)
	defer logger.Sync()

	refresher := newRefresher(cfg, dashboard.NewLogSurface(logger.SugaredLogger), logger)

	if once {
		refresher.RefreshAll(ctx)
		return nil
	}

	refresher.Start(ctx)
	<-ctx.Done()
	refresher.Stop()
	return nil
}

func runInteractive(ctx context.Context, cfg *config.Config) error {
	logger, closeLog, err := logging.NewFile(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	surface := ui.NewProgramSurface()
	refresher := newRefresher(cfg, surface, logger)

	model := ui.NewModel(ui.Header{
		RouteID:  cfg.RouteID,
		Backend:  cfg.BackendURL(),
		Fallback: fallbackLabel(cfg),
	}, refresher)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	surface.Attach(p)
	refresher.Start(ctx)

	_, err = p.Run()

	refresher.Stop()
	surface.Close()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func fallbackLabel(cfg *config.Config) string {
	if !cfg.OpenWeatherEnabled() {
		return ""
	}
	return cfg.Fallback.Name
}
