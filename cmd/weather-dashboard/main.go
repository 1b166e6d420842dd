package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/time/rate"

	httpapi "github.com/i474232898/weather-dashboard/internal/api/http"
	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/i18n"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	lg := cfg.NewLogger()
	slog.SetDefault(lg)

	viewer, err := cfg.ViewerLocation()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	translator := i18n.NewTranslator(cfg.App.Language, i18n.ParseUnits(cfg.App.Units))

	kv, err := newStore(cfg.App.DataDir)
	if err != nil {
		log.Fatalf("failed to open data dir: %v", err)
	}

	zones, err := newZones(cfg.App.TimezoneMode, viewer)
	if err != nil {
		log.Fatalf("failed to set up time zones: %v", err)
	}

	d := dashboard.New(newProviders(cfg, translator, lg), translator, kv, lg, dashboard.WithZones(zones))

	sched := scheduler.New(d, cfg.App.FavoritesRefreshInterval, 30*time.Second, lg)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp("weather-dashboard")
	app.Use(logger.New())
	app.Use(recover.New())
	httpapi.RegisterRoutes(app, d, translator, lg)

	go func() {
		if err := app.Listen(cfg.GetServerAddr()); err != nil {
			lg.Error("fiber server stopped", "error", err)
		}
	}()
	lg.Info("server started", "addr", cfg.GetServerAddr(), "language", translator.Language(), "timezoneMode", cfg.App.TimezoneMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		lg.Error("error during shutdown", "error", err)
	}
}

func newStore(dir string) (store.KeyValue, error) {
	if dir == "" {
		return store.NewMemoryStore(), nil
	}
	return store.NewFileStore(dir)
}

func newZones(mode string, viewer *time.Location) (dashboard.ZoneResolver, error) {
	if mode == "location" {
		zones, err := dashboard.NewCoordinateZones(viewer)
		if err != nil {
			return nil, err
		}
		return zones, nil
	}
	return dashboard.FixedZone{Loc: viewer}, nil
}

func newProviders(cfg *config.Config, translator *i18n.Translator, lg *slog.Logger) dashboard.Providers {
	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}
	httpCfg := providers.HTTPClientConfig{
		Client:  httpClient,
		Backoff: providers.DefaultBackoff(cfg.HTTP.MaxRetries),
	}

	nominatimCfg := httpCfg
	nominatimCfg.Limiter = rate.NewLimiter(rate.Limit(cfg.Providers.NominatimRPS), 1)

	// Unsplash's demo tier allows 50 requests an hour.
	unsplashCfg := httpCfg
	unsplashCfg.Limiter = rate.NewLimiter(rate.Every(time.Hour/50), 5)

	regions := []providers.RegionStrategy{providers.NewNominatimRegion(nominatimCfg)}
	if cfg.Providers.GoogleGeocoderAPIKey != "" {
		regions = append(regions, providers.NewGoogleRegion(cfg.Providers.GoogleGeocoderAPIKey))
	}

	var images []providers.ImageSource
	if cfg.Providers.UnsplashAccessKey != "" {
		images = append(images, providers.NewUnsplashSource(unsplashCfg, cfg.Providers.UnsplashAccessKey))
	}
	images = append(images, providers.NewWikipediaSource(httpCfg))

	if cfg.Providers.OpenWeatherAPIKey == "" {
		lg.Warn("openweather api key is not configured; searches will fail")
	}
	openMeteo := providers.NewOpenMeteoProvider(httpCfg, translator.Language)

	return dashboard.Providers{
		Records:    providers.NewOpenWeatherProvider(httpCfg, cfg.Providers.OpenWeatherAPIKey),
		Forecasts:  openMeteo,
		AirQuality: openMeteo,
		Regions:    providers.NewRegionChain(lg, regions...),
		Images:     providers.NewImageChain(lg, images...),
		Suggester:  openMeteo,
	}
}
