package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// RegionStrategy labels the administrative region around a coordinate.
type RegionStrategy interface {
	Name() string
	Region(ctx context.Context, lat, lon float64) (string, error)
}

// RegionChain implements weather.RegionResolver by trying each strategy in
// order until one returns a label.
type RegionChain struct {
	strategies []RegionStrategy
	logger     *slog.Logger
}

func NewRegionChain(logger *slog.Logger, strategies ...RegionStrategy) *RegionChain {
	return &RegionChain{
		strategies: strategies,
		logger:     logger.With("component", "region"),
	}
}

func (c *RegionChain) ResolveRegion(ctx context.Context, lat, lon float64) string {
	attempts := make([]attempt, 0, len(c.strategies))
	for _, s := range c.strategies {
		attempts = append(attempts, attempt{
			name: s.Name(),
			run: func(ctx context.Context) (string, error) {
				return s.Region(ctx, lat, lon)
			},
		})
	}
	return firstNonEmpty(ctx, c.logger, attempts)
}

// NominatimRegion reverse-geocodes with OpenStreetMap Nominatim. Its usage
// policy allows one request per second, enforced by the limiter in httpCfg.
type NominatimRegion struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewNominatimRegion(httpCfg HTTPClientConfig) *NominatimRegion {
	return &NominatimRegion{
		baseURL: "https://nominatim.openstreetmap.org/reverse",
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("nominatim"),
	}
}

func (n *NominatimRegion) Name() string { return "nominatim" }

func (n *NominatimRegion) Region(ctx context.Context, lat, lon float64) (string, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("format", "json")

	var payload struct {
		Address struct {
			County string `json:"county"`
			State  string `json:"state"`
		} `json:"address"`
	}
	if err := getJSON(ctx, n.httpCfg, n.circuit, getRequest(n.baseURL+"?"+values.Encode()), &payload); err != nil {
		return "", fmt.Errorf("nominatim: %w", err)
	}
	if payload.Address.State != "" {
		return payload.Address.State, nil
	}
	return payload.Address.County, nil
}

// GoogleRegion reverse-geocodes with the Google Geocoding API.
type GoogleRegion struct {
	apiKey  string
	reverse func(geocoder.Location) ([]geocoder.Address, error)
}

// NewGoogleRegion sets the geocoder package key, which is process-wide.
func NewGoogleRegion(apiKey string) *GoogleRegion {
	if apiKey != "" {
		geocoder.ApiKey = apiKey
	}
	return &GoogleRegion{apiKey: apiKey, reverse: geocoder.GeocodingReverse}
}

func (g *GoogleRegion) Name() string { return "google" }

func (g *GoogleRegion) Region(ctx context.Context, lat, lon float64) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("google geocoder: %w", errNoAPIKey)
	}
	type outcome struct {
		addresses []geocoder.Address
		err       error
	}
	done := make(chan outcome, 1)
	go func() {
		addresses, err := g.reverse(geocoder.Location{Latitude: lat, Longitude: lon})
		done <- outcome{addresses, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case o := <-done:
		if o.err != nil {
			return "", fmt.Errorf("google geocoder: %w", o.err)
		}
		for _, a := range o.addresses {
			if a.State != "" {
				return a.State, nil
			}
		}
		return "", nil
	}
}

var (
	_ weather.RegionResolver = (*RegionChain)(nil)
	_ RegionStrategy         = (*NominatimRegion)(nil)
	_ RegionStrategy         = (*GoogleRegion)(nil)
)
