package weather

import (
	"context"
	"errors"
)

// ErrNotFound is returned by record providers when a name or coordinate
// cannot be resolved to a location.
var ErrNotFound = errors.New("location not found")

// RecordProvider resolves current conditions by city name or coordinates.
type RecordProvider interface {
	LookupByName(ctx context.Context, name, lang string) (WeatherRecord, error)
	LookupByCoords(ctx context.Context, lat, lon float64, lang string) (WeatherRecord, error)
}

// ForecastProvider fetches the hourly and daily series for a coordinate.
type ForecastProvider interface {
	FetchExtendedForecast(ctx context.Context, lat, lon float64) (*ExtendedForecast, error)
}

// AirQualityProvider fetches the current air quality for a coordinate.
type AirQualityProvider interface {
	FetchAirQuality(ctx context.Context, lat, lon float64) (AirQuality, error)
}

// RegionResolver returns an administrative region label for a coordinate,
// or "" when none could be found. It never fails.
type RegionResolver interface {
	ResolveRegion(ctx context.Context, lat, lon float64) string
}

// ImageFinder returns a representative image URL for a place, or "" when
// none could be found. It never fails.
type ImageFinder interface {
	FetchImage(ctx context.Context, city, country, state string) string
}

// CitySuggester returns at most five autocomplete entries for a partial
// name, or an empty list on failure.
type CitySuggester interface {
	SuggestCities(ctx context.Context, partial string) []Suggestion
}
