package providers

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	openMeteoHourly = "temperature_2m,weathercode,uv_index,precipitation_probability,relativehumidity_2m,visibility,surface_pressure,windspeed_10m"
	openMeteoDaily  = "temperature_2m_max,temperature_2m_min,weathercode,precipitation_sum"

	openMeteoHourLayout = "2006-01-02T15:04"
	forecastDays        = 7
	maxSuggestions      = 5
)

// OpenMeteoProvider implements weather.ForecastProvider,
// weather.AirQualityProvider and weather.CitySuggester on the Open-Meteo
// APIs, none of which need a key.
type OpenMeteoProvider struct {
	forecastURL   string
	airQualityURL string
	geocodingURL  string
	language      func() string
	httpCfg       HTTPClientConfig

	// One breaker per upstream host.
	forecastCircuit   *gobreaker.CircuitBreaker
	airQualityCircuit *gobreaker.CircuitBreaker
	geocodingCircuit  *gobreaker.CircuitBreaker
}

// NewOpenMeteoProvider builds the client. language returns the session
// language used for suggestion names; nil means English.
func NewOpenMeteoProvider(httpCfg HTTPClientConfig, language func() string) *OpenMeteoProvider {
	if language == nil {
		language = func() string { return "en" }
	}
	return &OpenMeteoProvider{
		forecastURL:   "https://api.open-meteo.com/v1/forecast",
		airQualityURL: "https://air-quality-api.open-meteo.com/v1/air-quality",
		geocodingURL:  "https://geocoding-api.open-meteo.com/v1/search",
		language:      language,
		httpCfg:       httpCfg,

		forecastCircuit:   newCircuitBreaker("openmeteo-forecast"),
		airQualityCircuit: newCircuitBreaker("openmeteo-air"),
		geocodingCircuit:  newCircuitBreaker("openmeteo-geocoding"),
	}
}

func coordValues(lat, lon float64) url.Values {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	return values
}

type openMeteoForecast struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Timezone         string  `json:"timezone"`
	UTCOffsetSeconds int     `json:"utc_offset_seconds"`
	Hourly           struct {
		Time                     []string   `json:"time"`
		Temperature              []*float64 `json:"temperature_2m"`
		WeatherCode              []*float64 `json:"weathercode"`
		UVIndex                  []*float64 `json:"uv_index"`
		PrecipitationProbability []*float64 `json:"precipitation_probability"`
		RelativeHumidity         []*float64 `json:"relativehumidity_2m"`
		Visibility               []*float64 `json:"visibility"`
		SurfacePressure          []*float64 `json:"surface_pressure"`
		WindSpeed                []*float64 `json:"windspeed_10m"`
	} `json:"hourly"`
	Daily struct {
		Time             []string   `json:"time"`
		TemperatureMax   []*float64 `json:"temperature_2m_max"`
		TemperatureMin   []*float64 `json:"temperature_2m_min"`
		WeatherCode      []*float64 `json:"weathercode"`
		PrecipitationSum []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

func (p *OpenMeteoProvider) FetchExtendedForecast(ctx context.Context, lat, lon float64) (*weather.ExtendedForecast, error) {
	values := coordValues(lat, lon)
	values.Set("hourly", openMeteoHourly)
	values.Set("daily", openMeteoDaily)
	values.Set("timezone", "auto")
	values.Set("forecast_days", strconv.Itoa(forecastDays))

	var payload openMeteoForecast
	if err := getJSON(ctx, p.httpCfg, p.forecastCircuit, getRequest(p.forecastURL+"?"+values.Encode()), &payload); err != nil {
		return nil, fmt.Errorf("openmeteo forecast: %w", err)
	}
	return payload.forecast()
}

func (p openMeteoForecast) forecast() (*weather.ExtendedForecast, error) {
	loc := p.location()

	hourly, err := parseTimes(p.Hourly.Time, openMeteoHourLayout, loc)
	if err != nil {
		return nil, fmt.Errorf("openmeteo forecast: hourly time: %w", err)
	}
	daily, err := parseTimes(p.Daily.Time, time.DateOnly, loc)
	if err != nil {
		return nil, fmt.Errorf("openmeteo forecast: daily time: %w", err)
	}

	return &weather.ExtendedForecast{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Timezone:  p.Timezone,
		Hourly: weather.HourlySeries{
			Time:                     hourly,
			Temperature:              p.Hourly.Temperature,
			WeatherCode:              p.Hourly.WeatherCode,
			UVIndex:                  p.Hourly.UVIndex,
			PrecipitationProbability: p.Hourly.PrecipitationProbability,
			RelativeHumidity:         p.Hourly.RelativeHumidity,
			Visibility:               p.Hourly.Visibility,
			SurfacePressure:          p.Hourly.SurfacePressure,
			WindSpeed:                p.Hourly.WindSpeed,
		},
		Daily: weather.DailySeries{
			Time:             daily,
			TemperatureMax:   p.Daily.TemperatureMax,
			TemperatureMin:   p.Daily.TemperatureMin,
			WeatherCode:      p.Daily.WeatherCode,
			PrecipitationSum: p.Daily.PrecipitationSum,
		},
	}, nil
}

// location is the zone the local timestamps are written in. utc_offset_seconds
// only holds the offset at the start of the forecast, so it is used only when
// the zone name is unknown.
func (p openMeteoForecast) location() *time.Location {
	if p.Timezone != "" {
		if loc, err := time.LoadLocation(p.Timezone); err == nil {
			return loc
		}
	}
	return time.FixedZone(p.Timezone, p.UTCOffsetSeconds)
}

func parseTimes(raw []string, layout string, loc *time.Location) ([]time.Time, error) {
	times := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, nil
}

func (p *OpenMeteoProvider) FetchAirQuality(ctx context.Context, lat, lon float64) (weather.AirQuality, error) {
	values := coordValues(lat, lon)
	values.Set("current", "us_aqi")

	var payload struct {
		Current struct {
			USAQI *float64 `json:"us_aqi"`
		} `json:"current"`
	}
	if err := getJSON(ctx, p.httpCfg, p.airQualityCircuit, getRequest(p.airQualityURL+"?"+values.Encode()), &payload); err != nil {
		return weather.AirQuality{}, fmt.Errorf("openmeteo air quality: %w", err)
	}

	var aq weather.AirQuality
	if v := payload.Current.USAQI; v != nil {
		aqi := int(math.Round(*v))
		aq.USAQI = &aqi
	}
	return aq, nil
}

// SuggestCities returns up to five places matching partial. Failures yield
// an empty list.
func (p *OpenMeteoProvider) SuggestCities(ctx context.Context, partial string) []weather.Suggestion {
	values := url.Values{}
	values.Set("name", partial)
	values.Set("count", strconv.Itoa(maxSuggestions*2))
	values.Set("language", p.language())
	values.Set("format", "json")

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Country   string  `json:"country"`
			Admin1    string  `json:"admin1"`
		} `json:"results"`
	}
	if err := getJSON(ctx, p.httpCfg, p.geocodingCircuit, getRequest(p.geocodingURL+"?"+values.Encode()), &payload); err != nil {
		return []weather.Suggestion{}
	}

	seen := make(map[string]bool, len(payload.Results))
	suggestions := make([]weather.Suggestion, 0, maxSuggestions)
	for _, r := range payload.Results {
		lat, lon := r.Latitude, r.Longitude
		loc := weather.Location{
			Name:    r.Name,
			Country: r.Country,
			State:   r.Admin1,
			Lat:     &lat,
			Lon:     &lon,
		}
		if seen[loc.Key()] {
			continue
		}
		seen[loc.Key()] = true

		suggestions = append(suggestions, weather.Suggestion{
			Location: loc,
			Full:     joinNonEmpty(", ", r.Name, r.Admin1, r.Country),
		})
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

var (
	_ weather.ForecastProvider   = (*OpenMeteoProvider)(nil)
	_ weather.AirQualityProvider = (*OpenMeteoProvider)(nil)
	_ weather.CitySuggester      = (*OpenMeteoProvider)(nil)
)
