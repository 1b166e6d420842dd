package providers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// OpenWeatherProvider resolves current conditions from OpenWeatherMap. It
// implements weather.RecordProvider.
type OpenWeatherProvider struct {
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(httpCfg HTTPClientConfig, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("openweather"),
	}
}

type openWeatherPayload struct {
	Name  string `json:"name"`
	Coord *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity *int    `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// LookupByName accepts "city" or "city,country".
func (p *OpenWeatherProvider) LookupByName(ctx context.Context, name, lang string) (weather.WeatherRecord, error) {
	values := url.Values{}
	values.Set("q", name)
	return p.lookup(ctx, values, lang)
}

func (p *OpenWeatherProvider) LookupByCoords(ctx context.Context, lat, lon float64, lang string) (weather.WeatherRecord, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return p.lookup(ctx, values, lang)
}

func (p *OpenWeatherProvider) lookup(ctx context.Context, values url.Values, lang string) (weather.WeatherRecord, error) {
	if p.apiKey == "" {
		return weather.WeatherRecord{}, fmt.Errorf("openweather: %w", errNoAPIKey)
	}
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	if lang != "" {
		values.Set("lang", lang)
	}

	var payload openWeatherPayload
	err := getJSON(ctx, p.httpCfg, p.circuit, getRequest(p.baseURL+"?"+values.Encode()), &payload)
	if errors.Is(err, errNotFound) {
		return weather.WeatherRecord{}, weather.ErrNotFound
	}
	if err != nil {
		return weather.WeatherRecord{}, fmt.Errorf("openweather: %w", err)
	}
	return payload.record(), nil
}

func (p openWeatherPayload) record() weather.WeatherRecord {
	r := weather.WeatherRecord{
		City:      p.Name,
		Country:   p.Sys.Country,
		Temp:      p.Main.Temp,
		Humidity:  p.Main.Humidity,
		Condition: weather.ConditionClear,
	}
	if p.Coord != nil {
		r.Coord = &weather.Coord{Lat: p.Coord.Lat, Lon: p.Coord.Lon}
	}
	if p.Wind != nil {
		// m/s to km/h
		kmh := p.Wind.Speed * 3.6
		r.Wind = &kmh
	}
	if len(p.Weather) > 0 {
		r.Condition = mapOpenWeatherCondition(p.Weather[0].Main)
		r.Description = p.Weather[0].Description
	}
	return r
}

func mapOpenWeatherCondition(main string) weather.Condition {
	switch main {
	case "Clear":
		return weather.ConditionClear
	case "Clouds":
		return weather.ConditionClouds
	case "Rain":
		return weather.ConditionRain
	case "Drizzle":
		return weather.ConditionDrizzle
	case "Snow":
		return weather.ConditionSnow
	case "Thunderstorm", "Squall", "Tornado":
		return weather.ConditionThunderstorm
	case "Mist", "Haze", "Smoke", "Dust", "Sand", "Ash":
		return weather.ConditionMist
	case "Fog":
		return weather.ConditionFog
	default:
		return weather.ConditionClear
	}
}

var _ weather.RecordProvider = (*OpenWeatherProvider)(nil)
