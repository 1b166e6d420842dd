package weather

import (
	"strings"
	"time"
)

// Condition is the normalized weather-condition category every provider code maps into.
type Condition string

const (
	ConditionClear        Condition = "Clear"
	ConditionClouds       Condition = "Clouds"
	ConditionRain         Condition = "Rain"
	ConditionSnow         Condition = "Snow"
	ConditionThunderstorm Condition = "Thunderstorm"
	ConditionDrizzle      Condition = "Drizzle"
	ConditionMist         Condition = "Mist"
	ConditionFog          Condition = "Fog"
)

// Coord is a geographic coordinate pair in decimal degrees.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// WeatherRecord is the normalized "current conditions" record returned by a
// lookup by city name or by coordinates. Temp is always Celsius.
type WeatherRecord struct {
	City        string    `json:"city"`
	Country     string    `json:"country,omitempty"`
	Coord       *Coord    `json:"coord,omitempty"`
	Temp        float64   `json:"temp"`
	Condition   Condition `json:"condition"`
	Description string    `json:"description"`
	Humidity    *int      `json:"humidity,omitempty"` // percent
	Wind        *float64  `json:"wind,omitempty"`     // km/h
	Image       string    `json:"image,omitempty"`
}

// WithImage returns a copy of the record with the image URL replaced.
func (r WeatherRecord) WithImage(url string) WeatherRecord {
	r.Image = url
	return r
}

// Location identifies a place picked by the user, either typed or chosen from
// a suggestion list. Lat/Lon are nil when only the name is known.
type Location struct {
	Name    string   `json:"name"`
	Country string   `json:"country"`
	State   string   `json:"state,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Key returns a canonical key used to de-duplicate places by name and region.
func (l Location) Key() string {
	return strings.ToLower(l.Name) + ":" + strings.ToLower(l.State)
}

// HasCoord reports whether both coordinates are known.
func (l Location) HasCoord() bool {
	return l.Lat != nil && l.Lon != nil
}

// Suggestion is one entry of a city autocomplete list.
type Suggestion struct {
	Location
	Full string `json:"full"`
}

// HourlySample is one hour of the extended forecast. Every field comes from
// the same index of the provider's parallel arrays; see ExtendedForecast.HourlySamples.
type HourlySample struct {
	Time       time.Time `json:"time"`
	Temp       float64   `json:"temp"`
	Code       int       `json:"code"`
	UV         *float64  `json:"uv,omitempty"`
	Pop        float64   `json:"pop"`
	Humidity   float64   `json:"humidity"`
	Wind       float64   `json:"wind"`
	Visibility *float64  `json:"visibility,omitempty"` // meters
	Pressure   *float64  `json:"pressure,omitempty"`   // hPa
}

// DailySample is one day of the extended forecast.
type DailySample struct {
	Time    time.Time `json:"time"`
	Max     float64   `json:"max"`
	Min     float64   `json:"min"`
	Code    int       `json:"code"`
	RainSum float64   `json:"rainSum"` // mm
}

// AirQuality holds the air quality reading for a coordinate. USAQI is nil
// when the provider returned no value.
type AirQuality struct {
	USAQI *int `json:"usAqi,omitempty"`
}
