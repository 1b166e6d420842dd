package weather

import (
	"math"
	"time"
)

// HourlySeries holds the provider's hourly parallel arrays. A nil entry is a
// value the provider did not report for that hour; a nil slice is a variable
// the provider did not return at all.
type HourlySeries struct {
	Time                     []time.Time
	Temperature              []*float64
	WeatherCode              []*float64
	UVIndex                  []*float64
	PrecipitationProbability []*float64
	RelativeHumidity         []*float64
	Visibility               []*float64
	SurfacePressure          []*float64
	WindSpeed                []*float64
}

// DailySeries holds the provider's daily parallel arrays.
type DailySeries struct {
	Time             []time.Time
	TemperatureMax   []*float64
	TemperatureMin   []*float64
	WeatherCode      []*float64
	PrecipitationSum []*float64
}

// ExtendedForecast is the raw hourly and daily payload for one coordinate.
// It is kept for the lifetime of a search result so a day can be re-sliced
// without fetching again.
type ExtendedForecast struct {
	Latitude  float64
	Longitude float64
	Timezone  string
	Hourly    HourlySeries
	Daily     DailySeries
}

// HourlySamples transposes the hourly parallel arrays into samples. This is
// the only place hourly arrays are indexed.
func (f *ExtendedForecast) HourlySamples() []HourlySample {
	if f == nil {
		return nil
	}
	h := f.Hourly
	samples := make([]HourlySample, 0, len(h.Time))
	for i, t := range h.Time {
		samples = append(samples, HourlySample{
			Time:       t,
			Temp:       valueAt(h.Temperature, i),
			Code:       int(math.Round(valueAt(h.WeatherCode, i))),
			UV:         optionalAt(h.UVIndex, i),
			Pop:        valueAt(h.PrecipitationProbability, i),
			Humidity:   valueAt(h.RelativeHumidity, i),
			Wind:       valueAt(h.WindSpeed, i),
			Visibility: optionalAt(h.Visibility, i),
			Pressure:   optionalAt(h.SurfacePressure, i),
		})
	}
	return samples
}

// DailySamples transposes the daily parallel arrays into samples.
func (f *ExtendedForecast) DailySamples() []DailySample {
	if f == nil {
		return nil
	}
	d := f.Daily
	samples := make([]DailySample, 0, len(d.Time))
	for i, t := range d.Time {
		samples = append(samples, DailySample{
			Time:    t,
			Max:     valueAt(d.TemperatureMax, i),
			Min:     valueAt(d.TemperatureMin, i),
			Code:    int(math.Round(valueAt(d.WeatherCode, i))),
			RainSum: valueAt(d.PrecipitationSum, i),
		})
	}
	return samples
}

func valueAt(values []*float64, i int) float64 {
	if v := optionalAt(values, i); v != nil {
		return *v
	}
	return 0
}

func optionalAt(values []*float64, i int) *float64 {
	if i < 0 || i >= len(values) || values[i] == nil {
		return nil
	}
	v := *values[i]
	return &v
}
