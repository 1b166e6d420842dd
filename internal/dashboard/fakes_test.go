package dashboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/weather-dashboard/internal/i18n"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var (
	testNow  = time.Date(2026, 10, 14, 10, 30, 0, 0, time.UTC)
	dayStart = time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	// WMO code of each forecast day, starting today.
	dayCodes = []int{0, 61, 71, 3, 95, 45, 51}
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func sleep(ctx context.Context, d time.Duration) error {
	if d == 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func testRecord(city, country string, lat, lon float64, c weather.Condition) weather.WeatherRecord {
	return weather.WeatherRecord{
		City:        city,
		Country:     country,
		Coord:       &weather.Coord{Lat: lat, Lon: lon},
		Temp:        21.4,
		Condition:   c,
		Description: strings.ToLower(string(c)),
		Humidity:    iptr(40),
		Wind:        fptr(12),
	}
}

type fakeRecords struct {
	mu       sync.Mutex
	byName   map[string]weather.WeatherRecord
	byCoords map[string]weather.WeatherRecord
	delay    map[string]time.Duration
	fail     map[string]error
	calls    []string
}

func newFakeRecords() *fakeRecords {
	f := &fakeRecords{
		byName:   map[string]weather.WeatherRecord{},
		byCoords: map[string]weather.WeatherRecord{},
		delay:    map[string]time.Duration{},
		fail:     map[string]error{},
	}
	for _, r := range []weather.WeatherRecord{
		testRecord("Madrid", "ES", 40.4, -3.7, weather.ConditionClear),
		testRecord("Barcelona", "ES", 41.4, 2.2, weather.ConditionClouds),
		testRecord("Oslo", "NO", 59.9, 10.7, weather.ConditionRain),
		testRecord("Bergen", "NO", 60.4, 5.3, weather.ConditionRain),
		testRecord("Slowtown", "XX", 1, 1, weather.ConditionSnow),
	} {
		f.add(r)
	}
	return f
}

func coordKey(lat, lon float64) string { return fmt.Sprintf("%.2f,%.2f", lat, lon) }

func (f *fakeRecords) add(r weather.WeatherRecord) {
	f.byName[strings.ToLower(r.City)] = r
	if r.Coord != nil {
		f.byCoords[coordKey(r.Coord.Lat, r.Coord.Lon)] = r
	}
}

func (f *fakeRecords) LookupByName(ctx context.Context, name, _ string) (weather.WeatherRecord, error) {
	key := strings.ToLower(strings.SplitN(name, ",", 2)[0])
	f.mu.Lock()
	f.calls = append(f.calls, "name:"+name)
	delay, err := f.delay[key], f.fail[key]
	r, ok := f.byName[key]
	f.mu.Unlock()

	if err := sleep(ctx, delay); err != nil {
		return weather.WeatherRecord{}, err
	}
	if err != nil {
		return weather.WeatherRecord{}, err
	}
	if !ok {
		return weather.WeatherRecord{}, weather.ErrNotFound
	}
	return r, nil
}

func (f *fakeRecords) LookupByCoords(ctx context.Context, lat, lon float64, _ string) (weather.WeatherRecord, error) {
	key := coordKey(lat, lon)
	f.mu.Lock()
	f.calls = append(f.calls, "coords:"+key)
	r, ok := f.byCoords[key]
	delay, err := f.delay[strings.ToLower(r.City)], f.fail[strings.ToLower(r.City)]
	f.mu.Unlock()

	if err := sleep(ctx, delay); err != nil {
		return weather.WeatherRecord{}, err
	}
	if err != nil {
		return weather.WeatherRecord{}, err
	}
	if !ok {
		return weather.WeatherRecord{}, weather.ErrNotFound
	}
	return r, nil
}

func (f *fakeRecords) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// syntheticForecast covers seven days from dayStart. Hour h of day n has
// temperature h+n and the day's code from dayCodes.
func syntheticForecast() *weather.ExtendedForecast {
	f := &weather.ExtendedForecast{}
	for day := 0; day < len(dayCodes); day++ {
		date := dayStart.AddDate(0, 0, day)
		f.Daily.Time = append(f.Daily.Time, date)
		f.Daily.TemperatureMax = append(f.Daily.TemperatureMax, fptr(float64(23+day)))
		f.Daily.TemperatureMin = append(f.Daily.TemperatureMin, fptr(float64(day)))
		f.Daily.WeatherCode = append(f.Daily.WeatherCode, fptr(float64(dayCodes[day])))
		f.Daily.PrecipitationSum = append(f.Daily.PrecipitationSum, fptr(float64(day)/2))

		for h := 0; h < 24; h++ {
			f.Hourly.Time = append(f.Hourly.Time, date.Add(time.Duration(h)*time.Hour))
			f.Hourly.Temperature = append(f.Hourly.Temperature, fptr(float64(h+day)))
			f.Hourly.WeatherCode = append(f.Hourly.WeatherCode, fptr(float64(dayCodes[day])))
			f.Hourly.UVIndex = append(f.Hourly.UVIndex, fptr(float64(h)/2))
			f.Hourly.PrecipitationProbability = append(f.Hourly.PrecipitationProbability, fptr(float64(h*2)))
			f.Hourly.RelativeHumidity = append(f.Hourly.RelativeHumidity, fptr(float64(50+h)))
			f.Hourly.Visibility = append(f.Hourly.Visibility, fptr(float64(10000-h*100)))
			f.Hourly.SurfacePressure = append(f.Hourly.SurfacePressure, fptr(float64(1000+h)))
			f.Hourly.WindSpeed = append(f.Hourly.WindSpeed, fptr(10.4+float64(day)))
		}
	}
	return f
}

type fakeForecasts struct {
	mu     sync.Mutex
	delay  map[string]time.Duration
	err    error
	calls  int
	mutate func(*weather.ExtendedForecast)
}

func (f *fakeForecasts) FetchExtendedForecast(ctx context.Context, lat, lon float64) (*weather.ExtendedForecast, error) {
	f.mu.Lock()
	f.calls++
	delay, err, mutate := f.delay[coordKey(lat, lon)], f.err, f.mutate
	f.mu.Unlock()

	if err := sleep(ctx, delay); err != nil {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	fc := syntheticForecast()
	fc.Latitude, fc.Longitude = lat, lon
	if mutate != nil {
		mutate(fc)
	}
	return fc, nil
}

type fakeAir struct {
	aqi *int
	err error
}

func (f *fakeAir) FetchAirQuality(context.Context, float64, float64) (weather.AirQuality, error) {
	if f.err != nil {
		return weather.AirQuality{}, f.err
	}
	return weather.AirQuality{USAQI: f.aqi}, nil
}

type fakeRegions struct {
	mu    sync.Mutex
	state string
	calls int
}

func (f *fakeRegions) ResolveRegion(context.Context, float64, float64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.state
}

func (f *fakeRegions) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeImages struct {
	mu     sync.Mutex
	urls   map[string]string
	states []string
}

func (f *fakeImages) FetchImage(_ context.Context, city, _, state string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states = append(f.states, state)
	return f.urls[city]
}

type fakeSuggester struct {
	calls int
}

func (f *fakeSuggester) SuggestCities(_ context.Context, partial string) []weather.Suggestion {
	f.calls++
	return []weather.Suggestion{{Location: weather.Location{Name: partial, Country: "ES"}, Full: partial + ", ES"}}
}

type harness struct {
	d         *Dashboard
	records   *fakeRecords
	forecasts *fakeForecasts
	air       *fakeAir
	regions   *fakeRegions
	images    *fakeImages
	suggester *fakeSuggester
	kv        *store.MemoryStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		records:   newFakeRecords(),
		forecasts: &fakeForecasts{delay: map[string]time.Duration{}},
		air:       &fakeAir{aqi: iptr(42)},
		regions:   &fakeRegions{state: "Community of Madrid"},
		images:    &fakeImages{urls: map[string]string{}},
		suggester: &fakeSuggester{},
		kv:        store.NewMemoryStore(),
	}
	h.d = h.build()
	return h
}

func (h *harness) build() *Dashboard {
	return New(Providers{
		Records:    h.records,
		Forecasts:  h.forecasts,
		AirQuality: h.air,
		Regions:    h.regions,
		Images:     h.images,
		Suggester:  h.suggester,
	},
		i18n.NewTranslator("en", i18n.UnitsMetric),
		h.kv,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithClock(func() time.Time { return testNow }),
		WithZones(FixedZone{Loc: time.UTC}),
	)
}

func cities(records []weather.WeatherRecord) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.City)
	}
	return names
}
