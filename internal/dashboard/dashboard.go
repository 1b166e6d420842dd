// Package dashboard is the single-session engine behind the weather view. It
// sequences searches, reconciles their forecast, air quality and image
// results into one published ViewState, and pivots that view onto other
// forecast days without fetching again.
package dashboard

import (
	"log/slog"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	favoritesKey = "weatherFavorites"
	historyKey   = "weatherHistoryFull"

	maxHistory = 3
)

// Translator localizes strings and formats temperatures for the session.
type Translator interface {
	Translate(key string) string
	FormatTemp(celsius float64) string
	Language() string
}

// Providers bundles the external collaborators the dashboard consumes.
type Providers struct {
	Records    weather.RecordProvider
	Forecasts  weather.ForecastProvider
	AirQuality weather.AirQualityProvider
	Regions    weather.RegionResolver
	Images     weather.ImageFinder
	Suggester  weather.CitySuggester
}

// ChartPoint is one point of the temperature chart.
type ChartPoint struct {
	Label string  `json:"label"`
	Temp  float64 `json:"temp"`
}

// ViewState is the published dashboard view.
type ViewState struct {
	Weather            weather.WeatherRecord  `json:"weather"`
	TempLabel          string                 `json:"tempLabel"`
	Hourly             []weather.HourlySample `json:"hourly"`
	Daily              []weather.DailySample  `json:"daily"`
	Chart              []ChartPoint           `json:"chart"`
	AQI                *int                   `json:"aqi,omitempty"`
	UV                 *float64               `json:"uv,omitempty"`
	Visibility         *float64               `json:"visibility,omitempty"`
	Pressure           *float64               `json:"pressure,omitempty"`
	IsViewingFutureDay bool                   `json:"isViewingFutureDay"`
	SelectedDate       *time.Time             `json:"selectedDate,omitempty"`
	Activities         []weather.Activity     `json:"activities"`
	Insight            string                 `json:"insight"`
}

// Status is the loading and user-visible error state of the session.
type Status struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// baseline is the "true now" snapshot captured by the last successful search.
type baseline struct {
	weather    weather.WeatherRecord
	hourly     []weather.HourlySample
	visibility *float64
	pressure   *float64
}

// result is what the last successful search fetched, kept so days can be
// re-sliced without network I/O.
type result struct {
	forecast *weather.ExtendedForecast
	samples  []weather.HourlySample
	zone     *time.Location
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) { d.now = now }
}

// WithZones sets how the local calendar is determined for a search result.
func WithZones(zones ZoneResolver) Option {
	return func(d *Dashboard) { d.zones = zones }
}

// Dashboard owns all mutable session state. It is safe for concurrent use;
// every mutation is applied under its lock after the operation's token is
// checked.
type Dashboard struct {
	providers  Providers
	translator Translator
	kv         store.KeyValue
	zones      ZoneResolver
	now        func() time.Time
	logger     *slog.Logger

	searches  *Guard
	refreshes *Guard

	mu        sync.Mutex
	view      *ViewState
	status    Status
	query     string
	result    *result
	baseline  *baseline
	history   []weather.WeatherRecord
	favorites []weather.WeatherRecord
}

// New creates a Dashboard and loads the persisted favorites and history.
// Unreadable persisted lists are logged and start empty.
func New(providers Providers, translator Translator, kv store.KeyValue, logger *slog.Logger, opts ...Option) *Dashboard {
	d := &Dashboard{
		providers:  providers,
		translator: translator,
		kv:         kv,
		zones:      FixedZone{Loc: time.Local},
		now:        time.Now,
		logger:     logger.With("component", "dashboard"),
		searches:   &Guard{},
		refreshes:  &Guard{},
	}
	for _, opt := range opts {
		opt(d)
	}

	d.favorites = d.loadList(favoritesKey)
	d.history = d.loadList(historyKey)
	return d
}

func (d *Dashboard) loadList(key string) []weather.WeatherRecord {
	list, err := store.LoadList[weather.WeatherRecord](d.kv, key)
	if err != nil {
		d.logger.Warn("failed to load persisted list; starting empty", "key", key, "error", err)
		return []weather.WeatherRecord{}
	}
	return list
}

// persist writes a list. Must be called with d.mu held.
func (d *Dashboard) persist(key string, list []weather.WeatherRecord) {
	if err := store.SaveList(d.kv, key, list); err != nil {
		d.logger.Error("failed to persist list", "key", key, "error", err)
	}
}

// View returns the published view and whether one exists yet. The
// temperature label follows the current units.
func (d *Dashboard) View() (ViewState, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.view == nil {
		return ViewState{}, false
	}
	v := *d.view
	v.TempLabel = d.translator.FormatTemp(v.Weather.Temp)
	return v, true
}

// Status returns the loading and error state.
func (d *Dashboard) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Query returns the text currently typed in the search box.
func (d *Dashboard) Query() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.query
}

// History returns the recent searches, most recent first.
func (d *Dashboard) History() []weather.WeatherRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]weather.WeatherRecord(nil), d.history...)
}

// publish decorates v with the derived fields and makes it the live view.
// Must be called with d.mu held.
func (d *Dashboard) publish(v ViewState) ViewState {
	c := weather.Conditions{
		Temp:      v.Weather.Temp,
		Condition: v.Weather.Condition,
	}
	if v.Weather.Wind != nil {
		c.Wind = *v.Weather.Wind
	}
	if v.UV != nil {
		c.UV = *v.UV
	}
	if len(v.Hourly) > 0 {
		c.RainChance = v.Hourly[0].Pop
		c.Code = v.Hourly[0].Code
	}
	v.TempLabel = d.translator.FormatTemp(v.Weather.Temp)
	v.Activities = weather.Advise(c, d.translator.Translate)
	v.Insight = weather.Insight(c, d.translator.Translate)

	d.view = &v
	return v
}

func chartSeries(hourly []weather.HourlySample, loc *time.Location) []ChartPoint {
	points := make([]ChartPoint, 0, len(hourly))
	for _, h := range hourly {
		points = append(points, ChartPoint{Label: h.Time.In(loc).Format("15:04"), Temp: h.Temp})
	}
	return points
}
