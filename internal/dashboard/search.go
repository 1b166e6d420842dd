package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Query is a search request: free text typed by the user, or a place picked
// from suggestions, favorites or history.
type Query struct {
	City      string
	Selection *weather.Location
}

func (q Query) empty() bool {
	if q.Selection != nil {
		return q.Selection.Name == "" && !q.Selection.HasCoord()
	}
	return strings.TrimSpace(q.City) == ""
}

// Search resolves the query, fetches forecast, air quality and image for it
// and publishes the result as the new live view and baseline. If a newer
// search or geolocation request starts before it finishes, Search returns
// ErrSuperseded and changes nothing.
func (d *Dashboard) Search(ctx context.Context, q Query) (ViewState, error) {
	if q.empty() {
		return ViewState{}, ErrEmptyQuery
	}
	mine := d.begin()
	return d.search(ctx, mine, q, d.logger.With("search_id", uuid.NewString(), "token", mine))
}

// Locate searches the weather at the viewer's position. The position itself
// is acquired by the caller.
func (d *Dashboard) Locate(ctx context.Context, lat, lon float64) (ViewState, error) {
	mine := d.begin()
	logger := d.logger.With("search_id", uuid.NewString(), "token", mine, "lat", lat, "lon", lon)

	record, err := d.providers.Records.LookupByCoords(ctx, lat, lon, d.translator.Language())
	if !d.searches.IsCurrent(mine) {
		return d.superseded(logger)
	}
	if err != nil {
		return d.fail(logger, mine, "locationError", fmt.Errorf("%w: %w", ErrResolution, err))
	}

	state := d.providers.Regions.ResolveRegion(ctx, lat, lon)
	if !d.searches.IsCurrent(mine) {
		return d.superseded(logger)
	}

	return d.search(ctx, mine, Query{Selection: &weather.Location{
		Name:    record.City,
		Country: record.Country,
		State:   state,
		Lat:     &lat,
		Lon:     &lon,
	}}, logger)
}

func (d *Dashboard) begin() Token {
	d.mu.Lock()
	defer d.mu.Unlock()

	mine := d.searches.Mint()
	d.status = Status{Loading: true}
	return mine
}

func (d *Dashboard) search(ctx context.Context, mine Token, q Query, logger *slog.Logger) (ViewState, error) {
	logger.Debug("search started", "city", q.City)

	record, err := d.resolve(ctx, q)
	if !d.searches.IsCurrent(mine) {
		return d.superseded(logger)
	}
	if err != nil {
		return d.fail(logger, mine, "searchError", fmt.Errorf("%w: %w", ErrResolution, err))
	}

	coord := record.Coord
	if q.Selection != nil && q.Selection.HasCoord() {
		coord = &weather.Coord{Lat: *q.Selection.Lat, Lon: *q.Selection.Lon}
	}
	if coord == nil {
		return d.fail(logger, mine, "searchError", fmt.Errorf("%w: %w", ErrResolution, ErrCoordinatesUnresolved))
	}

	var state string
	if q.Selection != nil {
		state = q.Selection.State
	}
	if state == "" {
		state = d.providers.Regions.ResolveRegion(ctx, coord.Lat, coord.Lon)
		if !d.searches.IsCurrent(mine) {
			return d.superseded(logger)
		}
	}

	var (
		wg          sync.WaitGroup
		image       string
		forecast    *weather.ExtendedForecast
		air         weather.AirQuality
		forecastErr error
		airErr      error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		image = d.providers.Images.FetchImage(ctx, record.City, record.Country, state)
	}()
	go func() {
		defer wg.Done()
		forecast, forecastErr = d.providers.Forecasts.FetchExtendedForecast(ctx, coord.Lat, coord.Lon)
	}()
	go func() {
		defer wg.Done()
		air, airErr = d.providers.AirQuality.FetchAirQuality(ctx, coord.Lat, coord.Lon)
	}()
	wg.Wait()

	if !d.searches.IsCurrent(mine) {
		return d.superseded(logger)
	}
	if forecastErr != nil {
		return d.fail(logger, mine, "searchError", fmt.Errorf("%w: forecast: %w", ErrDependentFetch, forecastErr))
	}
	if forecast == nil {
		return d.fail(logger, mine, "searchError", fmt.Errorf("%w: forecast: empty response", ErrDependentFetch))
	}
	if airErr != nil {
		return d.fail(logger, mine, "searchError", fmt.Errorf("%w: air quality: %w", ErrDependentFetch, airErr))
	}

	now := d.now()
	zone := d.zones.Zone(coord.Lat, coord.Lon)
	samples := forecast.HourlySamples()
	today := weather.WindowFromNow(samples, now)

	v := ViewState{
		Weather: record.WithImage(weather.BackgroundImage(image, record.Condition)),
		Hourly:  today,
		Daily:   forecast.DailySamples(),
		Chart:   chartSeries(today, zone),
		AQI:     air.USAQI,
	}
	if i := weather.CurrentHourIndex(samples, now, zone); i >= 0 {
		v.UV = samples[i].UV
		v.Visibility = samples[i].Visibility
		v.Pressure = samples[i].Pressure
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.searches.IsCurrent(mine) {
		logger.Debug("discarding superseded search")
		return ViewState{}, ErrSuperseded
	}

	published := d.publish(v)
	d.result = &result{forecast: forecast, samples: samples, zone: zone}
	d.baseline = &baseline{
		weather:    v.Weather,
		hourly:     today,
		visibility: v.Visibility,
		pressure:   v.Pressure,
	}
	d.pushHistory(v.Weather)
	d.query = ""
	d.status = Status{}

	logger.Info("search completed", "city", v.Weather.City, "hourly", len(today), "daily", len(v.Daily))
	return published, nil
}

func (d *Dashboard) resolve(ctx context.Context, q Query) (weather.WeatherRecord, error) {
	lang := d.translator.Language()
	sel := q.Selection

	if sel != nil && sel.HasCoord() {
		record, err := d.providers.Records.LookupByCoords(ctx, *sel.Lat, *sel.Lon, lang)
		if err != nil {
			return weather.WeatherRecord{}, err
		}
		// The provider's name for a coordinate can differ from the one picked.
		if sel.Name != "" {
			record.City = sel.Name
		}
		if record.Country == "" {
			record.Country = sel.Country
		}
		return record, nil
	}

	name := strings.TrimSpace(q.City)
	if sel != nil {
		name = sel.Name
		if sel.Country != "" {
			name += "," + sel.Country
		}
	}
	record, err := d.providers.Records.LookupByName(ctx, name, lang)
	if err != nil {
		return weather.WeatherRecord{}, err
	}
	if sel != nil {
		record.City = sel.Name
	}
	return record, nil
}

// pushHistory front-inserts r, dropping earlier entries for the same city.
// Must be called with d.mu held.
func (d *Dashboard) pushHistory(r weather.WeatherRecord) {
	next := make([]weather.WeatherRecord, 0, maxHistory)
	next = append(next, r)
	for _, h := range d.history {
		if len(next) == maxHistory {
			break
		}
		if !strings.EqualFold(h.City, r.City) {
			next = append(next, h)
		}
	}
	d.history = next
	d.persist(historyKey, d.history)
}

// RemoveHistory deletes the history entry for city and reports whether it
// existed.
func (d *Dashboard) RemoveHistory(city string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := without(d.history, city)
	if len(next) == len(d.history) {
		return false
	}
	d.history = next
	d.persist(historyKey, d.history)
	return true
}

func (d *Dashboard) superseded(logger *slog.Logger) (ViewState, error) {
	logger.Debug("discarding superseded search")
	return ViewState{}, ErrSuperseded
}

// fail surfaces err to the user when mine is still current. A failure of a
// superseded operation is swallowed.
func (d *Dashboard) fail(logger *slog.Logger, mine Token, messageKey string, err error) (ViewState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.searches.IsCurrent(mine) {
		logger.Debug("discarding failure of superseded search", "error", err)
		return ViewState{}, ErrSuperseded
	}
	d.status = Status{Error: d.translator.Translate(messageKey)}
	logger.Error("search failed", "error", err)
	return ViewState{}, err
}
