package dashboard

import (
	"math"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// SelectDay pivots the view onto the given calendar day using the forecast
// already held in memory. Selecting today restores the live view instead.
func (d *Dashboard) SelectDay(day time.Time) (ViewState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.result == nil || d.baseline == nil || d.view == nil {
		return ViewState{}, ErrNoForecast
	}
	zone := d.result.zone
	if weather.SameDay(day, d.now(), zone) {
		return d.resetLocked(), nil
	}

	window := weather.WindowForDay(d.result.samples, day, zone)
	selected := weather.StartOfDay(day, zone)

	// Start from the live record so nothing of a previously selected day
	// carries over.
	v := *d.view
	v.Weather = d.baseline.weather
	v.Hourly = window
	v.Chart = chartSeries(window, zone)
	v.IsViewingFutureDay = true
	v.SelectedDate = &selected
	v.UV, v.Visibility, v.Pressure = nil, nil, nil

	// An uncovered day has no representative sample and shows the live record.
	if len(window) > 0 {
		rep := window[len(window)/2]
		condition := weather.CodeToCategory(rep.Code)
		wind := math.Round(rep.Wind)
		humidity := int(math.Round(rep.Humidity))

		record := v.Weather
		record.Temp = math.Round(rep.Temp)
		record.Condition = condition
		record.Description = d.translator.Translate(string(condition))
		record.Wind = &wind
		record.Humidity = &humidity

		v.Weather = record
		v.UV = rep.UV
		v.Visibility = rep.Visibility
		v.Pressure = rep.Pressure
	}

	d.logger.Debug("day selected", "date", selected.Format(time.DateOnly), "hourly", len(window))
	return d.publish(v), nil
}

// ResetToToday restores the live view captured by the last successful
// search. It returns ErrNoForecast when no search has succeeded yet.
func (d *Dashboard) ResetToToday() (ViewState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.baseline == nil || d.view == nil {
		return ViewState{}, ErrNoForecast
	}
	return d.resetLocked(), nil
}

// resetLocked must be called with d.mu held. It is a no-op when the view is
// already live.
func (d *Dashboard) resetLocked() ViewState {
	if !d.view.IsViewingFutureDay || d.baseline == nil {
		return d.publish(*d.view)
	}
	zone := d.result.zone
	b := d.baseline

	v := *d.view
	v.Weather = b.weather
	v.Hourly = b.hourly
	v.Chart = chartSeries(b.hourly, zone)
	v.Visibility = b.visibility
	v.Pressure = b.pressure
	v.IsViewingFutureDay = false
	v.SelectedDate = nil
	v.UV = nil

	if len(b.hourly) > 0 {
		h := b.hourly[0]
		hour := d.now().In(zone).Hour()
		for _, s := range b.hourly {
			if s.Time.In(zone).Hour() == hour {
				h = s
				break
			}
		}
		v.UV = h.UV
	}

	d.logger.Debug("reset to today")
	return d.publish(v)
}
