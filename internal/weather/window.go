package weather

import "time"

// WindowFromNow returns the samples with now <= t < now+24h, in source order.
func WindowFromNow(samples []HourlySample, now time.Time) []HourlySample {
	end := now.Add(24 * time.Hour)
	window := make([]HourlySample, 0, 24)
	for _, s := range samples {
		if !s.Time.Before(now) && s.Time.Before(end) {
			window = append(window, s)
		}
	}
	return window
}

// WindowForDay returns the samples falling within the local calendar day of
// day, midnight to midnight in loc, bounds inclusive. The calendar date is
// read from day as given, so a date parsed in another zone keeps its date.
func WindowForDay(samples []HourlySample, day time.Time, loc *time.Location) []HourlySample {
	start := StartOfDay(day, loc)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	window := make([]HourlySample, 0, 24)
	for _, s := range samples {
		if !s.Time.Before(start) && !s.Time.After(end) {
			window = append(window, s)
		}
	}
	return window
}

// CurrentHourIndex returns the index of the first sample whose local hour in
// loc equals the local hour of now, or -1 when there is none.
func CurrentHourIndex(samples []HourlySample, now time.Time, loc *time.Location) int {
	hour := now.In(loc).Hour()
	for i, s := range samples {
		if s.Time.In(loc).Hour() == hour {
			return i
		}
	}
	return -1
}

// StartOfDay returns local midnight in loc for the calendar date of day.
func StartOfDay(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// SameDay reports whether day carries the same calendar date as now in loc.
func SameDay(day, now time.Time, loc *time.Location) bool {
	y1, m1, d1 := day.Date()
	y2, m2, d2 := now.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
