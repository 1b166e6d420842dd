package dashboard

import (
	"context"
	"sync"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Favorites returns the saved favorites, most recently added first.
func (d *Dashboard) Favorites() []weather.WeatherRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]weather.WeatherRecord(nil), d.favorites...)
}

// ToggleFavorite saves the live record of the displayed city as a favorite,
// or removes it when it is already saved. It reports whether the city is a
// favorite afterwards.
func (d *Dashboard) ToggleFavorite() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.baseline == nil {
		return false, ErrNoForecast
	}
	record := d.baseline.weather

	for _, f := range d.favorites {
		if f.City == record.City {
			d.favorites = without(d.favorites, record.City)
			d.persist(favoritesKey, d.favorites)
			return false, nil
		}
	}

	d.favorites = append([]weather.WeatherRecord{record}, d.favorites...)
	d.persist(favoritesKey, d.favorites)
	return true, nil
}

// RemoveFavorite deletes the favorite for city and reports whether it existed.
func (d *Dashboard) RemoveFavorite(city string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := without(d.favorites, city)
	if len(next) == len(d.favorites) {
		return false
	}
	d.favorites = next
	d.persist(favoritesKey, d.favorites)
	return true
}

// RefreshFavorites fetches fresh conditions for every favorite concurrently.
// A favorite whose lookup fails keeps its cached data. A refresh started
// later supersedes this one, which then returns ErrSuperseded.
func (d *Dashboard) RefreshFavorites(ctx context.Context) error {
	mine := d.refreshes.Mint()
	lang := d.translator.Language()
	logger := d.logger.With("refresh", mine)

	current := d.Favorites()
	if len(current) == 0 {
		return nil
	}

	refreshed := make([]weather.WeatherRecord, len(current))
	var wg sync.WaitGroup
	for i, fav := range current {
		wg.Add(1)
		go func(i int, fav weather.WeatherRecord) {
			defer wg.Done()

			var (
				fresh weather.WeatherRecord
				err   error
			)
			if fav.Coord != nil {
				fresh, err = d.providers.Records.LookupByCoords(ctx, fav.Coord.Lat, fav.Coord.Lon, lang)
			} else {
				fresh, err = d.providers.Records.LookupByName(ctx, fav.City, lang)
			}
			if err != nil {
				logger.Warn("failed to refresh favorite", "city", fav.City, "error", err)
				refreshed[i] = fav
				return
			}

			// Keep the saved name, image and coordinates.
			fresh.City = fav.City
			fresh.Image = fav.Image
			if fav.Coord != nil {
				fresh.Coord = fav.Coord
			}
			refreshed[i] = fresh
		}(i, fav)
	}
	wg.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.refreshes.IsCurrent(mine) {
		logger.Debug("discarding superseded favorites refresh")
		return ErrSuperseded
	}

	// Favorites may have been toggled while the lookups ran.
	byCity := make(map[string]weather.WeatherRecord, len(refreshed))
	for _, r := range refreshed {
		byCity[r.City] = r
	}
	next := make([]weather.WeatherRecord, 0, len(d.favorites))
	for _, f := range d.favorites {
		if r, ok := byCity[f.City]; ok {
			f = r
		}
		next = append(next, f)
	}
	d.favorites = next
	d.persist(favoritesKey, d.favorites)

	logger.Info("favorites refreshed", "count", len(next))
	return nil
}

func without(list []weather.WeatherRecord, city string) []weather.WeatherRecord {
	next := make([]weather.WeatherRecord, 0, len(list))
	for _, f := range list {
		if f.City != city {
			next = append(next, f)
		}
	}
	return next
}
