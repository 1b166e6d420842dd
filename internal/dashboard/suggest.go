package dashboard

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const minSuggestLength = 3

// Suggest records partial as the typed search text and returns autocomplete
// entries for it. Inputs shorter than three characters return no entries
// without calling the provider.
func (d *Dashboard) Suggest(ctx context.Context, partial string) []weather.Suggestion {
	d.mu.Lock()
	d.query = partial
	d.mu.Unlock()

	trimmed := strings.TrimSpace(partial)
	if utf8.RuneCountInString(trimmed) < minSuggestLength {
		return []weather.Suggestion{}
	}

	suggestions := d.providers.Suggester.SuggestCities(ctx, trimmed)
	if suggestions == nil {
		return []weather.Suggestion{}
	}
	return suggestions
}
