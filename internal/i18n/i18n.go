// Package i18n provides the localized strings and temperature formatting used
// by the dashboard.
package i18n

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Units selects how temperatures are formatted.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// The first tag is the default when nothing matches.
var matcher = language.NewMatcher([]language.Tag{
	language.Spanish,
	language.English,
})

// Match negotiates one of the supported languages ("es" or "en") from
// language preferences such as an Accept-Language header or a bare code.
func Match(prefs ...string) string {
	tag, _ := language.MatchStrings(matcher, prefs...)
	base, _ := tag.Base()
	return base.String()
}

// ParseUnits returns the units for s, defaulting to metric.
func ParseUnits(s string) Units {
	if strings.EqualFold(s, string(UnitsImperial)) {
		return UnitsImperial
	}
	return UnitsMetric
}

// Translator holds the session's language and unit preferences. It is safe
// for concurrent use.
type Translator struct {
	mu    sync.RWMutex
	lang  string
	units Units
}

func NewTranslator(lang string, units Units) *Translator {
	return &Translator{lang: Match(lang), units: units}
}

// Translate returns the localized string for key, or key itself when the
// current language has no entry.
func (t *Translator) Translate(key string) string {
	t.mu.RLock()
	lang := t.lang
	t.mu.RUnlock()

	if text, ok := translations[lang][key]; ok && text != "" {
		return text
	}
	return key
}

// FormatTemp formats a Celsius temperature in the current units.
func (t *Translator) FormatTemp(celsius float64) string {
	t.mu.RLock()
	units := t.units
	t.mu.RUnlock()

	if units == UnitsImperial {
		return fmt.Sprintf("%d°F", int(math.Round(celsius*9/5+32)))
	}
	return fmt.Sprintf("%d°C", int(math.Round(celsius)))
}

func (t *Translator) Language() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

func (t *Translator) Units() Units {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.units
}

// SetLanguage switches the language and reports whether it changed.
func (t *Translator) SetLanguage(lang string) bool {
	matched := Match(lang)
	t.mu.Lock()
	defer t.mu.Unlock()
	changed := matched != t.lang
	t.lang = matched
	return changed
}

func (t *Translator) SetUnits(units Units) {
	t.mu.Lock()
	t.units = units
	t.mu.Unlock()
}
