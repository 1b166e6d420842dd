package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	assert.Equal(t, "en", Match("en"))
	assert.Equal(t, "en", Match("en-GB,en;q=0.9"))
	assert.Equal(t, "es", Match("es-AR"))
	assert.Equal(t, "es", Match("ja"))
	assert.Equal(t, "es", Match())
}

func TestTranslator_Translate(t *testing.T) {
	tr := NewTranslator("en", UnitsMetric)
	assert.Equal(t, "Rain", tr.Translate("Rain"))
	assert.Equal(t, "notAKey", tr.Translate("notAKey"))

	assert.True(t, tr.SetLanguage("es"))
	assert.Equal(t, "Lluvia", tr.Translate("Rain"))
	assert.False(t, tr.SetLanguage("es-ES"))
}

func TestTranslator_FormatTemp(t *testing.T) {
	tr := NewTranslator("es", UnitsMetric)
	assert.Equal(t, "22°C", tr.FormatTemp(21.6))
	assert.Equal(t, "0°C", tr.FormatTemp(0))

	tr.SetUnits(ParseUnits("IMPERIAL"))
	assert.Equal(t, UnitsImperial, tr.Units())
	assert.Equal(t, "72°F", tr.FormatTemp(22))
	assert.Equal(t, "32°F", tr.FormatTemp(0))
}
