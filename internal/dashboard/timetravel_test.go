package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

func searched(t *testing.T, city string) (*harness, ViewState) {
	t.Helper()
	h := newHarness(t)
	v, err := h.d.Search(context.Background(), Query{City: city})
	require.NoError(t, err)
	return h, v
}

func TestSelectDay_PivotsOntoForecastDay(t *testing.T) {
	h, live := searched(t, "Madrid")
	tomorrow := dayStart.AddDate(0, 0, 1)

	v, err := h.d.SelectDay(tomorrow.Add(15 * time.Hour))
	require.NoError(t, err)

	assert.True(t, v.IsViewingFutureDay)
	require.NotNil(t, v.SelectedDate)
	assert.Equal(t, tomorrow, *v.SelectedDate)

	require.Len(t, v.Hourly, 24)
	for _, s := range v.Hourly {
		assert.Equal(t, 15, s.Time.Day())
	}
	require.Len(t, v.Chart, 24)
	assert.Equal(t, "00:00", v.Chart[0].Label)

	// Representative sample is the 12:00 one.
	assert.Equal(t, 13.0, v.Weather.Temp)
	assert.Equal(t, weather.ConditionRain, v.Weather.Condition)
	assert.Equal(t, "Rain", v.Weather.Description)
	require.NotNil(t, v.Weather.Wind)
	assert.Equal(t, 11.0, *v.Weather.Wind)
	require.NotNil(t, v.Weather.Humidity)
	assert.Equal(t, 62, *v.Weather.Humidity)
	require.NotNil(t, v.UV)
	assert.Equal(t, 6.0, *v.UV)
	require.NotNil(t, v.Visibility)
	assert.Equal(t, 8800.0, *v.Visibility)
	require.NotNil(t, v.Pressure)
	assert.Equal(t, 1012.0, *v.Pressure)
	assert.Equal(t, "13°C", v.TempLabel)

	assert.Equal(t, live.Weather.City, v.Weather.City)
	assert.Equal(t, live.Weather.Image, v.Weather.Image)
	assert.Equal(t, live.Weather.Coord, v.Weather.Coord)
	assert.Equal(t, live.Daily, v.Daily)
	assert.Equal(t, live.AQI, v.AQI)
}

func TestSelectDay_DoesNotFetch(t *testing.T) {
	h, _ := searched(t, "Madrid")
	calls := len(h.records.Calls())

	_, err := h.d.SelectDay(dayStart.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Len(t, h.records.Calls(), calls)
	assert.Equal(t, 1, h.forecasts.calls)
}

func TestSelectDay_RoundTripRestoresLiveView(t *testing.T) {
	h, live := searched(t, "Madrid")

	_, err := h.d.SelectDay(dayStart.AddDate(0, 0, 1))
	require.NoError(t, err)
	_, err = h.d.SelectDay(dayStart.AddDate(0, 0, 4))
	require.NoError(t, err)

	v, err := h.d.ResetToToday()
	require.NoError(t, err)

	assert.Equal(t, live.Weather, v.Weather)
	assert.Equal(t, live.Hourly, v.Hourly)
	assert.Equal(t, live.Chart, v.Chart)
	assert.Equal(t, live.Visibility, v.Visibility)
	assert.Equal(t, live.Pressure, v.Pressure)
	assert.False(t, v.IsViewingFutureDay)
	assert.Nil(t, v.SelectedDate)
}

// The live hourly window starts after now, so at 10:30 the first sample with
// hour 10 is tomorrow's.
func TestResetToToday_RecomputesUVFromMatchingHour(t *testing.T) {
	h := newHarness(t)
	h.forecasts.mutate = func(f *weather.ExtendedForecast) {
		f.Hourly.UVIndex[24+10] = fptr(9)
	}
	live, err := h.d.Search(context.Background(), Query{City: "Madrid"})
	require.NoError(t, err)
	require.NotNil(t, live.UV)
	assert.Equal(t, 5.0, *live.UV)

	_, err = h.d.SelectDay(dayStart.AddDate(0, 0, 2))
	require.NoError(t, err)
	v, err := h.d.ResetToToday()
	require.NoError(t, err)

	require.NotNil(t, v.UV)
	assert.Equal(t, 9.0, *v.UV)
	assert.Equal(t, live.Weather, v.Weather)
	assert.Equal(t, live.Hourly, v.Hourly)
}

func TestSelectDay_TodayIsIdempotent(t *testing.T) {
	h, live := searched(t, "Madrid")

	v, err := h.d.SelectDay(testNow.Add(-8 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, live, v)

	v, err = h.d.ResetToToday()
	require.NoError(t, err)
	assert.Equal(t, live, v)
}

func TestSelectDay_TodayAfterPivotResets(t *testing.T) {
	h, live := searched(t, "Madrid")

	_, err := h.d.SelectDay(dayStart.AddDate(0, 0, 2))
	require.NoError(t, err)

	v, err := h.d.SelectDay(testNow)
	require.NoError(t, err)
	assert.Equal(t, live, v)
}

func TestSelectDay_UncoveredDay(t *testing.T) {
	h, live := searched(t, "Madrid")

	v, err := h.d.SelectDay(dayStart.AddDate(0, 0, 30))
	require.NoError(t, err)

	assert.True(t, v.IsViewingFutureDay)
	assert.Empty(t, v.Hourly)
	assert.Empty(t, v.Chart)
	assert.Equal(t, live.Weather, v.Weather)
	assert.Nil(t, v.UV)
	assert.Nil(t, v.Visibility)
	assert.Nil(t, v.Pressure)
}

func TestSelectDay_UncoveredDayAfterPivot(t *testing.T) {
	h, live := searched(t, "Madrid")

	pivoted, err := h.d.SelectDay(dayStart.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.NotEqual(t, live.Weather, pivoted.Weather)

	far := dayStart.AddDate(0, 0, 30)
	v, err := h.d.SelectDay(far)
	require.NoError(t, err)

	require.NotNil(t, v.SelectedDate)
	assert.Equal(t, far, *v.SelectedDate)
	assert.Empty(t, v.Hourly)
	assert.Equal(t, live.Weather, v.Weather)
	assert.Equal(t, live.TempLabel, v.TempLabel)
	assert.Nil(t, v.UV)
}

func TestSelectDay_WithoutForecast(t *testing.T) {
	h := newHarness(t)

	_, err := h.d.SelectDay(dayStart.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, ErrNoForecast)
	_, err = h.d.ResetToToday()
	assert.ErrorIs(t, err, ErrNoForecast)
}

func TestSearch_AfterPivotPublishesLiveView(t *testing.T) {
	h, _ := searched(t, "Madrid")

	_, err := h.d.SelectDay(dayStart.AddDate(0, 0, 1))
	require.NoError(t, err)

	v, err := h.d.Search(context.Background(), Query{City: "Oslo"})
	require.NoError(t, err)
	assert.False(t, v.IsViewingFutureDay)
	assert.Equal(t, "Oslo", v.Weather.City)

	v, err = h.d.ResetToToday()
	require.NoError(t, err)
	assert.Equal(t, "Oslo", v.Weather.City)
}

func TestSelectDay_UsesZoneOfResult(t *testing.T) {
	h := newHarness(t)
	plus2 := time.FixedZone("UTC+2", 2*60*60)
	h.d = New(Providers{
		Records:    h.records,
		Forecasts:  h.forecasts,
		AirQuality: h.air,
		Regions:    h.regions,
		Images:     h.images,
		Suggester:  h.suggester,
	}, h.d.translator, h.kv, h.d.logger,
		WithClock(func() time.Time { return testNow }),
		WithZones(FixedZone{Loc: plus2}),
	)
	_, err := h.d.Search(context.Background(), Query{City: "Madrid"})
	require.NoError(t, err)

	v, err := h.d.SelectDay(time.Date(2026, 10, 15, 0, 0, 0, 0, plus2))
	require.NoError(t, err)

	require.Len(t, v.Hourly, 24)
	assert.Equal(t, time.Date(2026, 10, 14, 22, 0, 0, 0, time.UTC), v.Hourly[0].Time.UTC())
	assert.Equal(t, "00:00", v.Chart[0].Label)
}
