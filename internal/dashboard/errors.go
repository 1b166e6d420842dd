package dashboard

import "errors"

var (
	// ErrSuperseded is returned to the caller of an operation that a newer
	// operation replaced. The dashboard state and status are left untouched.
	ErrSuperseded = errors.New("operation superseded by a newer request")

	// ErrResolution means the name or coordinates could not be turned into
	// a weather record.
	ErrResolution = errors.New("location could not be resolved")

	// ErrCoordinatesUnresolved means resolution succeeded but produced no
	// usable coordinates. It is always wrapped together with ErrResolution.
	ErrCoordinatesUnresolved = errors.New("resolved location has no coordinates")

	// ErrDependentFetch means the forecast or air quality fetch failed after
	// the location was resolved.
	ErrDependentFetch = errors.New("dependent fetch failed")

	// ErrNoForecast is returned by operations that need a prior successful search.
	ErrNoForecast = errors.New("no forecast loaded")

	// ErrEmptyQuery is returned when a search has neither a city nor a selection.
	ErrEmptyQuery = errors.New("empty search query")
)
