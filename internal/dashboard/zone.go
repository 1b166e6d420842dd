package dashboard

import (
	"fmt"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"
)

// ZoneResolver decides which time zone defines "local day" for a search result.
type ZoneResolver interface {
	Zone(lat, lon float64) *time.Location
}

// FixedZone always answers the viewer's zone.
type FixedZone struct {
	Loc *time.Location
}

func (z FixedZone) Zone(_, _ float64) *time.Location {
	if z.Loc == nil {
		return time.Local
	}
	return z.Loc
}

// CoordinateZones answers the IANA zone of the searched coordinate, falling
// back to a fixed zone when the coordinate has none.
type CoordinateZones struct {
	finder   tzf.F
	fallback *time.Location

	mu    sync.Mutex
	cache map[string]*time.Location
}

// NewCoordinateZones loads the timezone finder; this holds the boundary data
// in memory, so create one per process.
func NewCoordinateZones(fallback *time.Location) (*CoordinateZones, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize timezone finder: %w", err)
	}
	if fallback == nil {
		fallback = time.Local
	}
	return &CoordinateZones{
		finder:   finder,
		fallback: fallback,
		cache:    make(map[string]*time.Location),
	}, nil
}

func (z *CoordinateZones) Zone(lat, lon float64) *time.Location {
	name := z.finder.GetTimezoneName(lon, lat)
	if name == "" {
		return z.fallback
	}

	z.mu.Lock()
	defer z.mu.Unlock()
	if loc, ok := z.cache[name]; ok {
		return loc
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return z.fallback
	}
	z.cache[name] = loc
	return loc
}
