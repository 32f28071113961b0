package repository

import (
	"github.com/ca-srg/tzbuddy/domain/entity"
)

// GeocodingRepository defines the interface for free-text location lookup
type GeocodingRepository interface {
	// Geocode resolves free text into an address and coordinates.
	// A miss returns (nil, nil); errors are reserved for transport and
	// protocol failures.
	Geocode(query string) (*entity.LocationInfo, error)
}

// TimezoneFinderRepository defines the interface for reverse timezone
// lookup from coordinates
type TimezoneFinderRepository interface {
	// TimezoneAt returns the IANA identifier for the zone containing the
	// coordinates, or "" when none is found
	TimezoneAt(latitude, longitude float64) (string, error)
}
