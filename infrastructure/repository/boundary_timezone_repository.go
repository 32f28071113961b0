package repository

import (
	"errors"

	gotz "github.com/ugjka/go-tz/v2"

	"github.com/ca-srg/tzbuddy/domain"
	"github.com/ca-srg/tzbuddy/domain/repository"
)

// BoundaryTimezoneRepository implements repository.TimezoneFinderRepository
// using embedded timezone boundary data, so coordinate lookups work offline
type BoundaryTimezoneRepository struct{}

// NewBoundaryTimezoneRepository creates a new BoundaryTimezoneRepository instance
func NewBoundaryTimezoneRepository() repository.TimezoneFinderRepository {
	return &BoundaryTimezoneRepository{}
}

// TimezoneAt returns the IANA zone containing the given coordinates.
// Coordinates outside every boundary (open ocean) return "" without error.
func (r *BoundaryTimezoneRepository) TimezoneAt(latitude, longitude float64) (string, error) {
	zones, err := gotz.GetZone(gotz.Point{Lat: latitude, Lon: longitude})
	if err != nil {
		if errors.Is(err, gotz.ErrNoZoneFound) {
			return "", nil
		}
		return "", domain.ErrGeocodingWithCause("timezone boundary lookup", err)
	}
	if len(zones) == 0 {
		return "", nil
	}
	return zones[0], nil
}
