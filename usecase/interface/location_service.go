package usecase

import (
	"github.com/ca-srg/tzbuddy/domain/entity"
	"github.com/ca-srg/tzbuddy/domain/repository"
)

// LocationService defines the interface for resolving free-form
// locations to timezones
type LocationService interface {
	// ResolveLocation turns user input (shortcut, IANA name, or place
	// name) into a timezone, consulting the cache before geocoding
	ResolveLocation(query string) (*entity.ResolvedLocation, error)

	// SearchHistory returns recent successful lookups, newest first
	SearchHistory() ([]string, error)

	// ClearCache wipes the location cache and search history
	ClearCache() error

	// CacheStats reports cache contents for display
	CacheStats() (*repository.CacheStats, error)
}
