package repository

import (
	"time"

	"github.com/ca-srg/tzbuddy/domain/entity"
)

// LocationCacheRepository defines the interface for the persistent
// geocoding cache and search history store
type LocationCacheRepository interface {
	// GetCachedLocation returns the cached resolution for a location
	// query, or nil when absent or expired
	GetCachedLocation(query string) (*CachedLocation, error)

	// CacheLocation stores a resolved location with its timezone
	CacheLocation(query string, info entity.LocationInfo, timezone string) error

	// GetSearchHistory returns recent successful searches, newest
	// first. A non-positive limit means the configured maximum.
	GetSearchHistory(limit int) ([]string, error)

	// AddToHistory records a successful search, deduplicating and
	// trimming to the configured history size
	AddToHistory(query string) error

	// ClearCache removes all cached locations and history entries
	ClearCache() error

	// Stats returns cache statistics for display
	Stats() (*CacheStats, error)
}

// CachedLocation is a resolved location as stored in the cache
type CachedLocation struct {
	Query     string
	Address   string
	Latitude  float64
	Longitude float64
	Timezone  string
	CachedAt  time.Time
}

// CacheStats describes the current cache contents
type CacheStats struct {
	HistoryCount    int
	CachedLocations int
	Path            string
}
