package impl

import (
	"context"
	"strings"

	"github.com/ca-srg/tzbuddy/domain"
	"github.com/ca-srg/tzbuddy/domain/entity"
	"github.com/ca-srg/tzbuddy/domain/repository"
	"github.com/ca-srg/tzbuddy/domain/valueobject"
	usecase "github.com/ca-srg/tzbuddy/usecase/interface"
)

// LocationServiceImpl implements the LocationService interface. It
// resolves user input through a pipeline: shortcut table, direct IANA
// lookup, cache, then geocoding plus reverse timezone lookup.
type LocationServiceImpl struct {
	timezoneService repository.TimezoneService
	geocodingRepo   repository.GeocodingRepository
	timezoneFinder  repository.TimezoneFinderRepository
	cacheRepo       repository.LocationCacheRepository
	shortcuts       valueobject.ShortcutTable
	logger          domain.Logger
}

// NewLocationService creates a new LocationService. cacheRepo may be
// nil when caching is disabled.
func NewLocationService(
	timezoneService repository.TimezoneService,
	geocodingRepo repository.GeocodingRepository,
	timezoneFinder repository.TimezoneFinderRepository,
	cacheRepo repository.LocationCacheRepository,
	logger domain.Logger,
) usecase.LocationService {
	return &LocationServiceImpl{
		timezoneService: timezoneService,
		geocodingRepo:   geocodingRepo,
		timezoneFinder:  timezoneFinder,
		cacheRepo:       cacheRepo,
		shortcuts:       valueobject.DefaultShortcutTable(),
		logger:          logger,
	}
}

// ResolveLocation turns user input into a timezone
func (s *LocationServiceImpl) ResolveLocation(query string) (*entity.ResolvedLocation, error) {
	ctx := context.Background()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidInput("location", "location must not be empty")
	}

	// Shortcut aliases win over everything else
	if s.shortcuts.Has(query) {
		zone, err := s.timezoneService.Resolve(s.shortcuts.Resolve(query))
		if err != nil {
			return nil, err
		}
		s.recordHistory(query)
		return &entity.ResolvedLocation{
			Query:        query,
			Zone:         zone,
			FromShortcut: true,
		}, nil
	}

	// Direct IANA identifiers need no geocoding
	if zone, err := s.timezoneService.Resolve(query); err == nil {
		s.recordHistory(query)
		return &entity.ResolvedLocation{
			Query: query,
			Zone:  zone,
		}, nil
	}

	// Cached resolutions skip the network round trip
	if s.cacheRepo != nil {
		cached, err := s.cacheRepo.GetCachedLocation(query)
		if err != nil {
			s.logger.Warn(ctx, "Location cache lookup failed",
				domain.NewField("query", query),
				domain.NewField("error", err.Error()))
		} else if cached != nil {
			zone, err := s.timezoneService.Resolve(cached.Timezone)
			if err == nil {
				s.recordHistory(query)
				return &entity.ResolvedLocation{
					Query:     query,
					Info:      entity.NewLocationInfo(cached.Address, cached.Latitude, cached.Longitude),
					Zone:      zone,
					FromCache: true,
				}, nil
			}
			s.logger.Warn(ctx, "Cached timezone no longer resolves, re-geocoding",
				domain.NewField("query", query),
				domain.NewField("timezone", cached.Timezone))
		}
	}

	if s.geocodingRepo == nil {
		return nil, domain.ErrLocationUnresolved(query, "geocoding is disabled")
	}

	info, err := s.geocodingRepo.Geocode(query)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, domain.ErrLocationUnresolved(query, "no geocoding results")
	}

	zoneName, err := s.timezoneFinder.TimezoneAt(info.Latitude, info.Longitude)
	if err != nil {
		return nil, err
	}
	if zoneName == "" {
		return nil, domain.ErrLocationUnresolved(query, "coordinates are outside every timezone boundary")
	}

	zone, err := s.timezoneService.Resolve(zoneName)
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.CacheLocation(query, *info, zone.Name()); err != nil {
			s.logger.Warn(ctx, "Failed to cache resolved location",
				domain.NewField("query", query),
				domain.NewField("error", err.Error()))
		}
	}
	s.recordHistory(query)

	s.logger.Debug(ctx, "Resolved location via geocoding",
		domain.NewField("query", query),
		domain.NewField("timezone", zone.Name()))

	return &entity.ResolvedLocation{
		Query: query,
		Info:  *info,
		Zone:  zone,
	}, nil
}

// SearchHistory returns recent successful lookups, newest first
func (s *LocationServiceImpl) SearchHistory() ([]string, error) {
	if s.cacheRepo == nil {
		return nil, nil
	}
	return s.cacheRepo.GetSearchHistory(0)
}

// ClearCache wipes the location cache and search history
func (s *LocationServiceImpl) ClearCache() error {
	if s.cacheRepo == nil {
		return nil
	}
	return s.cacheRepo.ClearCache()
}

// CacheStats reports cache contents for display
func (s *LocationServiceImpl) CacheStats() (*repository.CacheStats, error) {
	if s.cacheRepo == nil {
		return &repository.CacheStats{}, nil
	}
	return s.cacheRepo.Stats()
}

func (s *LocationServiceImpl) recordHistory(query string) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.AddToHistory(query); err != nil {
		s.logger.Warn(context.Background(), "Failed to record search history",
			domain.NewField("query", query),
			domain.NewField("error", err.Error()))
	}
}
