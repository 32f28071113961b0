package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ca-srg/tzbuddy/domain"
	"github.com/ca-srg/tzbuddy/domain/repository"
	"github.com/ca-srg/tzbuddy/domain/valueobject"
)

// TimezoneServiceImpl implements the repository.TimezoneService interface
type TimezoneServiceImpl struct {
	logger       domain.Logger
	zoneCache    sync.Map // IANA name -> valueobject.TimezoneID
	locationMu   sync.RWMutex
	userLocation *time.Location
	detectionMu  sync.Mutex
	detected     bool
}

// NewTimezoneServiceImpl creates a new instance of TimezoneServiceImpl
func NewTimezoneServiceImpl(logger domain.Logger) *TimezoneServiceImpl {
	return &TimezoneServiceImpl{
		logger: logger,
	}
}

// Resolve validates an IANA timezone identifier, caching loaded zones
func (s *TimezoneServiceImpl) Resolve(identifier string) (valueobject.TimezoneID, error) {
	if cached, ok := s.zoneCache.Load(identifier); ok {
		return cached.(valueobject.TimezoneID), nil
	}

	zone, err := valueobject.NewTimezoneID(identifier)
	if err != nil {
		return valueobject.TimezoneID{}, domain.ErrUnknownTimezoneWithCause(identifier, err)
	}

	s.zoneCache.Store(identifier, zone)
	return zone, nil
}

// GetUserTimezone returns the user's local timezone
func (s *TimezoneServiceImpl) GetUserTimezone() (*time.Location, error) {
	s.locationMu.RLock()
	if s.userLocation != nil {
		s.locationMu.RUnlock()
		return s.userLocation, nil
	}
	s.locationMu.RUnlock()

	return s.detectSystemTimezone()
}

// Today returns the current date at midnight in the user's timezone.
// It anchors date-less time input.
func (s *TimezoneServiceImpl) Today() time.Time {
	loc, err := s.GetUserTimezone()
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// GetTimezoneInfo returns timezone information for logging and display
func (s *TimezoneServiceImpl) GetTimezoneInfo() repository.TimezoneInfo {
	loc, err := s.GetUserTimezone()
	if err != nil {
		return repository.TimezoneInfo{
			Name:            "UTC",
			Offset:          "+00:00",
			OffsetSeconds:   0,
			IsDST:           false,
			DetectionMethod: "fallback",
		}
	}

	now := time.Now().In(loc)
	_, offset := now.Zone()

	sign := "+"
	offsetSeconds := offset
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	hours := offset / 3600
	minutes := (offset % 3600) / 60
	offsetStr := fmt.Sprintf("%s%02d:%02d", sign, hours, minutes)

	return repository.TimezoneInfo{
		Name:            loc.String(),
		Offset:          offsetStr,
		OffsetSeconds:   offsetSeconds,
		IsDST:           now.IsDST(),
		DetectionMethod: "system",
	}
}

// detectSystemTimezone detects the system timezone
func (s *TimezoneServiceImpl) detectSystemTimezone() (*time.Location, error) {
	s.detectionMu.Lock()
	defer s.detectionMu.Unlock()

	s.locationMu.RLock()
	if s.detected && s.userLocation != nil {
		s.locationMu.RUnlock()
		return s.userLocation, nil
	}
	s.locationMu.RUnlock()

	// Method 1: time.Local (most reliable)
	loc := time.Local
	if loc != nil && loc.String() != "Local" {
		s.logger.Debug(context.Background(), "Detected timezone using time.Local",
			domain.NewField("timezone", loc.String()))
		s.setUserLocation(loc)
		return loc, nil
	}

	// Method 2: TZ environment variable
	if tzEnv := os.Getenv("TZ"); tzEnv != "" {
		loc, err := time.LoadLocation(tzEnv)
		if err == nil {
			s.logger.Debug(context.Background(), "Detected timezone from TZ environment variable",
				domain.NewField("timezone", loc.String()))
			s.setUserLocation(loc)
			return loc, nil
		}
		s.logger.Warn(context.Background(), "Failed to load timezone from TZ environment variable",
			domain.NewField("TZ", tzEnv),
			domain.NewField("error", err.Error()))
	}

	// Method 3: /etc/localtime symlink (Unix)
	if linkPath, err := os.Readlink("/etc/localtime"); err == nil {
		parts := strings.Split(linkPath, "/zoneinfo/")
		if len(parts) > 1 {
			loc, err := time.LoadLocation(parts[1])
			if err == nil {
				s.logger.Debug(context.Background(), "Detected timezone from /etc/localtime",
					domain.NewField("timezone", loc.String()))
				s.setUserLocation(loc)
				return loc, nil
			}
		}
	}

	// Fallback to UTC
	s.logger.Warn(context.Background(), "Failed to detect system timezone, using UTC as fallback")
	s.setUserLocation(time.UTC)
	return time.UTC, domain.ErrTimezoneDetection("UTC")
}

func (s *TimezoneServiceImpl) setUserLocation(loc *time.Location) {
	s.locationMu.Lock()
	defer s.locationMu.Unlock()
	s.userLocation = loc
	s.detected = true
}
