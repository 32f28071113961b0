package impl

import (
	"time"

	"github.com/ca-srg/tzbuddy/domain"
	"github.com/ca-srg/tzbuddy/domain/entity"
	"github.com/ca-srg/tzbuddy/domain/repository"
	"github.com/ca-srg/tzbuddy/domain/valueobject"
	"github.com/ca-srg/tzbuddy/infrastructure/config"
)

// stubTimezoneService resolves against the real timezone database with
// a fixed "today"
type stubTimezoneService struct {
	today time.Time
}

func (s *stubTimezoneService) Resolve(identifier string) (valueobject.TimezoneID, error) {
	zone, err := valueobject.NewTimezoneID(identifier)
	if err != nil {
		return valueobject.TimezoneID{}, domain.ErrUnknownTimezoneWithCause(identifier, err)
	}
	return zone, nil
}

func (s *stubTimezoneService) GetUserTimezone() (*time.Location, error) {
	return time.UTC, nil
}

func (s *stubTimezoneService) Today() time.Time {
	if s.today.IsZero() {
		return time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)
	}
	return s.today
}

func (s *stubTimezoneService) GetTimezoneInfo() repository.TimezoneInfo {
	return repository.TimezoneInfo{Name: "UTC", Offset: "+00:00", DetectionMethod: "system"}
}

// stubConfigService serves a fixed configuration
type stubConfigService struct {
	cfg *config.AppConfig
}

func newStubConfigService() *stubConfigService {
	return &stubConfigService{cfg: config.DefaultConfig()}
}

func (s *stubConfigService) GetConfig() *config.AppConfig { return s.cfg }
func (s *stubConfigService) GetConfigWithSources() (*config.AppConfig, map[string]config.ConfigSource) {
	return s.cfg, s.cfg.ConfigSources
}
func (s *stubConfigService) UpdateConfig(newConfig *config.AppConfig) error {
	s.cfg = newConfig
	return nil
}
func (s *stubConfigService) SaveConfig() error          { return nil }
func (s *stubConfigService) ReloadConfig() error        { return nil }
func (s *stubConfigService) GetConfigPath() string      { return "/tmp/tzbuddy-test/config.json" }
func (s *stubConfigService) CreateDefaultConfig() error { return nil }

// stubLocationService resolves parties from a fixed name-to-zone map
type stubLocationService struct {
	zones map[string]string
}

func (s *stubLocationService) ResolveLocation(query string) (*entity.ResolvedLocation, error) {
	name, ok := s.zones[query]
	if !ok {
		return nil, domain.ErrLocationUnresolved(query, "not in stub map")
	}
	zone, err := valueobject.NewTimezoneID(name)
	if err != nil {
		return nil, err
	}
	return &entity.ResolvedLocation{Query: query, Zone: zone}, nil
}

func (s *stubLocationService) SearchHistory() ([]string, error) { return nil, nil }
func (s *stubLocationService) ClearCache() error                { return nil }
func (s *stubLocationService) CacheStats() (*repository.CacheStats, error) {
	return &repository.CacheStats{}, nil
}

// stubGeocoder answers from a fixed map; absent queries are misses
type stubGeocoder struct {
	results map[string]entity.LocationInfo
	err     error
	calls   int
}

func (s *stubGeocoder) Geocode(query string) (*entity.LocationInfo, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	info, ok := s.results[query]
	if !ok {
		return nil, nil
	}
	return &info, nil
}

// stubTimezoneFinder returns a fixed zone for every coordinate
type stubTimezoneFinder struct {
	zone string
	err  error
}

func (s *stubTimezoneFinder) TimezoneAt(latitude, longitude float64) (string, error) {
	return s.zone, s.err
}

// memLocationCache is an in-memory LocationCacheRepository
type memLocationCache struct {
	locations map[string]repository.CachedLocation
	history   []string
}

func newMemLocationCache() *memLocationCache {
	return &memLocationCache{locations: make(map[string]repository.CachedLocation)}
}

func (m *memLocationCache) GetCachedLocation(query string) (*repository.CachedLocation, error) {
	cached, ok := m.locations[query]
	if !ok {
		return nil, nil
	}
	return &cached, nil
}

func (m *memLocationCache) CacheLocation(query string, info entity.LocationInfo, timezone string) error {
	m.locations[query] = repository.CachedLocation{
		Query:     query,
		Address:   info.Address,
		Latitude:  info.Latitude,
		Longitude: info.Longitude,
		Timezone:  timezone,
		CachedAt:  time.Now(),
	}
	return nil
}

func (m *memLocationCache) GetSearchHistory(limit int) ([]string, error) {
	return m.history, nil
}

func (m *memLocationCache) AddToHistory(query string) error {
	m.history = append([]string{query}, m.history...)
	return nil
}

func (m *memLocationCache) ClearCache() error {
	m.locations = make(map[string]repository.CachedLocation)
	m.history = nil
	return nil
}

func (m *memLocationCache) Stats() (*repository.CacheStats, error) {
	return &repository.CacheStats{
		HistoryCount:    len(m.history),
		CachedLocations: len(m.locations),
	}, nil
}

// stubConfigRepo is an in-memory ConfigRepository
type stubConfigRepo struct {
	stored  *config.AppConfig
	loadErr error
}

func (r *stubConfigRepo) Exists() (bool, error) { return r.stored != nil, nil }
func (r *stubConfigRepo) Load() (*config.AppConfig, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.stored, nil
}
func (r *stubConfigRepo) Save(cfg *config.AppConfig) error {
	r.stored = cfg
	return nil
}
func (r *stubConfigRepo) GetConfigPath() string                { return "/tmp/tzbuddy-test/config.json" }
func (r *stubConfigRepo) EnsureConfigDir() error               { return nil }
func (r *stubConfigRepo) Validate(cfg *config.AppConfig) error { return cfg.Validate() }

// recordingWriter captures what was written
type recordingWriter struct {
	format    entity.ExportFormat
	lastPath  string
	lastValue *entity.ConversionResult
	err       error
}

func (w *recordingWriter) Write(result *entity.ConversionResult, outputPath string) error {
	if w.err != nil {
		return w.err
	}
	w.lastPath = outputPath
	w.lastValue = result
	return nil
}

func (w *recordingWriter) Format() entity.ExportFormat { return w.format }
