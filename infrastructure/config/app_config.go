package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
)

// ConfigSource indicates where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceJSON    ConfigSource = "json"
	SourceEnv     ConfigSource = "env"
)

// AppConfig represents the application configuration
type AppConfig struct {
	// Geocoding contains location lookup configuration
	Geocoding *GeocodingConfig `json:"geocoding,omitempty"`

	// Cache contains location cache configuration
	Cache *CacheConfig `json:"cache,omitempty"`

	// Conversion contains timezone conversion configuration
	Conversion *ConversionConfig `json:"conversion,omitempty"`

	// Schedule contains meeting scheduler configuration
	Schedule *ScheduleConfig `json:"schedule,omitempty"`

	// Export contains report export configuration
	Export *ExportConfig `json:"export,omitempty"`

	// Logging contains logging configuration
	Logging *LoggingConfig `json:"logging,omitempty"`

	// ConfigSources tracks where each configuration value came from
	ConfigSources map[string]ConfigSource `json:"-"`
}

// GeocodingConfig represents forward geocoding configuration
type GeocodingConfig struct {
	// Enabled toggles remote geocoding for free-form locations
	Enabled bool `json:"enabled" env:"TZBUDDY_GEOCODING_ENABLED"`

	// BaseURL is the Nominatim-compatible endpoint
	BaseURL string `json:"base_url,omitempty" env:"TZBUDDY_GEOCODING_BASE_URL"`

	// UserAgent is sent with every geocoding request
	UserAgent string `json:"user_agent,omitempty" env:"TZBUDDY_GEOCODING_USER_AGENT"`

	// TimeoutSeconds is the HTTP timeout for geocoding requests
	TimeoutSeconds int `json:"timeout_seconds,omitempty" env:"TZBUDDY_GEOCODING_TIMEOUT_SECONDS"`
}

// Timeout returns the request timeout as a duration
func (c *GeocodingConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheConfig represents location cache configuration
type CacheConfig struct {
	// Enabled toggles the on-disk location cache
	Enabled bool `json:"enabled" env:"TZBUDDY_CACHE_ENABLED"`

	// Path overrides the default cache database location
	Path string `json:"path,omitempty" env:"TZBUDDY_CACHE_PATH"`

	// TTLDays is how long cached locations stay valid
	TTLDays int `json:"ttl_days,omitempty" env:"TZBUDDY_CACHE_TTL_DAYS"`

	// MaxLocations caps the number of cached locations
	MaxLocations int `json:"max_locations,omitempty" env:"TZBUDDY_CACHE_MAX_LOCATIONS"`

	// HistoryLimit caps the stored search history
	HistoryLimit int `json:"history_limit,omitempty" env:"TZBUDDY_CACHE_HISTORY_LIMIT"`
}

// ConversionConfig represents timezone conversion configuration
type ConversionConfig struct {
	// MajorTimezones is the comma-separated default target zone list
	MajorTimezones string `json:"major_timezones,omitempty" env:"TZBUDDY_MAJOR_TIMEZONES"`
}

// MajorTimezoneList returns the configured target zones in order
func (c *ConversionConfig) MajorTimezoneList() []string {
	return splitCommaSeparated(c.MajorTimezones)
}

// ScheduleConfig represents meeting scheduler configuration
type ScheduleConfig struct {
	// BusinessStartHour is the start of the business window (inclusive)
	BusinessStartHour int `json:"business_start_hour,omitempty" env:"TZBUDDY_BUSINESS_START_HOUR"`

	// BusinessEndHour is the end of the business window (exclusive)
	BusinessEndHour int `json:"business_end_hour,omitempty" env:"TZBUDDY_BUSINESS_END_HOUR"`

	// HorizonDays is how many days ahead the slot scan covers
	HorizonDays int `json:"horizon_days,omitempty" env:"TZBUDDY_SCHEDULE_HORIZON_DAYS"`

	// MaxSuggestions caps the number of suggested meeting slots
	MaxSuggestions int `json:"max_suggestions,omitempty" env:"TZBUDDY_SCHEDULE_MAX_SUGGESTIONS"`
}

// ExportConfig represents report export configuration
type ExportConfig struct {
	// DefaultFormat is used when no format is given ("csv" or "json")
	DefaultFormat string `json:"default_format,omitempty" env:"TZBUDDY_EXPORT_FORMAT"`

	// OutputDir is where generated reports are written
	OutputDir string `json:"output_dir,omitempty" env:"TZBUDDY_EXPORT_OUTPUT_DIR"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `json:"level,omitempty" env:"TZBUDDY_LOG_LEVEL"`

	// Debug enables debug mode
	Debug bool `json:"debug" env:"TZBUDDY_DEBUG"`

	// Promtail contains Promtail client configuration
	Promtail *PromtailConfig `json:"promtail,omitempty"`
}

// PromtailConfig represents Promtail-specific configuration
type PromtailConfig struct {
	// URL is the Loki push endpoint
	URL string `json:"url,omitempty" env:"TZBUDDY_LOKI_URL"`

	// Username for Loki authentication
	Username string `json:"username,omitempty" env:"TZBUDDY_LOKI_USERNAME"`

	// Password for Loki authentication
	Password string `json:"password,omitempty" env:"TZBUDDY_LOKI_PASSWORD"`

	// BatchWaitSeconds is the Promtail batch wait time in seconds
	BatchWaitSeconds int `json:"batch_wait_seconds,omitempty" env:"TZBUDDY_PROMTAIL_BATCH_WAIT_SECONDS"`

	// BatchCapacity is the Promtail batch capacity
	BatchCapacity int `json:"batch_capacity,omitempty" env:"TZBUDDY_PROMTAIL_BATCH_CAPACITY"`
}

// DefaultMajorTimezones is the built-in conversion target list
const DefaultMajorTimezones = "US/Eastern,US/Central,US/Mountain,US/Pacific," +
	"Europe/London,Europe/Paris,Asia/Tokyo,Asia/Shanghai,Australia/Sydney,UTC"

// DefaultConfig returns a configuration with default values
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Geocoding: &GeocodingConfig{
			Enabled:        true,
			BaseURL:        "https://nominatim.openstreetmap.org",
			UserAgent:      "tzbuddy/1.0",
			TimeoutSeconds: 10,
		},
		Cache: &CacheConfig{
			Enabled:      true,
			TTLDays:      30,
			MaxLocations: 100,
			HistoryLimit: 20,
		},
		Conversion: &ConversionConfig{
			MajorTimezones: DefaultMajorTimezones,
		},
		Schedule: &ScheduleConfig{
			BusinessStartHour: 9,
			BusinessEndHour:   17,
			HorizonDays:       7,
			MaxSuggestions:    10,
		},
		Export: &ExportConfig{
			DefaultFormat: "csv",
			OutputDir:     ".",
		},
		Logging: &LoggingConfig{
			Level: "info",
			Debug: false,
			Promtail: &PromtailConfig{
				BatchWaitSeconds: 2,
				BatchCapacity:    100,
			},
		},
		ConfigSources: make(map[string]ConfigSource),
	}
}

// CachePath resolves the cache database path, substituting the
// platform default when no override is configured.
func (c *AppConfig) CachePath() (string, error) {
	if c.Cache != nil && c.Cache.Path != "" {
		return c.Cache.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "tzbuddy", "tzbuddy.db"), nil
}

// LoadFromEnv loads configuration values from environment variables,
// overriding whatever is already present. Each overridden value is
// recorded in ConfigSources.
func (c *AppConfig) LoadFromEnv() error {
	if c.ConfigSources == nil {
		c.ConfigSources = make(map[string]ConfigSource)
	}

	if c.Geocoding != nil {
		before := *c.Geocoding
		if _, err := env.UnmarshalFromEnviron(c.Geocoding); err != nil {
			return fmt.Errorf("failed to unmarshal geocoding config: %w", err)
		}
		c.trackChange("geocoding.enabled", before.Enabled != c.Geocoding.Enabled)
		c.trackChange("geocoding.base_url", before.BaseURL != c.Geocoding.BaseURL)
		c.trackChange("geocoding.user_agent", before.UserAgent != c.Geocoding.UserAgent)
		c.trackChange("geocoding.timeout_seconds", before.TimeoutSeconds != c.Geocoding.TimeoutSeconds)
	}

	if c.Cache != nil {
		before := *c.Cache
		if _, err := env.UnmarshalFromEnviron(c.Cache); err != nil {
			return fmt.Errorf("failed to unmarshal cache config: %w", err)
		}
		c.trackChange("cache.enabled", before.Enabled != c.Cache.Enabled)
		c.trackChange("cache.path", before.Path != c.Cache.Path)
		c.trackChange("cache.ttl_days", before.TTLDays != c.Cache.TTLDays)
		c.trackChange("cache.max_locations", before.MaxLocations != c.Cache.MaxLocations)
		c.trackChange("cache.history_limit", before.HistoryLimit != c.Cache.HistoryLimit)
	}

	if c.Conversion != nil {
		before := *c.Conversion
		if _, err := env.UnmarshalFromEnviron(c.Conversion); err != nil {
			return fmt.Errorf("failed to unmarshal conversion config: %w", err)
		}
		c.trackChange("conversion.major_timezones", before.MajorTimezones != c.Conversion.MajorTimezones)
	}

	if c.Schedule != nil {
		before := *c.Schedule
		if _, err := env.UnmarshalFromEnviron(c.Schedule); err != nil {
			return fmt.Errorf("failed to unmarshal schedule config: %w", err)
		}
		c.trackChange("schedule.business_start_hour", before.BusinessStartHour != c.Schedule.BusinessStartHour)
		c.trackChange("schedule.business_end_hour", before.BusinessEndHour != c.Schedule.BusinessEndHour)
		c.trackChange("schedule.horizon_days", before.HorizonDays != c.Schedule.HorizonDays)
		c.trackChange("schedule.max_suggestions", before.MaxSuggestions != c.Schedule.MaxSuggestions)
	}

	if c.Export != nil {
		before := *c.Export
		if _, err := env.UnmarshalFromEnviron(c.Export); err != nil {
			return fmt.Errorf("failed to unmarshal export config: %w", err)
		}
		c.trackChange("export.default_format", before.DefaultFormat != c.Export.DefaultFormat)
		c.trackChange("export.output_dir", before.OutputDir != c.Export.OutputDir)
	}

	if c.Logging != nil {
		before := *c.Logging
		if _, err := env.UnmarshalFromEnviron(c.Logging); err != nil {
			return fmt.Errorf("failed to unmarshal logging config: %w", err)
		}
		c.trackChange("logging.level", before.Level != c.Logging.Level)
		c.trackChange("logging.debug", before.Debug != c.Logging.Debug)

		if c.Logging.Promtail != nil {
			beforePromtail := *c.Logging.Promtail
			if _, err := env.UnmarshalFromEnviron(c.Logging.Promtail); err != nil {
				return fmt.Errorf("failed to unmarshal promtail config: %w", err)
			}
			c.trackChange("logging.promtail.url", beforePromtail.URL != c.Logging.Promtail.URL)
			c.trackChange("logging.promtail.username", beforePromtail.Username != c.Logging.Promtail.Username)
			c.trackChange("logging.promtail.password", beforePromtail.Password != c.Logging.Promtail.Password)
			c.trackChange("logging.promtail.batch_wait_seconds", beforePromtail.BatchWaitSeconds != c.Logging.Promtail.BatchWaitSeconds)
			c.trackChange("logging.promtail.batch_capacity", beforePromtail.BatchCapacity != c.Logging.Promtail.BatchCapacity)
		}
	}

	return nil
}

func (c *AppConfig) trackChange(key string, changed bool) {
	if changed {
		c.ConfigSources[key] = SourceEnv
	}
}

// MarkDefaults records every known key as coming from defaults.
// Call this on a fresh DefaultConfig before merging other sources.
func (c *AppConfig) MarkDefaults() {
	if c.ConfigSources == nil {
		c.ConfigSources = make(map[string]ConfigSource)
	}
	for _, key := range []string{
		"geocoding.enabled", "geocoding.base_url", "geocoding.user_agent", "geocoding.timeout_seconds",
		"cache.enabled", "cache.path", "cache.ttl_days", "cache.max_locations", "cache.history_limit",
		"conversion.major_timezones",
		"schedule.business_start_hour", "schedule.business_end_hour", "schedule.horizon_days", "schedule.max_suggestions",
		"export.default_format", "export.output_dir",
		"logging.level", "logging.debug",
		"logging.promtail.url", "logging.promtail.username", "logging.promtail.password",
		"logging.promtail.batch_wait_seconds", "logging.promtail.batch_capacity",
	} {
		c.ConfigSources[key] = SourceDefault
	}
}

// MergeJSONConfig merges values from a JSON-loaded config into the
// receiver. Only non-zero values from the JSON config are applied, and
// each applied value is recorded as coming from JSON.
func (c *AppConfig) MergeJSONConfig(jsonConfig *AppConfig) {
	if jsonConfig == nil {
		return
	}
	if c.ConfigSources == nil {
		c.ConfigSources = make(map[string]ConfigSource)
	}

	if jsonConfig.Geocoding != nil {
		if c.Geocoding == nil {
			c.Geocoding = &GeocodingConfig{}
		}
		c.mergeBool(&c.Geocoding.Enabled, jsonConfig.Geocoding.Enabled, "geocoding.enabled")
		c.mergeString(&c.Geocoding.BaseURL, jsonConfig.Geocoding.BaseURL, "geocoding.base_url")
		c.mergeString(&c.Geocoding.UserAgent, jsonConfig.Geocoding.UserAgent, "geocoding.user_agent")
		c.mergeInt(&c.Geocoding.TimeoutSeconds, jsonConfig.Geocoding.TimeoutSeconds, "geocoding.timeout_seconds")
	}

	if jsonConfig.Cache != nil {
		if c.Cache == nil {
			c.Cache = &CacheConfig{}
		}
		c.mergeBool(&c.Cache.Enabled, jsonConfig.Cache.Enabled, "cache.enabled")
		c.mergeString(&c.Cache.Path, jsonConfig.Cache.Path, "cache.path")
		c.mergeInt(&c.Cache.TTLDays, jsonConfig.Cache.TTLDays, "cache.ttl_days")
		c.mergeInt(&c.Cache.MaxLocations, jsonConfig.Cache.MaxLocations, "cache.max_locations")
		c.mergeInt(&c.Cache.HistoryLimit, jsonConfig.Cache.HistoryLimit, "cache.history_limit")
	}

	if jsonConfig.Conversion != nil {
		if c.Conversion == nil {
			c.Conversion = &ConversionConfig{}
		}
		c.mergeString(&c.Conversion.MajorTimezones, jsonConfig.Conversion.MajorTimezones, "conversion.major_timezones")
	}

	if jsonConfig.Schedule != nil {
		if c.Schedule == nil {
			c.Schedule = &ScheduleConfig{}
		}
		c.mergeInt(&c.Schedule.BusinessStartHour, jsonConfig.Schedule.BusinessStartHour, "schedule.business_start_hour")
		c.mergeInt(&c.Schedule.BusinessEndHour, jsonConfig.Schedule.BusinessEndHour, "schedule.business_end_hour")
		c.mergeInt(&c.Schedule.HorizonDays, jsonConfig.Schedule.HorizonDays, "schedule.horizon_days")
		c.mergeInt(&c.Schedule.MaxSuggestions, jsonConfig.Schedule.MaxSuggestions, "schedule.max_suggestions")
	}

	if jsonConfig.Export != nil {
		if c.Export == nil {
			c.Export = &ExportConfig{}
		}
		c.mergeString(&c.Export.DefaultFormat, jsonConfig.Export.DefaultFormat, "export.default_format")
		c.mergeString(&c.Export.OutputDir, jsonConfig.Export.OutputDir, "export.output_dir")
	}

	if jsonConfig.Logging != nil {
		if c.Logging == nil {
			c.Logging = &LoggingConfig{}
		}
		c.mergeString(&c.Logging.Level, jsonConfig.Logging.Level, "logging.level")
		c.mergeBool(&c.Logging.Debug, jsonConfig.Logging.Debug, "logging.debug")

		if jsonConfig.Logging.Promtail != nil {
			if c.Logging.Promtail == nil {
				c.Logging.Promtail = &PromtailConfig{}
			}
			c.mergeString(&c.Logging.Promtail.URL, jsonConfig.Logging.Promtail.URL, "logging.promtail.url")
			c.mergeString(&c.Logging.Promtail.Username, jsonConfig.Logging.Promtail.Username, "logging.promtail.username")
			c.mergeString(&c.Logging.Promtail.Password, jsonConfig.Logging.Promtail.Password, "logging.promtail.password")
			c.mergeInt(&c.Logging.Promtail.BatchWaitSeconds, jsonConfig.Logging.Promtail.BatchWaitSeconds, "logging.promtail.batch_wait_seconds")
			c.mergeInt(&c.Logging.Promtail.BatchCapacity, jsonConfig.Logging.Promtail.BatchCapacity, "logging.promtail.batch_capacity")
		}
	}
}

func (c *AppConfig) mergeString(dst *string, src string, key string) {
	if src != "" && *dst != src {
		*dst = src
		c.ConfigSources[key] = SourceJSON
	}
}

func (c *AppConfig) mergeInt(dst *int, src int, key string) {
	if src != 0 && *dst != src {
		*dst = src
		c.ConfigSources[key] = SourceJSON
	}
}

func (c *AppConfig) mergeBool(dst *bool, src bool, key string) {
	if *dst != src {
		*dst = src
		c.ConfigSources[key] = SourceJSON
	}
}

// Validate checks the configuration for consistency
func (c *AppConfig) Validate() error {
	if c.Geocoding != nil {
		if c.Geocoding.TimeoutSeconds < 1 {
			return fmt.Errorf("geocoding timeout must be at least 1 second, got %d", c.Geocoding.TimeoutSeconds)
		}
		if c.Geocoding.Enabled && c.Geocoding.BaseURL == "" {
			return fmt.Errorf("geocoding base URL is required when geocoding is enabled")
		}
	}

	if c.Cache != nil {
		if c.Cache.TTLDays < 0 {
			return fmt.Errorf("cache TTL days must not be negative, got %d", c.Cache.TTLDays)
		}
		if c.Cache.MaxLocations < 1 {
			return fmt.Errorf("cache max locations must be at least 1, got %d", c.Cache.MaxLocations)
		}
		if c.Cache.HistoryLimit < 1 {
			return fmt.Errorf("cache history limit must be at least 1, got %d", c.Cache.HistoryLimit)
		}
	}

	if c.Conversion != nil {
		for _, name := range c.Conversion.MajorTimezoneList() {
			if _, err := time.LoadLocation(name); err != nil {
				return fmt.Errorf("invalid timezone %q in major timezone list: %w", name, err)
			}
		}
	}

	if c.Schedule != nil {
		if c.Schedule.BusinessStartHour < 0 || c.Schedule.BusinessStartHour > 23 {
			return fmt.Errorf("business start hour must be between 0 and 23, got %d", c.Schedule.BusinessStartHour)
		}
		if c.Schedule.BusinessEndHour < 1 || c.Schedule.BusinessEndHour > 24 {
			return fmt.Errorf("business end hour must be between 1 and 24, got %d", c.Schedule.BusinessEndHour)
		}
		if c.Schedule.BusinessStartHour >= c.Schedule.BusinessEndHour {
			return fmt.Errorf("business start hour %d must be before end hour %d",
				c.Schedule.BusinessStartHour, c.Schedule.BusinessEndHour)
		}
		if c.Schedule.HorizonDays < 1 || c.Schedule.HorizonDays > 30 {
			return fmt.Errorf("schedule horizon must be between 1 and 30 days, got %d", c.Schedule.HorizonDays)
		}
		if c.Schedule.MaxSuggestions < 1 {
			return fmt.Errorf("max suggestions must be at least 1, got %d", c.Schedule.MaxSuggestions)
		}
	}

	if c.Export != nil {
		switch c.Export.DefaultFormat {
		case "csv", "json":
		default:
			return fmt.Errorf("export format must be csv or json, got %q", c.Export.DefaultFormat)
		}
	}

	if c.Logging != nil {
		switch c.Logging.Level {
		case "debug", "info", "warn", "error", "":
		default:
			return fmt.Errorf("invalid log level: %s", c.Logging.Level)
		}
	}

	return nil
}

// splitCommaSeparated splits a comma-separated string, trimming
// whitespace and dropping empty elements.
func splitCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
