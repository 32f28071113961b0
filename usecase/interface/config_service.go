package usecase

import (
	"github.com/ca-srg/tzbuddy/infrastructure/config"
)

// ConfigService defines the interface for configuration management
type ConfigService interface {
	// GetConfig returns the current configuration
	GetConfig() *config.AppConfig

	// GetConfigWithSources returns the configuration and where each
	// value came from
	GetConfigWithSources() (*config.AppConfig, map[string]config.ConfigSource)

	// UpdateConfig validates, applies, and persists a new configuration
	UpdateConfig(newConfig *config.AppConfig) error

	// SaveConfig persists the current configuration to disk
	SaveConfig() error

	// ReloadConfig re-reads the configuration from disk and environment
	ReloadConfig() error

	// GetConfigPath returns the configuration file path
	GetConfigPath() string

	// CreateDefaultConfig writes a default configuration file
	CreateDefaultConfig() error
}
