package repository

import (
	"github.com/ca-srg/tzbuddy/infrastructure/config"
)

// ConfigRepository defines the interface for reading and writing the
// persisted configuration file
type ConfigRepository interface {
	// Exists checks whether the config file exists
	Exists() (bool, error)

	// Load reads the configuration from the config file; a missing file
	// returns (nil, nil)
	Load() (*config.AppConfig, error)

	// Save writes the configuration to the config file
	Save(config *config.AppConfig) error

	// GetConfigPath returns the config file path
	GetConfigPath() string

	// EnsureConfigDir guarantees the config directory exists
	EnsureConfigDir() error

	// Validate checks the configuration for consistency
	Validate(config *config.AppConfig) error
}
