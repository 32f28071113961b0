package impl

import (
	"context"
	"fmt"
	"sync"

	"github.com/ca-srg/tzbuddy/domain"
	"github.com/ca-srg/tzbuddy/domain/repository"
	"github.com/ca-srg/tzbuddy/infrastructure/config"
	usecase "github.com/ca-srg/tzbuddy/usecase/interface"
)

// ConfigServiceImpl implements the ConfigService interface
type ConfigServiceImpl struct {
	configRepo repository.ConfigRepository
	config     *config.AppConfig
	logger     domain.Logger
	mu         sync.RWMutex
}

// NewConfigService creates a new ConfigService, loading configuration
// from defaults, the JSON file, and the environment in that order
func NewConfigService(configRepo repository.ConfigRepository, logger domain.Logger) (usecase.ConfigService, error) {
	cfg, err := loadConfigWithFallback(configRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &ConfigServiceImpl{
		configRepo: configRepo,
		config:     cfg,
		logger:     logger,
	}, nil
}

// loadConfigWithFallback loads configuration, falling back to defaults
// whenever an individual source fails
func loadConfigWithFallback(configRepo repository.ConfigRepository, logger domain.Logger) (*config.AppConfig, error) {
	ctx := context.Background()

	cfg := config.DefaultConfig()
	cfg.MarkDefaults()

	jsonConfig, err := configRepo.Load()
	if err != nil {
		// A broken config file should not stop the tool
		logger.Warn(ctx, "Failed to load JSON configuration, using defaults",
			domain.NewField("error", err.Error()),
			domain.NewField("config_path", configRepo.GetConfigPath()))
	} else if jsonConfig != nil {
		cfg.MergeJSONConfig(jsonConfig)
		logger.Debug(ctx, "Loaded JSON configuration",
			domain.NewField("config_path", configRepo.GetConfigPath()))
	}

	// Environment variables override JSON values
	if err := cfg.LoadFromEnv(); err != nil {
		logger.Warn(ctx, "Failed to load environment variables, using fallback values",
			domain.NewField("error", err.Error()))
	}

	if err := cfg.Validate(); err != nil {
		logger.Warn(ctx, "Configuration validation failed, using default values",
			domain.NewField("error", err.Error()))
		cfg = config.DefaultConfig()
		cfg.MarkDefaults()
	}

	return cfg, nil
}

// GetConfig returns the current configuration
func (s *ConfigServiceImpl) GetConfig() *config.AppConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.config
}

// GetConfigWithSources returns the configuration and its source map
func (s *ConfigServiceImpl) GetConfigWithSources() (*config.AppConfig, map[string]config.ConfigSource) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.config, s.config.ConfigSources
}

// UpdateConfig validates, persists, and applies a new configuration
func (s *ConfigServiceImpl) UpdateConfig(newConfig *config.AppConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := newConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := s.configRepo.Save(newConfig); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	s.config = newConfig

	return nil
}

// SaveConfig persists the current configuration to disk
func (s *ConfigServiceImpl) SaveConfig() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.configRepo.Save(s.config)
}

// ReloadConfig re-reads the configuration from all sources
func (s *ConfigServiceImpl) ReloadConfig() error {
	ctx := context.Background()
	s.mu.Lock()
	defer s.mu.Unlock()

	newConfig, err := loadConfigWithFallback(s.configRepo, s.logger)
	if err != nil {
		s.logger.Error(ctx, "Failed to reload configuration",
			domain.NewField("error", err.Error()))
		return fmt.Errorf("failed to reload config: %w", err)
	}

	s.config = newConfig
	return nil
}

// GetConfigPath returns the configuration file path
func (s *ConfigServiceImpl) GetConfigPath() string {
	return s.configRepo.GetConfigPath()
}

// CreateDefaultConfig writes a default configuration file
func (s *ConfigServiceImpl) CreateDefaultConfig() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.configRepo.Exists()
	if err != nil {
		return fmt.Errorf("failed to check config existence: %w", err)
	}
	if exists {
		return fmt.Errorf("config file already exists at %s", s.configRepo.GetConfigPath())
	}

	defaultConfig := config.DefaultConfig()
	if err := s.configRepo.Save(defaultConfig); err != nil {
		return fmt.Errorf("failed to save default config: %w", err)
	}

	s.config = defaultConfig

	return nil
}
