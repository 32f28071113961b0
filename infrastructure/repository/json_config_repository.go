package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ca-srg/tzbuddy/domain/repository"
	"github.com/ca-srg/tzbuddy/infrastructure/config"
)

// JSONConfigRepository manages configuration persisted as JSON
type JSONConfigRepository struct {
	configDir  string
	configFile string
}

// NewJSONConfigRepository creates a repository rooted at the default
// config location (~/.config/tzbuddy)
func NewJSONConfigRepository() repository.ConfigRepository {
	homeDir, _ := os.UserHomeDir()
	configDir := filepath.Join(homeDir, ".config", "tzbuddy")
	return &JSONConfigRepository{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// SetConfigDir overrides the config directory, for tests
func (r *JSONConfigRepository) SetConfigDir(dir string) {
	r.configDir = dir
}

// SetConfigFile overrides the config file path, for tests
func (r *JSONConfigRepository) SetConfigFile(file string) {
	r.configFile = file
}

// Exists reports whether the config file is present
func (r *JSONConfigRepository) Exists() (bool, error) {
	_, err := os.Stat(r.configFile)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check config file existence: %w", err)
}

// Load reads the configuration from disk. A missing file returns
// (nil, nil) so callers can fall back to defaults.
func (r *JSONConfigRepository) Load() (*config.AppConfig, error) {
	exists, err := r.Exists()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	if err := r.ensureSecurePermissions(r.configFile, false); err != nil {
		return nil, fmt.Errorf("config file security check failed: %w", err)
	}

	data, err := os.ReadFile(r.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg config.AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to disk atomically, backing up any
// existing file first
func (r *JSONConfigRepository) Save(cfg *config.AppConfig) error {
	if err := r.EnsureConfigDir(); err != nil {
		return err
	}

	if err := r.Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	exists, err := r.Exists()
	if err != nil {
		return err
	}
	if exists {
		if err := r.Backup(); err != nil {
			// A failed backup should not block saving
			fmt.Fprintf(os.Stderr, "Warning: failed to create backup: %v\n", err)
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to a temp file then rename so readers never see a partial file
	tmpFile := r.configFile + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp config file: %w", err)
	}

	if err := os.Rename(tmpFile, r.configFile); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	if err := r.ensureSecurePermissions(r.configFile, false); err != nil {
		return fmt.Errorf("failed to secure config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the config file path
func (r *JSONConfigRepository) GetConfigPath() string {
	return r.configFile
}

// EnsureConfigDir makes sure the config directory exists with
// restricted permissions
func (r *JSONConfigRepository) EnsureConfigDir() error {
	if err := os.MkdirAll(r.configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := r.ensureSecurePermissions(r.configDir, true); err != nil {
		return fmt.Errorf("failed to secure config directory: %w", err)
	}

	return nil
}

// Backup copies the current config file aside, keeping the latest five
func (r *JSONConfigRepository) Backup() error {
	exists, err := r.Exists()
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	timestamp := time.Now().Format("20060102-150405")
	backupFile := fmt.Sprintf("%s.backup.%s", r.configFile, timestamp)

	data, err := os.ReadFile(r.configFile)
	if err != nil {
		return fmt.Errorf("failed to read config file for backup: %w", err)
	}

	if err := os.WriteFile(backupFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	if err := r.cleanupOldBackups(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to cleanup old backups: %v\n", err)
	}

	return nil
}

// Validate checks the configuration before saving
func (r *JSONConfigRepository) Validate(cfg *config.AppConfig) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	return cfg.Validate()
}

func (r *JSONConfigRepository) cleanupOldBackups() error {
	pattern := r.configFile + ".backup.*"
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}

	if len(matches) <= 5 {
		return nil
	}

	// Timestamped names sort oldest first
	for i := 0; i < len(matches)-5; i++ {
		if err := os.Remove(matches[i]); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove old backup %s: %v\n", matches[i], err)
		}
	}

	return nil
}

// ensureSecurePermissions restricts config files to the owning user
func (r *JSONConfigRepository) ensureSecurePermissions(path string, isDir bool) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	currentMode := info.Mode().Perm()
	var expectedMode os.FileMode
	if isDir {
		expectedMode = 0700
	} else {
		expectedMode = 0600
	}

	if currentMode != expectedMode {
		if err := os.Chmod(path, expectedMode); err != nil {
			return fmt.Errorf("failed to set permissions: %w", err)
		}
	}

	if err := r.checkOwnership(path); err != nil {
		return fmt.Errorf("ownership check failed: %w", err)
	}

	return nil
}

// checkOwnership verifies the file belongs to the current user.
// Platforms without Stat_t (Windows) skip the check.
func (r *JSONConfigRepository) checkOwnership(path string) error {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return err
	}

	stat, ok := fileInfo.Sys().(*syscall.Stat_t)
	if !ok {
		return nil
	}

	currentUID := uint32(os.Getuid())
	if stat.Uid != currentUID {
		return fmt.Errorf("file is not owned by current user (uid: %d, expected: %d)", stat.Uid, currentUID)
	}

	return nil
}
