package impl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ca-srg/tzbuddy/infrastructure/config"
	"github.com/ca-srg/tzbuddy/infrastructure/logging"
)

func TestConfigServiceDefaultsWhenNoFile(t *testing.T) {
	svc, err := NewConfigService(&stubConfigRepo{}, &logging.NoOpLogger{})
	require.NoError(t, err)

	cfg := svc.GetConfig()
	assert.Equal(t, 9, cfg.Schedule.BusinessStartHour)
	assert.Equal(t, "csv", cfg.Export.DefaultFormat)
}

func TestConfigServiceMergesStoredFile(t *testing.T) {
	repo := &stubConfigRepo{stored: &config.AppConfig{
		Schedule: &config.ScheduleConfig{BusinessStartHour: 8},
	}}
	svc, err := NewConfigService(repo, &logging.NoOpLogger{})
	require.NoError(t, err)

	cfg, sources := svc.GetConfigWithSources()
	assert.Equal(t, 8, cfg.Schedule.BusinessStartHour)
	assert.Equal(t, config.SourceJSON, sources["schedule.business_start_hour"])
	// Untouched values stay at their defaults
	assert.Equal(t, 17, cfg.Schedule.BusinessEndHour)
	assert.Equal(t, config.SourceDefault, sources["schedule.business_end_hour"])
}

func TestConfigServiceSurvivesBrokenFile(t *testing.T) {
	repo := &stubConfigRepo{loadErr: errors.New("corrupt file")}
	svc, err := NewConfigService(repo, &logging.NoOpLogger{})
	require.NoError(t, err)
	assert.Equal(t, 9, svc.GetConfig().Schedule.BusinessStartHour)
}

func TestConfigServiceUpdateConfig(t *testing.T) {
	repo := &stubConfigRepo{}
	svc, err := NewConfigService(repo, &logging.NoOpLogger{})
	require.NoError(t, err)

	newCfg := config.DefaultConfig()
	newCfg.Schedule.BusinessStartHour = 10
	require.NoError(t, svc.UpdateConfig(newCfg))
	assert.Equal(t, 10, svc.GetConfig().Schedule.BusinessStartHour)
	assert.Equal(t, 10, repo.stored.Schedule.BusinessStartHour)
}

func TestConfigServiceUpdateRejectsInvalid(t *testing.T) {
	svc, err := NewConfigService(&stubConfigRepo{}, &logging.NoOpLogger{})
	require.NoError(t, err)

	bad := config.DefaultConfig()
	bad.Schedule.BusinessStartHour = 20
	bad.Schedule.BusinessEndHour = 8
	require.Error(t, svc.UpdateConfig(bad))
	// In-memory config stays unchanged
	assert.Equal(t, 9, svc.GetConfig().Schedule.BusinessStartHour)
}

func TestConfigServiceCreateDefaultConfig(t *testing.T) {
	repo := &stubConfigRepo{}
	svc, err := NewConfigService(repo, &logging.NoOpLogger{})
	require.NoError(t, err)

	require.NoError(t, svc.CreateDefaultConfig())
	assert.NotNil(t, repo.stored)

	// A second call fails because the file now exists
	require.Error(t, svc.CreateDefaultConfig())
}
