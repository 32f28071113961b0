package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ca-srg/tzbuddy/domain"
	"github.com/ca-srg/tzbuddy/infrastructure/logging"
)

func TestResolve(t *testing.T) {
	svc := NewTimezoneServiceImpl(&logging.NoOpLogger{})

	zone, err := svc.Resolve("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", zone.Name())

	// Second lookup comes from the cache and returns the same zone
	again, err := svc.Resolve("Asia/Tokyo")
	require.NoError(t, err)
	assert.True(t, zone.Equals(again))
}

func TestResolveUnknownZone(t *testing.T) {
	svc := NewTimezoneServiceImpl(&logging.NoOpLogger{})

	_, err := svc.Resolve("Atlantis/Lost")
	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeUnknownTimezone))
}

func TestGetUserTimezone(t *testing.T) {
	svc := NewTimezoneServiceImpl(&logging.NoOpLogger{})

	loc, err := svc.GetUserTimezone()
	if err != nil {
		// Detection fell back to UTC
		assert.Equal(t, time.UTC, loc)
		return
	}
	require.NotNil(t, loc)

	// Detection result is memoized
	loc2, err := svc.GetUserTimezone()
	require.NoError(t, err)
	assert.Equal(t, loc, loc2)
}

func TestToday(t *testing.T) {
	svc := NewTimezoneServiceImpl(&logging.NoOpLogger{})

	today := svc.Today()
	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
	assert.Equal(t, 0, today.Second())
}

func TestGetTimezoneInfo(t *testing.T) {
	svc := NewTimezoneServiceImpl(&logging.NoOpLogger{})

	info := svc.GetTimezoneInfo()
	assert.NotEmpty(t, info.Name)
	assert.Regexp(t, `^[+-]\d{2}:\d{2}$`, info.Offset)
	assert.Contains(t, []string{"system", "fallback"}, info.DetectionMethod)
}
