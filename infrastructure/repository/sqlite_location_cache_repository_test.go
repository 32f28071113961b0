package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ca-srg/tzbuddy/domain/entity"
)

func newTestCache(t *testing.T, ttl time.Duration, maxLocations, historyLimit int) *SQLiteLocationCacheRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tzbuddy.db")
	repo, err := NewSQLiteLocationCacheRepository(path, ttl, maxLocations, historyLimit)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = repo.Close()
	})
	return repo
}

func TestCacheLocationRoundTrip(t *testing.T) {
	repo := newTestCache(t, 30*24*time.Hour, 100, 20)

	info := entity.NewLocationInfo("Tokyo, Japan", 35.6762, 139.6503)
	require.NoError(t, repo.CacheLocation("Tokyo", info, "Asia/Tokyo"))

	cached, err := repo.GetCachedLocation("Tokyo")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "tokyo", cached.Query)
	assert.Equal(t, "Tokyo, Japan", cached.Address)
	assert.Equal(t, "Asia/Tokyo", cached.Timezone)
	assert.InDelta(t, 35.6762, cached.Latitude, 0.0001)

	// Lookups are case-insensitive
	cached, err = repo.GetCachedLocation("  TOKYO ")
	require.NoError(t, err)
	require.NotNil(t, cached)
}

func TestCacheMiss(t *testing.T) {
	repo := newTestCache(t, time.Hour, 100, 20)

	cached, err := repo.GetCachedLocation("nowhere")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestCacheExpiry(t *testing.T) {
	repo := newTestCache(t, time.Hour, 100, 20)

	info := entity.NewLocationInfo("Paris, France", 48.8566, 2.3522)
	require.NoError(t, repo.CacheLocation("Paris", info, "Europe/Paris"))

	// Backdate the entry past the TTL
	_, err := repo.db.Exec(
		"UPDATE location_cache SET cached_at = ? WHERE query = ?",
		time.Now().Add(-2*time.Hour).Unix(), "paris",
	)
	require.NoError(t, err)

	cached, err := repo.GetCachedLocation("Paris")
	require.NoError(t, err)
	assert.Nil(t, cached)

	// Expired entry is gone for good
	stats, err := repo.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CachedLocations)
}

func TestCacheEviction(t *testing.T) {
	repo := newTestCache(t, time.Hour, 3, 20)

	for i, name := range []string{"a", "b", "c", "d", "e"} {
		info := entity.NewLocationInfo(name, float64(i), float64(i))
		require.NoError(t, repo.CacheLocation(name, info, "UTC"))
		// cached_at has second granularity; space the entries out
		_, err := repo.db.Exec(
			"UPDATE location_cache SET cached_at = ? WHERE query = ?",
			time.Now().Add(time.Duration(i)*time.Minute).Unix(), name,
		)
		require.NoError(t, err)
	}

	stats, err := repo.Stats()
	require.NoError(t, err)
	assert.LessOrEqual(t, stats.CachedLocations, 3)

	// The most recent entry survives
	cached, err := repo.GetCachedLocation("e")
	require.NoError(t, err)
	assert.NotNil(t, cached)
}

func TestSearchHistory(t *testing.T) {
	repo := newTestCache(t, time.Hour, 100, 3)

	for _, q := range []string{"tokyo", "paris", "london", "sydney"} {
		require.NoError(t, repo.AddToHistory(q))
	}

	history, err := repo.GetSearchHistory(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"sydney", "london", "paris"}, history)
}

func TestSearchHistoryDedup(t *testing.T) {
	repo := newTestCache(t, time.Hour, 100, 10)

	require.NoError(t, repo.AddToHistory("tokyo"))
	require.NoError(t, repo.AddToHistory("paris"))
	require.NoError(t, repo.AddToHistory("tokyo"))

	history, err := repo.GetSearchHistory(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"tokyo", "paris"}, history)
}

func TestClearCache(t *testing.T) {
	repo := newTestCache(t, time.Hour, 100, 20)

	info := entity.NewLocationInfo("Tokyo, Japan", 35.6762, 139.6503)
	require.NoError(t, repo.CacheLocation("Tokyo", info, "Asia/Tokyo"))
	require.NoError(t, repo.AddToHistory("Tokyo"))

	require.NoError(t, repo.ClearCache())

	stats, err := repo.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CachedLocations)
	assert.Equal(t, 0, stats.HistoryCount)
}
