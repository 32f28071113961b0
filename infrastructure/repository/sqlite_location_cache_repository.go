package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ca-srg/tzbuddy/domain"
	"github.com/ca-srg/tzbuddy/domain/entity"
	"github.com/ca-srg/tzbuddy/domain/repository"
)

// SQLiteLocationCacheRepository implements repository.LocationCacheRepository
// backed by a local SQLite database
type SQLiteLocationCacheRepository struct {
	db           *sql.DB
	path         string
	ttl          time.Duration
	maxLocations int
	historyLimit int
}

// NewSQLiteLocationCacheRepository opens (creating if needed) the cache
// database at the given path and ensures the schema exists.
func NewSQLiteLocationCacheRepository(path string, ttl time.Duration, maxLocations, historyLimit int) (*SQLiteLocationCacheRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, domain.ErrCache("create cache directory", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, domain.ErrCache("open cache database", err)
	}

	repo := &SQLiteLocationCacheRepository{
		db:           db,
		path:         path,
		ttl:          ttl,
		maxLocations: maxLocations,
		historyLimit: historyLimit,
	}
	if err := repo.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteLocationCacheRepository) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS location_cache (
		query       TEXT PRIMARY KEY,
		address     TEXT NOT NULL,
		latitude    REAL NOT NULL,
		longitude   REAL NOT NULL,
		timezone    TEXT NOT NULL,
		cached_at   INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS search_history (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		query       TEXT NOT NULL,
		searched_at INTEGER NOT NULL
	);
	`
	if _, err := r.db.Exec(schema); err != nil {
		return domain.ErrCache("initialize cache schema", err)
	}
	return nil
}

// GetCachedLocation looks up a previously resolved location. Expired or
// missing entries return (nil, nil).
func (r *SQLiteLocationCacheRepository) GetCachedLocation(query string) (*repository.CachedLocation, error) {
	var cached repository.CachedLocation
	var cachedAt int64
	err := r.db.QueryRow(
		`SELECT query, address, latitude, longitude, timezone, cached_at
		 FROM location_cache WHERE query = ?`,
		normalizeQuery(query),
	).Scan(&cached.Query, &cached.Address, &cached.Latitude, &cached.Longitude, &cached.Timezone, &cachedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, domain.ErrCache("get cached location", err)
	}

	cached.CachedAt = time.Unix(cachedAt, 0)
	if r.ttl > 0 && time.Since(cached.CachedAt) > r.ttl {
		// Stale entry; remove it so the next lookup re-resolves
		_, _ = r.db.Exec("DELETE FROM location_cache WHERE query = ?", normalizeQuery(query))
		return nil, nil
	}
	return &cached, nil
}

// CacheLocation stores a resolved location, evicting the oldest entries
// when the cache exceeds its configured size.
func (r *SQLiteLocationCacheRepository) CacheLocation(query string, info entity.LocationInfo, timezone string) error {
	_, err := r.db.Exec(
		`INSERT OR REPLACE INTO location_cache
		 (query, address, latitude, longitude, timezone, cached_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		normalizeQuery(query), info.Address, info.Latitude, info.Longitude, timezone, time.Now().Unix(),
	)
	if err != nil {
		return domain.ErrCache("cache location", err)
	}

	if r.maxLocations > 0 {
		_, err = r.db.Exec(
			`DELETE FROM location_cache WHERE query NOT IN (
				SELECT query FROM location_cache ORDER BY cached_at DESC LIMIT ?
			)`,
			r.maxLocations,
		)
		if err != nil {
			return domain.ErrCache("evict cached locations", err)
		}
	}
	return nil
}

// AddToHistory records a search query, deduplicating repeats and
// trimming history to the limit
func (r *SQLiteLocationCacheRepository) AddToHistory(query string) error {
	if _, err := r.db.Exec(
		"DELETE FROM search_history WHERE query = ?", query,
	); err != nil {
		return domain.ErrCache("dedupe history", err)
	}

	_, err := r.db.Exec(
		"INSERT INTO search_history (query, searched_at) VALUES (?, ?)",
		query, time.Now().Unix(),
	)
	if err != nil {
		return domain.ErrCache("add to history", err)
	}

	if r.historyLimit > 0 {
		_, err = r.db.Exec(
			`DELETE FROM search_history WHERE id NOT IN (
				SELECT id FROM search_history ORDER BY id DESC LIMIT ?
			)`,
			r.historyLimit,
		)
		if err != nil {
			return domain.ErrCache("trim history", err)
		}
	}
	return nil
}

// GetSearchHistory returns recent searches, newest first
func (r *SQLiteLocationCacheRepository) GetSearchHistory(limit int) ([]string, error) {
	if limit <= 0 || limit > r.historyLimit {
		limit = r.historyLimit
	}

	rows, err := r.db.Query(
		"SELECT query FROM search_history ORDER BY id DESC LIMIT ?", limit,
	)
	if err != nil {
		return nil, domain.ErrCache("get search history", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var history []string
	for rows.Next() {
		var query string
		if err := rows.Scan(&query); err != nil {
			return nil, domain.ErrCache("scan history row", err)
		}
		history = append(history, query)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrCache("iterate history rows", err)
	}
	return history, nil
}

// ClearCache removes all cached locations and search history
func (r *SQLiteLocationCacheRepository) ClearCache() error {
	if _, err := r.db.Exec("DELETE FROM location_cache"); err != nil {
		return domain.ErrCache("clear location cache", err)
	}
	if _, err := r.db.Exec("DELETE FROM search_history"); err != nil {
		return domain.ErrCache("clear search history", err)
	}
	return nil
}

// Stats reports cache contents for display
func (r *SQLiteLocationCacheRepository) Stats() (*repository.CacheStats, error) {
	stats := &repository.CacheStats{Path: r.path}

	err := r.db.QueryRow("SELECT COUNT(*) FROM location_cache").Scan(&stats.CachedLocations)
	if err != nil {
		return nil, domain.ErrCache("count cached locations", err)
	}
	err = r.db.QueryRow("SELECT COUNT(*) FROM search_history").Scan(&stats.HistoryCount)
	if err != nil {
		return nil, domain.ErrCache("count history entries", err)
	}
	return stats, nil
}

// Close releases the underlying database handle
func (r *SQLiteLocationCacheRepository) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("failed to close cache database: %w", err)
	}
	return nil
}

// Cache keys are case-insensitive so "Tokyo" and "tokyo" share an entry
func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
