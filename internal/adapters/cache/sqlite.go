package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"route-resilience-service/internal/domain"
)

// OpenSQLite opens the local sample-cache database. The modernc sqlite
// driver must be imported by the composition root.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("verify sqlite cache: %w", err)
	}
	return db, nil
}

// InitSQLiteSchema creates the sample-cache tables when missing.
func InitSQLiteSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS weather_samples (
	cell TEXT PRIMARY KEY,
	sample TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS road_samples (
	cell TEXT PRIMARY KEY,
	sample TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("init sqlite schema: %w", err)
	}
	return nil
}

// SQLiteWeatherCache stores weather samples as JSON rows keyed by grid cell.
type SQLiteWeatherCache struct {
	db *sql.DB
}

func NewSQLiteWeatherCache(db *sql.DB) *SQLiteWeatherCache {
	return &SQLiteWeatherCache{db: db}
}

func (c *SQLiteWeatherCache) Get(ctx context.Context, key string) (domain.WeatherSample, bool, error) {
	var raw string
	err := c.db.QueryRowContext(ctx,
		`SELECT sample FROM weather_samples WHERE cell = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.WeatherSample{}, false, nil
	}
	if err != nil {
		return domain.WeatherSample{}, false, fmt.Errorf("weather cache get: %w", err)
	}

	var sample domain.WeatherSample
	if err := json.Unmarshal([]byte(raw), &sample); err != nil {
		return domain.WeatherSample{}, false, fmt.Errorf("weather cache decode: %w", err)
	}
	return sample, true, nil
}

func (c *SQLiteWeatherCache) Put(ctx context.Context, key string, sample domain.WeatherSample) error {
	raw, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("weather cache encode: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO weather_samples (cell, sample, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		key, string(raw))
	if err != nil {
		return fmt.Errorf("weather cache put: %w", err)
	}
	return nil
}

// SQLiteRoadCache stores road classifications as JSON rows keyed by grid
// cell. Road class changes rarely, so rows never expire.
type SQLiteRoadCache struct {
	db *sql.DB
}

func NewSQLiteRoadCache(db *sql.DB) *SQLiteRoadCache {
	return &SQLiteRoadCache{db: db}
}

func (c *SQLiteRoadCache) Get(ctx context.Context, key string) (domain.RoadSample, bool, error) {
	var raw string
	err := c.db.QueryRowContext(ctx,
		`SELECT sample FROM road_samples WHERE cell = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RoadSample{}, false, nil
	}
	if err != nil {
		return domain.RoadSample{}, false, fmt.Errorf("road cache get: %w", err)
	}

	var sample domain.RoadSample
	if err := json.Unmarshal([]byte(raw), &sample); err != nil {
		return domain.RoadSample{}, false, fmt.Errorf("road cache decode: %w", err)
	}
	return sample, true, nil
}

func (c *SQLiteRoadCache) Put(ctx context.Context, key string, sample domain.RoadSample) error {
	raw, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("road cache encode: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO road_samples (cell, sample, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		key, string(raw))
	if err != nil {
		return fmt.Errorf("road cache put: %w", err)
	}
	return nil
}
