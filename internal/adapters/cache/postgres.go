package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"route-resilience-service/internal/domain"
)

// InitPostgresSchema creates the shared sample-cache tables when missing.
// Used by multi-instance deployments where a local SQLite file would cache
// per instance only.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS weather_samples (
	cell TEXT PRIMARY KEY,
	sample JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS road_samples (
	cell TEXT PRIMARY KEY,
	sample JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("init postgres schema: %w", err)
	}
	return nil
}

// PostgresWeatherCache stores weather samples in a shared Postgres table.
type PostgresWeatherCache struct {
	db *sql.DB
}

func NewPostgresWeatherCache(db *sql.DB) *PostgresWeatherCache {
	return &PostgresWeatherCache{db: db}
}

func (c *PostgresWeatherCache) Get(ctx context.Context, key string) (domain.WeatherSample, bool, error) {
	var raw []byte
	err := c.db.QueryRowContext(ctx,
		`SELECT sample FROM weather_samples WHERE cell = $1`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.WeatherSample{}, false, nil
	}
	if err != nil {
		return domain.WeatherSample{}, false, fmt.Errorf("weather cache get: %w", err)
	}

	var sample domain.WeatherSample
	if err := json.Unmarshal(raw, &sample); err != nil {
		return domain.WeatherSample{}, false, fmt.Errorf("weather cache decode: %w", err)
	}
	return sample, true, nil
}

func (c *PostgresWeatherCache) Put(ctx context.Context, key string, sample domain.WeatherSample) error {
	raw, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("weather cache encode: %w", err)
	}
	_, err = c.db.ExecContext(ctx, `
INSERT INTO weather_samples (cell, sample, updated_at) VALUES ($1, $2, now())
ON CONFLICT (cell) DO UPDATE SET sample = EXCLUDED.sample, updated_at = now()`,
		key, raw)
	if err != nil {
		return fmt.Errorf("weather cache put: %w", err)
	}
	return nil
}

// PostgresRoadCache stores road classifications in a shared Postgres table.
type PostgresRoadCache struct {
	db *sql.DB
}

func NewPostgresRoadCache(db *sql.DB) *PostgresRoadCache {
	return &PostgresRoadCache{db: db}
}

func (c *PostgresRoadCache) Get(ctx context.Context, key string) (domain.RoadSample, bool, error) {
	var raw []byte
	err := c.db.QueryRowContext(ctx,
		`SELECT sample FROM road_samples WHERE cell = $1`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RoadSample{}, false, nil
	}
	if err != nil {
		return domain.RoadSample{}, false, fmt.Errorf("road cache get: %w", err)
	}

	var sample domain.RoadSample
	if err := json.Unmarshal(raw, &sample); err != nil {
		return domain.RoadSample{}, false, fmt.Errorf("road cache decode: %w", err)
	}
	return sample, true, nil
}

func (c *PostgresRoadCache) Put(ctx context.Context, key string, sample domain.RoadSample) error {
	raw, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("road cache encode: %w", err)
	}
	_, err = c.db.ExecContext(ctx, `
INSERT INTO road_samples (cell, sample, updated_at) VALUES ($1, $2, now())
ON CONFLICT (cell) DO UPDATE SET sample = EXCLUDED.sample, updated_at = now()`,
		key, raw)
	if err != nil {
		return fmt.Errorf("road cache put: %w", err)
	}
	return nil
}
