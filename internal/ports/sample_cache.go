package ports

import (
	"context"

	"route-resilience-service/internal/domain"
)

// Cache for weather snapshots keyed by a rounded coordinate grid cell.
// A miss is (zero sample, false, nil); errors are reserved for backend
// failures.
type WeatherSampleCache interface {
	Get(ctx context.Context, key string) (domain.WeatherSample, bool, error)
	Put(ctx context.Context, key string, sample domain.WeatherSample) error
}

// Cache for road classifications keyed by a rounded coordinate grid cell.
type RoadSampleCache interface {
	Get(ctx context.Context, key string) (domain.RoadSample, bool, error)
	Put(ctx context.Context, key string, sample domain.RoadSample) error
}
