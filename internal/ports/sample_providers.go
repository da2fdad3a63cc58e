package ports

import (
	"context"

	"route-resilience-service/internal/domain"
)

// Contract for classifying the road at a sampled point.
type RoadQualityProvider interface {
	// Sample returns a road classification for the segment whose midpoint
	// and length are given.
	Sample(ctx context.Context, point domain.Coordinates, lengthMeters float64) (domain.RoadSample, error)
}

// Contract for fetching a point-in-time weather snapshot.
// Implementations return raw observation fields; risk derivation is the
// domain's concern (WeatherSample.WithRisks).
type WeatherProvider interface {
	Sample(ctx context.Context, lat, lon float64) (domain.WeatherSample, error)
}
