package road

import (
	"context"

	"route-resilience-service/internal/domain"
)

// StaticProvider classifies every point as a fixed road type, looked up in
// the heuristic quality and width tables. It serves deployments where
// Overpass lookups are disabled.
type StaticProvider struct {
	RoadType string
}

func NewStaticProvider(roadType string) *StaticProvider {
	if roadType == "" {
		roadType = "unknown"
	}
	return &StaticProvider{RoadType: roadType}
}

func (p *StaticProvider) Sample(ctx context.Context, point domain.Coordinates, lengthMeters float64) (domain.RoadSample, error) {
	t := normalizeType(p.RoadType)
	return domain.RoadSample{
		RoadType:    t,
		BaseQuality: qualityFor(t),
		WidthMeters: widthFor(t),
	}, nil
}
