package routing

import (
	"context"
	"fmt"

	"route-resilience-service/internal/domain"
)

// MockProvider fabricates straight-line routes for local runs without API
// credentials. Each alternative detours slightly further east so the batch
// has real spread for the min-max analyzers.
type MockProvider struct{}

func NewMockProvider() *MockProvider { return &MockProvider{} }

func (p *MockProvider) Name() string { return "mock" }

func (p *MockProvider) Available() bool { return true }

func (p *MockProvider) GetDirections(
	ctx context.Context,
	origin, destination domain.Coordinates,
	alternatives int,
) ([]domain.Route, error) {
	if alternatives < 1 {
		alternatives = 1
	}

	routes := make([]domain.Route, 0, alternatives)
	for n := 0; n < alternatives; n++ {
		detour := 0.02 * float64(n)

		const points = 20
		geometry := make([]domain.Coordinates, 0, points+1)
		for i := 0; i <= points; i++ {
			t := float64(i) / points
			// Bulge peaks mid-route and returns to the endpoints.
			bulge := detour * 4 * t * (1 - t)
			geometry = append(geometry, domain.Coordinates{
				Lat: origin.Lat + (destination.Lat-origin.Lat)*t,
				Lon: origin.Lon + (destination.Lon-origin.Lon)*t + bulge,
			})
		}

		route := domain.Route{
			Name:     fmt.Sprintf("Mock Route %d", n+1),
			Geometry: geometry,
		}
		route.DistanceMeters = route.TotalPathMeters()
		route.DurationSeconds = route.DistanceMeters / (50.0 / 3.6)
		route.DistanceText = fmt.Sprintf("%.1f km", route.DistanceMeters/1000)
		route.DurationText = fmt.Sprintf("%.0f mins", route.DurationSeconds/60)
		routes = append(routes, route)
	}

	return routes, nil
}
