package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"route-resilience-service/internal/domain"
)

type stubRouteProvider struct {
	name      string
	available bool
	routes    []domain.Route
	err       error
	calls     int
}

func (s *stubRouteProvider) Name() string    { return s.name }
func (s *stubRouteProvider) Available() bool { return s.available }

func (s *stubRouteProvider) GetDirections(ctx context.Context, o, d domain.Coordinates, alternatives int) ([]domain.Route, error) {
	s.calls++
	return s.routes, s.err
}

func someRoutes(n int) []domain.Route {
	out := make([]domain.Route, n)
	for i := range out {
		out[i] = domain.Route{DistanceMeters: float64(1000 * (i + 1))}
	}
	return out
}

func TestGetRoutesPrimaryWins(t *testing.T) {
	primary := &stubRouteProvider{name: "google", available: true, routes: someRoutes(2)}
	fallback := &stubRouteProvider{name: "ors", available: true, routes: someRoutes(1)}
	src := NewRouteSource(primary, fallback, nil)

	routes := src.GetRoutes(context.Background(), domain.Coordinates{}, domain.Coordinates{}, 3)

	require.Len(t, routes, 2)
	require.Equal(t, 0, fallback.calls)
	require.Equal(t, "Route 1", routes[0].Name)
	require.Equal(t, 1, routes[0].Ordinal)
	require.Equal(t, "google", routes[0].Provider)
}

func TestGetRoutesFallbackOnEmptyPrimary(t *testing.T) {
	primary := &stubRouteProvider{name: "google", available: true}
	fallback := &stubRouteProvider{name: "ors", available: true, routes: someRoutes(2)}
	src := NewRouteSource(primary, fallback, nil)

	routes := src.GetRoutes(context.Background(), domain.Coordinates{}, domain.Coordinates{}, 3)

	require.Len(t, routes, 2)
	require.Equal(t, 1, primary.calls)
	require.Equal(t, "ors", routes[0].Provider)
}

func TestGetRoutesFallbackOnPrimaryError(t *testing.T) {
	primary := &stubRouteProvider{name: "google", available: true, err: errors.New("quota exceeded")}
	fallback := &stubRouteProvider{name: "ors", available: true, routes: someRoutes(1)}
	src := NewRouteSource(primary, fallback, nil)

	routes := src.GetRoutes(context.Background(), domain.Coordinates{}, domain.Coordinates{}, 3)
	require.Len(t, routes, 1)
}

func TestGetRoutesSkipsUnconfiguredPrimary(t *testing.T) {
	primary := &stubRouteProvider{name: "google", available: false, routes: someRoutes(3)}
	fallback := &stubRouteProvider{name: "ors", available: true, routes: someRoutes(1)}
	src := NewRouteSource(primary, fallback, nil)

	routes := src.GetRoutes(context.Background(), domain.Coordinates{}, domain.Coordinates{}, 3)

	require.Equal(t, 0, primary.calls)
	require.Len(t, routes, 1)
}

func TestGetRoutesTruncatesToMaxAlternatives(t *testing.T) {
	primary := &stubRouteProvider{name: "google", available: true, routes: someRoutes(5)}
	src := NewRouteSource(primary, nil, nil)

	routes := src.GetRoutes(context.Background(), domain.Coordinates{}, domain.Coordinates{}, 2)

	require.Len(t, routes, 2)
	// Provider order is preserved: best-first.
	require.InDelta(t, 1000, routes[0].DistanceMeters, 1e-9)
	require.InDelta(t, 2000, routes[1].DistanceMeters, 1e-9)
}

func TestGetRoutesBothFailReturnsEmpty(t *testing.T) {
	primary := &stubRouteProvider{name: "google", available: true, err: errors.New("down")}
	fallback := &stubRouteProvider{name: "ors", available: true}
	src := NewRouteSource(primary, fallback, nil)

	routes := src.GetRoutes(context.Background(), domain.Coordinates{}, domain.Coordinates{}, 3)
	require.Empty(t, routes)
}

func TestGetRoutesKeepsProviderSuppliedNames(t *testing.T) {
	primary := &stubRouteProvider{name: "google", available: true, routes: []domain.Route{
		{Name: "NH48 via Gurgaon"},
		{},
	}}
	src := NewRouteSource(primary, nil, nil)

	routes := src.GetRoutes(context.Background(), domain.Coordinates{}, domain.Coordinates{}, 3)
	require.Equal(t, "NH48 via Gurgaon", routes[0].Name)
	require.Equal(t, "Route 2", routes[1].Name)
}
