package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"route-resilience-service/internal/domain"
)

// Points spaced roughly 1.1 km apart along a meridian.
func meridianRoute(n int) domain.Route {
	pts := make([]domain.Coordinates, 0, n)
	for i := 0; i < n; i++ {
		pts = append(pts, domain.Coordinates{Lat: 28.0 + float64(i)*0.01, Lon: 77.0})
	}
	return domain.Route{Name: "Route 1", Ordinal: 1, Geometry: pts}
}

func TestSegmentDegenerateInput(t *testing.T) {
	require.Empty(t, Segment(domain.Route{}, 5000, 500))
	require.Empty(t, Segment(domain.Route{Geometry: []domain.Coordinates{{Lat: 1, Lon: 1}}}, 5000, 500))
}

func TestSegmentLengthsCoverRoute(t *testing.T) {
	route := meridianRoute(40)
	segments := Segment(route, 5000, 500)
	require.NotEmpty(t, segments)

	total := 0.0
	for _, s := range segments {
		total += s.LengthMeters
	}
	require.InDelta(t, route.TotalPathMeters(), total, 1e-6)
}

func TestSegmentRespectsMaxLength(t *testing.T) {
	route := meridianRoute(40)
	segments := Segment(route, 5000, 500)

	// Single hops are ~1.1 km, so no segment has an excuse to exceed max.
	for i, s := range segments {
		require.LessOrEqualf(t, s.LengthMeters, 5000.0, "segment %d too long", i)
	}
}

func TestSegmentFinalRemainderMayBeShort(t *testing.T) {
	route := meridianRoute(10)
	segments := Segment(route, 4000, 1000)
	require.NotEmpty(t, segments)

	for i, s := range segments[:len(segments)-1] {
		require.GreaterOrEqualf(t, s.LengthMeters, 1000.0, "segment %d under min", i)
	}
}

func TestSegmentMidpointIsArithmeticMean(t *testing.T) {
	route := meridianRoute(5)
	segments := Segment(route, 100000, 0)
	require.Len(t, segments, 1)

	s := segments[0]
	require.InDelta(t, (s.Start.Lat+s.End.Lat)/2, s.Mid.Lat, 1e-12)
	require.InDelta(t, (s.Start.Lon+s.End.Lon)/2, s.Mid.Lon, 1e-12)
}

func TestSegmentOversizedHopProducesOversizedSegment(t *testing.T) {
	// Two points ~11 km apart with a 5 km cap: the hop is indivisible.
	route := domain.Route{Geometry: []domain.Coordinates{
		{Lat: 28.0, Lon: 77.0},
		{Lat: 28.1, Lon: 77.0},
	}}
	segments := Segment(route, 5000, 500)
	require.Len(t, segments, 1)
	require.Greater(t, segments[0].LengthMeters, 5000.0)
}

func TestHaversineSanity(t *testing.T) {
	a := domain.Coordinates{Lat: 0, Lon: 0}
	b := domain.Coordinates{Lat: 1, Lon: 0}
	// One degree of latitude is about 111.2 km.
	require.InDelta(t, 111195, a.DistanceMeters(b), 200)
	require.True(t, math.Abs(a.DistanceMeters(a)) < 1e-9)
}
