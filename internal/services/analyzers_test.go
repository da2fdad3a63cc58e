package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"route-resilience-service/internal/domain"
)

func TestTimeScoresMinMax(t *testing.T) {
	routes := []domain.Route{
		{DurationSeconds: 3600},
		{DurationSeconds: 5400},
		{DurationSeconds: 7200},
	}

	scores := TimeScores(routes)
	require.InDelta(t, 1.0, scores[0], 1e-9)
	require.InDelta(t, 0.5, scores[1], 1e-9)
	require.InDelta(t, 0.0, scores[2], 1e-9)
}

func TestDistanceScoresSingleRouteBatch(t *testing.T) {
	scores := DistanceScores([]domain.Route{{DistanceMeters: 42000}})
	require.Equal(t, []float64{1.0}, scores)
}

func TestIdenticalBatchScoresAllOnes(t *testing.T) {
	routes := []domain.Route{
		{DistanceMeters: 10000, DurationSeconds: 1200},
		{DistanceMeters: 10000, DurationSeconds: 1200},
		{DistanceMeters: 10000, DurationSeconds: 1200},
	}

	for _, scores := range [][]float64{TimeScores(routes), DistanceScores(routes)} {
		for _, s := range scores {
			require.InDelta(t, 1.0, s, 1e-9)
		}
	}

	carbonScores, _ := NewCarbonAnalyzer("diesel_truck").Scores(routes)
	for _, s := range carbonScores {
		require.InDelta(t, 1.0, s, 1e-9)
	}
}

func TestCarbonScoresUseEmissionFactors(t *testing.T) {
	analyzer := NewCarbonAnalyzer("diesel_truck")
	routes := []domain.Route{
		{DistanceMeters: 10000},
		{DistanceMeters: 20000},
	}

	scores, raw := analyzer.Scores(routes)
	require.InDelta(t, 0.887*10, raw[0], 1e-9)
	require.InDelta(t, 0.887*20, raw[1], 1e-9)
	require.InDelta(t, 1.0, scores[0], 1e-9)
	require.InDelta(t, 0.0, scores[1], 1e-9)
}

func TestCarbonUnknownVehicleFallsBack(t *testing.T) {
	analyzer := NewCarbonAnalyzer("hovercraft")
	require.InDelta(t, 0.5, analyzer.Factor(), 1e-9)
}

func TestEstimateTrafficStatus(t *testing.T) {
	dry := domain.WeatherAnalysis{}
	wet := domain.WeatherAnalysis{AvgRainfallMM: 12}

	// 60 km in 1h = 60 km/h.
	fast := domain.Route{DistanceMeters: 60000, DurationSeconds: 3600}
	require.Equal(t, domain.TrafficLow, EstimateTrafficStatus(fast, dry))
	// Rain adjustment: 60 * 0.8 = 48 km/h.
	require.Equal(t, domain.TrafficModerate, EstimateTrafficStatus(fast, wet))

	slow := domain.Route{DistanceMeters: 10000, DurationSeconds: 3600}
	require.Equal(t, domain.TrafficHeavy, EstimateTrafficStatus(slow, dry))

	require.Equal(t, domain.TrafficModerate, EstimateTrafficStatus(domain.Route{}, dry))
}
