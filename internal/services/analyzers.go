package services

import (
	"route-resilience-service/internal/domain"
)

// Component analyzers score each route relative to the candidate batch:
// min-max normalization to [0,1] where 1.0 is the most favorable route along
// that dimension. A batch with zero spread (including a batch of one) scores
// 1.0 everywhere.

// TimeScores rates routes by duration; shorter is better.
func TimeScores(routes []domain.Route) []float64 {
	raw := make([]float64, len(routes))
	for i, r := range routes {
		raw[i] = r.DurationSeconds
	}
	return invertedMinMax(raw)
}

// DistanceScores rates routes by length; shorter is better.
func DistanceScores(routes []domain.Route) []float64 {
	raw := make([]float64, len(routes))
	for i, r := range routes {
		raw[i] = r.DistanceMeters
	}
	return invertedMinMax(raw)
}

// DefaultEmissionFactors maps vehicle types to kg CO2e per kilometer.
func DefaultEmissionFactors() map[string]float64 {
	return map[string]float64{
		"diesel_truck": 0.887,
		"petrol_van":   0.249,
		"diesel_van":   0.232,
		"electric_van": 0.048,
	}
}

const fallbackEmissionFactor = 0.5

// CarbonAnalyzer converts route distance into an estimated emission cost
// using a configured factor table, then normalizes within the batch.
type CarbonAnalyzer struct {
	Factors     map[string]float64
	VehicleType string
}

func NewCarbonAnalyzer(vehicleType string) CarbonAnalyzer {
	return CarbonAnalyzer{Factors: DefaultEmissionFactors(), VehicleType: vehicleType}
}

// Factor returns the emission factor for the configured vehicle type.
func (c CarbonAnalyzer) Factor() float64 {
	if f, ok := c.Factors[c.VehicleType]; ok {
		return f
	}
	return fallbackEmissionFactor
}

// Scores returns per-route normalized carbon scores (lower emissions are
// better) alongside the raw per-route emission estimates in kg CO2e.
func (c CarbonAnalyzer) Scores(routes []domain.Route) (scores, rawKg []float64) {
	factor := c.Factor()

	rawKg = make([]float64, len(routes))
	for i, r := range routes {
		rawKg[i] = factor * r.DistanceMeters / 1000
	}
	return invertedMinMax(rawKg), rawKg
}

// invertedMinMax maps raw values to [0,1] with the minimum raw value scoring
// 1.0. A zero range scores every route 1.0 rather than dividing by zero.
func invertedMinMax(raw []float64) []float64 {
	if len(raw) == 0 {
		return []float64{}
	}

	lo, hi := raw[0], raw[0]
	for _, v := range raw[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := make([]float64, len(raw))
	if hi == lo {
		for i := range out {
			out[i] = 1.0
		}
		return out
	}

	for i, v := range raw {
		out[i] = (hi - v) / (hi - lo)
	}
	return out
}

// EstimateTrafficStatus classifies congestion from average speed, adjusted
// downward in rain. Reporting heuristic only.
func EstimateTrafficStatus(route domain.Route, weather domain.WeatherAnalysis) string {
	if route.DistanceMeters == 0 {
		return domain.TrafficModerate
	}

	avgSpeedKmh := 0.0
	if route.DurationSeconds > 0 {
		avgSpeedKmh = route.DistanceMeters / route.DurationSeconds * 3.6
	}

	if weather.AvgRainfallMM > 5 {
		avgSpeedKmh *= 0.8
	}

	switch {
	case avgSpeedKmh < 30:
		return domain.TrafficHeavy
	case avgSpeedKmh < 50:
		return domain.TrafficModerate
	default:
		return domain.TrafficLow
	}
}

// HasRestStopsNearby guesses rest-stop availability from geometry density.
// Long routes on mapped roads tend to pass service amenities.
func HasRestStopsNearby(route domain.Route) bool {
	return len(route.Geometry) > 10
}
