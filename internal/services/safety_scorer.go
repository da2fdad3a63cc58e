package services

import (
	"context"
	"log"

	"route-resilience-service/internal/domain"
	"route-resilience-service/internal/ports"
)

// weatherSampleStride controls how often weather is fetched: only every Nth
// segment is sampled and intervening segments reuse the most recent sample.
// This sampling economy is part of the scoring contract; changing it changes
// every downstream number.
const weatherSampleStride = 10

// SafetyScorer fuses road-quality and weather-risk signals into a
// length-weighted per-route safety score.
type SafetyScorer struct {
	road    ports.RoadQualityProvider
	weather ports.WeatherProvider
	logger  *log.Logger
}

func NewSafetyScorer(road ports.RoadQualityProvider, weather ports.WeatherProvider, logger *log.Logger) *SafetyScorer {
	if logger == nil {
		logger = log.Default()
	}
	return &SafetyScorer{road: road, weather: weather, logger: logger}
}

// Calculate scores one route's segments.
//
// Per segment: risk_pct = weather_risk * 100, term = (base_quality - risk_pct) * length.
// Route score: clamp(sum(term) / (100 * sum(length)), 0, 1).
// The road-quality variant floors each adjusted quality at zero before
// weighting. Provider failures fall back to documented defaults and never
// abort scoring.
func (s *SafetyScorer) Calculate(
	ctx context.Context,
	routeName string,
	segments []domain.Segment,
	maxLenMeters, minLenMeters float64,
) domain.SafetyReport {
	if len(segments) == 0 {
		s.logger.Printf("safety: route=%q no segments, using neutral default", routeName)
		return domain.DefaultSafetyReport()
	}

	var (
		weightedSum     float64
		weightedQuality float64
		totalLength     float64
		weightedWidth   float64

		samples  []domain.WeatherSample
		current  domain.WeatherSample
		typeDist = map[string]float64{}
	)

	for i, seg := range segments {
		road, err := s.road.Sample(ctx, seg.Mid, seg.LengthMeters)
		if err != nil {
			road = domain.DefaultRoadSample()
		}

		// Weather is sampled sparsely; intervening segments reuse the most
		// recent sample.
		if i%weatherSampleStride == 0 {
			w, err := s.weather.Sample(ctx, seg.Mid.Lat, seg.Mid.Lon)
			if err != nil {
				w = domain.DefaultWeatherSample()
			} else {
				w = w.WithRisks()
			}
			current = w
			samples = append(samples, w)
		}

		riskPct := current.RiskScore * 100
		weightedSum += (road.BaseQuality - riskPct) * seg.LengthMeters

		adjusted := road.BaseQuality - riskPct
		if adjusted < 0 {
			adjusted = 0
		}
		weightedQuality += adjusted * seg.LengthMeters

		totalLength += seg.LengthMeters
		weightedWidth += road.WidthMeters * seg.LengthMeters
		typeDist[road.RoadType] += seg.LengthMeters / 1000
	}

	if totalLength <= 0 {
		s.logger.Printf("safety: route=%q zero total length, using neutral default", routeName)
		return domain.DefaultSafetyReport()
	}

	safetyScore := clampUnit(weightedSum / (100 * totalLength))
	qualityScore := clampUnit(weightedQuality / (100 * totalLength))

	report := domain.SafetyReport{
		RoadSafetyScore: safetyScore,
		Weather:         aggregateWeather(samples),
		Road: domain.RoadAnalysis{
			RoadQualityScore:   qualityScore,
			TypeDistributionKM: typeDist,
			AvgWidthMeters:     weightedWidth / totalLength,
		},
	}

	s.logger.Printf("safety: route=%q segments=%d max_len=%.0f min_len=%.0f safety=%.4f quality=%.4f weather_risk=%.4f",
		routeName, len(segments), maxLenMeters, minLenMeters, safetyScore, qualityScore, report.Weather.AvgRisk)

	return report
}

// aggregateWeather means the raw fields and sub-risks across the sparsely
// sampled weather points. No samples yields domain-neutral defaults.
func aggregateWeather(samples []domain.WeatherSample) domain.WeatherAnalysis {
	if len(samples) == 0 {
		return domain.DefaultWeatherAnalysis()
	}

	var rain, wind, vis, temp, cloud, risk, visRisk, rainRisk, windRisk float64
	for _, w := range samples {
		rain += w.RainfallMM
		wind += w.Windspeed
		vis += w.VisibilityM
		temp += w.Temperature
		cloud += float64(w.Cloudcover)
		risk += w.RiskScore
		visRisk += w.VisibilityRisk
		rainRisk += w.RainRisk
		windRisk += w.WindRisk
	}

	n := float64(len(samples))
	return domain.WeatherAnalysis{
		Samples:        samples,
		AvgRainfallMM:  rain / n,
		AvgWindspeed:   wind / n,
		AvgVisibilityM: vis / n,
		AvgTemperature: temp / n,
		AvgCloudcover:  int(cloud / n),
		AvgRisk:        risk / n,
		VisibilityRisk: visRisk / n,
		RainRisk:       rainRisk / n,
		WindRisk:       windRisk / n,
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
